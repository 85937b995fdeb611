//
// Krusty - UCI chess engine in GO
//
// MIT License
//
// Copyright (c) 2022 Billy Levin
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package search implements the search for the best move of a chess
// position: an iterative deepening principal variation alpha beta
// search with quiescence extension, a transposition table and
// killer/history/counter move ordering heuristics.
//
// The search is single threaded. It runs in its own goroutine started
// by StartSearch and is stopped cooperatively through the timer's
// stopped flag.
package search

import (
	"context"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"

	"github.com/BillyLevin/krusty/internal/config"
	"github.com/BillyLevin/krusty/internal/evaluator"
	myLogging "github.com/BillyLevin/krusty/internal/logging"
	"github.com/BillyLevin/krusty/internal/movegen"
	"github.com/BillyLevin/krusty/internal/moveslice"
	"github.com/BillyLevin/krusty/internal/position"
	"github.com/BillyLevin/krusty/internal/transpositiontable"
	. "github.com/BillyLevin/krusty/internal/types"
	"github.com/BillyLevin/krusty/internal/util"
)

// Search represents the data structure for a chess engine search.
// Create a new instance with NewSearch().
type Search struct {
	log *logging.Logger

	uciHandler    UciDriver
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	tt   *transpositiontable.TtTable[transpositiontable.SearchEntry]
	eval *evaluator.Evaluator
	mg   *movegen.Movegen

	// current search state
	timer            *searchTimer
	startTime        time.Time
	nodesVisited     uint64
	searchLimits     *Limits
	currentPosition  *position.Position
	hasResult        bool
	lastSearchResult *Result
	statistics       Statistics

	// ply based data
	moveLists [MaxPly + 1]*moveslice.MoveSlice
	pv        [MaxPly + 2]*moveslice.MoveSlice

	// move ordering heuristics - persist across iterative deepening
	// iterations, reset between independent searches
	killerMoves  [MaxPly + 1][2]Move
	historyScore [ColorLength][SqLength][SqLength]uint32
	counterMove  [ColorLength][SqLength][SqLength]Move
}

// NewSearch creates a new Search instance. If no uci handler is set
// all output is sent to the log only.
func NewSearch() *Search {
	s := &Search{
		log:           myLogging.GetSearchLog(),
		initSemaphore: semaphore.NewWeighted(1),
		isRunning:     semaphore.NewWeighted(1),
		eval:          evaluator.NewEvaluator(),
		mg:            movegen.NewMoveGen(),
		timer:         newSearchTimer(),
	}
	for i := 0; i <= MaxPly; i++ {
		s.moveLists[i] = moveslice.NewMoveSlice(MaxMoves)
	}
	for i := 0; i <= MaxPly+1; i++ {
		s.pv[i] = moveslice.NewMoveSlice(MaxPly)
	}
	return s
}

// SetUciHandler sets the UCI handler to communicate with the UCI
// user interface
func (s *Search) SetUciHandler(handler UciDriver) {
	s.uciHandler = handler
}

// IsReady initializes the search (e.g. allocates the transposition
// table) and reports readiness to the uci handler
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandler != nil {
		s.uciHandler.SendReadyOk()
	} else {
		s.log.Debug("uci >> readyok")
	}
}

// NewGame stops any running search and resets all state which
// carries over between searches (hash table, heuristics)
func (s *Search) NewGame() {
	s.StopSearch()
	if s.tt != nil {
		s.tt.Clear()
	}
	s.resetHeuristics()
}

// StartSearch starts the search for the given position with the given
// limits in a separate goroutine. Search can be stopped with
// StopSearch. This takes copies of position and limits.
func (s *Search) StartSearch(p position.Position, sl Limits) {
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	go s.run(&p, &sl)
	// wait until the search is running before returning to the caller
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch stops a running search as quickly as possible. The
// search stops gracefully and a result is sent to the uci handler.
// Blocks until the search has stopped.
func (s *Search) StopSearch() {
	s.timer.stop()
	s.WaitWhileSearching()
}

// IsSearching checks if a search is currently running
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until a running search has stopped
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// LastSearchResult returns the result of the last finished search
func (s *Search) LastSearchResult() *Result {
	return s.lastSearchResult
}

// NodesVisited returns the number of nodes of the last search
func (s *Search) NodesVisited() uint64 {
	return s.nodesVisited
}

// ResizeCache resizes and clears the transposition table. Ignored
// with a warning while searching.
func (s *Search) ResizeCache(sizeInMB int) {
	if s.IsSearching() {
		s.log.Warning("Can't resize hash while searching")
		return
	}
	config.Settings.Search.TTSize = sizeInMB
	s.tt = nil
	s.initialize()
}

// ClearHash clears the transposition table. Ignored with a warning
// while searching.
func (s *Search) ClearHash() {
	if s.IsSearching() {
		s.log.Warning("Can't clear hash while searching")
		return
	}
	if s.tt != nil {
		s.tt.Clear()
	}
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// initialize allocates the transposition table if necessary
func (s *Search) initialize() {
	if config.Settings.Search.UseTT && s.tt == nil {
		s.tt = transpositiontable.New[transpositiontable.SearchEntry](config.Settings.Search.TTSize)
		s.log.Info(out.Sprintf("TT initialized: %d entries (%d MB)",
			s.tt.Len(), s.tt.SizeInByte()/MB))
	}
}

// resetHeuristics clears killers, history counters and counter moves
func (s *Search) resetHeuristics() {
	s.killerMoves = [MaxPly + 1][2]Move{}
	s.historyScore = [ColorLength][SqLength][SqLength]uint32{}
	s.counterMove = [ColorLength][SqLength][SqLength]Move{}
}

// run is called by StartSearch in a separate goroutine. It runs the
// actual iterative deepening search until a limit is reached or the
// search has been stopped.
func (s *Search) run(p *position.Position, sl *Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("Search already running")
		s.initSemaphore.Release(1)
		return
	}
	defer s.isRunning.Release(1)

	s.startTime = time.Now()
	s.nodesVisited = 0
	s.statistics = Statistics{}
	s.hasResult = false
	s.currentPosition = p
	s.searchLimits = sl
	s.resetHeuristics()
	s.initialize()

	s.timer.reset()
	s.setupTimeControl(p, sl)
	s.timer.start()

	s.log.Infof("Searching: %s", p.StringFen())

	// release the calling goroutine waiting in StartSearch
	s.initSemaphore.Release(1)

	result := s.iterativeDeepening(p)
	result.SearchTime = time.Since(s.startTime)
	result.Nodes = s.nodesVisited

	s.lastSearchResult = result
	s.hasResult = true

	s.log.Infof("Search finished: %s", result.String())
	s.log.Debugf("Search stats: %s", s.statistics.String())

	if s.uciHandler != nil {
		s.uciHandler.SendResult(result.BestMove)
	}
}

// setupTimeControl computes the allowed search duration from the
// search limits
func (s *Search) setupTimeControl(p *position.Position, sl *Limits) {
	if !sl.TimeControl {
		return
	}
	if sl.MoveTime > 0 {
		s.timer.allowedDuration = sl.MoveTime
		s.timer.timeControlled = true
		return
	}
	remaining := sl.WhiteTime
	increment := sl.WhiteInc
	if p.NextPlayer() == Black {
		remaining = sl.BlackTime
		increment = sl.BlackInc
	}
	s.timer.initialize(remaining, increment, sl.MovesToGo)
}

// iterativeDeepening searches the position with increasing depth,
// reporting each completed depth to the uci handler. The last fully
// completed depth's principal variation is used as the result.
func (s *Search) iterativeDeepening(p *position.Position) *Result {
	result := &Result{BestMove: MoveNone, BestValue: ValueNA}

	// check if there are legal moves - if not it's mate or stalemate
	rootMoves := s.mg.GenerateLegalMoves(p)
	if rootMoves.Len() == 0 {
		if p.HasCheck() {
			result.BestValue = -ValueInfinity
			s.log.Warning("Search called on a mate position")
		} else {
			result.BestValue = ValueDraw
			s.log.Warning("Search called on a stalemate position")
		}
		return result
	}

	maxDepth := MaxPly
	if s.searchLimits.Depth > 0 {
		maxDepth = util.Min(s.searchLimits.Depth, MaxPly)
	}

	for depth := 1; depth <= maxDepth; depth++ {
		s.statistics.CurrentIterationDepth = depth

		value := s.negamax(p, depth, 0, -ValueInfinity, ValueInfinity, MoveNone)

		// a stopped iteration is discarded - the previous depth's
		// result stands
		if s.timer.isStopped() && depth > 1 {
			break
		}
		if s.pv[0].Len() == 0 {
			break
		}

		result.BestMove = s.pv[0].At(0).MoveOf()
		result.BestValue = value
		result.SearchDepth = depth
		result.ExtraDepth = s.statistics.CurrentExtraSearchDepth
		result.Pv = *s.pv[0].Clone()

		s.sendIterationEndInfo(depth, value)

		if s.timer.isStopped() {
			break
		}
	}
	return result
}

func (s *Search) sendIterationEndInfo(depth int, value Value) {
	elapsed := time.Since(s.startTime)
	nps := util.Nps(s.nodesVisited, elapsed)
	if s.uciHandler != nil {
		s.uciHandler.SendIterationEndInfo(depth, s.statistics.CurrentExtraSearchDepth,
			value, s.nodesVisited, nps, elapsed, *s.pv[0])
	} else {
		s.log.Info(out.Sprintf("depth %d seldepth %d score %s nodes %d nps %d time %d pv %s",
			depth, s.statistics.CurrentExtraSearchDepth, value.String(),
			s.nodesVisited, nps, elapsed.Milliseconds(), s.pv[0].StringUci()))
	}
}
