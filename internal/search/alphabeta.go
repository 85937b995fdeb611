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

package search

import (
	"github.com/BillyLevin/krusty/internal/config"
	"github.com/BillyLevin/krusty/internal/moveslice"
	"github.com/BillyLevin/krusty/internal/position"
	"github.com/BillyLevin/krusty/internal/transpositiontable"
	. "github.com/BillyLevin/krusty/internal/types"
)

// move ordering scores (15 bit, packed into the move)
const (
	// the move from the transposition table is searched first
	ttMoveScore uint32 = 30_000

	// captures are scored captureOffset + 10*victim - attacker (MVV-LVA)
	captureOffset uint32 = 20_000

	// quiet moves which recently caused beta cutoffs at this ply
	killer1Score uint32 = captureOffset - 1
	killer2Score uint32 = captureOffset - 2

	// remaining quiets are ordered by their history score which is
	// kept below the killer band by halving the table when necessary
	historyLimit uint32 = killer2Score - 1
)

// negamax is the recursive alpha beta search with principal variation
// search (PVS). At ply 0 it acts as the root search: no transposition
// table cutoffs and no draw detection there.
func (s *Search) negamax(p *position.Position, depth int, ply int, alpha Value, beta Value, prevMove Move) Value {
	if s.timer.isStopped() {
		return valueStopped
	}

	// check extension - never enter quiescence while in check
	hasCheck := p.HasCheck()
	if hasCheck {
		depth++
	}

	if depth == 0 || ply >= MaxPly {
		return s.qsearch(p, ply, alpha, beta)
	}

	s.pv[ply].Clear()

	// TT lookup. A usable score cuts the node (not at the root); the
	// stored best move seeds move ordering either way.
	ttMove := MoveNone
	if config.Settings.Search.UseTT {
		entry := s.tt.Probe(p.ZobristKey())
		score, usable, bestMove := entry.Get(p.ZobristKey(), int8(depth), ply, alpha, beta)
		if entry.Hash() == p.ZobristKey() {
			s.statistics.TTHits++
		} else {
			s.statistics.TTMisses++
		}
		ttMove = bestMove
		if usable && ply > 0 {
			s.statistics.TTCuts++
			return score
		}
	}

	// draw by 50-move rule, threefold repetition or insufficient
	// material. Only positions since the last irreversible move can
	// repeat.
	if ply > 0 &&
		(p.HalfMoveClock() >= 100 || p.CheckRepetitions(2) || p.HasInsufficientMaterial()) {
		s.statistics.DrawDetects++
		return ValueDraw
	}

	ml := s.moveLists[ply]
	s.mg.GenerateAllMoves(p, ml)
	s.scoreMoves(p, ml, ttMove, ply, prevMove)

	oldAlpha := alpha
	bestMove := MoveNone
	legalMoves := 0

	for i := 0; i < ml.Len(); i++ {
		move := ml.PickOrdered(i)

		if !p.MakeMove(move) {
			p.UndoMove()
			continue
		}
		legalMoves++
		s.nodesVisited++
		s.timer.checkTime(s.nodesVisited)

		var value Value
		// PVS: the first move is an assumed PV and searched with the
		// full window. All others only have to prove they are worse
		// (null window); when they surprisingly are not, re-search
		// with the full window.
		if !config.Settings.Search.UsePVS || legalMoves == 1 {
			value = -s.negamax(p, depth-1, ply+1, -beta, -alpha, move)
		} else {
			value = -s.negamax(p, depth-1, ply+1, -alpha-1, -alpha, move)
			if value > alpha && value < beta && !s.timer.isStopped() {
				value = -s.negamax(p, depth-1, ply+1, -beta, -alpha, move)
			}
		}
		p.UndoMove()

		if s.timer.isStopped() {
			return valueStopped
		}

		if value >= beta {
			s.statistics.BetaCuts++
			if legalMoves == 1 {
				s.statistics.BetaCuts1st++
			}
			if config.Settings.Search.UseTT {
				s.tt.Store(transpositiontable.NewSearchEntry(
					p.ZobristKey(), int8(depth), beta, ply, transpositiontable.FlagBeta, move.MoveOf()))
			}
			// ordering heuristics are fed by quiet cutoffs only
			if !p.IsCapturingMove(move) {
				s.updateCutoffHeuristics(p, move, depth, ply, prevMove)
			}
			return beta
		}
		if value > alpha {
			alpha = value
			bestMove = move.MoveOf()
			savePV(move.MoveOf(), s.pv[ply+1], s.pv[ply])
		}
	}

	// no legal move - checkmate or stalemate
	if legalMoves == 0 {
		if hasCheck {
			s.statistics.Checkmates++
			return -ValueInfinity + Value(ply)
		}
		s.statistics.Stalemates++
		return ValueDraw
	}

	if config.Settings.Search.UseTT {
		flag := transpositiontable.FlagAlpha
		if alpha > oldAlpha {
			flag = transpositiontable.FlagExact
		}
		s.tt.Store(transpositiontable.NewSearchEntry(
			p.ZobristKey(), int8(depth), alpha, ply, flag, bestMove))
	}
	return alpha
}

// qsearch continues the search at the horizon with captures only to
// avoid evaluating volatile positions. Depth unbounded but capped by
// MaxPly.
func (s *Search) qsearch(p *position.Position, ply int, alpha Value, beta Value) Value {
	if s.timer.isStopped() {
		return valueStopped
	}
	if s.statistics.CurrentExtraSearchDepth < ply {
		s.statistics.CurrentExtraSearchDepth = ply
	}
	s.pv[ply].Clear()

	standPat := s.evaluate(p)
	if !config.Settings.Search.UseQuiescence || ply >= MaxPly {
		return standPat
	}
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	ml := s.moveLists[ply]
	s.mg.GenerateAllCaptures(p, ml)
	s.scoreMoves(p, ml, MoveNone, ply, MoveNone)

	for i := 0; i < ml.Len(); i++ {
		move := ml.PickOrdered(i)

		if !p.MakeMove(move) {
			p.UndoMove()
			continue
		}
		s.nodesVisited++
		s.timer.checkTime(s.nodesVisited)

		value := -s.qsearch(p, ply+1, -beta, -alpha)
		p.UndoMove()

		if s.timer.isStopped() {
			return valueStopped
		}

		if value >= beta {
			s.statistics.BetaCuts++
			return beta
		}
		if value > alpha {
			alpha = value
			savePV(move.MoveOf(), s.pv[ply+1], s.pv[ply])
		}
	}
	return alpha
}

// evaluate calls the evaluation function for the position
func (s *Search) evaluate(p *position.Position) Value {
	s.statistics.Evaluations++
	return s.eval.Evaluate(p)
}

// scoreMoves assigns the 15-bit ordering score to each generated
// move: TT move first, then captures by MVV-LVA, then the killer
// moves of this ply, then quiets by history (with a small bonus for
// the counter move of the previous move).
func (s *Search) scoreMoves(p *position.Position, ml *moveslice.MoveSlice, ttMove Move, ply int, prevMove Move) {
	us := p.NextPlayer()

	counter := MoveNone
	if config.Settings.Search.UseCounterMoves && prevMove != MoveNone {
		counter = s.counterMove[us][prevMove.From()][prevMove.To()]
	}

	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		var score uint32
		switch {
		case ttMove != MoveNone && m.Equals(ttMove):
			score = ttMoveScore
			s.statistics.TTMoveUsed++
		case p.IsCapturingMove(m):
			victim := Pawn.ValueOf() // en passant captures a pawn
			if m.Flag() != FlagEnPassant {
				victim = p.GetPiece(m.To()).ValueOf()
			}
			attacker := p.GetPiece(m.From()).ValueOf()
			score = captureOffset + uint32(10*victim-attacker)
		case config.Settings.Search.UseKiller && m.Equals(s.killerMoves[ply][0]):
			score = killer1Score
		case config.Settings.Search.UseKiller && m.Equals(s.killerMoves[ply][1]):
			score = killer2Score
		default:
			score = s.historyScore[us][m.From()][m.To()]
			if counter != MoveNone && m.Equals(counter) {
				score++
			}
			if score > historyLimit {
				score = historyLimit
			}
		}
		m.SetScore(score)
		ml.Set(i, m)
	}
}

// updateCutoffHeuristics records a quiet move which caused a beta
// cutoff in the killer slots, the history table and the counter move
// table. Called after UndoMove, so p's next player is the mover.
func (s *Search) updateCutoffHeuristics(p *position.Position, move Move, depth int, ply int, prevMove Move) {
	us := p.NextPlayer()
	m := move.MoveOf()

	if config.Settings.Search.UseKiller && s.killerMoves[ply][0] != m {
		s.killerMoves[ply][1] = s.killerMoves[ply][0]
		s.killerMoves[ply][0] = m
	}

	if config.Settings.Search.UseHistoryCounter {
		s.historyScore[us][move.From()][move.To()] += uint32(depth * depth)
		// keep history scores below the killer band
		if s.historyScore[us][move.From()][move.To()] > historyLimit {
			s.halveHistory()
		}
	}

	if config.Settings.Search.UseCounterMoves && prevMove != MoveNone {
		s.counterMove[us][prevMove.From()][prevMove.To()] = m
	}
}

func (s *Search) halveHistory() {
	for c := 0; c < ColorLength; c++ {
		for from := 0; from < SqLength; from++ {
			for to := 0; to < SqLength; to++ {
				s.historyScore[c][from][to] /= 2
			}
		}
	}
}

// savePV sets the given move as the head of dest followed by all
// moves of src (the child node's principal variation)
func savePV(move Move, src *moveslice.MoveSlice, dest *moveslice.MoveSlice) {
	dest.Clear()
	dest.PushBack(move)
	*dest = append(*dest, *src...)
}
