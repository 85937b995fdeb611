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

// Package uci contains the UciHandler data structure and
// functionality to handle the UCI protocol communication between a
// chess user interface and the engine.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"

	myLogging "github.com/BillyLevin/krusty/internal/logging"
	"github.com/BillyLevin/krusty/internal/movegen"
	"github.com/BillyLevin/krusty/internal/moveslice"
	"github.com/BillyLevin/krusty/internal/position"
	"github.com/BillyLevin/krusty/internal/search"
	. "github.com/BillyLevin/krusty/internal/types"
	"github.com/BillyLevin/krusty/internal/version"
)

// UciHandler handles all communication with the chess ui via UCI
// and controls the search. Create an instance with NewUciHandler().
type UciHandler struct {
	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	myMoveGen  *movegen.Movegen
	mySearch   *search.Search
	myPosition *position.Position
	myPerft    *movegen.Perft

	log    *logging.Logger
	uciLog *logging.Logger
}

// NewUciHandler creates a new UciHandler instance. Input/output
// streams can be replaced for testing via InIo and OutIo.
func NewUciHandler() *UciHandler {
	u := &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myMoveGen:  movegen.NewMoveGen(),
		mySearch:   search.NewSearch(),
		myPosition: position.NewPosition(),
		myPerft:    movegen.NewPerft(32),
		log:        myLogging.GetLog(),
		uciLog:     myLogging.GetUciLog(),
	}
	u.mySearch.SetUciHandler(u)
	return u
}

// Loop starts the main loop to receive and handle commands through
// the input stream until "quit" is received
func (u *UciHandler) Loop() {
	for u.InIo.Scan() {
		if u.handleReceivedCommand(u.InIo.Text()) {
			break
		}
	}
	// reset state on exit
	u.mySearch.StopSearch()
}

// Command handles a single line of UCI protocol and returns the uci
// response as string. Mostly useful for unit testing.
func (u *UciHandler) Command(cmd string) string {
	tmp := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = tmp
	return buffer.String()
}

// ///////////////////////////////////////////////////////////
// UciDriver interface for the search
// ///////////////////////////////////////////////////////////

// SendReadyOk sends "readyok" to the UCI user interface
func (u *UciHandler) SendReadyOk() {
	u.send("readyok")
}

// SendInfoString sends an arbitrary info string to the UCI user interface
func (u *UciHandler) SendInfoString(info string) {
	u.send(fmt.Sprintf("info string %s", info))
}

// SendIterationEndInfo sends the result of a completed iterative
// deepening depth to the UCI user interface
func (u *UciHandler) SendIterationEndInfo(depth int, seldepth int, value Value,
	nodes uint64, nps uint64, t time.Duration, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d seldepth %d score %s nodes %d nps %d time %d pv %s",
		depth, seldepth, value.String(), nodes, nps, t.Milliseconds(), pv.StringUci()))
}

// SendResult sends the best move to the UCI user interface after the
// search has ended or has been stopped
func (u *UciHandler) SendResult(bestMove Move) {
	u.send("bestmove " + bestMove.StringUci())
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

func (u *UciHandler) send(s string) {
	u.uciLog.Infof(">> %s", s)
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}

func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	if len(strings.TrimSpace(cmd)) == 0 {
		return false
	}
	u.uciLog.Infof("<< %s", cmd)
	tokens := strings.Fields(cmd)
	switch tokens[0] {
	case "quit":
		return true
	case "uci":
		u.uciCommand()
	case "isready":
		u.mySearch.IsReady()
	case "setoption":
		u.setOptionCommand(tokens)
	case "ucinewgame":
		u.uciNewGameCommand()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.mySearch.StopSearch()
		u.myPerft.Stop()
	case "perft":
		u.perftCommand(tokens)
	case "noop":
	default:
		u.log.Warningf("Error: Unknown command: %s", cmd)
	}
	return false
}

func (u *UciHandler) uciCommand() {
	u.send("id name Krusty v" + version.Version())
	u.send("id author Billy Levin")
	u.send("option name Hash type spin default 64 min 1 max 4096")
	u.send("uciok")
}

func (u *UciHandler) setOptionCommand(tokens []string) {
	name := ""
	value := ""
	i := 1
	if i < len(tokens) && tokens[i] == "name" {
		i++
		for i < len(tokens) && tokens[i] != "value" {
			name += tokens[i] + " "
			i++
		}
		name = strings.TrimSpace(name)
		if i < len(tokens) && tokens[i] == "value" && i+1 < len(tokens) {
			value = tokens[i+1]
		}
	}
	switch name {
	case "Hash":
		sizeInMB, err := strconv.Atoi(value)
		if err != nil || sizeInMB <= 0 {
			u.SendInfoString(fmt.Sprintf("Invalid Hash value %q", value))
			return
		}
		u.mySearch.ResizeCache(sizeInMB)
	default:
		u.SendInfoString(fmt.Sprintf("No such option %q", name))
	}
}

func (u *UciHandler) uciNewGameCommand() {
	u.myPosition = position.NewPosition()
	u.mySearch.NewGame()
}

// positionCommand loads a position from "startpos" or a fen and
// plays the optional list of moves on it. A parse error rejects the
// command and leaves the current position unchanged.
func (u *UciHandler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		u.SendInfoString("Command 'position' malformed")
		return
	}
	fen := position.StartFen
	i := 2
	switch tokens[1] {
	case "startpos":
	case "fen":
		var fenb strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			fenb.WriteString(tokens[i])
			fenb.WriteString(" ")
			i++
		}
		fen = strings.TrimSpace(fenb.String())
	default:
		u.SendInfoString(fmt.Sprintf("Command 'position' malformed: %s", strings.Join(tokens, " ")))
		return
	}

	newPosition, err := position.NewPositionFen(fen)
	if err != nil {
		u.SendInfoString(fmt.Sprintf("Invalid fen %q: %s", fen, err))
		return
	}

	if i < len(tokens) {
		if tokens[i] != "moves" {
			u.SendInfoString(fmt.Sprintf("Command 'position' malformed: %s", strings.Join(tokens, " ")))
			return
		}
		i++
		for ; i < len(tokens); i++ {
			move := u.myMoveGen.GetMoveFromUci(newPosition, tokens[i])
			if move == MoveNone {
				u.SendInfoString(fmt.Sprintf("Invalid move %q", tokens[i]))
				return
			}
			newPosition.MakeMove(move)
		}
	}
	u.myPosition = newPosition
	u.log.Debugf("New position: %s", u.myPosition.StringFen())
}

func (u *UciHandler) perftCommand(tokens []string) {
	depth := 4
	if len(tokens) > 1 {
		if d, err := strconv.Atoi(tokens[1]); err == nil {
			depth = d
		}
	}
	go u.myPerft.StartPerft(u.myPosition.StringFen(), depth, true)
}

// goCommand reads the search limits from the go command and starts
// the search
func (u *UciHandler) goCommand(tokens []string) {
	searchLimits, err := u.readSearchLimits(tokens)
	if err {
		return
	}
	u.mySearch.StartSearch(*u.myPosition, *searchLimits)
}

func (u *UciHandler) readSearchLimits(tokens []string) (*search.Limits, bool) {
	searchLimits := search.NewSearchLimits()
	i := 1
	for i < len(tokens) {
		switch tokens[i] {
		case "infinite":
			searchLimits.Infinite = true
		case "depth":
			i++
			if !u.parseIntOption(tokens, i, func(v int) { searchLimits.Depth = v }) {
				return nil, true
			}
		case "wtime":
			i++
			if !u.parseIntOption(tokens, i, func(v int) {
				searchLimits.WhiteTime = time.Duration(v) * time.Millisecond
				searchLimits.TimeControl = true
			}) {
				return nil, true
			}
		case "btime":
			i++
			if !u.parseIntOption(tokens, i, func(v int) {
				searchLimits.BlackTime = time.Duration(v) * time.Millisecond
				searchLimits.TimeControl = true
			}) {
				return nil, true
			}
		case "winc":
			i++
			if !u.parseIntOption(tokens, i, func(v int) {
				searchLimits.WhiteInc = time.Duration(v) * time.Millisecond
			}) {
				return nil, true
			}
		case "binc":
			i++
			if !u.parseIntOption(tokens, i, func(v int) {
				searchLimits.BlackInc = time.Duration(v) * time.Millisecond
			}) {
				return nil, true
			}
		case "movestogo":
			i++
			if !u.parseIntOption(tokens, i, func(v int) { searchLimits.MovesToGo = v }) {
				return nil, true
			}
		case "movetime":
			i++
			if !u.parseIntOption(tokens, i, func(v int) {
				searchLimits.MoveTime = time.Duration(v) * time.Millisecond
				searchLimits.TimeControl = true
			}) {
				return nil, true
			}
		default:
			u.SendInfoString(fmt.Sprintf("Unknown go option %q", tokens[i]))
		}
		i++
	}
	// no time control and no depth limit means search infinitely deep
	if !searchLimits.TimeControl && searchLimits.Depth == 0 {
		searchLimits.Infinite = true
	}
	return searchLimits, false
}

func (u *UciHandler) parseIntOption(tokens []string, i int, set func(int)) bool {
	if i >= len(tokens) {
		u.SendInfoString("UCI command go malformed: missing value")
		return false
	}
	v, e := strconv.Atoi(tokens[i])
	if e != nil {
		u.SendInfoString(fmt.Sprintf("UCI command go malformed: value %q not a number", tokens[i]))
		return false
	}
	set(v)
	return true
}
