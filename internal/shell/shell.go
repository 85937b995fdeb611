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

// Package shell implements a small interactive command shell for
// perft runs and ad-hoc testing outside of UCI mode. It consumes the
// same position, movegen, evaluator and search interfaces as the UCI
// front end.
package shell

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/BillyLevin/krusty/internal/evaluator"
	"github.com/BillyLevin/krusty/internal/movegen"
	"github.com/BillyLevin/krusty/internal/position"
	"github.com/BillyLevin/krusty/internal/search"
	"github.com/BillyLevin/krusty/internal/testsuite"
	. "github.com/BillyLevin/krusty/internal/types"
	"github.com/BillyLevin/krusty/internal/uci"
	"github.com/BillyLevin/krusty/internal/version"
)

// Shell is the interactive command loop. Create with NewShell().
type Shell struct {
	in  *bufio.Scanner
	out *bufio.Writer

	board  *position.Position
	mg     *movegen.Movegen
	eval   *evaluator.Evaluator
	search *search.Search
	perft  *movegen.Perft
}

var (
	promptColor  = color.New(color.FgHiYellow, color.Bold)
	headerColor  = color.New(color.FgCyan)
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
)

// NewShell creates a new interactive shell
func NewShell() *Shell {
	return &Shell{
		in:     bufio.NewScanner(os.Stdin),
		out:    bufio.NewWriter(os.Stdout),
		board:  position.NewPosition(),
		mg:     movegen.NewMoveGen(),
		eval:   evaluator.NewEvaluator(),
		search: search.NewSearch(),
		perft:  movegen.NewPerft(128),
	}
}

// Loop starts the interactive loop until "quit" is entered or the
// session switches into UCI mode
func (sh *Shell) Loop() {
	sh.printGreeting()
	for {
		_, _ = promptColor.Print("krusty> ")
		if !sh.in.Scan() {
			return
		}
		input := strings.TrimSpace(sh.in.Text())
		if input == "" {
			continue
		}
		tokens := strings.Fields(input)
		switch tokens[0] {
		case "quit", "exit":
			return
		case "uci":
			// hand over to the uci protocol loop
			u := uci.NewUciHandler()
			u.Command("uci")
			u.Loop()
			return
		case "perft":
			sh.perftCommand(tokens)
		case "fen":
			sh.fenCommand(tokens)
		case "moves", "mv":
			sh.movesCommand(tokens)
		case "eval":
			sh.evalCommand()
		case "search":
			sh.searchCommand(tokens)
		case "print":
			sh.println(sh.board.String())
		case "suite":
			sh.suiteCommand(tokens)
		case "help":
			sh.printHelp()
		default:
			_, _ = errorColor.Println("Invalid command. Try 'help'.")
		}
	}
}

func (sh *Shell) printGreeting() {
	fmt.Println()
	fmt.Print("Welcome to ")
	_, _ = promptColor.Println("Krusty v" + version.Version())
	fmt.Println("A UCI chess engine written in GO")
	fmt.Println()
	sh.printHelp()
}

func (sh *Shell) printHelp() {
	_, _ = headerColor.Println("Commands:")
	fmt.Println("  perft [depth]          run perft on the current position")
	fmt.Println("  fen <FEN>|startpos     load a position")
	fmt.Println("  moves|mv <m1> [m2 ...] play moves in UCI notation (e2e4)")
	fmt.Println("  eval                   evaluate the current position")
	fmt.Println("  search <depth>         search the current position")
	fmt.Println("  print                  print the current position")
	fmt.Println("  suite <file>           run a perft test suite file")
	fmt.Println("  uci                    switch to UCI protocol mode")
	fmt.Println("  quit                   exit")
	fmt.Println()
}

func (sh *Shell) println(s string) {
	_, _ = sh.out.WriteString(s + "\n")
	_ = sh.out.Flush()
}

func (sh *Shell) perftCommand(tokens []string) {
	depth := 5
	if len(tokens) > 1 {
		d, err := strconv.Atoi(tokens[1])
		if err != nil || d < 1 {
			_, _ = errorColor.Printf("Invalid depth %q\n", tokens[1])
			return
		}
		depth = d
	}
	nodes := sh.perft.StartPerft(sh.board.StringFen(), depth, true)
	_, _ = successColor.Printf("Perft depth %d: %d nodes\n", depth, nodes)
}

func (sh *Shell) fenCommand(tokens []string) {
	if len(tokens) < 2 {
		_, _ = errorColor.Println("Invalid FEN")
		return
	}
	fen := strings.Join(tokens[1:], " ")
	if fen == "startpos" {
		fen = position.StartFen
	}
	newBoard, err := position.NewPositionFen(fen)
	if err != nil {
		_, _ = errorColor.Printf("Invalid FEN: %s\n", err)
		return
	}
	sh.board = newBoard
	sh.println(sh.board.StringBoard())
}

func (sh *Shell) movesCommand(tokens []string) {
	if len(tokens) < 2 {
		_, _ = errorColor.Println("No moves given")
		return
	}
	for _, moveStr := range tokens[1:] {
		move := sh.mg.GetMoveFromUci(sh.board, moveStr)
		if move == MoveNone {
			_, _ = errorColor.Printf("Invalid or illegal move %q\n", moveStr)
			return
		}
		sh.board.MakeMove(move)
	}
	sh.println(sh.board.StringBoard())
}

func (sh *Shell) evalCommand() {
	value := sh.eval.Evaluate(sh.board)
	fmt.Printf("Evaluation (%s to move): %s\n", sh.board.NextPlayer().String(), value.String())
}

func (sh *Shell) searchCommand(tokens []string) {
	if len(tokens) < 2 {
		_, _ = errorColor.Println("Missing search depth")
		return
	}
	depth, err := strconv.Atoi(tokens[1])
	if err != nil || depth < 1 {
		_, _ = errorColor.Printf("Invalid depth %q\n", tokens[1])
		return
	}
	limits := search.NewSearchLimits()
	limits.Depth = depth

	start := time.Now()
	sh.search.StartSearch(*sh.board, *limits)
	sh.search.WaitWhileSearching()
	elapsed := time.Since(start)

	result := sh.search.LastSearchResult()
	if result == nil || result.BestMove == MoveNone {
		_, _ = errorColor.Println("No move found (mate or stalemate?)")
		return
	}
	_, _ = successColor.Printf("best move: %s (score %s) in %d ms\n",
		result.BestMove.StringUci(), result.BestValue.String(), elapsed.Milliseconds())
	fmt.Printf("pv: %s\n", result.Pv.StringUci())
}

func (sh *Shell) suiteCommand(tokens []string) {
	if len(tokens) < 2 {
		_, _ = errorColor.Println("Missing suite file")
		return
	}
	ts, err := testsuite.NewTestSuite(tokens[1])
	if err != nil {
		_, _ = errorColor.Printf("Can't read suite: %s\n", err)
		return
	}
	ts.RunTests()
}
