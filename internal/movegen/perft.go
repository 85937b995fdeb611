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

package movegen

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/BillyLevin/krusty/internal/logging"
	"github.com/BillyLevin/krusty/internal/moveslice"
	"github.com/BillyLevin/krusty/internal/position"
	"github.com/BillyLevin/krusty/internal/transpositiontable"
	. "github.com/BillyLevin/krusty/internal/types"
	"github.com/BillyLevin/krusty/internal/util"
)

var out = message.NewPrinter(language.German)

// Perft is a node counting test enumerating all leaves of the game
// tree to a given depth. It is the primary validation of the move
// generator and of make/unmake. Node counts are cached in a
// transposition table keyed by position hash and depth.
type Perft struct {
	Nodes    uint64
	stopFlag bool

	mg    *Movegen
	tt    *transpositiontable.TtTable[transpositiontable.PerftEntry]
	lists []*moveslice.MoveSlice
}

// NewPerft creates a new perft driver with a perft cache of the
// given size in MB
func NewPerft(ttSizeMB int) *Perft {
	p := &Perft{
		mg: NewMoveGen(),
		tt: transpositiontable.New[transpositiontable.PerftEntry](ttSizeMB),
	}
	for i := 0; i <= MaxPly; i++ {
		p.lists = append(p.lists, moveslice.NewMoveSlice(MaxMoves))
	}
	return p
}

// Stop stops a running perft
func (pf *Perft) Stop() {
	pf.stopFlag = true
}

// StartPerft runs perft on the given fen to the given depth and
// returns the number of leaf nodes. With divide true the node count
// of each root move is printed.
func (pf *Perft) StartPerft(fen string, depth int, divide bool) uint64 {
	log := logging.GetLog()
	pf.stopFlag = false
	pf.Nodes = 0
	if depth > MaxPly {
		depth = MaxPly
	}

	p, err := position.NewPositionFen(fen)
	if err != nil {
		log.Errorf("perft aborted. invalid fen: %s", err)
		return 0
	}

	start := time.Now()
	if divide {
		pf.Nodes = pf.divide(p, depth)
	} else {
		pf.Nodes = pf.perft(p, depth)
	}
	elapsed := time.Since(start)

	log.Info(out.Sprintf("Perft depth %d: %d nodes in %d ms (%d nps)",
		depth, pf.Nodes, elapsed.Milliseconds(), util.Nps(pf.Nodes, elapsed)))
	return pf.Nodes
}

// perft recursively counts the leaf nodes below the position
func (pf *Perft) perft(p *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	if pf.stopFlag {
		return 0
	}

	entry := pf.tt.Probe(p.ZobristKey())
	if entry.Hash() == p.ZobristKey() && entry.Depth() == int8(depth) {
		return entry.NodeCount()
	}

	var nodes uint64
	ml := pf.lists[depth]
	pf.mg.GenerateAllMoves(p, ml)
	for i := 0; i < ml.Len(); i++ {
		if p.MakeMove(ml.At(i)) {
			nodes += pf.perft(p, depth-1)
		}
		p.UndoMove()
	}

	pf.tt.Store(transpositiontable.NewPerftEntry(p.ZobristKey(), nodes, int8(depth)))
	return nodes
}

// divide runs perft one level down and prints the count per root move
func (pf *Perft) divide(p *position.Position, depth int) uint64 {
	var nodes uint64
	ml := moveslice.NewMoveSlice(MaxMoves)
	pf.mg.GenerateAllMoves(p, ml)
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		if p.MakeMove(m) {
			subNodes := pf.perft(p, depth-1)
			nodes += subNodes
			out.Printf("%s: %d\n", m.StringUci(), subNodes)
		}
		p.UndoMove()
	}
	return nodes
}
