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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var out = message.NewPrinter(language.English)

// Statistics collects counters of a single search run for analysis
// and logging
type Statistics struct {
	CurrentIterationDepth   int
	CurrentExtraSearchDepth int

	Evaluations uint64
	BetaCuts    uint64
	BetaCuts1st uint64
	TTHits      uint64
	TTMisses    uint64
	TTCuts      uint64
	TTMoveUsed  uint64
	Checkmates  uint64
	Stalemates  uint64
	DrawDetects uint64
}

// String returns a condensed representation of the counters
func (s *Statistics) String() string {
	return out.Sprintf("depth %d(%d) evals %d betaCuts %d (1st %d) ttHits %d ttMisses %d ttCuts %d ttMoves %d mates %d stalemates %d draws %d",
		s.CurrentIterationDepth, s.CurrentExtraSearchDepth, s.Evaluations,
		s.BetaCuts, s.BetaCuts1st, s.TTHits, s.TTMisses, s.TTCuts, s.TTMoveUsed,
		s.Checkmates, s.Stalemates, s.DrawDetects)
}
