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

// Package evaluator computes a centipawn score for a chess position
// from the perspective of the side to move.
//
// The evaluation is a tapered material + piece square table score:
// for each side a middle game and an end game score are built and
// blended by a game phase factor computed from the non pawn material
// left on the board. A bishop pair gets a small bonus. Positions with
// insufficient mating material short circuit to a draw score.
package evaluator

import (
	"github.com/BillyLevin/krusty/internal/config"
	"github.com/BillyLevin/krusty/internal/position"
	. "github.com/BillyLevin/krusty/internal/types"
)

const (
	// game phase is scaled into [0, phaseMax]:
	// phaseMax = full middle game, 0 = pure end game
	phaseMax = 256

	// phase units on the board at the start position (4xN + 4xB + 4xR + 2xQ)
	phaseUnitsMax = 24

	bishopPairMidGame Value = 25
	bishopPairEndGame Value = 50
)

// Evaluator encapsulates the evaluation function.
// Create with NewEvaluator().
type Evaluator struct{}

// NewEvaluator creates a new instance of an Evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns a centipawn score for the position from the
// perspective of the side to move
func (e *Evaluator) Evaluate(p *position.Position) Value {
	if p.HasInsufficientMaterial() {
		return ValueDraw
	}

	phase := gamePhase(p)
	score := e.evalSide(p, White, phase) - e.evalSide(p, Black, phase)

	if p.NextPlayer() == Black {
		return -score
	}
	return score
}

// evalSide sums material and the blended positional score of one side
func (e *Evaluator) evalSide(p *position.Position, c Color, phase Value) Value {
	var material, mid, end Value

	for pt := Pawn; pt <= King; pt++ {
		for pieces := p.PiecesBb(c, pt); pieces != BbZero; {
			sq := pieces.PopLsb()
			material += pt.ValueOf()
			if config.Settings.Eval.UsePosValues {
				idx := sq
				if c == White {
					idx = flippedSquare[sq]
				}
				mid += posMidValue[pt][idx]
				end += posEndValue[pt][idx]
			}
		}
	}

	if config.Settings.Eval.UseBishopPair && p.PiecesBb(c, Bishop).PopCount() >= 2 {
		mid += bishopPairMidGame
		end += bishopPairEndGame
	}

	return material + (mid*phase+end*(phaseMax-phase))/phaseMax
}

// gamePhase computes the tapering factor in [0, phaseMax] from the
// non pawn pieces still on the board (N=1 B=1 R=2 Q=4)
func gamePhase(p *position.Position) Value {
	units := 0
	for c := White; c <= Black; c++ {
		for pt := Knight; pt <= Queen; pt++ {
			units += p.PiecesBb(c, pt).PopCount() * pt.GamePhaseValue()
		}
	}
	if units > phaseUnitsMax {
		units = phaseUnitsMax
	}
	return Value(units * phaseMax / phaseUnitsMax)
}
