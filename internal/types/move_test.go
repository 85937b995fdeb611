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

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveEncoding(t *testing.T) {
	m := NewMove(SqE2, SqE4, Quiet, FlagNone)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.Equal(t, Quiet, m.Kind())
	assert.Equal(t, FlagNone, m.Flag())
	assert.Equal(t, uint32(0), m.Score())

	m = NewMove(SqE7, SqE8, Promotion, FlagQueenProm)
	assert.Equal(t, Promotion, m.Kind())
	assert.Equal(t, Queen, m.PromotionType())

	m = NewMove(SqD4, SqE5, Capture, FlagEnPassant)
	assert.Equal(t, Capture, m.Kind())
	assert.Equal(t, FlagEnPassant, m.Flag())
}

func TestMoveScore(t *testing.T) {
	m := NewMove(SqE2, SqE4, Quiet, FlagNone)
	m.SetScore(12345)
	assert.Equal(t, uint32(12345), m.Score())
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())

	// score is capped at 15 bits
	m.SetScore(32767)
	assert.Equal(t, uint32(32767), m.Score())

	// equality ignores the score
	other := NewMove(SqE2, SqE4, Quiet, FlagNone)
	assert.True(t, m.Equals(other))
	assert.Equal(t, other, m.MoveOf())
}

func TestNullMove(t *testing.T) {
	assert.True(t, MoveNone.IsNull())
	assert.Equal(t, "0000", MoveNone.StringUci())
	m := NewMove(SqE2, SqE4, Quiet, FlagNone)
	assert.False(t, m.IsNull())
}

func TestMoveStringUci(t *testing.T) {
	assert.Equal(t, "e2e4", NewMove(SqE2, SqE4, Quiet, FlagNone).StringUci())
	assert.Equal(t, "e7e8q", NewMove(SqE7, SqE8, Promotion, FlagQueenProm).StringUci())
	assert.Equal(t, "g7g8n", NewMove(SqG7, SqG8, Promotion, FlagKnightProm).StringUci())
	assert.Equal(t, "e1g1", NewMove(SqE1, SqG1, Castle, FlagNone).StringUci())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "cp 42", Value(42).String())
	assert.Equal(t, "cp -100", Value(-100).String())

	// mate in 3 plies from root
	mate := ValueInfinity - 3
	assert.True(t, mate.IsCheckmateValue())
	assert.Equal(t, 3, mate.MateIn())
	assert.Equal(t, "mate 2", mate.String())
	assert.Equal(t, "mate -2", (-mate).String())

	assert.False(t, Value(100).IsCheckmateValue())
	assert.False(t, CheckmateThreshold.IsCheckmateValue())
	assert.True(t, (CheckmateThreshold + 1).IsCheckmateValue())
}
