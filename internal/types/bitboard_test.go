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

func TestBitboardBasics(t *testing.T) {
	b := BbZero
	b.PushSquare(SqE4)
	b.PushSquare(SqA1)
	assert.True(t, b.Has(SqE4))
	assert.True(t, b.Has(SqA1))
	assert.False(t, b.Has(SqH8))
	assert.Equal(t, 2, b.PopCount())

	b.PopSquare(SqE4)
	assert.False(t, b.Has(SqE4))
	assert.Equal(t, 1, b.PopCount())
}

func TestBitboardLsb(t *testing.T) {
	b := SqE4.Bb() | SqH8.Bb()
	assert.Equal(t, SqE4, b.Lsb())
	assert.Equal(t, SqE4, b.PopLsb())
	assert.Equal(t, SqH8, b.PopLsb())
	assert.Equal(t, SqNone, b.PopLsb())
	assert.Equal(t, BbZero, b)
}

func TestBitboardShifts(t *testing.T) {
	e4 := SqE4.Bb()
	assert.Equal(t, SqE5.Bb(), e4.NorthOne())
	assert.Equal(t, SqE3.Bb(), e4.SouthOne())
	assert.Equal(t, SqF4.Bb(), e4.EastOne())
	assert.Equal(t, SqD4.Bb(), e4.WestOne())

	// no wrap arounds
	assert.Equal(t, BbZero, SqH4.Bb().EastOne())
	assert.Equal(t, BbZero, SqA4.Bb().WestOne())
	assert.Equal(t, BbZero, SqE8.Bb().NorthOne())
	assert.Equal(t, BbZero, SqE1.Bb().SouthOne())
}

func TestRankFileBb(t *testing.T) {
	assert.Equal(t, 8, FileA.Bb().PopCount())
	assert.Equal(t, 8, Rank4.Bb().PopCount())
	assert.True(t, FileE.Bb().Has(SqE4))
	assert.True(t, Rank4.Bb().Has(SqE4))
	assert.False(t, Rank4.Bb().Has(SqE5))
}
