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

func TestSquareIndexing(t *testing.T) {
	assert.Equal(t, Square(0), SqA1)
	assert.Equal(t, Square(7), SqH1)
	assert.Equal(t, Square(56), SqA8)
	assert.Equal(t, Square(63), SqH8)

	assert.Equal(t, FileA, SqA2.FileOf())
	assert.Equal(t, Rank2, SqA2.RankOf())
	assert.Equal(t, FileH, SqH8.FileOf())
	assert.Equal(t, Rank8, SqH8.RankOf())
}

func TestSquareOf(t *testing.T) {
	assert.Equal(t, SqE4, SquareOf(FileE, Rank4))
	assert.Equal(t, SqA1, SquareOf(FileA, Rank1))
	assert.Equal(t, SqNone, SquareOf(FileNone, Rank1))
}

func TestMakeSquare(t *testing.T) {
	assert.Equal(t, SqE3, MakeSquare("e3"))
	assert.Equal(t, SqA8, MakeSquare("a8"))
	assert.Equal(t, SqNone, MakeSquare("i1"))
	assert.Equal(t, SqNone, MakeSquare("a9"))
	assert.Equal(t, SqNone, MakeSquare("a"))
	assert.Equal(t, SqNone, MakeSquare(""))
}

func TestSquareTo(t *testing.T) {
	assert.Equal(t, SqE5, SqE4.To(North))
	assert.Equal(t, SqE3, SqE4.To(South))
	assert.Equal(t, SqF4, SqE4.To(East))
	assert.Equal(t, SqD4, SqE4.To(West))
	assert.Equal(t, SqNone, SqH4.To(East))
	assert.Equal(t, SqNone, SqA4.To(West))
	assert.Equal(t, SqNone, SqE8.To(North))
	assert.Equal(t, SqNone, SqE1.To(South))
	assert.Equal(t, SqNone, SqH8.To(Northeast))
	assert.Equal(t, SqNone, SqA1.To(Southwest))
}

func TestSquareString(t *testing.T) {
	assert.Equal(t, "e4", SqE4.String())
	assert.Equal(t, "a1", SqA1.String())
	assert.Equal(t, "h8", SqH8.String())
	assert.Equal(t, "-", SqNone.String())
}

func TestPiece(t *testing.T) {
	assert.Equal(t, WhiteQueen, MakePiece(White, Queen))
	assert.Equal(t, BlackPawn, MakePiece(Black, Pawn))
	assert.Equal(t, White, WhiteKing.ColorOf())
	assert.Equal(t, Black, BlackKnight.ColorOf())
	assert.Equal(t, Rook, BlackRook.TypeOf())
	assert.Equal(t, PtNone, PieceNone.TypeOf())
	assert.Equal(t, "Q", WhiteQueen.Char())
	assert.Equal(t, "q", BlackQueen.Char())
	assert.Equal(t, WhiteRook, PieceFromChar('R'))
	assert.Equal(t, BlackKing, PieceFromChar('k'))
	assert.Equal(t, PieceNone, PieceFromChar('x'))
}

func TestCastlingRights(t *testing.T) {
	cr := CastlingNone
	cr.Add(CastlingWhiteOO)
	cr.Add(CastlingBlackOOO)
	assert.True(t, cr.Has(CastlingWhiteOO))
	assert.False(t, cr.Has(CastlingWhiteOOO))
	assert.Equal(t, "Kq", cr.String())
	cr.Remove(CastlingWhiteOO)
	assert.False(t, cr.Has(CastlingWhiteOO))
	assert.Equal(t, "q", cr.String())
	assert.Equal(t, "-", CastlingNone.String())
}
