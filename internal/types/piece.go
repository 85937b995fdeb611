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

// Piece combines color and piece type into one value.
// Encoding is 6*color + type so that a piece can directly address
// its zobrist key block.
type Piece int8

//noinspection GoVarAndConstTypeMayBeOmitted
const (
	WhitePawn   Piece = 0
	WhiteKnight Piece = 1
	WhiteBishop Piece = 2
	WhiteRook   Piece = 3
	WhiteQueen  Piece = 4
	WhiteKing   Piece = 5
	BlackPawn   Piece = 6
	BlackKnight Piece = 7
	BlackBishop Piece = 8
	BlackRook   Piece = 9
	BlackQueen  Piece = 10
	BlackKing   Piece = 11
	PieceNone   Piece = 12
	PieceLength int   = 12
)

// MakePiece creates the piece given by color and piece type
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(int8(c)*6 + int8(pt))
}

// ColorOf returns the color of the given piece
func (p Piece) ColorOf() Color {
	return Color(p / 6)
}

// TypeOf returns the piece type of the given piece
func (p Piece) TypeOf() PieceType {
	if p == PieceNone {
		return PtNone
	}
	return PieceType(p % 6)
}

// ValueOf returns the material value of the piece in centipawns
func (p Piece) ValueOf() Value {
	return p.TypeOf().ValueOf()
}

var pieceToChar = string("PNBRQKpnbrqk-")

// Char returns the FEN character of the piece
func (p Piece) Char() string {
	return string(pieceToChar[p])
}

// String is the same as Char
func (p Piece) String() string {
	return p.Char()
}

// PieceFromChar returns the Piece for the given FEN piece character
// or PieceNone if the character is not a piece
func PieceFromChar(c byte) Piece {
	for p := WhitePawn; p <= BlackKing; p++ {
		if pieceToChar[p] == c {
			return p
		}
	}
	return PieceNone
}
