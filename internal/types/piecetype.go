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

// PieceType is a set of constants for the chess piece kinds.
// The ordering matches the zobrist key layout (6 kinds per color).
type PieceType int8

//noinspection GoVarAndConstTypeMayBeOmitted
const (
	Pawn     PieceType = 0
	Knight   PieceType = 1
	Bishop   PieceType = 2
	Rook     PieceType = 3
	Queen    PieceType = 4
	King     PieceType = 5
	PtNone   PieceType = 6
	PtLength PieceType = 6
)

// material values in centipawns. The king is deliberately worth 0 to
// keep MVV-LVA ordering well formed (king captures are never generated).
var pieceTypeValue = [PtNone + 1]Value{100, 300, 300, 500, 900, 0, 0}

// ValueOf returns the material value of the piece type in centipawns
func (pt PieceType) ValueOf() Value {
	return pieceTypeValue[pt]
}

// game phase contribution of each piece type (N=1 B=1 R=2 Q=4)
var gamePhaseValue = [PtNone + 1]int{0, 1, 1, 2, 4, 0, 0}

// GamePhaseValue returns the game phase units a piece of this
// type contributes while on the board
func (pt PieceType) GamePhaseValue() int {
	return gamePhaseValue[pt]
}

// IsValid checks if pt is a valid piece type
func (pt PieceType) IsValid() bool {
	return pt < PtNone
}

var pieceTypeToChar = string("pnbrqk-")

// Char returns a single lower case char for the piece type
func (pt PieceType) Char() string {
	return string(pieceTypeToChar[pt])
}

// PieceTypeFromChar returns the piece type for a lower case piece
// character (pnbrqk) or PtNone
func PieceTypeFromChar(c byte) PieceType {
	for pt := Pawn; pt <= King; pt++ {
		if pieceTypeToChar[pt] == c {
			return pt
		}
	}
	return PtNone
}
