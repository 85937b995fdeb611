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

import "fmt"

// Static attack and push tables for the non sliding pieces.
// All tables are built once at package init and never mutated.
var (
	pawnPushes  [ColorLength][SqLength]Bitboard
	pawnAttacks [ColorLength][SqLength]Bitboard

	knightAttacks [SqLength]Bitboard
	kingAttacks   [SqLength]Bitboard
)

func initAttacks() {
	for sq := SqA1; sq < SqNone; sq++ {
		b := BbOne << sq

		pawnPushes[White][sq] = b << 8
		pawnPushes[Black][sq] = b >> 8

		pawnAttacks[White][sq] = (b<<9)&NotFileA_Bb | (b<<7)&NotFileH_Bb
		pawnAttacks[Black][sq] = (b>>7)&NotFileA_Bb | (b>>9)&NotFileH_Bb

		knightAttacks[sq] = (b<<17)&NotFileA_Bb |
			(b<<15)&NotFileH_Bb |
			(b<<10)&NotFileAB_Bb |
			(b<<6)&NotFileGH_Bb |
			(b>>15)&NotFileA_Bb |
			(b>>17)&NotFileH_Bb |
			(b>>6)&NotFileAB_Bb |
			(b>>10)&NotFileGH_Bb

		// "parallel prefix" method
		// https://www.chessprogramming.org/King_Pattern#by_Calculation
		k := b
		attacks := k.EastOne() | k.WestOne()
		k |= attacks
		attacks |= k.NorthOne() | k.SouthOne()
		kingAttacks[sq] = attacks
	}
}

// GetPawnPushes returns the single push target bitboard of a pawn
// of the given color on the given square
func GetPawnPushes(c Color, sq Square) Bitboard {
	return pawnPushes[c][sq]
}

// GetPawnAttacks returns the diagonal attack bitboard of a pawn
// of the given color on the given square
func GetPawnAttacks(c Color, sq Square) Bitboard {
	return pawnAttacks[c][sq]
}

// GetAttacksBb returns a bitboard with all squares attacked by a piece
// of the given type (not pawn) placed on sq. For sliding pieces this
// uses the pre computed magic bitboard attack tables. For knight and
// king the occupied bitboard is ignored.
func GetAttacksBb(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Knight:
		return knightAttacks[sq]
	case King:
		return kingAttacks[sq]
	case Bishop:
		return bishopMagics[sq].attacksBb(occupied)
	case Rook:
		return rookMagics[sq].attacksBb(occupied)
	case Queen:
		return rookMagics[sq].attacksBb(occupied) | bishopMagics[sq].attacksBb(occupied)
	default:
		panic(fmt.Sprintf("GetAttacksBb called with unsupported piece type %d", pt))
	}
}
