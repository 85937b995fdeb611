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

package position

import (
	. "github.com/BillyLevin/krusty/internal/types"
)

// Zobrist key layout: 794 pseudo random 64-bit numbers.
//
//	0..767   12 piece types x 64 squares
//	768      side to move (xored in when black is to move)
//	769..784 one number per 4-bit castling rights combination
//	785..793 en passant files a..h plus a "no ep" slot
const (
	zobristSideOffset      = 768
	zobristCastleOffset    = 769
	zobristEnPassantOffset = 785

	zobristNumbersSize = 794
)

var zobristNumbers [zobristNumbersSize]Key

// epFileIndex maps a square to its en passant file slot. Only squares
// on rank 3 and rank 6 can be en passant squares; everything else
// (including SqNone) addresses the "no ep" slot. This encodes the FEN
// rule that only reachable en passant squares affect the hash.
var epFileIndex [SqLength + 1]int

func initZobrist() {
	r := newRandom(123)
	for i := 0; i < zobristNumbersSize; i++ {
		zobristNumbers[i] = Key(r.rand64())
	}
	for sq := SqA1; sq <= SqNone; sq++ {
		if sq.IsValid() && (sq.RankOf() == Rank3 || sq.RankOf() == Rank6) {
			epFileIndex[sq] = int(sq.FileOf())
		} else {
			epFileIndex[sq] = 8
		}
	}
}

// zobristPiece returns the key part for a piece on a square
func zobristPiece(p Piece, sq Square) Key {
	return zobristNumbers[int(p)*SqLength+int(sq)]
}

// zobristSide returns the side to move key part
func zobristSide() Key {
	return zobristNumbers[zobristSideOffset]
}

// zobristCastling returns the key part for a castling rights state
func zobristCastling(cr CastlingRights) Key {
	return zobristNumbers[zobristCastleOffset+int(cr)]
}

// zobristEnPassant returns the key part for the en passant square
// (SqNone addresses the "no ep" slot)
func zobristEnPassant(sq Square) Key {
	return zobristNumbers[zobristEnPassantOffset+epFileIndex[sq]]
}

// HashFull recomputes the full zobrist key of a position from scratch.
// The incrementally maintained key must always equal this value; tests
// use it to check that invariant.
func HashFull(p *Position) Key {
	var hash Key
	for sq := SqA1; sq <= SqH8; sq++ {
		if pc := p.board[sq]; pc != PieceNone {
			hash ^= zobristPiece(pc, sq)
		}
	}
	if p.nextPlayer == Black {
		hash ^= zobristSide()
	}
	hash ^= zobristCastling(p.castlingRights)
	hash ^= zobristEnPassant(p.enPassantSquare)
	return hash
}
