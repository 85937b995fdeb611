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
	"fmt"
	"strings"
)

// Move is a 32bit unsigned int type encoding a chess move
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-13 move kind (quiet, capture, castle, promotion)
//	bits 14-16 move flag (none, en passant, promotion piece)
//	bits 17-31 move ordering score (ignored for equality)
//
// The all zero value is the null move.
type Move uint32

// MoveNone is the null move (from=a1, to=a1, kind=Quiet).
// Legal moves never encode from==to.
const MoveNone Move = 0

// MoveKind is the 2-bit move kind
type MoveKind uint8

// Move kinds
const (
	Quiet     MoveKind = 0b00
	Capture   MoveKind = 0b01
	Castle    MoveKind = 0b10
	Promotion MoveKind = 0b11
)

// MoveFlag is the 3-bit move flag
type MoveFlag uint8

// Move flags
const (
	FlagNone       MoveFlag = 0b000
	FlagEnPassant  MoveFlag = 0b001
	FlagKnightProm MoveFlag = 0b010
	FlagBishopProm MoveFlag = 0b011
	FlagRookProm   MoveFlag = 0b100
	FlagQueenProm  MoveFlag = 0b101
)

const (
	toShift    uint = 6
	kindShift  uint = 12
	flagShift  uint = 14
	scoreShift uint = 17

	squareMask Move = 0b111111
	kindMask   Move = 0b11
	flagMask   Move = 0b111
	scoreMask  Move = 0xFFFE_0000
	moveMask   Move = ^scoreMask
)

// NewMove returns an encoded Move
func NewMove(from Square, to Square, kind MoveKind, flag MoveFlag) Move {
	return Move(from) |
		Move(to)<<toShift |
		Move(kind)<<kindShift |
		Move(flag)<<flagShift
}

// From returns the from-square of the move
func (m Move) From() Square {
	return Square(m & squareMask)
}

// To returns the to-square of the move
func (m Move) To() Square {
	return Square((m >> toShift) & squareMask)
}

// Kind returns the move kind
func (m Move) Kind() MoveKind {
	return MoveKind((m >> kindShift) & kindMask)
}

// Flag returns the move flag
func (m Move) Flag() MoveFlag {
	return MoveFlag((m >> flagShift) & flagMask)
}

// Score returns the 15-bit move ordering score
func (m Move) Score() uint32 {
	return uint32(m&scoreMask) >> scoreShift
}

// SetScore stores a 15-bit ordering score into the move
func (m *Move) SetScore(score uint32) {
	*m = (*m & moveMask) | (Move(score)<<scoreShift)&scoreMask
}

// MoveOf returns the move without its ordering score
func (m Move) MoveOf() Move {
	return m & moveMask
}

// Equals compares two moves ignoring their ordering scores
func (m Move) Equals(other Move) bool {
	return m&moveMask == other&moveMask
}

// IsNull reports whether the move is the null move
func (m Move) IsNull() bool {
	return m.MoveOf() == MoveNone
}

// PromotionType returns the piece type promoted to. Only meaningful
// when Kind() == Promotion.
func (m Move) PromotionType() PieceType {
	switch m.Flag() {
	case FlagKnightProm:
		return Knight
	case FlagBishopProm:
		return Bishop
	case FlagRookProm:
		return Rook
	case FlagQueenProm:
		return Queen
	default:
		return PtNone
	}
}

// PromotionFlag returns the move flag for a promotion to the
// given piece type
func PromotionFlag(pt PieceType) MoveFlag {
	switch pt {
	case Knight:
		return FlagKnightProm
	case Bishop:
		return FlagBishopProm
	case Rook:
		return FlagRookProm
	case Queen:
		return FlagQueenProm
	default:
		return FlagNone
	}
}

// StringUci returns the move in UCI long algebraic notation
// (e.g. e2e4, e7e8q). The null move is "0000".
func (m Move) StringUci() string {
	if m.IsNull() {
		return "0000"
	}
	var os strings.Builder
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.Kind() == Promotion {
		os.WriteString(m.PromotionType().Char())
	}
	return os.String()
}

// String returns a detailed string representation of the move
func (m Move) String() string {
	if m.IsNull() {
		return "Move: { NullMove }"
	}
	return fmt.Sprintf("Move: { %-5s kind:%d flag:%d score:%-5d }",
		m.StringUci(), m.Kind(), m.Flag(), m.Score())
}
