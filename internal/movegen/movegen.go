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

// Package movegen contains functionality to create moves on a chess
// position. It generates pseudo legal moves (moves which may leave the
// own king in check - legality is verified during make/unmake), a
// capture only variant for the quiescence search and helpers to
// resolve UCI move strings against the current position.
package movegen

import (
	"github.com/BillyLevin/krusty/internal/moveslice"
	"github.com/BillyLevin/krusty/internal/position"
	. "github.com/BillyLevin/krusty/internal/types"
)

// Movegen holds the reusable move list storage of a move generator
// instance. Create with NewMoveGen().
type Movegen struct {
	pseudoLegalMoves *moveslice.MoveSlice
	legalMoves       *moveslice.MoveSlice
}

// NewMoveGen creates a new instance of a move generator
func NewMoveGen() *Movegen {
	return &Movegen{
		pseudoLegalMoves: moveslice.NewMoveSlice(MaxMoves),
		legalMoves:       moveslice.NewMoveSlice(MaxMoves),
	}
}

// GenerateAllMoves generates all pseudo legal moves for the next
// player into the given move list. The list is cleared first.
func (mg *Movegen) GenerateAllMoves(p *position.Position, ml *moveslice.MoveSlice) {
	ml.Clear()
	mg.generatePawnMoves(p, ml, false)
	mg.generateKingMoves(p, ml, false)
	mg.generateCastling(p, ml)
	mg.generatePieceMoves(p, Knight, ml, false)
	mg.generatePieceMoves(p, Bishop, ml, false)
	mg.generatePieceMoves(p, Rook, ml, false)
	mg.generatePieceMoves(p, Queen, ml, false)
}

// GenerateAllCaptures generates the capture subset of the pseudo
// legal moves, used by the quiescence search
func (mg *Movegen) GenerateAllCaptures(p *position.Position, ml *moveslice.MoveSlice) {
	ml.Clear()
	mg.generatePawnMoves(p, ml, true)
	mg.generateKingMoves(p, ml, true)
	mg.generatePieceMoves(p, Knight, ml, true)
	mg.generatePieceMoves(p, Bishop, ml, true)
	mg.generatePieceMoves(p, Rook, ml, true)
	mg.generatePieceMoves(p, Queen, ml, true)
}

// GenerateLegalMoves generates all strictly legal moves for the next
// player. Uses make/unmake to filter out moves leaving the king in
// check. Not used inside the search (too slow) but handy for the
// protocol layers and tests.
func (mg *Movegen) GenerateLegalMoves(p *position.Position) *moveslice.MoveSlice {
	mg.legalMoves.Clear()
	mg.GenerateAllMoves(p, mg.pseudoLegalMoves)
	for i := 0; i < mg.pseudoLegalMoves.Len(); i++ {
		m := mg.pseudoLegalMoves.At(i)
		if p.MakeMove(m) {
			mg.legalMoves.PushBack(m)
		}
		p.UndoMove()
	}
	return mg.legalMoves
}

// HasLegalMove determines if the next player has at least one legal
// move (mate and stalemate detection)
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	mg.GenerateAllMoves(p, mg.pseudoLegalMoves)
	for i := 0; i < mg.pseudoLegalMoves.Len(); i++ {
		legal := p.MakeMove(mg.pseudoLegalMoves.At(i))
		p.UndoMove()
		if legal {
			return true
		}
	}
	return false
}

// GetMoveFromUci resolves a move string in UCI long algebraic
// notation (e2e4, e7e8q) to a legal move on the given position.
// Returns MoveNone when the string does not match a legal move.
func (mg *Movegen) GetMoveFromUci(p *position.Position, uciMove string) Move {
	if len(uciMove) < 4 || len(uciMove) > 5 {
		return MoveNone
	}
	from := MakeSquare(uciMove[0:2])
	to := MakeSquare(uciMove[2:4])
	promotion := PtNone
	if len(uciMove) == 5 {
		promotion = PieceTypeFromChar(uciMove[4])
		if promotion == PtNone || promotion == Pawn || promotion == King {
			return MoveNone
		}
	}
	if from == SqNone || to == SqNone {
		return MoveNone
	}
	legalMoves := mg.GenerateLegalMoves(p)
	for i := 0; i < legalMoves.Len(); i++ {
		m := legalMoves.At(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if m.Kind() == Promotion {
			if m.PromotionType() == promotion {
				return m
			}
			continue
		}
		if promotion == PtNone {
			return m
		}
	}
	return MoveNone
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

func (mg *Movegen) generatePawnMoves(p *position.Position, ml *moveslice.MoveSlice, capturesOnly bool) {
	us := p.NextPlayer()
	them := us.Flip()
	myPawns := p.PiecesBb(us, Pawn)
	occupied := p.OccupiedAll()
	empty := ^occupied
	promotionRank := us.PromotionRank()

	enPassant := BbZero
	if epSq := p.GetEnPassantSquare(); epSq != SqNone {
		enPassant = epSq.Bb()
	}
	enemy := p.OccupiedBb(them) | enPassant

	doubleRank := Rank4_Bb
	if us == Black {
		doubleRank = Rank5_Bb
	}

	for pawns := myPawns; pawns != BbZero; {
		fromSq := pawns.PopLsb()

		if !capturesOnly {
			singlePush := GetPawnPushes(us, fromSq) & empty
			if singlePush != BbZero {
				toSq := singlePush.Lsb()
				if toSq.RankOf() == promotionRank {
					pushAllPromotions(ml, fromSq, toSq)
				} else {
					ml.PushBack(NewMove(fromSq, toSq, Quiet, FlagNone))
				}
				// double push needs both squares empty and lands on
				// rank 4 (white) or rank 5 (black)
				var doublePush Bitboard
				if us == White {
					doublePush = singlePush.NorthOne() & doubleRank & empty
				} else {
					doublePush = singlePush.SouthOne() & doubleRank & empty
				}
				if doublePush != BbZero {
					ml.PushBack(NewMove(fromSq, doublePush.Lsb(), Quiet, FlagNone))
				}
			}
		}

		for attacks := GetPawnAttacks(us, fromSq) & enemy; attacks != BbZero; {
			toSq := attacks.PopLsb()
			if toSq.RankOf() == promotionRank {
				pushAllPromotions(ml, fromSq, toSq)
			} else if toSq == p.GetEnPassantSquare() {
				ml.PushBack(NewMove(fromSq, toSq, Capture, FlagEnPassant))
			} else {
				ml.PushBack(NewMove(fromSq, toSq, Capture, FlagNone))
			}
		}
	}
}

// pushAllPromotions emits the four promotion moves for a pawn landing
// on the last rank. Promotion captures keep the Promotion kind; the
// capture is resolved during make by the occupied target square.
func pushAllPromotions(ml *moveslice.MoveSlice, from Square, to Square) {
	ml.PushBack(NewMove(from, to, Promotion, FlagQueenProm))
	ml.PushBack(NewMove(from, to, Promotion, FlagRookProm))
	ml.PushBack(NewMove(from, to, Promotion, FlagBishopProm))
	ml.PushBack(NewMove(from, to, Promotion, FlagKnightProm))
}

func (mg *Movegen) generateKingMoves(p *position.Position, ml *moveslice.MoveSlice, capturesOnly bool) {
	us := p.NextPlayer()
	fromSq := p.KingSquare(us)
	enemy := p.OccupiedBb(us.Flip())

	// legality of moving into check is deferred to make/unmake
	for moves := GetAttacksBb(King, fromSq, BbZero) &^ p.OccupiedBb(us); moves != BbZero; {
		toSq := moves.PopLsb()
		if enemy.Has(toSq) {
			ml.PushBack(NewMove(fromSq, toSq, Capture, FlagNone))
		} else if !capturesOnly {
			ml.PushBack(NewMove(fromSq, toSq, Quiet, FlagNone))
		}
	}
}

func (mg *Movegen) generatePieceMoves(p *position.Position, pt PieceType, ml *moveslice.MoveSlice, capturesOnly bool) {
	us := p.NextPlayer()
	enemy := p.OccupiedBb(us.Flip())
	occupied := p.OccupiedAll()

	for pieces := p.PiecesBb(us, pt); pieces != BbZero; {
		fromSq := pieces.PopLsb()
		for moves := GetAttacksBb(pt, fromSq, occupied) &^ p.OccupiedBb(us); moves != BbZero; {
			toSq := moves.PopLsb()
			if enemy.Has(toSq) {
				ml.PushBack(NewMove(fromSq, toSq, Capture, FlagNone))
			} else if !capturesOnly {
				ml.PushBack(NewMove(fromSq, toSq, Quiet, FlagNone))
			}
		}
	}
}

// generateCastling emits the castle moves for all rights still held.
// The intermediate squares must be empty and the king's square and the
// square it passes through must not be attacked. The destination
// square is intentionally not checked here - that is handled uniformly
// by the post-make self check rejection.
func (mg *Movegen) generateCastling(p *position.Position, ml *moveslice.MoveSlice) {
	cr := p.CastlingRights()
	if cr == CastlingNone {
		return
	}
	occupied := p.OccupiedAll()
	us := p.NextPlayer()
	them := us.Flip()

	if us == White {
		if cr.Has(CastlingWhiteOO) &&
			!occupied.Has(SqF1) && !occupied.Has(SqG1) &&
			!p.IsAttacked(SqE1, them) && !p.IsAttacked(SqF1, them) {
			ml.PushBack(NewMove(SqE1, SqG1, Castle, FlagNone))
		}
		if cr.Has(CastlingWhiteOOO) &&
			!occupied.Has(SqD1) && !occupied.Has(SqC1) && !occupied.Has(SqB1) &&
			!p.IsAttacked(SqE1, them) && !p.IsAttacked(SqD1, them) {
			ml.PushBack(NewMove(SqE1, SqC1, Castle, FlagNone))
		}
	} else {
		if cr.Has(CastlingBlackOO) &&
			!occupied.Has(SqF8) && !occupied.Has(SqG8) &&
			!p.IsAttacked(SqE8, them) && !p.IsAttacked(SqF8, them) {
			ml.PushBack(NewMove(SqE8, SqG8, Castle, FlagNone))
		}
		if cr.Has(CastlingBlackOOO) &&
			!occupied.Has(SqD8) && !occupied.Has(SqC8) && !occupied.Has(SqB8) &&
			!p.IsAttacked(SqE8, them) && !p.IsAttacked(SqD8, them) {
			ml.PushBack(NewMove(SqE8, SqC8, Castle, FlagNone))
		}
	}
}
