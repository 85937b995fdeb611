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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/BillyLevin/krusty/internal/types"
)

func TestSetupStartPosition(t *testing.T) {
	p := NewPosition()
	require.NotNil(t, p)

	assert.Equal(t, StartFen, p.StringFen())
	assert.Equal(t, White, p.NextPlayer())
	assert.Equal(t, CastlingAny, p.CastlingRights())
	assert.Equal(t, SqNone, p.GetEnPassantSquare())
	assert.Equal(t, 0, p.HalfMoveClock())
	assert.Equal(t, SqE1, p.KingSquare(White))
	assert.Equal(t, SqE8, p.KingSquare(Black))
	assert.Equal(t, 32, p.OccupiedAll().PopCount())
	assert.Equal(t, HashFull(p), p.ZobristKey())
}

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		StartFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/3P4/8/PPP1PPPP/RNBQKBNR w KQkq e6 0 2",
		"4k3/6P1/8/8/8/8/8/4K3 w - - 0 1",
		"8/8/8/8/8/8/8/K6k w - - 33 100",
	}
	for _, fen := range fens {
		p, err := NewPositionFen(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, p.StringFen())
		assert.Equal(t, HashFull(p), p.ZobristKey(), fen)
	}
}

func TestFenParseErrors(t *testing.T) {
	invalid := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",            // missing fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",        // 7 ranks
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e5 0 1", // ep not on rank 3/6
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1",
		"8/8/8/8/8/8/8/8 w - - 0 1", // no kings
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 x",
	}
	for _, fen := range invalid {
		_, err := NewPositionFen(fen)
		assert.Error(t, err, "fen should be rejected: %q", fen)
	}
}

// checkInvariants verifies the mailbox/bitboard parity and the
// occupancy unions of a position
func checkInvariants(t *testing.T, p *Position) {
	t.Helper()
	var occWhite, occBlack Bitboard
	for sq := SqA1; sq <= SqH8; sq++ {
		pc := p.GetPiece(sq)
		if pc == PieceNone {
			assert.False(t, p.OccupiedAll().Has(sq), "square %s empty in mailbox but occupied", sq.String())
			continue
		}
		assert.True(t, p.PiecesBb(pc.ColorOf(), pc.TypeOf()).Has(sq),
			"mailbox %s has %s but bitboard does not", sq.String(), pc.String())
		if pc.ColorOf() == White {
			occWhite.PushSquare(sq)
		} else {
			occBlack.PushSquare(sq)
		}
	}
	assert.Equal(t, occWhite, p.OccupiedBb(White))
	assert.Equal(t, occBlack, p.OccupiedBb(Black))
	assert.Equal(t, BbZero, p.OccupiedBb(White)&p.OccupiedBb(Black))
	assert.Equal(t, 1, p.PiecesBb(White, King).PopCount())
	assert.Equal(t, 1, p.PiecesBb(Black, King).PopCount())
	assert.Equal(t, HashFull(p), p.ZobristKey())
}

func TestMakeUndoRoundTrip(t *testing.T) {
	p := NewPosition()
	before := *p
	beforeFen := p.StringFen()

	moves := []Move{
		NewMove(SqE2, SqE4, Quiet, FlagNone),
		NewMove(SqG1, SqF3, Quiet, FlagNone),
		NewMove(SqF1, SqC4, Quiet, FlagNone),
		NewMove(SqE1, SqG1, Castle, FlagNone),
	}
	responses := []Move{
		NewMove(SqE7, SqE5, Quiet, FlagNone),
		NewMove(SqB8, SqC6, Quiet, FlagNone),
		NewMove(SqG8, SqF6, Quiet, FlagNone),
		NewMove(SqF6, SqE4, Capture, FlagNone),
	}

	for i := range moves {
		require.True(t, p.MakeMove(moves[i]))
		checkInvariants(t, p)
		require.True(t, p.MakeMove(responses[i]))
		checkInvariants(t, p)
	}

	for i := 0; i < 2*len(moves); i++ {
		p.UndoMove()
	}

	assert.Equal(t, beforeFen, p.StringFen())
	assert.Equal(t, before.ZobristKey(), p.ZobristKey())
	assert.Equal(t, 0, p.HistoryLength())
	// byte identity of all board state
	assert.Equal(t, before.board, p.board)
	assert.Equal(t, before.piecesBb, p.piecesBb)
	assert.Equal(t, before.occupiedBb, p.occupiedBb)
	assert.Equal(t, before.kingSquare, p.kingSquare)
	assert.Equal(t, before.castlingRights, p.castlingRights)
	assert.Equal(t, before.enPassantSquare, p.enPassantSquare)
	assert.Equal(t, before.halfMoveClock, p.halfMoveClock)
}

func TestEnPassantCapture(t *testing.T) {
	p, err := NewPositionFen("rnbqkbnr/pppp1ppp/8/4p3/3P4/8/PPP1PPPP/RNBQKBNR w KQkq e6 0 2")
	require.NoError(t, err)

	// d4 captures e5 (a normal capture, not en passant)
	require.True(t, p.MakeMove(NewMove(SqD4, SqE5, Capture, FlagNone)))
	assert.Equal(t, WhitePawn, p.GetPiece(SqE5))
	assert.Equal(t, PieceNone, p.GetPiece(SqD4))
	assert.Equal(t, SqNone, p.GetEnPassantSquare())
	assert.Equal(t, Black, p.NextPlayer())
	checkInvariants(t, p)
}

func TestEnPassantOnlySetWhenCapturable(t *testing.T) {
	// black pawn on d4 can capture e3 after e2e4
	p, err := NewPositionFen("rnbqkbnr/ppp1pppp/8/8/3p4/8/PPPPPPPP/RNBQKBNR w KQkq - 0 3")
	require.NoError(t, err)
	require.True(t, p.MakeMove(NewMove(SqE2, SqE4, Quiet, FlagNone)))
	assert.Equal(t, SqE3, p.GetEnPassantSquare())
	checkInvariants(t, p)
	p.UndoMove()

	// no enemy pawn can capture on a3 - the ep square stays unset
	require.True(t, p.MakeMove(NewMove(SqA2, SqA4, Quiet, FlagNone)))
	assert.Equal(t, SqNone, p.GetEnPassantSquare())
	checkInvariants(t, p)
}

func TestEnPassantMakeUndo(t *testing.T) {
	p, err := NewPositionFen("rnbqkbnr/ppp1pppp/8/8/3p4/8/PPPPPPPP/RNBQKBNR w KQkq - 0 3")
	require.NoError(t, err)
	require.True(t, p.MakeMove(NewMove(SqE2, SqE4, Quiet, FlagNone)))
	hashBefore := p.ZobristKey()

	require.True(t, p.MakeMove(NewMove(SqD4, SqE3, Capture, FlagEnPassant)))
	assert.Equal(t, BlackPawn, p.GetPiece(SqE3))
	assert.Equal(t, PieceNone, p.GetPiece(SqE4)) // captured pawn removed
	assert.Equal(t, PieceNone, p.GetPiece(SqD4))
	checkInvariants(t, p)

	p.UndoMove()
	assert.Equal(t, hashBefore, p.ZobristKey())
	assert.Equal(t, WhitePawn, p.GetPiece(SqE4))
	assert.Equal(t, BlackPawn, p.GetPiece(SqD4))
	checkInvariants(t, p)
}

func TestPromotion(t *testing.T) {
	p, err := NewPositionFen("4k3/6P1/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	require.True(t, p.MakeMove(NewMove(SqG7, SqG8, Promotion, FlagQueenProm)))
	assert.Equal(t, WhiteQueen, p.GetPiece(SqG8))
	assert.Equal(t, PieceNone, p.GetPiece(SqG7))
	assert.Equal(t, 0, p.HalfMoveClock())
	checkInvariants(t, p)

	p.UndoMove()
	assert.Equal(t, WhitePawn, p.GetPiece(SqG7))
	assert.Equal(t, PieceNone, p.GetPiece(SqG8))
	checkInvariants(t, p)
}

func TestPromotionWithCapture(t *testing.T) {
	p, err := NewPositionFen("5r1k/6P1/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	require.True(t, p.MakeMove(NewMove(SqG7, SqF8, Promotion, FlagKnightProm)))
	assert.Equal(t, WhiteKnight, p.GetPiece(SqF8))
	checkInvariants(t, p)

	p.UndoMove()
	assert.Equal(t, BlackRook, p.GetPiece(SqF8))
	assert.Equal(t, WhitePawn, p.GetPiece(SqG7))
	checkInvariants(t, p)
}

func TestCastlingMakeUndo(t *testing.T) {
	p, err := NewPositionFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	// white king side
	require.True(t, p.MakeMove(NewMove(SqE1, SqG1, Castle, FlagNone)))
	assert.Equal(t, WhiteKing, p.GetPiece(SqG1))
	assert.Equal(t, WhiteRook, p.GetPiece(SqF1))
	assert.Equal(t, PieceNone, p.GetPiece(SqH1))
	assert.False(t, p.CastlingRights().Has(CastlingWhiteOO))
	assert.False(t, p.CastlingRights().Has(CastlingWhiteOOO))
	assert.True(t, p.CastlingRights().Has(CastlingBlackOO))
	checkInvariants(t, p)

	// black queen side
	require.True(t, p.MakeMove(NewMove(SqE8, SqC8, Castle, FlagNone)))
	assert.Equal(t, BlackKing, p.GetPiece(SqC8))
	assert.Equal(t, BlackRook, p.GetPiece(SqD8))
	assert.Equal(t, CastlingNone, p.CastlingRights())
	checkInvariants(t, p)

	p.UndoMove()
	p.UndoMove()
	assert.Equal(t, CastlingAny, p.CastlingRights())
	assert.Equal(t, WhiteKing, p.GetPiece(SqE1))
	assert.Equal(t, WhiteRook, p.GetPiece(SqH1))
	checkInvariants(t, p)
}

func TestRookMoveLosesCastlingRight(t *testing.T) {
	p, err := NewPositionFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	require.True(t, p.MakeMove(NewMove(SqH1, SqH8, Capture, FlagNone)))
	// rook move loses white king side, rook capture loses black king side
	assert.False(t, p.CastlingRights().Has(CastlingWhiteOO))
	assert.True(t, p.CastlingRights().Has(CastlingWhiteOOO))
	assert.False(t, p.CastlingRights().Has(CastlingBlackOO))
	assert.True(t, p.CastlingRights().Has(CastlingBlackOOO))
	checkInvariants(t, p)
}

func TestIllegalMoveRejected(t *testing.T) {
	// white king on e1 is in check by the rook on e8 after a quiet move
	p, err := NewPositionFen("4r2k/8/8/8/8/8/4B3/4K3 w - - 0 1")
	require.NoError(t, err)

	// moving the pinned bishop exposes the king
	legal := p.MakeMove(NewMove(SqE2, SqD3, Quiet, FlagNone))
	assert.False(t, legal)
	p.UndoMove()
	checkInvariants(t, p)

	// moving the king out of the pin line is legal
	legal = p.MakeMove(NewMove(SqE1, SqD1, Quiet, FlagNone))
	assert.True(t, legal)
	checkInvariants(t, p)
}

func TestNullMove(t *testing.T) {
	p, err := NewPositionFen("rnbqkbnr/pppp1ppp/8/4p3/3P4/8/PPP1PPPP/RNBQKBNR w KQkq e6 0 2")
	require.NoError(t, err)
	fenBefore := p.StringFen()
	hashBefore := p.ZobristKey()

	p.MakeNullMove()
	assert.Equal(t, Black, p.NextPlayer())
	assert.Equal(t, SqNone, p.GetEnPassantSquare())
	assert.NotEqual(t, hashBefore, p.ZobristKey())
	assert.Equal(t, HashFull(p), p.ZobristKey())

	p.UndoNullMove()
	assert.Equal(t, fenBefore, p.StringFen())
	assert.Equal(t, hashBefore, p.ZobristKey())
}

func TestIsAttacked(t *testing.T) {
	p, err := NewPositionFen("r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	assert.True(t, p.IsAttacked(SqE1, Black))  // rook on e4
	assert.True(t, p.IsAttacked(SqA4, White))  // rook on a1
	assert.False(t, p.IsAttacked(SqB3, Black))
	assert.True(t, p.IsAttacked(SqD8, Black)) // own king adjacency
}

func TestCheckRepetitions(t *testing.T) {
	p := NewPosition()
	shuffle := []Move{
		NewMove(SqG1, SqF3, Quiet, FlagNone),
		NewMove(SqG8, SqF6, Quiet, FlagNone),
		NewMove(SqF3, SqG1, Quiet, FlagNone),
		NewMove(SqF6, SqG8, Quiet, FlagNone),
	}
	// play the knight shuffle twice - the start position then occurred
	// two times before
	for i := 0; i < 2; i++ {
		for _, m := range shuffle {
			require.True(t, p.MakeMove(m))
		}
	}
	assert.True(t, p.CheckRepetitions(2))

	// once is not enough for a threefold
	p.UndoMove()
	p.UndoMove()
	p.UndoMove()
	p.UndoMove()
	assert.False(t, p.CheckRepetitions(2))
}

func TestInsufficientMaterial(t *testing.T) {
	cases := []struct {
		fen  string
		draw bool
	}{
		{"8/8/8/8/8/8/8/K6k w - - 0 1", true},           // K vs K
		{"8/8/8/8/8/2B5/8/K6k w - - 0 1", true},         // K+B vs K
		{"8/8/8/8/8/2N5/8/K6k w - - 0 1", true},         // K+N vs K
		{"8/8/5b2/8/8/2B5/8/K6k w - - 0 1", true},       // same colored bishops
		{"8/8/4b3/8/8/2B5/8/K6k w - - 0 1", false},      // opposite colored bishops
		{"8/8/8/8/8/2R5/8/K6k w - - 0 1", false},        // rook mates
		{"8/8/8/8/8/2P5/8/K6k w - - 0 1", false},        // pawn promotes
		{"8/8/5n2/8/8/2N5/8/K6k w - - 0 1", false},      // two knights (helpmate possible)
	}
	for _, c := range cases {
		p, err := NewPositionFen(c.fen)
		require.NoError(t, err)
		assert.Equal(t, c.draw, p.HasInsufficientMaterial(), c.fen)
	}
}

func TestZobristIncrementalConsistency(t *testing.T) {
	p, err := NewPositionFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	moves := []Move{
		NewMove(SqE2, SqA6, Capture, FlagNone),
		NewMove(SqB4, SqC3, Capture, FlagNone),
		NewMove(SqE5, SqG6, Capture, FlagNone),
		NewMove(SqH3, SqG2, Capture, FlagNone),
	}
	for _, m := range moves {
		require.True(t, p.MakeMove(m))
		assert.Equal(t, HashFull(p), p.ZobristKey(), "after %s", m.StringUci())
	}
	for range moves {
		p.UndoMove()
		assert.Equal(t, HashFull(p), p.ZobristKey())
	}
}

func TestHashDiffersByEnPassantFile(t *testing.T) {
	// the ep square is part of the hash by file
	p1, err := NewPositionFen("rnbqkbnr/pppp1ppp/8/4p3/3P4/8/PPP1PPPP/RNBQKBNR w KQkq e6 0 2")
	require.NoError(t, err)
	p2, err := NewPositionFen("rnbqkbnr/pppp1ppp/8/4p3/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 0 2")
	require.NoError(t, err)
	assert.NotEqual(t, p1.ZobristKey(), p2.ZobristKey())
}
