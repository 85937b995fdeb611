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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BillyLevin/krusty/internal/moveslice"
	"github.com/BillyLevin/krusty/internal/position"
	. "github.com/BillyLevin/krusty/internal/types"
)

func TestStartPositionMoves(t *testing.T) {
	mg := NewMoveGen()
	p := position.NewPosition()

	ml := moveslice.NewMoveSlice(MaxMoves)
	mg.GenerateAllMoves(p, ml)
	assert.Equal(t, 20, ml.Len())

	legal := mg.GenerateLegalMoves(p)
	assert.Equal(t, 20, legal.Len())

	captures := moveslice.NewMoveSlice(MaxMoves)
	mg.GenerateAllCaptures(p, captures)
	assert.Equal(t, 0, captures.Len())
}

func containsMove(ml *moveslice.MoveSlice, m Move) bool {
	for i := 0; i < ml.Len(); i++ {
		if ml.At(i).Equals(m) {
			return true
		}
	}
	return false
}

func TestCastlingGeneration(t *testing.T) {
	mg := NewMoveGen()

	p, err := position.NewPositionFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	ml := mg.GenerateLegalMoves(p)
	assert.True(t, containsMove(ml, NewMove(SqE1, SqG1, Castle, FlagNone)))
	assert.True(t, containsMove(ml, NewMove(SqE1, SqC1, Castle, FlagNone)))

	// a black rook on e4 attacks e1 - neither castle is legal
	p, err = position.NewPositionFen("r3k2r/8/8/8/4r3/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	ml = mg.GenerateLegalMoves(p)
	assert.False(t, containsMove(ml, NewMove(SqE1, SqG1, Castle, FlagNone)))
	assert.False(t, containsMove(ml, NewMove(SqE1, SqC1, Castle, FlagNone)))
}

func TestCastlingBlockedByPiece(t *testing.T) {
	mg := NewMoveGen()
	p, err := position.NewPositionFen("r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1")
	require.NoError(t, err)
	ml := mg.GenerateLegalMoves(p)
	assert.True(t, containsMove(ml, NewMove(SqE1, SqG1, Castle, FlagNone)))
	// b1 knight blocks the queen side
	assert.False(t, containsMove(ml, NewMove(SqE1, SqC1, Castle, FlagNone)))
}

func TestCastlingCrossedSquareAttacked(t *testing.T) {
	mg := NewMoveGen()
	// black rook on f4 attacks f1 which the king passes through
	p, err := position.NewPositionFen("4k3/8/8/8/5r2/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	ml := mg.GenerateLegalMoves(p)
	assert.False(t, containsMove(ml, NewMove(SqE1, SqG1, Castle, FlagNone)))
}

func TestPromotionGeneration(t *testing.T) {
	mg := NewMoveGen()
	p, err := position.NewPositionFen("4k3/6P1/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	ml := mg.GenerateLegalMoves(p)
	proms := 0
	for i := 0; i < ml.Len(); i++ {
		if ml.At(i).Kind() == Promotion {
			proms++
		}
	}
	assert.Equal(t, 4, proms)
	assert.True(t, containsMove(ml, NewMove(SqG7, SqG8, Promotion, FlagQueenProm)))
	assert.True(t, containsMove(ml, NewMove(SqG7, SqG8, Promotion, FlagRookProm)))
	assert.True(t, containsMove(ml, NewMove(SqG7, SqG8, Promotion, FlagBishopProm)))
	assert.True(t, containsMove(ml, NewMove(SqG7, SqG8, Promotion, FlagKnightProm)))
}

func TestEnPassantGeneration(t *testing.T) {
	mg := NewMoveGen()
	p, err := position.NewPositionFen("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3")
	require.NoError(t, err)

	ml := mg.GenerateLegalMoves(p)
	assert.True(t, containsMove(ml, NewMove(SqD4, SqE3, Capture, FlagEnPassant)))

	captures := moveslice.NewMoveSlice(MaxMoves)
	mg.GenerateAllCaptures(p, captures)
	assert.True(t, containsMove(captures, NewMove(SqD4, SqE3, Capture, FlagEnPassant)))
}

func TestDoublePushNeedsBothSquaresEmpty(t *testing.T) {
	mg := NewMoveGen()
	// knight on e3 blocks the single and double push of the e2 pawn
	p, err := position.NewPositionFen("4k3/8/8/8/8/4N3/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	ml := mg.GenerateLegalMoves(p)
	assert.False(t, containsMove(ml, NewMove(SqE2, SqE3, Quiet, FlagNone)))
	assert.False(t, containsMove(ml, NewMove(SqE2, SqE4, Quiet, FlagNone)))
}

func TestCapturesOnlyGeneration(t *testing.T) {
	mg := NewMoveGen()
	p, err := position.NewPositionFen("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	captures := moveslice.NewMoveSlice(MaxMoves)
	mg.GenerateAllCaptures(p, captures)
	require.True(t, captures.Len() > 0)
	for i := 0; i < captures.Len(); i++ {
		assert.True(t, p.IsCapturingMove(captures.At(i)),
			"%s is not a capture", captures.At(i).StringUci())
	}
}

func TestGetMoveFromUci(t *testing.T) {
	mg := NewMoveGen()
	p := position.NewPosition()

	m := mg.GetMoveFromUci(p, "e2e4")
	assert.Equal(t, NewMove(SqE2, SqE4, Quiet, FlagNone), m)

	assert.Equal(t, MoveNone, mg.GetMoveFromUci(p, "e2e5"))
	assert.Equal(t, MoveNone, mg.GetMoveFromUci(p, "e7e5")) // wrong side
	assert.Equal(t, MoveNone, mg.GetMoveFromUci(p, "xxxx"))
	assert.Equal(t, MoveNone, mg.GetMoveFromUci(p, ""))

	// promotions need the trailing piece character
	p2, err := position.NewPositionFen("4k3/6P1/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	m = mg.GetMoveFromUci(p2, "g7g8q")
	assert.Equal(t, NewMove(SqG7, SqG8, Promotion, FlagQueenProm), m)
	m = mg.GetMoveFromUci(p2, "g7g8n")
	assert.Equal(t, NewMove(SqG7, SqG8, Promotion, FlagKnightProm), m)
	assert.Equal(t, MoveNone, mg.GetMoveFromUci(p2, "g7g8"))
}

func TestHasLegalMove(t *testing.T) {
	mg := NewMoveGen()

	p := position.NewPosition()
	assert.True(t, mg.HasLegalMove(p))

	// mate position (back rank)
	p, err := position.NewPositionFen("R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	require.NoError(t, err)
	assert.False(t, mg.HasLegalMove(p))

	// stalemate position
	p, err = position.NewPositionFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	assert.False(t, mg.HasLegalMove(p))
}
