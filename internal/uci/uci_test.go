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

package uci

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BillyLevin/krusty/internal/position"
	. "github.com/BillyLevin/krusty/internal/types"
)

func TestUciCommand(t *testing.T) {
	u := NewUciHandler()
	response := u.Command("uci")
	assert.Contains(t, response, "id name Krusty")
	assert.Contains(t, response, "id author")
	assert.Contains(t, response, "uciok")
}

func TestIsReadyCommand(t *testing.T) {
	u := NewUciHandler()
	response := u.Command("isready")
	assert.Contains(t, response, "readyok")
}

func TestPositionCommand(t *testing.T) {
	u := NewUciHandler()

	u.Command("position startpos")
	assert.Equal(t, position.StartFen, u.myPosition.StringFen())

	u.Command("position startpos moves e2e4 e7e5")
	assert.Equal(t, WhitePawn, u.myPosition.GetPiece(SqE4))
	assert.Equal(t, BlackPawn, u.myPosition.GetPiece(SqE5))
	assert.Equal(t, White, u.myPosition.NextPlayer())

	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	u.Command("position fen " + fen)
	assert.Equal(t, fen, u.myPosition.StringFen())
}

func TestPositionCommandErrors(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos moves e2e4")
	before := u.myPosition.StringFen()

	// invalid fen leaves the position unchanged
	response := u.Command("position fen not a fen at all 0 1")
	assert.Contains(t, response, "info string")
	assert.Equal(t, before, u.myPosition.StringFen())

	// illegal move leaves the position unchanged
	response = u.Command("position startpos moves e2e5")
	assert.Contains(t, response, "info string")
	assert.Equal(t, before, u.myPosition.StringFen())
}

func TestGoDepthCommand(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos")
	u.Command("go depth 3")
	u.mySearch.WaitWhileSearching()

	result := u.mySearch.LastSearchResult()
	require.NotNil(t, result)
	assert.NotEqual(t, MoveNone, result.BestMove)
	assert.Equal(t, 3, result.SearchDepth)
}

func TestStopCommand(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos")
	u.Command("go infinite")
	assert.True(t, u.mySearch.IsSearching())
	u.Command("stop")
	assert.False(t, u.mySearch.IsSearching())
}

func TestSetOptionHash(t *testing.T) {
	u := NewUciHandler()
	u.Command("setoption name Hash value 16")

	response := u.Command("setoption name Hash value notanumber")
	assert.Contains(t, response, "info string")

	response = u.Command("setoption name Foo value 1")
	assert.Contains(t, response, "info string")
}

func TestUciNewGame(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos moves e2e4")
	u.Command("ucinewgame")
	assert.Equal(t, position.StartFen, u.myPosition.StringFen())
}

func TestGoMalformed(t *testing.T) {
	u := NewUciHandler()
	u.Command("position startpos")
	response := u.Command("go depth x")
	assert.True(t, strings.Contains(response, "info string"))
	assert.False(t, u.mySearch.IsSearching())
}
