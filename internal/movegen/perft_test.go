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

	"github.com/BillyLevin/krusty/internal/position"
)

func TestPerftStartPosition(t *testing.T) {
	perft := NewPerft(32)
	expected := []uint64{1, 20, 400, 8_902, 197_281}
	for depth := 1; depth < len(expected); depth++ {
		assert.Equal(t, expected[depth], perft.StartPerft(position.StartFen, depth, false),
			"perft depth %d", depth)
	}
}

func TestPerftStartPositionDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	perft := NewPerft(64)
	assert.EqualValues(t, 4_865_609, perft.StartPerft(position.StartFen, 5, false))
}

// Kiwipete - the classic move generator stress position
const kiwipeteFen = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerftKiwipete(t *testing.T) {
	perft := NewPerft(32)
	expected := []uint64{1, 48, 2_039, 97_862}
	for depth := 1; depth < len(expected); depth++ {
		assert.Equal(t, expected[depth], perft.StartPerft(kiwipeteFen, depth, false),
			"perft depth %d", depth)
	}
}

func TestPerftKiwipeteDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep perft in short mode")
	}
	perft := NewPerft(64)
	assert.EqualValues(t, 4_085_603, perft.StartPerft(kiwipeteFen, 4, false))
}

// positions stressing en passant, promotions and castling edge cases
func TestPerftSpecialPositions(t *testing.T) {
	cases := []struct {
		fen      string
		depth    int
		expected uint64
	}{
		// en passant discovered check position
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43_238},
		// promotion heavy position
		{"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1", 4, 182_838},
		// castling rights interactions
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 3, 9_467},
	}
	perft := NewPerft(32)
	for _, c := range cases {
		assert.Equal(t, c.expected, perft.StartPerft(c.fen, c.depth, false),
			"fen %s depth %d", c.fen, c.depth)
	}
}

func TestPerftDeterminism(t *testing.T) {
	perft := NewPerft(16)
	first := perft.StartPerft(kiwipeteFen, 3, false)
	second := perft.StartPerft(kiwipeteFen, 3, false)
	assert.Equal(t, first, second)
}
