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
	"strconv"
	"strings"
)

// Value represents a search or evaluation score in centipawns
type Value int32

// Constants for values
const (
	ValueZero Value = 0
	ValueDraw Value = 0

	// ValueInfinity is the score bound used by the alpha beta search
	ValueInfinity Value = 100_000

	// ValueNA marks a not yet computed value
	ValueNA Value = -ValueInfinity - 1

	// CheckmateThreshold is the score magnitude above which a score
	// encodes a forced mate in (ValueInfinity - |score|) plies.
	// It is the sum of all material that could possibly be on the board.
	CheckmateThreshold Value = 24_800
)

// IsCheckmateValue returns true if the value is above the checkmate
// threshold and therefore encodes a mate distance
func (v Value) IsCheckmateValue() bool {
	if v < 0 {
		v = -v
	}
	return v > CheckmateThreshold && v <= ValueInfinity
}

// MateIn returns the number of plies to mate encoded in the value.
// Only meaningful when IsCheckmateValue() is true.
func (v Value) MateIn() int {
	if v < 0 {
		v = -v
	}
	return int(ValueInfinity - v)
}

// String returns the value in UCI score notation, e.g.
// "cp 21" or "mate 3" / "mate -3"
func (v Value) String() string {
	var os strings.Builder
	if v.IsCheckmateValue() {
		os.WriteString("mate ")
		if v < ValueZero {
			os.WriteString("-")
		}
		// full moves, rounded up
		os.WriteString(strconv.Itoa((v.MateIn() + 1) / 2))
	} else {
		os.WriteString("cp ")
		os.WriteString(strconv.Itoa(int(v)))
	}
	return os.String()
}
