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

package transpositiontable

import (
	. "github.com/BillyLevin/krusty/internal/types"
)

// PerftEntry caches a perft node count for a position at a depth
type PerftEntry struct {
	hash      Key
	nodeCount uint64
	depth     int8
}

// NewPerftEntry creates a perft cache entry
func NewPerftEntry(hash Key, nodeCount uint64, depth int8) PerftEntry {
	return PerftEntry{hash: hash, nodeCount: nodeCount, depth: depth}
}

// Hash returns the entry's full hash
func (e PerftEntry) Hash() Key {
	return e.hash
}

// NodeCount returns the cached node count
func (e PerftEntry) NodeCount() uint64 {
	return e.nodeCount
}

// Depth returns the depth the node count was computed for
func (e PerftEntry) Depth() int8 {
	return e.depth
}

// EntryFlag marks which bound a stored search score represents
type EntryFlag uint8

// Entry flags
const (
	FlagExact EntryFlag = iota // score is a precise result
	FlagAlpha                  // score is an upper bound (failed low)
	FlagBeta                   // score is a lower bound (failed high)
)

// SearchEntry caches a search result for a position.
// Scores near mate are stored in a ply independent form so that mate
// scores remain "distance from root" after retrieval from a
// different ply.
type SearchEntry struct {
	hash     Key
	bestMove Move
	score    Value
	depth    int8
	flag     EntryFlag
}

// NewSearchEntry creates a search cache entry. A mate score is
// adjusted by the current ply before storing.
func NewSearchEntry(hash Key, depth int8, score Value, ply int, flag EntryFlag, bestMove Move) SearchEntry {
	if score > CheckmateThreshold {
		score += Value(ply)
	}
	if score < -CheckmateThreshold {
		score -= Value(ply)
	}
	return SearchEntry{
		hash:     hash,
		bestMove: bestMove,
		score:    score,
		depth:    depth,
		flag:     flag,
	}
}

// Hash returns the entry's full hash
func (e SearchEntry) Hash() Key {
	return e.hash
}

// Get checks the entry against the probing position and search
// window. It returns a usable score (and true) only when the hashes
// match, the stored depth is sufficient and the stored bound is
// compatible with [alpha, beta]. The stored best move is returned
// even when the score is unusable, to seed move ordering.
func (e SearchEntry) Get(hash Key, depth int8, ply int, alpha Value, beta Value) (Value, bool, Move) {
	if e.hash != hash {
		return ValueNA, false, MoveNone
	}
	bestMove := e.bestMove
	if e.depth < depth {
		return ValueNA, false, bestMove
	}

	// undo the mate distance adjustment with the probe-time ply
	score := e.score
	if score > CheckmateThreshold {
		score -= Value(ply)
	}
	if score < -CheckmateThreshold {
		score += Value(ply)
	}

	switch e.flag {
	case FlagExact:
		return score, true, bestMove
	case FlagAlpha:
		if score <= alpha {
			return alpha, true, bestMove
		}
	case FlagBeta:
		if score >= beta {
			return beta, true, bestMove
		}
	}
	return ValueNA, false, bestMove
}
