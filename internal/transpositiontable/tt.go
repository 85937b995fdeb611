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

// Package transpositiontable implements a fixed size, always-replace
// transposition table keyed by zobrist hash with generic entry
// payloads. The table is not thread safe - the engine search is
// single threaded and owns it exclusively.
package transpositiontable

import (
	"reflect"

	. "github.com/BillyLevin/krusty/internal/types"
)

// TableEntry is the constraint for the payloads stored in a
// transposition table. Each entry carries its own full hash for
// collision detection.
type TableEntry interface {
	Hash() Key
}

// TtTable is a fixed size open address table. Entries are addressed
// by hash modulo size and new entries always overwrite.
type TtTable[E TableEntry] struct {
	data       []E
	size       uint64
	sizeInByte uint64
}

// New creates a transposition table with the given maximum memory
// usage in megabytes. The entry count is sizeInMB*2^20 divided by the
// entry size. The table is sized at construction and never resized
// during operation.
func New[E TableEntry](sizeInMB int) *TtTable[E] {
	var zero E
	entrySize := uint64(reflect.TypeOf(zero).Size())
	size := uint64(sizeInMB) * MB / entrySize
	return &TtTable[E]{
		data:       make([]E, size),
		size:       size,
		sizeInByte: size * entrySize,
	}
}

// Store puts an entry into the table overwriting whatever occupies
// its slot (always-replace policy)
func (tt *TtTable[E]) Store(e E) {
	tt.data[tt.index(e.Hash())] = e
}

// Probe returns a pointer to the slot for the given hash. The caller
// has to verify the stored hash against the probe hash - the slot may
// hold a different position or a zero entry.
func (tt *TtTable[E]) Probe(hash Key) *E {
	return &tt.data[tt.index(hash)]
}

// Clear resets all entries
func (tt *TtTable[E]) Clear() {
	tt.data = make([]E, tt.size)
}

// Len returns the capacity of the table in entries
func (tt *TtTable[E]) Len() uint64 {
	return tt.size
}

// SizeInByte returns the actual memory usage of the table
func (tt *TtTable[E]) SizeInByte() uint64 {
	return tt.sizeInByte
}

func (tt *TtTable[E]) index(hash Key) uint64 {
	return uint64(hash) % tt.size
}
