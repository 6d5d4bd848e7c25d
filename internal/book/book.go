// Package book implements the opening book: a static, sorted array of
// (canonical key, score) pairs loaded from an embedded binary file,
// covering reachable positions below a stone-count cutoff.
package book

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// RecordSize is the on-disk record layout: 8 bytes little-endian key, 1
// byte signed score.
const RecordSize = 9

type entry struct {
	key   uint64
	score int8
}

// Book is an immutable, sorted lookup table loaded once from an embedded
// byte blob. It is safe for concurrent read-only use.
type Book struct {
	entries []entry
	cutoff  int
}

// Parse decodes a flat little-endian record stream (see RecordSize) into
// a Book usable for positions with fewer than cutoff stones. Records must
// already be sorted ascending by key; Parse does not re-sort, since the
// generator is required to emit them in order.
func Parse(data []byte, cutoff int) (*Book, error) {
	if len(data)%RecordSize != 0 {
		return nil, fmt.Errorf("book: %d bytes is not a multiple of the %d-byte record size", len(data), RecordSize)
	}
	n := len(data) / RecordSize
	entries := make([]entry, n)
	var prevKey uint64
	for i := 0; i < n; i++ {
		rec := data[i*RecordSize : (i+1)*RecordSize]
		key := binary.LittleEndian.Uint64(rec[:8])
		score := int8(rec[8])
		if i > 0 && key < prevKey {
			return nil, fmt.Errorf("book: record %d out of order (key %d follows %d)", i, key, prevKey)
		}
		entries[i] = entry{key: key, score: score}
		prevKey = key
	}
	return &Book{entries: entries, cutoff: cutoff}, nil
}

// Cutoff returns the stone count below which lookups are expected to hit
// in a fully-populated book.
func (b *Book) Cutoff() int {
	return b.cutoff
}

// Lookup binary-searches for key and reports whether it was found. A
// fully populated book is guaranteed to hit for every key corresponding
// to a reachable position with fewer than Cutoff() stones; a partial book
// (see internal/book/testdata) may legitimately miss, in which case
// callers should fall back to a full search.
func (b *Book) Lookup(key uint64) (int8, bool) {
	i := sort.Search(len(b.entries), func(i int) bool {
		return b.entries[i].key >= key
	})
	if i < len(b.entries) && b.entries[i].key == key {
		return b.entries[i].score, true
	}
	return 0, false
}

// Len returns the number of entries in the book.
func (b *Book) Len() int {
	return len(b.entries)
}
