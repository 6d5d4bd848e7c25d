// Package table implements the solver's transposition table: a
// direct-mapped, fixed-capacity cache from a position's 49-bit canonical
// key to a signed 8-bit score.
//
// Capacity is an odd prime N with N * 2^32 > 2^49. Because N is coprime to
// 2^32, the Chinese Remainder Theorem guarantees that the pair
// (key mod N, key mod 2^32) determines key uniquely within the 49-bit
// domain. Storing only the 32-bit partial key alongside the score is
// therefore enough to detect a collision-free hit without ever storing
// the full key.
package table

// Recommended capacities. A slot takes 8 bytes (partial key, score and
// occupied flag, padded), so a prime near 8.4e6 gives roughly a 64 MiB
// table and a prime near 1.68e7 gives roughly 128 MiB, sized for the full
// solver.
const (
	SmallCapacity = 8388593  // light use
	LargeCapacity = 16777259 // full solver
)

type slot struct {
	partialKey uint32
	score      int8
	occupied   bool
}

// Table is a direct-mapped cache owned exclusively by one Solver.
type Table struct {
	slots []slot
}

// New allocates a table with capacity slots. capacity must be an odd
// prime greater than 2^49 / 2^32 for the CRT collision-free guarantee to
// hold; the caller is expected to pass one of the recommended capacities
// above (or another verified prime).
func New(capacity int) *Table {
	return &Table{slots: make([]slot, capacity)}
}

// Put stores (key, score), overwriting whatever was in key's slot. There
// is no probing: the newest entry always evicts the oldest, which is
// optimal for the search's most-recent-is-most-useful access pattern.
func (t *Table) Put(key uint64, score int8) {
	i := t.index(key)
	t.slots[i] = slot{
		partialKey: uint32(key),
		score:      score,
		occupied:   true,
	}
}

// Get returns the cached score for key, and whether it was present. A
// collision with a different key always misses: the stored partial key
// only matches key's own low 32 bits once key mod N has sent it to this
// slot, and the CRT identity means no other key in the 49-bit domain can
// produce the same (index, partial key) pair.
func (t *Table) Get(key uint64) (int8, bool) {
	s := t.slots[t.index(key)]
	if !s.occupied || s.partialKey != uint32(key) {
		return 0, false
	}
	return s.score, true
}

func (t *Table) index(key uint64) int {
	return int(key % uint64(len(t.slots)))
}
