// Package bitboard implements the bit-parallel primitives that the rest of
// the solver is built on: a 7x6 Connect Four board packed into a pair of
// uint64 masks, one bit per cell plus a sentinel row on top of every
// column.
//
// Columns are indexed 0..6, rows 0..5 with row 0 at the bottom. Column c
// occupies bits [7*c, 7*c+6], and bit 7*c+6 is the sentinel: it must stay
// clear for a legal board and exists only so that horizontal and diagonal
// shifts can't wrap stones from one column into the next.
package bitboard

import "math/bits"

const (
	Width  = 7
	Height = 6

	// BoardSize is the number of real (non-sentinel) cells.
	BoardSize = Width * Height

	// colHeight is the number of bits reserved per column, including the
	// sentinel row.
	colHeight = Height + 1
)

// bottomMask is the mask of the bottom cell of every column.
var bottomMask = func() uint64 {
	var m uint64
	for c := 0; c < Width; c++ {
		m |= bottomMaskCol(c)
	}
	return m
}()

// PlayField masks out every sentinel bit, leaving only the 42 real cells.
var PlayField = bottomMask * ((uint64(1) << Height) - 1)

func bottomMaskCol(c int) uint64 {
	return uint64(1) << uint(c*colHeight)
}

func topMaskCol(c int) uint64 {
	return uint64(1) << uint(Height-1+c*colHeight)
}

// ColumnMask returns the mask of every playable cell in column c; the
// sentinel bit is not included.
func ColumnMask(c int) uint64 {
	return (uint64(1)<<Height - 1) << uint(c*colHeight)
}

// IsWin reports whether mask m, read as one player's stones, contains a
// four-in-a-row. m is typically a mover-complement mask.
func IsWin(m uint64) bool {
	for _, shift := range [4]uint{1, colHeight, Height, Height + 2} {
		y := m & (m >> shift)
		if y&(y>>(2*shift)) != 0 {
			return true
		}
	}
	return false
}

// Insert places a stone in column c of occupancy mask o and returns the
// resulting occupancy. The caller must ensure the column is not full.
func Insert(o uint64, c int) uint64 {
	return o | (o + bottomMaskCol(c))
}

// IsFull reports whether column c is full in occupancy mask o.
func IsFull(o uint64, c int) bool {
	return o&topMaskCol(c) != 0
}

// Possible returns a mask with, for every column that still has room, the
// single cell the next stone dropped into that column would land on.
func Possible(o uint64) uint64 {
	return (o + bottomMask) & PlayField
}

// Flip converts a mover-complement mask between the two players, given
// the occupancy mask it is paired with.
func Flip(m, o uint64) uint64 {
	return m ^ o
}

// WinningPositions returns the set of cells on which a stone for the
// player occupying mask p would complete a four-in-a-row. Only sentinel
// bits are masked out: the result may include cells that are already
// occupied and cells not yet reachable (nothing below them played yet);
// callers mask against Possible to get only playable winning moves.
func WinningPositions(p uint64) uint64 {
	// Vertical: three stacked with a free cell on top.
	r := (p << 1) & (p << 2) & (p << 3)

	for _, s := range [3]uint{colHeight, Height, Height + 2} {
		// Three in a row, win one further in the same direction.
		a := (p << s) & (p << (2 * s)) & (p << (3 * s))
		// Gap-filled: two then a gap then one, win in the middle.
		b := (p << s) & (p << (2 * s)) & (p >> s)
		r |= a | b
		// Mirror both for the opposite direction.
		a = (p >> s) & (p >> (2 * s)) & (p >> (3 * s))
		b = (p >> s) & (p >> (2 * s)) & (p << s)
		r |= a | b
	}

	return r & PlayField
}

// NonLosingMoves returns the set of legal landing cells for the side to
// move such that playing there does not hand the opponent an immediate
// win on the reply. m is the mover-complement mask (last player's
// stones), o is the occupancy.
func NonLosingMoves(m, o uint64) uint64 {
	opponentWins := WinningPositions(m)
	landings := Possible(o)

	forced := opponentWins & landings
	if forced != 0 {
		if forced&(forced-1) != 0 {
			// Opponent threatens to win in two or more columns: no move
			// stops both.
			return 0
		}
		landings = forced
	}

	// Never play directly below one of the opponent's winning cells: that
	// hands them the winning landing spot on their very next move.
	return landings &^ (opponentWins >> 1)
}

// Heuristic is a small non-negative ordering value: the number of cells
// from which the player occupying mask p could complete a four-in-a-row,
// after accounting for the occupancy o.
func Heuristic(p, o uint64) int {
	return bits.OnesCount64(WinningPositions(p) &^ o)
}
