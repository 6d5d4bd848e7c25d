package bitboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkellner/connectfour/internal/bitboard"
)

func cell(row, col int) uint64 {
	return uint64(1) << uint(7*col+row)
}

func TestIsWinHorizontal(t *testing.T) {
	var m uint64
	for col := 1; col <= 3; col++ {
		m |= cell(0, col)
		assert.False(t, bitboard.IsWin(m))
	}
	m |= cell(0, 4)
	assert.True(t, bitboard.IsWin(m))
}

func TestIsWinVertical(t *testing.T) {
	var m uint64
	for row := 1; row <= 3; row++ {
		m |= cell(row, 2)
		assert.False(t, bitboard.IsWin(m))
	}
	m |= cell(4, 2)
	assert.True(t, bitboard.IsWin(m))
}

func TestIsWinDiagonalUp(t *testing.T) {
	var m uint64
	for i := 1; i <= 3; i++ {
		m |= cell(i, i)
		assert.False(t, bitboard.IsWin(m))
	}
	m |= cell(4, 4)
	assert.True(t, bitboard.IsWin(m))
}

func TestIsWinDiagonalDown(t *testing.T) {
	var m uint64
	m |= cell(1, 4)
	m |= cell(2, 3)
	m |= cell(3, 2)
	assert.False(t, bitboard.IsWin(m))
	m |= cell(4, 1)
	assert.True(t, bitboard.IsWin(m))
}

func TestInsertAndIsFull(t *testing.T) {
	var o uint64
	for row := 0; row < bitboard.Height; row++ {
		assert.False(t, bitboard.IsFull(o, 3))
		o = bitboard.Insert(o, 3)
	}
	assert.True(t, bitboard.IsFull(o, 3))
}

func TestPossibleOnEmptyBoard(t *testing.T) {
	want := uint64(0)
	for c := 0; c < bitboard.Width; c++ {
		want |= cell(0, c)
	}
	assert.Equal(t, want, bitboard.Possible(0))
}

func TestFlipIsInvolution(t *testing.T) {
	var o uint64
	o = bitboard.Insert(o, 0)
	o = bitboard.Insert(o, 0)
	o = bitboard.Insert(o, 1)
	m := cell(0, 0)
	flipped := bitboard.Flip(m, o)
	assert.Equal(t, m, bitboard.Flip(flipped, o))
}

func TestNonLosingMovesTwoThreatsIsHopeless(t *testing.T) {
	// Opponent (the last mover, mask m) has three in a row horizontally on
	// the bottom row in columns 1..3 (0-indexed): both column 0 and
	// column 4 complete it, so no single reply blocks both.
	var m uint64
	m |= cell(0, 1)
	m |= cell(0, 2)
	m |= cell(0, 3)
	o := m

	threats := bitboard.WinningPositions(m)
	forced := threats & bitboard.Possible(o)
	assert.Equal(t, 2, popcount(forced))
	assert.Equal(t, uint64(0), bitboard.NonLosingMoves(m, o))
}

func TestNonLosingMovesSingleForcedBlock(t *testing.T) {
	// Opponent has three in a row vertically in column 2: the only
	// non-losing reply is to play column 2 and cap it.
	var m uint64
	m |= cell(0, 2)
	m |= cell(1, 2)
	m |= cell(2, 2)
	o := m

	got := bitboard.NonLosingMoves(m, o)
	assert.Equal(t, cell(3, 2), got)
}

func popcount(x uint64) int {
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}
