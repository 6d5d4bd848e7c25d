// Package position implements the Connect Four game state: two bitboards
// — mover-complement and occupancy — coupled into a single, trivially
// copyable value type with move/undo-by-copy semantics.
package position

import (
	"fmt"
	"io"
	"math/bits"
	"strings"

	"github.com/mkellner/connectfour/internal/bitboard"
)

// Position couples the mover-complement mask M (stones of the player who
// played the last stone) with the occupancy mask O (every played stone).
// The side to move owns O^M. Positions are cheap to copy and carry no
// pointers, so the solver's recursion keeps its own copy per frame rather
// than mutating shared state.
type Position struct {
	M uint64
	O uint64
}

// New returns the empty starting position.
func New() Position {
	return Position{}
}

// FromMoveList parses a string of digits '1'..'7', one per ply, and plays
// them in order. This is a debug/test affordance, not a robust parser: an
// illegal move anywhere in the string is a programmer error and panics.
func FromMoveList(moves string) Position {
	p := New()
	for i, r := range moves {
		if r < '1' || r > '7' {
			panic(fmt.Sprintf("from_move_list: invalid character %q at index %d", r, i))
		}
		col := Column(r - '1')
		if !p.Play(col) {
			panic(fmt.Sprintf("from_move_list: illegal move %q at index %d", r, i))
		}
	}
	return p
}

// Play inserts a stone for the side to move into column c. It returns
// false and leaves the position unchanged if the column is full;
// otherwise it inserts the stone and flips M so the bookkeeping always
// reflects the player who just moved.
func (p *Position) Play(c Column) bool {
	if bitboard.IsFull(p.O, c.Index()) {
		return false
	}
	p.O = bitboard.Insert(p.O, c.Index())
	p.M ^= p.O
	return true
}

// IsLegalMove reports whether column c still has room.
func (p Position) IsLegalMove(c Column) bool {
	return !bitboard.IsFull(p.O, c.Index())
}

// LegalMoves returns every playable column in natural column order (0..6).
// Callers that want center-first ordering must supply it themselves.
func (p Position) LegalMoves() []Column {
	moves := make([]Column, 0, bitboard.Width)
	for c := 0; c < bitboard.Width; c++ {
		if !bitboard.IsFull(p.O, c) {
			moves = append(moves, Column(c))
		}
	}
	return moves
}

// Stones returns the total number of stones played so far.
func (p Position) Stones() int {
	return bits.OnesCount64(p.O)
}

// IsVictory reports whether the last mover (the owner of M) has completed
// a four-in-a-row. The side to move never wins on their own turn.
func (p Position) IsVictory() bool {
	return bitboard.IsWin(p.M)
}

// IsOver reports whether the game has ended, by victory or by filling the
// board.
func (p Position) IsOver() bool {
	return p.IsVictory() || p.Stones() == bitboard.BoardSize
}

// CanWinInNextMove reports whether the side to move can complete a
// four-in-a-row with their very next stone.
func (p Position) CanWinInNextMove() bool {
	me := bitboard.Flip(p.M, p.O)
	return bitboard.Possible(p.O)&bitboard.WinningPositions(me) != 0
}

// NonLosingMoves returns, in natural column order, every legal move for
// the side to move after which the opponent cannot win on their immediate
// reply. An empty slice means every legal reply loses.
func (p Position) NonLosingMoves() []Column {
	mask := bitboard.NonLosingMoves(p.M, p.O)
	var moves []Column
	for c := 0; c < bitboard.Width; c++ {
		if mask&bitboard.ColumnMask(c) != 0 {
			moves = append(moves, Column(c))
		}
	}
	return moves
}

// Encode returns the canonical 49-bit key of the position: M + O. Adding
// the two masks lights the sentinel bit directly above the top stone of
// every column, so the key encodes each column's height independently of
// which player owns which cell; this makes the key injective over
// reachable positions without any symmetry reduction.
func (p Position) Encode() uint64 {
	return p.M + p.O
}

// Render writes a six-row text diagram of the board, top row first, with
// 'X' for player one (whoever placed the first stone), 'O' for player two,
// and a space for empty cells, followed by a separator line and a column
// footer.
func (p Position) Render(w io.Writer) error {
	playerOne := p.M
	playerTwo := bitboard.Flip(p.M, p.O)
	if p.Stones()%2 == 0 {
		playerOne, playerTwo = playerTwo, playerOne
	}

	var b strings.Builder
	for row := bitboard.Height - 1; row >= 0; row-- {
		for col := 0; col < bitboard.Width; col++ {
			bit := uint64(1) << uint(7*col+row)
			ch := byte(' ')
			switch {
			case playerOne&bit != 0:
				ch = 'X'
			case playerTwo&bit != 0:
				ch = 'O'
			}
			b.WriteByte('|')
			b.WriteByte(ch)
		}
		b.WriteString("|\n")
	}
	b.WriteString("---------------\n")
	b.WriteString(" 1 2 3 4 5 6 7\n")

	_, err := io.WriteString(w, b.String())
	return err
}
