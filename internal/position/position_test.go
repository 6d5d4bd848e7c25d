package position_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkellner/connectfour/internal/position"
)

func TestNewPositionIsEmpty(t *testing.T) {
	p := position.New()
	assert.Equal(t, 0, p.Stones())
	assert.False(t, p.IsOver())
	assert.False(t, p.IsVictory())
}

func TestPlayFlipsMoverAndCountsStones(t *testing.T) {
	p := position.New()
	col, err := position.ColumnFromIndex(3)
	require.NoError(t, err)

	ok := p.Play(col)
	require.True(t, ok)
	assert.Equal(t, 1, p.Stones())
	// The single stone belongs to the player who just moved.
	assert.Equal(t, p.O, p.M)
}

func TestPlayOnFullColumnFails(t *testing.T) {
	p := position.New()
	col, _ := position.ColumnFromIndex(0)
	for i := 0; i < 6; i++ {
		require.True(t, p.Play(col))
	}
	before := p
	assert.False(t, p.Play(col))
	assert.Equal(t, before, p)
}

func TestLegalMovesNaturalOrder(t *testing.T) {
	p := position.FromMoveList("1111112222223333334444445555556666667")
	// Columns 0..5 (1..6) are now full; only column 6 (7) remains.
	moves := p.LegalMoves()
	require.Len(t, moves, 1)
	assert.Equal(t, 6, moves[0].Index())
}

// Scenario 1: a literal move list that ends with a four-in-a-row on the
// second row from the bottom.
func TestFromMoveListDetectsVictory(t *testing.T) {
	p := position.FromMoveList("5655663642443")
	assert.True(t, p.IsVictory())

	var buf strings.Builder
	require.NoError(t, p.Render(&buf))

	want := "" +
		"| | | | | | | |\n" +
		"| | | | | | | |\n" +
		"| | | | | |O| |\n" +
		"| | | |O|O|O| |\n" +
		"| | |X|X|X|X| |\n" +
		"| |O|X|X|X|O| |\n" +
		"---------------\n" +
		" 1 2 3 4 5 6 7\n"
	assert.Equal(t, want, buf.String())
}

// Scenario 7: can-win-in-next-move on a concrete position and its negation.
func TestCanWinInNextMove(t *testing.T) {
	assert.True(t, position.FromMoveList("253733227554644").CanWinInNextMove())
	assert.False(t, position.FromMoveList("225257625346224411156336534367135144167").CanWinInNextMove())
}

// Scenario 8: the single non-losing reply on a specific position.
func TestNonLosingMoves(t *testing.T) {
	p := position.FromMoveList("123242")
	moves := p.NonLosingMoves()
	require.Len(t, moves, 1)
	assert.Equal(t, 1, moves[0].Index())
}

func TestEncodeIsInjectiveAcrossDistinctMoveLists(t *testing.T) {
	a := position.FromMoveList("444")
	b := position.FromMoveList("454")
	assert.NotEqual(t, a.Encode(), b.Encode())
}

func TestFromMoveListPanicsOnIllegalMove(t *testing.T) {
	assert.Panics(t, func() {
		position.FromMoveList("1111111")
	})
}

func TestParseColumn(t *testing.T) {
	c, err := position.ParseColumn("3")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, "3", c.String())

	_, err = position.ParseColumn("9")
	assert.Error(t, err)

	_, err = position.ParseColumn("x")
	assert.Error(t, err)
}

func TestColumnFromIndexRejectsOutOfRange(t *testing.T) {
	_, err := position.ColumnFromIndex(7)
	assert.Error(t, err)
	_, err = position.ColumnFromIndex(-1)
	assert.Error(t, err)
}
