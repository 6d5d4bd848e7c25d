package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoveListAcceptsLegalSequence(t *testing.T) {
	p, err := parseMoveList("123")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stones())
}

func TestParseMoveListRejectsBadCharacter(t *testing.T) {
	_, err := parseMoveList("12x")
	assert.Error(t, err)
}

func TestParseMoveListRejectsFullColumn(t *testing.T) {
	_, err := parseMoveList("1111111")
	assert.Error(t, err)
}

func TestStonesToEndOnDraw(t *testing.T) {
	assert.Equal(t, 42-10, stonesToEnd(10, 0))
}

func TestStonesToEndOnImmediateWin(t *testing.T) {
	// scoreFromStones(stones+1) for a one-ply win at stones=10 is -16; the
	// winner needs exactly one more stone.
	assert.Equal(t, 1, stonesToEnd(10, -16))
}

func TestRunScoresPrintsOneLinePerLegalMove(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runScores(&buf, "1"))
	assert.Contains(t, buf.String(), "2:")
	assert.Contains(t, buf.String(), "7:")
}
