// Command connect4 is a thin demo around the solver library: given a
// move list, it renders the resulting board and prints, for every legal
// reply, the perfect-play outcome and how many stones remain until it is
// decided. It is not the interactive REPL described (and explicitly
// placed out of scope) in the core design — it makes one query and
// exits.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mkellner/connectfour/internal/bitboard"
	"github.com/mkellner/connectfour/internal/position"
	"github.com/mkellner/connectfour/solver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect4",
		Short: "Inspect perfect-play Connect Four scores from the command line",
	}
	cmd.AddCommand(newScoresCmd())
	return cmd
}

func newScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores <move-list>",
		Short: "Render a position and print each legal move's perfect-play outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScores(cmd.OutOrStdout(), args[0])
		},
	}
}

func runScores(w io.Writer, moveList string) error {
	p, err := parseMoveList(moveList)
	if err != nil {
		return err
	}

	if err := renderColored(w, p); err != nil {
		return err
	}

	if p.IsOver() {
		fmt.Fprintln(w, "game over")
		return nil
	}

	s := solver.New()
	for _, col := range p.LegalMoves() {
		child := p
		child.Play(col)
		score := s.Score(child)

		var outcome string
		switch {
		case score == 0:
			outcome = "Draw"
		case score > 0:
			outcome = "Loss"
		default:
			outcome = "Win"
		}
		fmt.Fprintf(w, "%s: %s in %d stones\n", col, outcome, stonesToEnd(p.Stones(), score))
	}
	return nil
}

// parseMoveList is the CLI boundary's recoverable parser: unlike
// position.FromMoveList (a debug/test affordance that panics on
// malformed input), this surfaces every failure as a typed error the
// caller can report and recover from.
func parseMoveList(moveList string) (position.Position, error) {
	p := position.New()
	for i, r := range moveList {
		col, err := position.ParseColumn(string(r))
		if err != nil {
			return position.Position{}, fmt.Errorf("move %d: %w", i, err)
		}
		if !p.IsLegalMove(col) {
			return position.Position{}, fmt.Errorf("move %d: column %s is full", i, col)
		}
		p.Play(col)
	}
	return p, nil
}

// stonesToEnd converts a score into how many more stones will be placed
// before the game ends, given currentTurn stones already on the board
// when the scored move was chosen.
func stonesToEnd(currentTurn int, score int8) int {
	if score == 0 {
		return bitboard.BoardSize - currentTurn
	}

	remainingAtEnd := int(score)
	if remainingAtEnd < 0 {
		remainingAtEnd = -remainingAtEnd
	}
	remainingAtEnd--

	remainingNow := bitboard.BoardSize/2 - currentTurn/2
	stonesForWinner := remainingNow - remainingAtEnd

	if score > 0 {
		return stonesForWinner * 2
	}
	return (stonesForWinner-1)*2 + 1
}

// renderColored prints p's plain-text diagram (see position.Render) with
// X and O recolored for a terminal. The core Position.Render stays
// uncolored so the literal rendering scenario in the core test suite
// compares exact bytes.
func renderColored(w io.Writer, p position.Position) error {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	var plain strings.Builder
	if err := p.Render(&plain); err != nil {
		return err
	}

	for _, r := range plain.String() {
		switch r {
		case 'X':
			fmt.Fprint(w, red(string(r)))
		case 'O':
			fmt.Fprint(w, yellow(string(r)))
		default:
			fmt.Fprint(w, string(r))
		}
	}
	return nil
}
