// Command bookgen is the offline utility that produces the opening-book
// data file internal/book embeds. It performs a breadth-first expansion
// from the empty position, de-duplicates by canonical key at every ply,
// scores each unique position with a fresh Solver (in parallel across the
// ply's frontier), and writes the sorted binary records the runtime
// loader expects.
//
// This command isn't hardened for production use: it's implemented here
// because the embedded book format it produces is very much in scope, and
// because a solver like this one needs the small command that feeds it.
// Running it to completion for the production cutoff is a long, CPU-heavy
// job and is not part of this repository's normal build.
package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mkellner/connectfour/internal/book"
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
	var upTo int
	var out string

	cmd := &cobra.Command{
		Use:   "bookgen",
		Short: "Generate the sorted binary opening-book data file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(upTo, out)
		},
	}
	cmd.Flags().IntVar(&upTo, "upto", book.DefaultCutoff, "cover every unique position with fewer than this many stones")
	cmd.Flags().StringVar(&out, "out", "book.bin", "output file path")
	return cmd
}

type scoredPosition struct {
	key   uint64
	score int8
}

func run(upTo int, out string) error {
	var records []scoredPosition
	frontier := []position.Position{position.New()}

	for stones := 0; stones < upTo; stones++ {
		batch, err := scoreFrontier(frontier)
		if err != nil {
			return fmt.Errorf("scoring %d-stone positions: %w", stones, err)
		}
		records = append(records, batch...)

		if stones+1 >= upTo {
			break
		}
		frontier = dedupByKey(expand(frontier))
	}

	sort.Slice(records, func(i, j int) bool { return records[i].key < records[j].key })
	return writeRecords(out, records)
}

// expand returns every position reachable by one legal move from any
// position in frontier.
func expand(frontier []position.Position) []position.Position {
	var next []position.Position
	for _, p := range frontier {
		for _, col := range p.LegalMoves() {
			child := p
			child.Play(col)
			next = append(next, child)
		}
	}
	return next
}

// dedupByKey removes duplicate canonical keys and returns the remaining
// positions sorted by key.
func dedupByKey(positions []position.Position) []position.Position {
	sort.Slice(positions, func(i, j int) bool { return positions[i].Encode() < positions[j].Encode() })

	unique := make([]position.Position, 0, len(positions))
	var prevKey uint64
	havePrev := false
	for _, p := range positions {
		key := p.Encode()
		if havePrev && key == prevKey {
			continue
		}
		unique = append(unique, p)
		prevKey = key
		havePrev = true
	}
	return unique
}

// scoreFrontier computes each position's score independently, one
// goroutine per position: scoring is embarrassingly parallel across a
// ply's frontier since each position's solve is independent of its
// siblings.
func scoreFrontier(frontier []position.Position) ([]scoredPosition, error) {
	results := make([]scoredPosition, len(frontier))

	g := new(errgroup.Group)
	for i, p := range frontier {
		i, p := i, p
		g.Go(func() error {
			s := solver.New()
			results[i] = scoredPosition{key: p.Encode(), score: s.Score(p)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeRecords(path string, records []scoredPosition) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, book.RecordSize)
	for _, r := range records {
		binary.LittleEndian.PutUint64(buf[:8], r.key)
		buf[8] = byte(r.score)
		if _, err := f.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
