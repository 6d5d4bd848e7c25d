// Package solver implements the perfect-play Connect Four solver: a
// null-window iterative-deepening driver around a negamax search with
// alpha-beta pruning, move ordering, non-losing-move pruning, and a
// transposition table.
package solver

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/mkellner/connectfour/internal/bitboard"
	"github.com/mkellner/connectfour/internal/book"
	"github.com/mkellner/connectfour/internal/position"
	"github.com/mkellner/connectfour/internal/table"
)

const boardSize = bitboard.BoardSize // 42

// columnExplorationOrder favors the center column, which is on average
// the strongest move and therefore prunes fastest.
var columnExplorationOrder = [bitboard.Width]int{3, 2, 4, 1, 5, 0, 6}

// columnPriority[c] is c's rank in columnExplorationOrder, used to break
// heuristic ties during move ordering.
var columnPriority = func() [bitboard.Width]int {
	var p [bitboard.Width]int
	for rank, col := range columnExplorationOrder {
		p[col] = rank
	}
	return p
}()

// Solver owns a transposition table and an opening book and drives
// Score/BestMoves queries against them. It is single-threaded and
// synchronous: a Score call runs to completion with no interior
// parallelism or cancellation. Reusing one Solver across sequential
// queries preserves the accumulated transposition-table upper bounds and
// is strictly faster than constructing a fresh one per query.
type Solver struct {
	table *table.Table
	book  *book.Book
	log   zerolog.Logger
}

// Option configures a Solver at construction time.
type Option func(*Solver)

// WithTableCapacity overrides the transposition table's capacity. Pass
// one of table.SmallCapacity or table.LargeCapacity, or another verified
// prime satisfying the CRT collision-free requirement (see
// internal/table).
func WithTableCapacity(capacity int) Option {
	return func(s *Solver) { s.table = table.New(capacity) }
}

// WithBook overrides the opening book; pass nil to disable book lookups
// entirely and always run the full search.
func WithBook(b *book.Book) Option {
	return func(s *Solver) { s.book = b }
}

// WithLogger attaches a zerolog.Logger that receives iterative-deepening
// progress at Debug/Trace level. The default is a disabled logger, so
// logging never touches the hot path unless the caller opts in.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Solver) { s.log = l }
}

// New constructs a Solver with the full-solver transposition table
// capacity and the embedded opening book, both overridable via options.
func New(opts ...Option) *Solver {
	s := &Solver{
		table: table.New(table.LargeCapacity),
		book:  book.Default(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the exact signed score of p from the side-to-move's
// perspective: positive means the side to move wins (higher is faster),
// negative means they lose (higher magnitude is a faster loss), zero is a
// perfect-play draw.
func (s *Solver) Score(p position.Position) int8 {
	stones := p.Stones()

	if p.IsVictory() {
		return scoreFromStones(stones)
	}
	if p.CanWinInNextMove() {
		return -scoreFromStones(stones + 1)
	}
	if s.book != nil && stones < s.book.Cutoff() {
		if sc, ok := s.book.Lookup(p.Encode()); ok {
			s.log.Trace().Uint64("key", p.Encode()).Msg("opening-book-hit")
			return sc
		}
	}

	low := int8(-(boardSize - stones) / 2)
	high := int8((boardSize + 1 - stones) / 2)

	s.log.Debug().Int("stones", stones).Int8("low", low).Int8("high", high).Msg("begin-iterative-deepening")

	for low < high {
		mid := low + (high-low)/2
		var alpha int8
		switch {
		case mid <= 0 && low/2 < mid:
			// Explore the losing side deeper: empirically the better bias
			// at mid == 0 (see spec §9's open question).
			alpha = low / 2
		case mid >= 0 && high/2 > mid:
			alpha = high / 2
		default:
			alpha = mid
		}

		result := s.alphaBeta(p, alpha, alpha+1)
		if result <= alpha {
			high = result
		} else {
			low = result
		}
		s.log.Trace().Int8("alpha", alpha).Int8("result", result).Int8("low", low).Int8("high", high).Msg("null-window-probe")
	}

	s.log.Debug().Int8("score", low).Msg("solved")
	return low
}

// alphaBeta requires alpha < beta and that p cannot be won in a single
// move by the side to move. It returns v with:
//   - v <= alpha if the true score <= alpha (refined upper bound)
//   - v >= beta if the true score >= beta (refined lower bound)
//   - v == the exact score otherwise
func (s *Solver) alphaBeta(p position.Position, alpha, beta int8) int8 {
	stones := p.Stones()

	moves := p.NonLosingMoves()
	if len(moves) == 0 {
		// Every reply hands the opponent an immediate win.
		return scoreFromStones(stones + 2)
	}
	if stones >= boardSize-2 {
		// Only two cells remain and nobody can win in one move: a draw.
		return 0
	}

	// The opponent cannot win within one move (a precondition of this
	// call), which puts a floor on how badly this position can score.
	alpha = max8(alpha, scoreFromStones(stones+4))
	if alpha >= beta {
		return alpha
	}

	// Look for a cached upper bound; otherwise the fastest possible win is
	// at least three stones away, since we can't win on this move either.
	upperBound := -scoreFromStones(stones + 3)
	if cached, ok := s.table.Get(p.Encode()); ok {
		upperBound = cached
	}
	beta = min8(beta, upperBound)
	if alpha >= beta {
		return beta
	}

	for _, col := range s.orderMoves(p, moves) {
		child := p
		child.Play(col)

		score := -s.alphaBeta(child, -beta, -alpha)
		if score >= beta {
			return score
		}
		alpha = max8(alpha, score)
	}

	s.table.Put(p.Encode(), alpha)
	return alpha
}

// orderMoves evaluates each candidate move's heuristic on a child
// position and returns the columns sorted by descending heuristic, with
// ties broken by columnExplorationOrder (center first).
func (s *Solver) orderMoves(p position.Position, moves []position.Column) []position.Column {
	type candidate struct {
		col       position.Column
		heuristic int
	}

	candidates := make([]candidate, len(moves))
	for i, col := range moves {
		child := p
		child.Play(col)
		candidates[i] = candidate{col: col, heuristic: bitboard.Heuristic(child.M, child.O)}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].heuristic != candidates[j].heuristic {
			return candidates[i].heuristic > candidates[j].heuristic
		}
		return columnPriority[candidates[i].col] < columnPriority[candidates[j].col]
	})

	return lo.Map(candidates, func(c candidate, _ int) position.Column { return c.col })
}

// BestMoves returns every legal column achieving the minimum score for
// the resulting child position (equivalently, the maximum score for the
// side to move in p), in natural column order.
func (s *Solver) BestMoves(p position.Position) []position.Column {
	var best []position.Column
	var minScore int8
	haveMin := false

	for _, col := range p.LegalMoves() {
		child := p
		child.Play(col)
		childScore := s.Score(child)

		switch {
		case !haveMin || childScore < minScore:
			best = []position.Column{col}
			minScore = childScore
			haveMin = true
		case childScore == minScore:
			best = append(best, col)
		}
	}

	return best
}

// Score is a convenience free function equivalent to New().Score(p): a
// fresh Solver (and transposition table) per call.
func Score(p position.Position) int8 {
	return New().Score(p)
}

// scoreFromStones computes the score from the perspective of the player
// who can no longer move because the game ended after numStones stones
// were played. This is always a non-positive-from-the-mover's-frame
// value: the move that ended the game always belongs to the opponent of
// whoever is being scored here.
func scoreFromStones(numStones int) int8 {
	remaining := (boardSize - numStones) / 2
	return int8(-(remaining + 1))
}

func max8(a, b int8) int8 {
	if a > b {
		return a
	}
	return b
}

func min8(a, b int8) int8 {
	if a < b {
		return a
	}
	return b
}
