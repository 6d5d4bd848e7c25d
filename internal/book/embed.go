package book

import _ "embed"

// DefaultCutoff is the stone count below which the opening book is
// expected to cover every unique reachable position.
//
// The full book for DefaultCutoff requires running cmd/bookgen to
// completion against the full BFS frontier, which this repository does
// not do as part of normal builds (see DESIGN.md); the embedded data
// below is a small, correctly-formatted illustrative subset rather than
// an exhaustive cover, so Lookup must be treated as possibly missing
// even below the cutoff.
const DefaultCutoff = 5

//go:embed testdata/book.bin
var defaultData []byte

// Default parses the embedded opening-book data. It panics if the
// embedded file is malformed; this package's tests load it through
// Default.
func Default() *Book {
	b, err := Parse(defaultData, DefaultCutoff)
	if err != nil {
		panic(err)
	}
	return b
}
