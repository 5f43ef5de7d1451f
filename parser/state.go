package parser

import (
	"github.com/go-logr/logr"

	"github.com/scipopt/MIP-DD-sub001/num"
)

// state is everything the section handlers build up between ROWS and ENDATA.
type state[T any] struct {
	arith num.Arith[T]
	log   logr.Logger

	name     string
	maximize bool
	offset   T

	rows rowRegistry[T]
	cols colRegistry[T]
	acc  accumulator[T]

	// current is the column whose COLUMNS lines are being read; integral is
	// set between the INTORG and INTEND markers.
	current  string
	integral bool
}

func newState[T any](arith num.Arith[T], log logr.Logger) *state[T] {
	return &state[T]{
		arith:  arith,
		log:    log,
		offset: arith.Zero(),
		rows:   rowRegistry[T]{index: map[string]int{}},
		cols:   colRegistry[T]{index: map[string]int{}},
	}
}

// rowValue resolves a row reference and parses the number paired with it.
func (st *state[T]) rowValue(section, row, value string) (int, T, *ParseError) {
	var zero T
	i, ok := st.rows.lookup(row)
	if !ok {
		return 0, zero, failf(KindUnknownReference, "%s entry for undeclared row %q", section, row)
	}
	v, err := st.arith.Parse(value)
	if err != nil {
		return 0, zero, wrapf(KindMalformedLine, err, "%s value for row %q", section, row)
	}
	return i, v, nil
}

// pairs checks the "<set> <row> <value> [<row> <value>]" shape shared by
// COLUMNS, RHS and RANGES lines.
func pairs(section string, fields []string) *ParseError {
	if len(fields) != 3 && len(fields) != 5 {
		return failf(KindMalformedLine, "%s line needs 3 or 5 fields, got %d", section, len(fields))
	}
	return nil
}
