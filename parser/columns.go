package parser

import (
	"github.com/scipopt/MIP-DD-sub001/internal/logging"
	"github.com/scipopt/MIP-DD-sub001/model"
)

const (
	markerTag = "'MARKER'"
	intOrg    = "'INTORG'"
	intEnd    = "'INTEND'"
)

// boundState tracks whether a column side still holds its default.
type boundState uint8

const (
	boundUnset boundState = iota
	boundExplicit
)

type columnEntry[T any] struct {
	model.Column[T]
	lower, upper boundState
}

type colRegistry[T any] struct {
	index map[string]int
	cols  []columnEntry[T]
}

func (c *colRegistry[T]) lookup(name string) (*columnEntry[T], bool) {
	j, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return &c.cols[j], true
}

// column handles a COLUMNS line: either a marker or
// "<col> <row> <value> [<row> <value>]".
func (st *state[T]) column(fields []string) *ParseError {
	if len(fields) >= 2 && fields[1] == markerTag {
		return st.marker(fields)
	}
	if err := pairs("COLUMNS", fields); err != nil {
		return err
	}

	if fields[0] != st.current {
		if err := st.startColumn(fields[0]); err != nil {
			return err
		}
	}
	col := len(st.cols.cols) - 1

	for i := 1; i < len(fields); i += 2 {
		row, v, err := st.rowValue("COLUMNS", fields[i], fields[i+1])
		if err != nil {
			return err
		}
		if row == objectiveIndex {
			st.acc.addObjective(col, v)
			continue
		}
		st.acc.add(col, row, v)
	}
	return nil
}

func (st *state[T]) marker(fields []string) *ParseError {
	if len(fields) != 3 {
		return failf(KindMalformedLine, "marker line needs 3 fields, got %d", len(fields))
	}
	switch {
	case fields[2] == intOrg && !st.integral:
		st.integral = true
	case fields[2] == intEnd && st.integral:
		st.integral = false
	default:
		block := "closed"
		if st.integral {
			block = "open"
		}
		return failf(KindMarkerMismatch, "marker %s while the integer block is %s", fields[2], block)
	}
	st.log.V(logging.DEBUG).Info("integer marker", "marker", fields[2], "integral", st.integral)
	return nil
}

func (st *state[T]) startColumn(name string) *ParseError {
	if _, dup := st.cols.index[name]; dup {
		return failf(KindDuplicateName, "column %q declared twice", name)
	}
	st.acc.finishBlock()

	zero := st.arith.Zero()
	c := model.Column[T]{Name: name, Lower: model.Finite(zero), Upper: model.Unbounded(zero), Integer: st.integral}
	if st.integral {
		c.Upper = model.Finite(st.arith.One())
	}
	st.cols.index[name] = len(st.cols.cols)
	st.cols.cols = append(st.cols.cols, columnEntry[T]{Column: c})
	st.current = name
	return nil
}

// finishColumns closes COLUMNS; an integer block must not stay open.
func (st *state[T]) finishColumns() *ParseError {
	st.acc.finishBlock()
	if st.integral {
		return failf(KindMarkerMismatch, "integer block opened by %s is never closed", intOrg)
	}
	return nil
}
