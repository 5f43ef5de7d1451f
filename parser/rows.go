package parser

import (
	"github.com/scipopt/MIP-DD-sub001/internal/logging"
	"github.com/scipopt/MIP-DD-sub001/model"
)

const (
	// objectiveIndex is the registry slot of the objective row.
	objectiveIndex = -1
	// placeholderObjective names the objective of a file without an N row.
	placeholderObjective = "artificial_empty_objective"
)

type rowRegistry[T any] struct {
	index     map[string]int
	rows      []model.Row[T]
	objective string
	hasObj    bool
	frozen    bool
}

func (r *rowRegistry[T]) lookup(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

func (r *rowRegistry[T]) declare(row model.Row[T]) *ParseError {
	if r.frozen {
		return failf(KindInternal, "row %q declared after ROWS was closed", row.Name)
	}
	if _, dup := r.index[row.Name]; dup {
		return failf(KindDuplicateName, "row %q declared twice", row.Name)
	}
	r.index[row.Name] = len(r.rows)
	r.rows = append(r.rows, row)
	return nil
}

func (r *rowRegistry[T]) declareObjective(name string) *ParseError {
	if _, dup := r.index[name]; dup {
		return failf(KindDuplicateName, "row %q declared twice", name)
	}
	r.index[name] = objectiveIndex
	r.objective = name
	r.hasObj = true
	return nil
}

// row handles a ROWS line: "<sense> <name>". The first N row becomes the
// objective; later N rows are kept as free constraints.
func (st *state[T]) row(fields []string) *ParseError {
	if len(fields) != 2 {
		return failf(KindMalformedLine, "ROWS line needs a sense and a name, got %d fields", len(fields))
	}
	sense, name := fields[0], fields[1]

	zero := st.arith.Zero()
	row := model.Row[T]{Name: name, Lhs: model.Unbounded(zero), Rhs: model.Unbounded(zero)}
	switch sense {
	case "L":
		row.Sense = model.LessEqual
		row.Rhs = model.Finite(zero)
	case "G":
		row.Sense = model.GreaterEqual
		row.Lhs = model.Finite(zero)
	case "E":
		row.Sense = model.Equal
		row.Lhs = model.Finite(zero)
		row.Rhs = model.Finite(zero)
		row.Equation = true
	case "N":
		if !st.rows.hasObj {
			return st.rows.declareObjective(name)
		}
		row.Sense = model.Free
		st.log.V(logging.DEBUG).Info("keeping extra N row as a free row", "row", name, "objective", st.rows.objective)
	default:
		return failf(KindMalformedLine, "unknown row sense %q for row %q", sense, name)
	}
	return st.rows.declare(row)
}

// freezeRows closes the row registry. It is idempotent so that assembly can
// call it for files that never open ROWS.
func (st *state[T]) freezeRows() *ParseError {
	if st.rows.frozen {
		return nil
	}
	if !st.rows.hasObj {
		st.log.Info("no objective row, using an empty objective", "warning", true, "objective", placeholderObjective)
		if err := st.rows.declareObjective(placeholderObjective); err != nil {
			return err
		}
	}
	st.rows.frozen = true
	st.log.V(logging.DEBUG).Info("rows frozen", "rows", len(st.rows.rows), "objective", st.rows.objective)
	return nil
}
