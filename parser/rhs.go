package parser

import (
	"github.com/scipopt/MIP-DD-sub001/internal/logging"
	"github.com/scipopt/MIP-DD-sub001/model"
)

// rhs handles an RHS line. A value on the objective row sets the objective
// offset to its negation; values on free rows are ignored.
func (st *state[T]) rhs(fields []string) *ParseError {
	if err := pairs("RHS", fields); err != nil {
		return err
	}
	for i := 1; i < len(fields); i += 2 {
		row, v, err := st.rowValue("RHS", fields[i], fields[i+1])
		if err != nil {
			return err
		}
		if row == objectiveIndex {
			st.offset = st.arith.Neg(v)
			continue
		}

		r := &st.rows.rows[row]
		switch r.Sense {
		case model.LessEqual:
			r.Rhs = model.Finite(v)
		case model.GreaterEqual:
			r.Lhs = model.Finite(v)
		case model.Equal:
			r.Lhs = model.Finite(v)
			r.Rhs = model.Finite(v)
		}
	}
	return nil
}

// ranges handles a RANGES line, turning one-sided rows into two-sided ones.
// For an equality row the sign of the range picks the side that moves.
func (st *state[T]) ranges(fields []string) *ParseError {
	if err := pairs("RANGES", fields); err != nil {
		return err
	}
	for i := 1; i < len(fields); i += 2 {
		row, v, err := st.rowValue("RANGES", fields[i], fields[i+1])
		if err != nil {
			return err
		}
		if row == objectiveIndex {
			return failf(KindUnknownReference, "RANGES entry for objective row %q", fields[i])
		}

		r := &st.rows.rows[row]
		switch r.Sense {
		case model.GreaterEqual:
			r.Rhs = model.Finite(st.arith.Add(r.Lhs.Value, st.arith.Abs(v)))
		case model.LessEqual:
			r.Lhs = model.Finite(st.arith.Sub(r.Rhs.Value, st.arith.Abs(v)))
		case model.Equal:
			switch st.arith.Sign(v) {
			case 1:
				r.Rhs = model.Finite(st.arith.Add(r.Rhs.Value, v))
				r.Equation = false
			case -1:
				r.Lhs = model.Finite(st.arith.Add(r.Lhs.Value, v))
				r.Equation = false
			}
		default:
			st.log.V(logging.DEBUG).Info("ignoring range on free row", "row", r.Name)
		}
	}
	return nil
}
