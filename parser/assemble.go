package parser

import (
	"github.com/scipopt/MIP-DD-sub001/model"
)

// assemble hands everything collected so far to a model.Problem. The state
// must not be used afterwards.
func (st *state[T]) assemble() (*model.Problem[T], *ParseError) {
	if err := st.freezeRows(); err != nil {
		return nil, err
	}
	if n := len(st.rows.index) - 1; n != len(st.rows.rows) {
		return nil, failf(KindInternal, "row registry holds %d names for %d rows", n, len(st.rows.rows))
	}
	if len(st.cols.index) != len(st.cols.cols) {
		return nil, failf(KindInternal, "column registry holds %d names for %d columns", len(st.cols.index), len(st.cols.cols))
	}

	cols := make([]model.Column[T], len(st.cols.cols))
	for j, c := range st.cols.cols {
		cols[j] = c.Column
	}
	obj := model.Objective[T]{
		Name:     st.rows.objective,
		Entries:  st.acc.objective,
		Offset:   st.offset,
		Maximize: st.maximize,
	}
	prob := model.New(st.name, obj, st.rows.rows, cols, st.acc.entries)

	st.rows = rowRegistry[T]{}
	st.cols = colRegistry[T]{}
	st.acc = accumulator[T]{}
	return prob, nil
}
