package parser

import (
	"cmp"
	"slices"

	"github.com/scipopt/MIP-DD-sub001/model"
)

// accumulator collects COLUMNS coefficients. Entries of one column form a
// contiguous block that is ordered by row once the column is finished.
type accumulator[T any] struct {
	entries    []model.Triplet[T]
	objective  []model.ObjEntry[T]
	blockStart int
}

func (a *accumulator[T]) add(col, row int, v T) {
	a.entries = append(a.entries, model.Triplet[T]{Col: col, Row: row, Value: v})
}

func (a *accumulator[T]) addObjective(col int, v T) {
	a.objective = append(a.objective, model.ObjEntry[T]{Col: col, Value: v})
}

// finishBlock orders the current column's entries by row. The sort is stable
// so repeated (row, col) pairs keep file order.
func (a *accumulator[T]) finishBlock() {
	block := a.entries[a.blockStart:]
	slices.SortStableFunc(block, func(x, y model.Triplet[T]) int {
		return cmp.Compare(x.Row, y.Row)
	})
	a.blockStart = len(a.entries)
}
