package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// MaxDenseCells bounds the rows×cols size DenseMatrix agrees to allocate.
const MaxDenseCells = 1 << 20

// DenseMatrix returns the constraint matrix as a dense rows×cols matrix, for
// looking at small instances. Duplicate entries for the same (row, column)
// are summed. It returns nil for a problem without rows or columns and an
// error when the matrix would exceed MaxDenseCells.
func DenseMatrix(p *Problem[float64]) (*mat.Dense, error) {
	m, n := p.NumRows(), p.NumCols()
	if m == 0 || n == 0 {
		return nil, nil
	}
	if m > MaxDenseCells/n {
		return nil, errors.Errorf("dense %d×%d matrix exceeds %d cells", m, n, MaxDenseCells)
	}
	a := mat.NewDense(m, n, nil)
	for _, e := range p.Entries {
		a.Set(e.Row, e.Col, a.At(e.Row, e.Col)+e.Value)
	}
	return a, nil
}

// ObjectiveVector returns the dense objective coefficients.
func ObjectiveVector(p *Problem[float64]) *mat.VecDense {
	if p.NumCols() == 0 {
		return nil
	}
	c := mat.NewVecDense(p.NumCols(), nil)
	for _, e := range p.Objective.Entries {
		c.SetVec(e.Col, c.AtVec(e.Col)+e.Value)
	}
	return c
}

// Activities computes A·x for a point x with one value per column. It walks
// the triplets, so memory stays linear in rows plus nonzeros.
func Activities(p *Problem[float64], x []float64) ([]float64, error) {
	if len(x) != p.NumCols() {
		return nil, errors.Errorf("point has %d values, problem has %d columns", len(x), p.NumCols())
	}
	out := make([]float64, p.NumRows())
	for _, e := range p.Entries {
		out[e.Row] += e.Value * x[e.Col]
	}
	return out, nil
}

// ObjectiveValue evaluates the objective, offset included, at x.
func ObjectiveValue(p *Problem[float64], x []float64) (float64, error) {
	if len(x) != p.NumCols() {
		return 0, errors.Errorf("point has %d values, problem has %d columns", len(x), p.NumCols())
	}
	c := ObjectiveVector(p)
	if c == nil {
		return p.Objective.Offset, nil
	}
	return mat.Dot(c, mat.NewVecDense(len(x), x)) + p.Objective.Offset, nil
}

// Violation returns how far activity lies outside the sides of r,
// zero if the activity lies within [lhs, rhs].
func Violation(r Row[float64], activity float64) float64 {
	v := 0.0
	if !r.Lhs.Infinite {
		v = math.Max(v, r.Lhs.Value-activity)
	}
	if !r.Rhs.Infinite {
		v = math.Max(v, activity-r.Rhs.Value)
	}
	return v
}
