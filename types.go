package mps

import (
	"github.com/scipopt/MIP-DD-sub001/model"
	"github.com/scipopt/MIP-DD-sub001/num"
)

// Stats summarizes the shape of a problem.
type Stats struct {
	Name      string  `yaml:"name"`
	Objective string  `yaml:"objective"`
	Maximize  bool    `yaml:"maximize"`
	Offset    string  `yaml:"offset"`
	Rows      int     `yaml:"rows"`
	Columns   int     `yaml:"columns"`
	Nonzeros  int     `yaml:"nonzeros"`
	Density   float64 `yaml:"density"`

	Equations int `yaml:"equations"`
	Ranged    int `yaml:"ranged"`
	FreeRows  int `yaml:"freeRows"`

	Continuous int `yaml:"continuous"`
	Integers   int `yaml:"integers"`
	Binaries   int `yaml:"binaries"`
	FreeCols   int `yaml:"freeColumns"`

	ObjectiveEntries int `yaml:"objectiveEntries"`
}

// Summarize counts rows, columns and nonzeros by kind. Binaries are integral
// columns bounded by [0, 1] and are also counted as integers. The objective
// offset is rendered by arith, so exact problems keep fractions like 1/3.
func Summarize[T any](p *model.Problem[T], arith num.Arith[T]) Stats {
	s := Stats{
		Name:             p.Name,
		Objective:        p.Objective.Name,
		Maximize:         p.Objective.Maximize,
		Offset:           arith.Format(p.Objective.Offset),
		Rows:             p.NumRows(),
		Columns:          p.NumCols(),
		Nonzeros:         p.NumNonzeros(),
		ObjectiveEntries: len(p.Objective.Entries),
	}
	if cells := s.Rows * s.Columns; cells > 0 {
		s.Density = float64(s.Nonzeros) / float64(cells)
	}

	for _, r := range p.Rows {
		switch {
		case r.Equation:
			s.Equations++
		case r.Sense == model.Free:
			s.FreeRows++
		case !r.Lhs.Infinite && !r.Rhs.Infinite:
			s.Ranged++
		}
	}
	for _, c := range p.Columns {
		if c.Lower.Infinite && c.Upper.Infinite {
			s.FreeCols++
		}
		if !c.Integer {
			s.Continuous++
			continue
		}
		s.Integers++
		if isBinary(c, arith) {
			s.Binaries++
		}
	}
	return s
}

func isBinary[T any](c model.Column[T], arith num.Arith[T]) bool {
	if c.Lower.Infinite || c.Upper.Infinite {
		return false
	}
	return arith.Sign(c.Lower.Value) == 0 && arith.Sign(arith.Sub(c.Upper.Value, arith.One())) == 0
}
