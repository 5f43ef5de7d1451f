// Package solution reads primal solutions in the plain text format written by
// SCIP and checks them against a problem.
package solution

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/scipopt/MIP-DD-sub001/linesource"
	"github.com/scipopt/MIP-DD-sub001/model"
)

// Read parses "<column> <value>" lines into a dense point for p. Columns that
// are not listed are zero. Status, objective and comment lines are skipped.
func Read(r io.Reader, p *model.Problem[float64]) ([]float64, error) {
	x := make([]float64, p.NumCols())
	sc := linesource.New(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if skip(line) {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 {
			return nil, errors.Errorf("line %d: want a column and a value, got %q", n, line)
		}
		j, ok := p.ColIndex(f[0])
		if !ok {
			return nil, errors.Errorf("line %d: unknown column %q", n, f[0])
		}
		v, err := parseValue(f[1])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		x[j] = v
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read solution")
	}
	return x, nil
}

// ReadFile is Read on the file at path.
func ReadFile(path string, p *model.Problem[float64]) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return Read(bufio.NewReader(f), p)
}

func skip(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "solution status:") ||
		strings.HasPrefix(line, "objective value:") ||
		strings.HasPrefix(line, "no solution available")
}

func parseValue(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "+infinity", "infinity", "inf":
		return math.Inf(1), nil
	case "-infinity", "-inf":
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, errors.Wrapf(err, "invalid value %q", s)
}

// Check is the result of evaluating a point.
type Check struct {
	Objective float64 `yaml:"objective"`
	// MaxViolation is the largest amount by which a row or column bound is
	// exceeded; Violated counts rows and columns beyond tolerance.
	MaxViolation float64 `yaml:"maxViolation"`
	Violated     int     `yaml:"violated"`
	Fractional   int     `yaml:"fractional"`
}

// Evaluate computes the objective of x and how far it is from feasible.
func Evaluate(p *model.Problem[float64], x []float64, tol float64) (Check, error) {
	var c Check
	obj, err := model.ObjectiveValue(p, x)
	if err != nil {
		return c, err
	}
	c.Objective = obj

	act, err := model.Activities(p, x)
	if err != nil {
		return c, err
	}
	for i, r := range p.Rows {
		c.record(model.Violation(r, act[i]), tol)
	}
	for j, col := range p.Columns {
		bounds := model.Row[float64]{Lhs: col.Lower, Rhs: col.Upper}
		c.record(model.Violation(bounds, x[j]), tol)
		if col.Integer && math.Abs(x[j]-math.Round(x[j])) > tol {
			c.Fractional++
		}
	}
	return c, nil
}

func (c *Check) record(v, tol float64) {
	c.MaxViolation = math.Max(c.MaxViolation, v)
	if v > tol {
		c.Violated++
	}
}
