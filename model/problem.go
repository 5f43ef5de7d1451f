// Package model holds the problem built by the MPS reader.
//
// A Problem is assembled once, at the end of a successful parse, and is not
// modified afterwards by the reader. Values are generic over the arithmetic
// chosen by the caller (see package num).
package model

// Sense is the declared sense of a constraint row.
type Sense int

const (
	LessEqual Sense = iota
	GreaterEqual
	Equal
	Free
)

// String returns the MPS row code of the sense.
func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "L"
	case GreaterEqual:
		return "G"
	case Equal:
		return "E"
	case Free:
		return "N"
	default:
		return "?"
	}
}

// Bound is one side of a row or column interval. When Infinite is set the
// side is unbounded and Value is the zero value of the arithmetic.
type Bound[T any] struct {
	Value    T
	Infinite bool
}

// Finite returns a finite bound at v.
func Finite[T any](v T) Bound[T] {
	return Bound[T]{Value: v}
}

// Unbounded returns an infinite bound carrying zero as its value.
func Unbounded[T any](zero T) Bound[T] {
	return Bound[T]{Value: zero, Infinite: true}
}

// Row is a constraint lhs <= a·x <= rhs.
type Row[T any] struct {
	Name  string
	Sense Sense
	Lhs   Bound[T]
	Rhs   Bound[T]
	// Equation is set for E rows until a non-zero range widens them.
	Equation bool
}

// Column is a variable with its domain.
type Column[T any] struct {
	Name    string
	Lower   Bound[T]
	Upper   Bound[T]
	Integer bool
}

// Triplet is one nonzero of the constraint matrix.
type Triplet[T any] struct {
	Col   int
	Row   int
	Value T
}

// ObjEntry is one nonzero objective coefficient.
type ObjEntry[T any] struct {
	Col   int
	Value T
}

// Objective is the sparse objective function plus a constant offset.
type Objective[T any] struct {
	Name     string
	Entries  []ObjEntry[T]
	Offset   T
	Maximize bool
}

// Problem is a loaded MPS instance. Entries are grouped by column in column
// order, and ordered by ascending row inside each column.
type Problem[T any] struct {
	Name      string
	Objective Objective[T]
	Rows      []Row[T]
	Columns   []Column[T]
	Entries   []Triplet[T]
	RowNames  []string
	ColNames  []string

	rowIndex map[string]int
	colIndex map[string]int
	colStart []int
}

// New builds a Problem and its lookup tables. The slices are owned by the
// returned value.
func New[T any](name string, obj Objective[T], rows []Row[T], cols []Column[T], entries []Triplet[T]) *Problem[T] {
	p := &Problem[T]{
		Name:      name,
		Objective: obj,
		Rows:      rows,
		Columns:   cols,
		Entries:   entries,
		RowNames:  make([]string, len(rows)),
		ColNames:  make([]string, len(cols)),
		rowIndex:  make(map[string]int, len(rows)),
		colIndex:  make(map[string]int, len(cols)),
		colStart:  make([]int, len(cols)+1),
	}
	for i, r := range rows {
		p.RowNames[i] = r.Name
		p.rowIndex[r.Name] = i
	}
	for j, c := range cols {
		p.ColNames[j] = c.Name
		p.colIndex[c.Name] = j
	}
	for _, e := range entries {
		if e.Col >= 0 && e.Col < len(cols) {
			p.colStart[e.Col+1]++
		}
	}
	for j := 0; j < len(cols); j++ {
		p.colStart[j+1] += p.colStart[j]
	}
	return p
}

func (p *Problem[T]) NumRows() int     { return len(p.Rows) }
func (p *Problem[T]) NumCols() int     { return len(p.Columns) }
func (p *Problem[T]) NumNonzeros() int { return len(p.Entries) }

// RowIndex looks up a constraint row by name. The objective row is not a
// constraint and is never found.
func (p *Problem[T]) RowIndex(name string) (int, bool) {
	i, ok := p.rowIndex[name]
	return i, ok
}

// ColIndex looks up a column by name.
func (p *Problem[T]) ColIndex(name string) (int, bool) {
	j, ok := p.colIndex[name]
	return j, ok
}

// ColumnEntries returns the nonzeros of column j, ascending by row. The
// returned slice aliases Entries.
func (p *Problem[T]) ColumnEntries(j int) []Triplet[T] {
	if j < 0 || j >= len(p.Columns) {
		return nil
	}
	return p.Entries[p.colStart[j]:p.colStart[j+1]]
}

// IsMIP reports whether any column is integral.
func (p *Problem[T]) IsMIP() bool {
	for _, c := range p.Columns {
		if c.Integer {
			return true
		}
	}
	return false
}
