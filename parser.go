// Package mps reads LP and MIP instances in MPS format into model.Problem
// values. Files may be plain text or compressed with gzip, bzip2 or zstd.
package mps

import (
	"bytes"
	"math/big"

	"github.com/scipopt/MIP-DD-sub001/linesource"
	"github.com/scipopt/MIP-DD-sub001/model"
	"github.com/scipopt/MIP-DD-sub001/num"
	"github.com/scipopt/MIP-DD-sub001/parser"
)

// Read parses the file at path with the given arithmetic.
func Read[T any](path string, arith num.Arith[T], opts ...parser.Option) (*model.Problem[T], error) {
	f, err := linesource.Open(path)
	if err != nil {
		return nil, parser.Unreadable(err)
	}
	defer f.Close()
	return parser.Parse(f, arith, opts...)
}

// ReadFile parses the file at path into a float64 problem.
func ReadFile(path string, opts ...parser.Option) (*model.Problem[float64], error) {
	return Read[float64](path, num.Float{}, opts...)
}

// ReadFileExact parses the file at path keeping every number as an exact
// rational.
func ReadFileExact(path string, opts ...parser.Option) (*model.Problem[*big.Rat], error) {
	return Read[*big.Rat](path, num.Rational{}, opts...)
}

// Parse reads an in-memory MPS document.
func Parse(src []byte, opts ...parser.Option) (*model.Problem[float64], error) {
	return parser.Parse[float64](linesource.New(bytes.NewReader(src)), num.Float{}, opts...)
}
