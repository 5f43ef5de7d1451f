// Package num provides the arithmetic the MPS reader is generic over.
//
// The reader never hard-codes a value type: every literal goes through an
// Arith implementation, so the same parser builds float64 models for fast
// checks and *big.Rat models when the reduction needs exact arithmetic.
package num

import (
	"math"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

// Arith is the set of operations the parser needs on a value type T.
// Implementations must not mutate their arguments.
type Arith[T any] interface {
	// Parse reads a numeric literal as it appears in an MPS field.
	Parse(s string) (T, error)
	Zero() T
	One() T
	Add(a, b T) T
	Sub(a, b T) T
	Neg(a T) T
	Abs(a T) T
	// Sign returns -1, 0 or +1.
	Sign(a T) int
	Format(a T) string
}

// isLiteral reports whether s is a decimal literal: an optional sign, digits
// with at most one decimal point, and an optional exponent of at most three
// digits. Infinities, NaN, hexadecimal and fractions are not literals.
func isLiteral(s string) bool {
	i, digits := sign(s, 0), 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		for i++; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i = sign(s, i+1)
		start := i
		for ; i < len(s) && isDigit(s[i]); i++ {
		}
		if n := i - start; n == 0 || n > 3 {
			return false
		}
	}
	return i == len(s)
}

func sign(s string, i int) int {
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		return i + 1
	}
	return i
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// Float is the float64 arithmetic.
type Float struct{}

var _ Arith[float64] = Float{}

func (Float) Parse(s string) (float64, error) {
	if !isLiteral(s) {
		return 0, errors.Errorf("invalid number %q", s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "number %q out of range", s)
	}
	return v, nil
}

func (Float) Zero() float64            { return 0 }
func (Float) One() float64             { return 1 }
func (Float) Add(a, b float64) float64 { return a + b }
func (Float) Sub(a, b float64) float64 { return a - b }
func (Float) Neg(a float64) float64    { return -a }
func (Float) Abs(a float64) float64    { return math.Abs(a) }
func (Float) Format(a float64) string  { return strconv.FormatFloat(a, 'g', -1, 64) }

func (Float) Sign(a float64) int {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}

// Rational is exact arithmetic over *big.Rat. Every operation returns a
// freshly allocated value, so values can be shared between rows and columns.
type Rational struct{}

var _ Arith[*big.Rat] = Rational{}

// Parse accepts exactly the literals Float accepts, so a document means the
// same under both arithmetics.
func (Rational) Parse(s string) (*big.Rat, error) {
	if !isLiteral(s) {
		return nil, errors.Errorf("invalid number %q", s)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, errors.Errorf("invalid number %q", s)
	}
	if f, _ := r.Float64(); math.IsInf(f, 0) {
		return nil, errors.Errorf("number %q out of range", s)
	}
	return r, nil
}

func (Rational) Zero() *big.Rat             { return new(big.Rat) }
func (Rational) One() *big.Rat              { return big.NewRat(1, 1) }
func (Rational) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (Rational) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func (Rational) Neg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }
func (Rational) Abs(a *big.Rat) *big.Rat    { return new(big.Rat).Abs(a) }
func (Rational) Sign(a *big.Rat) int        { return a.Sign() }

func (Rational) Format(a *big.Rat) string {
	if a.IsInt() {
		return a.Num().String()
	}
	return a.RatString()
}
