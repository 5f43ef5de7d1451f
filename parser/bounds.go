package parser

import (
	"github.com/scipopt/MIP-DD-sub001/model"
)

type boundCode uint8

const (
	boundUP boundCode = iota
	boundLO
	boundFX
	boundLI
	boundUI
	boundMI
	boundPL
	boundBV
	boundFR
)

var boundCodes = map[string]boundCode{
	"UP": boundUP,
	"LO": boundLO,
	"FX": boundFX,
	"LI": boundLI,
	"UI": boundUI,
	"MI": boundMI,
	"PL": boundPL,
	"BV": boundBV,
	"FR": boundFR,
}

// valued reports codes that carry a number in the fourth field.
func (c boundCode) valued() bool {
	switch c {
	case boundUP, boundLO, boundFX, boundLI, boundUI:
		return true
	}
	return false
}

func (c boundCode) setsLower() bool {
	return c == boundLO || c == boundFX || c == boundLI
}

func (c boundCode) setsUpper() bool {
	return c == boundUP || c == boundFX || c == boundUI
}

// bound handles a BOUNDS line: "<code> <set> <col> [<value>]".
func (st *state[T]) bound(fields []string) *ParseError {
	if fields[0] == "INDICATORS" {
		return failf(KindUnsupportedSection, "indicator constraints are not supported")
	}
	code, ok := boundCodes[fields[0]]
	if !ok {
		return failf(KindUnknownBoundCode, "unknown bound code %q", fields[0])
	}
	switch {
	case code.valued() && len(fields) != 4:
		return failf(KindMalformedLine, "bound %s needs 4 fields, got %d", fields[0], len(fields))
	case !code.valued() && len(fields) != 3 && len(fields) != 4:
		return failf(KindMalformedLine, "bound %s needs 3 fields, got %d", fields[0], len(fields))
	}

	c, ok := st.cols.lookup(fields[2])
	if !ok {
		return failf(KindUnknownReference, "bound on undeclared column %q", fields[2])
	}

	zero := st.arith.Zero()
	switch code {
	case boundMI:
		c.Lower, c.lower = model.Unbounded(zero), boundExplicit
	case boundPL:
		c.Upper, c.upper = model.Unbounded(zero), boundExplicit
	case boundFR:
		c.Lower, c.lower = model.Unbounded(zero), boundExplicit
		c.Upper, c.upper = model.Unbounded(zero), boundExplicit
	case boundBV:
		c.Integer = true
		c.Lower, c.lower = model.Finite(zero), boundExplicit
		c.Upper, c.upper = model.Finite(st.arith.One()), boundExplicit
	default:
		v, err := st.arith.Parse(fields[3])
		if err != nil {
			return wrapf(KindMalformedLine, err, "bound %s of column %q", fields[0], fields[2])
		}
		st.valuedBound(c, code, v)
	}
	return nil
}

// valuedBound applies UP/LO/FX/LI/UI. On an integral column a side that was
// never set explicitly falls back to [0, +inf) rather than the [0, 1] the
// INTORG block gave it.
func (st *state[T]) valuedBound(c *columnEntry[T], code boundCode, v T) {
	if code == boundLI || code == boundUI {
		c.Integer = true
	}
	lo, up := code.setsLower(), code.setsUpper()
	if lo {
		c.Lower, c.lower = model.Finite(v), boundExplicit
	}
	if up {
		c.Upper, c.upper = model.Finite(v), boundExplicit
	}
	if !c.Integer {
		return
	}
	if !lo && c.lower == boundUnset {
		c.Lower = model.Finite(st.arith.Zero())
	}
	if !up && c.upper == boundUnset {
		c.Upper = model.Unbounded(st.arith.Zero())
	}
}
