package parser

// objsense handles the OBJSENSE value, given inline on the header or on the
// following data line.
func (st *state[T]) objsense(fields []string) *ParseError {
	if len(fields) != 1 {
		return failf(KindMalformedLine, "OBJSENSE needs one value, got %d", len(fields))
	}
	switch fields[0] {
	case "MAX", "MAXIMIZE":
		st.maximize = true
	case "MIN", "MINIMIZE":
		st.maximize = false
	default:
		return failf(KindMalformedLine, "unknown objective sense %q", fields[0])
	}
	return nil
}
