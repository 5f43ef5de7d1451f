package lexer

import "strings"

// Section is an MPS section key.
type Section int

const (
	SectionNone Section = iota
	SectionName
	SectionObjsense
	SectionRows
	SectionColumns
	SectionRHS
	SectionRanges
	SectionBounds
	SectionEndata
	// SectionUnsupported marks extended headers the reader rejects.
	SectionUnsupported
)

var keywords = map[string]Section{
	"NAME":     SectionName,
	"OBJSENSE": SectionObjsense,
	"ROWS":     SectionRows,
	"COLUMNS":  SectionColumns,
	"RHS":      SectionRHS,
	"RANGES":   SectionRanges,
	"BOUNDS":   SectionBounds,
	"ENDATA":   SectionEndata,

	"INDICATORS": SectionUnsupported,
	"SOS":        SectionUnsupported,
	"QUADOBJ":    SectionUnsupported,
	"QMATRIX":    SectionUnsupported,
	"QSECTION":   SectionUnsupported,
	"QCMATRIX":   SectionUnsupported,
	"CSECTION":   SectionUnsupported,
	"OBJNAME":    SectionUnsupported,
	"USERCUTS":   SectionUnsupported,
	"LAZYCONS":   SectionUnsupported,
	"GENCONS":    SectionUnsupported,
}

func (s Section) String() string {
	switch s {
	case SectionNone:
		return "NONE"
	case SectionName:
		return "NAME"
	case SectionObjsense:
		return "OBJSENSE"
	case SectionRows:
		return "ROWS"
	case SectionColumns:
		return "COLUMNS"
	case SectionRHS:
		return "RHS"
	case SectionRanges:
		return "RANGES"
	case SectionBounds:
		return "BOUNDS"
	case SectionEndata:
		return "ENDATA"
	case SectionUnsupported:
		return "UNSUPPORTED"
	default:
		return "UNKNOWN"
	}
}

// Lookup maps a word to its section key. Matching is exact and
// case-sensitive; any other word yields SectionNone.
func Lookup(word string) Section {
	return keywords[word]
}

// Line is one classified input line.
type Line struct {
	// Section is the header key, or SectionNone for data, blank and comment
	// lines.
	Section Section
	// Word is the first word, Col its 1-based column.
	Word string
	Col  int
	// Rest is the text after the first word.
	Rest string
	// Fields holds every word of the line, Word included.
	Fields  []string
	Comment bool
}

// Skip reports lines that carry no data: blanks and comments.
func (ln Line) Skip() bool {
	return ln.Comment || ln.Word == ""
}

// Header reports whether the line opens a section.
func (ln Line) Header() bool {
	return ln.Section != SectionNone
}

// Trailer returns Rest without surrounding whitespace; for a NAME header it
// is the problem name.
func (ln Line) Trailer() string {
	return strings.TrimSpace(ln.Rest)
}

// Classify extracts the first word of a line and decides whether the line is
// a section header. A keyword counts as a header when it starts in column 1
// or stands alone on its line, so an indented data line whose set name
// happens to be "RHS" or "BOUNDS" stays data.
func Classify(text string) Line {
	l := New(text)
	tok := l.Next()
	switch tok.Type {
	case TokenComment:
		return Line{Comment: true, Rest: tok.Text}
	case TokenEOF:
		return Line{}
	}

	ln := Line{Word: tok.Text, Col: tok.Col, Rest: l.Rest(), Fields: []string{tok.Text}}
	for t := l.Next(); t.Type == TokenWord; t = l.Next() {
		ln.Fields = append(ln.Fields, t.Text)
	}
	if s := Lookup(ln.Word); s != SectionNone && (ln.Col == 1 || len(ln.Fields) == 1) {
		ln.Section = s
	}
	return ln
}
