package parser

import (
	"math/big"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/scipopt/MIP-DD-sub001/lexer"
	"github.com/scipopt/MIP-DD-sub001/linesource"
	"github.com/scipopt/MIP-DD-sub001/model"
	"github.com/scipopt/MIP-DD-sub001/num"
)

var testLog = logr.Discard()

func parseFloat(text string, opts ...Option) (*model.Problem[float64], error) {
	opts = append([]Option{WithLogger(testLog)}, opts...)
	return Parse[float64](linesource.FromString(text), num.Float{}, opts...)
}

func mustParse(text string) *model.Problem[float64] {
	GinkgoHelper()
	p, err := parseFloat(text)
	Expect(err).NotTo(HaveOccurred())
	return p
}

// mps joins lines into a document; a trailing ENDATA is not added.
func mps(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func expectKind(err error, kind ErrorKind) *ParseError {
	GinkgoHelper()
	Expect(err).To(HaveOccurred())
	var pe *ParseError
	Expect(err).To(BeAssignableToTypeOf(pe))
	pe = err.(*ParseError)
	Expect(pe.Kind).To(Equal(kind), "error: %v", err)
	return pe
}

func finite(v float64) model.Bound[float64] { return model.Finite(v) }
func infinite() model.Bound[float64]        { return model.Unbounded(0.0) }

var baseRows = []string{
	"NAME          TEST",
	"ROWS",
	" N  COST",
	" L  LIM1",
	" G  LIM2",
	" E  MYEQN",
}

func withRows(lines ...string) string {
	return mps(append(append([]string{}, baseRows...), lines...)...)
}

var _ = Describe("Parse", func() {
	Context("with the minimal document", func() {
		It("should read one column with an objective coefficient and one row", func() {
			p := mustParse(mps(
				"NAME SMALL",
				"ROWS",
				" N  COST",
				" L  LIM1",
				"COLUMNS",
				"    X  COST  1.0  LIM1  1.0",
				"RHS",
				"    RHS  LIM1  4.0",
				"ENDATA",
			))
			Expect(p.Name).To(Equal("SMALL"))
			Expect(p.Objective.Name).To(Equal("COST"))
			Expect(p.Objective.Entries).To(Equal([]model.ObjEntry[float64]{{Col: 0, Value: 1}}))
			Expect(p.RowNames).To(Equal([]string{"LIM1"}))
			Expect(p.Rows[0].Sense).To(Equal(model.LessEqual))
			Expect(p.Rows[0].Lhs.Infinite).To(BeTrue())
			Expect(p.Rows[0].Rhs).To(Equal(finite(4)))
			Expect(p.Columns[0].Lower).To(Equal(finite(0)))
			Expect(p.Columns[0].Upper.Infinite).To(BeTrue())
			Expect(p.Columns[0].Integer).To(BeFalse())
			Expect(p.Entries).To(Equal([]model.Triplet[float64]{{Col: 0, Row: 0, Value: 1}}))
		})

		It("should accept an empty problem", func() {
			p := mustParse(mps("NAME EMPTY", "ROWS", " N obj", "COLUMNS", "RHS", "BOUNDS", "ENDATA"))
			Expect(p.NumRows()).To(BeZero())
			Expect(p.NumCols()).To(BeZero())
			Expect(p.Objective.Name).To(Equal("obj"))
		})
	})

	Context("in ROWS", func() {
		It("should give each sense its default sides", func() {
			p := mustParse(withRows("COLUMNS", "ENDATA"))
			Expect(p.RowNames).To(Equal([]string{"LIM1", "LIM2", "MYEQN"}))

			lim1, lim2, eq := p.Rows[0], p.Rows[1], p.Rows[2]
			Expect(lim1.Lhs).To(Equal(infinite()))
			Expect(lim1.Rhs).To(Equal(finite(0)))
			Expect(lim2.Lhs).To(Equal(finite(0)))
			Expect(lim2.Rhs).To(Equal(infinite()))
			Expect(eq.Lhs).To(Equal(finite(0)))
			Expect(eq.Rhs).To(Equal(finite(0)))
			Expect(eq.Equation).To(BeTrue())
		})

		It("should keep later N rows as free rows", func() {
			p := mustParse(mps("ROWS", " N obj", " N spare", " L c1", "COLUMNS", "ENDATA"))
			Expect(p.Objective.Name).To(Equal("obj"))
			Expect(p.RowNames).To(Equal([]string{"spare", "c1"}))
			Expect(p.Rows[0].Sense).To(Equal(model.Free))
			Expect(p.Rows[0].Lhs.Infinite && p.Rows[0].Rhs.Infinite).To(BeTrue())
		})

		It("should use a placeholder objective and warn when there is no N row", func() {
			var logged []string
			sink := funcr.New(func(prefix, args string) { logged = append(logged, args) }, funcr.Options{})

			p, err := Parse[float64](linesource.FromString(mps("ROWS", " L c1", "COLUMNS", "ENDATA")), num.Float{}, WithLogger(sink))
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Objective.Name).To(Equal("artificial_empty_objective"))
			Expect(p.Objective.Entries).To(BeEmpty())
			Expect(p.Objective.Offset).To(BeZero())
			Expect(p.RowNames).To(Equal([]string{"c1"}))
			Expect(logged).To(ContainElement(ContainSubstring("no objective row")))
		})

		It("should reject a duplicate row name", func() {
			_, err := parseFloat(withRows(" L LIM1", "ENDATA"))
			pe := expectKind(err, KindDuplicateName)
			Expect(pe.Section).To(Equal(lexer.SectionRows))
			Expect(pe.LineNo).To(Equal(7))
			Expect(pe.Line).To(Equal(" L LIM1"))
		})

		It("should reject a constraint named like the objective", func() {
			_, err := parseFloat(withRows(" G COST", "ENDATA"))
			expectKind(err, KindDuplicateName)
		})

		It("should reject unknown senses and missing names", func() {
			_, err := parseFloat(withRows(" X BAD", "ENDATA"))
			expectKind(err, KindMalformedLine)
			_, err = parseFloat(withRows(" L", "ENDATA"))
			expectKind(err, KindMalformedLine)
			_, err = parseFloat(withRows(" L A B", "ENDATA"))
			expectKind(err, KindMalformedLine)
		})
	})

	Context("in COLUMNS", func() {
		It("should order each column's entries by row and keep columns contiguous", func() {
			p := mustParse(withRows(
				"COLUMNS",
				"    X  MYEQN  1   LIM1  2",
				"    X  COST   5",
				"    Y  LIM2   3   LIM1  4",
				"ENDATA",
			))
			Expect(p.Entries).To(Equal([]model.Triplet[float64]{
				{Col: 0, Row: 0, Value: 2},
				{Col: 0, Row: 2, Value: 1},
				{Col: 1, Row: 0, Value: 4},
				{Col: 1, Row: 1, Value: 3},
			}))
			Expect(p.ColumnEntries(1)).To(HaveLen(2))
			Expect(p.Objective.Entries).To(Equal([]model.ObjEntry[float64]{{Col: 0, Value: 5}}))
		})

		It("should keep repeated coefficients in file order", func() {
			p := mustParse(withRows(
				"COLUMNS",
				"    X  LIM1  1   LIM1  2",
				"ENDATA",
			))
			Expect(p.Entries).To(Equal([]model.Triplet[float64]{
				{Col: 0, Row: 0, Value: 1},
				{Col: 0, Row: 0, Value: 2},
			}))
		})

		It("should make columns inside INTORG/INTEND integral with [0, 1] bounds", func() {
			p := mustParse(withRows(
				"COLUMNS",
				"    C  LIM1  1",
				"    MARKER  'MARKER'  'INTORG'",
				"    I  LIM1  1",
				"    MARKER  'MARKER'  'INTEND'",
				"    D  LIM1  1",
				"ENDATA",
			))
			Expect(p.ColNames).To(Equal([]string{"C", "I", "D"}))
			Expect(p.Columns[1].Integer).To(BeTrue())
			Expect(p.Columns[1].Lower).To(Equal(finite(0)))
			Expect(p.Columns[1].Upper).To(Equal(finite(1)))
			Expect(p.Columns[0].Integer).To(BeFalse())
			Expect(p.Columns[2].Integer).To(BeFalse())
			Expect(p.IsMIP()).To(BeTrue())
		})

		DescribeTable("should reject mismatched markers",
			func(lines ...string) {
				_, err := parseFloat(withRows(append([]string{"COLUMNS"}, lines...)...))
				pe := expectKind(err, KindMarkerMismatch)
				Expect(pe.LineNo).To(BeNumerically(">", 6))
			},
			Entry("INTEND without INTORG", "    M  'MARKER'  'INTEND'", "ENDATA"),
			Entry("INTORG twice", "    M  'MARKER'  'INTORG'", "    M  'MARKER'  'INTORG'", "ENDATA"),
			Entry("INTORG never closed", "    M  'MARKER'  'INTORG'", "    I  LIM1  1", "ENDATA"),
			Entry("INTORG open when RHS starts", "    M  'MARKER'  'INTORG'", "RHS", "ENDATA"),
		)

		It("should reject a column that reappears after another one", func() {
			_, err := parseFloat(withRows(
				"COLUMNS",
				"    X  LIM1  1",
				"    Y  LIM1  1",
				"    X  LIM2  1",
				"ENDATA",
			))
			expectKind(err, KindDuplicateName)
		})

		It("should reject references to undeclared rows", func() {
			_, err := parseFloat(withRows("COLUMNS", "    X  NOPE  1", "ENDATA"))
			pe := expectKind(err, KindUnknownReference)
			Expect(pe.Section).To(Equal(lexer.SectionColumns))
			Expect(pe.Error()).To(ContainSubstring(`"NOPE"`))
		})

		It("should reject bad numbers and wrong field counts", func() {
			_, err := parseFloat(withRows("COLUMNS", "    X  LIM1  abc", "ENDATA"))
			expectKind(err, KindMalformedLine)
			_, err = parseFloat(withRows("COLUMNS", "    X  LIM1", "ENDATA"))
			expectKind(err, KindMalformedLine)
			_, err = parseFloat(withRows("COLUMNS", "    X  LIM1  1  LIM2", "ENDATA"))
			expectKind(err, KindMalformedLine)
		})
	})

	Context("in RHS", func() {
		It("should set the side each sense owns and the objective offset", func() {
			p := mustParse(withRows(
				" N  SPARE",
				"COLUMNS",
				"    X  LIM1  1",
				"RHS",
				"    RHS  LIM1  4   LIM2  -1",
				"    RHS  MYEQN  7  COST  2.5",
				"    RHS  SPARE  9",
				"ENDATA",
			))
			Expect(p.Rows[0].Rhs).To(Equal(finite(4)))
			Expect(p.Rows[0].Lhs).To(Equal(infinite()))
			Expect(p.Rows[1].Lhs).To(Equal(finite(-1)))
			Expect(p.Rows[1].Rhs).To(Equal(infinite()))
			Expect(p.Rows[2].Lhs).To(Equal(finite(7)))
			Expect(p.Rows[2].Rhs).To(Equal(finite(7)))
			Expect(p.Objective.Offset).To(Equal(-2.5))
			Expect(p.Rows[3].Lhs).To(Equal(infinite()))
			Expect(p.Rows[3].Rhs).To(Equal(infinite()))
		})

		It("should accept a set named RHS on an indented line", func() {
			p := mustParse(withRows("COLUMNS", "RHS", "    RHS  LIM1  3", "ENDATA"))
			Expect(p.Rows[0].Rhs).To(Equal(finite(3)))
		})

		It("should reject undeclared rows", func() {
			_, err := parseFloat(withRows("COLUMNS", "RHS", "    RHS  NOPE  3", "ENDATA"))
			pe := expectKind(err, KindUnknownReference)
			Expect(pe.Section).To(Equal(lexer.SectionRHS))
		})
	})

	Context("in RANGES", func() {
		ranged := func(lines ...string) *model.Problem[float64] {
			return mustParse(withRows(append([]string{
				"COLUMNS",
				"RHS",
				"    RHS  LIM1  4   LIM2  1",
				"    RHS  MYEQN  2",
				"RANGES",
			}, append(lines, "ENDATA")...)...))
		}

		It("should widen G rows upward and L rows downward by |R|", func() {
			p := ranged("    RNG  LIM1  -3   LIM2  2")
			Expect(p.Rows[0].Lhs).To(Equal(finite(1)))
			Expect(p.Rows[0].Rhs).To(Equal(finite(4)))
			Expect(p.Rows[1].Lhs).To(Equal(finite(1)))
			Expect(p.Rows[1].Rhs).To(Equal(finite(3)))
		})

		It("should widen E rows on the side given by the sign", func() {
			p := ranged("    RNG  MYEQN  5")
			Expect(p.Rows[2].Lhs).To(Equal(finite(2)))
			Expect(p.Rows[2].Rhs).To(Equal(finite(7)))
			Expect(p.Rows[2].Equation).To(BeFalse())
			Expect(p.Rows[2].Sense).To(Equal(model.Equal))

			p = ranged("    RNG  MYEQN  -5")
			Expect(p.Rows[2].Lhs).To(Equal(finite(-3)))
			Expect(p.Rows[2].Rhs).To(Equal(finite(2)))
			Expect(p.Rows[2].Equation).To(BeFalse())
		})

		It("should leave E rows alone for a zero range", func() {
			p := ranged("    RNG  MYEQN  0")
			Expect(p.Rows[2].Lhs).To(Equal(finite(2)))
			Expect(p.Rows[2].Rhs).To(Equal(finite(2)))
			Expect(p.Rows[2].Equation).To(BeTrue())
		})

		It("should reject the objective row and undeclared rows", func() {
			_, err := parseFloat(withRows("COLUMNS", "RANGES", "    RNG  COST  1", "ENDATA"))
			expectKind(err, KindUnknownReference)
			_, err = parseFloat(withRows("COLUMNS", "RANGES", "    RNG  NOPE  1", "ENDATA"))
			expectKind(err, KindUnknownReference)
		})
	})

	Context("in BOUNDS", func() {
		bounded := func(lines ...string) (*model.Problem[float64], error) {
			return parseFloat(withRows(append([]string{
				"COLUMNS",
				"    C  LIM1  1",
				"    MARKER  'MARKER'  'INTORG'",
				"    I  LIM1  1",
				"    MARKER  'MARKER'  'INTEND'",
				"BOUNDS",
			}, append(lines, "ENDATA")...)...))
		}
		col := func(lines ...string) func(name string) model.Column[float64] {
			p, err := bounded(lines...)
			Expect(err).NotTo(HaveOccurred())
			return func(name string) model.Column[float64] {
				j, ok := p.ColIndex(name)
				Expect(ok).To(BeTrue())
				return p.Columns[j]
			}
		}

		It("should apply valued bounds", func() {
			c := col(" UP BND C 5", " LO BND C -2")("C")
			Expect(c.Lower).To(Equal(finite(-2)))
			Expect(c.Upper).To(Equal(finite(5)))

			c = col(" FX BND C 3")("C")
			Expect(c.Lower).To(Equal(finite(3)))
			Expect(c.Upper).To(Equal(finite(3)))
		})

		It("should apply infinite bounds", func() {
			c := col(" MI BND C")("C")
			Expect(c.Lower).To(Equal(infinite()))
			Expect(c.Upper).To(Equal(infinite()))

			c = col(" FR BND C", " PL BND C")("C")
			Expect(c.Lower).To(Equal(infinite()))
			Expect(c.Upper).To(Equal(infinite()))

			c = col(" UP BND C 4", " PL BND C")("C")
			Expect(c.Upper).To(Equal(infinite()))
		})

		It("should tolerate a value on bounds that take none", func() {
			c := col(" MI BND C 0")("C")
			Expect(c.Lower).To(Equal(infinite()))
		})

		It("should make BV, LI and UI columns integral", func() {
			c := col(" BV BND C")("C")
			Expect(c.Integer).To(BeTrue())
			Expect(c.Lower).To(Equal(finite(0)))
			Expect(c.Upper).To(Equal(finite(1)))

			c = col(" LI BND C 2")("C")
			Expect(c.Integer).To(BeTrue())
			Expect(c.Lower).To(Equal(finite(2)))
			Expect(c.Upper).To(Equal(infinite()))

			c = col(" UI BND C 9")("C")
			Expect(c.Integer).To(BeTrue())
			Expect(c.Lower).To(Equal(finite(0)))
			Expect(c.Upper).To(Equal(finite(9)))
		})

		It("should let BV replace an earlier domain", func() {
			c := col(" UP BND C 5", " BV BND C")("C")
			Expect(c.Integer).To(BeTrue())
			Expect(c.Lower).To(Equal(finite(0)))
			Expect(c.Upper).To(Equal(finite(1)))

			c = col(" MI BND C", " BV BND C")("C")
			Expect(c.Integer).To(BeTrue())
			Expect(c.Lower).To(Equal(finite(0)))
			Expect(c.Upper).To(Equal(finite(1)))

			c = col(" LO BND I 3", " UP BND I 9", " BV BND I")("I")
			Expect(c.Lower).To(Equal(finite(0)))
			Expect(c.Upper).To(Equal(finite(1)))
		})

		It("should drop the [0, 1] default of an integral column once one side is bounded", func() {
			c := col(" LO BND I 2")("I")
			Expect(c.Lower).To(Equal(finite(2)))
			Expect(c.Upper).To(Equal(infinite()))

			c = col(" UP BND I 7")("I")
			Expect(c.Lower).To(Equal(finite(0)))
			Expect(c.Upper).To(Equal(finite(7)))
		})

		It("should keep explicit sides of an integral column", func() {
			c := col(" UP BND I 7", " LO BND I 2")("I")
			Expect(c.Lower).To(Equal(finite(2)))
			Expect(c.Upper).To(Equal(finite(7)))
		})

		It("should keep the [0, 1] default of an integral column without bounds", func() {
			c := col(" UP BND C 3")("I")
			Expect(c.Lower).To(Equal(finite(0)))
			Expect(c.Upper).To(Equal(finite(1)))
		})

		It("should reject unknown codes, columns and shapes", func() {
			_, err := bounded(" XX BND C 1")
			expectKind(err, KindUnknownBoundCode)
			_, err = bounded(" UP BND NOPE 1")
			expectKind(err, KindUnknownReference)
			_, err = bounded(" UP BND C")
			expectKind(err, KindMalformedLine)
			_, err = bounded(" UP BND C x")
			expectKind(err, KindMalformedLine)
			_, err = bounded(" MI BND")
			expectKind(err, KindMalformedLine)
		})

		It("should reject indicator constraints", func() {
			_, err := bounded(" INDICATORS BND C 1")
			expectKind(err, KindUnsupportedSection)
		})
	})

	Context("with OBJSENSE", func() {
		It("should read the sense from the next line or the header", func() {
			p := mustParse(mps("OBJSENSE", "    MAX", "ROWS", " N obj", "COLUMNS", "ENDATA"))
			Expect(p.Objective.Maximize).To(BeTrue())

			p = mustParse(mps("OBJSENSE MAXIMIZE", "ROWS", " N obj", "COLUMNS", "ENDATA"))
			Expect(p.Objective.Maximize).To(BeTrue())

			p = mustParse(mps("OBJSENSE", "    MIN", "ROWS", " N obj", "COLUMNS", "ENDATA"))
			Expect(p.Objective.Maximize).To(BeFalse())
		})

		It("should reject other senses", func() {
			_, err := parseFloat(mps("OBJSENSE", "    UP", "ROWS", "ENDATA"))
			expectKind(err, KindMalformedLine)
		})
	})

	Context("with section structure errors", func() {
		It("should reject data before any section", func() {
			_, err := parseFloat(mps("    X  LIM1  1", "ENDATA"))
			pe := expectKind(err, KindUnknownSection)
			Expect(pe.Section).To(Equal(lexer.SectionNone))
			Expect(pe.LineNo).To(Equal(1))
		})

		It("should reject a section that appears twice", func() {
			_, err := parseFloat(withRows("COLUMNS", "ROWS", "ENDATA"))
			expectKind(err, KindUnknownSection)
			_, err = parseFloat(withRows("COLUMNS", "RHS", "COLUMNS", "ENDATA"))
			expectKind(err, KindUnknownSection)
		})

		DescribeTable("should reject any other repeated section",
			func(lines ...string) {
				_, err := parseFloat(withRows(append([]string{"COLUMNS", "    X  LIM1  1"}, lines...)...))
				pe := expectKind(err, KindUnknownSection)
				Expect(pe.Err).To(MatchError(ContainSubstring("appears twice")))
			},
			Entry("RHS right after RHS", "RHS", "RHS", "ENDATA"),
			Entry("RHS after BOUNDS", "RHS", "BOUNDS", "RHS", "ENDATA"),
			Entry("RANGES twice", "RANGES", "    R  LIM1  1", "RANGES", "ENDATA"),
			Entry("BOUNDS twice", "BOUNDS", " UP BND X 1", "BOUNDS", "ENDATA"),
			Entry("OBJSENSE after OBJSENSE", "OBJSENSE", "    MAX", "OBJSENSE", "ENDATA"),
		)

		It("should reject unsupported extensions", func() {
			_, err := parseFloat(withRows("COLUMNS", "QUADOBJ", "ENDATA"))
			pe := expectKind(err, KindUnsupportedSection)
			Expect(pe.Line).To(Equal("QUADOBJ"))
		})

		It("should fail on input without ENDATA", func() {
			_, err := parseFloat(withRows("COLUMNS", "    X  LIM1  1"))
			pe := expectKind(err, KindPrematureEnd)
			Expect(pe.Section).To(Equal(lexer.SectionColumns))
		})

		It("should stop after the line budget", func() {
			_, err := parseFloat(withRows("COLUMNS", "ENDATA"), WithMaxLines(3))
			pe := expectKind(err, KindLimitExceeded)
			Expect(pe.LineNo).To(Equal(4))

			_, err = parseFloat(withRows("COLUMNS", "ENDATA"), WithMaxLines(8))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should ignore comments and blank lines", func() {
			p := mustParse(mps("* header", "", "ROWS", "* c", " N obj", "", " L c1", "COLUMNS", "ENDATA"))
			Expect(p.RowNames).To(Equal([]string{"c1"}))
		})

		It("should ignore everything after ENDATA", func() {
			p := mustParse(mps("ROWS", " N obj", "COLUMNS", "ENDATA", "garbage here"))
			Expect(p.Objective.Name).To(Equal("obj"))
		})
	})

	Context("with exact arithmetic", func() {
		It("should keep decimal coefficients exact", func() {
			p, err := Parse[*big.Rat](linesource.FromString(withRows(
				"COLUMNS",
				"    X  LIM1  0.1   COST  1e-1",
				"RHS",
				"    RHS  LIM1  0.3",
				"RANGES",
				"    RNG  LIM1  0.2",
				"ENDATA",
			)), num.Rational{}, WithLogger(testLog))
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Entries[0].Value.Cmp(big.NewRat(1, 10))).To(BeZero())
			Expect(p.Objective.Entries[0].Value.Cmp(big.NewRat(1, 10))).To(BeZero())
			Expect(p.Rows[0].Lhs.Value.Cmp(big.NewRat(1, 10))).To(BeZero())
			Expect(p.Rows[0].Rhs.Value.Cmp(big.NewRat(3, 10))).To(BeZero())
		})
	})

	Context("with either arithmetic", func() {
		doc := withRows(
			"COLUMNS",
			"    X  LIM1  .5    COST  -2.",
			"    Y  LIM2  1E+2  MYEQN  +0.125",
			"RHS",
			"    RHS  COST  -1.5e0  LIM1  4",
			"    RHS  LIM2  1e-400",
			"BOUNDS",
			" UP BND X 7.25",
			" LO BND Y -3",
			"ENDATA",
		)

		It("should read the same values as float64 and as rationals", func() {
			f, err := parseFloat(doc)
			Expect(err).NotTo(HaveOccurred())
			r, err := Parse[*big.Rat](linesource.FromString(doc), num.Rational{}, WithLogger(testLog))
			Expect(err).NotTo(HaveOccurred())

			toFloat := func(v *big.Rat) float64 {
				x, _ := v.Float64()
				return x
			}
			bound := func(b model.Bound[*big.Rat]) model.Bound[float64] {
				if b.Infinite {
					return infinite()
				}
				return finite(toFloat(b.Value))
			}

			Expect(r.Entries).To(HaveLen(len(f.Entries)))
			for i, e := range r.Entries {
				Expect(toFloat(e.Value)).To(Equal(f.Entries[i].Value), "entry %d", i)
			}
			for i, e := range r.Objective.Entries {
				Expect(toFloat(e.Value)).To(Equal(f.Objective.Entries[i].Value))
			}
			Expect(toFloat(r.Objective.Offset)).To(Equal(f.Objective.Offset))
			for i, row := range r.Rows {
				Expect(bound(row.Lhs)).To(Equal(f.Rows[i].Lhs), row.Name)
				Expect(bound(row.Rhs)).To(Equal(f.Rows[i].Rhs), row.Name)
			}
			for j, c := range r.Columns {
				Expect(bound(c.Lower)).To(Equal(f.Columns[j].Lower), c.Name)
				Expect(bound(c.Upper)).To(Equal(f.Columns[j].Upper), c.Name)
			}
			Expect(r.Rows[1].Lhs.Value.Sign()).To(Equal(1), "exact arithmetic keeps 1e-400")
		})

		DescribeTable("should reject the same literals",
			func(literal string) {
				bad := withRows("COLUMNS", "    X  LIM1  1", "BOUNDS", " UP BND X "+literal, "ENDATA")
				_, err := parseFloat(bad)
				expectKind(err, KindMalformedLine)
				_, err = Parse[*big.Rat](linesource.FromString(bad), num.Rational{}, WithLogger(testLog))
				expectKind(err, KindMalformedLine)

				bad = withRows("COLUMNS", "    X  LIM1  1", "RHS", "    RHS  LIM1  "+literal, "ENDATA")
				_, err = parseFloat(bad)
				expectKind(err, KindMalformedLine)
				_, err = Parse[*big.Rat](linesource.FromString(bad), num.Rational{}, WithLogger(testLog))
				expectKind(err, KindMalformedLine)
			},
			Entry("infinity", "Infinity"),
			Entry("short infinity", "-inf"),
			Entry("not a number", "NaN"),
			Entry("fraction", "1/3"),
			Entry("hexadecimal", "0x10"),
			Entry("overflow", "1e400"),
		)
	})

	Context("with a recorder", func() {
		It("should see every line and the outcome", func() {
			rec := &countingRecorder{lines: map[lexer.Section]int{}}
			_, err := parseFloat(withRows("COLUMNS", "    X  LIM1  1", "ENDATA"), WithRecorder(rec))
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.lines[lexer.SectionRows]).To(Equal(5))
			Expect(rec.lines[lexer.SectionColumns]).To(Equal(2))
			Expect(rec.assembled).To(Equal([3]int{3, 1, 1}))

			_, err = parseFloat(withRows("COLUMNS", "    X  NOPE  1", "ENDATA"), WithRecorder(rec))
			Expect(err).To(HaveOccurred())
			Expect(rec.failed).To(Equal(KindUnknownReference))
		})
	})
})

type countingRecorder struct {
	lines     map[lexer.Section]int
	failed    ErrorKind
	assembled [3]int
}

func (r *countingRecorder) LineRead(s lexer.Section) { r.lines[s]++ }

func (r *countingRecorder) ParseFailed(kind ErrorKind, _ lexer.Section) { r.failed = kind }

func (r *countingRecorder) ProblemAssembled(rows, cols, nnz int) {
	r.assembled = [3]int{rows, cols, nnz}
}
