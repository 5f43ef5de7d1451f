// Package parser turns the lines of a fixed-format or free-format MPS file
// into a model.Problem. The reader is a state machine over section headers:
// each data line is handed to the handler of the section that is currently
// open, and the first failure aborts the whole parse.
package parser

import (
	"github.com/go-logr/logr"

	"github.com/scipopt/MIP-DD-sub001/internal/logging"
	"github.com/scipopt/MIP-DD-sub001/lexer"
	"github.com/scipopt/MIP-DD-sub001/linesource"
	"github.com/scipopt/MIP-DD-sub001/model"
	"github.com/scipopt/MIP-DD-sub001/num"
)

type parser[T any] struct {
	opts options
	log  logr.Logger

	path    string
	section lexer.Section
	closed  map[lexer.Section]bool
	lineNo  int
	line    string

	st *state[T]
}

// Parse reads src until ENDATA and assembles the problem it describes.
// Numbers are interpreted by arith, so the same input can be read into
// float64 or exact rationals. Sources with a Path method, such as
// *linesource.File, have their path recorded in errors. On failure the returned error is a *ParseError
// and no partial problem is returned.
func Parse[T any](src linesource.Source, arith num.Arith[T], opts ...Option) (*model.Problem[T], error) {
	o := buildOptions(opts)
	p := &parser[T]{
		opts:   o,
		log:    o.log,
		closed: map[lexer.Section]bool{},
		st:     newState(arith, o.log),
	}
	if named, ok := src.(interface{ Path() string }); ok {
		p.path = named.Path()
	}

	prob, err := p.run(src)
	if err != nil {
		pe := err.(*ParseError)
		o.recorder.ParseFailed(pe.Kind, pe.Section)
		p.log.Error(err, "read error", "path", pe.Path, "section", pe.Section.String(), "line", pe.LineNo, "kind", string(pe.Kind))
		return nil, err
	}
	o.recorder.ProblemAssembled(prob.NumRows(), prob.NumCols(), prob.NumNonzeros())
	p.log.V(logging.DEBUG).Info("problem assembled",
		"name", prob.Name, "rows", prob.NumRows(), "cols", prob.NumCols(), "nonzeros", prob.NumNonzeros())
	return prob, nil
}

func (p *parser[T]) run(src linesource.Source) (*model.Problem[T], error) {
	for src.Scan() {
		p.lineNo++
		p.line = src.Text()
		if p.opts.maxLines > 0 && p.lineNo > p.opts.maxLines {
			return nil, p.locate(failf(KindLimitExceeded, "more than %d lines", p.opts.maxLines))
		}
		p.opts.recorder.LineRead(p.section)

		ln := lexer.Classify(p.line)
		if ln.Skip() {
			continue
		}
		if !ln.Header() {
			if err := p.dispatch(ln.Fields); err != nil {
				return nil, p.locate(err)
			}
			continue
		}

		done, err := p.transition(ln)
		if err != nil {
			return nil, p.locate(err)
		}
		if done {
			prob, err := p.st.assemble()
			if err != nil {
				return nil, p.locate(err)
			}
			return prob, nil
		}
	}
	if err := src.Err(); err != nil {
		p.line = ""
		return nil, p.locate(wrapf(KindUnreadableFile, err, "reading past line %d", p.lineNo))
	}
	p.line = ""
	return nil, p.locate(failf(KindPrematureEnd, "input ended before ENDATA"))
}

// locate stamps err with the section that was active and the current line.
func (p *parser[T]) locate(err *ParseError) error {
	err.Path = p.path
	if err.Section == lexer.SectionNone {
		err.Section = p.section
	}
	if err.LineNo == 0 {
		err.LineNo = p.lineNo
		err.Line = p.line
	}
	return err
}

func (p *parser[T]) dispatch(fields []string) *ParseError {
	if p.log.V(logging.TRACE).Enabled() {
		p.log.V(logging.TRACE).Info("data line", "section", p.section.String(), "line", p.lineNo, "fields", fields)
	}

	switch p.section {
	case lexer.SectionObjsense:
		return p.st.objsense(fields)
	case lexer.SectionRows:
		return p.st.row(fields)
	case lexer.SectionColumns:
		return p.st.column(fields)
	case lexer.SectionRHS:
		return p.st.rhs(fields)
	case lexer.SectionRanges:
		return p.st.ranges(fields)
	case lexer.SectionBounds:
		return p.st.bound(fields)
	case lexer.SectionNone:
		return failf(KindUnknownSection, "data line %q outside of any section", fields[0])
	default:
		// NAME and ENDATA carry no data lines.
		return failf(KindUnknownSection, "unexpected data line %q in section %s", fields[0], p.section)
	}
}

// transition handles a header line and reports whether it was ENDATA.
func (p *parser[T]) transition(ln lexer.Line) (bool, *ParseError) {
	next := ln.Section
	switch next {
	case lexer.SectionUnsupported:
		return false, failf(KindUnsupportedSection, "section %s is not supported", ln.Word)
	case lexer.SectionName:
		if p.closed[next] || p.section != lexer.SectionNone {
			return false, failf(KindUnknownSection, "NAME must be the first section")
		}
		p.st.name = ln.Trailer()
	}
	if p.closed[next] || next == p.section {
		return false, failf(KindUnknownSection, "section %s appears twice", next)
	}

	if err := p.leave(); err != nil {
		return false, err
	}
	p.log.V(logging.DEBUG).Info("entering section", "section", next.String(), "line", p.lineNo)
	p.section = next

	switch next {
	case lexer.SectionEndata:
		return true, nil
	case lexer.SectionObjsense:
		if len(ln.Fields) > 1 {
			return false, p.st.objsense(ln.Fields[1:])
		}
	}
	return false, nil
}

// leave runs the exit hook of the section being closed.
func (p *parser[T]) leave() *ParseError {
	prev := p.section
	if prev == lexer.SectionNone {
		return nil
	}
	p.closed[prev] = true

	switch prev {
	case lexer.SectionRows:
		return p.st.freezeRows()
	case lexer.SectionColumns:
		return p.st.finishColumns()
	}
	return nil
}
