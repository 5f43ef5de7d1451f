package parser

import (
	"github.com/go-logr/logr"

	"github.com/scipopt/MIP-DD-sub001/lexer"
)

// Recorder receives parse progress. Implementations must be safe for use by
// concurrent parses.
type Recorder interface {
	LineRead(section lexer.Section)
	ParseFailed(kind ErrorKind, section lexer.Section)
	ProblemAssembled(rows, cols, nonzeros int)
}

type nopRecorder struct{}

func (nopRecorder) LineRead(lexer.Section)               {}
func (nopRecorder) ParseFailed(ErrorKind, lexer.Section) {}
func (nopRecorder) ProblemAssembled(int, int, int)       {}

type options struct {
	log      logr.Logger
	recorder Recorder
	maxLines int
}

// Option configures a parse.
type Option func(*options)

// WithLogger sets the logger used for diagnostics. The default discards.
func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithRecorder reports progress to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithMaxLines stops the parse with KindLimitExceeded once more than n lines
// were read. Zero or a negative n means no limit.
func WithMaxLines(n int) Option {
	return func(o *options) { o.maxLines = n }
}

func buildOptions(opts []Option) options {
	o := options{log: logr.Discard(), recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
