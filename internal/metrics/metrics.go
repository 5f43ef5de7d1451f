// Package metrics counts what the reader does and exports it in the
// Prometheus text format, either to a writer or to a node-exporter textfile.
package metrics

import (
	"io"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/scipopt/MIP-DD-sub001/lexer"
	"github.com/scipopt/MIP-DD-sub001/parser"
)

const namespace = "mps"

// Recorder implements parser.Recorder on top of its own registry.
type Recorder struct {
	registry *prometheus.Registry

	lines     *prometheus.CounterVec
	failures  *prometheus.CounterVec
	assembled prometheus.Counter
	rows      prometheus.Gauge
	cols      prometheus.Gauge
	nonzeros  prometheus.Gauge
}

var _ parser.Recorder = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		lines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_read_total",
			Help:      "Input lines read, by the section open when the line was read.",
		}, []string{"section"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_failures_total",
			Help:      "Failed parses by error kind and section.",
		}, []string{"kind", "section"}),
		assembled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "problems_assembled_total",
			Help:      "Problems read successfully.",
		}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_problem_rows",
			Help:      "Constraint rows of the last problem read.",
		}),
		cols: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_problem_columns",
			Help:      "Columns of the last problem read.",
		}),
		nonzeros: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_problem_nonzeros",
			Help:      "Matrix coefficients of the last problem read.",
		}),
	}
	r.registry.MustRegister(r.lines, r.failures, r.assembled, r.rows, r.cols, r.nonzeros)
	return r
}

func (r *Recorder) LineRead(section lexer.Section) {
	r.lines.WithLabelValues(section.String()).Inc()
}

func (r *Recorder) ParseFailed(kind parser.ErrorKind, section lexer.Section) {
	r.failures.WithLabelValues(string(kind), section.String()).Inc()
}

func (r *Recorder) ProblemAssembled(rows, cols, nonzeros int) {
	r.assembled.Inc()
	r.rows.Set(float64(rows))
	r.cols.Set(float64(cols))
	r.nonzeros.Set(float64(nonzeros))
}

// Registry exposes the collectors, e.g. for an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile atomically replaces path with the current metrics.
func (r *Recorder) WriteTextfile(path string) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, r.registry), "write metrics to %s", path)
}

// Write encodes the current metrics to w in the text exposition format.
func (r *Recorder) Write(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return errors.Wrapf(err, "encode %s", mf.GetName())
		}
	}
	return nil
}
