// Command mpsdebug reads MPS instances and reports what the reader made of
// them.
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	mps "github.com/scipopt/MIP-DD-sub001"
	"github.com/scipopt/MIP-DD-sub001/internal/config"
	"github.com/scipopt/MIP-DD-sub001/internal/logging"
	"github.com/scipopt/MIP-DD-sub001/internal/metrics"
	"github.com/scipopt/MIP-DD-sub001/internal/solution"
	"github.com/scipopt/MIP-DD-sub001/model"
	"github.com/scipopt/MIP-DD-sub001/num"
	"github.com/scipopt/MIP-DD-sub001/parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "mpsdebug",
		Short:        "Inspect LP and MIP instances in MPS format",
		SilenceUsage: true,
	}
	root.AddCommand(newInspectCmd())
	return root
}

type inspectFlags struct {
	configFile string
	rows       bool
	cols       bool
	solution   string
	tolerance  float64
	matrix     bool
}

// report is what inspect prints.
type report struct {
	Path     string          `yaml:"path"`
	Exact    bool            `yaml:"exact"`
	Stats    mps.Stats       `yaml:"stats"`
	RowNames []string        `yaml:"rows,omitempty"`
	ColNames []string        `yaml:"columns,omitempty"`
	Solution *solution.Check `yaml:"solution,omitempty"`
	Matrix   string          `yaml:"matrix,omitempty"`
}

func newInspectCmd() *cobra.Command {
	var f inspectFlags
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Parse a file and print its statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.New(), f.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			log, err := logging.NewLogger(cfg.Verbosity, cfg.Development)
			if err != nil {
				return err
			}
			rec := metrics.NewRecorder()

			rep, err := inspect(args[0], cfg, f, log, rec)
			if err == nil {
				err = writeReport(cmd.OutOrStdout(), cfg.Output, rep)
			}
			if cfg.MetricsFile != "" {
				if merr := writeMetrics(cmd.OutOrStdout(), cfg.MetricsFile, rec); merr != nil {
					log.Error(merr, "cannot write metrics", "path", cfg.MetricsFile)
				}
			}
			return err
		},
	}

	fs := cmd.Flags()
	config.AddFlags(fs)
	fs.StringVar(&f.configFile, "config", "", "YAML configuration file")
	fs.BoolVar(&f.rows, "rows", false, "list row names")
	fs.BoolVar(&f.cols, "cols", false, "list column names")
	fs.StringVar(&f.solution, "solution", "", "check a SCIP solution file against the problem")
	fs.Float64Var(&f.tolerance, "tolerance", 1e-6, "feasibility tolerance for --solution")
	fs.BoolVar(&f.matrix, "matrix", false, "print the constraint matrix of a small problem")
	return cmd
}

// writeMetrics writes the parse metrics to path, or to w when path is "-".
func writeMetrics(w io.Writer, path string, rec *metrics.Recorder) error {
	if path == "-" {
		return rec.Write(w)
	}
	return rec.WriteTextfile(path)
}

func inspect(path string, cfg *config.Config, f inspectFlags, log logr.Logger, rec parser.Recorder) (*report, error) {
	opts := cfg.ParserOptions(log, rec)
	rep := &report{Path: path, Exact: cfg.Exact}

	if cfg.Exact {
		if f.solution != "" || f.matrix {
			return nil, fmt.Errorf("--solution and --matrix need floating point arithmetic")
		}
		p, err := mps.ReadFileExact(path, opts...)
		if err != nil {
			return nil, err
		}
		rep.Stats = mps.Summarize(p, num.Rational{})
		rep.names(p.RowNames, p.ColNames, f)
		return rep, nil
	}

	p, err := mps.ReadFile(path, opts...)
	if err != nil {
		return nil, err
	}
	rep.Stats = mps.Summarize(p, num.Float{})
	rep.names(p.RowNames, p.ColNames, f)

	if f.matrix {
		a, err := model.DenseMatrix(p)
		if err != nil {
			return nil, err
		}
		if a != nil {
			rep.Matrix = fmt.Sprintf("%v", mat.Formatted(a, mat.Squeeze()))
		}
	}
	if f.solution != "" {
		x, err := solution.ReadFile(f.solution, p)
		if err != nil {
			return nil, err
		}
		check, err := solution.Evaluate(p, x, f.tolerance)
		if err != nil {
			return nil, err
		}
		rep.Solution = &check
	}
	return rep, nil
}

func (r *report) names(rows, cols []string, f inspectFlags) {
	if f.rows {
		r.RowNames = rows
	}
	if f.cols {
		r.ColNames = cols
	}
}

func writeReport(w io.Writer, format string, r *report) error {
	if format == config.OutputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	s := r.Stats
	sense := "minimize"
	if s.Maximize {
		sense = "maximize"
	}
	fmt.Fprintf(tw, "file:\t%s\n", r.Path)
	fmt.Fprintf(tw, "name:\t%s\n", s.Name)
	fmt.Fprintf(tw, "objective:\t%s %s (%d entries, offset %s)\n", sense, s.Objective, s.ObjectiveEntries, s.Offset)
	fmt.Fprintf(tw, "rows:\t%d (%d equations, %d ranged, %d free)\n", s.Rows, s.Equations, s.Ranged, s.FreeRows)
	fmt.Fprintf(tw, "columns:\t%d (%d continuous, %d integer, %d binary, %d free)\n",
		s.Columns, s.Continuous, s.Integers, s.Binaries, s.FreeCols)
	fmt.Fprintf(tw, "nonzeros:\t%d (density %.4g)\n", s.Nonzeros, s.Density)
	if c := r.Solution; c != nil {
		fmt.Fprintf(tw, "solution:\tobjective %g, max violation %g, %d violated, %d fractional\n",
			c.Objective, c.MaxViolation, c.Violated, c.Fractional)
	}
	for _, name := range r.RowNames {
		fmt.Fprintf(tw, "row:\t%s\n", name)
	}
	for _, name := range r.ColNames {
		fmt.Fprintf(tw, "column:\t%s\n", name)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if r.Matrix != "" {
		_, err := fmt.Fprintf(w, "matrix:\n%s\n", r.Matrix)
		return err
	}
	return nil
}
