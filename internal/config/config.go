// Package config loads the settings of the mpsdebug command from defaults, an
// optional YAML file, MPSDEBUG_* environment variables and flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/scipopt/MIP-DD-sub001/internal/logging"
	"github.com/scipopt/MIP-DD-sub001/parser"
)

const (
	EnvPrefix = "MPSDEBUG"

	OutputText = "text"
	OutputYAML = "yaml"
)

// Keys double as flag names.
const (
	KeyExact       = "exact"
	KeyMaxLines    = "max-lines"
	KeyVerbosity   = "verbosity"
	KeyDevelopment = "development"
	KeyMetricsFile = "metrics-file"
	KeyOutput      = "output"
)

// Config holds the reader and output settings.
type Config struct {
	// Exact reads every number as a rational instead of a float64.
	Exact bool `mapstructure:"exact" yaml:"exact"`

	// MaxLines aborts a parse after this many lines; 0 disables the limit.
	MaxLines int `mapstructure:"max-lines" yaml:"max-lines"`

	Verbosity   int  `mapstructure:"verbosity" yaml:"verbosity"`
	Development bool `mapstructure:"development" yaml:"development"`

	// MetricsFile, when set, receives the parse metrics in the Prometheus
	// text format.
	MetricsFile string `mapstructure:"metrics-file" yaml:"metrics-file"`

	// Output is "text" or "yaml".
	Output string `mapstructure:"output" yaml:"output"`
}

// AddFlags registers one flag per key on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.Bool(KeyExact, false, "read numbers as exact rationals")
	fs.Int(KeyMaxLines, 0, "abort after this many input lines (0 = unlimited)")
	fs.IntP(KeyVerbosity, "v", logging.DEFAULT, "log verbosity (0-2)")
	fs.Bool(KeyDevelopment, false, "human readable development logs")
	fs.String(KeyMetricsFile, "", "write parse metrics to this file")
	fs.StringP(KeyOutput, "o", OutputText, "output format: text or yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyExact, false)
	v.SetDefault(KeyMaxLines, 0)
	v.SetDefault(KeyVerbosity, logging.DEFAULT)
	v.SetDefault(KeyDevelopment, false)
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyOutput, OutputText)
}

// Load resolves the configuration. file may be empty; flags may be nil.
func Load(v *viper.Viper, file string, flags *pflag.FlagSet) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	if c.MaxLines < 0 {
		return fmt.Errorf("max-lines must be >= 0, got %d", c.MaxLines)
	}
	if c.Verbosity < logging.DEFAULT || c.Verbosity > logging.TRACE {
		return fmt.Errorf("verbosity must be between %d and %d, got %d", logging.DEFAULT, logging.TRACE, c.Verbosity)
	}
	if c.Output != OutputText && c.Output != OutputYAML {
		return fmt.Errorf("output must be %q or %q, got %q", OutputText, OutputYAML, c.Output)
	}
	return nil
}

// ParserOptions turns the configuration into reader options. recorder may be
// nil.
func (c *Config) ParserOptions(log logr.Logger, recorder parser.Recorder) []parser.Option {
	opts := []parser.Option{parser.WithLogger(log), parser.WithMaxLines(c.MaxLines)}
	if recorder != nil {
		opts = append(opts, parser.WithRecorder(recorder))
	}
	return opts
}
