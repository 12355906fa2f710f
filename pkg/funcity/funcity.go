// Package funcity is the embeddable entry point: it wires the tokenizer,
// parser and reducer together behind RunOnce/RunOnceToText, the two run
// entry points a host calls. Grounded on the teacher's
// internal/interp/runner.New, which wires evaluator + environment behind
// a small package-level constructor instead of exposing the pipeline's
// internals to callers.
package funcity

import (
	"context"
	"errors"
	"strings"

	"github.com/cwbudde/funcity/internal/builtins"
	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/parser"
	"github.com/cwbudde/funcity/internal/reduce"
	"github.com/cwbudde/funcity/internal/value"
)

// Mode selects whether source is parsed as interleaved text and {{ }} code
// regions, or as a single code region.
type Mode = parser.Mode

const (
	Template = parser.Template
	Code     = parser.Code
)

// Re-export the shared value types a host needs to build a VariableMap and
// read back a result sequence, so callers need not import internal/value.
type (
	Value       = value.Value
	VariableMap = value.VariableMap
	Record      = value.Record
	Callable    = value.Callable
	Ordinary    = value.Ordinary
	Special     = value.Special
	Context     = value.Context
)

var (
	Undefined    = value.Undefined
	Null         = value.Null
	Bool         = value.Bool
	Int          = value.Int
	Float        = value.Float
	String       = value.String
	List         = value.List
	RecordValue  = value.RecordValue
	CallableOf   = value.CallableValue
	NewRecord    = value.NewRecord
	NewVariables = value.NewVariableMap
)

// Log is the shared diagnostics buffer tokenizer, parser and reducer
// append to.
type Log = diag.Log

// NewLog returns an empty diagnostics log.
func NewLog() *Log { return diag.NewLog() }

// config collects the functional options RunOnce accepts.
type config struct {
	mode   Mode
	cancel context.Context
	log    *Log
}

// Option configures a run.
type Option func(*config)

// WithMode overrides the default Template mode.
func WithMode(m Mode) Option {
	return func(c *config) { c.mode = m }
}

// WithCancel supplies a cooperative cancel signal; reduction checks it
// before each application, each loop iteration, and each scope operation.
func WithCancel(ctx context.Context) Option {
	return func(c *config) { c.cancel = ctx }
}

// WithLog directs diagnostics to an existing log instead of a fresh one,
// letting a host inspect warnings/errors after the run.
func WithLog(log *Log) Option {
	return func(c *config) { c.log = log }
}

// MergeVariables composes VariableMap-like sources into one map; later
// maps override earlier ones for colliding keys.
func MergeVariables(maps ...*VariableMap) *VariableMap {
	merged := value.NewVariableMap()
	for _, m := range maps {
		if m == nil {
			continue
		}
		for _, k := range m.Keys() {
			v, _ := m.Get(k)
			merged.Set(k, v)
		}
	}
	return merged
}

// RunOnce parses and reduces source once, returning the ordered result
// sequence. variables seeds the run's root scope; it is read-only from the
// reducer's perspective and is left observably unchanged. The returned log
// always holds every diagnostic from the run, even when err is nil and the
// sequence came back empty because an error-kind entry was recorded.
func RunOnce(source string, variables *VariableMap, opts ...Option) ([]Value, *Log, error) {
	vals, _, log, err := run(source, variables, opts...)
	return vals, log, err
}

// RunOnceToText behaves like RunOnce but additionally renders the result
// sequence to a single string per the value-to-text conversion rules,
// concatenating each value's rendering in source order.
func RunOnceToText(source string, variables *VariableMap, opts ...Option) (string, *Log, error) {
	vals, r, log, err := run(source, variables, opts...)
	if err != nil || r == nil {
		return "", log, err
	}
	var sb strings.Builder
	for _, v := range vals {
		sb.WriteString(r.RenderText(v))
	}
	return sb.String(), log, nil
}

// run executes the shared pipeline, returning the reducer alongside the
// result so RunOnceToText can reuse its per-run callable-id counter when
// rendering.
func run(source string, variables *VariableMap, opts ...Option) ([]Value, *reduce.Reducer, *Log, error) {
	cfg := &config{mode: Template}
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.log
	if log == nil {
		log = diag.NewLog()
	}

	blocks := parser.Parse(source, cfg.mode, log)
	merged := MergeVariables(variables, builtins.Core())

	r := reduce.New(log, cfg.cancel)
	vals, err := r.Run(blocks, merged)
	if err != nil {
		var failure *reduce.Failure
		if errors.As(err, &failure) && failure.Kind == reduce.FailureError {
			// Already recorded to log by the reducer; RunOnce swallows the
			// typed failure and reports it only through the log.
			return nil, r, log, nil
		}
		return nil, r, log, err
	}

	if log.HasError() {
		return nil, r, log, nil
	}
	return vals, r, log, nil
}
