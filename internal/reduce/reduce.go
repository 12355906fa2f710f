// Package reduce implements the asynchronous tree-walking reducer: it
// walks a parsed block tree, maintaining a chain of lexical scopes,
// invoking host callables (ordinary or special), evaluating control-flow
// blocks, honoring a cancellation signal, and emitting an ordered result
// list. Grounded on the teacher's evaluator visitor methods
// (VisitIfStatement, VisitWhileStatement, VisitForInStatement) for
// control-flow shape.
package reduce

import (
	"context"

	"github.com/cwbudde/funcity/internal/ast"
	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/scope"
	"github.com/cwbudde/funcity/internal/token"
	"github.com/cwbudde/funcity/internal/value"
)

// FailureKind distinguishes a recorded reduce-time error from a tripped
// cancel signal.
type FailureKind uint8

const (
	FailureError FailureKind = iota
	FailureCancelled
)

// Failure is the typed failure a fatal reduce-time error or a cancellation
// raises to terminate a run. A cancellation carries no LogEntry per the
// error taxonomy: it propagates out unaltered rather than being recorded,
// unless the host chooses to record one itself.
type Failure struct {
	Kind  FailureKind
	Entry diag.LogEntry
}

func (f *Failure) Error() string {
	if f.Kind == FailureCancelled {
		return "cancelled"
	}
	return f.Entry.Description
}

// Reducer runs reduction passes over block trees, sharing one diagnostics
// log and cancel signal across a run.
type Reducer struct {
	log    *diag.Log
	ctx    context.Context
	nextID int64
}

// New returns a Reducer appending diagnostics to log. ctx may be nil, in
// which case the run is never cancelled.
func New(log *diag.Log, ctx context.Context) *Reducer {
	return &Reducer{log: log, ctx: ctx}
}

// checkCancel is the cooperative cancellation check point consulted before
// each function application, loop iteration, scope creation, variable read
// and variable write.
func (r *Reducer) checkCancel() error {
	if r.ctx == nil {
		return nil
	}
	select {
	case <-r.ctx.Done():
		return &Failure{Kind: FailureCancelled}
	default:
		return nil
	}
}

// failAt records an error-kind entry at rng and returns the typed failure
// that aborts the run.
func (r *Reducer) failAt(description string, rng token.Range) error {
	r.log.Error(description, rng)
	return &Failure{Kind: FailureError, Entry: diag.LogEntry{Kind: diag.Error, Description: description, Range: rng}}
}

// nextCallableID hands out the per-run monotonic ids used to render
// callables as text (fun<name:#id> / fun<#id>).
func (r *Reducer) nextCallableID() int64 {
	r.nextID++
	return r.nextID
}

// Run reduces every top-level block against a single fresh scope rooted at
// vars, returning the flattened, source-ordered result sequence. A well
// formed run needs at least one scope below the root: the root wraps the
// host's VariableMap read-only (scope.Write is a no-op there), so top-level
// "set" statements need a mutable scope to write into.
func (r *Reducer) Run(blocks []ast.Block, vars *value.VariableMap) ([]value.Value, error) {
	root := scope.NewRoot(vars)
	top := root.NewChild()
	return r.reduceBlocks(blocks, top)
}
