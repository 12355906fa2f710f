package reduce

import (
	"github.com/cwbudde/funcity/internal/ast"
	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/scope"
	"github.com/cwbudde/funcity/internal/token"
	"github.com/cwbudde/funcity/internal/value"
)

// functionContext is the implicit receiver passed to a callable on
// invocation; it implements value.Context. Special callables additionally
// get it through Reduce to evaluate the unevaluated nodes they receive.
type functionContext struct {
	r          *Reducer
	sc         *scope.Scope
	applyRange token.Range
}

func (r *Reducer) newFunctionContext(sc *scope.Scope, applyRange token.Range) *functionContext {
	return &functionContext{r: r, sc: sc, applyRange: applyRange}
}

// Reduce evaluates node, which must be the concrete ast.Expr type the
// parser produced (special callables receive exactly the nodes the
// reducer handed them, so this type assertion never fails in practice).
func (fc *functionContext) Reduce(node value.Node) (value.Value, error) {
	expr, ok := node.(ast.Expr)
	if !ok {
		return value.Undefined(), fc.r.failAt("not an expression node", fc.applyRange)
	}
	return fc.r.reduceExpr(expr, fc.sc)
}

func (fc *functionContext) Lookup(name string) (value.Value, bool) {
	return fc.sc.Lookup(name)
}

func (fc *functionContext) Write(name string, v value.Value) {
	fc.sc.Write(name, v)
}

// NewScope returns a fresh child scope wrapped in a new functionContext,
// used by callables such as "fun" to give each invocation its own
// environment.
func (fc *functionContext) NewScope() value.Context {
	return fc.r.newFunctionContext(fc.sc.NewChild(), fc.applyRange)
}

func (fc *functionContext) ConvertToString(v value.Value) string {
	return fc.r.RenderText(v)
}

func (fc *functionContext) AppendLog(kind diag.Kind, description string, rng token.Range) error {
	if kind == diag.Error {
		return fc.r.failAt(description, rng)
	}
	fc.r.log.Warn(description, rng)
	return nil
}

func (fc *functionContext) IsFailed() bool {
	return fc.r.log.HasError()
}

func (fc *functionContext) Cancelled() bool {
	return fc.r.checkCancel() != nil
}

func (fc *functionContext) ApplyRange() token.Range {
	return fc.applyRange
}
