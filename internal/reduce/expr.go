package reduce

import (
	"strings"
	"sync"

	"github.com/cwbudde/funcity/internal/ast"
	"github.com/cwbudde/funcity/internal/scope"
	"github.com/cwbudde/funcity/internal/token"
	"github.com/cwbudde/funcity/internal/value"
)

// reduceExpr reduces one expression node to a value.
func (r *Reducer) reduceExpr(e ast.Expr, sc *scope.Scope) (value.Value, error) {
	switch n := e.(type) {
	case *ast.Number:
		return value.Float(n.Value), nil
	case *ast.String:
		return value.String(n.Value), nil
	case *ast.Variable:
		return r.lookupIdentifier(n.Name, n.Rng, sc)
	case *ast.Dot:
		return r.reduceDot(n, sc)
	case *ast.Apply:
		return r.reduceApply(n, sc)
	case *ast.List:
		items, err := r.reduceJoined(n.Items, sc)
		if err != nil {
			return value.Undefined(), err
		}
		return value.List(items), nil
	case *ast.Scope:
		return r.reduceScope(n, sc)
	default:
		return value.Undefined(), r.failAt("unreducible expression node", e.Range())
	}
}

// splitConditional strips a trailing "?" conditional-combine marker,
// reporting whether it was present.
func splitConditional(name string) (string, bool) {
	if strings.HasSuffix(name, "?") {
		return strings.TrimSuffix(name, "?"), true
	}
	return name, false
}

// lookupIdentifier implements identifier traversal for a bare variable
// node: a trailing "?" on the name makes an unbound lookup silent.
func (r *Reducer) lookupIdentifier(name string, rng token.Range, sc *scope.Scope) (value.Value, error) {
	if err := r.checkCancel(); err != nil {
		return value.Undefined(), err
	}
	base, optional := splitConditional(name)
	v, ok := sc.Lookup(base)
	if !ok {
		if optional {
			return value.Undefined(), nil
		}
		return value.Undefined(), r.failAt("variable is not bound: "+base, rng)
	}
	return v, nil
}

// reduceDot implements the dot-traversal semantics: evaluate the base,
// then walk each segment, honoring each segment's own optional flag and
// any identifier-level "?" embedded in its name.
func (r *Reducer) reduceDot(d *ast.Dot, sc *scope.Scope) (value.Value, error) {
	cur, err := r.reduceExpr(d.Base, sc)
	if err != nil {
		return value.Undefined(), err
	}
	for _, seg := range d.Segments {
		if err := r.checkCancel(); err != nil {
			return value.Undefined(), err
		}
		name, nameOptional := splitConditional(seg.Name)
		optional := seg.Optional || nameOptional
		if !cur.IsObjectLike() {
			if optional {
				return value.Undefined(), nil
			}
			return value.Undefined(), r.failAt("variable is not bound: "+name, seg.Range)
		}
		v, ok := cur.Record().Get(name)
		if !ok {
			if optional {
				return value.Undefined(), nil
			}
			return value.Undefined(), r.failAt("variable is not bound: "+name, seg.Range)
		}
		cur = v
	}
	return cur, nil
}

// reduceScope evaluates a scope's nodes sequentially, returning the last.
func (r *Reducer) reduceScope(s *ast.Scope, sc *scope.Scope) (value.Value, error) {
	var last value.Value
	for _, n := range s.Nodes {
		if err := r.checkCancel(); err != nil {
			return value.Undefined(), err
		}
		v, err := r.reduceExpr(n, sc)
		if err != nil {
			return value.Undefined(), err
		}
		last = v
	}
	return last, nil
}

// reduceApply resolves the function, then either invokes it directly with
// the unevaluated argument AST (special callables) or evaluates the
// arguments first (ordinary callables).
func (r *Reducer) reduceApply(a *ast.Apply, sc *scope.Scope) (value.Value, error) {
	if err := r.checkCancel(); err != nil {
		return value.Undefined(), err
	}
	funcVal, err := r.reduceExpr(a.Func, sc)
	if err != nil {
		return value.Undefined(), err
	}
	if funcVal.Kind() != value.KindCallable {
		return value.Undefined(), r.failAt("could not apply it for function", a.Rng)
	}
	callable := funcVal.Callable()
	fc := r.newFunctionContext(sc, a.Rng)

	if callable.IsSpecial {
		nodes := make([]value.Node, len(a.Args))
		for i, arg := range a.Args {
			nodes[i] = arg
		}
		return callable.Special(fc, nodes)
	}

	args, err := r.reduceJoined(a.Args, sc)
	if err != nil {
		return value.Undefined(), err
	}
	return callable.Ordinary(fc, args)
}

// reduceJoined evaluates exprs as a joined set: siblings in a list or an
// apply's argument list may run concurrently, but result positions always
// match source order (collect tasks, then await them, per the design
// note on joining siblings).
func (r *Reducer) reduceJoined(exprs []ast.Expr, sc *scope.Scope) ([]value.Value, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	results := make([]value.Value, len(exprs))
	errs := make([]error, len(exprs))

	var wg sync.WaitGroup
	wg.Add(len(exprs))
	for i, e := range exprs {
		go func(i int, e ast.Expr) {
			defer wg.Done()
			v, err := r.reduceExpr(e, sc)
			results[i] = v
			errs[i] = err
		}(i, e)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
