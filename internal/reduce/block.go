package reduce

import (
	"github.com/cwbudde/funcity/internal/ast"
	"github.com/cwbudde/funcity/internal/scope"
	"github.com/cwbudde/funcity/internal/value"
)

// reduceBlocks reduces a sequence of block nodes in source order,
// concatenating each block's result sequence and aborting at the first
// error (scope, block sequences and loop bodies all observe program order
// for side effects and results).
func (r *Reducer) reduceBlocks(blocks []ast.Block, sc *scope.Scope) ([]value.Value, error) {
	var out []value.Value
	for _, b := range blocks {
		if err := r.checkCancel(); err != nil {
			return nil, err
		}
		vals, err := r.reduceBlock(b, sc)
		if err != nil {
			return nil, err
		}
		out = append(out, vals...)
	}
	return out, nil
}

// reduceBlock reduces one block node to its result sequence.
func (r *Reducer) reduceBlock(b ast.Block, sc *scope.Scope) ([]value.Value, error) {
	switch n := b.(type) {
	case *ast.Text:
		return []value.Value{value.String(n.Value)}, nil

	case *ast.If:
		cond, err := r.reduceExpr(n.Condition, sc)
		if err != nil {
			return nil, err
		}
		branch := n.Else
		if truthy(cond) {
			branch = n.Then
		}
		return r.reduceBlocks(branch, sc)

	case *ast.While:
		var out []value.Value
		for {
			if err := r.checkCancel(); err != nil {
				return nil, err
			}
			cond, err := r.reduceExpr(n.Condition, sc)
			if err != nil {
				return nil, err
			}
			if !truthy(cond) {
				break
			}
			vals, err := r.reduceBlocks(n.Repeat, sc)
			if err != nil {
				return nil, err
			}
			out = append(out, vals...)
		}
		return out, nil

	case *ast.For:
		iterable, err := r.reduceExpr(n.Iterable, sc)
		if err != nil {
			return nil, err
		}
		items, ok := iterate(iterable)
		if !ok {
			return nil, r.failAt("could not apply it for function", n.Iterable.Range())
		}
		var out []value.Value
		for _, item := range items {
			if err := r.checkCancel(); err != nil {
				return nil, err
			}
			sc.Write(n.Bind.Name, item)
			vals, err := r.reduceBlocks(n.Repeat, sc)
			if err != nil {
				return nil, err
			}
			out = append(out, vals...)
		}
		return out, nil

	case ast.Expr:
		v, err := r.reduceExpr(n, sc)
		if err != nil {
			return nil, err
		}
		return []value.Value{v}, nil

	default:
		return nil, r.failAt("unreducible block node", b.Range())
	}
}

// truthy implements the value predicate used by if/while: undefined and
// null are false, booleans are their value, numbers are value != 0,
// everything else (strings, lists, records, callables) is true, including
// the empty string.
func truthy(v value.Value) bool {
	switch v.Kind() {
	case value.KindUndefined, value.KindNull:
		return false
	case value.KindBool:
		return v.Bool()
	case value.KindInt:
		return v.Int() != 0
	case value.KindFloat:
		return v.Float() != 0
	default:
		return true
	}
}

// iterate returns the in-order items of v's iteration view, or false if v
// has none. Lists iterate their elements; records iterate their keys as
// strings (the "iterable by key" host contract the spec leaves open);
// strings iterate their characters.
func iterate(v value.Value) ([]value.Value, bool) {
	switch v.Kind() {
	case value.KindList:
		return v.List(), true
	case value.KindRecord:
		keys := v.Record().Keys()
		items := make([]value.Value, len(keys))
		for i, k := range keys {
			items[i] = value.String(k)
		}
		return items, true
	case value.KindString:
		runes := []rune(v.Str())
		items := make([]value.Value, len(runes))
		for i, ch := range runes {
			items[i] = value.String(string(ch))
		}
		return items, true
	default:
		return nil, false
	}
}
