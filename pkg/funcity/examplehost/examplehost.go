// Package examplehost is a demonstration standard library, not part of
// the specified core: a minimal arithmetic/control-flow vocabulary
// (add, sub, mul, eq, cond, and, or, delay) that exercises runOnce end to
// end. Real hosts supply their own VariableMap; this package exists so
// the CLI and the end-to-end tests have something to run against.
package examplehost

import (
	"time"

	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/value"
)

// Variables returns a VariableMap seeded with the demonstration library.
func Variables() *value.VariableMap {
	vars := value.NewVariableMap()
	vars.Set("add", ordinary("add", arith(func(a, b float64) float64 { return a + b })))
	vars.Set("sub", ordinary("sub", arith(func(a, b float64) float64 { return a - b })))
	vars.Set("mul", ordinary("mul", arith(func(a, b float64) float64 { return a * b })))
	vars.Set("eq", ordinary("eq", eq))
	vars.Set("cond", special("cond", cond))
	vars.Set("and", special("and", and))
	vars.Set("or", special("or", or))
	vars.Set("delay", ordinary("delay", delay))
	return vars
}

func ordinary(name string, fn value.Ordinary) value.Value {
	return value.CallableValue(&value.Callable{Name: name, Ordinary: fn})
}

func special(name string, fn value.Special) value.Value {
	return value.CallableValue(&value.Callable{Name: name, Special: fn, IsSpecial: true})
}

// arith adapts a binary float operator into an Ordinary callable over the
// first two arguments.
func arith(op func(a, b float64) float64) value.Ordinary {
	return func(_ value.Context, args []value.Value) (value.Value, error) {
		var a, b float64
		if len(args) > 0 {
			a = numeric(args[0])
		}
		if len(args) > 1 {
			b = numeric(args[1])
		}
		return value.Float(op(a, b)), nil
	}
}

func numeric(v value.Value) float64 {
	switch v.Kind() {
	case value.KindInt:
		return float64(v.Int())
	case value.KindFloat:
		return v.Float()
	default:
		return 0
	}
}

// eq compares two values by kind-appropriate equality; values of
// different kinds are never equal.
func eq(_ value.Context, args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return value.Bool(false), nil
	}
	a, b := args[0], args[1]
	if a.Kind() != b.Kind() {
		return value.Bool(false), nil
	}
	switch a.Kind() {
	case value.KindInt:
		return value.Bool(a.Int() == b.Int()), nil
	case value.KindFloat:
		return value.Bool(a.Float() == b.Float()), nil
	case value.KindString:
		return value.Bool(a.Str() == b.Str()), nil
	case value.KindBool:
		return value.Bool(a.Bool() == b.Bool()), nil
	case value.KindUndefined, value.KindNull:
		return value.Bool(true), nil
	default:
		return value.Bool(false), nil
	}
}

// cond is a three-armed conditional expression: (cond test then else).
// It is special so only the taken branch is ever reduced.
func cond(ctx value.Context, args []value.Node) (value.Value, error) {
	if len(args) != 3 {
		return value.Undefined(), ctx.AppendLog(diag.Error, "cond requires a test, a then branch and an else branch", ctx.ApplyRange())
	}
	test, err := ctx.Reduce(args[0])
	if err != nil {
		return value.Undefined(), err
	}
	if truthy(test) {
		return ctx.Reduce(args[1])
	}
	return ctx.Reduce(args[2])
}

// and reduces its arguments left to right, short-circuiting on the first
// falsy value; with no falsy value it returns the last.
func and(ctx value.Context, args []value.Node) (value.Value, error) {
	result := value.Bool(true)
	for _, arg := range args {
		v, err := ctx.Reduce(arg)
		if err != nil {
			return value.Undefined(), err
		}
		result = v
		if !truthy(v) {
			return v, nil
		}
	}
	return result, nil
}

// or reduces its arguments left to right, short-circuiting on the first
// truthy value; with no truthy value it returns the last.
func or(ctx value.Context, args []value.Node) (value.Value, error) {
	result := value.Bool(false)
	for _, arg := range args {
		v, err := ctx.Reduce(arg)
		if err != nil {
			return value.Undefined(), err
		}
		result = v
		if truthy(v) {
			return v, nil
		}
	}
	return result, nil
}

// delay blocks for the given number of milliseconds, useful for
// demonstrating cancellation of a long-running host call.
func delay(_ value.Context, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Undefined(), nil
	}
	time.Sleep(time.Duration(numeric(args[0])) * time.Millisecond)
	return value.Undefined(), nil
}

// truthy mirrors the core's truthy table locally: the host has no access
// to the reducer's unexported predicate and this one is small enough not
// to warrant exporting it just for this.
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
