// Package builtins supplies the two special callables the language itself
// depends on, "set" and "fun". Unlike the host's arithmetic/collection
// library (out of scope for the core), these are part of the unified
// design's grammar: there is no dedicated assignment or lambda AST node,
// so "set" and "fun" stand in for one, implemented purely in terms of the
// value.Context surface every special callable receives. Grounded on the
// teacher's registerBuiltins/vm_builtins.go split-by-concern pattern.
package builtins

import (
	"github.com/cwbudde/funcity/internal/ast"
	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/value"
)

// Core returns a VariableMap seeded with "set" and "fun". It is merged on
// top of a host's own VariableMap, so core wins on a name collision: a host
// cannot shadow "set" or "fun" by defining a variable with the same name.
func Core() *value.VariableMap {
	vars := value.NewVariableMap()
	vars.Set("set", value.CallableValue(&value.Callable{Name: "set", Special: setCallable, IsSpecial: true}))
	vars.Set("fun", value.CallableValue(&value.Callable{Name: "fun", Special: funCallable, IsSpecial: true}))
	return vars
}

// setCallable implements "set <name> <value>": writes value into the
// current scope under name and returns the written value. It is special
// because the target must not be evaluated as a variable read.
func setCallable(ctx value.Context, args []value.Node) (value.Value, error) {
	if len(args) < 2 {
		return value.Undefined(), ctx.AppendLog(diag.Error, "set requires a variable and a value", ctx.ApplyRange())
	}
	name, ok := variableName(args[0])
	if !ok {
		return value.Undefined(), ctx.AppendLog(diag.Error, "set requires a variable as its first argument", ctx.ApplyRange())
	}
	v, err := ctx.Reduce(args[1])
	if err != nil {
		return value.Undefined(), err
	}
	ctx.Write(name, v)
	return v, nil
}

// funCallable implements "fun [params] body": captures the defining
// scope (ctx) as a closure and returns an ordinary callable that, on each
// invocation, opens a fresh child of that closure, binds parameters
// positionally, and reduces body in it.
func funCallable(ctx value.Context, args []value.Node) (value.Value, error) {
	if len(args) != 2 {
		return value.Undefined(), ctx.AppendLog(diag.Error, "fun requires a parameter list and a body", ctx.ApplyRange())
	}
	params, ok := variableList(args[0])
	if !ok {
		return value.Undefined(), ctx.AppendLog(diag.Error, "fun's first argument must be a list of parameter names", ctx.ApplyRange())
	}
	body := args[1]

	invoke := func(_ value.Context, callArgs []value.Value) (value.Value, error) {
		callScope := ctx.NewScope()
		for i, p := range params {
			var v value.Value
			if i < len(callArgs) {
				v = callArgs[i]
			} else {
				v = value.Undefined()
			}
			callScope.Write(p, v)
		}
		return callScope.Reduce(body)
	}
	return value.CallableValue(&value.Callable{Ordinary: invoke}), nil
}

// variableName reports the identifier name if node is a bare variable
// reference.
func variableName(node value.Node) (string, bool) {
	v, ok := node.(*ast.Variable)
	if !ok {
		return "", false
	}
	return v.Name, true
}

// variableList reports the parameter names if node is a list literal whose
// items are all bare variable references.
func variableList(node value.Node) ([]string, bool) {
	l, ok := node.(*ast.List)
	if !ok {
		return nil, false
	}
	names := make([]string, len(l.Items))
	for i, item := range l.Items {
		v, ok := item.(*ast.Variable)
		if !ok {
			return nil, false
		}
		names[i] = v.Name
	}
	return names, true
}
