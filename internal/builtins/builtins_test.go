package builtins

import (
	"testing"

	"github.com/cwbudde/funcity/internal/ast"
	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/token"
	"github.com/cwbudde/funcity/internal/value"
)

// fakeContext is a minimal value.Context double for exercising the core
// callables without going through the reduce package.
type fakeContext struct {
	vars   map[string]value.Value
	parent *fakeContext
	log    *diag.Log
}

func newFakeContext() *fakeContext {
	return &fakeContext{vars: make(map[string]value.Value), log: diag.NewLog()}
}

func (c *fakeContext) Reduce(node value.Node) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Number:
		return value.Float(n.Value), nil
	case *ast.String:
		return value.String(n.Value), nil
	case *ast.Variable:
		v, ok := c.Lookup(n.Name)
		if !ok {
			return value.Undefined(), c.AppendLog(diag.Error, "variable is not bound: "+n.Name, n.Rng)
		}
		return v, nil
	default:
		return value.Undefined(), nil
	}
}

func (c *fakeContext) Lookup(name string) (value.Value, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

func (c *fakeContext) Write(name string, v value.Value) { c.vars[name] = v }
func (c *fakeContext) NewScope() value.Context {
	return &fakeContext{vars: make(map[string]value.Value), parent: c, log: c.log}
}
func (c *fakeContext) ConvertToString(v value.Value) string { return v.Str() }
func (c *fakeContext) AppendLog(kind diag.Kind, description string, r token.Range) error {
	if kind == diag.Error {
		c.log.Error(description, r)
		return &diagError{description}
	}
	c.log.Warn(description, r)
	return nil
}
func (c *fakeContext) IsFailed() bool          { return c.log.HasError() }
func (c *fakeContext) Cancelled() bool         { return false }
func (c *fakeContext) ApplyRange() token.Range { return token.Range{} }

type diagError struct{ msg string }

func (e *diagError) Error() string { return e.msg }

func TestSetWritesIntoCurrentScope(t *testing.T) {
	ctx := newFakeContext()
	args := []value.Node{&ast.Variable{Name: "x"}, &ast.Number{Value: 42}}

	got, err := setCallable(ctx, args)
	if err != nil {
		t.Fatalf("setCallable: %v", err)
	}
	if got.Float() != 42 {
		t.Fatalf("set returned %v, want 42", got.Float())
	}
	v, ok := ctx.Lookup("x")
	if !ok || v.Float() != 42 {
		t.Fatalf("x = %v, ok=%v, want 42", v, ok)
	}
}

func TestSetRejectsNonVariableTarget(t *testing.T) {
	ctx := newFakeContext()
	args := []value.Node{&ast.Number{Value: 1}, &ast.Number{Value: 2}}
	if _, err := setCallable(ctx, args); err == nil {
		t.Fatal("expected an error when the first argument isn't a variable")
	}
}

func TestFunCreatesClosureOverDefiningScope(t *testing.T) {
	defining := newFakeContext()
	defining.Write("captured", value.Float(7))

	params := &ast.List{Items: []ast.Expr{&ast.Variable{Name: "n"}}}
	body := &ast.Variable{Name: "captured"}

	fnVal, err := funCallable(defining, []value.Node{params, body})
	if err != nil {
		t.Fatalf("funCallable: %v", err)
	}
	if fnVal.Kind() != value.KindCallable {
		t.Fatalf("fun did not return a callable, got %v", fnVal.Kind())
	}

	caller := newFakeContext() // a different call-site scope, without "captured"
	result, err := fnVal.Callable().Ordinary(caller, []value.Value{value.Float(1)})
	if err != nil {
		t.Fatalf("invoking fun result: %v", err)
	}
	if result.Float() != 7 {
		t.Fatalf("closure lost its defining scope: got %v, want 7", result.Float())
	}
}

func TestFunBindsParametersPositionally(t *testing.T) {
	defining := newFakeContext()
	params := &ast.List{Items: []ast.Expr{&ast.Variable{Name: "a"}, &ast.Variable{Name: "b"}}}
	body := &ast.Variable{Name: "b"}

	fnVal, err := funCallable(defining, []value.Node{params, body})
	if err != nil {
		t.Fatalf("funCallable: %v", err)
	}

	result, err := fnVal.Callable().Ordinary(defining, []value.Value{value.Float(1), value.Float(2)})
	if err != nil {
		t.Fatalf("invoking fun: %v", err)
	}
	if result.Float() != 2 {
		t.Fatalf("b = %v, want 2", result.Float())
	}
}

func TestFunMissingArgumentBindsUndefined(t *testing.T) {
	defining := newFakeContext()
	params := &ast.List{Items: []ast.Expr{&ast.Variable{Name: "a"}}}
	body := &ast.Variable{Name: "a"}

	fnVal, err := funCallable(defining, []value.Node{params, body})
	if err != nil {
		t.Fatalf("funCallable: %v", err)
	}
	result, err := fnVal.Callable().Ordinary(defining, nil)
	if err != nil {
		t.Fatalf("invoking fun: %v", err)
	}
	if result.Kind() != value.KindUndefined {
		t.Fatalf("a = %v, want undefined", result.Kind())
	}
}
