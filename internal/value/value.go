// Package value implements the host value type shared between the
// reducer and embedding applications: a tagged union avoiding interface{}
// for the dynamically-typed values FunCity programs manipulate, plus the
// insertion-ordered VariableMap used for host injection.
package value

import (
	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/token"
)

// Kind distinguishes the variants of Value.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindRecord
	KindCallable
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	case KindCallable:
		return "callable"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Ordinary is a host callable invoked with already-reduced argument values.
type Ordinary func(ctx Context, args []Value) (Value, error)

// Special is a host callable invoked with unevaluated argument AST nodes;
// Node is left as `any` here to avoid value depending on ast (the reducer
// binds the concrete type). It decides itself when, or whether, to reduce
// each argument via ctx.
type Special func(ctx Context, args []Node) (Value, error)

// Node is the unevaluated-argument type a Special callable receives. The
// reducer package supplies the concrete type (its ast.Expr); value stays
// independent of ast to avoid a cyclic import.
type Node any

// Context is the surface a callable receives as its implicit receiver
// (described narrowly here, again to avoid an import cycle back to
// reduce); the reduce package's functionContext implements it.
type Context interface {
	// Reduce evaluates an unevaluated argument node in the current scope;
	// used by special callables to decide when/whether to evaluate.
	Reduce(node Node) (Value, error)
	Lookup(name string) (Value, bool)
	Write(name string, v Value)
	// NewScope returns a fresh child scope, used by callables like "fun"
	// to give each invocation its own environment.
	NewScope() Context
	ConvertToString(v Value) string
	// AppendLog records a diagnostic at r. A warning is recorded and nil is
	// returned; an error is recorded and a non-nil error is returned that,
	// if propagated back out of the callable, aborts the run.
	AppendLog(kind diag.Kind, description string, r token.Range) error
	// IsFailed reports whether a recoverable error has already been
	// recorded on this run.
	IsFailed() bool
	// Cancelled reports whether the run's cancel signal has tripped.
	Cancelled() bool
	// ApplyRange is the source range of the apply node currently being
	// invoked, for diagnostics.
	ApplyRange() token.Range
}

// Callable is a host-provided function reachable via a variable. Exactly
// one of Ordinary/Special is set; IsSpecial reports which.
type Callable struct {
	Name      string
	Ordinary  Ordinary
	Special   Special
	IsSpecial bool
}

// Value is the dynamically-typed value FunCity programs produce and
// consume. The zero Value is KindUndefined.
type Value struct {
	kind Kind

	b        bool
	i        int64
	f        float64
	s        string
	list     []Value
	record   *Record
	callable *Callable
	opaque   any
}

// Record is an insertion-ordered string-keyed mapping, used both as
// Value's object/record payload and, embedded, as the host VariableMap.
type Record struct {
	keys    []string
	entries map[string]Value
}

// NewRecord returns an empty ordered record.
func NewRecord() *Record {
	return &Record{entries: make(map[string]Value)}
}

// Get returns the value at key and whether it was present.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	v, ok := r.entries[key]
	return v, ok
}

// Set inserts or replaces key, appending to Keys() on first insertion.
func (r *Record) Set(key string, v Value) {
	if _, exists := r.entries[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.entries[key] = v
}

// Delete removes key if present, returning whether it was removed.
func (r *Record) Delete(key string) bool {
	if _, exists := r.entries[key]; !exists {
		return false
	}
	delete(r.entries, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the record's keys in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len reports the number of entries.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

func Undefined() Value { return Value{kind: KindUndefined} }
func Null() Value      { return Value{kind: KindNull} }
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}
func String(s string) Value {
	return Value{kind: KindString, s: s}
}
func List(items []Value) Value {
	return Value{kind: KindList, list: items}
}
func RecordValue(r *Record) Value {
	return Value{kind: KindRecord, record: r}
}
func CallableValue(c *Callable) Value {
	return Value{kind: KindCallable, callable: c}
}
func Opaque(v any) Value {
	return Value{kind: KindOpaque, opaque: v}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Bool() bool         { return v.b }
func (v Value) Int() int64         { return v.i }
func (v Value) Float() float64     { return v.f }
func (v Value) Str() string        { return v.s }
func (v Value) List() []Value      { return v.list }
func (v Value) Record() *Record    { return v.record }
func (v Value) Callable() *Callable { return v.callable }
func (v Value) Opaque() any        { return v.opaque }

// IsObjectLike reports whether dot-traversal can descend into v. Only
// records expose members; lists and every other kind do not.
func (v Value) IsObjectLike() bool {
	return v.kind == KindRecord
}

// VariableMap is the insertion-ordered, string-keyed host value map a
// run is seeded with. It shares its storage shape with Record: the root
// reducer scope wraps one read-only.
type VariableMap struct {
	*Record
}

// NewVariableMap returns an empty VariableMap.
func NewVariableMap() *VariableMap {
	return &VariableMap{Record: NewRecord()}
}
