// Package ast defines the FunCity abstract syntax tree: expression nodes
// (a tagged union) and block nodes (an expression node, or one of the
// control-flow/text variants). The tree is immutable after parsing.
package ast

import "github.com/cwbudde/funcity/internal/token"

// Node is anything carrying a source range.
type Node interface {
	Range() token.Range
}

// Expr is an expression node. Every Expr is also a Block.
type Expr interface {
	Node
	isExpr()
	isBlock()
}

// Block is a block-level node: an Expr, or Text/If/While/For.
type Block interface {
	Node
	isBlock()
}

// Number is a numeric literal.
type Number struct {
	Value float64
	Rng   token.Range
}

func (n *Number) Range() token.Range { return n.Rng }
func (n *Number) isExpr()            {}
func (n *Number) isBlock()           {}

// String is a string literal.
type String struct {
	Value string
	Rng   token.Range
}

func (s *String) Range() token.Range { return s.Rng }
func (s *String) isExpr()            {}
func (s *String) isBlock()           {}

// Variable is a bare identifier reference. Name may carry a trailing "?"
// encoding identifier-level conditional combine.
type Variable struct {
	Name string
	Rng  token.Range
}

func (v *Variable) Range() token.Range { return v.Rng }
func (v *Variable) isExpr()            {}
func (v *Variable) isBlock()           {}

// Apply is function application: Func applied to Args.
type Apply struct {
	Func Expr
	Args []Expr
	Rng  token.Range
}

func (a *Apply) Range() token.Range { return a.Rng }
func (a *Apply) isExpr()            {}
func (a *Apply) isBlock()           {}

// List is a list literal.
type List struct {
	Items []Expr
	Rng   token.Range
}

func (l *List) Range() token.Range { return l.Rng }
func (l *List) isExpr()            {}
func (l *List) isBlock()           {}

// Scope sequentially evaluates Nodes; the result is the last one. A
// well-formed Scope has at least two Nodes (a single-node scope collapses
// to the inner node during parsing).
type Scope struct {
	Nodes []Expr
	Rng   token.Range
}

func (s *Scope) Range() token.Range { return s.Rng }
func (s *Scope) isExpr()            {}
func (s *Scope) isBlock()           {}

// DotSegment is one ".name" or "?.name" step in a dot chain.
type DotSegment struct {
	Name          string
	Optional      bool
	Range         token.Range
	OperatorRange token.Range
}

// Dot is dotted member access: Base followed by one or more Segments. A
// well-formed Dot has at least one segment.
type Dot struct {
	Base     Expr
	Segments []DotSegment
	Rng      token.Range
}

func (d *Dot) Range() token.Range { return d.Rng }
func (d *Dot) isExpr()            {}
func (d *Dot) isBlock()           {}

// Text is a literal text passage (template mode only).
type Text struct {
	Value string
	Rng   token.Range
}

func (t *Text) Range() token.Range { return t.Rng }
func (t *Text) isBlock()           {}

// If evaluates Condition and reduces Then or Else. elseif is desugared into
// a nested If inside Else during parsing.
type If struct {
	Condition Expr
	Then      []Block
	Else      []Block
	Rng       token.Range
}

func (i *If) Range() token.Range { return i.Rng }
func (i *If) isBlock()           {}

// While repeats Repeat while Condition is truthy.
type While struct {
	Condition Expr
	Repeat    []Block
	Rng       token.Range
}

func (w *While) Range() token.Range { return w.Rng }
func (w *While) isBlock()           {}

// For binds each item of Iterable to Bind and reduces Repeat once per item.
// Bind is always a Variable node.
type For struct {
	Bind     *Variable
	Iterable Expr
	Repeat   []Block
	Rng      token.Range
}

func (f *For) Range() token.Range { return f.Rng }
func (f *For) isBlock()           {}
