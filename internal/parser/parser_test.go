package parser

import (
	"testing"

	"github.com/cwbudde/funcity/internal/ast"
	"github.com/cwbudde/funcity/internal/diag"
	"github.com/google/go-cmp/cmp"
)

func parse(t *testing.T, src string, mode Mode) ([]ast.Block, *diag.Log) {
	t.Helper()
	log := diag.NewLog()
	blocks := Parse(src, mode, log)
	return blocks, log
}

func TestTemplateSplicingTree(t *testing.T) {
	blocks, log := parse(t, "Hello{{add 123 456}}World", Template)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 top-level blocks, got %d: %#v", len(blocks), blocks)
	}
	text1, ok := blocks[0].(*ast.Text)
	if !ok || text1.Value != "Hello" {
		t.Fatalf("blocks[0] = %#v", blocks[0])
	}
	apply, ok := blocks[1].(*ast.Apply)
	if !ok {
		t.Fatalf("blocks[1] = %#v, want *ast.Apply", blocks[1])
	}
	fn, ok := apply.Func.(*ast.Variable)
	if !ok || fn.Name != "add" {
		t.Fatalf("apply.Func = %#v", apply.Func)
	}
	if len(apply.Args) != 2 {
		t.Fatalf("apply.Args = %#v", apply.Args)
	}
	text2, ok := blocks[2].(*ast.Text)
	if !ok || text2.Value != "World" {
		t.Fatalf("blocks[2] = %#v", blocks[2])
	}
}

func TestIfElseAcrossBlocks(t *testing.T) {
	blocks, log := parse(t, "{{if flag?}}THEN{{else}}ELSE{{end}}", Template)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %#v", blocks)
	}
	ifNode, ok := blocks[0].(*ast.If)
	if !ok {
		t.Fatalf("blocks[0] = %#v, want *ast.If", blocks[0])
	}
	cond, ok := ifNode.Condition.(*ast.Variable)
	if !ok || cond.Name != "flag?" {
		t.Fatalf("condition = %#v", ifNode.Condition)
	}
	if len(ifNode.Then) != 1 || ifNode.Then[0].(*ast.Text).Value != "THEN" {
		t.Fatalf("then = %#v", ifNode.Then)
	}
	if len(ifNode.Else) != 1 || ifNode.Else[0].(*ast.Text).Value != "ELSE" {
		t.Fatalf("else = %#v", ifNode.Else)
	}
}

func TestElseifDesugarsToNestedIf(t *testing.T) {
	blocks, log := parse(t, "{{if a}}A{{elseif b}}B{{else}}C{{end}}", Template)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	outer := blocks[0].(*ast.If)
	if len(outer.Else) != 1 {
		t.Fatalf("outer.Else = %#v", outer.Else)
	}
	inner, ok := outer.Else[0].(*ast.If)
	if !ok {
		t.Fatalf("outer.Else[0] = %#v, want nested *ast.If", outer.Else[0])
	}
	if inner.Condition.(*ast.Variable).Name != "b" {
		t.Fatalf("inner condition = %#v", inner.Condition)
	}
	if inner.Then[0].(*ast.Text).Value != "B" {
		t.Fatalf("inner then = %#v", inner.Then)
	}
	if inner.Else[0].(*ast.Text).Value != "C" {
		t.Fatalf("inner else = %#v", inner.Else)
	}
}

func TestForLoop(t *testing.T) {
	blocks, log := parse(t, "{{for i [1 2 3 4 5]}}ABC{{end}}", Template)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	forNode := blocks[0].(*ast.For)
	if forNode.Bind.Name != "i" {
		t.Fatalf("bind = %#v", forNode.Bind)
	}
	list, ok := forNode.Iterable.(*ast.List)
	if !ok || len(list.Items) != 5 {
		t.Fatalf("iterable = %#v", forNode.Iterable)
	}
	if forNode.Repeat[0].(*ast.Text).Value != "ABC" {
		t.Fatalf("repeat = %#v", forNode.Repeat)
	}
}

func TestWhileWithSetAndSub(t *testing.T) {
	src := "{{set count 10\nwhile count}}ABC{{set count (sub count 1)\nend}}"
	blocks, log := parse(t, src, Template)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	if len(blocks) != 2 {
		t.Fatalf("blocks = %#v", blocks)
	}
	whileNode, ok := blocks[1].(*ast.While)
	if !ok {
		t.Fatalf("blocks[1] = %#v, want *ast.While", blocks[1])
	}
	if len(whileNode.Repeat) != 2 {
		t.Fatalf("while.Repeat = %#v", whileNode.Repeat)
	}
}

func TestDotChainSegments(t *testing.T) {
	blocks, log := parse(t, "a.b.c", Code)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	dot := blocks[0].(*ast.Dot)
	segs := []string{}
	for _, s := range dot.Segments {
		segs = append(segs, s.Name)
	}
	want := []string{"b", "c"}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestUnitApplicationAndScope(t *testing.T) {
	blocks, log := parse(t, "(a\nb)\n(a)\n()", Code)
	if _, ok := blocks[0].(*ast.Scope); !ok {
		t.Fatalf("blocks[0] = %#v, want *ast.Scope", blocks[0])
	}
	if _, ok := blocks[1].(*ast.Variable); !ok {
		t.Fatalf("blocks[1] = %#v, want *ast.Variable (single-paren collapse)", blocks[1])
	}
	// A bare "()" finalizes to a single unit partial, which is an error
	// placeholder per application finalization.
	v, ok := blocks[2].(*ast.Variable)
	if !ok || v.Name != "undefined" {
		t.Fatalf("blocks[2] = %#v, want placeholder undefined", blocks[2])
	}
	if !log.HasError() {
		t.Fatal("expected an error for the bare unit value on the last line")
	}
}

func TestExplicitUnitApplication(t *testing.T) {
	blocks, log := parse(t, "foo ()", Code)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	apply := blocks[0].(*ast.Apply)
	if len(apply.Args) != 0 {
		t.Fatalf("args = %#v, want zero-length explicit unit application", apply.Args)
	}
}

func TestUnresolvedStatementError(t *testing.T) {
	_, log := parse(t, "{{if a}}X", Template)
	if !log.HasError() {
		t.Fatal("expected an unresolved-statement error")
	}
}

func TestEndAtRootIsError(t *testing.T) {
	_, log := parse(t, "end", Code)
	if !log.HasError() {
		t.Fatal("expected an error for end at root")
	}
}

func TestListRejectsSemicolon(t *testing.T) {
	blocks, log := parse(t, "[1;2]", Code)
	if !log.HasError() {
		t.Fatal("expected a semicolon-in-list error")
	}
	list := blocks[0].(*ast.List)
	if len(list.Items) != 2 {
		t.Fatalf("items = %#v", list.Items)
	}
}

func TestRangeMonotonicity(t *testing.T) {
	blocks, _ := parse(t, "Hello{{add 123 456}}World", Template)
	apply := blocks[1].(*ast.Apply)
	outer := apply.Range()
	for _, arg := range apply.Args {
		r := arg.Range()
		if r.Start.Line < outer.Start.Line || (r.Start.Line == outer.Start.Line && r.Start.Column < outer.Start.Column) {
			t.Fatalf("argument range %v starts before apply range %v", r, outer)
		}
	}
}
