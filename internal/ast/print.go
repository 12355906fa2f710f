package ast

import (
	"fmt"
	"strings"
)

// Dump renders a block tree as an indented textual tree, for the CLI's
// parse command and for eyeballing test fixtures. The teacher's own
// pkg/printer never reached this pack in a usable form, so this is a
// small hand-rolled dumper rather than an adaptation of one.
func Dump(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		dumpBlock(&sb, b, 0)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func dumpBlock(sb *strings.Builder, b Block, depth int) {
	indent(sb, depth)
	switch n := b.(type) {
	case *Text:
		fmt.Fprintf(sb, "text %q %s\n", n.Value, n.Rng)
	case *If:
		fmt.Fprintf(sb, "if %s\n", n.Rng)
		indent(sb, depth+1)
		sb.WriteString("condition:\n")
		dumpExpr(sb, n.Condition, depth+2)
		indent(sb, depth+1)
		sb.WriteString("then:\n")
		for _, c := range n.Then {
			dumpBlock(sb, c, depth+2)
		}
		if len(n.Else) > 0 {
			indent(sb, depth+1)
			sb.WriteString("else:\n")
			for _, c := range n.Else {
				dumpBlock(sb, c, depth+2)
			}
		}
	case *While:
		fmt.Fprintf(sb, "while %s\n", n.Rng)
		indent(sb, depth+1)
		sb.WriteString("condition:\n")
		dumpExpr(sb, n.Condition, depth+2)
		indent(sb, depth+1)
		sb.WriteString("repeat:\n")
		for _, c := range n.Repeat {
			dumpBlock(sb, c, depth+2)
		}
	case *For:
		fmt.Fprintf(sb, "for %s bind=%s\n", n.Rng, n.Bind.Name)
		indent(sb, depth+1)
		sb.WriteString("iterable:\n")
		dumpExpr(sb, n.Iterable, depth+2)
		indent(sb, depth+1)
		sb.WriteString("repeat:\n")
		for _, c := range n.Repeat {
			dumpBlock(sb, c, depth+2)
		}
	case Expr:
		dumpExpr(sb, n, depth)
	default:
		fmt.Fprintf(sb, "? %T\n", b)
	}
}

func dumpExpr(sb *strings.Builder, e Expr, depth int) {
	indent(sb, depth)
	switch n := e.(type) {
	case *Number:
		fmt.Fprintf(sb, "number %g %s\n", n.Value, n.Rng)
	case *String:
		fmt.Fprintf(sb, "string %q %s\n", n.Value, n.Rng)
	case *Variable:
		fmt.Fprintf(sb, "variable %s %s\n", n.Name, n.Rng)
	case *Apply:
		fmt.Fprintf(sb, "apply %s\n", n.Rng)
		dumpExpr(sb, n.Func, depth+1)
		for _, a := range n.Args {
			dumpExpr(sb, a, depth+1)
		}
	case *List:
		fmt.Fprintf(sb, "list %s\n", n.Rng)
		for _, item := range n.Items {
			dumpExpr(sb, item, depth+1)
		}
	case *Scope:
		fmt.Fprintf(sb, "scope %s\n", n.Rng)
		for _, node := range n.Nodes {
			dumpExpr(sb, node, depth+1)
		}
	case *Dot:
		fmt.Fprintf(sb, "dot %s\n", n.Rng)
		dumpExpr(sb, n.Base, depth+1)
		for _, seg := range n.Segments {
			indent(sb, depth+1)
			fmt.Fprintf(sb, ".%s optional=%v %s\n", seg.Name, seg.Optional, seg.Range)
		}
	default:
		fmt.Fprintf(sb, "? %T\n", e)
	}
}
