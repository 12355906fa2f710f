package parser

import (
	"github.com/cwbudde/funcity/internal/ast"
	"github.com/cwbudde/funcity/internal/token"
)

// partial is a working-list element during expression-level parsing: an
// ordinary expression node, or the distinguished unit value "()".
type partial struct {
	expr   ast.Expr
	isUnit bool
	rng    token.Range
}

// parseLineExpr collects partial nodes until the current line ends (EOL,
// any Close delimiter, or EOF) and reduces them via application
// finalization.
func (p *parser) parseLineExpr() (ast.Expr, bool) {
	var parts []partial
	for !p.atLineEnd() {
		parts = append(parts, p.primary())
	}
	return finalize(p, parts)
}

// finalize implements application finalization over a line's partial
// nodes: 0 -> none, 1 -> that node (a lone unit is an error), 2+ -> apply.
func finalize(p *parser, parts []partial) (ast.Expr, bool) {
	if len(parts) == 0 {
		return nil, false
	}
	if len(parts) == 1 {
		pp := parts[0]
		if pp.isUnit {
			p.error("unit value used where an expression was expected", pp.rng)
			return placeholderUndefined(pp.rng), true
		}
		return pp.expr, true
	}

	first := parts[0]
	var funcExpr ast.Expr
	if first.isUnit {
		p.error("cannot apply a unit value as a function", first.rng)
		funcExpr = placeholderUndefined(first.rng)
	} else {
		funcExpr = first.expr
	}

	var args []ast.Expr
	if len(parts) == 2 && parts[1].isUnit {
		args = []ast.Expr{}
	} else {
		for _, pp := range parts[1:] {
			if pp.isUnit {
				p.error("unit value used where an expression was expected", pp.rng)
				args = append(args, placeholderUndefined(pp.rng))
			} else {
				args = append(args, pp.expr)
			}
		}
	}

	ranges := make([]token.Range, len(parts))
	for i, pp := range parts {
		ranges[i] = pp.rng
	}
	return &ast.Apply{Func: funcExpr, Args: args, Rng: token.Widen(ranges...)}, true
}

// primary parses one atomic partial node (with any following dot chain):
// number, string, identifier, parenthesized group or list literal.
func (p *parser) primary() partial {
	tok := p.current()
	switch {
	case tok.Kind == token.Number:
		p.advance()
		return p.dotChain(partial{expr: &ast.Number{Value: tok.Number, Rng: tok.Range}, rng: tok.Range})
	case tok.Kind == token.String:
		p.advance()
		return p.dotChain(partial{expr: &ast.String{Value: tok.Literal, Rng: tok.Range}, rng: tok.Range})
	case tok.Kind == token.Identity:
		p.advance()
		return p.dotChain(partial{expr: &ast.Variable{Name: tok.Literal, Rng: tok.Range}, rng: tok.Range})
	case tok.Kind == token.Open && tok.Literal == "(":
		return p.parseParenGroup()
	case tok.Kind == token.Open && tok.Literal == "[":
		return p.parseListLiteral()
	case tok.Kind == token.Dot:
		p.advance()
		p.error("invalid dot at this location", tok.Range)
		return partial{expr: placeholderUndefined(tok.Range), rng: tok.Range}
	default:
		p.advance()
		p.error("unexpected token", tok.Range)
		return partial{expr: placeholderUndefined(tok.Range), rng: tok.Range}
	}
}

// dotChain consumes a run of ".name"/"?.name" segments following base,
// wrapping it in a Dot node. base is returned unchanged if no dot follows.
func (p *parser) dotChain(base partial) partial {
	var segments []ast.DotSegment
	for p.current().Kind == token.Dot {
		dotTok := p.advance()
		idTok := p.current()
		var seg ast.DotSegment
		if idTok.Kind == token.Identity {
			p.advance()
			seg = ast.DotSegment{Name: idTok.Literal, Optional: dotTok.Optional, Range: idTok.Range, OperatorRange: dotTok.Range}
		} else {
			p.error("missing identifier after dot", dotTok.Range)
			seg = ast.DotSegment{Name: "undefined", Optional: dotTok.Optional, Range: dotTok.Range, OperatorRange: dotTok.Range}
		}
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		return base
	}

	baseExpr := base.expr
	if base.isUnit {
		p.error("cannot access a member of a unit value", base.rng)
		baseExpr = placeholderUndefined(base.rng)
	}
	rng := token.Widen(base.rng, segments[len(segments)-1].Range)
	return partial{expr: &ast.Dot{Base: baseExpr, Segments: segments, Rng: rng}, rng: rng}
}

// parseParenGroup parses "(" items separated by EOL ")" where each item is
// itself finalized as one expression. Empty -> unit, single -> that
// expression, multiple -> Scope.
func (p *parser) parseParenGroup() partial {
	openTok := p.advance()
	startRange := openTok.Range

	var items []ast.Expr
	endRange := startRange
	for {
		tok := p.current()
		if tok.Kind == token.EOF {
			p.error("missing closing ')'", startRange)
			endRange = tok.Range
			break
		}
		if tok.Kind == token.Close {
			if tok.Literal == ")" {
				p.advance()
				endRange = tok.Range
			} else {
				p.error("mismatched closing delimiter, expected ')'", tok.Range)
				endRange = tok.Range
			}
			break
		}
		if tok.Kind == token.EOL {
			p.advance()
			continue
		}
		if expr, ok := p.parseLineExpr(); ok {
			items = append(items, expr)
		}
	}

	rng := token.Widen(startRange, endRange)
	var result partial
	switch len(items) {
	case 0:
		result = partial{isUnit: true, rng: rng}
	case 1:
		result = partial{expr: items[0], rng: rng}
	default:
		result = partial{expr: &ast.Scope{Nodes: items, Rng: rng}, rng: rng}
	}
	return p.dotChain(result)
}

// parseListLiteral parses "[" items "]" where each item is one atomic
// primary (no application finalization between items) and a semicolon
// separator is rejected.
func (p *parser) parseListLiteral() partial {
	openTok := p.advance()
	startRange := openTok.Range

	var items []ast.Expr
	endRange := startRange
	for {
		tok := p.current()
		if tok.Kind == token.EOF {
			p.error("missing closing ']'", startRange)
			endRange = tok.Range
			break
		}
		if tok.Kind == token.Close {
			if tok.Literal == "]" {
				p.advance()
				endRange = tok.Range
			} else {
				p.error("mismatched closing delimiter, expected ']'", tok.Range)
				endRange = tok.Range
			}
			break
		}
		if tok.Kind == token.EOL {
			if tok.Marker == token.MarkerSemicolon {
				p.error("semicolon not allowed in list literal", tok.Range)
			}
			p.advance()
			continue
		}
		item := p.primary()
		if item.isUnit {
			p.error("unit value not allowed in list literal", item.rng)
			items = append(items, placeholderUndefined(item.rng))
		} else {
			items = append(items, item.expr)
		}
	}

	rng := token.Widen(startRange, endRange)
	return p.dotChain(partial{expr: &ast.List{Items: items, Rng: rng}, rng: rng})
}
