// Package parser converts a FunCity token stream into a list of block
// nodes, maintaining the block-level statement stack (if/elseif/else,
// while, for, closed by end) described by the tokenizer's companion
// component. Recoverable problems are logged; the parser never panics.
package parser

import (
	"github.com/cwbudde/funcity/internal/ast"
	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/lexer"
	"github.com/cwbudde/funcity/internal/token"
)

// Mode mirrors lexer.Mode: Template alternates text and {{ }} code
// regions; Code treats the whole input as one code region.
type Mode = lexer.Mode

const (
	Template = lexer.Template
	Code     = lexer.Code
)

// Parse tokenizes and parses src, returning the top-level block sequence.
// Diagnostics are appended to log.
func Parse(src string, mode Mode, log *diag.Log) []ast.Block {
	l := lexer.New(src, log, lexer.WithMode(mode))
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return ParseTokens(toks, mode, log)
}

// ParseTokens parses an already-tokenized stream (toks must end with an EOF
// token). Exposed separately so tools (the CLI's lex/parse split, tests)
// can inspect the token stream before parsing it.
func ParseTokens(toks []token.Token, mode Mode, log *diag.Log) []ast.Block {
	p := &parser{tokens: toks, log: log, mode: mode, inExpr: mode == Code}
	p.stack = []*frame{{kind: frameRoot, root: &branchState{}}}
	p.run()
	return p.finish()
}

// branchState accumulates block children plus a buffer of expressions
// awaiting a line-break flush, within one branch of an open statement.
type branchState struct {
	blocks []ast.Block
	buffer []partial
}

type frameKind uint8

const (
	frameRoot frameKind = iota
	frameIf
	frameWhile
	frameFor
)

type elseifRecord struct {
	startRange token.Range
	condition  ast.Expr
	branch     branchState
}

type ifFrame struct {
	condition   ast.Expr
	thenBranch  branchState
	elseifs     []elseifRecord
	hasElse     bool
	elseBranch  branchState
	activeIndex int // -1 = else, 0 = then, n>0 = elseifs[n-1]
}

type frame struct {
	kind       frameKind
	startRange token.Range

	root *branchState // frameRoot

	ifF *ifFrame // frameIf

	whileCond   ast.Expr // frameWhile
	whileBranch branchState

	forBind   *ast.Variable // frameFor
	forIter   ast.Expr
	forBranch branchState
}

func (f *frame) activeBranch() *branchState {
	switch f.kind {
	case frameRoot:
		return f.root
	case frameIf:
		switch {
		case f.ifF.activeIndex == -1:
			return &f.ifF.elseBranch
		case f.ifF.activeIndex == 0:
			return &f.ifF.thenBranch
		default:
			return &f.ifF.elseifs[f.ifF.activeIndex-1].branch
		}
	case frameWhile:
		return &f.whileBranch
	case frameFor:
		return &f.forBranch
	}
	panic("unreachable frame kind")
}

type parser struct {
	tokens []token.Token
	pos    int
	log    *diag.Log
	mode   Mode
	inExpr bool

	stack []*frame
}

func (p *parser) current() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *parser) peek(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *parser) advance() token.Token {
	t := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) top() *frame { return p.stack[len(p.stack)-1] }

func (p *parser) error(desc string, r token.Range) { p.log.Error(desc, r) }

func placeholderUndefined(r token.Range) ast.Expr {
	return &ast.Variable{Name: "undefined", Rng: r}
}

var statementKeywords = map[string]bool{
	"if": true, "elseif": true, "else": true, "while": true, "for": true, "end": true,
}

func (p *parser) run() {
	for {
		tok := p.current()
		if tok.Kind == token.EOF {
			return
		}

		if p.mode == Template && !p.inExpr {
			switch {
			case tok.Kind == token.Text:
				p.advance()
				b := p.top().activeBranch()
				b.blocks = append(b.blocks, &ast.Text{Value: tok.Literal, Rng: tok.Range})
				continue
			case tok.Kind == token.Open && tok.Literal == "{{":
				p.advance()
				p.inExpr = true
				continue
			case tok.Kind == token.EOF:
				return
			default:
				// Tokenizer bug: a non-text token surfaced outside a code
				// region. Skip it to avoid looping.
				p.error("tokenizer bug: unexpected token outside code region", tok.Range)
				p.advance()
				continue
			}
		}

		// Inside a code region (or always, in code mode).
		if p.mode == Template && tok.Kind == token.Close && tok.Literal == "}}" {
			p.flushActive()
			p.advance()
			p.inExpr = false
			continue
		}

		if tok.Kind == token.EOL {
			p.advance()
			p.flushActive()
			continue
		}

		if tok.Kind == token.Identity && statementKeywords[tok.Literal] && len(p.top().activeBranch().buffer) == 0 {
			p.handleKeyword(tok)
			continue
		}

		part := p.primary()
		b := p.top().activeBranch()
		b.buffer = append(b.buffer, part)
	}
}

func (p *parser) handleKeyword(tok token.Token) {
	p.advance()
	switch tok.Literal {
	case "if":
		cond := p.requireLineExpr(tok.Range, "if requires exactly one argument")
		p.stack = append(p.stack, &frame{kind: frameIf, startRange: tok.Range, ifF: &ifFrame{condition: cond}})
	case "elseif":
		top := p.top()
		if top.kind != frameIf || top.ifF.activeIndex == -1 {
			p.error("elseif is only allowed after an if or elseif branch", tok.Range)
			p.requireLineExpr(tok.Range, "")
			return
		}
		p.flushActive()
		cond := p.requireLineExpr(tok.Range, "elseif requires exactly one argument")
		top.ifF.elseifs = append(top.ifF.elseifs, elseifRecord{startRange: tok.Range, condition: cond})
		top.ifF.activeIndex = len(top.ifF.elseifs)
	case "else":
		top := p.top()
		if top.kind != frameIf || top.ifF.activeIndex == -1 {
			p.error("else is only allowed once, after an if or elseif branch", tok.Range)
		} else {
			p.flushActive()
			top.ifF.activeIndex = -1
			top.ifF.hasElse = true
		}
		p.rejectArguments(tok.Range, "else")
	case "while":
		cond := p.requireLineExpr(tok.Range, "while requires exactly one argument")
		p.stack = append(p.stack, &frame{kind: frameWhile, startRange: tok.Range, whileCond: cond})
	case "for":
		bindTok := p.current()
		var bind *ast.Variable
		if bindTok.Kind == token.Identity {
			p.advance()
			bind = &ast.Variable{Name: bindTok.Literal, Rng: bindTok.Range}
		} else {
			p.error("for requires an identifier binding", bindTok.Range)
			bind = &ast.Variable{Name: "undefined", Rng: tok.Range}
		}
		iter := p.requireLineExpr(tok.Range, "for requires an iterable expression")
		p.stack = append(p.stack, &frame{kind: frameFor, startRange: tok.Range, forBind: bind, forIter: iter})
	case "end":
		p.rejectArguments(tok.Range, "end")
		if len(p.stack) == 1 {
			p.error("end does not match any open statement", tok.Range)
			return
		}
		p.flushActive()
		p.closeTop(tok.Range)
	}
}

// requireLineExpr parses the remainder of the current line as a single
// expression, logging desc (if non-empty) and substituting a placeholder
// when the line is empty.
func (p *parser) requireLineExpr(fallback token.Range, desc string) ast.Expr {
	expr, ok := p.parseLineExpr()
	if !ok {
		if desc != "" {
			p.error(desc, fallback)
		}
		return placeholderUndefined(fallback)
	}
	return expr
}

// rejectArguments logs an error if tokens remain on the line after a
// keyword that takes no arguments (else, end).
func (p *parser) rejectArguments(fallback token.Range, keyword string) {
	if p.atLineEnd() {
		return
	}
	start := p.current().Range
	for !p.atLineEnd() {
		p.advance()
	}
	p.error(keyword+" does not take arguments", start)
}

// atLineEnd reports whether the cursor sits at a token that stops
// expression-level parsing: end of input, a line break, or any closing
// delimiter (the caller decides whether that delimiter matches its own
// opener or is a mismatch).
func (p *parser) atLineEnd() bool {
	tok := p.current()
	return tok.Kind == token.EOF || tok.Kind == token.EOL || tok.Kind == token.Close
}

// flushActive flushes the current active branch's expression buffer into a
// single child block via application finalization (a lone node stays as
// it is; several nodes become an Apply of the first to the rest).
func (p *parser) flushActive() {
	b := p.top().activeBranch()
	if len(b.buffer) == 0 {
		return
	}
	expr, ok := finalize(p, b.buffer)
	b.buffer = nil
	if !ok {
		return
	}
	b.blocks = append(b.blocks, expr)
}

func (p *parser) closeTop(endRange token.Range) {
	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	var node ast.Block
	switch top.kind {
	case frameIf:
		node = foldIf(top, endRange)
	case frameWhile:
		node = &ast.While{Condition: top.whileCond, Repeat: top.whileBranch.blocks, Rng: token.Widen(top.startRange, endRange)}
	case frameFor:
		node = &ast.For{Bind: top.forBind, Iterable: top.forIter, Repeat: top.forBranch.blocks, Rng: token.Widen(top.startRange, endRange)}
	default:
		panic("closeTop called on root frame")
	}

	parent := p.top().activeBranch()
	parent.blocks = append(parent.blocks, node)
}

func foldIf(top *frame, endRange token.Range) ast.Block {
	f := top.ifF
	var elseBlocks []ast.Block
	if f.hasElse {
		elseBlocks = f.elseBranch.blocks
	}
	for i := len(f.elseifs) - 1; i >= 0; i-- {
		rec := f.elseifs[i]
		elseBlocks = []ast.Block{&ast.If{
			Condition: rec.condition,
			Then:      rec.branch.blocks,
			Else:      elseBlocks,
			Rng:       token.Widen(rec.startRange, endRange),
		}}
	}
	return &ast.If{
		Condition: f.condition,
		Then:      top.ifF.thenBranch.blocks,
		Else:      elseBlocks,
		Rng:       token.Widen(top.startRange, endRange),
	}
}

// finish flushes whatever is active at end of input and force-closes any
// still-open statements, logging a single unresolved-statement error.
func (p *parser) finish() []ast.Block {
	p.flushActive()

	if len(p.stack) > 1 {
		var ranges []token.Range
		for _, f := range p.stack[1:] {
			ranges = append(ranges, f.startRange)
		}
		p.error("could not find statement closing", token.Widen(ranges...))
		endRange := p.tokens[len(p.tokens)-1].Range
		for len(p.stack) > 1 {
			p.closeTop(endRange)
		}
	}

	return p.stack[0].root.blocks
}
