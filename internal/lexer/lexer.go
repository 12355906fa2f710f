// Package lexer tokenizes FunCity source, alternating between literal text
// and delimited code regions in template mode, or treating the whole input
// as one code region in code mode.
package lexer

import (
	"strconv"
	"strings"

	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/token"
)

// Mode selects the tokenizer's entry point.
type Mode int

const (
	// Template alternates text passages with {{ ... }} code regions.
	Template Mode = iota
	// Code treats the entire input as a single code region.
	Code
)

// Option configures a Lexer.
type Option func(*Lexer)

// WithMode overrides the default Template mode.
func WithMode(m Mode) Option {
	return func(l *Lexer) { l.mode = m }
}

// Lexer converts source text into a stream of tokens.
type Lexer struct {
	cur    *cursor
	mode   Mode
	log    *diag.Log
	inCode bool
	eof    bool

	buffer []token.Token
}

// New returns a Lexer reading src, recording diagnostics to log (which may
// be nil to discard them).
func New(src string, log *diag.Log, opts ...Option) *Lexer {
	l := &Lexer{cur: newCursor(src), mode: Template, log: log}
	for _, opt := range opts {
		opt(l)
	}
	l.inCode = l.mode == Code
	return l
}

// NextToken returns the next token, draining the lookahead buffer first.
func (l *Lexer) NextToken() token.Token {
	if len(l.buffer) > 0 {
		t := l.buffer[0]
		l.buffer = l.buffer[1:]
		return t
	}
	return l.produce()
}

// Peek returns the token n positions ahead (0 is the same as the next call
// to NextToken) without consuming it, buffering as many tokens as needed.
func (l *Lexer) Peek(n int) token.Token {
	for len(l.buffer) <= n {
		l.buffer = append(l.buffer, l.produce())
	}
	return l.buffer[n]
}

func (l *Lexer) warn(desc string, r token.Range) {
	if l.log != nil {
		l.log.Warn(desc, r)
	}
}

func (l *Lexer) error(desc string, r token.Range) {
	if l.log != nil {
		l.log.Error(desc, r)
	}
}

// produce computes the next token, dispatching on template/code state.
func (l *Lexer) produce() token.Token {
	if l.eof {
		return token.Token{Kind: token.EOF, Range: token.Range{Start: l.cur.position(), End: l.cur.position()}}
	}

	if !l.inCode {
		return l.produceText()
	}
	return l.produceCode()
}

// produceText implements the template-mode text scan: read until "{{" or
// end of input, honoring \{ and \} escapes.
func (l *Lexer) produceText() token.Token {
	start := l.cur.position()

	if l.cur.assert("{{") {
		l.cur.advance(2)
		l.inCode = true
		return token.Token{Kind: token.Open, Literal: "{{", Range: token.Range{Start: start, End: l.cur.position()}}
	}

	var sb strings.Builder
	for !l.cur.atEnd() && !l.cur.assert("{{") {
		r, _ := l.cur.peek(0)
		if r == '\\' {
			next, ok := l.cur.peek(1)
			if ok && (next == '{' || next == '}') {
				sb.WriteRune(next)
				l.cur.advance(2)
				continue
			}
			sb.WriteRune(r)
			l.cur.advance(1)
			continue
		}
		sb.WriteRune(r)
		l.cur.advance(1)
	}
	end := l.cur.position()

	if l.cur.atEnd() {
		l.eof = true
	}

	if sb.Len() == 0 {
		// We reached EOF with no text and no "{{": emit EOF directly.
		return token.Token{Kind: token.EOF, Range: token.Range{Start: end, End: end}}
	}
	return token.Token{Kind: token.Text, Literal: sb.String(), Range: token.Range{Start: start, End: end}}
}

// produceCode implements the code-region token rules shared by template and
// code mode.
func (l *Lexer) produceCode() token.Token {
	for {
		// Skip spaces/tabs.
		skipped := false
		for {
			r, ok := l.cur.peek(0)
			if !ok || (r != ' ' && r != '\t') {
				break
			}
			l.cur.advance(1)
			skipped = true
		}

		// Line continuation: "\" immediately followed by a line break.
		if r, ok := l.cur.peek(0); ok && r == '\\' {
			if next, ok := l.cur.peek(1); ok && (next == '\n' || next == '\r') {
				l.cur.advance(1) // the backslash
				l.cur.advance(1) // the line break (one logical unit)
				skipped = true
				continue
			}
		}

		// Line comment: consume through end of line; the eol is still
		// produced by the following iteration.
		if l.cur.assert("//") {
			l.cur.advance(2)
			for {
				r, ok := l.cur.peek(0)
				if !ok || r == '\n' || r == '\r' {
					break
				}
				l.cur.advance(1)
			}
			skipped = true
			continue
		}

		if !skipped {
			break
		}
	}

	start := l.cur.position()

	if l.cur.atEnd() {
		if l.mode == Template && l.inCode {
			l.error("unterminated code region", token.Range{Start: start, End: start})
		}
		l.eof = true
		return token.Token{Kind: token.EOF, Range: token.Range{Start: start, End: start}}
	}

	if l.mode == Template && l.cur.assert("}}") {
		l.cur.advance(2)
		l.inCode = false
		return token.Token{Kind: token.Close, Literal: "}}", Range: token.Range{Start: start, End: l.cur.position()}}
	}

	r, _ := l.cur.peek(0)

	if r == '\n' || r == '\r' {
		l.cur.advance(1)
		return token.Token{Kind: token.EOL, Marker: token.MarkerNewline, Range: token.Range{Start: start, End: l.cur.position()}}
	}

	if r == ';' {
		l.cur.advance(1)
		return token.Token{Kind: token.EOL, Marker: token.MarkerSemicolon, Range: token.Range{Start: start, End: l.cur.position()}}
	}

	if r == '\'' {
		return l.readString(start)
	}

	if isDigit(r) || ((r == '+' || r == '-') && func() bool {
		next, ok := l.cur.peek(1)
		return ok && isDigit(next)
	}()) {
		return l.readNumber(start)
	}

	switch r {
	case '(', '[':
		l.cur.advance(1)
		return token.Token{Kind: token.Open, Literal: string(r), Range: token.Range{Start: start, End: l.cur.position()}}
	case ')', ']':
		l.cur.advance(1)
		return token.Token{Kind: token.Close, Literal: string(r), Range: token.Range{Start: start, End: l.cur.position()}}
	case '.':
		l.cur.advance(1)
		return token.Token{Kind: token.Dot, Literal: ".", Range: token.Range{Start: start, End: l.cur.position()}}
	}

	if r == '?' {
		if next, ok := l.cur.peek(1); ok && next == '.' {
			l.cur.advance(2)
			return token.Token{Kind: token.Dot, Literal: "?.", Optional: true, Range: token.Range{Start: start, End: l.cur.position()}}
		}
	}

	if isIdentStart(r) {
		return l.readIdentifier(start)
	}

	return l.readUnknown(start)
}

func (l *Lexer) readString(start token.Position) token.Token {
	l.cur.advance(1) // opening quote
	var sb strings.Builder
	for {
		r, ok := l.cur.peek(0)
		if !ok {
			l.error("unterminated string literal", token.Range{Start: start, End: l.cur.position()})
			return token.Token{Kind: token.String, Literal: sb.String(), Range: token.Range{Start: start, End: l.cur.position()}}
		}
		if r == '\'' {
			l.cur.advance(1)
			break
		}
		if r == '\\' {
			esc, ok := l.cur.peek(1)
			if !ok {
				l.error("unterminated string literal", token.Range{Start: start, End: l.cur.position()})
				l.cur.advance(1)
				break
			}
			switch esc {
			case 'f':
				sb.WriteRune('\f')
			case 'n':
				sb.WriteRune('\n')
			case 'r':
				sb.WriteRune('\r')
			case 't':
				sb.WriteRune('\t')
			case 'v':
				sb.WriteRune('\v')
			case '0':
				sb.WriteRune(0)
			case '\'':
				sb.WriteRune('\'')
			case '\\':
				sb.WriteRune('\\')
			default:
				escStart := l.cur.position()
				l.cur.advance(2)
				l.error("invalid escape sequence: \\"+string(esc), token.Range{Start: escStart, End: l.cur.position()})
				sb.WriteRune('\\')
				sb.WriteRune(esc)
				continue
			}
			l.cur.advance(2)
			continue
		}
		sb.WriteRune(r)
		l.cur.advance(1)
	}
	return token.Token{Kind: token.String, Literal: sb.String(), Range: token.Range{Start: start, End: l.cur.position()}}
}

func (l *Lexer) readNumber(start token.Position) token.Token {
	var sb strings.Builder
	if r, ok := l.cur.peek(0); ok && (r == '+' || r == '-') {
		sb.WriteRune(r)
		l.cur.advance(1)
	}
	for {
		r, ok := l.cur.peek(0)
		if !ok || !isDigit(r) {
			break
		}
		sb.WriteRune(r)
		l.cur.advance(1)
	}
	if r, ok := l.cur.peek(0); ok && r == '.' {
		if next, ok := l.cur.peek(1); ok && isDigit(next) {
			sb.WriteRune('.')
			l.cur.advance(1)
			for {
				r, ok := l.cur.peek(0)
				if !ok || !isDigit(r) {
					break
				}
				sb.WriteRune(r)
				l.cur.advance(1)
			}
		}
	}
	end := l.cur.position()
	text := sb.String()
	value, err := strconv.ParseFloat(strings.TrimPrefix(text, "+"), 64)
	if err != nil {
		l.error("malformed number literal: "+text, token.Range{Start: start, End: end})
	}
	return token.Token{Kind: token.Number, Literal: text, Number: value, Range: token.Range{Start: start, End: end}}
}

func (l *Lexer) readIdentifier(start token.Position) token.Token {
	var sb strings.Builder
	for {
		r, ok := l.cur.peek(0)
		if !ok || !isIdentPart(r) {
			break
		}
		sb.WriteRune(r)
		l.cur.advance(1)
	}
	if r, ok := l.cur.peek(0); ok && r == '?' {
		sb.WriteRune('?')
		l.cur.advance(1)
	}
	end := l.cur.position()
	return token.Token{Kind: token.Identity, Literal: sb.String(), Range: token.Range{Start: start, End: end}}
}

func (l *Lexer) readUnknown(start token.Position) token.Token {
	var sb strings.Builder
	for {
		if l.cur.atEnd() {
			break
		}
		if l.startsKnownToken() {
			break
		}
		r, _ := l.cur.peek(0)
		sb.WriteRune(r)
		l.cur.advance(1)
	}
	end := l.cur.position()
	l.warn("unknown words", token.Range{Start: start, End: end})
	return token.Token{Kind: token.Illegal, Literal: sb.String(), Range: token.Range{Start: start, End: end}}
}

// startsKnownToken reports whether the cursor sits at the beginning of a
// recognizable code-region token, used to terminate an unknown-word run.
func (l *Lexer) startsKnownToken() bool {
	r, ok := l.cur.peek(0)
	if !ok {
		return true
	}
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ';' || r == '\'' {
		return true
	}
	if l.mode == Template && l.cur.assert("}}") {
		return true
	}
	if l.cur.assert("//") {
		return true
	}
	if isDigit(r) {
		return true
	}
	if (r == '+' || r == '-') && func() bool {
		next, ok := l.cur.peek(1)
		return ok && isDigit(next)
	}() {
		return true
	}
	switch r {
	case '(', '[', ')', ']', '.':
		return true
	}
	if r == '?' {
		if next, ok := l.cur.peek(1); ok && next == '.' {
			return true
		}
	}
	if isIdentStart(r) {
		return true
	}
	return false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r) || r == '-'
}
