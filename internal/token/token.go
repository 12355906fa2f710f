// Package token defines the source positions, ranges and token kinds shared
// by the lexer, parser and reducer.
package token

import "fmt"

// Position is a 1-based source location. The zero value {0,0} denotes an
// empty or unknown position.
type Position struct {
	Line   int
	Column int
}

// IsZero reports whether p is the empty/unknown position.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// String renders the position as "line:column", or "-" when unknown.
func (p Position) String() string {
	if p.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Range is a half-open span between two positions.
type Range struct {
	Start Position
	End   Position
}

// IsZero reports whether both endpoints are unknown.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// String renders the range the way diagnostics do: "L:C" when start and end
// coincide, otherwise "L1:C1:L2:C2".
func (r Range) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return fmt.Sprintf("%s:%d:%d", r.Start, r.End.Line, r.End.Column)
}

func before(a, b Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

// Widen returns the minimum range enclosing all non-empty ranges passed in.
// Empty/unknown ranges are ignored. Widen of no (or only empty) ranges
// returns the zero Range.
func Widen(ranges ...Range) Range {
	var result Range
	have := false
	for _, r := range ranges {
		if r.IsZero() {
			continue
		}
		if !have {
			result = r
			have = true
			continue
		}
		if before(r.Start, result.Start) {
			result.Start = r.Start
		}
		if before(result.End, r.End) {
			result.End = r.End
		}
	}
	return result
}

// Kind distinguishes the token variants produced by the tokenizer.
type Kind uint8

const (
	Illegal Kind = iota
	EOF
	Text
	Open
	Close
	Number
	String
	Identity
	Dot
	EOL
)

var kindNames = [...]string{
	Illegal:  "ILLEGAL",
	EOF:      "EOF",
	Text:     "TEXT",
	Open:     "OPEN",
	Close:    "CLOSE",
	Number:   "NUMBER",
	String:   "STRING",
	Identity: "IDENTITY",
	Dot:      "DOT",
	EOL:      "EOL",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Marker annotates how an EOL token was produced, since list literals reject
// the semicolon form.
type Marker uint8

const (
	MarkerNone Marker = iota
	MarkerNewline
	MarkerSemicolon
)

// Token is the unit produced by the lexer and consumed by the parser.
type Token struct {
	Kind Kind
	// Literal holds the raw or decoded payload: the text of a text/string
	// token, the spelling of an identity, the open/close delimiter symbol.
	Literal string
	// Number holds the decoded value for Kind == Number.
	Number float64
	// Optional is set on Kind == Dot tokens produced by "?.".
	Optional bool
	// Marker distinguishes newline-sourced EOL from ";"-sourced EOL.
	Marker Marker
	Range  Range
}

func (t Token) String() string {
	if t.Literal == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Literal)
}
