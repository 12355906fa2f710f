package lexer

import (
	"testing"

	"github.com/cwbudde/funcity/internal/diag"
	"github.com/cwbudde/funcity/internal/token"
)

func collect(l *Lexer) []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func equalKinds(t *testing.T, got []token.Kind, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("kind count = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("kind[%d] = %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestTemplateSplicing(t *testing.T) {
	log := diag.NewLog()
	l := New("Hello{{add 123 456}}World", log)
	toks := collect(l)
	equalKinds(t, kinds(toks), []token.Kind{
		token.Text, token.Open, token.Identity, token.Number, token.Number, token.Close, token.Text, token.EOF,
	})
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	if toks[0].Literal != "Hello" || toks[6].Literal != "World" {
		t.Fatalf("text tokens = %q, %q", toks[0].Literal, toks[6].Literal)
	}
	if toks[3].Number != 123 || toks[4].Number != 456 {
		t.Fatalf("number tokens = %v, %v", toks[3].Number, toks[4].Number)
	}
}

func TestTextEscapes(t *testing.T) {
	l := New(`a\{b\}c\{{1}}`, nil)
	first := l.NextToken()
	// The final "\{" escapes the first brace of "{{", so no code region
	// opens and the rest stays literal text.
	if first.Kind != token.Text || first.Literal != "a{b}c{{1}}" {
		t.Fatalf("got %+v", first)
	}
}

func TestUnterminatedCodeRegion(t *testing.T) {
	log := diag.NewLog()
	l := New("{{1 2", log)
	collect(l)
	if !log.HasError() {
		t.Fatal("expected an error for an unterminated code region")
	}
}

func TestCodeModeNumbersAndStrings(t *testing.T) {
	l := New(`1 -2.5 +3 'it''s' 'a\nb'`, nil, WithMode(Code))
	toks := collect(l)
	// 'it''s' is two adjacent string literals ('it' and 's'); a quote inside
	// a string is written \'.
	equalKinds(t, kinds(toks), []token.Kind{
		token.Number, token.Number, token.Number, token.String, token.String, token.String, token.EOF,
	})
	if toks[0].Number != 1 || toks[1].Number != -2.5 || toks[2].Number != 3 {
		t.Fatalf("numbers = %v %v %v", toks[0].Number, toks[1].Number, toks[2].Number)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`'a\nb\tc'`, nil, WithMode(Code))
	tok := l.NextToken()
	if tok.Kind != token.String || tok.Literal != "a\nb\tc" {
		t.Fatalf("got %+v", tok)
	}
}

func TestInvalidEscapeSequence(t *testing.T) {
	log := diag.NewLog()
	l := New(`'a\qb'`, log, WithMode(Code))
	tok := l.NextToken()
	if tok.Literal != `a\qb` {
		t.Fatalf("literal = %q", tok.Literal)
	}
	if !log.HasError() {
		t.Fatal("expected an error for the invalid escape")
	}
}

func TestIdentifierTrailingQuestionMark(t *testing.T) {
	l := New("flag?", nil, WithMode(Code))
	tok := l.NextToken()
	if tok.Kind != token.Identity || tok.Literal != "flag?" {
		t.Fatalf("got %+v", tok)
	}
}

func TestDotChainAndOptionalDot(t *testing.T) {
	l := New("a.b c ?.d", nil, WithMode(Code))
	toks := collect(l)
	equalKinds(t, kinds(toks), []token.Kind{
		token.Identity, token.Dot, token.Identity, token.Identity, token.Dot, token.Identity, token.EOF,
	})
	if toks[1].Optional {
		t.Fatal("plain dot should not be optional")
	}
	if !toks[4].Optional {
		t.Fatal("?. should be optional")
	}
}

func TestSemicolonAndNewlineEOL(t *testing.T) {
	l := New("a;b\nc", nil, WithMode(Code))
	toks := collect(l)
	if toks[1].Kind != token.EOL || toks[1].Marker != token.MarkerSemicolon {
		t.Fatalf("expected semicolon EOL, got %+v", toks[1])
	}
	if toks[3].Kind != token.EOL || toks[3].Marker != token.MarkerNewline {
		t.Fatalf("expected newline EOL, got %+v", toks[3])
	}
}

func TestLineContinuationSuppressesEOL(t *testing.T) {
	l := New("a \\\nb", nil, WithMode(Code))
	toks := collect(l)
	equalKinds(t, kinds(toks), []token.Kind{token.Identity, token.Identity, token.EOF})
}

func TestLineCommentStillEmitsEOL(t *testing.T) {
	l := New("a // comment\nb", nil, WithMode(Code))
	toks := collect(l)
	equalKinds(t, kinds(toks), []token.Kind{token.Identity, token.EOL, token.Identity, token.EOF})
}

func TestUnknownWordsWarning(t *testing.T) {
	log := diag.NewLog()
	l := New("@@@ a", log, WithMode(Code))
	toks := collect(l)
	if toks[0].Kind != token.Illegal {
		t.Fatalf("expected illegal token, got %+v", toks[0])
	}
	if log.HasError() {
		t.Fatal("unknown words is a warning, not an error")
	}
	if len(log.Entries()) != 1 || log.Entries()[0].Kind != diag.Warning {
		t.Fatalf("entries = %v", log.Entries())
	}
}

func TestListRejectsSemicolonMarkerAtParserLevel(t *testing.T) {
	// The lexer itself emits the semicolon EOL unconditionally; rejecting it
	// inside list literals is the parser's job (see parser package tests).
	l := New("[1;2]", nil, WithMode(Code))
	toks := collect(l)
	equalKinds(t, kinds(toks), []token.Kind{
		token.Open, token.Number, token.EOL, token.Number, token.Close, token.EOF,
	})
	if toks[2].Marker != token.MarkerSemicolon {
		t.Fatalf("expected semicolon marker, got %v", toks[2].Marker)
	}
}
