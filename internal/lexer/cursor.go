package lexer

import "github.com/cwbudde/funcity/internal/token"

// cursor is the tokenizer's low-level rune cursor. It implements the
// contract described for a tokenizer cursor: atEnd, peek, advance, assert,
// take and takeUntil, all tracking 1-based line/column positions.
type cursor struct {
	runes  []rune
	pos    int
	line   int
	column int
}

func newCursor(src string) *cursor {
	return &cursor{runes: []rune(src), pos: 0, line: 1, column: 1}
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.runes)
}

// peek returns the rune offset runes ahead of the cursor (offset 0 is the
// current rune), and whether it exists.
func (c *cursor) peek(offset int) (rune, bool) {
	idx := c.pos + offset
	if idx < 0 || idx >= len(c.runes) {
		return 0, false
	}
	return c.runes[idx], true
}

func (c *cursor) position() token.Position {
	return token.Position{Line: c.line, Column: c.column}
}

// stepOne consumes exactly one logical unit: either a single non-break rune,
// or an entire line-break sequence (LF, lone CR, or CRLF) counted as one
// line increment.
func (c *cursor) stepOne() {
	if c.atEnd() {
		return
	}
	r := c.runes[c.pos]
	if r == '\r' {
		if next, ok := c.peek(1); ok && next == '\n' {
			c.pos += 2
		} else {
			c.pos++
		}
		c.line++
		c.column = 1
		return
	}
	if r == '\n' {
		c.pos++
		c.line++
		c.column = 1
		return
	}
	c.pos++
	c.column++
}

// advance consumes n logical units (see stepOne).
func (c *cursor) advance(n int) {
	for i := 0; i < n; i++ {
		c.stepOne()
	}
}

// assert reports whether word matches the runes starting at the cursor,
// without consuming anything.
func (c *cursor) assert(word string) bool {
	for i, r := range []rune(word) {
		got, ok := c.peek(i)
		if !ok || got != r {
			return false
		}
	}
	return true
}

// take consumes and returns the next n runes verbatim.
func (c *cursor) take(n int) string {
	end := c.pos + n
	if end > len(c.runes) {
		end = len(c.runes)
	}
	s := string(c.runes[c.pos:end])
	c.advance(end - c.pos)
	return s
}

// takeUntil consumes runes up to (not including) the first occurrence of
// word, returning the consumed text and whether word was found. If word is
// never found, it consumes to the end of input and returns false.
func (c *cursor) takeUntil(word string) (string, bool) {
	start := c.pos
	for !c.atEnd() {
		if c.assert(word) {
			return string(c.runes[start:c.pos]), true
		}
		c.advance(1)
	}
	return string(c.runes[start:c.pos]), false
}
