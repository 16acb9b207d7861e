// Package cursor provides a lightweight, cloneable view over a token slice.
// It is the parser's sole primitive for lookahead: every parsing function
// takes a Cursor by value, so "clone" is simply "copy the struct".
//
// Grounded on the immutable-cursor design in the retrieval pack's
// CWBudde-go-dws/internal/parser/cursor.go, simplified to the spec's
// fixed-slice model: this cursor is bounded to a pre-lexed token slice
// rather than pulling from a live lexer, so Peek/Take never need to buffer.
package cursor

import "github.com/jack-papel/mlang/token"

// Cursor is a bounded, cheap-to-copy view (tokens[index:end]).
type Cursor struct {
	tokens []token.Token
	index  int
	end    int
}

// New creates a cursor over the full token slice.
func New(tokens []token.Token) Cursor {
	return Cursor{tokens: tokens, index: 0, end: len(tokens)}
}

// Len returns the number of tokens remaining in the cursor's view.
func (c Cursor) Len() int {
	if c.end <= c.index {
		return 0
	}
	return c.end - c.index
}

// Done reports whether the cursor has no more tokens.
func (c Cursor) Done() bool {
	return c.Len() == 0
}

// Peek returns the current token, or a zero-value EOF-kinded token if the
// cursor is exhausted.
func (c Cursor) Peek() token.Token {
	return c.PeekN(0)
}

// PeekN returns the token offset positions ahead of the cursor's current
// position, or an EOF token if that position is past the cursor's end.
func (c Cursor) PeekN(offset int) token.Token {
	i := c.index + offset
	if offset < 0 || i >= c.end || i >= len(c.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return c.tokens[i]
}

// Next returns the current token and a cursor advanced past it.
func (c Cursor) Next() (token.Token, Cursor) {
	tok := c.Peek()
	return tok, c.Skip(1)
}

// Skip returns a cursor advanced n tokens, clamped to the cursor's end.
func (c Cursor) Skip(n int) Cursor {
	idx := c.index + n
	if idx > c.end {
		idx = c.end
	}
	c.index = idx
	return c
}

// Take returns a sub-cursor covering exactly the next n tokens (clamped to
// what remains) and a cursor advanced past them.
func (c Cursor) Take(n int) (Cursor, Cursor) {
	limit := c.index + n
	if limit > c.end {
		limit = c.end
	}
	sub := Cursor{tokens: c.tokens, index: c.index, end: limit}
	return sub, c.Skip(n)
}

// Slice returns the tokens currently in view, for callers that want to
// iterate directly (e.g. the parser's fragment scan).
func (c Cursor) Slice() []token.Token {
	if c.Done() {
		return nil
	}
	return c.tokens[c.index:c.end]
}
