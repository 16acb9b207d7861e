// Package lexer turns mlang source text into a flat token stream. It runs a
// small mode machine over the byte stream, tracking line indentation and the
// column of every match-bar as it goes — both of which the parser needs to
// discover statement and match-arm boundaries later.
package lexer

import (
	"strings"

	"github.com/jack-papel/mlang/diag"
	"github.com/jack-papel/mlang/token"
)

// mode is the lexer's current scanning context.
type mode int

const (
	modeTokens mode = iota
	modeLineComment
	modeBlockComment
)

// Lexer scans a source buffer into a token slice.
type Lexer struct {
	src string
	pos int // byte offset of the next unread char

	mode mode

	// col is a single running counter of characters since the last '\n'.
	// It is reused for two purposes: while atLineStart it is the number of
	// leading spaces (the pending Newline's indent), and once content has
	// started on the line col+1 is the 1-based column used to tag Bar tokens.
	col         int
	atLineStart bool

	tokens []token.Token
}

// New creates a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src, atLineStart: true}
}

// Lex tokenizes the entire source buffer, or returns a syntax error. The
// error's span covers the offending character, except for an unterminated
// string, whose span runs from the opening quote to the end of input.
func Lex(src string) ([]token.Token, *diag.Diagnostic) {
	l := New(src)
	return l.lex()
}

func (l *Lexer) lex() ([]token.Token, *diag.Diagnostic) {
	for l.pos < len(l.src) {
		ch := l.src[l.pos]

		switch l.mode {
		case modeLineComment:
			if ch == '\n' {
				l.mode = modeTokens
				continue
			}
			l.pos++
			continue

		case modeBlockComment:
			if ch == '*' && l.peek(1) == '/' {
				l.advance(2)
				l.mode = modeTokens
				continue
			}
			if ch == '\n' {
				l.col = 0
			} else {
				l.col++
			}
			l.pos++
			continue
		}

		switch {
		case ch == '\r':
			l.pos++
			continue

		case ch == '\t':
			return nil, diag.Syntaxf(l.span(1), "Tabs are currently not allowed")

		case ch == '\n':
			l.popTrailingNewline()
			l.tokens = append(l.tokens, token.Token{Kind: token.Newline, Span: l.span(1)})
			l.pos++
			l.col = 0
			l.atLineStart = true
			continue

		case ch == ' ':
			if l.atLineStart {
				l.bumpIndent()
			}
			l.pos++
			l.col++
			continue

		default:
			if l.atLineStart {
				l.atLineStart = false
			}
		}

		if ch == '/' && l.peek(1) == '/' {
			l.mode = modeLineComment
			l.pos += 2
			l.col += 2
			continue
		}
		if ch == '/' && l.peek(1) == '*' {
			l.mode = modeBlockComment
			l.pos += 2
			l.col += 2
			continue
		}

		if d := l.lexOne(ch); d != nil {
			return nil, d
		}
	}

	l.popTrailingNewline()
	l.tokens = append(l.tokens, token.Token{Kind: token.EOF, Span: l.span(0)})
	return l.tokens, nil
}

// popTrailingNewline removes the last token if it is a Newline, implementing
// both "a fresh \n pops any trailing newline token" and "drop a trailing
// newline" at EOF.
func (l *Lexer) popTrailingNewline() {
	if n := len(l.tokens); n > 0 && l.tokens[n-1].Kind == token.Newline {
		l.tokens = l.tokens[:n-1]
	}
}

func (l *Lexer) bumpIndent() {
	if n := len(l.tokens); n > 0 && l.tokens[n-1].Kind == token.Newline {
		l.tokens[n-1].Indent = l.col + 1
	}
}

func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) span(n int) token.Span {
	return token.NewSpan(uint32(l.pos), uint16(n))
}

func (l *Lexer) advance(n int) {
	l.pos += n
	l.col += n
}

func (l *Lexer) emit(kind token.Kind, n int) {
	l.tokens = append(l.tokens, token.Token{Kind: kind, Span: l.span(n)})
	l.advance(n)
}

// lexOne scans exactly one token starting at ch and appends it, or returns a
// diagnostic on malformed input.
func (l *Lexer) lexOne(ch byte) *diag.Diagnostic {
	switch {
	case ch == '|':
		return l.lexBar()
	case ch == '&':
		return l.lexAmp()
	case isDigit(ch):
		return l.lexNumber()
	case ch == '"':
		return l.lexString()
	case isIdentStart(ch):
		l.lexIdentOrKeyword()
		return nil
	}

	switch ch {
	case '(':
		l.emit(token.LParen, 1)
	case ')':
		l.emit(token.RParen, 1)
	case '[':
		l.emit(token.LBracket, 1)
	case ']':
		l.emit(token.RBracket, 1)
	case ',':
		l.emit(token.Comma, 1)
	case '~':
		l.emit(token.Tilde, 1)
	case '+':
		l.emit(token.Plus, 1)
	case '-':
		l.emit(token.Minus, 1)
	case '*':
		l.emit(token.Star, 1)
	case '/':
		l.emit(token.Slash, 1)
	case '%':
		l.emit(token.Percent, 1)
	case '$':
		l.emit(token.Dollar, 1)
	case '@':
		l.emit(token.At, 1)
	case '#':
		l.emit(token.Hash, 1)
	case ':':
		if l.peek(1) == ':' {
			l.emit(token.ColonColon, 2)
		} else {
			l.emit(token.Colon, 1)
		}
	case '=':
		if l.peek(1) == '=' {
			l.emit(token.EqualEqual, 2)
		} else {
			l.emit(token.Equal, 1)
		}
	case '!':
		if l.peek(1) == '=' {
			l.emit(token.BangEqual, 2)
		} else {
			l.emit(token.Bang, 1)
		}
	case '<':
		if l.peek(1) == '=' {
			l.emit(token.LessEqual, 2)
		} else {
			l.emit(token.Less, 1)
		}
	case '>':
		if l.peek(1) == '=' {
			l.emit(token.GreaterEqual, 2)
		} else {
			l.emit(token.Greater, 1)
		}
	case '.':
		if l.peek(1) == '.' {
			l.emit(token.DotDot, 2)
		} else {
			l.emit(token.Dot, 1)
		}
	default:
		return diag.Syntaxf(l.span(1), "Unexpected character %q", ch)
	}
	return nil
}

func (l *Lexer) lexBar() *diag.Diagnostic {
	col := l.col + 1
	start := l.pos
	n := 1
	for l.peek(n) == '|' {
		n++
	}
	kind := token.Bar
	switch n {
	case 2:
		kind = token.DoubleBar
	case 3:
		kind = token.TripleBar
	}
	l.tokens = append(l.tokens, token.Token{
		Kind:   kind,
		Span:   token.NewSpan(uint32(start), uint16(n)),
		Column: col,
	})
	l.advance(n)
	return nil
}

func (l *Lexer) lexAmp() *diag.Diagnostic {
	start := l.pos
	if l.peek(1) != '&' {
		return diag.Syntaxf(l.span(1), "Single ampersand is reserved but unsupported")
	}
	n := 2
	kind := token.AndAnd
	if l.peek(2) == '&' {
		n = 3
		kind = token.AndAndAnd
	}
	l.tokens = append(l.tokens, token.Token{Kind: kind, Span: token.NewSpan(uint32(start), uint16(n))})
	l.advance(n)
	return nil
}

func (l *Lexer) lexNumber() *diag.Diagnostic {
	start := l.pos
	for isDigit(l.peekAt(0)) {
		l.advance(1)
	}
	kind := token.LiteralInt
	if l.peekAt(0) == '.' && l.peek(1) != '.' && isDigit(l.peek(1)) {
		kind = token.LiteralFloat
		l.advance(1)
		for isDigit(l.peekAt(0)) {
			l.advance(1)
		}
	}
	lexeme := l.src[start:l.pos]
	tok := token.Token{
		Kind:    token.Literal,
		Span:    token.NewSpan(uint32(start), uint16(l.pos-start)),
		LitKind: kind,
	}
	if kind == token.LiteralInt {
		tok.IntValue = parseInt(lexeme)
	} else {
		tok.FloatValue = parseFloat(lexeme)
	}
	l.tokens = append(l.tokens, tok)
	return nil
}

func (l *Lexer) lexString() *diag.Diagnostic {
	start := l.pos
	l.advance(1) // opening quote
	var sb strings.Builder
	for {
		c := l.peekAt(0)
		if c == 0 {
			return diag.Syntaxf(token.NewSpan(uint32(start), uint16(l.pos-start)), "Unterminated string literal")
		}
		if c == '"' {
			l.advance(1)
			break
		}
		if c == '\\' && l.peek(1) == 'n' {
			sb.WriteByte('\n')
			l.advance(2)
			continue
		}
		if c == '\\' && l.peek(1) == '"' {
			sb.WriteByte('"')
			l.advance(2)
			continue
		}
		sb.WriteByte(c)
		l.advance(1)
	}
	l.tokens = append(l.tokens, token.Token{
		Kind:    token.Literal,
		Span:    token.NewSpan(uint32(start), uint16(l.pos-start)),
		LitKind: token.LiteralString,
		Symbol:  token.Intern(sb.String()),
	})
	return nil
}

func (l *Lexer) lexIdentOrKeyword() {
	start := l.pos
	for isIdentCont(l.peekAt(0)) {
		l.advance(1)
	}
	lexeme := l.src[start:l.pos]
	span := token.NewSpan(uint32(start), uint16(l.pos-start))

	if lexeme == "true" || lexeme == "false" {
		l.tokens = append(l.tokens, token.Token{
			Kind:      token.Literal,
			Span:      span,
			LitKind:   token.LiteralBool,
			BoolValue: lexeme == "true",
		})
		return
	}
	if sym, ok := token.Keywords[lexeme]; ok {
		l.tokens = append(l.tokens, token.Token{Kind: token.Keyword, Span: span, Symbol: sym})
		return
	}
	l.tokens = append(l.tokens, token.Token{Kind: token.Identifier, Span: span, Symbol: token.Intern(lexeme)})
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func isDigit(ch byte) bool      { return ch >= '0' && ch <= '9' }
func isIdentStart(ch byte) bool { return ch == '_' || (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') }
func isIdentCont(ch byte) bool  { return isIdentStart(ch) || isDigit(ch) }

func parseInt(s string) int64 {
	var v int64
	for i := 0; i < len(s); i++ {
		v = v*10 + int64(s[i]-'0')
	}
	return v
}

func parseFloat(s string) float64 {
	intPart := 0.0
	i := 0
	for ; i < len(s) && s[i] != '.'; i++ {
		intPart = intPart*10 + float64(s[i]-'0')
	}
	frac := 0.0
	scale := 1.0
	for i++; i < len(s); i++ {
		frac = frac*10 + float64(s[i]-'0')
		scale *= 10
	}
	return intPart + frac/scale
}
