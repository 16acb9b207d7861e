package lexer

import (
	"testing"

	"github.com/jack-papel/mlang/token"
)

func TestLex_Empty(t *testing.T) {
	toks, d := Lex("")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("expected [EOF], got %v", toks)
	}
}

func TestLex_Identifiers(t *testing.T) {
	toks, d := Lex("foo bar_baz _private")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	want := []string{"foo", "bar_baz", "_private"}
	for i, w := range want {
		if toks[i].Kind != token.Identifier || toks[i].Symbol.String() != w {
			t.Fatalf("token[%d]: expected Identifier %q, got %v %q", i, w, toks[i].Kind, toks[i].Lexeme())
		}
	}
	if toks[len(want)].Kind != token.EOF {
		t.Fatalf("expected trailing EOF, got %v", toks[len(want)].Kind)
	}
}

func TestLex_Keywords(t *testing.T) {
	toks, d := Lex("let return break continue")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	for i, tok := range toks[:4] {
		if tok.Kind != token.Keyword {
			t.Fatalf("token[%d]: expected Keyword, got %v", i, tok.Kind)
		}
	}
}

func TestLex_IntLiteral(t *testing.T) {
	toks, d := Lex("42")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if toks[0].Kind != token.Literal || toks[0].LitKind != token.LiteralInt || toks[0].IntValue != 42 {
		t.Fatalf("expected Int(42), got %+v", toks[0])
	}
}

func TestLex_FloatLiteral(t *testing.T) {
	toks, d := Lex("3.5")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if toks[0].Kind != token.Literal || toks[0].LitKind != token.LiteralFloat {
		t.Fatalf("expected Float, got %+v", toks[0])
	}
	if toks[0].FloatValue != 3.5 {
		t.Fatalf("expected 3.5, got %v", toks[0].FloatValue)
	}
}

// Disambiguating `0..5` from `0.5` is the one subtle case in number lexing:
// a single '.' followed by a digit is a float, but two dots is a range.
func TestLex_RangeNotConfusedWithFloat(t *testing.T) {
	toks, d := Lex("0..5")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if toks[0].LitKind != token.LiteralInt || toks[0].IntValue != 0 {
		t.Fatalf("expected Int(0), got %+v", toks[0])
	}
	if toks[1].Kind != token.DotDot {
		t.Fatalf("expected DotDot, got %v", toks[1].Kind)
	}
	if toks[2].LitKind != token.LiteralInt || toks[2].IntValue != 5 {
		t.Fatalf("expected Int(5), got %+v", toks[2])
	}
}

func TestLex_StringLiteral(t *testing.T) {
	toks, d := Lex(`"hello\nworld"`)
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if toks[0].Kind != token.Literal || toks[0].LitKind != token.LiteralString {
		t.Fatalf("expected String literal, got %+v", toks[0])
	}
	if toks[0].Symbol.String() != "hello\nworld" {
		t.Fatalf("expected escaped newline, got %q", toks[0].Symbol.String())
	}
}

func TestLex_UnterminatedString(t *testing.T) {
	_, d := Lex(`"unterminated`)
	if d == nil {
		t.Fatal("expected a syntax error for an unterminated string")
	}
}

func TestLex_BarCollapsing(t *testing.T) {
	toks, d := Lex("| || |||")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if toks[0].Kind != token.Bar {
		t.Fatalf("expected Bar, got %v", toks[0].Kind)
	}
	if toks[1].Kind != token.DoubleBar {
		t.Fatalf("expected DoubleBar, got %v", toks[1].Kind)
	}
	if toks[2].Kind != token.TripleBar {
		t.Fatalf("expected TripleBar, got %v", toks[2].Kind)
	}
}

func TestLex_BarColumnTagging(t *testing.T) {
	toks, d := Lex("  | a : 1")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if toks[0].Kind != token.Bar {
		t.Fatalf("expected Bar, got %v", toks[0].Kind)
	}
	if toks[0].Column != 3 {
		t.Fatalf("expected column 3 (1-based, after two leading spaces), got %d", toks[0].Column)
	}
}

func TestLex_AmpersandCollapsing(t *testing.T) {
	toks, d := Lex("&& &&&")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if toks[0].Kind != token.AndAnd {
		t.Fatalf("expected AndAnd, got %v", toks[0].Kind)
	}
	if toks[1].Kind != token.AndAndAnd {
		t.Fatalf("expected AndAndAnd, got %v", toks[1].Kind)
	}
}

func TestLex_LoneAmpersandIsError(t *testing.T) {
	_, d := Lex("&")
	if d == nil {
		t.Fatal("expected an error for a lone '&'")
	}
}

func TestLex_TabIsError(t *testing.T) {
	_, d := Lex("\tlet")
	if d == nil {
		t.Fatal("expected an error for a leading tab")
	}
}

func TestLex_NewlineIndentTracksLeadingSpaces(t *testing.T) {
	toks, d := Lex("a\n  b")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if toks[1].Kind != token.Newline {
		t.Fatalf("expected Newline, got %v", toks[1].Kind)
	}
	if toks[1].Indent != 2 {
		t.Fatalf("expected indent 2, got %d", toks[1].Indent)
	}
}

func TestLex_BlankLineNewlineIsDropped(t *testing.T) {
	toks, d := Lex("a\n\nb")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	// A fresh '\n' pops any prior pending Newline token, so only one
	// Newline should separate a and b despite the blank line.
	newlines := 0
	for _, tok := range toks {
		if tok.Kind == token.Newline {
			newlines++
		}
	}
	if newlines != 1 {
		t.Fatalf("expected exactly 1 Newline across a blank line, got %d", newlines)
	}
}

func TestLex_TrailingNewlineDropped(t *testing.T) {
	toks, d := Lex("a\n")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if len(toks) != 2 || toks[0].Kind != token.Identifier || toks[1].Kind != token.EOF {
		t.Fatalf("expected [Identifier, EOF], got %v", toks)
	}
}

func TestLex_LineComment(t *testing.T) {
	toks, d := Lex("a // comment\nb")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if toks[0].Kind != token.Identifier || toks[1].Kind != token.Newline || toks[2].Kind != token.Identifier {
		t.Fatalf("expected [Identifier, Newline, Identifier], got %v", toks)
	}
}

func TestLex_BlockComment(t *testing.T) {
	toks, d := Lex("a /* comment */ b")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if toks[0].Kind != token.Identifier || toks[1].Kind != token.Identifier {
		t.Fatalf("expected [Identifier, Identifier], got %v", toks)
	}
}

func TestLex_SpanInvariant(t *testing.T) {
	src := "let x = 12 + y"
	toks, d := Lex(src)
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	for i, tok := range toks {
		if int(tok.Span.Index)+int(tok.Span.Len) > len(src) {
			t.Fatalf("token[%d]: span %v exceeds source length %d", i, tok.Span, len(src))
		}
	}
}

func TestLex_Punctuation(t *testing.T) {
	toks, d := Lex("( ) [ ] , ~ . .. :: = == != <= >= $ @ #")
	if d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	want := []token.Kind{
		token.LParen, token.RParen, token.LBracket, token.RBracket,
		token.Comma, token.Tilde, token.Dot, token.DotDot, token.ColonColon,
		token.Equal, token.EqualEqual, token.BangEqual, token.LessEqual,
		token.GreaterEqual, token.Dollar, token.At, token.Hash,
	}
	for i, w := range want {
		if toks[i].Kind != w {
			t.Fatalf("token[%d]: expected %v, got %v", i, w, toks[i].Kind)
		}
	}
}
