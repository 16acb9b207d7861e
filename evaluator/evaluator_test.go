package evaluator

import (
	"testing"

	"github.com/jack-papel/mlang/lexer"
	"github.com/jack-papel/mlang/object"
	"github.com/jack-papel/mlang/parser"
)

// evalSource lexes, parses, and evaluates src against a fresh root
// environment, failing the test on any diagnostic.
func evalSource(t *testing.T, src string) (object.Value, *object.Environment) {
	t.Helper()
	toks, d := lexer.Lex(src)
	if d != nil {
		t.Fatalf("lex error: %v", d)
	}
	block, d := parser.Parse(toks)
	if d != nil {
		t.Fatalf("parse error: %v", d)
	}
	env := object.New()
	v, d := Eval(block, env)
	if d != nil {
		t.Fatalf("eval error for %q: %v", src, d)
	}
	return v, env
}

func TestEval_Arithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want int64
	}{
		{"1 + 2", 3},
		{"2 * 3 + 1", 7},
		{"1 + 2 * 3", 7},
		{"10 % 3", 1},
		{"10 / 3", 3},
	}
	for _, tt := range tests {
		v, _ := evalSource(t, tt.src)
		if v.Tag != object.TagInt || v.Int != tt.want {
			t.Fatalf("%q: expected Int(%d), got %+v", tt.src, tt.want, v)
		}
	}
}

func TestEval_StringConcat(t *testing.T) {
	v, _ := evalSource(t, `"foo" + "bar"`)
	if v.Tag != object.TagString || v.Str != "foobar" {
		t.Fatalf("expected foobar, got %+v", v)
	}
}

func TestEval_DivisionByZeroErrors(t *testing.T) {
	toks, _ := lexer.Lex("1 / 0")
	block, _ := parser.Parse(toks)
	_, d := Eval(block, object.New())
	if d == nil {
		t.Fatal("expected a diagnostic for division by zero")
	}
}

func TestEval_Comparisons(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"1 < 2", true},
		{"2 <= 2", true},
		{"3 > 2", true},
		{"2 >= 3", false},
		{"1 == 1", true},
		{"1 != 1", false},
		{`"a" == "a"`, true},
	}
	for _, tt := range tests {
		v, _ := evalSource(t, tt.src)
		if v.Tag != object.TagBool || v.Bool != tt.want {
			t.Fatalf("%q: expected Bool(%v), got %+v", tt.src, tt.want, v)
		}
	}
}

func TestEval_LogicalOperatorsDoNotShortCircuit(t *testing.T) {
	// Both sides must evaluate even when the result is already decided: the
	// right side's identifier lookup must fail with an unbound-identifier
	// error rather than being skipped.
	toks, _ := lexer.Lex("false && undefined")
	block, _ := parser.Parse(toks)
	_, d := Eval(block, object.New())
	if d == nil {
		t.Fatal("expected an unbound-identifier error from the unevaluated right operand")
	}
}

func TestEval_Range(t *testing.T) {
	v, _ := evalSource(t, "2..5")
	if v.Tag != object.TagIntRange || v.Lo != 2 || v.Hi != 5 {
		t.Fatalf("expected IntRange(2,5), got %+v", v)
	}
}

func TestEval_ListAndTupleLiterals(t *testing.T) {
	v, _ := evalSource(t, "[1, 2, 3]")
	if v.Tag != object.TagList || len(v.Elems) != 3 {
		t.Fatalf("expected a 3-element List, got %+v", v)
	}
	v, _ = evalSource(t, "1, 2")
	if v.Tag != object.TagTuple || len(v.Elems) != 2 {
		t.Fatalf("expected a 2-element Tuple, got %+v", v)
	}
}

func TestEval_LetAndRedefineError(t *testing.T) {
	toks, _ := lexer.Lex("let x = 1\nlet x = 2")
	block, _ := parser.Parse(toks)
	_, d := Eval(block, object.New())
	if d == nil {
		t.Fatal("expected a diagnostic for redefining x")
	}
}

func TestEval_SetUnknownIdentifierError(t *testing.T) {
	toks, _ := lexer.Lex("x = 1")
	block, _ := parser.Parse(toks)
	_, d := Eval(block, object.New())
	if d == nil {
		t.Fatal("expected a diagnostic for assigning to an unknown identifier")
	}
}

func TestEval_UnboundIdentifierError(t *testing.T) {
	toks, _ := lexer.Lex("y")
	block, _ := parser.Parse(toks)
	_, d := Eval(block, object.New())
	if d == nil {
		t.Fatal("expected a diagnostic for an unbound identifier")
	}
}

func TestEval_MatchDispatchWithTypeGuard(t *testing.T) {
	src := "let f = | int n ~ n > 0 : \"pos\"\n" +
		"        | int n ~ n < 0 : \"neg\"\n" +
		"        | : \"zero\"\n" +
		"0 f"
	v, _ := evalSource(t, src)
	if v.Tag != object.TagString || v.Str != "zero" {
		t.Fatalf("expected zero, got %+v", v)
	}
}

func TestEval_MatchNoArmMatchesYieldsNone(t *testing.T) {
	src := "let f = | int n ~ n > 100 : \"big\"\n" +
		"0 f"
	v, _ := evalSource(t, src)
	if v.Tag != object.TagNone {
		t.Fatalf("expected None, got %+v", v)
	}
}

func TestEval_WildcardMatchSelfInvokes(t *testing.T) {
	// A match whose every arm is wildcard evaluates itself immediately
	// rather than producing a callable Function value.
	v, _ := evalSource(t, "| : 42")
	if v.Tag != object.TagInt || v.Int != 42 {
		t.Fatalf("expected self-invoked Int(42), got %+v", v)
	}
}

func TestEval_Builtins(t *testing.T) {
	_, env := evalSource(t, `"hi" println`)
	if env.Output() != "hi\n" {
		t.Fatalf("expected %q, got %q", "hi\n", env.Output())
	}

	_, env = evalSource(t, `"hi" print`)
	if env.Output() != "hi" {
		t.Fatalf("expected %q, got %q", "hi", env.Output())
	}
}

func TestEval_AssertFalseErrors(t *testing.T) {
	toks, _ := lexer.Lex("false assert")
	block, _ := parser.Parse(toks)
	_, d := Eval(block, object.New())
	if d == nil {
		t.Fatal("expected a diagnostic for a failing assertion")
	}
}

func TestEval_AssertNonBoolErrors(t *testing.T) {
	toks, _ := lexer.Lex("1 assert")
	block, _ := parser.Parse(toks)
	_, d := Eval(block, object.New())
	if d == nil {
		t.Fatal("expected a diagnostic for asserting a non-Boolean")
	}
}

func TestEval_ForEachDrivesEachElement(t *testing.T) {
	src := "let x = 0\n" +
		"0..3 $ | i : x = x + i\n" +
		"x"
	v, _ := evalSource(t, src)
	if v.Tag != object.TagInt || v.Int != 3 {
		t.Fatalf("expected Int(3), got %+v", v)
	}
}

func TestEval_EmptyRangeForEachNeverCalls(t *testing.T) {
	_, env := evalSource(t, "0..0 $ | x : x println")
	if env.Output() != "" {
		t.Fatalf("expected no output, got %q", env.Output())
	}
}

func TestEval_MapThenFilter(t *testing.T) {
	src := "0..5 @ (| n : n * n) # (| n : n % 2 == 0) $ println"
	_, env := evalSource(t, src)
	if env.Output() != "0\n4\n16\n" {
		t.Fatalf("expected %q, got %q", "0\n4\n16\n", env.Output())
	}
}

func TestEval_AllAndAnyShortCircuit(t *testing.T) {
	v, _ := evalSource(t, "let r = 2..10 &&& (| n : n > 0)\nr")
	if v.Tag != object.TagBool || !v.Bool {
		t.Fatalf("expected true, got %+v", v)
	}
	v, _ = evalSource(t, "let r = 2..10 ||| (| n : n > 100)\nr")
	if v.Tag != object.TagBool || v.Bool {
		t.Fatalf("expected false, got %+v", v)
	}
}

func TestEval_BreakStopsForEach(t *testing.T) {
	// The arm body's indentation must exceed the column its '|' sits at, not
	// just be deeper than the statement's own start.
	src := "let body = | i :\n" +
		"                 i println\n" +
		"                 break\n" +
		"0..10 $ body"
	_, env := evalSource(t, src)
	if env.Output() != "0\n" {
		t.Fatalf("expected the loop to stop after one iteration, got %q", env.Output())
	}
}

func TestEval_StringIteration(t *testing.T) {
	_, env := evalSource(t, `"abc" $ | c : c print`)
	if env.Output() != "abc" {
		t.Fatalf("expected abc, got %q", env.Output())
	}
}
