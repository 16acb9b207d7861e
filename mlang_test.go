package mlang

import (
	"strings"
	"testing"
)

func runOK(t *testing.T, src string) string {
	t.Helper()
	out, d := ParseAndRun(src)
	if d != nil {
		t.Fatalf("unexpected diagnostic for %q: %v", src, d)
	}
	return out
}

func TestScenario_RangeAndForEach(t *testing.T) {
	out := runOK(t, "0..3 $ | x : x println")
	if out != "0\n1\n2\n" {
		t.Fatalf("expected %q, got %q", "0\n1\n2\n", out)
	}
}

func TestScenario_MapAndFilter(t *testing.T) {
	out := runOK(t, "0..10 # (| n : n % 2 == 0) @ (| n : n * n) $ println")
	want := "0\n4\n16\n36\n64\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestScenario_StringIteration(t *testing.T) {
	out := runOK(t, `"abc" $ | c : c print`)
	if out != "abc" {
		t.Fatalf("expected %q, got %q", "abc", out)
	}
}

func TestScenario_MatchWithTypeBoundPattern(t *testing.T) {
	prefix := "let describe = "
	pad := strings.Repeat(" ", len(prefix))
	src := prefix + "| int n ~ n > 0 : \"pos\"\n" +
		pad + "| int n ~ n < 0 : \"neg\"\n" +
		pad + "| : \"zero\"\n" +
		"(-3 describe) println\n" +
		"0 describe println\n" +
		"4 describe println"
	out := runOK(t, src)
	if out != "neg\nzero\npos\n" {
		t.Fatalf("expected %q, got %q", "neg\nzero\npos\n", out)
	}
}

func TestScenario_AncestorAssignment(t *testing.T) {
	src := "let x = 0\n" +
		"0..3 $ | i : x = x + i\n" +
		"x println"
	out := runOK(t, src)
	if out != "3\n" {
		t.Fatalf("expected %q, got %q", "3\n", out)
	}
}

func TestScenario_AllShortCircuit(t *testing.T) {
	src := "let r = 2..10 &&& (| n : n > 0)\n" +
		"r println"
	out := runOK(t, src)
	if out != "true\n" {
		t.Fatalf("expected %q, got %q", "true\n", out)
	}
}

func TestScenario_AnyShortCircuit(t *testing.T) {
	src := "let r = 2..10 ||| (| n : n > 100)\n" +
		"r println"
	out := runOK(t, src)
	if out != "false\n" {
		t.Fatalf("expected %q, got %q", "false\n", out)
	}
}

func TestLaw_EmptyRangeForEachNeverCalls(t *testing.T) {
	out := runOK(t, "0..0 $ | x : x println")
	if out != "" {
		t.Fatalf("expected no output from an empty range, got %q", out)
	}
}

func TestLaw_ChainedFilters(t *testing.T) {
	src := "0..10 # (| n : n % 2 == 0) # (| n : n % 3 == 0) $ println"
	out := runOK(t, src)
	if out != "0\n6\n" {
		t.Fatalf("expected %q, got %q", "0\n6\n", out)
	}
}

func TestLaw_ChainedMapsComposed(t *testing.T) {
	chained := runOK(t, "0..3 @ (| n : n + 1) @ (| n : n * 2) $ println")
	composed := runOK(t, "0..3 @ (| n : (n + 1) * 2) $ println")
	if chained != composed {
		t.Fatalf("expected chained map to equal composed map, got %q vs %q", chained, composed)
	}
}

func TestLaw_AssertTrueProducesNoOutput(t *testing.T) {
	out := runOK(t, "true assert")
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestLaw_AssertFalseFails(t *testing.T) {
	_, d := ParseAndRun("false assert")
	if d == nil {
		t.Fatal("expected a diagnostic for a failing assertion")
	}
}
