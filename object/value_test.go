package object

import (
	"testing"

	"github.com/jack-papel/mlang/ast"
)

func TestValue_Format(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"int", Int(42), "42"},
		{"negative int", Int(-7), "-7"},
		{"float", Float(3.5), "3.5"},
		{"string", String("hi"), "hi"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"none", None, "None"},
		{"range", IntRange(0, 5), "0..5"},
		{"list", List([]Value{Int(1), Int(2)}), "[1, 2]"},
		{"tuple", Tuple([]Value{Int(1), String("a")}), "(1, a)"},
		{"empty list", List(nil), "[]"},
		{"builtin fn", Fn(&ast.Function{Kind: ast.FunctionBuiltin}), "<Builtin Function>"},
		{"match fn", Fn(&ast.Function{Kind: ast.FunctionMatch}), "<Match Statement>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Format(); got != tt.want {
				t.Fatalf("Format(): expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValue_Type(t *testing.T) {
	if IntRange(0, 1).Type().Tag != ast.TypeIter {
		t.Fatal("expected IntRange to report TypeIter")
	}
	if Filter(IntRange(0, 1), &ast.Function{}).Type().Tag != ast.TypeIter {
		t.Fatal("expected Filter to report TypeIter")
	}
	if Fn(&ast.Function{Kind: ast.FunctionBuiltin}).Type().Tag != ast.TypeBuiltin {
		t.Fatal("expected builtin Function to report TypeBuiltin")
	}
	if Fn(&ast.Function{Kind: ast.FunctionMatch}).Type().Tag != ast.TypeMatch {
		t.Fatal("expected match Function to report TypeMatch")
	}
}

func TestValue_IsIterable(t *testing.T) {
	if !String("abc").IsIterable() {
		t.Fatal("expected String to be iterable")
	}
	if !IntRange(0, 3).IsIterable() {
		t.Fatal("expected IntRange to be iterable")
	}
	if Int(1).IsIterable() {
		t.Fatal("expected Int to not be iterable")
	}
	// A Filter/Map over a non-iterable source is itself non-iterable.
	if Filter(Int(1), &ast.Function{}).IsIterable() {
		t.Fatal("expected Filter over an Int to not be iterable")
	}
	if !Map(IntRange(0, 3), &ast.Function{}).IsIterable() {
		t.Fatal("expected Map over an IntRange to be iterable")
	}
}

func TestValue_IsTruthy(t *testing.T) {
	if !Bool(true).IsTruthy() {
		t.Fatal("expected Bool(true) to be truthy")
	}
	if Bool(false).IsTruthy() {
		t.Fatal("expected Bool(false) to not be truthy")
	}
	if Int(1).IsTruthy() {
		t.Fatal("expected a non-Boolean to never be truthy")
	}
}
