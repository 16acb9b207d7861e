package evaluator

import (
	"github.com/jack-papel/mlang/diag"
	"github.com/jack-papel/mlang/object"
	"github.com/jack-papel/mlang/token"
)

// callBuiltin dispatches the three built-in functions pre-bound into every
// root environment (§4.1, token.Builtins): print, println, assert.
func callBuiltin(name token.Symbol, arg object.Value, env *object.Environment) (object.Value, *diag.Diagnostic) {
	switch name {
	case token.SymPrint:
		env.Print(arg.Format())
		return arg, nil
	case token.SymPrintln:
		env.Print(arg.Format() + "\n")
		return arg, nil
	case token.SymAssert:
		if arg.Tag != object.TagBool {
			return object.None, diag.Executionf("assert expects a Boolean, got %s", arg.Type())
		}
		if !arg.Bool {
			return object.None, diag.Executionf("Assertion failed")
		}
		return arg, nil
	default:
		return object.None, diag.New(diag.Compiler, "Unknown builtin "+name.String())
	}
}
