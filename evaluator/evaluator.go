// Package evaluator tree-walks an mlang AST over nested lexical
// environments, producing object.Values and following the control-flow and
// call-dispatch rules of §4.8.
package evaluator

import (
	"github.com/jack-papel/mlang/ast"
	"github.com/jack-papel/mlang/diag"
	"github.com/jack-papel/mlang/object"
)

// Eval evaluates a top-level block in env, returning its last statement's
// value.
func Eval(block *ast.Block, env *object.Environment) (object.Value, *diag.Diagnostic) {
	return evalBlock(*block, env)
}

// evalBlock runs every statement for effect except the last (or whichever
// statement signals early exit via return/break/continue), whose value
// becomes the block's result.
func evalBlock(block ast.Block, env *object.Environment) (object.Value, *diag.Diagnostic) {
	var result object.Value = object.None
	for i, stmt := range block.Statements {
		val, stop, err := evalStatement(stmt, env)
		if err != nil {
			return object.None, err
		}
		result = val
		if stop || i == len(block.Statements)-1 {
			return result, nil
		}
	}
	return result, nil
}

// evalStatement evaluates one statement. stop reports whether the block
// containing it should end immediately (return/break/continue all end
// their containing block the same way spec.md §4.8 describes return: "the
// interpreter treats return as equivalent to falling off").
func evalStatement(stmt ast.Statement, env *object.Environment) (object.Value, bool, *diag.Diagnostic) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		v, err := evalExpr(s.Expr, env)
		return v, false, err

	case *ast.LetStatement:
		if env.Has(s.Name) {
			return object.None, false, diag.Executionf("Cannot redefine %q", s.Name.String())
		}
		v, err := evalExpr(s.Value, env)
		if err != nil {
			return object.None, false, err
		}
		env.Create(s.Name, v)
		return v, false, nil

	case *ast.SetStatement:
		if !env.Has(s.Name) {
			return object.None, false, diag.Executionf("Cannot assign to unknown identifier %q", s.Name.String())
		}
		v, err := evalExpr(s.Value, env)
		if err != nil {
			return object.None, false, err
		}
		env.Set(s.Name, v)
		return v, false, nil

	case *ast.ReturnStatement:
		v, err := evalExpr(s.Value, env)
		return v, true, err

	case *ast.BreakStatement:
		env.SetBreak()
		if s.Value == nil {
			return object.None, true, nil
		}
		v, err := evalExpr(s.Value, env)
		return v, true, err

	case *ast.ContinueStatement:
		return object.None, true, nil

	default:
		return object.None, false, diag.New(diag.Compiler, "Unknown statement type")
	}
}

// evalExpr evaluates one expression.
func evalExpr(expr ast.Expression, env *object.Environment) (object.Value, *diag.Diagnostic) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return object.Int(e.Value), nil
	case *ast.FloatLiteral:
		return object.Float(e.Value), nil
	case *ast.StringLiteral:
		return object.String(e.Value), nil
	case *ast.BoolLiteral:
		return object.Bool(e.Value), nil
	case *ast.NoneLiteral:
		return object.None, nil

	case *ast.MatchLiteral:
		return evalMatchLiteral(e, env)

	case *ast.ListLiteral:
		elems := make([]object.Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := evalExpr(el, env)
			if err != nil {
				return object.None, err
			}
			elems[i] = v
		}
		return object.List(elems), nil

	case *ast.TupleLiteral:
		elems := make([]object.Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := evalExpr(el, env)
			if err != nil {
				return object.None, err
			}
			elems[i] = v
		}
		return object.Tuple(elems), nil

	case *ast.Identifier:
		v, ok := env.Get(e.Name)
		if !ok {
			return object.None, diag.Executionf("Unbound identifier %q", e.Name.String())
		}
		return v, nil

	case *ast.Unary:
		return evalUnary(e, env)

	case *ast.Binary:
		return evalBinary(e, env)

	case *ast.Call:
		return evalCall(e, env)

	default:
		return object.None, diag.New(diag.Compiler, "Unknown expression type")
	}
}

// evalMatchLiteral implements §4.8's self-invocation rule: a match whose
// arms are all wildcard (no bound identifier) evaluates itself on None
// immediately, rather than producing a Function value.
func evalMatchLiteral(e *ast.MatchLiteral, env *object.Environment) (object.Value, *diag.Diagnostic) {
	allWildcard := true
	for _, arm := range e.Arms {
		if arm.Pattern.Ident != nil {
			allWildcard = false
			break
		}
	}
	if allWildcard {
		return callMatch(e.Arms, object.None, env)
	}
	return object.Fn(&ast.Function{Kind: ast.FunctionMatch, Arms: e.Arms}), nil
}

func evalUnary(e *ast.Unary, env *object.Environment) (object.Value, *diag.Diagnostic) {
	v, err := evalExpr(e.Operand, env)
	if err != nil {
		return object.None, err
	}
	switch e.Op {
	case ast.OpNeg:
		switch v.Tag {
		case object.TagInt:
			return object.Int(-v.Int), nil
		case object.TagFloat:
			return object.Float(-v.Float), nil
		default:
			return object.None, diag.Executionf("Cannot negate a %s", v.Type())
		}
	case ast.OpNot:
		if v.Tag != object.TagBool {
			return object.None, diag.Executionf("Cannot apply '!' to a %s", v.Type())
		}
		return object.Bool(!v.Bool), nil
	default:
		return object.None, diag.New(diag.Compiler, "Unknown unary operator")
	}
}

func evalCall(e *ast.Call, env *object.Environment) (object.Value, *diag.Diagnostic) {
	calleeVal, err := evalExpr(e.Callee, env)
	if err != nil {
		return object.None, err
	}
	if calleeVal.Tag != object.TagFunction {
		return object.None, diag.Executionf("Cannot call a %s", calleeVal.Type())
	}
	argVal, err := evalExpr(e.Arg, env)
	if err != nil {
		return object.None, err
	}
	return callFunction(calleeVal.Fn, argVal, env)
}

// callFunction applies fn to arg in callerEnv, dispatching builtins or
// running a match function's arms (§4.8 "Call dispatch").
func callFunction(fn *ast.Function, arg object.Value, callerEnv *object.Environment) (object.Value, *diag.Diagnostic) {
	if fn.Kind == ast.FunctionBuiltin {
		return callBuiltin(fn.Builtin, arg, callerEnv)
	}
	return callMatch(fn.Arms, arg, callerEnv)
}

// callMatch evaluates arms in order in a fresh child scope of callerEnv,
// per §4.8: skip on type mismatch, bind the identifier, evaluate the
// guard, and run the first satisfied arm's block. The child's break flag
// is propagated to callerEnv before returning. No arm matching yields None.
func callMatch(arms []ast.MatchArm, arg object.Value, callerEnv *object.Environment) (object.Value, *diag.Diagnostic) {
	for _, arm := range arms {
		child := object.NewChild(callerEnv)

		if arm.Pattern.Type != nil && arm.Pattern.Type.Tag != arg.Type().Tag {
			continue
		}
		if arm.Pattern.Ident != nil {
			child.Create(*arm.Pattern.Ident, arg)
		}
		if arm.Pattern.Guard != nil {
			guardVal, err := evalExpr(arm.Pattern.Guard, child)
			if err != nil {
				return object.None, err
			}
			if guardVal.Tag != object.TagBool {
				return object.None, diag.Executionf("Match guard must evaluate to a boolean")
			}
			if !guardVal.Bool {
				continue
			}
		}

		val, err := evalBlock(arm.Body, child)
		if child.Break() {
			callerEnv.SetBreak()
		}
		if err != nil {
			return object.None, err
		}
		return val, nil
	}
	return object.None, nil
}
