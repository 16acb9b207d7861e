package evaluator

import (
	"github.com/jack-papel/mlang/ast"
	"github.com/jack-papel/mlang/diag"
	"github.com/jack-papel/mlang/object"
)

// evalBinary dispatches on e.Op, following §4.8's per-group rules. Map and
// Filter build lazy wrappers without evaluating anything; ForEach, All, and
// Any drive an iterator directly. And/Or evaluate both sides unconditionally
// (mlang has no short-circuiting operators).
func evalBinary(e *ast.Binary, env *object.Environment) (object.Value, *diag.Diagnostic) {
	switch e.Op {
	case ast.OpRange:
		return evalRange(e, env)
	case ast.OpForEach:
		return evalForEach(e, env)
	case ast.OpMap:
		return evalMap(e, env)
	case ast.OpFilter:
		return evalFilter(e, env)
	case ast.OpAll:
		return evalAllAny(e, env, true)
	case ast.OpAny:
		return evalAllAny(e, env, false)
	case ast.OpAnd:
		return evalLogical(e, env, true)
	case ast.OpOr:
		return evalLogical(e, env, false)
	}

	left, err := evalExpr(e.Left, env)
	if err != nil {
		return object.None, err
	}
	right, err := evalExpr(e.Right, env)
	if err != nil {
		return object.None, err
	}

	switch e.Op {
	case ast.OpMod, ast.OpMul, ast.OpDiv, ast.OpPlus, ast.OpMinus:
		return evalArith(e.Op, left, right)
	case ast.OpEqual:
		return object.Bool(valuesEqual(left, right)), nil
	case ast.OpNotEqual:
		return object.Bool(!valuesEqual(left, right)), nil
	case ast.OpGreater, ast.OpGreaterEqual, ast.OpLess, ast.OpLessEqual:
		return evalCompare(e.Op, left, right)
	default:
		return object.None, diag.New(diag.Compiler, "Unknown binary operator")
	}
}

func evalRange(e *ast.Binary, env *object.Environment) (object.Value, *diag.Diagnostic) {
	left, err := evalExpr(e.Left, env)
	if err != nil {
		return object.None, err
	}
	right, err := evalExpr(e.Right, env)
	if err != nil {
		return object.None, err
	}
	if left.Tag != object.TagInt || right.Tag != object.TagInt {
		return object.None, diag.Executionf("Range bounds must be Ints, got %s and %s", left.Type(), right.Type())
	}
	return object.IntRange(left.Int, right.Int), nil
}

func evalForEach(e *ast.Binary, env *object.Environment) (object.Value, *diag.Diagnostic) {
	left, err := evalExpr(e.Left, env)
	if err != nil {
		return object.None, err
	}
	fn, err := evalCallee(e.Right, env)
	if err != nil {
		return object.None, err
	}
	if !left.IsIterable() {
		return object.None, diag.Executionf("Cannot iterate a %s", left.Type())
	}
	it, err := newIterator(left)
	if err != nil {
		return object.None, err
	}
	for {
		elem, ok, err := it.next(env)
		if err != nil {
			return object.None, err
		}
		if !ok {
			break
		}
		if _, err := callFunction(fn, elem, env); err != nil {
			return object.None, err
		}
		if env.Break() {
			env.ResetBreak()
			break
		}
	}
	return object.None, nil
}

func evalMap(e *ast.Binary, env *object.Environment) (object.Value, *diag.Diagnostic) {
	left, err := evalExpr(e.Left, env)
	if err != nil {
		return object.None, err
	}
	fn, err := evalCallee(e.Right, env)
	if err != nil {
		return object.None, err
	}
	if !left.IsIterable() {
		return object.None, diag.Executionf("Cannot map over a %s", left.Type())
	}
	return object.Map(left, fn), nil
}

func evalFilter(e *ast.Binary, env *object.Environment) (object.Value, *diag.Diagnostic) {
	left, err := evalExpr(e.Left, env)
	if err != nil {
		return object.None, err
	}
	fn, err := evalCallee(e.Right, env)
	if err != nil {
		return object.None, err
	}
	if !left.IsIterable() {
		return object.None, diag.Executionf("Cannot filter a %s", left.Type())
	}
	return object.Filter(left, fn), nil
}

// evalAllAny drives an iterator, short-circuiting as soon as the outcome is
// decided: All stops at the first false, Any stops at the first true.
func evalAllAny(e *ast.Binary, env *object.Environment, isAll bool) (object.Value, *diag.Diagnostic) {
	left, err := evalExpr(e.Left, env)
	if err != nil {
		return object.None, err
	}
	fn, err := evalCallee(e.Right, env)
	if err != nil {
		return object.None, err
	}
	if !left.IsIterable() {
		op := "&&&"
		if !isAll {
			op = "|||"
		}
		return object.None, diag.Executionf("Cannot apply '%s' to a %s", op, left.Type())
	}
	it, err := newIterator(left)
	if err != nil {
		return object.None, err
	}
	for {
		elem, ok, err := it.next(env)
		if err != nil {
			return object.None, err
		}
		if !ok {
			break
		}
		result, err := callFunction(fn, elem, env)
		if err != nil {
			return object.None, err
		}
		if result.Tag != object.TagBool {
			return object.None, diag.Executionf("Predicate must return a Boolean, got %s", result.Type())
		}
		if isAll && !result.Bool {
			return object.Bool(false), nil
		}
		if !isAll && result.Bool {
			return object.Bool(true), nil
		}
	}
	return object.Bool(isAll), nil
}

func evalLogical(e *ast.Binary, env *object.Environment, isAnd bool) (object.Value, *diag.Diagnostic) {
	left, err := evalExpr(e.Left, env)
	if err != nil {
		return object.None, err
	}
	right, err := evalExpr(e.Right, env)
	if err != nil {
		return object.None, err
	}
	if left.Tag != object.TagBool || right.Tag != object.TagBool {
		op := "&&"
		if !isAnd {
			op = "||"
		}
		return object.None, diag.Executionf("Cannot apply '%s' to %s and %s", op, left.Type(), right.Type())
	}
	if isAnd {
		return object.Bool(left.Bool && right.Bool), nil
	}
	return object.Bool(left.Bool || right.Bool), nil
}

// evalCallee evaluates expr and requires it to be a Function value, per
// ForEach/Map/Filter/All/Any all taking a callable right-hand operand.
func evalCallee(expr ast.Expression, env *object.Environment) (*ast.Function, *diag.Diagnostic) {
	v, err := evalExpr(expr, env)
	if err != nil {
		return nil, err
	}
	if v.Tag != object.TagFunction {
		return nil, diag.Executionf("Expected a Function, got %s", v.Type())
	}
	return v.Fn, nil
}

func evalArith(op ast.BinaryOperator, left, right object.Value) (object.Value, *diag.Diagnostic) {
	if op == ast.OpPlus && left.Tag == object.TagString && right.Tag == object.TagString {
		return object.String(left.Str + right.Str), nil
	}
	if left.Tag == object.TagInt && right.Tag == object.TagInt {
		switch op {
		case ast.OpPlus:
			return object.Int(left.Int + right.Int), nil
		case ast.OpMinus:
			return object.Int(left.Int - right.Int), nil
		case ast.OpMul:
			return object.Int(left.Int * right.Int), nil
		case ast.OpDiv:
			if right.Int == 0 {
				return object.None, diag.Executionf("Division by zero")
			}
			return object.Int(left.Int / right.Int), nil
		case ast.OpMod:
			if right.Int == 0 {
				return object.None, diag.Executionf("Division by zero")
			}
			return object.Int(left.Int % right.Int), nil
		}
	}
	if left.Tag == object.TagFloat && right.Tag == object.TagFloat {
		switch op {
		case ast.OpPlus:
			return object.Float(left.Float + right.Float), nil
		case ast.OpMinus:
			return object.Float(left.Float - right.Float), nil
		case ast.OpMul:
			return object.Float(left.Float * right.Float), nil
		case ast.OpDiv:
			if right.Float == 0 {
				return object.None, diag.Executionf("Division by zero")
			}
			return object.Float(left.Float / right.Float), nil
		case ast.OpMod:
			return object.None, diag.Executionf("'%%' is not defined for Floats")
		}
	}
	return object.None, diag.Executionf("Cannot apply '%s' to %s and %s", op, left.Type(), right.Type())
}

func evalCompare(op ast.BinaryOperator, left, right object.Value) (object.Value, *diag.Diagnostic) {
	var cmp int
	switch {
	case left.Tag == object.TagInt && right.Tag == object.TagInt:
		cmp = compareInt(left.Int, right.Int)
	case left.Tag == object.TagFloat && right.Tag == object.TagFloat:
		cmp = compareFloat(left.Float, right.Float)
	case left.Tag == object.TagString && right.Tag == object.TagString:
		cmp = compareString(left.Str, right.Str)
	default:
		return object.None, diag.Executionf("Cannot compare %s and %s", left.Type(), right.Type())
	}
	switch op {
	case ast.OpGreater:
		return object.Bool(cmp > 0), nil
	case ast.OpGreaterEqual:
		return object.Bool(cmp >= 0), nil
	case ast.OpLess:
		return object.Bool(cmp < 0), nil
	case ast.OpLessEqual:
		return object.Bool(cmp <= 0), nil
	default:
		return object.None, diag.New(diag.Compiler, "Unknown comparison operator")
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// valuesEqual implements structural equality for '==' and '!=': same tag,
// same payload; Tuples/Lists compare elementwise.
func valuesEqual(a, b object.Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case object.TagNone:
		return true
	case object.TagInt:
		return a.Int == b.Int
	case object.TagFloat:
		return a.Float == b.Float
	case object.TagString:
		return a.Str == b.Str
	case object.TagBool:
		return a.Bool == b.Bool
	case object.TagIntRange:
		return a.Lo == b.Lo && a.Hi == b.Hi
	case object.TagTuple, object.TagList:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !valuesEqual(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
