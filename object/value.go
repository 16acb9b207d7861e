// Package object defines mlang's runtime value model and the nested
// lexical environments the evaluator threads through execution.
package object

import (
	"fmt"
	"strings"

	"github.com/jack-papel/mlang/ast"
)

// Tag discriminates the Value union.
type Tag int

const (
	TagNone Tag = iota
	TagInt
	TagFloat
	TagString
	TagBool
	TagIntRange
	TagFunction
	TagTuple
	TagList
	TagFilter
	TagMap
)

// Value is mlang's tagged runtime value. It is a plain struct copied by
// assignment — there is no garbage collector to tune, so captures (binding
// a Value into a scope, passing it as an argument) are always copies.
// Filter and Map are the two lazy iterator wrappers: they carry their
// source value and transform function but do no work until something
// drives them (for-each, all, any, or outer iteration).
type Value struct {
	Tag Tag

	Int    int64
	Float  float64
	Str    string
	Bool   bool
	Lo, Hi int64 // IntRange bounds, half-open [Lo, Hi)

	Fn *ast.Function

	Elems []Value // Tuple or List elements

	Source *Value      // Filter/Map: the wrapped source value
	Trans  *ast.Function // Filter/Map: predicate (Filter) or transform (Map)
}

// None is the singleton absence-of-value.
var None = Value{Tag: TagNone}

func Int(v int64) Value     { return Value{Tag: TagInt, Int: v} }
func Float(v float64) Value { return Value{Tag: TagFloat, Float: v} }
func String(v string) Value { return Value{Tag: TagString, Str: v} }
func Bool(v bool) Value     { return Value{Tag: TagBool, Bool: v} }
func IntRange(lo, hi int64) Value {
	return Value{Tag: TagIntRange, Lo: lo, Hi: hi}
}
func Fn(f *ast.Function) Value { return Value{Tag: TagFunction, Fn: f} }
func Tuple(elems []Value) Value {
	return Value{Tag: TagTuple, Elems: elems}
}
func List(elems []Value) Value {
	return Value{Tag: TagList, Elems: elems}
}
func Filter(source Value, f *ast.Function) Value {
	s := source
	return Value{Tag: TagFilter, Source: &s, Trans: f}
}
func Map(source Value, f *ast.Function) Value {
	s := source
	return Value{Tag: TagMap, Source: &s, Trans: f}
}

// IsTruthy reports whether v is a Boolean and true. It is not a general
// "truthiness" coercion — mlang has none: every non-Boolean reports false.
func (v Value) IsTruthy() bool {
	return v.Tag == TagBool && v.Bool
}

// Type reports v's structural type, per §3: IntRange/Filter/Map all report
// Iter.
func (v Value) Type() ast.TypeSpec {
	switch v.Tag {
	case TagInt:
		return ast.TypeSpec{Tag: ast.TypeInt}
	case TagFloat:
		return ast.TypeSpec{Tag: ast.TypeFloat}
	case TagString:
		return ast.TypeSpec{Tag: ast.TypeString}
	case TagBool:
		return ast.TypeSpec{Tag: ast.TypeBool}
	case TagIntRange, TagFilter, TagMap:
		return ast.TypeSpec{Tag: ast.TypeIter}
	case TagFunction:
		if v.Fn != nil && v.Fn.Kind == ast.FunctionBuiltin {
			return ast.TypeSpec{Tag: ast.TypeBuiltin}
		}
		return ast.TypeSpec{Tag: ast.TypeMatch}
	case TagTuple:
		return ast.TypeSpec{Tag: ast.TypeTuple}
	case TagList:
		return ast.TypeSpec{Tag: ast.TypeList}
	default:
		return ast.TypeSpec{Tag: ast.TypeNone}
	}
}

// IsIterable reports whether v supports the iterator protocol (§4.8
// "Iterator construction"). A Filter/Map is iterable iff its source is.
func (v Value) IsIterable() bool {
	switch v.Tag {
	case TagString, TagIntRange, TagList:
		return true
	case TagFilter, TagMap:
		return v.Source != nil && v.Source.IsIterable()
	default:
		return false
	}
}

// Format renders v the way print/println do (§4.9).
func (v Value) Format() string {
	switch v.Tag {
	case TagInt:
		return fmt.Sprintf("%d", v.Int)
	case TagFloat:
		return fmt.Sprintf("%g", v.Float)
	case TagString:
		return v.Str
	case TagBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case TagIntRange:
		return fmt.Sprintf("%d..%d", v.Lo, v.Hi)
	case TagFunction:
		if v.Fn != nil && v.Fn.Kind == ast.FunctionBuiltin {
			return "<Builtin Function>"
		}
		return "<Match Statement>"
	case TagTuple:
		return "(" + joinFormatted(v.Elems) + ")"
	case TagList:
		return "[" + joinFormatted(v.Elems) + "]"
	case TagFilter:
		return "<Filter>"
	case TagMap:
		return "<Map>"
	default:
		return "None"
	}
}

func joinFormatted(vs []Value) string {
	var sb strings.Builder
	for i, v := range vs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.Format())
	}
	return sb.String()
}
