package ast

import "github.com/jack-papel/mlang/token"

// TypeTag is the structural type tag used only in pattern type guards.
type TypeTag int

const (
	TypeInt TypeTag = iota
	TypeFloat
	TypeString
	TypeBool
	TypeMatch
	TypeTuple
	TypeList
	TypeIter
	TypeBuiltin
	TypeNone
)

// TypeSpec is a structural type. Inner is not filled in by the parser or
// by object.Value.Type, so Tuple/List types carry no element types and type
// guards compare Tag only.
type TypeSpec struct {
	Tag   TypeTag
	Inner []TypeSpec
}

func (t TypeSpec) String() string {
	switch t.Tag {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeMatch:
		return "match"
	case TypeTuple:
		return "tuple"
	case TypeList:
		if len(t.Inner) == 1 {
			return "[" + t.Inner[0].String() + "]"
		}
		return "[]"
	case TypeIter:
		return "iter"
	case TypeBuiltin:
		return "builtin"
	case TypeNone:
		return "none"
	default:
		return "?"
	}
}

// typeNames maps the identifier spellings §3 lists to simple type tags.
var typeNames = map[string]TypeTag{
	"int":     TypeInt,
	"float":   TypeFloat,
	"string":  TypeString,
	"bool":    TypeBool,
	"match":   TypeMatch,
	"tuple":   TypeTuple,
	"iter":    TypeIter,
	"builtin": TypeBuiltin,
	"none":    TypeNone,
}

// TypeFromName parses a bare type identifier. The `[<inner>]` list form is
// not parsed here or anywhere else; a pattern names only one of the bare
// types above.
func TypeFromName(name string) (TypeSpec, bool) {
	tag, ok := typeNames[name]
	if !ok {
		return TypeSpec{}, false
	}
	return TypeSpec{Tag: tag}, true
}

// Pattern is one match arm's left-hand side: an optional bound identifier,
// an optional declared type restricting that identifier's runtime type, and
// an optional guard expression.
type Pattern struct {
	Ident *token.Symbol
	Type  *TypeSpec
	Guard Expression // nil if no guard
}

// MatchArm is one `Pattern : Body` clause of a match expression.
type MatchArm struct {
	Pattern Pattern
	Body    Block
}

// FunctionKind tells apart the two kinds of first-class callable value: a
// user-defined match expression or one of the three built-ins.
type FunctionKind int

const (
	FunctionMatch FunctionKind = iota
	FunctionBuiltin
)

// Function is the callable payload of a Value tagged Function. Builtin
// functions are identified by their pre-interned Symbol (print/println/
// assert); match functions carry their ordered arm list by value, per the
// "values are copied on capture" invariant — no captured environment.
type Function struct {
	Kind    FunctionKind
	Arms    []MatchArm
	Builtin token.Symbol
}
