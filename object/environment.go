package object

import (
	"strings"

	"github.com/jack-papel/mlang/ast"
	"github.com/jack-papel/mlang/token"
)

// Environment is a node in the scope chain: an owned name→value map, a
// break flag, and a non-owning pointer to its parent. Only the root scope
// (no parent) owns an output buffer — §3 invariant: "An environment's
// output buffer is Some(_) iff it is the root."
//
// Ancestor-scope assignment (§4.7, §9 "Ancestor-scope mutation") falls out
// for free from Go's reference semantics: Environment is always handled
// through a pointer, so Set walking up the parent chain and writing into
// an ancestor's map mutates the one scope every descendant pointer already
// shares — no unsafe pointer casting needed, unlike the source language.
type Environment struct {
	vars   map[token.Symbol]Value
	parent *Environment
	brk    bool
	output *strings.Builder // non-nil only on the root
}

// New creates a root scope with the built-ins pre-bound and a fresh output
// buffer.
func New() *Environment {
	env := &Environment{
		vars:   make(map[token.Symbol]Value, 8),
		output: &strings.Builder{},
	}
	for _, sym := range token.Builtins {
		env.vars[sym] = Fn(&ast.Function{Kind: ast.FunctionBuiltin, Builtin: sym})
	}
	return env
}

// NewChild creates a scope nested inside parent: empty map, no output
// buffer, parent back-reference set.
func NewChild(parent *Environment) *Environment {
	return &Environment{
		vars:   make(map[token.Symbol]Value, 4),
		parent: parent,
	}
}

// Get looks up name in this scope, delegating to the parent chain if
// absent here.
func (e *Environment) Get(name token.Symbol) (Value, bool) {
	if v, ok := e.vars[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Value{}, false
}

// Has is the predicate form of Get.
func (e *Environment) Has(name token.Symbol) bool {
	_, ok := e.Get(name)
	return ok
}

// Create inserts name unconditionally into the current scope, shadowing
// any outer binding. Used by `let` and by match-arm pattern binding.
func (e *Environment) Create(name token.Symbol, val Value) {
	e.vars[name] = val
}

// Set mutates name in place in whichever ancestor scope (including this
// one) already binds it; if no ancestor does, it inserts into the current
// scope.
func (e *Environment) Set(name token.Symbol, val Value) {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.vars[name]; ok {
			scope.vars[name] = val
			return
		}
	}
	e.vars[name] = val
}

// Print appends text to the root scope's output buffer.
func (e *Environment) Print(text string) {
	root := e
	for root.parent != nil {
		root = root.parent
	}
	root.output.WriteString(text)
}

// Output returns everything printed to the root scope so far.
func (e *Environment) Output() string {
	root := e
	for root.parent != nil {
		root = root.parent
	}
	return root.output.String()
}

// SetBreak sets this scope's break flag.
func (e *Environment) SetBreak() { e.brk = true }

// ResetBreak clears this scope's break flag.
func (e *Environment) ResetBreak() { e.brk = false }

// Break reports this scope's break flag.
func (e *Environment) Break() bool { return e.brk }
