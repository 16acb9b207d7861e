// Package mlang wires the lexer, parser, and evaluator into the staged
// pipeline external collaborators drive: tokenize, parse, verify, run.
package mlang

import (
	"github.com/jack-papel/mlang/ast"
	"github.com/jack-papel/mlang/diag"
	"github.com/jack-papel/mlang/evaluator"
	"github.com/jack-papel/mlang/lexer"
	"github.com/jack-papel/mlang/object"
	"github.com/jack-papel/mlang/parser"
	"github.com/jack-papel/mlang/token"
)

// Program carries a source string through its pipeline stages. Each stage
// fills in the field(s) it produces; fields for stages not yet run are zero.
type Program struct {
	source string
	tokens []token.Token
	tree   *ast.Block
}

// New begins a pipeline for source. Nothing is lexed or parsed yet.
func New(source string) *Program {
	return &Program{source: source}
}

// Tokenize lexes the source into tokens, per §4.2.
func (p *Program) Tokenize() (*Program, *diag.Diagnostic) {
	tokens, d := lexer.Lex(p.source)
	if d != nil {
		return p, d
	}
	p.tokens = tokens
	return p, nil
}

// Parse builds the program's AST, lexing first if Tokenize has not already
// run.
func (p *Program) Parse() (*Program, *diag.Diagnostic) {
	if p.tokens == nil {
		if _, d := p.Tokenize(); d != nil {
			return p, d
		}
	}
	block, d := parser.Parse(p.tokens)
	if d != nil {
		return p, d
	}
	p.tree = block
	return p, nil
}

// Verify is a documented no-op: the source language leaves static checking
// as a stub (§6, §9 Open Questions) — every well-formed AST passes.
func (p *Program) Verify() (*Program, *diag.Diagnostic) {
	if p.tree == nil {
		if _, d := p.Parse(); d != nil {
			return p, d
		}
	}
	return p, nil
}

// Run evaluates the program, parsing first if needed, and returns everything
// printed via print/println.
func (p *Program) Run() (string, *diag.Diagnostic) {
	if p.tree == nil {
		if _, d := p.Parse(); d != nil {
			return "", d
		}
	}
	env := object.New()
	if _, err := evaluator.Eval(p.tree, env); err != nil {
		return env.Output(), err
	}
	return env.Output(), nil
}

// ParseAndRun chains tokenize, parse, verify, and run.
func ParseAndRun(source string) (string, *diag.Diagnostic) {
	p := New(source)
	if _, d := p.Tokenize(); d != nil {
		return "", d
	}
	if _, d := p.Parse(); d != nil {
		return "", d
	}
	if _, d := p.Verify(); d != nil {
		return "", d
	}
	return p.Run()
}
