// Package diag defines the diagnostic shape shared by every phase of the
// mlang pipeline: lexing, parsing, and evaluation.
package diag

import (
	"fmt"

	"github.com/jack-papel/mlang/token"
)

// Kind classifies where in the pipeline a Diagnostic originated.
type Kind int

const (
	// Syntax errors come from the lexer or parser and always carry a span.
	Syntax Kind = iota
	// Semantic errors come from the parser for well-formed but nonsensical
	// input; a span is present when available.
	Semantic
	// Compiler errors are internal invariant violations with no span.
	Compiler
	// Execution errors come from the evaluator; spans are never available
	// (the AST does not carry spans into values).
	Execution
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "SyntaxError"
	case Semantic:
		return "SemanticError"
	case Compiler:
		return "CompilerError"
	case Execution:
		return "ExecutionError"
	default:
		return "Error"
	}
}

// Diagnostic is the single error type returned by every pipeline stage.
type Diagnostic struct {
	Kind    Kind
	Span    *token.Span
	Message string
}

// New builds a Diagnostic with no span (Compiler/Execution errors).
func New(kind Kind, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message}
}

// NewAt builds a Diagnostic anchored to a span (Syntax/Semantic errors).
func NewAt(kind Kind, span token.Span, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: &span, Message: message}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Span != nil {
		return fmt.Sprintf("%s at %s: %s", d.Kind, d.Span, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Syntaxf is a convenience constructor for a Syntax diagnostic.
func Syntaxf(span token.Span, format string, args ...any) *Diagnostic {
	return NewAt(Syntax, span, fmt.Sprintf(format, args...))
}

// Semanticf is a convenience constructor for a Semantic diagnostic.
func Semanticf(span token.Span, format string, args ...any) *Diagnostic {
	return NewAt(Semantic, span, fmt.Sprintf(format, args...))
}

// Executionf is a convenience constructor for an Execution diagnostic.
func Executionf(format string, args ...any) *Diagnostic {
	return New(Execution, fmt.Sprintf(format, args...))
}
