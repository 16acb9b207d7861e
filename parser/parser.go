// Package parser turns a token stream into an AST: a block parser that
// uses indentation to scope statements, and a precedence-climbing
// expression parser that discovers match-arms via leading, column-tagged
// '|' tokens.
package parser

import (
	"github.com/jack-papel/mlang/ast"
	"github.com/jack-papel/mlang/cursor"
	"github.com/jack-papel/mlang/diag"
	"github.com/jack-papel/mlang/token"
)

// Parse parses an entire token stream (as produced by lexer.Lex) into a
// top-level Block, treating the whole file as one block at indent 0.
func Parse(tokens []token.Token) (*ast.Block, *diag.Diagnostic) {
	cur := cursor.New(tokens)
	block, _, d := parseBlock(cur, 0)
	if d != nil {
		return nil, d
	}
	return &block, nil
}

// blockEnd scans cur for the distance to the first token that ends a block
// at the given indent: a Newline whose indent is strictly less than
// blockIndent, or EOF.
func blockEnd(cur cursor.Cursor, blockIndent int) int {
	n := 0
	for {
		tok := cur.PeekN(n)
		if tok.Kind == token.EOF {
			return n
		}
		if tok.Kind == token.Newline && tok.Indent < blockIndent {
			return n
		}
		n++
	}
}

// parseBlock implements §4.4's block algorithm: determine the block's
// token span by indentation, then repeatedly skip blank newlines and parse
// statements until the span is exhausted.
func parseBlock(cur cursor.Cursor, blockIndent int) (ast.Block, cursor.Cursor, *diag.Diagnostic) {
	n := blockEnd(cur, blockIndent)
	sub, rest := cur.Take(n)

	var block ast.Block
	for !sub.Done() {
		if sub.Peek().Kind == token.Newline {
			_, sub = sub.Next()
			continue
		}
		var stmt ast.Statement
		var d *diag.Diagnostic
		stmt, sub, d = parseStatement(sub, blockIndent)
		if d != nil {
			return ast.Block{}, rest, d
		}
		block.Statements = append(block.Statements, stmt)
	}

	if len(block.Statements) == 0 {
		if n == 0 {
			return ast.Block{}, rest, diag.Semanticf(token.Span{}, "Empty block")
		}
		last := cur.PeekN(n - 1)
		return ast.Block{}, rest, diag.Semanticf(last.Span, "Empty block")
	}
	return block, rest, nil
}

// parseStatement parses one statement (§4.4 "Statements"): let/bare-set/
// return/break/continue, or a bare expression statement.
func parseStatement(cur cursor.Cursor, indent int) (ast.Statement, cursor.Cursor, *diag.Diagnostic) {
	tok := cur.Peek()

	if tok.Kind == token.Keyword {
		switch tok.Symbol {
		case token.SymLet:
			identTok := cur.PeekN(1)
			if identTok.Kind != token.Identifier {
				return nil, cur, diag.Semanticf(identTok.Span, "Expected identifier after 'let'")
			}
			rest := cur.Skip(3) // let, ident, '='
			value, rest2, d := parseNextExpression(rest, indent)
			if d != nil {
				return nil, cur, d
			}
			return &ast.LetStatement{Name: identTok.Symbol, Value: value}, rest2, nil

		case token.SymReturn:
			rest := cur.Skip(1)
			value, rest2, d := parseNextExpression(rest, indent)
			if d != nil {
				return nil, cur, d
			}
			return &ast.ReturnStatement{Value: value}, rest2, nil

		case token.SymBreak:
			rest := cur.Skip(1)
			if rest.Done() || rest.Peek().Kind == token.Newline {
				return &ast.BreakStatement{}, rest, nil
			}
			value, rest2, d := parseNextExpression(rest, indent)
			if d != nil {
				return nil, cur, d
			}
			return &ast.BreakStatement{Value: value}, rest2, nil

		case token.SymContinue:
			return &ast.ContinueStatement{}, cur.Skip(1), nil
		}
	}

	if tok.Kind == token.Identifier && cur.PeekN(1).Kind == token.Equal {
		rest := cur.Skip(2)
		value, rest2, d := parseNextExpression(rest, indent)
		if d != nil {
			return nil, cur, d
		}
		return &ast.SetStatement{Name: tok.Symbol, Value: value}, rest2, nil
	}

	expr, rest, d := parseNextExpression(cur, indent)
	if d != nil {
		return nil, cur, d
	}
	return &ast.ExpressionStatement{Expr: expr}, rest, nil
}

// parseNextExpression implements §4.4: establish the effective indent,
// find the expression's end (a match-arm group or the next shallow-enough
// newline), and fold the resulting tokens into one Expression.
func parseNextExpression(cur cursor.Cursor, indent int) (ast.Expression, cursor.Cursor, *diag.Diagnostic) {
	if cur.Peek().Kind == token.Newline {
		indent = cur.Peek().Indent
		_, cur = cur.Next()
	}

	if cur.Peek().Kind == token.Bar {
		return parseMatch(cur, cur.Peek().Column)
	}

	n := 0
	for {
		tok := cur.PeekN(n)
		if tok.Kind == token.EOF {
			break
		}
		if tok.Kind == token.Newline && tok.Indent <= indent+1 {
			break
		}
		n++
	}
	sub, rest := cur.Take(n)
	expr, d := parseExprTokens(sub.Slice())
	if d != nil {
		return nil, cur, d
	}
	return expr, rest, nil
}
