package parser

import (
	"github.com/jack-papel/mlang/ast"
	"github.com/jack-papel/mlang/cursor"
	"github.com/jack-papel/mlang/diag"
	"github.com/jack-papel/mlang/token"
)

// parseMatch implements §4.5: repeatedly parse arms whose leading '|'
// shares column col, stopping at the first bar on a different column (it
// belongs to an outer match) or at anything else.
func parseMatch(cur cursor.Cursor, col int) (ast.Expression, cursor.Cursor, *diag.Diagnostic) {
	var arms []ast.MatchArm

	for {
		bar := cur.Peek()
		if bar.Kind != token.Bar || bar.Column != col {
			break
		}
		afterBar := cur.Skip(1)

		n := blockEnd(afterBar, col+1)
		armTokens, rest := afterBar.Take(n)
		toks := armTokens.Slice()

		colonIdx := findTopLevelColon(toks)
		if colonIdx == -1 {
			return nil, cur, diag.Syntaxf(bar.Span, "Match arm is missing ':'")
		}

		pattern, d := parsePattern(toks[:colonIdx])
		if d != nil {
			return nil, cur, d
		}

		bodyToks := toks[colonIdx+1:]
		var body ast.Block
		if len(bodyToks) > 0 && bodyToks[0].Kind == token.Newline {
			bodyCur := cursor.New(bodyToks)
			var nl token.Token
			nl, bodyCur = bodyCur.Next()
			// The body's statements sit at the indent of its first line,
			// which may be deeper than col+1.
			var bodyRest cursor.Cursor
			body, bodyRest, d = parseBlock(bodyCur, nl.Indent)
			if d != nil {
				return nil, cur, d
			}
			if !bodyRest.Done() {
				return nil, cur, diag.Syntaxf(bodyRest.Peek().Span, "Inconsistent indentation in match arm body")
			}
		} else {
			bodyCur := cursor.New(bodyToks)
			var stmt ast.Statement
			stmt, _, d = parseStatement(bodyCur, col+1)
			if d != nil {
				return nil, cur, d
			}
			body = ast.Block{Statements: []ast.Statement{stmt}}
		}

		arms = append(arms, ast.MatchArm{Pattern: pattern, Body: body})
		cur = rest

		if cur.Peek().Kind == token.Newline {
			tentative := cur.Skip(1)
			if tentative.Peek().Kind == token.Bar && tentative.Peek().Column == col {
				cur = tentative
				continue
			}
		}
		break
	}

	return &ast.MatchLiteral{Arms: arms}, cur, nil
}

// findTopLevelColon returns the index of the first ':' token not nested
// inside parens/brackets, or -1 if none.
func findTopLevelColon(toks []token.Token) int {
	depth := 0
	for i, t := range toks {
		switch t.Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			depth--
		case token.Colon:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parsePattern implements §4.6: split on '~' into (ident/type, guard). In
// the part before '~' (or the whole pattern if there is no '~'), zero
// tokens is a wildcard, one identifier binds a name, two identifiers are
// (type, name); the part after '~' is parsed as the guard expression.
func parsePattern(toks []token.Token) (ast.Pattern, *diag.Diagnostic) {
	tildeIdx := -1
	for i, t := range toks {
		if t.Kind == token.Tilde {
			tildeIdx = i
			break
		}
	}

	if tildeIdx == -1 {
		ident, typ, d := parseIdentAndType(toks)
		if d != nil {
			return ast.Pattern{}, d
		}
		return ast.Pattern{Ident: ident, Type: typ}, nil
	}

	ident, typ, d := parseIdentAndType(toks[:tildeIdx])
	if d != nil {
		return ast.Pattern{}, d
	}
	guard, d := parseExprTokens(toks[tildeIdx+1:])
	if d != nil {
		return ast.Pattern{}, d
	}
	return ast.Pattern{Ident: ident, Type: typ, Guard: guard}, nil
}

func parseIdentAndType(toks []token.Token) (*token.Symbol, *ast.TypeSpec, *diag.Diagnostic) {
	switch len(toks) {
	case 0:
		return nil, nil, nil
	case 1:
		if toks[0].Kind != token.Identifier {
			return nil, nil, diag.Semanticf(toks[0].Span, "Expected identifier in pattern")
		}
		sym := toks[0].Symbol
		return &sym, nil, nil
	case 2:
		if toks[0].Kind != token.Identifier {
			return nil, nil, diag.Semanticf(toks[0].Span, "Expected type identifier in pattern")
		}
		typ, ok := ast.TypeFromName(toks[0].Lexeme())
		if !ok {
			return nil, nil, diag.Semanticf(toks[0].Span, "Unknown type %q in pattern", toks[0].Lexeme())
		}
		if toks[1].Kind != token.Identifier {
			return nil, nil, diag.Semanticf(toks[1].Span, "Expected identifier after type in pattern")
		}
		sym := toks[1].Symbol
		return &sym, &typ, nil
	default:
		return nil, nil, diag.Semanticf(toks[0].Span, "Malformed pattern")
	}
}
