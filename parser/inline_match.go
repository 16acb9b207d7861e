package parser

import (
	"github.com/jack-papel/mlang/ast"
	"github.com/jack-papel/mlang/diag"
	"github.com/jack-papel/mlang/token"
)

// parseInlineMatch parses a match literal written on a single line, either
// inside parens or trailing the expression, with no indentation to discover
// arms by (e.g. the filter/map arguments of §8 scenario 2:
// `(| n : n % 2 == 0)`). Arms are instead delimited by top-level '|' atoms
// directly, and each arm's body is a single statement rather than an
// indented block.
func parseInlineMatch(atoms []atom) (ast.Expression, *diag.Diagnostic) {
	groups := splitOnTopLevelBar(atoms)

	var arms []ast.MatchArm
	for _, g := range groups {
		colonIdx := findTopLevelColonAtoms(g)
		if colonIdx == -1 {
			span := token.Span{}
			if len(g) > 0 && !g[0].parsed {
				span = g[0].tok.Span
			}
			return nil, diag.Syntaxf(span, "Match arm is missing ':'")
		}

		pattern, d := parsePatternAtoms(g[:colonIdx])
		if d != nil {
			return nil, d
		}

		bodyStmt, d := parseStatementAtoms(g[colonIdx+1:])
		if d != nil {
			return nil, d
		}

		arms = append(arms, ast.MatchArm{
			Pattern: pattern,
			Body:    ast.Block{Statements: []ast.Statement{bodyStmt}},
		})
	}

	return &ast.MatchLiteral{Arms: arms}, nil
}

// splitOnTopLevelBar splits atoms at every top-level (depth-0, unparsed)
// Bar, dropping the bars themselves — each resulting slice is one arm's
// pattern-and-body atoms.
func splitOnTopLevelBar(atoms []atom) [][]atom {
	var groups [][]atom
	depth := 0
	start := -1
	for i, a := range atoms {
		if a.parsed {
			continue
		}
		switch a.tok.Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			depth--
		case token.Bar:
			if depth == 0 {
				if start >= 0 {
					groups = append(groups, atoms[start:i])
				}
				start = i + 1
			}
		}
	}
	if start >= 0 {
		groups = append(groups, atoms[start:])
	}
	return groups
}

// parseStatementAtoms is the atom-slice analogue of parseStatement, used for
// an inline match arm's body — a single statement with no indented sub-block
// of its own (there's no following line to hold one).
func parseStatementAtoms(atoms []atom) (ast.Statement, *diag.Diagnostic) {
	if len(atoms) >= 1 && !atoms[0].parsed && atoms[0].tok.Kind == token.Keyword {
		switch atoms[0].tok.Symbol {
		case token.SymLet:
			if len(atoms) < 3 || atoms[1].parsed || atoms[1].tok.Kind != token.Identifier ||
				atoms[2].parsed || atoms[2].tok.Kind != token.Equal {
				return nil, diag.Semanticf(atoms[0].tok.Span, "Expected identifier after 'let'")
			}
			name := atoms[1].tok.Symbol
			value, d := parseExprAtoms(atoms[3:])
			if d != nil {
				return nil, d
			}
			return &ast.LetStatement{Name: name, Value: value}, nil

		case token.SymReturn:
			value, d := parseExprAtoms(atoms[1:])
			if d != nil {
				return nil, d
			}
			return &ast.ReturnStatement{Value: value}, nil

		case token.SymBreak:
			if len(atoms) == 1 {
				return &ast.BreakStatement{}, nil
			}
			value, d := parseExprAtoms(atoms[1:])
			if d != nil {
				return nil, d
			}
			return &ast.BreakStatement{Value: value}, nil

		case token.SymContinue:
			return &ast.ContinueStatement{}, nil
		}
	}

	if len(atoms) >= 2 && !atoms[0].parsed && atoms[0].tok.Kind == token.Identifier &&
		!atoms[1].parsed && atoms[1].tok.Kind == token.Equal {
		name := atoms[0].tok.Symbol
		value, d := parseExprAtoms(atoms[2:])
		if d != nil {
			return nil, d
		}
		return &ast.SetStatement{Name: name, Value: value}, nil
	}

	expr, d := parseExprAtoms(atoms)
	if d != nil {
		return nil, d
	}
	return &ast.ExpressionStatement{Expr: expr}, nil
}

// findTopLevelColonAtoms is the atom-slice analogue of findTopLevelColon.
func findTopLevelColonAtoms(atoms []atom) int {
	depth := 0
	for i, a := range atoms {
		if a.parsed {
			continue
		}
		switch a.tok.Kind {
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

// parsePatternAtoms is the atom-slice analogue of parsePattern, used for
// inline match arms that never went through tokenization as a flat slice.
func parsePatternAtoms(atoms []atom) (ast.Pattern, *diag.Diagnostic) {
	tildeIdx := -1
	for i, a := range atoms {
		if !a.parsed && a.tok.Kind == token.Tilde {
			tildeIdx = i
			break
		}
	}

	if tildeIdx == -1 {
		ident, typ, d := parseIdentAndTypeAtoms(atoms)
		if d != nil {
			return ast.Pattern{}, d
		}
		return ast.Pattern{Ident: ident, Type: typ}, nil
	}

	ident, typ, d := parseIdentAndTypeAtoms(atoms[:tildeIdx])
	if d != nil {
		return ast.Pattern{}, d
	}
	guard, d := parseExprAtoms(atoms[tildeIdx+1:])
	if d != nil {
		return ast.Pattern{}, d
	}
	return ast.Pattern{Ident: ident, Type: typ, Guard: guard}, nil
}

func parseIdentAndTypeAtoms(atoms []atom) (*token.Symbol, *ast.TypeSpec, *diag.Diagnostic) {
	switch len(atoms) {
	case 0:
		return nil, nil, nil
	case 1:
		if atoms[0].parsed || atoms[0].tok.Kind != token.Identifier {
			span := token.Span{}
			if !atoms[0].parsed {
				span = atoms[0].tok.Span
			}
			return nil, nil, diag.Semanticf(span, "Expected identifier in pattern")
		}
		sym := atoms[0].tok.Symbol
		return &sym, nil, nil
	case 2:
		if atoms[0].parsed || atoms[0].tok.Kind != token.Identifier {
			return nil, nil, diag.Semanticf(token.Span{}, "Expected type identifier in pattern")
		}
		typ, ok := ast.TypeFromName(atoms[0].tok.Lexeme())
		if !ok {
			return nil, nil, diag.Semanticf(atoms[0].tok.Span, "Unknown type %q in pattern", atoms[0].tok.Lexeme())
		}
		if atoms[1].parsed || atoms[1].tok.Kind != token.Identifier {
			return nil, nil, diag.Semanticf(token.Span{}, "Expected identifier after type in pattern")
		}
		sym := atoms[1].tok.Symbol
		return &sym, &typ, nil
	default:
		span := token.Span{}
		if !atoms[0].parsed {
			span = atoms[0].tok.Span
		}
		return nil, nil, diag.Semanticf(span, "Malformed pattern")
	}
}
