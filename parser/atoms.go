package parser

import (
	"github.com/jack-papel/mlang/ast"
	"github.com/jack-papel/mlang/diag"
	"github.com/jack-papel/mlang/token"
)

// atom is a parser fragment: either already parsed into an expression, or
// still a raw token awaiting atomization, prefix-unary folding, call
// folding, or binary-operator folding. This is the Fragment type of §4.4.
type atom struct {
	expr   ast.Expression
	tok    token.Token
	parsed bool
}

func parsedAtom(e ast.Expression) atom { return atom{expr: e, parsed: true} }
func rawAtom(t token.Token) atom       { return atom{tok: t} }

// parseExprTokens runs steps 4-11 of §4.4 over a flat, already-delimited
// token slice (no newlines, no surrounding match-arm bars): bracket
// resolution, atomization, prefix unary, call folding, and the
// precedence-ordered binary fold.
func parseExprTokens(tokens []token.Token) (ast.Expression, *diag.Diagnostic) {
	atoms := make([]atom, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == token.Newline {
			continue // step 6: drop stray newlines
		}
		atoms = append(atoms, rawAtom(t))
	}

	atoms, d := resolveBrackets(atoms)
	if d != nil {
		return nil, d
	}
	atoms, d = resolveTrailingMatch(atoms)
	if d != nil {
		return nil, d
	}

	atoms = atomizeLiterals(atoms)
	atoms = foldPrefixUnary(atoms)

	atoms, d = foldCalls(atoms)
	if d != nil {
		return nil, d
	}

	for _, group := range ast.PrecedenceGroups {
		atoms, d = foldBinaryGroup(atoms, group)
		if d != nil {
			return nil, d
		}
	}

	return finalizeAtoms(atoms)
}

// resolveTrailingMatch handles a match literal written inline with no
// indentation to discover its arms by — either the whole bracket contents
// (`(| n : n * n)`) or everything from a bare leading '|' to the end of the
// current expression (`0..3 $ | x : x println`, §8 scenario 1). Arms are
// instead delimited by top-level '|' atoms directly (parseInlineMatch), and
// the entire matched suffix collapses into one Parsed atom so the ordinary
// binary-fold pipeline can treat it as a single operand.
func resolveTrailingMatch(atoms []atom) ([]atom, *diag.Diagnostic) {
	barIdx := -1
	for i, a := range atoms {
		if !a.parsed && a.tok.Kind == token.Bar {
			barIdx = i
			break
		}
	}
	if barIdx == -1 {
		return atoms, nil
	}

	matchExpr, d := parseInlineMatch(atoms[barIdx:])
	if d != nil {
		return nil, d
	}

	out := make([]atom, 0, barIdx+1)
	out = append(out, atoms[:barIdx]...)
	out = append(out, parsedAtom(matchExpr))
	return out, nil
}

// resolveBrackets repeatedly finds the first top-level '(' or '[' (one that
// precedes any Bar at depth 0 — a Bar at depth 0 halts the scan, per
// §4.4 step 4) and collapses it and its matching closer into one Parsed
// atom: grouping for '(', a ListLiteral for '['.
func resolveBrackets(atoms []atom) ([]atom, *diag.Diagnostic) {
	for {
		openIdx := -1
		var openKind token.Kind
		depth := 0
		found := false
		for i, a := range atoms {
			if a.parsed {
				continue
			}
			switch a.tok.Kind {
			case token.Bar:
				if depth == 0 {
					// A Bar at depth 0 halts the scan: it belongs to a
					// match expression, not this bracket search.
					found = false
				}
			case token.LParen, token.LBracket:
				if depth == 0 {
					openIdx = i
					openKind = a.tok.Kind
					found = true
				}
				depth++
			case token.RParen, token.RBracket:
				depth--
			}
			if a.tok.Kind == token.Bar && depth == 0 {
				break
			}
			if found && depth == 0 {
				break
			}
		}
		if !found {
			return atoms, nil
		}

		closeKind := token.RParen
		if openKind == token.LBracket {
			closeKind = token.RBracket
		}
		closeIdx, err := matchingCloser(atoms, openIdx, openKind, closeKind)
		if err != nil {
			return nil, err
		}

		inner := atoms[openIdx+1 : closeIdx]
		var replacement ast.Expression
		var d *diag.Diagnostic
		if openKind == token.LParen {
			replacement, d = parseExprAtoms(inner)
		} else {
			replacement, d = parseListLiteral(inner)
		}
		if d != nil {
			return nil, d
		}

		next := make([]atom, 0, len(atoms)-(closeIdx-openIdx)+1)
		next = append(next, atoms[:openIdx]...)
		next = append(next, parsedAtom(replacement))
		next = append(next, atoms[closeIdx+1:]...)
		atoms = next
	}
}

func matchingCloser(atoms []atom, openIdx int, openKind, closeKind token.Kind) (int, *diag.Diagnostic) {
	depth := 0
	for i := openIdx; i < len(atoms); i++ {
		if atoms[i].parsed {
			continue
		}
		switch atoms[i].tok.Kind {
		case openKind:
			depth++
		case closeKind:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return -1, diag.Syntaxf(atoms[openIdx].tok.Span, "Unmatched '%s'", openKind.String())
}

// parseExprAtoms runs the same atom pipeline as parseExprTokens (bracket
// resolution through finalization) on an atom slice, such as parenthesized
// contents, a list element, or an inline match arm's pattern guard or body.
func parseExprAtoms(atoms []atom) (ast.Expression, *diag.Diagnostic) {
	atoms, d := resolveBrackets(atoms)
	if d != nil {
		return nil, d
	}
	atoms, d = resolveTrailingMatch(atoms)
	if d != nil {
		return nil, d
	}
	atoms = atomizeLiterals(atoms)
	atoms = foldPrefixUnary(atoms)
	atoms, d = foldCalls(atoms)
	if d != nil {
		return nil, d
	}
	for _, group := range ast.PrecedenceGroups {
		atoms, d = foldBinaryGroup(atoms, group)
		if d != nil {
			return nil, d
		}
	}
	return finalizeAtoms(atoms)
}

// parseListLiteral splits bracket contents on top-level commas and parses
// each segment as an independent expression (supplemental `[e1, e2, …]`
// syntax, see SPEC_FULL.md).
func parseListLiteral(atoms []atom) (ast.Expression, *diag.Diagnostic) {
	segments := splitOnTopLevelComma(atoms)
	elems := make([]ast.Expression, 0, len(segments))
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		expr, d := parseExprAtoms(seg)
		if d != nil {
			return nil, d
		}
		elems = append(elems, expr)
	}
	return &ast.ListLiteral{Elements: elems}, nil
}

func splitOnTopLevelComma(atoms []atom) [][]atom {
	var segments [][]atom
	depth := 0
	start := 0
	for i, a := range atoms {
		if a.parsed {
			continue
		}
		switch a.tok.Kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			depth--
		case token.Comma:
			if depth == 0 {
				segments = append(segments, atoms[start:i])
				start = i + 1
			}
		}
	}
	segments = append(segments, atoms[start:])
	return segments
}

// atomizeLiterals replaces each Unparsed literal/identifier token with a
// Parsed fragment (§4.4 step 7).
func atomizeLiterals(atoms []atom) []atom {
	out := make([]atom, len(atoms))
	for i, a := range atoms {
		if a.parsed {
			out[i] = a
			continue
		}
		switch a.tok.Kind {
		case token.Literal:
			out[i] = parsedAtom(literalExpr(a.tok))
		case token.Identifier:
			out[i] = parsedAtom(&ast.Identifier{Name: a.tok.Symbol})
		default:
			out[i] = a
		}
	}
	return out
}

func literalExpr(t token.Token) ast.Expression {
	switch t.LitKind {
	case token.LiteralInt:
		return &ast.IntLiteral{Value: t.IntValue}
	case token.LiteralFloat:
		return &ast.FloatLiteral{Value: t.FloatValue}
	case token.LiteralString:
		return &ast.StringLiteral{Value: t.Lexeme()}
	case token.LiteralBool:
		return &ast.BoolLiteral{Value: t.BoolValue}
	default:
		return &ast.NoneLiteral{}
	}
}

// foldPrefixUnary recognizes a single leading Minus or Bang as a prefix
// unary operator over the following Parsed atom (§4.4 step 8).
func foldPrefixUnary(atoms []atom) []atom {
	if len(atoms) < 2 || atoms[0].parsed {
		return atoms
	}
	var op ast.UnaryOperator
	switch atoms[0].tok.Kind {
	case token.Minus:
		op = ast.OpNeg
	case token.Bang:
		op = ast.OpNot
	default:
		return atoms
	}
	if !atoms[1].parsed {
		return atoms
	}
	merged := parsedAtom(&ast.Unary{Op: op, Operand: atoms[1].expr})
	out := make([]atom, 0, len(atoms)-1)
	out = append(out, merged)
	out = append(out, atoms[2:]...)
	return out
}

// foldCalls repeatedly folds adjacent Parsed,Parsed pairs into
// Call{Arg: left, Callee: right} — the language's `value func` postfix
// application (§4.4 step 9).
func foldCalls(atoms []atom) ([]atom, *diag.Diagnostic) {
	for {
		merged := false
		out := make([]atom, 0, len(atoms))
		i := 0
		for i < len(atoms) {
			if i+1 < len(atoms) && atoms[i].parsed && atoms[i+1].parsed {
				out = append(out, parsedAtom(&ast.Call{Arg: atoms[i].expr, Callee: atoms[i+1].expr}))
				i += 2
				merged = true
				continue
			}
			out = append(out, atoms[i])
			i++
		}
		atoms = out
		if !merged {
			return atoms, nil
		}
	}
}

// binaryTokenOp maps a token kind to the BinaryOperator it spells, if any.
func binaryTokenOp(k token.Kind) (ast.BinaryOperator, bool) {
	switch k {
	case token.DotDot:
		return ast.OpRange, true
	case token.Dollar:
		return ast.OpForEach, true
	case token.At:
		return ast.OpMap, true
	case token.Hash:
		return ast.OpFilter, true
	case token.AndAndAnd:
		return ast.OpAll, true
	case token.TripleBar:
		return ast.OpAny, true
	case token.Percent:
		return ast.OpMod, true
	case token.Star:
		return ast.OpMul, true
	case token.Slash:
		return ast.OpDiv, true
	case token.Plus:
		return ast.OpPlus, true
	case token.Minus:
		return ast.OpMinus, true
	case token.BangEqual:
		return ast.OpNotEqual, true
	case token.EqualEqual:
		return ast.OpEqual, true
	case token.Greater:
		return ast.OpGreater, true
	case token.GreaterEqual:
		return ast.OpGreaterEqual, true
	case token.Less:
		return ast.OpLess, true
	case token.LessEqual:
		return ast.OpLessEqual, true
	case token.AndAnd:
		return ast.OpAnd, true
	case token.DoubleBar:
		return ast.OpOr, true
	default:
		return 0, false
	}
}

// foldBinaryGroup scans left-to-right for any operator fragment belonging
// to group, folding its neighbors into a Binary node (left-associative
// within the group), per §4.4 step 10.
func foldBinaryGroup(atoms []atom, group []ast.BinaryOperator) ([]atom, *diag.Diagnostic) {
	inGroup := func(op ast.BinaryOperator) bool {
		for _, g := range group {
			if g == op {
				return true
			}
		}
		return false
	}

	for {
		idx := -1
		var op ast.BinaryOperator
		for i, a := range atoms {
			if a.parsed {
				continue
			}
			o, ok := binaryTokenOp(a.tok.Kind)
			if ok && inGroup(o) {
				idx = i
				op = o
				break
			}
		}
		if idx == -1 {
			return atoms, nil
		}
		if idx == 0 || idx == len(atoms)-1 || !atoms[idx-1].parsed || !atoms[idx+1].parsed {
			return nil, diag.Syntaxf(atoms[idx].tok.Span, "Operator %q is missing an operand", atoms[idx].tok.Kind.String())
		}
		merged := parsedAtom(&ast.Binary{Left: atoms[idx-1].expr, Op: op, Right: atoms[idx+1].expr})
		out := make([]atom, 0, len(atoms)-2)
		out = append(out, atoms[:idx-1]...)
		out = append(out, merged)
		out = append(out, atoms[idx+2:]...)
		atoms = out
	}
}

// finalizeAtoms implements §4.4 step 11: empty → None, one atom → itself,
// a valid comma-separated residue → a TupleLiteral (supplemental syntax),
// anything else → a syntax error.
func finalizeAtoms(atoms []atom) (ast.Expression, *diag.Diagnostic) {
	switch len(atoms) {
	case 0:
		return &ast.NoneLiteral{}, nil
	case 1:
		if atoms[0].parsed {
			return atoms[0].expr, nil
		}
		return nil, diag.Syntaxf(atoms[0].tok.Span, "Unexpected token %q", atoms[0].tok.Kind.String())
	}

	elems := make([]ast.Expression, 0, len(atoms)/2+1)
	for i, a := range atoms {
		if i%2 == 0 {
			if !a.parsed {
				return nil, diag.Syntaxf(a.tok.Span, "Expected expression in tuple")
			}
			elems = append(elems, a.expr)
		} else {
			if a.parsed || a.tok.Kind != token.Comma {
				return nil, diag.Syntaxf(a.tok.Span, "Expected ',' in tuple")
			}
		}
	}
	if len(atoms)%2 == 0 {
		return nil, diag.Syntaxf(atoms[len(atoms)-1].tok.Span, "Trailing ',' in tuple")
	}
	return &ast.TupleLiteral{Elements: elems}, nil
}
