package parser

import (
	"strconv"

	"github.com/regionc/regionc/internal/ast"
	"github.com/regionc/regionc/internal/token"
)

// binOpTokens maps an operator token to its BinOp tag. There is no
// operator precedence (see the package doc comment): every operator binds
// at the same level and parseRvalue folds the tree left to right in source
// order.
var binOpTokens = map[token.Type]ast.BinOp{
	token.PLUS:     ast.Add,
	token.MINUS:    ast.Sub,
	token.ASTERISK: ast.Mult,
	token.SLASH:    ast.Div,
	token.LT:       ast.LessThan,
	token.GT:       ast.GreaterThan,
	token.LE:       ast.LessEq,
	token.GE:       ast.GreaterEq,
}

// matchRvalue adapts parseRvalue to the custom-symbol signature.
func matchRvalue(p *Parser) (any, bool) {
	e, ok := p.parseRvalue()
	if !ok {
		return nil, false
	}
	return e, true
}

// matchOptionalSemicolon consumes a ";" if one is next and always succeeds,
// so a function body may be closed with either "}" or "};".
func matchOptionalSemicolon(p *Parser) (any, bool) {
	if p.cur().Type == token.SEMICOLON {
		p.pos++
	}
	return nil, true
}

// parseRvalue folds `RvalueAtom (Op RvalueAtom)*` left to right, producing
// a leftmost-derivation tree: `a + b + c` becomes `(a+b)+c`, never `a+(b+c)`.
func (p *Parser) parseRvalue() (ast.Expr, bool) {
	left, ok := p.parseRvalueAtom()
	if !ok {
		return nil, false
	}
	for {
		op, isOp := binOpTokens[p.cur().Type]
		if !isOp {
			break
		}
		opTok := p.cur()
		p.pos++
		right, ok := p.parseRvalueAtom()
		if !ok {
			return nil, false
		}
		left = &ast.BinaryExpr{Token: opTok, Left: left, Op: op, Right: right}
	}
	return left, true
}

// parseRvalueAtom handles AnyNumber, the empty array literal, and the three
// identifier-led forms: plain Lvalue, FunctionCall, and MethodCall.
func (p *Parser) parseRvalueAtom() (ast.Expr, bool) {
	t := p.cur()

	switch t.Type {
	case token.NUMBER:
		p.pos++
		n, err := strconv.ParseInt(t.Literal, 10, 32)
		if err != nil {
			return nil, false
		}
		return &ast.NumberExpr{Token: t, Value: int32(n)}, true

	case token.LBRACK:
		p.pos++
		if p.cur().Type != token.RBRACK {
			return nil, false // non-empty arrays are not part of the surface grammar
		}
		p.pos++
		return &ast.ArrayExpr{Token: t}, true

	case token.IDENT:
		p.pos++
		name := t.Literal

		if p.cur().Type == token.LPAREN {
			p.pos++
			args, ok := p.parseArgs()
			if !ok || p.cur().Type != token.RPAREN {
				return nil, false
			}
			p.pos++
			return &ast.CallExpr{Token: t, Name: name, Args: args}, true
		}

		if p.cur().Type == token.DOT {
			p.pos++
			if p.cur().Type != token.IDENT {
				return nil, false
			}
			member := p.cur().Literal
			p.pos++
			if p.cur().Type == token.LPAREN {
				p.pos++
				args, ok := p.parseArgs()
				if !ok || p.cur().Type != token.RPAREN {
					return nil, false
				}
				p.pos++
				return &ast.MethodCallExpr{Token: t, Object: &ast.VariableExpr{Token: t, Name: name}, Method: member, Args: args}, true
			}
			// Dotted but not called: the data model has no field-access
			// expression, so the path collapses into a single flat name.
			return &ast.VariableExpr{Token: t, Name: name + "." + member}, true
		}

		return &ast.VariableExpr{Token: t, Name: name}, true
	}

	return nil, false
}

// parseArgs parses a comma-separated Rvalue list. An immediately-closing
// paren yields zero arguments (e.g. `xs.length()`); the grammar's literal
// FunctionArgs rule requires at least one, but the empty case is accepted
// rather than rejected.
func (p *Parser) parseArgs() ([]ast.Expr, bool) {
	if p.cur().Type == token.RPAREN {
		return nil, true
	}
	first, ok := p.parseRvalue()
	if !ok {
		return nil, false
	}
	args := []ast.Expr{first}
	for p.cur().Type == token.COMMA {
		p.pos++
		next, ok := p.parseRvalue()
		if !ok {
			return nil, false
		}
		args = append(args, next)
	}
	return args, true
}

// matchIdentLedLine handles every Line alternative that begins with a bare
// identifier: a plain function-call statement, a method-call statement, a
// simple assignment, and a dotted assignment target.
func matchIdentLedLine(p *Parser) (any, bool) {
	t := p.cur()
	if t.Type != token.IDENT {
		return nil, false
	}
	p.pos++
	name := t.Literal

	switch p.cur().Type {
	case token.LPAREN:
		p.pos++
		args, ok := p.parseArgs()
		if !ok || p.cur().Type != token.RPAREN {
			return nil, false
		}
		p.pos++
		return &ast.CallStatement{Token: t, Name: name, Args: args}, true

	case token.DOT:
		p.pos++
		if p.cur().Type != token.IDENT {
			return nil, false
		}
		member := p.cur().Literal
		p.pos++
		if p.cur().Type == token.LPAREN {
			p.pos++
			args, ok := p.parseArgs()
			if !ok || p.cur().Type != token.RPAREN {
				return nil, false
			}
			p.pos++
			return &ast.ExpressionStatement{
				Token: t,
				Value: &ast.MethodCallExpr{Token: t, Object: &ast.VariableExpr{Token: t, Name: name}, Method: member, Args: args},
			}, true
		}
		if p.cur().Type != token.ASSIGN {
			return nil, false
		}
		p.pos++
		value, ok := p.parseRvalue()
		if !ok {
			return nil, false
		}
		return &ast.Assignment{Token: t, Name: name + "." + member, Value: value}, true

	case token.ASSIGN:
		p.pos++
		value, ok := p.parseRvalue()
		if !ok {
			return nil, false
		}
		return &ast.Assignment{Token: t, Name: name, Value: value}, true
	}

	return nil, false
}
