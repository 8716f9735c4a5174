package parser

import (
	"github.com/regionc/regionc/internal/ast"
	"github.com/regionc/regionc/internal/token"
)

// buildRules assembles the grammar table. Productions for a state are tried
// in the order they appear here, matching the specification's "productions
// are tried in registration order" rule.
func (p *Parser) buildRules() map[State][]production {
	return map[State][]production{
		StateStart: {
			// "region" AnyIdent "{" Functions "}" Start
			{
				symbols: []sym{term(token.REGION), ident(), term(token.LBRACE), many1(StateFunction), term(token.RBRACE), nt(StateStart)},
				transform: func(parts []part) (any, error) {
					region := &ast.Region{
						Token: parts[0].tok,
						Name:  parts[1].tok.Literal,
						Items: toFunctions(parts[3].node.([]any)),
					}
					rest := parts[5].node.([]*ast.Region)
					return append([]*ast.Region{region}, rest...), nil
				},
			},
			// ε
			{
				symbols: nil,
				transform: func(parts []part) (any, error) {
					return []*ast.Region{}, nil
				},
			},
		},

		StateFunction: {
			// "fn" AnyIdent "(" AnyIdent ")" "{" Lines "}" [";"]
			{
				symbols: []sym{term(token.FN), ident(), term(token.LPAREN), ident(), term(token.RPAREN), term(token.LBRACE), many1(StateLineAndSemi), term(token.RBRACE), custom(matchOptionalSemicolon)},
				transform: func(parts []part) (any, error) {
					fn := &ast.Function{
						Token:  parts[0].tok,
						Name:   parts[1].tok.Literal,
						Params: []*ast.Variable{{Name: parts[3].tok.Literal, Type: ast.Int32}},
						Body:   toStatements(parts[6].node.([]any)),
					}
					return fn, nil
				},
			},
		},

		StateLineAndSemi: {
			// Line ";"
			{
				symbols: []sym{nt(StateLine), term(token.SEMICOLON)},
				transform: func(parts []part) (any, error) {
					return parts[0].node.(ast.Statement), nil
				},
			},
		},

		StateLine: {
			// "let" AnyIdent "=" Rvalue
			{
				symbols: []sym{term(token.LET), ident(), term(token.ASSIGN), custom(matchRvalue)},
				transform: func(parts []part) (any, error) {
					return &ast.LetStatement{Token: parts[0].tok, Name: parts[1].tok.Literal, Value: parts[3].node.(ast.Expr)}, nil
				},
			},
			// "return" Rvalue
			{
				symbols: []sym{term(token.RETURN), custom(matchRvalue)},
				transform: func(parts []part) (any, error) {
					return &ast.ReturnStatement{Token: parts[0].tok, Value: parts[1].node.(ast.Expr)}, nil
				},
			},
			// IfStatement
			{
				symbols: []sym{nt(StateIfStatement)},
				transform: func(parts []part) (any, error) {
					return parts[0].node.(ast.Statement), nil
				},
			},
			// ForStatement
			{
				symbols: []sym{nt(StateForStatement)},
				transform: func(parts []part) (any, error) {
					return parts[0].node.(ast.Statement), nil
				},
			},
			// Lvalue "=" Rvalue | FunctionCall | MethodCall-as-statement
			{
				symbols: []sym{custom(matchIdentLedLine)},
				transform: func(parts []part) (any, error) {
					return parts[0].node.(ast.Statement), nil
				},
			},
		},

		StateIfStatement: {
			// "if" Rvalue "{" Lines "}" (optional "else" "{" Lines "}")
			{
				symbols: []sym{term(token.IF), custom(matchRvalue), term(token.LBRACE), many1(StateLineAndSemi), term(token.RBRACE), custom(matchOptionalElse)},
				transform: func(parts []part) (any, error) {
					cond := parts[1].node.(ast.Expr)
					then := toStatements(parts[3].node.([]any))
					if parts[5].node == nil {
						return &ast.IfStatement{Token: parts[0].tok, Cond: cond, Body: then}, nil
					}
					return &ast.IfElseStatement{Token: parts[0].tok, Cond: cond, Then: then, Else: parts[5].node.([]ast.Statement)}, nil
				},
			},
		},

		StateForStatement: {
			// "for" "(" Line ";" Rvalue ";" Line ")" "{" Lines "}"
			{
				symbols: []sym{
					term(token.FOR), term(token.LPAREN), nt(StateLine), term(token.SEMICOLON),
					custom(matchRvalue), term(token.SEMICOLON), nt(StateLine), term(token.RPAREN),
					term(token.LBRACE), many1(StateLineAndSemi), term(token.RBRACE),
				},
				transform: func(parts []part) (any, error) {
					return &ast.ForStatement{
						Token:  parts[0].tok,
						Init:   parts[2].node.(ast.Statement),
						Cond:   parts[4].node.(ast.Expr),
						Update: parts[6].node.(ast.Statement),
						Body:   toStatements(parts[9].node.([]any)),
					}, nil
				},
			},
		},
	}
}

// matchOptionalElse consumes an optional `"else" "{" Lines "}"` tail. It
// always succeeds: absence of `else` is not a grammar failure, it yields a
// nil node that the IfStatement production reads as "no else arm".
func matchOptionalElse(p *Parser) (any, bool) {
	if p.cur().Type != token.ELSE {
		return nil, true
	}
	p.pos++
	if p.cur().Type != token.LBRACE {
		return nil, false
	}
	p.pos++
	var body []ast.Statement
	for {
		save := p.pos
		node, ok := p.parseState(StateLineAndSemi)
		if !ok {
			p.pos = save
			break
		}
		body = append(body, node.(ast.Statement))
	}
	if len(body) == 0 {
		return nil, false
	}
	if p.cur().Type != token.RBRACE {
		return nil, false
	}
	p.pos++
	return body, true
}
