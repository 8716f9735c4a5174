// Package parser turns a token stream into an AST using a small grammar
// table: productions are registered per state, and each production carries
// a transformer that builds the AST fragment for a matched rule. A state's
// productions are tried in registration order; the first one whose symbols fully
// match wins. A failed production backtracks without mutating the token
// stream — the parser is index-based over a pre-lexed slice, so failure is
// just restoring the index.
//
// Two states — Rvalue and the identifier-led forms of Line — are expressed
// as a single custom matcher rather than further table productions. The
// grammar's `Rvalue Op Rvalue` and `Lvalue "." AnyIdent` rules are left
// recursive; a table-driven recursive descent cannot follow them directly
// without looping forever. Per the reference's own guidance these are
// implemented as a left-to-right fold over a flat "atom (op atom)*"
// sequence, producing a leftmost-derivation tree (see expr.go).
package parser

import (
	"errors"

	"github.com/regionc/regionc/internal/ast"
	"github.com/regionc/regionc/internal/token"
)

// Error is returned for any grammar failure; the specification mandates a
// single fatal message with no recovery.
var Error = errors.New("Failed to parse tokens")

// State names a grammar nonterminal.
type State int

const (
	StateStart State = iota
	StateFunction
	StateLineAndSemi
	StateLine
	StateIfStatement
	StateForStatement
)

type symbolKind int

const (
	symToken symbolKind = iota
	symIdent
	symNumber
	symState
	symMany1
	symCustom
)

type customFn func(p *Parser) (any, bool)

type sym struct {
	kind symbolKind
	tok  token.Type
	st   State
	fn   customFn
}

func term(t token.Type) sym        { return sym{kind: symToken, tok: t} }
func ident() sym                   { return sym{kind: symIdent} }
func number() sym                  { return sym{kind: symNumber} } //nolint:unused // kept for grammar documentation symmetry
func nt(s State) sym               { return sym{kind: symState, st: s} }
func many1(s State) sym            { return sym{kind: symMany1, st: s} }
func custom(fn customFn) sym       { return sym{kind: symCustom, fn: fn} }

// part is what matching a single symbol produced.
type part struct {
	tok  token.Token
	node any
}

// production is one alternative for a state: a sequence of symbols to match
// in order, plus the transformer that builds the AST fragment from the
// matched parts.
type production struct {
	symbols   []sym
	transform func(parts []part) (any, error)
}

// Parser holds a fully-lexed token slice and an index into it; advancing the
// index is the only state transition, so saving and restoring it is all
// backtracking requires.
type Parser struct {
	tokens []token.Token
	pos    int
	rules  map[State][]production
}

// New constructs a Parser over tokens, which must end with a token.EOF.
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	p.rules = p.buildRules()
	return p
}

func (p *Parser) cur() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.tokens[len(p.tokens)-1] // EOF
}

func (p *Parser) atEOF() bool { return p.cur().Type == token.EOF }

func (p *Parser) match(s sym) (part, bool) {
	switch s.kind {
	case symToken:
		t := p.cur()
		if t.Type == s.tok {
			p.pos++
			return part{tok: t}, true
		}
		return part{}, false

	case symIdent:
		t := p.cur()
		if t.Type == token.IDENT {
			p.pos++
			return part{tok: t}, true
		}
		return part{}, false

	case symNumber:
		t := p.cur()
		if t.Type == token.NUMBER {
			p.pos++
			return part{tok: t}, true
		}
		return part{}, false

	case symState:
		save := p.pos
		node, ok := p.parseState(s.st)
		if !ok {
			p.pos = save
			return part{}, false
		}
		return part{node: node}, true

	case symMany1:
		var items []any
		for {
			save := p.pos
			node, ok := p.parseState(s.st)
			if !ok {
				p.pos = save
				break
			}
			items = append(items, node)
		}
		if len(items) == 0 {
			return part{}, false
		}
		return part{node: items}, true

	case symCustom:
		save := p.pos
		node, ok := s.fn(p)
		if !ok {
			p.pos = save
			return part{}, false
		}
		return part{node: node}, true
	}
	return part{}, false
}

// parseState tries each registered production for s in order, restoring pos
// between attempts, and returns the first one whose symbols fully match.
func (p *Parser) parseState(s State) (any, bool) {
	save := p.pos
	for _, prod := range p.rules[s] {
		p.pos = save
		parts := make([]part, 0, len(prod.symbols))
		matched := true
		for _, sy := range prod.symbols {
			pt, ok := p.match(sy)
			if !ok {
				matched = false
				break
			}
			parts = append(parts, pt)
		}
		if !matched {
			continue
		}
		result, err := prod.transform(parts)
		if err != nil {
			continue
		}
		return result, true
	}
	p.pos = save
	return nil, false
}

// Parse runs the grammar's Start rule over tokens and returns every region
// encountered. A leftover, unconsumed token after Start is a grammar
// failure.
func Parse(tokens []token.Token) ([]*ast.Region, error) {
	p := New(tokens)
	result, ok := p.parseState(StateStart)
	if !ok || !p.atEOF() {
		return nil, Error
	}
	return result.([]*ast.Region), nil
}

// ParseRegion is the common-case entry point: a source file holds exactly
// one region.
func ParseRegion(tokens []token.Token) (*ast.Region, error) {
	regions, err := Parse(tokens)
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, Error
	}
	return regions[0], nil
}

func toStatements(items []any) []ast.Statement {
	out := make([]ast.Statement, len(items))
	for i, it := range items {
		out[i] = it.(ast.Statement)
	}
	return out
}

func toFunctions(items []any) []ast.RegionItem {
	out := make([]ast.RegionItem, len(items))
	for i, it := range items {
		out[i] = it.(*ast.Function)
	}
	return out
}
