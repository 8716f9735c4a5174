// Package ast defines the Abstract Syntax Tree for the region language: the
// tree of regions, functions, statements, and expressions that the parser
// builds and the optimizer passes rewrite in place.
package ast

import (
	"bytes"
	"strings"

	"github.com/regionc/regionc/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// TokenLiteral returns the literal of the token the node is anchored to.
	TokenLiteral() string

	// String renders the node for debugging and for code-generator tests.
	String() string
}

// RegionItem is either a Function or, before top-level lifting runs, a bare
// Statement sitting directly in a Region's body.
type RegionItem interface {
	Node
	regionItemNode()
}

// Statement is a node that performs an action but produces no value.
type Statement interface {
	Node
	RegionItem
	statementNode()
}

// Expr is a node that produces a value. Expressions are value-equality
// comparable and hashable via Key, which CSE and loop-invariant code motion
// use as a map key; Key deliberately omits source position so that two
// structurally identical expressions collide regardless of where they were
// parsed from.
type Expr interface {
	Node
	exprNode()
	// Key returns a canonical, position-independent structural encoding of
	// the expression, suitable as a map key for structural equality.
	Key() string
}

// Region is the root node: the source file's top-level unit.
type Region struct {
	Token token.Token // the 'region' token
	Name  string
	Items []RegionItem
}

func (r *Region) TokenLiteral() string { return r.Token.Literal }
func (r *Region) String() string {
	var out bytes.Buffer
	out.WriteString("region ")
	out.WriteString(r.Name)
	out.WriteString(" {\n")
	for _, item := range r.Items {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(item.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// Functions returns every *Function currently in Items, in order.
func (r *Region) Functions() []*Function {
	var fns []*Function
	for _, item := range r.Items {
		if fn, ok := item.(*Function); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// VarType is the declared type of a Variable.
type VarType int

const (
	Int32 VarType = iota
	Bool
	StringType
)

func (t VarType) String() string {
	switch t {
	case Int32:
		return "int32"
	case Bool:
		return "bool"
	case StringType:
		return "string"
	default:
		return "unknown"
	}
}

// Variable is a function parameter declaration.
type Variable struct {
	Name string
	Type VarType
}

// Function is a callable unit inside a region, exposed as a host entry
// point by the code generator.
type Function struct {
	Token  token.Token // the 'fn' token
	Name   string
	Params []*Variable
	Body   []Statement
}

func (f *Function) regionItemNode()     {}
func (f *Function) TokenLiteral() string { return f.Token.Literal }
func (f *Function) String() string {
	var out bytes.Buffer
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	out.WriteString("fn ")
	out.WriteString(f.Name)
	out.WriteString("(")
	out.WriteString(strings.Join(names, ", "))
	out.WriteString(") {\n")
	for _, stmt := range f.Body {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(stmt.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}
