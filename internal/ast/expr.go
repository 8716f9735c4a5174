package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/regionc/regionc/internal/token"
)

// BinOp is a binary operator tag, independent of its surface spelling.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mult
	Div
	LessThan
	GreaterThan
	LessEq
	GreaterEq
)

var binOpSymbols = [...]string{
	Add:         "+",
	Sub:         "-",
	Mult:        "*",
	Div:         "/",
	LessThan:    "<",
	GreaterThan: ">",
	LessEq:      "<=",
	GreaterEq:   ">=",
}

func (o BinOp) String() string {
	if int(o) >= 0 && int(o) < len(binOpSymbols) {
		return binOpSymbols[o]
	}
	return "?"
}

// LookupBinOp maps an operator's surface spelling to its BinOp tag.
func LookupBinOp(symbol string) (BinOp, bool) {
	for op, sym := range binOpSymbols {
		if sym == symbol {
			return BinOp(op), true
		}
	}
	return 0, false
}

// UninitializedExpr is the placeholder value appended by return
// normalization and emitted as the host's null value.
type UninitializedExpr struct {
	Token token.Token
}

func (e *UninitializedExpr) exprNode()          {}
func (e *UninitializedExpr) TokenLiteral() string { return e.Token.Literal }
func (e *UninitializedExpr) String() string       { return "uninitialized" }
func (e *UninitializedExpr) Key() string          { return "Uninitialized" }

// NumberExpr is an int32 literal.
type NumberExpr struct {
	Token token.Token
	Value int32
}

func (e *NumberExpr) exprNode()          {}
func (e *NumberExpr) TokenLiteral() string { return e.Token.Literal }
func (e *NumberExpr) String() string       { return fmt.Sprintf("%d", e.Value) }
func (e *NumberExpr) Key() string          { return fmt.Sprintf("Number(%d)", e.Value) }

// StringLiteralExpr is a string literal.
type StringLiteralExpr struct {
	Token token.Token
	Value string
}

func (e *StringLiteralExpr) exprNode()          {}
func (e *StringLiteralExpr) TokenLiteral() string { return e.Token.Literal }
func (e *StringLiteralExpr) String() string       { return "\"" + e.Value + "\"" }
func (e *StringLiteralExpr) Key() string          { return fmt.Sprintf("String(%q)", e.Value) }

// VariableExpr references a declared variable by name.
type VariableExpr struct {
	Token token.Token
	Name  string
}

func (e *VariableExpr) exprNode()          {}
func (e *VariableExpr) TokenLiteral() string { return e.Token.Literal }
func (e *VariableExpr) String() string       { return e.Name }
func (e *VariableExpr) Key() string          { return fmt.Sprintf("Var(%s)", e.Name) }

// CallExpr is a free function call used as a value.
type CallExpr struct {
	Token token.Token
	Name  string
	Args  []Expr
}

func (e *CallExpr) exprNode()          {}
func (e *CallExpr) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
}
func (e *CallExpr) Key() string {
	keys := make([]string, len(e.Args))
	for i, a := range e.Args {
		keys[i] = a.Key()
	}
	return fmt.Sprintf("Call(%s,[%s])", e.Name, strings.Join(keys, ","))
}

// ArrayExpr is an array literal. Per the language surface only the empty
// literal is legal; non-empty arrays are a code-generator refusal.
type ArrayExpr struct {
	Token token.Token
	Elems []Expr
}

func (e *ArrayExpr) exprNode()          {}
func (e *ArrayExpr) TokenLiteral() string { return e.Token.Literal }
func (e *ArrayExpr) String() string {
	elems := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		elems[i] = el.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}
func (e *ArrayExpr) Key() string {
	keys := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		keys[i] = el.Key()
	}
	return fmt.Sprintf("Array([%s])", strings.Join(keys, ","))
}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	Token token.Token
	Left  Expr
	Op    BinOp
	Right Expr
}

func (e *BinaryExpr) exprNode()          {}
func (e *BinaryExpr) TokenLiteral() string { return e.Token.Literal }
func (e *BinaryExpr) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(e.Left.String())
	out.WriteString(" " + e.Op.String() + " ")
	out.WriteString(e.Right.String())
	out.WriteString(")")
	return out.String()
}
func (e *BinaryExpr) Key() string {
	return fmt.Sprintf("Bin(%s,%s,%s)", e.Op, e.Left.Key(), e.Right.Key())
}

// MethodCallExpr invokes a method on an object expression, e.g.
// `buf.borrow(size, index)`.
type MethodCallExpr struct {
	Token  token.Token
	Object Expr
	Method string
	Args   []Expr
}

func (e *MethodCallExpr) exprNode()          {}
func (e *MethodCallExpr) TokenLiteral() string { return e.Token.Literal }
func (e *MethodCallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s.%s(%s)", e.Object.String(), e.Method, strings.Join(args, ", "))
}
func (e *MethodCallExpr) Key() string {
	keys := make([]string, len(e.Args))
	for i, a := range e.Args {
		keys[i] = a.Key()
	}
	return fmt.Sprintf("Method(%s,%s,[%s])", e.Object.Key(), e.Method, strings.Join(keys, ","))
}

// IsEffectless reports whether e is a pure literal or variable reference —
// evaluating it for its side effects alone is a no-op, the condition
// statement simplification uses to collapse a bare ExpressionStatement to
// Noop.
func IsEffectless(e Expr) bool {
	switch e.(type) {
	case *NumberExpr, *StringLiteralExpr, *VariableExpr:
		return true
	default:
		return false
	}
}

// UsedVariables appends to used the name of every VariableExpr reachable
// from e.
func UsedVariables(e Expr, used map[string]bool) {
	switch v := e.(type) {
	case *VariableExpr:
		used[v.Name] = true
	case *CallExpr:
		for _, a := range v.Args {
			UsedVariables(a, used)
		}
	case *ArrayExpr:
		for _, el := range v.Elems {
			UsedVariables(el, used)
		}
	case *BinaryExpr:
		UsedVariables(v.Left, used)
		UsedVariables(v.Right, used)
	case *MethodCallExpr:
		UsedVariables(v.Object, used)
		for _, a := range v.Args {
			UsedVariables(a, used)
		}
	}
}
