package ast

import (
	"testing"

	"github.com/regionc/regionc/internal/token"
)

func tok(tt token.Type, lit string) token.Token {
	return token.New(tt, lit, token.Position{Filename: "t.rgn", Line: 1, Column: 1})
}

func TestRegionString(t *testing.T) {
	r := &Region{
		Token: tok(token.REGION, "region"),
		Name:  "DataManagement",
		Items: []RegionItem{
			&Function{
				Token: tok(token.FN, "fn"),
				Name:  "main",
				Body: []Statement{
					&ReturnStatement{Token: tok(token.RETURN, "return"), Value: &NumberExpr{Value: 0}},
				},
			},
		},
	}
	if r.TokenLiteral() != "region" {
		t.Errorf("TokenLiteral() = %q, want %q", r.TokenLiteral(), "region")
	}
	want := "region DataManagement {\n  fn main() {\n    return 0\n  }\n}"
	if r.String() != want {
		t.Errorf("String() =\n%q\nwant\n%q", r.String(), want)
	}
	if got := len(r.Functions()); got != 1 {
		t.Fatalf("Functions() returned %d, want 1", got)
	}
}

func TestExprKeyStructuralEquality(t *testing.T) {
	a := &BinaryExpr{
		Left:  &VariableExpr{Name: "x"},
		Op:    Add,
		Right: &NumberExpr{Value: 1},
	}
	b := &BinaryExpr{
		Token: tok(token.PLUS, "+"), // position/token data must not affect Key
		Left:  &VariableExpr{Token: tok(token.IDENT, "x"), Name: "x"},
		Op:    Add,
		Right: &NumberExpr{Token: tok(token.NUMBER, "1"), Value: 1},
	}
	if a.Key() != b.Key() {
		t.Errorf("structurally identical expressions have different keys: %q vs %q", a.Key(), b.Key())
	}

	c := &BinaryExpr{Left: &VariableExpr{Name: "x"}, Op: Mult, Right: &NumberExpr{Value: 1}}
	if a.Key() == c.Key() {
		t.Errorf("expressions differing by operator collided on key %q", a.Key())
	}
}

func TestExprKeyDistinguishesCallArgOrder(t *testing.T) {
	call1 := &CallExpr{Name: "f", Args: []Expr{&NumberExpr{Value: 1}, &NumberExpr{Value: 2}}}
	call2 := &CallExpr{Name: "f", Args: []Expr{&NumberExpr{Value: 2}, &NumberExpr{Value: 1}}}
	if call1.Key() == call2.Key() {
		t.Errorf("calls with swapped argument values should not collide: %q", call1.Key())
	}
}

func TestIsEffectless(t *testing.T) {
	cases := []struct {
		name string
		expr Expr
		want bool
	}{
		{"number", &NumberExpr{Value: 1}, true},
		{"string", &StringLiteralExpr{Value: "s"}, true},
		{"variable", &VariableExpr{Name: "x"}, true},
		{"call", &CallExpr{Name: "f"}, false},
		{"binary", &BinaryExpr{Left: &NumberExpr{Value: 1}, Op: Add, Right: &NumberExpr{Value: 2}}, false},
	}
	for _, c := range cases {
		if got := IsEffectless(c.expr); got != c.want {
			t.Errorf("%s: IsEffectless() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestUsedVariables(t *testing.T) {
	e := &BinaryExpr{
		Left:  &VariableExpr{Name: "a"},
		Op:    Add,
		Right: &CallExpr{Name: "f", Args: []Expr{&VariableExpr{Name: "b"}, &NumberExpr{Value: 1}}},
	}
	used := map[string]bool{}
	UsedVariables(e, used)
	for _, name := range []string{"a", "b"} {
		if !used[name] {
			t.Errorf("expected %q in used set, got %v", name, used)
		}
	}
	if len(used) != 2 {
		t.Errorf("expected exactly 2 used variables, got %d: %v", len(used), used)
	}
}

func TestReturnsPropagatesThroughIfElse(t *testing.T) {
	ret := &ReturnStatement{Value: &NumberExpr{Value: 0}}
	ifElse := &IfElseStatement{
		Cond: &VariableExpr{Name: "c"},
		Then: []Statement{ret},
		Else: []Statement{ret},
	}
	if !Returns(ifElse) {
		t.Errorf("IfElse with both arms returning should Return() == true")
	}

	ifElseNoElse := &IfElseStatement{
		Cond: &VariableExpr{Name: "c"},
		Then: []Statement{ret},
		Else: []Statement{&ExpressionStatement{Value: &NumberExpr{Value: 1}}},
	}
	if Returns(ifElseNoElse) {
		t.Errorf("IfElse where only one arm returns should Return() == false")
	}

	plainIf := &IfStatement{Cond: &VariableExpr{Name: "c"}, Body: []Statement{ret}}
	if Returns(plainIf) {
		t.Errorf("a plain If never trivially returns")
	}
}

func TestLookupBinOp(t *testing.T) {
	cases := map[string]BinOp{"+": Add, "-": Sub, "*": Mult, "/": Div, "<": LessThan, ">": GreaterThan, "<=": LessEq, ">=": GreaterEq}
	for sym, want := range cases {
		got, ok := LookupBinOp(sym)
		if !ok || got != want {
			t.Errorf("LookupBinOp(%q) = (%v, %v), want (%v, true)", sym, got, ok, want)
		}
	}
	if _, ok := LookupBinOp("??"); ok {
		t.Errorf("LookupBinOp(\"??\") should fail")
	}
}
