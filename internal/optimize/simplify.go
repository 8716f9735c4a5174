package optimize

import "github.com/regionc/regionc/internal/ast"

// SimplifyStatements combines the specification's statement simplification
// and expression simplification steps: it recursively walks every
// statement, folds constants and algebraic identities in every expression
// it contains, and collapses an effectless expression statement
// (a bare number, string, or variable reference) to a Noop.
type SimplifyStatements struct{}

func (SimplifyStatements) Name() string { return "simplify-statements" }

func (SimplifyStatements) RunFunction(fn *ast.Function) bool {
	body, changed := simplifyBlock(fn.Body)
	fn.Body = body
	return changed
}

func simplifyBlock(body []ast.Statement) ([]ast.Statement, bool) {
	changed := false
	for i, s := range body {
		ns, ch := simplifyStatement(s)
		if ch {
			changed = true
		}
		body[i] = ns
	}
	return body, changed
}

func simplifyStatement(s ast.Statement) (ast.Statement, bool) {
	changed := false
	switch v := s.(type) {
	case *ast.ExpressionStatement:
		nv := simplifyExpr(v.Value)
		if nv != v.Value {
			changed = true
		}
		v.Value = nv
		if ast.IsEffectless(v.Value) {
			return &ast.Noop{Token: v.Token}, true
		}
		return v, changed

	case *ast.LetStatement:
		nv := simplifyExpr(v.Value)
		if nv != v.Value {
			changed = true
		}
		v.Value = nv
		return v, changed

	case *ast.Assignment:
		nv := simplifyExpr(v.Value)
		if nv != v.Value {
			changed = true
		}
		v.Value = nv
		return v, changed

	case *ast.ReturnStatement:
		nv := simplifyExpr(v.Value)
		if nv != v.Value {
			changed = true
		}
		v.Value = nv
		return v, changed

	case *ast.CallStatement:
		for i := range v.Args {
			nv := simplifyExpr(v.Args[i])
			if nv != v.Args[i] {
				changed = true
			}
			v.Args[i] = nv
		}
		return v, changed

	case *ast.IfStatement:
		nc := simplifyExpr(v.Cond)
		if nc != v.Cond {
			changed = true
		}
		v.Cond = nc
		body, ch := simplifyBlock(v.Body)
		v.Body = body
		return v, changed || ch

	case *ast.IfElseStatement:
		nc := simplifyExpr(v.Cond)
		if nc != v.Cond {
			changed = true
		}
		v.Cond = nc
		then, ch1 := simplifyBlock(v.Then)
		els, ch2 := simplifyBlock(v.Else)
		v.Then = then
		v.Else = els
		return v, changed || ch1 || ch2

	case *ast.ForStatement:
		init, ch0 := simplifyStatement(v.Init)
		v.Init = init
		nc := simplifyExpr(v.Cond)
		if nc != v.Cond {
			changed = true
		}
		v.Cond = nc
		update, ch1 := simplifyStatement(v.Update)
		v.Update = update
		body, ch2 := simplifyBlock(v.Body)
		v.Body = body
		return v, changed || ch0 || ch1 || ch2

	default:
		return s, false
	}
}

// simplifyExpr recursively folds constants and algebraic identities,
// post-order so that nested constant subexpressions fold before their
// parent is examined.
func simplifyExpr(e ast.Expr) ast.Expr {
	switch v := e.(type) {
	case *ast.BinaryExpr:
		v.Left = simplifyExpr(v.Left)
		v.Right = simplifyExpr(v.Right)
		return foldBinary(v)
	case *ast.CallExpr:
		for i := range v.Args {
			v.Args[i] = simplifyExpr(v.Args[i])
		}
		return v
	case *ast.MethodCallExpr:
		v.Object = simplifyExpr(v.Object)
		for i := range v.Args {
			v.Args[i] = simplifyExpr(v.Args[i])
		}
		return v
	case *ast.ArrayExpr:
		for i := range v.Elems {
			v.Elems[i] = simplifyExpr(v.Elems[i])
		}
		return v
	default:
		return e
	}
}

func foldBinary(b *ast.BinaryExpr) ast.Expr {
	ln, lok := b.Left.(*ast.NumberExpr)
	rn, rok := b.Right.(*ast.NumberExpr)

	if lok && rok {
		switch b.Op {
		case ast.Add:
			return &ast.NumberExpr{Token: b.Token, Value: ln.Value + rn.Value}
		case ast.Mult:
			return &ast.NumberExpr{Token: b.Token, Value: ln.Value * rn.Value}
		case ast.LessThan:
			if ln.Value < rn.Value {
				return &ast.NumberExpr{Token: b.Token, Value: 1}
			}
			return &ast.NumberExpr{Token: b.Token, Value: 0}
		}
	}

	switch b.Op {
	case ast.Add:
		if rok && rn.Value == 0 {
			return b.Left
		}
		if lok && ln.Value == 0 {
			return b.Right
		}
	case ast.Mult:
		if (rok && rn.Value == 0) || (lok && ln.Value == 0) {
			return &ast.NumberExpr{Token: b.Token, Value: 0}
		}
		if rok && rn.Value == 1 {
			return b.Left
		}
		if lok && ln.Value == 1 {
			return b.Right
		}
	}

	return b
}
