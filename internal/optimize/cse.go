package optimize

import "github.com/regionc/regionc/internal/ast"

// binding records that, at this point in the walk, variable Name holds the
// value of Expr.
type binding struct {
	Name string
	Expr ast.Expr
}

// subexprGraph is the ordered "current value of variable" table CSE walks
// forward over a block. Branches clone it so CSE state never leaks between
// If/IfElse arms or across a ForLoop's body and its surrounding code, and
// every variable an If/IfElse/ForLoop assigns is invalidated in the outer
// table (before a loop, after a branch).
type subexprGraph struct {
	bindings []binding
}

func newSubexprGraph() *subexprGraph { return &subexprGraph{} }

func (g *subexprGraph) clone() *subexprGraph {
	return &subexprGraph{bindings: append([]binding(nil), g.bindings...)}
}

// current returns the most recently appended binding for name, if any.
func (g *subexprGraph) current(name string) (binding, bool) {
	for i := len(g.bindings) - 1; i >= 0; i-- {
		if g.bindings[i].Name == name {
			return g.bindings[i], true
		}
	}
	return binding{}, false
}

// lookupByKey returns the most recently bound variable whose recorded
// expression has the given structural key.
func (g *subexprGraph) lookupByKey(key string) (string, bool) {
	for i := len(g.bindings) - 1; i >= 0; i-- {
		if g.bindings[i].Expr.Key() == key {
			return g.bindings[i].Name, true
		}
	}
	return "", false
}

// invalidate drops the entry for name and every entry whose recorded
// expression transitively uses name, per a reassignment of name.
func (g *subexprGraph) invalidate(name string) {
	kept := g.bindings[:0:0]
	for _, b := range g.bindings {
		if b.Name == name {
			continue
		}
		used := map[string]bool{}
		ast.UsedVariables(b.Expr, used)
		if used[name] {
			continue
		}
		kept = append(kept, b)
	}
	g.bindings = kept
}

func (g *subexprGraph) append(name string, e ast.Expr) {
	g.bindings = append(g.bindings, binding{Name: name, Expr: e})
}

// EliminateCommonSubexpressions replaces a repeated pure arithmetic
// expression with a reference to the variable already holding that value.
// Matching is restricted to BinaryExpr: calls are never deduplicated,
// because they may be impure — blackbox's whole contract is that the
// optimizer must not elide a call just because an identical one ran
// before.
type EliminateCommonSubexpressions struct{}

func (EliminateCommonSubexpressions) Name() string { return "eliminate-common-subexpressions" }

func (EliminateCommonSubexpressions) RunFunction(fn *ast.Function) bool {
	_, changed := cseBlock(fn.Body, newSubexprGraph())
	return changed
}

func cseBlock(body []ast.Statement, g *subexprGraph) ([]ast.Statement, bool) {
	changed := false
	for i, s := range body {
		ns, ch := cseStatement(s, g)
		if ch {
			changed = true
		}
		body[i] = ns
	}
	return body, changed
}

func cseStatement(s ast.Statement, g *subexprGraph) (ast.Statement, bool) {
	switch v := s.(type) {
	case *ast.LetStatement:
		nv, ch := substituteExpr(v.Value, g)
		v.Value = nv
		g.invalidate(v.Name)
		g.append(v.Name, v.Value)
		return v, ch

	case *ast.Assignment:
		nv, ch := substituteExpr(v.Value, g)
		v.Value = nv
		g.invalidate(v.Name)
		g.append(v.Name, v.Value)
		return v, ch

	case *ast.ReturnStatement:
		nv, ch := substituteExpr(v.Value, g)
		v.Value = nv
		return v, ch

	case *ast.ExpressionStatement:
		nv, ch := substituteExpr(v.Value, g)
		v.Value = nv
		return v, ch

	case *ast.CallStatement:
		changed := false
		for i := range v.Args {
			na, ch := substituteExpr(v.Args[i], g)
			if ch {
				changed = true
			}
			v.Args[i] = na
		}
		return v, changed

	case *ast.IfStatement:
		nc, ch := substituteExpr(v.Cond, g)
		v.Cond = nc
		body, ch2 := cseBlock(v.Body, g.clone())
		v.Body = body
		invalidateModified(v, g)
		return v, ch || ch2

	case *ast.IfElseStatement:
		nc, ch := substituteExpr(v.Cond, g)
		v.Cond = nc
		then, ch1 := cseBlock(v.Then, g.clone())
		els, ch2 := cseBlock(v.Else, g.clone())
		v.Then = then
		v.Else = els
		invalidateModified(v, g)
		return v, ch || ch1 || ch2

	case *ast.ForStatement:
		invalidateModified(v, g)
		nc, chc := substituteExpr(v.Cond, g)
		v.Cond = nc

		clone := g.clone()
		linear := append([]ast.Statement{v.Init, v.Update}, v.Body...)
		newLinear, ch2 := cseBlock(linear, clone)
		v.Init = newLinear[0]
		v.Update = newLinear[1]
		v.Body = newLinear[2:]
		return v, chc || ch2

	default:
		return s, false
	}
}

// invalidateModified drops from g every binding that names or uses a
// variable s assigns anywhere inside it.
func invalidateModified(s ast.Statement, g *subexprGraph) {
	modified := map[string]bool{}
	collectModified(s, modified)
	for name := range modified {
		g.invalidate(name)
	}
}

// hasCall reports whether e contains a function or method call.
func hasCall(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.CallExpr, *ast.MethodCallExpr:
		return true
	case *ast.BinaryExpr:
		return hasCall(v.Left) || hasCall(v.Right)
	case *ast.ArrayExpr:
		for _, el := range v.Elems {
			if hasCall(el) {
				return true
			}
		}
	}
	return false
}

// substituteExpr rewrites e bottom-up: a Variable(x) whose current binding
// is itself a bare Variable(y) resolves to Variable(y) (alias/copy
// propagation), and any call-free BinaryExpr structurally equal to an
// already-bound expression is replaced by a reference to that binding's
// variable.
func substituteExpr(e ast.Expr, g *subexprGraph) (ast.Expr, bool) {
	switch v := e.(type) {
	case *ast.VariableExpr:
		if b, ok := g.current(v.Name); ok {
			if alias, isAlias := b.Expr.(*ast.VariableExpr); isAlias {
				return alias, true
			}
		}
		return v, false

	case *ast.BinaryExpr:
		nl, ch1 := substituteExpr(v.Left, g)
		nr, ch2 := substituteExpr(v.Right, g)
		v.Left, v.Right = nl, nr
		if name, ok := g.lookupByKey(v.Key()); ok && !hasCall(v) {
			return &ast.VariableExpr{Token: v.Token, Name: name}, true
		}
		return v, ch1 || ch2

	case *ast.CallExpr:
		changed := false
		for i := range v.Args {
			na, ch := substituteExpr(v.Args[i], g)
			if ch {
				changed = true
			}
			v.Args[i] = na
		}
		return v, changed

	case *ast.MethodCallExpr:
		changed := false
		no, ch := substituteExpr(v.Object, g)
		v.Object = no
		changed = changed || ch
		for i := range v.Args {
			na, ch := substituteExpr(v.Args[i], g)
			if ch {
				changed = true
			}
			v.Args[i] = na
		}
		return v, changed

	case *ast.ArrayExpr:
		changed := false
		for i := range v.Elems {
			na, ch := substituteExpr(v.Elems[i], g)
			if ch {
				changed = true
			}
			v.Elems[i] = na
		}
		return v, changed

	default:
		return e, false
	}
}
