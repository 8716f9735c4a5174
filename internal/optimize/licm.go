package optimize

import (
	"fmt"

	"github.com/regionc/regionc/internal/ast"
)

// HoistLoopInvariants moves a pure arithmetic subexpression that doesn't
// depend on anything the loop changes to a synthesized let just before the
// loop, so it is computed once instead of once per iteration. Like CSE,
// candidates are restricted to BinaryExpr: a call's value could differ on
// every iteration even with the same arguments, so it is never a hoist
// candidate.
type HoistLoopInvariants struct{}

func (HoistLoopInvariants) Name() string { return "hoist-loop-invariants" }

func (HoistLoopInvariants) RunFunction(fn *ast.Function) bool {
	counter := 0
	body, changed := licmBlock(fn.Body, &counter)
	fn.Body = body
	return changed
}

func licmBlock(body []ast.Statement, counter *int) ([]ast.Statement, bool) {
	changed := false
	out := make([]ast.Statement, 0, len(body))
	for _, s := range body {
		switch v := s.(type) {
		case *ast.ForStatement:
			hoisted, loop, ch := licmFor(v, counter)
			if ch {
				changed = true
			}
			out = append(out, hoisted...)
			out = append(out, loop)
		case *ast.IfStatement:
			nb, ch := licmBlock(v.Body, counter)
			v.Body = nb
			changed = changed || ch
			out = append(out, v)
		case *ast.IfElseStatement:
			nt, ch1 := licmBlock(v.Then, counter)
			ne, ch2 := licmBlock(v.Else, counter)
			v.Then, v.Else = nt, ne
			changed = changed || ch1 || ch2
			out = append(out, v)
		default:
			out = append(out, s)
		}
	}
	return out, changed
}

// licmFor hoists invariants out of a single ForLoop, returning the
// statements to splice in immediately before it.
func licmFor(f *ast.ForStatement, counter *int) ([]ast.Statement, *ast.ForStatement, bool) {
	modified := map[string]bool{}
	collectModified(f.Init, modified)
	collectModified(f.Update, modified)
	collectModifiedBlock(f.Body, modified)

	var hoisted []ast.Statement
	changed := false
	keyToTemp := map[string]string{}

	var rewriteExpr func(e ast.Expr) ast.Expr
	rewriteExpr = func(e ast.Expr) ast.Expr {
		switch v := e.(type) {
		case *ast.BinaryExpr:
			v.Left = rewriteExpr(v.Left)
			v.Right = rewriteExpr(v.Right)
			if isLoopInvariant(v, modified) {
				key := v.Key()
				name, ok := keyToTemp[key]
				if !ok {
					name = fmt.Sprintf("__temp_%d", *counter)
					*counter++
					keyToTemp[key] = name
					hoisted = append(hoisted, &ast.LetStatement{Token: v.Token, Name: name, Value: v})
					changed = true
				}
				return &ast.VariableExpr{Token: v.Token, Name: name}
			}
			return v
		case *ast.CallExpr:
			for i := range v.Args {
				v.Args[i] = rewriteExpr(v.Args[i])
			}
			return v
		case *ast.MethodCallExpr:
			v.Object = rewriteExpr(v.Object)
			for i := range v.Args {
				v.Args[i] = rewriteExpr(v.Args[i])
			}
			return v
		case *ast.ArrayExpr:
			for i := range v.Elems {
				v.Elems[i] = rewriteExpr(v.Elems[i])
			}
			return v
		default:
			return e
		}
	}

	var rewriteBlock func(b []ast.Statement) []ast.Statement
	var rewriteStatement func(s ast.Statement) ast.Statement
	rewriteStatement = func(s ast.Statement) ast.Statement {
		switch v := s.(type) {
		case *ast.LetStatement:
			v.Value = rewriteExpr(v.Value)
			return v
		case *ast.Assignment:
			v.Value = rewriteExpr(v.Value)
			return v
		case *ast.ReturnStatement:
			v.Value = rewriteExpr(v.Value)
			return v
		case *ast.ExpressionStatement:
			v.Value = rewriteExpr(v.Value)
			return v
		case *ast.CallStatement:
			for i := range v.Args {
				v.Args[i] = rewriteExpr(v.Args[i])
			}
			return v
		case *ast.IfStatement:
			v.Cond = rewriteExpr(v.Cond)
			v.Body = rewriteBlock(v.Body)
			return v
		case *ast.IfElseStatement:
			v.Cond = rewriteExpr(v.Cond)
			v.Then = rewriteBlock(v.Then)
			v.Else = rewriteBlock(v.Else)
			return v
		case *ast.ForStatement:
			// Left for the recursive licmBlock pass below, which treats it
			// as its own hoisting scope with its own modified set.
			return v
		default:
			return s
		}
	}
	rewriteBlock = func(b []ast.Statement) []ast.Statement {
		for i := range b {
			b[i] = rewriteStatement(b[i])
		}
		return b
	}

	f.Cond = rewriteExpr(f.Cond)
	f.Body = rewriteBlock(f.Body)

	nb, ch2 := licmBlock(f.Body, counter)
	f.Body = nb
	changed = changed || ch2

	return hoisted, f, changed
}

// isLoopInvariant reports whether e's value cannot change across loop
// iterations: every variable it reads lies outside the set the loop
// modifies, and it contains no call.
func isLoopInvariant(e *ast.BinaryExpr, modified map[string]bool) bool {
	if hasCall(e) {
		return false
	}
	used := map[string]bool{}
	ast.UsedVariables(e, used)
	for name := range used {
		if modified[name] {
			return false
		}
	}
	return true
}

func collectModified(s ast.Statement, modified map[string]bool) {
	switch v := s.(type) {
	case *ast.LetStatement:
		modified[v.Name] = true
	case *ast.Assignment:
		modified[v.Name] = true
	case *ast.IfStatement:
		collectModifiedBlock(v.Body, modified)
	case *ast.IfElseStatement:
		collectModifiedBlock(v.Then, modified)
		collectModifiedBlock(v.Else, modified)
	case *ast.ForStatement:
		collectModified(v.Init, modified)
		collectModified(v.Update, modified)
		collectModifiedBlock(v.Body, modified)
	}
}

func collectModifiedBlock(body []ast.Statement, modified map[string]bool) {
	for _, s := range body {
		collectModified(s, modified)
	}
}
