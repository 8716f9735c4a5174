package optimize

import (
	"fmt"
	"sort"

	"github.com/regionc/regionc/internal/ast"
	"github.com/regionc/regionc/internal/errors"
	"github.com/regionc/regionc/internal/token"
)

// UseDefAndUnused implements the specification's paired use/def analysis
// and unused-variable rewriting steps: it computes which names are
// declared and which are used across the whole function (including nested
// blocks and a ForLoop's init/update), reports every used-but-undeclared
// name as a diagnostic, and rewrites every declared-but-unused Let or
// Assignment to a bare ExpressionStatement so the initializer's side
// effects survive.
type UseDefAndUnused struct{}

func (UseDefAndUnused) Name() string { return "use-def-and-unused" }

// Check computes the undeclared-variable diagnostics for fn. filename and
// source are carried through for error rendering.
func (UseDefAndUnused) Check(fn *ast.Function, filename, source string) []*errors.CompilerError {
	declared := map[string]bool{}
	for _, p := range fn.Params {
		declared[p.Name] = true
	}
	collectDeclared(fn.Body, declared)

	used := map[string]token.Position{}
	collectUsedWithPos(fn.Body, used)

	var undeclaredNames []string
	for name := range used {
		if !declared[name] {
			undeclaredNames = append(undeclaredNames, name)
		}
	}
	sort.Strings(undeclaredNames)

	diags := make([]*errors.CompilerError, 0, len(undeclaredNames))
	for _, name := range undeclaredNames {
		pos := used[name]
		diags = append(diags, errors.NewCompilerError(pos, fmt.Sprintf("undeclared variable: %s", name), source, filename))
	}
	return diags
}

// RunFunction rewrites declared-but-unused Let/Assignment statements to
// ExpressionStatements. It satisfies Pass so it still participates in the
// generic three-round loop; Check must be called separately (by the
// Pipeline) because it needs filename/source for diagnostics.
func (UseDefAndUnused) RunFunction(fn *ast.Function) bool {
	declared := map[string]bool{}
	for _, p := range fn.Params {
		declared[p.Name] = true
	}
	collectDeclared(fn.Body, declared)

	used := map[string]bool{}
	collectUsed(fn.Body, used)

	unused := map[string]bool{}
	for name := range declared {
		if !used[name] {
			unused[name] = true
		}
	}
	if len(unused) == 0 {
		return false
	}

	body, changed := rewriteUnusedBlock(fn.Body, unused)
	fn.Body = body
	return changed
}

func collectDeclared(body []ast.Statement, declared map[string]bool) {
	for _, s := range body {
		switch v := s.(type) {
		case *ast.LetStatement:
			declared[v.Name] = true
		case *ast.Assignment:
			declared[v.Name] = true
		case *ast.IfStatement:
			collectDeclared(v.Body, declared)
		case *ast.IfElseStatement:
			collectDeclared(v.Then, declared)
			collectDeclared(v.Else, declared)
		case *ast.ForStatement:
			collectDeclared([]ast.Statement{v.Init}, declared)
			collectDeclared([]ast.Statement{v.Update}, declared)
			collectDeclared(v.Body, declared)
		}
	}
}

func collectUsed(body []ast.Statement, used map[string]bool) {
	pos := map[string]token.Position{}
	collectUsedWithPos(body, pos)
	for name := range pos {
		used[name] = true
	}
}

func collectUsedWithPos(body []ast.Statement, used map[string]token.Position) {
	note := func(e ast.Expr) {
		names := map[string]bool{}
		ast.UsedVariables(e, names)
		for name := range names {
			if _, seen := used[name]; !seen {
				used[name] = firstVariablePosition(e, name)
			}
		}
	}

	for _, s := range body {
		switch v := s.(type) {
		case *ast.LetStatement:
			note(v.Value)
		case *ast.Assignment:
			note(v.Value)
		case *ast.ReturnStatement:
			note(v.Value)
		case *ast.ExpressionStatement:
			note(v.Value)
		case *ast.CallStatement:
			for _, a := range v.Args {
				note(a)
			}
		case *ast.IfStatement:
			note(v.Cond)
			collectUsedWithPos(v.Body, used)
		case *ast.IfElseStatement:
			note(v.Cond)
			collectUsedWithPos(v.Then, used)
			collectUsedWithPos(v.Else, used)
		case *ast.ForStatement:
			collectUsedWithPos([]ast.Statement{v.Init}, used)
			note(v.Cond)
			collectUsedWithPos([]ast.Statement{v.Update}, used)
			collectUsedWithPos(v.Body, used)
		}
	}
}

// firstVariablePosition finds the token position of name's first
// occurrence within e, for error reporting.
func firstVariablePosition(e ast.Expr, name string) token.Position {
	var pos token.Position
	var find func(ast.Expr) bool
	find = func(e ast.Expr) bool {
		switch v := e.(type) {
		case *ast.VariableExpr:
			if v.Name == name {
				pos = v.Token.Pos
				return true
			}
		case *ast.CallExpr:
			for _, a := range v.Args {
				if find(a) {
					return true
				}
			}
		case *ast.ArrayExpr:
			for _, el := range v.Elems {
				if find(el) {
					return true
				}
			}
		case *ast.BinaryExpr:
			if find(v.Left) || find(v.Right) {
				return true
			}
		case *ast.MethodCallExpr:
			if find(v.Object) {
				return true
			}
			for _, a := range v.Args {
				if find(a) {
					return true
				}
			}
		}
		return false
	}
	find(e)
	return pos
}

func rewriteUnusedBlock(body []ast.Statement, unused map[string]bool) ([]ast.Statement, bool) {
	changed := false
	for i, s := range body {
		ns, ch := rewriteUnusedStatement(s, unused)
		if ch {
			changed = true
		}
		body[i] = ns
	}
	return body, changed
}

func rewriteUnusedStatement(s ast.Statement, unused map[string]bool) (ast.Statement, bool) {
	switch v := s.(type) {
	case *ast.LetStatement:
		if unused[v.Name] {
			return &ast.ExpressionStatement{Token: v.Token, Value: v.Value}, true
		}
		return v, false
	case *ast.Assignment:
		if unused[v.Name] {
			return &ast.ExpressionStatement{Token: v.Token, Value: v.Value}, true
		}
		return v, false
	case *ast.IfStatement:
		body, ch := rewriteUnusedBlock(v.Body, unused)
		v.Body = body
		return v, ch
	case *ast.IfElseStatement:
		then, ch1 := rewriteUnusedBlock(v.Then, unused)
		els, ch2 := rewriteUnusedBlock(v.Else, unused)
		v.Then = then
		v.Else = els
		return v, ch1 || ch2
	case *ast.ForStatement:
		init, ch0 := rewriteUnusedStatement(v.Init, unused)
		v.Init = init
		update, ch1 := rewriteUnusedStatement(v.Update, unused)
		v.Update = update
		body, ch2 := rewriteUnusedBlock(v.Body, unused)
		v.Body = body
		return v, ch0 || ch1 || ch2
	default:
		return s, false
	}
}
