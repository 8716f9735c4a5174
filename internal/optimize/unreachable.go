package optimize

import "github.com/regionc/regionc/internal/ast"

// EliminateUnreachable drops every statement strictly after the first
// statement in a block that unconditionally returns. It recurses into
// every nested block — If/IfElse arms and ForLoop bodies — so dead code
// buried inside a branch or loop is trimmed too.
type EliminateUnreachable struct{}

func (EliminateUnreachable) Name() string { return "eliminate-unreachable" }

func (EliminateUnreachable) RunFunction(fn *ast.Function) bool {
	body, changed := trimBlock(fn.Body)
	fn.Body = body
	return changed
}

func trimBlock(body []ast.Statement) ([]ast.Statement, bool) {
	changed := false
	for _, s := range body {
		if recurseIntoNestedBlocks(s) {
			changed = true
		}
	}
	for i, s := range body {
		if ast.Returns(s) {
			if i+1 < len(body) {
				body = body[:i+1]
				changed = true
			}
			break
		}
	}
	return body, changed
}

func recurseIntoNestedBlocks(s ast.Statement) bool {
	switch v := s.(type) {
	case *ast.IfStatement:
		body, changed := trimBlock(v.Body)
		v.Body = body
		return changed
	case *ast.IfElseStatement:
		then, changed1 := trimBlock(v.Then)
		els, changed2 := trimBlock(v.Else)
		v.Then = then
		v.Else = els
		return changed1 || changed2
	case *ast.ForStatement:
		body, changed := trimBlock(v.Body)
		v.Body = body
		return changed
	}
	return false
}
