package optimize

import "github.com/regionc/regionc/internal/ast"

// ReturnNormalize appends `return uninitialized` to a function body that
// does not already end in a returning statement. It is idempotent: once a
// body ends in Return (or an IfElse whose every arm returns), rerunning it
// is a no-op, which is what lets the optimizer's three-round loop reach a
// fixed point.
type ReturnNormalize struct{}

func (ReturnNormalize) Name() string { return "return-normalize" }

func (ReturnNormalize) RunFunction(fn *ast.Function) bool {
	if len(fn.Body) > 0 && ast.Returns(fn.Body[len(fn.Body)-1]) {
		return false
	}
	fn.Body = append(fn.Body, &ast.ReturnStatement{Value: &ast.UninitializedExpr{}})
	return true
}
