// Package optimize implements the AST cleanup and optimization passes that
// run between parsing and code generation: top-level lifting, return
// normalization, unreachable-code elimination, statement and expression
// simplification, use/def analysis, unused-variable rewriting, common
// subexpression elimination, and loop-invariant code motion.
package optimize

import "github.com/regionc/regionc/internal/ast"

// Pass is a single function-local optimization pass. RunFunction mutates fn
// in place and reports whether it changed anything, mirroring the named,
// changed-flag-driven passes of a classic optimizer loop.
type Pass interface {
	Name() string
	RunFunction(fn *ast.Function) bool
}
