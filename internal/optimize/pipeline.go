package optimize

import (
	"github.com/regionc/regionc/internal/ast"
	"github.com/regionc/regionc/internal/errors"
)

// rounds is how many times the per-function pass sequence repeats. The
// passes aren't guaranteed to converge in general (CSE and LICM can each
// reopen opportunities for the other), so the pipeline settles for a fixed
// number of passes over a true fixed point.
const rounds = 3

// Pipeline runs the full cleanup-and-optimize sequence over a region: top
// level lifting once, then the per-function passes three times each.
type Pipeline struct {
	Filename string
	Source   string

	passes []Pass
}

// NewPipeline builds the pipeline with its passes in specification order.
func NewPipeline(filename, source string) *Pipeline {
	return &Pipeline{
		Filename: filename,
		Source:   source,
		passes: []Pass{
			ReturnNormalize{},
			EliminateUnreachable{},
			SimplifyStatements{},
			UseDefAndUnused{},
			EliminateCommonSubexpressions{},
			HoistLoopInvariants{},
		},
	}
}

// Run lifts top-level statements into main, then applies the per-function
// passes to every function in the region, returning the undeclared-variable
// diagnostics collected along the way (gathered fresh on every round, since
// a variable can become undeclared only after an earlier round rewrites a
// Let into a bare ExpressionStatement).
func (p *Pipeline) Run(region *ast.Region) []*errors.CompilerError {
	LiftTopLevel(region)

	var diags []*errors.CompilerError
	for i := 0; i < rounds; i++ {
		diags = nil
		for _, fn := range region.Functions() {
			for _, pass := range p.passes {
				pass.RunFunction(fn)
			}
			diags = append(diags, UseDefAndUnused{}.Check(fn, p.Filename, p.Source)...)
		}
	}
	return diags
}
