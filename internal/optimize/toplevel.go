package optimize

import "github.com/regionc/regionc/internal/ast"

// LiftTopLevel collects every bare Statement sitting directly in region's
// body into a synthesized parameterless function named "main", appended as
// the region's last function. It runs once, before the per-function pass
// loop, never repeated.
func LiftTopLevel(region *ast.Region) {
	var loose []ast.Statement
	var functions []ast.RegionItem

	for _, item := range region.Items {
		if stmt, ok := item.(ast.Statement); ok {
			loose = append(loose, stmt)
			continue
		}
		functions = append(functions, item)
	}

	if len(loose) == 0 {
		return
	}

	main := &ast.Function{Name: "main", Body: loose}
	region.Items = append(functions, main)
}
