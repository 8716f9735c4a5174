// Package regionfmt parses formatter-directive comments embedded in
// region source files: a line of the form `// regionc:pragma key=value`
// that steers `regionc fmt` (e.g. requesting a particular indent width)
// without growing the region
// language's own grammar to carry formatting concerns.
package regionfmt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// Pragma is one parsed directive.
type Pragma struct {
	Key   string `parser:"@Ident '='"`
	Value string `parser:"@(Ident | Int)"`
}

var parser = participle.MustBuild[Pragma]()

const marker = "regionc:pragma"

// ParseComment extracts a Pragma from a single `//`-prefixed comment line.
// ok is false for any comment that doesn't carry the marker at all; err is
// set when the marker is present but the directive body doesn't parse.
func ParseComment(comment string) (p *Pragma, ok bool, err error) {
	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	if !strings.HasPrefix(body, marker) {
		return nil, false, nil
	}
	rest := strings.TrimSpace(strings.TrimPrefix(body, marker))
	if rest == "" {
		return nil, true, fmt.Errorf("regionfmt: empty pragma directive")
	}
	pragma, perr := parser.ParseString("", rest)
	if perr != nil {
		return nil, true, fmt.Errorf("regionfmt: malformed pragma %q: %w", rest, perr)
	}
	return pragma, true, nil
}

// Directives scans every line of source for a `// regionc:pragma` comment
// and returns each one parsed, in source order. A malformed directive is
// collected into errs rather than aborting the scan — a bad pragma
// comment should never block formatting the file it annotates.
func Directives(source string) (pragmas []*Pragma, errs []error) {
	for _, line := range strings.Split(source, "\n") {
		idx := strings.Index(line, "//")
		if idx < 0 {
			continue
		}
		p, ok, err := ParseComment(line[idx:])
		if !ok {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pragmas = append(pragmas, p)
	}
	return pragmas, errs
}

// IndentWidth looks up an "indent" pragma among pragmas, returning it and
// true if present and a valid non-negative integer.
func IndentWidth(pragmas []*Pragma) (int, bool) {
	for _, p := range pragmas {
		if p.Key != "indent" {
			continue
		}
		n, err := strconv.Atoi(p.Value)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// defaultIndent is the width ast.Region.String() itself nests blocks at.
const defaultIndent = 2

// Reindent rewrites canonical's leading whitespace from the default
// two-space nesting ast.Region.String() produces to width spaces per
// level, honoring a file's "indent" pragma without teaching the AST
// printer itself about variable indent width.
func Reindent(canonical string, width int) string {
	if width == defaultIndent {
		return canonical
	}
	lines := strings.Split(canonical, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		leading := len(line) - len(trimmed)
		level := leading / defaultIndent
		lines[i] = strings.Repeat(" ", level*width) + trimmed
	}
	return strings.Join(lines, "\n")
}
