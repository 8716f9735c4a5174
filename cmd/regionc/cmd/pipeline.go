package cmd

import (
	"fmt"
	"os"

	"github.com/regionc/regionc/internal/ast"
	"github.com/regionc/regionc/internal/errors"
	"github.com/regionc/regionc/internal/lexer"
	"github.com/regionc/regionc/internal/optimize"
	"github.com/regionc/regionc/internal/parser"
	"github.com/regionc/regionc/internal/token"
)

// readSource reads filename, wrapping I/O failure as spec.md §7's
// "I/O error" category.
func readSource(filename string) (string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return string(content), nil
}

// lexSource tokenizes input, reporting any lexical errors in spec.md §7's
// format and returning a non-nil error if there were any.
func lexSource(filename, input string) ([]token.Token, error) {
	l := lexer.New(filename, input)
	tokens := l.All()
	if errs := l.Errors(); len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return nil, fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return tokens, nil
}

// parseSource parses tokens into a single region. spec.md §7's parser
// error has no positional detail beyond "no grammar rule matches" — the
// parser itself reports that.
func parseSource(tokens []token.Token) (*ast.Region, error) {
	return parser.ParseRegion(tokens)
}

// diagnosticContextLines, when positive, asks optimizeRegion to render
// each diagnostic with that many lines of source on either side (set by
// compile's --context flag) instead of the single-line default.
var diagnosticContextLines int

// optimizeRegion runs the cleanup/optimizer pipeline, printing any
// undeclared-variable diagnostics and returning a non-nil error if there
// were any (spec.md §7's "semantic error").
func optimizeRegion(region *ast.Region, filename, source string) error {
	diags := optimize.NewPipeline(filename, source).Run(region)
	if len(diags) == 0 {
		return nil
	}
	if diagnosticContextLines > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrorsWithContext(diags, diagnosticContextLines, true))
	} else {
		fmt.Fprint(os.Stderr, errors.FormatErrors(diags, true))
	}
	return fmt.Errorf("semantic analysis failed with %d error(s)", len(diags))
}

// compileRegion runs the full source-to-region pipeline: read, lex, parse,
// optimize. It is the shared entry point for compile/ast/watch.
func compileRegion(filename string) (*ast.Region, []token.Token, error) {
	source, err := readSource(filename)
	if err != nil {
		return nil, nil, err
	}
	tokens, err := lexSource(filename, source)
	if err != nil {
		return nil, nil, err
	}
	region, err := parseSource(tokens)
	if err != nil {
		return nil, nil, err
	}
	if err := optimizeRegion(region, filename, source); err != nil {
		return nil, nil, err
	}
	return region, tokens, nil
}
