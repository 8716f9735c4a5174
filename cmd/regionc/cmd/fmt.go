package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/regionc/regionc/internal/ast"
	"github.com/regionc/regionc/internal/lexer"
	"github.com/regionc/regionc/internal/parser"
	"github.com/regionc/regionc/internal/regionfmt"
	"github.com/spf13/cobra"
)

var (
	fmtWrite bool // -w: write result back to the source file instead of stdout
	fmtList  bool // -l: list files whose formatting differs from the canonical print
	fmtDiff  bool // -d: display diffs instead of rewriting files
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Re-print region source files in canonical form",
	Long: `Format parses region-language source into its AST and re-prints it in
canonical form, one statement per line with consistent indentation.

A "// regionc:pragma indent=N" comment anywhere in the file overrides the
default indent width for that file.

Usage:
  regionc fmt file.region         # print canonical form to stdout
  regionc fmt -w file.region      # overwrite the file in place
  regionc fmt -l file.region      # list files that would change
  regionc fmt -d file.region      # show a diff instead of rewriting`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmtCmd,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to (source) file instead of stdout")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "display diffs instead of rewriting files")
}

func runFmtCmd(_ *cobra.Command, args []string) error {
	if fmtWrite && fmtList {
		return fmt.Errorf("cannot use -w and -l together")
	}
	if fmtWrite && fmtDiff {
		return fmt.Errorf("cannot use -w and -d together")
	}

	hasErrors := false
	for _, path := range args {
		if err := formatFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "regionc: %s: %v\n", path, err)
			hasErrors = true
		}
	}
	if hasErrors {
		return fmt.Errorf("formatting failed for one or more files")
	}
	return nil
}

func formatFile(path string) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}

	pragmas, pragmaErrs := regionfmt.Directives(source)
	for _, perr := range pragmaErrs {
		fmt.Fprintf(os.Stderr, "regionc: %s: %v\n", path, perr)
	}

	region, err := formatParse(path, source)
	if err != nil {
		return err
	}
	formatted := region.String()
	if width, ok := regionfmt.IndentWidth(pragmas); ok {
		formatted = regionfmt.Reindent(formatted, width)
	}

	switch {
	case fmtList:
		if formatted != source {
			fmt.Println(path)
		}
		return nil
	case fmtDiff:
		if formatted != source {
			showDiff(path, source, formatted)
		}
		return nil
	case fmtWrite:
		if formatted == source {
			return nil
		}
		return os.WriteFile(path, []byte(formatted), 0o644)
	default:
		fmt.Print(formatted)
		return nil
	}
}

func formatParse(filename, source string) (*ast.Region, error) {
	l := lexer.New(filename, source)
	tokens := l.All()
	if errs := l.Errors(); len(errs) != 0 {
		return nil, fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return parser.ParseRegion(tokens)
}

// showDiff prints a minimal unified-style line diff; it is a debugging
// convenience, not a drop-in replacement for a real diff algorithm.
func showDiff(path, before, after string) {
	fmt.Printf("--- %s (original)\n+++ %s (formatted)\n", path, path)
	beforeLines := bytes.Split([]byte(before), []byte("\n"))
	afterLines := bytes.Split([]byte(after), []byte("\n"))
	max := len(beforeLines)
	if len(afterLines) > max {
		max = len(afterLines)
	}
	for i := 0; i < max; i++ {
		var b, a []byte
		if i < len(beforeLines) {
			b = beforeLines[i]
		}
		if i < len(afterLines) {
			a = afterLines[i]
		}
		if bytes.Equal(b, a) {
			continue
		}
		if i < len(beforeLines) {
			fmt.Printf("-%s\n", b)
		}
		if i < len(afterLines) {
			fmt.Printf("+%s\n", a)
		}
	}
}
