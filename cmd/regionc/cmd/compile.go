package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/regionc/regionc/internal/codegen"
	"github.com/regionc/regionc/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	compileVerbose bool
	compileEmit    string
	compileNoTool  bool
	compileContext int
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a region source file to a host-extension module",
	Long: `Compile lexes, parses, cleans up and optimizes, then generates the
text of a host-extension source file for every function in the region.

Examples:
  # Compile and print the generated module to stdout
  regionc compile script.region

  # Compile, writing the generated module to out.go
  regionc compile script.region -o out.go

  # Compile, showing 2 lines of source around each diagnostic
  regionc compile script.region --context 2`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileEmit, "output", "o", "", "write the generated module here instead of stdout")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "print source, tokens, and AST alongside the generated module")
	compileCmd.Flags().BoolVar(&compileNoTool, "no-tooling", false, "skip the external formatter/build-toolchain step")
	compileCmd.Flags().IntVar(&compileContext, "context", 0, "lines of source context to show around each diagnostic (0: single line)")
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	diagnosticContextLines = compileContext
	region, tokens, err := compileRegion(filename)
	if err != nil {
		return err
	}

	if compileVerbose {
		if source, err := readSource(filename); err == nil {
			fmt.Fprintln(os.Stderr, "--- source ---")
			fmt.Fprintln(os.Stderr, source)
		}
		fmt.Fprintln(os.Stderr, "--- tokens ---")
		for _, tok := range tokens {
			fmt.Fprintf(os.Stderr, "%-12s %q\n", tok.Type, tok.Literal)
		}
		fmt.Fprintf(os.Stderr, "  tokens: %d\n", len(tokens))
		fmt.Fprintf(os.Stderr, "  functions: %d\n", len(region.Functions()))
		fmt.Fprintln(os.Stderr, "--- AST ---")
		fmt.Fprintln(os.Stderr, region.String())
		fmt.Fprintln(os.Stderr, "--- generated module ---")
	}

	generated := codegen.Generate(region)

	if compileEmit == "" {
		fmt.Print(generated)
		return nil
	}
	return emitAndTool(filename, compileEmit, generated)
}

// emitAndTool applies the tooling contract (spec.md §6): write the
// generated module to its primary path and a mirror copy in a throwaway
// scaffold directory, format both, then run the scaffold/build toolchain.
// Every step past the initial write is best-effort.
func emitAndTool(sourceFile, outPath, generated string) error {
	if err := os.WriteFile(outPath, []byte(generated), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Printf("Compiled %s -> %s\n", sourceFile, outPath)

	if compileNoTool {
		return nil
	}

	dir, err := os.MkdirTemp("", "regionc-scaffold-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "regionc: failed to create scaffold directory: %v\n", err)
		return nil
	}
	mirror := filepath.Join(dir, filepath.Base(outPath))

	fmtr := scaffold.NewExecFormatter("gofmt", "-w")
	tc := scaffold.NewExecToolchain("go", "go")
	tc.ScaffoldArgs = []string{"mod", "init", "regionc-scaffold"}
	tc.BuildArgs = []string{"build", "./..."}

	scaffold.Run(fmtr, tc, outPath, mirror, dir, []byte(generated))
	return nil
}
