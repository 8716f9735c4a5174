package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var astSkipOptimize bool

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Parse a region source file and print its AST",
	Long: `Parse region-language source and print the Abstract Syntax Tree.

By default the tree printed is post-cleanup: top-level statements lifted
into main, return-normalized, dead code removed, constants folded,
common subexpressions and loop invariants hoisted. Use --no-optimize to
see the AST exactly as the parser produced it.`,
	Args: cobra.ExactArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)

	astCmd.Flags().BoolVar(&astSkipOptimize, "no-optimize", false, "print the AST before cleanup/optimization")
}

func runAST(_ *cobra.Command, args []string) error {
	filename := args[0]

	if astSkipOptimize {
		source, err := readSource(filename)
		if err != nil {
			return err
		}
		tokens, err := lexSource(filename, source)
		if err != nil {
			return err
		}
		region, err := parseSource(tokens)
		if err != nil {
			return err
		}
		fmt.Println(region.String())
		return nil
	}

	region, _, err := compileRegion(filename)
	if err != nil {
		return err
	}
	fmt.Println(region.String())
	return nil
}
