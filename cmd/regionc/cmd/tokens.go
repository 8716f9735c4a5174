package cmd

import (
	"fmt"

	"github.com/regionc/regionc/internal/token"
	"github.com/spf13/cobra"
)

var tokensShowPos bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a region source file and print the resulting tokens",
	Long: `Tokenize (lex) a region-language source file and print the resulting
token stream, one token per line. Useful for debugging the lexer.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().BoolVar(&tokensShowPos, "show-pos", false, "show each token's line:column")
}

func runTokens(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := readSource(filename)
	if err != nil {
		return err
	}
	tokens, err := lexSource(filename, source)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		printToken(tok)
	}
	return nil
}

func printToken(tok token.Token) {
	literal := tok.Literal
	if literal == "" {
		literal = "<none>"
	}
	if tokensShowPos {
		fmt.Printf("%-12s %-20q @%d:%d\n", tok.Type, literal, tok.Pos.Line, tok.Pos.Column)
		return
	}
	fmt.Printf("%-12s %q\n", tok.Type, literal)
}
