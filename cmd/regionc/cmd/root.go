package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "regionc",
	Short: "Compiler for the region language",
	Long: `regionc compiles region-language source into a native extension
module for a host scripting runtime, backed by a borrow-checked Buffer/Byte
runtime library.

Regions group functions that operate on explicitly allocated, freed, and
borrowed byte buffers. The compiler lexes, parses, cleans up and optimizes
the AST, then emits a host-extension source file per region.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
