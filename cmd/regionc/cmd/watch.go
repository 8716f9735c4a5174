package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/regionc/regionc/internal/codegen"
	"github.com/spf13/cobra"
)

var watchEmit string

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Recompile a region source file whenever it changes",
	Long: `Watch runs compile once immediately, then again every time the source
file is modified, until interrupted.

Example:
  regionc watch script.region -o out.go`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchEmit, "output", "o", "", "write the generated module here instead of stdout")
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(filename)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	recompile := func() {
		if err := runCompileOnce(filename); err != nil {
			fmt.Fprintf(os.Stderr, "regionc watch: %v\n", err)
		}
	}

	recompile()

	var debounce *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(filename) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(50*time.Millisecond, recompile)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "regionc watch: watcher error: %v\n", err)
		}
	}
}

// runCompileOnce mirrors runCompile's body for a single watch-triggered
// recompilation, reusing the compile flags set for the watch command.
func runCompileOnce(filename string) error {
	region, _, err := compileRegion(filename)
	if err != nil {
		return err
	}
	generated := codegen.Generate(region)

	if watchEmit == "" {
		fmt.Print(generated)
		return nil
	}
	return emitAndTool(filename, watchEmit, generated)
}
