// Package scaffold specifies, at interface depth, the two external
// collaborators spec.md §1 and §6 keep out of the compiler's core: an
// external code formatter run on the two emitted output paths, and the
// external scaffold/build toolchain that turns the generated source into
// a loadable extension. Both are best-effort: their failure never
// invalidates the emitted code or changes the driver's exit status.
package scaffold

import (
	"fmt"
	"os"
	"os/exec"
)

// Formatter runs an external code formatter over the file at path,
// in place.
type Formatter interface {
	Format(path string) error
}

// Toolchain prepares a throwaway build directory for the generated
// extension module and runs the native-extension build toolchain over it.
type Toolchain interface {
	// Scaffold populates dir with whatever build-system files the target
	// toolchain expects around the generated source (a module manifest, a
	// build script, ...).
	Scaffold(dir string) error
	// Build invokes the build toolchain inside dir.
	Build(dir string) error
}

// ExecFormatter formats a file by shelling out to an external formatter
// binary, named by Command (e.g. "gofmt", "clang-format").
type ExecFormatter struct {
	Command string
	Args    []string
}

// NewExecFormatter constructs an ExecFormatter invoking command with args
// appended before the target path.
func NewExecFormatter(command string, args ...string) *ExecFormatter {
	return &ExecFormatter{Command: command, Args: args}
}

func (f *ExecFormatter) Format(path string) error {
	args := append(append([]string{}, f.Args...), path)
	cmd := exec.Command(f.Command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// ExecToolchain scaffolds and builds by shelling out to an external
// fix/lint tool and build command, named by their respective Command
// fields.
type ExecToolchain struct {
	ScaffoldCommand string
	ScaffoldArgs    []string
	BuildCommand    string
	BuildArgs       []string
}

// NewExecToolchain constructs an ExecToolchain with the given scaffold and
// build commands.
func NewExecToolchain(scaffoldCmd, buildCmd string) *ExecToolchain {
	return &ExecToolchain{ScaffoldCommand: scaffoldCmd, BuildCommand: buildCmd}
}

func (tc *ExecToolchain) Scaffold(dir string) error {
	if tc.ScaffoldCommand == "" {
		return nil
	}
	cmd := exec.Command(tc.ScaffoldCommand, tc.ScaffoldArgs...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (tc *ExecToolchain) Build(dir string) error {
	if tc.BuildCommand == "" {
		return nil
	}
	cmd := exec.Command(tc.BuildCommand, tc.BuildArgs...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Run applies the tooling contract to a freshly emitted source file: write
// it to both primary and mirror paths, format each, then scaffold and
// build dir. Every step after the write is best-effort — a failure is
// reported to stderr and execution continues, per spec.md §6.
func Run(fmtr Formatter, tc Toolchain, primary, mirror, dir string, source []byte) {
	for _, path := range []string{primary, mirror} {
		if err := os.WriteFile(path, source, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "regionc: failed to write %s: %v\n", path, err)
			continue
		}
		if err := fmtr.Format(path); err != nil {
			fmt.Fprintf(os.Stderr, "regionc: formatter failed on %s: %v\n", path, err)
		}
	}
	if err := tc.Scaffold(dir); err != nil {
		fmt.Fprintf(os.Stderr, "regionc: scaffold step failed: %v\n", err)
	}
	if err := tc.Build(dir); err != nil {
		fmt.Fprintf(os.Stderr, "regionc: build step failed: %v\n", err)
	}
}
