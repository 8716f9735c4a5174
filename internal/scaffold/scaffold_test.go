package scaffold_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/regionc/regionc/internal/scaffold"
)

type fakeFormatter struct {
	formatted []string
	err       error
}

func (f *fakeFormatter) Format(path string) error {
	f.formatted = append(f.formatted, path)
	return f.err
}

type fakeToolchain struct {
	scaffolded, built bool
	scaffoldErr       error
	buildErr          error
}

func (tc *fakeToolchain) Scaffold(dir string) error {
	tc.scaffolded = true
	return tc.scaffoldErr
}

func (tc *fakeToolchain) Build(dir string) error {
	tc.built = true
	return tc.buildErr
}

func TestRunWritesFormatsScaffoldsAndBuilds(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.go")
	mirror := filepath.Join(dir, "mirror.go")

	f := &fakeFormatter{}
	tc := &fakeToolchain{}
	scaffold.Run(f, tc, primary, mirror, dir, []byte("package main\n"))

	for _, path := range []string{primary, mirror} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to exist: %v", path, err)
		}
	}
	if len(f.formatted) != 2 {
		t.Errorf("expected both paths formatted, got %v", f.formatted)
	}
	if !tc.scaffolded || !tc.built {
		t.Errorf("expected both Scaffold and Build to run, got scaffolded=%v built=%v", tc.scaffolded, tc.built)
	}
}

func TestRunSurvivesFormatterAndToolchainFailures(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.go")
	mirror := filepath.Join(dir, "mirror.go")

	f := &fakeFormatter{err: errors.New("formatter exploded")}
	tc := &fakeToolchain{scaffoldErr: errors.New("scaffold exploded"), buildErr: errors.New("build exploded")}

	// Run must not panic despite every downstream step failing: the
	// tooling contract is best-effort.
	scaffold.Run(f, tc, primary, mirror, dir, []byte("package main\n"))

	if !tc.scaffolded || !tc.built {
		t.Errorf("expected Scaffold and Build to still be attempted despite failures")
	}
}

func TestExecFormatterReturnsErrorForMissingCommand(t *testing.T) {
	f := scaffold.NewExecFormatter("regionc-definitely-not-a-real-binary")
	if err := f.Format(filepath.Join(t.TempDir(), "x.go")); err == nil {
		t.Error("expected an error invoking a nonexistent formatter binary")
	}
}

func TestExecToolchainSkipsEmptyCommands(t *testing.T) {
	tc := &scaffold.ExecToolchain{}
	if err := tc.Scaffold(t.TempDir()); err != nil {
		t.Errorf("empty ScaffoldCommand should be a no-op, got %v", err)
	}
	if err := tc.Build(t.TempDir()); err != nil {
		t.Errorf("empty BuildCommand should be a no-op, got %v", err)
	}
}
