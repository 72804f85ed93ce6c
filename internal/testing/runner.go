// Package testing provides a fake platform CLI and assertions for deploy tests.
package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/LiboWorks/vtex-deploy/internal/backend"
)

// FakeCLI is a shell script standing in for the vtex CLI. Every invocation
// appends its arguments to a log; scripted command lines exit with a chosen
// code after printing a chosen output.
type FakeCLI struct {
	// Dir holds the script and its state.
	Dir string
	// Binary is the absolute path of the script.
	Binary  string
	LogPath string
	t       *testing.T
}

const fakeScript = `#!/bin/sh
state=%s
printf '%%s\n' "$*" >> %s
key=$(printf '%%s' "$*" | tr -c 'A-Za-z0-9' '_')
if [ -f "$state/out_$key" ]; then
  cat "$state/out_$key"
fi
if [ -f "$state/exit_$key" ]; then
  exit "$(cat "$state/exit_$key")"
fi
exit 0
`

// NewFakeCLI writes a fake vtex script into a temporary directory. Tests
// using it are skipped on Windows.
func NewFakeCLI(t *testing.T) *FakeCLI {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake CLI needs a POSIX shell")
	}

	dir := t.TempDir()
	f := &FakeCLI{
		Dir:     dir,
		Binary:  filepath.Join(dir, "vtex"),
		LogPath: filepath.Join(dir, "calls.log"),
		t:       t,
	}
	script := fmt.Sprintf(fakeScript, backend.Join(dir), backend.Join(f.LogPath))
	if err := os.WriteFile(f.Binary, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write fake CLI: %v", err)
	}
	return f
}

// OnPath prepends the script directory to PATH for the rest of the test.
func (f *FakeCLI) OnPath() *FakeCLI {
	f.t.Helper()
	f.t.Setenv("PATH", f.Dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return f
}

// key maps a command line to the file name suffix the script computes with
// tr, byte by byte.
func key(commandLine string) string {
	b := []byte(commandLine)
	for i, c := range b {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			b[i] = '_'
		}
	}
	return string(b)
}

// Fail makes commandLine print output and exit with code.
func (f *FakeCLI) Fail(commandLine string, code int, output string) *FakeCLI {
	f.t.Helper()
	k := key(commandLine)
	if err := os.WriteFile(filepath.Join(f.Dir, "exit_"+k), []byte(strconv.Itoa(code)), 0644); err != nil {
		f.t.Fatalf("failed to script %q: %v", commandLine, err)
	}
	return f.Print(commandLine, output)
}

// Print makes commandLine print output.
func (f *FakeCLI) Print(commandLine, output string) *FakeCLI {
	f.t.Helper()
	if output == "" {
		return f
	}
	if err := os.WriteFile(filepath.Join(f.Dir, "out_"+key(commandLine)), []byte(output), 0644); err != nil {
		f.t.Fatalf("failed to script %q: %v", commandLine, err)
	}
	return f
}

// Calls returns the argument lists the script received, in order.
func (f *FakeCLI) Calls() []string {
	f.t.Helper()
	data, err := os.ReadFile(f.LogPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		f.t.Fatalf("failed to read call log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// Assert returns assertions over the calls made so far.
func (f *FakeCLI) Assert() *Assertions {
	return &Assertions{t: f.t, calls: f.Calls()}
}

// Assertions provides test assertion helpers
type Assertions struct {
	t     *testing.T
	calls []string
}

// Called asserts the CLI received exactly these command lines, in order.
func (a *Assertions) Called(expected ...string) *Assertions {
	a.t.Helper()
	if strings.Join(a.calls, "\n") != strings.Join(expected, "\n") {
		a.t.Errorf("calls:\n  %s\nwant:\n  %s", strings.Join(a.calls, "\n  "), strings.Join(expected, "\n  "))
	}
	return a
}

// CalledNothing asserts the CLI was never invoked.
func (a *Assertions) CalledNothing() *Assertions {
	a.t.Helper()
	if len(a.calls) != 0 {
		a.t.Errorf("expected no calls, got %q", a.calls)
	}
	return a
}

// NotCalled asserts commandLine was never run.
func (a *Assertions) NotCalled(commandLine string) *Assertions {
	a.t.Helper()
	for _, c := range a.calls {
		if c == commandLine {
			a.t.Errorf("%q should not have run, calls: %q", commandLine, a.calls)
			return a
		}
	}
	return a
}

// LastCall asserts the final command line.
func (a *Assertions) LastCall(expected string) *Assertions {
	a.t.Helper()
	if len(a.calls) == 0 {
		a.t.Errorf("no calls, want last call %q", expected)
		return a
	}
	if last := a.calls[len(a.calls)-1]; last != expected {
		a.t.Errorf("last call = %q, want %q", last, expected)
	}
	return a
}
