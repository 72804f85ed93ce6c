package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/LiboWorks/vtex-deploy/internal/runtime"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	resetFlags(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func resetFlags(t *testing.T) {
	t.Helper()
	for _, fs := range []*pflag.FlagSet{rootCmd.Flags(), rootCmd.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			if err := f.Value.Set(f.DefValue); err != nil {
				t.Fatalf("reset --%s: %v", f.Name, err)
			}
			f.Changed = false
		})
	}
}

// fixturePath resolves the shared manifest fixture before the test changes
// directory.
func fixturePath(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	return filepath.Join(wd, "..", "..", "testdata", "fixtures", "manifest.json")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "vtexdeploy ") {
		t.Errorf("output = %q", out)
	}
}

func TestPlanCommand(t *testing.T) {
	out, err := execute(t, "plan", "major_stable")
	if err != nil {
		t.Fatalf("plan error = %v", err)
	}
	for _, want := range []string{"major_stable", "run: login <vendor>", "run: promote", "confirm: "} {
		if !strings.Contains(out, want) {
			t.Errorf("plan output missing %q:\n%s", want, out)
		}
	}
}

func TestPlanCommandUnknownType(t *testing.T) {
	if _, err := execute(t, "plan", "hotfix"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestDeployDryRun(t *testing.T) {
	manifest := fixturePath(t)
	out, err := execute(t,
		"--type", "patch_stable",
		"--vendor-source", "manifest",
		"--manifest", manifest,
		"--dry-run",
		"--non-interactive",
		"--no-color",
	)
	if err != nil {
		t.Fatalf("deploy error = %v", err)
	}
	for _, want := range []string{"vtex login acme", "vtex update", "https://production--acme.myvtex.com/", "cancelled"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "vtex use master") {
		t.Errorf("declined review still promoted to master:\n%s", out)
	}
}

func TestDeployWithoutTypeNonInteractive(t *testing.T) {
	if _, err := execute(t, "--non-interactive", "--dry-run"); err == nil {
		t.Error("expected error when no type is given without a terminal")
	}
}

func TestDeployBadVendorSource(t *testing.T) {
	if _, err := execute(t, "--type", "patch_stable", "--vendor-source", "guess"); err == nil {
		t.Error("expected error for unknown vendor source")
	}
}

func TestRunErrorMarksOnlyPrintedFailures(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name         string
		out          *runtime.Outcome
		err          error
		wantReported bool
	}{
		{name: "success", out: &runtime.Outcome{Status: runtime.StatusSucceeded}},
		{name: "before any output", err: boom},
		{name: "failed run", out: &runtime.Outcome{Status: runtime.StatusFailed}, err: boom, wantReported: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runError(tt.out, tt.err)
			if tt.err == nil {
				if err != nil {
					t.Errorf("runError() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, boom) {
				t.Errorf("runError() = %v, want boom in chain", err)
			}
			var r reported
			if got := errors.As(err, &r); got != tt.wantReported {
				t.Errorf("reported = %v, want %v", got, tt.wantReported)
			}
		})
	}
}

func TestDebugFlag(t *testing.T) {
	chdir(t, t.TempDir())
	resetFlags(t)
	t.Cleanup(func() { resetFlags(t) })

	cfg, err := loadConfig(rootCmd)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.DebugMode {
		t.Error("DebugMode set without --debug")
	}

	if err := rootCmd.Flags().Set("debug", "true"); err != nil {
		t.Fatalf("set --debug: %v", err)
	}
	cfg, err = loadConfig(rootCmd)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if !cfg.DebugMode {
		t.Error("--debug did not enable DebugMode")
	}
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
