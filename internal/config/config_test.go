package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LiboWorks/vtex-deploy/internal/config"
	"github.com/LiboWorks/vtex-deploy/internal/workflow"
)

func fixture(t *testing.T, name string) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("pwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "testdata", "fixtures", name)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find go.mod")
		}
		dir = parent
	}
}

// inTempDir runs the test from an empty directory so no stray .env or
// vtexdeploy.yaml is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func TestGetConfig(t *testing.T) {
	inTempDir(t)
	config.Reset()
	t.Cleanup(config.Reset)

	cfg, err := config.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("config should not be nil")
	}

	// Check defaults
	if cfg.Binary != config.DefaultBinary {
		t.Errorf("expected default binary %q, got %q", config.DefaultBinary, cfg.Binary)
	}
	if cfg.ManifestPath != config.DefaultManifestPath {
		t.Errorf("expected default manifest %q, got %q", config.DefaultManifestPath, cfg.ManifestPath)
	}
	for _, typ := range workflow.Types() {
		if got := cfg.VendorSourceFor(typ); got != config.VendorInteractive {
			t.Errorf("%s: expected interactive vendor source, got %q", typ, got)
		}
	}
}

func TestConfigSingleton(t *testing.T) {
	inTempDir(t)
	config.Reset()
	t.Cleanup(config.Reset)

	cfg1, _ := config.Get()
	cfg2, _ := config.Get()

	if cfg1 != cfg2 {
		t.Error("Get() should return the same instance")
	}
}

func TestConfigFromEnv(t *testing.T) {
	inTempDir(t)
	t.Setenv("VTEXDEPLOY_BINARY", "/opt/vtex/bin/vtex")
	t.Setenv("VTEXDEPLOY_VERBOSE", "true")
	t.Setenv("VTEXDEPLOY_CAPTURE", "1")
	t.Setenv("VTEXDEPLOY_NON_INTERACTIVE", "yes")
	t.Setenv("VTEXDEPLOY_VENDOR_SOURCE", "manifest")
	t.Setenv("VTEXDEPLOY_THEME_TO", "5.x")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Binary != "/opt/vtex/bin/vtex" {
		t.Errorf("Binary = %q", cfg.Binary)
	}
	if !cfg.Verbose || !cfg.Capture || !cfg.NonInteractive {
		t.Errorf("expected Verbose, Capture and NonInteractive, got %+v", cfg)
	}
	if cfg.ThemeTo != "5.x" {
		t.Errorf("ThemeTo = %q", cfg.ThemeTo)
	}
	for _, typ := range workflow.Types() {
		if got := cfg.VendorSourceFor(typ); got != config.VendorManifest {
			t.Errorf("%s: vendor source = %q, want manifest", typ, got)
		}
	}
}

func TestConfigBadEnvVendorSource(t *testing.T) {
	inTempDir(t)
	t.Setenv("VTEXDEPLOY_VENDOR_SOURCE", "guess")

	if _, err := config.Load(); err == nil {
		t.Error("expected error for unknown vendor source")
	}
}

func TestConfigFromFile(t *testing.T) {
	path := fixture(t, "vtexdeploy.yaml")
	inTempDir(t)
	t.Setenv("VTEXDEPLOY_CONFIG", path)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogFile != "deploy.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.ThemeFrom != "4.x" || cfg.ThemeTo != "5.x" {
		t.Errorf("theme = %s -> %s", cfg.ThemeFrom, cfg.ThemeTo)
	}
	if cfg.VendorSourceFor(workflow.PatchStable) != config.VendorManifest {
		t.Error("patch_stable should read the vendor from the manifest")
	}
	if cfg.VendorSourceFor(workflow.NewCustomApp) != config.VendorInteractive {
		t.Error("new_custom_app should prompt for the vendor")
	}
}

func TestConfigEnvOverridesFile(t *testing.T) {
	dir := inTempDir(t)
	content := "binary: from-file\nmanifest: app/manifest.json\n"
	if err := os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VTEXDEPLOY_BINARY", "from-env")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Binary != "from-env" {
		t.Errorf("Binary = %q, want env value", cfg.Binary)
	}
	if cfg.ManifestPath != "app/manifest.json" {
		t.Errorf("ManifestPath = %q, want file value", cfg.ManifestPath)
	}
}

func TestConfigDotEnv(t *testing.T) {
	dir := inTempDir(t)
	if err := os.WriteFile(filepath.Join(dir, config.DefaultEnvFile), []byte("VTEXDEPLOY_LOG_FILE=dotenv.log\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("VTEXDEPLOY_LOG_FILE", "")
	os.Unsetenv("VTEXDEPLOY_LOG_FILE")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LogFile != "dotenv.log" {
		t.Errorf("LogFile = %q, want value from .env", cfg.LogFile)
	}
}

func TestConfigMissingExplicitFile(t *testing.T) {
	inTempDir(t)
	t.Setenv("VTEXDEPLOY_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := config.Load(); err == nil {
		t.Error("expected error when the configured file is missing")
	}
}

func TestLoadFromExplicitPath(t *testing.T) {
	path := fixture(t, "vtexdeploy.yaml")
	inTempDir(t)
	t.Setenv("VTEXDEPLOY_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.ThemeTo != "5.x" {
		t.Errorf("ThemeTo = %q, want 5.x from the explicit file", cfg.ThemeTo)
	}
}

func TestConfigBadFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not yaml", content: "binary: [unterminated"},
		{name: "unknown type", content: "vendor_source:\n  hotfix: manifest\n"},
		{name: "unknown source", content: "vendor_source:\n  patch_stable: guess\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if err := config.NewConfig().LoadFile(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewConfigBuilder(t *testing.T) {
	cfg := config.NewConfig().
		WithBinary("vtex-beta").
		WithManifest("apps/store/manifest.json").
		WithVendorSource(config.VendorManifest, workflow.PatchStable, workflow.MajorStable).
		WithMigration("vtex.admin-graphql-ide@4.x", "4.x", "5.x").
		WithCapture(true).
		WithOutput("deploy.log").
		WithDebug(true, true)

	if cfg.Binary != "vtex-beta" {
		t.Errorf("expected binary 'vtex-beta', got %q", cfg.Binary)
	}
	if cfg.ManifestPath != "apps/store/manifest.json" {
		t.Errorf("unexpected manifest path %q", cfg.ManifestPath)
	}
	if cfg.VendorSourceFor(workflow.PatchStable) != config.VendorManifest ||
		cfg.VendorSourceFor(workflow.MajorStable) != config.VendorManifest {
		t.Error("release workflows should use the manifest")
	}
	if cfg.VendorSourceFor(workflow.UpdateCustomApp) != config.VendorInteractive {
		t.Error("custom app workflows should keep the default")
	}
	if cfg.GraphQLIDE != "vtex.admin-graphql-ide@4.x" || cfg.ThemeFrom != "4.x" || cfg.ThemeTo != "5.x" {
		t.Errorf("unexpected migration settings %+v", cfg)
	}
	if !cfg.Capture || cfg.LogFile != "deploy.log" || !cfg.DebugMode || !cfg.Verbose {
		t.Errorf("unexpected runtime settings %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Binary = " "
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty binary")
	}

	cfg = config.NewConfig()
	cfg.VendorSources[workflow.PatchStable] = "guess"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown vendor source")
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
