package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/LiboWorks/vtex-deploy/internal/manifest"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), manifest.DefaultPath)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `{"vendor":"acme","name":"store-theme","version":"1.0.1"}`)

	m, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Vendor != "acme" {
		t.Errorf("Vendor = %q, want %q", m.Vendor, "acme")
	}
	if m.ID() != "acme.store-theme@1.0.1" {
		t.Errorf("ID() = %q", m.ID())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing bool
		target  error
	}{
		{name: "file absent", missing: true, target: manifest.ErrNotFound},
		{name: "vendor missing", content: `{"name":"x","version":"1.0.0"}`, target: manifest.ErrMissingVendor},
		{name: "vendor blank", content: `{"vendor":"  "}`, target: manifest.ErrMissingVendor},
		{name: "not json", content: `vendor: acme`},
		{name: "vendor not a string", content: `{"vendor": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), manifest.DefaultPath)
			if !tt.missing {
				path = writeManifest(t, tt.content)
			}
			_, err := manifest.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Load() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestExists(t *testing.T) {
	path := writeManifest(t, `{"vendor":"acme"}`)
	if !manifest.Exists(path) {
		t.Error("expected manifest to exist")
	}
	if manifest.Exists(filepath.Dir(path)) {
		t.Error("a directory is not a manifest")
	}
	if manifest.Exists(filepath.Join(t.TempDir(), "nope.json")) {
		t.Error("expected missing manifest")
	}
}
