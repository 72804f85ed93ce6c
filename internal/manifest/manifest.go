// Package manifest reads the app descriptor (manifest.json) found at the root
// of every VTEX IO app.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// DefaultPath is the descriptor file name the platform CLI expects.
const DefaultPath = "manifest.json"

var (
	ErrNotFound      = errors.New("manifest not found")
	ErrMissingVendor = errors.New("manifest has no vendor")
)

// Manifest holds the descriptor fields the deploy flows care about.
type Manifest struct {
	Vendor  string `json:"vendor"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Load reads and parses the descriptor at path. The vendor field is
// mandatory; name and version are optional.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	m.Vendor = strings.TrimSpace(m.Vendor)
	if m.Vendor == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingVendor)
	}
	return &m, nil
}

// Exists reports whether a regular file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ID returns vendor.name@version, the identifier the platform uses.
func (m *Manifest) ID() string {
	id := m.Vendor
	if m.Name != "" {
		id += "." + m.Name
	}
	if m.Version != "" {
		id += "@" + m.Version
	}
	return id
}
