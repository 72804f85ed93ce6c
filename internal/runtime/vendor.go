package runtime

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/LiboWorks/vtex-deploy/internal/config"
	"github.com/LiboWorks/vtex-deploy/internal/manifest"
	"github.com/LiboWorks/vtex-deploy/internal/prompt"
)

// VendorPrompt is the question asked by the interactive resolver.
const VendorPrompt = "What is the vendor (account name)?"

// The vendor ends up as a command line argument, so only plain account
// names are accepted.
var vendorPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateVendor rejects empty vendors and anything that is not a plain
// account name.
func ValidateVendor(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("the vendor is required")
	}
	if !vendorPattern.MatchString(v) {
		return fmt.Errorf("invalid vendor %q: use letters, digits, '.', '_' or '-'", v)
	}
	return nil
}

// VendorResolver determines the vendor for a run.
type VendorResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// InteractiveResolver asks the operator. Empty answers are rejected by the
// prompt itself, so the operator is asked again instead of failing.
type InteractiveResolver struct {
	Prompter prompt.Prompter
}

// Resolve asks for the vendor until a valid account name is given.
func (r *InteractiveResolver) Resolve(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ResolutionError{Source: config.VendorInteractive, Err: err}
	}
	v, err := r.Prompter.Input(VendorPrompt, ValidateVendor)
	if err != nil {
		return "", &ResolutionError{Source: config.VendorInteractive, Err: err}
	}
	v = strings.TrimSpace(v)
	if err := ValidateVendor(v); err != nil {
		return "", &ResolutionError{Source: config.VendorInteractive, Err: err}
	}
	return v, nil
}

// ManifestResolver reads the vendor field of the app descriptor.
type ManifestResolver struct {
	Path string

	// App is the vendor.name@version of the descriptor, set by Resolve.
	App string
}

// Resolve loads the descriptor at Path and returns its vendor.
func (r *ManifestResolver) Resolve(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ResolutionError{Source: config.VendorManifest, Path: r.Path, Err: err}
	}
	m, err := manifest.Load(r.Path)
	if err != nil {
		return "", &ResolutionError{Source: config.VendorManifest, Path: r.Path, Err: err}
	}
	if err := ValidateVendor(m.Vendor); err != nil {
		return "", &ResolutionError{Source: config.VendorManifest, Path: r.Path, Err: err}
	}
	r.App = m.ID()
	return m.Vendor, nil
}
