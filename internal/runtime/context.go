package runtime

import (
	"errors"
	"sync"

	"github.com/LiboWorks/vtex-deploy/internal/workflow"
)

// RunContext is the state of one workflow run. The vendor is written once,
// after resolution, and read by every step that follows.
type RunContext struct {
	RunID string
	Type  workflow.Type

	mu       sync.Mutex
	vendor   string
	commands []string
}

// NewRunContext starts the state for one run of t.
func NewRunContext(t workflow.Type, runID string) *RunContext {
	return &RunContext{RunID: runID, Type: t}
}

// SetVendor stores the resolved vendor. It fails if the vendor is empty or
// was already set.
func (c *RunContext) SetVendor(vendor string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if vendor == "" {
		return errors.New("vendor must not be empty")
	}
	if c.vendor != "" {
		return errors.New("vendor already resolved for this run")
	}
	c.vendor = vendor
	return nil
}

// Vendor returns the resolved vendor, or "" before resolution.
func (c *RunContext) Vendor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vendor
}

// Record appends a command line that was handed to the backend.
func (c *RunContext) Record(commandLine string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands = append(c.commands, commandLine)
}

// Commands returns the command lines issued so far.
func (c *RunContext) Commands() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.commands...)
}
