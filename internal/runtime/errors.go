package runtime

import (
	"errors"
	"fmt"

	"github.com/LiboWorks/vtex-deploy/internal/config"
	"github.com/LiboWorks/vtex-deploy/internal/workflow"
)

// ErrNoVendor guards command steps against running before resolution.
var ErrNoVendor = errors.New("vendor not resolved")

// Status is how a run ended.
type Status string

const (
	StatusSucceeded          Status = "succeeded"
	StatusCancelled          Status = "cancelled"
	StatusPreconditionFailed Status = "precondition_failed"
	StatusFailed             Status = "failed"
)

// Outcome summarises a run. Cancellation and precondition halts are
// outcomes, not errors; only StatusFailed comes with a non-nil Err.
type Outcome struct {
	RunID  string
	Type   workflow.Type
	Vendor string
	Status Status
	// Commands lists every command line issued, in order.
	Commands []string
	// HaltedAt names the step that stopped the run early.
	HaltedAt string
	Err      error
}

// Halted reports whether the run stopped without error before the end.
func (o *Outcome) Halted() bool {
	return o.Status == StatusCancelled || o.Status == StatusPreconditionFailed
}

// ResolutionError reports that the vendor could not be determined.
type ResolutionError struct {
	Source config.VendorSource
	Path   string // manifest path, for manifest resolution
	Err    error
}

func (e *ResolutionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("cannot resolve vendor from %s %s: %v", e.Source, e.Path, e.Err)
	}
	return fmt.Sprintf("cannot resolve vendor (%s): %v", e.Source, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// StepError ties a failure to the step that produced it. For command steps
// Err is a *backend.CommandError.
type StepError struct {
	Step string
	Err  error

	// Output is captured command output the operator has not seen yet.
	Output string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
