// Package backend runs the platform CLI on behalf of workflow steps.
// The engine only sees the CommandBackend interface, which keeps real
// process execution swappable for recorders in tests and dry runs.
package backend

import (
	"context"
	"fmt"
)

// Mode selects where a command's standard streams go.
type Mode int

const (
	// ModeInherit attaches the command to the controlling terminal so the
	// operator can interact with it (login flows, confirmations).
	ModeInherit Mode = iota
	// ModeCapture collects stdout and stderr and returns them to the caller.
	// Stdin stays attached.
	ModeCapture
	// ModeTee captures like ModeCapture and also streams the output to the
	// terminal, so prompts printed by the command stay visible.
	ModeTee
)

// Captures reports whether output is returned to the caller in mode m.
func (m Mode) Captures() bool {
	return m == ModeCapture || m == ModeTee
}

func (m Mode) String() string {
	switch m {
	case ModeInherit:
		return "inherit"
	case ModeCapture:
		return "capture"
	case ModeTee:
		return "tee"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// CommandBackend executes one platform CLI command line to completion.
type CommandBackend interface {
	// Run executes commandLine (arguments only, without the binary) and
	// returns the captured output when mode.Captures(). A non-zero exit or a spawn
	// failure is returned as *CommandError.
	Run(ctx context.Context, commandLine string, mode Mode) (string, error)

	// Name returns a human-readable name for the backend.
	Name() string
}

// CommandError reports a failed command.
type CommandError struct {
	Command  string
	ExitCode int
	// Output holds captured stdout/stderr when the mode captures.
	Output string
	// Cause is set when the process could not be started or waited on.
	Cause error
}

func (e *CommandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("command %q failed: %v", e.Command, e.Cause)
	}
	return fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
}

func (e *CommandError) Unwrap() error {
	return e.Cause
}
