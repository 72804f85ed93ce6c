package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// DefaultBinary is the platform CLI invoked when none is configured.
const DefaultBinary = "vtex"

// ExecConfig holds configuration for the exec backend.
type ExecConfig struct {
	// Binary is the program every command line is passed to (default: "vtex").
	Binary string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env is added on top of the inherited environment.
	Env map[string]string

	// Standard streams. Nil means the process's own.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ExecBackend implements CommandBackend using os/exec.
type ExecBackend struct {
	cfg ExecConfig
}

// NewExecBackend creates a new exec backend.
func NewExecBackend(cfg ExecConfig) *ExecBackend {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	return &ExecBackend{cfg: cfg}
}

// Name implements CommandBackend.
func (b *ExecBackend) Name() string {
	return "exec:" + b.cfg.Binary
}

// Binary returns the program commands are passed to.
func (b *ExecBackend) Binary() string {
	return b.cfg.Binary
}

// Run implements CommandBackend.
func (b *ExecBackend) Run(ctx context.Context, commandLine string, mode Mode) (string, error) {
	args, err := Split(commandLine)
	if err != nil {
		return "", &CommandError{Command: commandLine, ExitCode: -1, Cause: err}
	}

	cmd := exec.CommandContext(ctx, b.cfg.Binary, args...)
	cmd.Dir = b.cfg.Dir
	cmd.Stdin = b.cfg.Stdin

	// Inherit parent environment and add extras
	if len(b.cfg.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range b.cfg.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	var buf bytes.Buffer
	switch mode {
	case ModeCapture:
		cmd.Stdout = &buf
		cmd.Stderr = &buf
	case ModeTee:
		w := io.MultiWriter(&buf, b.cfg.Stdout)
		cmd.Stdout = w
		cmd.Stderr = w
	default:
		cmd.Stdout = b.cfg.Stdout
		cmd.Stderr = b.cfg.Stderr
	}

	runErr := cmd.Run()
	output := buf.String()
	if runErr == nil {
		return output, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) && exitErr.ExitCode() >= 0 {
		return output, &CommandError{
			Command:  commandLine,
			ExitCode: exitErr.ExitCode(),
			Output:   strings.TrimSpace(output),
		}
	}
	return output, &CommandError{
		Command:  commandLine,
		ExitCode: -1,
		Output:   strings.TrimSpace(output),
		Cause:    runErr,
	}
}

// Split breaks a command line into arguments using POSIX shell quoting rules.
// No shell is involved, so expansions and operators are passed through as
// literal arguments.
func Split(commandLine string) ([]string, error) {
	args, err := shellquote.Split(commandLine)
	if err != nil {
		return nil, fmt.Errorf("cannot split command line: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command line")
	}
	return args, nil
}

// Join quotes args back into a single command line for display.
func Join(args ...string) string {
	return shellquote.Join(args...)
}
