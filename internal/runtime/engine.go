// Package runtime executes deploy workflows: it resolves the vendor, checks
// preconditions, runs platform CLI commands and stops at operator gates.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/LiboWorks/vtex-deploy/internal/backend"
	"github.com/LiboWorks/vtex-deploy/internal/config"
	"github.com/LiboWorks/vtex-deploy/internal/output"
	"github.com/LiboWorks/vtex-deploy/internal/prompt"
	"github.com/LiboWorks/vtex-deploy/internal/workflow"
)

// Options wires an Engine. Only Prompter is required.
type Options struct {
	Config   *config.Config
	Backend  backend.CommandBackend
	Prompter prompt.Prompter
	Reporter *output.Reporter
	// Capturer receives the output of capture-mode commands. Nil falls back
	// to Config.LogFile.
	Capturer *output.Capturer
	// NewRunID overrides run id generation.
	NewRunID func() string
}

// Engine runs workflows one at a time. It holds no state between runs.
type Engine struct {
	cfg      *config.Config
	backend  backend.CommandBackend
	prompter prompt.Prompter
	report   *output.Reporter
	capture  *output.Capturer
	newRunID func() string
}

// New creates an engine, filling unset options from the configuration.
func New(opts Options) (*Engine, error) {
	if opts.Prompter == nil {
		return nil, errors.New("runtime: a prompter is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		backend:  opts.Backend,
		prompter: opts.Prompter,
		report:   opts.Reporter,
		capture:  opts.Capturer,
		newRunID: opts.NewRunID,
	}
	if e.backend == nil {
		e.backend = backend.NewExecBackend(backend.ExecConfig{Binary: cfg.Binary})
	}
	if e.report == nil {
		e.report = output.NewReporter(output.ReporterOptions{Verbose: cfg.Verbose, NoColor: cfg.NoColor})
	}
	if e.capture == nil {
		e.capture = output.NewCapturer(cfg.LogFile)
	}
	if e.newRunID == nil {
		e.newRunID = uuid.NewString
	}
	return e, nil
}

// Resolver returns the vendor resolver configured for t.
func (e *Engine) Resolver(t workflow.Type) VendorResolver {
	if e.cfg.VendorSourceFor(t) == config.VendorManifest {
		return &ManifestResolver{Path: e.cfg.ManifestPath}
	}
	return &InteractiveResolver{Prompter: e.prompter}
}

// Run executes the workflow for t. Cancellation at a gate and failed
// preconditions are reported through the Outcome status with a nil error.
// A failed run returns both the Outcome and the error.
func (e *Engine) Run(ctx context.Context, t workflow.Type) (*Outcome, error) {
	wf, err := workflow.Definition(t)
	if err != nil {
		return nil, err
	}
	if err := wf.Validate(); err != nil {
		return nil, fmt.Errorf("workflow %s: %w", t, err)
	}

	rc := NewRunContext(t, e.newRunID())
	out := &Outcome{RunID: rc.RunID, Type: t}
	defer func() { out.Commands = rc.Commands() }()

	e.report.Banner("%s", t.Label())
	e.report.Debug("run %s with %s", rc.RunID, e.backend.Name())

	resolver := e.Resolver(t)
	vendor, err := resolver.Resolve(ctx)
	if err != nil {
		return e.failed(out, "", err)
	}
	if err := rc.SetVendor(vendor); err != nil {
		return e.failed(out, "", &ResolutionError{Source: e.cfg.VendorSourceFor(t), Err: err})
	}
	out.Vendor = vendor
	e.report.Info("Vendor: %s", vendor)
	if mr, ok := resolver.(*ManifestResolver); ok && mr.App != "" {
		e.report.Info("App: %s (%s)", mr.App, mr.Path)
	}

	vars := e.vars(rc)
	for _, step := range wf.Steps {
		switch step.Kind {
		case workflow.StepPrecondition:
			ok, err := e.evaluatePrecondition(step, vars)
			if err != nil {
				return e.failed(out, step.Name, &StepError{Step: step.Name, Err: err})
			}
			if !ok {
				e.report.Warn("%s", warning(step, vars))
				out.Status = StatusPreconditionFailed
				out.HaltedAt = step.Name
				return out, nil
			}

		case workflow.StepAnnounce:
			msg, err := workflow.Render(step.Message, vars)
			if err != nil {
				return e.failed(out, step.Name, &StepError{Step: step.Name, Err: err})
			}
			e.report.Announce(msg)

		case workflow.StepGate:
			msg, err := workflow.Render(step.Prompt, vars)
			if err != nil {
				return e.failed(out, step.Name, &StepError{Step: step.Name, Err: err})
			}
			ok, err := e.prompter.Confirm(msg, step.Default)
			if err != nil {
				return e.failed(out, step.Name, &StepError{Step: step.Name, Err: err})
			}
			if !ok {
				e.report.Cancelled("Deploy cancelled before %s", nextAction(wf.Steps, step.Name))
				out.Status = StatusCancelled
				out.HaltedAt = step.Name
				return out, nil
			}

		case workflow.StepCommand:
			if err := e.runCommand(ctx, rc, step, vars); err != nil {
				return e.failed(out, step.Name, err)
			}
		}
	}

	out.Status = StatusSucceeded
	e.report.Success("%s finished for %s", t.Label(), vendor)
	return out, nil
}

func (e *Engine) vars(rc *RunContext) workflow.Vars {
	return workflow.Vars{
		Vendor:     rc.Vendor(),
		Manifest:   e.cfg.ManifestPath,
		GraphQLIDE: e.cfg.GraphQLIDE,
		ThemeFrom:  e.cfg.ThemeFrom,
		ThemeTo:    e.cfg.ThemeTo,
	}
}

func (e *Engine) runCommand(ctx context.Context, rc *RunContext, step workflow.Step, vars workflow.Vars) error {
	if rc.Vendor() == "" {
		return &StepError{Step: step.Name, Err: ErrNoVendor}
	}
	line, err := workflow.Render(step.Command, vars)
	if err != nil {
		return &StepError{Step: step.Name, Err: err}
	}

	mode := e.mode(step)

	e.report.Step("%s %s", backend.Join(e.cfg.Binary), line)
	rc.Record(line)
	captured, runErr := e.backend.Run(ctx, line, mode)

	var cmdErr *backend.CommandError
	exit := 0
	if errors.As(runErr, &cmdErr) {
		exit = cmdErr.ExitCode
	} else if runErr != nil {
		exit = -1
	}
	tolerated := runErr != nil && exit > 0 && tolerates(step, captured)

	if mode.Captures() {
		entry := output.Entry{
			RunID:     rc.RunID,
			Step:      step.Name,
			Command:   line,
			ExitCode:  exit,
			Output:    captured,
			Tolerated: tolerated,
		}
		if err := e.capture.Record(entry); err != nil {
			e.report.Warn("could not write %s: %v", e.capture.Path(), err)
		}
		if runErr == nil && mode == backend.ModeCapture && strings.TrimSpace(captured) != "" {
			e.report.Debug("%s", strings.TrimSpace(captured))
		}
	}

	if runErr == nil {
		return nil
	}
	if tolerated {
		e.report.Warn("%s: nothing to remove, continuing", line)
		return nil
	}
	stepErr := &StepError{Step: step.Name, Err: runErr}
	if mode == backend.ModeCapture {
		stepErr.Output = strings.TrimSpace(captured)
	}
	return stepErr
}

// mode picks how a command's output is handled. Steps that declare Echo and
// debug runs stream captured output to the terminal as well.
func (e *Engine) mode(step workflow.Step) backend.Mode {
	if !step.Capture && !e.cfg.Capture {
		return backend.ModeInherit
	}
	if step.Echo || e.cfg.DebugMode {
		return backend.ModeTee
	}
	return backend.ModeCapture
}

// tolerates reports whether the captured output of a failed command matches
// one of the step's tolerated fragments.
func tolerates(step workflow.Step, captured string) bool {
	lower := strings.ToLower(captured)
	for _, frag := range step.Tolerate {
		if frag != "" && strings.Contains(lower, strings.ToLower(frag)) {
			return true
		}
	}
	return false
}

// nextAction names what a declined gate prevented.
func nextAction(steps []workflow.Step, gate string) string {
	for i, s := range steps {
		if s.Name != gate {
			continue
		}
		for _, next := range steps[i+1:] {
			if next.Kind == workflow.StepCommand {
				return next.Command
			}
		}
	}
	return "finishing"
}

func (e *Engine) failed(out *Outcome, step string, err error) (*Outcome, error) {
	out.Status = StatusFailed
	out.HaltedAt = step
	out.Err = err
	e.report.Fail("%v", err)
	var stepErr *StepError
	if errors.As(err, &stepErr) && stepErr.Output != "" {
		e.report.Detail(stepErr.Output)
	}
	return out, err
}
