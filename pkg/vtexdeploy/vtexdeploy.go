// Package vtexdeploy provides a public API for running VTEX deploy workflows.
//
// A deploy drives the vtex CLI through one of four fixed sequences: log in,
// recreate the production workspace, release or publish, review, and promote
// to master. The operator confirms the irreversible steps.
//
// Basic usage:
//
//	res, err := vtexdeploy.Deploy(ctx, vtexdeploy.PatchStable)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Status)
//
// With options:
//
//	res, err := vtexdeploy.Deploy(ctx, vtexdeploy.MajorStable,
//	    vtexdeploy.WithVendorSource(vtexdeploy.VendorFromManifest),
//	    vtexdeploy.WithManifest("apps/store/manifest.json"),
//	)
//
// Inspecting a workflow without running it:
//
//	steps, err := vtexdeploy.Plan(vtexdeploy.UpdateCustomApp)
//	for _, s := range steps {
//	    fmt.Println(s.Description)
//	}
package vtexdeploy

import (
	"context"

	"github.com/LiboWorks/vtex-deploy/internal/backend"
	"github.com/LiboWorks/vtex-deploy/internal/prompt"
	"github.com/LiboWorks/vtex-deploy/internal/runtime"
	"github.com/LiboWorks/vtex-deploy/internal/workflow"
)

// Type selects a deploy workflow.
type Type = workflow.Type

const (
	PatchStable     = workflow.PatchStable
	MajorStable     = workflow.MajorStable
	NewCustomApp    = workflow.NewCustomApp
	UpdateCustomApp = workflow.UpdateCustomApp
)

// Status is how a deploy ended.
type Status = runtime.Status

const (
	Succeeded          = runtime.StatusSucceeded
	Cancelled          = runtime.StatusCancelled
	PreconditionFailed = runtime.StatusPreconditionFailed
	Failed             = runtime.StatusFailed
)

// Prompter asks the operator questions. Implement it to drive deploys from
// something other than a terminal.
type Prompter = prompt.Prompter

// Choice is one entry of a selection prompt.
type Choice = prompt.Option

// Backend executes platform CLI command lines.
type Backend = backend.CommandBackend

// Errors returned by Deploy, for use with errors.As.
type (
	CommandError    = backend.CommandError
	ResolutionError = runtime.ResolutionError
	StepError       = runtime.StepError
)

// Result describes a finished deploy.
type Result struct {
	// RunID identifies the run in logs.
	RunID  string
	Type   Type
	Vendor string
	Status Status

	// Commands lists the command lines issued, without the binary name.
	Commands []string

	// HaltedAt names the step that stopped a cancelled, halted or failed run.
	HaltedAt string
}

// Succeeded reports whether every step ran.
func (r *Result) Succeeded() bool {
	return r != nil && r.Status == Succeeded
}

// Types returns every workflow type in menu order.
func Types() []Type {
	return workflow.Types()
}

// ParseType converts a workflow id such as "patch_stable" into a Type.
func ParseType(s string) (Type, error) {
	return workflow.ParseType(s)
}

// Deploy runs the workflow for t.
//
// Cancellation at a confirmation gate and unmet preconditions are not
// errors: they come back as a Result with the matching Status. When the
// vendor cannot be resolved or a command fails, Deploy returns the partial
// Result together with the error.
//
// Example:
//
//	res, err := vtexdeploy.Deploy(ctx, vtexdeploy.NewCustomApp,
//	    vtexdeploy.WithCapture(),
//	    vtexdeploy.WithLogFile("deploy.log"),
//	)
func Deploy(ctx context.Context, t Type, opts ...Option) (*Result, error) {
	o, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	engine, err := runtime.New(runtime.Options{
		Config:   o.cfg,
		Backend:  o.backend,
		Prompter: o.prompter,
		Reporter: o.reporter(),
	})
	if err != nil {
		return nil, err
	}

	out, err := engine.Run(ctx, t)
	if out == nil {
		return nil, err
	}
	return fromOutcome(out), err
}

func fromOutcome(o *runtime.Outcome) *Result {
	return &Result{
		RunID:    o.RunID,
		Type:     o.Type,
		Vendor:   o.Vendor,
		Status:   o.Status,
		Commands: o.Commands,
		HaltedAt: o.HaltedAt,
	}
}
