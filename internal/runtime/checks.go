package runtime

import (
	"fmt"

	"github.com/LiboWorks/vtex-deploy/internal/manifest"
	"github.com/LiboWorks/vtex-deploy/internal/workflow"
)

// evaluatePrecondition returns whether the precondition holds. A false
// result halts the run; an error means the check itself could not be
// performed.
func (e *Engine) evaluatePrecondition(step workflow.Step, vars workflow.Vars) (bool, error) {
	switch step.Check {
	case workflow.CheckConfirm:
		msg, err := workflow.Render(step.Prompt, vars)
		if err != nil {
			return false, err
		}
		return e.prompter.Confirm(msg, step.Default)

	case workflow.CheckFileExists:
		path, err := workflow.Render(step.Path, vars)
		if err != nil {
			return false, err
		}
		ok := manifest.Exists(path)
		e.report.Debug("file check %s: exists=%t", path, ok)
		return ok, nil
	}
	return false, fmt.Errorf("unknown check: %s", step.Check)
}

// warning renders the operator guidance for a failed precondition.
func warning(step workflow.Step, vars workflow.Vars) string {
	if step.Warning == "" {
		return fmt.Sprintf("precondition %s not met", step.Name)
	}
	msg, err := workflow.Render(step.Warning, vars)
	if err != nil {
		return step.Warning
	}
	return msg
}
