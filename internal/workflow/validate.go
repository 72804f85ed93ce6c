package workflow

import "fmt"

// Allowed precondition checks
var validChecks = map[CheckKind]bool{
	CheckConfirm:    true,
	CheckFileExists: true,
}

// Validate checks that every step is well formed and that preconditions
// come before the first command.
func (wf *Workflow) Validate() error {
	if wf.Name == "" {
		return fmt.Errorf("workflow name is required")
	}
	if len(wf.Steps) == 0 {
		return fmt.Errorf("workflow must have at least one step")
	}

	seenCommand := false
	for i, step := range wf.Steps {
		if step.Name == "" {
			return fmt.Errorf("step %d is missing a name", i+1)
		}

		switch step.Kind {
		case StepCommand:
			if step.Command == "" {
				return fmt.Errorf("command step %s missing command", step.Name)
			}
			if len(step.Tolerate) > 0 && !step.Capture {
				return fmt.Errorf("command step %s tolerates output but does not capture it", step.Name)
			}
			if step.Echo && !step.Capture {
				return fmt.Errorf("command step %s echoes output but does not capture it", step.Name)
			}
			seenCommand = true
		case StepPrecondition:
			if seenCommand {
				return fmt.Errorf("precondition %s runs after a command; preconditions must come first", step.Name)
			}
			if !validChecks[step.Check] {
				return fmt.Errorf("precondition %s has unknown check %q", step.Name, step.Check)
			}
			if step.Check == CheckConfirm && step.Prompt == "" {
				return fmt.Errorf("precondition %s missing prompt", step.Name)
			}
			if step.Check == CheckFileExists && step.Path == "" {
				return fmt.Errorf("precondition %s missing path", step.Name)
			}
		case StepGate:
			if step.Prompt == "" {
				return fmt.Errorf("gate %s missing prompt", step.Name)
			}
		case StepAnnounce:
			if step.Message == "" {
				return fmt.Errorf("announcement %s missing message", step.Name)
			}
		default:
			return fmt.Errorf("unknown step kind: %s", step.Kind)
		}
	}
	return nil
}
