package workflow

import (
	"fmt"
	"strings"
)

// Type selects one of the fixed deploy workflows.
type Type string

const (
	PatchStable     Type = "patch_stable"
	MajorStable     Type = "major_stable"
	NewCustomApp    Type = "new_custom_app"
	UpdateCustomApp Type = "update_custom_app"
)

var typeLabels = map[Type]string{
	PatchStable:     "Release patch stable",
	MajorStable:     "Release major stable (with CMS migration)",
	NewCustomApp:    "Deploy a new custom app",
	UpdateCustomApp: "Update a custom app",
}

// Types returns every workflow type in menu order.
func Types() []Type {
	return []Type{PatchStable, MajorStable, NewCustomApp, UpdateCustomApp}
}

// Label returns the human readable menu label.
func (t Type) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Valid reports whether t is one of the known workflow types.
func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// ParseType converts a user supplied id (e.g. "patch_stable", "PATCH-STABLE")
// into a Type.
func ParseType(s string) (Type, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	t := Type(norm)
	if !t.Valid() {
		return "", fmt.Errorf("unknown workflow type %q (want one of %s)", s, typeList())
	}
	return t, nil
}

func typeList() string {
	names := make([]string, 0, len(typeLabels))
	for _, t := range Types() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

// Workflow is an ordered list of steps run for one Type.
type Workflow struct {
	Type  Type   `yaml:"type"`
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// StepKind selects what a step does when the engine reaches it.
type StepKind string

const (
	StepCommand      StepKind = "command"
	StepPrecondition StepKind = "precondition"
	StepGate         StepKind = "gate"
	StepAnnounce     StepKind = "announce"
)

// CheckKind selects how a precondition is evaluated.
type CheckKind string

const (
	// CheckConfirm asks the operator to attest something (yes/no).
	CheckConfirm CheckKind = "confirm"
	// CheckFileExists requires a local file to exist.
	CheckFileExists CheckKind = "file_exists"
)

// Step is one unit of a workflow. Which fields apply depends on Kind.
type Step struct {
	Name string   `yaml:"name"`
	Kind StepKind `yaml:"kind"`

	// Command holds the platform CLI arguments as a template, without the
	// binary name. Only for StepCommand.
	Command string `yaml:"command,omitempty"`
	// Capture runs the command with its output captured instead of attached
	// to the terminal.
	Capture bool `yaml:"capture,omitempty"`
	// Echo streams captured output to the terminal while it is collected,
	// for commands that may ask the operator something.
	Echo bool `yaml:"echo,omitempty"`
	// Tolerate lists case-insensitive fragments of captured output that turn
	// a failed command into a warning.
	Tolerate []string `yaml:"tolerate,omitempty"`

	Check   CheckKind `yaml:"check,omitempty"`
	Path    string    `yaml:"path,omitempty"`
	Warning string    `yaml:"warning,omitempty"`

	// Prompt and Default drive confirm preconditions and gates.
	Prompt  string `yaml:"prompt,omitempty"`
	Default bool   `yaml:"default,omitempty"`

	// Message is the announcement template.
	Message string `yaml:"message,omitempty"`
}

// Commands returns the raw command templates in order.
func (wf Workflow) Commands() []string {
	var out []string
	for _, s := range wf.Steps {
		if s.Kind == StepCommand {
			out = append(out, s.Command)
		}
	}
	return out
}

// Describe returns a one line summary of the step for plans and logs.
func (s Step) Describe() string {
	switch s.Kind {
	case StepCommand:
		return "run: " + s.Command
	case StepPrecondition:
		if s.Check == CheckFileExists {
			return "require file: " + s.Path
		}
		return "check: " + s.Prompt
	case StepGate:
		return "confirm: " + s.Prompt
	case StepAnnounce:
		return "announce: " + s.Name
	}
	return string(s.Kind)
}
