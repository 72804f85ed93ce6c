package vtexdeploy

import (
	"github.com/LiboWorks/vtex-deploy/internal/workflow"
)

// VendorPlaceholder stands in for the vendor in planned command lines.
const VendorPlaceholder = "<vendor>"

// Step is one planned step of a workflow.
type Step struct {
	Name string
	// Kind is "command", "precondition", "gate" or "announce".
	Kind string
	// Command is the platform CLI command line, for command steps.
	Command string
	// Description is a one line summary for display.
	Description string
}

// Plan returns the ordered steps of the workflow for t without running
// anything. Templates are rendered against the configuration given by opts,
// with VendorPlaceholder for the vendor.
func Plan(t Type, opts ...Option) ([]Step, error) {
	o, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	wf, err := workflow.Definition(t)
	if err != nil {
		return nil, err
	}

	vars := workflow.Vars{
		Vendor:     VendorPlaceholder,
		Manifest:   o.cfg.ManifestPath,
		GraphQLIDE: o.cfg.GraphQLIDE,
		ThemeFrom:  o.cfg.ThemeFrom,
		ThemeTo:    o.cfg.ThemeTo,
	}

	steps := make([]Step, 0, len(wf.Steps))
	for _, s := range wf.Steps {
		for _, field := range []*string{&s.Command, &s.Prompt, &s.Path} {
			if *field == "" {
				continue
			}
			rendered, err := workflow.Render(*field, vars)
			if err != nil {
				return nil, err
			}
			*field = rendered
		}
		steps = append(steps, Step{
			Name:        s.Name,
			Kind:        string(s.Kind),
			Command:     s.Command,
			Description: s.Describe(),
		})
	}
	return steps, nil
}
