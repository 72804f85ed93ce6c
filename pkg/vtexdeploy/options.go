package vtexdeploy

import (
	"io"

	"github.com/LiboWorks/vtex-deploy/internal/config"
	"github.com/LiboWorks/vtex-deploy/internal/output"
	"github.com/LiboWorks/vtex-deploy/internal/prompt"
)

// Version is the current version of vtex-deploy.
const Version = "0.1.0"

// VendorSource selects how a deploy learns the target account.
type VendorSource = config.VendorSource

const (
	// VendorFromPrompt asks the operator.
	VendorFromPrompt = config.VendorInteractive
	// VendorFromManifest reads the vendor field of manifest.json.
	VendorFromManifest = config.VendorManifest
)

// Option configures a deploy or a plan.
type Option func(*options) error

type options struct {
	cfg      *config.Config
	prompter Prompter
	backend  Backend
	out      io.Writer
}

func applyOptions(opts ...Option) (*options, error) {
	o := &options{cfg: config.NewConfig()}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.prompter == nil {
		if o.cfg.NonInteractive {
			o.prompter = &prompt.NonInteractive{}
		} else {
			o.prompter = prompt.NewSurvey()
		}
	}
	return o, nil
}

func (o *options) reporter() *output.Reporter {
	return output.NewReporter(output.ReporterOptions{
		Out:     o.out,
		Verbose: o.cfg.Verbose,
		NoColor: o.cfg.NoColor,
	})
}

// FromEnvironment starts from the configuration found in the environment:
// .env, the YAML config file (configFile, or the default when empty) and
// VTEXDEPLOY_* variables. Put it first; options after it override.
func FromEnvironment(configFile string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFrom(configFile)
		if err != nil {
			return err
		}
		o.cfg = cfg
		return nil
	}
}

// WithBinary sets the platform CLI binary.
func WithBinary(binary string) Option {
	return func(o *options) error {
		o.cfg.WithBinary(binary)
		return nil
	}
}

// WithManifest sets the manifest.json path.
func WithManifest(path string) Option {
	return func(o *options) error {
		o.cfg.WithManifest(path)
		return nil
	}
}

// WithVendorSource sets how the vendor is resolved, for the given types or
// for all of them.
func WithVendorSource(vs VendorSource, types ...Type) Option {
	return func(o *options) error {
		if _, err := config.ParseVendorSource(string(vs)); err != nil {
			return err
		}
		o.cfg.WithVendorSource(vs, types...)
		return nil
	}
}

// WithMigration sets the GraphQL IDE app and theme versions used by
// MajorStable.
func WithMigration(graphqlIDE, themeFrom, themeTo string) Option {
	return func(o *options) error {
		o.cfg.WithMigration(graphqlIDE, themeFrom, themeTo)
		return nil
	}
}

// WithPrompter replaces the terminal prompts.
func WithPrompter(p Prompter) Option {
	return func(o *options) error {
		o.prompter = p
		return nil
	}
}

// WithBackend replaces command execution.
func WithBackend(b Backend) Option {
	return func(o *options) error {
		o.backend = b
		return nil
	}
}

// WithOutput sends operator messages to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) error {
		o.out = w
		return nil
	}
}

// WithLogFile appends the output of captured commands to path.
func WithLogFile(path string) Option {
	return func(o *options) error {
		o.cfg.WithOutput(path)
		return nil
	}
}

// WithCapture captures the output of every command instead of attaching it
// to the terminal.
func WithCapture() Option {
	return func(o *options) error {
		o.cfg.WithCapture(true)
		return nil
	}
}

// WithVerbose prints debug lines.
func WithVerbose() Option {
	return func(o *options) error {
		o.cfg.Verbose = true
		return nil
	}
}

// WithNoColor disables coloured output.
func WithNoColor() Option {
	return func(o *options) error {
		o.cfg.NoColor = true
		return nil
	}
}

// WithNonInteractive answers confirmations with their defaults and fails
// questions that need typed input. Ignored when WithPrompter is given.
func WithNonInteractive() Option {
	return func(o *options) error {
		o.cfg.NonInteractive = true
		return nil
	}
}
