package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/LiboWorks/vtex-deploy/internal/backend"
	"github.com/LiboWorks/vtex-deploy/internal/config"
	"github.com/LiboWorks/vtex-deploy/internal/output"
	"github.com/LiboWorks/vtex-deploy/internal/prompt"
	"github.com/LiboWorks/vtex-deploy/internal/runtime"
	"github.com/LiboWorks/vtex-deploy/internal/workflow"
)

var (
	workflowType   string
	vendorSource   string
	manifestPath   string
	binary         string
	configFile     string
	logFile        string
	capture        bool
	verbose        bool
	debug          bool
	nonInteractive bool
	noColor        bool
	dryRun         bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&workflowType, "type", "t", "", "Workflow to run (skips the menu)")
	f.StringVar(&vendorSource, "vendor-source", "", "Where the vendor comes from: interactive or manifest")
	f.StringVarP(&manifestPath, "manifest", "m", "", "Path to the app manifest.json")
	f.StringVar(&binary, "binary", "", "Platform CLI binary (default vtex)")
	f.StringVar(&logFile, "log-file", "", "Append captured command output to this file")
	f.BoolVar(&capture, "capture", false, "Capture the output of every command")
	f.BoolVar(&debug, "debug", false, "Stream captured command output to the terminal")
	f.BoolVar(&dryRun, "dry-run", false, "Walk through the workflow without running any command")
	f.BoolVar(&nonInteractive, "non-interactive", false, "Never prompt; confirmations take their default")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "Config file (default vtexdeploy.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Show debug output")
	pf.BoolVar(&noColor, "no-color", false, "Disable coloured output")
}

// loadConfig merges the config file, the environment and the flags that were
// set on the command line, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFrom(configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("binary") {
		cfg.WithBinary(binary)
	}
	if flags.Changed("manifest") {
		cfg.WithManifest(manifestPath)
	}
	if flags.Changed("log-file") {
		cfg.WithOutput(logFile)
	}
	if flags.Changed("capture") {
		cfg.WithCapture(capture)
	}
	if flags.Changed("debug") {
		cfg.DebugMode = debug
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("no-color") {
		cfg.NoColor = noColor
	}
	if flags.Changed("non-interactive") {
		cfg.NonInteractive = nonInteractive
	}
	if flags.Changed("vendor-source") {
		vs, err := config.ParseVendorSource(vendorSource)
		if err != nil {
			return nil, err
		}
		cfg.WithVendorSource(vs)
	}
	return cfg, cfg.Validate()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func runDeploy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	interactive := !cfg.NonInteractive && isTerminal(os.Stdin)
	var p prompt.Prompter = &prompt.NonInteractive{}
	if interactive {
		p = prompt.NewSurvey()
	}

	report := output.NewReporter(output.ReporterOptions{
		Out:     cmd.OutOrStdout(),
		Verbose: cfg.Verbose,
		NoColor: cfg.NoColor || !isTerminal(os.Stdout),
	})

	t, err := selectType(p, interactive)
	if err != nil {
		return err
	}

	var be backend.CommandBackend
	if dryRun {
		report.Info("Dry run: commands are printed, not executed")
		be = backend.NewRecorder()
	}

	engine, err := runtime.New(runtime.Options{
		Config:   cfg,
		Backend:  be,
		Prompter: p,
		Reporter: report,
	})
	if err != nil {
		return err
	}

	return runError(engine.Run(cmd.Context(), t))
}

// runError marks failures the engine has already printed. Errors returned
// without an outcome happen before anything is shown.
func runError(out *runtime.Outcome, err error) error {
	if err == nil {
		return nil
	}
	if out == nil {
		return err
	}
	return reported{err}
}

func selectType(p prompt.Prompter, interactive bool) (workflow.Type, error) {
	if workflowType != "" {
		return workflow.ParseType(workflowType)
	}
	if !interactive {
		return "", fmt.Errorf("no workflow selected: pass --type when not running in a terminal")
	}

	options := make([]prompt.Option, 0, len(workflow.Types()))
	for _, t := range workflow.Types() {
		options = append(options, prompt.Option{Label: t.Label(), Value: string(t)})
	}
	v, err := p.Select("What do you want to deploy?", options)
	if err != nil {
		return "", err
	}
	return workflow.ParseType(v)
}
