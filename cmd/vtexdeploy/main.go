package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// rootCmd runs a deploy when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vtexdeploy",
	Short: "Guided VTEX IO deploys for store themes and custom apps",
	Long: `vtexdeploy walks an operator through a VTEX IO deploy: it logs in,
recreates the production workspace, releases or publishes the app, asks for a
review and only then promotes the workspace to master.

Workflows:
  patch_stable       Release patch stable
  major_stable       Release major stable (with CMS migration)
  new_custom_app     Deploy a new custom app
  update_custom_app  Update a custom app

Examples:
  vtexdeploy
  vtexdeploy --type patch_stable --vendor-source manifest
  vtexdeploy plan major_stable`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDeploy,
}

// reported marks errors the reporter has already shown to the operator.
type reported struct{ error }

func (r reported) Unwrap() error { return r.error }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var r reported
		if !errors.As(err, &r) {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		}
		os.Exit(1)
	}
}
