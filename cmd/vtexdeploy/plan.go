package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LiboWorks/vtex-deploy/pkg/vtexdeploy"
)

var planCmd = &cobra.Command{
	Use:   "plan [type]",
	Short: "Show the steps of a workflow without running it",
	Long: `Plan prints the ordered steps of a workflow: preconditions, platform CLI
commands, announcements and confirmation gates. Without a type every
workflow is printed.

Examples:
  vtexdeploy plan
  vtexdeploy plan update_custom_app`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		types := vtexdeploy.Types()
		if len(args) == 1 {
			t, err := vtexdeploy.ParseType(args[0])
			if err != nil {
				return err
			}
			types = []vtexdeploy.Type{t}
		}

		out := cmd.OutOrStdout()
		for i, t := range types {
			steps, err := vtexdeploy.Plan(t, vtexdeploy.FromEnvironment(configFile))
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "📋 %s: %s\n", t, t.Label())
			for n, s := range steps {
				fmt.Fprintf(out, "  %2d. %s\n", n+1, s.Description)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
