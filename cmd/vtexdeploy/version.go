package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LiboWorks/vtex-deploy/pkg/vtexdeploy"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vtexdeploy %s\n", vtexdeploy.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
