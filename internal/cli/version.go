package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/shiplog/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print shiplog version and build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "shiplog %s (commit %s, built %s)\n",
			build.Version, build.Commit, build.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
