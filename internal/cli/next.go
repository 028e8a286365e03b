package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raveheart1/shiplog/internal/config"
	"github.com/raveheart1/shiplog/internal/errors"
	"github.com/raveheart1/shiplog/internal/git"
	"github.com/raveheart1/shiplog/internal/output"
	"github.com/raveheart1/shiplog/internal/release"
)

var (
	nextBumpFlag   string
	nextPathFlag   string
	nextConfigFlag string
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the version the next release would produce",
	Long: `Compute the next version from the commits since the last release tag
and print it, without writing any file. Intended for CI pipelines:

  VERSION=$(shiplog next)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNext(cmd)
	},
}

func init() {
	rootCmd.AddCommand(nextCmd)

	nextCmd.Flags().StringVar(&nextBumpFlag, "bump", "", "Override the computed bump type (major, minor, patch)")
	nextCmd.Flags().StringVar(&nextPathFlag, "path", ".", "Repository root")
	nextCmd.Flags().StringVar(&nextConfigFlag, "config", "", "Project config path (default: .shiplog/config.yml)")
}

func runNext(cmd *cobra.Command) error {
	cfg, err := config.Load(nextConfigFlag)
	if err != nil {
		return errors.Wrap(err, errors.Configuration,
			"Check .shiplog/config.yml for syntax errors")
	}

	result, err := release.Run(git.NewClient(), release.Options{
		Root:     nextPathFlag,
		Override: nextBumpFlag,
		DryRun:   true,
		Config:   cfg,
	})
	if err != nil {
		return err
	}

	if result.Skipped {
		output.PrintNotice(cmd.ErrOrStderr(), "No releasable changes since the last tag.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.NextVersion)
	return nil
}
