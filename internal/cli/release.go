package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/raveheart1/shiplog/internal/config"
	"github.com/raveheart1/shiplog/internal/errors"
	"github.com/raveheart1/shiplog/internal/git"
	"github.com/raveheart1/shiplog/internal/output"
	"github.com/raveheart1/shiplog/internal/release"
	"github.com/raveheart1/shiplog/internal/workspace"
)

var (
	releaseBumpFlag   string
	releaseDryRunFlag bool
	releasePathFlag   string
	releaseConfigFlag string
	releaseDebugFlag  bool
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Classify commits since the last tag and cut a release",
	Long: `Classify the commits since the last release tag, decide the version
bump, and rewrite changelog files and manifest versions.

The bump is computed from the attributed commits: any breaking commit
(marked with ! in the header) forces major, feature commits force minor,
everything else is patch. Use --bump to override the computed type.

Examples:
  shiplog release                 # Compute and apply the next release
  shiplog release --dry-run       # Show what would be released
  shiplog release --bump minor    # Force a minor bump
  shiplog release --path ../app   # Release a repository elsewhere`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd)
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().StringVar(&releaseBumpFlag, "bump", "", "Override the computed bump type (major, minor, patch)")
	releaseCmd.Flags().BoolVar(&releaseDryRunFlag, "dry-run", false, "Compute the release without writing files")
	releaseCmd.Flags().StringVar(&releasePathFlag, "path", ".", "Repository root")
	releaseCmd.Flags().StringVar(&releaseConfigFlag, "config", "", "Project config path (default: .shiplog/config.yml)")
	releaseCmd.Flags().BoolVar(&releaseDebugFlag, "debug", false, "Enable debug logging")
}

func runRelease(cmd *cobra.Command) error {
	cfg, err := config.Load(releaseConfigFlag)
	if err != nil {
		return errors.Wrap(err, errors.Configuration,
			"Check .shiplog/config.yml for syntax errors")
	}

	if releaseDebugFlag {
		logger := func(format string, args ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
		}
		git.SetDebugLogger(logger)
		workspace.SetDebugLogger(logger)
	}

	dryRun := cfg.DryRun || releaseDryRunFlag

	result, err := runPipeline(release.Options{
		Root:     releasePathFlag,
		Override: releaseBumpFlag,
		DryRun:   dryRun,
		Config:   cfg,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Skipped {
		output.PrintNotice(out, "No releasable changes since the last tag; nothing to do.")
		return nil
	}

	output.PrintReleaseHeader(out, result.PreviousVersion, result.NextVersion)
	printWorkspaceSummaries(cmd, result)

	if dryRun {
		output.PrintNotice(out, "Dry run: no files were written.")
		return nil
	}

	output.PrintSuccess(out, fmt.Sprintf("Released %s (%s bump)", result.NextVersion, result.Bump))
	return nil
}

// runPipeline executes the release with a spinner over the history scan
// when stdout is a terminal.
func runPipeline(opts release.Options) (*release.Result, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr), spinner.WithSuffix(" scanning commit history..."))
	s.Start()
	defer s.Stop()

	return release.Run(git.NewClient(), opts)
}

// printWorkspaceSummaries lists every workspace with its attributed commit
// count, changed workspaces first in name order.
func printWorkspaceSummaries(cmd *cobra.Command, result *release.Result) {
	names := make([]string, 0, len(result.Workspaces))
	for name := range result.Workspaces {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ws := result.Workspaces[name]
		output.PrintWorkspaceSummary(cmd.OutOrStdout(), name, len(ws.Commits))
	}
}
