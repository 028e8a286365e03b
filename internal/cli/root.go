// Package cli wires shiplog's cobra commands: release, next and version.
package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/raveheart1/shiplog/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "shiplog",
	Short: "Changelog and version automation for conventional-commit repositories",
	Long: `shiplog inspects the commits since your last release tag, classifies
them by the conventional-commit grammar, attributes them to the affected
workspaces, and computes the next semantic version. It then rewrites
changelog files and manifest versions consistently across the repository.

Run 'shiplog release' to cut a release, or 'shiplog next' to only print
the version a release would produce.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, printing structured errors to stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		return err
	}
	return nil
}

// printError renders an error with category and remediation guidance when
// it is a CLIError, or plainly otherwise.
func printError(out io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	var cliErr *errors.CLIError
	if !stderrors.As(err, &cliErr) {
		fmt.Fprintf(out, "%s %v\n", red("Error:"), err)
		return
	}

	fmt.Fprintf(out, "%s %s\n", red(cliErr.Category.String()+":"), cliErr.Message)
	if cliErr.Usage != "" {
		fmt.Fprintf(out, "\nUsage: %s\n", cliErr.Usage)
	}
	if len(cliErr.Remediation) > 0 {
		fmt.Fprintln(out)
		for _, step := range cliErr.Remediation {
			fmt.Fprintf(out, "  - %s\n", step)
		}
	}
}
