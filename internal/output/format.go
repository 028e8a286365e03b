// Package output provides terminal output formatting utilities for the
// shiplog CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if
// unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintReleaseHeader prints the version transition being released.
// Uses cyan for the versions and bold white for the arrow line.
func PrintReleaseHeader(out io.Writer, from, to string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s %s %s\n", white("Releasing"), cyan(from), white("→"), cyan(to))
}

// PrintWorkspaceSummary prints one workspace's commit count after
// attribution. Uses green for changed workspaces, dim for untouched ones.
func PrintWorkspaceSummary(out io.Writer, name string, commits int) {
	if commits == 0 {
		dim := color.New(color.Faint).SprintFunc()
		fmt.Fprintf(out, "  %s\n", dim(name+": no changes"))
		return
	}
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(out, "  %s %s: %d commit(s)\n", green("✓"), name, commits)
}

// PrintSuccess prints a colored success message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintNotice prints a dim informational message, used for the
// nothing-to-release outcome.
func PrintNotice(out io.Writer, message string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s\n", dim(message))
}
