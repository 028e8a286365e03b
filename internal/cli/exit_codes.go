package cli

import (
	stderrors "errors"

	"github.com/raveheart1/shiplog/internal/errors"
)

// Exit codes for the shiplog CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution, including the
	// nothing-to-release outcome.
	ExitSuccess = 0

	// ExitRuntimeFailure indicates a repository or version failure.
	ExitRuntimeFailure = 1

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 3

	// ExitInvalidConfiguration indicates invalid or unreadable
	// configuration.
	ExitInvalidConfiguration = 4
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cliErr *errors.CLIError
	if !stderrors.As(err, &cliErr) {
		return ExitRuntimeFailure
	}

	switch cliErr.Category {
	case errors.Argument:
		return ExitInvalidArguments
	case errors.Configuration:
		return ExitInvalidConfiguration
	default:
		return ExitRuntimeFailure
	}
}
