package cli

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/raveheart1/shiplog/internal/errors"
)

func TestPrintError(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	tests := map[string]struct {
		err      error
		contains []string
	}{
		"plain error": {
			err:      stderrors.New("something broke"),
			contains: []string{"Error: something broke"},
		},
		"argument error with remediation": {
			err: errors.NewArgumentError("invalid bump type \"huge\"",
				"Use one of: major, minor, patch"),
			contains: []string{
				"Argument Error: invalid bump type \"huge\"",
				"- Use one of: major, minor, patch",
			},
		},
		"argument error with usage": {
			err: &errors.CLIError{
				Category: errors.Argument,
				Message:  "unexpected argument",
				Usage:    "shiplog release [flags]",
			},
			contains: []string{"Usage: shiplog release [flags]"},
		},
		"configuration error": {
			err: errors.NewConfigError("cannot parse config",
				"Check .shiplog/config.yml for syntax errors"),
			contains: []string{
				"Configuration Error: cannot parse config",
				"Check .shiplog/config.yml",
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf strings.Builder
			printError(&buf, tc.err)
			for _, want := range tc.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	var buf strings.Builder
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "shiplog")
	assert.Contains(t, buf.String(), "commit")
}
