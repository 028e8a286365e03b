package changelog

import (
	"fmt"
	"os"
	"strings"
)

// defaultHeader opens a changelog file created from scratch.
const defaultHeader = "# Changelog\n"

// Prepend inserts a rendered release section at the top of the changelog
// file, below the document header, preserving all previous releases. The
// file is created with a standard header when missing.
func Prepend(path, section string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		content := defaultHeader + "\n" + section
		return writeChangelog(path, content)
	}
	if err != nil {
		return fmt.Errorf("reading changelog %s: %w", path, err)
	}

	content := insertAfterHeader(string(data), section)
	return writeChangelog(path, content)
}

// insertAfterHeader places the section after the leading "# " header block
// (header line plus any blank lines), or at the very top when the file has
// no header.
func insertAfterHeader(existing, section string) string {
	lines := strings.SplitAfter(existing, "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "# ") {
		return section + "\n" + existing
	}

	insertAt := 1
	for insertAt < len(lines) && strings.TrimSpace(lines[insertAt]) == "" {
		insertAt++
	}

	head := strings.Join(lines[:insertAt], "")
	tail := strings.Join(lines[insertAt:], "")
	if tail == "" {
		return head + "\n" + section
	}
	return head + "\n" + section + "\n" + tail
}

func writeChangelog(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing changelog %s: %w", path, err)
	}
	return nil
}
