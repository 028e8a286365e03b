// Package changelog renders attributed commits into markdown release
// sections and merges them into existing CHANGELOG.md files. Rendering is
// mechanical: all classification happened upstream, this package only
// groups by section label and formats.
package changelog

import (
	"fmt"
	"strings"

	"github.com/raveheart1/shiplog/internal/commit"
	"github.com/raveheart1/shiplog/internal/workspace"
)

// Release describes one rendered release section.
type Release struct {
	// Version is the new version, without tag prefix.
	Version string
	// Date is the release date, YYYY-MM-DD.
	Date string
	// CompareLink is an optional URL comparing this release to the
	// previous marker; rendered as the version heading's link target.
	CompareLink string
}

// Render formats a workspace's attributed commits as one markdown release
// section. The function is idempotent - given the same input, it produces
// identical output.
func Render(r Release, ws *workspace.Workspace) string {
	var b strings.Builder

	writeHeading(&b, r)
	writeBreaking(&b, ws.Commits)

	grouped := groupBySection(ws.Commits)
	for _, section := range commit.SectionOrder() {
		entries := grouped[section]
		if len(entries) == 0 {
			continue
		}
		b.WriteString("\n### " + section + "\n\n")
		for _, c := range entries {
			b.WriteString(formatEntry(c))
		}
	}

	return b.String()
}

// writeHeading writes the version heading, linked when a compare URL is
// available.
func writeHeading(b *strings.Builder, r Release) {
	if r.CompareLink != "" {
		fmt.Fprintf(b, "## [%s](%s) (%s)\n", r.Version, r.CompareLink, r.Date)
		return
	}
	fmt.Fprintf(b, "## %s (%s)\n", r.Version, r.Date)
}

// writeBreaking calls out breaking commits and their notes ahead of the
// regular sections.
func writeBreaking(b *strings.Builder, commits []commit.Parsed) {
	var lines []string
	for _, c := range commits {
		if !c.Breaking {
			continue
		}
		lines = append(lines, "- "+scopedSubject(c)+"\n")
		for _, note := range c.Notes {
			lines = append(lines, "  - "+note.Text+"\n")
		}
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n### BREAKING CHANGES\n\n")
	for _, line := range lines {
		b.WriteString(line)
	}
}

// groupBySection buckets commits by their changelog section label,
// preserving history order within each bucket.
func groupBySection(commits []commit.Parsed) map[string][]commit.Parsed {
	grouped := make(map[string][]commit.Parsed)
	for _, c := range commits {
		section := c.Type.Section()
		grouped[section] = append(grouped[section], c)
	}
	return grouped
}

// formatEntry renders one commit as a bullet, with its short hash when
// known.
func formatEntry(c commit.Parsed) string {
	line := "- " + scopedSubject(c)
	if c.Hash != "" {
		line += " (" + shortHash(c.Hash) + ")"
	}
	return line + "\n"
}

// scopedSubject prefixes the subject with its scope, matching the
// conventional changelog layout.
func scopedSubject(c commit.Parsed) string {
	if c.Scope == "" {
		return c.Subject
	}
	return "**" + c.Scope + ":** " + c.Subject
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
