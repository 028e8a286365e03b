// Package depdiff classifies unified-diff text of package.json manifests,
// deciding whether a change touches production dependencies as opposed to
// devDependencies or other top-level sections.
//
// The scan is line-oriented on purpose. It tracks a single "inside the
// dependencies section" flag keyed off literal section markers and has no
// awareness of JSON nesting: a "dependencies" key nested inside another
// value is still treated as a section boundary. That is an accepted
// limitation of the heuristic, not something to fix with a JSON parser.
package depdiff

import (
	"bufio"
	"strings"
)

// sectionExitKeys are top-level manifest keys that close the dependencies
// section when seen. peerDependencies and optionalDependencies count as
// boundaries too: only the literal "dependencies" block is production.
var sectionExitKeys = []string{
	"devDependencies",
	"peerDependencies",
	"optionalDependencies",
	"scripts",
	"engines",
	"repository",
	"keywords",
	"author",
	"license",
	"bugs",
	"homepage",
	"main",
	"module",
	"types",
	"bin",
	"files",
	"workspaces",
	"private",
	"name",
	"version",
	"description",
}

// HasProductionDependencyChange reports whether the given unified-diff text
// adds or removes a line inside the manifest's "dependencies" section.
// The scan short-circuits on the first such line. Pure and deterministic.
func HasProductionDependencyChange(diff string) bool {
	inDependencies := false

	scanner := bufio.NewScanner(strings.NewReader(diff))
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case opensDependencies(line):
			inDependencies = true
		case closesDependencies(line):
			inDependencies = false
		case inDependencies && isDependencyChange(line):
			return true
		}
	}

	return false
}

// opensDependencies matches the production dependencies section header.
func opensDependencies(line string) bool {
	return strings.Contains(line, `"dependencies":`)
}

// closesDependencies matches any other top-level section header.
func closesDependencies(line string) bool {
	for _, key := range sectionExitKeys {
		if strings.Contains(line, `"`+key+`":`) {
			return true
		}
	}
	return false
}

// isDependencyChange matches an added or removed line. Lines carrying the
// literal "dependencies" marker are skipped so the section header's own
// +/- diff marker never counts as a change.
func isDependencyChange(line string) bool {
	if !strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "-") {
		return false
	}
	return !strings.Contains(line, `"dependencies"`)
}
