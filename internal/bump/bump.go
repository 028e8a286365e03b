// Package bump turns classified commits into a semantic-version bump
// decision: per workspace, across the repository, and finally applied to
// the current version with prerelease channels preserved.
package bump

import (
	"fmt"

	"github.com/raveheart1/shiplog/internal/commit"
	"github.com/raveheart1/shiplog/internal/workspace"
)

// Type is a version bump severity, ordered patch < minor < major.
type Type int

const (
	Patch Type = iota
	Minor
	Major
)

// String returns the bump type's name as used on the command line.
func (t Type) String() string {
	switch t {
	case Patch:
		return "patch"
	case Minor:
		return "minor"
	case Major:
		return "major"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType validates a caller-supplied override bump type. Anything
// outside the closed set is rejected up front, before any repository work.
func ParseType(s string) (Type, error) {
	switch s {
	case "patch":
		return Patch, nil
	case "minor":
		return Minor, nil
	case "major":
		return Major, nil
	}
	return Patch, fmt.Errorf("invalid bump type %q (expected major, minor or patch)", s)
}

// Decide reduces one workspace's commits to a bump type. Any breaking
// commit decides major immediately. Otherwise the result defaults to patch
// and upgrades to minor on the first minor-mapped type; with major already
// ruled out there is nothing further to scan for. An empty list is patch.
func Decide(commits []commit.Parsed) Type {
	for _, c := range commits {
		if c.Breaking {
			return Major
		}
	}
	for _, c := range commits {
		if c.Type.BumpsMinor() {
			return Minor
		}
	}
	return Patch
}

// DecideRepo reduces all changed workspaces to the repository-wide bump by
// taking the maximum of the per-workspace decisions. The second return
// value is false when no workspace changed: "nothing to release" is a
// distinct outcome, never a silent patch.
func DecideRepo(workspaces map[string]*workspace.Workspace) (Type, bool) {
	decided := false
	result := Patch

	for _, ws := range workspaces {
		if !ws.Changed {
			continue
		}
		d := Decide(ws.Commits)
		if !decided || d > result {
			result = d
		}
		decided = true
	}

	return result, decided
}
