// Package workspace models the packages of a repository (one per npm
// workspace, or a single record for the whole repository) and attributes
// classified commits to them. Attribution is the only writer of workspace
// state: it takes the freshly discovered set, runs one pass over the commit
// history, and the records are read-only afterwards.
package workspace

import (
	"github.com/raveheart1/shiplog/internal/commit"
)

// Workspace is one package unit within a repository. Changed and Commits
// start false/empty and are populated by the Attributor; downstream
// consumers (bump aggregation, changelog rendering, manifest rewriting)
// only read them.
type Workspace struct {
	// Name is the manifest name, possibly scoped ("@org/pkg").
	Name string
	// ShortName is Name without its scope prefix; commit scopes route on it.
	ShortName string
	// Path is the absolute directory of the workspace on disk.
	Path string
	// RelPath is the repository-relative directory, "" for the root
	// workspace. Grouped dependency updates match changed files against it.
	RelPath string
	// Version is the current manifest version.
	Version string
	// Private mirrors the manifest's "private" field. Private workspaces
	// are skipped by dependency fan-out but still accept direct scope
	// matches.
	Private bool
	// DependencyNames is the set of declared production dependency names.
	DependencyNames map[string]struct{}

	// Changed is true iff Commits is non-empty.
	Changed bool
	// Commits are the classified commits attributed to this workspace,
	// in history order.
	Commits []commit.Parsed
}

// add appends a classified commit and marks the workspace changed. The two
// fields are always set together.
func (w *Workspace) add(c commit.Parsed) {
	w.Commits = append(w.Commits, c)
	w.Changed = true
}

// VCS is the version-control collaborator the attributor consults to
// resolve grouped dependency updates. Implemented by internal/git; tests
// substitute a recording mock.
type VCS interface {
	// ChangedFiles lists the repository-relative paths touched by a commit.
	ChangedFiles(path, hash string) ([]string, error)
	// FileDiff returns the unified diff text of one file in a commit.
	FileDiff(path, hash, file string) (string, error)
}
