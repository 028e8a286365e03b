package workspace

import (
	"regexp"
	"strings"

	"github.com/raveheart1/shiplog/internal/commit"
	"github.com/raveheart1/shiplog/internal/depdiff"
)

// depsScope is the commit scope that triggers dependency-update handling.
const depsScope = "deps"

// groupedUpdatePattern matches Dependabot-style grouped update subjects,
// e.g. "bump the production group with 5 updates".
var groupedUpdatePattern = regexp.MustCompile(`^bump the .+ group`)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default, it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for attribution. Pass nil to
// disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Attributor decides which workspace(s) each commit belongs to. It holds
// exclusive write access to the workspace set for the duration of one
// Attribute pass.
type Attributor struct {
	vcs  VCS
	root string
}

// NewAttributor returns an Attributor that resolves grouped dependency
// updates through the given VCS collaborator, rooted at the repository
// path used for VCS queries.
func NewAttributor(vcs VCS, root string) *Attributor {
	return &Attributor{vcs: vcs, root: root}
}

// Attribute runs one classification pass over the raw commit history.
// Unparseable commits, version-bump marker commits, and commits whose scope
// resolves to nothing are skipped without error; one bad commit never
// interrupts the batch. VCS failures during grouped-update resolution are
// likewise absorbed per file.
//
// Returns true iff at least one workspace received at least one commit.
func (a *Attributor) Attribute(raws []commit.Raw, workspaces map[string]*Workspace) bool {
	single := singleWorkspace(workspaces, a.root)
	repoChanged := false

	for _, raw := range raws {
		parsed, ok := commit.Parse(raw.Subject, raw.Body)
		if !ok {
			logDebug("[attribute] skipping unclassifiable commit %q", raw.Subject)
			continue
		}
		if commit.IsVersionBumpMarker(parsed) {
			logDebug("[attribute] skipping version bump marker %q", raw.Subject)
			continue
		}
		parsed.Hash = raw.Hash

		if single != nil {
			if parsed.Scope == "" {
				parsed.Scope = single.ShortName
			}
			single.add(parsed)
			repoChanged = true
			continue
		}

		if parsed.Scope == "" {
			continue
		}

		// Direct scope match and dependency fan-out are independent rules,
		// not branches of one decision: both may fire for the same commit.
		if ws, ok := workspaces[parsed.Scope]; ok {
			ws.add(parsed)
			repoChanged = true
		}
		if parsed.Scope == depsScope {
			if a.attributeDependencyUpdate(parsed, workspaces) {
				repoChanged = true
			}
		}
	}

	return repoChanged
}

// singleWorkspace returns the sole workspace when the repository is
// single-package (exactly one workspace whose path is the repository root),
// nil otherwise.
func singleWorkspace(workspaces map[string]*Workspace, root string) *Workspace {
	if len(workspaces) != 1 {
		return nil
	}
	for _, ws := range workspaces {
		if ws.Path == root {
			return ws
		}
	}
	return nil
}

// attributeDependencyUpdate handles deps-scoped commits: grouped updates
// resolve through changed-file diffs, individual updates through declared
// dependency names. Reports whether any workspace received the commit.
func (a *Attributor) attributeDependencyUpdate(parsed commit.Parsed, workspaces map[string]*Workspace) bool {
	if groupedUpdatePattern.MatchString(parsed.Subject) {
		return a.attributeGroupedUpdate(parsed, workspaces)
	}
	return attributeIndividualUpdate(parsed, workspaces)
}

// attributeGroupedUpdate resolves a grouped dependency bump by inspecting
// the commit's changed manifests. Private workspaces are skipped before
// their diff is requested: diff retrieval is the expensive call, and its
// result would be discarded anyway.
func (a *Attributor) attributeGroupedUpdate(parsed commit.Parsed, workspaces map[string]*Workspace) bool {
	if parsed.Hash == "" {
		return false
	}

	files, err := a.vcs.ChangedFiles(a.root, parsed.Hash)
	if err != nil {
		logDebug("[attribute] listing changed files for %s: %v", parsed.Hash, err)
		return false
	}

	changed := false
	for _, file := range files {
		if !strings.HasSuffix(file, "package.json") {
			continue
		}
		// The root manifest belongs to no workspace.
		if file == "package.json" {
			continue
		}

		ws := owningWorkspace(file, workspaces)
		if ws == nil || ws.Private {
			continue
		}

		diff, err := a.vcs.FileDiff(a.root, parsed.Hash, file)
		if err != nil {
			logDebug("[attribute] diff for %s in %s: %v", file, parsed.Hash, err)
			continue
		}

		if depdiff.HasProductionDependencyChange(diff) {
			ws.add(parsed)
			changed = true
		}
	}
	return changed
}

// owningWorkspace maps a repository-relative file path to the workspace
// whose directory contains it.
func owningWorkspace(file string, workspaces map[string]*Workspace) *Workspace {
	for _, ws := range workspaces {
		if ws.RelPath == "" {
			continue
		}
		if strings.HasPrefix(file, ws.RelPath+"/") {
			return ws
		}
	}
	return nil
}

// attributeIndividualUpdate handles a single-dependency bump by checking
// each non-private workspace's declared dependency names against the commit
// subject. This is a substring test, not a structured parse: multiple
// workspaces can match the same commit when they share a dependency.
func attributeIndividualUpdate(parsed commit.Parsed, workspaces map[string]*Workspace) bool {
	changed := false
	for _, ws := range workspaces {
		if ws.Private {
			continue
		}
		for dep := range ws.DependencyNames {
			if strings.Contains(parsed.Subject, dep) {
				ws.add(parsed)
				changed = true
				break
			}
		}
	}
	return changed
}
