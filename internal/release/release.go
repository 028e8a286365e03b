// Package release orchestrates one release run: history retrieval,
// commit attribution, bump aggregation, version increment, changelog
// rewriting and manifest updates. It owns the sequencing and the terminal
// outcomes; the decision logic lives in the packages it coordinates.
package release

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/raveheart1/shiplog/internal/bump"
	"github.com/raveheart1/shiplog/internal/changelog"
	"github.com/raveheart1/shiplog/internal/commit"
	"github.com/raveheart1/shiplog/internal/config"
	"github.com/raveheart1/shiplog/internal/errors"
	"github.com/raveheart1/shiplog/internal/workspace"
)

// VCS is the full version-control collaborator the orchestrator consumes.
// It extends the attribution-facing interface with history retrieval.
type VCS interface {
	workspace.VCS
	LastTag(path string) (string, bool, error)
	FirstCommit(path string) (string, error)
	CommitsSinceTag(path, tag string) ([]commit.Raw, error)
}

// Options configures one release run.
type Options struct {
	// Root is the repository root directory.
	Root string
	// Override, when non-empty, bypasses bump aggregation with an explicit
	// bump type. Validated before any repository work.
	Override string
	// DryRun computes everything but writes nothing.
	DryRun bool
	// Date stamps the changelog heading; empty means today.
	Date string
	// Config carries the loaded tool configuration.
	Config *config.Configuration
}

// Result is the outcome of a release run.
type Result struct {
	// Skipped is true when no workspace changed and no override was given:
	// nothing to release. The remaining fields are zero in that case.
	Skipped bool
	// PreviousVersion and NextVersion bracket the release.
	PreviousVersion string
	NextVersion     string
	// Bump is the decided severity.
	Bump bump.Type
	// Workspaces is the attributed workspace set, read-only after the run.
	Workspaces map[string]*workspace.Workspace
	// CompareLink is the rendered comparison URL, empty when not
	// configured.
	CompareLink string
}

// Run executes one release against the repository at opts.Root.
func Run(vcs VCS, opts Options) (*Result, error) {
	// An invalid override is a user input error; reject it before any
	// repository work begins.
	var override *bump.Type
	if opts.Override != "" {
		t, err := bump.ParseType(opts.Override)
		if err != nil {
			return nil, errors.NewArgumentError(err.Error(),
				"Use --bump major, --bump minor or --bump patch")
		}
		override = &t
	}

	workspaces, err := workspace.Discover(opts.Root)
	if err != nil {
		return nil, errors.Wrap(err, errors.Repository)
	}

	tag, tagFound, err := vcs.LastTag(opts.Root)
	if err != nil {
		return nil, errors.Wrap(err, errors.Repository)
	}

	sinceTag := ""
	if tagFound {
		sinceTag = tag
	}
	commits, err := vcs.CommitsSinceTag(opts.Root, sinceTag)
	if err != nil {
		return nil, errors.Wrap(err, errors.Repository)
	}

	attributor := workspace.NewAttributor(vcs, opts.Root)
	repoChanged := attributor.Attribute(commits, workspaces)

	decided, err := decideBump(override, repoChanged, workspaces)
	if err != nil {
		return nil, err
	}
	if decided == nil {
		return &Result{Skipped: true, Workspaces: workspaces}, nil
	}

	current, err := workspace.RootVersion(opts.Root)
	if err != nil {
		return nil, errors.Wrap(err, errors.Repository)
	}

	next, err := nextVersion(current, *decided, opts.Config.Prerelease)
	if err != nil {
		return nil, err
	}

	result := &Result{
		PreviousVersion: current,
		NextVersion:     next,
		Bump:            *decided,
		Workspaces:      workspaces,
		CompareLink:     compareLink(opts.Config, vcs, opts.Root, tag, tagFound, next),
	}

	if opts.DryRun {
		return result, nil
	}

	if err := writeChangelogs(opts, result); err != nil {
		return nil, errors.Wrap(err, errors.Repository)
	}
	if err := workspace.WriteVersions(opts.Root, next, workspaces); err != nil {
		return nil, errors.Wrap(err, errors.Repository)
	}

	return result, nil
}

// decideBump resolves the bump type: the override wins outright, otherwise
// the repo-wide aggregation runs. A nil result with nil error is the
// nothing-to-release outcome.
func decideBump(override *bump.Type, repoChanged bool, workspaces map[string]*workspace.Workspace) (*bump.Type, error) {
	if override != nil {
		return override, nil
	}
	if !repoChanged {
		return nil, nil
	}
	decided, ok := bump.DecideRepo(workspaces)
	if !ok {
		return nil, nil
	}
	return &decided, nil
}

// nextVersion increments current and applies a forced prerelease channel
// when configured. Parse or increment failures are fatal to the run.
func nextVersion(current string, t bump.Type, forcedChannel string) (string, error) {
	next, err := bump.ApplyString(current, t)
	if err != nil {
		return "", errors.Wrap(err, errors.Version,
			"Fix the version field in package.json to a valid semantic version")
	}

	if forcedChannel == "" {
		return next, nil
	}

	v, err := semver.NewVersion(next)
	if err != nil {
		return "", errors.Wrap(err, errors.Version)
	}
	forced, err := v.SetPrerelease(forcedChannel)
	if err != nil {
		return "", errors.WrapWithMessage(err, errors.Version,
			fmt.Sprintf("applying prerelease channel %q", forcedChannel))
	}
	return forced.String(), nil
}

// compareLink builds the comparison URL between the previous release
// marker and the new tag. Without a previous tag the repository's first
// commit anchors the range.
func compareLink(cfg *config.Configuration, vcs VCS, root, tag string, tagFound bool, next string) string {
	if cfg.CompareURLTemplate == "" {
		return ""
	}

	from := tag
	if !tagFound {
		first, err := vcs.FirstCommit(root)
		if err != nil {
			return ""
		}
		from = first
	}

	to := cfg.TagPrefix + next
	link := strings.ReplaceAll(cfg.CompareURLTemplate, "{from}", from)
	return strings.ReplaceAll(link, "{to}", to)
}

// writeChangelogs prepends the rendered release section to every changed
// workspace's changelog file.
func writeChangelogs(opts Options, result *Result) error {
	date := opts.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	rel := changelog.Release{
		Version:     result.NextVersion,
		Date:        date,
		CompareLink: result.CompareLink,
	}

	for _, ws := range result.Workspaces {
		if !ws.Changed {
			continue
		}
		section := changelog.Render(rel, ws)
		path := filepath.Join(ws.Path, opts.Config.ChangelogFile)
		if err := changelog.Prepend(path, section); err != nil {
			return err
		}
	}
	return nil
}
