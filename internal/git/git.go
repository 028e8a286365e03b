// Package git implements the VCS collaborator shiplog's core consumes:
// last-tag lookup, commit history retrieval, changed-file listing and
// per-file diff text. It uses the go-git library exclusively, so shiplog
// runs without a git CLI installation.
package git

import (
	"errors"
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/raveheart1/shiplog/internal/commit"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default, it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations. Pass nil
// to disable debug logging. The logger function should format and output
// the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// stopIteration terminates a history walk early; never surfaced to callers.
var stopIteration = errors.New("stop iteration")

// Client performs repository queries through go-git.
type Client struct{}

// NewClient returns a Client backed by go-git.
func NewClient() *Client {
	return &Client{}
}

// openRepo opens a git repository at the specified path. It uses go-git's
// PlainOpenWithOptions with DetectDotGit enabled to traverse up the
// directory tree to find the repository root.
func openRepo(path string) (*gogit.Repository, error) {
	logDebug("[git] opening repository at %s", path)

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// LastTag returns the name of the most recent tag by tagged-commit
// committer date. The second return value is false when the repository has
// no tags.
func (c *Client) LastTag(path string) (string, bool, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", false, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return "", false, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var best string
	var bestTime int64
	found := false

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		co, err := resolveTagCommit(repo, ref)
		if err != nil {
			logDebug("[git] skipping unresolvable tag %s: %v", ref.Name().Short(), err)
			return nil
		}
		when := co.Committer.When.Unix()
		if !found || when > bestTime {
			best = ref.Name().Short()
			bestTime = when
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("iterating tags: %w", err)
	}

	logDebug("[git] LastTag: %q found=%v", best, found)
	return best, found, nil
}

// resolveTagCommit resolves a tag reference to its commit, peeling
// annotated tags.
func resolveTagCommit(repo *gogit.Repository, ref *plumbing.Reference) (*object.Commit, error) {
	if co, err := repo.CommitObject(ref.Hash()); err == nil {
		return co, nil
	}
	tag, err := repo.TagObject(ref.Hash())
	if err != nil {
		return nil, err
	}
	return tag.Commit()
}

// FirstCommit returns the hash of the repository's root commit, walking
// the history from HEAD.
func (c *Client) FirstCommit(path string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	iter, err := repo.Log(&gogit.LogOptions{})
	if err != nil {
		return "", fmt.Errorf("walking history: %w", err)
	}
	defer iter.Close()

	var first string
	err = iter.ForEach(func(co *object.Commit) error {
		first = co.Hash.String()
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking history: %w", err)
	}
	if first == "" {
		return "", fmt.Errorf("repository at %s has no commits", path)
	}

	logDebug("[git] FirstCommit: %s", first)
	return first, nil
}

// CommitsSinceTag returns the commits after the given tag, newest first.
// With an empty tag the full history is returned. Each commit's message is
// split into subject (first line) and body (the rest).
func (c *Client) CommitsSinceTag(path, tag string) ([]commit.Raw, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	var stopAt plumbing.Hash
	if tag != "" {
		stopAt, err = tagCommitHash(repo, tag)
		if err != nil {
			return nil, err
		}
	}

	iter, err := repo.Log(&gogit.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}
	defer iter.Close()

	var commits []commit.Raw
	err = iter.ForEach(func(co *object.Commit) error {
		if tag != "" && co.Hash == stopAt {
			return stopIteration
		}
		subject, body := splitMessage(co.Message)
		commits = append(commits, commit.Raw{
			Hash:    co.Hash.String(),
			Subject: subject,
			Body:    body,
		})
		return nil
	})
	if err != nil && !errors.Is(err, stopIteration) {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	logDebug("[git] CommitsSinceTag(%q): %d commits", tag, len(commits))
	return commits, nil
}

// tagCommitHash resolves a tag name to the hash of the commit it points at.
func tagCommitHash(repo *gogit.Repository, tag string) (plumbing.Hash, error) {
	ref, err := repo.Tag(tag)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving tag %s: %w", tag, err)
	}
	co, err := resolveTagCommit(repo, ref)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving tag %s: %w", tag, err)
	}
	return co.Hash, nil
}

// splitMessage separates a commit message into its subject line and body.
func splitMessage(message string) (subject, body string) {
	subject, body, _ = strings.Cut(message, "\n")
	return strings.TrimRight(subject, "\r"), strings.TrimSpace(body)
}
