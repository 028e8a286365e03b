package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ChangedFiles lists the repository-relative paths touched by a commit,
// diffing against its first parent (or the empty tree for a root commit).
func (c *Client) ChangedFiles(path, hash string) ([]string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	changes, err := commitChanges(repo, hash)
	if err != nil {
		return nil, err
	}

	var files []string
	seen := make(map[string]bool)
	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			name = change.From.Name
		}
		if name != "" && !seen[name] {
			files = append(files, name)
			seen[name] = true
		}
	}

	logDebug("[git] ChangedFiles(%s): %d files", hash, len(files))
	return files, nil
}

// FileDiff returns the unified diff text of a single file within a commit.
// The full commit patch is generated once and the file's section extracted
// from it.
func (c *Client) FileDiff(path, hash, file string) (string, error) {
	repo, err := openRepo(path)
	if err != nil {
		return "", err
	}

	changes, err := commitChanges(repo, hash)
	if err != nil {
		return "", err
	}

	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			name = change.From.Name
		}
		if name != file {
			continue
		}
		patch, err := change.Patch()
		if err != nil {
			return "", fmt.Errorf("generating patch for %s in %s: %w", file, hash, err)
		}
		return patch.String(), nil
	}

	return "", fmt.Errorf("file %s not changed in commit %s", file, hash)
}

// commitChanges computes the tree changes a commit introduces relative to
// its first parent.
func commitChanges(repo *gogit.Repository, hash string) (object.Changes, error) {
	co, err := repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("resolving commit %s: %w", hash, err)
	}

	tree, err := co.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree of %s: %w", hash, err)
	}

	var parentTree *object.Tree
	if co.NumParents() > 0 {
		parent, err := co.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("resolving parent of %s: %w", hash, err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return nil, fmt.Errorf("reading parent tree of %s: %w", hash, err)
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, fmt.Errorf("diffing trees of %s: %w", hash, err)
	}
	return changes, nil
}
