package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// lockfileName is the npm lockfile updated alongside manifests when present.
const lockfileName = "package-lock.json"

// versionFieldPattern matches a manifest's version field, capturing the key
// and separator so the file's existing formatting survives the rewrite.
var versionFieldPattern = regexp.MustCompile(`("version"\s*:\s*)"([^"]*)"`)

// WriteVersions rewrites the version field of the root manifest, every
// changed workspace's manifest, and the root lockfile when one exists. The
// rewrite is targeted string surgery, not a JSON re-marshal, so indentation
// and key order are preserved.
func WriteVersions(root, newVersion string, workspaces map[string]*Workspace) error {
	rootManifest := filepath.Join(root, manifestName)
	oldRoot, err := rewriteFirstVersion(rootManifest, newVersion)
	if err != nil {
		return err
	}

	for _, ws := range workspaces {
		if !ws.Changed || ws.Path == root {
			continue
		}
		if _, err := rewriteFirstVersion(filepath.Join(ws.Path, manifestName), newVersion); err != nil {
			return err
		}
		ws.Version = newVersion
	}

	lockfile := filepath.Join(root, lockfileName)
	if _, err := os.Stat(lockfile); err == nil {
		if err := rewriteLockfileVersions(lockfile, oldRoot, newVersion); err != nil {
			return err
		}
	}

	return nil
}

// rewriteFirstVersion replaces the first version field in the file and
// returns the previous value.
func rewriteFirstVersion(path, newVersion string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading manifest %s: %w", path, err)
	}

	loc := versionFieldPattern.FindSubmatchIndex(data)
	if loc == nil {
		return "", fmt.Errorf("manifest %s has no version field", path)
	}

	old := string(data[loc[4]:loc[5]])
	rewritten := append([]byte{}, data[:loc[4]]...)
	rewritten = append(rewritten, newVersion...)
	rewritten = append(rewritten, data[loc[5]:]...)

	if err := os.WriteFile(path, rewritten, 0644); err != nil {
		return "", fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return old, nil
}

// rewriteLockfileVersions replaces every version field in the lockfile
// whose value equals the previous root version. Dependency entries carry
// their own versions and are left untouched.
func rewriteLockfileVersions(path, oldVersion, newVersion string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading lockfile %s: %w", path, err)
	}

	rewritten := versionFieldPattern.ReplaceAllFunc(data, func(m []byte) []byte {
		sub := versionFieldPattern.FindSubmatch(m)
		if string(sub[2]) != oldVersion {
			return m
		}
		return []byte(string(sub[1]) + `"` + newVersion + `"`)
	})

	if err := os.WriteFile(path, rewritten, 0644); err != nil {
		return fmt.Errorf("writing lockfile %s: %w", path, err)
	}
	return nil
}
