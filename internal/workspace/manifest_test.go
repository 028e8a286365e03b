package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteVersions_RootManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `{
  "name": "solo-app",
  "version": "1.2.3",
  "dependencies": {
    "some-lib": "^1.0.0"
  }
}`)

	workspaces := map[string]*Workspace{
		"solo-app": {Name: "solo-app", ShortName: "solo-app", Path: root, Changed: true},
	}

	require.NoError(t, WriteVersions(root, "1.3.0", workspaces))

	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.3.0"`)
	// Dependency versions are untouched.
	assert.Contains(t, string(data), `"some-lib": "^1.0.0"`)
}

func TestWriteVersions_ChangedWorkspacesOnly(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `{"name": "monorepo", "version": "1.0.0"}`)
	writeManifest(t, filepath.Join(root, "packages", "a"), `{"name": "a", "version": "1.0.0"}`)
	writeManifest(t, filepath.Join(root, "packages", "b"), `{"name": "b", "version": "1.0.0"}`)

	workspaces := map[string]*Workspace{
		"a": {ShortName: "a", Path: filepath.Join(root, "packages", "a"), RelPath: "packages/a", Changed: true},
		"b": {ShortName: "b", Path: filepath.Join(root, "packages", "b"), RelPath: "packages/b"},
	}

	require.NoError(t, WriteVersions(root, "1.1.0", workspaces))

	a, _ := os.ReadFile(filepath.Join(root, "packages", "a", "package.json"))
	b, _ := os.ReadFile(filepath.Join(root, "packages", "b", "package.json"))
	assert.Contains(t, string(a), `"version": "1.1.0"`)
	assert.Contains(t, string(b), `"version": "1.0.0"`)
	assert.Equal(t, "1.1.0", workspaces["a"].Version)
}

func TestWriteVersions_PreservesFormatting(t *testing.T) {
	root := t.TempDir()
	original := `{
	"name": "tabs-app",
	"version"  :  "2.0.0",
	"license": "MIT"
}`
	writeManifest(t, root, original)

	require.NoError(t, WriteVersions(root, "2.1.0", map[string]*Workspace{}))

	data, _ := os.ReadFile(filepath.Join(root, "package.json"))
	// The odd spacing around the separator survives the rewrite.
	assert.Contains(t, string(data), `"version"  :  "2.1.0"`)
	assert.Contains(t, string(data), "\t\"license\": \"MIT\"")
}

func TestWriteVersions_Lockfile(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `{"name": "solo", "version": "1.0.0"}`)
	lockfile := `{
  "name": "solo",
  "version": "1.0.0",
  "packages": {
    "": {
      "name": "solo",
      "version": "1.0.0"
    },
    "node_modules/left-pad": {
      "version": "1.3.0"
    }
  }
}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "package-lock.json"), []byte(lockfile), 0644))

	require.NoError(t, WriteVersions(root, "1.1.0", map[string]*Workspace{}))

	data, _ := os.ReadFile(filepath.Join(root, "package-lock.json"))
	text := string(data)
	// Both the top-level and root-package entries move; dependency pins stay.
	assert.NotContains(t, text, `"version": "1.0.0"`)
	assert.Contains(t, text, `"version": "1.3.0"`)
}

func TestWriteVersions_MissingVersionField(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `{"name": "no-version"}`)

	err := WriteVersions(root, "1.0.0", map[string]*Workspace{})
	assert.Error(t, err)
}
