package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/shiplog/internal/commit"
	"github.com/raveheart1/shiplog/internal/testutil"
)

const testRoot = "/repo"

func singleRepoWorkspaces() map[string]*Workspace {
	return map[string]*Workspace{
		"app": {Name: "app", ShortName: "app", Path: testRoot, RelPath: ""},
	}
}

func multiRepoWorkspaces() map[string]*Workspace {
	return map[string]*Workspace{
		"a": {Name: "@acme/a", ShortName: "a", Path: testRoot + "/packages/a", RelPath: "packages/a"},
		"b": {Name: "@acme/b", ShortName: "b", Path: testRoot + "/packages/b", RelPath: "packages/b"},
	}
}

func TestAttribute_SingleWorkspaceRepo(t *testing.T) {
	vcs := &testutil.RecordingVCS{}
	attr := NewAttributor(vcs, testRoot)
	workspaces := singleRepoWorkspaces()

	raws := []commit.Raw{
		{Hash: "c1", Subject: "feat: add x"},
		{Hash: "c2", Subject: "chore: bump version to 1.0.0"},
		{Hash: "c3", Subject: "fix: y"},
	}

	repoChanged := attr.Attribute(raws, workspaces)

	require.True(t, repoChanged)
	ws := workspaces["app"]
	require.Len(t, ws.Commits, 2)
	assert.True(t, ws.Changed)
	assert.Equal(t, commit.TypeFeat, ws.Commits[0].Type)
	assert.Equal(t, commit.TypeFix, ws.Commits[1].Type)
}

func TestAttribute_SingleWorkspaceScopeDefaults(t *testing.T) {
	attr := NewAttributor(&testutil.RecordingVCS{}, testRoot)
	workspaces := singleRepoWorkspaces()

	attr.Attribute([]commit.Raw{{Hash: "c1", Subject: "feat: no scope here"}}, workspaces)

	commits := workspaces["app"].Commits
	require.Len(t, commits, 1)
	assert.Equal(t, "app", commits[0].Scope)
}

func TestAttribute_SingleWorkspaceKeepsExplicitScope(t *testing.T) {
	attr := NewAttributor(&testutil.RecordingVCS{}, testRoot)
	workspaces := singleRepoWorkspaces()

	attr.Attribute([]commit.Raw{{Hash: "c1", Subject: "feat(cli): scoped"}}, workspaces)

	commits := workspaces["app"].Commits
	require.Len(t, commits, 1)
	assert.Equal(t, "cli", commits[0].Scope)
}

func TestAttribute_MultiWorkspaceDirectScope(t *testing.T) {
	attr := NewAttributor(&testutil.RecordingVCS{}, testRoot)
	workspaces := multiRepoWorkspaces()

	repoChanged := attr.Attribute([]commit.Raw{{Hash: "c1", Subject: "feat(a): add thing"}}, workspaces)

	require.True(t, repoChanged)
	assert.True(t, workspaces["a"].Changed)
	require.Len(t, workspaces["a"].Commits, 1)
	assert.False(t, workspaces["b"].Changed)
	assert.Empty(t, workspaces["b"].Commits)
}

func TestAttribute_MultiWorkspaceRequiresScope(t *testing.T) {
	attr := NewAttributor(&testutil.RecordingVCS{}, testRoot)
	workspaces := multiRepoWorkspaces()

	repoChanged := attr.Attribute([]commit.Raw{{Hash: "c1", Subject: "feat: scopeless"}}, workspaces)

	assert.False(t, repoChanged)
	assert.False(t, workspaces["a"].Changed)
	assert.False(t, workspaces["b"].Changed)
}

func TestAttribute_UnknownScopeIsNoop(t *testing.T) {
	attr := NewAttributor(&testutil.RecordingVCS{}, testRoot)
	workspaces := multiRepoWorkspaces()

	repoChanged := attr.Attribute([]commit.Raw{{Hash: "c1", Subject: "fix(zzz): nothing owns this"}}, workspaces)

	assert.False(t, repoChanged)
}

func TestAttribute_DirectScopeMatchesPrivateWorkspace(t *testing.T) {
	attr := NewAttributor(&testutil.RecordingVCS{}, testRoot)
	workspaces := multiRepoWorkspaces()
	workspaces["a"].Private = true

	attr.Attribute([]commit.Raw{{Hash: "c1", Subject: "fix(a): private is fine for direct scope"}}, workspaces)

	assert.True(t, workspaces["a"].Changed)
}

func TestAttribute_GroupedDependencyUpdate(t *testing.T) {
	productionDiff := `   "dependencies": {
-    "lodash": "^4.17.20",
+    "lodash": "^4.17.21",
   },
`
	devOnlyDiff := `   "devDependencies": {
-    "vitest": "^1.0.0",
+    "vitest": "^1.2.0",
   },
`

	tests := map[string]struct {
		diff            string
		expectedChanged bool
	}{
		"production dependency change attributes": {productionDiff, true},
		"dev-only change leaves workspace untouched": {devOnlyDiff, false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			vcs := &testutil.RecordingVCS{
				Files: map[string][]string{"h1": {"packages/a/package.json"}},
				Diffs: map[string]string{"h1:packages/a/package.json": tc.diff},
			}
			attr := NewAttributor(vcs, testRoot)
			workspaces := multiRepoWorkspaces()

			raws := []commit.Raw{{Hash: "h1", Subject: "chore(deps): bump the production group with 5 updates"}}
			repoChanged := attr.Attribute(raws, workspaces)

			assert.Equal(t, tc.expectedChanged, repoChanged)
			assert.Equal(t, tc.expectedChanged, workspaces["a"].Changed)
			assert.False(t, workspaces["b"].Changed)
		})
	}
}

func TestAttribute_GroupedUpdateSkipsPrivateBeforeDiffFetch(t *testing.T) {
	vcs := &testutil.RecordingVCS{
		Files: map[string][]string{"h1": {
			"packages/a/package.json",
			"packages/b/package.json",
		}},
		Diffs: map[string]string{
			"h1:packages/b/package.json": `   "dependencies": {
+    "express": "^4.19.0",
   },
`,
		},
	}
	attr := NewAttributor(vcs, testRoot)
	workspaces := multiRepoWorkspaces()
	workspaces["a"].Private = true

	raws := []commit.Raw{{Hash: "h1", Subject: "chore(deps): bump the production group with 2 updates"}}
	attr.Attribute(raws, workspaces)

	// The private workspace's manifest must not even be diffed.
	require.Equal(t, 1, vcs.CallCount("FileDiff"))
	diffCalls := vcs.CallsTo("FileDiff")
	assert.Equal(t, "packages/b/package.json", diffCalls[0].Args[2])

	assert.False(t, workspaces["a"].Changed)
	assert.True(t, workspaces["b"].Changed)
}

func TestAttribute_GroupedUpdateIgnoresRootManifest(t *testing.T) {
	vcs := &testutil.RecordingVCS{
		Files: map[string][]string{"h1": {"package.json", "README.md"}},
	}
	attr := NewAttributor(vcs, testRoot)
	workspaces := multiRepoWorkspaces()

	raws := []commit.Raw{{Hash: "h1", Subject: "chore(deps): bump the tooling group with 1 update"}}
	repoChanged := attr.Attribute(raws, workspaces)

	assert.False(t, repoChanged)
	assert.Zero(t, vcs.CallCount("FileDiff"))
}

func TestAttribute_GroupedUpdateWithoutHashIsSkipped(t *testing.T) {
	vcs := &testutil.RecordingVCS{}
	attr := NewAttributor(vcs, testRoot)
	workspaces := multiRepoWorkspaces()

	raws := []commit.Raw{{Subject: "chore(deps): bump the production group with 5 updates"}}
	repoChanged := attr.Attribute(raws, workspaces)

	assert.False(t, repoChanged)
	assert.Zero(t, vcs.CallCount("ChangedFiles"))
}

func TestAttribute_IndividualDependencyUpdate(t *testing.T) {
	attr := NewAttributor(&testutil.RecordingVCS{}, testRoot)
	workspaces := multiRepoWorkspaces()
	workspaces["a"].DependencyNames = map[string]struct{}{"lodash": {}}
	workspaces["b"].DependencyNames = map[string]struct{}{"express": {}}

	raws := []commit.Raw{{Hash: "c1", Subject: "chore(deps): bump lodash from 4.17.20 to 4.17.21"}}
	repoChanged := attr.Attribute(raws, workspaces)

	require.True(t, repoChanged)
	assert.True(t, workspaces["a"].Changed)
	assert.False(t, workspaces["b"].Changed)
}

func TestAttribute_IndividualUpdateMatchesSharedDependency(t *testing.T) {
	attr := NewAttributor(&testutil.RecordingVCS{}, testRoot)
	workspaces := multiRepoWorkspaces()
	workspaces["a"].DependencyNames = map[string]struct{}{"lodash": {}}
	workspaces["b"].DependencyNames = map[string]struct{}{"lodash": {}}

	raws := []commit.Raw{{Hash: "c1", Subject: "chore(deps): bump lodash from 4.17.20 to 4.17.21"}}
	attr.Attribute(raws, workspaces)

	assert.True(t, workspaces["a"].Changed)
	assert.True(t, workspaces["b"].Changed)
}

func TestAttribute_IndividualUpdateSkipsPrivateWorkspace(t *testing.T) {
	attr := NewAttributor(&testutil.RecordingVCS{}, testRoot)
	workspaces := multiRepoWorkspaces()
	workspaces["a"].Private = true
	workspaces["a"].DependencyNames = map[string]struct{}{"lodash": {}}

	raws := []commit.Raw{{Hash: "c1", Subject: "chore(deps): bump lodash from 4.17.20 to 4.17.21"}}
	repoChanged := attr.Attribute(raws, workspaces)

	assert.False(t, repoChanged)
	assert.False(t, workspaces["a"].Changed)
}

func TestAttribute_VersionBumpMarkerNeverAttributed(t *testing.T) {
	attr := NewAttributor(&testutil.RecordingVCS{}, testRoot)
	workspaces := multiRepoWorkspaces()

	raws := []commit.Raw{{Hash: "c1", Subject: "chore(a): bump version to 2.0.0"}}
	repoChanged := attr.Attribute(raws, workspaces)

	assert.False(t, repoChanged)
	assert.False(t, workspaces["a"].Changed)
}

func TestAttribute_ChangedIffCommitsNonEmpty(t *testing.T) {
	attr := NewAttributor(&testutil.RecordingVCS{}, testRoot)
	workspaces := multiRepoWorkspaces()

	attr.Attribute([]commit.Raw{
		{Hash: "c1", Subject: "feat(a): thing"},
		{Hash: "c2", Subject: "docs(nope): unknown scope"},
	}, workspaces)

	for _, ws := range workspaces {
		assert.Equal(t, ws.Changed, len(ws.Commits) > 0, "workspace %s", ws.ShortName)
	}
}
