package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// manifestName is the package manifest file looked up in every workspace
// directory.
const manifestName = "package.json"

// Discover loads the repository's workspace set, keyed by short name.
//
// If the root manifest declares a "workspaces" array, each pattern is
// glob-expanded and every matching directory containing a package.json
// becomes one Workspace. Otherwise the repository itself is the sole
// workspace, with its path equal to the root.
func Discover(root string) (map[string]*Workspace, error) {
	rootManifest := filepath.Join(root, manifestName)
	k, err := loadManifest(rootManifest)
	if err != nil {
		return nil, err
	}

	patterns := k.Strings("workspaces")
	if len(patterns) == 0 {
		ws := workspaceFromManifest(k, root, "")
		return map[string]*Workspace{ws.ShortName: ws}, nil
	}

	workspaces := make(map[string]*Workspace)
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("expanding workspace pattern %q: %w", pattern, err)
		}
		for _, dir := range matches {
			ws, err := discoverDir(root, dir)
			if err != nil {
				return nil, err
			}
			if ws != nil {
				workspaces[ws.ShortName] = ws
			}
		}
	}

	if len(workspaces) == 0 {
		return nil, fmt.Errorf("workspace patterns %v matched no packages under %s", patterns, root)
	}
	return workspaces, nil
}

// discoverDir loads one workspace directory. Directories without a manifest
// are not workspaces and are skipped.
func discoverDir(root, dir string) (*Workspace, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, nil
	}

	manifest := filepath.Join(dir, manifestName)
	if _, err := os.Stat(manifest); err != nil {
		return nil, nil
	}

	k, err := loadManifest(manifest)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return nil, fmt.Errorf("relativizing workspace path %s: %w", dir, err)
	}

	return workspaceFromManifest(k, dir, filepath.ToSlash(rel)), nil
}

// loadManifest parses a package.json through koanf's JSON parser.
func loadManifest(path string) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
		return nil, fmt.Errorf("loading manifest %s: %w", path, err)
	}
	return k, nil
}

// workspaceFromManifest builds a Workspace record from parsed manifest
// fields. Only production dependencies feed DependencyNames; dev and peer
// dependencies never drive attribution.
func workspaceFromManifest(k *koanf.Koanf, dir, rel string) *Workspace {
	name := k.String("name")
	if name == "" {
		name = filepath.Base(dir)
	}

	deps := make(map[string]struct{})
	for _, dep := range k.MapKeys("dependencies") {
		deps[dep] = struct{}{}
	}

	return &Workspace{
		Name:            name,
		ShortName:       shortName(name),
		Path:            dir,
		RelPath:         rel,
		Version:         k.String("version"),
		Private:         k.Bool("private"),
		DependencyNames: deps,
	}
}

// RootVersion reads the version field of the repository's root manifest.
func RootVersion(root string) (string, error) {
	k, err := loadManifest(filepath.Join(root, manifestName))
	if err != nil {
		return "", err
	}
	version := k.String("version")
	if version == "" {
		return "", fmt.Errorf("root manifest in %s has no version field", root)
	}
	return version, nil
}

// shortName strips a scope prefix from a package name: "@org/pkg" -> "pkg".
func shortName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}
