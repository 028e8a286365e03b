// Package config provides hierarchical configuration management for
// shiplog using koanf. Configuration is loaded with priority: environment
// variables > project config (.shiplog/config.yml) > user config
// (~/.config/shiplog/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the shiplog CLI tool configuration.
type Configuration struct {
	// TagPrefix is prepended to versions when matching release tags,
	// usually "v". Can be set via SHIPLOG_TAG_PREFIX.
	TagPrefix string `koanf:"tag_prefix"`

	// ChangelogFile is the changelog filename rewritten on release,
	// relative to the repository root (and to each workspace directory in
	// multi-package repositories).
	ChangelogFile string `koanf:"changelog_file"`

	// CompareURLTemplate builds the comparison link in release headings.
	// {from} and {to} are replaced with release markers. Empty disables
	// the link.
	CompareURLTemplate string `koanf:"compare_url_template"`

	// Prerelease forces a prerelease channel identifier (e.g. "alpha") on
	// computed versions. Empty preserves whatever channel the current
	// version carries.
	Prerelease string `koanf:"prerelease"`

	// DryRun computes and prints the release without writing any file.
	// Can be set via SHIPLOG_DRY_RUN.
	DryRun bool `koanf:"dry_run"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path
	// (default: .shiplog/config.yml).
	ProjectConfigPath string
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}
	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads user-level config when present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads project-level config when present. Supports a
// custom path override (for testing).
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		path = customPath
	}
	if !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load project config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider("SHIPLOG_", ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// envTransform maps SHIPLOG_TAG_PREFIX to tag_prefix and so on.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "SHIPLOG_"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
