package config

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"tag_prefix":     "v",
		"changelog_file": "CHANGELOG.md",
		// compare_url_template: Empty disables compare links in release
		// headings. Example:
		//   https://github.com/acme/widgets/compare/{from}...{to}
		"compare_url_template": "",
		"prerelease":           "",
		"dry_run":              false,
	}
}

// GetDefaultConfigTemplate returns a fully commented config template that
// helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# Shiplog Configuration
# Priority: SHIPLOG_* env vars > .shiplog/config.yml > ~/.config/shiplog/config.yml

tag_prefix: v                         # Prefix for release tags (v1.2.3)
changelog_file: CHANGELOG.md          # Changelog filename to rewrite
compare_url_template: ""              # e.g. https://github.com/acme/widgets/compare/{from}...{to}
prerelease: ""                        # Force a prerelease channel (alpha, beta, rc)
dry_run: false                        # Compute the release without writing files
`
}
