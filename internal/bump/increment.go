package bump

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Apply increments current by the decided bump type and returns the new
// version string. The arithmetic is semver's; this function only decides
// which increment variant to request and which prerelease identifier to
// carry over.
//
// When the current version carries a prerelease component, its first
// identifier token is preserved on the result: 1.0.0-alpha.3 bumped minor
// becomes 1.1.0-alpha. The increment always operates on the release core
// so a prerelease patch bump moves the patch number rather than merely
// finalizing the prerelease.
func Apply(current *semver.Version, t Type) (string, error) {
	prerelease := current.Prerelease()
	base := *current

	if prerelease != "" {
		stripped, err := current.SetPrerelease("")
		if err != nil {
			return "", fmt.Errorf("stripping prerelease from %s: %w", current, err)
		}
		base = stripped
	}

	var next semver.Version
	switch t {
	case Major:
		next = base.IncMajor()
	case Minor:
		next = base.IncMinor()
	case Patch:
		next = base.IncPatch()
	default:
		return "", fmt.Errorf("invalid bump type %v", t)
	}

	if prerelease != "" {
		identifier := strings.SplitN(prerelease, ".", 2)[0]
		withPre, err := next.SetPrerelease(identifier)
		if err != nil {
			return "", fmt.Errorf("applying prerelease identifier %q: %w", identifier, err)
		}
		next = withPre
	}

	return next.String(), nil
}

// ApplyString parses current and increments it. A version that does not
// parse is fatal to the run: no sensible version can be emitted from it.
func ApplyString(current string, t Type) (string, error) {
	v, err := semver.NewVersion(current)
	if err != nil {
		return "", fmt.Errorf("parsing current version %q: %w", current, err)
	}
	return Apply(v, t)
}
