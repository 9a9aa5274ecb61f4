package catalog

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// IsNewer reports whether candidate is a strictly newer semver than current.
// A leading "v" is tolerated on either side. Unparseable versions are never
// "newer"; the caller gets false rather than an error, because version
// strings in user catalogs are advisory.
func IsNewer(candidate, current string) bool {
	cv, err := parseSemver(candidate)
	if err != nil {
		return false
	}
	cur, err := parseSemver(current)
	if err != nil {
		return false
	}
	return cv.GreaterThan(cur)
}

func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
