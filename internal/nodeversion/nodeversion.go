// Package nodeversion interprets the version reported by a Node.js
// interpreter and judges whether the bundled language server can run on it.
package nodeversion

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/nglmercer/trigger-system/internal/errors"
)

// EmptyVersion is returned by Parse when the probe produced nothing usable.
var EmptyVersion = semver.New(0, 0, 0, "", "")

// MinimumSupported is the oldest Node.js release the language server bundle is
// built for. Older interpreters may load the bundle but fail at runtime on
// missing APIs, so doctor flags them.
var MinimumSupported = semver.New(18, 0, 0, "", "")

// Parse interprets the output of `node --version`, a single line such as
// "v22.1.0". Surrounding whitespace and the leading "v" are tolerated.
func Parse(raw string) (*semver.Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return EmptyVersion, errors.New("node reported no version")
	}

	version, err := semver.NewVersion(trimmed)
	if err != nil {
		return EmptyVersion, errors.Wrapf(err, "unable to parse node version %q", trimmed)
	}

	return version, nil
}

// Supported reports whether version is at least MinimumSupported.
func Supported(version *semver.Version) bool {
	return !version.LessThan(MinimumSupported)
}
