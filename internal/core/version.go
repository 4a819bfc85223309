package core

import (
	"regexp"
	"strconv"
)

// versionPattern finds the first MAJOR.MINOR.PATCH triple in free-form
// version output, with whatever pre-release qualifier is glued onto it.
var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)(-[0-9A-Za-z][0-9A-Za-z.-]*)?`)

// dateSuffixPattern recognizes dev builds that qualify the triple with
// a date instead of a "nightly" marker, e.g. "1.70.0-2023-03-29".
var dateSuffixPattern = regexp.MustCompile(`^-\d{4}-\d{2}-\d{2}`)

var nightlyMarker = regexp.MustCompile(`nightly|-dev\b`)

// Version is a compiler version as scraped from `--version` output.
//
// IsNightly is metadata, not part of the ordering: it gates the
// unstable-feature capability check, never the ranking of two
// candidates. Two versions with an equal triple compare as equal even
// when their nightly flags differ.
type Version struct {
	Major     int
	Minor     int
	Patch     int
	IsNightly bool
}

// ParseVersion scans free-form text for the first numeric version
// triple. It is total over arbitrary input: text without a triple
// yields ok=false, which is an expected outcome rather than an error.
func ParseVersion(text string) (Version, bool) {
	match := versionPattern.FindStringSubmatch(text)
	if match == nil {
		return Version{}, false
	}

	// The groups are all-digit by construction, so Atoi cannot fail.
	major, _ := strconv.Atoi(match[1])
	minor, _ := strconv.Atoi(match[2])
	patch, _ := strconv.Atoi(match[3])

	// A date inside a trailing commit-hash parenthesis is not a
	// pre-release marker; only a date glued onto the triple is.
	nightly := nightlyMarker.MatchString(text) || dateSuffixPattern.MatchString(match[4])

	return Version{Major: major, Minor: minor, Patch: patch, IsNightly: nightly}, true
}

// Compare orders versions lexicographically by (major, minor, patch).
// The nightly flag is deliberately excluded so that a nightly build
// never outranks (or underranks) a stable build of the same triple.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return compareInt(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return compareInt(v.Minor, other.Minor)
	}
	return compareInt(v.Patch, other.Patch)
}

// AtLeast reports whether v is numerically >= other.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

func compareInt(a int, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
