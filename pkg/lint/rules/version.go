package rules

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// isoDateLayout is the only accepted release date format.
const isoDateLayout = "2006-01-02"

// parseDate parses a strict, calendar-valid YYYY-MM-DD date.
func parseDate(text string) (time.Time, bool) {
	date, err := time.Parse(isoDateLayout, text)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// canonicalSemver returns the "vMAJOR.MINOR.PATCH" form of a semantic version,
// accepting an optional leading "v". It returns "" if version is not semver.
func canonicalSemver(version string) string {
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") && !strings.HasPrefix(version, "V") {
		version = "v" + version
	}
	version = "v" + version[1:]
	if !semver.IsValid(version) {
		return ""
	}
	return semver.Canonical(version)
}

// compareVersions orders two release versions. It reports false when either
// version cannot be interpreted.
func compareVersions(a, b string) (int, bool) {
	if ca, cb := canonicalSemver(a), canonicalSemver(b); ca != "" && cb != "" {
		return semver.Compare(ca, cb), true
	}

	pa, okA := numericParts(a)
	pb, okB := numericParts(b)
	if !okA || !okB {
		return 0, false
	}
	for len(pa) < len(pb) {
		pa = append(pa, 0)
	}
	for len(pb) < len(pa) {
		pb = append(pb, 0)
	}
	return slices.Compare(pa, pb), true
}

// isPatchRelease reports whether version has a non-zero patch component,
// such as 1.9.1 or 2024.1.0.4.
func isPatchRelease(version string) bool {
	if canonical := canonicalSemver(version); canonical != "" {
		core := strings.TrimSuffix(canonical, semver.Prerelease(canonical))
		return core != semver.MajorMinor(canonical)+".0"
	}
	parts, ok := numericParts(version)
	return ok && len(parts) >= 3 && parts[len(parts)-1] > 0
}

// numericParts splits a dotted version such as "2024.1.0.4" into integers.
func numericParts(version string) ([]int, bool) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	if version == "" {
		return nil, false
	}

	fields := strings.Split(version, ".")
	parts := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return nil, false
		}
		parts = append(parts, n)
	}
	return parts, true
}

// versionKey identifies a version for duplicate detection.
func versionKey(version string) string {
	if canonical := canonicalSemver(version); canonical != "" {
		return canonical
	}
	return strings.ToLower(strings.TrimSpace(version))
}
