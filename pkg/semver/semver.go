// SPDX-License-Identifier: MPL-2.0

package semver

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Version represents a parsed semantic version.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Original   string
}

// versionRegex matches semantic version strings, with or without a leading "v".
var versionRegex = regexp.MustCompile(`^v?(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:-([0-9A-Za-z\-\.]+))?(?:\+([0-9A-Za-z\-\.]+))?$`)

// exactRequirementRegex matches dependency requirements that pin an exact
// version: either a bare version ("1.2.3") or an equality expression
// ("= 1.2.3", "=1.2.3"). Range expressions deliberately do not match.
var exactRequirementRegex = regexp.MustCompile(`^=?\s*(v?\d+(?:\.\d+)?(?:\.\d+)?(?:-[0-9A-Za-z\-\.]+)?)$`)

// Parse parses a version string into a Version.
func Parse(s string) (*Version, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return nil, fmt.Errorf("invalid version format: %s", s)
	}

	v := &Version{Original: s}

	var err error
	v.Major, err = strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid major version: %w", err)
	}

	if matches[2] != "" {
		v.Minor, err = strconv.Atoi(matches[2])
		if err != nil {
			return nil, fmt.Errorf("invalid minor version: %w", err)
		}
	}

	if matches[3] != "" {
		v.Patch, err = strconv.Atoi(matches[3])
		if err != nil {
			return nil, fmt.Errorf("invalid patch version: %w", err)
		}
	}

	if matches[4] != "" {
		v.Prerelease = matches[4]
	}

	return v, nil
}

// String returns the version as originally written.
func (v *Version) String() string {
	return v.Original
}

// Compare compares two versions.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v *Version) Compare(other *Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}

	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}

	if v.Patch != other.Patch {
		if v.Patch < other.Patch {
			return -1
		}
		return 1
	}

	// Prerelease versions have lower precedence
	if v.Prerelease == "" && other.Prerelease != "" {
		return 1
	}
	if v.Prerelease != "" && other.Prerelease == "" {
		return -1
	}
	if v.Prerelease != other.Prerelease {
		if v.Prerelease < other.Prerelease {
			return -1
		}
		return 1
	}

	return 0
}

// IsValid checks if a string is a valid semantic version.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Equal reports whether two version strings denote the same version.
// A leading "v" on either side does not affect the comparison.
// Unparseable strings are compared literally.
func Equal(a, b string) bool {
	va, errA := Parse(a)
	vb, errB := Parse(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return va.Compare(vb) == 0
}

// Sort sorts a slice of version strings in descending order (newest first).
// Unparseable entries are dropped.
func Sort(versions []string) []string {
	var parsed []*Version
	for _, vs := range versions {
		v, err := Parse(vs)
		if err != nil {
			continue
		}
		parsed = append(parsed, v)
	}

	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].Compare(parsed[j]) > 0
	})

	result := make([]string, len(parsed))
	for i, v := range parsed {
		result[i] = v.Original
	}

	return result
}

// Latest returns the highest version from a slice of version strings.
func Latest(versions []string) (string, error) {
	sorted := Sort(versions)
	if len(sorted) == 0 {
		return "", fmt.Errorf("no valid versions available")
	}
	return sorted[0], nil
}

// ExactRequirement extracts the pinned version from a dependency
// requirement expression, if the expression pins one exactly.
// "1.2.3" and "= 1.2.3" both yield ("1.2.3", true); range expressions
// such as ">= 1.0.0" yield ("", false).
func ExactRequirement(requirement string) (string, bool) {
	matches := exactRequirementRegex.FindStringSubmatch(strings.TrimSpace(requirement))
	if matches == nil {
		return "", false
	}
	if !IsValid(matches[1]) {
		return "", false
	}
	return matches[1], true
}
