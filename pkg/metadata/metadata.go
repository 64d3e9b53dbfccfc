// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Filename is the metadata file carried at the root of every module release.
const Filename = "metadata.json"

var (
	// ErrInvalidName is the sentinel error wrapped by InvalidNameError.
	ErrInvalidName = errors.New("invalid module name")
	// ErrMissingVersion is returned when a metadata file has no version field.
	ErrMissingVersion = errors.New("module metadata has no version")
)

// fullNameRegex matches "owner-modname" full module names. The owner and
// the module name are each a lowercase alphanumeric word; the module name
// may contain underscores after the first character.
var fullNameRegex = regexp.MustCompile(`^[a-z0-9]+[-/][a-z][a-z0-9_]*$`)

type (
	// Dependency is a single entry of a module's dependency list.
	Dependency struct {
		// Name is the depended-on module's full name. Both "owner-modname"
		// and the legacy "owner/modname" spelling appear in the wild.
		Name string `json:"name"`

		// VersionRequirement is the version expression declared for the
		// dependency (e.g. "1.2.3", ">= 2.2.1"). May be empty.
		VersionRequirement string `json:"version_requirement,omitempty"`
	}

	// Metadata is the parsed content of a module's metadata.json.
	Metadata struct {
		// Name is the full module name, "owner-modname".
		Name string `json:"name"`

		// Version is the module release version.
		Version string `json:"version"`

		Author  string `json:"author,omitempty"`
		Summary string `json:"summary,omitempty"`
		License string `json:"license,omitempty"`
		Source  string `json:"source,omitempty"`

		// Dependencies lists the modules this release depends on,
		// in declaration order.
		Dependencies []Dependency `json:"dependencies,omitempty"`
	}

	// InvalidNameError is returned when a module name does not match the
	// "owner-modname" format.
	InvalidNameError struct {
		Name string
	}
)

// Error implements the error interface.
func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid module name %q: expected \"owner-modname\"", e.Name)
}

// Unwrap returns the sentinel ErrInvalidName.
func (e *InvalidNameError) Unwrap() error {
	return ErrInvalidName
}

// Parse decodes and validates module metadata from raw JSON.
func Parse(data []byte) (*Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode module metadata: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// ParseFile reads and parses a metadata.json file.
func ParseFile(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Validate checks that the metadata carries a well-formed name and a version.
func (m *Metadata) Validate() error {
	if !fullNameRegex.MatchString(m.Name) {
		return &InvalidNameError{Name: m.Name}
	}
	if strings.TrimSpace(m.Version) == "" {
		return fmt.Errorf("%w: %s", ErrMissingVersion, m.Name)
	}
	return nil
}

// FullName returns the module's name normalized to the "owner-modname"
// spelling, folding the legacy "owner/modname" form.
func (m *Metadata) FullName() string {
	return NormalizeName(m.Name)
}

// ModuleName returns the bare module name without the owner prefix.
// Installed module directories are named after it.
func (m *Metadata) ModuleName() string {
	full := m.FullName()
	if idx := strings.Index(full, "-"); idx >= 0 {
		return full[idx+1:]
	}
	return full
}

// Owner returns the owner segment of the full module name.
func (m *Metadata) Owner() string {
	full := m.FullName()
	if idx := strings.Index(full, "-"); idx >= 0 {
		return full[:idx]
	}
	return ""
}

// NormalizeName folds the legacy "owner/modname" spelling into the
// canonical "owner-modname" form. Names without an owner segment are
// returned unchanged.
func NormalizeName(name string) string {
	return strings.Replace(name, "/", "-", 1)
}

// IsFullName reports whether name looks like an "owner-modname" (or the
// legacy "owner/modname") full module name.
func IsFullName(name string) bool {
	return fullNameRegex.MatchString(name)
}
