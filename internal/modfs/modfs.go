// SPDX-License-Identifier: MPL-2.0

// Package modfs discovers modules already installed on a search path by
// reading each candidate directory's metadata file. It is the single
// source of truth for "what is installed where" shared by listing,
// uninstalling, and dependency satisfaction checks.
package modfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/buzzedword/puppet/pkg/metadata"
)

// UnknownVersion is displayed for installed modules whose metadata is
// missing or unreadable.
const UnknownVersion = "???"

// InstalledRelease is one module found on disk.
type InstalledRelease struct {
	// Name is the full module name from metadata, or the bare directory
	// name when no metadata could be read.
	Name string

	// Version is the installed release version, or UnknownVersion.
	Version string

	// Dir is the search path entry the module lives under.
	Dir string

	// Path is the module's own directory, Dir/<modname>.
	Path string

	// Metadata is the parsed metadata, nil when unreadable.
	Metadata *metadata.Metadata
}

// ModuleName returns the bare module name (the directory name).
func (r *InstalledRelease) ModuleName() string {
	return filepath.Base(r.Path)
}

// ScanDir returns the modules installed directly under dir, sorted by
// directory name. Subdirectories without readable metadata are still
// reported, carrying UnknownVersion, so listings surface them instead
// of hiding them. A missing dir yields an empty result, not an error.
func ScanDir(dir string) ([]InstalledRelease, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read module directory %s: %w", dir, err)
	}

	var releases []InstalledRelease
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		modPath := filepath.Join(dir, entry.Name())
		rel := InstalledRelease{
			Name:    entry.Name(),
			Version: UnknownVersion,
			Dir:     dir,
			Path:    modPath,
		}

		if meta, err := metadata.ParseFile(filepath.Join(modPath, metadata.Filename)); err == nil {
			rel.Name = meta.FullName()
			rel.Version = meta.Version
			rel.Metadata = meta
		}

		releases = append(releases, rel)
	}

	sort.Slice(releases, func(i, j int) bool {
		return releases[i].Path < releases[j].Path
	})

	return releases, nil
}

// ScanPath scans every search path entry in order. The result preserves
// search path ordering; within one directory modules are sorted.
func ScanPath(searchPath []string) ([]InstalledRelease, error) {
	var all []InstalledRelease
	for _, dir := range searchPath {
		releases, err := ScanDir(dir)
		if err != nil {
			return nil, err
		}
		all = append(all, releases...)
	}
	return all, nil
}

// Find locates a module on the search path by full name ("owner-modname")
// or bare module name. Directories earlier on the path shadow later
// ones, matching install-time precedence.
func Find(searchPath []string, name string) (*InstalledRelease, error) {
	normalized := metadata.NormalizeName(name)
	for _, dir := range searchPath {
		releases, err := ScanDir(dir)
		if err != nil {
			return nil, err
		}
		for i := range releases {
			rel := &releases[i]
			if rel.Name == normalized || rel.ModuleName() == normalized {
				return rel, nil
			}
		}
	}
	return nil, nil
}

// DependentsOf returns the installed modules that declare a dependency
// on the named module anywhere on the search path.
func DependentsOf(searchPath []string, fullName string) ([]InstalledRelease, error) {
	normalized := metadata.NormalizeName(fullName)

	all, err := ScanPath(searchPath)
	if err != nil {
		return nil, err
	}

	var dependents []InstalledRelease
	for _, rel := range all {
		if rel.Metadata == nil {
			continue
		}
		for _, dep := range rel.Metadata.Dependencies {
			if metadata.NormalizeName(dep.Name) == normalized {
				dependents = append(dependents, rel)
				break
			}
		}
	}

	return dependents, nil
}
