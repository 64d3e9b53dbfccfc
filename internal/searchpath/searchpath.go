// SPDX-License-Identifier: MPL-2.0

// Package searchpath reconciles an optional explicit target directory
// with the configured multi-directory module search path.
package searchpath

import (
	"path/filepath"
	"strings"
)

// Separator is the reserved character separating directories when a
// search path is serialized to a single configuration string. It is
// platform-dependent (':' on Unix, ';' on Windows).
const Separator = string(filepath.ListSeparator)

// Resolve combines an optional explicit target directory with the
// configured search path into the final ordered search path and the
// primary install directory.
//
// When targetDir is set it is prepended as-is; the configured list is
// kept unchanged even if it already contains the same directory
// (prepend wins, no de-duplication). The primary install directory is
// the first entry of the result. An empty input yields an empty path
// and an empty primary directory; callers must treat that as a
// configuration error before dispatching an install.
func Resolve(targetDir string, configured []string) (final []string, primary string) {
	if targetDir != "" {
		final = append(final, targetDir)
	}
	final = append(final, configured...)

	if len(final) == 0 {
		return nil, ""
	}
	return final, final[0]
}

// Split parses a serialized search path string into its ordered
// directory list, dropping empty segments.
func Split(path string) []string {
	var dirs []string
	for _, dir := range strings.Split(path, Separator) {
		if dir == "" {
			continue
		}
		dirs = append(dirs, dir)
	}
	return dirs
}

// Join serializes a directory list back to the single-string
// configuration representation. Join is the inverse of Split for lists
// without empty entries.
func Join(dirs []string) string {
	return strings.Join(dirs, Separator)
}
