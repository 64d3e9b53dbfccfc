// SPDX-License-Identifier: MPL-2.0

// Package local implements the installer contract against an unpacked
// local release repository (a private mirror laid out on disk). The
// repository holds one directory per module full name, with one
// subdirectory per released version:
//
//	<root>/puppetlabs-stdlib/2.2.1/metadata.json
//	<root>/puppetlabs-stdlib/2.2.1/...
//
// The module identifier handed to Run is either a published full name
// ("owner-modname") or a filesystem path to an unpacked release
// directory; both produce the same outcome shape.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/buzzedword/puppet/internal/installer"
	"github.com/buzzedword/puppet/internal/modfs"
	"github.com/buzzedword/puppet/pkg/metadata"
	"github.com/buzzedword/puppet/pkg/semver"
)

// Installer installs modules from a local release repository.
type Installer struct {
	// repoRoot is the release repository root directory.
	repoRoot string
}

// New creates an Installer reading releases below repoRoot.
func New(repoRoot string) *Installer {
	return &Installer{repoRoot: repoRoot}
}

// release is a selected module release ready to be copied.
type release struct {
	meta *metadata.Metadata
	// dir is the unpacked release directory.
	dir string
}

// Run installs the named module (and, unless disabled, its
// dependencies) into the primary install directory. Expected failures
// are reported through the outcome; a returned error means something
// outside the contract went wrong (I/O surprises, cancellation).
func (i *Installer) Run(ctx context.Context, name string, opts installer.Options) (*installer.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	installDir := opts.SearchPath[0]

	rel, fail := i.selectRequested(name, opts.Version)
	if fail != nil {
		return &installer.Outcome{Failure: fail}, nil
	}

	root := installer.InstalledModule{
		Name:    rel.meta.FullName(),
		Version: rel.meta.Version,
		Action:  installer.ActionInstall,
		Path:    installDir,
	}

	// An existing install of the requested module in the primary
	// directory blocks the install unless forced.
	existing, err := modfs.Find([]string{installDir}, rel.meta.ModuleName())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !opts.Force {
			return &installer.Outcome{Failure: alreadyInstalledFailure(name, opts.Version, existing)}, nil
		}
		if !semver.Equal(existing.Version, rel.meta.Version) {
			root.PreviousVersion = existing.Version
			root.Action = installer.ActionUpgrade
		}
	}

	if !opts.IgnoreDependencies {
		seen := map[string]bool{rel.meta.FullName(): true}
		deps, fail, err := i.installDependencies(ctx, rel.meta, opts, seen)
		if err != nil {
			return nil, err
		}
		if fail != nil {
			return &installer.Outcome{Failure: fail}, nil
		}
		root.Dependencies = deps
	}

	if err := installRelease(rel, installDir); err != nil {
		return nil, err
	}

	return installer.SuccessOutcome(installDir, []installer.InstalledModule{root}), nil
}

// selectRequested locates the release for the requested identifier,
// which is either a path to an unpacked release directory or a full
// module name to look up in the repository.
func (i *Installer) selectRequested(name, version string) (*release, *installer.Failure) {
	if isReleasePath(name) {
		rel, fail := loadReleaseDir(name)
		if fail != nil {
			return nil, fail
		}
		if version != "" && !semver.Equal(rel.meta.Version, version) {
			return nil, notFoundFailure(name, version, fmt.Sprintf(
				"The release at %s is version %s, not %s", name, rel.meta.Version, version))
		}
		return rel, nil
	}

	return i.selectRepoRelease(name, name, version)
}

// selectRepoRelease picks a release of fullName from the repository:
// the exact requested version when given, otherwise the newest one.
// requested names the module as the user spelled it, for error text.
func (i *Installer) selectRepoRelease(requested, fullName, version string) (*release, *installer.Failure) {
	if !metadata.IsFullName(fullName) {
		return nil, notFoundFailure(requested, version, fmt.Sprintf(
			"%q is not a valid full module name or release path", fullName))
	}
	if i.repoRoot == "" {
		return nil, notFoundFailure(requested, version,
			"No module repository is configured\n    Set 'module_repository' in the configuration file")
	}

	normalized := metadata.NormalizeName(fullName)
	moduleDir := filepath.Join(i.repoRoot, normalized)

	entries, err := os.ReadDir(moduleDir)
	if err != nil {
		return nil, notFoundFailure(requested, version, fmt.Sprintf(
			"No releases of '%s' exist in the module repository (%s)", normalized, i.repoRoot))
	}

	var versions []string
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}

	selected := version
	if selected == "" {
		latest, err := semver.Latest(versions)
		if err != nil {
			return nil, notFoundFailure(requested, version, fmt.Sprintf(
				"No valid releases of '%s' exist in the module repository (%s)", normalized, i.repoRoot))
		}
		selected = latest
	} else if !containsVersion(versions, selected) {
		return nil, notFoundFailure(requested, version, fmt.Sprintf(
			"No release of '%s' matches version %s (available: %s)",
			normalized, selected, strings.Join(semver.Sort(versions), ", ")))
	}

	rel, fail := loadReleaseDir(filepath.Join(moduleDir, selected))
	if fail != nil {
		return nil, fail
	}
	return rel, nil
}

// installDependencies walks meta's dependency list depth-first, in
// declaration order, installing or upgrading whatever the search path
// does not already satisfy. seen guards against a module appearing on
// two declaration paths (and against cyclic metadata, which would
// otherwise never terminate).
func (i *Installer) installDependencies(ctx context.Context, meta *metadata.Metadata, opts installer.Options, seen map[string]bool) ([]installer.InstalledModule, *installer.Failure, error) {
	installDir := opts.SearchPath[0]

	var nodes []installer.InstalledModule
	for _, dep := range meta.Dependencies {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		fullName := metadata.NormalizeName(dep.Name)
		if seen[fullName] {
			continue
		}
		seen[fullName] = true

		wanted, _ := semver.ExactRequirement(dep.VersionRequirement)

		rel, fail := i.selectRepoRelease(fullName, fullName, wanted)
		if fail != nil {
			fail.Detail = fmt.Sprintf("Could not resolve dependency '%s' of '%s'\n%s",
				fullName, meta.FullName(), fail.Detail)
			return nil, fail, nil
		}

		existing, err := modfs.Find(opts.SearchPath, rel.meta.ModuleName())
		if err != nil {
			return nil, nil, err
		}

		node := installer.InstalledModule{
			Name:    rel.meta.FullName(),
			Version: rel.meta.Version,
			Action:  installer.ActionInstall,
			Path:    installDir,
		}

		switch {
		case existing != nil && satisfies(existing.Version, rel.meta.Version):
			// Already present at the selected version or newer; nothing
			// to do, and nothing to report.
			continue
		case existing != nil:
			// Present but older: upgrade in place where it lives.
			node.PreviousVersion = existing.Version
			node.Action = installer.ActionUpgrade
			node.Path = existing.Dir
		}

		if err := installRelease(rel, node.Path); err != nil {
			return nil, nil, err
		}

		children, fail, err := i.installDependencies(ctx, rel.meta, opts, seen)
		if err != nil {
			return nil, nil, err
		}
		if fail != nil {
			return nil, fail, nil
		}
		node.Dependencies = children

		nodes = append(nodes, node)
	}

	return nodes, nil, nil
}

// satisfies reports whether an installed version satisfies the selected
// one. Unparseable installed versions are assumed fine; reinstalling
// over a module we cannot read would be worse than leaving it alone.
func satisfies(installed, selected string) bool {
	vi, errI := semver.Parse(installed)
	vs, errS := semver.Parse(selected)
	if errI != nil || errS != nil {
		return true
	}
	return vi.Compare(vs) >= 0
}

// installRelease copies the release content into dir/<modname>,
// replacing any previous install of the module there.
func installRelease(rel *release, dir string) error {
	dst := filepath.Join(dir, rel.meta.ModuleName())

	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("failed to clear %s: %w", dst, err)
	}
	if err := copyDir(rel.dir, dst); err != nil {
		return fmt.Errorf("failed to install %s into %s: %w", rel.meta.FullName(), dir, err)
	}
	return nil
}

// loadReleaseDir reads an unpacked release directory's metadata.
func loadReleaseDir(dir string) (*release, *installer.Failure) {
	meta, err := metadata.ParseFile(filepath.Join(dir, metadata.Filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &installer.Failure{
				Summary: "Not a module release",
				Detail:  fmt.Sprintf("No %s found at %s", metadata.Filename, dir),
			}
		}
		return nil, &installer.Failure{
			Summary: "Invalid module metadata",
			Detail:  fmt.Sprintf("Could not read module metadata at %s\n  %v", dir, err),
		}
	}
	return &release{meta: meta, dir: dir}, nil
}

// isReleasePath reports whether the module identifier denotes a
// filesystem path rather than a published name. "owner/modname" is a
// name, so relative release paths must be spelled with a leading dot.
func isReleasePath(name string) bool {
	return filepath.IsAbs(name) || strings.HasPrefix(name, ".")
}

func containsVersion(versions []string, version string) bool {
	for _, v := range versions {
		if semver.Equal(v, version) {
			return true
		}
	}
	return false
}

func notFoundFailure(name, version, detail string) *installer.Failure {
	return &installer.Failure{
		Summary: "Module not found",
		Detail:  fmt.Sprintf("Could not install module '%s' (%s)\n  %s", name, displayVersion(version), detail),
	}
}

func alreadyInstalledFailure(name, version string, existing *modfs.InstalledRelease) *installer.Failure {
	return &installer.Failure{
		Summary: "Module already installed",
		Detail: fmt.Sprintf(
			"Could not install module '%s' (%s)\n  Module '%s' (v%s) is already installed in %s\n    Use `puppet module install --force` to re-install",
			name, displayVersion(version), existing.Name, existing.Version, existing.Dir),
	}
}

func displayVersion(version string) string {
	if version == "" {
		return "latest"
	}
	return version
}

// copyDir recursively copies a directory tree. Irregular files
// (sockets, devices) are skipped; symlinks are followed.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, relPath)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() && d.Type()&os.ModeSymlink == 0 {
			return nil
		}

		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
