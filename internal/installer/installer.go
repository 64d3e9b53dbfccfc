// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"context"
	"errors"
	"fmt"
)

// DefaultEnvironment is the environment name used when none is configured.
const DefaultEnvironment = "production"

// Action distinguishes a fresh install from an in-place upgrade.
type Action string

const (
	// ActionInstall marks a module that was not previously present.
	ActionInstall Action = "install"
	// ActionUpgrade marks a module that replaced an older release.
	ActionUpgrade Action = "upgrade"
)

// ErrEmptySearchPath is the sentinel error wrapped by ConfigurationError
// when the reconciled search path has no entries.
var ErrEmptySearchPath = errors.New("module search path is empty")

type (
	// Options is the fully reconciled option set for a single install
	// request. It is constructed once per invocation and not mutated
	// after being handed to an Installer.
	Options struct {
		// TargetDir is the explicit install directory, if the user gave
		// one. After reconciliation it is always SearchPath[0].
		TargetDir string

		// SearchPath is the final ordered module search path. The first
		// entry is the primary install directory.
		SearchPath []string

		// Version pins the release to install. Empty selects the latest
		// available release.
		Version string

		// Environment names the environment the install targets.
		Environment string

		// Force overwrites an already installed module.
		Force bool

		// IgnoreDependencies installs the named module only.
		IgnoreDependencies bool
	}

	// InstalledModule describes one module an install placed on disk.
	// Dependencies form a finite tree; child ordering is significant
	// and callers must preserve it.
	InstalledModule struct {
		// Name is the full module name, "owner-modname".
		Name string

		// Version is the installed release version, in display form
		// (with or without a leading "v").
		Version string

		// PreviousVersion is the release that was replaced. Set only
		// when Action is ActionUpgrade.
		PreviousVersion string

		// Action records whether the module was installed or upgraded.
		Action Action

		// Path is the directory the module actually landed in. It may
		// differ from the overall install directory when a dependency
		// resolved elsewhere on the search path.
		Path string

		// Dependencies lists the modules installed or upgraded to
		// satisfy this one, in resolution order.
		Dependencies []InstalledModule
	}

	// Success is the successful variant of an install outcome.
	Success struct {
		// InstallDir is the primary install directory.
		InstallDir string

		// Installed lists the top-level modules the install acted on.
		Installed []InstalledModule
	}

	// Failure is the failed variant of an install outcome. Summary is a
	// one-line category; Detail carries the full, possibly multi-line
	// explanation and must reach the user unmodified.
	Failure struct {
		Summary string
		Detail  string
	}

	// Outcome is the result contract of an install request. Exactly one
	// of Success or Failure is set.
	Outcome struct {
		Success *Success
		Failure *Failure
	}

	// Installer performs the actual fetch, dependency resolution, and
	// filesystem install. Implementations may block for arbitrarily
	// long; the context is their only cancellation signal. Expected
	// install failures are reported through Outcome.Failure; a non-nil
	// error means the installer broke its own contract.
	Installer interface {
		Run(ctx context.Context, name string, opts Options) (*Outcome, error)
	}

	// ConfigurationError reports an invalid option set detected before
	// any installer is invoked.
	ConfigurationError struct {
		Reason error
	}
)

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Reason)
}

// Unwrap returns the underlying reason.
func (e *ConfigurationError) Unwrap() error {
	return e.Reason
}

// Succeeded reports whether the outcome carries the success variant.
func (o *Outcome) Succeeded() bool {
	return o != nil && o.Success != nil
}

// SuccessOutcome wraps a Success into an Outcome.
func SuccessOutcome(installDir string, installed []InstalledModule) *Outcome {
	return &Outcome{Success: &Success{InstallDir: installDir, Installed: installed}}
}

// FailureOutcome wraps a Failure into an Outcome.
func FailureOutcome(summary, detail string) *Outcome {
	return &Outcome{Failure: &Failure{Summary: summary, Detail: detail}}
}
