// SPDX-License-Identifier: MPL-2.0

package installer

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
)

// Dispatcher invokes an Installer with a reconciled option set and
// carries the outcome back unreinterpreted. It performs no retries and
// no partial-failure recovery: the installer call is all-or-nothing.
type Dispatcher struct {
	installer Installer
	logger    *log.Logger
}

// NewDispatcher creates a Dispatcher around the given installer. A nil
// logger falls back to a stderr logger so progress notices are never
// silently dropped.
func NewDispatcher(inst Installer, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "module",
		})
	}
	return &Dispatcher{
		installer: inst,
		logger:    logger,
	}
}

// Dispatch validates the reconciled options and runs the installer
// synchronously. An empty search path is a configuration error and is
// reported before the installer is ever invoked. The installer's
// outcome is passed through untouched; any error the installer returns
// outside its outcome contract propagates to the caller as fatal.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, opts Options) (*Outcome, error) {
	if len(opts.SearchPath) == 0 {
		return nil, &ConfigurationError{Reason: ErrEmptySearchPath}
	}

	d.logger.Info("Preparing to install into " + opts.SearchPath[0] + " ...")

	return d.installer.Run(ctx, name, opts)
}
