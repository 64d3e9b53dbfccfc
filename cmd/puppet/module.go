// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/buzzedword/puppet/internal/config"
	"github.com/buzzedword/puppet/internal/installer"
	"github.com/buzzedword/puppet/internal/installer/local"
	"github.com/buzzedword/puppet/internal/issue"
	"github.com/buzzedword/puppet/internal/searchpath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// moduleTargetDir is the directory modules are installed into.
	moduleTargetDir string

	// moduleModulepath overrides the configured module search path.
	moduleModulepath string

	// moduleEnvironment selects the environment to operate in.
	moduleEnvironment string
)

// moduleCmd represents the module command group
var moduleCmd = &cobra.Command{
	Use:   "module",
	Short: "Manage installed modules",
	Long: `Install, list, and remove modules on the local system.

Modules live in the directories of the module search path. The search
path comes from the active environment's 'modulepath' setting and can
be overridden per invocation; a target directory given with
--target-dir is searched (and installed into) first.

Examples:
  puppet module install puppetlabs-vcsrepo
  puppet module install puppetlabs/apache --version 0.0.3 --ignore-dependencies
  puppet module list --modulepath /srv/puppet/modules
  puppet module uninstall puppetlabs-vcsrepo --force`,
}

// addModulePathFlags registers the search path flags shared by every
// module subcommand.
func addModulePathFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&moduleTargetDir, "target-dir", "i", "", "directory to install modules into (searched first)")
	cmd.Flags().StringVar(&moduleModulepath, "modulepath", "", "list-separated directories to search for installed modules")
	cmd.Flags().StringVar(&moduleEnvironment, "environment", "", "environment whose modulepath to use")
}

// resolveSearchPath reconciles the flag and configuration inputs into
// the final search path and its primary (install) directory.
func resolveSearchPath(cfg *config.Config) (final []string, primary string) {
	configured := cfg.EffectiveModulepath(moduleEnvironment)
	if moduleModulepath != "" {
		configured = searchpath.Split(moduleModulepath)
	}
	return searchpath.Resolve(moduleTargetDir, configured)
}

// newModuleInstaller builds the installer backing module install.
// Package-level so tests can substitute a stub.
var newModuleInstaller = func(cfg *config.Config) installer.Installer {
	return local.New(cfg.ModuleRepository)
}

// moduleLogger returns the logger used for module operation notices.
func moduleLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "module"})
	if GetVerbose() {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// issueForFailure maps an installer failure summary to catalog guidance.
func issueForFailure(summary string) *issue.Issue {
	switch summary {
	case "Module not found":
		return issue.Get(issue.ModuleNotFoundId)
	case "Module already installed":
		return issue.Get(issue.ModuleAlreadyInstalledId)
	case "Invalid module metadata", "Not a module release":
		return issue.Get(issue.MetadataParseErrorId)
	}
	return nil
}

// printFailureGuidance renders remediation guidance for a failure in
// verbose mode. Rendering problems are swallowed; guidance is garnish,
// not part of the failure report.
func printFailureGuidance(cmd *cobra.Command, cfg *config.Config, summary string) {
	if !GetVerbose() {
		return
	}
	guidance := issueForFailure(summary)
	if guidance == nil {
		return
	}
	scheme := cfg.UI.ColorScheme
	if scheme == "" {
		scheme = config.ColorSchemeAuto
	}
	rendered, err := guidance.Render(string(scheme))
	if err != nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), rendered)
}
