// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/buzzedword/puppet/internal/installer"
	"github.com/buzzedword/puppet/internal/issue"
	"github.com/buzzedword/puppet/internal/modtree"

	"github.com/spf13/cobra"
)

var (
	// installForce re-installs over an existing release.
	installForce bool

	// installIgnoreDeps skips dependency resolution.
	installIgnoreDeps bool

	// installVersion pins the release version to install.
	installVersion string
)

// moduleInstallCmd installs a module and its dependencies.
var moduleInstallCmd = &cobra.Command{
	Use:   "install <name>",
	Short: "Install a module from the release repository",
	Long: `Install a module and its dependencies from the local release repository.

The name is either the full module name ('owner-modname', the slash
form 'owner/modname' is also accepted) or a path to an unpacked release
directory. The module is installed into the first directory of the
search path; dependencies already satisfied elsewhere on the path are
left alone.

Examples:
  puppet module install puppetlabs-vcsrepo
  puppet module install puppetlabs/apache --version 0.0.3
  puppet module install puppetlabs-stdlib --target-dir /srv/puppet/modules
  puppet module install ./releases/acme-thing/1.0.0`,
	Args: cobra.ExactArgs(1),
	RunE: runModuleInstall,
}

func init() {
	addModulePathFlags(moduleInstallCmd)
	moduleInstallCmd.Flags().BoolVarP(&installForce, "force", "f", false, "install even if the module is already installed")
	moduleInstallCmd.Flags().BoolVar(&installIgnoreDeps, "ignore-dependencies", false, "install only this module, not its dependencies")
	moduleInstallCmd.Flags().StringVarP(&installVersion, "version", "v", "", "exact release version to install (default: latest)")

	moduleCmd.AddCommand(moduleInstallCmd)
}

func runModuleInstall(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := activeConfig(cmd.Context())
	if err != nil {
		return err
	}

	final, _ := resolveSearchPath(cfg)
	opts := installer.Options{
		TargetDir:          moduleTargetDir,
		SearchPath:         final,
		Version:            installVersion,
		Environment:        cfg.EffectiveEnvironment(moduleEnvironment),
		Force:              installForce,
		IgnoreDependencies: installIgnoreDeps,
	}

	dispatcher := installer.NewDispatcher(newModuleInstaller(cfg), moduleLogger())

	outcome, err := dispatcher.Dispatch(cmd.Context(), name, opts)
	if err != nil {
		var cfgErr *installer.ConfigurationError
		if errors.As(err, &cfgErr) {
			return issue.NewErrorContext().
				WithOperation("install module").
				WithResource(name).
				WithSuggestion("Pass a target directory with --target-dir").
				WithSuggestion("Set 'modulepath' in the configuration file or pass --modulepath").
				Wrap(err).
				BuildError()
		}
		return err
	}

	if !outcome.Succeeded() {
		fmt.Fprintln(cmd.ErrOrStderr(), outcome.Failure.Detail)
		printFailureGuidance(cmd, cfg, outcome.Failure.Summary)
		return &ExitError{Code: 1}
	}

	fmt.Fprintln(cmd.OutOrStdout(), outcome.Success.InstallDir)
	fmt.Fprint(cmd.OutOrStdout(), modtree.Render(outcome.Success.Installed, outcome.Success.InstallDir))

	return nil
}
