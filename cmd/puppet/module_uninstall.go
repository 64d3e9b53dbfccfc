// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/buzzedword/puppet/internal/installer"
	"github.com/buzzedword/puppet/internal/issue"
	"github.com/buzzedword/puppet/internal/modfs"
	"github.com/buzzedword/puppet/internal/modtree"
	"github.com/buzzedword/puppet/pkg/semver"

	"github.com/spf13/cobra"
)

var (
	// uninstallForce removes the module even when other modules depend on it.
	uninstallForce bool
	// uninstallVersion restricts removal to a matching installed version.
	uninstallVersion string
)

// moduleUninstallCmd removes an installed module.
var moduleUninstallCmd = &cobra.Command{
	Use:   "uninstall <name>",
	Short: "Uninstall an installed module",
	Long: `Remove an installed module from the module search path.

The module is refused removal while other installed modules declare a
dependency on it, unless --force is given.

Examples:
  puppet module uninstall puppetlabs-vcsrepo
  puppet module uninstall puppetlabs-vcsrepo --version 0.0.4
  puppet module uninstall puppetlabs/stdlib --force`,
	Args: cobra.ExactArgs(1),
	RunE: runModuleUninstall,
}

func init() {
	addModulePathFlags(moduleUninstallCmd)
	moduleUninstallCmd.Flags().BoolVarP(&uninstallForce, "force", "f", false, "uninstall even if other modules depend on this one")
	moduleUninstallCmd.Flags().StringVarP(&uninstallVersion, "version", "v", "", "only uninstall if this exact version is installed")

	moduleCmd.AddCommand(moduleUninstallCmd)
}

func runModuleUninstall(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := activeConfig(cmd.Context())
	if err != nil {
		return err
	}

	final, _ := resolveSearchPath(cfg)
	if len(final) == 0 {
		return issue.NewErrorContext().
			WithOperation("uninstall module").
			WithResource(name).
			WithSuggestion("Set 'modulepath' in the configuration file or pass --modulepath").
			Wrap(installer.ErrEmptySearchPath).
			BuildError()
	}

	rel, err := modfs.Find(final, name)
	if err != nil {
		return err
	}
	if rel == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n  Module '%s' is not installed\n",
			ErrorStyle.Render(fmt.Sprintf("Could not uninstall module '%s'", name)), name)
		return &ExitError{Code: 1}
	}

	if uninstallVersion != "" && !semver.Equal(rel.Version, uninstallVersion) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n  Installed version is %s, not %s\n",
			ErrorStyle.Render(fmt.Sprintf("Could not uninstall module '%s' (%s)", rel.Name, uninstallVersion)),
			modtree.NormalizeVersion(rel.Version), uninstallVersion)
		return &ExitError{Code: 1}
	}

	if !uninstallForce {
		dependents, err := modfs.DependentsOf(final, rel.Name)
		if err != nil {
			return err
		}
		if len(dependents) > 0 {
			names := make([]string, 0, len(dependents))
			for _, dep := range dependents {
				names = append(names, fmt.Sprintf("'%s' (%s)", dep.Name, modtree.NormalizeVersion(dep.Version)))
			}
			fmt.Fprintf(cmd.ErrOrStderr(),
				"%s\n  Other modules depend on it: %s\n    Use `puppet module uninstall --force` to uninstall anyway\n",
				ErrorStyle.Render(fmt.Sprintf("Could not uninstall module '%s'", rel.Name)), strings.Join(names, ", "))
			return &ExitError{Code: 1}
		}
	}

	if err := os.RemoveAll(rel.Path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", rel.Path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s from %s\n",
		SuccessStyle.Render(fmt.Sprintf("Removed '%s' (%s)", rel.Name, modtree.NormalizeVersion(rel.Version))),
		PathStyle.Render(rel.Dir))

	return nil
}
