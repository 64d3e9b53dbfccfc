// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/buzzedword/puppet/internal/installer"
	"github.com/buzzedword/puppet/internal/issue"
	"github.com/buzzedword/puppet/internal/modfs"
	"github.com/buzzedword/puppet/internal/modtree"

	"github.com/spf13/cobra"
)

// moduleListCmd lists installed modules per search path directory.
var moduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed modules",
	Long: `List the modules installed in each directory of the module search path.

Modules without readable metadata are still listed, with '???' in
place of a version.

Examples:
  puppet module list
  puppet module list --modulepath /srv/puppet/modules
  puppet module list --environment dev`,
	Args: cobra.NoArgs,
	RunE: runModuleList,
}

func init() {
	addModulePathFlags(moduleListCmd)
	moduleCmd.AddCommand(moduleListCmd)
}

func runModuleList(cmd *cobra.Command, _ []string) error {
	cfg, err := activeConfig(cmd.Context())
	if err != nil {
		return err
	}

	final, _ := resolveSearchPath(cfg)
	if len(final) == 0 {
		return issue.NewErrorContext().
			WithOperation("list modules").
			WithSuggestion("Set 'modulepath' in the configuration file or pass --modulepath").
			Wrap(installer.ErrEmptySearchPath).
			BuildError()
	}

	out := cmd.OutOrStdout()
	for i, dir := range final {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, dir)

		releases, err := modfs.ScanDir(dir)
		if err != nil {
			return err
		}
		if len(releases) == 0 {
			fmt.Fprintln(out, "(no modules installed)")
			continue
		}

		nodes := make([]installer.InstalledModule, 0, len(releases))
		for _, rel := range releases {
			nodes = append(nodes, installer.InstalledModule{
				Name:    rel.Name,
				Version: rel.Version,
				Path:    dir,
			})
		}
		fmt.Fprint(out, modtree.Render(nodes, dir))
	}

	return nil
}
