// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	ModuleNotFoundId
	ModuleAlreadyInstalledId
	InvalidModuleNameId
	MetadataParseErrorId
	EmptyModulePathId
	UninstallBlockedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links shown under "See also"
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the puppet configuration file.

## Configuration file locations:
- Linux: ~/.config/puppet/config.cue
- macOS: ~/Library/Application Support/puppet/config.cue
- Windows: %APPDATA%\puppet\config.cue

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/puppet/config.cue
~~~

## Example configuration:
~~~cue
modulepath:        "/etc/puppet/modules:/usr/share/puppet/modules"
module_repository: "/var/puppet/releases"
environment:       "production"

environments: {
	dev: {
		modulepath: "/srv/puppet/dev/modules"
	}
}

ui: {
	color_scheme: "auto"
	verbose: false
}
~~~`,
	}

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found!

No release of the requested module exists in the module repository.

## Things you can try:
- Check for typos in the module name (the full form is 'owner-modname')
- List what is installed already:
~~~
$ puppet module list
~~~

- Check that 'module_repository' in your configuration points at your
  release repository
- Install from an unpacked release directory instead:
~~~
$ puppet module install ./path/to/release
~~~`,
	}

	moduleAlreadyInstalledIssue = &Issue{
		id: ModuleAlreadyInstalledId,
		mdMsg: `
# Module already installed!

A release of this module is already present in the target directory.

## Things you can try:
- Re-install over the existing release:
~~~
$ puppet module install <name> --force
~~~

- Install into a different directory:
~~~
$ puppet module install <name> --target-dir /path/to/modules
~~~`,
	}

	invalidModuleNameIssue = &Issue{
		id: InvalidModuleNameId,
		mdMsg: `
# Invalid module name!

Module names take the form 'owner-modname' (or 'owner/modname'): a
lowercase alphanumeric owner and a module name starting with a letter.

## Examples:
~~~
$ puppet module install puppetlabs-stdlib
$ puppet module install puppetlabs/apache
~~~`,
	}

	metadataParseErrorIssue = &Issue{
		id: MetadataParseErrorId,
		mdMsg: `
# Failed to parse module metadata!

A metadata.json file could not be read or is missing required fields.

## Required fields:
- **name**: the full module name, 'owner-modname'
- **version**: the release version, e.g. "1.2.3"

## Example metadata.json:
~~~json
{
  "name": "puppetlabs-stdlib",
  "version": "2.2.1",
  "dependencies": [
    {"name": "puppetlabs/apt", "version_requirement": ">= 1.0.0"}
  ]
}
~~~`,
	}

	emptyModulePathIssue = &Issue{
		id: EmptyModulePathId,
		mdMsg: `
# No module directories configured!

The module search path resolved to nothing, so there is nowhere to
install into.

## Things you can try:
- Pass a target directory explicitly:
~~~
$ puppet module install <name> --target-dir /etc/puppet/modules
~~~

- Set 'modulepath' in your configuration:
~~~cue
modulepath: "/etc/puppet/modules:/usr/share/puppet/modules"
~~~

- Or pass it on the command line:
~~~
$ puppet module install <name> --modulepath /etc/puppet/modules
~~~`,
	}

	uninstallBlockedIssue = &Issue{
		id: UninstallBlockedId,
		mdMsg: `
# Cannot uninstall: other modules depend on this one!

Installed modules declare a dependency on the module you asked to
remove, so removing it would break them.

## Things you can try:
- Remove the dependent modules first
- Remove it anyway:
~~~
$ puppet module uninstall <name> --force
~~~`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		moduleNotFoundIssue.Id():         moduleNotFoundIssue,
		moduleAlreadyInstalledIssue.Id(): moduleAlreadyInstalledIssue,
		invalidModuleNameIssue.Id():      invalidModuleNameIssue,
		metadataParseErrorIssue.Id():     metadataParseErrorIssue,
		emptyModulePathIssue.Id():        emptyModulePathIssue,
		uninstallBlockedIssue.Id():       uninstallBlockedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
