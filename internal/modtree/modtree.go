// SPDX-License-Identifier: MPL-2.0

// Package modtree renders an install result as human-readable tree art.
// Rendering is a pure transformation: the installer's result tree is
// folded into an ephemeral tree of display nodes and serialized, and is
// never mutated.
package modtree

import (
	"strings"

	"github.com/buzzedword/puppet/internal/installer"
)

// renderedNode is the ephemeral display view of an InstalledModule. It
// exists only between relabeling and serialization.
type renderedNode struct {
	text     string
	children []renderedNode
}

// NormalizeVersion gives a version string its display form by
// prepending "v" when missing. Purely cosmetic and idempotent; the
// underlying version value is never changed. Placeholder values that
// do not start with a digit (such as "???") pass through untouched.
func NormalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	if version == "" || version[0] < '0' || version[0] > '9' {
		return version
	}
	return "v" + version
}

// Render serializes an install result tree to display text. The walk
// is depth-first and preserves child ordering exactly as the installer
// returned it. Modules that landed outside installDir are flagged with
// a trailing " [<path>]". The result has embedded line breaks and a
// trailing newline when non-empty; callers own presentation.
//
// The input is assumed to be a finite tree (an installer invariant);
// no cycle detection is performed here.
func Render(installed []installer.InstalledModule, installDir string) string {
	var sb strings.Builder
	writeTree(&sb, relabel(installed, installDir), 0)
	return sb.String()
}

// relabel folds installer modules into display nodes.
func relabel(modules []installer.InstalledModule, installDir string) []renderedNode {
	nodes := make([]renderedNode, 0, len(modules))
	for _, mod := range modules {
		label := NormalizeVersion(mod.Version)
		if mod.Action == installer.ActionUpgrade {
			label = NormalizeVersion(mod.PreviousVersion) + " -> " + label
		}

		text := mod.Name + " (" + label + ")"
		if mod.Path != installDir {
			text += " [" + mod.Path + "]"
		}

		nodes = append(nodes, renderedNode{
			text:     text,
			children: relabel(mod.Dependencies, installDir),
		})
	}
	return nodes
}

// writeTree draws the display nodes with box-drawing connectors. The
// last sibling at each level gets the corner connector, and a node with
// children gets the tee variant that its subtree hangs off.
func writeTree(sb *strings.Builder, nodes []renderedNode, level int) {
	for i, node := range nodes {
		last := i == len(nodes)-1

		sb.WriteString(strings.Repeat("  ", level))
		if last {
			sb.WriteString("└─")
		} else {
			sb.WriteString("├─")
		}
		if len(node.children) > 0 {
			sb.WriteString("┬")
		} else {
			sb.WriteString("─")
		}
		sb.WriteString(" ")
		sb.WriteString(node.text)
		sb.WriteString("\n")

		writeTree(sb, node.children, level+1)
	}
}
