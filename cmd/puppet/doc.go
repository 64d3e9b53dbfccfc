// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for puppet.
//
// This package implements the Cobra command hierarchy for the puppet CLI:
// the root command and the module subcommands for installing, listing,
// and uninstalling modules.
package cmd
