// SPDX-License-Identifier: MPL-2.0

// Package installer defines the install request/outcome contract and
// the dispatcher that hands a reconciled request to an Installer
// implementation. The dispatcher treats the installer as a black box:
// fetch, dependency resolution, and filesystem writes all happen behind
// the Installer interface.
package installer
