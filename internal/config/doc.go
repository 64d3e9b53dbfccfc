// SPDX-License-Identifier: MPL-2.0

// Package config loads the puppet configuration file, a CUE document
// validated against an embedded schema and merged over built-in
// defaults via Viper.
package config
