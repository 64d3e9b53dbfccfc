// SPDX-License-Identifier: MPL-2.0

// Package cueutil parses CUE files against an embedded schema and
// decodes them into Go values, reporting validation failures with the
// JSON path of the offending field.
//
//	//go:embed config_schema.cue
//	var schema string
//
//	cfg, err := cueutil.ParseAndDecodeString[Config](
//	    schema, data, "#Config",
//	    cueutil.WithFilename("config.cue"),
//	)
package cueutil
