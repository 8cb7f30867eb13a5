// Package dex parses the line-oriented, asterisk-delimited DEX audit
// format emitted by vending and cooling machines.
//
// A DEX transmission is a sequence of records, one per line, where the
// first field is a 2-3 letter record type code optionally suffixed with a
// numeric subtype ("DXS", "PA1", "CA17"). The package decodes every line
// through an immutable record-type registry, consolidates the per-selection
// product records into one merged record per selection, and asks the grid
// package to infer the physical row/column layout from the selection
// identifiers, since the wire format carries no coordinates.
//
// # Error model
//
// Structural problems (missing envelope markers, unparseable lines,
// decoder failures) are fatal and abort the parse with no partial result.
// Data-quality problems (duplicate records, revenue mismatches, selections
// without a setup record) are collected as structured ParseErrors and the
// parse completes; a result can report Success=true while still carrying
// non-fatal errors, so callers needing data-quality signals must inspect
// the error list.
//
// # Usage
//
//	parser := dex.New()
//	result := parser.Parse(content, "machine-4711")
//	for _, sel := range result.Selections {
//	    fmt.Println(sel.Selection, sel.Revenue)
//	}
//
// The parser holds no mutable state between calls and is safe for
// concurrent use on independent inputs.
package dex
