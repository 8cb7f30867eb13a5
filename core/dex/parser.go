package dex

import (
	"strings"

	"dex-ingest/core/grid"
)

// nonCriticalCategories are the error categories that do not flip a
// completed parse to failure. Duplicates and revenue mismatches are data
// quality findings, not parse failures.
var nonCriticalCategories = map[string]bool{
	CategoryDuplicate: true,
	CategoryMismatch:  true,
}

// Parser runs the full parse pipeline. It owns only the immutable
// record-type registry; everything else is created fresh per call, so one
// Parser can serve concurrent parses of independent inputs.
type Parser struct {
	registry *Registry
}

// New returns a Parser with the default record-type registry.
func New() *Parser {
	return &Parser{registry: NewRegistry()}
}

// Parse runs the strict pipeline over one DEX transmission: normalize,
// validate the envelope, decode every line, consolidate the product
// records, infer the grid layout, and assemble the result. Fatal errors
// (empty input, broken envelope, undecodable line) short-circuit with no
// partial records; everything else accumulates on the result.
//
// The label is a caller-supplied diagnostic tag echoed on the result; it
// does not influence parsing.
func (p *Parser) Parse(content, label string) *ParseResult {
	result := &ParseResult{
		Label:      label,
		Records:    []DecodedRecord{},
		Selections: []ConsolidatedSelection{},
		Errors:     []ParseError{},
		Grid:       GridSummary{PatternType: grid.PatternUnknown},
	}

	lines := normalize(content)
	if len(lines) == 0 {
		return fatal(result, ParseError{
			Message:  "input is empty",
			Field:    -1,
			Category: CategoryStructure,
		})
	}

	if perr := validateStructure(lines); perr != nil {
		return fatal(result, *perr)
	}

	var productRecords []DecodedRecord
	for _, line := range lines {
		rec, perr := p.registry.Decode(line)
		if perr != nil {
			return fatal(result, *perr)
		}

		// The envelope frames the payload but is not part of it: the DXS
		// fields surface via Header, and neither marker counts as a record.
		if rec.Type == StartMarker || rec.Type == EndMarker {
			if rec.Type == StartMarker && result.Header == nil {
				result.Header = rec.Fields
			}
			continue
		}

		result.RecordCount++
		if isProductRecord(rec) {
			productRecords = append(productRecords, rec)
		} else {
			result.Records = append(result.Records, rec)
		}
	}

	selections, consErrs := consolidate(productRecords)
	result.Selections = selections
	result.Errors = append(result.Errors, consErrs...)

	p.applyGrid(result)

	result.Success = true
	for _, e := range result.Errors {
		if !nonCriticalCategories[e.Category] {
			result.Success = false
			break
		}
	}

	return result
}

// applyGrid runs the layout analysis over the consolidated selection
// identifiers and merges the winning assignments back in. An input with
// no selections skips analysis entirely; an input whose identifiers fit
// no pattern keeps every row/column nil and records one grid_pattern
// error.
func (p *Parser) applyGrid(result *ParseResult) {
	if len(result.Selections) == 0 {
		return
	}

	ids := make([]string, len(result.Selections))
	for i, sel := range result.Selections {
		ids[i] = sel.Selection
	}

	analysis := grid.Analyze(ids)
	result.Grid = GridSummary{
		PatternType: analysis.PatternType,
		Confidence:  analysis.Confidence,
		Rows:        analysis.Rows,
		Columns:     analysis.Columns,
		Errors:      analysis.Errors,
	}

	if analysis.PatternType == grid.PatternUnknown {
		result.Errors = append(result.Errors, ParseError{
			Message:  "selection identifiers fit no known grid layout",
			Field:    -1,
			Category: CategoryGridPattern,
		})
		return
	}

	for i := range result.Selections {
		if cell, ok := analysis.Assignments[result.Selections[i].Selection]; ok {
			row, col := cell.Row, cell.Column
			result.Selections[i].Row = &row
			result.Selections[i].Column = &col
		}
	}
}

// normalize splits the input into trimmed, non-blank lines, keeping the
// original 1-based line numbers for error reporting.
func normalize(content string) []RawLine {
	var lines []RawLine
	for i, raw := range strings.Split(content, "\n") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lines = append(lines, RawLine{Number: i + 1, Text: text})
	}
	return lines
}

// fatal finalizes a result for an aborting error: the single error, no
// partial records.
func fatal(result *ParseResult, perr ParseError) *ParseResult {
	result.Success = false
	result.RecordCount = 0
	result.Records = []DecodedRecord{}
	result.Selections = []ConsolidatedSelection{}
	result.Errors = []ParseError{perr}
	return result
}
