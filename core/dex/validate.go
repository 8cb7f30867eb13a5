package dex

import "fmt"

// validateStructure checks the transmission envelope before any line is
// decoded: at least two lines, the first typed DXS and the last typed
// DXE. It returns nil on success or one fatal ParseError naming the rule
// that failed and the line it failed on.
func validateStructure(lines []RawLine) *ParseError {
	if len(lines) < 2 {
		return &ParseError{
			Line:     lineNumberOrZero(lines),
			Message:  fmt.Sprintf("transmission must contain at least a %s header and a %s trailer", StartMarker, EndMarker),
			Field:    -1,
			Category: CategoryStructure,
		}
	}

	first := lines[0]
	if typeCode(first.Text) != StartMarker {
		return &ParseError{
			Line:     first.Number,
			Raw:      first.Text,
			Message:  fmt.Sprintf("first record must be %s, got %q", StartMarker, typeCode(first.Text)),
			Field:    0,
			Category: CategoryStructure,
		}
	}

	last := lines[len(lines)-1]
	if typeCode(last.Text) != EndMarker {
		return &ParseError{
			Line:     last.Number,
			Raw:      last.Text,
			Message:  fmt.Sprintf("last record must be %s, got %q", EndMarker, typeCode(last.Text)),
			Field:    0,
			Category: CategoryStructure,
		}
	}

	return nil
}

func lineNumberOrZero(lines []RawLine) int {
	if len(lines) > 0 {
		return lines[0].Number
	}
	return 0
}
