package dex

import (
	"fmt"
	"strings"
)

// productTypes is the set of record types consumed by the consolidator.
var productTypes = map[string]bool{
	"PA1": true, // setup (anchor)
	"PA2": true, // sales totals
	"PA3": true, // cash/cashless split
	"PA4": true, // discounts
	"PA5": true, // last sale
	"PA7": true, // payment detail (multi-entry)
}

// isProductRecord reports whether a decoded record belongs to the
// per-selection product family.
func isProductRecord(rec DecodedRecord) bool {
	return productTypes[rec.Type]
}

// typeCode extracts the record type code from a raw line without decoding
// the rest. Used by the structure validator, which runs before decoding.
func typeCode(line string) string {
	if i := strings.Index(line, Delimiter); i >= 0 {
		return line[:i]
	}
	return line
}

// Decode tokenizes one line and dispatches it to the registered decoder.
// It returns a fatal ParseError for lines without a field delimiter and
// converts a decoder panic into a fatal ParseError carrying the line
// context, so a decoder bug surfaces as a structured error instead of
// taking the whole process down.
func (r *Registry) Decode(line RawLine) (rec DecodedRecord, perr *ParseError) {
	if !strings.Contains(line.Text, Delimiter) {
		return rec, &ParseError{
			Line:     line.Number,
			Raw:      line.Text,
			Message:  fmt.Sprintf("unparseable line: no %q delimiter", Delimiter),
			Field:    0,
			Category: CategoryDecode,
		}
	}

	fields := strings.Split(line.Text, Delimiter)
	code := fields[0]

	defer func() {
		if p := recover(); p != nil {
			rec = DecodedRecord{}
			perr = &ParseError{
				Line:     line.Number,
				Raw:      line.Text,
				Message:  fmt.Sprintf("decoder failure for record type %q: %v", code, p),
				Field:    -1,
				Category: CategoryDecode,
			}
		}
	}()

	decoded := r.resolve(code)(fields[1:])

	return DecodedRecord{
		Type:   code,
		Line:   line.Number,
		Raw:    line.Text,
		Fields: decoded,
	}, nil
}
