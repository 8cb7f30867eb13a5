package dex

import (
	"dex-ingest/core/utils"
)

// DecodeFunc turns the fields following the record type code into a named
// field map. Decoders must be total: missing or malformed numeric fields
// decode to 0, never to an error.
type DecodeFunc func(fields []string) map[string]any

// Registry maps record type codes to decoders. It is built once at
// startup and treated as immutable afterwards, which makes it safe to
// share across concurrent parses.
type Registry struct {
	decoders map[string]DecodeFunc
}

// NewRegistry builds the default registry: the envelope records, the full
// product family feeding the consolidator, and the common machine-level
// records. Every other type falls back to the generic decoder.
func NewRegistry() *Registry {
	return &Registry{decoders: map[string]DecodeFunc{
		StartMarker: decodeHeader,
		EndMarker:   decodeTrailer,
		"ID1":       decodeMachineID,
		"VA1":       decodeVendTotals,
		"PA1":       decodeProductSetup,
		"PA2":       decodeProductSales,
		"PA3":       decodeCashSplit,
		"PA4":       decodeDiscount,
		"PA5":       decodeLastSale,
		"PA7":       decodePaymentDetail,
	}}
}

// resolve returns the decoder for a type code. The subtype-qualified code
// ("PA1") is looked up first, then the bare letter prefix ("PA"), and
// finally the generic fallback, so a well-formed line never fails solely
// because its type is unrecognized.
func (r *Registry) resolve(code string) DecodeFunc {
	if fn, ok := r.decoders[code]; ok {
		return fn
	}
	if base := trimSubtype(code); base != code {
		if fn, ok := r.decoders[base]; ok {
			return fn
		}
	}
	return decodeGeneric
}

// trimSubtype strips a trailing numeric subtype from a type code,
// e.g. "CA17" -> "CA".
func trimSubtype(code string) string {
	end := len(code)
	for end > 0 && code[end-1] >= '0' && code[end-1] <= '9' {
		end--
	}
	return code[:end]
}

// field returns the i-th field or "" when the record is short.
func field(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// num returns the i-th field as an int, defaulting to 0.
func num(fields []string, i int) int {
	return utils.ToInt(field(fields, i))
}

func decodeHeader(fields []string) map[string]any {
	return map[string]any{
		"communication_id":      field(fields, 0),
		"functional_identifier": field(fields, 1),
		"version":               field(fields, 2),
		"transmission_number":   num(fields, 3),
	}
}

func decodeTrailer(fields []string) map[string]any {
	return map[string]any{
		"transmission_number": num(fields, 0),
		"set_count":           num(fields, 1),
	}
}

func decodeMachineID(fields []string) map[string]any {
	return map[string]any{
		"serial_number":  field(fields, 0),
		"model_number":   field(fields, 1),
		"build_standard": field(fields, 2),
	}
}

func decodeVendTotals(fields []string) map[string]any {
	return map[string]any{
		"value_all_time": num(fields, 0),
		"count_all_time": num(fields, 1),
		"value_reset":    num(fields, 2),
		"count_reset":    num(fields, 3),
	}
}

// decodeProductSetup decodes the product setup record, the anchor that
// introduces a selection identifier and its core attributes.
func decodeProductSetup(fields []string) map[string]any {
	return map[string]any{
		"selection": field(fields, 0),
		"price":     num(fields, 1),
		"capacity":  num(fields, 2),
	}
}

func decodeProductSales(fields []string) map[string]any {
	return map[string]any{
		"units_sold": num(fields, 0),
		"revenue":    num(fields, 1),
		"test_vends": num(fields, 2),
		"free_vends": num(fields, 3),
	}
}

func decodeCashSplit(fields []string) map[string]any {
	return map[string]any{
		"cash_sales":     num(fields, 0),
		"cashless_sales": num(fields, 1),
	}
}

func decodeDiscount(fields []string) map[string]any {
	return map[string]any{
		"discount_count":  num(fields, 0),
		"discount_amount": num(fields, 1),
	}
}

func decodeLastSale(fields []string) map[string]any {
	return map[string]any{
		"date": field(fields, 0),
		"time": field(fields, 1),
	}
}

// decodePaymentDetail decodes the multi-entry payment record. It carries
// its own selection identifier; a selection may have one entry per
// payment device.
func decodePaymentDetail(fields []string) map[string]any {
	return map[string]any{
		"selection": field(fields, 0),
		"device":    field(fields, 1),
		"units":     num(fields, 2),
		"amount":    num(fields, 3),
	}
}

// decodeGeneric keeps the remaining fields of an unregistered record type
// as an ordered list.
func decodeGeneric(fields []string) map[string]any {
	kept := make([]string, len(fields))
	copy(kept, fields)
	return map[string]any{"fields": kept}
}
