package dex

import "fmt"

// Wire format markers and delimiter.
const (
	// Delimiter separates fields within a record line.
	Delimiter = "*"
	// StartMarker is the record type that must open a transmission.
	StartMarker = "DXS"
	// EndMarker is the record type that must close a transmission.
	EndMarker = "DXE"
)

// Error categories. Structure and decode errors are fatal; the rest are
// collected without aborting the parse.
const (
	CategoryStructure     = "structure"
	CategoryDecode        = "decode"
	CategoryDuplicate     = "duplicate_selection"
	CategoryMismatch      = "sales_mismatch"
	CategoryMissingAnchor = "missing_anchor"
	CategoryGridPattern   = "grid_pattern"
)

// RawLine is a single non-blank, trimmed input line with its original
// 1-based position in the transmission.
type RawLine struct {
	// Number is the 1-based line number in the original input.
	Number int
	// Text is the trimmed line content.
	Text string
}

// DecodedRecord is one decoded DEX line. It is built once by the decoder
// and not modified afterwards.
type DecodedRecord struct {
	// Type is the record type code as it appeared on the wire,
	// including any numeric subtype (e.g. "PA1", "CA17").
	Type string `json:"type"`

	// Line is the 1-based line number the record came from.
	Line int `json:"line"`

	// Raw is the original line text, kept for error reporting.
	Raw string `json:"raw"`

	// Fields maps decoder-assigned field names to values. Values are
	// strings, ints, or lists; unregistered types store their remaining
	// fields as an ordered list under "fields".
	Fields map[string]any `json:"fields"`
}

// PaymentDetail is one entry of a multi-entry payment-detail record
// (PA7). Unlike the other product records a selection may carry several
// of these, one per payment device.
type PaymentDetail struct {
	// Device identifies the payment device or method.
	Device string `json:"device"`
	// Units is the number of vends paid through the device.
	Units int `json:"units"`
	// Amount is the monetary amount collected through the device.
	Amount int `json:"amount"`
}

// ConsolidatedSelection merges all product records for one selection
// identifier into a single flat record. Fields whose source record was
// absent stay at their zero value.
type ConsolidatedSelection struct {
	// Selection is the machine-specific selection identifier.
	Selection string `json:"selection"`

	// Price is the vend price from the product setup record.
	Price int `json:"price"`

	// Capacity is the slot capacity from the product setup record.
	Capacity int `json:"capacity"`

	// UnitsSold is the number of paid vends.
	UnitsSold int `json:"units_sold"`

	// Revenue is the total paid sales value.
	Revenue int `json:"revenue"`

	// TestVends is the number of test vends.
	TestVends int `json:"test_vends"`

	// FreeVends is the number of free vends.
	FreeVends int `json:"free_vends"`

	// CashSales is the cash portion of the revenue.
	CashSales int `json:"cash_sales"`

	// CashlessSales is the cashless portion of the revenue.
	CashlessSales int `json:"cashless_sales"`

	// DiscountCount is the number of discounted vends.
	DiscountCount int `json:"discount_count"`

	// DiscountAmount is the total discount value given.
	DiscountAmount int `json:"discount_amount"`

	// LastSaleDate is the date of the most recent vend, as transmitted.
	LastSaleDate string `json:"last_sale_date"`

	// LastSaleTime is the time of the most recent vend, as transmitted.
	LastSaleTime string `json:"last_sale_time"`

	// Payments holds the per-device payment detail entries.
	Payments []PaymentDetail `json:"payments,omitempty"`

	// Line is the line number of the anchoring product setup record.
	Line int `json:"line"`

	// Row and Column are the inferred grid coordinates. They stay nil
	// when no layout pattern reached the confidence threshold.
	Row    *string `json:"row"`
	Column *string `json:"column"`
}

// ParseError is a structured parse problem. Fatal categories abort the
// parse; non-fatal ones accumulate on the result.
type ParseError struct {
	// Line is the 1-based line number, or 0 for errors not tied to a line.
	Line int `json:"line"`

	// Raw is the offending line text, when available.
	Raw string `json:"raw,omitempty"`

	// Message describes the problem.
	Message string `json:"message"`

	// Field is the 0-based index of the offending field, or -1.
	Field int `json:"field"`

	// Category classifies the error (structure, decode,
	// duplicate_selection, sales_mismatch, missing_anchor, grid_pattern).
	Category string `json:"category"`
}

// Error implements the error interface.
func (e ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Fatal reports whether the error category aborts the parse.
func (e ParseError) Fatal() bool {
	return e.Category == CategoryStructure || e.Category == CategoryDecode
}

// GridSummary describes the outcome of the layout analysis.
type GridSummary struct {
	// PatternType names the winning detector, or "unknown".
	PatternType string `json:"pattern_type"`

	// Confidence is the winning detector's self-assigned score in [0,1].
	Confidence float64 `json:"confidence"`

	// Rows and Columns are the inferred grid dimensions.
	Rows    int `json:"rows"`
	Columns int `json:"columns"`

	// Errors holds analyzer diagnostics, e.g. why no pattern was found.
	Errors []string `json:"errors,omitempty"`
}

// ParseResult is the complete outcome of one parse call.
type ParseResult struct {
	// Success is true when no fatal error occurred and every collected
	// error belongs to a non-critical category (duplicate_selection,
	// sales_mismatch). Success does not imply an empty error list.
	Success bool `json:"success"`

	// Label is the caller-supplied diagnostic label for the input.
	Label string `json:"label"`

	// Header holds the decoded fields of the DXS header record.
	Header map[string]any `json:"header,omitempty"`

	// RecordCount is the number of decoded payload records. The DXS/DXE
	// envelope frames the payload and is not counted.
	RecordCount int `json:"record_count"`

	// Records holds the decoded non-envelope, non-product records in
	// file order.
	Records []DecodedRecord `json:"records"`

	// Selections holds one consolidated record per selection identifier,
	// in file order of their first appearance, with grid coordinates
	// merged in.
	Selections []ConsolidatedSelection `json:"selections"`

	// Grid summarizes the layout analysis.
	Grid GridSummary `json:"grid"`

	// Errors holds every fatal and non-fatal parse error.
	Errors []ParseError `json:"errors"`
}
