package dex

import (
	"fmt"
	"strings"

	"dex-ingest/core/utils"
)

// selectionGroup accumulates the product records attached to one
// selection identifier while the consolidator scans in file order.
type selectionGroup struct {
	id        string
	anchor    *DecodedRecord
	records   map[string]DecodedRecord
	payments  []DecodedRecord
	duplicate bool
}

// consolidate folds an ordered sequence of product-family records into
// one ConsolidatedSelection per distinct identifier.
//
// A product setup record (PA1) anchors a group and moves the cursor to
// its identifier. Records without their own identifier attach to the
// cursor's group; a record seen before any anchor attaches to a group
// under the empty identifier, which the post-pass then reports as missing
// its anchor, so no phantom selection is emitted. Payment detail records
// (PA7) carry their own identifier and accumulate as a list.
//
// All errors returned here are non-fatal and summarized per category into
// one combined message listing the affected identifiers.
func consolidate(records []DecodedRecord) ([]ConsolidatedSelection, []ParseError) {
	groups := make(map[string]*selectionGroup)
	var order []string

	ensure := func(id string) *selectionGroup {
		g, ok := groups[id]
		if !ok {
			g = &selectionGroup{id: id, records: make(map[string]DecodedRecord)}
			groups[id] = g
			order = append(order, id)
		}
		return g
	}

	current := ""
	for _, rec := range records {
		switch rec.Type {
		case "PA1":
			id := recString(rec, "selection")
			current = id
			g := ensure(id)
			if g.anchor != nil {
				g.duplicate = true
			}
			anchored := rec
			g.anchor = &anchored // last write wins
		case "PA7":
			id := recString(rec, "selection")
			g := ensure(id)
			g.payments = append(g.payments, rec)
		default:
			g := ensure(current)
			if _, seen := g.records[rec.Type]; seen {
				g.duplicate = true
			}
			g.records[rec.Type] = rec // last write wins
		}
	}

	selections := make([]ConsolidatedSelection, 0, len(order))
	var duplicates, mismatches, missing []string

	for _, id := range order {
		g := groups[id]
		if g.duplicate {
			duplicates = append(duplicates, displayID(id))
		}
		if g.anchor == nil {
			// Group never saw its setup record; drop it, never emit.
			missing = append(missing, displayID(id))
			continue
		}

		sel := g.merge()

		// Cross-validation: when both the sales totals and the cash
		// split are present, revenue must equal cash plus cashless.
		_, hasSales := g.records["PA2"]
		_, hasSplit := g.records["PA3"]
		if hasSales && hasSplit && sel.Revenue != sel.CashSales+sel.CashlessSales {
			mismatches = append(mismatches, displayID(id))
		}

		selections = append(selections, sel)
	}

	var errs []ParseError
	if len(duplicates) > 0 {
		errs = append(errs, summaryError(CategoryDuplicate,
			"duplicate selection records for: %s", duplicates))
	}
	if len(mismatches) > 0 {
		errs = append(errs, summaryError(CategoryMismatch,
			"sales revenue does not equal cash plus cashless for: %s", mismatches))
	}
	if len(missing) > 0 {
		errs = append(errs, summaryError(CategoryMissingAnchor,
			"selection records without a product setup anchor for: %s", missing))
	}

	return selections, errs
}

// merge flattens the group into one record. Sources merge in fixed
// precedence (anchor, sales, cash split, discount, last sale); later
// sources only fill fields an earlier source left unset. Fields with no
// source stay at their zero value.
func (g *selectionGroup) merge() ConsolidatedSelection {
	sel := ConsolidatedSelection{Selection: g.id, Line: g.anchor.Line}

	fillInt(&sel.Price, recInt(*g.anchor, "price"))
	fillInt(&sel.Capacity, recInt(*g.anchor, "capacity"))

	if rec, ok := g.records["PA2"]; ok {
		fillInt(&sel.UnitsSold, recInt(rec, "units_sold"))
		fillInt(&sel.Revenue, recInt(rec, "revenue"))
		fillInt(&sel.TestVends, recInt(rec, "test_vends"))
		fillInt(&sel.FreeVends, recInt(rec, "free_vends"))
	}
	if rec, ok := g.records["PA3"]; ok {
		fillInt(&sel.CashSales, recInt(rec, "cash_sales"))
		fillInt(&sel.CashlessSales, recInt(rec, "cashless_sales"))
	}
	if rec, ok := g.records["PA4"]; ok {
		fillInt(&sel.DiscountCount, recInt(rec, "discount_count"))
		fillInt(&sel.DiscountAmount, recInt(rec, "discount_amount"))
	}
	if rec, ok := g.records["PA5"]; ok {
		fillString(&sel.LastSaleDate, recString(rec, "date"))
		fillString(&sel.LastSaleTime, recString(rec, "time"))
	}

	for _, p := range g.payments {
		sel.Payments = append(sel.Payments, PaymentDetail{
			Device: recString(p, "device"),
			Units:  recInt(p, "units"),
			Amount: recInt(p, "amount"),
		})
	}

	return sel
}

func fillInt(dst *int, v int) {
	if *dst == 0 {
		*dst = v
	}
}

func fillString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// recString reads a named field as a string, tolerating absent fields.
func recString(rec DecodedRecord, name string) string {
	v, ok := rec.Fields[name]
	if !ok || v == nil {
		return ""
	}
	return utils.ToString(v)
}

// recInt reads a named field as an int, tolerating absent fields.
func recInt(rec DecodedRecord, name string) int {
	v, ok := rec.Fields[name]
	if !ok || v == nil {
		return 0
	}
	return utils.ToInt(v)
}

func displayID(id string) string {
	if id == "" {
		return "(unknown)"
	}
	return id
}

func summaryError(category, format string, ids []string) ParseError {
	return ParseError{
		Message:  fmt.Sprintf(format, strings.Join(ids, ", ")),
		Field:    -1,
		Category: category,
	}
}
