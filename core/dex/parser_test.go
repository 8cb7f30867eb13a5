package dex

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestParse_EmptyTransmission(t *testing.T) {
	result := New().Parse(doc("DXS*JOF0012345*VA*V1/1*1", "DXE*1*1"), "empty")

	// A bare envelope succeeds with zero records and zero selections;
	// the markers frame the payload without joining it.
	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Zero(t, result.RecordCount)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Selections)
	assert.Equal(t, "unknown", result.Grid.PatternType)
	assert.Equal(t, "JOF0012345", result.Header["communication_id"])
}

func TestParse_StructuralFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty input", ""},
		{"blank lines only", "\n  \n\n"},
		{"single line", "DXS*1*VA*V1/1*1\n"},
		{"missing start marker", doc("ID1*4711*CV500*V1", "DXE*1*1")},
		{"missing end marker", doc("DXS*1*VA*V1/1*1", "ID1*4711*CV500*V1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().Parse(tt.content, "bad")

			assert.False(t, result.Success)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, CategoryStructure, result.Errors[0].Category)
			assert.True(t, result.Errors[0].Fatal())
			assert.Empty(t, result.Records)
			assert.Empty(t, result.Selections)
			assert.Zero(t, result.RecordCount)
		})
	}
}

func TestParse_ConsolidatesProductFamily(t *testing.T) {
	result := New().Parse(doc(
		"DXS*JOF0012345*VA*V1/1*1",
		"ID1*4711*CV500*V1",
		"PA1*A1*150*12",
		"PA2*42*6300*2*1",
		"PA3*4200*2100",
		"PA5*250820*1432",
		"PA7*A1*CARDREADER*14*2100",
		"PA1*A2*200*10",
		"PA2*10*2000",
		"PA3*1500*500",
		"DXE*1*1",
	), "machine-4711")

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "machine-4711", result.Label)
	// Nine payload records between the markers; only ID1 is neither
	// envelope nor product.
	assert.Equal(t, 9, result.RecordCount)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "ID1", result.Records[0].Type)

	require.Len(t, result.Selections, 2)
	first := result.Selections[0]
	assert.Equal(t, "A1", first.Selection)
	assert.Equal(t, 150, first.Price)
	assert.Equal(t, 12, first.Capacity)
	assert.Equal(t, 42, first.UnitsSold)
	assert.Equal(t, 6300, first.Revenue)
	assert.Equal(t, 2, first.TestVends)
	assert.Equal(t, 1, first.FreeVends)
	assert.Equal(t, 4200, first.CashSales)
	assert.Equal(t, 2100, first.CashlessSales)
	assert.Equal(t, "250820", first.LastSaleDate)
	assert.Equal(t, "1432", first.LastSaleTime)
	assert.Equal(t, 3, first.Line)
	require.Len(t, first.Payments, 1)
	assert.Equal(t, PaymentDetail{Device: "CARDREADER", Units: 14, Amount: 2100}, first.Payments[0])

	second := result.Selections[1]
	assert.Equal(t, "A2", second.Selection)
	assert.Zero(t, second.TestVends)
	assert.Empty(t, second.LastSaleDate)

	// Two selections in one alphanumeric row.
	assert.Equal(t, "alphanumeric_grid", result.Grid.PatternType)
	require.NotNil(t, first.Row)
	require.NotNil(t, first.Column)
	assert.Equal(t, "A", *first.Row)
	assert.Equal(t, "1", *first.Column)
}

func TestParse_RevenueCrossValidation(t *testing.T) {
	t.Run("consistent split", func(t *testing.T) {
		result := New().Parse(doc(
			"DXS*1*VA*V1/1*1",
			"PA1*A1*100*10",
			"PA2*5*500",
			"PA3*300*200",
			"PA1*A2*100*10",
			"DXE*1*1",
		), "ok")

		assert.True(t, result.Success)
		assert.Empty(t, result.Errors)
	})

	t.Run("mismatched split", func(t *testing.T) {
		result := New().Parse(doc(
			"DXS*1*VA*V1/1*1",
			"PA1*A1*100*10",
			"PA2*5*500",
			"PA3*300*100",
			"PA1*A2*100*10",
			"DXE*1*1",
		), "mismatch")

		// The selection is retained and the mismatch stays non-critical.
		assert.True(t, result.Success)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, CategoryMismatch, result.Errors[0].Category)
		assert.Contains(t, result.Errors[0].Message, "A1")
		assert.Len(t, result.Selections, 2)
	})
}

func TestParse_RecordBeforeAnchor(t *testing.T) {
	result := New().Parse(doc(
		"DXS*1*VA*V1/1*1",
		"PA2*5*500",
		"PA1*A1*100*10",
		"PA1*A2*100*10",
		"DXE*1*1",
	), "orphan")

	// The leading sales record belongs to no open selection: it is
	// reported and dropped, never emitted as a phantom selection.
	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CategoryMissingAnchor, result.Errors[0].Category)
	require.Len(t, result.Selections, 2)
	assert.Equal(t, "A1", result.Selections[0].Selection)
	assert.Zero(t, result.Selections[0].UnitsSold)
}

func TestParse_DuplicateAnchor(t *testing.T) {
	result := New().Parse(doc(
		"DXS*1*VA*V1/1*1",
		"PA1*A1*100*10",
		"PA1*A1*150*10",
		"PA1*A2*100*10",
		"DXE*1*1",
	), "dupe")

	assert.True(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CategoryDuplicate, result.Errors[0].Category)
	assert.Contains(t, result.Errors[0].Message, "A1")

	// Last write wins.
	require.Len(t, result.Selections, 2)
	assert.Equal(t, 150, result.Selections[0].Price)
}

func TestParse_UnknownTypeFallsBack(t *testing.T) {
	result := New().Parse(doc(
		"DXS*1*VA*V1/1*1",
		"CA17*0*50*100",
		"EA3*junk",
		"DXE*1*1",
	), "fallback")

	assert.True(t, result.Success)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "CA17", result.Records[0].Type)
	assert.Equal(t, []string{"0", "50", "100"}, result.Records[0].Fields["fields"])
}

func TestParse_UnparseableLineIsFatal(t *testing.T) {
	result := New().Parse(doc(
		"DXS*1*VA*V1/1*1",
		"GARBAGE",
		"DXE*1*1",
	), "garbage")

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CategoryDecode, result.Errors[0].Category)
	assert.Equal(t, 2, result.Errors[0].Line)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Selections)
}

func TestParse_UnknownGridPattern(t *testing.T) {
	result := New().Parse(doc(
		"DXS*1*VA*V1/1*1",
		"PA1*LEFT*100*10",
		"PA1*RIGHT*100*10",
		"DXE*1*1",
	), "no-grid")

	assert.False(t, result.Success)
	assert.Equal(t, "unknown", result.Grid.PatternType)
	assert.Zero(t, result.Grid.Confidence)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CategoryGridPattern, result.Errors[0].Category)
	for _, sel := range result.Selections {
		assert.Nil(t, sel.Row)
		assert.Nil(t, sel.Column)
	}
}

func TestParse_Deterministic(t *testing.T) {
	content := doc(
		"DXS*JOF0012345*VA*V1/1*1",
		"ID1*4711*CV500*V1",
		"PA1*10*150*12",
		"PA2*42*6300",
		"PA1*11*150*12",
		"PA1*12*150*12",
		"PA1*20*200*12",
		"PA1*21*200*12",
		"PA1*22*200*12",
		"DXE*1*1",
	)

	a, err := json.Marshal(New().Parse(content, "x"))
	require.NoError(t, err)
	b, err := json.Marshal(New().Parse(content, "x"))
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
}
