package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_AlphanumericGrid(t *testing.T) {
	result := Analyze([]string{"A1", "A2", "A3", "B1", "B2", "B3"})

	assert.Equal(t, PatternAlphanumericGrid, result.PatternType)
	assert.Greater(t, result.Confidence, 0.8)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, 3, result.Columns)
	assert.Equal(t, Cell{Row: "A", Column: "1"}, result.Assignments["A1"])
	assert.Equal(t, Cell{Row: "B", Column: "3"}, result.Assignments["B3"])
}

func TestAnalyze_AlphanumericToleratesStrays(t *testing.T) {
	result := Analyze([]string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "??"})

	assert.Equal(t, PatternAlphanumericGrid, result.PatternType)
	assert.GreaterOrEqual(t, result.Confidence, 0.5)
	_, assigned := result.Assignments["??"]
	assert.False(t, assigned)
}

func TestAnalyze_SequentialBlocks(t *testing.T) {
	ids := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	result := Analyze(ids)

	assert.Equal(t, PatternSequentialBlocks, result.PatternType)
	assert.GreaterOrEqual(t, result.Confidence, 0.5)
	assert.GreaterOrEqual(t, result.Columns, 2)
	for _, id := range ids {
		cell, ok := result.Assignments[id]
		require.True(t, ok, "id %s unassigned", id)
		assert.NotEmpty(t, cell.Row)
		assert.NotEmpty(t, cell.Column)
	}
}

func TestAnalyze_NumericTens(t *testing.T) {
	result := Analyze([]string{"10", "12", "14", "20", "22", "24"})

	assert.Equal(t, PatternNumericTens, result.PatternType)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, 3, result.Columns)
	assert.Equal(t, Cell{Row: "1", Column: "1"}, result.Assignments["10"])
	assert.Equal(t, Cell{Row: "2", Column: "2"}, result.Assignments["22"])
}

func TestAnalyze_NumericTensRejectsVaryingIncrement(t *testing.T) {
	// Row 1 steps by 2, row 2 steps by 3: not a tens grid, and too
	// irregular for the block detector to reach the threshold.
	result := Analyze([]string{"10", "12", "14", "20", "23", "26"})

	assert.NotEqual(t, PatternNumericTens, result.PatternType)
}

func TestAnalyze_ZeroPadded(t *testing.T) {
	result := Analyze([]string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10"})

	assert.Equal(t, PatternZeroPadded, result.PatternType)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, 5, result.Columns)
	assert.Equal(t, Cell{Row: "0", Column: "0"}, result.Assignments["01"])
	assert.Equal(t, Cell{Row: "1", Column: "4"}, result.Assignments["10"])
}

func TestAnalyze_HundredsGrid(t *testing.T) {
	result := Analyze([]string{"101", "102", "103", "201", "202", "203"})

	assert.Equal(t, PatternHundredsGrid, result.PatternType)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, 3, result.Columns)
	assert.Equal(t, Cell{Row: "1", Column: "1"}, result.Assignments["101"])
	assert.Equal(t, Cell{Row: "2", Column: "3"}, result.Assignments["203"])
}

func TestAnalyze_UnusableInput(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
	}{
		{"empty", nil},
		{"garbage", []string{"??"}},
		{"mixed garbage", []string{"!!", "--", "??"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze(tt.ids)

			assert.Equal(t, PatternUnknown, result.PatternType)
			assert.Zero(t, result.Confidence)
			assert.NotEmpty(t, result.Errors)
			assert.Empty(t, result.Assignments)
		})
	}
}

func TestAnalyze_SingleDetectorWins(t *testing.T) {
	// Plain 1..N numeric identifiers fit both the tens and the block
	// detectors' input shapes; exactly one candidate's assignments must
	// be used, with no blending of row labels across detectors.
	result := Analyze([]string{"1", "2", "3", "4", "5", "10", "11", "12", "13", "14"})

	require.NotEqual(t, PatternUnknown, result.PatternType)
	rowLabels := map[string]bool{}
	for _, cell := range result.Assignments {
		rowLabels[cell.Row] = true
	}
	assert.LessOrEqual(t, len(rowLabels), result.Rows)
}
