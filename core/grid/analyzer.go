package grid

// Pattern type names reported in Result.PatternType.
const (
	PatternUnknown          = "unknown"
	PatternAlphanumericGrid = "alphanumeric_grid"
	PatternNumericTens      = "numeric_tens"
	PatternSequentialBlocks = "sequential_blocks"
	PatternZeroPadded       = "zero_padded_numeric"
	PatternHundredsGrid     = "hundreds_grid"
)

// acceptThreshold is the minimum confidence a candidate needs before its
// assignments are used at all.
const acceptThreshold = 0.5

// Cell is the inferred position of one selection. Row and Column are
// always strings: detectors derive them from identifier text, not from a
// shared numeric scheme.
type Cell struct {
	Row    string `json:"row"`
	Column string `json:"column"`
}

// Result is the outcome of a layout analysis.
type Result struct {
	// Assignments maps each recognized identifier to its cell. Empty
	// when no pattern reached the acceptance threshold.
	Assignments map[string]Cell `json:"assignments"`

	// PatternType names the winning detector, or "unknown".
	PatternType string `json:"pattern_type"`

	// Confidence is the winning candidate's score in [0,1].
	Confidence float64 `json:"confidence"`

	// Rows and Columns are the inferred grid dimensions.
	Rows    int `json:"rows"`
	Columns int `json:"columns"`

	// Errors explains why analysis produced no usable layout.
	Errors []string `json:"errors,omitempty"`
}

// candidate is one detector's proposal.
type candidate struct {
	pattern     string
	confidence  float64
	assignments map[string]Cell
	rows        int
	columns     int
}

// detector proposes a layout candidate for the identifier list, or
// reports that the list does not fit its pattern.
type detector func(ids []string) (candidate, bool)

// detectors is the fixed evaluation order. Order only matters for
// breaking exact confidence ties deterministically; selection is by
// maximum confidence.
var detectors = []detector{
	detectAlphanumericGrid,
	detectNumericTens,
	detectSequentialBlocks,
	detectZeroPadded,
	detectHundredsGrid,
}

// Analyze infers the grid layout for a list of selection identifiers.
func Analyze(ids []string) Result {
	if len(ids) == 0 {
		return unknownResult("no selection identifiers to analyze")
	}

	var best candidate
	for _, detect := range detectors {
		if c, ok := detect(ids); ok && c.confidence > best.confidence {
			best = c
		}
	}

	if best.confidence < acceptThreshold {
		return unknownResult("no layout pattern reached the confidence threshold")
	}

	return Result{
		Assignments: best.assignments,
		PatternType: best.pattern,
		Confidence:  best.confidence,
		Rows:        best.rows,
		Columns:     best.columns,
	}
}

func unknownResult(reason string) Result {
	return Result{
		Assignments: map[string]Cell{},
		PatternType: PatternUnknown,
		Confidence:  0,
		Errors:      []string{reason},
	}
}
