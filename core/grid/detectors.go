package grid

import (
	"regexp"
	"sort"
	"strconv"
)

// Minimum fraction of identifiers a detector must recognize before it
// proposes anything. This keeps a handful of stray identifiers from being
// confidently mis-assigned.
const (
	minMatchFraction       = 0.8
	minMatchFractionStrict = 0.9
)

var alphanumericPattern = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)

// detectAlphanumericGrid recognizes <letters><digits> identifiers: the
// letter prefix names the row (ordered lexicographically) and the digits
// name the column (ordered numerically within the row). Confidence
// rewards uniform row sizes and sequential intra-row numbering.
func detectAlphanumericGrid(ids []string) (candidate, bool) {
	type entry struct {
		id  string
		num int
	}

	rows := make(map[string][]entry)
	matched := 0
	for _, id := range ids {
		m := alphanumericPattern.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		matched++
		n, _ := strconv.Atoi(m[2])
		rows[m[1]] = append(rows[m[1]], entry{id: id, num: n})
	}

	frac := float64(matched) / float64(len(ids))
	if frac < minMatchFraction {
		return candidate{}, false
	}

	rowKeys := make([]string, 0, len(rows))
	for k := range rows {
		rowKeys = append(rowKeys, k)
	}
	sort.Strings(rowKeys)

	assignments := make(map[string]Cell, matched)
	minSize, maxSize := matched, 0
	seqSum := 0.0

	for _, key := range rowKeys {
		row := rows[key]
		sort.Slice(row, func(i, j int) bool { return row[i].num < row[j].num })

		if len(row) < minSize {
			minSize = len(row)
		}
		if len(row) > maxSize {
			maxSize = len(row)
		}
		seqSum += sequentialFraction(row, func(e entry) int { return e.num })

		for _, e := range row {
			assignments[e.id] = Cell{Row: key, Column: strconv.Itoa(e.num)}
		}
	}

	uniformity := float64(minSize) / float64(maxSize)
	sequentiality := seqSum / float64(len(rowKeys))

	return candidate{
		pattern:     PatternAlphanumericGrid,
		confidence:  frac * (0.5 + 0.25*uniformity + 0.25*sequentiality),
		assignments: assignments,
		rows:        len(rowKeys),
		columns:     maxSize,
	}, true
}

// detectNumericTens recognizes purely numeric identifiers whose tens-and-
// above digits define the row band. Within each row the values must be
// evenly spaced, and the spacing must agree across rows; the increment
// then defines the column positions.
func detectNumericTens(ids []string) (candidate, bool) {
	nums := numericValues(ids)
	frac := float64(len(nums)) / float64(len(ids))
	if frac < minMatchFractionStrict {
		return candidate{}, false
	}

	rows := make(map[int][]numericID)
	for _, n := range nums {
		rows[n.value/10] = append(rows[n.value/10], n)
	}
	if len(rows) < 2 {
		// A single tens band is a run, not a grid.
		return candidate{}, false
	}

	rowKeys := sortedIntKeys(rows)

	// Establish one increment from the first multi-member row, then
	// require every row to honor it.
	increment := 0
	for _, key := range rowKeys {
		row := rows[key]
		sort.Slice(row, func(i, j int) bool { return row[i].value < row[j].value })
		rows[key] = row
		for i := 1; i < len(row); i++ {
			step := row[i].value - row[i-1].value
			if increment == 0 {
				increment = step
			}
			if step != increment || step == 0 {
				return candidate{}, false
			}
		}
	}
	if increment == 0 {
		increment = 1 // every row is a singleton
	}

	assignments := make(map[string]Cell, len(nums))
	minSize, maxSize := len(nums), 0
	for _, key := range rowKeys {
		row := rows[key]
		if len(row) < minSize {
			minSize = len(row)
		}
		if len(row) > maxSize {
			maxSize = len(row)
		}
		for _, n := range row {
			col := (n.value-row[0].value)/increment + 1
			assignments[n.id] = Cell{Row: strconv.Itoa(key), Column: strconv.Itoa(col)}
		}
	}

	uniformity := float64(minSize) / float64(maxSize)

	return candidate{
		pattern:     PatternNumericTens,
		confidence:  frac * (0.55 + 0.35*uniformity),
		assignments: assignments,
		rows:        len(rowKeys),
		columns:     maxSize,
	}, true
}

// blockSizes is the candidate set for the sequential-block detector.
var blockSizes = []int{5, 6, 8, 9, 10, 12, 15, 16, 20}

// zeroPaddedBlockSizes is the narrower set for zero-padded identifiers,
// which machines with padded numbering use for small fixed trays.
var zeroPaddedBlockSizes = []int{5, 8, 10}

// detectSequentialBlocks recognizes purely numeric identifiers laid out
// as equal contiguous blocks: sorted position i maps to row i/blockSize
// and column i%blockSize. The block size is chosen from a fixed candidate
// set, scored by how evenly the last block is filled and how sequential
// the values inside each block run.
func detectSequentialBlocks(ids []string) (candidate, bool) {
	nums := numericValues(ids)
	frac := float64(len(nums)) / float64(len(ids))
	if frac < minMatchFraction || len(nums) < 2 {
		return candidate{}, false
	}

	size, score := bestBlockSize(nums, blockSizes)

	c := blockCandidate(nums, size, PatternSequentialBlocks)
	c.confidence = frac * (0.35 + 0.6*score)
	return c, true
}

// detectZeroPadded applies the block layout to numeric identifiers with
// leading zeros ("01", "02", ...). It only activates when padding is
// actually present, and then outranks the plain block detector.
func detectZeroPadded(ids []string) (candidate, bool) {
	nums := numericValues(ids)
	frac := float64(len(nums)) / float64(len(ids))
	if frac < minMatchFraction || len(nums) < 2 {
		return candidate{}, false
	}

	padded := false
	for _, n := range nums {
		if len(n.id) > 1 && n.id[0] == '0' {
			padded = true
			break
		}
	}
	if !padded {
		return candidate{}, false
	}

	size, score := bestBlockSize(nums, zeroPaddedBlockSizes)

	c := blockCandidate(nums, size, PatternZeroPadded)
	c.confidence = frac * (0.4 + 0.6*score)
	return c, true
}

// detectHundredsGrid recognizes numeric identifiers of 100 and above
// where the hundreds digit names the row and the remainder names the
// column. Rows with inconsistent remainder gaps reject the whole
// candidate.
func detectHundredsGrid(ids []string) (candidate, bool) {
	var nums []numericID
	for _, n := range numericValues(ids) {
		if n.value >= 100 {
			nums = append(nums, n)
		}
	}
	frac := float64(len(nums)) / float64(len(ids))
	if frac < minMatchFractionStrict {
		return candidate{}, false
	}

	rows := make(map[int][]numericID)
	for _, n := range nums {
		rows[n.value/100] = append(rows[n.value/100], n)
	}
	rowKeys := sortedIntKeys(rows)

	assignments := make(map[string]Cell, len(nums))
	minSize, maxSize := len(nums), 0
	for _, key := range rowKeys {
		row := rows[key]
		sort.Slice(row, func(i, j int) bool { return row[i].value < row[j].value })

		gap := 0
		for i := 1; i < len(row); i++ {
			step := row[i].value - row[i-1].value
			if gap == 0 {
				gap = step
			}
			if step != gap || step == 0 {
				return candidate{}, false
			}
		}

		if len(row) < minSize {
			minSize = len(row)
		}
		if len(row) > maxSize {
			maxSize = len(row)
		}
		for _, n := range row {
			assignments[n.id] = Cell{
				Row:    strconv.Itoa(key),
				Column: strconv.Itoa(n.value % 100),
			}
		}
	}

	uniformity := float64(minSize) / float64(maxSize)

	return candidate{
		pattern:     PatternHundredsGrid,
		confidence:  frac * (0.62 + 0.36*uniformity),
		assignments: assignments,
		rows:        len(rowKeys),
		columns:     maxSize,
	}, true
}

// numericID pairs an identifier with its parsed value.
type numericID struct {
	id    string
	value int
}

// numericValues returns the purely numeric identifiers with their values.
func numericValues(ids []string) []numericID {
	var out []numericID
	for _, id := range ids {
		if !allDigits(id) {
			continue
		}
		v, err := strconv.Atoi(id)
		if err != nil {
			continue // overflow-sized identifiers don't fit any layout
		}
		out = append(out, numericID{id: id, value: v})
	}
	return out
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// bestBlockSize scores every candidate block size and returns the winner.
// The score blends last-block fill evenness with intra-block
// sequentiality; earlier (smaller) candidates win exact ties.
func bestBlockSize(nums []numericID, sizes []int) (int, float64) {
	sorted := sortByValue(nums)

	bestSize, bestScore := sizes[0], -1.0
	for _, size := range sizes {
		rem := len(sorted) % size
		evenness := 1.0
		if rem != 0 {
			evenness = float64(rem) / float64(size)
		}

		pairs, sequential := 0, 0
		for i := 1; i < len(sorted); i++ {
			if i/size != (i-1)/size {
				continue // block boundary
			}
			pairs++
			if sorted[i].value-sorted[i-1].value == 1 {
				sequential++
			}
		}
		seq := 0.0
		if pairs > 0 {
			seq = float64(sequential) / float64(pairs)
		}

		score := 0.5*evenness + 0.5*seq
		if score > bestScore {
			bestSize, bestScore = size, score
		}
	}

	return bestSize, bestScore
}

// blockCandidate assigns sorted position i to row i/size and column
// i%size.
func blockCandidate(nums []numericID, size int, pattern string) candidate {
	sorted := sortByValue(nums)

	assignments := make(map[string]Cell, len(sorted))
	for i, n := range sorted {
		assignments[n.id] = Cell{
			Row:    strconv.Itoa(i / size),
			Column: strconv.Itoa(i % size),
		}
	}

	columns := size
	if len(sorted) < size {
		columns = len(sorted)
	}

	return candidate{
		pattern:     pattern,
		assignments: assignments,
		rows:        (len(sorted) + size - 1) / size,
		columns:     columns,
	}
}

func sortByValue(nums []numericID) []numericID {
	sorted := make([]numericID, len(nums))
	copy(sorted, nums)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].value != sorted[j].value {
			return sorted[i].value < sorted[j].value
		}
		return sorted[i].id < sorted[j].id
	})
	return sorted
}

func sortedIntKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// sequentialFraction reports the fraction of adjacent pairs in a sorted
// row that step by exactly one. Singleton rows count as fully sequential.
func sequentialFraction[T any](row []T, value func(T) int) float64 {
	if len(row) < 2 {
		return 1
	}
	sequential := 0
	for i := 1; i < len(row); i++ {
		if value(row[i])-value(row[i-1]) == 1 {
			sequential++
		}
	}
	return float64(sequential) / float64(len(row)-1)
}
