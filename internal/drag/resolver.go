package drag

import "math"

// ResolveRow maps a vertical pointer displacement to a destination row index.
// The index space is always the full roster, never a filtered subset.
// Returns -1 when there are no rows or the source index is out of range.
func ResolveRow(sourceIndex int, dy, rowHeight float64, rowCount int) int {
	if rowCount <= 0 || sourceIndex < 0 || sourceIndex >= rowCount {
		return -1
	}
	if rowHeight <= 0 {
		return sourceIndex
	}
	rowDelta := int(math.Round(dy / rowHeight))
	target := sourceIndex + rowDelta
	if target < 0 {
		return 0
	}
	if target > rowCount-1 {
		return rowCount - 1
	}
	return target
}

// resolveTarget returns the id of the row the pointer currently implicates.
// Returns "" when the source row is no longer in the roster.
func resolveTarget(rowIDs []string, sourceRowID string, dy, rowHeight float64) string {
	source := -1
	for i, id := range rowIDs {
		if id == sourceRowID {
			source = i
			break
		}
	}
	idx := ResolveRow(source, dy, rowHeight, len(rowIDs))
	if idx < 0 {
		return ""
	}
	return rowIDs[idx]
}
