package ui

// VisibleLines returns the leading lines that fit a terminal of the given
// height: rows - HeightMargin, never fewer than one. Lines are neither
// wrapped nor reordered. rows <= 0 means unknown and uses DefaultHeight.
func VisibleLines(lines []string, rows int) []string {
	if rows <= 0 {
		rows = DefaultHeight
	}
	limit := rows - HeightMargin
	if limit < 1 {
		limit = 1
	}
	if len(lines) <= limit {
		return lines
	}
	return lines[:limit]
}
