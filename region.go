package vtshim

// Region is a half-open rectangle of cells: rows [Row, Row2), columns
// [Col, Col2), all 1-based. Row2 and Col2 are not included in the region.
type Region struct {
	Row, Col, Row2, Col2 int
}

func rowSpan(row, col, col2 int) Region {
	return Region{Row: row, Col: col, Row2: row + 1, Col2: col2}
}

// Empty reports whether the region has no area.
func (r Region) Empty() bool {
	return r.Row >= r.Row2 || r.Col >= r.Col2
}

// Intersect returns the overlapping portion of two regions.
func (r Region) Intersect(o Region) Region {
	if r.Row < o.Row {
		r.Row = o.Row
	}
	if r.Col < o.Col {
		r.Col = o.Col
	}
	if r.Row2 > o.Row2 {
		r.Row2 = o.Row2
	}
	if r.Col2 > o.Col2 {
		r.Col2 = o.Col2
	}
	return r
}

// Clamp constrains the region to a w by h cell surface.
func (r Region) Clamp(w, h int) Region {
	return r.Intersect(Region{Row: 1, Col: 1, Row2: h + 1, Col2: w + 1})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
