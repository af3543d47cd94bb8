package vtshim

import "strings"

type cell struct {
	ch   byte
	attr Attr
}

// MemSurface is an in-memory Surface: a plain cell grid plus the cursor,
// attribute and cursor-style registers a real console would have. It backs
// the tests, headless hosts, and the shadow store of the rendering surfaces.
type MemSurface struct {
	width, height int
	cells         []cell // row-major

	curRow, curCol int
	attr           Attr
	visible        bool
	size           CursorSize
}

// NewMemSurface returns a blank w by h surface with a white-on-black default
// attribute, cursor at the top-left, visible, small.
func NewMemSurface(w, h int) *MemSurface {
	s := &MemSurface{
		width:   w,
		height:  h,
		curRow:  1,
		curCol:  1,
		attr:    MakeAttr(ColWhite, ColBlack),
		visible: true,
		size:    CursorSmall,
	}
	if w > 0 && h > 0 {
		s.cells = make([]cell, w*h)
		s.Erase(Region{Row: 1, Col: 1, Row2: h + 1, Col2: w + 1}, s.attr)
	}
	return s
}

func (s *MemSurface) Size() (int, int) { return s.width, s.height }

func (s *MemSurface) index(row, col int) (int, bool) {
	if row < 1 || row > s.height || col < 1 || col > s.width {
		return 0, false
	}
	return (row-1)*s.width + (col - 1), true
}

func (s *MemSurface) ReadCell(row, col int) (byte, Attr) {
	i, ok := s.index(row, col)
	if !ok {
		return 0, 0
	}
	return s.cells[i].ch, s.cells[i].attr
}

func (s *MemSurface) WriteCell(row, col int, ch byte, attr Attr) {
	i, ok := s.index(row, col)
	if !ok {
		return
	}
	s.cells[i] = cell{ch: ch, attr: attr}
}

func (s *MemSurface) Cursor() (int, int) { return s.curRow, s.curCol }

func (s *MemSurface) SetCursor(row, col int) {
	s.curRow = clamp(row, 1, s.height)
	s.curCol = clamp(col, 1, s.width)
}

func (s *MemSurface) Attr() Attr     { return s.attr }
func (s *MemSurface) SetAttr(a Attr) { s.attr = a }

func (s *MemSurface) CursorStyle() (bool, CursorSize) { return s.visible, s.size }

func (s *MemSurface) SetCursorStyle(visible bool, size CursorSize) {
	s.visible = visible
	s.size = size
}

func (s *MemSurface) Erase(r Region, attr Attr) {
	r = r.Clamp(s.width, s.height)
	for row := r.Row; row < r.Row2; row++ {
		base := (row - 1) * s.width
		for col := r.Col; col < r.Col2; col++ {
			s.cells[base+col-1] = cell{ch: ' ', attr: attr}
		}
	}
}

// Line returns the text of one row.
func (s *MemSurface) Line(row int) string {
	if row < 1 || row > s.height {
		return ""
	}
	b := make([]byte, s.width)
	base := (row - 1) * s.width
	for i := range b {
		b[i] = s.cells[base+i].ch
	}
	return string(b)
}

// String renders the whole grid with a border, one row per line.
func (s *MemSurface) String() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", s.width) + "+\n"
	sb.WriteString(border)
	for row := 1; row <= s.height; row++ {
		sb.WriteString("|")
		sb.WriteString(s.Line(row))
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}
