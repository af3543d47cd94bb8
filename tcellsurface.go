package vtshim

import "github.com/gdamore/tcell/v2"

// TcellSurface adapts a tcell.Screen to the Surface interface, so a stream
// of escape sequences can drive a display whose only API is per-cell
// SetContent plus cursor calls. A shadow MemSurface keeps cell contents
// readable without depending on the screen implementation.
//
// The host owns the screen lifecycle (Init/Fini) and should call Show after
// feeding the interpreter a chunk.
type TcellSurface struct {
	screen tcell.Screen
	shadow *MemSurface
}

// NewTcellSurface wraps an initialized tcell screen.
func NewTcellSurface(sc tcell.Screen) *TcellSurface {
	w, h := sc.Size()
	return &TcellSurface{
		screen: sc,
		shadow: NewMemSurface(w, h),
	}
}

// SyncSize rebuilds the shadow grid after the screen was resized. Cell
// contents are not preserved; the feeder normally clears and repaints.
func (t *TcellSurface) SyncSize() {
	w, h := t.screen.Size()
	shadow := NewMemSurface(w, h)
	shadow.SetAttr(t.shadow.Attr())
	vis, size := t.shadow.CursorStyle()
	shadow.SetCursorStyle(vis, size)
	t.shadow = shadow
}

func (t *TcellSurface) Size() (int, int) { return t.screen.Size() }

func (t *TcellSurface) ReadCell(row, col int) (byte, Attr) {
	return t.shadow.ReadCell(row, col)
}

func (t *TcellSurface) WriteCell(row, col int, ch byte, attr Attr) {
	t.shadow.WriteCell(row, col, ch, attr)
	t.screen.SetContent(col-1, row-1, rune(ch), nil, tcellStyle(attr))
}

func (t *TcellSurface) Cursor() (int, int) { return t.shadow.Cursor() }

func (t *TcellSurface) SetCursor(row, col int) {
	t.shadow.SetCursor(row, col)
	if vis, _ := t.shadow.CursorStyle(); vis {
		t.screen.ShowCursor(col-1, row-1)
	}
}

func (t *TcellSurface) Attr() Attr     { return t.shadow.Attr() }
func (t *TcellSurface) SetAttr(a Attr) { t.shadow.SetAttr(a) }

func (t *TcellSurface) CursorStyle() (bool, CursorSize) {
	return t.shadow.CursorStyle()
}

func (t *TcellSurface) SetCursorStyle(visible bool, size CursorSize) {
	t.shadow.SetCursorStyle(visible, size)
	if !visible {
		t.screen.HideCursor()
		return
	}
	row, col := t.shadow.Cursor()
	t.screen.ShowCursor(col-1, row-1)
	switch size {
	case CursorLarge:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	default:
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyUnderline)
	}
}

func (t *TcellSurface) Erase(r Region, attr Attr) {
	w, h := t.screen.Size()
	r = r.Clamp(w, h)
	t.shadow.Erase(r, attr)
	style := tcellStyle(attr)
	for row := r.Row; row < r.Row2; row++ {
		for col := r.Col; col < r.Col2; col++ {
			t.screen.SetContent(col-1, row-1, ' ', nil, style)
		}
	}
}

// Show flushes pending screen updates.
func (t *TcellSurface) Show() { t.screen.Show() }

// tcellStyle maps an applied attribute to a tcell style. Intensity selects
// the bright half of the 16-color palette.
func tcellStyle(a Attr) tcell.Style {
	fg := int(a.Fg())
	if a.Has(AttrFgIntense) {
		fg += 8
	}
	bg := int(a.Bg())
	if a.Has(AttrBgIntense) {
		bg += 8
	}
	return tcell.StyleDefault.
		Foreground(tcell.PaletteColor(fg)).
		Background(tcell.PaletteColor(bg))
}
