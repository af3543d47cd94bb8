package vtshim

import (
	"fmt"
	"io"

	"github.com/xo/terminfo"
)

// TermSurface mirrors cells onto a host terminal using its terminfo
// capabilities, with a shadow MemSurface holding the readable state. It is
// how an interpreted session is displayed on a terminal that is itself only
// driven through cursor-address/attribute capabilities.
type TermSurface struct {
	out    io.Writer
	ti     *terminfo.Terminfo
	shadow *MemSurface

	// last emitted terminal state, to skip redundant capability output
	outRow, outCol int // 0 when unknown
	outAttr        Attr
	outAttrKnown   bool
}

// NewTermSurface creates a w by h surface writing to out, using the
// terminal type from the environment. The host terminal is cleared.
func NewTermSurface(out io.Writer, w, h int) (*TermSurface, error) {
	ti, err := terminfo.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("vtshim: terminfo: %w", err)
	}
	return newTermSurface(out, ti, w, h), nil
}

func newTermSurface(out io.Writer, ti *terminfo.Terminfo, w, h int) *TermSurface {
	t := &TermSurface{
		out:    out,
		ti:     ti,
		shadow: NewMemSurface(w, h),
	}
	ti.Fprintf(out, terminfo.ClearScreen)
	t.outRow, t.outCol = 1, 1
	return t
}

// Close restores the host terminal attributes and cursor.
func (t *TermSurface) Close() error {
	t.ti.Fprintf(t.out, terminfo.ExitAttributeMode)
	t.ti.Fprintf(t.out, terminfo.CursorNormal)
	return nil
}

func (t *TermSurface) Size() (int, int) { return t.shadow.Size() }

func (t *TermSurface) ReadCell(row, col int) (byte, Attr) {
	return t.shadow.ReadCell(row, col)
}

func (t *TermSurface) WriteCell(row, col int, ch byte, attr Attr) {
	t.shadow.WriteCell(row, col, ch, attr)
	t.moveTo(row, col)
	t.applyAttr(attr)
	fmt.Fprintf(t.out, "%c", ch)
	w, _ := t.shadow.Size()
	if col < w {
		t.outCol = col + 1
	} else {
		t.outRow, t.outCol = 0, 0 // wrap behavior is the terminal's, re-address
	}
}

func (t *TermSurface) Cursor() (int, int) { return t.shadow.Cursor() }

func (t *TermSurface) SetCursor(row, col int) {
	t.shadow.SetCursor(row, col)
	t.moveTo(row, col)
}

func (t *TermSurface) Attr() Attr     { return t.shadow.Attr() }
func (t *TermSurface) SetAttr(a Attr) { t.shadow.SetAttr(a) }

func (t *TermSurface) CursorStyle() (bool, CursorSize) {
	return t.shadow.CursorStyle()
}

func (t *TermSurface) SetCursorStyle(visible bool, size CursorSize) {
	t.shadow.SetCursorStyle(visible, size)
	switch {
	case !visible:
		t.ti.Fprintf(t.out, terminfo.CursorInvisible)
	case size == CursorLarge:
		t.ti.Fprintf(t.out, terminfo.CursorVisible)
	default:
		t.ti.Fprintf(t.out, terminfo.CursorNormal)
	}
}

func (t *TermSurface) Erase(r Region, attr Attr) {
	w, h := t.shadow.Size()
	r = r.Clamp(w, h)
	t.shadow.Erase(r, attr)
	t.applyAttr(attr)
	for row := r.Row; row < r.Row2; row++ {
		t.moveTo(row, r.Col)
		for col := r.Col; col < r.Col2; col++ {
			fmt.Fprint(t.out, " ")
		}
		t.outRow, t.outCol = 0, 0
	}
	// put the host cursor back where the surface register says it is
	row, col := t.shadow.Cursor()
	t.moveTo(row, col)
}

func (t *TermSurface) moveTo(row, col int) {
	if t.outRow == row && t.outCol == col {
		return
	}
	t.ti.Fprintf(t.out, terminfo.CursorAddress, row-1, col-1)
	t.outRow, t.outCol = row, col
}

// applyAttr emits the capability run for attr: reset, then colors, with
// intensity mapped to the bold and blink modes it came from.
func (t *TermSurface) applyAttr(attr Attr) {
	if t.outAttrKnown && t.outAttr == attr {
		return
	}
	t.ti.Fprintf(t.out, terminfo.ExitAttributeMode)
	t.ti.Fprintf(t.out, terminfo.SetAForeground, int(attr.Fg()))
	t.ti.Fprintf(t.out, terminfo.SetABackground, int(attr.Bg()))
	if attr.Has(AttrFgIntense) {
		t.ti.Fprintf(t.out, terminfo.EnterBoldMode)
	}
	if attr.Has(AttrBgIntense) {
		t.ti.Fprintf(t.out, terminfo.EnterBlinkMode)
	}
	t.outAttr = attr
	t.outAttrKnown = true
}
