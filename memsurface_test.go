package vtshim

import (
	"strings"
	"testing"
)

func TestMemSurfaceStartsBlank(t *testing.T) {
	s := NewMemSurface(4, 2)
	if w, h := s.Size(); w != 4 || h != 2 {
		t.Fatalf("expected 4x2, got %dx%d", w, h)
	}
	ch, attr := s.ReadCell(1, 1)
	if ch != ' ' {
		t.Fatalf("expected blank cell, got %q", ch)
	}
	if attr != MakeAttr(ColWhite, ColBlack) {
		t.Fatalf("expected white on black, got %04x", uint16(attr))
	}
}

func TestMemSurfaceWriteRead(t *testing.T) {
	s := NewMemSurface(4, 2)
	a := MakeAttr(ColRed, ColBlue)
	s.WriteCell(2, 3, 'x', a)
	ch, attr := s.ReadCell(2, 3)
	if ch != 'x' || attr != a {
		t.Fatalf("expected ('x', %04x), got (%q, %04x)", uint16(a), ch, uint16(attr))
	}
}

func TestMemSurfaceOutOfRange(t *testing.T) {
	s := NewMemSurface(4, 2)
	s.WriteCell(0, 1, 'x', 0)
	s.WriteCell(3, 1, 'x', 0)
	s.WriteCell(1, 5, 'x', 0)
	if ch, attr := s.ReadCell(99, 99); ch != 0 || attr != 0 {
		t.Fatalf("expected zero cell out of range, got (%q, %04x)", ch, uint16(attr))
	}
	if got := s.Line(1) + s.Line(2); got != strings.Repeat(" ", 8) {
		t.Fatalf("out-of-range writes must not land anywhere, got %q", got)
	}
}

func TestMemSurfaceEraseClamps(t *testing.T) {
	s := NewMemSurface(4, 2)
	s.WriteCell(1, 1, 'x', s.Attr())
	s.Erase(Region{Row: -3, Col: -3, Row2: 99, Col2: 99}, MakeAttr(ColBlack, ColGreen))
	ch, attr := s.ReadCell(1, 1)
	if ch != ' ' || attr != MakeAttr(ColBlack, ColGreen) {
		t.Fatalf("expected erased cell, got (%q, %04x)", ch, uint16(attr))
	}
}

func TestMemSurfaceCursorClamps(t *testing.T) {
	s := NewMemSurface(4, 2)
	s.SetCursor(99, -1)
	if r, c := s.Cursor(); r != 2 || c != 1 {
		t.Fatalf("expected (2,1), got (%d,%d)", r, c)
	}
}

func TestMemSurfaceString(t *testing.T) {
	s := NewMemSurface(3, 2)
	s.WriteCell(1, 1, 'h', s.Attr())
	s.WriteCell(1, 2, 'i', s.Attr())
	want := "+---+\n|hi |\n|   |\n+---+\n"
	if got := s.String(); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}
