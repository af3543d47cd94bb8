package vtshim

import "fmt"

// Interpreter consumes a byte stream through Feed and mirrors its visual
// effect onto a Surface. It owns the cursor, attribute, saved-cursor and
// cursor-style state; the surface registers are written, never trusted,
// after attach.
//
// An Interpreter is single-threaded: each Feed call is processed to
// completion before it returns, and no state is shared between instances.
type Interpreter struct {
	surface Surface

	width, height int

	row, col int // 1-based, always within [1,width]x[1,height]

	attr        Attr // current attribute, may carry AttrInverse
	defaultAttr Attr // captured from the surface at attach

	saved    Pos // shared slot for CSI s/u and ESC 7/8
	hasSaved bool

	cursorVisible bool
	cursorSize    CursorSize
	defaultSize   CursorSize // remembered so ESC [0 q can restore it

	sc scanner
}

// New attaches an interpreter to a surface, seeding geometry, attribute and
// cursor-style defaults from the surface's current state. It fails only when
// the surface geometry cannot be read; nothing else about the input stream
// can ever produce an error.
func New(s Surface) (*Interpreter, error) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("vtshim: surface geometry unreadable: %dx%d", w, h)
	}
	in := &Interpreter{surface: s, width: w, height: h}
	in.resetToSurfaceDefaults()
	return in, nil
}

// resetToSurfaceDefaults seeds the state model from the surface's registers.
func (in *Interpreter) resetToSurfaceDefaults() {
	in.defaultAttr = in.surface.Attr().Without(AttrInverse)
	in.attr = in.defaultAttr
	r, c := in.surface.Cursor()
	in.row = clamp(r, 1, in.height)
	in.col = clamp(c, 1, in.width)
	vis, size := in.surface.CursorStyle()
	in.cursorVisible = vis
	in.cursorSize = size
	in.defaultSize = size
	in.hasSaved = false
}

// RefreshSize re-reads the surface geometry, for hosts whose surface can
// change size between feeds. The cursor is clamped into the new bounds.
func (in *Interpreter) RefreshSize() error {
	w, h := in.surface.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("vtshim: surface geometry unreadable: %dx%d", w, h)
	}
	in.width, in.height = w, h
	in.setCursor(in.row, in.col)
	return nil
}

// Feed interprets one chunk of the byte stream. Sequences may be split
// across calls at any byte; the partial tail is carried until the next call.
// There is no end-of-stream signal: a caller done feeding simply stops.
func (in *Interpreter) Feed(p []byte) {
	in.sc.scan(p, in.dispatch)
}

// Write makes the interpreter an io.Writer over Feed, so transports can be
// attached with io.Copy. It never returns an error.
func (in *Interpreter) Write(p []byte) (int, error) {
	in.Feed(p)
	return len(p), nil
}

// Cursor returns the interpreter's cursor position.
func (in *Interpreter) Cursor() Pos {
	return Pos{Row: in.row, Col: in.col}
}

// Attr returns the current attribute register, inverse request included.
func (in *Interpreter) Attr() Attr {
	return in.attr
}

// CursorStyle returns the tracked cursor visibility and size.
func (in *Interpreter) CursorStyle() (visible bool, size CursorSize) {
	return in.cursorVisible, in.cursorSize
}

// Size returns the cached surface geometry.
func (in *Interpreter) Size() (w, h int) {
	return in.width, in.height
}

func (in *Interpreter) dispatch(t token) {
	switch t.kind {
	case tokenText:
		in.writeText(t.text)

	case tokenEscape:
		switch t.b {
		case '7':
			in.saveCursor()
		case '8':
			in.restoreCursor()
		default:
			debugPrintf(debugCmd, "ignored ESC %#v\n", string(t.b))
		}

	case tokenCSI:
		in.dispatchCSI(t)
	}
}

func (in *Interpreter) dispatchCSI(t token) {
	ps := parseParams(t.params)
	debugPrintf(debugCmd, "csi %#v private=%v inter=%d params=%v\n", string(t.final), t.private, t.inter, ps)

	if t.private {
		// Only the cursor visibility pair is recognized; everything else
		// private is consumed without effect.
		if (t.final == 'h' || t.final == 'l') && ps.nth(0, 0) == 25 {
			in.setCursorVisible(t.final == 'h')
		}
		return
	}

	if t.inter == ' ' {
		if t.final == 'q' {
			in.setCursorSize(ps.nth(0, 0))
		}
		return
	}

	switch t.final {
	case 'A': // cursor up
		in.moveCursor(-ps.nthNonzero(0, 1), 0, false)

	case 'B': // cursor down
		in.moveCursor(ps.nthNonzero(0, 1), 0, false)

	case 'C': // cursor forward
		in.moveCursor(0, ps.nthNonzero(0, 1), false)

	case 'D': // cursor back
		in.moveCursor(0, -ps.nthNonzero(0, 1), false)

	case 'E': // cursor next line
		in.moveCursor(ps.nthNonzero(0, 1), 0, true)

	case 'F': // cursor previous line
		in.moveCursor(-ps.nthNonzero(0, 1), 0, true)

	case 'G': // cursor character absolute
		in.setCursor(in.row, ps.nthNonzero(0, 1))

	case 'H', 'f': // cursor position
		in.setCursor(ps.nthNonzero(0, 1), ps.nthNonzero(1, 1))

	case 'J': // erase in display
		in.eraseDisplay(ps.nth(0, 0))

	case 'K': // erase in line
		in.eraseLine(ps.nth(0, 0))

	case 'm': // select graphic rendition
		in.attr = applySGR(in.attr, in.defaultAttr, ps)
		in.surface.SetAttr(in.attr.Applied())

	case 's':
		in.saveCursor()

	case 'u':
		in.restoreCursor()

	default:
		debugPrintf(debugCmd, "ignored CSI %#v %v\n", string(t.final), ps)
	}
}

// writeText writes literal bytes as cells at the cursor, one cell per byte,
// with the current attribute. A run that would extend past the last column
// is truncated there; truncated bytes are discarded, never wrapped. Control
// bytes inside the run move the cursor and resume normal writing.
func (in *Interpreter) writeText(b []byte) {
	debugPrintf(debugTxt, "txt: %#v\n", string(b))
	full := false
	for _, c := range b {
		switch c {
		case '\r':
			in.col = 1
			full = false
		case '\n':
			in.row = clamp(in.row+1, 1, in.height)
			full = false
		case '\b':
			in.col = clamp(in.col-1, 1, in.width)
			full = false
		case '\t':
			in.col = clamp((in.col-1)/8*8+9, 1, in.width)
			full = false
		default:
			if c < 0x20 || c == 0x7f {
				continue // other control bytes are ignored
			}
			if full {
				continue // excess beyond the last column is discarded
			}
			in.surface.WriteCell(in.row, in.col, c, in.attr.Applied())
			if in.col < in.width {
				in.col++
			} else {
				full = true
			}
		}
	}
	in.syncCursor()
}

func (in *Interpreter) moveCursor(dRow, dCol int, toCol1 bool) {
	row := clamp(in.row+dRow, 1, in.height)
	col := clamp(in.col+dCol, 1, in.width)
	if toCol1 {
		col = 1
	}
	in.row, in.col = row, col
	in.syncCursor()
}

// setCursor clamps row and column independently into range.
func (in *Interpreter) setCursor(row, col int) {
	in.row = clamp(row, 1, in.height)
	in.col = clamp(col, 1, in.width)
	in.syncCursor()
}

func (in *Interpreter) syncCursor() {
	in.surface.SetCursor(in.row, in.col)
	debugPrintln(debugCursor, "cursor:", in.row, in.col)
}

func (in *Interpreter) saveCursor() {
	in.saved = Pos{Row: in.row, Col: in.col}
	in.hasSaved = true
}

// restoreCursor is a no-op when nothing was saved.
func (in *Interpreter) restoreCursor() {
	if !in.hasSaved {
		return
	}
	in.setCursor(in.saved.Row, in.saved.Col)
}

func (in *Interpreter) setCursorVisible(v bool) {
	in.cursorVisible = v
	in.surface.SetCursorStyle(in.cursorVisible, in.cursorSize)
}

// setCursorSize applies ESC [ Ps SP q: 0 restores the size remembered from
// attach, 1-2 select the large shape, 3-6 the small one. Anything larger is
// consumed without effect.
func (in *Interpreter) setCursorSize(n int) {
	switch {
	case n == 0:
		in.cursorSize = in.defaultSize
	case n <= 2:
		in.cursorSize = CursorLarge
	case n <= 6:
		in.cursorSize = CursorSmall
	default:
		return
	}
	in.surface.SetCursorStyle(in.cursorVisible, in.cursorSize)
}

// eraseLine blanks part of the cursor row without moving the cursor.
// Mode 0 erases from the cursor (inclusive) to the end of the line, mode 1
// from the start of the line through the cursor, mode 2 the whole line.
func (in *Interpreter) eraseLine(mode int) {
	switch mode {
	case 0:
		in.erase(rowSpan(in.row, in.col, in.width+1))
	case 1:
		in.erase(rowSpan(in.row, 1, in.col+1))
	case 2:
		in.erase(rowSpan(in.row, 1, in.width+1))
	default:
		debugPrintln(debugErase, "ignored erase-in-line mode:", mode)
	}
}

// eraseDisplay blanks part of the screen without moving the cursor, with the
// same three modes as eraseLine extended over rows.
func (in *Interpreter) eraseDisplay(mode int) {
	switch mode {
	case 0:
		in.erase(rowSpan(in.row, in.col, in.width+1))
		in.erase(Region{Row: in.row + 1, Col: 1, Row2: in.height + 1, Col2: in.width + 1})
	case 1:
		in.erase(Region{Row: 1, Col: 1, Row2: in.row, Col2: in.width + 1})
		in.erase(rowSpan(in.row, 1, in.col+1))
	case 2:
		in.erase(Region{Row: 1, Col: 1, Row2: in.height + 1, Col2: in.width + 1})
	default:
		debugPrintln(debugErase, "ignored erase-in-display mode:", mode)
	}
}

// erase blanks a clamped region with the surface's default attribute.
func (in *Interpreter) erase(r Region) {
	r = r.Clamp(in.width, in.height)
	if r.Empty() {
		return
	}
	debugPrintln(debugErase, "erase:", r)
	in.surface.Erase(r, in.defaultAttr)
}
