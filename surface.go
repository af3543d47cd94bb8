// Package vtshim interprets a byte stream of literal text and ANSI/VT100
// escape sequences and reproduces its visual effect on a character-cell
// display that has no native understanding of those sequences. The display is
// abstracted as a Surface; the interpreter only ever issues direct cell,
// cursor and attribute operations against it.
package vtshim

// CursorSize selects between the two cursor shapes a Surface can show.
type CursorSize uint8

const (
	CursorSmall CursorSize = iota
	CursorLarge
)

// Pos is a 1-based cursor position. Row 1 is the top visible row, column 1
// the leftmost column.
type Pos struct {
	Row int
	Col int
}

// Surface is the character-cell display the interpreter drives. All
// coordinates are 1-based. Implementations are not expected to be safe for
// concurrent use; the interpreter assumes exclusive ownership of the
// surface's cursor and attribute registers between Feed calls.
//
// Size reporting is the only operation that can fail: a surface whose
// geometry cannot be read returns a non-positive width or height, which the
// interpreter surfaces as a hard error.
type Surface interface {
	// Size returns the visible geometry in cells.
	Size() (w, h int)

	// ReadCell returns the character and attribute stored at row, col.
	ReadCell(row, col int) (byte, Attr)

	// WriteCell stores one character cell. Out-of-range writes are ignored.
	WriteCell(row, col int, ch byte, attr Attr)

	// Cursor and SetCursor access the cursor position register.
	Cursor() (row, col int)
	SetCursor(row, col int)

	// Attr and SetAttr access the current-attribute register.
	Attr() Attr
	SetAttr(a Attr)

	// CursorStyle and SetCursorStyle access cursor visibility and shape.
	CursorStyle() (visible bool, size CursorSize)
	SetCursorStyle(visible bool, size CursorSize)

	// Erase blanks every cell in r with the given attribute.
	Erase(r Region, attr Attr)
}
