package vtshim

// Color is one of the 8 base cell colors.
type Color uint8

const (
	ColBlack Color = iota
	ColRed
	ColGreen
	ColYellow
	ColBlue
	ColMagenta
	ColCyan
	ColWhite
)

// Attr is the text attribute of a cell: foreground and background color,
// per-plane intensity, and an inverse-video request.
//
// Layout: bits 0-2 foreground color, bit 3 foreground intensity, bits 4-6
// background color, bit 7 background intensity, bit 8 inverse. Inverse is
// only ever set on the interpreter's current-attribute register; the
// attribute written to cells has the planes swapped instead (see Applied).
type Attr uint16

const (
	attrFgMask  Attr = 0x0007
	attrBgMask  Attr = 0x0070
	attrBgShift      = 4

	AttrFgIntense Attr = 1 << 3
	AttrBgIntense Attr = 1 << 7
	AttrInverse   Attr = 1 << 8

	attrPlanes = attrFgMask | AttrFgIntense | attrBgMask | AttrBgIntense
)

// MakeAttr returns an attribute with the given colors and no flags.
func MakeAttr(fg, bg Color) Attr {
	return Attr(fg&7) | Attr(bg&7)<<attrBgShift
}

func (a Attr) Fg() Color { return Color(a & attrFgMask) }
func (a Attr) Bg() Color { return Color((a & attrBgMask) >> attrBgShift) }

func (a Attr) WithFg(c Color) Attr {
	return a&^attrFgMask | Attr(c&7)
}

func (a Attr) WithBg(c Color) Attr {
	return a&^attrBgMask | Attr(c&7)<<attrBgShift
}

func (a Attr) Has(flag Attr) bool    { return a&flag != 0 }
func (a Attr) With(flag Attr) Attr   { return a | flag }
func (a Attr) Without(flag Attr) Attr { return a &^ flag }

// Applied resolves the attribute for writing to cells: when inverse is
// requested the foreground and background planes (color plus intensity) swap
// and the inverse bit is cleared. Without inverse it is the identity.
func (a Attr) Applied() Attr {
	if !a.Has(AttrInverse) {
		return a
	}
	fg := a & (attrFgMask | AttrFgIntense)
	bg := a & (attrBgMask | AttrBgIntense)
	return a&^(attrPlanes|AttrInverse) | fg<<attrBgShift | bg>>attrBgShift
}

// applySGR folds a list of SGR codes into cur, left to right. def is the
// attribute captured from the surface at attach time; codes 0, 39 and 49
// restore fields from it. Unrecognized codes are ignored.
func applySGR(cur, def Attr, ps csiParams) Attr {
	for i := 0; i < ps.count(); i++ {
		p := ps.nth(i, 0)
		switch {
		case p == 0:
			cur = def.Without(AttrInverse)

		case p == 1:
			cur = cur.With(AttrFgIntense)

		case p == 21 || p == 22:
			cur = cur.Without(AttrFgIntense)

		case p == 5:
			cur = cur.With(AttrBgIntense)

		case p == 25:
			cur = cur.Without(AttrBgIntense)

		case p == 7:
			cur = cur.With(AttrInverse)

		case p == 27:
			cur = cur.Without(AttrInverse)

		case p >= 30 && p <= 37:
			cur = cur.WithFg(Color(p - 30))

		case p == 39:
			cur = cur.WithFg(def.Fg()).Without(AttrFgIntense) | def&AttrFgIntense

		case p >= 40 && p <= 47:
			cur = cur.WithBg(Color(p - 40))

		case p == 49:
			cur = cur.WithBg(def.Bg()).Without(AttrBgIntense) | def&AttrBgIntense

		case p >= 90 && p <= 97:
			cur = cur.WithFg(Color(p - 90)).With(AttrFgIntense)

		case p >= 100 && p <= 107:
			cur = cur.WithBg(Color(p - 100)).With(AttrBgIntense)

		default:
			debugPrintln(debugCmd, "ignored SGR code:", p)
		}
	}
	return cur
}
