package vtshim

// paramOmitted marks a CSI parameter field that was left empty, so commands
// can tell "omitted, apply default" apart from an explicit zero.
const paramOmitted = -1

// paramMax bounds parsed parameter values; larger inputs clamp rather than
// overflow.
const paramMax = 32767

// csiParams is the parsed, ordered parameter list of a CSI sequence.
type csiParams []int

// parseParams splits raw semicolon-separated parameter bytes into fields.
// It never fails: an empty field (including a fully empty run) parses to
// paramOmitted, a trailing separator yields an extra omitted field, and
// non-digit bytes inside a field make that field 0.
func parseParams(raw []byte) csiParams {
	params := make(csiParams, 0, 4)
	value := paramOmitted
	bad := false
	for _, b := range raw {
		switch {
		case b == ';':
			if bad {
				value = 0
			}
			params = append(params, value)
			value = paramOmitted
			bad = false
		case b >= '0' && b <= '9':
			if value == paramOmitted {
				value = 0
			}
			value = value*10 + int(b-'0')
			if value > paramMax {
				value = paramMax
			}
		default:
			bad = true
		}
	}
	if bad {
		value = 0
	}
	return append(params, value)
}

func (p csiParams) count() int { return len(p) }

// nth returns the i-th parameter, or def when it was omitted or the sequence
// carried fewer fields.
func (p csiParams) nth(i, def int) int {
	if i >= len(p) || p[i] == paramOmitted {
		return def
	}
	return p[i]
}

// nthNonzero is nth with the additional rule that an explicit 0 also yields
// the default, for the commands where zero makes no sense (cursor motion
// counts and absolute positions).
func (p csiParams) nthNonzero(i, def int) int {
	v := p.nth(i, def)
	if v == 0 {
		return def
	}
	return v
}
