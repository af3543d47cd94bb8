package vtshim

// esc is the escape introducer byte.
const esc byte = 0x1b

// maxParamBytes bounds the raw parameter buffer of a single CSI sequence;
// anything longer is treated as malformed.
const maxParamBytes = 64

type tokenKind uint8

const (
	// tokenText is a run of literal bytes, control bytes included.
	tokenText tokenKind = iota
	// tokenEscape is an introducer sequence: ESC plus one byte.
	tokenEscape
	// tokenCSI is a parametrized sequence: ESC '[' params final-byte.
	tokenCSI
)

type token struct {
	kind tokenKind

	text []byte // tokenText: only valid until the next scan call

	b byte // tokenEscape: the byte after ESC

	params  []byte // tokenCSI: raw digit/semicolon parameter bytes
	private bool   // tokenCSI: leading '?' marker present
	inter   byte   // tokenCSI: intermediate byte (space) or 0
	final   byte   // tokenCSI: final byte
}

type scanState uint8

const (
	scanGround scanState = iota
	scanEscape           // ESC seen, waiting for the continuation byte
	scanCSI              // inside ESC '[' collecting parameters
	scanDiscard          // malformed sequence, eat through its end
)

// scanner classifies the input byte stream into tokens. It is incremental: a
// sequence split across scan calls is carried in the scanner until its
// remaining bytes arrive. Every byte of every call is consumed exactly once,
// and no input can make it fail.
type scanner struct {
	state   scanState
	params  []byte
	private bool
	inter   byte
}

func csiFinal(b byte) bool { return b >= 0x40 && b <= 0x7e }

// scan consumes p entirely, invoking emit for each complete token in order.
// Malformed runs are dropped without a token; scanning resumes at the byte
// after the run.
func (s *scanner) scan(p []byte, emit func(token)) {
	start := -1 // start of the current literal run, -1 when none
	flush := func(end int) {
		if start >= 0 && end > start {
			emit(token{kind: tokenText, text: p[start:end]})
		}
		start = -1
	}

	for i := 0; i < len(p); i++ {
		b := p[i]
		switch s.state {
		case scanGround:
			if b == esc {
				flush(i)
				s.state = scanEscape
			} else if start < 0 {
				start = i
			}

		case scanEscape:
			switch {
			case b == '[':
				s.state = scanCSI
				s.params = s.params[:0]
				s.private = false
				s.inter = 0
			case b >= 0x20 && b <= 0x7e:
				emit(token{kind: tokenEscape, b: b})
				s.state = scanGround
			default:
				// No recognizable continuation: drop the introducer and
				// rescan this byte as ordinary input.
				s.state = scanGround
				i--
			}

		case scanCSI:
			switch {
			case b == '?':
				if s.private || len(s.params) > 0 || s.inter != 0 {
					debugPrintln(debugScan, "dropping CSI with stray private marker")
					s.state = scanDiscard
					break
				}
				s.private = true
			case b >= '0' && b <= '9' || b == ';':
				if s.inter != 0 || len(s.params) >= maxParamBytes {
					s.state = scanDiscard
					break
				}
				s.params = append(s.params, b)
			case b == ' ':
				s.inter = b
			case csiFinal(b):
				emit(token{
					kind:    tokenCSI,
					params:  s.params,
					private: s.private,
					inter:   s.inter,
					final:   b,
				})
				s.state = scanGround
			default:
				// Unexpected byte inside a CSI run; the run is dropped and
				// this byte consumed with it.
				debugPrintf(debugScan, "dropping CSI at byte %#v\n", string(b))
				s.state = scanGround
			}

		case scanDiscard:
			// Consume through the end of the malformed run: its final byte,
			// or a control byte that could not belong to it.
			if csiFinal(b) || b < 0x20 {
				s.state = scanGround
			}
		}
	}
	flush(len(p))
}
