package vtshim

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// heldToken is a token with its transient byte slices copied out, so results
// survive past the scan call that produced them.
type heldToken struct {
	Kind    tokenKind
	Text    string
	B       byte
	Params  string
	Private bool
	Inter   byte
	Final   byte
}

func hold(t token) heldToken {
	return heldToken{
		Kind:    t.kind,
		Text:    string(t.text),
		B:       t.b,
		Params:  string(t.params),
		Private: t.private,
		Inter:   t.inter,
		Final:   t.final,
	}
}

func scanAll(s *scanner, chunks ...string) []heldToken {
	var out []heldToken
	for _, c := range chunks {
		s.scan([]byte(c), func(t token) {
			out = append(out, hold(t))
		})
	}
	return out
}

func TestScanPlainText(t *testing.T) {
	got := scanAll(&scanner{}, "hello world")
	want := []heldToken{{Kind: tokenText, Text: "hello world"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanCSIBetweenText(t *testing.T) {
	got := scanAll(&scanner{}, "a\x1b[1;2Hb")
	want := []heldToken{
		{Kind: tokenText, Text: "a"},
		{Kind: tokenCSI, Params: "1;2", Final: 'H'},
		{Kind: tokenText, Text: "b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanPrivateMarker(t *testing.T) {
	got := scanAll(&scanner{}, "\x1b[?25l")
	want := []heldToken{{Kind: tokenCSI, Params: "25", Private: true, Final: 'l'}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanIntermediateByte(t *testing.T) {
	got := scanAll(&scanner{}, "\x1b[3 q")
	want := []heldToken{{Kind: tokenCSI, Params: "3", Inter: ' ', Final: 'q'}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanSimpleEscapes(t *testing.T) {
	got := scanAll(&scanner{}, "\x1b7\x1b8")
	want := []heldToken{
		{Kind: tokenEscape, B: '7'},
		{Kind: tokenEscape, B: '8'},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanSequenceSplitAcrossCalls(t *testing.T) {
	got := scanAll(&scanner{}, "\x1b", "[", "10;", "5H")
	want := []heldToken{{Kind: tokenCSI, Params: "10;5", Final: 'H'}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanDoublePrivateMarkerDropped(t *testing.T) {
	got := scanAll(&scanner{}, "\x1b[??25lX")
	want := []heldToken{{Kind: tokenText, Text: "X"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanStrayByteDropsSequence(t *testing.T) {
	got := scanAll(&scanner{}, "\x1b[12\x07Xyz")
	want := []heldToken{{Kind: tokenText, Text: "Xyz"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanParamOverflowDropped(t *testing.T) {
	long := "\x1b["
	for i := 0; i < maxParamBytes+10; i++ {
		long += "1"
	}
	long += "Aok"
	got := scanAll(&scanner{}, long)
	want := []heldToken{{Kind: tokenText, Text: "ok"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanUnrecognizedEscapeContinuation(t *testing.T) {
	// A byte that cannot continue an introducer sequence drops the ESC and is
	// rescanned as ordinary input.
	got := scanAll(&scanner{}, "\x1b\x01abc")
	want := []heldToken{{Kind: tokenText, Text: "\x01abc"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanDoubleEscape(t *testing.T) {
	got := scanAll(&scanner{}, "\x1b\x1b[5C")
	want := []heldToken{{Kind: tokenCSI, Params: "5", Final: 'C'}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestScanControlBytesStayInText(t *testing.T) {
	got := scanAll(&scanner{}, "a\r\nb\tc")
	want := []heldToken{{Kind: tokenText, Text: "a\r\nb\tc"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}
