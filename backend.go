package vtshim

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"
)

// Backend is the transport the interpreted byte stream arrives on. Reads
// yield the stream to feed the interpreter; writes carry input back to
// whatever produces the stream (a shell's stdin, usually).
type Backend interface {
	io.Reader
	io.Writer
	SetSize(w, h int) error
}

const termStr = "TERM=xterm-256color"

// PTYBackend runs the byte-stream producer as a child process on a pty.
type PTYBackend struct {
	master *os.File
}

// StartCommand starts c connected to a fresh pty master, with TERM forced so
// the child emits sequences the interpreter understands.
func (p *PTYBackend) StartCommand(c *exec.Cmd) error {
	if p.master != nil {
		return errors.New("pty already initialized")
	}
	if c.Env == nil {
		c.Env = os.Environ()
	}
	found := false
	for i, v := range c.Env {
		if strings.HasPrefix(v, "TERM=") {
			found = true
			c.Env[i] = termStr
			break
		}
	}
	if !found {
		c.Env = append(c.Env, termStr)
	}

	master, err := pty.Start(c)
	if err != nil {
		return err
	}
	p.master = master
	return nil
}

func (p *PTYBackend) Read(b []byte) (int, error) {
	if p.master == nil {
		return 0, io.EOF
	}
	return p.master.Read(b)
}

func (p *PTYBackend) Write(b []byte) (int, error) {
	if p.master == nil {
		return 0, io.ErrClosedPipe
	}
	return p.master.Write(b)
}

func (p *PTYBackend) SetSize(w, h int) error {
	if p.master == nil {
		return nil
	}
	return pty.Setsize(p.master, &pty.Winsize{
		Rows: uint16(h),
		Cols: uint16(w),
		X:    uint16(w * 8),
		Y:    uint16(h * 16),
	})
}

func (p *PTYBackend) Close() error {
	if p.master == nil {
		return nil
	}
	return p.master.Close()
}

// IOBackend is a Backend over arbitrary reader/writer streams, for tests and
// hosts that already have the byte stream in hand.
type IOBackend struct {
	r io.Reader
	w io.Writer
}

// NewIOBackend returns a backend using the provided reader and writer;
// either may be nil.
func NewIOBackend(r io.Reader, w io.Writer) *IOBackend {
	return &IOBackend{r: r, w: w}
}

func (b *IOBackend) Read(p []byte) (int, error) {
	if b.r == nil {
		return 0, io.EOF
	}
	return b.r.Read(p)
}

func (b *IOBackend) Write(p []byte) (int, error) {
	if b.w == nil {
		return 0, io.ErrClosedPipe
	}
	return b.w.Write(p)
}

func (b *IOBackend) SetSize(w, h int) error { return nil }

func (b *IOBackend) Close() error {
	var err, err2 error
	if wc, ok := b.w.(io.Closer); ok {
		err = wc.Close()
	}
	if rc, ok := b.r.(io.Closer); ok {
		err2 = rc.Close()
	}
	return errors.Join(err, err2)
}

// TeeBackend duplicates everything read from the wrapped backend into tee,
// for transcripts and debugging.
type TeeBackend struct {
	backend Backend
	mu      sync.Mutex
	tee     io.Writer
}

// NewTeeBackend returns a TeeBackend wrapping the provided backend.
func NewTeeBackend(backend Backend) *TeeBackend {
	if tb, ok := backend.(*TeeBackend); ok {
		return tb
	}
	return &TeeBackend{backend: backend}
}

// SetTee updates the tee writer; nil disables duplication.
func (t *TeeBackend) SetTee(w io.Writer) {
	t.mu.Lock()
	t.tee = w
	t.mu.Unlock()
}

func (t *TeeBackend) Read(p []byte) (int, error) {
	n, err := t.backend.Read(p)
	if n > 0 {
		t.mu.Lock()
		tee := t.tee
		t.mu.Unlock()
		if tee != nil {
			_, _ = tee.Write(p[:n])
		}
	}
	return n, err
}

func (t *TeeBackend) Write(p []byte) (int, error) {
	return t.backend.Write(p)
}

func (t *TeeBackend) SetSize(w, h int) error {
	return t.backend.SetSize(w, h)
}

// Pump reads the backend until it is exhausted, feeding every chunk to the
// interpreter. It returns nil on EOF and the read error otherwise. Closing
// the backend from another goroutine is the way to stop it early.
func Pump(b Backend, in *Interpreter) error {
	buf := make([]byte, 4096)
	for {
		n, err := b.Read(buf)
		if n > 0 {
			in.Feed(buf[:n])
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			debugPrintln(debugErrors, "backend read:", err)
			return err
		}
	}
}
