package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeBackend records backend calls and captures written bytes
type fakeBackend struct {
	ops []string
	out bytes.Buffer

	initErr error
}

func (b *fakeBackend) Init() error {
	b.ops = append(b.ops, "init")
	return b.initErr
}

func (b *fakeBackend) Fini() {
	b.ops = append(b.ops, "fini")
}

func (b *fakeBackend) Size() (int, int) {
	return 100, 30
}

func (b *fakeBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *fakeBackend) ReadByte(timeout time.Duration) (byte, bool, error) {
	return 0, false, nil
}

func (b *fakeBackend) Drain() {
	b.ops = append(b.ops, "drain")
}

// Test Init enters raw mode and enables cursor/mouse modes in order
func TestTerminalInit(t *testing.T) {
	b := &fakeBackend{}
	term := &Terminal{backend: b}

	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if len(b.ops) != 1 || b.ops[0] != "init" {
		t.Errorf("Expected single backend init, got %v", b.ops)
	}

	want := "\x1b[?25l\x1b[?1000h\x1b[?1003h\x1b[?1006h"
	if got := b.out.String(); got != want {
		t.Errorf("Expected init sequences %q, got %q", want, got)
	}
}

// Test Init is idempotent
func TestTerminalInitIdempotent(t *testing.T) {
	b := &fakeBackend{}
	term := &Terminal{backend: b}

	term.Init()
	first := b.out.Len()
	term.Init()

	if len(b.ops) != 1 {
		t.Errorf("Expected one backend init, got %v", b.ops)
	}
	if b.out.Len() != first {
		t.Error("Expected no additional output on repeated Init")
	}
}

// Test a backend init failure leaves the terminal untouched
func TestTerminalInitFailure(t *testing.T) {
	b := &fakeBackend{initErr: errors.New("no tty")}
	term := &Terminal{backend: b}

	if err := term.Init(); err == nil {
		t.Fatal("Expected error from failed backend init")
	}
	if b.out.Len() != 0 {
		t.Errorf("Expected no mode sequences after failed init, got %q", b.out.String())
	}

	// Fini after failed init must not touch the backend
	term.Fini()
	for _, op := range b.ops {
		if op == "fini" || op == "drain" {
			t.Errorf("Expected no teardown after failed init, got %v", b.ops)
		}
	}
}

// Test Fini drains input first, then restores modes in reverse order
func TestTerminalFini(t *testing.T) {
	b := &fakeBackend{}
	term := &Terminal{backend: b}

	term.Init()
	b.out.Reset()
	term.Fini()

	wantOps := []string{"init", "drain", "fini"}
	if len(b.ops) != len(wantOps) {
		t.Fatalf("Expected ops %v, got %v", wantOps, b.ops)
	}
	for i, op := range wantOps {
		if b.ops[i] != op {
			t.Errorf("Expected op[%d]=%s, got %s", i, op, b.ops[i])
		}
	}

	want := "\x1b[?1006l\x1b[?1003l\x1b[?1000l\x1b[?25h"
	if got := b.out.String(); got != want {
		t.Errorf("Expected fini sequences %q, got %q", want, got)
	}
}

// Test Fini is safe to call repeatedly
func TestTerminalFiniIdempotent(t *testing.T) {
	b := &fakeBackend{}
	term := &Terminal{backend: b}

	term.Init()
	term.Fini()
	term.Fini()

	finis := 0
	for _, op := range b.ops {
		if op == "fini" {
			finis++
		}
	}
	if finis != 1 {
		t.Errorf("Expected one backend fini, got %d", finis)
	}
}

// Test the terminal can be reinitialized after Fini
func TestTerminalReinit(t *testing.T) {
	b := &fakeBackend{}
	term := &Terminal{backend: b}

	term.Init()
	term.Fini()
	if err := term.Init(); err != nil {
		t.Fatalf("Reinit failed: %v", err)
	}

	inits := 0
	for _, op := range b.ops {
		if op == "init" {
			inits++
		}
	}
	if inits != 2 {
		t.Errorf("Expected two backend inits, got %d", inits)
	}
}

// Test Write passes bytes through to the backend
func TestTerminalWrite(t *testing.T) {
	b := &fakeBackend{}
	term := &Terminal{backend: b}

	n, err := term.Write([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Expected clean write of 5 bytes, got n=%d err=%v", n, err)
	}
	if b.out.String() != "hello" {
		t.Errorf("Expected written bytes to reach backend, got %q", b.out.String())
	}
}

// Test Size comes from the backend
func TestTerminalSize(t *testing.T) {
	term := &Terminal{backend: &fakeBackend{}}

	cols, rows := term.Size()
	if cols != 100 || rows != 30 {
		t.Errorf("Expected 100x30, got %dx%d", cols, rows)
	}
}

// Test EmergencyReset emits mouse-off, cursor, attribute and full resets
func TestEmergencyReset(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)

	out := buf.String()
	for _, seq := range []string{
		"\x1b[?1006l", "\x1b[?1003l", "\x1b[?1000l",
		"\x1b[?25h", "\x1b[0m", "\x1bc",
	} {
		if !strings.Contains(out, seq) {
			t.Errorf("Expected reset output to contain %q", seq)
		}
	}
}
