package input

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

type scriptReply struct {
	query string // substring of a write that triggers the reply
	bytes string // reply queued for the read loop
}

// scriptConsole feeds scripted terminal replies back to the read loop
// when it sees the matching query on its write side.
type scriptConsole struct {
	mu      sync.Mutex
	replies []scriptReply
	queue   []byte
	wrote   bytes.Buffer
}

func (c *scriptConsole) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.wrote.Write(p)
	for _, r := range c.replies {
		if strings.Contains(string(p), r.query) {
			c.queue = append(c.queue, r.bytes...)
		}
	}
	return len(p), nil
}

func (c *scriptConsole) ReadByte(timeout time.Duration) (byte, bool, error) {
	c.mu.Lock()
	if len(c.queue) > 0 {
		b := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()
		return b, true, nil
	}
	c.mu.Unlock()

	time.Sleep(timeout)
	return 0, false, nil
}

func (c *scriptConsole) written() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wrote.String()
}

// Test the cell-grid query round trip through the read loop
func TestScreenCells(t *testing.T) {
	con := &scriptConsole{replies: []scriptReply{
		{"\x1b[6n", "\x1b[40;120R"},
	}}
	in := New(con, &recordGame{}, DefaultConfig())
	in.Start()
	defer in.Close()

	rows, cols := in.ScreenCells()
	if rows != 40 || cols != 120 {
		t.Errorf("Expected 40x120 cells, got %dx%d", rows, cols)
	}

	if !strings.Contains(con.written(), "\x1b[9999;9999H") {
		t.Errorf("Expected cursor jump to the corner before the query")
	}
}

// Test the silent-terminal fallback for the cell-grid query
func TestScreenCellsTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QueryTimeout = 50 * time.Millisecond

	con := &scriptConsole{} // never answers
	in := New(con, &recordGame{}, cfg)
	in.Start()
	defer in.Close()

	rows, cols := in.ScreenCells()
	if rows != 24 || cols != 80 {
		t.Errorf("Expected 24x80 fallback, got %dx%d", rows, cols)
	}
}

// Test pixel screen size from cell size and grid replies
func TestScreenSize(t *testing.T) {
	con := &scriptConsole{replies: []scriptReply{
		{"\x1b[16t", "\x1b[4;16;8t"},
		{"\x1b[6n", "\x1b[50;100R"},
	}}
	in := New(con, &recordGame{}, DefaultConfig())
	in.Start()
	defer in.Close()

	h, w := in.ScreenSize()
	if h != 50*16 || w != 100*8 {
		t.Errorf("Expected %dx%d pixels, got %dx%d", 50*16, 100*8, h, w)
	}
}

// Test the cell-size fallback when only the cursor query is answered
func TestScreenSizeCellFallback(t *testing.T) {
	con := &scriptConsole{replies: []scriptReply{
		{"\x1b[6n", "\x1b[50;100R"},
	}}
	in := New(con, &recordGame{}, DefaultConfig())
	in.Start()
	defer in.Close()

	h, w := in.ScreenSize()
	if h != 50*20 || w != 100*10 {
		t.Errorf("Expected VT340 fallback %dx%d, got %dx%d", 50*20, 100*10, h, w)
	}
}

// Test the device-attributes query stores the full parameter list
func TestDeviceAttributes(t *testing.T) {
	con := &scriptConsole{replies: []scriptReply{
		{"\x1b[c", "\x1b[?62;4;6;22c"},
	}}
	in := New(con, &recordGame{}, DefaultConfig())
	in.Start()
	defer in.Close()

	attrs := in.DeviceAttributes()
	want := []int{62, 4, 6, 22}
	if len(attrs) != len(want) {
		t.Fatalf("Expected %v, got %v", want, attrs)
	}
	for i := range want {
		if attrs[i] != want[i] {
			t.Errorf("Attribute %d: expected %d, got %d", i, want[i], attrs[i])
		}
	}
}

// Test keystrokes flow through the running loop to the game
func TestRunLoopDispatch(t *testing.T) {
	con := &scriptConsole{}
	con.mu.Lock()
	con.queue = []byte("\x1b[C")
	con.mu.Unlock()

	g := &recordGame{}
	in := New(con, g, DefaultConfig())
	in.Start()
	defer in.Close()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(g.ofKind("down")) > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	downs := g.ofKind("down")
	if len(downs) != 1 {
		t.Fatalf("Expected one key-down from the loop, got %v", downs)
	}
}

// Test exit signalling and loop shutdown
func TestRequestExit(t *testing.T) {
	con := &scriptConsole{}
	in := New(con, &recordGame{}, DefaultConfig())
	in.Start()

	if !in.Running() {
		t.Errorf("Expected running after start")
	}

	in.RequestExit()
	if in.Running() {
		t.Errorf("Expected not running after exit request")
	}

	done := make(chan struct{})
	go func() {
		in.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Close did not join the read loop")
	}
}
