package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jserv/kitty-doom/doom"
	"github.com/jserv/kitty-doom/input"
	"github.com/jserv/kitty-doom/terminal"
)

// printer echoes every decoded event. Writing through the terminal keeps
// event lines from interleaving with query sequences; raw mode needs
// explicit \r\n.
type printer struct {
	out io.Writer
}

func (p *printer) KeyDown(key doom.Key) {
	fmt.Fprintf(p.out, "key down  %s\r\n", keyName(key))
}

func (p *printer) KeyUp(key doom.Key) {
	fmt.Fprintf(p.out, "key up    %s\r\n", keyName(key))
}

func (p *printer) MouseMove(dx, dy int) {
	fmt.Fprintf(p.out, "mouse     dx=%d dy=%d\r\n", dx, dy)
}

var keyNames = map[doom.Key]string{
	doom.KeyTab:        "Tab",
	doom.KeyEnter:      "Enter",
	doom.KeyEscape:     "Escape",
	doom.KeySpace:      "Space",
	doom.KeyBackspace:  "Backspace",
	doom.KeyLeftArrow:  "Left",
	doom.KeyUpArrow:    "Up",
	doom.KeyRightArrow: "Right",
	doom.KeyDownArrow:  "Down",
	doom.KeyCtrl:       "Ctrl",
	doom.KeyShift:      "Shift",
	doom.KeyAlt:        "Alt",
	doom.KeyF1:         "F1",
	doom.KeyF2:         "F2",
	doom.KeyF3:         "F3",
	doom.KeyF4:         "F4",
	doom.KeyF5:         "F5",
	doom.KeyF6:         "F6",
	doom.KeyF7:         "F7",
	doom.KeyF8:         "F8",
	doom.KeyF9:         "F9",
	doom.KeyF10:        "F10",
	doom.KeyF11:        "F11",
	doom.KeyF12:        "F12",
}

func keyName(key doom.Key) string {
	if name, ok := keyNames[key]; ok {
		return name
	}
	if key > 32 && key < 127 {
		return string(rune(key))
	}
	return fmt.Sprintf("0x%02x", int(key))
}

func main() {
	term := terminal.New()
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer term.Fini()

	in := input.New(term, &printer{out: term}, input.LoadConfig())
	in.Start()
	defer in.Close()

	fmt.Fprintf(term, "device attributes: %v\r\n", in.DeviceAttributes())

	rows, cols := in.ScreenCells()
	fmt.Fprintf(term, "screen cells: %d rows x %d cols\r\n", rows, cols)

	heightPx, widthPx := in.ScreenSize()
	fmt.Fprintf(term, "screen pixels: %d x %d\r\n", widthPx, heightPx)

	fmt.Fprintf(term, "press keys, move the mouse; Ctrl+C quits\r\n")

	for in.Running() {
		time.Sleep(50 * time.Millisecond)
	}
}
