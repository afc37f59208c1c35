//go:build unix

package terminal

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Kitty graphics capability probe: a 1x1 direct-transmission query.
// A supporting terminal answers with an APC response carrying i=31.
var kittyProbe = []byte("\x1b_Gi=31,s=1,v=1,a=q,t=d,f=24;AAAA\x1b\\")

// SupportsKittyGraphics reports whether the terminal implements the Kitty
// graphics protocol. Known-good terminals are detected from the environment;
// anything else is probed actively with a 500ms response window.
//
// Called before Init: the probe manages its own raw mode and restores it.
func SupportsKittyGraphics() bool {
	// Quick check: known compatible terminals via environment variables
	if strings.Contains(os.Getenv("TERM"), "kitty") {
		return true // Kitty sets TERM=xterm-kitty
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "ghostty", "WezTerm":
		return true
	}

	fmt.Fprintln(os.Stderr, "Probing terminal for Kitty graphics protocol support...")

	inFd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(inFd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: cannot probe terminal (raw mode failed)")
		return false
	}
	defer term.Restore(inFd, old)

	os.Stdout.Write(kittyProbe)

	fds := []unix.PollFd{
		{Fd: int32(inFd), Events: unix.POLLIN},
	}
	if n, err := unix.Poll(fds, 500); err != nil || n == 0 {
		return false
	}

	buf := make([]byte, 256)
	rn, err := unix.Read(inFd, buf)
	if err != nil || rn <= 0 {
		return false
	}
	return bytes.Contains(buf[:rn], []byte("_Gi=31"))
}

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := int(tty.Fd())
		// Get current termios, enable ECHO and ICANON
		if termios, err := unix.IoctlGetTermios(fd, unix.TCGETS); err == nil {
			termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			termios.Iflag |= unix.ICRNL
			unix.IoctlSetTermios(fd, unix.TCSETS, termios)
		}
	}
}
