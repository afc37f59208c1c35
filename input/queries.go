package input

import (
	"time"
)

// Device query sequences, written to the terminal by the query methods
var (
	queryDeviceAttrs = []byte("\x1b[c")
	queryCellSize    = []byte("\x1b[16t")
	queryCursorPos   = []byte("\x1b[6n")
	cursorToCorner   = []byte("\x1b[9999;9999H")
)

// reportDeviceAttributes stores a primary device-attributes reply and
// wakes any waiting query. Runs on the read loop.
func (in *Input) reportDeviceAttributes(parms []int) {
	in.queryMu.Lock()
	in.deviceAttrs = append([]int(nil), parms...)
	in.queryCond.Signal()
	in.queryMu.Unlock()
}

// reportCellSize stores a pixels-per-cell reply. No wake: screen-size
// callers block on the cursor-position reply that follows it.
func (in *Input) reportCellSize(height, width int) {
	in.queryMu.Lock()
	in.cellHeight = height
	in.cellWidth = width
	in.hasCellSize = true
	in.queryMu.Unlock()
}

// reportCursorPos stores a cursor-position reply and wakes any waiting
// query. Runs on the read loop.
func (in *Input) reportCursorPos(row, col int) {
	in.queryMu.Lock()
	in.cursorRow = row
	in.cursorCol = col
	in.hasCursorPos = true
	in.queryCond.Signal()
	in.queryMu.Unlock()
}

// DeviceAttributes requests the terminal's primary device attributes
// and blocks until the reply arrives. Terminals always answer this.
func (in *Input) DeviceAttributes() []int {
	in.queryMu.Lock()
	defer in.queryMu.Unlock()

	in.console.Write(queryDeviceAttrs)

	for len(in.deviceAttrs) == 0 {
		in.queryCond.Wait()
	}
	return in.deviceAttrs
}

// ScreenSize reports the terminal's drawable area in pixels, derived
// from the cell grid and the per-cell pixel size. Jumps the cursor to
// the bottom-right corner so the position reply doubles as the grid
// size. Terminals that do not answer the cell-size query get the
// VT340-compatible 20x10 fallback.
func (in *Input) ScreenSize() (heightPx, widthPx int) {
	in.queryMu.Lock()
	defer in.queryMu.Unlock()

	q := make([]byte, 0, 32)
	q = append(q, cursorToCorner...)
	q = append(q, queryCellSize...)
	q = append(q, queryCursorPos...)
	in.console.Write(q)

	in.hasCellSize = false
	in.hasCursorPos = false

	for !in.hasCursorPos {
		in.queryCond.Wait()
	}

	if !in.hasCellSize {
		in.cellHeight = 20
		in.cellWidth = 10
	}

	return in.cursorRow * in.cellHeight, in.cursorCol * in.cellWidth
}

// ScreenCells reports the terminal grid as rows and columns, falling
// back to 80x24 when the terminal stays silent past the query timeout.
func (in *Input) ScreenCells() (rows, cols int) {
	in.queryMu.Lock()
	defer in.queryMu.Unlock()

	q := make([]byte, 0, 16)
	q = append(q, cursorToCorner...)
	q = append(q, queryCursorPos...)
	in.console.Write(q)

	in.hasCursorPos = false

	// sync.Cond has no timed wait; a timer broadcast under the same
	// lock wakes the loop so it can observe the deadline
	deadline := time.Now().Add(in.cfg.QueryTimeout)
	wake := time.AfterFunc(in.cfg.QueryTimeout, func() {
		in.queryMu.Lock()
		in.queryCond.Broadcast()
		in.queryMu.Unlock()
	})
	defer wake.Stop()

	for !in.hasCursorPos && time.Now().Before(deadline) {
		in.queryCond.Wait()
	}

	if !in.hasCursorPos {
		return 24, 80
	}
	return in.cursorRow, in.cursorCol
}
