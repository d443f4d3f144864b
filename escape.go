package screen

import "strconv"

// escBuilder efficiently builds ANSI escape sequences into a single
// growable byte buffer. One builder accumulates a whole frame which is then
// written with a single flush.
type escBuilder struct {
	buf []byte
}

// newEscBuilder creates a builder with the given initial capacity.
func newEscBuilder(capacity int) *escBuilder {
	return &escBuilder{buf: make([]byte, 0, capacity)}
}

// Reset clears the buffer for reuse.
func (e *escBuilder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the accumulated output.
func (e *escBuilder) Bytes() []byte {
	return e.buf
}

// Len returns the current length of the buffer.
func (e *escBuilder) Len() int {
	return len(e.buf)
}

// writeCSI writes the Control Sequence Introducer (ESC [).
func (e *escBuilder) writeCSI() {
	e.buf = append(e.buf, '\x1b', '[')
}

// writeInt appends a decimal integer.
func (e *escBuilder) writeInt(n int) {
	e.buf = strconv.AppendInt(e.buf, int64(n), 10)
}

// MoveTo emits an absolute cursor position (CUP). Coordinates are
// 0-indexed; the wire format is 1-indexed.
func (e *escBuilder) MoveTo(row, col int) {
	e.writeCSI()
	e.writeInt(row + 1)
	e.buf = append(e.buf, ';')
	e.writeInt(col + 1)
	e.buf = append(e.buf, 'H')
}

// moveRel emits a relative cursor movement with the given final byte
// (A=up, B=down, C=forward, D=back). The count is omitted when 1.
func (e *escBuilder) moveRel(n int, final byte) {
	if n <= 0 {
		return
	}
	e.writeCSI()
	if n > 1 {
		e.writeInt(n)
	}
	e.buf = append(e.buf, final)
}

// MoveUp moves the cursor up by n rows (CUU).
func (e *escBuilder) MoveUp(n int) { e.moveRel(n, 'A') }

// MoveDown moves the cursor down by n rows (CUD).
func (e *escBuilder) MoveDown(n int) { e.moveRel(n, 'B') }

// MoveRight moves the cursor right by n columns (CUF).
func (e *escBuilder) MoveRight(n int) { e.moveRel(n, 'C') }

// MoveLeft moves the cursor left by n columns (CUB).
func (e *escBuilder) MoveLeft(n int) { e.moveRel(n, 'D') }

// EraseChars blanks n cells at the cursor without moving it (ECH).
func (e *escBuilder) EraseChars(n int) {
	e.writeCSI()
	e.writeInt(n)
	e.buf = append(e.buf, 'X')
}

// InsertLines inserts n blank lines at the cursor row (IL), shifting the
// rows below down.
func (e *escBuilder) InsertLines(n int) {
	e.writeCSI()
	e.writeInt(n)
	e.buf = append(e.buf, 'L')
}

// DeleteLines deletes n lines at the cursor row (DL), shifting the rows
// below up.
func (e *escBuilder) DeleteLines(n int) {
	e.writeCSI()
	e.writeInt(n)
	e.buf = append(e.buf, 'M')
}

// ClearScreen clears the visible screen (ED 2).
func (e *escBuilder) ClearScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'J')
}

// ClearScrollback clears the scrollback buffer (ED 3).
func (e *escBuilder) ClearScrollback() {
	e.writeCSI()
	e.buf = append(e.buf, '3', 'J')
}

// ClearLine clears the entire current line (EL 2).
func (e *escBuilder) ClearLine() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'K')
}

// HideCursor makes the cursor invisible.
func (e *escBuilder) HideCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'l')
}

// ShowCursor makes the cursor visible.
func (e *escBuilder) ShowCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'h')
}

// EnterAltScreen switches to the alternate screen buffer.
func (e *escBuilder) EnterAltScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '4', '9', 'h')
}

// ExitAltScreen switches back to the main screen buffer.
func (e *escBuilder) ExitAltScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '4', '9', 'l')
}

// BeginSyncUpdate starts a synchronized update block. Terminals that
// support mode 2026 buffer everything until EndSyncUpdate and display it
// atomically; others ignore the sequence.
func (e *escBuilder) BeginSyncUpdate() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '0', '2', '6', 'h')
}

// EndSyncUpdate ends a synchronized update block.
func (e *escBuilder) EndSyncUpdate() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '0', '2', '6', 'l')
}

// ResetStyle resets all text attributes and colors to default (SGR 0).
func (e *escBuilder) ResetStyle() {
	e.writeCSI()
	e.buf = append(e.buf, '0', 'm')
}

// SGR wraps pre-built parameter bytes in CSI ... m. Does nothing for an
// empty parameter list.
func (e *escBuilder) SGR(params []byte) {
	if len(params) == 0 {
		return
	}
	e.writeCSI()
	e.buf = append(e.buf, params...)
	e.buf = append(e.buf, 'm')
}

// WriteString appends raw content bytes.
func (e *escBuilder) WriteString(s string) {
	e.buf = append(e.buf, s...)
}

// WriteBytes appends raw bytes.
func (e *escBuilder) WriteBytes(b []byte) {
	e.buf = append(e.buf, b...)
}
