package screen

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// echRunMin is the shortest run of default-style blanks worth an erase
// escape instead of literal spaces.
const echRunMin = 8

// defaultCheckInterval is how many dirty rows are encoded between input
// polls during a refresh.
const defaultCheckInterval = 32

// Screen is the handle to one terminal surface. Draw calls mutate the front
// buffer; Refresh diffs it against the back buffer and writes the minimal
// escape stream in a single flush. A Screen is not safe for concurrent use;
// one goroutine owns it.
type Screen struct {
	out     io.Writer
	outFile *os.File
	in      *os.File

	buf    *Buffer
	esc    *escBuilder
	styles styleCache
	caps   Capabilities
	reader *EventReader

	// logical draw state
	curRow  int
	curCol  int
	pending Style
	pairs   map[uint8][2]Color

	// terminal cursor tracking; -1 means unknown
	termRow int
	termCol int

	cursorVisible bool
	cursorShown   bool

	checkInterval int
	holdCount     int
	heldRefresh   bool

	useAltScreen bool
	fixedSize    bool
	fixedWidth   int
	fixedHeight  int
	capsSet      bool

	rawState    *term.State
	initialized bool
}

// New creates a Screen with the given options. The zero configuration
// targets the process's terminal on stdin/stdout. Call Init before drawing.
func New(opts ...Option) *Screen {
	s := &Screen{
		out:           os.Stdout,
		outFile:       os.Stdout,
		in:            os.Stdin,
		useAltScreen:  true,
		checkInterval: defaultCheckInterval,
		termRow:       -1,
		termCol:       -1,
		pairs:         map[uint8][2]Color{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init enters raw and alternate-screen mode, sizes the buffers to the
// terminal geometry, and clears the display. Returns
// ErrAlreadyInitialized on a second call.
func (s *Screen) Init() error {
	if s.initialized {
		return ErrAlreadyInitialized
	}

	width, height := s.fixedWidth, s.fixedHeight
	if !s.fixedSize {
		width, height = 80, 24
		if s.outFile != nil && term.IsTerminal(int(s.outFile.Fd())) {
			width, height = terminalSize(int(s.outFile.Fd()))
		}
	}
	if width <= 0 || height <= 0 {
		return &InvalidDimensionsError{Width: width, Height: height}
	}

	if !s.capsSet {
		s.caps = defaultCapabilities()
		if s.outFile != nil && term.IsTerminal(int(s.outFile.Fd())) {
			s.caps = DetectCapabilities()
		}
	}

	if s.in != nil && term.IsTerminal(int(s.in.Fd())) {
		state, err := term.MakeRaw(int(s.in.Fd()))
		if err != nil {
			return err
		}
		s.rawState = state
	}
	if s.in != nil {
		s.reader = NewEventReader(int(s.in.Fd()))
	}

	s.buf = NewBuffer(width, height)
	s.esc = newEscBuilder(width * height * 4)
	s.styles.reset()
	s.curRow, s.curCol = 0, 0
	s.termRow, s.termCol = -1, -1
	s.cursorVisible = false
	s.cursorShown = true
	s.pending = Style{}
	s.initialized = true

	e := s.esc
	e.Reset()
	if s.useAltScreen && s.caps.AltScreen {
		e.EnterAltScreen()
	}
	e.HideCursor()
	s.cursorShown = false
	e.ResetStyle()
	e.ClearScreen()
	e.MoveTo(0, 0)
	s.termRow, s.termCol = 0, 0
	if _, err := s.out.Write(e.Bytes()); err != nil {
		s.restoreTerminal()
		s.initialized = false
		return err
	}
	return nil
}

// Close restores the terminal: shows the cursor, leaves the alternate
// screen, and re-enables the original input mode. Safe to call more than
// once.
func (s *Screen) Close() error {
	if !s.initialized {
		return nil
	}
	s.initialized = false

	e := s.esc
	e.Reset()
	e.ResetStyle()
	e.ShowCursor()
	if s.useAltScreen && s.caps.AltScreen {
		e.ExitAltScreen()
	}
	_, werr := s.out.Write(e.Bytes())

	if rerr := s.restoreTerminal(); rerr != nil {
		return rerr
	}
	return werr
}

func (s *Screen) restoreTerminal() error {
	var err error
	if s.rawState != nil && s.in != nil {
		err = term.Restore(int(s.in.Fd()), s.rawState)
		s.rawState = nil
	}
	if s.reader != nil {
		cerr := s.reader.Close()
		if err == nil {
			err = cerr
		}
		s.reader = nil
	}
	return err
}

// Size returns the screen dimensions in (width, height) cells.
func (s *Screen) Size() (width, height int) {
	if s.buf == nil {
		return 0, 0
	}
	return s.buf.Size()
}

// MoveCursor positions the logical cursor. Out-of-range coordinates clamp
// to the screen.
func (s *Screen) MoveCursor(row, col int) {
	if s.buf == nil {
		return
	}
	w, h := s.buf.Size()
	s.curRow = clamp(row, 0, h-1)
	s.curCol = clamp(col, 0, w-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Print writes text at the logical cursor with the pending style and
// advances the cursor by the printed width. Text never wraps; it clips at
// the right edge.
func (s *Screen) Print(text string) {
	if s.buf == nil {
		return
	}
	s.curCol += s.buf.SetString(s.curRow, s.curCol, text, s.pending)
}

// PrintAt writes text at the given position and leaves the logical cursor
// after it.
func (s *Screen) PrintAt(row, col int, text string) {
	s.MoveCursor(row, col)
	s.Print(text)
}

// AddCh writes a single rune at the given position without moving the
// logical cursor.
func (s *Screen) AddCh(row, col int, r rune) {
	if s.buf == nil {
		return
	}
	s.buf.SetCell(row, col, string(r), s.pending)
}

// SetForeground sets the pending foreground color applied by subsequent
// print calls. It does not write to the terminal.
func (s *Screen) SetForeground(r, g, b uint8) {
	s.pending.Fg = RGBColor(r, g, b)
}

// SetBackground sets the pending background color.
func (s *Screen) SetBackground(r, g, b uint8) {
	s.pending.Bg = RGBColor(r, g, b)
}

// SetStyle replaces the whole pending style.
func (s *Screen) SetStyle(style Style) {
	s.pending = style
}

// Style returns the current pending style.
func (s *Screen) Style() Style {
	return s.pending
}

// AttrOn enables attributes in the pending style.
func (s *Screen) AttrOn(mask Attr) {
	s.pending.Attrs |= mask
}

// AttrOff disables attributes in the pending style.
func (s *Screen) AttrOff(mask Attr) {
	s.pending.Attrs &^= mask
}

// AttrSet replaces the pending attribute set.
func (s *Screen) AttrSet(mask Attr) {
	s.pending.Attrs = mask
}

// InitPair registers a reusable foreground/background pair. Pair 0 is
// reserved for the default colors and cannot be redefined.
func (s *Screen) InitPair(pair uint8, fg, bg Color) error {
	if pair == 0 {
		return &InvalidColorPairError{Pair: pair}
	}
	s.pairs[pair] = [2]Color{fg, bg}
	return nil
}

// UsePair applies a registered color pair to the pending style. Pair 0
// restores the default colors.
func (s *Screen) UsePair(pair uint8) error {
	if pair == 0 {
		s.pending.Fg = DefaultColor()
		s.pending.Bg = DefaultColor()
		return nil
	}
	colors, ok := s.pairs[pair]
	if !ok {
		return &InvalidColorPairError{Pair: pair}
	}
	s.pending.Fg = colors[0]
	s.pending.Bg = colors[1]
	return nil
}

// Clear blanks the whole front buffer. The terminal updates on the next
// Refresh.
func (s *Screen) Clear() {
	if s.buf == nil {
		return
	}
	s.buf.Clear()
}

// ClearToEOL blanks from the logical cursor to the end of its row.
func (s *Screen) ClearToEOL() {
	if s.buf == nil {
		return
	}
	s.buf.ClearRange(s.curRow, s.curCol, s.buf.Width()-1)
}

// ClearToBottom blanks from the logical cursor to the end of the screen.
func (s *Screen) ClearToBottom() {
	if s.buf == nil {
		return
	}
	s.ClearToEOL()
	for row := s.curRow + 1; row < s.buf.Height(); row++ {
		s.buf.ClearRange(row, 0, s.buf.Width()-1)
	}
}

// CursorVisible controls whether the terminal cursor is shown at the
// logical cursor position after each refresh.
func (s *Screen) CursorVisible(visible bool) {
	s.cursorVisible = visible
}

// DrawBox draws a rectangular frame with the given style. Coordinates are
// inclusive; boxes smaller than 2x2 are ignored.
func (s *Screen) DrawBox(top, left, bottom, right int, style Style) {
	if s.buf == nil || bottom-top < 1 || right-left < 1 {
		return
	}
	g := glyphsFor(s.caps)

	s.buf.SetCell(top, left, g.topLeft, style)
	s.buf.SetCell(top, right, g.topRight, style)
	s.buf.SetCell(bottom, left, g.bottomLeft, style)
	s.buf.SetCell(bottom, right, g.bottomRight, style)
	for col := left + 1; col < right; col++ {
		s.buf.SetCell(top, col, g.horizontal, style)
		s.buf.SetCell(bottom, col, g.horizontal, style)
	}
	for row := top + 1; row < bottom; row++ {
		s.buf.SetCell(row, left, g.vertical, style)
		s.buf.SetCell(row, right, g.vertical, style)
	}
}

// Border draws a frame around the whole screen.
func (s *Screen) Border(style Style) {
	if s.buf == nil {
		return
	}
	w, h := s.buf.Size()
	s.DrawBox(0, 0, h-1, w-1, style)
}

// SetCheckInterval sets how many dirty rows are encoded between input
// polls during Refresh. Zero disables interrupt checking.
func (s *Screen) SetCheckInterval(rows int) {
	if rows < 0 {
		rows = 0
	}
	s.checkInterval = rows
}

// HoldRefresh suspends flushing: Refresh calls return immediately until a
// matching ReleaseRefresh. Holds nest.
func (s *Screen) HoldRefresh() {
	s.holdCount++
}

// ReleaseRefresh releases one hold. When the last hold is released and a
// refresh was requested in the meantime, it runs now.
func (s *Screen) ReleaseRefresh() error {
	if s.holdCount == 0 {
		return nil
	}
	s.holdCount--
	if s.holdCount == 0 && s.heldRefresh {
		s.heldRefresh = false
		return s.Refresh()
	}
	return nil
}

// GetKey flushes any pending frame, then blocks until the next input
// event. Resize events update the screen geometry before being returned.
// Returns (nil, nil) when no input source is attached; a failed flush is
// returned as the error without waiting for input.
func (s *Screen) GetKey() (Event, error) {
	return s.getKey(-1)
}

// GetKeyTimeout is GetKey with an upper bound on the wait. Returns
// (nil, nil) when the timeout expires with no event.
func (s *Screen) GetKeyTimeout(timeout time.Duration) (Event, error) {
	return s.getKey(timeout)
}

func (s *Screen) getKey(timeout time.Duration) (Event, error) {
	if !s.initialized {
		return nil, ErrNotInitialized
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	if s.reader == nil {
		return nil, nil
	}
	ev, ok := s.reader.PollEvent(timeout)
	if !ok {
		return nil, nil
	}
	if rz, isResize := ev.(ResizeEvent); isResize {
		s.applyResize(rz.Width, rz.Height)
	}
	return ev, nil
}

// applyResize reallocates the buffers for a new geometry. Contents are
// invalidated: the screen is blank until redrawn and the next refresh
// repaints every cell.
func (s *Screen) applyResize(width, height int) {
	if s.fixedSize || width <= 0 || height <= 0 {
		return
	}
	s.buf.Resize(width, height)
	s.curRow = clamp(s.curRow, 0, height-1)
	s.curCol = clamp(s.curCol, 0, width-1)
	s.termRow, s.termCol = -1, -1
}

// EnableKittyKeyboard asks the terminal to report keys with the extended
// keyboard protocol.
func (s *Screen) EnableKittyKeyboard(flags KittyFlags) error {
	return s.writeSeq(kittyEnableSeq(flags))
}

// DisableKittyKeyboard restores legacy key reporting.
func (s *Screen) DisableKittyKeyboard() error {
	return s.writeSeq(kittyDisableSeq())
}

// PushKittyKeyboard pushes the given protocol flags onto the terminal's
// stack, preserving the previous mode for PopKittyKeyboard.
func (s *Screen) PushKittyKeyboard(flags KittyFlags) error {
	return s.writeSeq(kittyPushSeq(flags))
}

// PopKittyKeyboard restores the previously pushed keyboard mode.
func (s *Screen) PopKittyKeyboard() error {
	return s.writeSeq(kittyPopSeq())
}

func (s *Screen) writeSeq(seq string) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	_, err := io.WriteString(s.out, seq)
	return err
}

// Refresh diffs the front buffer against the back buffer and writes the
// minimal escape stream in one flush. An unchanged frame writes nothing.
// When the write fails the back buffer is not advanced, so the next
// Refresh retries the same changes.
func (s *Screen) Refresh() error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if s.holdCount > 0 {
		s.heldRefresh = true
		return nil
	}

	b := s.buf
	e := s.esc
	e.Reset()
	e.BeginSyncUpdate()
	base := e.Len()

	if s.cursorVisible != s.cursorShown {
		if s.cursorVisible {
			e.ShowCursor()
		} else {
			e.HideCursor()
		}
	}

	b.updateHashes()

	scrolled := false
	if sc, ok := detectScroll(b); ok {
		if sc.shift > 0 {
			e.MoveTo(sc.lo, 0)
			e.DeleteLines(sc.shift)
		} else {
			e.MoveTo(sc.lo+sc.shift, 0)
			e.InsertLines(-sc.shift)
		}
		s.termRow, s.termCol = -1, -1
		b.applyScroll(sc)
		b.updateHashes()
		scrolled = true
	}

	var flushed []int
	dirtyRows := 0
	for row := 0; row < b.height; row++ {
		d := b.dirty[row]
		if !d.isDirty() {
			continue
		}

		sp, changed := findRowSpan(row, b.row(row), b.backRow(row), d)
		if !changed {
			// Dirty but identical: nothing to emit, settle it now.
			b.commitRow(row)
			continue
		}

		dirtyRows++
		if s.checkInterval > 0 && s.reader != nil &&
			dirtyRows%s.checkInterval == 0 && inputReady(int(s.in.Fd())) {
			// Input is waiting: flush what we have and leave the rest
			// dirty for the next refresh.
			break
		}

		s.encodeSpan(e, sp)
		flushed = append(flushed, row)
	}

	if s.cursorVisible && (e.Len() > base || s.termRow != s.curRow || s.termCol != s.curCol) {
		e.MoveTo(s.curRow, s.curCol)
		s.termRow, s.termCol = s.curRow, s.curCol
	}

	if e.Len() == base {
		return nil
	}
	e.EndSyncUpdate()

	if _, err := s.out.Write(e.Bytes()); err != nil {
		if scrolled {
			// The back buffer already mirrored the scroll the terminal
			// never saw. Poison it so the next refresh repaints fully.
			s.invalidateBack()
		}
		s.termRow, s.termCol = -1, -1
		s.styles.reset()
		return err
	}

	for _, row := range flushed {
		b.commitRow(row)
	}
	s.cursorShown = s.cursorVisible
	return nil
}

// invalidateBack poisons the back buffer so every cell differs on the next
// diff.
func (s *Screen) invalidateBack() {
	b := s.buf
	for i := range b.back {
		b.back[i] = invalidCell
	}
	for row := 0; row < b.height; row++ {
		b.backHash[row] = 0
		b.dirty[row].markFull(b.width)
	}
}

// encodeSpan emits cursor movement, style changes, and content for one
// changed span. Runs of default-style blanks are compressed into an erase
// escape when long enough to beat literal spaces.
func (s *Screen) encodeSpan(e *escBuilder, sp span) {
	b := s.buf

	plan := planMove(b, &s.styles, s.termRow, s.termCol, sp.row, sp.lo)
	emitMove(e, b, plan, s.termRow, s.termCol, sp.row, sp.lo)
	s.termRow, s.termCol = sp.row, sp.lo

	front := b.row(sp.row)
	col := sp.lo
	for col <= sp.hi {
		c := front[col]
		if c.IsContinuation() {
			col++
			continue
		}

		if run := blankRun(front, col, sp.hi); run >= echRunMin {
			s.styles.apply(e, Style{}, s.caps)
			e.EraseChars(run)
			col += run
			if col <= sp.hi {
				e.MoveRight(run)
				s.termCol += run
			}
			continue
		}

		s.styles.apply(e, c.Style, s.caps)
		e.WriteString(c.Content)
		s.termCol += int(c.Width)
		col += int(c.Width)
	}

	// Writing into the last column leaves the cursor position ambiguous
	// (pending-wrap state differs across terminals).
	if s.termCol >= b.width {
		s.termRow, s.termCol = -1, -1
	}
}

// blankRun counts consecutive default-style blank cells starting at col,
// bounded by hi.
func blankRun(cells []Cell, col, hi int) int {
	n := 0
	for col+n <= hi && cells[col+n].IsBlank() {
		n++
	}
	return n
}
