package screen

import "strings"

// invalidCell is the back-buffer sentinel used after Resize. It never
// compares equal to any real cell, so the next diff repaints everything.
var invalidCell = Cell{Content: "\x00", Width: 1}

// Buffer is the double-buffered 2D cell grid. The front buffer is the
// desired frame, mutated by draw calls; the back buffer mirrors what was
// last confirmed written to the terminal. Rows are tracked with dirty
// regions so the diff can skip untouched rows without scanning them.
type Buffer struct {
	width  int
	height int
	front  []Cell
	back   []Cell

	dirty     []dirtyRegion
	frontHash []uint64 // 0 means not computed; refreshed lazily for dirty rows
	backHash  []uint64
}

// NewBuffer creates a buffer pair of the given dimensions, initialized to
// blank cells. Negative dimensions clamp to zero.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	b := &Buffer{
		width:     width,
		height:    height,
		front:     make([]Cell, width*height),
		back:      make([]Cell, width*height),
		dirty:     make([]dirtyRegion, height),
		frontHash: make([]uint64, height),
		backHash:  make([]uint64, height),
	}
	blank := blankCell()
	for i := range b.front {
		b.front[i] = blank
		b.back[i] = blank
	}
	return b
}

// Width returns the buffer width in columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in rows.
func (b *Buffer) Height() int { return b.height }

// Size returns (width, height).
func (b *Buffer) Size() (width, height int) { return b.width, b.height }

// idx converts (row, col) to a flat index, or -1 if out of bounds.
func (b *Buffer) idx(row, col int) int {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return -1
	}
	return row*b.width + col
}

// Cell returns the front-buffer cell at (row, col), or a zero Cell when out
// of bounds.
func (b *Buffer) Cell(row, col int) Cell {
	i := b.idx(row, col)
	if i < 0 {
		return Cell{}
	}
	return b.front[i]
}

// backCell returns the back-buffer cell at (row, col).
func (b *Buffer) backCell(row, col int) Cell {
	i := b.idx(row, col)
	if i < 0 {
		return Cell{}
	}
	return b.back[i]
}

// put writes a cell into the front buffer and marks it dirty.
// Out-of-bounds writes are silently clipped.
func (b *Buffer) put(row, col int, c Cell) {
	i := b.idx(row, col)
	if i < 0 {
		return
	}
	b.front[i] = c
	b.dirty[row].mark(col, col)
	b.frontHash[row] = 0
}

// SetCell writes one grapheme cluster with the given style at (row, col) in
// the front buffer. Wide clusters occupy two columns and get a trailing
// continuation cell; overlapped wide characters are cleared so no orphaned
// halves remain. Out-of-bounds coordinates are silently clipped.
func (b *Buffer) SetCell(row, col int, content string, style Style) {
	if b.idx(row, col) < 0 {
		return
	}

	c := NewCell(content, style)

	cur := b.Cell(row, col)
	if cur.IsContinuation() {
		b.clearWideAt(row, col)
	}
	if cur.Width == 2 {
		b.put(row, col+1, blankCell())
	}

	if c.Width == 2 {
		// A wide cluster at the last column cannot fit; degrade to a space.
		if col+1 >= b.width {
			b.put(row, col, NewCell(" ", style))
			return
		}
		next := b.Cell(row, col+1)
		if next.Width == 2 || next.IsContinuation() {
			b.clearWideAt(row, col+1)
		}
	}

	b.put(row, col, c)
	if c.Width == 2 {
		b.put(row, col+1, continuationCell(style))
	}
}

// clearWideAt blanks the wide character covering (row, col), whether col is
// its first column or its continuation.
func (b *Buffer) clearWideAt(row, col int) {
	cur := b.Cell(row, col)
	switch {
	case cur.IsContinuation():
		if col > 0 {
			b.put(row, col-1, blankCell())
		}
		b.put(row, col, blankCell())
	case cur.Width == 2:
		b.put(row, col, blankCell())
		if col+1 < b.width {
			b.put(row, col+1, blankCell())
		}
	}
}

// SetString writes a string starting at (row, col), splitting it into
// grapheme clusters. Returns the display width consumed. Writing stops at
// the right edge without wrapping.
func (b *Buffer) SetString(row, col int, s string, style Style) int {
	if row < 0 || row >= b.height {
		return 0
	}

	total := 0
	cur := col
	for _, g := range graphemes(s) {
		if cur >= b.width {
			break
		}
		if cur < 0 {
			cur += int(g.Width)
			continue
		}
		if g.Width == 2 && cur+1 >= b.width {
			break
		}
		b.SetCell(row, cur, g.Content, style)
		cur += int(g.Width)
		total += int(g.Width)
	}
	return total
}

// Clear resets every front cell to blank. The terminal is untouched until
// the next flush.
func (b *Buffer) Clear() {
	blank := blankCell()
	for i := range b.front {
		b.front[i] = blank
	}
	for row := 0; row < b.height; row++ {
		b.dirty[row].markFull(b.width)
		b.frontHash[row] = 0
	}
}

// ClearRange blanks front cells [from, to] on the given row, inclusive.
func (b *Buffer) ClearRange(row, from, to int) {
	if row < 0 || row >= b.height {
		return
	}
	if from < 0 {
		from = 0
	}
	if to >= b.width {
		to = b.width - 1
	}
	for col := from; col <= to; col++ {
		if b.Cell(row, col).IsContinuation() && col == from {
			b.clearWideAt(row, col)
			continue
		}
		b.put(row, col, blankCell())
	}
}

// Resize reallocates both buffers to the new geometry. All contents are
// invalidated: the front becomes blank and the back is poisoned so the next
// diff repaints every cell. Stale content never survives a resize.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	b.width = width
	b.height = height
	b.front = make([]Cell, width*height)
	b.back = make([]Cell, width*height)
	b.dirty = make([]dirtyRegion, height)
	b.frontHash = make([]uint64, height)
	b.backHash = make([]uint64, height)

	blank := blankCell()
	for i := range b.front {
		b.front[i] = blank
		b.back[i] = invalidCell
	}
	for row := 0; row < height; row++ {
		b.dirty[row].markFull(width)
	}
}

// row returns the front cells of one row.
func (b *Buffer) row(row int) []Cell {
	return b.front[row*b.width : (row+1)*b.width]
}

// backRow returns the back cells of one row.
func (b *Buffer) backRow(row int) []Cell {
	return b.back[row*b.width : (row+1)*b.width]
}

// updateHashes recomputes front-row hashes for dirty rows whose cache was
// invalidated. Called once at the start of a refresh.
func (b *Buffer) updateHashes() {
	for row := 0; row < b.height; row++ {
		if b.dirty[row].isDirty() && b.frontHash[row] == 0 {
			b.frontHash[row] = hashRow(b.row(row))
		}
	}
}

// commitRow records that a row was flushed: the back row becomes a copy of
// the front row and the dirty region is cleared.
func (b *Buffer) commitRow(row int) {
	copy(b.backRow(row), b.row(row))
	b.backHash[row] = b.frontHash[row]
	b.dirty[row] = dirtyRegion{}
}

// applyScroll mirrors a line-move escape sequence onto the back buffer so
// back continues to match the terminal. Rows shifted in from outside the
// moved block become unknown and are marked dirty for the span diff.
func (b *Buffer) applyScroll(s scrollOp) {
	blank := blankCell()
	if s.shift > 0 {
		// DL at row lo: everything below moves up; blanks enter at bottom.
		for row := s.lo; row < b.height-s.shift; row++ {
			copy(b.backRow(row), b.backRow(row+s.shift))
			b.backHash[row] = b.backHash[row+s.shift]
		}
		for row := b.height - s.shift; row < b.height; row++ {
			dst := b.backRow(row)
			for i := range dst {
				dst[i] = blank
			}
			b.backHash[row] = 0
			b.dirty[row].markFull(b.width)
		}
		for row := s.lo + s.size; row < b.height-s.shift; row++ {
			b.dirty[row].markFull(b.width)
			b.frontHash[row] = 0
		}
	} else if s.shift < 0 {
		k := -s.shift
		// IL at row lo+shift: everything from there moves down k rows.
		for row := b.height - 1; row >= s.lo; row-- {
			copy(b.backRow(row), b.backRow(row-k))
			b.backHash[row] = b.backHash[row-k]
		}
		for row := s.lo - k; row < s.lo; row++ {
			dst := b.backRow(row)
			for i := range dst {
				dst[i] = blank
			}
			b.backHash[row] = 0
			b.dirty[row].markFull(b.width)
		}
		for row := s.lo + s.size; row < b.height; row++ {
			b.dirty[row].markFull(b.width)
			b.frontHash[row] = 0
		}
	}
}

// String renders the front buffer for debugging, one line per row.
// Continuation cells are skipped.
func (b *Buffer) String() string {
	var sb strings.Builder
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			cell := b.front[row*b.width+col]
			if cell.IsContinuation() {
				continue
			}
			if cell.Content == "" {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(cell.Content)
			}
		}
		if row < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
