package screen

// dirtyRegion tracks the span of columns touched on a row since the last
// flush. An unset region means the row is clean and the diff skips it.
type dirtyRegion struct {
	lo  int
	hi  int
	set bool
}

// mark widens the region to include [lo, hi].
func (d *dirtyRegion) mark(lo, hi int) {
	if !d.set {
		d.lo, d.hi, d.set = lo, hi, true
		return
	}
	if lo < d.lo {
		d.lo = lo
	}
	if hi > d.hi {
		d.hi = hi
	}
}

// markFull marks the whole row dirty.
func (d *dirtyRegion) markFull(width int) {
	if width == 0 {
		return
	}
	d.mark(0, width-1)
}

func (d *dirtyRegion) isDirty() bool { return d.set }

// span is one contiguous run of changed cells on a row, inclusive on both
// ends. Spans are what the encoder turns into cursor moves and content.
type span struct {
	row int
	lo  int
	hi  int
}

// findRowSpan compares a front row against a back row within the dirty
// column bounds and returns the tightest span of differing cells. A span
// never starts on a continuation cell: it is widened left to the owning wide
// cell so the emitted content starts on a cluster boundary.
func findRowSpan(row int, front, back []Cell, d dirtyRegion) (span, bool) {
	if !d.set {
		return span{}, false
	}

	lo := d.lo
	for lo <= d.hi && front[lo].Equal(back[lo]) {
		lo++
	}
	if lo > d.hi {
		return span{}, false
	}
	hi := d.hi
	for hi > lo && front[hi].Equal(back[hi]) {
		hi--
	}

	if front[lo].IsContinuation() && lo > 0 {
		lo--
	}
	return span{row: row, lo: lo, hi: hi}, true
}

// hashRow computes the content hash of a row of cells. The result is never
// zero so that zero can mean "not computed".
func hashRow(cells []Cell) uint64 {
	h := uint64(0)
	for i := range cells {
		h = h*31 + cells[i].hash()
	}
	if h == 0 {
		h = 1
	}
	return h
}

// scrollOp describes a vertical block move detected between the two
// buffers. Rows [lo, lo+size) of the front frame match rows shifted by
// shift in the back frame: shift > 0 means the content moved up (DL at lo),
// shift < 0 means it moved down (IL above lo).
type scrollOp struct {
	lo    int
	size  int
	shift int
}

// minScrollRun is the smallest block of moved rows worth an IL/DL escape.
// Below this the plain span diff is cheaper.
const minScrollRun = 3

// maxScrollShift bounds how far away matching rows are searched.
const maxScrollShift = 16

// detectScroll looks for the single best vertical block move between the
// front and back buffers by matching line hashes. Rows without a valid hash
// on either side never match, so a stale hash can only miss a scroll, not
// fabricate one. Returns false when no run of at least minScrollRun moved
// rows exists.
func detectScroll(b *Buffer) (scrollOp, bool) {
	best := scrollOp{}
	found := false

	for shift := -maxScrollShift; shift <= maxScrollShift; shift++ {
		if shift == 0 {
			continue
		}
		run := 0
		start := 0
		for row := 0; row < b.height; row++ {
			if rowMovedBy(b, row, shift) {
				if run == 0 {
					start = row
				}
				run++
				continue
			}
			if run >= minScrollRun && run > best.size {
				best = scrollOp{lo: start, size: run, shift: shift}
				found = true
			}
			run = 0
		}
		if run >= minScrollRun && run > best.size {
			best = scrollOp{lo: start, size: run, shift: shift}
			found = true
		}
	}

	return best, found
}

// rowMovedBy reports whether the front row's content currently sits shift
// rows away in the back buffer, and actually needs to move (a row already in
// place never counts).
func rowMovedBy(b *Buffer, row, shift int) bool {
	src := row + shift
	if src < 0 || src >= b.height {
		return false
	}
	if !b.dirty[row].isDirty() {
		return false
	}
	fh := b.frontHash[row]
	if fh == 0 || fh != b.backHash[src] {
		return false
	}
	// Same content already at this row: not a move.
	return fh != b.backHash[row]
}
