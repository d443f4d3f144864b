package screen

import (
	"testing"
)

func TestNewBuffer(t *testing.T) {
	type tc struct {
		width  int
		height int
	}

	tests := map[string]tc{
		"standard size":       {width: 80, height: 24},
		"small size":          {width: 10, height: 5},
		"single cell":         {width: 1, height: 1},
		"zero width":          {width: 0, height: 10},
		"negative dimensions": {width: -5, height: -3},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBuffer(tt.width, tt.height)

			wantW, wantH := tt.width, tt.height
			if wantW < 0 {
				wantW = 0
			}
			if wantH < 0 {
				wantH = 0
			}

			if b.Width() != wantW {
				t.Errorf("Width() = %d, want %d", b.Width(), wantW)
			}
			if b.Height() != wantH {
				t.Errorf("Height() = %d, want %d", b.Height(), wantH)
			}
			if wantW > 0 && wantH > 0 && !b.Cell(0, 0).IsBlank() {
				t.Errorf("new buffer cell (0,0) = %+v, want blank", b.Cell(0, 0))
			}
		})
	}
}

func TestBufferSetCell(t *testing.T) {
	type tc struct {
		row, col int
		content  string
		want     string // expected content at (row, col), "" means unchanged blank
	}

	tests := map[string]tc{
		"simple ascii":       {row: 1, col: 2, content: "x", want: "x"},
		"multibyte rune":     {row: 0, col: 0, content: "é", want: "é"},
		"row out of bounds":  {row: 10, col: 0, content: "x", want: ""},
		"col out of bounds":  {row: 0, col: 10, content: "x", want: ""},
		"negative row":       {row: -1, col: 0, content: "x", want: ""},
		"combining cluster":  {row: 0, col: 1, content: "é", want: "é"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBuffer(5, 3)
			b.SetCell(tt.row, tt.col, tt.content, Style{})

			if tt.want == "" {
				// Clipped write: an in-bounds probe must still be blank.
				if !b.Cell(0, 0).IsBlank() {
					t.Errorf("clipped write modified the buffer")
				}
				return
			}
			if got := b.Cell(tt.row, tt.col).Content; got != tt.want {
				t.Errorf("Cell(%d,%d).Content = %q, want %q", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestBufferWideCell(t *testing.T) {
	b := NewBuffer(6, 2)
	b.SetCell(0, 1, "世", Style{})

	if got := b.Cell(0, 1); got.Width != 2 {
		t.Fatalf("wide cell width = %d, want 2", got.Width)
	}
	if !b.Cell(0, 2).IsContinuation() {
		t.Errorf("cell after a wide cell is not a continuation")
	}

	// Overwriting the continuation clears the whole wide character.
	b.SetCell(0, 2, "x", Style{})
	if !b.Cell(0, 1).IsBlank() {
		t.Errorf("overwriting the continuation left the wide cell: %+v", b.Cell(0, 1))
	}
	if got := b.Cell(0, 2).Content; got != "x" {
		t.Errorf("Cell(0,2).Content = %q, want %q", got, "x")
	}

	// A wide character at the last column degrades to a space.
	b.SetCell(1, 5, "界", Style{})
	if got := b.Cell(1, 5); got.Content != " " || got.Width != 1 {
		t.Errorf("wide cell at right edge = %+v, want single space", got)
	}
}

func TestBufferSetString(t *testing.T) {
	type tc struct {
		col  int
		s    string
		want string // rendered row
		n    int    // returned width
	}

	tests := map[string]tc{
		"fits":            {col: 0, s: "hello", want: "hello ", n: 5},
		"clips at edge":   {col: 3, s: "hello", want: "   hel", n: 3},
		"wide chars":      {col: 0, s: "日本", want: "日本  ", n: 4},
		"wide char clips": {col: 5, s: "日", want: "      ", n: 0},
		"empty string":    {col: 0, s: "", want: "      ", n: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBuffer(6, 1)
			n := b.SetString(0, tt.col, tt.s, Style{})
			if n != tt.n {
				t.Errorf("SetString returned %d, want %d", n, tt.n)
			}
			if got := b.String(); got != tt.want {
				t.Errorf("row = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBufferDirtyTracking(t *testing.T) {
	b := NewBuffer(10, 3)
	for row := 0; row < 3; row++ {
		b.commitRow(row)
	}

	b.SetCell(1, 4, "x", Style{})
	b.SetCell(1, 7, "y", Style{})

	if b.dirty[0].isDirty() || b.dirty[2].isDirty() {
		t.Errorf("untouched rows are dirty")
	}
	d := b.dirty[1]
	if !d.isDirty() || d.lo != 4 || d.hi != 7 {
		t.Errorf("dirty region = %+v, want [4,7]", d)
	}

	b.commitRow(1)
	if b.dirty[1].isDirty() {
		t.Errorf("commitRow left the row dirty")
	}
	if !b.backCell(1, 4).Equal(b.Cell(1, 4)) {
		t.Errorf("commitRow did not copy front to back")
	}
}

func TestBufferResizeInvalidates(t *testing.T) {
	b := NewBuffer(10, 5)
	b.SetCell(4, 9, "x", Style{})
	b.commitRow(4)

	// Shrink past the cell, then grow back: no stale data may resurrect.
	b.Resize(5, 3)
	b.Resize(10, 5)

	if got := b.Cell(4, 9); !got.IsBlank() {
		t.Errorf("cell (4,9) after resize round-trip = %+v, want blank", got)
	}
	for row := 0; row < 5; row++ {
		if !b.dirty[row].isDirty() {
			t.Errorf("row %d not dirty after resize", row)
		}
	}
	// The poisoned back buffer forces a full repaint.
	if b.backCell(0, 0).Equal(b.Cell(0, 0)) {
		t.Errorf("back buffer still matches front after resize")
	}
}

func TestBufferClearRange(t *testing.T) {
	b := NewBuffer(8, 1)
	b.SetString(0, 0, "abcdefgh", Style{})
	b.ClearRange(0, 2, 5)

	if got := b.String(); got != "ab    gh" {
		t.Errorf("after ClearRange = %q, want %q", got, "ab    gh")
	}
}

func TestBufferApplyScrollUp(t *testing.T) {
	b := NewBuffer(4, 5)
	for row := 0; row < 5; row++ {
		b.SetString(row, 0, string(rune('a'+row)), Style{})
		b.frontHash[row] = hashRow(b.row(row))
		b.commitRow(row)
	}

	// Content moved up by one: back row r+1 should land at r.
	b.applyScroll(scrollOp{lo: 0, size: 4, shift: 1})

	if got := b.backCell(0, 0).Content; got != "b" {
		t.Errorf("back row 0 after scroll = %q, want %q", got, "b")
	}
	if !b.backCell(4, 0).IsBlank() {
		t.Errorf("vacated bottom row is not blank")
	}
	if !b.dirty[4].isDirty() {
		t.Errorf("vacated bottom row is not dirty")
	}
}
