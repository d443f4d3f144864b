package screen

import (
	"testing"
)

func TestEscBuilderMoveTo(t *testing.T) {
	type tc struct {
		row, col int
		expected string
	}

	tests := map[string]tc{
		"origin": {
			row:      0,
			col:      0,
			expected: "\x1b[1;1H",
		},
		"position 3,5": {
			row:      3,
			col:      5,
			expected: "\x1b[4;6H",
		},
		"large position": {
			row:      49,
			col:      99,
			expected: "\x1b[50;100H",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEscBuilder(64)
			e.MoveTo(tt.row, tt.col)
			if string(e.Bytes()) != tt.expected {
				t.Errorf("MoveTo(%d, %d) = %q, want %q", tt.row, tt.col, e.Bytes(), tt.expected)
			}
		})
	}
}

func TestEscBuilderRelativeMoves(t *testing.T) {
	type tc struct {
		emit     func(*escBuilder)
		expected string
	}

	tests := map[string]tc{
		"up one omits count":  {emit: func(e *escBuilder) { e.MoveUp(1) }, expected: "\x1b[A"},
		"down three":          {emit: func(e *escBuilder) { e.MoveDown(3) }, expected: "\x1b[3B"},
		"right twelve":        {emit: func(e *escBuilder) { e.MoveRight(12) }, expected: "\x1b[12C"},
		"left one":            {emit: func(e *escBuilder) { e.MoveLeft(1) }, expected: "\x1b[D"},
		"zero emits nothing":  {emit: func(e *escBuilder) { e.MoveUp(0) }, expected: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := newEscBuilder(16)
			tt.emit(e)
			if string(e.Bytes()) != tt.expected {
				t.Errorf("emitted %q, want %q", e.Bytes(), tt.expected)
			}
		})
	}
}

func TestEscBuilderLineOps(t *testing.T) {
	e := newEscBuilder(32)
	e.InsertLines(2)
	e.DeleteLines(3)
	e.EraseChars(10)
	want := "\x1b[2L\x1b[3M\x1b[10X"
	if string(e.Bytes()) != want {
		t.Errorf("line ops = %q, want %q", e.Bytes(), want)
	}
}

func TestEscBuilderModes(t *testing.T) {
	e := newEscBuilder(64)
	e.EnterAltScreen()
	e.HideCursor()
	e.BeginSyncUpdate()
	e.EndSyncUpdate()
	e.ShowCursor()
	e.ExitAltScreen()
	want := "\x1b[?1049h\x1b[?25l\x1b[?2026h\x1b[?2026l\x1b[?25h\x1b[?1049l"
	if string(e.Bytes()) != want {
		t.Errorf("mode escapes = %q, want %q", e.Bytes(), want)
	}
}

func TestEscBuilderReset(t *testing.T) {
	e := newEscBuilder(16)
	e.ClearScreen()
	if e.Len() == 0 {
		t.Fatal("builder is empty after writing")
	}
	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", e.Len())
	}
}
