package screen

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cell represents a single character cell in the terminal buffer. Content
// holds one grapheme cluster. Wide characters (CJK, emoji) occupy two
// columns; the first cell holds the cluster, the following cell is marked as
// a continuation and is never addressed independently.
type Cell struct {
	Content string // One grapheme cluster; empty for continuation cells
	Style   Style  // Visual styling
	Width   uint8  // Display width (1 or 2; 0 for continuation)
}

// NewCell creates a Cell with automatic width detection.
func NewCell(content string, style Style) Cell {
	return Cell{
		Content: content,
		Style:   style,
		Width:   uint8(clusterWidth(content)),
	}
}

// continuationCell returns the placeholder cell that trails a wide cell.
func continuationCell(style Style) Cell {
	return Cell{Style: style, Width: 0}
}

// blankCell returns the default empty cell: a space with default styling.
func blankCell() Cell {
	return Cell{Content: " ", Width: 1}
}

// IsContinuation returns true if this cell is the second column of a wide
// character.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// IsBlank returns true if the cell is a space (or empty) with default
// styling.
func (c Cell) IsBlank() bool {
	if !c.Style.IsDefault() {
		return false
	}
	return c.Content == " " || c.Content == ""
}

// Equal returns true if both cells are identical.
func (c Cell) Equal(other Cell) bool {
	return c.Content == other.Content && c.Width == other.Width && c.Style.Equal(other.Style)
}

// hash folds the cell into a line-hash accumulator value.
func (c Cell) hash() uint64 {
	h := uint64(0)
	for i := 0; i < len(c.Content); i++ {
		h = h*31 + uint64(c.Content[i])
	}
	h = h*31 + uint64(c.Style.Attrs)
	h = h*31 + c.Style.Fg.hash()
	h = h*31 + c.Style.Bg.hash()
	return h
}

// clusterWidth returns the display width of a grapheme cluster in terminal
// columns, clamped to 1 or 2. Control characters still occupy one cell.
func clusterWidth(s string) int {
	w := runewidth.StringWidth(s)
	if w < 1 {
		return 1
	}
	if w > 2 {
		return 2
	}
	return w
}

// graphemes splits a string into grapheme clusters with their display
// widths. Used by buffer writes so a cluster never straddles two cells.
func graphemes(s string) []Cell {
	var cells []Cell
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		cells = append(cells, Cell{Content: cluster, Width: uint8(clusterWidth(cluster))})
	}
	return cells
}
