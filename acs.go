package screen

// Box-drawing glyphs used by Border and DrawBox. Terminals without Unicode
// support fall back to the ASCII set.
type boxGlyphs struct {
	topLeft     string
	topRight    string
	bottomLeft  string
	bottomRight string
	horizontal  string
	vertical    string
}

var unicodeBox = boxGlyphs{
	topLeft:     "┌",
	topRight:    "┐",
	bottomLeft:  "└",
	bottomRight: "┘",
	horizontal:  "─",
	vertical:    "│",
}

var asciiBox = boxGlyphs{
	topLeft:     "+",
	topRight:    "+",
	bottomLeft:  "+",
	bottomRight: "+",
	horizontal:  "-",
	vertical:    "|",
}

// glyphsFor picks the box glyph set for the terminal's capabilities.
func glyphsFor(caps Capabilities) boxGlyphs {
	if caps.Unicode {
		return unicodeBox
	}
	return asciiBox
}
