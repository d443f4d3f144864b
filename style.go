package screen

// Attr represents text attributes as a bitfield for efficient comparison and
// storage. Attributes are independently togglable and composable.
type Attr uint16

const (
	// AttrNone represents no text attributes.
	AttrNone Attr = 0
	// AttrBold makes text bold/bright.
	AttrBold Attr = 1 << iota
	// AttrDim makes text dimmed/faint.
	AttrDim
	// AttrItalic makes text italic.
	AttrItalic
	// AttrUnderline underlines the text.
	AttrUnderline
	// AttrBlink makes text blink (rarely supported).
	AttrBlink
	// AttrReverse swaps foreground and background colors.
	AttrReverse
	// AttrHidden makes text invisible (concealed).
	AttrHidden
	// AttrStrikethrough draws a line through the text.
	AttrStrikethrough
)

// Has returns true if the attribute set contains all bits in mask.
func (a Attr) Has(mask Attr) bool {
	return a&mask == mask
}

// Style combines text attributes with foreground and background colors.
// The zero value is default styling: no attributes, default colors.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// NewStyle returns a Style with default colors and no attributes.
func NewStyle() Style {
	return Style{}
}

// WithFg returns a copy of the style with the given foreground color.
func (s Style) WithFg(c Color) Style {
	s.Fg = c
	return s
}

// WithBg returns a copy of the style with the given background color.
func (s Style) WithBg(c Color) Style {
	s.Bg = c
	return s
}

// WithAttrs returns a copy of the style with the given attribute set.
func (s Style) WithAttrs(a Attr) Style {
	s.Attrs = a
	return s
}

// HasAttr returns true if the style carries all attributes in mask.
func (s Style) HasAttr(mask Attr) bool {
	return s.Attrs&mask == mask
}

// Equal returns true if both styles are identical.
func (s Style) Equal(other Style) bool {
	return s.Attrs == other.Attrs && s.Fg.Equal(other.Fg) && s.Bg.Equal(other.Bg)
}

// IsDefault returns true for the zero style.
func (s Style) IsDefault() bool {
	return s.Attrs == AttrNone && s.Fg.IsDefault() && s.Bg.IsDefault()
}
