package screen

import (
	"os"
	"strings"
)

// ColorLevel describes how many colors the terminal supports.
type ColorLevel uint8

const (
	// ColorNone means no color support.
	ColorNone ColorLevel = iota
	// Color16 means the basic 16 ANSI colors.
	Color16
	// Color256 means the extended 256 color palette.
	Color256
	// ColorTrue means 24-bit true color.
	ColorTrue
)

// Capabilities describes what the attached terminal supports. The encoder
// uses it to degrade colors that the terminal cannot display.
type Capabilities struct {
	Colors    ColorLevel
	TrueColor bool
	Unicode   bool
	AltScreen bool
}

// defaultCapabilities returns conservative defaults for unknown terminals.
func defaultCapabilities() Capabilities {
	return Capabilities{
		Colors:    Color16,
		Unicode:   true,
		AltScreen: true,
	}
}

// DetectCapabilities determines terminal capabilities from environment
// variables. Detection failures fall back to conservative defaults.
func DetectCapabilities() Capabilities {
	caps := defaultCapabilities()

	// COLORTERM is the explicit true color signal.
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		caps.Colors = ColorTrue
		caps.TrueColor = true
		return caps
	}

	// Terminal emulators known to support true color set one of these.
	for _, v := range []string{"WT_SESSION", "ITERM_SESSION_ID", "KITTY_WINDOW_ID", "KONSOLE_VERSION", "VTE_VERSION"} {
		if os.Getenv(v) != "" {
			caps.Colors = ColorTrue
			caps.TrueColor = true
			return caps
		}
	}

	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case term == "dumb":
		caps.Colors = ColorNone
		caps.Unicode = false
		caps.AltScreen = false
	case strings.Contains(term, "truecolor"):
		caps.Colors = ColorTrue
		caps.TrueColor = true
	case strings.Contains(term, "256color"):
		caps.Colors = Color256
	}

	return caps
}

// EffectiveColor returns the color to actually emit given the terminal's
// capabilities: RGB degrades to the 256 palette without true color, and any
// color degrades to default when color is unsupported entirely.
func (c Capabilities) EffectiveColor(color Color) Color {
	switch color.Type() {
	case ColorRGB:
		if c.TrueColor {
			return color
		}
		if c.Colors >= Color256 {
			return color.ToANSI()
		}
		return DefaultColor()
	case ColorANSI:
		if c.Colors >= Color256 {
			return color
		}
		if c.Colors >= Color16 && color.ANSI() < 16 {
			return color
		}
		return DefaultColor()
	}
	return color
}
