package screen

import (
	"io"
	"os"
)

// Option configures a Screen before Init.
type Option func(*Screen)

// WithOutput redirects frame output to the given writer instead of stdout.
// A non-terminal writer skips raw mode and capability probing, which makes
// it the injection point for tests.
func WithOutput(w io.Writer) Option {
	return func(s *Screen) {
		s.out = w
		s.outFile = nil
		if f, ok := w.(*os.File); ok {
			s.outFile = f
		}
	}
}

// WithInput sets the input source. Passing nil disables input entirely:
// GetKey reports no events and refresh never polls for interrupts.
func WithInput(f *os.File) Option {
	return func(s *Screen) {
		s.in = f
	}
}

// WithSize fixes the screen geometry instead of querying the terminal.
// Resize signals are ignored for a fixed-size screen.
func WithSize(width, height int) Option {
	return func(s *Screen) {
		s.fixedWidth = width
		s.fixedHeight = height
		s.fixedSize = true
	}
}

// WithCaps overrides detected terminal capabilities.
func WithCaps(caps Capabilities) Option {
	return func(s *Screen) {
		s.caps = caps
		s.capsSet = true
	}
}

// WithoutAltScreen renders on the main screen buffer instead of switching
// to the alternate screen.
func WithoutAltScreen() Option {
	return func(s *Screen) {
		s.useAltScreen = false
	}
}
