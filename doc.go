// Package screen is a cell-addressable terminal rendering engine.
//
// A Screen owns a pair of cell buffers: the front buffer holds the frame the
// caller is drawing, the back buffer mirrors what was last flushed to the
// terminal. Refresh diffs the two, encodes the minimal set of escape
// sequences needed to bring the terminal up to date, and writes them in a
// single flush. Styles are cached so unchanged colors and attributes are
// never re-emitted, and cursor movement picks the cheapest encoding by byte
// cost.
//
// Input is decoded independently of the render pipeline: an EventReader
// turns raw terminal bytes (including Kitty keyboard protocol sequences)
// into discrete key events with timeout-bounded polling, and delivers
// terminal resizes as ResizeEvent.
//
// RenderMosaic is a standalone helper that converts raw RGB pixel data into
// Unicode block art with embedded 24-bit color escapes.
//
// The engine is single-writer: one goroutine owns the Screen and its draw
// and Refresh calls. The EventReader may run on a separate goroutine since
// it never touches the buffers.
package screen
