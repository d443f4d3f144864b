package screen

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// SymbolSet selects which block glyphs the mosaic renderer may use.
type SymbolSet uint8

const (
	// SymbolHalf renders with the upper half block only: every cell shows
	// two vertically stacked colors, top as foreground and bottom as
	// background. The threshold is not consulted in this mode.
	SymbolHalf SymbolSet = iota
	// SymbolQuarter renders two-tone cells using the single-quadrant
	// blocks, choosing the glyph that best covers the above-threshold
	// subpixels.
	SymbolQuarter
	// SymbolAll renders two-tone cells using the full set of sixteen
	// quadrant combinations, so the coverage match is always exact.
	SymbolAll
)

// MosaicConfig controls RenderMosaic.
type MosaicConfig struct {
	// Width is the output width in terminal cells. Zero derives the width
	// from the source: one cell column per source pixel column, which
	// preserves aspect at the usual 2:1 cell shape.
	Width int
	// Threshold is the luminance (0-255) above which a subpixel counts as
	// lit in the two-tone modes.
	Threshold uint8
	// Symbols selects the glyph repertoire.
	Symbols SymbolSet
}

// blockGlyph pairs a glyph with its quadrant coverage mask
// (bit 0 top-left, 1 top-right, 2 bottom-left, 3 bottom-right).
type blockGlyph struct {
	glyph string
	mask  uint8
}

var quarterGlyphs = []blockGlyph{
	{" ", 0b0000},
	{"▘", 0b0001},
	{"▝", 0b0010},
	{"▖", 0b0100},
	{"▗", 0b1000},
	{"█", 0b1111},
}

var allGlyphs = []blockGlyph{
	{" ", 0b0000},
	{"▘", 0b0001},
	{"▝", 0b0010},
	{"▀", 0b0011},
	{"▖", 0b0100},
	{"▌", 0b0101},
	{"▞", 0b0110},
	{"▛", 0b0111},
	{"▗", 0b1000},
	{"▚", 0b1001},
	{"▐", 0b1010},
	{"▜", 0b1011},
	{"▄", 0b1100},
	{"▙", 0b1101},
	{"▟", 0b1110},
	{"█", 0b1111},
}

// linColor is a color in linear light, used while averaging.
type linColor struct {
	r, g, b float64
}

func (c linColor) add(o linColor) linColor {
	return linColor{c.r + o.r, c.g + o.g, c.b + o.b}
}

func (c linColor) scale(f float64) linColor {
	return linColor{c.r * f, c.g * f, c.b * f}
}

// toBytes converts back to sRGB bytes.
func (c linColor) toBytes() (r, g, b uint8) {
	return colorful.LinearRgb(c.r, c.g, c.b).Clamped().RGB255()
}

// luminance returns the 0-255 luminance of the linear color.
func (c linColor) luminance() float64 {
	return 255 * (0.2126*c.r + 0.7152*c.g + 0.0722*c.b)
}

// RenderMosaic converts raw interleaved RGB pixel data (3 bytes per pixel,
// row-major, top-left origin) into a string of colored block characters.
// Each output row covers two source pixel rows; pixels are box-filtered in
// linear light down to the target cell grid. Fails when the data length is
// inconsistent with width x height x 3 or a dimension is zero.
func RenderMosaic(data []byte, width, height int, cfg MosaicConfig) (string, error) {
	if width <= 0 || height <= 0 {
		return "", &InvalidDimensionsError{Width: width, Height: height}
	}
	if len(data) != width*height*3 {
		return "", &MosaicDataError{Len: len(data), Width: width, Height: height}
	}

	cols := cfg.Width
	if cols <= 0 {
		cols = width
	}
	rows := (height + 1) / 2

	// Two-tone modes resolve two subcolumns per cell.
	subCols := cols
	if cfg.Symbols != SymbolHalf {
		subCols = cols * 2
	}

	img := mosaicImage{data: data, width: width, height: height}
	var sb strings.Builder
	var prevFg, prevBg [3]uint8
	havePrev := false

	for row := 0; row < rows; row++ {
		topY := row * 2
		botY := topY + 1

		for col := 0; col < cols; col++ {
			var glyph string
			var fg, bg [3]uint8

			if cfg.Symbols == SymbolHalf {
				top := img.sampleRow(topY, col, cols)
				bot := linColor{}
				if botY < height {
					bot = img.sampleRow(botY, col, cols)
				}
				glyph = "▀"
				fg = rgbBytes(top)
				bg = rgbBytes(bot)
			} else {
				glyph, fg, bg = twoToneCell(&img, topY, botY, col, subCols, cfg.Threshold, cfg.Symbols)
			}

			if !havePrev || fg != prevFg {
				writeSGRColor(&sb, 38, fg)
			}
			if !havePrev || bg != prevBg {
				writeSGRColor(&sb, 48, bg)
			}
			prevFg, prevBg, havePrev = fg, bg, true
			sb.WriteString(glyph)
		}

		sb.WriteString("\x1b[0m\n")
		havePrev = false
	}

	return sb.String(), nil
}

// twoToneCell resolves one cell in a threshold mode: its four subpixels are
// classified as lit or unlit, the best-covering glyph is chosen, and the
// lit/unlit averages become foreground and background.
func twoToneCell(img *mosaicImage, topY, botY, col, subCols int, threshold uint8, symbols SymbolSet) (string, [3]uint8, [3]uint8) {
	var px [4]linColor
	px[0] = img.sampleRow(topY, col*2, subCols)
	px[1] = img.sampleRow(topY, col*2+1, subCols)
	if botY < img.height {
		px[2] = img.sampleRow(botY, col*2, subCols)
		px[3] = img.sampleRow(botY, col*2+1, subCols)
	}

	mask := uint8(0)
	for i, p := range px {
		if p.luminance() >= float64(threshold) {
			mask |= 1 << i
		}
	}

	table := allGlyphs
	if symbols == SymbolQuarter {
		table = quarterGlyphs
	}
	best := table[0]
	bestScore := -1
	for _, g := range table {
		score := 4 - bits.OnesCount8(g.mask^mask)
		if score > bestScore {
			best, bestScore = g, score
		}
	}

	var on, off linColor
	onN, offN := 0, 0
	for i, p := range px {
		if best.mask&(1<<i) != 0 {
			on = on.add(p)
			onN++
		} else {
			off = off.add(p)
			offN++
		}
	}
	var fg, bg [3]uint8
	if onN > 0 {
		fg = rgbBytes(on.scale(1 / float64(onN)))
	}
	if offN > 0 {
		bg = rgbBytes(off.scale(1 / float64(offN)))
	}
	return best.glyph, fg, bg
}

// mosaicImage wraps the source pixels with box-filtered sampling.
type mosaicImage struct {
	data   []byte
	width  int
	height int
}

// pixel returns the linear-light color at (x, y).
func (m *mosaicImage) pixel(x, y int) linColor {
	i := (y*m.width + x) * 3
	c := colorful.Color{
		R: float64(m.data[i]) / 255,
		G: float64(m.data[i+1]) / 255,
		B: float64(m.data[i+2]) / 255,
	}
	r, g, b := c.LinearRgb()
	return linColor{r, g, b}
}

// sampleRow box-filters one pixel row down to cols columns and returns the
// average for the given output column.
func (m *mosaicImage) sampleRow(y, col, cols int) linColor {
	x0 := col * m.width / cols
	x1 := (col + 1) * m.width / cols
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if x1 > m.width {
		x1 = m.width
	}
	if x0 >= m.width {
		x0 = m.width - 1
	}

	var sum linColor
	for x := x0; x < x1; x++ {
		sum = sum.add(m.pixel(x, y))
	}
	return sum.scale(1 / float64(x1-x0))
}

func rgbBytes(c linColor) [3]uint8 {
	r, g, b := c.toBytes()
	return [3]uint8{r, g, b}
}

// writeSGRColor appends a 24-bit color escape (38 foreground, 48
// background).
func writeSGRColor(sb *strings.Builder, base int, rgb [3]uint8) {
	sb.WriteString("\x1b[")
	sb.WriteString(strconv.Itoa(base))
	sb.WriteString(";2;")
	sb.WriteString(strconv.Itoa(int(rgb[0])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(rgb[1])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(rgb[2])))
	sb.WriteByte('m')
}
