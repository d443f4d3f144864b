package screen

import "strconv"

// styleCache mirrors the style state the terminal is currently in. The
// encoder consults it before every span so unchanged fields are never
// re-emitted. An invalid cache (start of frame, after a reset) forces a full
// style emission.
type styleCache struct {
	style Style
	valid bool
}

// reset forgets the terminal's style state.
func (sc *styleCache) reset() {
	sc.style = Style{}
	sc.valid = false
}

// apply brings the terminal's style state to the target style, emitting SGR
// parameters only for the fields that differ from the cache. Colors are
// degraded to the terminal's capabilities before comparison so the cache
// tracks what was actually emitted.
func (sc *styleCache) apply(e *escBuilder, style Style, caps Capabilities) {
	target := Style{
		Fg:    caps.EffectiveColor(style.Fg),
		Bg:    caps.EffectiveColor(style.Bg),
		Attrs: style.Attrs,
	}

	if sc.valid && sc.style.Equal(target) {
		return
	}

	var params []byte
	add := func(code int) {
		if len(params) > 0 {
			params = append(params, ';')
		}
		params = strconv.AppendInt(params, int64(code), 10)
	}

	if !sc.valid {
		// Start from a known state. SGR 0 implies default colors and no
		// attributes, so defaults need no further parameters.
		add(0)
		sc.style = Style{}
	}

	appendAttrParams(sc.style.Attrs, target.Attrs, add)
	if !sc.style.Fg.Equal(target.Fg) {
		appendColorParams(target.Fg, false, add)
	}
	if !sc.style.Bg.Equal(target.Bg) {
		appendColorParams(target.Bg, true, add)
	}

	e.SGR(params)
	sc.style = target
	sc.valid = true
}

// appendAttrParams emits the toggles taking the attribute set from have to
// want. SGR 22 clears bold and dim together, so dropping one while keeping
// the other re-asserts the survivor.
func appendAttrParams(have, want Attr, add func(int)) {
	if have == want {
		return
	}

	dropBold := have.Has(AttrBold) && !want.Has(AttrBold)
	dropDim := have.Has(AttrDim) && !want.Has(AttrDim)
	if dropBold || dropDim {
		add(22)
		if want.Has(AttrBold) {
			add(1)
		}
		if want.Has(AttrDim) {
			add(2)
		}
	} else {
		if want.Has(AttrBold) && !have.Has(AttrBold) {
			add(1)
		}
		if want.Has(AttrDim) && !have.Has(AttrDim) {
			add(2)
		}
	}

	toggles := []struct {
		attr Attr
		on   int
		off  int
	}{
		{AttrItalic, 3, 23},
		{AttrUnderline, 4, 24},
		{AttrBlink, 5, 25},
		{AttrReverse, 7, 27},
		{AttrHidden, 8, 28},
		{AttrStrikethrough, 9, 29},
	}
	for _, t := range toggles {
		switch {
		case want.Has(t.attr) && !have.Has(t.attr):
			add(t.on)
		case !want.Has(t.attr) && have.Has(t.attr):
			add(t.off)
		}
	}
}

// appendColorParams emits the parameters selecting one color channel.
// Classic codes are used for the 16 base colors, 38;5/48;5 for the extended
// palette, and 38;2/48;2 for true color.
func appendColorParams(c Color, background bool, add func(int)) {
	base := 30
	ext := 38
	if background {
		base = 40
		ext = 48
	}

	switch c.Type() {
	case ColorDefault:
		add(base + 9)
	case ColorANSI:
		idx := int(c.ANSI())
		switch {
		case idx < 8:
			add(base + idx)
		case idx < 16:
			add(base + 60 + idx - 8)
		default:
			add(ext)
			add(5)
			add(idx)
		}
	case ColorRGB:
		r, g, b := c.RGB()
		add(ext)
		add(2)
		add(int(r))
		add(int(g))
		add(int(b))
	}
}
