package screen

import "unicode/utf8"

// parseInput decodes buffered bytes into events and reports how many bytes
// were consumed. A trailing sequence that could still be completed by bytes
// yet to arrive (a lone ESC, an unterminated CSI, a partial UTF-8 rune) is
// left unconsumed so the reader can resume once more input arrives.
//
// Handles:
//   - single printable characters and multi-byte UTF-8
//   - control characters (0x00-0x1F)
//   - CSI sequences (arrows, navigation, function keys with modifiers)
//   - CSI u extended keyboard-protocol reports
//   - SS3 sequences
//   - Alt+key (ESC + printable)
func parseInput(data []byte) ([]Event, int) {
	var events []Event
	i := 0

	for i < len(data) {
		b := data[i]

		if b == 0x1b {
			if i+1 >= len(data) {
				// Could be a lone Escape or the start of a sequence.
				return events, i
			}

			next := data[i+1]
			switch next {
			case '[':
				ev, consumed, incomplete := parseCSI(data[i:])
				if incomplete {
					return events, i
				}
				if consumed > 0 {
					if ev != nil {
						events = append(events, ev)
					}
					i += consumed
					continue
				}
				// Unparseable sequence: deliver the escape, resync after it.
				events = append(events, KeyEvent{Key: KeyEscape})
				i++

			case 'O':
				if i+2 >= len(data) {
					return events, i
				}
				if key := parseSS3(data[i+2]); key != KeyNone {
					events = append(events, KeyEvent{Key: key})
					i += 3
					continue
				}
				events = append(events, KeyEvent{Key: KeyEscape})
				i++

			default:
				if next >= 0x20 && next < 0x7f {
					events = append(events, KeyEvent{Key: KeyRune, Rune: rune(next), Mod: ModAlt})
					i += 2
					continue
				}
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
			}
			continue
		}

		if b < 0x20 {
			events = append(events, KeyEvent{Key: controlToKey(b)})
			i++
			continue
		}

		// DEL is backspace on most terminals.
		if b == 0x7f {
			events = append(events, KeyEvent{Key: KeyBackspace})
			i++
			continue
		}

		if !utf8.FullRune(data[i:]) {
			return events, i
		}
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		events = append(events, KeyEvent{Key: KeyRune, Rune: r})
		i += size
	}

	return events, i
}

// drainPending decodes a buffer that will receive no more bytes, so
// would-be-incomplete prefixes resolve now: a stranded ESC becomes the
// Escape key and truncated sequences are dropped. Used when the escape
// timeout expires.
func drainPending(data []byte) []Event {
	var events []Event
	for len(data) > 0 {
		evs, n := parseInput(data)
		events = append(events, evs...)
		if n >= len(data) {
			break
		}
		data = data[n:]
		if data[0] == 0x1b {
			events = append(events, KeyEvent{Key: KeyEscape})
		}
		data = data[1:]
	}
	return events
}

// controlToKey converts a control character (0x00-0x1F) to a Key. A few
// control characters mean named keys rather than Ctrl+letter.
func controlToKey(b byte) Key {
	switch b {
	case 0x00:
		return KeyCtrlSpace
	case 0x08: // Ctrl+H doubles as backspace
		return KeyBackspace
	case 0x09:
		return KeyTab
	case 0x0d:
		return KeyEnter
	case 0x1b:
		return KeyEscape
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyCtrlA + Key(b-0x01)
	}
	return KeyUnknown
}

// parseCSI parses one CSI sequence starting at data[0] (the ESC).
// Returns the decoded event (nil for sequences that produce none, like
// protocol status reports), the bytes consumed, and whether the sequence is
// incomplete. consumed == 0 with incomplete == false means a malformed
// sequence.
func parseCSI(data []byte) (Event, int, bool) {
	params, private, final, consumed, incomplete := parseCSIParams(data)
	if incomplete {
		return nil, 0, true
	}
	if consumed == 0 {
		return nil, 0, false
	}

	if final == 'u' {
		// Responses to protocol queries (CSI ? flags u) carry a private
		// marker and produce no event.
		if private != 0 {
			return nil, consumed, false
		}
		ev, ok := parseKittyEvent(params)
		if !ok {
			return nil, consumed, false
		}
		return ev, consumed, false
	}

	key, mod := keyFromCSI(params, final)
	if key == KeyNone {
		return nil, consumed, false
	}
	return KeyEvent{Key: key, Mod: mod}, consumed, false
}

// parseCSIParams scans ESC [ <private?> params final. Parameters are
// semicolon-separated groups of colon-separated integers. Returns the
// parameter groups, the private marker byte (0 when absent), the final
// byte, and the bytes consumed.
func parseCSIParams(data []byte) (params [][]int, private byte, final byte, consumed int, incomplete bool) {
	if len(data) < 2 || data[0] != 0x1b || data[1] != '[' {
		return nil, 0, 0, 0, false
	}

	i := 2
	if i < len(data) {
		switch data[i] {
		case '<', '>', '?', '=':
			private = data[i]
			i++
		}
	}

	cur := 0
	hasCur := false
	group := []int(nil)

	flushValue := func() {
		if hasCur {
			group = append(group, cur)
		}
		cur = 0
		hasCur = false
	}
	flushGroup := func() {
		flushValue()
		params = append(params, group)
		group = nil
	}

	for ; i < len(data); i++ {
		b := data[i]
		switch {
		case b >= '0' && b <= '9':
			cur = cur*10 + int(b-'0')
			hasCur = true
		case b == ':':
			flushValue()
		case b == ';':
			flushGroup()
		case b >= 0x40 && b <= 0x7e:
			if hasCur || len(group) > 0 || len(params) > 0 {
				flushGroup()
			}
			return params, private, b, i + 1, false
		default:
			return nil, 0, 0, 0, false
		}
	}

	return nil, 0, 0, 0, true
}

// keyFromCSI maps legacy CSI parameters and final byte to a key.
func keyFromCSI(params [][]int, final byte) (Key, Modifier) {
	mod := ModNone
	if len(params) >= 2 && len(params[1]) > 0 {
		mod = decodeModifier(params[1][0])
	}

	switch final {
	case 'A':
		return KeyUp, mod
	case 'B':
		return KeyDown, mod
	case 'C':
		return KeyRight, mod
	case 'D':
		return KeyLeft, mod
	case 'H':
		return KeyHome, mod
	case 'F':
		return KeyEnd, mod
	case 'Z':
		// Backtab
		return KeyTab, ModShift
	case 'P':
		return KeyF1, mod
	case 'Q':
		return KeyF2, mod
	case 'R':
		return KeyF3, mod
	case 'S':
		return KeyF4, mod
	case '~':
		if len(params) == 0 || len(params[0]) == 0 {
			return KeyNone, ModNone
		}
		return tildeKey(params[0][0]), mod
	}

	return KeyNone, ModNone
}

var tildeKeys = map[int]Key{
	1: KeyHome, 2: KeyInsert, 3: KeyDelete, 4: KeyEnd,
	5: KeyPageUp, 6: KeyPageDown,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4, 15: KeyF5,
	17: KeyF6, 18: KeyF7, 19: KeyF8, 20: KeyF9, 21: KeyF10,
	23: KeyF11, 24: KeyF12,
}

// tildeKey maps the CSI n ~ extended key numbers.
func tildeKey(n int) Key {
	if k, ok := tildeKeys[n]; ok {
		return k
	}
	return KeyNone
}

// parseSS3 maps an SS3 final byte to a key.
func parseSS3(b byte) Key {
	switch b {
	case 'P':
		return KeyF1
	case 'Q':
		return KeyF2
	case 'R':
		return KeyF3
	case 'S':
		return KeyF4
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyNone
}

// decodeModifier decodes the xterm modifier parameter, which is encoded as
// 1 + bitmask (shift=1, alt=2, ctrl=4).
func decodeModifier(param int) Modifier {
	if param <= 1 {
		return ModNone
	}
	flags := param - 1
	var mod Modifier
	if flags&1 != 0 {
		mod |= ModShift
	}
	if flags&2 != 0 {
		mod |= ModAlt
	}
	if flags&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}
