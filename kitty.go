package screen

import "strconv"

// KittyFlags selects which parts of the kitty keyboard protocol the
// terminal should enable. Flags combine as a bitmask.
type KittyFlags uint8

const (
	// KittyDisambiguate makes ambiguous keys (Esc, modified keys) arrive as
	// unambiguous CSI u sequences.
	KittyDisambiguate KittyFlags = 1 << iota
	// KittyEventTypes reports key repeat and release in addition to press.
	KittyEventTypes
	// KittyAlternateKeys reports shifted and base-layout key codes.
	KittyAlternateKeys
	// KittyAllEscapes reports every key, including plain text, as escapes.
	KittyAllEscapes
	// KittyReportText includes the text a key would produce.
	KittyReportText
)

// KittyEventType distinguishes press, repeat, and release.
type KittyEventType uint8

const (
	KittyPress KittyEventType = iota + 1
	KittyRepeat
	KittyRelease
)

// KittyModifiers is the raw modifier bitmask carried by protocol sequences.
type KittyModifiers uint8

const (
	KittyShift KittyModifiers = 1 << iota
	KittyAlt
	KittyCtrl
	KittySuper
)

// KittyEvent carries the extra detail of an extended-protocol key report.
type KittyEvent struct {
	Code    rune // unicode key code
	Mods    KittyModifiers
	Type    KittyEventType
	Shifted rune // shifted key code, 0 when not reported
	Base    rune // base layout key code, 0 when not reported
}

// toModifier converts the raw protocol bitmask to the decoder's modifier
// set. Super has no legacy equivalent and is dropped.
func (m KittyModifiers) toModifier() Modifier {
	var mod Modifier
	if m&KittyShift != 0 {
		mod |= ModShift
	}
	if m&KittyAlt != 0 {
		mod |= ModAlt
	}
	if m&KittyCtrl != 0 {
		mod |= ModCtrl
	}
	return mod
}

// kittyEnableSeq returns the sequence enabling the given protocol flags.
func kittyEnableSeq(flags KittyFlags) string {
	return "\x1b[>" + strconv.Itoa(int(flags)) + "u"
}

// kittyDisableSeq returns the sequence restoring the legacy protocol.
func kittyDisableSeq() string {
	return "\x1b[<u"
}

// kittyPushSeq returns the sequence pushing the given flags onto the
// terminal's protocol stack.
func kittyPushSeq(flags KittyFlags) string {
	return "\x1b[>" + strconv.Itoa(int(flags)) + ";1u"
}

// kittyPopSeq returns the sequence popping one entry off the terminal's
// protocol stack.
func kittyPopSeq() string {
	return "\x1b[<1u"
}

// parseKittyEvent decodes the parameters of a CSI ... u key report:
// code[:...] ; mods[:event] ; event ; shifted ; base. Missing parameters
// default to a plain press. Returns false for an empty report.
func parseKittyEvent(params [][]int) (KeyEvent, bool) {
	if len(params) == 0 || len(params[0]) == 0 {
		return KeyEvent{}, false
	}

	ke := KittyEvent{
		Code: rune(params[0][0]),
		Type: KittyPress,
	}

	if len(params) > 1 && len(params[1]) > 0 {
		ke.Mods = KittyModifiers(params[1][0])
		if len(params[1]) > 1 {
			ke.Type = KittyEventType(params[1][1])
		}
	}
	if len(params) > 2 && len(params[2]) > 0 && ke.Type == KittyPress {
		ke.Type = KittyEventType(params[2][0])
	}
	if len(params) > 3 && len(params[3]) > 0 {
		ke.Shifted = rune(params[3][0])
	}
	if len(params) > 4 && len(params[4]) > 0 {
		ke.Base = rune(params[4][0])
	}
	if ke.Type < KittyPress || ke.Type > KittyRelease {
		ke.Type = KittyPress
	}

	ev := KeyEvent{Mod: ke.Mods.toModifier(), Kitty: &ke}
	switch ke.Code {
	case 9:
		ev.Key = KeyTab
	case 13:
		ev.Key = KeyEnter
	case 27:
		ev.Key = KeyEscape
	case 127:
		ev.Key = KeyBackspace
	default:
		ev.Key = KeyRune
		ev.Rune = ke.Code
	}
	return ev, true
}
