package screen

import (
	"reflect"
	"testing"
)

func keyEvents(events []Event) []KeyEvent {
	var keys []KeyEvent
	for _, ev := range events {
		if ke, ok := ev.(KeyEvent); ok {
			keys = append(keys, ke)
		}
	}
	return keys
}

func TestParseInputBasic(t *testing.T) {
	type tc struct {
		input string
		want  []KeyEvent
	}

	tests := map[string]tc{
		"ascii": {
			input: "ab",
			want: []KeyEvent{
				{Key: KeyRune, Rune: 'a'},
				{Key: KeyRune, Rune: 'b'},
			},
		},
		"multibyte utf8": {
			input: "é日",
			want: []KeyEvent{
				{Key: KeyRune, Rune: 'é'},
				{Key: KeyRune, Rune: '日'},
			},
		},
		"enter and tab": {
			input: "\r\t",
			want: []KeyEvent{
				{Key: KeyEnter},
				{Key: KeyTab},
			},
		},
		"ctrl keys": {
			input: "\x01\x1a",
			want: []KeyEvent{
				{Key: KeyCtrlA},
				{Key: KeyCtrlZ},
			},
		},
		"del is backspace": {
			input: "\x7f",
			want:  []KeyEvent{{Key: KeyBackspace}},
		},
		"arrow keys": {
			input: "\x1b[A\x1b[B\x1b[C\x1b[D",
			want: []KeyEvent{
				{Key: KeyUp},
				{Key: KeyDown},
				{Key: KeyRight},
				{Key: KeyLeft},
			},
		},
		"home and end": {
			input: "\x1b[H\x1b[F",
			want: []KeyEvent{
				{Key: KeyHome},
				{Key: KeyEnd},
			},
		},
		"extended keys": {
			input: "\x1b[3~\x1b[5~\x1b[6~",
			want: []KeyEvent{
				{Key: KeyDelete},
				{Key: KeyPageUp},
				{Key: KeyPageDown},
			},
		},
		"function keys via tilde": {
			input: "\x1b[15~\x1b[24~",
			want: []KeyEvent{
				{Key: KeyF5},
				{Key: KeyF12},
			},
		},
		"ss3 function keys": {
			input: "\x1bOP\x1bOS",
			want: []KeyEvent{
				{Key: KeyF1},
				{Key: KeyF4},
			},
		},
		"modified arrow": {
			input: "\x1b[1;5C",
			want:  []KeyEvent{{Key: KeyRight, Mod: ModCtrl}},
		},
		"shift alt arrow": {
			input: "\x1b[1;4A",
			want:  []KeyEvent{{Key: KeyUp, Mod: ModShift | ModAlt}},
		},
		"alt letter": {
			input: "\x1bx",
			want:  []KeyEvent{{Key: KeyRune, Rune: 'x', Mod: ModAlt}},
		},
		"backtab": {
			input: "\x1b[Z",
			want:  []KeyEvent{{Key: KeyTab, Mod: ModShift}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			events, consumed := parseInput([]byte(tt.input))
			if consumed != len(tt.input) {
				t.Errorf("consumed %d of %d bytes", consumed, len(tt.input))
			}
			got := keyEvents(events)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseInput(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInputIncompleteSuffix(t *testing.T) {
	type tc struct {
		input        string
		wantConsumed int
		wantEvents   int
	}

	tests := map[string]tc{
		"lone escape":       {input: "a\x1b", wantConsumed: 1, wantEvents: 1},
		"unterminated csi":  {input: "a\x1b[1;5", wantConsumed: 1, wantEvents: 1},
		"bare csi prefix":   {input: "\x1b[", wantConsumed: 0, wantEvents: 0},
		"ss3 prefix":        {input: "\x1bO", wantConsumed: 0, wantEvents: 0},
		"partial utf8 rune": {input: "a\xe6\x97", wantConsumed: 1, wantEvents: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			events, consumed := parseInput([]byte(tt.input))
			if consumed != tt.wantConsumed {
				t.Errorf("consumed = %d, want %d", consumed, tt.wantConsumed)
			}
			if len(events) != tt.wantEvents {
				t.Errorf("events = %+v, want %d events", events, tt.wantEvents)
			}
		})
	}
}

func TestParseInputResumesAcrossReads(t *testing.T) {
	// An arrow key split across two reads decodes once the rest arrives.
	first := []byte("\x1b[")
	events, consumed := parseInput(first)
	if len(events) != 0 || consumed != 0 {
		t.Fatalf("prefix decoded early: %+v", events)
	}

	full := append(first, 'A')
	events, consumed = parseInput(full)
	if consumed != 3 {
		t.Errorf("consumed = %d, want 3", consumed)
	}
	keys := keyEvents(events)
	if len(keys) != 1 || keys[0].Key != KeyUp {
		t.Errorf("resumed parse = %+v, want KeyUp", keys)
	}
}

func TestDrainPending(t *testing.T) {
	type tc struct {
		input string
		want  []Key
	}

	tests := map[string]tc{
		"lone escape becomes escape key": {
			input: "\x1b",
			want:  []Key{KeyEscape},
		},
		"escape then text": {
			input: "\x1bq",
			want:  []Key{KeyRune}, // Alt+q
		},
		"unterminated csi resolves to escape": {
			input: "\x1b[1;5",
			want:  []Key{KeyEscape, KeyRune, KeyRune, KeyRune, KeyRune},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			events := drainPending([]byte(tt.input))
			keys := keyEvents(events)
			if len(keys) != len(tt.want) {
				t.Fatalf("drainPending(%q) = %+v, want %d events", tt.input, keys, len(tt.want))
			}
			for i, k := range tt.want {
				if keys[i].Key != k {
					t.Errorf("event %d = %v, want %v", i, keys[i].Key, k)
				}
			}
		})
	}
}

func TestParseKittyReport(t *testing.T) {
	// CSI code;mods;event u with the raw modifier bitmask.
	events, consumed := parseInput([]byte("\x1b[97;5u"))
	if consumed != 7 {
		t.Fatalf("consumed = %d, want 7", consumed)
	}
	keys := keyEvents(events)
	if len(keys) != 1 {
		t.Fatalf("events = %+v, want one", keys)
	}
	ke := keys[0]
	if ke.Key != KeyRune || ke.Rune != 'a' {
		t.Errorf("key = %v %q, want rune a", ke.Key, ke.Rune)
	}
	if !ke.Mod.Has(ModShift) || !ke.Mod.Has(ModCtrl) {
		t.Errorf("mod = %v, want Shift+Ctrl", ke.Mod)
	}
	if ke.Kitty == nil || ke.Kitty.Type != KittyPress {
		t.Errorf("kitty detail = %+v, want a press", ke.Kitty)
	}
}

func TestParseKittyQueryReplyProducesNoEvent(t *testing.T) {
	events, consumed := parseInput([]byte("\x1b[?1u"))
	if consumed != 5 {
		t.Errorf("consumed = %d, want 5", consumed)
	}
	if len(events) != 0 {
		t.Errorf("query reply produced events: %+v", events)
	}
}
