package screen

import (
	"testing"
)

func TestKittySequences(t *testing.T) {
	type tc struct {
		seq  string
		want string
	}

	tests := map[string]tc{
		"enable disambiguate": {
			seq:  kittyEnableSeq(KittyDisambiguate),
			want: "\x1b[>1u",
		},
		"enable all flags": {
			seq:  kittyEnableSeq(KittyDisambiguate | KittyEventTypes | KittyAlternateKeys | KittyAllEscapes | KittyReportText),
			want: "\x1b[>31u",
		},
		"disable": {
			seq:  kittyDisableSeq(),
			want: "\x1b[<u",
		},
		"push": {
			seq:  kittyPushSeq(KittyDisambiguate | KittyEventTypes),
			want: "\x1b[>3;1u",
		},
		"pop": {
			seq:  kittyPopSeq(),
			want: "\x1b[<1u",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if tt.seq != tt.want {
				t.Errorf("sequence = %q, want %q", tt.seq, tt.want)
			}
		})
	}
}

func TestParseKittyEvent(t *testing.T) {
	type tc struct {
		params   [][]int
		wantKey  Key
		wantRune rune
		wantMod  Modifier
		wantType KittyEventType
		wantOK   bool
	}

	tests := map[string]tc{
		"plain letter": {
			params:  [][]int{{97}},
			wantKey: KeyRune, wantRune: 'a',
			wantType: KittyPress, wantOK: true,
		},
		"ctrl letter": {
			params:  [][]int{{122}, {4}},
			wantKey: KeyRune, wantRune: 'z', wantMod: ModCtrl,
			wantType: KittyPress, wantOK: true,
		},
		"release event via subparam": {
			params:  [][]int{{97}, {1, 3}},
			wantKey: KeyRune, wantRune: 'a', wantMod: ModShift,
			wantType: KittyRelease, wantOK: true,
		},
		"repeat event via third param": {
			params:  [][]int{{97}, {0}, {2}},
			wantKey: KeyRune, wantRune: 'a',
			wantType: KittyRepeat, wantOK: true,
		},
		"named enter": {
			params:  [][]int{{13}},
			wantKey: KeyEnter,
			wantType: KittyPress, wantOK: true,
		},
		"named escape": {
			params:  [][]int{{27}},
			wantKey: KeyEscape,
			wantType: KittyPress, wantOK: true,
		},
		"empty": {
			params: nil,
			wantOK: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ev, ok := parseKittyEvent(tt.params)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if ev.Key != tt.wantKey || ev.Rune != tt.wantRune || ev.Mod != tt.wantMod {
				t.Errorf("event = %+v, want key %v rune %q mod %v", ev, tt.wantKey, tt.wantRune, tt.wantMod)
			}
			if ev.Kitty == nil {
				t.Fatal("missing kitty detail")
			}
			if ev.Kitty.Type != tt.wantType {
				t.Errorf("type = %v, want %v", ev.Kitty.Type, tt.wantType)
			}
		})
	}
}

func TestParseKittyAlternateKeys(t *testing.T) {
	ev, ok := parseKittyEvent([][]int{{97}, {1}, {1}, {65}, {97}})
	if !ok {
		t.Fatal("expected an event")
	}
	if ev.Kitty.Shifted != 'A' || ev.Kitty.Base != 'a' {
		t.Errorf("alternate keys = %q/%q, want A/a", ev.Kitty.Shifted, ev.Kitty.Base)
	}
}
