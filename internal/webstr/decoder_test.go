package webstr

import (
	"testing"

	"pool_automation/internal/models"
)

const (
	nk    = models.LedNoKey
	off   = models.LedOff
	on    = models.LedOn
	blink = models.LedBlink
)

func assertTable(t *testing.T, got map[models.KeyID]models.LedState, want []models.LedState) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d: %v", len(want), len(got), got)
	}
	for i, w := range want {
		key := models.KeyAt(i)
		st, ok := got[key]
		if !ok {
			t.Fatalf("missing %s", key)
		}
		if st != w {
			t.Errorf("%s: got %s, want %s", key, st, w)
		}
	}
}

func TestDecode_Fixtures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []models.LedState
	}{
		{
			name: "digits with forced trailing nibble",
			raw:  "345",
			want: []models.LedState{nk, nk, nk, off, nk, nk},
		},
		{
			name: "pool with filter high",
			raw:  "TECD4C333333",
			want: []models.LedState{
				on, off, off, on, off, nk, off, off, nk, off, off, nk,
				nk, nk, nk, nk, nk, nk, nk, nk, nk, nk, nk, nk,
			},
		},
		{
			name: "pool with filter low",
			raw:  "TFCD5C333333",
			want: []models.LedState{
				on, off, off, blink, off, nk, off, off, nk, on, off, nk,
				nk, nk, nk, nk, nk, nk, nk, nk, nk, nk, nk, nk,
			},
		},
		{
			name: "unknown characters degrade to no key",
			raw:  "Zz?U",
			want: []models.LedState{nk, nk, nk, nk, nk, nk, on, nk},
		},
		{
			name: "empty segment",
			raw:  "",
			want: []models.LedState{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTable(t, Decode(tt.raw), tt.want)
		})
	}
}

func TestDecode_DerivedModes(t *testing.T) {
	st := models.DeviceState{KeyStates: Decode("TECD4C333333")}
	if st.Mode() != models.PoolModePool || st.FilterMode() != models.FilterModeHigh {
		t.Fatalf("got %s/%s, want Pool/High", st.Mode(), st.FilterMode())
	}
	st = models.DeviceState{KeyStates: Decode("TFCD5C333333")}
	if st.Mode() != models.PoolModePool || st.FilterMode() != models.FilterModeLow {
		t.Fatalf("got %s/%s, want Pool/Low", st.Mode(), st.FilterMode())
	}
}

func TestDecode_EveryAlphabetCharacter(t *testing.T) {
	for c, n := range charNibbles {
		// not last: both nibbles decoded
		got := Decode(string([]rune{c, '3'}))
		if got[models.KeyAt(0)] != nibbleState(n[0]) || got[models.KeyAt(1)] != nibbleState(n[1]) {
			t.Errorf("%q: got %s/%s", c, got[models.KeyAt(0)], got[models.KeyAt(1)])
		}
		// last: low nibble forced
		got = Decode(string(c))
		if got[models.KeyAt(0)] != nibbleState(n[0]) || got[models.KeyAt(1)] != models.LedNoKey {
			t.Errorf("%q as last: got %s/%s", c, got[models.KeyAt(0)], got[models.KeyAt(1)])
		}
	}
}

func TestDecode_UnrecognizedCharacters(t *testing.T) {
	for c := 0; c < 128; c++ {
		if _, ok := charNibbles[rune(c)]; ok {
			continue
		}
		got := Decode(string([]byte{byte(c), 'U'}))
		if got[models.KeyAt(0)] != models.LedNoKey || got[models.KeyAt(1)] != models.LedNoKey {
			t.Fatalf("char %d: got %s/%s, want NO_KEY/NO_KEY", c, got[models.KeyAt(0)], got[models.KeyAt(1)])
		}
	}
}

func TestDecode_MultiByteCharacters(t *testing.T) {
	cases := []struct {
		raw  string
		want []models.LedState
	}{
		{"°U", []models.LedState{nk, nk, on, nk}},
		{"U°", []models.LedState{on, on, nk, nk}},
		{"é°TS", []models.LedState{nk, nk, nk, nk, on, off, on, nk}},
	}
	for _, tc := range cases {
		assertTable(t, Decode(tc.raw), tc.want)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	all := []models.LedState{nk, off, on, blink}
	var states []models.LedState
	for _, hi := range all {
		for _, lo := range all {
			states = append(states, hi, lo)
		}
	}
	// trailing control nibble
	states = append(states, on, nk)

	raw := Encode(states)
	if len(raw) != len(states)/2 {
		t.Fatalf("expected %d chars, got %d", len(states)/2, len(raw))
	}
	assertTable(t, Decode(raw), states)
}

func TestEncode_OddLengthPadsNoKey(t *testing.T) {
	if got := Encode([]models.LedState{on, off, on}); got != "TS" {
		t.Fatalf("got %q, want %q", got, "TS")
	}
}
