package pitch

import (
	"testing"

	"github.com/fretmaster/fretmaster/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		note string
		want Pitch
	}{
		{"C4", 60},
		{"A4", 69},
		{"A#5", 82},
		{"Db3", 49},
		{"E2", 40},
		{"A2", 45},
		{"D3", 50},
		{"G3", 55},
		{"B3", 59},
		{"E4", 64},
		{"C-1", 0},
		{"G9", 127},
		{"C10", 132}, // multi-digit octave, above the conventional range
		{"B#3", 48},  // enharmonic with C4's class, one octave down
		{"Cb4", 71},
	}
	for _, tt := range tests {
		got, err := Parse(tt.note)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.note, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.note, got, tt.want)
		}
	}
}

func TestParseInvalidName(t *testing.T) {
	for _, note := range []string{"H4", "X2", "c4", ""} {
		_, err := Parse(note)
		if err == nil {
			t.Errorf("Parse(%q) should fail", note)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidNoteName) {
			t.Errorf("Parse(%q) code = %s, want %s", note, errors.GetCode(err), errors.ErrCodeInvalidNoteName)
		}
	}
}

func TestParseInvalidOctave(t *testing.T) {
	for _, note := range []string{"C", "C#", "Cx", "Cx4", "C4x", "Db", "A#-"} {
		_, err := Parse(note)
		if err == nil {
			t.Errorf("Parse(%q) should fail", note)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidOctave) {
			t.Errorf("Parse(%q) code = %s, want %s", note, errors.GetCode(err), errors.ErrCodeInvalidOctave)
		}
	}
}

func TestParseEnharmonicAliases(t *testing.T) {
	pairs := [][2]string{
		{"C#4", "Db4"},
		{"D#4", "Eb4"},
		{"F#4", "Gb4"},
		{"G#4", "Ab4"},
		{"A#4", "Bb4"},
		{"E4", "Fb4"},
		{"E#4", "F4"},
	}
	for _, pair := range pairs {
		a, err := Parse(pair[0])
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", pair[0], err)
		}
		b, err := Parse(pair[1])
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", pair[1], err)
		}
		if a != b {
			t.Errorf("Parse(%q)=%d, Parse(%q)=%d; aliases should agree", pair[0], a, pair[1], b)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		p            Pitch
		preferSharps bool
		want         string
	}{
		{60, true, "C4"},
		{61, true, "C#4"},
		{61, false, "Db4"},
		{82, false, "Bb5"},
		{0, true, "C-1"},
		{127, true, "G9"},
		{64, false, "E4"},
	}
	for _, tt := range tests {
		got, err := Format(tt.p, tt.preferSharps)
		if err != nil {
			t.Errorf("Format(%d, %t) error: %v", tt.p, tt.preferSharps, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Format(%d, %t) = %q, want %q", tt.p, tt.preferSharps, got, tt.want)
		}
	}
}

func TestFormatOutOfRange(t *testing.T) {
	for _, p := range []Pitch{-1, 128, 1000} {
		_, err := Format(p, true)
		if err == nil {
			t.Errorf("Format(%d) should fail", p)
			continue
		}
		if !errors.Is(err, errors.ErrCodeOutOfRange) {
			t.Errorf("Format(%d) code = %s, want %s", p, errors.GetCode(err), errors.ErrCodeOutOfRange)
		}
	}
}

// Round-trip law: Parse(Format(p, pref)) == p over the full valid range,
// for both spelling preferences.
func TestRoundTrip(t *testing.T) {
	for p := Min; p <= Max; p++ {
		for _, preferSharps := range []bool{true, false} {
			name, err := Format(p, preferSharps)
			if err != nil {
				t.Fatalf("Format(%d, %t) error: %v", p, preferSharps, err)
			}
			back, err := Parse(name)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", name, err)
			}
			if back != p {
				t.Fatalf("round trip %d -> %q -> %d (preferSharps=%t)", p, name, back, preferSharps)
			}
		}
	}
}

func TestClassName(t *testing.T) {
	if got := ClassName(1, true); got != "C#" {
		t.Errorf("ClassName(1, sharps) = %q, want C#", got)
	}
	if got := ClassName(1, false); got != "Db" {
		t.Errorf("ClassName(1, flats) = %q, want Db", got)
	}
	// Classes are taken modulo 12.
	if got := ClassName(13, true); got != "C#" {
		t.Errorf("ClassName(13, sharps) = %q, want C#", got)
	}
}

func TestName(t *testing.T) {
	if got := Name(61, true); got != "C#" {
		t.Errorf("Name(61, sharps) = %q, want C#", got)
	}
	if got := Name(61, false); got != "Db" {
		t.Errorf("Name(61, flats) = %q, want Db", got)
	}
}

func TestPitchAccessors(t *testing.T) {
	p := Pitch(61)
	if p.Class() != 1 {
		t.Errorf("Class() = %d, want 1", p.Class())
	}
	if p.Octave() != 4 {
		t.Errorf("Octave() = %d, want 4", p.Octave())
	}
	if !p.Valid() {
		t.Error("61 should be valid")
	}
	if Pitch(128).Valid() {
		t.Error("128 should be invalid")
	}
}
