// Package fretboard models fretted-instrument coordinates: tunings, string/fret
// positions for a target pitch, and fret-range filtering.
package fretboard

import (
	"strings"

	"github.com/fretmaster/fretmaster/pkg/errors"
	"github.com/fretmaster/fretmaster/pkg/pitch"
)

// Tuning is an immutable ordered list of open-string pitches. Index 0 is the
// lowest string. The zero value is not a valid tuning; construct one with
// NewTuning, ParseTuning, or StandardTuning.
type Tuning struct {
	open []pitch.Pitch
}

// NewTuning creates a tuning from open-string pitches, lowest string first.
// The pitch list is copied, so later mutation of the argument has no effect.
// A tuning must have at least one string.
func NewTuning(open []pitch.Pitch) (Tuning, error) {
	if len(open) == 0 {
		return Tuning{}, errors.New(errors.ErrCodeInvalidTuning, "tuning must have at least one string")
	}
	copied := make([]pitch.Pitch, len(open))
	copy(copied, open)
	return Tuning{open: copied}, nil
}

// ParseTuning creates a tuning from a comma-separated list of note names,
// lowest string first, e.g. "E2,A2,D3,G3,B3,E4".
func ParseTuning(s string) (Tuning, error) {
	parts := strings.Split(s, ",")
	open := make([]pitch.Pitch, 0, len(parts))
	for _, part := range parts {
		p, err := pitch.Parse(strings.TrimSpace(part))
		if err != nil {
			return Tuning{}, errors.Wrap(errors.ErrCodeInvalidTuning, err, "invalid tuning %q", s)
		}
		open = append(open, p)
	}
	return NewTuning(open)
}

// StandardTuning returns the standard six-string guitar tuning,
// low to high: E2 A2 D3 G3 B3 E4.
func StandardTuning() Tuning {
	return Tuning{open: []pitch.Pitch{40, 45, 50, 55, 59, 64}}
}

// StringCount returns the number of strings.
func (t Tuning) StringCount() int {
	return len(t.open)
}

// OpenPitch returns the pitch of the open string at the given index.
// Fails with ErrCodeIndexOutOfRange outside [0, StringCount()-1].
func (t Tuning) OpenPitch(stringIndex int) (pitch.Pitch, error) {
	if stringIndex < 0 || stringIndex >= len(t.open) {
		return 0, errors.New(errors.ErrCodeIndexOutOfRange,
			"string index %d outside 0-%d", stringIndex, len(t.open)-1)
	}
	return t.open[stringIndex], nil
}

// OpenPitches returns a copy of the open-string pitches, lowest first.
func (t Tuning) OpenPitches() []pitch.Pitch {
	copied := make([]pitch.Pitch, len(t.open))
	copy(copied, t.open)
	return copied
}

// Position is a string/fret coordinate for a target pitch. A negative
// FretOffset means the target lies below the open string; that is not an
// error, it is simply unplayable and excluded by filtering.
type Position struct {
	String     int // string index, 0 = lowest string
	FretOffset int // targetPitch - openPitch; the fret number when non-negative
}

// Playable reports whether the position corresponds to a physical fret.
func (p Position) Playable() bool {
	return p.FretOffset >= 0
}

// FretRange is an inclusive [Lower, Upper] window of visible frets.
type FretRange struct {
	Lower int
	Upper int
}

// DefaultFretRange is the conventional 12-fret window.
func DefaultFretRange() FretRange {
	return FretRange{Lower: 0, Upper: 12}
}

// Validate fails with ErrCodeInvalidFretRange when the lower bound is
// negative or the bounds are inverted.
func (r FretRange) Validate() error {
	if r.Lower < 0 {
		return errors.New(errors.ErrCodeInvalidFretRange, "fret range lower bound %d is negative", r.Lower)
	}
	if r.Lower > r.Upper {
		return errors.New(errors.ErrCodeInvalidFretRange, "fret range %d-%d has inverted bounds", r.Lower, r.Upper)
	}
	return nil
}

// Contains reports whether fret lies inside the inclusive window.
func (r FretRange) Contains(fret int) bool {
	return fret >= r.Lower && fret <= r.Upper
}

// Resolve computes the fret offset of target on every string of the tuning.
// It always returns exactly t.StringCount() positions in ascending string
// order, regardless of offset sign.
func Resolve(target pitch.Pitch, t Tuning) []Position {
	positions := make([]Position, len(t.open))
	for i, open := range t.open {
		positions[i] = Position{String: i, FretOffset: int(target) - int(open)}
	}
	return positions
}

// Filter returns the subsequence of positions whose fret offsets lie inside
// the window. With the default non-negative range this is where unplayable
// positions are dropped. An empty result is not an error.
func Filter(positions []Position, r FretRange) []Position {
	filtered := make([]Position, 0, len(positions))
	for _, p := range positions {
		if r.Contains(p.FretOffset) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
