// Package pitch converts between human note names and integer pitch numbers.
//
// A note name is a letter with an optional accidental followed by a signed
// integer octave, e.g. "C4", "A#5", "Db3". The pitch number follows the MIDI
// convention: pitch = (octave+1)*12 + pitchClass, so "C4" is 60 and the
// conventional range [0,127] spans C-1 through G9.
//
// Enharmonic aliases ("C#" and "Db") map to the same pitch class. Formatting
// selects the sharp or flat spelling per an explicit preference; the mapping
// is total and deterministic in both directions.
package pitch

import (
	"strconv"

	"github.com/fretmaster/fretmaster/pkg/errors"
)

// Class is a pitch class in [0,11], identifying a note name independent of octave.
type Class int

// Pitch is an integer pitch number. (octave+1)*12 + pitchClass.
type Pitch int

// Conventional pitch bounds.
const (
	Min Pitch = 0   // C-1
	Max Pitch = 127 // G9
)

// classes maps every recognized note-name spelling to its pitch class.
// Enharmonic aliases share a class.
var classes = map[string]Class{
	"C": 0, "B#": 0,
	"C#": 1, "Db": 1,
	"D":  2,
	"D#": 3, "Eb": 3,
	"E": 4, "Fb": 4,
	"E#": 5, "F": 5,
	"F#": 6, "Gb": 6,
	"G":  7,
	"G#": 8, "Ab": 8,
	"A":  9,
	"A#": 10, "Bb": 10,
	"B": 11, "Cb": 11,
}

// Canonical spellings per pitch class.
var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
)

// Parse converts a note name with octave (e.g. "C4", "A#5", "Db3") to a pitch
// number. The leading name part is a letter plus an optional accidental; the
// remainder must parse as a signed integer octave.
//
// Unrecognized names fail with ErrCodeInvalidNoteName; a missing or
// non-integer octave fails with ErrCodeInvalidOctave.
func Parse(note string) (Pitch, error) {
	if note == "" {
		return 0, errors.New(errors.ErrCodeInvalidNoteName, "empty note name")
	}

	nameLen := 1
	if len(note) > 1 && (note[1] == '#' || note[1] == 'b') {
		nameLen = 2
	}

	name := note[:nameLen]
	class, ok := classes[name]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidNoteName, "invalid note name: %s", name)
	}

	octave, err := strconv.Atoi(note[nameLen:])
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidOctave, err, "invalid octave in %q", note)
	}

	return Pitch((octave+1)*12 + int(class)), nil
}

// Format converts a pitch number to a note name with octave. It is total for
// pitches in [Min,Max] and fails with ErrCodeOutOfRange otherwise. The sharp
// or flat spelling is selected per preferSharps.
func Format(p Pitch, preferSharps bool) (string, error) {
	if p < Min || p > Max {
		return "", errors.New(errors.ErrCodeOutOfRange, "pitch %d outside valid range %d-%d", p, Min, Max)
	}
	return ClassName(p.Class(), preferSharps) + strconv.Itoa(p.Octave()), nil
}

// ClassName returns the canonical spelling of a pitch class without an octave
// suffix, e.g. the marker label on a diagram. The class is taken modulo 12.
func ClassName(c Class, preferSharps bool) string {
	i := ((int(c) % 12) + 12) % 12
	if preferSharps {
		return sharpNames[i]
	}
	return flatNames[i]
}

// Name returns the bare class name of a pitch without its octave, e.g.
// "C#" for pitch 61 with sharps preferred. Unlike Format it is total over
// all pitches.
func Name(p Pitch, preferSharps bool) string {
	return ClassName(p.Class(), preferSharps)
}

// Class returns the pitch class in [0,11].
func (p Pitch) Class() Class {
	return Class(((int(p) % 12) + 12) % 12)
}

// Octave returns the octave number. Pitch 60 is octave 4.
func (p Pitch) Octave() int {
	return int(p)/12 - 1
}

// Valid reports whether the pitch lies in the conventional [Min,Max] range.
func (p Pitch) Valid() bool {
	return p >= Min && p <= Max
}
