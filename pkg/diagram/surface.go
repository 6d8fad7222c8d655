package diagram

import "github.com/fretmaster/fretmaster/pkg/fretboard"

// Surface is the minimal drawing capability the renderer needs: place a
// labeled marker at a string/fret coordinate and produce vector-graphics
// bytes. Any concrete drawing backend can satisfy it without the coordinate
// model leaking into a specific drawing API.
//
// String numbering on a surface is 1-based, matching printed fretboard
// diagrams: string 1 is the lowest string.
type Surface interface {
	// Place records a labeled marker at the given string and fret.
	Place(stringNo, fret int, label string)

	// Render produces the SVG bytes for the placed markers.
	Render() ([]byte, error)
}

// Marker is a labeled point on a fretboard surface.
type Marker struct {
	StringNo int    // 1-based string number, 1 = lowest string
	Fret     int    // fret number; 0 is the open string
	Label    string // bare note name, no octave suffix
}

// Default surface dimensions.
const (
	DefaultStringCount = 6
)

// defaultWindow returns the conventional visible fret window.
func defaultWindow() fretboard.FretRange {
	return fretboard.DefaultFretRange()
}
