package diagram

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/fretmaster/fretmaster/pkg/fretboard"
)

// Fretboard geometry in SVG user units.
const (
	fretSpacing   = 60.0 // horizontal width of one fret slot
	stringSpacing = 30.0 // vertical distance between strings
	marginLeft    = 40.0
	marginRight   = 20.0
	marginTop     = 30.0
	marginBottom  = 40.0
	markerRadius  = 11.0
)

// SVGOption configures an SVGSurface.
type SVGOption func(*SVGSurface)

// WithStringCount sets the number of strings drawn on the surface.
func WithStringCount(n int) SVGOption {
	return func(s *SVGSurface) { s.stringCount = n }
}

// WithWindow sets the visible fret window.
func WithWindow(r fretboard.FretRange) SVGOption {
	return func(s *SVGSurface) { s.window = r }
}

// SVGSurface draws a fretboard directly as SVG markup: horizontal strings,
// vertical fret wires, a nut when fret 0 is visible, fret numbers, and
// labeled circular markers. String 1 (lowest) is drawn at the bottom.
type SVGSurface struct {
	stringCount int
	window      fretboard.FretRange
	markers     []Marker
}

// NewSVGSurface creates a native SVG surface. Defaults: six strings, fret
// window [0,12].
func NewSVGSurface(opts ...SVGOption) *SVGSurface {
	s := &SVGSurface{
		stringCount: DefaultStringCount,
		window:      defaultWindow(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Place records a labeled marker. Markers outside the surface are kept in the
// marker list but clipped by the viewBox; callers filter before placing.
func (s *SVGSurface) Place(stringNo, fret int, label string) {
	s.markers = append(s.markers, Marker{StringNo: stringNo, Fret: fret, Label: label})
}

// Markers returns the placed markers.
func (s *SVGSurface) Markers() []Marker {
	return s.markers
}

// Render produces the SVG document. It is a pure function of the surface
// configuration and the placed markers; the error is always nil and exists to
// satisfy Surface.
func (s *SVGSurface) Render() ([]byte, error) {
	slots := s.window.Upper - s.window.Lower + 1
	boardWidth := float64(slots) * fretSpacing
	width := marginLeft + boardWidth + marginRight
	height := marginTop + float64(s.stringCount-1)*stringSpacing + marginBottom

	markers := slices.Clone(s.markers)
	slices.SortFunc(markers, func(a, b Marker) int {
		return cmp.Compare(a.StringNo, b.StringNo)
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	s.renderBoard(&buf)
	for _, m := range markers {
		s.renderMarker(&buf, m)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// renderBoard draws strings, fret wires, the nut, and fret numbers.
func (s *SVGSurface) renderBoard(buf *bytes.Buffer) {
	slots := s.window.Upper - s.window.Lower + 1
	right := marginLeft + float64(slots)*fretSpacing
	top := s.stringY(s.stringCount)
	bottom := s.stringY(1)

	// Strings, lowest at the bottom.
	for n := 1; n <= s.stringCount; n++ {
		y := s.stringY(n)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black" stroke-width="1"/>`+"\n",
			marginLeft, y, right, y)
	}

	// Fret wires at slot boundaries. The boundary after the open slot is the
	// nut and is drawn heavier.
	for c := 0; c <= slots; c++ {
		x := marginLeft + float64(c)*fretSpacing
		strokeWidth := 1.0
		if s.window.Lower == 0 && c == 1 {
			strokeWidth = 4.0
		}
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black" stroke-width="%.0f"/>`+"\n",
			x, top, x, bottom, strokeWidth)
	}

	// Fret numbers under each slot.
	for f := s.window.Lower; f <= s.window.Upper; f++ {
		x := s.fretX(f)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-size="12" font-family="sans-serif" fill="#555">%d</text>`+"\n",
			x, bottom+24, f)
	}
}

// renderMarker draws a labeled circle at the marker's coordinate.
func (s *SVGSurface) renderMarker(buf *bytes.Buffer, m Marker) {
	x := s.fretX(m.Fret)
	y := s.stringY(m.StringNo)
	fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="#2a9d8f" stroke="black" stroke-width="1"/>`+"\n",
		x, y, markerRadius)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-size="11" font-family="sans-serif" fill="white">%s</text>`+"\n",
		x, y, m.Label)
}

// fretX returns the horizontal center of a fret's slot.
func (s *SVGSurface) fretX(fret int) float64 {
	return marginLeft + (float64(fret-s.window.Lower)+0.5)*fretSpacing
}

// stringY returns the vertical position of a 1-based string number.
func (s *SVGSurface) stringY(stringNo int) float64 {
	return marginTop + float64(s.stringCount-stringNo)*stringSpacing
}
