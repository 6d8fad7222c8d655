package diagram

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/fretmaster/fretmaster/pkg/fretboard"
)

// Graphviz coordinate scale: DOT positions are in points, one fret slot wide
// and one string tall per unit below.
const (
	dotFretScale   = 70.0
	dotStringScale = 36.0
)

// GraphvizOption configures a GraphvizSurface.
type GraphvizOption func(*GraphvizSurface)

// WithGraphvizStringCount sets the number of strings drawn on the surface.
func WithGraphvizStringCount(n int) GraphvizOption {
	return func(s *GraphvizSurface) { s.stringCount = n }
}

// WithGraphvizWindow sets the visible fret window.
func WithGraphvizWindow(r fretboard.FretRange) GraphvizOption {
	return func(s *GraphvizSurface) { s.window = r }
}

// GraphvizSurface renders the fretboard through Graphviz: strings are edges
// between invisible endpoint nodes and markers are circle nodes pinned at
// fixed positions, laid out with neato so the pins are honored.
type GraphvizSurface struct {
	stringCount int
	window      fretboard.FretRange
	markers     []Marker
}

// NewGraphvizSurface creates a Graphviz-backed surface. Defaults: six
// strings, fret window [0,12].
func NewGraphvizSurface(opts ...GraphvizOption) *GraphvizSurface {
	s := &GraphvizSurface{
		stringCount: DefaultStringCount,
		window:      defaultWindow(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Place records a labeled marker.
func (s *GraphvizSurface) Place(stringNo, fret int, label string) {
	s.markers = append(s.markers, Marker{StringNo: stringNo, Fret: fret, Label: label})
}

// DOT converts the surface to Graphviz DOT with pinned node positions.
// The resulting string is rendered by [GraphvizSurface.Render].
func (s *GraphvizSurface) DOT() string {
	var buf bytes.Buffer
	buf.WriteString("graph fretboard {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"sans-serif\"];\n")
	buf.WriteString("\n")

	slots := s.window.Upper - s.window.Lower + 1
	left := 0.0
	right := float64(slots) * dotFretScale

	// String lines: invisible endpoints joined by an edge.
	for n := 1; n <= s.stringCount; n++ {
		y := s.stringDotY(n)
		fmt.Fprintf(&buf, "  s%dl [shape=point, width=0.01, pos=\"%.0f,%.0f!\", label=\"\"];\n", n, left, y)
		fmt.Fprintf(&buf, "  s%dr [shape=point, width=0.01, pos=\"%.0f,%.0f!\", label=\"\"];\n", n, right, y)
		fmt.Fprintf(&buf, "  s%dl -- s%dr;\n", n, n)
	}
	buf.WriteString("\n")

	// Markers pinned at their string/fret coordinates.
	for i, m := range s.markers {
		x := (float64(m.Fret-s.window.Lower) + 0.5) * dotFretScale
		y := s.stringDotY(m.StringNo)
		fmt.Fprintf(&buf, "  m%d [shape=circle, style=filled, fillcolor=\"#2a9d8f\", fontcolor=white, fixedsize=true, width=0.35, label=%q, pos=\"%.0f,%.0f!\"];\n",
			i, m.Label, x, y)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Render lays the DOT out with Graphviz and returns SVG bytes.
func (s *GraphvizSurface) Render() ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(s.DOT()))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	gv.SetLayout(graphviz.NEATO)

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// stringDotY returns the DOT y coordinate of a 1-based string number.
// Graphviz y grows upward, so string 1 (lowest) sits at y=0.
func (s *GraphvizSurface) stringDotY(stringNo int) float64 {
	return float64(stringNo-1) * dotStringScale
}
