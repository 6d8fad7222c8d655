// Package diagram renders resolved fretboard positions as vector-graphics
// artifacts.
//
// The drawing backend sits behind the [Surface] interface: place a labeled
// marker at a string/fret coordinate, render to SVG bytes. Two backends are
// provided:
//
//   - [SVGSurface] writes the fretboard markup directly (the default);
//   - [GraphvizSurface] pins markers as DOT nodes and lays them out with
//     Graphviz neato.
//
// [Renderer] drives a surface and persists the result keyed by note identity:
// a second render with the same key overwrites the prior artifact, so the
// output directory never accumulates duplicates for a note. Percent-encoding
// of characters like '#' for URLs is the calling layer's concern.
package diagram
