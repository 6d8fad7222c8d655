// Package pipeline orchestrates diagram generation: parse the note, resolve
// positions across the tuning, filter to the visible window, render a surface,
// and persist the artifact, with caching of the rendered SVG bytes.
//
// Both the CLI and library consumers use the [Runner] to avoid duplicating
// caching logic.
package pipeline

import (
	"fmt"

	"github.com/fretmaster/fretmaster/pkg/diagram"
	"github.com/fretmaster/fretmaster/pkg/errors"
	"github.com/fretmaster/fretmaster/pkg/fretboard"
	"github.com/fretmaster/fretmaster/pkg/pitch"
)

// Surface backends.
const (
	BackendNative   = "native"   // hand-written SVG fretboard
	BackendGraphviz = "graphviz" // pinned-position DOT via Graphviz neato
)

// Output formats derived from the SVG artifact.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidateBackend checks that the backend name is known.
func ValidateBackend(backend string) error {
	switch backend {
	case BackendNative, BackendGraphviz:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidBackend, "unknown backend %q (must be %q or %q)", backend, BackendNative, BackendGraphviz)
	}
}

// ValidateFormats checks that all requested formats are known.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		switch f {
		case FormatSVG, FormatPNG, FormatPDF:
		default:
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png', or 'pdf')", f)
		}
	}
	return nil
}

// Options configures a single diagram generation.
type Options struct {
	// Note is the target note name with octave, e.g. "C4". It is also the
	// output key: the artifact is written as <Note>.svg.
	Note string

	// PreferSharps selects sharp or flat spellings; threaded explicitly so
	// formatting stays referentially transparent.
	PreferSharps bool

	// Window is the visible fret window. Nil means the default [0,12].
	Window *fretboard.FretRange

	// Tuning is the instrument tuning. The zero value means standard.
	Tuning fretboard.Tuning

	// Backend selects the drawing surface. Empty means native.
	Backend string

	// OutputDir receives the artifact. Empty means "diagrams".
	OutputDir string
}

// ValidateAndSetDefaults fills empty fields and rejects invalid ones.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Note == "" {
		return errors.New(errors.ErrCodeInvalidNoteName, "note is required")
	}
	if o.Window == nil {
		w := fretboard.DefaultFretRange()
		o.Window = &w
	}
	if err := o.Window.Validate(); err != nil {
		return err
	}
	if o.Tuning.StringCount() == 0 {
		o.Tuning = fretboard.StandardTuning()
	}
	if o.Backend == "" {
		o.Backend = BackendNative
	}
	if err := ValidateBackend(o.Backend); err != nil {
		return err
	}
	if o.OutputDir == "" {
		o.OutputDir = "diagrams"
	}
	return nil
}

// newSurface creates the surface for the configured backend.
func (o *Options) newSurface() diagram.Surface {
	switch o.Backend {
	case BackendGraphviz:
		return diagram.NewGraphvizSurface(
			diagram.WithGraphvizStringCount(o.Tuning.StringCount()),
			diagram.WithGraphvizWindow(*o.Window),
		)
	default:
		return diagram.NewSVGSurface(
			diagram.WithStringCount(o.Tuning.StringCount()),
			diagram.WithWindow(*o.Window),
		)
	}
}

// Result is the outcome of a pipeline execution.
type Result struct {
	Note         string               // note name as supplied
	Pitch        pitch.Pitch          // parsed pitch number
	Positions    []fretboard.Position // one per string, ascending
	Visible      []fretboard.Position // positions inside the window
	ArtifactPath string               // persisted SVG path
	SVG          []byte               // rendered SVG bytes
	CacheHit     bool                 // SVG bytes came from the cache
}

// Label returns the marker label: the note name without its octave.
func (r *Result) Label() string {
	return diagram.TrimOctave(r.Note)
}

// Describe returns a short human-readable summary of the result.
func (r *Result) Describe() string {
	state := "rendered"
	if r.CacheHit {
		state = "cached"
	}
	return fmt.Sprintf("%s: %d of %d positions visible (%s)", r.Note, len(r.Visible), len(r.Positions), state)
}
