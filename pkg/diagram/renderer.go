package diagram

import (
	"os"
	"path/filepath"

	"github.com/fretmaster/fretmaster/pkg/errors"
	"github.com/fretmaster/fretmaster/pkg/fretboard"
)

// SurfaceFactory creates a fresh surface per render.
type SurfaceFactory func() Surface

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithSurfaceFactory sets the surface backend. The default is the native
// SVG surface with six strings and the [0,12] window.
func WithSurfaceFactory(f SurfaceFactory) RendererOption {
	return func(r *Renderer) { r.newSurface = f }
}

// Renderer places resolved positions on a drawing surface and persists the
// result as an SVG artifact keyed by the note identity. It holds only
// immutable configuration and is safe for concurrent use; renders targeting
// the same key race with last-writer-wins semantics.
type Renderer struct {
	outputDir  string
	newSurface SurfaceFactory
}

// NewRenderer creates a renderer writing artifacts into outputDir. The
// directory is created lazily on first render.
func NewRenderer(outputDir string, opts ...RendererOption) *Renderer {
	r := &Renderer{
		outputDir:  outputDir,
		newSurface: func() Surface { return NewSVGSurface() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OutputDir returns the configured artifact directory.
func (r *Renderer) OutputDir() string {
	return r.outputDir
}

// Path returns the artifact path for an output key without rendering.
func (r *Renderer) Path(outputKey string) string {
	return filepath.Join(r.outputDir, outputKey+".svg")
}

// Render places one marker per position on a fresh surface and writes the
// artifact as <outputKey>.svg in the output directory, overwriting any prior
// artifact with the same key. Surfaces use 1-based string numbering, so a
// position on string index i is placed at string number i+1. The marker label
// is the note name with its octave suffix stripped.
//
// Directory creation is idempotent; creation or write failures return
// ErrCodeIOFailure with no retry.
func (r *Renderer) Render(noteName string, positions []fretboard.Position, outputKey string) (string, error) {
	surface := r.newSurface()
	label := TrimOctave(noteName)
	for _, p := range positions {
		surface.Place(p.String+1, p.FretOffset, label)
	}

	data, err := surface.Render()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "render surface for %s", noteName)
	}

	return r.Write(outputKey, data)
}

// Write persists pre-rendered SVG bytes under the given key. Render uses it
// after drawing; the pipeline uses it directly on a cache hit so the on-disk
// artifact is still refreshed.
func (r *Renderer) Write(outputKey string, data []byte) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIOFailure, err, "create diagram directory %s", r.outputDir)
	}

	path := r.Path(outputKey)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeIOFailure, err, "write diagram %s", path)
	}
	return path, nil
}

// TrimOctave strips the trailing signed-integer octave from a note name:
// "C#4" becomes "C#", "C-1" becomes "C". Names without an octave suffix are
// returned unchanged.
func TrimOctave(noteName string) string {
	i := len(noteName)
	for i > 0 && noteName[i-1] >= '0' && noteName[i-1] <= '9' {
		i--
	}
	if i > 0 && i < len(noteName) && noteName[i-1] == '-' {
		i--
	}
	return noteName[:i]
}
