package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fretmaster/fretmaster/pkg/cache"
	"github.com/fretmaster/fretmaster/pkg/diagram"
	"github.com/fretmaster/fretmaster/pkg/fretboard"
	"github.com/fretmaster/fretmaster/pkg/observability"
	"github.com/fretmaster/fretmaster/pkg/pitch"
)

// Runner encapsulates diagram generation with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// results. Multiple goroutines can safely use the same Runner with different
// options; renders targeting the same note race last-writer-wins on the
// artifact file.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration // cache TTL for rendered SVG bytes; zero = no expiry
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → resolve → filter → render pipeline.
//
// An invalid note fails before any directory or file is touched. On a cache
// hit the surface render is skipped, but the artifact is still written so the
// on-disk file reflects the request (same-key overwrite semantics).
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	target, err := pitch.Parse(opts.Note)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Note:  opts.Note,
		Pitch: target,
	}

	resolveStart := time.Now()
	result.Positions = fretboard.Resolve(target, opts.Tuning)
	result.Visible = fretboard.Filter(result.Positions, *opts.Window)
	observability.Render().OnResolve(ctx, opts.Note, len(result.Positions), len(result.Visible))

	r.Logger.Info("resolved positions",
		"note", opts.Note,
		"pitch", int(target),
		"strings", len(result.Positions),
		"visible", len(result.Visible),
		"duration", time.Since(resolveStart))

	data, hit, err := r.fetchOrRender(ctx, opts, result)
	if err != nil {
		return nil, err
	}
	result.SVG = data
	result.CacheHit = hit

	renderer := diagram.NewRenderer(opts.OutputDir)
	path, err := renderer.Write(opts.Note, data)
	if err != nil {
		return nil, err
	}
	result.ArtifactPath = path

	r.Logger.Info("wrote diagram",
		"note", opts.Note,
		"path", path,
		"bytes", len(data),
		"cache", hit)

	return result, nil
}

// fetchOrRender returns the SVG bytes for the request, from cache when
// possible. Cache failures degrade to a fresh render rather than failing the
// pipeline.
func (r *Runner) fetchOrRender(ctx context.Context, opts Options, result *Result) ([]byte, bool, error) {
	key := r.diagramKey(opts)

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache get failed", "err", err)
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, "diagram")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "diagram")

	renderStart := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Note, opts.Backend)

	surface := opts.newSurface()
	label := result.Label()
	for _, p := range result.Visible {
		surface.Place(p.String+1, p.FretOffset, label)
	}
	data, err = surface.Render()
	observability.Render().OnRenderComplete(ctx, opts.Note, opts.Backend, time.Since(renderStart), err)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Debug("rendered surface",
		"note", opts.Note,
		"backend", opts.Backend,
		"markers", len(result.Visible),
		"duration", time.Since(renderStart))

	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache set failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "diagram", len(data))
	}
	return data, false, nil
}

// diagramKey derives the cache key from every input that changes the artifact.
func (r *Runner) diagramKey(opts Options) string {
	open := opts.Tuning.OpenPitches()
	tuning := make([]int, len(open))
	for i, p := range open {
		tuning[i] = int(p)
	}
	return r.Keyer.DiagramKey(opts.Note, cache.DiagramKeyOpts{
		PreferSharps: opts.PreferSharps,
		FretLower:    opts.Window.Lower,
		FretUpper:    opts.Window.Upper,
		Tuning:       tuning,
		Backend:      opts.Backend,
	})
}
