package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fretmaster/fretmaster/pkg/cache"
	"github.com/fretmaster/fretmaster/pkg/config"
	"github.com/fretmaster/fretmaster/pkg/diagram"
	"github.com/fretmaster/fretmaster/pkg/errors"
	"github.com/fretmaster/fretmaster/pkg/fretboard"
	"github.com/fretmaster/fretmaster/pkg/pipeline"
)

// diagramOpts holds the command-line flags for the diagram command.
type diagramOpts struct {
	output      string // output directory override
	fretsStr    string // fret window as lo:hi
	tuningStr   string // tuning override as note names
	backend     string // surface backend: native or graphviz
	formatsStr  string // output formats: svg, png, pdf (comma-separated)
	flats       bool   // prefer flat spellings
	noCache     bool   // disable artifact caching
	interactive bool   // pick the note interactively
	pngScale    float64
}

// newDiagramCmd creates the diagram command for rendering fretboard SVGs.
//
// Each note argument produces one artifact keyed by the note identity
// (<note>.svg); re-rendering a note overwrites its prior artifact. Rendered
// SVG bytes are cached, so repeated renders skip the drawing work.
func newDiagramCmd() *cobra.Command {
	opts := diagramOpts{pngScale: 2.0}

	cmd := &cobra.Command{
		Use:   "diagram [note]...",
		Short: "Render fretboard diagrams for target notes",
		Long: `Render fretboard diagrams for target notes.

Every playable position of each note inside the visible fret window is marked
on a fretboard and written as an SVG artifact named after the note, e.g.
diagrams/C4.svg. Multiple notes render multiple artifacts in one invocation.

With no note arguments on a terminal, a picker offers the chromatic notes of
octaves 2-5; --interactive forces the picker when stdout is not a terminal.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagram(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&opts.fretsStr, "frets", "", "visible fret window as lo:hi (default from config)")
	cmd.Flags().StringVar(&opts.tuningStr, "tuning", "", "tuning override as note names, lowest first")
	cmd.Flags().StringVar(&opts.backend, "backend", pipeline.BackendNative, "surface backend: native (default), graphviz")
	cmd.Flags().StringVarP(&opts.formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.flats, "flats", false, "prefer flat spellings")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick the note interactively")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", opts.pngScale, "resolution scale for PNG export")

	return cmd
}

// runDiagram resolves options against the config and renders one artifact
// per requested note.
func runDiagram(ctx context.Context, notes []string, opts *diagramOpts) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)
	preferSharps := cfg.PreferSharps && !opts.flats

	if len(notes) == 0 {
		if !opts.interactive && !isatty.IsTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("at least one note is required (or use --interactive)")
		}
		note, err := pickNote(preferSharps)
		if err != nil {
			return err
		}
		if note == "" {
			printInfo("No note selected")
			return nil
		}
		notes = []string{note}
	}

	formats := parseFormats(opts.formatsStr)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	if err := pipeline.ValidateBackend(opts.backend); err != nil {
		return err
	}

	window, err := parseFretWindow(opts.fretsStr)
	if err != nil {
		return err
	}
	if window == nil {
		w := cfg.Window()
		window = &w
	}

	tuning, err := cfg.TuningModel()
	if err != nil {
		return err
	}
	if opts.tuningStr != "" {
		if tuning, err = fretboard.ParseTuning(opts.tuningStr); err != nil {
			return err
		}
	}

	outputDir := opts.output
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	artifactCache := newArtifactCache(ctx, cfg, opts.noCache)
	defer artifactCache.Close()

	runner := pipeline.NewRunner(artifactCache, nil, logger)
	runner.TTL = cfg.CacheTTL()

	prog := newProgress(logger)
	for _, note := range notes {
		if err := renderNote(ctx, runner, note, pipeline.Options{
			Note:         note,
			PreferSharps: preferSharps,
			Window:       window,
			Tuning:       tuning,
			Backend:      opts.backend,
			OutputDir:    outputDir,
		}, formats, opts.pngScale); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Rendered %d diagram(s)", len(notes)))

	return nil
}

// renderNote executes the pipeline for one note and writes any extra formats.
func renderNote(ctx context.Context, runner *pipeline.Runner, note string, opts pipeline.Options, formats []string, pngScale float64) error {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", note))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Failed to render %s", note))
		return err
	}
	spinner.Stop()

	printSuccess("%s", result.Describe())
	printDetail("%s", result.ArtifactPath)

	for _, format := range formats {
		if format == pipeline.FormatSVG {
			continue // the pipeline already wrote the SVG
		}
		path, err := writeConverted(result, format, pngScale)
		if err != nil {
			return err
		}
		printDetail("%s", path)
	}
	return nil
}

// writeConverted converts the rendered SVG into an extra format next to the
// SVG artifact.
func writeConverted(result *pipeline.Result, format string, pngScale float64) (string, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case pipeline.FormatPNG:
		data, err = diagram.ToPNG(result.SVG, pngScale)
	case pipeline.FormatPDF:
		data, err = diagram.ToPDF(result.SVG)
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s", format)
	}
	if err != nil {
		return "", fmt.Errorf("%s/%s: %w", result.Note, format, err)
	}

	path := strings.TrimSuffix(result.ArtifactPath, ".svg") + "." + format
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeIOFailure, err, "write %s", path)
	}
	return path, nil
}

// newArtifactCache builds the cache backend selected by the config. Backend
// failures degrade to disabled caching rather than failing the render.
func newArtifactCache(ctx context.Context, cfg config.Config, noCache bool) cache.Cache {
	logger := loggerFromContext(ctx)

	if noCache || cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullCache()
	}

	switch cfg.Cache.Backend {
	case config.BackendRedis:
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			logger.Warn("redis cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return c
	default:
		dir, err := cfg.CacheDir()
		if err != nil {
			logger.Warn("cache dir unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			logger.Warn("file cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return c
	}
}
