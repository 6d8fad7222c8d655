// Package cli implements the fretmaster command-line interface.
//
// This package provides commands for converting note names to pitch numbers,
// listing fretboard positions, rendering diagram artifacts, and managing the
// artifact cache. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - note: Convert between note names and pitch numbers
//   - positions: List string/fret positions for a note
//   - diagram: Render fretboard diagram SVGs
//   - cache: Manage the rendered-diagram cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/fretmaster/fretmaster/pkg/buildinfo"
	"github.com/fretmaster/fretmaster/pkg/config"
)

// Execute runs the fretmaster CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, loads the TOML
// configuration, and configures logging based on the --verbose flag. Logger
// and config are attached to the context and accessible to all commands via
// loggerFromContext and configFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "fretmaster",
		Short:        "FretMaster renders fretboard diagrams for target notes",
		Long:         `FretMaster is a CLI tool for the guitar fretboard: it converts note names to pitch numbers, resolves every string/fret position of a target note under a tuning, and renders the positions as SVG diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmdCtx := withLogger(cmd.Context(), newLogger(os.Stderr, level))

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cmd.SetContext(withConfig(cmdCtx, cfg))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/fretmaster/config.toml)")

	root.AddCommand(newNoteCmd())
	root.AddCommand(newPositionsCmd())
	root.AddCommand(newDiagramCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}

// loadConfig loads the config file at path, or the default location when
// path is empty. An explicit path must exist; the default location is
// optional.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
