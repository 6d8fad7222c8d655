package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fretmaster/fretmaster/pkg/pitch"
)

// newNoteCmd creates the note command for name/pitch conversion.
func newNoteCmd() *cobra.Command {
	var (
		midi  int
		flats bool
	)

	cmd := &cobra.Command{
		Use:   "note [name]",
		Short: "Convert between note names and pitch numbers",
		Long: `Convert between note names and pitch numbers.

With a note name argument ("C4", "A#5", "Db3"), prints the pitch number and
its components. With --midi, formats a pitch number back into a note name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			preferSharps := cfg.PreferSharps && !flats

			if cmd.Flags().Changed("midi") {
				return runNoteFromPitch(pitch.Pitch(midi), preferSharps)
			}
			if len(args) == 0 {
				return fmt.Errorf("a note name or --midi is required")
			}
			return runNoteFromName(args[0], preferSharps)
		},
	}

	cmd.Flags().IntVar(&midi, "midi", 0, "format a pitch number instead of parsing a name")
	cmd.Flags().BoolVar(&flats, "flats", false, "prefer flat spellings")

	return cmd
}

// runNoteFromName parses a note name and prints its pitch breakdown.
func runNoteFromName(name string, preferSharps bool) error {
	p, err := pitch.Parse(name)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(name))
	printDetail("pitch:  %d", int(p))
	printDetail("class:  %d (%s / %s)", int(p.Class()),
		pitch.ClassName(p.Class(), true), pitch.ClassName(p.Class(), false))
	printDetail("octave: %d", p.Octave())
	if !p.Valid() {
		printWarning("pitch %d is outside the conventional 0-127 range", int(p))
	}
	return nil
}

// runNoteFromPitch formats a pitch number and prints both spellings.
func runNoteFromPitch(p pitch.Pitch, preferSharps bool) error {
	name, err := pitch.Format(p, preferSharps)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(name))
	printDetail("pitch:  %d", int(p))
	printDetail("sharp:  %s", pitch.ClassName(p.Class(), true))
	printDetail("flat:   %s", pitch.ClassName(p.Class(), false))
	return nil
}
