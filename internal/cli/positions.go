package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/fretmaster/fretmaster/pkg/fretboard"
	"github.com/fretmaster/fretmaster/pkg/pitch"
)

// newPositionsCmd creates the positions command for listing string/fret
// coordinates of a target note.
func newPositionsCmd() *cobra.Command {
	var (
		fretsStr  string
		tuningStr string
		flats     bool
		showAll   bool
	)

	cmd := &cobra.Command{
		Use:   "positions <note>",
		Short: "List string/fret positions for a target note",
		Long: `List string/fret positions for a target note.

Every string yields exactly one fret offset; offsets outside the visible fret
window (including negative, unplayable ones) are hidden unless --all is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())

			target, err := pitch.Parse(args[0])
			if err != nil {
				return err
			}

			tuning, err := cfg.TuningModel()
			if err != nil {
				return err
			}
			if tuningStr != "" {
				if tuning, err = fretboard.ParseTuning(tuningStr); err != nil {
					return err
				}
			}

			window := cfg.Window()
			if flagWindow, err := parseFretWindow(fretsStr); err != nil {
				return err
			} else if flagWindow != nil {
				window = *flagWindow
			}

			preferSharps := cfg.PreferSharps && !flats
			positions := fretboard.Resolve(target, tuning)

			fmt.Println(StyleTitle.Render(args[0]) + StyleDim.Render(fmt.Sprintf("  pitch %d, frets %d-%d", int(target), window.Lower, window.Upper)))
			fmt.Println(positionsTable(positions, tuning, window, preferSharps, showAll))
			return nil
		},
	}

	cmd.Flags().StringVar(&fretsStr, "frets", "", "visible fret window as lo:hi (default from config)")
	cmd.Flags().StringVar(&tuningStr, "tuning", "", "tuning override as note names, lowest first (e.g. D2,A2,D3,G3,B3,E4)")
	cmd.Flags().BoolVar(&flats, "flats", false, "prefer flat spellings")
	cmd.Flags().BoolVar(&showAll, "all", false, "include positions outside the window")

	return cmd
}

// positionsTable renders the per-string positions as a bordered table.
func positionsTable(positions []fretboard.Position, tuning fretboard.Tuning, window fretboard.FretRange, preferSharps, showAll bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle
			}
			return StyleValue
		}).
		Headers("STRING", "OPEN", "FRET", "")

	for _, p := range positions {
		visible := window.Contains(p.FretOffset)
		if !visible && !showAll {
			continue
		}

		open, err := tuning.OpenPitch(p.String)
		if err != nil {
			continue
		}
		openName, err := pitch.Format(open, preferSharps)
		if err != nil {
			openName = strconv.Itoa(int(open))
		}

		note := ""
		switch {
		case !p.Playable():
			note = "unplayable"
		case !visible:
			note = "outside window"
		}
		t.Row(strconv.Itoa(p.String+1), openName, strconv.Itoa(p.FretOffset), note)
	}

	return t.Render()
}
