package cli

import (
	"strconv"
	"strings"

	"github.com/fretmaster/fretmaster/pkg/errors"
	"github.com/fretmaster/fretmaster/pkg/fretboard"
)

// parseFretWindow parses a --frets value of the form "lo:hi" into an
// inclusive fret range. An empty value returns nil, meaning "use the
// configured window".
func parseFretWindow(s string) (*fretboard.FretRange, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return nil, errors.New(errors.ErrCodeInvalidFretRange, "fret window must be lo:hi, got %q", s)
	}
	lower, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFretRange, err, "invalid lower bound in %q", s)
	}
	upper, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFretRange, err, "invalid upper bound in %q", s)
	}

	window := fretboard.FretRange{Lower: lower, Upper: upper}
	if err := window.Validate(); err != nil {
		return nil, err
	}
	return &window, nil
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		formats = append(formats, strings.ToLower(strings.TrimSpace(p)))
	}
	return formats
}
