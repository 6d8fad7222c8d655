package cli

import (
	"reflect"
	"testing"

	"github.com/fretmaster/fretmaster/pkg/errors"
)

func TestParseFretWindow(t *testing.T) {
	tests := []struct {
		input string
		lower int
		upper int
	}{
		{"0:12", 0, 12},
		{"3:7", 3, 7},
		{"5:5", 5, 5},
		{"0:24", 0, 24},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := parseFretWindow(tt.input)
			if err != nil {
				t.Fatalf("parseFretWindow(%q) error: %v", tt.input, err)
			}
			if r == nil {
				t.Fatalf("parseFretWindow(%q) = nil", tt.input)
			}
			if r.Lower != tt.lower || r.Upper != tt.upper {
				t.Errorf("parseFretWindow(%q) = [%d, %d], want [%d, %d]",
					tt.input, r.Lower, r.Upper, tt.lower, tt.upper)
			}
		})
	}
}

func TestParseFretWindowEmpty(t *testing.T) {
	r, err := parseFretWindow("")
	if err != nil {
		t.Fatalf("parseFretWindow(\"\") error: %v", err)
	}
	if r != nil {
		t.Errorf("parseFretWindow(\"\") = %v, want nil", r)
	}
}

func TestParseFretWindowInvalid(t *testing.T) {
	inputs := []string{
		"12",      // missing separator
		"a:12",    // non-numeric lower
		"0:b",     // non-numeric upper
		"7:3",     // inverted
		"-1:12",   // negative lower
		"0:12:24", // too many fields
		":",       // empty fields
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if _, err := parseFretWindow(input); err == nil {
				t.Errorf("parseFretWindow(%q) should fail", input)
			} else if !errors.Is(err, errors.ErrCodeInvalidFretRange) {
				t.Errorf("parseFretWindow(%q) error code = %v, want %v",
					input, errors.GetCode(err), errors.ErrCodeInvalidFretRange)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"png,pdf", []string{"png", "pdf"}},
		{"svg, png", []string{"svg", "png"}},
		{"SVG,Png", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
