package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fretmaster/fretmaster/pkg/errors"
	"github.com/fretmaster/fretmaster/pkg/fretboard"
)

func TestRendererRender(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(filepath.Join(dir, "diagrams")) // does not exist yet

	positions := []fretboard.Position{
		{String: 1, FretOffset: 7},
		{String: 2, FretOffset: 2},
		{String: 5, FretOffset: 0},
	}

	path, err := r.Render("E4", positions, "E4")
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if path != filepath.Join(dir, "diagrams", "E4.svg") {
		t.Errorf("path = %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	svg := string(data)

	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("marker count = %d, want 3", got)
	}
	// Labels are the bare note name, no octave suffix.
	if !strings.Contains(svg, ">E</text>") {
		t.Error("marker label should be E")
	}
	if strings.Contains(svg, ">E4</text>") {
		t.Error("marker label should not include the octave")
	}
}

func TestRendererOverwrite(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)

	first, err := r.Render("C4", []fretboard.Position{{String: 1, FretOffset: 3}}, "C4")
	if err != nil {
		t.Fatalf("first Render error: %v", err)
	}
	second, err := r.Render("C4", []fretboard.Position{{String: 1, FretOffset: 3}, {String: 2, FretOffset: 10}}, "C4")
	if err != nil {
		t.Fatalf("second Render error: %v", err)
	}
	if first != second {
		t.Errorf("same key should yield the same path: %s vs %s", first, second)
	}

	// Only one artifact for the key; the second render replaced the first.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("artifact count = %d, want 1", len(entries))
	}
	data, _ := os.ReadFile(second)
	if got := strings.Count(string(data), "<circle"); got != 2 {
		t.Errorf("overwritten artifact marker count = %d, want 2", got)
	}
}

func TestRendererIOFailure(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocked, []byte("file, not dir"), 0644); err != nil {
		t.Fatal(err)
	}

	// Output directory path collides with an existing file.
	r := NewRenderer(filepath.Join(blocked, "diagrams"))
	_, err := r.Render("C4", nil, "C4")
	if err == nil {
		t.Fatal("Render should fail when the directory cannot be created")
	}
	if !errors.Is(err, errors.ErrCodeIOFailure) {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeIOFailure)
	}
}

func TestRendererSurfaceFactory(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, WithSurfaceFactory(func() Surface {
		return NewSVGSurface(WithStringCount(4))
	}))

	path, err := r.Render("G3", []fretboard.Position{{String: 0, FretOffset: 5}}, "G3")
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	data, _ := os.ReadFile(path)
	// 4 strings + 14 slot boundaries for the default [0,12] window.
	if got := strings.Count(string(data), "<line"); got != 4+14 {
		t.Errorf("line count = %d, want %d", got, 4+14)
	}
}

func TestTrimOctave(t *testing.T) {
	tests := map[string]string{
		"C4":   "C",
		"C#4":  "C#",
		"Db3":  "Db",
		"A#10": "A#",
		"C-1":  "C",
		"Eb-2": "Eb",
		"C":    "C",
		"":     "",
	}
	for in, want := range tests {
		if got := TrimOctave(in); got != want {
			t.Errorf("TrimOctave(%q) = %q, want %q", in, got, want)
		}
	}
}
