package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fretmaster/fretmaster/pkg/pitch"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NotePickerModel - Interactive note selection
// =============================================================================

// NotePickerModel is the bubbletea model for interactive note selection.
type NotePickerModel struct {
	Notes    []string
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewNotePickerModel creates a picker over the chromatic notes of the given
// octave range, spelled per preferSharps.
func NewNotePickerModel(lowOctave, highOctave int, preferSharps bool) NotePickerModel {
	var notes []string
	for octave := lowOctave; octave <= highOctave; octave++ {
		for class := 0; class < 12; class++ {
			notes = append(notes, fmt.Sprintf("%s%d", pitch.ClassName(pitch.Class(class), preferSharps), octave))
		}
	}
	return NotePickerModel{
		Notes:  notes,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m NotePickerModel) Init() tea.Cmd {
	return nil
}

func (m NotePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Notes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Notes[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NotePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Note"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Notes) {
		end = len(m.Notes)
	}

	for i := m.Offset; i < end; i++ {
		note := m.Notes[i]
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("> " + note))
		} else {
			b.WriteString(listNormalStyle.Render("  " + note))
		}
		b.WriteString("\n")
	}

	if end < len(m.Notes) {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("\n  … %d more", len(m.Notes)-end)))
		b.WriteString("\n")
	}

	return b.String()
}

// pickNote runs the interactive picker and returns the selected note, or an
// empty string when the user quits without selecting.
func pickNote(preferSharps bool) (string, error) {
	model := NewNotePickerModel(2, 5, preferSharps)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("note picker: %w", err)
	}
	if picked, ok := final.(NotePickerModel); ok {
		return picked.Selected, nil
	}
	return "", nil
}
