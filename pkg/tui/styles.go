// Package tui implements the interactive browser: an ID input, a skill
// multi-select and a result table over one loaded file.
package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/ajxudir/skillsearch/pkg/display"
)

// Palette.
var (
	colorPrimary = lipgloss.Color("#2196F3")
	colorBorder  = lipgloss.Color("#5C6370")
	colorMuted   = lipgloss.Color("#8A8F98")
	colorSuccess = lipgloss.Color("#8BC34A")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#E53935")
)

// Styles holds the lipgloss styles of the browser.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Focused  lipgloss.Style
	Blurred  lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Info     lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns the default browser styles.
func DefaultStyles() Styles {
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Section:  lipgloss.NewStyle().Bold(true),
		Focused:  box.BorderForeground(colorPrimary),
		Blurred:  box.BorderForeground(colorBorder),
		Cursor:   lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(colorSuccess),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Info:     lipgloss.NewStyle().Foreground(colorPrimary),
		Success:  lipgloss.NewStyle().Foreground(colorSuccess),
		Warning:  lipgloss.NewStyle().Foreground(colorWarning),
		Error:    lipgloss.NewStyle().Foreground(colorError).Bold(true),
	}
}

// Status renders a status message in the style of its kind.
func (s Styles) Status(m display.Message) string {
	if m.Text == "" {
		return ""
	}
	switch m.Kind {
	case display.KindSuccess:
		return s.Success.Render(m.String())
	case display.KindWarning:
		return s.Warning.Render(m.String())
	case display.KindError:
		return s.Error.Render(m.String())
	default:
		return s.Info.Render(m.String())
	}
}

// tableStyles returns the result table styles.
func tableStyles(focused bool) table.Styles {
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	if focused {
		st.Selected = st.Selected.Foreground(lipgloss.Color("#FFFFFF")).Background(colorPrimary)
	} else {
		st.Selected = lipgloss.NewStyle()
	}
	return st
}
