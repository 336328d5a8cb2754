package table

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles applied to the table's parts.
type Styles struct {
	Header      lipgloss.Style
	Row         lipgloss.Style
	SelectedRow lipgloss.Style
	Placeholder lipgloss.Style
}

// DefaultStyles returns the default table appearance.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("252")),
		Row: lipgloss.NewStyle(),
		SelectedRow: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true),
		Placeholder: lipgloss.NewStyle().
			Faint(true).
			Padding(1, 2),
	}
}
