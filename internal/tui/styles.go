// Package tui contains the procurement-risk browser screens: one virtualized
// table per record type, a variable-height report list, and the boxed detail
// pane opened on selection.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/openspend/procview/internal/data"
)

// Shared styles for the browser chrome and detail views.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Faint(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	CriticalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

var riskBandStyles = map[data.RiskBand]lipgloss.Style{
	data.RiskLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	data.RiskMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	data.RiskHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	data.RiskCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
}

// RenderRiskScore renders a 0-10 score colored by its band.
func RenderRiskScore(score float64) string {
	return riskBandStyles[data.BandFor(score)].Render(FormatScore(score))
}

var severityStyles = map[string]lipgloss.Style{
	"info":     lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
	"warning":  WarningStyle,
	"critical": CriticalStyle,
}

// RenderSeverity renders a report severity tag.
func RenderSeverity(severity string) string {
	style, ok := severityStyles[severity]
	if !ok {
		style = ValueStyle
	}
	return style.Render(severity)
}
