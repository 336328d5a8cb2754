package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/openspend/procview/internal/data"
	"github.com/openspend/procview/internal/tui/table"
)

func institutionColumns() []table.Column[data.Institution] {
	return []table.Column[data.Institution]{
		{ID: "name", Title: "Institution", Width: 34, Cell: func(i data.Institution) string { return i.Name }},
		{ID: "country", Title: "Country", Width: 7, Align: lipgloss.Center, Cell: func(i data.Institution) string { return i.Country }},
		{ID: "kind", Title: "Kind", Width: 14, Cell: func(i data.Institution) string { return i.Kind }},
		{ID: "budget", Title: "Annual budget", Width: 16, Align: lipgloss.Right, Cell: func(i data.Institution) string { return FormatMoney(i.AnnualBudget, "EUR") }},
		{ID: "contracts", Title: "Contracts", Width: 9, Align: lipgloss.Right, Cell: func(i data.Institution) string { return FormatCount(i.ContractCount) }},
		{ID: "risk", Title: "Avg risk", Width: 8, Align: lipgloss.Right, Cell: func(i data.Institution) string { return RenderRiskScore(i.AvgRiskScore) }},
	}
}

// NewInstitutionBrowser builds the contracting-authority table screen.
func NewInstitutionBrowser(institutions []data.Institution, overscan int, logger zerolog.Logger) (*Browser[data.Institution], error) {
	tbl, err := table.New(
		institutionColumns(),
		institutions,
		func(i data.Institution, _ int) string { return i.ID },
		table.WithOverscan[data.Institution](overscan),
		table.WithOnSelect[data.Institution](openDetail[data.Institution]),
		table.WithEmptyMessage[data.Institution]("No institutions in this snapshot."),
		table.WithLogger[data.Institution](logger),
	)
	if err != nil {
		return nil, err
	}
	return NewBrowser("procview · institutions", tbl, renderInstitutionDetail), nil
}

func renderInstitutionDetail(i data.Institution, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("INSTITUTION"))
	content.WriteString("\n\n")

	content.WriteString(LabelStyle.Render("Name:          "))
	content.WriteString(ValueStyle.Render(i.Name))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("ID:            "))
	content.WriteString(ValueStyle.Render(i.ID))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Country:       "))
	content.WriteString(ValueStyle.Render(i.Country))
	content.WriteString(LabelStyle.Render("    Kind: "))
	content.WriteString(ValueStyle.Render(i.Kind))
	content.WriteString("\n\n")

	content.WriteString(LabelStyle.Render("Annual budget: "))
	content.WriteString(ValueStyle.Render(FormatMoney(i.AnnualBudget, "EUR")))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Contracts:     "))
	content.WriteString(ValueStyle.Render(FormatCount(i.ContractCount)))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Avg risk:      "))
	content.WriteString(RenderRiskScore(i.AvgRiskScore))
	content.WriteString("\n")

	return BoxStyle.Width(width - 2).Render(content.String())
}
