package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/openspend/procview/internal/data"
	"github.com/openspend/procview/internal/tui/table"
)

func vendorColumns() []table.Column[data.Vendor] {
	return []table.Column[data.Vendor]{
		{ID: "name", Title: "Vendor", Width: 32, Cell: func(v data.Vendor) string { return v.Name }},
		{ID: "country", Title: "Country", Width: 7, Align: lipgloss.Center, Cell: func(v data.Vendor) string { return v.Country }},
		{ID: "sector", Title: "Sector", Width: 18, Cell: func(v data.Vendor) string { return v.Sector }},
		{ID: "risk", Title: "Risk", Width: 5, Align: lipgloss.Right, Cell: func(v data.Vendor) string { return RenderRiskScore(v.RiskScore) }},
		{ID: "contracts", Title: "Contracts", Width: 9, Align: lipgloss.Right, Cell: func(v data.Vendor) string { return FormatCount(v.ContractCount) }},
		{ID: "awarded", Title: "Awarded", Width: 16, Align: lipgloss.Right, Cell: func(v data.Vendor) string { return FormatMoney(v.TotalAwarded, v.Currency) }},
		{ID: "sanctions", Title: "Sanc", Width: 4, Align: lipgloss.Right, Cell: func(v data.Vendor) string { return dashZero(v.SanctionCount) }},
	}
}

// dashZero keeps count columns visually clean by rendering zero as a dash.
func dashZero(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

// NewVendorBrowser builds the vendor table screen.
func NewVendorBrowser(vendors []data.Vendor, overscan int, logger zerolog.Logger) (*Browser[data.Vendor], error) {
	tbl, err := table.New(
		vendorColumns(),
		vendors,
		func(v data.Vendor, _ int) string { return v.ID },
		table.WithOverscan[data.Vendor](overscan),
		table.WithOnSelect[data.Vendor](openDetail[data.Vendor]),
		table.WithEmptyMessage[data.Vendor]("No vendors in this snapshot."),
		table.WithLogger[data.Vendor](logger),
	)
	if err != nil {
		return nil, err
	}
	return NewBrowser("procview · vendors", tbl, renderVendorDetail), nil
}

func renderVendorDetail(v data.Vendor, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("VENDOR"))
	content.WriteString("\n\n")

	content.WriteString(LabelStyle.Render("Name:          "))
	content.WriteString(ValueStyle.Render(v.Name))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("ID:            "))
	content.WriteString(ValueStyle.Render(v.ID))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Country:       "))
	content.WriteString(ValueStyle.Render(v.Country))
	content.WriteString(LabelStyle.Render("    Sector: "))
	content.WriteString(ValueStyle.Render(v.Sector))
	content.WriteString("\n\n")

	content.WriteString(LabelStyle.Render("Risk score:    "))
	content.WriteString(RenderRiskScore(v.RiskScore))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Contracts:     "))
	content.WriteString(ValueStyle.Render(FormatCount(v.ContractCount)))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Total awarded: "))
	content.WriteString(ValueStyle.Render(FormatMoney(v.TotalAwarded, v.Currency)))
	content.WriteString("\n")

	if v.SanctionCount > 0 {
		content.WriteString(LabelStyle.Render("Sanctions:     "))
		content.WriteString(CriticalStyle.Render(FormatCount(v.SanctionCount)))
		content.WriteString("\n")
	}

	if len(v.Flags) > 0 {
		content.WriteString("\n")
		content.WriteString(HeaderStyle.Render("RISK FLAGS"))
		content.WriteString("\n")
		for _, flag := range v.Flags {
			content.WriteString(WarningStyle.Render("- " + flag))
			content.WriteString("\n")
		}
	}

	return BoxStyle.Width(width - 2).Render(content.String())
}
