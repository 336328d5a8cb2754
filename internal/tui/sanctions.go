package tui

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/openspend/procview/internal/data"
	"github.com/openspend/procview/internal/tui/table"
)

const sanctionDateLayout = "2006-01-02"

func sanctionColumns() []table.Column[data.Sanction] {
	return []table.Column[data.Sanction]{
		{ID: "vendor", Title: "Vendor", Width: 32, Cell: func(s data.Sanction) string { return s.VendorName }},
		{ID: "authority", Title: "Authority", Width: 24, Cell: func(s data.Sanction) string { return s.Authority }},
		{ID: "program", Title: "Program", Width: 18, Cell: func(s data.Sanction) string { return s.Program }},
		{ID: "listed", Title: "Listed", Width: 10, Cell: func(s data.Sanction) string { return s.ListedOn.Format(sanctionDateLayout) }},
		{ID: "status", Title: "Status", Width: 8, Cell: renderSanctionStatus},
	}
}

func renderSanctionStatus(s data.Sanction) string {
	if s.Status == "active" {
		return CriticalStyle.Render(s.Status)
	}
	return StatusStyle.Render(s.Status)
}

// NewSanctionBrowser builds the sanctions table screen.
func NewSanctionBrowser(sanctions []data.Sanction, overscan int, logger zerolog.Logger) (*Browser[data.Sanction], error) {
	tbl, err := table.New(
		sanctionColumns(),
		sanctions,
		func(s data.Sanction, _ int) string { return s.ID },
		table.WithOverscan[data.Sanction](overscan),
		table.WithOnSelect[data.Sanction](openDetail[data.Sanction]),
		table.WithEmptyMessage[data.Sanction]("No sanctions in this snapshot."),
		table.WithLogger[data.Sanction](logger),
	)
	if err != nil {
		return nil, err
	}
	return NewBrowser("procview · sanctions", tbl, renderSanctionDetail), nil
}

func renderSanctionDetail(s data.Sanction, width int) string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("SANCTION"))
	content.WriteString("\n\n")

	content.WriteString(LabelStyle.Render("Vendor:     "))
	content.WriteString(ValueStyle.Render(s.VendorName))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Vendor ID:  "))
	content.WriteString(ValueStyle.Render(s.VendorID))
	content.WriteString("\n\n")

	content.WriteString(LabelStyle.Render("Authority:  "))
	content.WriteString(ValueStyle.Render(s.Authority))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Program:    "))
	content.WriteString(ValueStyle.Render(s.Program))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Listed on:  "))
	content.WriteString(ValueStyle.Render(s.ListedOn.Format(sanctionDateLayout)))
	content.WriteString("\n")

	content.WriteString(LabelStyle.Render("Status:     "))
	content.WriteString(renderSanctionStatus(s))
	content.WriteString("\n")

	if s.Reason != "" {
		content.WriteString("\n")
		content.WriteString(HeaderStyle.Render("REASON"))
		content.WriteString("\n")
		content.WriteString(ValueStyle.Render(s.Reason))
		content.WriteString("\n")
	}

	return BoxStyle.Width(width - 2).Render(content.String())
}
