package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/openspend/procview/internal/data"
	"github.com/openspend/procview/internal/tui/listview"
)

const reportDateLayout = "2006-01-02"

// ReportBrowser is the report screen. Reports render as variable-height
// entries, a title line plus one line per finding, so it runs on the list
// component's measured-height path rather than the fixed-row table.
type ReportBrowser struct {
	list *listview.Model[data.Report]

	width  int
	height int

	keyQuit key.Binding
}

// NewReportBrowser builds the investigation-report list screen.
func NewReportBrowser(reports []data.Report, overscan int, logger zerolog.Logger) *ReportBrowser {
	lv := listview.New(
		reports,
		renderReportEntry,
		func(r data.Report, _ int) string { return r.ID },
		listview.WithOverscan[data.Report](overscan),
		listview.WithItemSize[data.Report](func(index int) int {
			// Title line plus one line per finding; corrected by
			// measurement after first render.
			return 1 + len(reports[index].Findings)
		}),
		listview.WithEmptyMessage[data.Report]("No reports in this snapshot."),
		listview.WithLogger[data.Report](logger),
	)
	return &ReportBrowser{
		list:    lv,
		width:   80,
		height:  24,
		keyQuit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// Init implements tea.Model.
func (b *ReportBrowser) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *ReportBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.list.SetSize(msg.Width, msg.Height-chromeHeight)
		return b, nil
	case tea.KeyMsg:
		if key.Matches(msg, b.keyQuit) {
			return b, tea.Quit
		}
	}

	_, cmd := b.list.Update(msg)
	return b, cmd
}

// View implements tea.Model.
func (b *ReportBrowser) View() string {
	title := TitleStyle.Render("procview · reports")
	return title + "\n" + b.list.View() + "\n" + b.statusLine()
}

func (b *ReportBrowser) statusLine() string {
	total := len(b.list.Items())
	if total == 0 {
		return StatusStyle.Render("0 reports · q quit")
	}
	start, end := b.list.VisibleRange()
	return StatusStyle.Render(fmt.Sprintf(
		"reports %s-%s of %s · %s rows reserved · q quit",
		FormatCount(start+1),
		FormatCount(end),
		FormatCount(total),
		FormatCount(b.list.TotalSize()),
	))
}

func renderReportEntry(r data.Report, _ int, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}

	var entry strings.Builder
	entry.WriteString(marker)
	entry.WriteString(RenderSeverity(r.Severity))
	entry.WriteString("  ")
	entry.WriteString(ValueStyle.Render(r.Title))
	entry.WriteString(StatusStyle.Render("  " + r.Subject + " · " + r.CreatedAt.Format(reportDateLayout)))

	for _, finding := range r.Findings {
		entry.WriteString("\n")
		entry.WriteString(LabelStyle.Render(fmt.Sprintf("      %-22s", finding.Category)))
		entry.WriteString(StatusStyle.Render(finding.Detail))
	}
	return entry.String()
}
