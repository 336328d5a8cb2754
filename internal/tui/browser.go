package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openspend/procview/internal/tui/table"
)

// chromeHeight is the extent of the title and status bars around the table.
const chromeHeight = 2

// openDetailMsg asks the browser to show the detail pane for item.
type openDetailMsg[T any] struct {
	item T
}

// openDetail is the SelectFunc wired into each entity table.
func openDetail[T any](item T) tea.Cmd {
	return func() tea.Msg {
		return openDetailMsg[T]{item: item}
	}
}

// DetailFunc renders the boxed detail view for one item at the given width.
type DetailFunc[T any] func(item T, width int) string

// Browser is the screen wrapping one virtualized table: a title bar, the
// table, a status line reporting the materialized range, and a detail pane
// opened on selection.
type Browser[T any] struct {
	title  string
	table  *table.Model[T]
	detail DetailFunc[T]

	width  int
	height int

	showDetail bool
	current    *T

	keyBack key.Binding
	keyQuit key.Binding
}

// NewBrowser wraps a prepared table into a full browser screen.
func NewBrowser[T any](title string, tbl *table.Model[T], detail DetailFunc[T]) *Browser[T] {
	return &Browser[T]{
		title:   title,
		table:   tbl,
		detail:  detail,
		width:   80,
		height:  24,
		keyBack: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		keyQuit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Init implements tea.Model.
func (b *Browser[T]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Browser[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.table.SetSize(msg.Width, msg.Height-chromeHeight)
		return b, nil

	case openDetailMsg[T]:
		item := msg.item
		b.current = &item
		b.showDetail = true
		return b, nil

	case tea.KeyMsg:
		if b.showDetail {
			if key.Matches(msg, b.keyBack) || key.Matches(msg, b.keyQuit) {
				b.showDetail = false
				b.current = nil
			}
			return b, nil
		}
		if key.Matches(msg, b.keyQuit) {
			return b, tea.Quit
		}
	}

	_, cmd := b.table.Update(msg)
	return b, cmd
}

// View implements tea.Model.
func (b *Browser[T]) View() string {
	title := TitleStyle.Render(b.title)

	if b.showDetail && b.current != nil {
		return title + "\n" + b.detail(*b.current, b.width) + "\n" +
			StatusStyle.Render("esc back · q quit")
	}

	return title + "\n" + b.table.View() + "\n" + b.statusLine()
}

// statusLine reports the materialized slice against the full sequence, the
// virtualization at work: rows outside this range exist only as reserved
// extent.
func (b *Browser[T]) statusLine() string {
	total := len(b.table.Rows())
	if total == 0 {
		return StatusStyle.Render("0 records · q quit")
	}
	start, end := b.table.VisibleRange()
	return StatusStyle.Render(fmt.Sprintf(
		"rows %s-%s of %s · %s reserved · enter open · q quit",
		FormatCount(start+1),
		FormatCount(end),
		FormatCount(total),
		FormatCount(b.table.TotalSize()),
	))
}
