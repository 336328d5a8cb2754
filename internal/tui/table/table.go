package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/openspend/procview/internal/virt"
)

const (
	// wheelScrollRows is how many rows one mouse wheel notch scrolls.
	wheelScrollRows = 3

	// headerHeight is the sticky header's extent in terminal rows.
	headerHeight = 1

	columnGap = "  "

	defaultEmptyMessage = "No records to display."
)

// Column describes one table column. ID is the render identity for the header
// cell and must be unique within the table; Cell pulls the display value from
// the full underlying item.
type Column[T any] struct {
	ID    string
	Title string
	Width int
	Align lipgloss.Position
	Cell  func(item T) string
}

// RowKeyFunc returns a stable identity for the item at index. Rows keep their
// cached rendering as long as their key is unchanged.
type RowKeyFunc[T any] func(item T, index int) string

// SelectFunc is invoked with the full underlying item when a row is chosen.
type SelectFunc[T any] func(item T) tea.Cmd

// Model is a virtualized table over an in-memory sequence of items. Only the
// rows inside the viewport (plus overscan) are rendered on any update.
type Model[T any] struct {
	rows    []T
	columns []Column[T]
	rowKey  RowKeyFunc[T]

	engine *virt.Engine

	keyMap KeyMap
	styles Styles
	logger zerolog.Logger

	width     int
	height    int
	rowHeight int
	overscan  int
	scroll    int
	cursor    int

	onSelect     SelectFunc[T]
	emptyMessage string

	rowCache map[string]string
}

// Option configures a table Model.
type Option[T any] func(*Model[T])

// WithSize sets the outer width and height of the table, header included.
func WithSize[T any](width, height int) Option[T] {
	return func(m *Model[T]) {
		m.width = width
		m.height = height
	}
}

// WithRowHeight sets the fixed extent of every body row. Defaults to one.
func WithRowHeight[T any](rows int) Option[T] {
	return func(m *Model[T]) {
		if rows > 0 {
			m.rowHeight = rows
		}
	}
}

// WithOverscan sets how many rows beyond each viewport edge are materialized.
func WithOverscan[T any](n int) Option[T] {
	return func(m *Model[T]) {
		if n >= 0 {
			m.overscan = n
		}
	}
}

// WithOnSelect sets the handler fired when a row is chosen.
func WithOnSelect[T any](fn SelectFunc[T]) Option[T] {
	return func(m *Model[T]) {
		m.onSelect = fn
	}
}

// WithEmptyMessage overrides the placeholder shown for an empty sequence.
func WithEmptyMessage[T any](msg string) Option[T] {
	return func(m *Model[T]) {
		m.emptyMessage = msg
	}
}

// WithKeyMap replaces the navigation bindings.
func WithKeyMap[T any](km KeyMap) Option[T] {
	return func(m *Model[T]) {
		m.keyMap = km
	}
}

// WithStyles replaces the table styles.
func WithStyles[T any](s Styles) Option[T] {
	return func(m *Model[T]) {
		m.styles = s
	}
}

// WithLogger sets the logger used for defensive-input warnings.
func WithLogger[T any](logger zerolog.Logger) Option[T] {
	return func(m *Model[T]) {
		m.logger = logger
	}
}

// New creates a virtualized table. It fails if the column set is empty or
// carries duplicate IDs; duplicate IDs would make header render identity
// undefined.
func New[T any](columns []Column[T], rows []T, rowKey RowKeyFunc[T], opts ...Option[T]) (*Model[T], error) {
	if err := validateColumns(columns); err != nil {
		return nil, err
	}
	if rowKey == nil {
		rowKey = func(_ T, index int) string { return strconv.Itoa(index) }
	}

	m := &Model[T]{
		rows:         rows,
		columns:      columns,
		rowKey:       rowKey,
		keyMap:       DefaultKeyMap(),
		styles:       DefaultStyles(),
		logger:       zerolog.Nop(),
		width:        80,
		height:       24,
		rowHeight:    1,
		emptyMessage: defaultEmptyMessage,
		rowCache:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.engine = virt.NewEngine(
		len(rows),
		virt.ConstantSize(m.rowHeight),
		virt.WithOverscan(m.overscan),
		virt.WithLogger(m.logger),
	)
	return m, nil
}

func validateColumns[T any](columns []Column[T]) error {
	if len(columns) == 0 {
		return fmt.Errorf("table: at least one column is required")
	}
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if col.ID == "" {
			return fmt.Errorf("table: column %q has an empty ID", col.Title)
		}
		if _, dup := seen[col.ID]; dup {
			return fmt.Errorf("table: duplicate column ID %q", col.ID)
		}
		seen[col.ID] = struct{}{}
		if col.Cell == nil {
			return fmt.Errorf("table: column %q has no cell accessor", col.ID)
		}
	}
	return nil
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollBy(-wheelScrollRows)
		case tea.MouseButtonWheelDown:
			m.scrollBy(wheelScrollRows)
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	if len(m.rows) == 0 {
		return nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.SetCursor(m.cursor - 1)
	case key.Matches(msg, m.keyMap.Down):
		m.SetCursor(m.cursor + 1)
	case key.Matches(msg, m.keyMap.HalfPageUp):
		m.SetCursor(m.cursor - m.pageRows()/2)
	case key.Matches(msg, m.keyMap.HalfPageDown):
		m.SetCursor(m.cursor + m.pageRows()/2)
	case key.Matches(msg, m.keyMap.PageUp):
		m.SetCursor(m.cursor - m.pageRows())
	case key.Matches(msg, m.keyMap.PageDown):
		m.SetCursor(m.cursor + m.pageRows())
	case key.Matches(msg, m.keyMap.Home):
		m.SetCursor(0)
	case key.Matches(msg, m.keyMap.End):
		m.SetCursor(len(m.rows) - 1)
	case key.Matches(msg, m.keyMap.Select):
		if m.onSelect != nil {
			return m.onSelect(m.rows[m.cursor])
		}
	}
	return nil
}

// View implements tea.Model.
func (m *Model[T]) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())

	if len(m.rows) == 0 {
		b.WriteByte('\n')
		b.WriteString(m.styles.Placeholder.Render(m.emptyMessage))
		return b.String()
	}

	bodyH := m.bodyHeight()
	win := m.engine.Window(m.scroll, bodyH)
	if len(win.Items) == 0 {
		return b.String()
	}

	lines := make([]string, 0, bodyH+m.rowHeight)
	for _, it := range win.Items {
		view := m.renderRow(it.Index)
		rowLines := strings.Split(view, "\n")
		for len(rowLines) < it.Size {
			rowLines = append(rowLines, "")
		}
		lines = append(lines, rowLines[:it.Size]...)
	}

	// The first materialized row may begin above the viewport top; slice the
	// assembled lines down to exactly the visible band.
	top := m.scroll - win.Items[0].Offset
	if top < 0 {
		top = 0
	}
	if top > len(lines) {
		top = len(lines)
	}
	bottom := min(top+bodyH, len(lines))
	for _, line := range lines[top:bottom] {
		b.WriteByte('\n')
		b.WriteString(line)
	}
	return b.String()
}

func (m *Model[T]) renderHeader() string {
	cells := make([]string, len(m.columns))
	for i, col := range m.columns {
		cells[i] = lipgloss.NewStyle().
			Width(col.Width).
			MaxWidth(col.Width).
			Align(col.Align).
			Inline(true).
			Render(col.Title)
	}
	return m.styles.Header.Render(strings.Join(cells, columnGap))
}

// renderRow renders one body row, serving unchanged rows from the key-addressed
// cache. The cursor row bypasses the cache so selection styling never leaks
// into it.
func (m *Model[T]) renderRow(index int) string {
	item := m.rows[index]
	selected := index == m.cursor

	cacheKey := m.rowKey(item, index)
	if !selected {
		if view, ok := m.rowCache[cacheKey]; ok {
			return view
		}
	}

	cells := make([]string, len(m.columns))
	for i, col := range m.columns {
		cells[i] = lipgloss.NewStyle().
			Width(col.Width).
			MaxWidth(col.Width).
			Align(col.Align).
			Inline(true).
			Render(col.Cell(item))
	}
	row := strings.Join(cells, columnGap)

	if selected {
		return m.styles.SelectedRow.Render(row)
	}
	view := m.styles.Row.Render(row)
	m.rowCache[cacheKey] = view
	return view
}

// SetRows replaces the underlying sequence. Cursor and scroll are clamped to
// the new bounds; cached renders survive for rows whose key is unchanged.
func (m *Model[T]) SetRows(rows []T) {
	m.rows = rows
	m.engine.SetCount(len(rows))
	if m.cursor >= len(rows) {
		m.cursor = max(len(rows)-1, 0)
	}
	m.clampScroll()
}

// Invalidate drops every cached row rendering. Call it when item content
// changed under unchanged row keys.
func (m *Model[T]) Invalidate() {
	m.rowCache = make(map[string]string)
}

// SetSize updates the table's outer dimensions.
func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampScroll()
	m.scrollToCursor()
}

// SetCursor moves the selection to index, clamped to the sequence bounds, and
// scrolls just enough to keep it visible.
func (m *Model[T]) SetCursor(index int) {
	if len(m.rows) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(index, 0), len(m.rows)-1)
	m.scrollToCursor()
}

// Cursor returns the selected row index.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// SelectedItem returns the item under the cursor, or nil for an empty table.
func (m *Model[T]) SelectedItem() *T {
	if len(m.rows) == 0 {
		return nil
	}
	return &m.rows[m.cursor]
}

// Rows returns the underlying sequence.
func (m *Model[T]) Rows() []T {
	return m.rows
}

// VisibleRange returns the currently materialized index range [start, end).
func (m *Model[T]) VisibleRange() (int, int) {
	win := m.engine.Window(m.scroll, m.bodyHeight())
	return win.Start, win.End
}

// TotalSize returns the full scrollable extent of the body in rows.
func (m *Model[T]) TotalSize() int {
	return m.engine.TotalSize()
}

// ScrollOffset returns the current body scroll position.
func (m *Model[T]) ScrollOffset() int {
	return m.scroll
}

func (m *Model[T]) bodyHeight() int {
	return max(m.height-headerHeight, 0)
}

func (m *Model[T]) pageRows() int {
	return max(m.bodyHeight()/m.rowHeight, 1)
}

func (m *Model[T]) scrollBy(delta int) {
	m.scroll += delta
	m.clampScroll()
}

func (m *Model[T]) clampScroll() {
	maxScroll := m.engine.TotalSize() - m.bodyHeight()
	m.scroll = min(m.scroll, maxScroll)
	m.scroll = max(m.scroll, 0)
}

func (m *Model[T]) scrollToCursor() {
	if len(m.rows) == 0 {
		return
	}
	it := m.engine.ItemAt(m.cursor)
	bodyH := m.bodyHeight()
	if it.Offset < m.scroll {
		m.scroll = it.Offset
	} else if it.Offset+it.Size > m.scroll+bodyH {
		m.scroll = it.Offset + it.Size - bodyH
	}
	m.clampScroll()
}
