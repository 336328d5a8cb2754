// Package listview provides a virtualized list component for Bubble Tea.
//
// Unlike the table component it is item-agnostic: the host supplies a render
// function and, optionally, a per-item height estimate. Items may span
// multiple terminal rows; after an item is rendered its real height is
// measured and fed back to the windowing engine, which corrects offsets for
// later items without touching earlier ones.
package listview

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/openspend/procview/internal/virt"
)

const (
	wheelScrollRows = 3

	defaultEmptyMessage = "Nothing to display."
)

// RenderFunc renders the item at index. The selected flag reports whether the
// item is under the cursor.
type RenderFunc[T any] func(item T, index int, selected bool) string

// KeyFunc returns a stable identity for the item at index, used as the render
// cache key.
type KeyFunc[T any] func(item T, index int) string

// SelectFunc is invoked with the full underlying item when one is chosen.
type SelectFunc[T any] func(item T) tea.Cmd

// KeyMap defines the navigation bindings for the list.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Select   key.Binding
}

// DefaultKeyMap returns the standard arrow/vim navigation bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g/home", "first")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "last")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	}
}

type renderedItem struct {
	view   string
	height int
}

// Model is a virtualized list over an in-memory sequence of items.
type Model[T any] struct {
	items    []T
	render   RenderFunc[T]
	itemKey  KeyFunc[T]
	estimate virt.SizeFunc

	engine *virt.Engine

	keyMap KeyMap
	logger zerolog.Logger

	width    int
	height   int
	overscan int
	scroll   int
	cursor   int

	onSelect     SelectFunc[T]
	emptyMessage string
	placeholder  lipgloss.Style

	cache map[string]renderedItem
}

// Option configures a list Model.
type Option[T any] func(*Model[T])

// WithSize sets the viewport dimensions.
func WithSize[T any](width, height int) Option[T] {
	return func(m *Model[T]) {
		m.width = width
		m.height = height
	}
}

// WithItemSize sets the per-item height estimate. Without it every item is
// estimated at one row until measured.
func WithItemSize[T any](estimate virt.SizeFunc) Option[T] {
	return func(m *Model[T]) {
		m.estimate = estimate
	}
}

// WithOverscan sets how many items beyond each viewport edge are materialized.
func WithOverscan[T any](n int) Option[T] {
	return func(m *Model[T]) {
		if n >= 0 {
			m.overscan = n
		}
	}
}

// WithOnSelect sets the handler fired when an item is chosen.
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

// WithLogger sets the logger used for defensive-input warnings.
func WithLogger[T any](logger zerolog.Logger) Option[T] {
	return func(m *Model[T]) {
		m.logger = logger
	}
}

// New creates a virtualized list. A nil itemKey falls back to the item index,
// which is only safe for append-only sequences.
func New[T any](items []T, render RenderFunc[T], itemKey KeyFunc[T], opts ...Option[T]) *Model[T] {
	if itemKey == nil {
		itemKey = func(_ T, index int) string { return strconv.Itoa(index) }
	}
	m := &Model[T]{
		items:        items,
		render:       render,
		itemKey:      itemKey,
		estimate:     virt.ConstantSize(1),
		keyMap:       DefaultKeyMap(),
		logger:       zerolog.Nop(),
		width:        80,
		height:       24,
		emptyMessage: defaultEmptyMessage,
		placeholder:  lipgloss.NewStyle().Faint(true).Padding(1, 2),
		cache:        make(map[string]renderedItem),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.engine = virt.NewEngine(
		len(items),
		m.estimate,
		virt.WithOverscan(m.overscan),
		virt.WithLogger(m.logger),
	)
	return m
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
	if len(m.items) == 0 {
		return nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.SetCursor(m.cursor - 1)
	case key.Matches(msg, m.keyMap.Down):
		m.SetCursor(m.cursor + 1)
	case key.Matches(msg, m.keyMap.PageUp):
		m.scrollBy(-m.height)
	case key.Matches(msg, m.keyMap.PageDown):
		m.scrollBy(m.height)
	case key.Matches(msg, m.keyMap.Home):
		m.SetCursor(0)
	case key.Matches(msg, m.keyMap.End):
		m.SetCursor(len(m.items) - 1)
	case key.Matches(msg, m.keyMap.Select):
		if m.onSelect != nil {
			return m.onSelect(m.items[m.cursor])
		}
	}
	return nil
}

// View implements tea.Model.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return m.placeholder.Render(m.emptyMessage)
	}
	if m.height <= 0 {
		return ""
	}

	// First pass feeds real heights into the engine, which may shift the
	// window; the second pass assembles lines against settled geometry.
	win := m.engine.Window(m.scroll, m.height)
	for _, it := range win.Items {
		_ = m.renderItem(it.Index)
	}
	win = m.engine.Window(m.scroll, m.height)
	if len(win.Items) == 0 {
		return ""
	}

	lines := make([]string, 0, m.height*2)
	for _, it := range win.Items {
		view := m.renderItem(it.Index)
		lines = append(lines, strings.Split(view, "\n")...)
	}

	top := m.scroll - win.Items[0].Offset
	if top < 0 {
		top = 0
	}
	if top > len(lines) {
		top = len(lines)
	}
	bottom := min(top+m.height, len(lines))
	return strings.Join(lines[top:bottom], "\n")
}

// renderItem renders one item, serving unchanged items from the key-addressed
// cache and reporting the real height back to the engine.
func (m *Model[T]) renderItem(index int) string {
	item := m.items[index]
	selected := index == m.cursor

	cacheKey := m.itemKey(item, index)
	if !selected {
		if ri, ok := m.cache[cacheKey]; ok {
			return ri.view
		}
	}

	view := m.render(item, index, selected)
	height := lipgloss.Height(view)
	m.engine.Measure(index, height)

	if !selected {
		m.cache[cacheKey] = renderedItem{view: view, height: height}
	}
	return view
}

// SetItems replaces the underlying sequence, clamping cursor and scroll.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.engine.SetCount(len(items))
	if m.cursor >= len(items) {
		m.cursor = max(len(items)-1, 0)
	}
	m.clampScroll()
}

// Invalidate drops cached renders and measured sizes. Call it after content
// reflow, a width change being the usual cause.
func (m *Model[T]) Invalidate() {
	m.cache = make(map[string]renderedItem)
	m.engine.SetEstimate(m.estimate)
}

// SetSize updates the viewport dimensions. A width change invalidates every
// measured height, since wrapped content reflows.
func (m *Model[T]) SetSize(width, height int) {
	widthChanged := width != m.width
	m.width = width
	m.height = height
	if widthChanged {
		m.Invalidate()
	}
	m.clampScroll()
}

// SetCursor moves the selection, clamped to bounds, scrolling it into view.
func (m *Model[T]) SetCursor(index int) {
	if len(m.items) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(index, 0), len(m.items)-1)
	m.scrollToCursor()
}

// Cursor returns the selected item index.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// SelectedItem returns the item under the cursor, or nil for an empty list.
func (m *Model[T]) SelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.cursor]
}

// Items returns the underlying sequence.
func (m *Model[T]) Items() []T {
	return m.items
}

// VisibleRange returns the currently materialized index range [start, end).
func (m *Model[T]) VisibleRange() (int, int) {
	win := m.engine.Window(m.scroll, m.height)
	return win.Start, win.End
}

// TotalSize returns the full scrollable extent in rows, estimated where items
// have not been measured yet.
func (m *Model[T]) TotalSize() int {
	return m.engine.TotalSize()
}

// ScrollOffset returns the current scroll position.
func (m *Model[T]) ScrollOffset() int {
	return m.scroll
}

func (m *Model[T]) scrollBy(delta int) {
	m.scroll += delta
	m.clampScroll()
}

func (m *Model[T]) clampScroll() {
	maxScroll := m.engine.TotalSize() - m.height
	m.scroll = min(m.scroll, maxScroll)
	m.scroll = max(m.scroll, 0)
}

func (m *Model[T]) scrollToCursor() {
	it := m.engine.ItemAt(m.cursor)
	if it.Offset < m.scroll {
		m.scroll = it.Offset
	} else if it.Offset+it.Size > m.scroll+m.height {
		m.scroll = it.Offset + it.Size - m.height
	}
	m.clampScroll()
}
