package listview_test

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openspend/procview/internal/tui/listview"
	"github.com/openspend/procview/internal/virt"
)

type entry struct {
	ID    string
	Lines int
}

func makeEntries(n int) []entry {
	items := make([]entry, n)
	for i := range items {
		items[i] = entry{ID: fmt.Sprintf("e-%04d", i), Lines: 1 + i%3}
	}
	return items
}

func renderEntry(e entry, _ int, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	lines := make([]string, e.Lines)
	lines[0] = marker + e.ID
	for i := 1; i < e.Lines; i++ {
		lines[i] = "    detail " + e.ID
	}
	return strings.Join(lines, "\n")
}

func entryKey(e entry, _ int) string { return e.ID }

func TestView_EmptySequencePlaceholder(t *testing.T) {
	m := listview.New(nil, renderEntry, entryKey, listview.WithSize[entry](40, 10))

	assert.Contains(t, m.View(), "Nothing to display.")
	assert.Zero(t, m.TotalSize())
}

func TestView_MaterializesOnlyViewport(t *testing.T) {
	items := makeEntries(5_000)
	m := listview.New(items, renderEntry, entryKey,
		listview.WithSize[entry](40, 12),
		listview.WithOverscan[entry](3),
	)

	view := m.View()

	assert.Contains(t, view, "e-0000")
	assert.NotContains(t, view, "e-2500")
	assert.NotContains(t, view, "e-4999")

	start, end := m.VisibleRange()
	assert.Zero(t, start)
	assert.Less(t, end, 30, "materialization must stay near viewport size")
}

// TestMeasurement_FeedsBackRealHeights verifies the variable-height loop: the
// estimate says one row per item, rendering reveals up to three, and the
// reserved extent corrects itself without touching earlier offsets.
func TestMeasurement_FeedsBackRealHeights(t *testing.T) {
	items := makeEntries(30)
	m := listview.New(items, renderEntry, entryKey, listview.WithSize[entry](40, 60))

	require.Equal(t, 30, m.TotalSize(), "pre-render extent uses the estimate")

	m.View()

	// Heights cycle 1,2,3 over 30 items: 10*(1+2+3) = 60 rows.
	assert.Equal(t, 60, m.TotalSize())
}

func TestMeasurement_TilesWithoutGaps(t *testing.T) {
	items := makeEntries(200)
	m := listview.New(items, renderEntry, entryKey, listview.WithSize[entry](40, 20))

	m.View()

	view := m.View()
	lines := strings.Split(view, "\n")
	assert.LessOrEqual(t, len(lines), 20)

	// Every line belongs to some entry: either a title or a detail line.
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		ok := strings.HasPrefix(trimmed, "e-") ||
			strings.HasPrefix(trimmed, "> e-") ||
			strings.HasPrefix(trimmed, "detail e-")
		assert.True(t, ok, "unexpected line %q", line)
	}
}

func TestCache_StableAcrossRenders(t *testing.T) {
	items := makeEntries(100)
	renders := make(map[string]int)
	render := func(e entry, index int, selected bool) string {
		renders[e.ID]++
		return renderEntry(e, index, selected)
	}
	m := listview.New(items, render, entryKey, listview.WithSize[entry](40, 10))

	m.View()
	after := renders["e-0003"]
	m.View()

	assert.Equal(t, after, renders["e-0003"], "unchanged item must come from cache")
}

func TestNavigation_SelectFiresWithFullItem(t *testing.T) {
	items := makeEntries(50)
	var picked *entry
	m := listview.New(items, renderEntry, entryKey,
		listview.WithSize[entry](40, 10),
		listview.WithOnSelect[entry](func(e entry) tea.Cmd {
			picked = &e
			return nil
		}),
	)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, picked)
	assert.Equal(t, items[2], *picked)
}

func TestNavigation_EndScrollsLastItemIntoView(t *testing.T) {
	items := makeEntries(500)
	m := listview.New(items, renderEntry, entryKey, listview.WithSize[entry](40, 15))
	m.View() // measure the first window

	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 499, m.Cursor())

	// The first bottom render measures the tail; the repeated End re-anchors
	// the scroll against the now-measured geometry.
	m.View()
	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	assert.Contains(t, m.View(), "e-0499")
}

func TestSetItems_ClampsCursorAndScroll(t *testing.T) {
	m := listview.New(makeEntries(300), renderEntry, entryKey, listview.WithSize[entry](40, 10))
	m.Update(tea.KeyMsg{Type: tea.KeyEnd})

	m.SetItems(makeEntries(5))

	assert.Equal(t, 4, m.Cursor())
	start, end := m.VisibleRange()
	assert.Zero(t, start)
	assert.Equal(t, 5, end)
}

func TestSetSize_WidthChangeDropsMeasurements(t *testing.T) {
	items := makeEntries(30)
	m := listview.New(items, renderEntry, entryKey, listview.WithSize[entry](40, 60))
	m.View()
	require.Equal(t, 60, m.TotalSize())

	m.SetSize(50, 60)

	assert.Equal(t, 30, m.TotalSize(), "reflow resets to estimates until remeasured")
}

func TestWithItemSize_UsesCallerEstimate(t *testing.T) {
	items := makeEntries(10)
	m := listview.New(items, renderEntry, entryKey,
		listview.WithSize[entry](40, 10),
		listview.WithItemSize[entry](virt.ConstantSize(2)),
	)

	assert.Equal(t, 20, m.TotalSize())
}
