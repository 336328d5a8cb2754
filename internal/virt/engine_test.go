package virt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openspend/procview/internal/virt"
)

// TestEngine_WindowBounds verifies 0 <= Start <= End <= N across a spread of
// sequence lengths and scroll positions.
func TestEngine_WindowBounds(t *testing.T) {
	counts := []int{0, 1, 2, 5, 100, 10_000}
	scrolls := []int{-50, 0, 1, 47, 48, 599, 600, 1_000_000}

	for _, n := range counts {
		e := virt.NewEngine(n, virt.ConstantSize(3), virt.WithOverscan(2))
		for _, scroll := range scrolls {
			w := e.Window(scroll, 30)
			assert.GreaterOrEqual(t, w.Start, 0)
			assert.LessOrEqual(t, w.Start, w.End)
			assert.LessOrEqual(t, w.End, n)
			assert.Len(t, w.Items, w.End-w.Start)
		}
	}
}

// TestEngine_ConstantSizeItemCount checks the materialized count for constant
// sizes: about ceil(viewport/size)+1 items without overscan.
func TestEngine_ConstantSizeItemCount(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		viewport int
		scroll   int
		maxItems int
	}{
		{name: "aligned scroll", size: 10, viewport: 100, scroll: 0, maxItems: 10},
		{name: "misaligned scroll", size: 10, viewport: 100, scroll: 5, maxItems: 11},
		{name: "tall rows", size: 48, viewport: 600, scroll: 24, maxItems: 14},
		{name: "single row viewport", size: 3, viewport: 3, scroll: 1, maxItems: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := virt.NewEngine(10_000, virt.ConstantSize(tt.size))
			w := e.Window(tt.scroll, tt.viewport)
			assert.LessOrEqual(t, len(w.Items), tt.maxItems)
			assert.GreaterOrEqual(t, len(w.Items), tt.viewport/tt.size)
		})
	}
}

// TestEngine_TotalSize verifies the reserved extent covers all items no
// matter how few are materialized: 10,000 rows of 48 must reserve 480,000.
func TestEngine_TotalSize(t *testing.T) {
	e := virt.NewEngine(10_000, virt.ConstantSize(48))

	require.Equal(t, 480_000, e.TotalSize())

	w := e.Window(0, 600)
	assert.Equal(t, 480_000, w.TotalSize)
	assert.Less(t, len(w.Items), 20, "materialization must stay viewport-sized")
}

// TestEngine_FiveItemScenario pins the exact window for N=5, size=100,
// viewport=250, no overscan, scroll=0: indices 0..2 at offsets 0/100/200.
func TestEngine_FiveItemScenario(t *testing.T) {
	e := virt.NewEngine(5, virt.ConstantSize(100))

	w := e.Window(0, 250)

	require.Equal(t, 0, w.Start)
	require.Equal(t, 3, w.End)
	require.Len(t, w.Items, 3)
	for i, item := range w.Items {
		assert.Equal(t, i, item.Index)
		assert.Equal(t, i*100, item.Offset)
		assert.Equal(t, 100, item.Size)
	}
	assert.Equal(t, 500, w.TotalSize)
}

// TestEngine_EmptySequence ensures N=0 is a first-class state, not an error.
func TestEngine_EmptySequence(t *testing.T) {
	e := virt.NewEngine(0, virt.ConstantSize(48), virt.WithOverscan(5))

	w := e.Window(0, 600)

	assert.Empty(t, w.Items)
	assert.Zero(t, w.TotalSize)
	assert.Zero(t, w.Start)
	assert.Zero(t, w.End)
}

// TestEngine_ZeroViewport ensures a zero-height viewport yields zero items
// without crashing.
func TestEngine_ZeroViewport(t *testing.T) {
	e := virt.NewEngine(100, virt.ConstantSize(2))

	w := e.Window(40, 0)

	assert.Empty(t, w.Items)
	assert.Equal(t, 200, w.TotalSize)
}

// TestEngine_Overscan verifies overscan expands each edge by at most the
// configured count, clamped at both sequence boundaries.
func TestEngine_Overscan(t *testing.T) {
	tests := []struct {
		name        string
		scroll      int
		wantStart   int
		wantEnd     int
	}{
		{name: "clamped at head", scroll: 0, wantStart: 0, wantEnd: 13},
		{name: "expanded both sides", scroll: 500, wantStart: 47, wantEnd: 63},
		{name: "clamped at tail", scroll: 900, wantStart: 87, wantEnd: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := virt.NewEngine(100, virt.ConstantSize(10))
			over := virt.NewEngine(100, virt.ConstantSize(10), virt.WithOverscan(3))

			base := plain.Window(tt.scroll, 100)
			w := over.Window(tt.scroll, 100)

			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
			assert.LessOrEqual(t, base.Start-w.Start, 3)
			assert.LessOrEqual(t, w.End-base.End, 3)
		})
	}
}

// TestEngine_MeasureForwardOnly verifies that reporting a measured size for
// index k leaves every offset below k untouched.
func TestEngine_MeasureForwardOnly(t *testing.T) {
	e := virt.NewEngine(1_000, virt.ConstantSize(2))

	before := make([]int, 500)
	for i := range before {
		before[i] = e.OffsetOf(i)
	}

	e.Measure(500, 7)

	for i := range before {
		assert.Equal(t, before[i], e.OffsetOf(i), "offset below measured index changed")
	}
	assert.Equal(t, 2*999+7, e.TotalSize())
	assert.Equal(t, e.OffsetOf(500)+7, e.OffsetOf(501))
}

func TestEngine_MeasureVariableHeights(t *testing.T) {
	e := virt.NewEngine(10, virt.ConstantSize(1))
	e.Measure(2, 4)
	e.Measure(5, 3)

	w := e.Window(0, 20)

	require.Len(t, w.Items, 10)
	offset := 0
	for _, item := range w.Items {
		assert.Equal(t, offset, item.Offset, "items must tile with no gaps")
		offset += item.Size
	}
	assert.Equal(t, 15, w.TotalSize)
	assert.Equal(t, 4, w.Items[2].Size)
	assert.Equal(t, 3, w.Items[5].Size)
}

// TestEngine_MeasureOutOfRange ensures bad indices are ignored, not fatal.
func TestEngine_MeasureOutOfRange(t *testing.T) {
	e := virt.NewEngine(10, virt.ConstantSize(2))

	e.Measure(-1, 5)
	e.Measure(10, 5)

	assert.Equal(t, 20, e.TotalSize())
}

// TestEngine_NegativeEstimateClamped verifies a bad estimator degrades to
// zero-extent items instead of producing negative offsets.
func TestEngine_NegativeEstimateClamped(t *testing.T) {
	e := virt.NewEngine(10, func(i int) int {
		if i == 3 {
			return -50
		}
		return 2
	})

	assert.Equal(t, 18, e.TotalSize())

	w := e.Window(0, 100)
	require.Len(t, w.Items, 10)
	assert.Equal(t, 0, w.Items[3].Size)
	assert.Equal(t, w.Items[3].Offset, w.Items[4].Offset)
	for _, item := range w.Items {
		assert.GreaterOrEqual(t, item.Offset, 0)
	}
}

// TestEngine_ScrollJumpSingleCall verifies a large scroll delta resolves in
// one call: the window at the new offset is complete and correctly placed.
func TestEngine_ScrollJumpSingleCall(t *testing.T) {
	e := virt.NewEngine(10_000, virt.ConstantSize(10))

	w := e.Window(1_000, 100)

	require.NotEmpty(t, w.Items)
	assert.Equal(t, 100, w.Start)
	assert.Equal(t, 110, w.End)
	assert.Equal(t, 1_000, w.Items[0].Offset)
}

// TestEngine_Idempotent verifies repeated identical calls yield identical
// windows; no hidden state drifts between computations.
func TestEngine_Idempotent(t *testing.T) {
	e := virt.NewEngine(5_000, virt.ConstantSize(3), virt.WithOverscan(4))
	e.Measure(120, 9)

	first := e.Window(361, 72)
	second := e.Window(361, 72)

	assert.Equal(t, first, second)
}

// TestEngine_ScrollClamping verifies offsets past the end of the content are
// clamped so the last page is returned instead of an empty window.
func TestEngine_ScrollClamping(t *testing.T) {
	e := virt.NewEngine(100, virt.ConstantSize(10))

	w := e.Window(5_000, 100)

	require.NotEmpty(t, w.Items)
	assert.Equal(t, 100, w.End)
	assert.Equal(t, 90, w.Start)
}

func TestEngine_SetCount(t *testing.T) {
	e := virt.NewEngine(100, virt.ConstantSize(2))
	e.Measure(50, 5)
	e.Measure(80, 5)

	e.SetCount(60)

	assert.Equal(t, 60, e.Count())
	// Measurement at 50 survives the resize, the one at 80 is gone.
	size, ok := e.MeasuredSize(50)
	require.True(t, ok)
	assert.Equal(t, 5, size)
	_, ok = e.MeasuredSize(80)
	assert.False(t, ok)
	assert.Equal(t, 2*59+5, e.TotalSize())
}

func TestEngine_SetEstimateDropsMeasurements(t *testing.T) {
	e := virt.NewEngine(10, virt.ConstantSize(1))
	e.Measure(4, 6)
	require.Equal(t, 15, e.TotalSize())

	e.SetEstimate(virt.ConstantSize(3))

	_, ok := e.MeasuredSize(4)
	assert.False(t, ok)
	assert.Equal(t, 30, e.TotalSize())
}

func TestEngine_IndependentInstances(t *testing.T) {
	a := virt.NewEngine(100, virt.ConstantSize(2))
	b := virt.NewEngine(100, virt.ConstantSize(2))

	a.Measure(10, 9)

	assert.Equal(t, 2*99+9, a.TotalSize())
	assert.Equal(t, 200, b.TotalSize(), "measured cache must not leak across engines")
}
