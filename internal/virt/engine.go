package virt

import (
	"sort"

	"github.com/rs/zerolog"
)

// SizeFunc estimates the extent (in terminal rows) of the item at index.
// It must return a non-negative value; negative returns are clamped to zero.
type SizeFunc func(index int) int

// ConstantSize returns a SizeFunc that reports the same extent for every item.
func ConstantSize(size int) SizeFunc {
	return func(int) int { return size }
}

// Item is one materialized entry of a Window: its index in the full sequence,
// its absolute offset from the top of the full (unrendered) sequence, and its
// extent. Offsets are usable for absolute placement without re-measuring
// earlier items.
type Item struct {
	Index  int
	Offset int
	Size   int
}

// Window is the result of one range computation. Items covers [Start, End) in
// ascending index order and tiles the interval exactly: each item begins where
// the previous one ends. TotalSize is the extent of all N items, measured
// where known and estimated otherwise, regardless of how many are
// materialized.
type Window struct {
	Items     []Item
	Start     int
	End       int
	TotalSize int
}

// Engine computes the minimal contiguous index range that must be
// materialized for a given viewport and scroll offset.
//
// Each Engine owns its measured-size cache outright; two virtualized views
// mounted at the same time never share offset state. The zero value is not
// usable, construct with NewEngine.
type Engine struct {
	count    int
	estimate SizeFunc
	overscan int

	measured map[int]int

	// offsets[i] is the cumulative extent of items [0, i). Entries at
	// indices <= valid are trustworthy; everything after is stale and
	// recomputed lazily.
	offsets []int
	valid   int

	logger zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithOverscan sets how many extra items are materialized beyond each edge of
// the strictly-visible range. Defaults to zero.
func WithOverscan(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.overscan = n
		}
	}
}

// WithLogger sets the logger used for defensive-input warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine over a sequence of count items whose extents
// are predicted by estimate. A nil estimate defaults to one row per item.
func NewEngine(count int, estimate SizeFunc, opts ...Option) *Engine {
	if count < 0 {
		count = 0
	}
	if estimate == nil {
		estimate = ConstantSize(1)
	}
	e := &Engine{
		count:    count,
		estimate: estimate,
		measured: make(map[int]int),
		offsets:  make([]int, count+1),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Count returns the sequence length the engine was last told about.
func (e *Engine) Count() int {
	return e.count
}

// Overscan returns the configured overscan item count.
func (e *Engine) Overscan() int {
	return e.overscan
}

// SetCount resizes the sequence to n items. Measured sizes for indices still
// in range are kept; the offset cache is rebuilt lazily on the next lookup.
func (e *Engine) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	if n == e.count {
		return
	}
	for idx := range e.measured {
		if idx >= n {
			delete(e.measured, idx)
		}
	}
	e.count = n
	e.offsets = make([]int, n+1)
	e.valid = 0
}

// SetEstimate replaces the size estimator and drops every measured size,
// forcing a full offset rebuild. Estimator changes usually mean the content
// itself reflowed, so stale measurements are not trustworthy either.
func (e *Engine) SetEstimate(estimate SizeFunc) {
	if estimate == nil {
		estimate = ConstantSize(1)
	}
	e.estimate = estimate
	e.measured = make(map[int]int)
	e.valid = 0
}

// Measure records the real, post-render extent of the item at index.
// Cached offsets at or after index become stale; offsets for earlier indices
// are unaffected and stay valid.
func (e *Engine) Measure(index, size int) {
	if index < 0 || index >= e.count {
		e.logger.Warn().
			Int("index", index).
			Int("count", e.count).
			Msg("measured size reported for out-of-range index, ignored")
		return
	}
	if size < 0 {
		e.logger.Warn().
			Int("index", index).
			Int("size", size).
			Msg("negative measured size clamped to zero")
		size = 0
	}
	if prev, ok := e.measured[index]; ok && prev == size {
		return
	}
	e.measured[index] = size
	if index < e.valid {
		e.valid = index
	}
}

// MeasuredSize returns the recorded size for index and whether one exists.
func (e *Engine) MeasuredSize(index int) (int, bool) {
	size, ok := e.measured[index]
	return size, ok
}

// TotalSize returns the extent of all items, measured where known and
// estimated otherwise. This is the height the host must reserve for the
// scrollable region even though only a slice of it is rendered.
func (e *Engine) TotalSize() int {
	e.fill(e.count)
	return e.offsets[e.count]
}

// OffsetOf returns the absolute offset of the item at index. OffsetOf(Count())
// equals TotalSize.
func (e *Engine) OffsetOf(index int) int {
	if index < 0 {
		return 0
	}
	if index > e.count {
		index = e.count
	}
	e.fill(index)
	return e.offsets[index]
}

// ItemAt returns the materialization metadata for a single index.
func (e *Engine) ItemAt(index int) Item {
	e.fill(min(index+1, e.count))
	return Item{
		Index:  index,
		Offset: e.offsets[index],
		Size:   e.sizeAt(index),
	}
}

// Window computes the virtual items covering the viewport at scrollOffset,
// expanded by the configured overscan and clamped to the sequence bounds.
// The scroll offset is clamped to [0, TotalSize-viewportSize] for the range
// computation; keeping the real scroll position in bounds is the scroll
// container's job, not the engine's.
//
// Window is idempotent: identical inputs against identical measured state
// yield identical output.
func (e *Engine) Window(scrollOffset, viewportSize int) Window {
	total := e.TotalSize()
	w := Window{TotalSize: total}
	if e.count == 0 || viewportSize <= 0 {
		return w
	}

	scrollOffset = min(scrollOffset, total-viewportSize)
	scrollOffset = max(scrollOffset, 0)

	// First index whose bottom edge is below the viewport top.
	start := sort.Search(e.count, func(i int) bool {
		return e.offsets[i+1] > scrollOffset
	})
	// First index at or past the viewport bottom; exclusive end.
	end := sort.Search(e.count, func(i int) bool {
		return e.offsets[i] >= scrollOffset+viewportSize
	})

	start = max(start-e.overscan, 0)
	end = min(end+e.overscan, e.count)
	if start > end {
		start = end
	}

	w.Start = start
	w.End = end
	w.Items = make([]Item, 0, end-start)
	for i := start; i < end; i++ {
		w.Items = append(w.Items, Item{
			Index:  i,
			Offset: e.offsets[i],
			Size:   e.offsets[i+1] - e.offsets[i],
		})
	}
	return w
}

// fill extends the offset prefix array so that offsets[0..through] are valid.
func (e *Engine) fill(through int) {
	if through > e.count {
		through = e.count
	}
	for i := e.valid; i < through; i++ {
		e.offsets[i+1] = e.offsets[i] + e.sizeAt(i)
	}
	if through > e.valid {
		e.valid = through
	}
}

// sizeAt resolves the extent of one item: measured if reported, estimated
// otherwise. A negative estimate must not poison the offset cache with
// negative extents, so it is clamped to zero and surfaced as a warning.
func (e *Engine) sizeAt(index int) int {
	if size, ok := e.measured[index]; ok {
		return size
	}
	size := e.estimate(index)
	if size < 0 {
		e.logger.Warn().
			Int("index", index).
			Int("size", size).
			Msg("negative size estimate clamped to zero")
		return 0
	}
	return size
}
