// Package virt implements the windowing engine behind procview's virtualized
// table and list components.
//
// The engine answers one question: given N items, a per-item size estimate, a
// viewport size, and a scroll offset, which contiguous index range must be
// materialized, and at what absolute offsets? Only that slice is ever rendered,
// so browsing 100,000+ records stays at O(viewport) cost per scroll event.
// Key properties:
//   - Cumulative offsets are kept in a prefix array with a validity watermark;
//     range lookup is a binary search, never a re-sum from zero
//   - Measured sizes reported after render invalidate offsets forward-only
//   - Total scrollable extent always covers all N items, measured or estimated,
//     so scrollbar geometry stays stable while the tail is still unmeasured
//
// An Engine is owned by exactly one mounted component and is not safe for
// concurrent use; all updates arrive serialized through the Bubble Tea event
// loop.
package virt
