// Package table provides a virtualized table component for Bubble Tea.
//
// The table keeps a sticky header row and materializes only the body rows the
// virt engine says are visible, so record sets in the tens of thousands render
// at viewport cost. Columns are declared once with a stable ID, a title, and a
// cell accessor; column order is rendering order in the header and in every
// row. Rendered rows are cached by the caller-supplied row key, so scrolling
// over unchanged data never re-renders a row.
package table
