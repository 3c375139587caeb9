// Package models defines data structures for PDF table extraction.
package models

// Cell is a single table cell as returned by table detection.
// A cell with Valid == false is null: the detector found no content for it.
type Cell struct {
	// Value is the cell text.
	Value string `json:"value"`
	// Valid reports whether the cell holds a value at all.
	Valid bool `json:"valid"`
}

// NewCell returns a non-null cell holding s.
func NewCell(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// NullCell returns a null cell.
func NullCell() Cell {
	return Cell{}
}

// IsEmpty reports whether the cell is null or holds the empty string.
func (c Cell) IsEmpty() bool {
	return !c.Valid || c.Value == ""
}

// String returns the cell value, or "" for a null cell.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}
	return c.Value
}
