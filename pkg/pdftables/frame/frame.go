// Package frame provides a minimal labeled tabular structure used to
// normalize and combine tables detected in a PDF.
package frame

import (
	"github.com/ukaji3/pdftables-go/pkg/pdftables/models"
)

// Frame is a rectangular table with ordered column labels and data rows.
// Every row has exactly len(Columns) cells. Column labels may repeat.
type Frame struct {
	columns []string
	rows    [][]models.Cell
}

// New creates a frame from column labels and rows. Rows shorter than the
// column list are padded with null cells; longer rows are truncated.
func New(columns []string, rows [][]models.Cell) *Frame {
	f := &Frame{
		columns: append([]string(nil), columns...),
		rows:    make([][]models.Cell, 0, len(rows)),
	}
	for _, row := range rows {
		f.rows = append(f.rows, fitRow(row, len(columns)))
	}
	return f
}

// FromRaw builds a frame from a detected table. Row 0 becomes the column
// labels (a null label becomes ""), the remaining rows become data.
func FromRaw(raw models.RawTable) *Frame {
	header := raw.Header()
	columns := make([]string, len(header))
	for i, c := range header {
		columns[i] = c.String()
	}
	return New(columns, raw.Body())
}

func fitRow(row []models.Cell, width int) []models.Cell {
	out := make([]models.Cell, width)
	copy(out, row)
	return out
}

// Columns returns a copy of the column labels.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Len returns the number of data rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.columns)
}

// Row returns the i-th data row.
func (f *Frame) Row(i int) []models.Cell {
	return f.rows[i]
}

// Head returns a frame holding the first n rows (all rows if n exceeds Len).
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > len(f.rows) {
		n = len(f.rows)
	}
	return New(f.columns, f.rows[:n])
}

// DropEmptyRows removes rows in which every cell is empty.
func (f *Frame) DropEmptyRows() *Frame {
	kept := f.rows[:0:0]
	for _, row := range f.rows {
		if !allEmpty(row) {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return f
}

// DropEmptyColumns removes columns that are empty in every data row.
// A frame without data rows loses all of its columns.
func (f *Frame) DropEmptyColumns() *Frame {
	var keep []int
	for j := range f.columns {
		for _, row := range f.rows {
			if !row[j].IsEmpty() {
				keep = append(keep, j)
				break
			}
		}
	}
	if len(keep) == len(f.columns) {
		return f
	}

	columns := make([]string, len(keep))
	for i, j := range keep {
		columns[i] = f.columns[j]
	}
	rows := make([][]models.Cell, len(f.rows))
	for r, row := range f.rows {
		out := make([]models.Cell, len(keep))
		for i, j := range keep {
			out[i] = row[j]
		}
		rows[r] = out
	}
	f.columns = columns
	f.rows = rows
	return f
}

func allEmpty(row []models.Cell) bool {
	for _, c := range row {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
