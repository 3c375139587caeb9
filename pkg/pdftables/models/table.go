package models

// RawTable is a grid of cells as produced by table detection.
// Row 0 conventionally holds the column labels. Rows are not required to
// share a width.
type RawTable [][]Cell

// Header returns the first row, or nil for an empty table.
func (t RawTable) Header() []Cell {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Body returns all rows after the header.
func (t RawTable) Body() [][]Cell {
	if len(t) < 2 {
		return nil
	}
	return t[1:]
}

// RawTableFromStrings builds a RawTable in which every cell is non-null.
func RawTableFromStrings(rows [][]string) RawTable {
	table := make(RawTable, len(rows))
	for i, row := range rows {
		table[i] = make([]Cell, len(row))
		for j, v := range row {
			table[i][j] = NewCell(v)
		}
	}
	return table
}
