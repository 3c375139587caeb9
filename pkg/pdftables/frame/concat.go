package frame

import (
	"github.com/ukaji3/pdftables-go/pkg/pdftables/models"
)

// columnKey identifies a column across frames: the k-th column labeled
// Label in one frame lines up with the k-th column labeled Label in another.
type columnKey struct {
	Label      string
	Occurrence int
}

func keysOf(columns []string) []columnKey {
	seen := make(map[string]int, len(columns))
	keys := make([]columnKey, len(columns))
	for i, label := range columns {
		keys[i] = columnKey{Label: label, Occurrence: seen[label]}
		seen[label]++
	}
	return keys
}

// Concat stacks frames vertically, aligning columns by label.
//
// The result holds the union of all columns in order of first appearance.
// Cells for columns a source frame does not have are null. Rows keep their
// source order: frame order first, then row order within each frame.
func Concat(frames ...*Frame) *Frame {
	var (
		columns []string
		index   = make(map[columnKey]int)
		total   int
	)
	for _, f := range frames {
		if f == nil {
			continue
		}
		for _, key := range keysOf(f.columns) {
			if _, ok := index[key]; !ok {
				index[key] = len(columns)
				columns = append(columns, key.Label)
			}
		}
		total += len(f.rows)
	}

	out := &Frame{
		columns: columns,
		rows:    make([][]models.Cell, 0, total),
	}
	for _, f := range frames {
		if f == nil {
			continue
		}
		positions := make([]int, len(f.columns))
		for i, key := range keysOf(f.columns) {
			positions[i] = index[key]
		}
		for _, row := range f.rows {
			merged := make([]models.Cell, len(columns))
			for i, c := range row {
				merged[positions[i]] = c
			}
			out.rows = append(out.rows, merged)
		}
	}
	return out
}
