package parser

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/tabula/model"

	"github.com/ukaji3/pdftables-go/pkg/pdftables/models"
)

// textLine is a run of fragments sharing a baseline, split into cells at
// wide horizontal gaps.
type textLine struct {
	y      float64
	height float64
	cells  []textCell
}

type textCell struct {
	x     float64
	frags []model.TextFragment
}

// detectAligned finds unruled tables: consecutive lines with at least
// MinCols cells whose left edges line up in columns.
func detectAligned(page *model.Page, params DetectionParams) []models.RawTable {
	minCols := max(params.MinCols, 2)

	var found []models.RawTable
	for _, block := range tableBlocks(groupLines(page.RawText, params.TextTolerance), minCols) {
		if len(block) < params.MinRows {
			continue
		}
		columns := alignedColumns(block, params.SnapTolerance)
		if len(columns) < minCols {
			continue
		}
		found = append(found, alignedTable(block, columns, params.SnapTolerance, params.TextTolerance))
	}
	return found
}

// groupLines groups fragments into lines, top to bottom.
func groupLines(fragments []model.TextFragment, tol float64) []textLine {
	sorted := make([]model.TextFragment, 0, len(fragments))
	for _, f := range fragments {
		if strings.TrimSpace(f.Text) != "" {
			sorted = append(sorted, f)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Y > sorted[j].BBox.Y
	})

	var lines []textLine
	var current []model.TextFragment
	for _, f := range sorted {
		if len(current) > 0 && current[0].BBox.Y-f.BBox.Y > tol {
			lines = append(lines, newTextLine(current))
			current = nil
		}
		current = append(current, f)
	}
	if len(current) > 0 {
		lines = append(lines, newTextLine(current))
	}
	return lines
}

// newTextLine orders the fragments of one line left to right and starts a
// new cell wherever the gap is wider than the text is tall.
func newTextLine(frags []model.TextFragment) textLine {
	sort.SliceStable(frags, func(i, j int) bool { return frags[i].BBox.X < frags[j].BBox.X })

	line := textLine{y: frags[0].BBox.Y}
	right := math.Inf(-1)
	for _, f := range frags {
		line.height = math.Max(line.height, f.BBox.Height)
		if len(line.cells) == 0 || f.BBox.X-right > math.Max(f.BBox.Height, 1) {
			line.cells = append(line.cells, textCell{x: f.BBox.X})
		}
		last := &line.cells[len(line.cells)-1]
		last.frags = append(last.frags, f)
		right = math.Max(right, f.BBox.Right())
	}
	return line
}

// tableBlocks returns the runs of consecutive lines that have at least
// minCols cells and sit no more than three line heights apart.
func tableBlocks(lines []textLine, minCols int) [][]textLine {
	var blocks [][]textLine
	var current []textLine
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}
	for _, l := range lines {
		if len(l.cells) < minCols {
			flush()
			continue
		}
		if len(current) > 0 {
			prev := current[len(current)-1]
			if prev.y-l.y > 3*math.Max(prev.height, l.height) {
				flush()
			}
		}
		current = append(current, l)
	}
	flush()
	return blocks
}

// alignedColumns clusters the left edges of the cells in block and keeps
// the clusters used by at least half of the lines.
func alignedColumns(block []textLine, tol float64) []float64 {
	var xs []float64
	for _, l := range block {
		for _, c := range l.cells {
			xs = append(xs, c.x)
		}
	}
	sort.Float64s(xs)

	need := (len(block) + 1) / 2
	var columns []float64
	start := 0
	for i := 1; i <= len(xs); i++ {
		if i < len(xs) && xs[i]-xs[i-1] <= tol {
			continue
		}
		if i-start >= need {
			columns = append(columns, xs[start])
		}
		start = i
	}
	return columns
}

// alignedTable places every cell of block under the rightmost column that
// starts at or before it. Columns a line leaves empty are null.
func alignedTable(block []textLine, columns []float64, snapTol, textTol float64) models.RawTable {
	raw := make(models.RawTable, len(block))
	for i, l := range block {
		frags := make([][]model.TextFragment, len(columns))
		for _, c := range l.cells {
			j := 0
			for k, x := range columns {
				if x <= c.x+snapTol {
					j = k
				}
			}
			frags[j] = append(frags[j], c.frags...)
		}

		raw[i] = make([]models.Cell, len(columns))
		for j := range columns {
			if len(frags[j]) == 0 {
				raw[i][j] = models.NullCell()
				continue
			}
			raw[i][j] = models.NewCell(cellText(frags[j], textTol))
		}
	}
	return raw
}
