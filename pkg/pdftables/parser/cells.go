package parser

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/tabula/model"
)

// anchor is the point used to place a fragment in a cell: just inside its
// first glyph, a little above the baseline.
func anchor(f model.TextFragment) (x, y float64) {
	return f.BBox.X + math.Min(f.BBox.Width, f.BBox.Height)/4, f.BBox.Y + f.BBox.Height/4
}

// cellText joins the fragments of one cell in reading order. Fragments on
// the same baseline (within tol) form a line; lines are joined by newlines.
func cellText(frags []model.TextFragment, tol float64) string {
	sorted := make([]model.TextFragment, 0, len(frags))
	for _, f := range frags {
		if strings.TrimSpace(f.Text) != "" {
			sorted = append(sorted, f)
		}
	}
	if len(sorted) == 0 {
		return ""
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].BBox.Y-sorted[j].BBox.Y) > tol {
			return sorted[i].BBox.Y > sorted[j].BBox.Y
		}
		return sorted[i].BBox.X < sorted[j].BBox.X
	})

	var sb strings.Builder
	prev := sorted[0]
	sb.WriteString(strings.TrimSpace(prev.Text))
	for _, f := range sorted[1:] {
		switch {
		case math.Abs(f.BBox.Y-prev.BBox.Y) > tol:
			sb.WriteByte('\n')
		case f.BBox.X-prev.BBox.Right() > wordGap(f):
			sb.WriteByte(' ')
		}
		sb.WriteString(strings.TrimSpace(f.Text))
		prev = f
	}
	return sb.String()
}

// wordGap is the horizontal gap above which two fragments on a line are
// separate words.
func wordGap(f model.TextFragment) float64 {
	if f.BBox.Height <= 0 {
		return 1
	}
	return f.BBox.Height * 0.1
}
