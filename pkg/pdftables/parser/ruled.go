package parser

import (
	"math"
	"sort"

	"github.com/tsawler/tabula/model"

	"github.com/ukaji3/pdftables-go/pkg/pdftables/models"
)

// edge is a horizontal or vertical ruling. For a horizontal edge pos is its
// Y and lo..hi its X extent; for a vertical edge it is the other way round.
type edge struct {
	pos    float64
	lo, hi float64
}

// grid is one ruled table.
type grid struct {
	ys         []float64 // row boundaries, top to bottom
	xs         []float64 // column boundaries, left to right
	horizontal []edge
	vertical   []edge
}

// detectRuled builds tables from the ruling lines and rectangles of a page.
// Every pair of adjacent rulings bounds a row or a column. A cell with no
// text is "" when all four of its sides are drawn and null otherwise, which
// is how spanned cells show up.
func detectRuled(page *model.Page, params DetectionParams) []models.RawTable {
	tol := params.SnapTolerance
	horizontal, vertical := collectEdges(page.RawLines, tol)
	if len(horizontal) < 2 || len(vertical) < 2 {
		return nil
	}
	horizontal = joinEdges(snapEdges(horizontal, tol), tol)
	vertical = joinEdges(snapEdges(vertical, tol), tol)

	var found []models.RawTable
	for _, g := range findGrids(horizontal, vertical, tol) {
		if len(g.ys)-1 < params.MinRows || len(g.xs)-1 < params.MinCols {
			continue
		}
		found = append(found, g.table(page.RawText, params.TextTolerance, tol))
	}
	return found
}

// collectEdges splits page graphics into horizontal and vertical rulings.
// A rectangle contributes its four sides, or a single ruling when it is
// thinner than tol.
func collectEdges(lines []model.Line, tol float64) (horizontal, vertical []edge) {
	for _, l := range lines {
		x0, x1 := math.Min(l.Start.X, l.End.X), math.Max(l.Start.X, l.End.X)
		y0, y1 := math.Min(l.Start.Y, l.End.Y), math.Max(l.Start.Y, l.End.Y)
		w, h := x1-x0, y1-y0

		switch {
		case h <= tol && w > tol:
			horizontal = append(horizontal, edge{pos: (y0 + y1) / 2, lo: x0, hi: x1})
		case w <= tol && h > tol:
			vertical = append(vertical, edge{pos: (x0 + x1) / 2, lo: y0, hi: y1})
		case l.IsRect && w > tol && h > tol:
			horizontal = append(horizontal,
				edge{pos: y0, lo: x0, hi: x1},
				edge{pos: y1, lo: x0, hi: x1},
			)
			vertical = append(vertical,
				edge{pos: x0, lo: y0, hi: y1},
				edge{pos: x1, lo: y0, hi: y1},
			)
		}
	}
	return horizontal, vertical
}

// snapEdges moves edges whose positions lie within tol of their neighbour
// onto the average position of the run.
func snapEdges(edges []edge, tol float64) []edge {
	sorted := append([]edge(nil), edges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].pos < sorted[j].pos })

	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i].pos-sorted[i-1].pos <= tol {
			continue
		}
		sum := 0.0
		for _, e := range sorted[start:i] {
			sum += e.pos
		}
		mean := sum / float64(i-start)
		for k := start; k < i; k++ {
			sorted[k].pos = mean
		}
		start = i
	}
	return sorted
}

// joinEdges merges edges at the same position that overlap or are at most
// tol apart.
func joinEdges(edges []edge, tol float64) []edge {
	if len(edges) == 0 {
		return nil
	}
	sorted := append([]edge(nil), edges...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].pos != sorted[j].pos {
			return sorted[i].pos < sorted[j].pos
		}
		return sorted[i].lo < sorted[j].lo
	})

	joined := []edge{sorted[0]}
	for _, e := range sorted[1:] {
		last := &joined[len(joined)-1]
		if e.pos == last.pos && e.lo <= last.hi+tol {
			last.hi = math.Max(last.hi, e.hi)
			continue
		}
		joined = append(joined, e)
	}
	return joined
}

func crosses(h, v edge, tol float64) bool {
	return v.pos >= h.lo-tol && v.pos <= h.hi+tol &&
		h.pos >= v.lo-tol && h.pos <= v.hi+tol
}

// findGrids groups rulings that touch each other into grids, ordered top to
// bottom and then left to right.
func findGrids(horizontal, vertical []edge, tol float64) []grid {
	parent := make([]int, len(horizontal)+len(vertical))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i, h := range horizontal {
		for j, v := range vertical {
			if !crosses(h, v, tol) {
				continue
			}
			if a, b := find(i), find(len(horizontal)+j); a != b {
				parent[a] = b
			}
		}
	}

	groups := make(map[int]*grid)
	var order []int
	groupOf := func(i int) *grid {
		root := find(i)
		g, ok := groups[root]
		if !ok {
			g = &grid{}
			groups[root] = g
			order = append(order, root)
		}
		return g
	}
	for i, h := range horizontal {
		g := groupOf(i)
		g.horizontal = append(g.horizontal, h)
	}
	for j, v := range vertical {
		g := groupOf(len(horizontal) + j)
		g.vertical = append(g.vertical, v)
	}

	var grids []grid
	for _, root := range order {
		g := groups[root]
		g.ys = positions(g.horizontal)
		g.xs = positions(g.vertical)
		if len(g.ys) < 2 || len(g.xs) < 2 {
			continue
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(g.ys)))
		grids = append(grids, *g)
	}

	sort.SliceStable(grids, func(i, j int) bool {
		if grids[i].ys[0] != grids[j].ys[0] {
			return grids[i].ys[0] > grids[j].ys[0]
		}
		return grids[i].xs[0] < grids[j].xs[0]
	})
	return grids
}

// positions returns the distinct positions of edges in ascending order.
func positions(edges []edge) []float64 {
	seen := make(map[float64]bool, len(edges))
	var out []float64
	for _, e := range edges {
		if !seen[e.pos] {
			seen[e.pos] = true
			out = append(out, e.pos)
		}
	}
	sort.Float64s(out)
	return out
}

func (g grid) row(y float64) int {
	for i := 0; i < len(g.ys)-1; i++ {
		if y <= g.ys[i] && y >= g.ys[i+1] {
			return i
		}
	}
	return -1
}

func (g grid) col(x float64) int {
	for j := 0; j < len(g.xs)-1; j++ {
		if x >= g.xs[j] && x <= g.xs[j+1] {
			return j
		}
	}
	return -1
}

// closed reports whether all four sides of cell (i, j) are drawn.
func (g grid) closed(i, j int, tol float64) bool {
	top, bottom := g.ys[i], g.ys[i+1]
	left, right := g.xs[j], g.xs[j+1]
	return covered(g.horizontal, top, left, right, tol) &&
		covered(g.horizontal, bottom, left, right, tol) &&
		covered(g.vertical, left, bottom, top, tol) &&
		covered(g.vertical, right, bottom, top, tol)
}

func covered(edges []edge, pos, lo, hi, tol float64) bool {
	for _, e := range edges {
		if e.pos == pos && e.lo <= lo+tol && e.hi >= hi-tol {
			return true
		}
	}
	return false
}

// table fills the grid with the fragments whose anchor falls inside it.
func (g grid) table(fragments []model.TextFragment, textTol, snapTol float64) models.RawTable {
	rows, cols := len(g.ys)-1, len(g.xs)-1
	buckets := make([][][]model.TextFragment, rows)
	for i := range buckets {
		buckets[i] = make([][]model.TextFragment, cols)
	}
	for _, f := range fragments {
		x, y := anchor(f)
		i, j := g.row(y), g.col(x)
		if i < 0 || j < 0 {
			continue
		}
		buckets[i][j] = append(buckets[i][j], f)
	}

	raw := make(models.RawTable, rows)
	for i := range raw {
		raw[i] = make([]models.Cell, cols)
		for j := range raw[i] {
			text := cellText(buckets[i][j], textTol)
			switch {
			case text != "":
				raw[i][j] = models.NewCell(text)
			case g.closed(i, j, snapTol):
				raw[i][j] = models.NewCell("")
			default:
				raw[i][j] = models.NullCell()
			}
		}
	}
	return raw
}
