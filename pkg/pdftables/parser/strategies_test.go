package parser

import (
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsawler/tabula/model"
)

func hline(y, x0, x1 float64) model.Line {
	return model.Line{Start: model.Point{X: x0, Y: y}, End: model.Point{X: x1, Y: y}, Width: 1}
}

func vline(x, y0, y1 float64) model.Line {
	return model.Line{Start: model.Point{X: x, Y: y0}, End: model.Point{X: x, Y: y1}, Width: 1}
}

func rect(x, y, w, h float64) model.Line {
	return model.Line{Start: model.Point{X: x, Y: y}, End: model.Point{X: x + w, Y: y + h}, Width: 1, IsRect: true}
}

// gridLines rules a full grid with the given row and column boundaries.
func gridLines(ys, xs []float64) []model.Line {
	var lines []model.Line
	for _, y := range ys {
		lines = append(lines, hline(y, xs[0], xs[len(xs)-1]))
	}
	for _, x := range xs {
		lines = append(lines, vline(x, ys[len(ys)-1], ys[0]))
	}
	return lines
}

func linesParams() DetectionParams {
	params := DefaultDetectionParams()
	params.Strategy = StrategyLines
	return params
}

func textParams() DetectionParams {
	params := DefaultDetectionParams()
	params.Strategy = StrategyText
	return params
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyAuto, false},
		{"auto", StrategyAuto, false},
		{"Lines", StrategyLines, false},
		{" text ", StrategyText, false},
		{"geometric", StrategyGeometric, false},
		{"stream", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseStrategy(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseStrategy(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestDetectTablesUnknownStrategy(t *testing.T) {
	params := DefaultDetectionParams()
	params.Strategy = "stream"

	_, err := DetectTables(model.NewPage(612, 792), params)
	assert.Error(t, err)
}

func TestRuledGridFromRectangles(t *testing.T) {
	page := model.NewPage(612, 792)
	page.RawLines = []model.Line{
		rect(100, 680, 100, 20), rect(200, 680, 100, 20),
		rect(100, 660, 100, 20), rect(200, 660, 100, 20),
	}
	page.RawText = []model.TextFragment{
		fragment("Name", 105, 686, 20, 10),
		fragment("Qty", 205, 686, 15, 10),
		fragment("Bolt", 105, 666, 20, 10),
		fragment("Page 1", 105, 620, 30, 10),
	}

	found, err := DetectTables(page, linesParams())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, [][]string{
		{"Name", "Qty"},
		{"Bolt", ""},
	}, cellValues(found[0]))
}

func TestRuledSpannedCellIsNull(t *testing.T) {
	page := model.NewPage(612, 792)
	for _, y := range []float64{700, 680, 660, 640} {
		page.RawLines = append(page.RawLines, hline(y, 100, 400))
	}
	page.RawLines = append(page.RawLines,
		vline(100, 640, 700),
		vline(200, 640, 700),
		vline(300, 680, 700), // no divider in the middle row
		vline(300, 640, 660),
		vline(400, 640, 700),
	)
	page.RawText = []model.TextFragment{
		fragment("Name", 105, 686, 20, 10),
		fragment("Qty", 205, 686, 15, 10),
		fragment("Note", 305, 686, 20, 10),
		fragment("Widget", 105, 666, 30, 10),
		fragment("spans two", 205, 666, 45, 10),
		fragment("Gadget", 105, 646, 30, 10),
		fragment("ok", 305, 646, 10, 10),
	}

	found, err := DetectTables(page, linesParams())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, [][]string{
		{"Name", "Qty", "Note"},
		{"Widget", "spans two", "<null>"},
		{"Gadget", "", "ok"},
	}, cellValues(found[0]))
}

func TestRuledTablesOrderedTopToBottom(t *testing.T) {
	page := model.NewPage(612, 792)
	page.RawLines = append(page.RawLines, gridLines([]float64{440, 420, 400}, []float64{100, 200, 300})...)
	page.RawLines = append(page.RawLines, gridLines([]float64{740, 720, 700}, []float64{100, 200, 300})...)
	page.RawText = []model.TextFragment{
		fragment("low1", 105, 426, 20, 10), fragment("low2", 205, 426, 20, 10),
		fragment("low3", 105, 406, 20, 10), fragment("low4", 205, 406, 20, 10),
		fragment("up1", 105, 726, 15, 10), fragment("up2", 205, 726, 15, 10),
		fragment("up3", 105, 706, 15, 10), fragment("up4", 205, 706, 15, 10),
	}

	found, err := DetectTables(page, linesParams())
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, [][]string{{"up1", "up2"}, {"up3", "up4"}}, cellValues(found[0]))
	assert.Equal(t, [][]string{{"low1", "low2"}, {"low3", "low4"}}, cellValues(found[1]))
}

func TestRuledSnapsNearbyRulings(t *testing.T) {
	// Rulings drawn a fraction of a point apart are the same boundary.
	page := model.NewPage(612, 792)
	page.RawLines = []model.Line{
		hline(700, 100, 300), hline(680.4, 100, 200), hline(679.8, 200, 300), hline(660, 100, 300),
		vline(100, 660, 700), vline(200.3, 660, 700), vline(300, 660, 700),
	}
	page.RawText = []model.TextFragment{
		fragment("A", 105, 686, 5, 10), fragment("B", 205, 686, 5, 10),
		fragment("1", 105, 666, 5, 10), fragment("2", 205, 666, 5, 10),
	}

	found, err := DetectTables(page, linesParams())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, [][]string{{"A", "B"}, {"1", "2"}}, cellValues(found[0]))
}

func TestRuledIgnoresSingleBox(t *testing.T) {
	page := model.NewPage(612, 792)
	page.RawLines = []model.Line{rect(50, 50, 500, 700)}
	page.RawText = []model.TextFragment{fragment("Framed text", 100, 400, 50, 10)}

	found, err := DetectTables(page, linesParams())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRuledMultiLineCell(t *testing.T) {
	page := model.NewPage(612, 792)
	page.RawLines = gridLines([]float64{700, 660, 640}, []float64{100, 200, 300})
	page.RawText = []model.TextFragment{
		fragment("Computer", 105, 690, 40, 10),
		fragment("Science", 150, 690, 35, 10),
		fragment("Engg", 105, 678, 20, 10),
		fragment("Seats", 205, 690, 25, 10),
		fragment("CSE", 105, 646, 15, 10),
		fragment("120", 205, 646, 15, 10),
	}

	found, err := DetectTables(page, linesParams())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, [][]string{
		{"Computer Science\nEngg", "Seats"},
		{"CSE", "120"},
	}, cellValues(found[0]))
}

// alignedPage holds a title, a three column table with one missing cell and
// a footer.
func alignedPage() *model.Page {
	page := model.NewPage(612, 792)
	page.RawText = []model.TextFragment{
		fragment("Report", 100, 740, 30, 10),
		fragment("A1", 100, 700, 10, 10), fragment("B1", 200, 700, 10, 10), fragment("C1", 300, 700, 10, 10),
		fragment("A2", 100, 680, 10, 10), fragment("B2", 200, 680, 10, 10), fragment("C2", 300, 680, 10, 10),
		fragment("A3", 100, 660, 10, 10), fragment("C3", 300, 660, 10, 10),
		fragment("end of report", 100, 600, 60, 10),
	}
	return page
}

func TestAlignedTable(t *testing.T) {
	found, err := DetectTables(alignedPage(), textParams())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, [][]string{
		{"A1", "B1", "C1"},
		{"A2", "B2", "C2"},
		{"A3", "<null>", "C3"},
	}, cellValues(found[0]))
}

func TestAlignedMergesWordsInCell(t *testing.T) {
	page := model.NewPage(612, 792)
	page.RawText = []model.TextFragment{
		fragment("New", 100, 700, 15, 10), fragment("York", 117, 700, 20, 10), fragment("10", 200, 700, 10, 10),
		fragment("Boston", 100, 680, 30, 10), fragment("20", 200, 680, 10, 10),
	}

	found, err := DetectTables(page, textParams())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, [][]string{{"New York", "10"}, {"Boston", "20"}}, cellValues(found[0]))
}

func TestAlignedSplitsDistantBlocks(t *testing.T) {
	page := model.NewPage(612, 792)
	page.RawText = []model.TextFragment{
		fragment("a", 100, 700, 5, 10), fragment("b", 200, 700, 5, 10),
		fragment("1", 100, 680, 5, 10), fragment("2", 200, 680, 5, 10),
		fragment("c", 100, 500, 5, 10), fragment("d", 200, 500, 5, 10),
		fragment("3", 100, 480, 5, 10), fragment("4", 200, 480, 5, 10),
	}

	found, err := DetectTables(page, textParams())
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, cellValues(found[0]))
	assert.Equal(t, [][]string{{"c", "d"}, {"3", "4"}}, cellValues(found[1]))
}

func TestAlignedIgnoresProse(t *testing.T) {
	page := model.NewPage(612, 792)
	page.RawText = []model.TextFragment{
		fragment("One line of text.", 100, 700, 80, 10),
		fragment("Another line of text.", 100, 686, 95, 10),
	}

	found, err := DetectTables(page, textParams())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDetectTablesAutoPrefersRulings(t *testing.T) {
	page := alignedPage()
	page.RawLines = gridLines([]float64{715, 695, 675, 655}, []float64{95, 195, 295, 395})

	found, err := DetectTables(page, DefaultDetectionParams())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, [][]string{
		{"A1", "B1", "C1"},
		{"A2", "B2", "C2"},
		{"A3", "", "C3"},
	}, cellValues(found[0]))
}

func TestDetectTablesAutoFallsBackToText(t *testing.T) {
	found, err := DetectTables(alignedPage(), DefaultDetectionParams())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "<null>", cellValues(found[0])[2][1])
}

var colleges = [][]string{
	{"Rank", "College", "Branch"},
	{"1", "JNTU", "CSE"},
	{"2", "AU", "ECE"},
	{"3", "SVU", "EEE"},
}

// writeTablePDF draws rows as a table of 100x20pt cells below a title line.
// border is passed to CellFormat: "1" rules every cell, "" draws no lines.
func writeTablePDF(t *testing.T, rows [][]string, border string) string {
	t.Helper()
	return writePDF(t, func(pdf *fpdf.Fpdf) {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(72, 50, "Top colleges")
		for i, row := range rows {
			pdf.SetXY(72, 72+float64(i)*20)
			for _, text := range row {
				pdf.CellFormat(100, 20, text, border, 0, "L", false, 0, "")
			}
		}
	})
}

func TestDocumentTables(t *testing.T) {
	tests := []struct {
		name   string
		border string
	}{
		{"ruled", "1"},
		{"unruled", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Open(writeTablePDF(t, colleges, tt.border), DefaultDetectionParams())
			require.NoError(t, err)
			defer doc.Close()

			pt, err := doc.PageTables(0)
			require.NoError(t, err)
			assert.Equal(t, 1, pt.Page)
			require.Len(t, pt.Tables, 1)
			assert.Equal(t, colleges, cellValues(pt.Tables[0]))
		})
	}
}
