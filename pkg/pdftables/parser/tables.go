package parser

import (
	"fmt"
	"strings"

	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/tables"

	"github.com/ukaji3/pdftables-go/pkg/pdftables/models"
)

// Strategy selects how tables are located on a page.
type Strategy string

const (
	// StrategyAuto tries ruling lines, then text alignment, then the
	// geometric detector, and keeps the first that finds a table.
	StrategyAuto Strategy = "auto"
	// StrategyLines builds cells from horizontal and vertical rulings.
	StrategyLines Strategy = "lines"
	// StrategyText builds columns from left-aligned text.
	StrategyText Strategy = "text"
	// StrategyGeometric uses tabula's geometric detector.
	StrategyGeometric Strategy = "geometric"
)

// ParseStrategy converts a configuration value to a Strategy.
// An empty string selects StrategyAuto.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyLines, StrategyText, StrategyGeometric:
		return st, nil
	default:
		return "", fmt.Errorf("unknown detection strategy %q (want auto, lines, text or geometric)", s)
	}
}

// DetectionParams holds parameters for table detection.
type DetectionParams struct {
	Strategy           Strategy
	MinRows            int
	MinCols            int
	MinConfidence      float64
	UseLines           bool
	UseWhitespace      bool
	MaxCellGap         float64
	AlignmentTolerance float64
	DetectMergedCells  bool
	SnapTolerance      float64 // rulings or text edges closer than this share a position
	TextTolerance      float64 // fragments whose baselines differ by less are on one line
}

// DefaultDetectionParams returns default table detection parameters.
func DefaultDetectionParams() DetectionParams {
	cfg := tables.DefaultConfig()
	return DetectionParams{
		Strategy:           StrategyAuto,
		MinRows:            cfg.MinRows,
		MinCols:            cfg.MinCols,
		MinConfidence:      cfg.MinConfidence,
		UseLines:           cfg.UseLines,
		UseWhitespace:      cfg.UseWhitespace,
		MaxCellGap:         cfg.MaxCellGap,
		AlignmentTolerance: cfg.AlignmentTolerance,
		DetectMergedCells:  cfg.DetectMergedCells,
		SnapTolerance:      3.0,
		TextTolerance:      3.0,
	}
}

func (p DetectionParams) config() tables.Config {
	return tables.Config{
		MinRows:            p.MinRows,
		MinCols:            p.MinCols,
		MinConfidence:      p.MinConfidence,
		UseLines:           p.UseLines,
		UseWhitespace:      p.UseWhitespace,
		MaxCellGap:         p.MaxCellGap,
		AlignmentTolerance: p.AlignmentTolerance,
		DetectMergedCells:  p.DetectMergedCells,
	}
}

// DetectTables finds the tables on a prepared page using params.Strategy.
// Tables are returned top to bottom.
func DetectTables(page *model.Page, params DetectionParams) ([]models.RawTable, error) {
	switch params.Strategy {
	case StrategyLines:
		return detectRuled(page, params), nil
	case StrategyText:
		return detectAligned(page, params), nil
	case StrategyGeometric:
		return detectGeometric(page, params)
	case StrategyAuto, "":
		if params.UseLines {
			if found := detectRuled(page, params); len(found) > 0 {
				return found, nil
			}
		}
		if params.UseWhitespace {
			if found := detectAligned(page, params); len(found) > 0 {
				return found, nil
			}
		}
		return detectGeometric(page, params)
	default:
		return nil, fmt.Errorf("unknown detection strategy %q", params.Strategy)
	}
}

// detectGeometric runs tabula's geometric detector.
func detectGeometric(page *model.Page, params DetectionParams) ([]models.RawTable, error) {
	detector := tables.NewGeometricDetector()
	if err := detector.Configure(params.config()); err != nil {
		return nil, err
	}

	detected, err := detector.Detect(page)
	if err != nil {
		return nil, err
	}

	result := make([]models.RawTable, 0, len(detected))
	for _, t := range detected {
		result = append(result, ConvertTable(t))
	}
	return result, nil
}

// ConvertTable converts a detected table into a RawTable.
// Cell text is trimmed. A cell that received no text at all is null.
func ConvertTable(t *model.Table) models.RawTable {
	raw := make(models.RawTable, len(t.Rows))
	for i, row := range t.Rows {
		raw[i] = make([]models.Cell, len(row))
		for j, cell := range row {
			if cell.Text == "" && cell.BBox.IsEmpty() {
				raw[i][j] = models.NullCell()
				continue
			}
			raw[i][j] = models.NewCell(strings.TrimSpace(cell.Text))
		}
	}
	return raw
}
