package parser

import (
	"fmt"
	"path/filepath"

	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/graphicsstate"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/pages"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/text"

	"github.com/ukaji3/pdftables-go/pkg/pdftables/models"
)

// Document is an open PDF document.
type Document struct {
	path   string
	r      *reader.Reader
	params DetectionParams
}

// Open opens the PDF at path. The returned Document must be closed.
func Open(path string, params DetectionParams) (*Document, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	return &Document{path: path, r: r, params: params}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.r.Close()
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() (int, error) {
	return d.r.PageCount()
}

// Info returns basic document information.
func (d *Document) Info() (models.DocumentInfo, error) {
	n, err := d.PageCount()
	if err != nil {
		return models.DocumentInfo{}, err
	}
	return models.DocumentInfo{
		FileName:  filepath.Base(d.path),
		PageCount: n,
	}, nil
}

// PageTables detects the tables on the page at index (0-based).
func (d *Document) PageTables(index int) (models.PageTables, error) {
	result := models.PageTables{Page: index + 1}

	page, err := d.r.GetPage(index)
	if err != nil {
		return result, fmt.Errorf("failed to get page: %w", err)
	}

	mp, err := d.buildPage(page)
	if err != nil {
		return result, err
	}
	mp.Number = index + 1

	found, err := DetectTables(mp, d.params)
	if err != nil {
		return result, fmt.Errorf("table detection failed: %w", err)
	}
	result.Tables = found
	return result, nil
}

// buildPage collects the positioned text and ruling lines of a page.
func (d *Document) buildPage(page *pages.Page) (*model.Page, error) {
	width, err := page.Width()
	if err != nil {
		return nil, fmt.Errorf("failed to get page width: %w", err)
	}
	height, err := page.Height()
	if err != nil {
		return nil, fmt.Errorf("failed to get page height: %w", err)
	}
	mp := model.NewPage(width, height)

	fragments, err := d.r.ExtractTextFragments(page)
	if err != nil {
		return nil, err
	}
	mp.RawText = convertFragments(fragments)

	content, err := contentBytes(page)
	if err != nil {
		return nil, err
	}
	if len(content) > 0 {
		ge := graphicsstate.NewGraphicsExtractor()
		if err := ge.ExtractFromBytes(content); err != nil {
			return nil, fmt.Errorf("failed to extract graphics: %w", err)
		}
		mp.RawLines = append(mp.RawLines, ge.ToModelLines()...)
		mp.RawLines = append(mp.RawLines, ge.ToModelRectangles()...)
	}

	return mp, nil
}

// contentBytes decodes and concatenates the page content streams.
func contentBytes(page *pages.Page) ([]byte, error) {
	contents, err := page.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to get contents: %w", err)
	}

	var data []byte
	for _, obj := range contents {
		stream, ok := obj.(*core.Stream)
		if !ok {
			continue
		}
		decoded, err := stream.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode content stream: %w", err)
		}
		data = append(data, decoded...)
		data = append(data, '\n')
	}
	return data, nil
}

func convertFragments(fragments []text.TextFragment) []model.TextFragment {
	result := make([]model.TextFragment, len(fragments))
	for i, f := range fragments {
		result[i] = model.TextFragment{
			Text:     f.Text,
			BBox:     model.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
			FontSize: f.FontSize,
			FontName: f.FontName,
		}
	}
	return result
}
