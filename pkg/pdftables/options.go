// Package pdftables extracts the tables of a PDF document into one CSV file.
package pdftables

import (
	"github.com/ternarybob/arbor"

	"github.com/ukaji3/pdftables-go/pkg/pdftables/models"
	"github.com/ukaji3/pdftables-go/pkg/pdftables/parser"
)

// DefaultPreviewRows is the number of rows shown in the console preview.
const DefaultPreviewRows = 5

// Source is an open document that yields tables page by page.
type Source interface {
	Info() (models.DocumentInfo, error)
	PageTables(index int) (models.PageTables, error)
	Close() error
}

// Opener opens the document at path.
type Opener func(path string, params parser.DetectionParams) (Source, error)

// OpenPDF opens a PDF with the tabula-backed parser.
func OpenPDF(path string, params parser.DetectionParams) (Source, error) {
	doc, err := parser.Open(path, params)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Options configures extraction behavior.
type Options struct {
	// Detection tunes the table detector.
	Detection parser.DetectionParams
	// Logger receives progress messages. If nil, a default arbor logger is used.
	Logger arbor.ILogger
	// Opener opens the input document. If nil, OpenPDF is used.
	Opener Opener
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Detection: parser.DefaultDetectionParams(),
	}
}

func (o Options) opener() Opener {
	if o.Opener != nil {
		return o.Opener
	}
	return OpenPDF
}

func (o Options) logger() arbor.ILogger {
	if o.Logger != nil {
		return o.Logger
	}
	return arbor.NewLogger()
}
