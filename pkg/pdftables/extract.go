package pdftables

import (
	"fmt"
	"os"

	"github.com/ukaji3/pdftables-go/pkg/pdftables/frame"
	"github.com/ukaji3/pdftables-go/pkg/pdftables/output"
)

// Result describes a completed extraction.
type Result struct {
	// InputPath is the PDF that was read.
	InputPath string
	// OutputPath is the CSV destination.
	OutputPath string
	// Pages is the number of pages visited.
	Pages int
	// Tables is the number of tables detected across all pages.
	Tables int
	// Rows and Columns give the shape of the combined table.
	Rows    int
	Columns int
	// Written reports whether the CSV file was created. It is false when no
	// tables were found.
	Written bool
	// Frame is the combined table, nil when no tables were found.
	Frame *frame.Frame
}

// Extract reads every page of the PDF at inputPath, normalizes each detected
// table, concatenates them and writes the result to outputPath as CSV.
//
// When no tables are found nothing is written and the error is nil.
// The output file is only touched after all pages have been processed.
func Extract(inputPath, outputPath string, opts Options) (*Result, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}

	logger := opts.logger()

	src, err := opts.opener()(inputPath, opts.Detection)
	if err != nil {
		return nil, &ExtractionError{Stage: "open", Err: err}
	}
	defer src.Close()

	info, err := src.Info()
	if err != nil {
		return nil, &ExtractionError{Stage: "pages", Err: err}
	}
	pageCount := info.PageCount
	logger.Info().
		Str("file", info.FileName).
		Int("pages", pageCount).
		Msgf("Reading %s (%d pages)", info.FileName, pageCount)

	result := &Result{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Pages:      pageCount,
	}

	var all []*frame.Frame
	for i := 0; i < pageCount; i++ {
		pageNum := i + 1
		logger.Info().Msgf("Processing page %d of %d", pageNum, pageCount)

		pt, err := src.PageTables(i)
		if err != nil {
			return nil, &ExtractionError{Page: pageNum, Stage: "detect", Err: err}
		}

		for j, raw := range pt.Tables {
			logger.Info().Msgf("Found table %d on page %d", j+1, pageNum)

			f := frame.FromRaw(raw).DropEmptyRows().DropEmptyColumns()
			logger.Debug().
				Int("page", pageNum).
				Int("table", j+1).
				Int("rows", f.Len()).
				Int("columns", f.Width()).
				Msg("Normalized table")

			all = append(all, f)
		}
	}

	result.Tables = len(all)
	if len(all) == 0 {
		logger.Info().Msg("No tables found in the PDF")
		return result, nil
	}

	combined := frame.Concat(all...)
	if err := output.WriteCSVFile(outputPath, combined); err != nil {
		return nil, &SerializationError{Path: outputPath, Err: err}
	}

	result.Rows = combined.Len()
	result.Columns = combined.Width()
	result.Written = true
	result.Frame = combined

	logger.Info().Msgf("Successfully saved data to %s", outputPath)
	return result, nil
}
