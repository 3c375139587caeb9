// Package output serializes extracted tables.
package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ukaji3/pdftables-go/pkg/pdftables/frame"
)

// WriteCSV writes f as CSV: one header row of column labels followed by one
// record per data row. No index column is written and null cells become
// empty fields.
func WriteCSV(w io.Writer, f *frame.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Columns()); err != nil {
		return err
	}

	record := make([]string, f.Width())
	for i := 0; i < f.Len(); i++ {
		for j, c := range f.Row(i) {
			record[j] = c.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes f as CSV to path, replacing any existing file.
// The data goes to a temporary file in the same directory first, so a failed
// write never leaves a partial file at path. A replaced file keeps its
// permissions; a new one gets 0644.
func WriteCSVFile(path string, f *frame.Frame) (err error) {
	mode := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = WriteCSV(bw, f); err != nil {
		return fmt.Errorf("failed to encode csv: %w", err)
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
