// Package export writes report sheets as CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sheet is one named table of a report.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// WriteCSV writes the sheet header and rows to w.
func WriteCSV(w io.Writer, sheet Sheet) error {
	cw := csv.NewWriter(w)
	if len(sheet.Header) > 0 {
		if err := cw.Write(sheet.Header); err != nil {
			return err
		}
	}
	if err := cw.WriteAll(sheet.Rows); err != nil {
		return fmt.Errorf("failed to write sheet %q: %w", sheet.Name, err)
	}
	return nil
}

// WriteDir writes every sheet to dir as <base>_<sheet name>.csv and returns
// the created paths in sheet order.
func WriteDir(dir, base string, sheets []Sheet) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	paths := make([]string, 0, len(sheets))
	for _, sheet := range sheets {
		path := filepath.Join(dir, FileName(base, sheet.Name))
		if err := writeFile(path, sheet); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FileName joins base and the sheet name into a filesystem-safe CSV name.
func FileName(base, sheet string) string {
	name := base
	if sheet != "" {
		name += "_" + sheet
	}
	return sanitize(name) + ".csv"
}

func writeFile(path string, sheet Sheet) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteCSV(f, sheet)
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
