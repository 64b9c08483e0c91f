// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source reads catalog exports into header-keyed rows. Two backends
// exist: tab-separated text and Excel workbooks.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/catalogo/pkg/types"
)

// Row maps a header name to the raw cell value of one data line.
type Row map[string]string

// Get returns the value for column, or "" when the column is absent.
func (r Row) Get(column string) string {
	return r[column]
}

// Reader parses a catalog export into rows. The first line of the input is
// the header.
type Reader interface {
	Read(in io.Reader) ([]Row, error)
}

// DetectFormat picks a backend from the file extension. Anything that is not
// a workbook is read as tab-separated text.
func DetectFormat(path string) types.SourceFormat {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return types.FormatXLSX
	}
	return types.FormatTSV
}

// NewReader returns the backend for format.
func NewReader(format types.SourceFormat) (Reader, error) {
	switch format {
	case types.FormatTSV, "":
		return TSVReader{}, nil
	case types.FormatXLSX:
		return XLSXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported source format %q: use tsv or xlsx", format)
	}
}

// ReadFile opens path and reads it with the backend matching its extension.
func ReadFile(path string) ([]Row, error) {
	rd, err := NewReader(DetectFormat(path))
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source %s: %w", path, err)
	}
	defer f.Close()

	rows, err := rd.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading source %s: %w", path, err)
	}
	return rows, nil
}

// buildRows pairs each record with the header. Short records leave the
// missing columns out of the row; surplus fields are dropped. A repeated
// header name resolves to its last column.
func buildRows(header []string, records [][]string) []Row {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
