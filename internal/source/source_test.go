// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/catalogo/pkg/types"
)

// mkXLSX builds a single-sheet workbook from rows.
func mkXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want types.SourceFormat
	}{
		{"data/catalogo.tsv", types.FormatTSV},
		{"data/catalogo.txt", types.FormatTSV},
		{"data/catalogo", types.FormatTSV},
		{"data/catalogo.xlsx", types.FormatXLSX},
		{"data/CATALOGO.XLSX", types.FormatXLSX},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path))
		})
	}
}

func TestNewReader(t *testing.T) {
	rd, err := NewReader(types.FormatTSV)
	require.NoError(t, err)
	assert.IsType(t, TSVReader{}, rd)

	rd, err = NewReader(types.FormatXLSX)
	require.NoError(t, err)
	assert.IsType(t, XLSXReader{}, rd)

	_, err = NewReader("ods")
	assert.ErrorContains(t, err, "unsupported source format")
}

func TestTSVReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Row
	}{
		{
			name:  "header and rows",
			input: "Codice Articolo\tLinea\tDescrizione\tDimensioni\nA1\tFIBRA\tCantinetta Sicura Rossa\t30x20\n",
			want: []Row{
				{"Codice Articolo": "A1", "Linea": "FIBRA", "Descrizione": "Cantinetta Sicura Rossa", "Dimensioni": "30x20"},
			},
		},
		{
			name:  "short row leaves columns absent",
			input: "Codice Articolo\tLinea\tDescrizione\nB2\tSETA\n",
			want:  []Row{{"Codice Articolo": "B2", "Linea": "SETA"}},
		},
		{
			name:  "extra fields ignored",
			input: "Codice Articolo\tLinea\nC3\tSPOT\textra\tmore\n",
			want:  []Row{{"Codice Articolo": "C3", "Linea": "SPOT"}},
		},
		{
			name:  "quoted field with tab",
			input: "Codice Articolo\tDescrizione\nD4\t\"Cesto\tgrande\"\n",
			want:  []Row{{"Codice Articolo": "D4", "Descrizione": "Cesto\tgrande"}},
		},
		{
			name:  "stray quote kept",
			input: "Codice Articolo\tDimensioni\nE5\t10\"x20\n",
			want:  []Row{{"Codice Articolo": "E5", "Dimensioni": "10\"x20"}},
		},
		{
			name: "text after a quoted word stays in the field",
			input: "Codice Articolo\tLinea\tDescrizione\tDimensioni\n" +
				"A1\tFIBRA\t\"Natale\" Rosso\t30x20\n" +
				"B2\tSETA\tSacchetto\t10x10\n" +
				"C3\tSPOT\tCesto\t\n",
			want: []Row{
				{"Codice Articolo": "A1", "Linea": "FIBRA", "Descrizione": "Natale Rosso", "Dimensioni": "30x20"},
				{"Codice Articolo": "B2", "Linea": "SETA", "Descrizione": "Sacchetto", "Dimensioni": "10x10"},
				{"Codice Articolo": "C3", "Linea": "SPOT", "Descrizione": "Cesto", "Dimensioni": ""},
			},
		},
		{
			name:  "doubled quotes inside quoted field",
			input: "Codice Articolo\tDescrizione\nD4\t\"Cesto \"\"Oro\"\" grande\"\n",
			want:  []Row{{"Codice Articolo": "D4", "Descrizione": "Cesto \"Oro\" grande"}},
		},
		{
			name:  "quoted field spanning lines",
			input: "Codice Articolo\tDescrizione\nD5\t\"Cesto\ngrande\"\nD6\tBusta\n",
			want: []Row{
				{"Codice Articolo": "D5", "Descrizione": "Cesto\ngrande"},
				{"Codice Articolo": "D6", "Descrizione": "Busta"},
			},
		},
		{
			name:  "unterminated quote keeps text",
			input: "Codice Articolo\tDescrizione\nD7\t\"Cesto",
			want:  []Row{{"Codice Articolo": "D7", "Descrizione": "Cesto"}},
		},
		{
			name:  "trailing tab gives empty field",
			input: "Codice Articolo\tLinea\nD8\t",
			want:  []Row{{"Codice Articolo": "D8", "Linea": ""}},
		},
		{
			name:  "byte order mark stripped",
			input: "\ufeffCodice Articolo\tLinea\nF6\tCRYSTAL\n",
			want:  []Row{{"Codice Articolo": "F6", "Linea": "CRYSTAL"}},
		},
		{
			name:  "blank lines skipped",
			input: "Codice Articolo\n\nG7\n\n",
			want:  []Row{{"Codice Articolo": "G7"}},
		},
		{
			name:  "crlf line endings",
			input: "Codice Articolo\tLinea\r\nH8\tFIBRA\r\n",
			want:  []Row{{"Codice Articolo": "H8", "Linea": "FIBRA"}},
		},
		{
			name:  "empty input",
			input: "",
			want:  []Row{},
		},
		{
			name:  "header only",
			input: "Codice Articolo\tLinea\n",
			want:  []Row{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := TSVReader{}.Read(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rows)
		})
	}
}

func TestRow_Get(t *testing.T) {
	row := Row{"Linea": "FIBRA"}
	assert.Equal(t, "FIBRA", row.Get("Linea"))
	assert.Equal(t, "", row.Get("Dimensioni"))
}

func TestBuildRows_DuplicateHeaderUsesLastColumn(t *testing.T) {
	rows := buildRows([]string{"Linea", "Linea"}, [][]string{{"first", "second"}})
	require.Len(t, rows, 1)
	assert.Equal(t, "second", rows[0].Get("Linea"))
}

func TestXLSXReader(t *testing.T) {
	blob := mkXLSX(t, [][]any{
		{"Codice Articolo", "Linea", "Descrizione", "Dimensioni"},
		{"A1", "FIBRA", "Cantinetta Sicura Rossa", "30x20"},
		{"B2", "SETA"},
	})

	rows, err := XLSXReader{}.Read(bytes.NewReader(blob))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"Codice Articolo": "A1", "Linea": "FIBRA", "Descrizione": "Cantinetta Sicura Rossa", "Dimensioni": "30x20"}, rows[0])
	assert.Equal(t, "SETA", rows[1].Get("Linea"))
	assert.Equal(t, "", rows[1].Get("Dimensioni"))
}

func TestXLSXReader_NotAWorkbook(t *testing.T) {
	_, err := XLSXReader{}.Read(strings.NewReader("not a zip"))
	assert.ErrorContains(t, err, "opening workbook")
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	tsvPath := filepath.Join(dir, "catalogo.tsv")
	require.NoError(t, os.WriteFile(tsvPath, []byte("Codice Articolo\tLinea\nA1\tFIBRA\n"), 0o644))
	xlsxPath := filepath.Join(dir, "catalogo.xlsx")
	require.NoError(t, os.WriteFile(xlsxPath, mkXLSX(t, [][]any{{"Codice Articolo", "Linea"}, {"A1", "FIBRA"}}), 0o644))

	fromTSV, err := ReadFile(tsvPath)
	require.NoError(t, err)
	fromXLSX, err := ReadFile(xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, fromTSV, fromXLSX)

	_, err = ReadFile(filepath.Join(dir, "missing.tsv"))
	assert.ErrorContains(t, err, "opening source")
}
