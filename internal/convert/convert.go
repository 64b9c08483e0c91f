// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a catalog export into the JSON product catalog.
// Each row with an article code becomes one CatalogEntry; entries are sorted
// by code and written as a single indented JSON array.
package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/catalogo/internal/rules"
	"github.com/pdiddy/catalogo/internal/source"
	"github.com/pdiddy/catalogo/pkg/types"
)

// ErrSourceNotFound is returned when the catalog export does not exist.
var ErrSourceNotFound = errors.New("source file not found")

// Result holds the outcome of a conversion run.
type Result struct {
	// Written is the number of entries in the output document.
	Written int
	// Skipped is the number of rows dropped for lacking an article code.
	Skipped int
	// OutputPath is where the document was written; empty on a dry run.
	OutputPath string
	// MissingAssets lists resolved asset paths absent under the assets root.
	MissingAssets []string
}

// Total returns the number of source rows processed.
func (r Result) Total() int {
	return r.Written + r.Skipped
}

// HasMissingAssets reports whether any referenced asset was not found.
func (r Result) HasMissingAssets() bool {
	return len(r.MissingAssets) > 0
}

// Run reads cfg.SourcePath, builds the catalog and writes it to
// cfg.OutputPath, printing a summary line to w. The source is checked before
// anything else; when it is missing, Run returns ErrSourceNotFound and leaves
// any existing output untouched.
func Run(cfg types.ConverterConfig, rs *rules.Rules, log *zap.Logger, w io.Writer) (Result, error) {
	if _, err := os.Stat(cfg.SourcePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrSourceNotFound, cfg.SourcePath)
		}
		return Result{}, fmt.Errorf("checking source %s: %w", cfg.SourcePath, err)
	}

	rows, err := source.ReadFile(cfg.SourcePath)
	if err != nil {
		return Result{}, err
	}
	log.Debug("source read", zap.String("path", cfg.SourcePath), zap.Int("rows", len(rows)))

	entries, skipped := BuildEntries(rows, rs, log)
	SortEntries(entries)

	data, err := EncodeJSON(entries)
	if err != nil {
		return Result{}, err
	}

	result := Result{Written: len(entries), Skipped: skipped}
	if cfg.AssetsRoot != "" {
		result.MissingAssets = missingAssets(entries, cfg.AssetsRoot, log)
	}

	if cfg.DryRun {
		if _, err := w.Write(data); err != nil {
			return result, fmt.Errorf("writing dry run output: %w", err)
		}
		log.Info("dry run, output not written",
			zap.Int("entries", result.Written), zap.Int("skipped", result.Skipped))
		return result, nil
	}

	if err := WriteJSON(cfg.OutputPath, data); err != nil {
		return result, err
	}
	result.OutputPath = cfg.OutputPath

	fmt.Fprintf(w, "Wrote %d entries to %s\n", result.Written, result.OutputPath)
	return result, nil
}

// BuildEntry derives a catalog entry from one source row. It returns false
// when the row has no article code.
func BuildEntry(row source.Row, rs *rules.Rules) (types.CatalogEntry, bool) {
	codice := strings.TrimSpace(row.Get(types.ColumnCode))
	if codice == "" {
		return types.CatalogEntry{}, false
	}
	linea := strings.TrimSpace(row.Get(types.ColumnLine))
	descrizione := strings.TrimSpace(row.Get(types.ColumnDescription))
	dimensioni := strings.TrimSpace(row.Get(types.ColumnDimensions))

	return types.CatalogEntry{
		Codice:      codice,
		Descrizione: descrizione,
		Variante:    nullable(DeriveVariante(descrizione, rs)),
		Linea:       linea,
		Colore:      nullable(DeriveColore(linea)),
		Formato:     FormatDimension(dimensioni),
		Cartone:     types.CartonPlaceholder,
		Foto:        DeriveFoto(codice, linea, rs),
	}, true
}

// BuildEntries converts rows in source order and returns the number of rows
// dropped for lacking a code.
func BuildEntries(rows []source.Row, rs *rules.Rules, log *zap.Logger) ([]types.CatalogEntry, int) {
	entries := make([]types.CatalogEntry, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		entry, ok := BuildEntry(row, rs)
		if !ok {
			skipped++
			log.Debug("skipping row without code", zap.Int("row", i+1))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped
}

// SortEntries orders entries by code, comparing bytes. Entries sharing a
// code keep their source order.
func SortEntries(entries []types.CatalogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Codice < entries[j].Codice
	})
}

// EncodeJSON renders entries as an indented JSON array with a trailing
// newline. Non-ASCII text and HTML characters are written as-is.
func EncodeJSON(entries []types.CatalogEntry) ([]byte, error) {
	if entries == nil {
		entries = []types.CatalogEntry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return unescapeLineSeparators(buf.Bytes()), nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes encoding/json
// always emits back into literal characters. Escape pairs are skipped whole,
// so an escaped backslash followed by "u2028" is left alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			out = append(out, data[i])
			continue
		}
		rest := data[i:]
		switch {
		case bytes.HasPrefix(rest, []byte(`\u2028`)):
			out = append(out, "\u2028"...)
			i += 5
		case bytes.HasPrefix(rest, []byte(`\u2029`)):
			out = append(out, "\u2029"...)
			i += 5
		case i+1 < len(data):
			out = append(out, data[i], data[i+1])
			i++
		default:
			out = append(out, data[i])
		}
	}
	return out
}

// WriteJSON replaces path with data, creating the parent directory if
// needed.
func WriteJSON(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// missingAssets returns the distinct foto paths, sorted, that do not exist
// under root.
func missingAssets(entries []types.CatalogEntry, root string, log *zap.Logger) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, e := range entries {
		if seen[e.Foto] {
			continue
		}
		seen[e.Foto] = true
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(e.Foto))); err != nil {
			missing = append(missing, e.Foto)
		}
	}
	sort.Strings(missing)
	for _, foto := range missing {
		log.Warn("asset not found", zap.String("foto", foto), zap.String("root", root))
	}
	return missing
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
