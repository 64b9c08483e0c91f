// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/catalogo/internal/convert"
	"github.com/pdiddy/catalogo/internal/rules"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "catalogo.tsv")
	dst := filepath.Join(dir, "out", "prodotti.json")
	require.NoError(t, os.WriteFile(src, []byte(
		"Codice Articolo\tLinea\tDescrizione\tDimensioni\n"+
			"B2\tSETA ORO\tSacchetto\t\n"+
			"\tFIBRA\tSenza codice\t\n"+
			"A1\tFIBRA\tCantinetta Sicura Rossa\t30x20\n"), 0o644))

	out, err := execute(t, "convert", "--source", src, "--output", dst)
	require.NoError(t, err)
	assert.Equal(t, "Wrote 2 entries to "+dst+"\n", out)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"foto": "assets/linea_SETA.svg"`)
	assert.Contains(t, string(data), `"formato": "30×20 mm"`)
}

func TestConvertCommand_MissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "missing.tsv")

	_, err := execute(t, "convert", "--source", src, "--output", filepath.Join(dir, "prodotti.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, convert.ErrSourceNotFound)
	assert.Contains(t, err.Error(), src)

	_, statErr := os.Stat(filepath.Join(dir, "prodotti.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules")
	require.NoError(t, err)

	rs, err := rules.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, rules.Default().Prefixes, rs.Prefixes)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "catalogo dev\n", out)
}
