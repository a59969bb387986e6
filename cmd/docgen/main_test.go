package main

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"easywork/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const input = `{
  "kind": "quote",
  "meta": {"number": 42, "title": "Maling av stue!!", "created_at": "2026-10-16", "due_date": "2026-11-15"},
  "issuer": {"name": "Maler Hansen AS", "email": "post@malerhansen.no"},
  "counterparty": {"name": "Kari Nordmann"},
  "lines": [
    {"description": "Maling", "quantity": 2, "unit_price": 100, "cost_price": 40},
    {"description": "", "unit_price": 500},
    {"description": "Bok", "unit_price": "200", "vat_rate": 15}
  ]
}`

func settings(dir string) config.Document {
	return config.Document{Locale: "en", Currency: "NOK", CurrencySymbol: "kr", DefaultVatRate: 25, OutputDir: dir}
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quote.json")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))
	return path
}

func TestRunWritesFile(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	require.NoError(t, run(writeInput(t), settings(dir), false, false, &out))

	path := strings.TrimSpace(out.String())
	assert.Equal(t, filepath.Join(dir, "Quote-42-Maling_av_stue.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRunBase64MatchesFile(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t)

	var out bytes.Buffer
	require.NoError(t, run(in, settings(dir), true, false, &out))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(out.String()))
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, run(in, settings(dir), false, false, &out))
	data, err := os.ReadFile(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestRunTotals(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(writeInput(t), settings(t.TempDir()), false, true, &out))

	text := out.String()
	assert.Contains(t, text, "400.00 kr")
	assert.Contains(t, text, "80.00 kr")
	assert.Contains(t, text, "480.00 kr")
	assert.Contains(t, text, "80.0 %")
	assert.NotContains(t, text, "500")
}

func TestRunInvalidInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kind":"order","issuer":{"name":"X"}}`), 0o644))

	assert.Error(t, run(path, settings(t.TempDir()), false, false, &bytes.Buffer{}))
	assert.Error(t, run(filepath.Join(t.TempDir(), "missing.json"), settings(t.TempDir()), false, false, &bytes.Buffer{}))
}
