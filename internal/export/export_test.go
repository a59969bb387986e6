package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"easywork/entity"
	"easywork/internal/format"
	"easywork/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pageObject = regexp.MustCompile(`/Type /Page[^s]`)

func document(n int) *entity.Document {
	inputs := make([]entity.LineInput, 0, n)
	for i := 0; i < n; i++ {
		inputs = append(inputs, entity.LineInput{
			Description: fmt.Sprintf("Maling av vegg %d, to strøk", i+1),
			Quantity:    entity.NumberFromString("2,5"),
			UnitName:    "m2",
			UnitPrice:   entity.NewNumber(349.9),
			CostPrice:   entity.NewNumber(120),
		})
	}
	return &entity.Document{
		Kind: entity.KindQuote,
		Meta: entity.DocumentMeta{
			Number:    42,
			Title:     "Maling av stue!!",
			CreatedAt: entity.NewDate(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)),
		},
		Issuer:       entity.PartyInfo{Name: "Maler Hansen AS", Email: "post@malerhansen.no"},
		Counterparty: &entity.PartyInfo{Name: "Kari Nordmann"},
		Items:        entity.LineItems(inputs, entity.Number{}),
	}
}

func exporter() *Exporter {
	return New(format.MustNew("nb-NO", "NOK", "kr"), "")
}

func TestFileName(t *testing.T) {
	nb := format.MustNew("nb-NO", "NOK", "kr").Labels()
	en := format.MustNew("en", "NOK", "kr").Labels()

	cases := []struct {
		kind   entity.DocumentKind
		number int64
		title  string
		labels *format.Labels
		want   string
	}{
		{entity.KindQuote, 42, "Maling av stue!!", nb, "Tilbud-42-Maling_av_stue.pdf"},
		{entity.KindQuote, 7, "Bad/Name:Test?", nb, "Tilbud-7-BadNameTest.pdf"},
		{entity.KindInvoice, 3, "  Bad   og   Kjøkken  ", nb, "Faktura-3-Bad_og_Kjøkken.pdf"},
		{entity.KindInvoice, 3, "", nb, "Faktura-3-faktura.pdf"},
		{entity.KindQuote, 42, "!!!", nb, "Tilbud-42-tilbud.pdf"},
		{entity.KindQuote, 2, "", en, "Quote-2-quote.pdf"},
		{entity.KindQuote, 1, "Garage door", en, "Quote-1-Garage_door.pdf"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FileName(c.kind, c.number, c.title, c.labels))
	}
}

func TestExport(t *testing.T) {
	a, err := exporter().Export(document(3))
	require.NoError(t, err)

	assert.Equal(t, "Tilbud-42-Maling_av_stue.pdf", a.FileName)
	assert.True(t, bytes.HasPrefix(a.Data, []byte("%PDF-")))
	assert.Len(t, pageObject.FindAll(a.Data, -1), 1)
}

func TestExportIdempotent(t *testing.T) {
	e := exporter()
	first, err := e.Export(document(40))
	require.NoError(t, err)
	second, err := e.Export(document(40))
	require.NoError(t, err)

	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, first.Base64(), second.Base64())
}

func TestExportBase64MatchesBytes(t *testing.T) {
	a, err := exporter().Export(document(2))
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(a.Base64())
	require.NoError(t, err)
	assert.Equal(t, a.Data, decoded)

	var buf bytes.Buffer
	n, err := a.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(a.Data)), n)
	assert.Equal(t, a.Data, buf.Bytes())
}

func TestExportPaginates(t *testing.T) {
	a, err := exporter().Export(document(70))
	require.NoError(t, err)

	assert.Greater(t, len(pageObject.FindAll(a.Data, -1)), 1)
}

func TestExportConcurrent(t *testing.T) {
	e := exporter()
	want, err := e.Export(document(25))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := e.Export(document(25))
			if err == nil {
				results[i] = a.Data
			}
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want.Data, got)
	}
}

func TestExportUnrenderable(t *testing.T) {
	doc := document(1)
	doc.Items[0].Description = "Pil → høyre"

	_, err := exporter().Export(doc)
	assert.ErrorIs(t, err, ErrRender)
	assert.ErrorIs(t, err, render.ErrUnrenderable)
}

func TestExportLongDescription(t *testing.T) {
	doc := document(3)
	doc.Items[1].Description = strings.Repeat("Sparkling, sliping og maling av alle vegger og tak i stue og gang. ", 90)

	a, err := exporter().Export(doc)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(pageObject.FindAll(a.Data, -1)), 2)
}

func TestSave(t *testing.T) {
	a := &Artifact{FileName: "Tilbud-1.pdf", Data: []byte("%PDF-1.3")}
	dir := filepath.Join(t.TempDir(), "out")

	path, err := a.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Tilbud-1.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, a.Data, data)
}
