package render

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"easywork/internal/layout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pageObject = regexp.MustCompile(`/Type /Page[^s]`)

func sample(texts ...string) *layout.Layout {
	l := &layout.Layout{}
	for i, s := range texts {
		l.Pages = append(l.Pages, &layout.Page{
			Number: i + 1,
			Elements: []layout.Element{
				{Kind: layout.KindRect, X: 15, Y: 15, W: 180, H: 8, Color: layout.Color{R: 243, G: 244, B: 246}},
				{Kind: layout.KindLine, X: 15, Y: 30, X2: 195, Y2: 30, LineWidth: 0.3},
				{Kind: layout.KindText, X: 15, Y: 40, Text: s, Font: layout.Font{Bold: true, Size: 10}},
			},
		})
	}
	return l
}

func TestRender(t *testing.T) {
	data, err := Render(sample("Tilbud til Kari Nordmann • 1 234,50 kr", "Side 2: æøå ÆØÅ"), Meta{Title: "Tilbud 42"})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Len(t, pageObject.FindAll(data, -1), 2)
}

func TestRenderDeterministic(t *testing.T) {
	meta := Meta{Title: "Faktura 7", Author: "Maler Hansen AS", Created: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)}
	first, err := Render(sample("Én", "To"), meta)
	require.NoError(t, err)
	second, err := Render(sample("Én", "To"), meta)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderUnrenderable(t *testing.T) {
	for _, s := range []string{"Pil → høyre", "Smil 🙂", "Ελληνικά"} {
		_, err := Render(sample(s), Meta{})
		assert.ErrorIs(t, err, ErrUnrenderable, s)
	}
}

func TestRenderEmptyLayout(t *testing.T) {
	_, err := Render(&layout.Layout{}, Meta{})
	assert.ErrorIs(t, err, ErrUnrenderable)
}

func TestMeasurerWidth(t *testing.T) {
	m := NewMeasurer()
	regular := layout.Font{Size: 10}

	assert.Zero(t, m.StringWidth(regular, ""))
	w := m.StringWidth(regular, "Maling av stue")
	assert.Greater(t, w, 0.0)
	assert.Greater(t, m.StringWidth(layout.Font{Size: 20}, "Maling av stue"), w)
	assert.Greater(t, m.StringWidth(layout.Font{Bold: true, Size: 10}, "Maling av stue"), w)
	// runes outside the code page are measured, not rejected
	assert.Greater(t, m.StringWidth(regular, "→"), 0.0)
}

func TestMeasurerSplitText(t *testing.T) {
	m := NewMeasurer()
	font := layout.Font{Size: 8}

	assert.Nil(t, m.SplitText(font, "", 50))
	assert.Equal(t, []string{"Kort"}, m.SplitText(font, "Kort", 50))
	assert.Equal(t, []string{"En", "", "To"}, m.SplitText(font, "En\r\n\nTo", 50))

	text := strings.Repeat("Sparkling og maling av vegger i stue ", 10)
	lines := m.SplitText(font, text, 40)
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, m.StringWidth(font, l), 40.0, l)
	}
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))

	long := strings.Repeat("x", 200)
	parts := m.SplitText(font, long, 20)
	require.Greater(t, len(parts), 1)
	assert.Equal(t, long, strings.Join(parts, ""))
}
