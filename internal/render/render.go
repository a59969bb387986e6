// Package render draws a layout into PDF bytes with gofpdf.
//
// Text uses the Helvetica core font, which covers Windows-1252. Anything outside that
// code page fails the render with ErrUnrenderable instead of printing placeholders.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"easywork/internal/layout"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"
)

const family = "Helvetica"

var ErrUnrenderable = errors.New("text cannot be rendered")

// Meta is written to the PDF information dictionary. Created also fixes the PDF
// timestamps, so equal input gives equal bytes.
type Meta struct {
	Title   string
	Author  string
	Creator string
	Created time.Time
}

func newPdf() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(family, "", 10)
	return pdf
}

func style(font layout.Font) string {
	if font.Bold {
		return "B"
	}
	return ""
}

// Render draws every page of l and returns the finished document.
func Render(l *layout.Layout, meta Meta) ([]byte, error) {
	if l == nil || len(l.Pages) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrUnrenderable)
	}
	pdf := newPdf()
	stamp := meta.Created
	if stamp.IsZero() {
		stamp = time.Unix(0, 0)
	}
	pdf.SetCreationDate(stamp.UTC())
	pdf.SetModificationDate(stamp.UTC())
	pdf.SetCatalogSort(true)
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.SetCreator(meta.Creator, true)

	enc := charmap.Windows1252.NewEncoder()
	for _, page := range l.Pages {
		pdf.AddPage()
		for _, e := range page.Elements {
			switch e.Kind {
			case layout.KindRect:
				pdf.SetFillColor(e.Color.R, e.Color.G, e.Color.B)
				pdf.Rect(e.X, e.Y, e.W, e.H, "F")
			case layout.KindLine:
				pdf.SetDrawColor(e.Color.R, e.Color.G, e.Color.B)
				pdf.SetLineWidth(e.LineWidth)
				pdf.Line(e.X, e.Y, e.X2, e.Y2)
			case layout.KindText:
				s, err := enc.String(e.Text)
				if err != nil {
					return nil, fmt.Errorf("%w: page %d: %q", ErrUnrenderable, page.Number, e.Text)
				}
				pdf.SetFont(family, style(e.Font), e.Font.Size)
				pdf.SetTextColor(e.Color.R, e.Color.G, e.Color.B)
				pdf.Text(e.X, e.Y, s)
			}
		}
	}
	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrUnrenderable, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	return buf.Bytes(), nil
}
