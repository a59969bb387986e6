package render

import (
	"strings"

	"easywork/internal/layout"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Measurer reports string widths of the Helvetica core font. It keeps a private gofpdf
// instance for metrics and must not be shared between goroutines.
type Measurer struct {
	pdf *gofpdf.Fpdf
	enc *encoding.Encoder
}

func NewMeasurer() *Measurer {
	return &Measurer{
		pdf: newPdf(),
		enc: encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()),
	}
}

func (m *Measurer) StringWidth(font layout.Font, s string) float64 {
	if s == "" {
		return 0
	}
	m.pdf.SetFont(family, style(font), font.Size)
	return m.width(s)
}

func (m *Measurer) width(s string) float64 {
	encoded, err := m.enc.String(s)
	if err != nil {
		encoded = s
	}
	return m.pdf.GetStringWidth(encoded)
}

// SplitText wraps s on word boundaries so that no line is wider than width. Explicit
// line breaks start a new line; a word wider than width is broken between characters.
func (m *Measurer) SplitText(font layout.Font, s string, width float64) []string {
	if s == "" {
		return nil
	}
	m.pdf.SetFont(family, style(font), font.Size)

	s = strings.ReplaceAll(s, "\r\n", "\n")
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if m.width(candidate) <= width {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			line = ""
			for _, part := range m.breakWord(word, width) {
				if line != "" {
					lines = append(lines, line)
				}
				line = part
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func (m *Measurer) breakWord(word string, width float64) []string {
	if m.width(word) <= width {
		return []string{word}
	}
	var parts []string
	current := ""
	for _, r := range word {
		next := current + string(r)
		if current != "" && m.width(next) > width {
			parts = append(parts, current)
			next = string(r)
		}
		current = next
	}
	return append(parts, current)
}
