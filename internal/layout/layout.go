// Package layout places the blocks of a quote or invoice on A4 pages.
//
// The result is a list of positioned primitives (text, lines, filled rectangles) per page.
// It does not depend on any PDF library; render turns it into bytes and supplies the Measurer.
package layout

import (
	"errors"
	"strings"
)

// Page geometry in millimetres.
const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	Margin       = 15.0
	BottomMargin = 20.0
	ContentWidth = PageWidth - 2*Margin

	// TotalsHeight is the vertical space reserved for the totals panel.
	TotalsHeight = 32.0
	TotalsWidth  = 70.0
	// TermsReserve is the minimum distance from the page bottom at which terms still start.
	TermsReserve = 40.0
)

// ErrLayout is returned when Build is called without a document or its collaborators.
var ErrLayout = errors.New("layout")

type Font struct {
	Bold bool
	Size float64
}

type Color struct {
	R, G, B int
}

var (
	colorDark    = Color{17, 24, 39}
	colorText    = Color{31, 41, 55}
	colorMuted   = Color{107, 114, 128}
	colorPanel   = Color{249, 250, 251}
	colorBorder  = Color{229, 231, 235}
	colorHead    = Color{243, 244, 246}
	colorStripe  = Color{252, 252, 253}
	colorDivider = Color{209, 213, 219}
)

// Measurer provides font metrics. Implementations need not be safe for concurrent use.
type Measurer interface {
	StringWidth(font Font, s string) float64
	// SplitText wraps s to width, honouring explicit line breaks. Empty s yields no lines.
	SplitText(font Font, s string, width float64) []string
}

type ElementKind int

const (
	KindText ElementKind = iota
	KindLine
	KindRect
)

// Role tags an element with the block it belongs to.
type Role string

const (
	RoleHeader      Role = "header"
	RoleParties     Role = "parties"
	RoleDescription Role = "description"
	RoleTableHeader Role = "table_header"
	RoleTableRow    Role = "table_row"
	RoleTotals      Role = "totals"
	RolePayment     Role = "payment"
	RoleTerms       Role = "terms"
	RoleFooter      Role = "footer"
	RolePageNumber  Role = "page_number"
)

// Element is one drawing primitive. Text is placed with its left edge at X and baseline at Y.
// Lines run from (X, Y) to (X2, Y2); rectangles are filled from (X, Y) with size W x H.
type Element struct {
	Kind      ElementKind
	Role      Role
	Row       int
	X, Y      float64
	X2, Y2    float64
	W, H      float64
	Text      string
	Font      Font
	Color     Color
	LineWidth float64
}

type Page struct {
	Number   int
	Elements []Element
}

// Texts returns the text of every element with the given role, in drawing order.
func (p *Page) Texts(role Role) []string {
	var out []string
	for _, e := range p.Elements {
		if e.Kind == KindText && e.Role == role {
			out = append(out, e.Text)
		}
	}
	return out
}

type Layout struct {
	Pages []*Page
}

func (l *Layout) PageCount() int {
	return len(l.Pages)
}

// Text joins every text element of the document, one per line.
func (l *Layout) Text() string {
	var sb strings.Builder
	for _, p := range l.Pages {
		for _, e := range p.Elements {
			if e.Kind == KindText {
				sb.WriteString(e.Text)
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
