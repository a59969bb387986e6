package layout

import (
	"fmt"
	"strings"

	"easywork/entity"
	"easywork/internal/calc"
	"easywork/internal/format"
)

const (
	contentBottom = PageHeight - BottomMargin
	columnGap     = 15.0

	headerRowHeight = 8.0
	cellPadX        = 2.5
	cellPadY        = 2.5
	rowLineHeight   = 3.5
	rowAscent       = 2.8

	descLineHeight  = 4.0
	termsLineHeight = 3.0
	detailLine      = 3.5
)

var (
	fontTitle   = Font{Bold: true, Size: 20}
	fontIssuer  = Font{Bold: true, Size: 14}
	fontCaption = Font{Bold: true, Size: 7}
	fontName    = Font{Bold: true, Size: 10}
	fontBody    = Font{Size: 9}
	fontSmall   = Font{Size: 8}
	fontSmallB  = Font{Bold: true, Size: 8}
	fontTiny    = Font{Size: 7}
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

type column struct {
	title string
	width float64
	align align
	bold  bool
	value func(line *calc.Line) string
}

// Options configures a single Build call.
type Options struct {
	Formatter *format.Formatter
	Measurer  Measurer
	// QuoteTerms replaces the built-in default terms of quotes when set.
	QuoteTerms string
}

type builder struct {
	doc    *entity.Document
	res    *calc.Result
	f      *format.Formatter
	m      Measurer
	labels *format.Labels
	kind   format.KindLabels
	terms  string

	layout *Layout
	page   *Page
	y      float64
	cols   []column
}

// Build lays out doc with the figures in res. The document reads top to bottom as
// header, parties, optional description, line table, totals, optional terms; every page
// gets a footer and a page number.
func Build(doc *entity.Document, res *calc.Result, opts Options) (*Layout, error) {
	if doc == nil || res == nil {
		return nil, fmt.Errorf("%w: nothing to lay out", ErrLayout)
	}
	if opts.Formatter == nil || opts.Measurer == nil {
		return nil, fmt.Errorf("%w: formatter and measurer are required", ErrLayout)
	}
	labels := opts.Formatter.Labels()
	b := &builder{
		doc:    doc,
		res:    res,
		f:      opts.Formatter,
		m:      opts.Measurer,
		labels: labels,
		kind:   labels.Kind(doc.Kind),
		terms:  opts.QuoteTerms,
		layout: &Layout{},
	}
	if b.terms == "" {
		b.terms = labels.DefaultQuoteTerms
	}
	b.cols = b.columns()

	b.newPage()
	b.header()
	b.parties()
	b.description()
	b.table()
	b.totals()
	b.termsBlock()
	b.footers()
	return b.layout, nil
}

func (b *builder) newPage() {
	b.page = &Page{Number: len(b.layout.Pages) + 1}
	b.layout.Pages = append(b.layout.Pages, b.page)
	b.y = Margin
}

func (b *builder) text(role Role, x, y float64, s string, font Font, color Color, a align) {
	if s == "" {
		return
	}
	switch a {
	case alignRight:
		x -= b.m.StringWidth(font, s)
	case alignCenter:
		x -= b.m.StringWidth(font, s) / 2
	}
	b.page.Elements = append(b.page.Elements, Element{
		Kind: KindText, Role: role, Row: -1, X: x, Y: y, Text: s, Font: font, Color: color,
	})
}

func (b *builder) line(role Role, x1, y1, x2, y2 float64, color Color, width float64) {
	b.page.Elements = append(b.page.Elements, Element{
		Kind: KindLine, Role: role, Row: -1, X: x1, Y: y1, X2: x2, Y2: y2, Color: color, LineWidth: width,
	})
}

func (b *builder) rect(role Role, x, y, w, h float64, color Color) {
	b.page.Elements = append(b.page.Elements, Element{
		Kind: KindRect, Role: role, Row: -1, X: x, Y: y, W: w, H: h, Color: color,
	})
}

func (b *builder) header() {
	issuer := &b.doc.Issuer
	right := PageWidth - Margin

	b.text(RoleHeader, Margin, b.y+5, b.f.Text(issuer.Name), fontIssuer, colorDark, alignLeft)
	b.text(RoleHeader, right, b.y+5, b.kind.Title, fontTitle, colorDark, alignRight)
	b.y += 10

	var parts []string
	if s := strings.TrimSpace(issuer.Address); s != "" {
		parts = append(parts, s)
	}
	if s := issuer.PostalLine(); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(issuer.OrgNumber); s != "" {
		parts = append(parts, b.labels.OrgNumber+": "+s)
	}
	b.text(RoleHeader, Margin, b.y, strings.Join(parts, " • "), fontSmall, colorMuted, alignLeft)
	ref := fmt.Sprintf("#%d • %s", b.doc.Meta.Number, b.f.Date(b.doc.Meta.CreatedAt.Time))
	b.text(RoleHeader, right, b.y, ref, fontSmall, colorMuted, alignRight)
	b.y += 5

	b.line(RoleHeader, Margin, b.y, right, b.y, colorBorder, 0.3)
	b.y += 8
}

func (b *builder) parties() {
	colWidth := (ContentWidth - columnGap) / 2
	col2 := Margin + colWidth + columnGap
	top := b.y

	b.text(RoleParties, Margin, top, b.kind.Recipient, fontCaption, colorMuted, alignLeft)
	left := top + 5
	if cp := b.doc.Counterparty; cp != nil {
		b.text(RoleParties, Margin, left, b.f.Text(cp.Name), fontName, colorText, alignLeft)
		left += 4.5
		var details []string
		details = append(details, strings.TrimSpace(cp.Address), cp.PostalLine())
		if cp.CountryCode() != b.doc.Issuer.CountryCode() || cp.CountryCode() == "" {
			details = append(details, strings.TrimSpace(cp.CountryName()))
		}
		if s := strings.TrimSpace(cp.OrgNumber); s != "" {
			details = append(details, b.labels.OrgNumber+": "+s)
		}
		for _, d := range details {
			if d == "" {
				continue
			}
			for _, l := range b.m.SplitText(fontSmall, d, colWidth) {
				b.text(RoleParties, Margin, left, l, fontSmall, colorMuted, alignLeft)
				left += detailLine
			}
		}
	} else {
		b.text(RoleParties, Margin, left, b.labels.NoCustomer, fontBody, colorMuted, alignLeft)
		left += 4
	}

	b.text(RoleParties, col2, top, b.labels.Details, fontCaption, colorMuted, alignLeft)
	right := top + 5
	rows := [][2]string{
		{b.kind.DueDate, b.f.Date(b.doc.Meta.DueDate.Time)},
		{b.labels.Contact, b.f.Text(b.doc.Meta.ContactName)},
		{b.labels.Email, b.f.Text(b.doc.Issuer.Email)},
		{b.labels.Phone, b.f.Text(b.doc.Issuer.Phone)},
	}
	for _, r := range rows {
		b.text(RoleParties, col2, right, r[0], fontSmall, colorMuted, alignLeft)
		b.text(RoleParties, col2+25, right, r[1], fontSmall, colorText, alignLeft)
		right += detailLine
	}

	b.y = max(left, right) + 6
}

func (b *builder) description() {
	desc := strings.TrimSpace(b.doc.Meta.Description)
	if desc == "" {
		return
	}
	lines := b.m.SplitText(fontBody, desc, ContentWidth)
	if b.y+descLineHeight*2 > contentBottom {
		b.newPage()
	}
	b.text(RoleDescription, Margin, b.y, b.labels.Description, fontCaption, colorMuted, alignLeft)
	b.y += descLineHeight + 1
	for _, l := range lines {
		if b.y > contentBottom {
			b.newPage()
		}
		b.text(RoleDescription, Margin, b.y, l, fontBody, colorText, alignLeft)
		b.y += descLineHeight
	}
	b.y += 5
}

func (b *builder) columns() []column {
	f := b.f
	cols := []column{
		{title: b.labels.ColDescription, align: alignLeft},
		{title: b.labels.ColQuantity, width: 14, align: alignCenter, value: func(l *calc.Line) string {
			return f.Quantity(l.Item.Quantity)
		}},
		{title: b.labels.ColUnit, width: 14, align: alignCenter, value: func(l *calc.Line) string {
			return l.Item.UnitName
		}},
		{title: b.labels.ColPrice, width: 25, align: alignRight, value: func(l *calc.Line) string {
			return f.Money(l.Item.UnitPrice)
		}},
		{title: b.labels.ColVat, width: 14, align: alignCenter, value: func(l *calc.Line) string {
			return f.Percent(l.Item.VatRate)
		}},
	}
	if b.doc.Kind == entity.KindInvoice {
		cols = append(cols,
			column{title: b.labels.ColSum, width: 24, align: alignRight, value: func(l *calc.Line) string {
				return f.Money(l.Subtotal)
			}},
			column{title: b.labels.ColDue, width: 28, align: alignRight, bold: true, value: func(l *calc.Line) string {
				return f.Money(l.Total)
			}},
		)
	} else {
		cols = append(cols, column{title: b.labels.ColSum, width: 28, align: alignRight, bold: true, value: func(l *calc.Line) string {
			return f.Money(l.Subtotal)
		}})
	}
	fixed := 0.0
	for _, c := range cols[1:] {
		fixed += c.width
	}
	cols[0].width = ContentWidth - fixed
	return cols
}

// cellX returns the anchor of a cell's text for its alignment.
func cellX(left float64, c column) float64 {
	switch c.align {
	case alignRight:
		return left + c.width - cellPadX
	case alignCenter:
		return left + c.width/2
	}
	return left + cellPadX
}

func (b *builder) tableHeader() {
	b.rect(RoleTableHeader, Margin, b.y, ContentWidth, headerRowHeight, colorHead)
	x := Margin
	for _, c := range b.cols {
		b.text(RoleTableHeader, cellX(x, c), b.y+5.3, c.title, fontCaption, colorMuted, c.align)
		x += c.width
	}
	b.y += headerRowHeight
}

func (b *builder) wrapDescription(s string) []string {
	lines := b.m.SplitText(fontSmall, strings.TrimSpace(s), b.cols[0].width-2*cellPadX)
	if len(lines) == 0 {
		return []string{"-"}
	}
	return lines
}

func rowHeight(lines int) float64 {
	return cellPadY*2 + float64(lines)*rowLineHeight
}

// table places the line table. The header is repeated on every page the table spans
// and is never left at the bottom of a page without a row under it. A row taller than a
// whole page is continued on the next pages; its numbers stay on the first part.
func (b *builder) table() {
	available := contentBottom - Margin - headerRowHeight

	first := rowHeight(1)
	if len(b.res.Lines) > 0 {
		first = rowHeight(len(b.wrapDescription(b.res.Lines[0].Item.Description)))
	}
	if first > available {
		first = rowHeight(1)
	}
	if b.y+headerRowHeight+first > contentBottom {
		b.newPage()
	}
	b.tableHeader()

	if len(b.res.Lines) == 0 {
		b.row(-1, []string{"-"}, nil, 0)
		return
	}
	for i := range b.res.Lines {
		line := &b.res.Lines[i]
		desc := b.wrapDescription(line.Item.Description)
		h := rowHeight(len(desc))
		if h > available {
			b.splitRow(line.Index, desc, line, i)
			continue
		}
		if b.y+h > contentBottom {
			b.newPage()
			b.tableHeader()
		}
		b.row(line.Index, desc, line, i)
	}
}

// splitRow places as many description lines as fit, then breaks the page.
func (b *builder) splitRow(index int, desc []string, line *calc.Line, stripe int) {
	for len(desc) > 0 {
		n := int((contentBottom - b.y - 2*cellPadY) / rowLineHeight)
		if n < 1 {
			b.newPage()
			b.tableHeader()
			continue
		}
		if n > len(desc) {
			n = len(desc)
		}
		b.row(index, desc[:n], line, stripe)
		desc = desc[n:]
		line = nil
	}
}

func (b *builder) row(index int, desc []string, line *calc.Line, stripe int) {
	h := rowHeight(len(desc))
	start := len(b.page.Elements)
	if stripe%2 == 1 {
		b.rect(RoleTableRow, Margin, b.y, ContentWidth, h, colorStripe)
	}
	base := b.y + cellPadY + rowAscent
	for i, l := range desc {
		b.text(RoleTableRow, Margin+cellPadX, base+float64(i)*rowLineHeight, l, fontSmall, colorText, alignLeft)
	}
	if line != nil {
		x := Margin + b.cols[0].width
		for _, c := range b.cols[1:] {
			font := fontSmall
			if c.bold {
				font = fontSmallB
			}
			b.text(RoleTableRow, cellX(x, c), base, c.value(line), font, colorText, c.align)
			x += c.width
		}
	}
	b.y += h
	b.line(RoleTableRow, Margin, b.y, PageWidth-Margin, b.y, colorBorder, 0.1)
	for i := start; i < len(b.page.Elements); i++ {
		b.page.Elements[i].Row = index
	}
}

func (b *builder) totals() {
	b.y += 8
	if b.y+TotalsHeight > contentBottom {
		b.newPage()
	}
	totals := b.res.Totals.Rounded()
	x := PageWidth - Margin - TotalsWidth
	labelX := x + 5
	valueX := x + TotalsWidth - 5

	b.rect(RoleTotals, x, b.y, TotalsWidth, TotalsHeight, colorPanel)
	y := b.y + 8
	b.text(RoleTotals, labelX, y, b.labels.Subtotal, fontSmall, colorMuted, alignLeft)
	b.text(RoleTotals, valueX, y, b.f.Money(totals.Subtotal), fontSmall, colorText, alignRight)
	y += 6
	b.text(RoleTotals, labelX, y, b.labels.Vat, fontSmall, colorMuted, alignLeft)
	b.text(RoleTotals, valueX, y, b.f.Money(totals.VatAmount), fontSmall, colorText, alignRight)
	y += 4
	b.line(RoleTotals, labelX, y, valueX, y, colorDivider, 0.2)
	y += 7
	b.text(RoleTotals, labelX, y, b.kind.Total, fontName, colorDark, alignLeft)
	b.text(RoleTotals, valueX, y, b.f.Money(totals.Total), fontName, colorDark, alignRight)

	if b.doc.Kind == entity.KindInvoice {
		b.payment()
	}
	b.y += TotalsHeight + 10
}

func (b *builder) payment() {
	y := b.y + 8
	b.text(RolePayment, Margin, y, b.labels.PaymentInfo, fontCaption, colorMuted, alignLeft)
	y += 6
	account := strings.TrimSpace(b.doc.Issuer.BankAccount)
	if account == "" {
		account = b.labels.NoAccount
	}
	b.text(RolePayment, Margin, y, b.labels.Account, fontSmall, colorMuted, alignLeft)
	b.text(RolePayment, Margin+25, y, account, fontSmallB, colorText, alignLeft)
	if ref := strings.TrimSpace(b.doc.Meta.PaymentReference); ref != "" {
		y += 5
		b.text(RolePayment, Margin, y, b.labels.Reference, fontSmall, colorMuted, alignLeft)
		b.text(RolePayment, Margin+25, y, ref, fontSmallB, colorText, alignLeft)
	}
}

func (b *builder) termsText() string {
	meta := &b.doc.Meta
	if s := strings.TrimSpace(meta.Terms); s != "" {
		return s
	}
	if s := strings.TrimSpace(meta.Notes); s != "" {
		return s
	}
	if b.doc.Kind == entity.KindQuote {
		return b.terms
	}
	return ""
}

// termsBlock is printed whole or not at all. It starts only above TermsReserve and
// must end inside the content area of the current page.
func (b *builder) termsBlock() {
	text := b.termsText()
	if text == "" || b.y >= PageHeight-TermsReserve {
		return
	}
	lines := b.m.SplitText(fontTiny, text, ContentWidth)
	if b.y+4+float64(len(lines))*termsLineHeight > contentBottom {
		return
	}
	b.text(RoleTerms, Margin, b.y, b.labels.Terms, fontCaption, colorMuted, alignLeft)
	b.y += 4
	for _, l := range lines {
		b.text(RoleTerms, Margin, b.y, l, fontTiny, colorMuted, alignLeft)
		b.y += termsLineHeight
	}
}

func (b *builder) footers() {
	issuer := &b.doc.Issuer
	var parts []string
	for _, s := range []string{issuer.Name, issuer.Email, issuer.Phone} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	footer := strings.Join(parts, "  •  ")
	for _, p := range b.layout.Pages {
		b.page = p
		b.line(RoleFooter, Margin, PageHeight-14, PageWidth-Margin, PageHeight-14, colorBorder, 0.2)
		b.text(RoleFooter, PageWidth/2, PageHeight-10, footer, fontTiny, colorMuted, alignCenter)
		b.text(RolePageNumber, PageWidth/2, PageHeight-6, fmt.Sprintf("%s %d", b.labels.Page, p.Number), fontTiny, colorMuted, alignCenter)
	}
}
