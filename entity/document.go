package entity

import (
	"fmt"
	"net/http"
	"strings"

	"easywork/lib/validate"
)

type DocumentKind string

const (
	KindQuote   DocumentKind = "quote"
	KindInvoice DocumentKind = "invoice"
)

func ParseDocumentKind(s string) (DocumentKind, error) {
	switch DocumentKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindQuote:
		return KindQuote, nil
	case KindInvoice:
		return KindInvoice, nil
	}
	return "", fmt.Errorf("unknown document kind: %q", s)
}

// DocumentMeta carries the caller-assigned identity and free text of a document.
// DueDate is "valid until" for quotes and the payment due date for invoices.
type DocumentMeta struct {
	Number           int64  `json:"number" bson:"number" validate:"gte=0"`
	CreatedAt        Date   `json:"created_at" bson:"created_at"`
	DueDate          Date   `json:"due_date" bson:"due_date"`
	Title            string `json:"title,omitempty" bson:"title"`
	Description      string `json:"description,omitempty" bson:"description"`
	Terms            string `json:"terms,omitempty" bson:"terms"`
	Notes            string `json:"notes,omitempty" bson:"notes"`
	PaymentReference string `json:"payment_reference,omitempty" bson:"payment_reference"`
	ContactName      string `json:"contact_name,omitempty" bson:"contact_name"`
}

// Document is the complete input of one render call.
type Document struct {
	Kind         DocumentKind
	Meta         DocumentMeta
	Issuer       PartyInfo
	Counterparty *PartyInfo
	Items        []LineItem
}

// DocumentRequest is the body of an ad-hoc render request.
type DocumentRequest struct {
	Kind           DocumentKind `json:"kind" validate:"required,oneof=quote invoice"`
	Meta           DocumentMeta `json:"meta"`
	Issuer         PartyInfo    `json:"issuer" validate:"required"`
	Counterparty   *PartyInfo   `json:"counterparty,omitempty" validate:"omitempty"`
	Lines          []LineInput  `json:"lines"`
	DefaultVatRate Number       `json:"default_vat_rate"`
}

func (d *DocumentRequest) Bind(_ *http.Request) error {
	if d.Kind == "" {
		d.Kind = KindQuote
	}
	return validate.Struct(d)
}

// Document resolves line defaults; the request's own default VAT rate wins over defaultVat.
func (d *DocumentRequest) Document(defaultVat Number) *Document {
	if d.DefaultVatRate.Valid {
		defaultVat = d.DefaultVatRate
	}
	return &Document{
		Kind:         d.Kind,
		Meta:         d.Meta,
		Issuer:       d.Issuer,
		Counterparty: d.Counterparty,
		Items:        LineItems(d.Lines, defaultVat),
	}
}

// LinesRequest is the body of an on-screen totals preview.
type LinesRequest struct {
	Lines          []LineInput `json:"lines"`
	DefaultVatRate Number      `json:"default_vat_rate"`
}

func (l *LinesRequest) Bind(_ *http.Request) error {
	return validate.Struct(l)
}
