package entity

import "time"

// Organization is the issuing company profile as kept in the record store.
type Organization struct {
	Id        string    `json:"id" bson:"id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	PartyInfo `bson:",inline"`
}

type Customer struct {
	Id             string `json:"id" bson:"id"`
	OrganizationId string `json:"organization_id" bson:"organization_id"`
	PartyInfo      `bson:",inline"`
}

// DocumentRecord is a stored quote or invoice with its lines in display order.
type DocumentRecord struct {
	Id             string       `json:"id" bson:"id"`
	OrganizationId string       `json:"organization_id" bson:"organization_id"`
	CustomerId     string       `json:"customer_id,omitempty" bson:"customer_id"`
	Status         string       `json:"status" bson:"status"`
	Meta           DocumentMeta `json:"meta" bson:",inline"`
	Lines          []LineInput  `json:"lines" bson:"lines"`
	SentAt         time.Time    `json:"sent_at,omitempty" bson:"sent_at,omitempty"`
}

const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusPaid     = "paid"
)

// StoredTotals are the rounded figures persisted next to a document.
type StoredTotals struct {
	Subtotal  float64 `json:"subtotal" bson:"subtotal"`
	VatAmount float64 `json:"vat_amount" bson:"vat_amount"`
	Total     float64 `json:"total" bson:"total"`
	Cost      float64 `json:"cost" bson:"cost"`
	Profit    float64 `json:"profit" bson:"profit"`
	Margin    float64 `json:"margin" bson:"margin"`
}
