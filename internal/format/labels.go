package format

import "easywork/entity"

// KindLabels are the texts that differ between quotes and invoices.
type KindLabels struct {
	Title      string
	FilePrefix string
	Noun       string
	Recipient  string
	DueDate    string
	Total      string
	Subject    string
}

// Labels are the fixed texts printed on documents and used in outgoing mail.
type Labels struct {
	Quote   KindLabels
	Invoice KindLabels
	Months  [12]string

	Details     string
	Description string
	Terms       string
	NoCustomer  string
	Contact     string
	Email       string
	Phone       string
	OrgNumber   string
	Page        string

	ColDescription string
	ColQuantity    string
	ColUnit        string
	ColPrice       string
	ColVat         string
	ColSum         string
	ColDue         string

	Subtotal string
	Vat      string

	PaymentInfo string
	Account     string
	Reference   string
	NoAccount   string

	DefaultQuoteTerms string
	MailGreeting      string
	MailAttached      string
	MailQuestions     string
	MailRegards       string
	MailFooter        string
	Us                string
}

func (l *Labels) Kind(kind entity.DocumentKind) KindLabels {
	if kind == entity.KindInvoice {
		return l.Invoice
	}
	return l.Quote
}

var norwegian = Labels{
	Quote: KindLabels{
		Title:      "TILBUD",
		FilePrefix: "Tilbud",
		Noun:       "tilbud",
		Recipient:  "TILBUD TIL",
		DueDate:    "Gyldig til:",
		Total:      "Totalt",
		Subject:    "Tilbud fra %s",
	},
	Invoice: KindLabels{
		Title:      "FAKTURA",
		FilePrefix: "Faktura",
		Noun:       "faktura",
		Recipient:  "FAKTURERES TIL",
		DueDate:    "Forfall:",
		Total:      "Å betale",
		Subject:    "Faktura fra %s",
	},
	Months: [12]string{"jan.", "feb.", "mar.", "apr.", "mai", "jun.", "jul.", "aug.", "sep.", "okt.", "nov.", "des."},

	Details:     "DETALJER",
	Description: "BESKRIVELSE",
	Terms:       "VILKÅR",
	NoCustomer:  "Ingen kunde valgt",
	Contact:     "Kontakt:",
	Email:       "E-post:",
	Phone:       "Tlf:",
	OrgNumber:   "Org.nr",
	Page:        "Side",

	ColDescription: "Beskrivelse",
	ColQuantity:    "Ant.",
	ColUnit:        "Enhet",
	ColPrice:       "Pris",
	ColVat:         "MVA",
	ColSum:         "Sum",
	ColDue:         "Å betale",

	Subtotal: "Sum eks. mva",
	Vat:      "MVA",

	PaymentInfo: "BETALINGSINFORMASJON",
	Account:     "Kontonummer:",
	Reference:   "KID:",
	NoAccount:   "[Sett opp i innstillinger]",

	DefaultQuoteTerms: "Tilbudet er gyldig i 30 dager. Betaling: 14 dager netto.",
	MailGreeting:      "Hei,",
	MailAttached:      "Vedlagt finner du %s #%d fra %s.",
	MailQuestions:     "Ta gjerne kontakt om du har spørsmål.",
	MailRegards:       "Med vennlig hilsen,",
	MailFooter:        "Denne e-posten ble sendt fra %s. Vedlagt finner du dokumentet som PDF.",
	Us:                "oss",
}

var english = Labels{
	Quote: KindLabels{
		Title:      "QUOTE",
		FilePrefix: "Quote",
		Noun:       "quote",
		Recipient:  "QUOTE TO",
		DueDate:    "Valid until:",
		Total:      "Total",
		Subject:    "Quote from %s",
	},
	Invoice: KindLabels{
		Title:      "INVOICE",
		FilePrefix: "Invoice",
		Noun:       "invoice",
		Recipient:  "BILL TO",
		DueDate:    "Due date:",
		Total:      "Amount due",
		Subject:    "Invoice from %s",
	},
	Months: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},

	Details:     "DETAILS",
	Description: "DESCRIPTION",
	Terms:       "TERMS",
	NoCustomer:  "No customer selected",
	Contact:     "Contact:",
	Email:       "E-mail:",
	Phone:       "Phone:",
	OrgNumber:   "Reg. no",
	Page:        "Page",

	ColDescription: "Description",
	ColQuantity:    "Qty",
	ColUnit:        "Unit",
	ColPrice:       "Price",
	ColVat:         "VAT",
	ColSum:         "Sum",
	ColDue:         "Due",

	Subtotal: "Subtotal excl. VAT",
	Vat:      "VAT",

	PaymentInfo: "PAYMENT DETAILS",
	Account:     "Account:",
	Reference:   "Reference:",
	NoAccount:   "-",

	DefaultQuoteTerms: "This quote is valid for 30 days. Payment: 14 days net.",
	MailGreeting:      "Hi,",
	MailAttached:      "Please find attached %s #%d from %s.",
	MailQuestions:     "Do not hesitate to contact us if you have any questions.",
	MailRegards:       "Kind regards,",
	MailFooter:        "This e-mail was sent from %s. The document is attached as PDF.",
	Us:                "us",
}

func labelsFor(lang string) *Labels {
	switch lang {
	case "nb", "nn", "no":
		l := norwegian
		return &l
	}
	l := english
	return &l
}
