package entity

import (
	"strings"

	"github.com/biter777/countries"
)

// PartyInfo describes the issuer or the counterparty of a document.
type PartyInfo struct {
	Name        string `json:"name" bson:"name" validate:"required"`
	Address     string `json:"address,omitempty" bson:"address"`
	PostalCode  string `json:"postal_code,omitempty" bson:"postal_code"`
	City        string `json:"city,omitempty" bson:"city"`
	Country     string `json:"country,omitempty" bson:"country"`
	OrgNumber   string `json:"org_number,omitempty" bson:"org_number"`
	Email       string `json:"email,omitempty" bson:"email" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty" bson:"phone"`
	BankAccount string `json:"bank_account,omitempty" bson:"bank_account"`
}

// PostalLine joins postal code and city, empty when both are missing.
func (p *PartyInfo) PostalLine() string {
	return strings.TrimSpace(strings.TrimSpace(p.PostalCode) + " " + strings.TrimSpace(p.City))
}

func (p *PartyInfo) CountryCode() string {
	if p.Country == "" {
		return ""
	}
	country := countries.ByName(p.Country)
	if country == countries.Unknown {
		return ""
	}
	return country.Alpha2()
}

// CountryName returns the English country name, or the raw value when it is not a known country.
func (p *PartyInfo) CountryName() string {
	if p.Country == "" {
		return ""
	}
	country := countries.ByName(p.Country)
	if country == countries.Unknown {
		return p.Country
	}
	return country.String()
}
