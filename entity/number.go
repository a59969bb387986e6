package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Number is a numeric field as it arrives from forms and stored records.
// Absent, null and non-numeric values decode without error and leave Valid false,
// so callers decide the fallback with Or.
type Number struct {
	Value decimal.Decimal
	Valid bool
}

func NewNumber(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{Value: decimal.NewFromFloat(v), Valid: true}
}

func NumberFromString(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}
	}
	// decimal comma is what users type in nb-NO forms
	s = strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}
	}
	return Number{Value: d, Valid: true}
}

func NumberFromDecimal(d decimal.Decimal) Number {
	return Number{Value: d, Valid: true}
}

// Or returns the value, or def when the number is absent or was not numeric.
func (n Number) Or(def decimal.Decimal) decimal.Decimal {
	if !n.Valid {
		return def
	}
	return n.Value
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = Number{}
			return nil
		}
		*n = NumberFromString(s)
		return nil
	}
	*n = NumberFromString(string(b))
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(n.Value.String()), nil
}

func (n *Number) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	*n = Number{}
	switch t {
	case bsontype.Double:
		if v, ok := raw.DoubleOK(); ok {
			*n = NewNumber(v)
		}
	case bsontype.Int32:
		if v, ok := raw.Int32OK(); ok {
			*n = NumberFromDecimal(decimal.NewFromInt32(v))
		}
	case bsontype.Int64:
		if v, ok := raw.Int64OK(); ok {
			*n = NumberFromDecimal(decimal.NewFromInt(v))
		}
	case bsontype.Decimal128:
		if v, ok := raw.Decimal128OK(); ok {
			*n = NumberFromString(v.String())
		}
	case bsontype.String:
		if v, ok := raw.StringValueOK(); ok {
			*n = NumberFromString(v)
		}
	}
	return nil
}

func (n Number) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !n.Valid {
		return bsontype.Null, nil, nil
	}
	return bson.MarshalValue(n.Value.InexactFloat64())
}
