package monetary

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// FlexAmount is a decimal that tolerates the legacy encodings found in
// persisted payment-method blobs. Historical repair passes left some rows
// with string-typed numerics ("49.800,50") where numbers were expected;
// FlexAmount decodes either shape through Normalize and always encodes back
// as a plain JSON number, so rewritten rows converge on the canonical form.
type FlexAmount struct {
	decimal.Decimal
}

// NewFlexAmount wraps a decimal for serialization.
func NewFlexAmount(d decimal.Decimal) FlexAmount {
	return FlexAmount{Decimal: d}
}

// UnmarshalJSON accepts a JSON number, a numeric string in any historical
// format, or null (treated as zero).
func (a *FlexAmount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		a.Decimal = Normalize(str)
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// MarshalJSON always emits a plain JSON number.
func (a FlexAmount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}
