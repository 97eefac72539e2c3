package domain

import "github.com/shopspring/decimal"

// JustificationEntry explains part or all of a payment-method difference.
// Entries are either auto-seeded from rows with a non-zero difference or
// added by hand; JustificationID is the stable identity the reseed merge
// uses to avoid dropping or duplicating manual entries.
type JustificationEntry struct {
	JustificationID string          `json:"justificationID"`
	ClosingID       int64           `json:"closingID"`
	Date            string          `json:"date"`
	OrderRef        string          `json:"orderRef"`
	Client          string          `json:"client"`
	PaymentMethod   string          `json:"paymentMethod"`
	Adjustment      decimal.Decimal `json:"adjustment"`
	Reason          string          `json:"reason"`
	AutoSeeded      bool            `json:"autoSeeded"`
}
