package domain

import "github.com/shopspring/decimal"

// DefaultDenominations is the fixed set of bill face values offered on the
// counting screen, largest first.
var DefaultDenominations = []int64{20000, 10000, 2000, 1000, 500, 200, 100, 50, 20, 10}

// BillCountEntry is one denomination's count during a drawer count. Entries
// reset on every new closing session and are never persisted individually;
// only the derived cash total survives.
type BillCountEntry struct {
	FaceValue decimal.Decimal `json:"faceValue"`
	Count     int64           `json:"count"`
}

// Subtotal returns FaceValue * Count.
func (e BillCountEntry) Subtotal() decimal.Decimal {
	return e.FaceValue.Mul(decimal.NewFromInt(e.Count))
}

// ArmoredDepositEntry is cash handed to the armored-transport service during
// the day, added back into the expected cash figure at closing time.
type ArmoredDepositEntry struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}
