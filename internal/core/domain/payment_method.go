package domain

import "github.com/shopspring/decimal"

// PaymentMethodRow is one payment method line within a closing: what the
// system of record says should have been collected (facturado) against what
// the cashier actually counted (cobrado).
//
// Difference is always Declared - Collected. The sign convention was
// inconsistent in historical data (the modify screen used the opposite); any
// import of pre-migration rows must flip the sign on the way in.
type PaymentMethodRow struct {
	Method     string          `json:"method"`
	Declared   decimal.Decimal `json:"declared"`
	Collected  decimal.Decimal `json:"collected"`
	Difference decimal.Decimal `json:"difference"`
}

// Recompute refreshes Difference from its operands. Called by the ledger
// after every mutation so a stale difference never survives an edit.
func (r *PaymentMethodRow) Recompute() {
	r.Difference = r.Declared.Sub(r.Collected)
}
