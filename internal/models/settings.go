package models

import "github.com/shopspring/decimal"

// Settings mirrors the single-row settings table holding the reconciliation
// policy. List columns are JSONB.
type Settings struct {
	SettingsID          int16           `json:"settingsID"`
	Stores              []string        `json:"stores"`
	PaymentMethods      []string        `json:"paymentMethods"`
	CashMethod          string          `json:"cashMethod"`
	Reasons             []string        `json:"reasons"`
	TillFloat           decimal.Decimal `json:"tillFloat"`
	DifferenceTolerance decimal.Decimal `json:"differenceTolerance"`
	SevereThreshold     decimal.Decimal `json:"severeThreshold"`

	AuditFields
}
