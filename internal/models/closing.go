package models

import (
	"time"

	"github.com/Rodfox31/cierre-caja-backend/internal/utils/monetary"
	"github.com/shopspring/decimal"
)

// Closing mirrors the closings table. PaymentMethods is stored as a JSONB
// array; see PaymentMethodRow for the tolerant decode of legacy blobs.
type Closing struct {
	ClosingID   int64  `json:"closingID"`
	ClosingDate string `json:"closingDate"`
	Store       string `json:"store"`
	Cashier     string `json:"cashier"`

	BillTotal        decimal.Decimal `json:"billTotal"`
	FinalCashBalance decimal.Decimal `json:"finalCashBalance"`
	ArmoredTotal     decimal.Decimal `json:"armoredTotal"`

	PaymentMethods []PaymentMethodRow `json:"paymentMethods"`

	GrandDifferenceTotal decimal.Decimal `json:"grandDifferenceTotal"`
	BalanceUnexplained   decimal.Decimal `json:"balanceUnexplained"`

	ResponsibleUser string `json:"responsibleUser"`
	Comments        string `json:"comments"`

	ValidationState int16      `json:"validationState"`
	ValidatedBy     *string    `json:"validatedBy"`
	ValidatedAt     *time.Time `json:"validatedAt"`

	AuditFields
}

// PaymentMethodRow is the JSONB element shape. Amounts decode through
// monetary.FlexAmount because repair passes left string-typed numerics in
// historical rows; on write they always serialize as plain numbers.
type PaymentMethodRow struct {
	Method     string              `json:"method"`
	Declared   monetary.FlexAmount `json:"declared"`
	Collected  monetary.FlexAmount `json:"collected"`
	Difference monetary.FlexAmount `json:"difference"`
}

// Justification mirrors the justifications table, one row per adjustment
// entry, FK'd to its closing.
type Justification struct {
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
