package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValidationState indicates where a closing sits in the supervision workflow.
type ValidationState int

const (
	Unvalidated      ValidationState = 0
	Validated        ValidationState = 1
	FlaggedForReview ValidationState = 2
)

// String returns a readable name for logging and responses.
func (s ValidationState) String() string {
	switch s {
	case Unvalidated:
		return "UNVALIDATED"
	case Validated:
		return "VALIDATED"
	case FlaggedForReview:
		return "FLAGGED_FOR_REVIEW"
	default:
		return "UNKNOWN"
	}
}

// IsValid reports whether s is one of the known states.
func (s ValidationState) IsValid() bool {
	return s == Unvalidated || s == Validated || s == FlaggedForReview
}

// validTransitions is the enforced transition table. The legacy system let
// any integer be written from any state; here an invalid transition is
// rejected instead of silently overwriting validator identity.
var validTransitions = map[ValidationState][]ValidationState{
	Unvalidated:      {Validated, FlaggedForReview},
	Validated:        {FlaggedForReview},
	FlaggedForReview: {Unvalidated},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s ValidationState) CanTransitionTo(next ValidationState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ClosingRecord is the persisted aggregate for one store/day/cashier closing.
// The (ClosingDate, Store, Cashier) triple is unique; the database enforces
// it with a unique index, the service pre-check is only a UX courtesy.
type ClosingRecord struct {
	ClosingID   int64  `json:"closingID"`
	ClosingDate string `json:"closingDate"` // canonical YYYY-MM-DD
	Store       string `json:"store"`
	Cashier     string `json:"cashier"`

	BillTotal        decimal.Decimal `json:"billTotal"`
	FinalCashBalance decimal.Decimal `json:"finalCashBalance"` // BillTotal - till float
	ArmoredTotal     decimal.Decimal `json:"armoredTotal"`

	PaymentMethods []PaymentMethodRow   `json:"paymentMethods"`
	Justifications []JustificationEntry `json:"justifications"`

	GrandDifferenceTotal decimal.Decimal `json:"grandDifferenceTotal"`
	BalanceUnexplained   decimal.Decimal `json:"balanceUnexplained"`

	ResponsibleUser string `json:"responsibleUser"`
	Comments        string `json:"comments"`

	ValidationState ValidationState `json:"validationState"`
	ValidatedBy     *string         `json:"validatedBy"`
	ValidatedAt     *time.Time      `json:"validatedAt"`

	AuditFields
}

// ClosingKey identifies a closing by its natural key.
type ClosingKey struct {
	ClosingDate string
	Store       string
	Cashier     string
}
