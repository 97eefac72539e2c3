package reconcile

import (
	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentEntry is the raw cashier input for one payment method. Declared may
// be a sum-expression; both values are normalized server-side so every
// surface shares the same parsing rules.
type PaymentEntry struct {
	Method    string
	Declared  string
	Collected string
}

// SessionInput is everything a closing session collects before submission.
type SessionInput struct {
	ClosingDate    string
	BillCounts     []domain.BillCountEntry
	Deposits       []domain.ArmoredDepositEntry
	Payments       []PaymentEntry
	Justifications []domain.JustificationEntry // manual entries carried by the client
}

// Summary is the fully derived reconciliation for a session. All figures are
// recomputed from raw input on every call; nothing client-computed is trusted.
type Summary struct {
	BillTotal            decimal.Decimal
	FinalCashBalance     decimal.Decimal
	ArmoredTotal         decimal.Decimal
	PaymentMethods       []domain.PaymentMethodRow
	Justifications       []domain.JustificationEntry
	GrandDifferenceTotal decimal.Decimal
	SumAdjustments       decimal.Decimal
	BalanceUnexplained   decimal.Decimal
	Severity             Severity
}

// ApplyPayments feeds raw entries into the ledger. Entries for methods not in
// the configuration are skipped, and declared edits on the cash row are
// ignored since that figure is derived.
func ApplyPayments(ledger *PaymentLedger, policy domain.ReconciliationPolicy, entries []PaymentEntry) {
	rowIndex := make(map[string]int, len(policy.PaymentMethods))
	for i, name := range policy.PaymentMethods {
		rowIndex[name] = i
	}
	for _, entry := range entries {
		idx, ok := rowIndex[entry.Method]
		if !ok {
			continue
		}
		if !policy.IsCashMethod(entry.Method) {
			_ = ledger.UpdateDeclared(idx, entry.Declared)
		}
		_ = ledger.UpdateCollected(idx, entry.Collected)
	}
}

// ComputeSession runs the full reconciliation pipeline: drawer count minus
// till float, armored deposits folded into the declared cash figure, per-row
// differences, justification reseed and the final unexplained balance.
func ComputeSession(policy domain.ReconciliationPolicy, in SessionInput) Summary {
	billTotal := BillTotal(in.BillCounts)
	drawerTotal := billTotal.Sub(policy.TillFloat)
	armoredTotal := ArmoredTotal(in.Deposits)
	derivedCash := DynamicCashDeclared(drawerTotal, armoredTotal)

	ledger := NewPaymentLedger(policy.PaymentMethods, policy.CashMethod, derivedCash)
	ApplyPayments(ledger, policy, in.Payments)

	justifications := NewJustificationLedger(policy.Reasons, policy.DifferenceTolerance)
	for _, j := range in.Justifications {
		justifications.AddManual(j)
	}
	justifications.Reseed(ledger.Rows(), in.ClosingDate)

	grandTotal := ledger.GrandTotal()
	sumAdjustments := justifications.SumAdjustments()
	balance := BalanceUnexplained(grandTotal, sumAdjustments)

	return Summary{
		BillTotal:            billTotal,
		FinalCashBalance:     drawerTotal,
		ArmoredTotal:         armoredTotal,
		PaymentMethods:       ledger.Rows(),
		Justifications:       justifications.Entries(),
		GrandDifferenceTotal: grandTotal,
		SumAdjustments:       sumAdjustments,
		BalanceUnexplained:   balance,
		Severity:             Classify(balance, policy.DifferenceTolerance, policy.SevereThreshold),
	}
}
