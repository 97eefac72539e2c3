package reconcile

import (
	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Severity classifies a closing's unexplained balance.
type Severity string

const (
	Balanced          Severity = "BALANCED"
	MinorDiscrepancy  Severity = "MINOR_DISCREPANCY"
	SevereDiscrepancy Severity = "SEVERE_DISCREPANCY"
)

// BillTotal sums the subtotals of a drawer count.
func BillTotal(entries []domain.BillCountEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

// CashDrawerTotal is the counted cash net of the fixed till float.
func CashDrawerTotal(entries []domain.BillCountEntry, tillFloat decimal.Decimal) decimal.Decimal {
	return BillTotal(entries).Sub(tillFloat)
}

// ArmoredTotal sums the day's armored-transport deposits.
func ArmoredTotal(deposits []domain.ArmoredDepositEntry) decimal.Decimal {
	total := decimal.Zero
	for _, d := range deposits {
		total = total.Add(d.Amount)
	}
	return total
}

// DynamicCashDeclared is the figure fed into the cash payment row: drawer
// total plus whatever already left with the armored transport.
func DynamicCashDeclared(cashDrawerTotal, armoredTotal decimal.Decimal) decimal.Decimal {
	return cashDrawerTotal.Add(armoredTotal)
}

// BalanceUnexplained is the part of the grand difference the justifications
// do not account for.
func BalanceUnexplained(grandDifferenceTotal, sumAdjustments decimal.Decimal) decimal.Decimal {
	return grandDifferenceTotal.Sub(sumAdjustments)
}

// Classify buckets an unexplained balance. Both thresholds come from the
// policy; the severe cutoff used to live as a ±10000 literal copied across
// the reporting views.
func Classify(balance, tolerance, severeThreshold decimal.Decimal) Severity {
	abs := balance.Abs()
	switch {
	case abs.LessThan(tolerance):
		return Balanced
	case abs.GreaterThan(severeThreshold):
		return SevereDiscrepancy
	default:
		return MinorDiscrepancy
	}
}
