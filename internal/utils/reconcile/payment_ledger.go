// Package reconcile holds the pure closing-reconciliation computations:
// the per-method payment ledger, the justification ledger and the final
// balance arithmetic. Everything here is synchronous and side-effect free;
// all configurable values arrive through domain.ReconciliationPolicy.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	"github.com/Rodfox31/cierre-caja-backend/internal/utils/monetary"
	"github.com/shopspring/decimal"
)

// ErrCashRowManaged is returned when a caller tries to hand-edit the declared
// value of the cash row, which is driven by the drawer count.
var ErrCashRowManaged = errors.New("cash row declared value is derived from the drawer count")

// PaymentLedger maintains the declared/collected/difference rows for one
// closing session. Rows keep the configured declaration order; the cash row
// is the only one whose declared value the cashier cannot type.
type PaymentLedger struct {
	cashMethod string
	rows       []domain.PaymentMethodRow
}

// NewPaymentLedger creates one row per configured method, in order. The cash
// row is prefilled with the derived drawer value; every other row starts at
// zero until the cashier enters figures from the invoicing report.
func NewPaymentLedger(methodNames []string, cashMethod string, derivedCash decimal.Decimal) *PaymentLedger {
	l := &PaymentLedger{
		cashMethod: cashMethod,
		rows:       make([]domain.PaymentMethodRow, 0, len(methodNames)),
	}
	for _, name := range methodNames {
		row := domain.PaymentMethodRow{Method: name}
		if name == cashMethod {
			row.Declared = derivedCash
		}
		row.Recompute()
		l.rows = append(l.rows, row)
	}
	return l
}

// Rows returns a copy of the current rows.
func (l *PaymentLedger) Rows() []domain.PaymentMethodRow {
	out := make([]domain.PaymentMethodRow, len(l.rows))
	copy(out, l.rows)
	return out
}

// UpdateDeclared sets a row's declared value from raw cashier input, which
// may be a sum-expression ("1000+2000" for two invoice batches). Forbidden
// for the cash row.
func (l *PaymentLedger) UpdateDeclared(rowIndex int, raw string) error {
	if err := l.checkIndex(rowIndex); err != nil {
		return err
	}
	if l.rows[rowIndex].Method == l.cashMethod {
		return ErrCashRowManaged
	}
	l.rows[rowIndex].Declared = monetary.NormalizeSum(raw)
	l.rows[rowIndex].Recompute()
	return nil
}

// UpdateCollected sets a row's collected value from raw cashier input.
func (l *PaymentLedger) UpdateCollected(rowIndex int, raw string) error {
	if err := l.checkIndex(rowIndex); err != nil {
		return err
	}
	l.rows[rowIndex].Collected = monetary.Normalize(raw)
	l.rows[rowIndex].Recompute()
	return nil
}

// RecomputeCashRow overwrites the cash row's declared value with the freshly
// derived drawer figure. Must be called whenever bill counts or armored
// deposits change; other rows are left untouched.
func (l *PaymentLedger) RecomputeCashRow(derivedCash decimal.Decimal) {
	for i := range l.rows {
		if l.rows[i].Method == l.cashMethod {
			l.rows[i].Declared = derivedCash
			l.rows[i].Recompute()
			return
		}
	}
}

// GrandTotal returns the sum of all rows' differences.
func (l *PaymentLedger) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, row := range l.rows {
		total = total.Add(row.Difference)
	}
	return total
}

func (l *PaymentLedger) checkIndex(i int) error {
	if i < 0 || i >= len(l.rows) {
		return fmt.Errorf("payment row index %d out of range", i)
	}
	return nil
}
