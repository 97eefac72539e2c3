package reconcile_test

import (
	"testing"

	"github.com/Rodfox31/cierre-caja-backend/internal/utils/reconcile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMethods = []string{"Efectivo", "Tarjeta Débito", "Transferencia"}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestNewPaymentLedgerPrefillsOnlyCashRow(t *testing.T) {
	l := reconcile.NewPaymentLedger(testMethods, "Efectivo", dec(t, "50000"))
	rows := l.Rows()

	require.Len(t, rows, 3)
	assert.Equal(t, "Efectivo", rows[0].Method)
	assert.True(t, rows[0].Declared.Equal(dec(t, "50000")))
	assert.True(t, rows[0].Difference.Equal(dec(t, "50000")), "nothing collected yet")
	for _, row := range rows[1:] {
		assert.True(t, row.Declared.IsZero(), "row %s should start blank", row.Method)
		assert.True(t, row.Collected.IsZero())
		assert.True(t, row.Difference.IsZero())
	}
}

func TestUpdateDeclaredAcceptsSumExpressions(t *testing.T) {
	l := reconcile.NewPaymentLedger(testMethods, "Efectivo", decimal.Zero)

	require.NoError(t, l.UpdateDeclared(1, "1000+2000"))
	rows := l.Rows()
	assert.True(t, rows[1].Declared.Equal(dec(t, "3000")))
	assert.True(t, rows[1].Difference.Equal(dec(t, "3000")))
}

func TestUpdateDeclaredForbiddenOnCashRow(t *testing.T) {
	l := reconcile.NewPaymentLedger(testMethods, "Efectivo", dec(t, "50000"))

	err := l.UpdateDeclared(0, "99999")
	assert.ErrorIs(t, err, reconcile.ErrCashRowManaged)
	assert.True(t, l.Rows()[0].Declared.Equal(dec(t, "50000")), "cash row must be untouched")
}

func TestDifferenceNeverStale(t *testing.T) {
	l := reconcile.NewPaymentLedger(testMethods, "Efectivo", dec(t, "50000"))

	require.NoError(t, l.UpdateCollected(0, "49800"))
	assert.True(t, l.Rows()[0].Difference.Equal(dec(t, "200")))

	require.NoError(t, l.UpdateDeclared(1, "10.000"))
	require.NoError(t, l.UpdateCollected(1, "9.500"))
	assert.True(t, l.Rows()[1].Difference.Equal(dec(t, "500")))

	l.RecomputeCashRow(dec(t, "52000"))
	rows := l.Rows()
	assert.True(t, rows[0].Declared.Equal(dec(t, "52000")))
	assert.True(t, rows[0].Difference.Equal(dec(t, "2200")))
	assert.True(t, rows[1].Difference.Equal(dec(t, "500")), "other rows untouched by cash recompute")
}

func TestGrandTotalOrderIndependent(t *testing.T) {
	build := func(mutate func(l *reconcile.PaymentLedger)) decimal.Decimal {
		l := reconcile.NewPaymentLedger(testMethods, "Efectivo", dec(t, "50000"))
		mutate(l)
		return l.GrandTotal()
	}

	a := build(func(l *reconcile.PaymentLedger) {
		require.NoError(t, l.UpdateCollected(0, "49800"))
		require.NoError(t, l.UpdateDeclared(2, "7000"))
		require.NoError(t, l.UpdateCollected(2, "7100"))
	})
	b := build(func(l *reconcile.PaymentLedger) {
		require.NoError(t, l.UpdateDeclared(2, "7000"))
		require.NoError(t, l.UpdateCollected(2, "7100"))
		require.NoError(t, l.UpdateCollected(0, "49800"))
	})

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(dec(t, "100"))) // 200 + (-100)
}

func TestUpdateOutOfRange(t *testing.T) {
	l := reconcile.NewPaymentLedger(testMethods, "Efectivo", decimal.Zero)
	assert.Error(t, l.UpdateCollected(3, "100"))
	assert.Error(t, l.UpdateDeclared(-1, "100"))
}

func TestGrandTotalMatchesRowSum(t *testing.T) {
	l := reconcile.NewPaymentLedger(testMethods, "Efectivo", dec(t, "41000"))
	require.NoError(t, l.UpdateCollected(0, "40000"))
	require.NoError(t, l.UpdateDeclared(1, "1.500,50"))
	require.NoError(t, l.UpdateCollected(1, "1500"))

	sum := decimal.Zero
	for _, row := range l.Rows() {
		sum = sum.Add(row.Difference)
	}
	assert.True(t, l.GrandTotal().Equal(sum))
}
