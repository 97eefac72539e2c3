package reconcile_test

import (
	"testing"

	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	"github.com/Rodfox31/cierre-caja-backend/internal/utils/reconcile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testReasons = []string{"Error de facturación", "Vuelto incorrecto", "Otro"}

func tolerance(t *testing.T) decimal.Decimal { return dec(t, "0.01") }

func rowsWithDiffs(t *testing.T, diffs map[string]string) []domain.PaymentMethodRow {
	t.Helper()
	rows := make([]domain.PaymentMethodRow, 0, len(testMethods))
	for _, m := range testMethods {
		row := domain.PaymentMethodRow{Method: m}
		if d, ok := diffs[m]; ok {
			row.Declared = dec(t, d)
			row.Recompute()
		}
		rows = append(rows, row)
	}
	return rows
}

func TestReseedCreatesSeedsForNonZeroDifferences(t *testing.T) {
	l := reconcile.NewJustificationLedger(testReasons, tolerance(t))
	l.Reseed(rowsWithDiffs(t, map[string]string{"Efectivo": "200", "Transferencia": "-150"}), "2025-10-07")

	entries := l.Entries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.True(t, e.AutoSeeded)
		assert.NotEmpty(t, e.JustificationID)
		assert.Equal(t, "2025-10-07", e.Date)
		assert.Equal(t, "Error de facturación", e.Reason)
	}
	assert.Equal(t, "Efectivo", entries[0].PaymentMethod)
	assert.True(t, entries[0].Adjustment.Equal(dec(t, "200")))
	assert.Equal(t, "Transferencia", entries[1].PaymentMethod)
	assert.True(t, entries[1].Adjustment.Equal(dec(t, "-150")))
}

func TestReseedIsIdempotent(t *testing.T) {
	l := reconcile.NewJustificationLedger(testReasons, tolerance(t))
	rows := rowsWithDiffs(t, map[string]string{"Efectivo": "200"})

	l.Reseed(rows, "2025-10-07")
	l.Reseed(rows, "2025-10-07")

	assert.Len(t, l.Entries(), 1, "reseeding twice must not duplicate seeds")
}

func TestReseedPreservesManualEntries(t *testing.T) {
	l := reconcile.NewJustificationLedger(testReasons, tolerance(t))
	l.AddManual(domain.JustificationEntry{
		PaymentMethod: "Tarjeta Débito",
		Adjustment:    dec(t, "50"),
		Client:        "Cliente mostrador",
	})

	// Tarjeta Débito has no difference anymore; the manual entry must survive.
	l.Reseed(rowsWithDiffs(t, map[string]string{"Efectivo": "200"}), "2025-10-07")

	entries := l.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Tarjeta Débito", entries[0].PaymentMethod)
	assert.False(t, entries[0].AutoSeeded)
	assert.Equal(t, "Efectivo", entries[1].PaymentMethod)
	assert.True(t, entries[1].AutoSeeded)
}

func TestReseedDoesNotDoubleSeedManuallyExplainedMethod(t *testing.T) {
	l := reconcile.NewJustificationLedger(testReasons, tolerance(t))
	l.AddManual(domain.JustificationEntry{PaymentMethod: "Efectivo", Adjustment: dec(t, "200")})

	l.Reseed(rowsWithDiffs(t, map[string]string{"Efectivo": "200"}), "2025-10-07")

	require.Len(t, l.Entries(), 1)
	assert.False(t, l.Entries()[0].AutoSeeded)
}

func TestReseedDropsStaleSeeds(t *testing.T) {
	l := reconcile.NewJustificationLedger(testReasons, tolerance(t))
	l.Reseed(rowsWithDiffs(t, map[string]string{"Efectivo": "200"}), "2025-10-07")
	require.Len(t, l.Entries(), 1)

	// Difference resolved; the untouched seed goes away.
	l.Reseed(rowsWithDiffs(t, nil), "2025-10-07")
	assert.Empty(t, l.Entries())
}

func TestReseedRefreshesUntouchedSeedAdjustment(t *testing.T) {
	l := reconcile.NewJustificationLedger(testReasons, tolerance(t))
	l.Reseed(rowsWithDiffs(t, map[string]string{"Efectivo": "200"}), "2025-10-07")

	l.Reseed(rowsWithDiffs(t, map[string]string{"Efectivo": "350"}), "2025-10-07")

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Adjustment.Equal(dec(t, "350")))
}

func TestUpdateFieldTurnsSeedManual(t *testing.T) {
	l := reconcile.NewJustificationLedger(testReasons, tolerance(t))
	l.Reseed(rowsWithDiffs(t, map[string]string{"Efectivo": "200"}), "2025-10-07")

	require.NoError(t, l.UpdateField(0, reconcile.FieldAdjustment, "150,50"))

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].AutoSeeded)
	assert.True(t, entries[0].Adjustment.Equal(dec(t, "150.5")))

	// The edited entry is now out of reach of the reseed merge.
	l.Reseed(rowsWithDiffs(t, nil), "2025-10-07")
	assert.Len(t, l.Entries(), 1)
}

func TestUpdateFieldFreeText(t *testing.T) {
	l := reconcile.NewJustificationLedger(testReasons, tolerance(t))
	l.AddManual(domain.JustificationEntry{PaymentMethod: "Efectivo"})

	require.NoError(t, l.UpdateField(0, reconcile.FieldClient, "Juan Pérez"))
	require.NoError(t, l.UpdateField(0, reconcile.FieldOrderRef, "FC-0001-00012345"))
	require.NoError(t, l.UpdateField(0, reconcile.FieldReason, "Vuelto incorrecto"))

	e := l.Entries()[0]
	assert.Equal(t, "Juan Pérez", e.Client)
	assert.Equal(t, "FC-0001-00012345", e.OrderRef)
	assert.Equal(t, "Vuelto incorrecto", e.Reason)

	assert.Error(t, l.UpdateField(0, "nonsense", "x"))
	assert.Error(t, l.UpdateField(5, reconcile.FieldClient, "x"))
}

func TestAddManualDefaultsReason(t *testing.T) {
	l := reconcile.NewJustificationLedger(testReasons, tolerance(t))
	l.AddManual(domain.JustificationEntry{PaymentMethod: "Efectivo"})
	assert.Equal(t, "Error de facturación", l.Entries()[0].Reason)

	empty := reconcile.NewJustificationLedger(nil, tolerance(t))
	empty.AddManual(domain.JustificationEntry{PaymentMethod: "Efectivo"})
	assert.Equal(t, "", empty.Entries()[0].Reason)
}

func TestSumAdjustments(t *testing.T) {
	l := reconcile.NewJustificationLedger(testReasons, tolerance(t))
	l.AddManual(domain.JustificationEntry{Adjustment: dec(t, "200")})
	l.AddManual(domain.JustificationEntry{Adjustment: dec(t, "-50.5")})
	l.Reseed(rowsWithDiffs(t, map[string]string{"Transferencia": "100"}), "2025-10-07")

	assert.True(t, l.SumAdjustments().Equal(dec(t, "249.5")))
}

func TestRemove(t *testing.T) {
	l := reconcile.NewJustificationLedger(testReasons, tolerance(t))
	l.AddManual(domain.JustificationEntry{Client: "a"})
	l.AddManual(domain.JustificationEntry{Client: "b"})

	require.NoError(t, l.Remove(0))
	require.Len(t, l.Entries(), 1)
	assert.Equal(t, "b", l.Entries()[0].Client)
	assert.Error(t, l.Remove(7))
}
