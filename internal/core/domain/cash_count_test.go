package domain_test

import (
	"testing"

	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestBillCountSubtotal(t *testing.T) {
	e := domain.BillCountEntry{FaceValue: decimal.NewFromInt(20000), Count: 2}
	assert.True(t, e.Subtotal().Equal(decimal.NewFromInt(40000)))

	zero := domain.BillCountEntry{FaceValue: decimal.NewFromInt(500), Count: 0}
	assert.True(t, zero.Subtotal().IsZero())
}

func TestDefaultPolicy(t *testing.T) {
	p := domain.DefaultReconciliationPolicy()

	assert.True(t, p.IsCashMethod("Efectivo"))
	assert.False(t, p.IsCashMethod("Transferencia"))
	assert.Equal(t, "Error de facturación", p.DefaultReason())
	assert.True(t, p.HasStore("Solar"))
	assert.False(t, p.HasStore("Sucursal Norte"))
	assert.True(t, p.TillFloat.Equal(decimal.NewFromInt(10000)))
}
