package domain

import "github.com/shopspring/decimal"

// ReconciliationPolicy carries every configurable value the reconciliation
// core depends on. The legacy app read these from a shared mutable JSON blob;
// here the policy is loaded once per session and injected, so the core never
// touches ambient state and tests stay deterministic.
type ReconciliationPolicy struct {
	Stores         []string `json:"stores"`
	PaymentMethods []string `json:"paymentMethods"` // declaration order
	CashMethod     string   `json:"cashMethod"`     // the row driven by the drawer count
	Reasons        []string `json:"reasons"`

	// TillFloat is the fixed "fondo de caja" deducted from the raw bill count.
	TillFloat decimal.Decimal `json:"tillFloat"`

	// DifferenceTolerance is the band inside which a difference counts as zero.
	DifferenceTolerance decimal.Decimal `json:"differenceTolerance"`

	// SevereThreshold splits minor from severe discrepancies. Previously a
	// ±10000 literal duplicated across reporting views.
	SevereThreshold decimal.Decimal `json:"severeThreshold"`
}

// DefaultReconciliationPolicy returns the values the original deployment ran with.
func DefaultReconciliationPolicy() ReconciliationPolicy {
	return ReconciliationPolicy{
		Stores:              []string{"Solar", "Centro"},
		PaymentMethods:      []string{"Efectivo", "Tarjeta Débito", "Tarjeta Crédito", "Transferencia", "Mercado Pago"},
		CashMethod:          "Efectivo",
		Reasons:             []string{"Error de facturación", "Vuelto incorrecto", "Retiro de caja", "Pago diferido", "Otro"},
		TillFloat:           decimal.NewFromInt(10000),
		DifferenceTolerance: decimal.RequireFromString("0.01"),
		SevereThreshold:     decimal.NewFromInt(10000),
	}
}

// IsCashMethod reports whether name is the drawer-driven method.
func (p ReconciliationPolicy) IsCashMethod(name string) bool {
	return name == p.CashMethod
}

// DefaultReason returns the first configured reason, or "" if none are set.
func (p ReconciliationPolicy) DefaultReason() string {
	if len(p.Reasons) == 0 {
		return ""
	}
	return p.Reasons[0]
}

// HasStore reports whether name is a configured store.
func (p ReconciliationPolicy) HasStore(name string) bool {
	for _, s := range p.Stores {
		if s == name {
			return true
		}
	}
	return false
}
