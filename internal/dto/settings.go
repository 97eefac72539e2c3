package dto

import (
	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettingsResponse is the API shape of the reconciliation policy.
type SettingsResponse struct {
	Stores              []string        `json:"stores"`
	PaymentMethods      []string        `json:"paymentMethods"`
	CashMethod          string          `json:"cashMethod"`
	Reasons             []string        `json:"reasons"`
	TillFloat           decimal.Decimal `json:"tillFloat"`
	DifferenceTolerance decimal.Decimal `json:"differenceTolerance"`
	SevereThreshold     decimal.Decimal `json:"severeThreshold"`
}

// UpdateSettingsRequest replaces the whole policy. The cash method must be
// one of the configured payment methods; the service enforces that.
type UpdateSettingsRequest struct {
	Stores              []string        `json:"stores" binding:"required,min=1"`
	PaymentMethods      []string        `json:"paymentMethods" binding:"required,min=1"`
	CashMethod          string          `json:"cashMethod" binding:"required"`
	Reasons             []string        `json:"reasons" binding:"required,min=1"`
	TillFloat           decimal.Decimal `json:"tillFloat"`
	DifferenceTolerance decimal.Decimal `json:"differenceTolerance"`
	SevereThreshold     decimal.Decimal `json:"severeThreshold"`
}

// ToSettingsResponse converts a policy for the API.
func ToSettingsResponse(p domain.ReconciliationPolicy) SettingsResponse {
	return SettingsResponse{
		Stores:              p.Stores,
		PaymentMethods:      p.PaymentMethods,
		CashMethod:          p.CashMethod,
		Reasons:             p.Reasons,
		TillFloat:           p.TillFloat,
		DifferenceTolerance: p.DifferenceTolerance,
		SevereThreshold:     p.SevereThreshold,
	}
}
