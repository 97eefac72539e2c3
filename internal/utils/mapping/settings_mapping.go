package mapping

import (
	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	"github.com/Rodfox31/cierre-caja-backend/internal/models"
)

// ToDomainPolicy converts a settings row to the injected policy object.
func ToDomainPolicy(m models.Settings) domain.ReconciliationPolicy {
	return domain.ReconciliationPolicy{
		Stores:              m.Stores,
		PaymentMethods:      m.PaymentMethods,
		CashMethod:          m.CashMethod,
		Reasons:             m.Reasons,
		TillFloat:           m.TillFloat,
		DifferenceTolerance: m.DifferenceTolerance,
		SevereThreshold:     m.SevereThreshold,
	}
}

// ToModelSettings converts a policy back to the settings row shape.
func ToModelSettings(p domain.ReconciliationPolicy) models.Settings {
	return models.Settings{
		Stores:              p.Stores,
		PaymentMethods:      p.PaymentMethods,
		CashMethod:          p.CashMethod,
		Reasons:             p.Reasons,
		TillFloat:           p.TillFloat,
		DifferenceTolerance: p.DifferenceTolerance,
		SevereThreshold:     p.SevereThreshold,
	}
}
