package mapping

import (
	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	"github.com/Rodfox31/cierre-caja-backend/internal/models"
	"github.com/Rodfox31/cierre-caja-backend/internal/utils/monetary"
)

// ToModelClosing converts a domain ClosingRecord to its persistence model.
// Justifications are mapped separately since they live in their own table.
func ToModelClosing(d domain.ClosingRecord) models.Closing {
	rows := make([]models.PaymentMethodRow, len(d.PaymentMethods))
	for i, r := range d.PaymentMethods {
		rows[i] = models.PaymentMethodRow{
			Method:     r.Method,
			Declared:   monetary.NewFlexAmount(r.Declared),
			Collected:  monetary.NewFlexAmount(r.Collected),
			Difference: monetary.NewFlexAmount(r.Difference),
		}
	}
	return models.Closing{
		ClosingID:            d.ClosingID,
		ClosingDate:          d.ClosingDate,
		Store:                d.Store,
		Cashier:              d.Cashier,
		BillTotal:            d.BillTotal,
		FinalCashBalance:     d.FinalCashBalance,
		ArmoredTotal:         d.ArmoredTotal,
		PaymentMethods:       rows,
		GrandDifferenceTotal: d.GrandDifferenceTotal,
		BalanceUnexplained:   d.BalanceUnexplained,
		ResponsibleUser:      d.ResponsibleUser,
		Comments:             d.Comments,
		ValidationState:      int16(d.ValidationState),
		ValidatedBy:          d.ValidatedBy,
		ValidatedAt:          d.ValidatedAt,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClosing converts a persistence model to a domain ClosingRecord.
func ToDomainClosing(m models.Closing) domain.ClosingRecord {
	rows := make([]domain.PaymentMethodRow, len(m.PaymentMethods))
	for i, r := range m.PaymentMethods {
		rows[i] = domain.PaymentMethodRow{
			Method:     r.Method,
			Declared:   r.Declared.Decimal,
			Collected:  r.Collected.Decimal,
			Difference: r.Difference.Decimal,
		}
	}
	return domain.ClosingRecord{
		ClosingID:            m.ClosingID,
		ClosingDate:          m.ClosingDate,
		Store:                m.Store,
		Cashier:              m.Cashier,
		BillTotal:            m.BillTotal,
		FinalCashBalance:     m.FinalCashBalance,
		ArmoredTotal:         m.ArmoredTotal,
		PaymentMethods:       rows,
		GrandDifferenceTotal: m.GrandDifferenceTotal,
		BalanceUnexplained:   m.BalanceUnexplained,
		ResponsibleUser:      m.ResponsibleUser,
		Comments:             m.Comments,
		ValidationState:      domain.ValidationState(m.ValidationState),
		ValidatedBy:          m.ValidatedBy,
		ValidatedAt:          m.ValidatedAt,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJustification converts a domain justification entry to its model.
func ToModelJustification(d domain.JustificationEntry) models.Justification {
	return models.Justification{
		JustificationID: d.JustificationID,
		ClosingID:       d.ClosingID,
		Date:            d.Date,
		OrderRef:        d.OrderRef,
		Client:          d.Client,
		PaymentMethod:   d.PaymentMethod,
		Adjustment:      d.Adjustment,
		Reason:          d.Reason,
		AutoSeeded:      d.AutoSeeded,
	}
}

// ToDomainJustification converts a model justification to the domain shape.
func ToDomainJustification(m models.Justification) domain.JustificationEntry {
	return domain.JustificationEntry{
		JustificationID: m.JustificationID,
		ClosingID:       m.ClosingID,
		Date:            m.Date,
		OrderRef:        m.OrderRef,
		Client:          m.Client,
		PaymentMethod:   m.PaymentMethod,
		Adjustment:      m.Adjustment,
		Reason:          m.Reason,
		AutoSeeded:      m.AutoSeeded,
	}
}

// ToDomainJustificationSlice converts a slice of model justifications.
func ToDomainJustificationSlice(ms []models.Justification) []domain.JustificationEntry {
	out := make([]domain.JustificationEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJustification(m)
	}
	return out
}
