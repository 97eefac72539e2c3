package dto

import (
	"github.com/Rodfox31/cierre-caja-backend/internal/utils/reconcile"
	"github.com/shopspring/decimal"
)

// PreviewClosingRequest runs the reconciliation computation over a draft
// session without persisting anything. Same payload shape as creation minus
// the identity fields.
type PreviewClosingRequest struct {
	ClosingDate    string                  `json:"closingDate" binding:"required,closingdate"`
	BillCounts     []BillCountPayload      `json:"billCounts"`
	Deposits       []ArmoredDepositPayload `json:"deposits"`
	Payments       []PaymentEntryPayload   `json:"payments"`
	Justifications []JustificationPayload  `json:"justifications"`
}

// PreviewClosingResponse is the derived reconciliation for a draft session.
type PreviewClosingResponse struct {
	BillTotal            decimal.Decimal            `json:"billTotal"`
	FinalCashBalance     decimal.Decimal            `json:"finalCashBalance"`
	ArmoredTotal         decimal.Decimal            `json:"armoredTotal"`
	PaymentMethods       []PaymentMethodRowResponse `json:"paymentMethods"`
	Justifications       []JustificationResponse    `json:"justifications"`
	GrandDifferenceTotal decimal.Decimal            `json:"grandDifferenceTotal"`
	SumAdjustments       decimal.Decimal            `json:"sumAdjustments"`
	BalanceUnexplained   decimal.Decimal            `json:"balanceUnexplained"`
	Severity             string                     `json:"severity"`
}

// ToPreviewClosingResponse converts a computed session summary.
func ToPreviewClosingResponse(s reconcile.Summary) PreviewClosingResponse {
	rows := make([]PaymentMethodRowResponse, len(s.PaymentMethods))
	for i, r := range s.PaymentMethods {
		rows[i] = PaymentMethodRowResponse{
			Method:     r.Method,
			Declared:   r.Declared,
			Collected:  r.Collected,
			Difference: r.Difference,
		}
	}
	justs := make([]JustificationResponse, len(s.Justifications))
	for i, j := range s.Justifications {
		justs[i] = JustificationResponse{
			JustificationID: j.JustificationID,
			Date:            j.Date,
			OrderRef:        j.OrderRef,
			Client:          j.Client,
			PaymentMethod:   j.PaymentMethod,
			Adjustment:      j.Adjustment,
			Reason:          j.Reason,
			AutoSeeded:      j.AutoSeeded,
		}
	}
	return PreviewClosingResponse{
		BillTotal:            s.BillTotal,
		FinalCashBalance:     s.FinalCashBalance,
		ArmoredTotal:         s.ArmoredTotal,
		PaymentMethods:       rows,
		Justifications:       justs,
		GrandDifferenceTotal: s.GrandDifferenceTotal,
		SumAdjustments:       s.SumAdjustments,
		BalanceUnexplained:   s.BalanceUnexplained,
		Severity:             string(s.Severity),
	}
}
