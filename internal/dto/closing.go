package dto

import (
	"time"

	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BillCountPayload is one denomination count from the drawer screen.
type BillCountPayload struct {
	FaceValue int64 `json:"faceValue" binding:"required,gt=0"`
	Count     int64 `json:"count" binding:"gte=0"`
}

// ArmoredDepositPayload is one armored-transport deposit. Amount is raw text
// because legacy clients send locale-formatted strings.
type ArmoredDepositPayload struct {
	Code   string `json:"code"`
	Amount string `json:"amount"`
}

// PaymentEntryPayload is the raw cashier input for one payment method.
// Declared accepts sum-expressions ("1000+2000") and is ignored for the cash
// method, whose declared figure is derived server-side.
type PaymentEntryPayload struct {
	Method    string `json:"method" binding:"required"`
	Declared  string `json:"declared"`
	Collected string `json:"collected"`
}

// JustificationPayload is a manual justification entry as sent by clients.
type JustificationPayload struct {
	Date          string `json:"date"`
	OrderRef      string `json:"orderRef"`
	Client        string `json:"client"`
	PaymentMethod string `json:"paymentMethod"`
	Adjustment    string `json:"adjustment"`
	Reason        string `json:"reason"`
}

// CreateClosingRequest submits a finished closing session.
type CreateClosingRequest struct {
	ClosingDate     string                  `json:"closingDate" binding:"required,closingdate"`
	Store           string                  `json:"store" binding:"required"`
	Cashier         string                  `json:"cashier" binding:"required"`
	ResponsibleUser string                  `json:"responsibleUser"`
	Comments        string                  `json:"comments"`
	BillCounts      []BillCountPayload      `json:"billCounts"`
	Deposits        []ArmoredDepositPayload `json:"deposits"`
	Payments        []PaymentEntryPayload   `json:"payments"`
	Justifications  []JustificationPayload  `json:"justifications"`
}

// UpdateClosingRequest partially edits an existing closing. Nil fields are
// left as stored. Justifications is deliberately a pointer: key absent means
// preserve the existing rows, key present (even empty) means replace them
// with exactly what was sent.
type UpdateClosingRequest struct {
	BillTotal       *string                 `json:"billTotal"`
	ArmoredTotal    *string                 `json:"armoredTotal"`
	Payments        *[]PaymentEntryPayload  `json:"payments"`
	Justifications  *[]JustificationPayload `json:"justifications"`
	ResponsibleUser *string                 `json:"responsibleUser"`
	Comments        *string                 `json:"comments"`
}

// ListClosingsParams filters the closing list.
type ListClosingsParams struct {
	Store  *string `form:"store"`
	From   *string `form:"from"`
	To     *string `form:"to"`
	State  *int    `form:"state"`
	Limit  int     `form:"limit,default=50"`
	Offset int     `form:"offset,default=0"`
}

// PaymentMethodRowResponse is one reconciled payment row.
type PaymentMethodRowResponse struct {
	Method     string          `json:"method"`
	Declared   decimal.Decimal `json:"declared"`
	Collected  decimal.Decimal `json:"collected"`
	Difference decimal.Decimal `json:"difference"`
}

// JustificationResponse is one justification row.
type JustificationResponse struct {
	JustificationID string          `json:"justificationID"`
	ClosingID       int64           `json:"closingID"`
	Date            string          `json:"date"`
	OrderRef        string          `json:"orderRef"`
	Client          string          `json:"client"`
	PaymentMethod   string          `json:"paymentMethod"`
	Adjustment      decimal.Decimal `json:"adjustment"`
	Reason          string          `json:"reason"`
	AutoSeeded      bool            `json:"autoSeeded"`
}

// ClosingResponse is the API shape of a persisted closing. Severity is
// recomputed from the current policy, never stored.
type ClosingResponse struct {
	ClosingID            int64                      `json:"closingID"`
	ClosingDate          string                     `json:"closingDate"`
	Store                string                     `json:"store"`
	Cashier              string                     `json:"cashier"`
	BillTotal            decimal.Decimal            `json:"billTotal"`
	FinalCashBalance     decimal.Decimal            `json:"finalCashBalance"`
	ArmoredTotal         decimal.Decimal            `json:"armoredTotal"`
	PaymentMethods       []PaymentMethodRowResponse `json:"paymentMethods"`
	Justifications       []JustificationResponse    `json:"justifications"`
	GrandDifferenceTotal decimal.Decimal            `json:"grandDifferenceTotal"`
	BalanceUnexplained   decimal.Decimal            `json:"balanceUnexplained"`
	Severity             string                     `json:"severity"`
	ResponsibleUser      string                     `json:"responsibleUser"`
	Comments             string                     `json:"comments"`
	ValidationState      int                        `json:"validationState"`
	ValidationStateName  string                     `json:"validationStateName"`
	ValidatedBy          *string                    `json:"validatedBy"`
	ValidatedAt          *time.Time                 `json:"validatedAt"`
	CreatedAt            time.Time                  `json:"createdAt"`
	LastUpdatedAt        time.Time                  `json:"lastUpdatedAt"`
}

// ExistsClosingResponse answers the duplicate pre-check.
type ExistsClosingResponse struct {
	Exists bool `json:"exists"`
}

// ToClosingResponse converts a domain closing, attaching the severity
// classification computed by the caller.
func ToClosingResponse(c *domain.ClosingRecord, severity string) ClosingResponse {
	rows := make([]PaymentMethodRowResponse, len(c.PaymentMethods))
	for i, r := range c.PaymentMethods {
		rows[i] = PaymentMethodRowResponse{
			Method:     r.Method,
			Declared:   r.Declared,
			Collected:  r.Collected,
			Difference: r.Difference,
		}
	}
	justs := make([]JustificationResponse, len(c.Justifications))
	for i, j := range c.Justifications {
		justs[i] = JustificationResponse{
			JustificationID: j.JustificationID,
			ClosingID:       j.ClosingID,
			Date:            j.Date,
			OrderRef:        j.OrderRef,
			Client:          j.Client,
			PaymentMethod:   j.PaymentMethod,
			Adjustment:      j.Adjustment,
			Reason:          j.Reason,
			AutoSeeded:      j.AutoSeeded,
		}
	}
	return ClosingResponse{
		ClosingID:            c.ClosingID,
		ClosingDate:          c.ClosingDate,
		Store:                c.Store,
		Cashier:              c.Cashier,
		BillTotal:            c.BillTotal,
		FinalCashBalance:     c.FinalCashBalance,
		ArmoredTotal:         c.ArmoredTotal,
		PaymentMethods:       rows,
		Justifications:       justs,
		GrandDifferenceTotal: c.GrandDifferenceTotal,
		BalanceUnexplained:   c.BalanceUnexplained,
		Severity:             severity,
		ResponsibleUser:      c.ResponsibleUser,
		Comments:             c.Comments,
		ValidationState:      int(c.ValidationState),
		ValidationStateName:  c.ValidationState.String(),
		ValidatedBy:          c.ValidatedBy,
		ValidatedAt:          c.ValidatedAt,
		CreatedAt:            c.CreatedAt,
		LastUpdatedAt:        c.LastUpdatedAt,
	}
}
