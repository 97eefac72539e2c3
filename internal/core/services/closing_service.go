package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rodfox31/cierre-caja-backend/internal/apperrors"
	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	portsrepo "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/repositories"
	portssvc "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/services"
	"github.com/Rodfox31/cierre-caja-backend/internal/dto"
	"github.com/Rodfox31/cierre-caja-backend/internal/utils"
	"github.com/Rodfox31/cierre-caja-backend/internal/utils/monetary"
	"github.com/Rodfox31/cierre-caja-backend/internal/utils/reconcile"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type closingService struct {
	closingRepo portsrepo.ClosingRepositoryFacade
	settings    portssvc.SettingsSvcFacade
}

// NewClosingService creates the closing service. The settings service
// supplies the reconciliation policy injected into every computation.
func NewClosingService(closingRepo portsrepo.ClosingRepositoryFacade, settings portssvc.SettingsSvcFacade) portssvc.ClosingSvcFacade {
	return &closingService{closingRepo: closingRepo, settings: settings}
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

func (s *closingService) CreateClosing(ctx context.Context, req dto.CreateClosingRequest, creatorUserID string) (*domain.ClosingRecord, error) {
	date, err := utils.NormalizeClosingDate(req.ClosingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// Pre-check for the duplicate key; the unique index catches the race.
	key := domain.ClosingKey{ClosingDate: date, Store: req.Store, Cashier: req.Cashier}
	exists, err := s.closingRepo.ExistsClosing(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing closing: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: closing for %s/%s on %s", apperrors.ErrDuplicate, req.Store, req.Cashier, date)
	}

	policy, err := s.settings.GetPolicy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reconciliation policy: %w", err)
	}

	summary := reconcile.ComputeSession(policy, sessionInput(date, req.BillCounts, req.Deposits, req.Payments, req.Justifications))

	now := time.Now()
	closing := &domain.ClosingRecord{
		ClosingDate:          date,
		Store:                req.Store,
		Cashier:              req.Cashier,
		BillTotal:            summary.BillTotal,
		FinalCashBalance:     summary.FinalCashBalance,
		ArmoredTotal:         summary.ArmoredTotal,
		PaymentMethods:       summary.PaymentMethods,
		Justifications:       pruneEmptyJustifications(summary.Justifications),
		GrandDifferenceTotal: summary.GrandDifferenceTotal,
		BalanceUnexplained:   summary.BalanceUnexplained,
		ResponsibleUser:      req.ResponsibleUser,
		Comments:             req.Comments,
		ValidationState:      domain.Unvalidated,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.closingRepo.SaveClosing(ctx, closing); err != nil {
		return nil, fmt.Errorf("failed to save closing: %w", err)
	}
	return closing, nil
}

func (s *closingService) GetClosingByID(ctx context.Context, closingID int64) (*domain.ClosingRecord, error) {
	closing, err := s.closingRepo.FindClosingByID(ctx, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get closing %d: %w", closingID, err)
	}
	return closing, nil
}

func (s *closingService) ListClosings(ctx context.Context, params dto.ListClosingsParams) ([]domain.ClosingRecord, error) {
	filter := portsrepo.ClosingFilter{
		Store:  params.Store,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.From != nil {
		from, err := utils.NormalizeClosingDate(*params.From)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date", apperrors.ErrValidation)
		}
		filter.FromDate = &from
	}
	if params.To != nil {
		to, err := utils.NormalizeClosingDate(*params.To)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date", apperrors.ErrValidation)
		}
		filter.ToDate = &to
	}
	if params.State != nil {
		state := domain.ValidationState(*params.State)
		if !state.IsValid() {
			return nil, fmt.Errorf("%w: invalid validation state %d", apperrors.ErrValidation, *params.State)
		}
		filter.State = &state
	}

	closings, err := s.closingRepo.ListClosings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list closings: %w", err)
	}
	if closings == nil {
		closings = []domain.ClosingRecord{}
	}
	return closings, nil
}

func (s *closingService) ClosingExists(ctx context.Context, date, store, cashier string) (bool, error) {
	normalized, err := utils.NormalizeClosingDate(date)
	if err != nil {
		return false, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	exists, err := s.closingRepo.ExistsClosing(ctx, domain.ClosingKey{ClosingDate: normalized, Store: store, Cashier: cashier})
	if err != nil {
		return false, fmt.Errorf("failed to check closing existence: %w", err)
	}
	return exists, nil
}

// UpdateClosing applies a partial edit and re-derives every dependent figure.
// The justifications key is omit-to-preserve: a nil pointer leaves the stored
// rows untouched, a present key (even an empty list) replaces them.
func (s *closingService) UpdateClosing(ctx context.Context, closingID int64, req dto.UpdateClosingRequest, updaterUserID string) (*domain.ClosingRecord, error) {
	existing, err := s.closingRepo.FindClosingByID(ctx, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load closing %d for update: %w", closingID, err)
	}

	policy, err := s.settings.GetPolicy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reconciliation policy: %w", err)
	}

	updated := *existing

	if req.BillTotal != nil {
		updated.BillTotal = monetary.Normalize(*req.BillTotal)
	}
	if req.ArmoredTotal != nil {
		updated.ArmoredTotal = monetary.Normalize(*req.ArmoredTotal)
	}
	updated.FinalCashBalance = updated.BillTotal.Sub(policy.TillFloat)
	derivedCash := reconcile.DynamicCashDeclared(updated.FinalCashBalance, updated.ArmoredTotal)

	if req.Payments != nil {
		ledger := reconcile.NewPaymentLedger(policy.PaymentMethods, policy.CashMethod, derivedCash)
		entries := make([]reconcile.PaymentEntry, 0, len(*req.Payments))
		for _, p := range *req.Payments {
			entries = append(entries, reconcile.PaymentEntry{Method: p.Method, Declared: p.Declared, Collected: p.Collected})
		}
		reconcile.ApplyPayments(ledger, policy, entries)
		updated.PaymentMethods = ledger.Rows()
	} else {
		rows := make([]domain.PaymentMethodRow, len(existing.PaymentMethods))
		copy(rows, existing.PaymentMethods)
		for i := range rows {
			if policy.IsCashMethod(rows[i].Method) {
				rows[i].Declared = derivedCash
			}
			rows[i].Recompute()
		}
		updated.PaymentMethods = rows
	}

	updated.GrandDifferenceTotal = decimal.Zero
	for _, row := range updated.PaymentMethods {
		updated.GrandDifferenceTotal = updated.GrandDifferenceTotal.Add(row.Difference)
	}

	replaceJustifications := req.Justifications != nil
	if replaceJustifications {
		justs := make([]domain.JustificationEntry, 0, len(*req.Justifications))
		for _, p := range *req.Justifications {
			justs = append(justs, justificationFromPayload(p, updated.ClosingDate, policy.DefaultReason(), closingID))
		}
		updated.Justifications = pruneEmptyJustifications(justs)
	}

	sumAdjustments := decimal.Zero
	for _, j := range updated.Justifications {
		sumAdjustments = sumAdjustments.Add(j.Adjustment)
	}
	updated.BalanceUnexplained = reconcile.BalanceUnexplained(updated.GrandDifferenceTotal, sumAdjustments)

	if req.ResponsibleUser != nil {
		updated.ResponsibleUser = *req.ResponsibleUser
	}
	if req.Comments != nil {
		updated.Comments = *req.Comments
	}

	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = updaterUserID

	if err := s.closingRepo.UpdateClosing(ctx, updated, replaceJustifications); err != nil {
		return nil, fmt.Errorf("failed to update closing %d: %w", closingID, err)
	}
	return &updated, nil
}

func (s *closingService) DeleteClosing(ctx context.Context, closingID int64) error {
	if err := s.closingRepo.DeleteClosing(ctx, closingID); err != nil {
		return fmt.Errorf("failed to delete closing %d: %w", closingID, err)
	}
	return nil
}

func (s *closingService) ValidateClosing(ctx context.Context, closingID int64, validatorUserID string) (*domain.ClosingRecord, error) {
	now := time.Now()
	return s.transition(ctx, closingID, domain.Validated, &validatorUserID, &now, validatorUserID)
}

// FlagClosingForReview routes a closing back through validation, clearing the
// validator identity so a later validation records who actually signed off.
func (s *closingService) FlagClosingForReview(ctx context.Context, closingID int64, reviewerUserID string) (*domain.ClosingRecord, error) {
	return s.transition(ctx, closingID, domain.FlaggedForReview, nil, nil, reviewerUserID)
}

func (s *closingService) ReopenClosing(ctx context.Context, closingID int64, userID string) (*domain.ClosingRecord, error) {
	return s.transition(ctx, closingID, domain.Unvalidated, nil, nil, userID)
}

func (s *closingService) transition(ctx context.Context, closingID int64, next domain.ValidationState, validatedBy *string, validatedAt *time.Time, userID string) (*domain.ClosingRecord, error) {
	closing, err := s.closingRepo.FindClosingByID(ctx, closingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load closing %d: %w", closingID, err)
	}

	if !closing.ValidationState.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, closing.ValidationState, next)
	}

	now := time.Now()
	if err := s.closingRepo.UpdateValidationState(ctx, closingID, next, validatedBy, validatedAt, userID, now); err != nil {
		return nil, fmt.Errorf("failed to update validation state of closing %d: %w", closingID, err)
	}

	closing.ValidationState = next
	closing.ValidatedBy = validatedBy
	closing.ValidatedAt = validatedAt
	closing.LastUpdatedBy = userID
	closing.LastUpdatedAt = now
	return closing, nil
}

func (s *closingService) PreviewClosing(ctx context.Context, req dto.PreviewClosingRequest) (*dto.PreviewClosingResponse, error) {
	date, err := utils.NormalizeClosingDate(req.ClosingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	policy, err := s.settings.GetPolicy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reconciliation policy: %w", err)
	}

	summary := reconcile.ComputeSession(policy, sessionInput(date, req.BillCounts, req.Deposits, req.Payments, req.Justifications))
	resp := dto.ToPreviewClosingResponse(summary)
	return &resp, nil
}

func (s *closingService) ClassifyClosing(ctx context.Context, closing *domain.ClosingRecord) (string, error) {
	policy, err := s.settings.GetPolicy(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load reconciliation policy: %w", err)
	}
	return string(reconcile.Classify(closing.BalanceUnexplained, policy.DifferenceTolerance, policy.SevereThreshold)), nil
}

// sessionInput converts API payloads into the reconcile package's input.
func sessionInput(date string, bills []dto.BillCountPayload, deposits []dto.ArmoredDepositPayload, payments []dto.PaymentEntryPayload, justs []dto.JustificationPayload) reconcile.SessionInput {
	in := reconcile.SessionInput{ClosingDate: date}
	for _, b := range bills {
		in.BillCounts = append(in.BillCounts, domain.BillCountEntry{
			FaceValue: decimal.NewFromInt(b.FaceValue),
			Count:     b.Count,
		})
	}
	for _, d := range deposits {
		in.Deposits = append(in.Deposits, domain.ArmoredDepositEntry{
			Code:   d.Code,
			Amount: monetary.Normalize(d.Amount),
		})
	}
	for _, p := range payments {
		in.Payments = append(in.Payments, reconcile.PaymentEntry{
			Method:    p.Method,
			Declared:  p.Declared,
			Collected: p.Collected,
		})
	}
	for _, j := range justs {
		in.Justifications = append(in.Justifications, justificationFromPayload(j, date, "", 0))
	}
	return in
}

func justificationFromPayload(p dto.JustificationPayload, closingDate, defaultReason string, closingID int64) domain.JustificationEntry {
	entry := domain.JustificationEntry{
		JustificationID: uuid.NewString(),
		ClosingID:       closingID,
		Date:            p.Date,
		OrderRef:        p.OrderRef,
		Client:          p.Client,
		PaymentMethod:   p.PaymentMethod,
		Adjustment:      monetary.Normalize(p.Adjustment),
		Reason:          p.Reason,
	}
	if entry.Date == "" {
		entry.Date = closingDate
	}
	if entry.Reason == "" {
		entry.Reason = defaultReason
	}
	return entry
}

// pruneEmptyJustifications drops entries that carry no information at all.
// During the session nothing is rejected for being empty; the filter runs
// only here, at save time.
func pruneEmptyJustifications(entries []domain.JustificationEntry) []domain.JustificationEntry {
	kept := make([]domain.JustificationEntry, 0, len(entries))
	for _, e := range entries {
		if e.Adjustment.IsZero() && e.OrderRef == "" && e.Client == "" {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
