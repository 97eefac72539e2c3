package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Rodfox31/cierre-caja-backend/internal/apperrors"
	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	portsrepo "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/repositories"
	portssvc "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/services"
	"github.com/Rodfox31/cierre-caja-backend/internal/dto"
)

type settingsService struct {
	settingsRepo portsrepo.SettingsRepository
}

func NewSettingsService(settingsRepo portsrepo.SettingsRepository) portssvc.SettingsSvcFacade {
	return &settingsService{settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetPolicy returns the stored policy, or the defaults when none has been
// saved yet. Any other repository error is surfaced.
func (s *settingsService) GetPolicy(ctx context.Context) (domain.ReconciliationPolicy, error) {
	policy, err := s.settingsRepo.GetPolicy(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.DefaultReconciliationPolicy(), nil
		}
		return domain.ReconciliationPolicy{}, fmt.Errorf("failed to load policy: %w", err)
	}
	return *policy, nil
}

func (s *settingsService) UpdatePolicy(ctx context.Context, req dto.UpdateSettingsRequest, updaterUserID string) (domain.ReconciliationPolicy, error) {
	if !slices.Contains(req.PaymentMethods, req.CashMethod) {
		return domain.ReconciliationPolicy{}, fmt.Errorf("%w: cash method %q is not a configured payment method", apperrors.ErrValidation, req.CashMethod)
	}
	if req.TillFloat.IsNegative() || req.DifferenceTolerance.IsNegative() || req.SevereThreshold.IsNegative() {
		return domain.ReconciliationPolicy{}, fmt.Errorf("%w: thresholds must not be negative", apperrors.ErrValidation)
	}

	policy := domain.ReconciliationPolicy{
		Stores:              req.Stores,
		PaymentMethods:      req.PaymentMethods,
		CashMethod:          req.CashMethod,
		Reasons:             req.Reasons,
		TillFloat:           req.TillFloat,
		DifferenceTolerance: req.DifferenceTolerance,
		SevereThreshold:     req.SevereThreshold,
	}

	if err := s.settingsRepo.SavePolicy(ctx, policy, updaterUserID); err != nil {
		return domain.ReconciliationPolicy{}, fmt.Errorf("failed to save policy: %w", err)
	}
	return policy, nil
}
