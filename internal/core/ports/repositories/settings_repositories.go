package repositories

import (
	"context"

	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
)

// SettingsRepository persists the reconciliation policy (stores, methods,
// reasons and thresholds). Returns apperrors.ErrNotFound when the settings
// row has never been written.
type SettingsRepository interface {
	GetPolicy(ctx context.Context) (*domain.ReconciliationPolicy, error)
	SavePolicy(ctx context.Context, policy domain.ReconciliationPolicy, updatedBy string) error
}
