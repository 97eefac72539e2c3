package services

import (
	"context"

	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	"github.com/Rodfox31/cierre-caja-backend/internal/dto"
)

// SettingsSvcFacade exposes the reconciliation policy. GetPolicy never fails
// on an unseeded database; it falls back to the default policy so the
// workflow is usable out of the box.
type SettingsSvcFacade interface {
	GetPolicy(ctx context.Context) (domain.ReconciliationPolicy, error)
	UpdatePolicy(ctx context.Context, req dto.UpdateSettingsRequest, updaterUserID string) (domain.ReconciliationPolicy, error)
}
