package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rodfox31/cierre-caja-backend/internal/apperrors"
	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	portsrepo "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/repositories"
	"github.com/Rodfox31/cierre-caja-backend/internal/models"
	"github.com/Rodfox31/cierre-caja-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The settings table holds a single row keyed by this ID.
const settingsRowID = int16(1)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(db *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) GetPolicy(ctx context.Context) (*domain.ReconciliationPolicy, error) {
	query := `
        SELECT settings_id, stores, payment_methods, cash_method, reasons,
               till_float, difference_tolerance, severe_threshold
        FROM settings
        WHERE settings_id = $1;
    `
	var m models.Settings
	var storesBlob, methodsBlob, reasonsBlob []byte
	err := r.Pool.QueryRow(ctx, query, settingsRowID).Scan(
		&m.SettingsID,
		&storesBlob,
		&methodsBlob,
		&m.CashMethod,
		&reasonsBlob,
		&m.TillFloat,
		&m.DifferenceTolerance,
		&m.SevereThreshold,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if err := json.Unmarshal(storesBlob, &m.Stores); err != nil {
		return nil, fmt.Errorf("failed to decode stores: %w", err)
	}
	if err := json.Unmarshal(methodsBlob, &m.PaymentMethods); err != nil {
		return nil, fmt.Errorf("failed to decode payment methods: %w", err)
	}
	if err := json.Unmarshal(reasonsBlob, &m.Reasons); err != nil {
		return nil, fmt.Errorf("failed to decode reasons: %w", err)
	}

	policy := mapping.ToDomainPolicy(m)
	return &policy, nil
}

func (r *PgxSettingsRepository) SavePolicy(ctx context.Context, policy domain.ReconciliationPolicy, updatedBy string) error {
	m := mapping.ToModelSettings(policy)
	storesBlob, err := json.Marshal(m.Stores)
	if err != nil {
		return fmt.Errorf("failed to encode stores: %w", err)
	}
	methodsBlob, err := json.Marshal(m.PaymentMethods)
	if err != nil {
		return fmt.Errorf("failed to encode payment methods: %w", err)
	}
	reasonsBlob, err := json.Marshal(m.Reasons)
	if err != nil {
		return fmt.Errorf("failed to encode reasons: %w", err)
	}

	now := time.Now()
	query := `
        INSERT INTO settings (
            settings_id, stores, payment_methods, cash_method, reasons,
            till_float, difference_tolerance, severe_threshold,
            created_at, created_by, last_updated_at, last_updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $9, $10)
        ON CONFLICT (settings_id) DO UPDATE SET
            stores = EXCLUDED.stores,
            payment_methods = EXCLUDED.payment_methods,
            cash_method = EXCLUDED.cash_method,
            reasons = EXCLUDED.reasons,
            till_float = EXCLUDED.till_float,
            difference_tolerance = EXCLUDED.difference_tolerance,
            severe_threshold = EXCLUDED.severe_threshold,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err = r.Pool.Exec(ctx, query,
		settingsRowID,
		storesBlob,
		methodsBlob,
		m.CashMethod,
		reasonsBlob,
		m.TillFloat,
		m.DifferenceTolerance,
		m.SevereThreshold,
		now,
		updatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
