package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rodfox31/cierre-caja-backend/internal/apperrors"
	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	portsrepo "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/repositories"
	"github.com/Rodfox31/cierre-caja-backend/internal/models"
	"github.com/Rodfox31/cierre-caja-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type PgxClosingRepository struct {
	BaseRepository
}

func newPgxClosingRepository(db *pgxpool.Pool) portsrepo.ClosingRepositoryFacade {
	return &PgxClosingRepository{BaseRepository{Pool: db}}
}

// Ensure PgxClosingRepository implements the facade
var _ portsrepo.ClosingRepositoryFacade = (*PgxClosingRepository)(nil)

const closingColumns = `closing_id, closing_date, store, cashier,
	bill_total, final_cash_balance, armored_total, payment_methods,
	grand_difference_total, balance_unexplained,
	responsible_user, comments,
	validation_state, validated_by, validated_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanClosing(row pgx.Row) (*models.Closing, error) {
	var m models.Closing
	var paymentBlob []byte
	err := row.Scan(
		&m.ClosingID,
		&m.ClosingDate,
		&m.Store,
		&m.Cashier,
		&m.BillTotal,
		&m.FinalCashBalance,
		&m.ArmoredTotal,
		&paymentBlob,
		&m.GrandDifferenceTotal,
		&m.BalanceUnexplained,
		&m.ResponsibleUser,
		&m.Comments,
		&m.ValidationState,
		&m.ValidatedBy,
		&m.ValidatedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if len(paymentBlob) > 0 {
		if err := json.Unmarshal(paymentBlob, &m.PaymentMethods); err != nil {
			return nil, fmt.Errorf("failed to decode payment methods blob: %w", err)
		}
	}
	return &m, nil
}

func (r *PgxClosingRepository) SaveClosing(ctx context.Context, closing *domain.ClosingRecord) error {
	model := mapping.ToModelClosing(*closing)
	paymentBlob, err := json.Marshal(model.PaymentMethods)
	if err != nil {
		return fmt.Errorf("failed to encode payment methods: %w", err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
        INSERT INTO closings (
            closing_date, store, cashier,
            bill_total, final_cash_balance, armored_total, payment_methods,
            grand_difference_total, balance_unexplained,
            responsible_user, comments,
            validation_state, validated_by, validated_at,
            created_at, created_by, last_updated_at, last_updated_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        RETURNING closing_id;
    `
	err = tx.QueryRow(ctx, query,
		model.ClosingDate,
		model.Store,
		model.Cashier,
		model.BillTotal,
		model.FinalCashBalance,
		model.ArmoredTotal,
		paymentBlob,
		model.GrandDifferenceTotal,
		model.BalanceUnexplained,
		model.ResponsibleUser,
		model.Comments,
		model.ValidationState,
		model.ValidatedBy,
		model.ValidatedAt,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	).Scan(&closing.ClosingID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: closing for %s/%s on %s", apperrors.ErrDuplicate, closing.Store, closing.Cashier, closing.ClosingDate)
		}
		return fmt.Errorf("failed to insert closing: %w", err)
	}

	for i := range closing.Justifications {
		closing.Justifications[i].ClosingID = closing.ClosingID
	}
	if err := insertJustifications(ctx, tx, closing.Justifications); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertJustifications(ctx context.Context, tx pgx.Tx, entries []domain.JustificationEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
        INSERT INTO justifications (
            justification_id, closing_id, entry_date, order_ref, client,
            payment_method, adjustment, reason, auto_seeded
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	for _, entry := range entries {
		m := mapping.ToModelJustification(entry)
		if _, err := tx.Exec(ctx, query,
			m.JustificationID,
			m.ClosingID,
			m.Date,
			m.OrderRef,
			m.Client,
			m.PaymentMethod,
			m.Adjustment,
			m.Reason,
			m.AutoSeeded,
		); err != nil {
			return fmt.Errorf("failed to insert justification %s: %w", m.JustificationID, err)
		}
	}
	return nil
}

func (r *PgxClosingRepository) FindClosingByID(ctx context.Context, closingID int64) (*domain.ClosingRecord, error) {
	query := `SELECT ` + closingColumns + ` FROM closings WHERE closing_id = $1;`
	model, err := scanClosing(r.Pool.QueryRow(ctx, query, closingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find closing %d: %w", closingID, err)
	}

	justifications, err := r.loadJustifications(ctx, []int64{closingID})
	if err != nil {
		return nil, err
	}

	closing := mapping.ToDomainClosing(*model)
	closing.Justifications = justifications[closingID]
	return &closing, nil
}

func (r *PgxClosingRepository) ListClosings(ctx context.Context, filter portsrepo.ClosingFilter) ([]domain.ClosingRecord, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Store != nil {
		conditions = append(conditions, "store = "+arg(*filter.Store))
	}
	if filter.FromDate != nil {
		conditions = append(conditions, "closing_date >= "+arg(*filter.FromDate))
	}
	if filter.ToDate != nil {
		conditions = append(conditions, "closing_date <= "+arg(*filter.ToDate))
	}
	if filter.State != nil {
		conditions = append(conditions, "validation_state = "+arg(int16(*filter.State)))
	}

	query := `SELECT ` + closingColumns + ` FROM closings`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY closing_date DESC, closing_id DESC"
	query += " LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query closings: %w", err)
	}
	defer rows.Close()

	var closings []domain.ClosingRecord
	var ids []int64
	for rows.Next() {
		model, err := scanClosing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan closing row: %w", err)
		}
		closings = append(closings, mapping.ToDomainClosing(*model))
		ids = append(ids, model.ClosingID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating closing rows: %w", err)
	}

	if len(ids) > 0 {
		justifications, err := r.loadJustifications(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range closings {
			closings[i].Justifications = justifications[closings[i].ClosingID]
		}
	}

	return closings, nil
}

func (r *PgxClosingRepository) loadJustifications(ctx context.Context, closingIDs []int64) (map[int64][]domain.JustificationEntry, error) {
	query := `
        SELECT justification_id, closing_id, entry_date, order_ref, client,
               payment_method, adjustment, reason, auto_seeded
        FROM justifications
        WHERE closing_id = ANY($1)
        ORDER BY closing_id, justification_id;
    `
	rows, err := r.Pool.Query(ctx, query, closingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query justifications: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.JustificationEntry, len(closingIDs))
	for rows.Next() {
		var m models.Justification
		if err := rows.Scan(
			&m.JustificationID,
			&m.ClosingID,
			&m.Date,
			&m.OrderRef,
			&m.Client,
			&m.PaymentMethod,
			&m.Adjustment,
			&m.Reason,
			&m.AutoSeeded,
		); err != nil {
			return nil, fmt.Errorf("failed to scan justification row: %w", err)
		}
		result[m.ClosingID] = append(result[m.ClosingID], mapping.ToDomainJustification(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating justification rows: %w", err)
	}
	return result, nil
}

func (r *PgxClosingRepository) ExistsClosing(ctx context.Context, key domain.ClosingKey) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM closings WHERE closing_date = $1 AND store = $2 AND cashier = $3);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, key.ClosingDate, key.Store, key.Cashier).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check closing existence: %w", err)
	}
	return exists, nil
}

func (r *PgxClosingRepository) UpdateClosing(ctx context.Context, closing domain.ClosingRecord, replaceJustifications bool) error {
	model := mapping.ToModelClosing(closing)
	paymentBlob, err := json.Marshal(model.PaymentMethods)
	if err != nil {
		return fmt.Errorf("failed to encode payment methods: %w", err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
        UPDATE closings SET
            bill_total = $2,
            final_cash_balance = $3,
            armored_total = $4,
            payment_methods = $5,
            grand_difference_total = $6,
            balance_unexplained = $7,
            responsible_user = $8,
            comments = $9,
            last_updated_at = $10,
            last_updated_by = $11
        WHERE closing_id = $1;
    `
	tag, err := tx.Exec(ctx, query,
		model.ClosingID,
		model.BillTotal,
		model.FinalCashBalance,
		model.ArmoredTotal,
		paymentBlob,
		model.GrandDifferenceTotal,
		model.BalanceUnexplained,
		model.ResponsibleUser,
		model.Comments,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update closing %d: %w", closing.ClosingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if replaceJustifications {
		if _, err := tx.Exec(ctx, `DELETE FROM justifications WHERE closing_id = $1;`, closing.ClosingID); err != nil {
			return fmt.Errorf("failed to clear justifications of closing %d: %w", closing.ClosingID, err)
		}
		for i := range closing.Justifications {
			closing.Justifications[i].ClosingID = closing.ClosingID
		}
		if err := insertJustifications(ctx, tx, closing.Justifications); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxClosingRepository) UpdateValidationState(ctx context.Context, closingID int64, state domain.ValidationState, validatedBy *string, validatedAt *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
        UPDATE closings SET
            validation_state = $2,
            validated_by = $3,
            validated_at = $4,
            last_updated_at = $5,
            last_updated_by = $6
        WHERE closing_id = $1;
    `
	tag, err := r.Pool.Exec(ctx, query, closingID, int16(state), validatedBy, validatedAt, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update validation state of closing %d: %w", closingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClosingRepository) DeleteClosing(ctx context.Context, closingID int64) error {
	// justifications go with it via ON DELETE CASCADE
	tag, err := r.Pool.Exec(ctx, `DELETE FROM closings WHERE closing_id = $1;`, closingID)
	if err != nil {
		return fmt.Errorf("failed to delete closing %d: %w", closingID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
