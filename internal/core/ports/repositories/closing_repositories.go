package repositories

import (
	"context"
	"time"

	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
)

// ClosingFilter narrows ListClosings for the reporting screens.
type ClosingFilter struct {
	Store    *string
	FromDate *string // canonical YYYY-MM-DD, inclusive
	ToDate   *string // canonical YYYY-MM-DD, inclusive
	State    *domain.ValidationState
	Limit    int
	Offset   int
}

// ClosingReader defines read operations for closing data.
type ClosingReader interface {
	// FindClosingByID retrieves a closing and its justification rows.
	FindClosingByID(ctx context.Context, closingID int64) (*domain.ClosingRecord, error)

	// ListClosings retrieves closings matching the filter, newest date first.
	// Justification rows are included on each record.
	ListClosings(ctx context.Context, filter ClosingFilter) ([]domain.ClosingRecord, error)

	// ExistsClosing reports whether a closing already exists for the natural
	// key. Best-effort pre-check; the unique index is the real guard.
	ExistsClosing(ctx context.Context, key domain.ClosingKey) (bool, error)
}

// ClosingWriter defines write operations for closing data.
type ClosingWriter interface {
	// SaveClosing inserts a closing and its justification rows in one
	// transaction, assigning ClosingID. A unique-index violation on the
	// (date, store, cashier) key surfaces as apperrors.ErrDuplicate.
	SaveClosing(ctx context.Context, closing *domain.ClosingRecord) error

	// UpdateClosing rewrites the closing row. When replaceJustifications is
	// true the closing's justification rows are replaced by exactly
	// closing.Justifications (possibly none) in the same transaction; when
	// false the existing rows are left untouched.
	UpdateClosing(ctx context.Context, closing domain.ClosingRecord, replaceJustifications bool) error

	// UpdateValidationState writes the supervision fields only.
	UpdateValidationState(ctx context.Context, closingID int64, state domain.ValidationState, validatedBy *string, validatedAt *time.Time, updatedBy string, updatedAt time.Time) error

	// DeleteClosing removes a closing and, by cascade, its justifications.
	DeleteClosing(ctx context.Context, closingID int64) error
}

// ClosingRepositoryFacade combines all closing repository interfaces.
type ClosingRepositoryFacade interface {
	ClosingReader
	ClosingWriter
}
