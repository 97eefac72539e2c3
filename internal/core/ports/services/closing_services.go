package services

import (
	"context"

	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	"github.com/Rodfox31/cierre-caja-backend/internal/dto"
)

// ClosingReaderSvc defines read operations over persisted closings.
type ClosingReaderSvc interface {
	GetClosingByID(ctx context.Context, closingID int64) (*domain.ClosingRecord, error)
	ListClosings(ctx context.Context, params dto.ListClosingsParams) ([]domain.ClosingRecord, error)
	ClosingExists(ctx context.Context, date, store, cashier string) (bool, error)
}

// ClosingWriterSvc defines lifecycle operations on closings.
type ClosingWriterSvc interface {
	// CreateClosing recomputes the whole reconciliation server-side and
	// persists the aggregate. Returns apperrors.ErrDuplicate when a closing
	// for the same (date, store, cashier) exists.
	CreateClosing(ctx context.Context, req dto.CreateClosingRequest, creatorUserID string) (*domain.ClosingRecord, error)

	// UpdateClosing applies a partial edit. The justifications key follows
	// the omit-to-preserve contract.
	UpdateClosing(ctx context.Context, closingID int64, req dto.UpdateClosingRequest, updaterUserID string) (*domain.ClosingRecord, error)

	DeleteClosing(ctx context.Context, closingID int64) error
}

// ClosingValidatorSvc drives the supervision state machine.
type ClosingValidatorSvc interface {
	ValidateClosing(ctx context.Context, closingID int64, validatorUserID string) (*domain.ClosingRecord, error)
	FlagClosingForReview(ctx context.Context, closingID int64, reviewerUserID string) (*domain.ClosingRecord, error)
	ReopenClosing(ctx context.Context, closingID int64, userID string) (*domain.ClosingRecord, error)
}

// ClosingPreviewSvc runs the reconciliation over a draft session without
// persisting.
type ClosingPreviewSvc interface {
	PreviewClosing(ctx context.Context, req dto.PreviewClosingRequest) (*dto.PreviewClosingResponse, error)
}

// ClosingSeveritySvc classifies a closing's unexplained balance under the
// current policy.
type ClosingSeveritySvc interface {
	ClassifyClosing(ctx context.Context, closing *domain.ClosingRecord) (string, error)
}

// ClosingSvcFacade combines every closing service interface.
type ClosingSvcFacade interface {
	ClosingReaderSvc
	ClosingWriterSvc
	ClosingValidatorSvc
	ClosingPreviewSvc
	ClosingSeveritySvc
}
