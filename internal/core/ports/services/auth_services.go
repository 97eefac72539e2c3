package services

import (
	"context"

	"github.com/Rodfox31/cierre-caja-backend/internal/dto"
)

// AuthSvcFacade issues bearer tokens for the configured supervisor account.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
