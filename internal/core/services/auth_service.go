package services

import (
	"context"
	"fmt"

	"github.com/Rodfox31/cierre-caja-backend/internal/apperrors"
	portssvc "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/services"
	"github.com/Rodfox31/cierre-caja-backend/internal/dto"
	"github.com/Rodfox31/cierre-caja-backend/internal/platform/config"
	"github.com/Rodfox31/cierre-caja-backend/internal/utils"
)

type authService struct {
	cfg *config.Config
}

// NewAuthService creates the auth service backed by the single supervisor
// account from configuration.
func NewAuthService(cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.cfg.SupervisorPasswordHash == "" {
		return nil, fmt.Errorf("%w: login is not configured", apperrors.ErrUnauthorized)
	}
	if req.Username != s.cfg.SupervisorUser || !utils.CheckPasswordHash(req.Password, s.cfg.SupervisorPasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(req.Username, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.cfg.JWTExpiryDuration.Seconds()),
	}, nil
}
