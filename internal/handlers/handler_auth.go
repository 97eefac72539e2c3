package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Rodfox31/cierre-caja-backend/internal/apperrors"
	portssvc "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/services"
	"github.com/Rodfox31/cierre-caja-backend/internal/dto"
	"github.com/Rodfox31/cierre-caja-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles supervisor login.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Warn("Login rejected", slog.String("username", req.Username))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	logger.Info("Login successful", slog.String("username", req.Username))
	c.JSON(http.StatusOK, resp)
}
