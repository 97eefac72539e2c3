package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Rodfox31/cierre-caja-backend/internal/apperrors"
	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	portssvc "github.com/Rodfox31/cierre-caja-backend/internal/core/ports/services"
	"github.com/Rodfox31/cierre-caja-backend/internal/dto"
	"github.com/Rodfox31/cierre-caja-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// closingHandler handles HTTP requests for cash register closings.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
}

func newClosingHandler(cs portssvc.ClosingSvcFacade) *closingHandler {
	return &closingHandler{closingService: cs}
}

// RegisterClosingRoutes registers routes related to closings.
func RegisterClosingRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade) {
	h := newClosingHandler(closingService)

	closings := rg.Group("/closings")
	{
		closings.POST("", h.createClosing)
		closings.GET("", h.listClosings)
		closings.GET("/exists", h.closingExists)
		closings.POST("/preview", h.previewClosing)
		closings.GET("/:id", h.getClosingByID)
		closings.PUT("/:id", h.updateClosing)
		closings.DELETE("/:id", h.deleteClosing)
		closings.POST("/:id/validate", h.validateClosing)
		closings.POST("/:id/flag", h.flagClosing)
		closings.POST("/:id/reopen", h.reopenClosing)
	}
}

func (h *closingHandler) closingIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid closing ID"})
		return 0, false
	}
	return id, true
}

func (h *closingHandler) createClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClosing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create closing",
		slog.String("closing_date", req.ClosingDate),
		slog.String("store", req.Store),
		slog.String("cashier", req.Cashier),
	)

	created, err := h.closingService.CreateClosing(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Attempted to create duplicate closing")
			c.JSON(http.StatusConflict, gin.H{"error": "A closing already exists for this date, store and cashier"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating closing", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create closing in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create closing"})
		}
		return
	}

	severity, err := h.closingService.ClassifyClosing(c.Request.Context(), created)
	if err != nil {
		logger.Error("Failed to classify closing", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to classify closing"})
		return
	}

	logger.Info("Closing created successfully", slog.Int64("closing_id", created.ClosingID))
	c.JSON(http.StatusCreated, dto.ToClosingResponse(created, severity))
}

func (h *closingHandler) listClosings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListClosingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListClosings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	closings, err := h.closingService.ListClosings(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list closings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list closings"})
		return
	}

	responses := make([]dto.ClosingResponse, 0, len(closings))
	for i := range closings {
		severity, err := h.closingService.ClassifyClosing(c.Request.Context(), &closings[i])
		if err != nil {
			logger.Error("Failed to classify closing", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to classify closings"})
			return
		}
		responses = append(responses, dto.ToClosingResponse(&closings[i], severity))
	}

	c.JSON(http.StatusOK, gin.H{"closings": responses})
}

func (h *closingHandler) closingExists(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	date := c.Query("date")
	store := c.Query("store")
	cashier := c.Query("cashier")
	if date == "" || store == "" || cashier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date, store and cashier query parameters are required"})
		return
	}

	exists, err := h.closingService.ClosingExists(c.Request.Context(), date, store, cashier)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to check closing existence", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check closing existence"})
		return
	}

	c.JSON(http.StatusOK, dto.ExistsClosingResponse{Exists: exists})
}

func (h *closingHandler) previewClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PreviewClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewClosing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.closingService.PreviewClosing(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to preview closing", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview closing"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *closingHandler) getClosingByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closingID, ok := h.closingIDParam(c)
	if !ok {
		return
	}

	closing, err := h.closingService.GetClosingByID(c.Request.Context(), closingID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Closing not found"})
			return
		}
		logger.Error("Failed to get closing", slog.Int64("closing_id", closingID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve closing"})
		return
	}

	severity, err := h.closingService.ClassifyClosing(c.Request.Context(), closing)
	if err != nil {
		logger.Error("Failed to classify closing", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to classify closing"})
		return
	}

	c.JSON(http.StatusOK, dto.ToClosingResponse(closing, severity))
}

func (h *closingHandler) updateClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closingID, ok := h.closingIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateClosing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Updater user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.closingService.UpdateClosing(c.Request.Context(), closingID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Closing not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update closing", slog.Int64("closing_id", closingID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update closing"})
		}
		return
	}

	severity, err := h.closingService.ClassifyClosing(c.Request.Context(), updated)
	if err != nil {
		logger.Error("Failed to classify closing", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to classify closing"})
		return
	}

	logger.Info("Closing updated successfully", slog.Int64("closing_id", closingID))
	c.JSON(http.StatusOK, dto.ToClosingResponse(updated, severity))
}

func (h *closingHandler) deleteClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closingID, ok := h.closingIDParam(c)
	if !ok {
		return
	}

	if err := h.closingService.DeleteClosing(c.Request.Context(), closingID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Closing not found"})
			return
		}
		logger.Error("Failed to delete closing", slog.Int64("closing_id", closingID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete closing"})
		return
	}

	logger.Info("Closing deleted", slog.Int64("closing_id", closingID))
	c.Status(http.StatusNoContent)
}

func (h *closingHandler) validateClosing(c *gin.Context) {
	h.transition(c, h.closingService.ValidateClosing)
}

func (h *closingHandler) flagClosing(c *gin.Context) {
	h.transition(c, h.closingService.FlagClosingForReview)
}

func (h *closingHandler) reopenClosing(c *gin.Context) {
	h.transition(c, h.closingService.ReopenClosing)
}

// transition runs one of the supervision state changes. All three share the
// same request shape and error mapping.
func (h *closingHandler) transition(c *gin.Context, fn func(ctx context.Context, closingID int64, userID string) (*domain.ClosingRecord, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closingID, ok := h.closingIDParam(c)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	closing, err := fn(c.Request.Context(), closingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Closing not found"})
		case errors.Is(err, apperrors.ErrInvalidTransition):
			logger.Warn("Invalid validation state transition", slog.Int64("closing_id", closingID), slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to change validation state", slog.Int64("closing_id", closingID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change validation state"})
		}
		return
	}

	severity, err := h.closingService.ClassifyClosing(c.Request.Context(), closing)
	if err != nil {
		logger.Error("Failed to classify closing", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to classify closing"})
		return
	}

	logger.Info("Validation state changed", slog.Int64("closing_id", closingID), slog.String("state", closing.ValidationState.String()))
	c.JSON(http.StatusOK, dto.ToClosingResponse(closing, severity))
}
