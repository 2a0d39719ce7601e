// Package handler contains HTTP handlers for the API.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/handy-recon/internal/domain"
)

// Investigator runs investigations for the API.
type Investigator interface {
	Investigate(ctx context.Context, username string) (*domain.InvestigationReport, error)
	Platforms() []domain.PlatformTarget
}

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Stage   string `json:"stage,omitempty"`
	Error   string `json:"error"`
}

// InvestigateHandler handles investigation requests.
type InvestigateHandler struct {
	investigator Investigator
	logger       *zap.Logger
}

// NewInvestigateHandler creates a new InvestigateHandler.
func NewInvestigateHandler(investigator Investigator, logger *zap.Logger) *InvestigateHandler {
	return &InvestigateHandler{
		investigator: investigator,
		logger:       logger.Named("investigate_handler"),
	}
}

// Handle processes POST /api/v1/investigations requests.
func (h *InvestigateHandler) Handle(c *gin.Context) {
	startTime := time.Now()
	logger := h.logger.With(zap.String("request_id", c.GetString(requestIDKey)))

	var req domain.InvestigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	report, err := h.investigator.Investigate(c.Request.Context(), req.Username)
	if err != nil {
		status, body := errorResponse(err)
		logger.Warn("investigation failed",
			zap.Int("status", status),
			zap.String("stage", body.Stage),
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)),
		)
		c.JSON(status, body)
		return
	}

	logger.Info("investigation completed",
		zap.String("operation_id", report.OperationID),
		zap.String("risk_level", string(report.Risk.Level)),
		zap.Duration("duration", time.Since(startTime)),
	)
	c.JSON(http.StatusOK, report)
}

// errorResponse maps an investigation error to a status code and body.
func errorResponse(err error) (int, ErrorResponse) {
	body := ErrorResponse{Error: err.Error()}

	stage, ok := domain.FailedStage(err)
	if !ok {
		body.Error = "Internal error during investigation"
		return http.StatusInternalServerError, body
	}
	body.Stage = string(stage)

	switch {
	case errors.Is(err, domain.ErrEmptyUsername), errors.Is(err, domain.ErrInvalidUsername):
		return http.StatusBadRequest, body
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, body
	default:
		return http.StatusUnprocessableEntity, body
	}
}

// PlatformsHandler lists the configured platforms.
type PlatformsHandler struct {
	investigator Investigator
}

// NewPlatformsHandler creates a new PlatformsHandler.
func NewPlatformsHandler(investigator Investigator) *PlatformsHandler {
	return &PlatformsHandler{investigator: investigator}
}

// Handle processes GET /api/v1/platforms requests.
func (h *PlatformsHandler) Handle(c *gin.Context) {
	platforms := h.investigator.Platforms()
	c.JSON(http.StatusOK, gin.H{
		"platforms": platforms,
		"count":     len(platforms),
	})
}

// HealthHandler handles health check requests.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Handle processes GET /health requests.
func (h *HealthHandler) Handle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadyHandler handles readiness check requests.
type ReadyHandler struct {
	investigator Investigator
}

// NewReadyHandler creates a new ReadyHandler.
func NewReadyHandler(investigator Investigator) *ReadyHandler {
	return &ReadyHandler{investigator: investigator}
}

// Handle processes GET /ready requests.
func (h *ReadyHandler) Handle(c *gin.Context) {
	if len(h.investigator.Platforms()) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": domain.ErrNoPlatforms.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
