package generator

import (
	"fmt"
	"net/http"
	"time"

	apierrors "github.com/balzmuri/cvgen/internal/errors"
	"github.com/balzmuri/cvgen/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the generation service over the gin front end.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a Handler around the given service.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithComponent("http"),
	}
}

// GenerateCV handles CV generation.
// POST /generate-cv, JSON or form body (form for direct mobile downloads).
func (h *Handler) GenerateCV(c *gin.Context) {
	var req Request
	if err := c.ShouldBind(&req); err != nil {
		apierrors.AbortWithBadRequest(c, "Invalid request body", nil)
		return
	}

	// Missing fields fall back to the documented defaults.
	if req.Title == "" {
		req.Title = "CV"
	}
	if req.Template == "" {
		req.Template = h.service.cfg.DefaultTemplate
	}
	if req.Style == "" {
		req.Style = DefaultStyle
	}

	ctx := logger.ContextWithRequestID(c.Request.Context(), uuid.NewString())
	ctx = logger.ContextWithTemplate(ctx, req.Template)

	artifact, err := h.service.Generate(ctx, req)
	if err != nil {
		if IsDomainError(err) {
			h.logger.WithContext(ctx).Error("CV generation failed", "error", err)
			apierrors.AbortWithBadRequest(c, err.Error(), nil)
			return
		}

		h.logger.WithContext(ctx).Error("unexpected generation error", "error", err)
		apierrors.AbortWithInternal(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, "application/pdf", artifact.Data)
}

// HealthCheck reports service liveness.
// GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "CV Generation Service",
	})
}

// AvailableTemplates lists the template base names in the templates root.
// GET /available-templates.
func (h *Handler) AvailableTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates()
	if err != nil {
		h.logger.Error("failed to list templates", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}
