package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cuongbtq/jobsearch/internal/api/dto"
	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/service"
	"github.com/gin-gonic/gin"
)

// JobAlertHandler handles job alert requests
type JobAlertHandler struct {
	logger *slog.Logger
	alerts *service.JobAlertService
}

func NewJobAlertHandler(deps *Dependencies) *JobAlertHandler {
	return &JobAlertHandler{
		logger: deps.Logger,
		alerts: deps.Services.JobAlerts,
	}
}

func (h *JobAlertHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.alerts.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to list alerts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (h *JobAlertHandler) GetAlert(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid alert id")
		return
	}

	alert, err := h.alerts.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get alert")
		return
	}

	c.JSON(http.StatusOK, alert)
}

func (h *JobAlertHandler) CreateAlert(c *gin.Context) {
	var req dto.CreateJobAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, h.logger, err, "Invalid request body")
		return
	}

	alert, err := h.alerts.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, h.logger, err, "Failed to create alert")
		return
	}

	c.JSON(http.StatusCreated, alert)
}

func (h *JobAlertHandler) UpdateAlert(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid alert id")
		return
	}

	var patch domain.JobAlertPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		invalidRequest(c, h.logger, err, "Invalid request body")
		return
	}
	if patch.Frequency != nil && !patch.Frequency.Valid() {
		respondError(c, h.logger, fmt.Errorf("%w: unknown frequency %q", domain.ErrInvalidInput, *patch.Frequency), "Invalid request body")
		return
	}
	if patch.Keywords != nil && !validKeywords(*patch.Keywords) {
		respondError(c, h.logger, fmt.Errorf("%w: keywords must hold at least one non-blank value", domain.ErrInvalidInput), "Invalid request body")
		return
	}

	alert, err := h.alerts.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update alert")
		return
	}

	c.JSON(http.StatusOK, alert)
}

func (h *JobAlertHandler) DeleteAlert(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid alert id")
		return
	}

	deleted, err := h.alerts.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to delete alert")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// ToggleAlert handles POST /api/v1/alerts/:id/toggle
func (h *JobAlertHandler) ToggleAlert(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid alert id")
		return
	}

	alert, err := h.alerts.ToggleActive(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to toggle alert")
		return
	}

	c.JSON(http.StatusOK, alert)
}

// validKeywords mirrors the create rule: at least one keyword, none blank
func validKeywords(keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, k := range keywords {
		if strings.TrimSpace(k) == "" {
			return false
		}
	}
	return true
}
