package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobsearch/internal/api/dto"
	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/query"
	"github.com/cuongbtq/jobsearch/internal/service"
	"github.com/gin-gonic/gin"
)

// ApplicationHandler handles application tracking requests
type ApplicationHandler struct {
	logger       *slog.Logger
	applications *service.ApplicationService
}

func NewApplicationHandler(deps *Dependencies) *ApplicationHandler {
	return &ApplicationHandler{
		logger:       deps.Logger,
		applications: deps.Services.Applications,
	}
}

// ListApplications handles GET /api/v1/applications?status=
// Counts always cover every application so the status tabs stay stable
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidRequest(c, h.logger, err, "Invalid query parameters")
		return
	}

	apps, err := h.applications.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to list applications")
		return
	}

	c.JSON(http.StatusOK, dto.ListApplicationsResponse{
		Applications: query.FilterByStatus(apps, req.Status),
		Counts:       query.CountByStatus(apps),
	})
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid application id")
		return
	}

	app, err := h.applications.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get application")
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, h.logger, err, "Invalid request body")
		return
	}

	app, err := h.applications.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, h.logger, err, "Failed to create application")
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid application id")
		return
	}

	var patch domain.ApplicationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		invalidRequest(c, h.logger, err, "Invalid request body")
		return
	}
	if patch.Status != nil && !patch.Status.Valid() {
		respondError(c, h.logger, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *patch.Status), "Invalid request body")
		return
	}

	app, err := h.applications.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update application")
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid application id")
		return
	}

	deleted, err := h.applications.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to delete application")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// WithdrawApplication handles POST /api/v1/applications/:id/withdraw
// Only applications still in the applied status can be withdrawn
func (h *ApplicationHandler) WithdrawApplication(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid application id")
		return
	}

	withdrawn, err := h.applications.Withdraw(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to withdraw application")
		return
	}

	c.JSON(http.StatusOK, gin.H{"withdrawn": withdrawn})
}
