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

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger       *slog.Logger
	jobs         *service.JobService
	applications *service.ApplicationService
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:       deps.Logger,
		jobs:         deps.Services.Jobs,
		applications: deps.Services.Applications,
	}
}

// ListJobs handles GET /api/v1/jobs
// Filters the full snapshot by the query criteria, sorts it and returns one page
func (h *JobHandler) ListJobs(c *gin.Context) {
	h.logger.Info("ListJobs called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
	)

	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidRequest(c, h.logger, err, "Invalid query parameters")
		return
	}

	if req.PageSize <= 0 {
		req.PageSize = defaultPageSize
	}
	if req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}

	sortKey := query.SortKey(req.Sort)
	if sortKey == "" {
		sortKey = query.DefaultSort
	}

	cursor, err := DecodePageCursor(req.Cursor)
	if err != nil || (cursor != nil && cursor.Sort != string(sortKey)) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cursor",
		})
		return
	}

	all, err := h.jobs.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to list jobs")
		return
	}

	jobs := query.ApplySort(query.ApplyFilters(all, req.Criteria), sortKey)
	total := len(jobs)

	offset := 0
	if cursor != nil {
		offset = min(cursor.Offset, total)
	}
	end := min(offset+req.PageSize, total)

	var nextCursor string
	if end < total {
		nextCursor = EncodePageCursor(&PageCursor{Offset: end, Sort: string(sortKey)})
	}

	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Jobs:          jobs[offset:end],
		Total:         total,
		ActiveFilters: req.Criteria.ActiveCount(),
		NextCursor:    nextCursor,
	})
}

// GetJob handles GET /api/v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid job id")
		return
	}

	job, err := h.jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get job")
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob handles POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	h.logger.Info("CreateJob called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, h.logger, err, "Invalid request body")
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, h.logger, err, "Failed to create job")
		return
	}

	c.JSON(http.StatusCreated, job)
}

// UpdateJob handles PATCH /api/v1/jobs/:id
// Only the fields present in the body are changed
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid job id")
		return
	}

	var patch domain.JobPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		invalidRequest(c, h.logger, err, "Invalid request body")
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update job")
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJob handles DELETE /api/v1/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid job id")
		return
	}

	deleted, err := h.jobs.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to delete job")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// ApplyToJob handles POST /api/v1/jobs/:id/apply
// Records a new application copied from the job
func (h *JobHandler) ApplyToJob(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid job id")
		return
	}

	h.logger.Info("ApplyToJob called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("job_id", id),
	)

	job, err := h.jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get job")
		return
	}

	app, err := h.applications.Apply(c.Request.Context(), job)
	if err != nil {
		respondError(c, h.logger, err, fmt.Sprintf("Failed to apply to job %d", id))
		return
	}

	c.JSON(http.StatusCreated, app)
}
