package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobsearch/internal/api/dto"
	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/service"
	"github.com/cuongbtq/jobsearch/internal/upload"
	"github.com/gin-gonic/gin"
)

// uploadField is the multipart field holding the resume file(s)
const uploadField = "file"

// ResumeHandler handles resume management requests
type ResumeHandler struct {
	logger  *slog.Logger
	resumes *service.ResumeService
}

func NewResumeHandler(deps *Dependencies) *ResumeHandler {
	return &ResumeHandler{
		logger:  deps.Logger,
		resumes: deps.Services.Resumes,
	}
}

func (h *ResumeHandler) ListResumes(c *gin.Context) {
	resumes, err := h.resumes.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to list resumes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"resumes": resumes})
}

func (h *ResumeHandler) GetResume(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid resume id")
		return
	}

	resume, err := h.resumes.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get resume")
		return
	}

	c.JSON(http.StatusOK, resume)
}

func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req dto.CreateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, h.logger, err, "Invalid request body")
		return
	}

	resume, err := h.resumes.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, h.logger, err, "Failed to create resume")
		return
	}

	c.JSON(http.StatusCreated, resume)
}

// UploadResume handles multipart POST /api/v1/resumes/upload.
// The first PDF, DOC or DOCX file becomes the active resume.
func (h *ResumeHandler) UploadResume(c *gin.Context) {
	h.logger.Info("UploadResume called",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)

	form, err := c.MultipartForm()
	if err != nil {
		invalidRequest(c, h.logger, err, "Invalid multipart form")
		return
	}

	headers := form.File[uploadField]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "file is required",
		})
		return
	}

	files := make([]upload.File, len(headers))
	for i, fh := range headers {
		files[i] = upload.File{Name: fh.Filename, Size: fh.Size}
	}

	resume, err := h.resumes.Upload(c.Request.Context(), files)
	if err != nil {
		respondError(c, h.logger, err, "Failed to upload resume")
		return
	}

	c.JSON(http.StatusCreated, resume)
}

func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid resume id")
		return
	}

	var patch domain.ResumePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		invalidRequest(c, h.logger, err, "Invalid request body")
		return
	}

	resume, err := h.resumes.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update resume")
		return
	}

	c.JSON(http.StatusOK, resume)
}

func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid resume id")
		return
	}

	deleted, err := h.resumes.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to delete resume")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// ActivateResume handles POST /api/v1/resumes/:id/activate
func (h *ResumeHandler) ActivateResume(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err, "Invalid resume id")
		return
	}

	resume, err := h.resumes.SetActive(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to activate resume")
		return
	}

	c.JSON(http.StatusOK, resume)
}
