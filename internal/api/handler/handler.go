package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cuongbtq/jobsearch/internal/domain"
	"github.com/cuongbtq/jobsearch/internal/service"
	"github.com/gin-gonic/gin"
)

// BrokerStatus reports whether the message broker connection is up
type BrokerStatus interface {
	IsConnected() bool
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger      *slog.Logger
	Services    *service.Services
	ServiceName string
	// Broker is nil when RabbitMQ is disabled
	Broker BrokerStatus
}

// parseID reads the positive integer :id path parameter
func parseID(c *gin.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer, got %q", domain.ErrInvalidInput, raw)
	}
	return id, nil
}

// respondError maps a service error onto an HTTP status and logs it
func respondError(c *gin.Context, logger *slog.Logger, err error, message string) {
	status := http.StatusInternalServerError
	body := message

	var notFound *domain.RecordNotFoundError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		body = err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
		body = err.Error()
	case errors.Is(err, domain.ErrWithdrawNotAllowed):
		status = http.StatusConflict
		body = err.Error()
	case errors.Is(err, domain.ErrUnsupportedFile):
		status = http.StatusUnsupportedMediaType
		body = err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		body = "Request timed out"
	}

	attrs := []any{
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	}
	if status >= http.StatusInternalServerError {
		logger.Error(message, attrs...)
	} else {
		logger.Warn(message, attrs...)
	}

	c.JSON(status, gin.H{
		"error": body,
	})
}

// invalidRequest answers a binding failure with 400
func invalidRequest(c *gin.Context, logger *slog.Logger, err error, message string) {
	respondError(c, logger, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err), message)
}
