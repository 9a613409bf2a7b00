// Package handlers provides HTTP request handlers for the URL shortener service.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"tinyurl/config"
	"tinyurl/metrics"
	"tinyurl/services"
	"tinyurl/types"
)

const (
	invalidRequestBody  = "Invalid request body"
	storageCapacityFull = "Storage capacity reached"
	shortURLNotFound    = "Short URL not found"
	reservedShortCode   = "short code is reserved"
	internalError       = "Internal server error"
)

// URLHandlerInterface defines the methods that a URL handler should implement.
type URLHandlerInterface interface {
	CreateShortURL(c *gin.Context)
	ListShortURLs(c *gin.Context)
	GetShortURL(c *gin.Context)
	DeleteShortURL(c *gin.Context)
	RedirectURL(c *gin.Context)
	HealthCheck(c *gin.Context)
}

// URLHandler struct holds the dependencies for handling URL-related operations.
type URLHandler struct {
	service  services.Registry
	validate *validator.Validate
	config   *config.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewURLHandler creates and returns a new URLHandler instance.
//
// Parameters:
//   - ctx: A context.Context for cancellation during initialization.
//   - service: The registry every request is served from.
//   - cfg: Application settings; cfg.BaseURL prefixes returned short URLs.
//   - logger: Structured logger for request outcomes.
//   - m: Collectors updated on create, delete and redirect.
//
// Returns:
//   - A new URLHandler and an error if a dependency is missing.
func NewURLHandler(ctx context.Context, service services.Registry, cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (URLHandlerInterface, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if m == nil {
		return nil, errors.New("metrics cannot be nil")
	}

	handler := &URLHandler{
		service:  service,
		validate: validator.New(),
		config:   cfg,
		logger:   logger,
		metrics:  m,
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return handler, nil
}

// handleError maps registry errors onto HTTP responses.
func (h *URLHandler) handleError(c *gin.Context, err error) {
	var statusCode int
	var errorMessage string

	switch {
	case services.IsInvalidArgument(err):
		statusCode = http.StatusBadRequest
		errorMessage = err.Error()
	case services.IsConflict(err):
		statusCode = http.StatusConflict
		errorMessage = err.Error()
	case errors.Is(err, services.ErrStorageCapacityReached):
		h.requestLogger(c).Error("Storage capacity reached")
		statusCode = http.StatusInsufficientStorage
		errorMessage = storageCapacityFull
	default:
		h.requestLogger(c).Error("Unexpected error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errorMessage = internalError
	}

	c.JSON(statusCode, types.ErrorResponse{Error: errorMessage})
}

func (h *URLHandler) requestLogger(c *gin.Context) *zap.Logger {
	return h.logger.With(zap.String("request_id", c.GetString(requestIDKey)))
}

func (h *URLHandler) response(entry types.Entry) types.ShortURLResponse {
	return types.NewShortURLResponse(h.config.BaseURL, entry)
}

// CreateShortURL registers a long URL under a custom or generated code.
func (h *URLHandler) CreateShortURL(c *gin.Context) {
	var input types.CreateShortURLRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.requestLogger(c).Info("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: invalidRequestBody})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		h.requestLogger(c).Info("Invalid input", zap.Error(err))
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: services.ErrInvalidURL.Error()})
		return
	}

	if IsReservedCode(input.CustomCode) {
		h.requestLogger(c).Info("Reserved custom code rejected", zap.String("custom_code", input.CustomCode))
		c.JSON(http.StatusConflict, types.ErrorResponse{Error: reservedShortCode})
		return
	}

	entry, err := h.service.Create(input.LongURL, input.CustomCode)
	if err != nil {
		h.requestLogger(c).Info("Short URL not created",
			zap.String("long_url", input.LongURL),
			zap.String("custom_code", input.CustomCode),
			zap.Error(err))
		h.handleError(c, err)
		return
	}

	h.metrics.ShortURLsCreated.Inc()
	h.requestLogger(c).Info("Short URL created",
		zap.String("short_code", entry.Code),
		zap.String("long_url", entry.LongURL))

	response := h.response(entry)
	c.Header("Location", response.ShortURL)
	c.JSON(http.StatusCreated, response)
}

// ListShortURLs returns every registered short URL with its click count.
func (h *URLHandler) ListShortURLs(c *gin.Context) {
	entries := h.service.GetAllEntries()
	slices.SortFunc(entries, func(a, b types.Entry) int {
		return strings.Compare(a.Code, b.Code)
	})

	response := make([]types.ShortURLResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, h.response(entry))
	}
	c.JSON(http.StatusOK, response)
}

// GetShortURL returns a single short URL with its click count.
func (h *URLHandler) GetShortURL(c *gin.Context) {
	code := c.Param("code")

	entry, ok := h.service.Stats(code)
	if !ok {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: shortURLNotFound})
		return
	}
	c.JSON(http.StatusOK, h.response(entry))
}

// DeleteShortURL removes a short code. It returns 204 No Content when the
// code was removed and 404 when it did not exist.
func (h *URLHandler) DeleteShortURL(c *gin.Context) {
	code := c.Param("code")

	removed, err := h.service.Delete(code)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: shortURLNotFound})
		return
	}

	h.metrics.ShortURLsDeleted.Inc()
	h.requestLogger(c).Info("Short URL deleted", zap.String("short_code", code))
	c.Status(http.StatusNoContent)
}
