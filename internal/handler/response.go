package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"jobportal/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// envelope is the uniform response wrapper: timestamp, HTTP status, a
// human-readable message, and the payload.
type envelope struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Data      any               `json:"data,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{
		Timestamp: time.Now(),
		Status:    status,
		Message:   message,
		Data:      data,
	})
}

// respondError maps domain error kinds onto HTTP statuses. Anything outside
// the taxonomy is logged and returned as an opaque 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"
	var fields map[string]string

	switch {
	case domain.IsValidation(err):
		status, message = http.StatusBadRequest, err.Error()
		var domainErr *domain.Error
		if errors.As(err, &domainErr) {
			fields = domainErr.Fields
		}
	case domain.IsDuplicate(err):
		status, message = http.StatusConflict, err.Error()
	case domain.IsNotFound(err):
		status, message = http.StatusNotFound, err.Error()
	case domain.IsForbidden(err):
		status, message = http.StatusForbidden, err.Error()
	case domain.IsInvalidState(err):
		status, message = http.StatusBadRequest, err.Error()
	case domain.IsAuthentication(err):
		status, message = http.StatusUnauthorized, err.Error()
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
	}

	c.JSON(status, envelope{
		Timestamp: time.Now(),
		Status:    status,
		Message:   message,
		Errors:    fields,
	})
}

// bindAndValidate decodes the JSON body and runs struct validation, writing
// the error response itself on failure.
func bindAndValidate(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		respondError(c, domain.NewValidationError(map[string]string{"body": "invalid JSON payload"}))
		return false
	}
	if err := domain.ValidateStruct(target); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

// parsePaging reads ?page= and ?size= with sane defaults.
func parsePaging(c *gin.Context) (offset, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page * size, size
}

// pagedData is the listing payload shape.
func pagedData(items any, total int64, offset, limit int) gin.H {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return gin.H{
		"content":     items,
		"currentPage": offset / limit,
		"totalItems":  total,
		"totalPages":  totalPages,
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, domain.NewValidationError(map[string]string{name: "must be a valid UUID"}))
		return uuid.Nil, false
	}
	return id, true
}
