// utils/errors.go
package utils

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// ValidationError collects per-field problems for one editor submission.
// Field keys are dotted paths into the payload, e.g. "hotels[1].nights".
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError marks a missing entity or slug.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// CapacityError marks an attempt to add a second row to a singleton
// collection (video, whatsapp config).
type CapacityError struct {
	Resource string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s already exists for this customer", e.Resource)
}

// RespondWithError writes a plain error JSON body.
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// RespondWithAppError maps the error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500 scoped to this request.
func RespondWithAppError(c *gin.Context, err error) {
	var vErr *ValidationError
	var nfErr *NotFoundError
	var capErr *CapacityError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": vErr.Fields})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{"error": nfErr.Error()})
	case errors.As(err, &capErr):
		c.JSON(http.StatusConflict, gin.H{"error": capErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
