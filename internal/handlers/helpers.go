package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist/internal/i18n"
	"todolist/internal/logger"
	"todolist/internal/middleware"
	"todolist/internal/models"
	"todolist/internal/services"
	"todolist/internal/validation"
)

// body is a decoded JSON object. Fields are validated before being copied
// into typed requests, so a wrong JSON type is reported as a violation
// rather than a decode failure.
type body map[string]any

func (b body) str(key string) string {
	s, _ := b[key].(string)
	return s
}

func (b body) has(key string) bool {
	_, ok := b[key]
	return ok
}

// value returns the raw field; nil when absent.
func (b body) value(key string) any {
	return b[key]
}

func (b body) int64(key string) int64 {
	switch v := b[key].(type) {
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	}
	return 0
}

type base struct {
	catalog *i18n.Catalog
	log     logger.Logger
}

func (h base) tr(c *gin.Context) i18n.Translator {
	return h.catalog.FromContext(c.Request.Context())
}

func (h base) bindBody(c *gin.Context) (body, bool) {
	var b body
	if err := c.ShouldBindJSON(&b); err != nil || b == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":    []string{h.tr(c).T("validation.invalid_json")},
			"error":      "Bad Request",
			"statusCode": http.StatusBadRequest,
		})
		return nil, false
	}
	return b, true
}

func (h base) validate(c *gin.Context, fields ...validation.Field) bool {
	if err := validation.Validate(c.Request.Context(), h.tr(c), fields...); err != nil {
		h.respondError(c, err)
		return false
	}
	return true
}

func (h base) paramID(c *gin.Context, name string) (int64, bool) {
	id, err := validation.ParseSafeInt(name, c.Param(name))
	if err != nil {
		h.respondError(c, err)
		return 0, false
	}
	return id, true
}

func (h base) user(c *gin.Context) (*models.User, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": h.tr(c).T("http-error.401.default"), "statusCode": http.StatusUnauthorized})
	}
	return u, ok
}

// respondError maps service and validation errors to their HTTP form.
// Anything else is logged and answered with a generic 500.
func (h base) respondError(c *gin.Context, err error) {
	var verr *validation.Errors
	var perr *validation.ParamError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"message":    verr.Messages(),
			"error":      "Bad Request",
			"statusCode": http.StatusBadRequest,
		})
	case errors.As(err, &perr):
		c.JSON(http.StatusBadRequest, gin.H{
			"message":    perr.Error(),
			"error":      "Bad Request",
			"statusCode": http.StatusBadRequest,
		})
	default:
		if e, ok := services.AsError(err); ok {
			c.JSON(e.Status(), gin.H{"message": e.Text(h.tr(c)), "statusCode": e.Status()})
			return
		}
		h.log.Error("[http] [%s %s] unhandled error: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":    h.tr(c).T("errors.internal_server_error"),
			"statusCode": http.StatusInternalServerError,
		})
	}
}
