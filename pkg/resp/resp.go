// Package resp writes the {success, message, data, error} envelope.
package resp

import (
	"errors"
	"net/http"

	"food-ordering-api/apperr"
	"food-ordering-api/repository"

	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
}

func NewPagination(p repository.Page, total int64) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{Current: p.Number, Pages: pages, Total: total, Limit: p.Limit}
}

func OK(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: msg, Data: data})
}

func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: msg, Data: data})
}

func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: msg})
}

func BadRequest(c *gin.Context, msg string) { Fail(c, http.StatusBadRequest, msg) }

func Unauthorized(c *gin.Context, msg string) { Fail(c, http.StatusUnauthorized, msg) }

// Status maps an error kind to its HTTP status.
func Status(kind apperr.Kind) int {
	switch kind {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Unavailable, apperr.CrossRestaurantOrder, apperr.BelowMinimum, apperr.ValidationFailed:
		return http.StatusBadRequest
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.InvalidTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error renders err with the status of its kind. Internal failures carry the
// underlying error string; the error is also attached to the gin context for
// the request logger.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	kind := apperr.KindOf(err)
	env := Envelope{Success: false, Message: "Internal server error"}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		env.Message = ae.Message
	}
	if kind == apperr.Internal {
		env.Error = err.Error()
		if ae != nil && ae.Err != nil {
			env.Error = ae.Err.Error()
		}
	}
	c.AbortWithStatusJSON(Status(kind), env)
}
