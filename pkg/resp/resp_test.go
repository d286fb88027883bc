package resp

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"food-ordering-api/apperr"
	"food-ordering-api/repository"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func TestNewPagination(t *testing.T) {
	tests := []struct {
		page  repository.Page
		total int64
		pages int
	}{
		{repository.Page{Number: 1, Limit: 10}, 0, 0},
		{repository.Page{Number: 1, Limit: 10}, 10, 1},
		{repository.Page{Number: 2, Limit: 10}, 11, 2},
		{repository.Page{Number: 1, Limit: 20}, 41, 3},
	}
	for _, tt := range tests {
		got := NewPagination(tt.page, tt.total)
		if got.Pages != tt.pages || got.Total != tt.total || got.Current != tt.page.Number || got.Limit != tt.page.Limit {
			t.Errorf("NewPagination(%+v, %d) = %+v", tt.page, tt.total, got)
		}
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		message   string
		errorText string
	}{
		{"not found", apperr.New(apperr.NotFound, "Order not found"), http.StatusNotFound, "Order not found", ""},
		{"unavailable", apperr.New(apperr.Unavailable, "Food item x not found or unavailable"), http.StatusBadRequest, "Food item x not found or unavailable", ""},
		{"below minimum", apperr.New(apperr.BelowMinimum, "Minimum order amount is $15"), http.StatusBadRequest, "Minimum order amount is $15", ""},
		{"forbidden", apperr.New(apperr.Forbidden, "Access denied"), http.StatusForbidden, "Access denied", ""},
		{"conflict", apperr.New(apperr.Conflict, "exists"), http.StatusConflict, "exists", ""},
		{"transition", apperr.New(apperr.InvalidTransition, "invalid transition"), http.StatusUnprocessableEntity, "invalid transition", ""},
		{"internal", apperr.Wrap(apperr.Internal, "Failed to create order", errors.New("db down")), http.StatusInternalServerError, "Failed to create order", "db down"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "Internal server error", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			Error(c, tt.err)

			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}
			var env Envelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatal(err)
			}
			if env.Success || env.Message != tt.message || env.Error != tt.errorText {
				t.Fatalf("unexpected envelope: %+v", env)
			}
			if len(c.Errors) != 1 {
				t.Fatal("error should be attached to the context")
			}
		})
	}
}
