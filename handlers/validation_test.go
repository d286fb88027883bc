package handlers

import (
	"net/http/httptest"
	"testing"

	"food-ordering-api/repository"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func TestValidPhone(t *testing.T) {
	tests := map[string]bool{
		"+1234567890":        true,
		"+1 (212) 555-0100":  true,
		"555.0100.22":        true,
		"12345":              false,
		"abc":                false,
		"+12345678901234567": false,
		"":                   false,
	}
	for in, want := range tests {
		if got := ValidPhone(in); got != want {
			t.Errorf("ValidPhone(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPageQuery(t *testing.T) {
	tests := []struct {
		query string
		want  repository.Page
	}{
		{"", repository.Page{Number: 1, Limit: 10}},
		{"page=3&limit=5", repository.Page{Number: 3, Limit: 5}},
		{"page=-2&limit=0", repository.Page{Number: 1, Limit: 10}},
		{"page=x&limit=y", repository.Page{Number: 1, Limit: 10}},
		{"limit=500", repository.Page{Number: 1, Limit: maxPageLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)
			if got := pageQuery(c, 10); got != tt.want {
				t.Fatalf("pageQuery(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}
