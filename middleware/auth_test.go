package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-ordering-api/apperr"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeUsers map[string]*models.User

func (f fakeUsers) Authenticate(_ context.Context, id string) (*models.User, error) {
	u, ok := f[id]
	if !ok || !u.IsActive {
		return nil, apperr.New(apperr.Unauthorized, "Invalid or expired token")
	}
	return u, nil
}

func TestIssueAndParse(t *testing.T) {
	j := NewJWT([]byte("secret"), time.Hour)
	user := &models.User{ID: "u1", Email: "a@b.co", Role: models.RoleAdmin}
	token, err := j.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := j.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != models.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := NewJWT([]byte("other"), time.Hour).Parse(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}

	expired := NewJWT([]byte("secret"), time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, _ := expired.Issue(user)
	if _, err := j.Parse(old); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestAuthRequired(t *testing.T) {
	j := NewJWT([]byte("secret"), time.Hour)
	users := fakeUsers{
		"active":   {ID: "active", Role: models.RoleCustomer, IsActive: true},
		"inactive": {ID: "inactive", Role: models.RoleCustomer, IsActive: false},
	}
	r := gin.New()
	r.GET("/me", AuthRequired(j, users), func(c *gin.Context) {
		c.String(http.StatusOK, CallerFrom(c).UserID)
	})
	r.GET("/admin", AuthRequired(j, users), RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token := func(id string) string {
		s, err := j.Issue(&models.User{ID: id, Role: models.RoleCustomer})
		if err != nil {
			t.Fatal(err)
		}
		return "Bearer " + s
	}
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "active"})
	forgedStr, _ := forged.SignedString([]byte("wrong"))

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"no header", "/me", "", http.StatusUnauthorized},
		{"not bearer", "/me", "Basic abc", http.StatusUnauthorized},
		{"garbage", "/me", "Bearer abc", http.StatusUnauthorized},
		{"forged", "/me", "Bearer " + forgedStr, http.StatusUnauthorized},
		{"inactive user", "/me", token("inactive"), http.StatusUnauthorized},
		{"unknown user", "/me", token("ghost"), http.StatusUnauthorized},
		{"active user", "/me", token("active"), http.StatusOK},
		{"wrong role", "/admin", token("active"), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.status == http.StatusOK && tt.path == "/me" && w.Body.String() != "active" {
				t.Fatalf("caller not injected: %q", w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if id := w.Header().Get(RequestIDHeader); id == "" || id != w.Body.String() {
		t.Fatalf("generated id not echoed: header=%q body=%q", id, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" {
		t.Fatalf("incoming id not reused: %q", w.Body.String())
	}
}
