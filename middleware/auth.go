package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"food-ordering-api/apperr"
	"food-ordering-api/models"
	"food-ordering-api/pkg/resp"
	"food-ordering-api/policy"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID = "userID"
	ctxRole   = "role"
	ctxUser   = "user"
)

type Claims struct {
	UserID string          `json:"userId"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// JWT signs and verifies HS256 session tokens.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret []byte, ttl time.Duration) *JWT {
	return &JWT{secret: secret, ttl: ttl, now: time.Now}
}

// Issue creates a signed JWT for a given user
func (j *JWT) Issue(user *models.User) (string, error) {
	now := j.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// Parse verifies the signature and expiry of tokenStr.
func (j *JWT) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Authenticator resolves a token subject to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, userID string) (*models.User, error)
}

// AuthRequired validates the bearer token, loads the user and injects the
// caller into the context.
func AuthRequired(tokens *JWT, users Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			resp.Unauthorized(c, "Access token required")
			return
		}
		claims, err := tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if errors.Is(err, jwt.ErrTokenExpired) {
			resp.Unauthorized(c, "Token expired")
			return
		}
		if err != nil {
			resp.Unauthorized(c, "Invalid token")
			return
		}
		user, err := users.Authenticate(c.Request.Context(), claims.UserID)
		if err != nil {
			resp.Error(c, err)
			return
		}
		c.Set(ctxUserID, user.ID)
		c.Set(ctxRole, string(user.Role))
		c.Set(ctxUser, user)
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ctxRole); !ok {
			resp.Error(c, apperr.New(apperr.Unauthorized, "Authentication required"))
			return
		}
		if err := policy.RequireRole(CallerFrom(c), roles...); err != nil {
			resp.Error(c, err)
			return
		}
		c.Next()
	}
}

// CallerFrom extracts the authenticated identity from context
func CallerFrom(c *gin.Context) policy.Caller {
	return policy.Caller{
		UserID: c.GetString(ctxUserID),
		Role:   models.UserRole(c.GetString(ctxRole)),
	}
}

// CurrentUser returns the user loaded by AuthRequired, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
