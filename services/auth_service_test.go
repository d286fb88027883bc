package services

import (
	"context"
	"errors"
	"testing"

	"food-ordering-api/apperr"
	"food-ordering-api/models"
	"food-ordering-api/repository"
	"food-ordering-api/repository/memstore"

	"golang.org/x/crypto/bcrypt"
)

type stubIssuer struct{ err error }

func (s stubIssuer) Issue(u *models.User) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-" + u.ID, nil
}

func newAuthService(issuer TokenIssuer) *AuthService {
	svc := NewAuthService(memstore.New().Store().Users, issuer, nil)
	svc.cost = bcrypt.MinCost
	return svc
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(stubIssuer{})

	user, token, err := svc.Register(ctx, RegisterInput{Name: " Ann ", Email: "Ann@Example.COM", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != models.RoleCustomer || !user.IsActive || user.Email != "ann@example.com" || user.Name != "Ann" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if token != "token-"+user.ID {
		t.Fatalf("unexpected token %q", token)
	}
	if user.PasswordHash == "secret1" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")) != nil {
		t.Fatal("password must be stored as a bcrypt hash")
	}

	if _, _, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "other1"}); !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
	if _, _, err := svc.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "secret1", Role: "driver"}); !apperr.Is(err, apperr.ValidationFailed) {
		t.Fatalf("expected ValidationFailed for unknown role, got %v", err)
	}
	if _, _, err := svc.Register(ctx, RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: models.RoleAdmin}); !apperr.Is(err, apperr.ValidationFailed) {
		t.Fatalf("expected ValidationFailed for self-registered admin, got %v", err)
	}
	if _, err := svc.users.FindByEmail(ctx, "eve@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("rejected admin registration must not be stored, got %v", err)
	}
}

func TestRegisterTokenFailure(t *testing.T) {
	svc := newAuthService(stubIssuer{err: errors.New("no key")})
	if _, _, err := svc.Register(context.Background(), RegisterInput{Name: "Ann", Email: "a@b.co", Password: "secret1"}); !apperr.Is(err, apperr.Internal) {
		t.Fatalf("expected Internal, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(stubIssuer{})
	registered, _, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret1", Role: models.RoleRestaurant})
	if err != nil {
		t.Fatal(err)
	}

	user, token, err := svc.Login(ctx, " ANN@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID || token == "" {
		t.Fatalf("unexpected login result %+v %q", user, token)
	}

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "ann@example.com", "nope"},
		{"unknown email", "who@example.com", "secret1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := svc.Login(ctx, tt.email, tt.password); !apperr.Is(err, apperr.Unauthorized) {
				t.Fatalf("expected Unauthorized, got %v", err)
			}
		})
	}

	registered.IsActive = false
	if err := svc.users.Update(ctx, registered); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Login(ctx, "ann@example.com", "secret1"); !apperr.Is(err, apperr.Unauthorized) {
		t.Fatalf("inactive user must not log in, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, registered.ID); !apperr.Is(err, apperr.Unauthorized) {
		t.Fatalf("inactive user must not authenticate, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "missing"); !apperr.Is(err, apperr.Unauthorized) {
		t.Fatalf("unknown user must not authenticate, got %v", err)
	}
}
