package policy

import (
	"errors"
	"testing"

	"food-ordering-api/apperr"
	"food-ordering-api/models"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		caller  Caller
		roles   []models.UserRole
		wantErr bool
	}{
		{"restaurant allowed", Caller{UserID: "u1", Role: models.RoleRestaurant}, []models.UserRole{models.RoleRestaurant, models.RoleAdmin}, false},
		{"admin allowed", Caller{UserID: "u1", Role: models.RoleAdmin}, []models.UserRole{models.RoleRestaurant, models.RoleAdmin}, false},
		{"customer denied", Caller{UserID: "u1", Role: models.RoleCustomer}, []models.UserRole{models.RoleRestaurant, models.RoleAdmin}, true},
		{"no roles denies everyone", Caller{UserID: "u1", Role: models.RoleAdmin}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireRole(tt.caller, tt.roles...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RequireRole() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperr.Is(err, apperr.Forbidden) {
				t.Fatalf("expected Forbidden, got %v", apperr.KindOf(err))
			}
		})
	}
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	tests := []struct {
		name    string
		caller  Caller
		owner   string
		wantErr bool
	}{
		{"owner", Caller{UserID: "u1", Role: models.RoleCustomer}, "u1", false},
		{"admin on foreign resource", Caller{UserID: "a1", Role: models.RoleAdmin}, "u1", false},
		{"stranger", Caller{UserID: "u2", Role: models.RoleRestaurant}, "u1", true},
		{"empty owner never matches", Caller{UserID: "", Role: models.RoleCustomer}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireOwnerOrAdmin(tt.caller, tt.owner, "")
			if (err != nil) != tt.wantErr {
				t.Fatalf("RequireOwnerOrAdmin() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	c := Caller{UserID: "u1", Role: models.RoleCustomer}
	if err := Authorize(c, "u1", models.RoleRestaurant); err == nil {
		t.Fatal("expected role gate to reject customer")
	}
	if err := Authorize(c, "u1"); err != nil {
		t.Fatalf("owner without role gate should pass: %v", err)
	}
}

func TestAuthorizeOwners(t *testing.T) {
	tests := []struct {
		name    string
		caller  Caller
		owner   string
		wantErr bool
		notOwn  bool
	}{
		{"owner with restaurant role", Caller{UserID: "u1", Role: models.RoleRestaurant}, "u1", false, false},
		{"admin on foreign restaurant", Caller{UserID: "a1", Role: models.RoleAdmin}, "u1", false, false},
		{"other restaurant user", Caller{UserID: "u2", Role: models.RoleRestaurant}, "u1", true, true},
		{"customer with matching id", Caller{UserID: "u1", Role: models.RoleCustomer}, "u1", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.caller, tt.owner, Owners...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Authorize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrNotOwner) != tt.notOwn {
				t.Fatalf("ownership denial = %v, want %v", errors.Is(err, ErrNotOwner), tt.notOwn)
			}
		})
	}
}

func TestReword(t *testing.T) {
	denied := RequireOwnerOrAdmin(Caller{UserID: "u2", Role: models.RoleRestaurant}, "u1", "")
	err := Reword(denied, "Access denied. You can only update your own restaurant")
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.Forbidden || ae.Message != "Access denied. You can only update your own restaurant" {
		t.Fatalf("Reword() = %v", err)
	}

	roleErr := RequireRole(Caller{Role: models.RoleCustomer}, Owners...)
	if got := Reword(roleErr, "ignored"); got != roleErr {
		t.Fatalf("role denial should pass through, got %v", got)
	}
}
