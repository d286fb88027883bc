package services

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"food-ordering-api/apperr"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
	Phone    string
}

// AuthService registers users and exchanges credentials for tokens.
type AuthService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	cost   int
	log    *slog.Logger
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{users: users, tokens: tokens, cost: bcrypt.DefaultCost, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SelfServiceRoles are the roles an anonymous caller may register with.
// Admin accounts come from seeding.
var SelfServiceRoles = []models.UserRole{models.RoleCustomer, models.RoleRestaurant}

// Register creates an active account and returns it with a fresh token.
// An empty role defaults to customer.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if in.Role == "" {
		in.Role = models.RoleCustomer
	}
	if !slices.Contains(SelfServiceRoles, in.Role) {
		return nil, "", apperr.New(apperr.ValidationFailed, "Invalid role. Must be: customer or restaurant")
	}
	email := normalizeEmail(in.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", apperr.New(apperr.Conflict, "User already exists with this email")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", apperr.Wrap(apperr.Internal, "Failed to register user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "Failed to hash password", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Phone:        in.Phone,
		Addresses:    []string{},
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", apperr.Wrap(apperr.Conflict, "User already exists with this email", err)
		}
		return nil, "", apperr.Wrap(apperr.Internal, "Failed to register user", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "Failed to generate token", err)
	}
	s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	return user, token, nil
}

// Login checks the credentials of an active user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", apperr.New(apperr.Unauthorized, "Invalid email or password")
	}
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "Failed to login", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.New(apperr.Unauthorized, "Invalid email or password")
	}
	if !user.IsActive {
		return nil, "", apperr.New(apperr.Unauthorized, "Account is deactivated")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.Internal, "Failed to generate token", err)
	}
	return user, token, nil
}

// Authenticate resolves a token subject to an active user.
func (s *AuthService) Authenticate(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.New(apperr.Unauthorized, "Invalid or expired token")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Authentication error", err)
	}
	if !user.IsActive {
		return nil, apperr.New(apperr.Unauthorized, "Invalid or expired token")
	}
	return user, nil
}
