package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"food-ordering-api/apperr"
	"food-ordering-api/models"
	"food-ordering-api/policy"
	"food-ordering-api/repository"
)

// UserUpdate carries the profile fields a user may change. Nil fields are
// left untouched.
type UserUpdate struct {
	Name      *string
	Phone     *string
	Addresses []string
}

type UserService struct {
	users repository.UserRepository
	log   *slog.Logger
}

func NewUserService(users repository.UserRepository, log *slog.Logger) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{users: users, log: log}
}

func (s *UserService) find(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Wrap(apperr.NotFound, "User not found", err)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to get user", err)
	}
	return u, nil
}

// List pages through active users, newest first. Admin only.
func (s *UserService) List(ctx context.Context, caller policy.Caller, page repository.Page) ([]models.User, int64, error) {
	if err := policy.RequireRole(caller, models.RoleAdmin); err != nil {
		return nil, 0, err
	}
	users, total, err := s.users.ListActive(ctx, page)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Failed to get users", err)
	}
	return users, total, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.find(ctx, id)
}

// Update changes a profile. Callers may edit only themselves unless admin.
func (s *UserService) Update(ctx context.Context, caller policy.Caller, id string, in UserUpdate) (*models.User, error) {
	if err := policy.RequireOwnerOrAdmin(caller, id, "Access denied. You can only update your own profile"); err != nil {
		return nil, err
	}
	u, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Addresses != nil {
		u.Addresses = in.Addresses
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update profile", err)
	}
	return u, nil
}

// Deactivate soft-deletes a user. Admins cannot deactivate themselves.
func (s *UserService) Deactivate(ctx context.Context, caller policy.Caller, id string) error {
	if err := policy.RequireRole(caller, models.RoleAdmin); err != nil {
		return err
	}
	if caller.UserID == id {
		return apperr.New(apperr.ValidationFailed, "You cannot delete your own account")
	}
	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	u.IsActive = false
	if err := s.users.Update(ctx, u); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete user", err)
	}
	s.log.InfoContext(ctx, "user deactivated", slog.String("user_id", id), slog.String("by", caller.UserID))
	return nil
}
