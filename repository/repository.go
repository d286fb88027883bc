// Package repository declares the storage contracts for every entity. The
// gormstore, mongostore and memstore packages implement them.
package repository

import (
	"context"
	"errors"

	"food-ordering-api/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Page selects a window of a listing. Number starts at 1.
type Page struct {
	Number int
	Limit  int
}

// Normalize fills in defaults for non-positive values.
func (p Page) Normalize(defaultLimit int) Page {
	if p.Number <= 0 {
		p.Number = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	return p
}

func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// ListActive returns active users, newest first.
	ListActive(ctx context.Context, page Page) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
}

// RestaurantFilter narrows restaurant listings. Text fields match
// case-insensitively as substrings.
type RestaurantFilter struct {
	Cuisine string
	Search  string
	City    string
}

type RestaurantRepository interface {
	Create(ctx context.Context, r *models.Restaurant) error
	FindByID(ctx context.Context, id string) (*models.Restaurant, error)
	// ListActive returns active restaurants sorted by rating, then newest.
	ListActive(ctx context.Context, filter RestaurantFilter, page Page) ([]models.Restaurant, int64, error)
	// ListByOwner returns the owner's restaurants; activeOnly drops soft-deleted ones.
	ListByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]models.Restaurant, error)
	Update(ctx context.Context, r *models.Restaurant) error
}

// FoodFilter narrows food listings. Soft-deleted foods never match.
type FoodFilter struct {
	Search        string
	Category      string
	MinPrice      *float64
	MaxPrice      *float64
	RestaurantIDs []string
	Available     *bool
}

type FoodRepository interface {
	Create(ctx context.Context, f *models.Food) error
	// FindByID returns soft-deleted foods too; callers check IsActive.
	FindByID(ctx context.Context, id string) (*models.Food, error)
	// List returns matching foods, newest first.
	List(ctx context.Context, filter FoodFilter, page Page) ([]models.Food, int64, error)
	// Menu returns a restaurant's available foods sorted by category, then name.
	Menu(ctx context.Context, restaurantID string) ([]models.Food, error)
	// Categories returns the distinct categories of available foods.
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, f *models.Food) error
}
