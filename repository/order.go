package repository

//go:generate mockgen -source=order.go -destination=mocks/mock_order.go -package=mocks

import (
	"context"
	"time"

	"food-ordering-api/models"
)

type OrderRepository interface {
	// Create persists the order and its line items in one write.
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	// ListByUser returns the user's orders newest first; an empty status matches all.
	ListByUser(ctx context.Context, userID string, status models.OrderStatus, page Page) ([]models.Order, int64, error)
	// UpdateStatus sets the status and, when deliveredAt is non-nil, the actual delivery time.
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus, deliveredAt *time.Time) error
}

// Store bundles the four repositories behind one backend.
type Store struct {
	Users       UserRepository
	Restaurants RestaurantRepository
	Foods       FoodRepository
	Orders      OrderRepository
	Close       func() error
}
