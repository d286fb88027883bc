package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"food-ordering-api/apperr"
	"food-ordering-api/models"
	"food-ordering-api/policy"
	"food-ordering-api/repository"
	"food-ordering-api/statemachine"
)

// EstimatedDeliveryWindow is added to the placement time to form the ETA.
const EstimatedDeliveryWindow = 45 * time.Minute

// OrderLine is one requested cart entry.
type OrderLine struct {
	FoodID              string
	Quantity            int
	SpecialInstructions string
}

type PlaceOrderInput struct {
	Items           []OrderLine
	PaymentMethod   models.PaymentMethod
	DeliveryAddress models.DeliveryAddress
	Notes           string
}

// OrderService validates, prices and tracks orders.
type OrderService struct {
	store  *repository.Store
	strict bool
	now    func() time.Time
	log    *slog.Logger
}

// NewOrderService builds the service. With strict set, status updates must
// follow the lifecycle one step at a time.
func NewOrderService(store *repository.Store, strict bool, log *slog.Logger) *OrderService {
	if log == nil {
		log = slog.Default()
	}
	return &OrderService{store: store, strict: strict, now: time.Now, log: log}
}

func foodUnavailable(id string, cause error) error {
	return apperr.Wrap(apperr.Unavailable, "Food item "+id+" not found or unavailable", cause)
}

var errFoodDisabled = errors.New("food is not available")

// PlaceOrder validates the cart, prices it and persists a pending order.
// Nothing is written unless every check passes.
func (s *OrderService) PlaceOrder(ctx context.Context, caller policy.Caller, in PlaceOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.New(apperr.ValidationFailed, "At least one item is required")
	}
	if !in.PaymentMethod.Valid() {
		return nil, apperr.New(apperr.ValidationFailed, "Payment method must be cash, card, upi, or wallet")
	}

	var (
		restaurantID string
		items        = make([]models.OrderItem, 0, len(in.Items))
		lines        = make([]Line, 0, len(in.Items))
	)
	for _, req := range in.Items {
		if req.Quantity < 1 {
			return nil, apperr.New(apperr.ValidationFailed, "Quantity must be at least 1")
		}
		food, err := s.store.Foods.FindByID(ctx, req.FoodID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, foodUnavailable(req.FoodID, err)
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Failed to create order", err)
		}
		if !food.IsActive {
			return nil, foodUnavailable(req.FoodID, repository.ErrNotFound)
		}
		if !food.Available {
			return nil, foodUnavailable(req.FoodID, errFoodDisabled)
		}

		if restaurantID == "" {
			restaurantID = food.RestaurantID
		}
		if food.RestaurantID != restaurantID {
			return nil, apperr.New(apperr.CrossRestaurantOrder, "All items must be from the same restaurant")
		}

		lines = append(lines, Line{Price: food.Price, Quantity: req.Quantity})
		items = append(items, models.OrderItem{
			FoodID:              food.ID,
			Name:                food.Name,
			Price:               food.Price,
			Quantity:            req.Quantity,
			SpecialInstructions: req.SpecialInstructions,
		})
	}

	restaurant, err := s.store.Restaurants.FindByID(ctx, restaurantID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create order", err)
	}
	if err != nil || !restaurant.IsActive {
		return nil, apperr.New(apperr.NotFound, "Restaurant not found")
	}

	quote := PriceLines(lines, restaurant.DeliveryFee)
	if BelowMinimum(quote.Subtotal, restaurant.MinimumOrder) {
		return nil, apperr.New(apperr.BelowMinimum, "Minimum order amount is $"+formatAmount(restaurant.MinimumOrder))
	}

	eta := s.now().Add(EstimatedDeliveryWindow)
	order := &models.Order{
		UserID:                caller.UserID,
		RestaurantID:          restaurantID,
		Items:                 items,
		Subtotal:              quote.Subtotal,
		DeliveryFee:           quote.DeliveryFee,
		Tax:                   quote.Tax,
		Total:                 quote.Total,
		Status:                models.StatusPending,
		PaymentStatus:         models.PaymentPending,
		PaymentMethod:         in.PaymentMethod,
		DeliveryAddress:       in.DeliveryAddress,
		EstimatedDeliveryTime: &eta,
		Notes:                 in.Notes,
	}
	if err := s.store.Orders.Create(ctx, order); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create order", err)
	}
	s.log.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("restaurant_id", restaurantID),
		slog.Float64("total", order.Total))

	order.Restaurant = restaurant.Summary()
	s.expandUser(ctx, order)
	return order, nil
}

// GetOrder returns the order to its owner or an admin.
func (s *OrderService) GetOrder(ctx context.Context, caller policy.Caller, id string) (*models.Order, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwnerOrAdmin(caller, order.UserID, "Access denied"); err != nil {
		return nil, err
	}
	s.expand(ctx, order)
	return order, nil
}

// ListMyOrders pages through the caller's orders, newest first. An empty
// status matches every order.
func (s *OrderService) ListMyOrders(ctx context.Context, caller policy.Caller, status models.OrderStatus, page repository.Page) ([]models.Order, int64, error) {
	if status != "" && !statemachine.Valid(status) {
		return nil, 0, apperr.Newf(apperr.ValidationFailed, "Invalid order status: %s", status)
	}
	orders, total, err := s.store.Orders.ListByUser(ctx, caller.UserID, status, page)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Failed to get orders", err)
	}
	restaurants := map[string]*models.RestaurantSummary{}
	for i := range orders {
		id := orders[i].RestaurantID
		if _, ok := restaurants[id]; !ok {
			restaurants[id] = s.restaurantSummary(ctx, id)
		}
		orders[i].Restaurant = restaurants[id]
	}
	return orders, total, nil
}

// UpdateStatus moves an order to status. Only the restaurant's owner or an
// admin may do this; reaching delivered stamps the actual delivery time.
func (s *OrderService) UpdateStatus(ctx context.Context, caller policy.Caller, id string, status models.OrderStatus) (*models.Order, error) {
	if !statemachine.Valid(status) {
		return nil, apperr.New(apperr.ValidationFailed, "Invalid order status")
	}
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	var ownerID string
	restaurant, err := s.store.Restaurants.FindByID(ctx, order.RestaurantID)
	switch {
	case err == nil:
		ownerID = restaurant.OwnerID
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperr.Wrap(apperr.Internal, "Failed to update order status", err)
	}
	if err := policy.RequireOwnerOrAdmin(caller, ownerID,
		"Access denied. Only restaurant owners and admins can update order status"); err != nil {
		return nil, err
	}

	if s.strict {
		if err := statemachine.CanTransition(order.Status, status); err != nil {
			return nil, apperr.Wrap(apperr.InvalidTransition, err.Error(), err)
		}
	}

	var deliveredAt *time.Time
	if status == models.StatusDelivered {
		now := s.now()
		deliveredAt = &now
	}
	if err := s.store.Orders.UpdateStatus(ctx, id, status, deliveredAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Wrap(apperr.NotFound, "Order not found", err)
		}
		return nil, apperr.Wrap(apperr.Internal, "Failed to update order status", err)
	}
	s.log.InfoContext(ctx, "order status updated",
		slog.String("order_id", id),
		slog.String("from", string(order.Status)),
		slog.String("to", string(status)),
		slog.String("by", caller.UserID))

	updated, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.expand(ctx, updated)
	return updated, nil
}

func (s *OrderService) findOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.store.Orders.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Wrap(apperr.NotFound, "Order not found", err)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to get order", err)
	}
	return order, nil
}

func (s *OrderService) expand(ctx context.Context, order *models.Order) {
	order.Restaurant = s.restaurantSummary(ctx, order.RestaurantID)
	s.expandUser(ctx, order)
}

func (s *OrderService) expandUser(ctx context.Context, order *models.Order) {
	if u, err := s.store.Users.FindByID(ctx, order.UserID); err == nil {
		order.User = u.Summary()
	}
}

// restaurantSummary returns nil when the restaurant can no longer be read.
func (s *OrderService) restaurantSummary(ctx context.Context, id string) *models.RestaurantSummary {
	r, err := s.store.Restaurants.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	return r.Summary()
}
