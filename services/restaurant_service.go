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

type RestaurantInput struct {
	Name         string
	Address      models.Address
	Cuisine      string
	Description  string
	OpeningHours *models.OpeningHours
	ImageURL     string
	DeliveryFee  float64
	MinimumOrder float64
}

// RestaurantPatch holds optional changes; nil fields are kept.
type RestaurantPatch struct {
	Name         *string
	Address      *models.Address
	Cuisine      *string
	Description  *string
	OpeningHours *models.OpeningHours
	ImageURL     *string
	DeliveryFee  *float64
	MinimumOrder *float64
	AvgRating    *float64
	TotalReviews *int
}

type RestaurantService struct {
	store *repository.Store
	log   *slog.Logger
}

func NewRestaurantService(store *repository.Store, log *slog.Logger) *RestaurantService {
	if log == nil {
		log = slog.Default()
	}
	return &RestaurantService{store: store, log: log}
}

func (s *RestaurantService) find(ctx context.Context, id string) (*models.Restaurant, error) {
	r, err := s.store.Restaurants.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Wrap(apperr.NotFound, "Restaurant not found", err)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to get restaurant", err)
	}
	return r, nil
}

func (s *RestaurantService) withOwner(ctx context.Context, r *models.Restaurant) {
	if u, err := s.store.Users.FindByID(ctx, r.OwnerID); err == nil {
		r.Owner = u.Summary()
	}
}

// List returns active restaurants matching filter, best rated first.
func (s *RestaurantService) List(ctx context.Context, filter repository.RestaurantFilter, page repository.Page) ([]models.Restaurant, int64, error) {
	rs, total, err := s.store.Restaurants.ListActive(ctx, filter, page)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Failed to get restaurants", err)
	}
	for i := range rs {
		s.withOwner(ctx, &rs[i])
	}
	return rs, total, nil
}

// Mine returns the caller's active restaurants.
func (s *RestaurantService) Mine(ctx context.Context, caller policy.Caller) ([]models.Restaurant, error) {
	if err := policy.RequireRole(caller, policy.Owners...); err != nil {
		return nil, err
	}
	rs, err := s.store.Restaurants.ListByOwner(ctx, caller.UserID, true)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch your restaurants", err)
	}
	for i := range rs {
		s.withOwner(ctx, &rs[i])
	}
	return rs, nil
}

// Get returns an active restaurant with its available menu.
func (s *RestaurantService) Get(ctx context.Context, id string) (*models.Restaurant, []models.Food, error) {
	r, err := s.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !r.IsActive {
		return nil, nil, apperr.New(apperr.NotFound, "Restaurant not found")
	}
	menu, err := s.store.Foods.Menu(ctx, id)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "Failed to get restaurant", err)
	}
	s.withOwner(ctx, r)
	return r, menu, nil
}

// Create opens a restaurant owned by the caller.
func (s *RestaurantService) Create(ctx context.Context, caller policy.Caller, in RestaurantInput) (*models.Restaurant, error) {
	if err := policy.RequireRole(caller, policy.Owners...); err != nil {
		return nil, err
	}
	if in.DeliveryFee < 0 || in.MinimumOrder < 0 {
		return nil, apperr.New(apperr.ValidationFailed, "Delivery fee and minimum order must be positive numbers")
	}
	hours := models.DefaultOpeningHours()
	if in.OpeningHours != nil {
		hours = *in.OpeningHours
	}
	r := &models.Restaurant{
		OwnerID:      caller.UserID,
		Name:         strings.TrimSpace(in.Name),
		Address:      in.Address,
		Cuisine:      strings.ToLower(strings.TrimSpace(in.Cuisine)),
		Description:  strings.TrimSpace(in.Description),
		OpeningHours: hours,
		ImageURL:     in.ImageURL,
		IsActive:     true,
		DeliveryFee:  in.DeliveryFee,
		MinimumOrder: in.MinimumOrder,
	}
	if err := s.store.Restaurants.Create(ctx, r); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create restaurant", err)
	}
	s.log.InfoContext(ctx, "restaurant created", slog.String("restaurant_id", r.ID), slog.String("owner_id", r.OwnerID))
	s.withOwner(ctx, r)
	return r, nil
}

// Update applies patch for the owner or an admin.
func (s *RestaurantService) Update(ctx context.Context, caller policy.Caller, id string, patch RestaurantPatch) (*models.Restaurant, error) {
	r, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(caller, r.OwnerID, policy.Owners...); err != nil {
		return nil, policy.Reword(err, "Access denied. You can only update your own restaurant")
	}
	if (patch.DeliveryFee != nil && *patch.DeliveryFee < 0) || (patch.MinimumOrder != nil && *patch.MinimumOrder < 0) {
		return nil, apperr.New(apperr.ValidationFailed, "Delivery fee and minimum order must be positive numbers")
	}
	if patch.AvgRating != nil && (*patch.AvgRating < 0 || *patch.AvgRating > 5) {
		return nil, apperr.New(apperr.ValidationFailed, "Rating must be between 0 and 5")
	}

	if patch.Name != nil {
		r.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Address != nil {
		r.Address = *patch.Address
	}
	if patch.Cuisine != nil {
		r.Cuisine = strings.ToLower(strings.TrimSpace(*patch.Cuisine))
	}
	if patch.Description != nil {
		r.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.OpeningHours != nil {
		r.OpeningHours = *patch.OpeningHours
	}
	if patch.ImageURL != nil {
		r.ImageURL = *patch.ImageURL
	}
	if patch.DeliveryFee != nil {
		r.DeliveryFee = *patch.DeliveryFee
	}
	if patch.MinimumOrder != nil {
		r.MinimumOrder = *patch.MinimumOrder
	}
	if patch.AvgRating != nil {
		r.AvgRating = *patch.AvgRating
	}
	if patch.TotalReviews != nil {
		r.TotalReviews = *patch.TotalReviews
	}
	if err := s.store.Restaurants.Update(ctx, r); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update restaurant", err)
	}
	s.withOwner(ctx, r)
	return r, nil
}

// Delete deactivates the restaurant; its foods and orders stay readable.
func (s *RestaurantService) Delete(ctx context.Context, caller policy.Caller, id string) error {
	r, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(caller, r.OwnerID, policy.Owners...); err != nil {
		return policy.Reword(err, "Access denied. You can only delete your own restaurant")
	}
	r.IsActive = false
	if err := s.store.Restaurants.Update(ctx, r); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete restaurant", err)
	}
	s.log.InfoContext(ctx, "restaurant deactivated", slog.String("restaurant_id", id), slog.String("by", caller.UserID))
	return nil
}
