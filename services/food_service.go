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

// FoodQuery is the public search over available foods.
type FoodQuery struct {
	Search       string
	Category     string
	MinPrice     *float64
	MaxPrice     *float64
	RestaurantID string
}

type FoodInput struct {
	RestaurantID    string
	Name            string
	Description     string
	Price           float64
	Category        string
	ImageURL        string
	Available       *bool
	PreparationTime int
	Ingredients     []string
	IsVegetarian    bool
	IsVegan         bool
	SpiceLevel      models.SpiceLevel
}

// FoodPatch holds optional changes; nil fields are kept.
type FoodPatch struct {
	Name            *string
	Description     *string
	Price           *float64
	Category        *string
	ImageURL        *string
	Available       *bool
	PreparationTime *int
	Ingredients     []string
	IsVegetarian    *bool
	IsVegan         *bool
	SpiceLevel      *models.SpiceLevel
}

type FoodService struct {
	store *repository.Store
	log   *slog.Logger
}

func NewFoodService(store *repository.Store, log *slog.Logger) *FoodService {
	if log == nil {
		log = slog.Default()
	}
	return &FoodService{store: store, log: log}
}

var errFoodNotFound = apperr.New(apperr.NotFound, "Food item not found")

// find returns an active food item.
func (s *FoodService) find(ctx context.Context, id string) (*models.Food, error) {
	f, err := s.store.Foods.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Wrap(apperr.NotFound, errFoodNotFound.Message, err)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch food item", err)
	}
	if !f.IsActive {
		return nil, errFoodNotFound
	}
	return f, nil
}

// expand attaches restaurant summaries, reading each restaurant once.
func (s *FoodService) expand(ctx context.Context, foods []models.Food) {
	cache := map[string]*models.RestaurantSummary{}
	for i := range foods {
		id := foods[i].RestaurantID
		sum, ok := cache[id]
		if !ok {
			if r, err := s.store.Restaurants.FindByID(ctx, id); err == nil {
				sum = r.Summary()
			}
			cache[id] = sum
		}
		foods[i].Restaurant = sum
	}
}

// List searches available foods, newest first.
func (s *FoodService) List(ctx context.Context, q FoodQuery, page repository.Page) ([]models.Food, int64, error) {
	available := true
	filter := repository.FoodFilter{
		Search:    q.Search,
		Category:  strings.ToLower(q.Category),
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		Available: &available,
	}
	if q.RestaurantID != "" {
		filter.RestaurantIDs = []string{q.RestaurantID}
	}
	foods, total, err := s.store.Foods.List(ctx, filter, page)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Failed to fetch food items", err)
	}
	s.expand(ctx, foods)
	return foods, total, nil
}

func (s *FoodService) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.store.Foods.Categories(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to fetch categories", err)
	}
	return cats, nil
}

// Mine lists foods across every restaurant the caller owns. status is
// "available", "unavailable" or empty for both.
func (s *FoodService) Mine(ctx context.Context, caller policy.Caller, status string, page repository.Page) ([]models.Food, int64, error) {
	if err := policy.RequireRole(caller, policy.Owners...); err != nil {
		return nil, 0, err
	}
	owned, err := s.store.Restaurants.ListByOwner(ctx, caller.UserID, false)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Failed to fetch your food items", err)
	}
	ids := make([]string, 0, len(owned))
	for _, r := range owned {
		ids = append(ids, r.ID)
	}
	filter := repository.FoodFilter{RestaurantIDs: ids}
	switch status {
	case "":
	case "available", "unavailable":
		v := status == "available"
		filter.Available = &v
	default:
		return nil, 0, apperr.New(apperr.ValidationFailed, "Status must be available or unavailable")
	}
	foods, total, err := s.store.Foods.List(ctx, filter, page)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.Internal, "Failed to fetch your food items", err)
	}
	s.expand(ctx, foods)
	return foods, total, nil
}

func (s *FoodService) Get(ctx context.Context, id string) (*models.Food, error) {
	f, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	foods := []models.Food{*f}
	s.expand(ctx, foods)
	return &foods[0], nil
}

// authorizeRestaurant loads the food's restaurant and applies the role and
// ownership gates.
func (s *FoodService) authorizeRestaurant(ctx context.Context, caller policy.Caller, restaurantID, msg string) (*models.Restaurant, error) {
	r, err := s.store.Restaurants.FindByID(ctx, restaurantID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Wrap(apperr.NotFound, "Restaurant not found", err)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to get restaurant", err)
	}
	if err := policy.Authorize(caller, r.OwnerID, policy.Owners...); err != nil {
		return nil, policy.Reword(err, msg)
	}
	return r, nil
}

// Create adds a food to the given restaurant, or to the caller's first
// active restaurant when none is named.
func (s *FoodService) Create(ctx context.Context, caller policy.Caller, in FoodInput) (*models.Food, error) {
	if err := policy.RequireRole(caller, policy.Owners...); err != nil {
		return nil, err
	}
	if in.Price < 0 {
		return nil, apperr.New(apperr.ValidationFailed, "Price must be a positive number")
	}
	if in.SpiceLevel == "" {
		in.SpiceLevel = models.SpiceMild
	}
	if !in.SpiceLevel.Valid() {
		return nil, apperr.New(apperr.ValidationFailed, "Spice level must be mild, medium, hot, or extra-hot")
	}
	if in.PreparationTime == 0 {
		in.PreparationTime = models.DefaultPreparationTime
	}
	if in.PreparationTime < 1 {
		return nil, apperr.New(apperr.ValidationFailed, "Preparation time must be at least 1 minute")
	}

	restaurantID := in.RestaurantID
	if restaurantID == "" {
		owned, err := s.store.Restaurants.ListByOwner(ctx, caller.UserID, true)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "Failed to create food item", err)
		}
		if len(owned) == 0 {
			return nil, apperr.New(apperr.NotFound, "No restaurant found for this user. Please create a restaurant first.")
		}
		restaurantID = owned[0].ID
	}
	r, err := s.authorizeRestaurant(ctx, caller, restaurantID, "Access denied. You can only add food to your own restaurant.")
	if err != nil {
		return nil, err
	}

	available := true
	if in.Available != nil {
		available = *in.Available
	}
	ingredients := make([]string, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}
	f := &models.Food{
		RestaurantID:    r.ID,
		Name:            strings.TrimSpace(in.Name),
		Description:     strings.TrimSpace(in.Description),
		Price:           in.Price,
		Category:        strings.ToLower(strings.TrimSpace(in.Category)),
		ImageURL:        in.ImageURL,
		Available:       available,
		PreparationTime: in.PreparationTime,
		Ingredients:     ingredients,
		IsVegetarian:    in.IsVegetarian,
		IsVegan:         in.IsVegan,
		SpiceLevel:      in.SpiceLevel,
		IsActive:        true,
	}
	if err := s.store.Foods.Create(ctx, f); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to create food item", err)
	}
	s.log.InfoContext(ctx, "food created", slog.String("food_id", f.ID), slog.String("restaurant_id", r.ID))
	f.Restaurant = r.Summary()
	return f, nil
}

// Update applies patch for the restaurant's owner or an admin.
func (s *FoodService) Update(ctx context.Context, caller policy.Caller, id string, patch FoodPatch) (*models.Food, error) {
	f, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := s.authorizeRestaurant(ctx, caller, f.RestaurantID, "Access denied. You can only update food from your own restaurant.")
	if err != nil {
		return nil, err
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, apperr.New(apperr.ValidationFailed, "Price must be a positive number")
	}
	if patch.SpiceLevel != nil && !patch.SpiceLevel.Valid() {
		return nil, apperr.New(apperr.ValidationFailed, "Spice level must be mild, medium, hot, or extra-hot")
	}
	if patch.PreparationTime != nil && *patch.PreparationTime < 1 {
		return nil, apperr.New(apperr.ValidationFailed, "Preparation time must be at least 1 minute")
	}

	if patch.Name != nil {
		f.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		f.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		f.Price = *patch.Price
	}
	if patch.Category != nil {
		f.Category = strings.ToLower(strings.TrimSpace(*patch.Category))
	}
	if patch.ImageURL != nil {
		f.ImageURL = *patch.ImageURL
	}
	if patch.Available != nil {
		f.Available = *patch.Available
	}
	if patch.PreparationTime != nil {
		f.PreparationTime = *patch.PreparationTime
	}
	if patch.Ingredients != nil {
		f.Ingredients = patch.Ingredients
	}
	if patch.IsVegetarian != nil {
		f.IsVegetarian = *patch.IsVegetarian
	}
	if patch.IsVegan != nil {
		f.IsVegan = *patch.IsVegan
	}
	if patch.SpiceLevel != nil {
		f.SpiceLevel = *patch.SpiceLevel
	}
	if err := s.store.Foods.Update(ctx, f); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to update food item", err)
	}
	f.Restaurant = r.Summary()
	return f, nil
}

// Toggle flips the food's availability.
func (s *FoodService) Toggle(ctx context.Context, caller policy.Caller, id string) (*models.Food, error) {
	f, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	r, err := s.authorizeRestaurant(ctx, caller, f.RestaurantID, "Access denied. You can only update food from your own restaurant.")
	if err != nil {
		return nil, err
	}
	f.Available = !f.Available
	if err := s.store.Foods.Update(ctx, f); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to toggle food availability", err)
	}
	f.Restaurant = r.Summary()
	return f, nil
}

// Delete soft-deletes the food so past orders keep resolving it.
func (s *FoodService) Delete(ctx context.Context, caller policy.Caller, id string) error {
	f, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.authorizeRestaurant(ctx, caller, f.RestaurantID, "Access denied. You can only delete food from your own restaurant."); err != nil {
		return err
	}
	f.IsActive = false
	if err := s.store.Foods.Update(ctx, f); err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to delete food item", err)
	}
	s.log.InfoContext(ctx, "food deleted", slog.String("food_id", id), slog.String("by", caller.UserID))
	return nil
}
