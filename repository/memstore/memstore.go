// Package memstore is an in-memory implementation of the repositories, used
// by tests and local experiments.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"food-ordering-api/models"
	"food-ordering-api/repository"
)

// DB is the shared state behind all four repositories.
type DB struct {
	mu          sync.RWMutex
	users       map[string]models.User
	restaurants map[string]models.Restaurant
	foods       map[string]models.Food
	orders      map[string]models.Order
	now         func() time.Time
	last        time.Time
}

func New() *DB {
	return &DB{
		users:       map[string]models.User{},
		restaurants: map[string]models.Restaurant{},
		foods:       map[string]models.Food{},
		orders:      map[string]models.Order{},
		now:         time.Now,
	}
}

// Store exposes the DB through the repository interfaces.
func (db *DB) Store() *repository.Store {
	return &repository.Store{
		Users:       UserRepo{db},
		Restaurants: RestaurantRepo{db},
		Foods:       FoodRepo{db},
		Orders:      OrderRepo{db},
		Close:       func() error { return nil },
	}
}

// OrderCount reports how many orders have been stored.
func (db *DB) OrderCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.orders)
}

// tick returns a strictly increasing clock reading so newest-first
// listings stay deterministic. Callers hold mu.
func (db *DB) tick() time.Time {
	now := db.now()
	if !now.After(db.last) {
		now = db.last.Add(time.Nanosecond)
	}
	db.last = now
	return now
}

// stamp sets CreatedAt/UpdatedAt the way gorm's autoCreateTime does.
func (db *DB) stamp(created, updated *time.Time) {
	now := db.tick()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func window[T any](items []T, page repository.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := len(items)
	if page.Limit > 0 && start+page.Limit < end {
		end = start + page.Limit
	}
	return items[start:end]
}

// ---- users ----

type UserRepo struct{ db *DB }

func (r UserRepo) Create(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = models.NewID()
	}
	r.db.stamp(&u.CreatedAt, &u.UpdatedAt)
	r.db.users[u.ID] = *u
	return nil
}

func (r UserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r UserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r UserRepo) ListActive(_ context.Context, page repository.Page) ([]models.User, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []models.User
	for _, u := range r.db.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return window(out, page), int64(len(out)), nil
}

func (r UserRepo) Update(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	r.db.stamp(&u.CreatedAt, &u.UpdatedAt)
	r.db.users[u.ID] = *u
	return nil
}

// ---- restaurants ----

type RestaurantRepo struct{ db *DB }

func (r RestaurantRepo) Create(_ context.Context, rest *models.Restaurant) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if rest.ID == "" {
		rest.ID = models.NewID()
	}
	r.db.stamp(&rest.CreatedAt, &rest.UpdatedAt)
	r.db.restaurants[rest.ID] = *rest
	return nil
}

func (r RestaurantRepo) FindByID(_ context.Context, id string) (*models.Restaurant, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	rest, ok := r.db.restaurants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rest, nil
}

func (r RestaurantRepo) ListActive(_ context.Context, f repository.RestaurantFilter, page repository.Page) ([]models.Restaurant, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []models.Restaurant
	for _, rest := range r.db.restaurants {
		if !rest.IsActive {
			continue
		}
		if f.Cuisine != "" && !contains(rest.Cuisine, f.Cuisine) {
			continue
		}
		if f.Search != "" && !contains(rest.Name, f.Search) && !contains(rest.Description, f.Search) {
			continue
		}
		if f.City != "" && !contains(rest.Address.City, f.City) {
			continue
		}
		out = append(out, rest)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AvgRating != out[j].AvgRating {
			return out[i].AvgRating > out[j].AvgRating
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return window(out, page), int64(len(out)), nil
}

func (r RestaurantRepo) ListByOwner(_ context.Context, ownerID string, activeOnly bool) ([]models.Restaurant, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []models.Restaurant
	for _, rest := range r.db.restaurants {
		if rest.OwnerID != ownerID || (activeOnly && !rest.IsActive) {
			continue
		}
		out = append(out, rest)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r RestaurantRepo) Update(_ context.Context, rest *models.Restaurant) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.restaurants[rest.ID]; !ok {
		return repository.ErrNotFound
	}
	r.db.stamp(&rest.CreatedAt, &rest.UpdatedAt)
	r.db.restaurants[rest.ID] = *rest
	return nil
}

// ---- foods ----

type FoodRepo struct{ db *DB }

func (r FoodRepo) Create(_ context.Context, f *models.Food) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if f.ID == "" {
		f.ID = models.NewID()
	}
	r.db.stamp(&f.CreatedAt, &f.UpdatedAt)
	stored := *f
	stored.Restaurant = nil
	r.db.foods[f.ID] = stored
	return nil
}

func (r FoodRepo) FindByID(_ context.Context, id string) (*models.Food, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	f, ok := r.db.foods[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func matchFood(f models.Food, filter repository.FoodFilter) bool {
	if !f.IsActive {
		return false
	}
	if filter.Available != nil && f.Available != *filter.Available {
		return false
	}
	if filter.Search != "" && !contains(f.Name, filter.Search) && !contains(f.Description, filter.Search) {
		return false
	}
	if filter.Category != "" && !strings.EqualFold(f.Category, filter.Category) {
		return false
	}
	if filter.MinPrice != nil && f.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && f.Price > *filter.MaxPrice {
		return false
	}
	if filter.RestaurantIDs != nil {
		found := false
		for _, id := range filter.RestaurantIDs {
			if id == f.RestaurantID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r FoodRepo) List(_ context.Context, filter repository.FoodFilter, page repository.Page) ([]models.Food, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []models.Food
	for _, f := range r.db.foods {
		if matchFood(f, filter) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return window(out, page), int64(len(out)), nil
}

func (r FoodRepo) Menu(_ context.Context, restaurantID string) ([]models.Food, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []models.Food
	for _, f := range r.db.foods {
		if f.RestaurantID == restaurantID && f.IsActive && f.Available {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r FoodRepo) Categories(_ context.Context) ([]string, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	seen := map[string]bool{}
	out := []string{}
	for _, f := range r.db.foods {
		if f.IsActive && f.Available && !seen[f.Category] {
			seen[f.Category] = true
			out = append(out, f.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r FoodRepo) Update(_ context.Context, f *models.Food) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.foods[f.ID]; !ok {
		return repository.ErrNotFound
	}
	r.db.stamp(&f.CreatedAt, &f.UpdatedAt)
	stored := *f
	stored.Restaurant = nil
	r.db.foods[f.ID] = stored
	return nil
}

// ---- orders ----

type OrderRepo struct{ db *DB }

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	o.User = nil
	o.Restaurant = nil
	return o
}

func (r OrderRepo) Create(_ context.Context, o *models.Order) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if o.ID == "" {
		o.ID = models.NewID()
	}
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = models.NewID()
		}
		o.Items[i].OrderID = o.ID
	}
	r.db.stamp(&o.CreatedAt, &o.UpdatedAt)
	r.db.orders[o.ID] = cloneOrder(*o)
	return nil
}

func (r OrderRepo) FindByID(_ context.Context, id string) (*models.Order, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	o, ok := r.db.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r OrderRepo) ListByUser(_ context.Context, userID string, status models.OrderStatus, page repository.Page) ([]models.Order, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var out []models.Order
	for _, o := range r.db.orders {
		if o.UserID != userID || (status != "" && o.Status != status) {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return window(out, page), int64(len(out)), nil
}

func (r OrderRepo) UpdateStatus(_ context.Context, id string, status models.OrderStatus, deliveredAt *time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	o, ok := r.db.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	if deliveredAt != nil {
		t := *deliveredAt
		o.ActualDeliveryTime = &t
	}
	o.UpdatedAt = r.db.tick()
	r.db.orders[id] = o
	return nil
}
