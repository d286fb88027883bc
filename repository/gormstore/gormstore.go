// Package gormstore implements the repositories on GORM over a pure-Go
// SQLite driver.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite database at dsn and migrates all models.
func Open(dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate auto-migrates all models.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Food{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// NewStore wires the GORM repositories around db.
func NewStore(db *gorm.DB) *repository.Store {
	return &repository.Store{
		Users:       &UserRepo{DB: db},
		Restaurants: &RestaurantRepo{DB: db},
		Foods:       &FoodRepo{DB: db},
		Orders:      &OrderRepo{DB: db},
		Close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	}
	return err
}

func like(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func paginate(page repository.Page) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Limit <= 0 {
			return db
		}
		return db.Offset(page.Offset()).Limit(page.Limit)
	}
}

// ── Users ───────────────────────────────────────────────────────────────────

type UserRepo struct {
	DB *gorm.DB
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = models.NewID()
	}
	return translate(r.DB.WithContext(ctx).Create(u).Error)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepo) ListActive(ctx context.Context, page repository.Page) ([]models.User, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.User{}).Where("is_active = ?", true)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	err := query.Scopes(paginate(page)).Order("created_at desc").Find(&users).Error
	return users, total, err
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	res := r.DB.WithContext(ctx).Save(u)
	if res.Error != nil {
		return translate(res.Error)
	}
	return nil
}

// ── Restaurants ─────────────────────────────────────────────────────────────

type RestaurantRepo struct {
	DB *gorm.DB
}

func (r *RestaurantRepo) Create(ctx context.Context, rest *models.Restaurant) error {
	if rest.ID == "" {
		rest.ID = models.NewID()
	}
	return translate(r.DB.WithContext(ctx).Create(rest).Error)
}

func (r *RestaurantRepo) FindByID(ctx context.Context, id string) (*models.Restaurant, error) {
	var rest models.Restaurant
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&rest).Error; err != nil {
		return nil, translate(err)
	}
	return &rest, nil
}

func (r *RestaurantRepo) ListActive(ctx context.Context, f repository.RestaurantFilter, page repository.Page) ([]models.Restaurant, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.Restaurant{}).Where("is_active = ?", true)
	if f.Cuisine != "" {
		query = query.Where("LOWER(cuisine) LIKE ?", like(f.Cuisine))
	}
	if f.Search != "" {
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like(f.Search), like(f.Search))
	}
	if f.City != "" {
		query = query.Where("LOWER(address_city) LIKE ?", like(f.City))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Restaurant
	err := query.Scopes(paginate(page)).Order("avg_rating desc").Order("created_at desc").Find(&out).Error
	return out, total, err
}

func (r *RestaurantRepo) ListByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]models.Restaurant, error) {
	query := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var out []models.Restaurant
	err := query.Order("created_at asc").Find(&out).Error
	return out, err
}

func (r *RestaurantRepo) Update(ctx context.Context, rest *models.Restaurant) error {
	return translate(r.DB.WithContext(ctx).Save(rest).Error)
}

// ── Foods ───────────────────────────────────────────────────────────────────

type FoodRepo struct {
	DB *gorm.DB
}

func (r *FoodRepo) Create(ctx context.Context, f *models.Food) error {
	if f.ID == "" {
		f.ID = models.NewID()
	}
	return translate(r.DB.WithContext(ctx).Create(f).Error)
}

func (r *FoodRepo) FindByID(ctx context.Context, id string) (*models.Food, error) {
	var f models.Food
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *FoodRepo) List(ctx context.Context, f repository.FoodFilter, page repository.Page) ([]models.Food, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.Food{}).Where("is_active = ?", true)
	if f.Available != nil {
		query = query.Where("available = ?", *f.Available)
	}
	if f.Search != "" {
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like(f.Search), like(f.Search))
	}
	if f.Category != "" {
		query = query.Where("category = ?", strings.ToLower(f.Category))
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.RestaurantIDs != nil {
		if len(f.RestaurantIDs) == 0 {
			return []models.Food{}, 0, nil
		}
		query = query.Where("restaurant_id IN ?", f.RestaurantIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Food
	err := query.Scopes(paginate(page)).Order("created_at desc").Find(&out).Error
	return out, total, err
}

func (r *FoodRepo) Menu(ctx context.Context, restaurantID string) ([]models.Food, error) {
	var out []models.Food
	err := r.DB.WithContext(ctx).
		Where("restaurant_id = ? AND available = ? AND is_active = ?", restaurantID, true, true).
		Order("category asc").Order("name asc").
		Find(&out).Error
	return out, err
}

func (r *FoodRepo) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.DB.WithContext(ctx).Model(&models.Food{}).
		Where("available = ? AND is_active = ?", true, true).
		Distinct().Order("category asc").Pluck("category", &out).Error
	return out, err
}

func (r *FoodRepo) Update(ctx context.Context, f *models.Food) error {
	return translate(r.DB.WithContext(ctx).Save(f).Error)
}

// ── Orders ──────────────────────────────────────────────────────────────────

type OrderRepo struct {
	DB *gorm.DB
}

func (r *OrderRepo) Create(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = models.NewID()
	}
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = models.NewID()
		}
	}
	// Create inserts the order row and its items in one transaction.
	return translate(r.DB.WithContext(ctx).Create(o).Error)
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("rowid asc")
	}).Where("id = ?", id).First(&o).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string, status models.OrderStatus, page repository.Page) ([]models.Order, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Order
	err := query.Scopes(paginate(page)).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("rowid asc") }).
		Order("created_at desc").Find(&out).Error
	return out, total, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, deliveredAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if deliveredAt != nil {
		updates["actual_delivery_time"] = *deliveredAt
	}
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
