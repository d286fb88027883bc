package gormstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"food-ordering-api/models"
	"food-ordering-api/repository"

	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", models.NewID())
	db, err := Open(dsn, logger.Silent)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	store := NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestUserRepo(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	u := &models.User{Name: "Ann", Email: "Ann@Example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true,
		Addresses: []string{"1 Main St"}}
	if err := store.Users.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected id to be assigned")
	}

	dup := &models.User{Name: "Ann 2", Email: "Ann@Example.com", PasswordHash: "x", Role: models.RoleCustomer, IsActive: true}
	if err := store.Users.Create(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	got, err := store.Users.FindByEmail(ctx, "ann@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.ID != u.ID || len(got.Addresses) != 1 {
		t.Fatalf("unexpected user: %+v", got)
	}

	got.IsActive = false
	if err := store.Users.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	users, total, err := store.Users.ListActive(ctx, repository.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if total != 0 || len(users) != 0 {
		t.Fatalf("deactivated user should not be listed, got %d", total)
	}

	if _, err := store.Users.FindByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRestaurantRepoListActive(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	seed := []models.Restaurant{
		{OwnerID: "o1", Name: "Pizza Palace", Cuisine: "italian", AvgRating: 4.5, IsActive: true,
			Address: models.Address{Street: "1", City: "New York", State: "NY", ZipCode: "10001"}},
		{OwnerID: "o1", Name: "Sushi Zen", Cuisine: "japanese", AvgRating: 4.8, IsActive: true,
			Address: models.Address{Street: "2", City: "Boston", State: "MA", ZipCode: "02101"}},
		{OwnerID: "o2", Name: "Closed Diner", Cuisine: "american", AvgRating: 5, IsActive: false,
			Address: models.Address{Street: "3", City: "New York", State: "NY", ZipCode: "10002"}},
	}
	for i := range seed {
		seed[i].OpeningHours = models.DefaultOpeningHours()
		if err := store.Restaurants.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, total, err := store.Restaurants.ListActive(ctx, repository.RestaurantFilter{}, repository.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if total != 2 || all[0].Name != "Sushi Zen" {
		t.Fatalf("expected 2 active restaurants sorted by rating, got %d first=%q", total, all[0].Name)
	}
	if !all[0].OpeningHours.Monday.IsOpen {
		t.Fatal("opening hours should round-trip")
	}

	nyc, total, err := store.Restaurants.ListActive(ctx, repository.RestaurantFilter{City: "new york"}, repository.Page{Number: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if total != 1 || nyc[0].Name != "Pizza Palace" {
		t.Fatalf("unexpected city filter result: %+v", nyc)
	}

	owned, err := store.Restaurants.ListByOwner(ctx, "o2", true)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(owned) != 0 {
		t.Fatalf("inactive restaurant should be excluded, got %d", len(owned))
	}
}

func TestFoodRepo(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	foods := []models.Food{
		{RestaurantID: "r1", Name: "Margherita", Description: "classic", Price: 12, Category: "pizza", Available: true, IsActive: true, Ingredients: []string{"tomato", "mozzarella"}},
		{RestaurantID: "r1", Name: "Tiramisu", Description: "dessert", Price: 6, Category: "dessert", Available: true, IsActive: true},
		{RestaurantID: "r1", Name: "Calzone", Description: "folded", Price: 14, Category: "pizza", Available: false, IsActive: true},
		{RestaurantID: "r2", Name: "Old Special", Description: "retired", Price: 9, Category: "pizza", Available: true, IsActive: false},
	}
	for i := range foods {
		if err := store.Foods.Create(ctx, &foods[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	available := true
	minPrice := 10.0
	got, total, err := store.Foods.List(ctx, repository.FoodFilter{Available: &available, MinPrice: &minPrice}, repository.Page{Number: 1, Limit: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || got[0].Name != "Margherita" || len(got[0].Ingredients) != 2 {
		t.Fatalf("unexpected list: %+v", got)
	}

	menu, err := store.Foods.Menu(ctx, "r1")
	if err != nil {
		t.Fatalf("Menu: %v", err)
	}
	if len(menu) != 2 || menu[0].Category != "dessert" {
		t.Fatalf("menu should hold available foods sorted by category: %+v", menu)
	}

	cats, err := store.Foods.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(cats) != 2 || cats[0] != "dessert" || cats[1] != "pizza" {
		t.Fatalf("unexpected categories: %v", cats)
	}

	none, total, err := store.Foods.List(ctx, repository.FoodFilter{RestaurantIDs: []string{}}, repository.Page{Number: 1, Limit: 20})
	if err != nil || total != 0 || len(none) != 0 {
		t.Fatalf("empty restaurant set should match nothing: %v %d", err, total)
	}
}

func TestOrderRepo(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		o := &models.Order{
			UserID:        "u1",
			RestaurantID:  "r1",
			Items:         []models.OrderItem{{FoodID: "f1", Name: "Margherita", Price: 10, Quantity: 2}, {FoodID: "f2", Name: "Soda", Price: 5, Quantity: 1}},
			Subtotal:      25,
			DeliveryFee:   3,
			Tax:           3,
			Total:         31,
			Status:        models.StatusPending,
			PaymentStatus: models.PaymentPending,
			PaymentMethod: models.PaymentCard,
			DeliveryAddress: models.DeliveryAddress{
				Street: "1 Main", City: "NYC", State: "NY", ZipCode: "10001", Phone: "+12125551234",
			},
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}
		if err := store.Orders.Create(ctx, o); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	orders, total, err := store.Orders.ListByUser(ctx, "u1", "", repository.Page{Number: 1, Limit: 2})
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if total != 3 || len(orders) != 2 {
		t.Fatalf("expected 3 total and a page of 2, got %d/%d", total, len(orders))
	}
	if !orders[0].CreatedAt.After(orders[1].CreatedAt) {
		t.Fatal("orders should be newest first")
	}

	o, err := store.Orders.FindByID(ctx, orders[0].ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(o.Items) != 2 || o.Items[0].Name != "Margherita" || o.DeliveryAddress.City != "NYC" {
		t.Fatalf("unexpected order snapshot: %+v", o)
	}

	delivered := time.Now()
	if err := store.Orders.UpdateStatus(ctx, o.ID, models.StatusDelivered, &delivered); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	o, _ = store.Orders.FindByID(ctx, o.ID)
	if o.Status != models.StatusDelivered || o.ActualDeliveryTime == nil {
		t.Fatalf("expected delivered with timestamp, got %+v", o)
	}

	filtered, total, err := store.Orders.ListByUser(ctx, "u1", models.StatusDelivered, repository.Page{Number: 1, Limit: 10})
	if err != nil || total != 1 || len(filtered) != 1 {
		t.Fatalf("status filter: %v total=%d", err, total)
	}

	if err := store.Orders.UpdateStatus(ctx, "missing", models.StatusConfirmed, nil); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
