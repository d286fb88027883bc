package mongostore

import (
	"testing"

	"food-ordering-api/models"
	"food-ordering-api/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRestaurantFilter(t *testing.T) {
	f := restaurantFilter(repository.RestaurantFilter{Cuisine: "ital", Search: "pizza+", City: "New York"})

	if f["isActive"] != true {
		t.Fatalf("expected active-only filter, got %v", f["isActive"])
	}
	re, ok := f["cuisine"].(primitive.Regex)
	if !ok || re.Pattern != "ital" || re.Options != "i" {
		t.Fatalf("unexpected cuisine filter: %#v", f["cuisine"])
	}
	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two-way $or, got %#v", f["$or"])
	}
	name := or[0].(bson.M)["name"].(primitive.Regex)
	if name.Pattern != `pizza\+` {
		t.Fatalf("search text must be escaped, got %q", name.Pattern)
	}
	if _, ok := f["address.city"]; !ok {
		t.Fatal("expected city filter on address.city")
	}
}

func TestFoodFilter(t *testing.T) {
	minPrice, maxPrice := 5.0, 20.0
	available := true
	f := foodFilter(repository.FoodFilter{
		Category:      "Pizza",
		MinPrice:      &minPrice,
		MaxPrice:      &maxPrice,
		RestaurantIDs: []string{"r1", "r2"},
		Available:     &available,
	})

	if f["category"] != "pizza" {
		t.Fatalf("category should be lowercased, got %v", f["category"])
	}
	price := f["price"].(bson.M)
	if price["$gte"] != 5.0 || price["$lte"] != 20.0 {
		t.Fatalf("unexpected price range: %#v", price)
	}
	in := f["restaurant"].(bson.M)["$in"].([]string)
	if len(in) != 2 {
		t.Fatalf("unexpected restaurant filter: %#v", in)
	}
	if f["available"] != true || f["isActive"] != true {
		t.Fatalf("expected available and active flags, got %#v", f)
	}
}

func TestFoodFilterOmitsUnsetFields(t *testing.T) {
	f := foodFilter(repository.FoodFilter{})
	if len(f) != 1 {
		t.Fatalf("expected only the isActive clause, got %#v", f)
	}
}

func TestOrderFilter(t *testing.T) {
	if f := orderFilter("u1", ""); len(f) != 1 || f["user"] != "u1" {
		t.Fatalf("unexpected filter: %#v", f)
	}
	if f := orderFilter("u1", models.StatusDelivered); f["status"] != models.StatusDelivered {
		t.Fatalf("expected status filter, got %#v", f)
	}
}

func TestFindOptionsWindow(t *testing.T) {
	opts := findOptions(repository.Page{Number: 3, Limit: 10}, newestFirst)
	if opts.Skip == nil || *opts.Skip != 20 {
		t.Fatalf("expected skip 20, got %v", opts.Skip)
	}
	if opts.Limit == nil || *opts.Limit != 10 {
		t.Fatalf("expected limit 10, got %v", opts.Limit)
	}
}
