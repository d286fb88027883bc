package mongostore

import (
	"regexp"
	"strings"

	"food-ordering-api/models"
	"food-ordering-api/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ci builds a case-insensitive substring match for s.
func ci(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func restaurantFilter(f repository.RestaurantFilter) bson.M {
	filter := bson.M{"isActive": true}
	if f.Cuisine != "" {
		filter["cuisine"] = ci(f.Cuisine)
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": ci(f.Search)},
			bson.M{"description": ci(f.Search)},
		}
	}
	if f.City != "" {
		filter["address.city"] = ci(f.City)
	}
	return filter
}

func foodFilter(f repository.FoodFilter) bson.M {
	filter := bson.M{"isActive": true}
	if f.Available != nil {
		filter["available"] = *f.Available
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": ci(f.Search)},
			bson.M{"description": ci(f.Search)},
		}
	}
	if f.Category != "" {
		filter["category"] = strings.ToLower(f.Category)
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}
	if f.RestaurantIDs != nil {
		filter["restaurant"] = bson.M{"$in": f.RestaurantIDs}
	}
	return filter
}

func orderFilter(userID string, status models.OrderStatus) bson.M {
	filter := bson.M{"user": userID}
	if status != "" {
		filter["status"] = status
	}
	return filter
}

// findOptions applies the page window and sort keys.
func findOptions(page repository.Page, sort bson.D) *options.FindOptions {
	opts := options.Find().SetSort(sort)
	if page.Limit > 0 {
		opts.SetSkip(int64(page.Offset())).SetLimit(int64(page.Limit))
	}
	return opts
}

var (
	newestFirst = bson.D{{Key: "createdAt", Value: -1}}
	bestRated   = bson.D{{Key: "avgRating", Value: -1}, {Key: "createdAt", Value: -1}}
	menuOrder   = bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}
	oldestFirst = bson.D{{Key: "createdAt", Value: 1}}
)
