// Package mongostore implements the repositories on MongoDB, one collection
// per entity with order line items embedded in the order document.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"food-ordering-api/models"
	"food-ordering-api/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection       = "users"
	restaurantsCollection = "restaurants"
	foodsCollection       = "foods"
	ordersCollection      = "orders"
)

// Connect dials uri, pings the server and ensures indexes on database name.
func Connect(ctx context.Context, uri, name string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	db := client.Database(name)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}
	return client, db, nil
}

// EnsureIndexes creates the indexes the listings rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		restaurantsCollection: {
			{Keys: bson.D{{Key: "address.city", Value: 1}}},
			{Keys: bson.D{{Key: "cuisine", Value: 1}}},
			{Keys: bson.D{{Key: "owner", Value: 1}}},
		},
		foodsCollection: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "available", Value: 1}}},
			{Keys: bson.D{{Key: "restaurant", Value: 1}, {Key: "available", Value: 1}}},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "restaurant", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}
	for coll, idx := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// NewStore wires the Mongo repositories around db.
func NewStore(client *mongo.Client, db *mongo.Database) *repository.Store {
	return &repository.Store{
		Users:       &UserRepo{coll: db.Collection(usersCollection)},
		Restaurants: &RestaurantRepo{coll: db.Collection(restaurantsCollection)},
		Foods:       &FoodRepo{coll: db.Collection(foodsCollection)},
		Orders:      &OrderRepo{coll: db.Collection(ordersCollection)},
		Close: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Disconnect(ctx)
		},
	}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	}
	return err
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func list[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, page repository.Page, sort bson.D) ([]T, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out, err := findMany[T](ctx, coll, filter, findOptions(page, sort))
	return out, total, err
}

func replace(ctx context.Context, coll *mongo.Collection, id string, doc any) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ---- users ----

type UserRepo struct{ coll *mongo.Collection }

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = models.NewID()
	}
	u.CreatedAt, u.UpdatedAt = now(), now()
	_, err := r.coll.InsertOne(ctx, u)
	return translate(err)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"_id": id})
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"email": email})
}

func (r *UserRepo) ListActive(ctx context.Context, page repository.Page) ([]models.User, int64, error) {
	return list[models.User](ctx, r.coll, bson.M{"isActive": true}, page, newestFirst)
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	u.UpdatedAt = now()
	return replace(ctx, r.coll, u.ID, u)
}

// ---- restaurants ----

type RestaurantRepo struct{ coll *mongo.Collection }

func (r *RestaurantRepo) Create(ctx context.Context, rest *models.Restaurant) error {
	if rest.ID == "" {
		rest.ID = models.NewID()
	}
	rest.CreatedAt, rest.UpdatedAt = now(), now()
	_, err := r.coll.InsertOne(ctx, rest)
	return translate(err)
}

func (r *RestaurantRepo) FindByID(ctx context.Context, id string) (*models.Restaurant, error) {
	return findOne[models.Restaurant](ctx, r.coll, bson.M{"_id": id})
}

func (r *RestaurantRepo) ListActive(ctx context.Context, f repository.RestaurantFilter, page repository.Page) ([]models.Restaurant, int64, error) {
	return list[models.Restaurant](ctx, r.coll, restaurantFilter(f), page, bestRated)
}

func (r *RestaurantRepo) ListByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]models.Restaurant, error) {
	filter := bson.M{"owner": ownerID}
	if activeOnly {
		filter["isActive"] = true
	}
	return findMany[models.Restaurant](ctx, r.coll, filter, options.Find().SetSort(oldestFirst))
}

func (r *RestaurantRepo) Update(ctx context.Context, rest *models.Restaurant) error {
	rest.UpdatedAt = now()
	return replace(ctx, r.coll, rest.ID, rest)
}

// ---- foods ----

type FoodRepo struct{ coll *mongo.Collection }

func (r *FoodRepo) Create(ctx context.Context, f *models.Food) error {
	if f.ID == "" {
		f.ID = models.NewID()
	}
	f.CreatedAt, f.UpdatedAt = now(), now()
	_, err := r.coll.InsertOne(ctx, f)
	return translate(err)
}

func (r *FoodRepo) FindByID(ctx context.Context, id string) (*models.Food, error) {
	return findOne[models.Food](ctx, r.coll, bson.M{"_id": id})
}

func (r *FoodRepo) List(ctx context.Context, f repository.FoodFilter, page repository.Page) ([]models.Food, int64, error) {
	return list[models.Food](ctx, r.coll, foodFilter(f), page, newestFirst)
}

func (r *FoodRepo) Menu(ctx context.Context, restaurantID string) ([]models.Food, error) {
	filter := bson.M{"restaurant": restaurantID, "available": true, "isActive": true}
	return findMany[models.Food](ctx, r.coll, filter, options.Find().SetSort(menuOrder))
}

func (r *FoodRepo) Categories(ctx context.Context) ([]string, error) {
	raw, err := r.coll.Distinct(ctx, "category", bson.M{"available": true, "isActive": true})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *FoodRepo) Update(ctx context.Context, f *models.Food) error {
	f.UpdatedAt = now()
	return replace(ctx, r.coll, f.ID, f)
}

// ---- orders ----

type OrderRepo struct{ coll *mongo.Collection }

func (r *OrderRepo) Create(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = models.NewID()
	}
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = models.NewID()
		}
		o.Items[i].OrderID = o.ID
	}
	o.CreatedAt, o.UpdatedAt = now(), now()
	_, err := r.coll.InsertOne(ctx, o)
	return translate(err)
}

func (r *OrderRepo) FindByID(ctx context.Context, id string) (*models.Order, error) {
	o, err := findOne[models.Order](ctx, r.coll, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	fillOrderIDs(o)
	return o, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID string, status models.OrderStatus, page repository.Page) ([]models.Order, int64, error) {
	out, total, err := list[models.Order](ctx, r.coll, orderFilter(userID, status), page, newestFirst)
	for i := range out {
		fillOrderIDs(&out[i])
	}
	return out, total, err
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, deliveredAt *time.Time) error {
	set := bson.M{"status": status, "updatedAt": now()}
	if deliveredAt != nil {
		set["actualDeliveryTime"] = deliveredAt.UTC()
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// fillOrderIDs restores the back-reference that embedded items do not store.
func fillOrderIDs(o *models.Order) {
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
}
