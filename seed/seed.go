// Package seed loads a demo data set: three accounts, four New York
// restaurants with menus, and two sample orders.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"food-ordering-api/models"
	"food-ordering-api/policy"
	"food-ordering-api/repository"
	"food-ordering-api/services"

	"golang.org/x/crypto/bcrypt"
)

// Demo credentials printed after seeding.
const (
	AdminEmail       = "admin@foodorder.com"
	AdminPassword    = "Admin@123"
	OwnerEmail       = "owner@restaurant.com"
	OwnerPassword    = "Owner@123"
	CustomerEmail    = "customer@example.com"
	CustomerPassword = "Customer@123"
)

type Summary struct {
	Skipped     bool
	Users       int
	Restaurants int
	Foods       int
	Orders      int
}

type account struct {
	name, email, password, phone, address string
	role                                  models.UserRole
}

var accounts = []account{
	{"Admin User", AdminEmail, AdminPassword, "+1234567890", "123 Admin Street, Admin City, AC 12345", models.RoleAdmin},
	{"Restaurant Owner", OwnerEmail, OwnerPassword, "+1234567891", "456 Owner Avenue, Owner City, OC 67890", models.RoleRestaurant},
	{"John Customer", CustomerEmail, CustomerPassword, "+1234567892", "789 Customer Lane, Customer City, CC 54321", models.RoleCustomer},
}

type dish struct {
	name, description, category string
	price                       float64
	prep                        int
	ingredients                 []string
	vegetarian, vegan           bool
	rating                      float64
	reviews                     int
}

type venue struct {
	restaurant models.Restaurant
	open       [3]string // weekday open, weekday close, weekend close
	sunday     [2]string
	menu       []dish
}

func hours(v venue) models.OpeningHours {
	weekday := models.DayHours{Open: v.open[0], Close: v.open[1], IsOpen: true}
	weekend := models.DayHours{Open: v.open[0], Close: v.open[2], IsOpen: true}
	return models.OpeningHours{
		Monday: weekday, Tuesday: weekday, Wednesday: weekday, Thursday: weekday,
		Friday: weekend, Saturday: weekend,
		Sunday: models.DayHours{Open: v.sunday[0], Close: v.sunday[1], IsOpen: true},
	}
}

func nyc(street, zip string, lat, lng float64) models.Address {
	return models.Address{
		Street: street, City: "New York", State: "NY", ZipCode: zip,
		Coordinates: &models.Coordinates{Latitude: lat, Longitude: lng},
	}
}

var venues = []venue{
	{
		restaurant: models.Restaurant{
			Name: "Pizza Palace", Cuisine: "italian", Address: nyc("123 Pizza Street", "10001", 40.7128, -74.0060),
			Description: "Authentic Italian pizza made with fresh ingredients",
			AvgRating:   4.5, TotalReviews: 150, DeliveryFee: 2.99, MinimumOrder: 15,
		},
		open: [3]string{"10:00", "22:00", "23:00"}, sunday: [2]string{"12:00", "21:00"},
		menu: []dish{
			{"Margherita Pizza", "Classic tomato sauce, mozzarella, and fresh basil", "Pizza", 14.99, 15, []string{"Tomato sauce", "Mozzarella", "Fresh basil", "Olive oil"}, true, false, 4.5, 45},
			{"Pepperoni Pizza", "Spicy pepperoni with mozzarella and tomato sauce", "Pizza", 16.99, 15, []string{"Tomato sauce", "Mozzarella", "Pepperoni"}, false, false, 4.3, 38},
			{"Caesar Salad", "Fresh romaine lettuce with caesar dressing and croutons", "Salad", 8.99, 10, []string{"Romaine lettuce", "Caesar dressing", "Croutons", "Parmesan"}, true, false, 4.2, 22},
			{"Quattro Stagioni Pizza", "Four seasons pizza with artichokes, mushrooms, ham, and olives", "Pizza", 18.99, 18, []string{"Tomato sauce", "Mozzarella", "Artichokes", "Mushrooms", "Ham", "Olives"}, false, false, 4.4, 31},
			{"Garlic Bread", "Crispy bread with garlic butter and herbs", "Appetizer", 6.99, 8, []string{"Bread", "Garlic butter", "Herbs", "Parmesan"}, true, false, 4.1, 28},
		},
	},
	{
		restaurant: models.Restaurant{
			Name: "Burger Bistro", Cuisine: "american", Address: nyc("456 Burger Boulevard", "10002", 40.7589, -73.9851),
			Description: "Gourmet burgers with premium ingredients",
			AvgRating:   4.2, TotalReviews: 89, DeliveryFee: 3.50, MinimumOrder: 20,
		},
		open: [3]string{"11:00", "23:00", "24:00"}, sunday: [2]string{"12:00", "22:00"},
		menu: []dish{
			{"Classic Cheeseburger", "Beef patty with cheese, lettuce, tomato, and special sauce", "Burger", 12.99, 12, []string{"Beef patty", "Cheese", "Lettuce", "Tomato", "Onion", "Special sauce"}, false, false, 4.4, 67},
			{"BBQ Bacon Burger", "Beef patty with BBQ sauce, crispy bacon, and onion rings", "Burger", 15.99, 15, []string{"Beef patty", "BBQ sauce", "Bacon", "Onion rings", "Cheese"}, false, false, 4.6, 43},
			{"Veggie Burger", "Plant-based patty with fresh vegetables and vegan mayo", "Burger", 11.99, 10, []string{"Plant-based patty", "Lettuce", "Tomato", "Onion", "Vegan mayo"}, true, true, 4.1, 28},
			{"French Fries", "Crispy golden fries with sea salt", "Side", 4.99, 8, []string{"Potatoes", "Sea salt", "Vegetable oil"}, true, true, 4.0, 35},
			{"Chicken Wings", "Spicy buffalo wings with ranch dipping sauce", "Appetizer", 9.99, 12, []string{"Chicken wings", "Buffalo sauce", "Ranch dressing"}, false, false, 4.3, 42},
			{"Onion Rings", "Crispy beer-battered onion rings", "Side", 5.99, 10, []string{"Onions", "Beer batter", "Vegetable oil"}, true, false, 4.2, 26},
		},
	},
	{
		restaurant: models.Restaurant{
			Name: "Sushi Zen", Cuisine: "japanese", Address: nyc("789 Sushi Street", "10003", 40.7505, -73.9934),
			Description: "Fresh sushi and traditional Japanese cuisine",
			AvgRating:   4.8, TotalReviews: 67, DeliveryFee: 4.99, MinimumOrder: 25,
		},
		open: [3]string{"17:00", "22:00", "23:00"}, sunday: [2]string{"17:00", "21:00"},
		menu: []dish{
			{"California Roll", "Crab, avocado, and cucumber roll with sesame seeds", "Sushi", 8.99, 8, []string{"Crab", "Avocado", "Cucumber", "Sesame seeds", "Rice"}, false, false, 4.7, 52},
			{"Salmon Nigiri", "Fresh salmon over seasoned rice", "Sushi", 6.99, 5, []string{"Fresh salmon", "Seasoned rice", "Wasabi"}, false, false, 4.8, 34},
			{"Vegetable Tempura", "Assorted vegetables in light tempura batter", "Appetizer", 9.99, 12, []string{"Mixed vegetables", "Tempura batter", "Dipping sauce"}, true, false, 4.3, 19},
			{"Miso Soup", "Traditional Japanese soup with tofu and seaweed", "Soup", 3.99, 5, []string{"Miso paste", "Tofu", "Seaweed", "Green onions"}, true, false, 4.2, 25},
			{"Dragon Roll", "Eel and cucumber roll topped with avocado and eel sauce", "Sushi", 12.99, 10, []string{"Eel", "Cucumber", "Avocado", "Eel sauce", "Rice"}, false, false, 4.6, 38},
			{"Spicy Tuna Roll", "Fresh tuna with spicy mayo and cucumber", "Sushi", 10.99, 8, []string{"Fresh tuna", "Spicy mayo", "Cucumber", "Rice"}, false, false, 4.4, 29},
		},
	},
	{
		restaurant: models.Restaurant{
			Name: "Taco Fiesta", Cuisine: "mexican", Address: nyc("321 Taco Lane", "10004", 40.7614, -73.9776),
			Description: "Authentic Mexican tacos and burritos",
			AvgRating:   4.3, TotalReviews: 45, DeliveryFee: 2.50, MinimumOrder: 12,
		},
		open: [3]string{"11:00", "22:00", "23:00"}, sunday: [2]string{"12:00", "21:00"},
		menu: []dish{
			{"Beef Tacos", "Three soft tacos with seasoned beef, lettuce, and cheese", "Tacos", 9.99, 10, []string{"Soft tortillas", "Seasoned beef", "Lettuce", "Cheese", "Salsa"}, false, false, 4.4, 41},
			{"Chicken Burrito", "Large burrito with grilled chicken, rice, beans, and cheese", "Burrito", 11.99, 12, []string{"Large tortilla", "Grilled chicken", "Rice", "Beans", "Cheese", "Salsa"}, false, false, 4.5, 38},
			{"Churros", "Sweet fried dough sticks with cinnamon sugar", "Dessert", 5.99, 8, []string{"Dough", "Cinnamon", "Sugar", "Oil"}, true, false, 4.6, 29},
			{"Fish Tacos", "Grilled fish with cabbage slaw and chipotle mayo", "Tacos", 10.99, 12, []string{"Grilled fish", "Cabbage slaw", "Chipotle mayo", "Soft tortillas"}, false, false, 4.5, 33},
			{"Quesadilla", "Grilled tortilla with cheese, chicken, and vegetables", "Mexican", 8.99, 10, []string{"Tortilla", "Cheese", "Chicken", "Bell peppers", "Onions"}, false, false, 4.3, 24},
			{"Nachos Supreme", "Crispy tortilla chips with cheese, jalapeños, and sour cream", "Appetizer", 7.99, 8, []string{"Tortilla chips", "Cheese", "Jalapeños", "Sour cream", "Salsa"}, true, false, 4.1, 31},
		},
	},
}

var sampleAddress = models.DeliveryAddress{
	Street: "123 Customer Street", City: "New York", State: "NY", ZipCode: "10001", Phone: "+1234567890",
}

type sampleOrder struct {
	lines  []services.OrderLine // FoodID holds the dish name until resolved
	method models.PaymentMethod
	notes  string
	status models.OrderStatus
}

var sampleOrders = []sampleOrder{
	{
		lines: []services.OrderLine{
			{FoodID: "Margherita Pizza", Quantity: 1, SpecialInstructions: "Extra cheese please"},
			{FoodID: "Caesar Salad", Quantity: 1, SpecialInstructions: "Dressing on the side"},
		},
		method: models.PaymentCard, notes: "Sample completed order", status: models.StatusDelivered,
	},
	{
		lines: []services.OrderLine{
			{FoodID: "Classic Cheeseburger", Quantity: 2, SpecialInstructions: "No onions"},
		},
		method: models.PaymentUPI, notes: "Current order in progress", status: models.StatusPreparing,
	},
}

// Run inserts the demo data unless the admin account already exists.
// cost is the bcrypt cost; zero means bcrypt.DefaultCost.
func Run(ctx context.Context, store *repository.Store, cost int, log *slog.Logger) (Summary, error) {
	if log == nil {
		log = slog.Default()
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	var sum Summary

	_, err := store.Users.FindByEmail(ctx, AdminEmail)
	switch {
	case err == nil:
		log.Info("seed data already present, skipping")
		sum.Skipped = true
		return sum, nil
	case !errors.Is(err, repository.ErrNotFound):
		return sum, fmt.Errorf("check existing seed: %w", err)
	}

	users := map[models.UserRole]*models.User{}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), cost)
		if err != nil {
			return sum, fmt.Errorf("hash password for %s: %w", a.email, err)
		}
		u := &models.User{
			Name: a.name, Email: a.email, PasswordHash: string(hash), Role: a.role,
			Phone: a.phone, Addresses: []string{a.address}, IsActive: true,
		}
		if err := store.Users.Create(ctx, u); err != nil {
			return sum, fmt.Errorf("create user %s: %w", a.email, err)
		}
		users[a.role] = u
		sum.Users++
	}
	log.Info("seeded users", "count", sum.Users)

	foodIDs := map[string]string{}
	for _, v := range venues {
		rest := v.restaurant
		rest.OwnerID = users[models.RoleRestaurant].ID
		rest.OpeningHours = hours(v)
		rest.IsActive = true
		if err := store.Restaurants.Create(ctx, &rest); err != nil {
			return sum, fmt.Errorf("create restaurant %s: %w", rest.Name, err)
		}
		sum.Restaurants++

		for _, d := range v.menu {
			f := &models.Food{
				RestaurantID: rest.ID, Name: d.name, Description: d.description, Category: d.category,
				Price: d.price, Available: true, PreparationTime: d.prep, Ingredients: d.ingredients,
				IsVegetarian: d.vegetarian, IsVegan: d.vegan, SpiceLevel: models.SpiceMild,
				Rating: d.rating, TotalReviews: d.reviews, IsActive: true,
			}
			if err := store.Foods.Create(ctx, f); err != nil {
				return sum, fmt.Errorf("create food %s: %w", d.name, err)
			}
			foodIDs[d.name] = f.ID
			sum.Foods++
		}
	}
	log.Info("seeded catalog", "restaurants", sum.Restaurants, "foods", sum.Foods)

	orders := services.NewOrderService(store, false, log)
	customer := policy.Caller{UserID: users[models.RoleCustomer].ID, Role: models.RoleCustomer}
	admin := policy.Caller{UserID: users[models.RoleAdmin].ID, Role: models.RoleAdmin}
	for _, so := range sampleOrders {
		lines := make([]services.OrderLine, len(so.lines))
		for i, l := range so.lines {
			l.FoodID = foodIDs[l.FoodID]
			lines[i] = l
		}
		order, err := orders.PlaceOrder(ctx, customer, services.PlaceOrderInput{
			Items: lines, PaymentMethod: so.method, DeliveryAddress: sampleAddress, Notes: so.notes,
		})
		if err != nil {
			return sum, fmt.Errorf("place sample order: %w", err)
		}
		if _, err := orders.UpdateStatus(ctx, admin, order.ID, so.status); err != nil {
			return sum, fmt.Errorf("advance sample order: %w", err)
		}
		sum.Orders++
	}
	log.Info("seeded orders", "count", sum.Orders)
	return sum, nil
}
