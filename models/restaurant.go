package models

import "time"

type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

type Address struct {
	Street      string       `json:"street" bson:"street" binding:"required"`
	City        string       `json:"city" bson:"city" binding:"required"`
	State       string       `json:"state" bson:"state" binding:"required"`
	ZipCode     string       `json:"zipCode" bson:"zipCode" binding:"required"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty" gorm:"serializer:json"`
}

// DayHours is one row of a restaurant's weekly timetable.
type DayHours struct {
	Open   string `json:"open" bson:"open"`
	Close  string `json:"close" bson:"close"`
	IsOpen bool   `json:"isOpen" bson:"isOpen"`
}

type OpeningHours struct {
	Monday    DayHours `json:"monday" bson:"monday"`
	Tuesday   DayHours `json:"tuesday" bson:"tuesday"`
	Wednesday DayHours `json:"wednesday" bson:"wednesday"`
	Thursday  DayHours `json:"thursday" bson:"thursday"`
	Friday    DayHours `json:"friday" bson:"friday"`
	Saturday  DayHours `json:"saturday" bson:"saturday"`
	Sunday    DayHours `json:"sunday" bson:"sunday"`
}

// DefaultOpeningHours marks every day open with no fixed times.
func DefaultOpeningHours() OpeningHours {
	d := DayHours{IsOpen: true}
	return OpeningHours{d, d, d, d, d, d, d}
}

type Restaurant struct {
	ID           string       `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID      string       `json:"owner" bson:"owner" gorm:"index;not null"`
	Name         string       `json:"name" bson:"name" gorm:"not null"`
	Address      Address      `json:"address" bson:"address" gorm:"embedded;embeddedPrefix:address_"`
	Cuisine      string       `json:"cuisine" bson:"cuisine" gorm:"index"`
	Description  string       `json:"description" bson:"description"`
	OpeningHours OpeningHours `json:"openingHours" bson:"openingHours" gorm:"serializer:json"`
	AvgRating    float64      `json:"avgRating" bson:"avgRating" gorm:"default:0"`
	TotalReviews int          `json:"totalReviews" bson:"totalReviews" gorm:"default:0"`
	ImageURL     string       `json:"imageUrl" bson:"imageUrl"`
	IsActive     bool         `json:"isActive" bson:"isActive" gorm:"not null"`
	DeliveryFee  float64      `json:"deliveryFee" bson:"deliveryFee" gorm:"default:0"`
	MinimumOrder float64      `json:"minimumOrder" bson:"minimumOrder" gorm:"default:0"`
	CreatedAt    time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt" bson:"updatedAt"`

	// Owner is filled in by the service layer when a response needs it.
	Owner *UserSummary `json:"-" bson:"-" gorm:"-"`
}

// RestaurantSummary is what orders and foods expose about their restaurant.
type RestaurantSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

func (r *Restaurant) Summary() *RestaurantSummary {
	return &RestaurantSummary{ID: r.ID, Name: r.Name, Address: r.Address}
}
