package models

import (
	"time"

	"gorm.io/datatypes"
)

type SpiceLevel string

const (
	SpiceMild     SpiceLevel = "mild"
	SpiceMedium   SpiceLevel = "medium"
	SpiceHot      SpiceLevel = "hot"
	SpiceExtraHot SpiceLevel = "extra-hot"
)

func (l SpiceLevel) Valid() bool {
	switch l {
	case SpiceMild, SpiceMedium, SpiceHot, SpiceExtraHot:
		return true
	}
	return false
}

// DefaultPreparationTime is applied when a food item is created without one.
const DefaultPreparationTime = 15

type Food struct {
	ID              string                      `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	RestaurantID    string                      `json:"restaurant" bson:"restaurant" gorm:"index;not null"`
	Name            string                      `json:"name" bson:"name" gorm:"not null"`
	Description     string                      `json:"description" bson:"description"`
	Price           float64                     `json:"price" bson:"price" gorm:"not null"`
	Category        string                      `json:"category" bson:"category" gorm:"index"`
	ImageURL        string                      `json:"imageUrl" bson:"imageUrl"`
	Available       bool                        `json:"available" bson:"available" gorm:"not null"`
	PreparationTime int                         `json:"preparationTime" bson:"preparationTime" gorm:"default:15"`
	Ingredients     datatypes.JSONSlice[string] `json:"ingredients" bson:"ingredients"`
	IsVegetarian    bool                        `json:"isVegetarian" bson:"isVegetarian"`
	IsVegan         bool                        `json:"isVegan" bson:"isVegan"`
	SpiceLevel      SpiceLevel                  `json:"spiceLevel" bson:"spiceLevel" gorm:"default:'mild'"`
	Rating          float64                     `json:"rating" bson:"rating" gorm:"default:0"`
	TotalReviews    int                         `json:"totalReviews" bson:"totalReviews" gorm:"default:0"`
	IsActive        bool                        `json:"-" bson:"isActive" gorm:"not null"`
	CreatedAt       time.Time                   `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time                   `json:"updatedAt" bson:"updatedAt"`

	Restaurant *RestaurantSummary `json:"-" bson:"-" gorm:"-"`
}
