package models

import "time"

// OrderStatus represents all possible states of a food order
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentWallet PaymentMethod = "wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentWallet:
		return true
	}
	return false
}

type DeliveryAddress struct {
	Street       string `json:"street" bson:"street" binding:"required"`
	City         string `json:"city" bson:"city" binding:"required"`
	State        string `json:"state" bson:"state" binding:"required"`
	ZipCode      string `json:"zipCode" bson:"zipCode" binding:"required"`
	Phone        string `json:"phone" bson:"phone" binding:"required,phone"`
	Instructions string `json:"instructions,omitempty" bson:"instructions,omitempty" binding:"max=200"`
}

type Order struct {
	ID                    string          `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	UserID                string          `json:"user" bson:"user" gorm:"index;not null"`
	RestaurantID          string          `json:"restaurant" bson:"restaurant" gorm:"index;not null"`
	Items                 []OrderItem     `json:"items" bson:"items" gorm:"foreignKey:OrderID"`
	Subtotal              float64         `json:"subtotal" bson:"subtotal" gorm:"not null"`
	DeliveryFee           float64         `json:"deliveryFee" bson:"deliveryFee"`
	Tax                   float64         `json:"tax" bson:"tax"`
	Total                 float64         `json:"total" bson:"total" gorm:"not null"`
	Status                OrderStatus     `json:"status" bson:"status" gorm:"index;not null"`
	PaymentStatus         PaymentStatus   `json:"paymentStatus" bson:"paymentStatus" gorm:"not null"`
	PaymentMethod         PaymentMethod   `json:"paymentMethod" bson:"paymentMethod" gorm:"not null"`
	DeliveryAddress       DeliveryAddress `json:"deliveryAddress" bson:"deliveryAddress" gorm:"embedded;embeddedPrefix:delivery_"`
	EstimatedDeliveryTime *time.Time      `json:"estimatedDeliveryTime,omitempty" bson:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time      `json:"actualDeliveryTime,omitempty" bson:"actualDeliveryTime,omitempty"`
	Notes                 string          `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt             time.Time       `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt             time.Time       `json:"updatedAt" bson:"updatedAt"`

	User       *UserSummary       `json:"-" bson:"-" gorm:"-"`
	Restaurant *RestaurantSummary `json:"-" bson:"-" gorm:"-"`
}

// OrderItem is a snapshot of a food item taken when the order was placed.
type OrderItem struct {
	ID                  string  `json:"id" bson:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID             string  `json:"-" bson:"-" gorm:"index;not null"`
	FoodID              string  `json:"food" bson:"food" gorm:"not null"`
	Name                string  `json:"name" bson:"name" gorm:"not null"`
	Price               float64 `json:"price" bson:"price" gorm:"not null"` // price at order time
	Quantity            int     `json:"quantity" bson:"quantity" gorm:"not null"`
	SpecialInstructions string  `json:"specialInstructions,omitempty" bson:"specialInstructions,omitempty"`
}
