package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleRestaurant UserRole = "restaurant"
	RoleAdmin      UserRole = "admin"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleRestaurant, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string                      `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name         string                      `json:"name" bson:"name" gorm:"not null"`
	Email        string                      `json:"email" bson:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string                      `json:"-" bson:"passwordHash" gorm:"not null"`
	Role         UserRole                    `json:"role" bson:"role" gorm:"not null;default:'customer'"`
	Phone        string                      `json:"phone" bson:"phone"`
	Addresses    datatypes.JSONSlice[string] `json:"addresses" bson:"addresses"`
	IsActive     bool                        `json:"isActive" bson:"isActive" gorm:"not null"`
	CreatedAt    time.Time                   `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt" bson:"updatedAt"`
}

// UserSummary is the public slice of a user embedded in other resources.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// NewID returns a fresh identifier for any stored entity.
func NewID() string {
	return uuid.NewString()
}
