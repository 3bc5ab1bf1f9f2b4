package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleRestaurant UserRole = "restaurant"
	RoleAdmin      UserRole = "admin"
)

// VerificationStatus is the admin-gated trust state of an account.
// Restaurants must be verified before they can log in or post offers.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
)

type User struct {
	ID                 uint               `json:"id" gorm:"primaryKey"`
	Name               string             `json:"name" gorm:"not null"`
	Email              string             `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash       string             `json:"-" gorm:"not null"`
	Role               UserRole           `json:"role" gorm:"not null;default:'student'"`
	VerificationStatus VerificationStatus `json:"status" gorm:"not null;default:'unverified'"`
	VerificationDoc    string             `json:"-"`
	RestaurantProfile  *RestaurantProfile `json:"restaurant_profile,omitempty" gorm:"foreignKey:OwnerUserID"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}
