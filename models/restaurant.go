package models

import "time"

// RestaurantProfile is the business profile owned by a restaurant-role user.
// Exactly one profile exists per owner.
type RestaurantProfile struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OwnerUserID uint      `json:"owner_user_id" gorm:"uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Offers      []Offer   `json:"offers,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
