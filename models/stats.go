package models

import "time"

// Points awarded per validated claim, by offer type.
const (
	PointsFreeOffer     = 20
	PointsDiscountOffer = 10
)

// Leaderboard holds per-restaurant gamification counters. Points and
// meals_shared only ever grow, and only claim validation touches them.
type Leaderboard struct {
	RestaurantID uint              `json:"restaurant_id" gorm:"primaryKey"`
	Restaurant   RestaurantProfile `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Points       int               `json:"points" gorm:"not null;default:0"`
	MealsShared  int               `json:"meals_shared" gorm:"not null;default:0"`
	LastUpdated  time.Time         `json:"last_updated" gorm:"autoUpdateTime"`
}

func (Leaderboard) TableName() string { return "leaderboard" }

// Notification is a broadcast message delivered to a student's inbox when a
// restaurant publishes a new offer.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"default:'Notification'"`
	Message   string    `json:"message" gorm:"not null"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}
