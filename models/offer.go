package models

import (
	"strings"
	"time"
)

// OfferType distinguishes giveaways from discounted meals. The distinction
// drives both leaderboard scoring and discovery recommendations.
type OfferType string

const (
	OfferFree     OfferType = "free"
	OfferDiscount OfferType = "discount"
)

// NormalizeOfferType lowercases and trims a client-supplied type string and
// reports whether it names a known offer type. Free-text type fields from
// mobile clients arrive with stray casing and whitespace, so every write path
// goes through here.
func NormalizeOfferType(raw string) (OfferType, bool) {
	t := OfferType(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case OfferFree, OfferDiscount:
		return t, true
	}
	return "", false
}

// OfferStatus represents the inventory state of an offer
type OfferStatus string

const (
	OfferActive  OfferStatus = "active"
	OfferSoldOut OfferStatus = "sold_out"
)

type Offer struct {
	ID               uint              `json:"id" gorm:"primaryKey"`
	RestaurantID     uint              `json:"restaurant_id" gorm:"not null;index"`
	Restaurant       RestaurantProfile `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Title            string            `json:"title" gorm:"not null"`
	Description      string            `json:"description" gorm:"not null"`
	Type             OfferType         `json:"type" gorm:"not null"`
	DiscountRate     int               `json:"discount_rate" gorm:"default:0"` // percent, 0 when free
	OriginalQuantity int               `json:"original_quantity" gorm:"not null"`
	Quantity         int               `json:"quantity" gorm:"not null"` // units remaining, never negative
	Status           OfferStatus       `json:"status" gorm:"not null;default:'active'"`
	PickupStart      string            `json:"pickup_start"`
	PickupEnd        string            `json:"pickup_end"`
	CreatedAt        time.Time         `json:"created_at"`
}

// PickupWindow renders the pickup hours for API payloads.
func (o *Offer) PickupWindow() string {
	if o.PickupStart == "" {
		return "All day"
	}
	return o.PickupStart + " - " + o.PickupEnd
}

// ClaimStatus represents the lifecycle state of a reservation
type ClaimStatus string

const (
	ClaimPending   ClaimStatus = "pending"
	ClaimValidated ClaimStatus = "validated"
	ClaimExpired   ClaimStatus = "expired"
	ClaimRejected  ClaimStatus = "rejected"
)

// Claim is a student's reservation of one unit of an offer. The redemption
// code is presented at pickup and validates at most once.
type Claim struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"not null;index"`
	OfferID     uint        `json:"offer_id" gorm:"not null;index"`
	Offer       Offer       `json:"offer,omitempty" gorm:"foreignKey:OfferID"`
	QRCode      string      `json:"qr_code" gorm:"uniqueIndex;not null"`
	Status      ClaimStatus `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt   time.Time   `json:"created_at"`
	ValidatedAt *time.Time  `json:"validated_at,omitempty"`
}
