package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"foodshare-api/apperr"
	"foodshare-api/config"
	"foodshare-api/middleware"
	"foodshare-api/models"
	"foodshare-api/statemachine"
)

type CreateOfferRequest struct {
	UserID       uint   `json:"user_id" binding:"required"`
	Title        string `json:"title"`
	Type         string `json:"type" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Quantity     int    `json:"quantity" binding:"omitempty,min=1"`
	DiscountRate int    `json:"discount_rate" binding:"omitempty,min=0,max=100"`
	PickupStart  string `json:"pickup_start"`
	PickupEnd    string `json:"pickup_end"`
}

type VerifyClaimRequest struct {
	QRCode string `json:"qr_code" binding:"required"`
}

// CreateOffer publishes a surplus-food offer for the caller's restaurant and
// announces it to every student through the fan-out collaborator.
func CreateOffer(c *gin.Context) {
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.KindValidation, err.Error()))
		return
	}

	if _, aerr := middleware.RequireRole(req.UserID, models.RoleRestaurant); aerr != nil {
		apperr.Respond(c, aerr)
		return
	}

	offerType, ok := models.NormalizeOfferType(req.Type)
	if !ok {
		apperr.Respond(c, apperr.New(apperr.KindValidation, "Invalid offer type. Must be: free or discount"))
		return
	}

	var profile models.RestaurantProfile
	if err := config.DB.Where("owner_user_id = ?", req.UserID).First(&profile).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.KindNoProfile, "Restaurant profile not found."))
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	discount := req.DiscountRate
	if offerType == models.OfferFree {
		discount = 0
	}
	title := req.Title
	if title == "" {
		title = "Delicious Meal"
	}

	offer := models.Offer{
		RestaurantID:     profile.ID,
		Title:            title,
		Description:      req.Description,
		Type:             offerType,
		DiscountRate:     discount,
		OriginalQuantity: quantity,
		Quantity:         quantity,
		Status:           models.OfferActive,
		PickupStart:      req.PickupStart,
		PickupEnd:        req.PickupEnd,
	}
	if err := config.DB.Create(&offer).Error; err != nil {
		fail(c, err)
		return
	}

	broadcastOffer(&profile, &offer)

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Offer published successfully!",
		"offer_id": offer.ID,
	})
}

// broadcastOffer announces a new offer to every student. Delivery failures
// are logged, not surfaced: the offer itself is already committed.
func broadcastOffer(profile *models.RestaurantProfile, offer *models.Offer) {
	if Fanout == nil {
		return
	}
	var studentIDs []uint
	if err := config.DB.Model(&models.User{}).
		Where("role = ?", models.RoleStudent).
		Pluck("id", &studentIDs).Error; err != nil {
		logrus.WithError(err).Warn("failed to list students for offer broadcast")
		return
	}
	message := fmt.Sprintf("%s: %s is now up for grabs!", profile.Name, offer.Title)
	if err := Fanout.Broadcast(studentIDs, "New offer nearby", message); err != nil {
		logrus.WithError(err).WithField("offer_id", offer.ID).Warn("offer broadcast failed")
	}
}

// VerifyClaim redeems a scanned code. The pending->validated flip is a
// conditional update keyed on the current status, so a code can never award
// points twice no matter how many scanners race on it.
func VerifyClaim(c *gin.Context) {
	var req VerifyClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.KindValidation, err.Error()))
		return
	}

	var claim models.Claim
	if err := config.DB.Where("qr_code = ?", req.QRCode).First(&claim).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.KindNotFound, "Invalid QR Code. Claim not found."))
		return
	}

	switch claim.Status {
	case models.ClaimValidated:
		apperr.Respond(c, apperr.New(apperr.KindAlreadyUsed, "This code has already been used!"))
		return
	case models.ClaimExpired:
		apperr.Respond(c, apperr.New(apperr.KindExpired, "This code is expired."))
		return
	case models.ClaimRejected:
		apperr.Respond(c, apperr.New(apperr.KindRejected, "This code is rejected."))
		return
	}

	if err := statemachine.CanTransition(claim.Status, models.ClaimValidated, "restaurant"); err != nil {
		apperr.Respond(c, apperr.New(apperr.KindValidation, err.Error()))
		return
	}

	var offer models.Offer
	if err := config.DB.First(&offer, claim.OfferID).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.KindNotFound, "Offer for this claim no longer exists."))
		return
	}

	points := models.PointsDiscountOffer
	if offer.Type == models.OfferFree {
		points = models.PointsFreeOffer
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		res := tx.Model(&models.Claim{}).
			Where("id = ? AND status = ?", claim.ID, models.ClaimPending).
			Updates(map[string]interface{}{
				"status":       models.ClaimValidated,
				"validated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.KindAlreadyUsed, "This code has already been used!")
		}

		var lb models.Leaderboard
		if err := tx.Where("restaurant_id = ?", offer.RestaurantID).First(&lb).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			lb = models.Leaderboard{RestaurantID: offer.RestaurantID}
			if err := tx.Create(&lb).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Leaderboard{}).
			Where("restaurant_id = ?", offer.RestaurantID).
			Updates(map[string]interface{}{
				"points":       gorm.Expr("points + ?", points),
				"meals_shared": gorm.Expr("meals_shared + 1"),
			}).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	var lb models.Leaderboard
	config.DB.Where("restaurant_id = ?", offer.RestaurantID).First(&lb)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Validation Successful! You earned +%d Points.", points),
		"points":  lb.Points,
	})
}
