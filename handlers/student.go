package handlers

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"foodshare-api/apperr"
	"foodshare-api/config"
	"foodshare-api/geo"
	"foodshare-api/middleware"
	"foodshare-api/models"
)

type ClaimOfferRequest struct {
	UserID  uint `json:"user_id" binding:"required"`
	OfferID uint `json:"offer_id" binding:"required"`
}

type VerificationDocRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	Document string `json:"document" binding:"required"`
}

// offerListing is one row of the discovery feed.
type offerListing struct {
	ID               uint             `json:"id"`
	Restaurant       string           `json:"restaurant"`
	Title            string           `json:"title"`
	Type             models.OfferType `json:"type"`
	Description      string           `json:"description"`
	Quantity         int              `json:"quantity"`
	OriginalQuantity int              `json:"original_quantity"`
	DiscountRate     int              `json:"discount_rate"`
	PickupWindow     string           `json:"pickup_window"`
	Lat              float64          `json:"lat"`
	Lng              float64          `json:"lng"`
	Distance         float64          `json:"distance"`
	IsRecommended    bool             `json:"is_recommended"`
}

// Offers closer than this are flagged recommended regardless of type.
const recommendDistanceKm = 2.0

// ListOffers returns every active, in-stock offer annotated with the distance
// from the caller, nearest first. Free offers and offers within walking
// distance are flagged recommended.
func ListOffers(c *gin.Context) {
	lat := queryFloat(c, "lat", config.CampusLat)
	lng := queryFloat(c, "lng", config.CampusLng)

	var offers []models.Offer
	if err := config.DB.Preload("Restaurant").
		Where("status = ? AND quantity > 0", models.OfferActive).
		Find(&offers).Error; err != nil {
		fail(c, err)
		return
	}

	listings := make([]offerListing, 0, len(offers))
	for _, offer := range offers {
		dist := geo.Distance(lat, lng, offer.Restaurant.Lat, offer.Restaurant.Lng)
		listings = append(listings, offerListing{
			ID:               offer.ID,
			Restaurant:       offer.Restaurant.Name,
			Title:            offer.Title,
			Type:             offer.Type,
			Description:      offer.Description,
			Quantity:         offer.Quantity,
			OriginalQuantity: offer.OriginalQuantity,
			DiscountRate:     offer.DiscountRate,
			PickupWindow:     offer.PickupWindow(),
			Lat:              offer.Restaurant.Lat,
			Lng:              offer.Restaurant.Lng,
			Distance:         dist,
			IsRecommended:    offer.Type == models.OfferFree || dist < recommendDistanceKm,
		})
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].Distance < listings[j].Distance
	})

	c.JSON(http.StatusOK, listings)
}

// ClaimOffer reserves one unit of an offer for a student. The decrement is a
// single conditional UPDATE: concurrent claims on the last unit cannot drive
// the quantity negative, the loser simply affects zero rows and sees SoldOut.
func ClaimOffer(c *gin.Context) {
	var req ClaimOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.KindValidation, err.Error()))
		return
	}

	if _, aerr := middleware.RequireRole(req.UserID, models.RoleStudent); aerr != nil {
		apperr.Respond(c, aerr)
		return
	}

	var offer models.Offer
	if err := config.DB.First(&offer, req.OfferID).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.KindNotFound, "Offer not found."))
		return
	}
	if offer.Quantity < 1 || offer.Status != models.OfferActive {
		apperr.Respond(c, apperr.New(apperr.KindSoldOut, "Sorry, this item is sold out."))
		return
	}

	code := redemptionCode(offer.ID, req.UserID)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Offer{}).
			Where("id = ? AND quantity > 0 AND status = ?", offer.ID, models.OfferActive).
			UpdateColumn("quantity", gorm.Expr("quantity - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.KindSoldOut, "Sorry, this item is sold out.")
		}

		if err := tx.Model(&models.Offer{}).
			Where("id = ? AND quantity = 0", offer.ID).
			UpdateColumn("status", models.OfferSoldOut).Error; err != nil {
			return err
		}

		claim := models.Claim{
			UserID:  req.UserID,
			OfferID: offer.ID,
			QRCode:  code,
			Status:  models.ClaimPending,
		}
		return tx.Create(&claim).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Meal reserved! Your QR Code has been generated.",
		"qr_code":    code,
		"offer_desc": offer.Description,
	})
}

// redemptionCode builds the opaque pickup token. The uuid suffix keeps codes
// collision-resistant; they are not secrets.
func redemptionCode(offerID, userID uint) string {
	id := uuid.New()
	suffix := strings.ToUpper(hex.EncodeToString(id[:3]))
	return fmt.Sprintf("OFF-%d-USR-%d-%s", offerID, userID, suffix)
}

// GetHistory returns the student's claims, newest first.
func GetHistory(c *gin.Context) {
	userID, aerr := uintParam(c, "userId")
	if aerr != nil {
		apperr.Respond(c, aerr)
		return
	}

	var claims []models.Claim
	if err := config.DB.Preload("Offer.Restaurant").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&claims).Error; err != nil {
		fail(c, err)
		return
	}

	history := make([]gin.H, 0, len(claims))
	for _, claim := range claims {
		title := claim.Offer.Title
		if title == "" {
			title = claim.Offer.Description
		}
		history = append(history, gin.H{
			"id":              claim.ID,
			"offer_title":     title,
			"offer_desc":      claim.Offer.Description,
			"restaurant_name": claim.Offer.Restaurant.Name,
			"type":            claim.Offer.Type,
			"qr_code":         claim.QRCode,
			"status":          claim.Status,
			"date":            claim.CreatedAt.Format("02-01-2006"),
			"time":            claim.CreatedAt.Format("15:04"),
		})
	}

	c.JSON(http.StatusOK, history)
}

// GetNotifications returns the student's latest 20 inbox entries.
func GetNotifications(c *gin.Context) {
	userID, aerr := uintParam(c, "userId")
	if aerr != nil {
		apperr.Respond(c, aerr)
		return
	}

	var notifs []models.Notification
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(20).
		Find(&notifs).Error; err != nil {
		fail(c, err)
		return
	}

	out := make([]gin.H, 0, len(notifs))
	for _, n := range notifs {
		out = append(out, gin.H{
			"id":      n.ID,
			"title":   n.Title,
			"message": n.Message,
			"is_read": n.IsRead,
			"date":    n.CreatedAt.Format("02/01 15:04"),
		})
	}

	c.JSON(http.StatusOK, out)
}

// SubmitVerification stores a student's verification document and queues the
// account for admin review.
func SubmitVerification(c *gin.Context) {
	var req VerificationDocRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.KindValidation, err.Error()))
		return
	}

	var user models.User
	if err := config.DB.First(&user, req.UserID).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.KindNotFound, "User not found."))
		return
	}

	user.VerificationDoc = req.Document
	user.VerificationStatus = models.VerificationPending
	if err := config.DB.Save(&user).Error; err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Documents uploaded. Pending approval.",
	})
}

func queryFloat(c *gin.Context, name string, fallback float64) float64 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
