package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodshare-api/apperr"
	"foodshare-api/config"
	"foodshare-api/models"
)

type ApproveUserRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// GetStats returns the admin dashboard counters.
func GetStats(c *gin.Context) {
	var totalUsers, totalRestaurants, activeOffers, totalClaims, pendingApprovals int64

	config.DB.Model(&models.User{}).Count(&totalUsers)
	config.DB.Model(&models.RestaurantProfile{}).Count(&totalRestaurants)
	config.DB.Model(&models.Offer{}).Where("status = ?", models.OfferActive).Count(&activeOffers)
	config.DB.Model(&models.Claim{}).Count(&totalClaims)
	config.DB.Model(&models.User{}).Where("verification_status = ?", models.VerificationPending).Count(&pendingApprovals)

	c.JSON(http.StatusOK, gin.H{
		"total_users":       totalUsers,
		"total_restaurants": totalRestaurants,
		"active_offers":     activeOffers,
		"total_claims":      totalClaims,
		"pending_approvals": pendingApprovals,
	})
}

// GetPendingUsers lists every account awaiting approval, annotated with
// role-specific detail for the review screen.
func GetPendingUsers(c *gin.Context) {
	var pending []models.User
	if err := config.DB.Preload("RestaurantProfile").
		Where("verification_status = ?", models.VerificationPending).
		Find(&pending).Error; err != nil {
		fail(c, err)
		return
	}

	out := make([]gin.H, 0, len(pending))
	for _, user := range pending {
		detail := "Unknown"
		switch {
		case user.Role == models.RoleRestaurant && user.RestaurantProfile != nil:
			detail = user.RestaurantProfile.Name
		case user.Role == models.RoleRestaurant:
			detail = "Unnamed Business"
		case user.Role == models.RoleStudent:
			detail = "Student ID Available"
		}
		out = append(out, gin.H{
			"user_id":   user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"type":      user.Role,
			"detail":    detail,
			"doc":       user.VerificationDoc,
			"joined_at": user.CreatedAt.Format("02-01-2006"),
		})
	}

	c.JSON(http.StatusOK, out)
}

// ApproveUser marks an account verified. The role is deliberately not
// re-checked: approval applies to students and restaurants alike.
func ApproveUser(c *gin.Context) {
	var req ApproveUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.KindValidation, err.Error()))
		return
	}

	var user models.User
	if err := config.DB.First(&user, req.UserID).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.KindNotFound, "User not found."))
		return
	}

	if err := config.DB.Model(&user).
		Update("verification_status", models.VerificationVerified).Error; err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": user.Name + " successfully approved.",
	})
}
