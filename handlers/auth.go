package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodshare-api/apperr"
	"foodshare-api/config"
	"foodshare-api/models"
)

type RegisterRequest struct {
	Name         string          `json:"name" binding:"required"`
	Email        string          `json:"email" binding:"required,email"`
	Password     string          `json:"password" binding:"required,min=6"`
	Role         models.UserRole `json:"role" binding:"required"`
	BusinessName string          `json:"business_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// Register creates a new account. Students start unverified; restaurants
// start pending and get their RestaurantProfile created in the same
// transaction, so a half-registered restaurant can never exist.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.KindValidation, err.Error()))
		return
	}

	if req.Role != models.RoleStudent && req.Role != models.RoleRestaurant {
		apperr.Respond(c, apperr.New(apperr.KindValidation, "Invalid role. Must be: student or restaurant"))
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		apperr.Respond(c, apperr.New(apperr.KindDuplicateEmail, "This email address is already in use."))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, err)
		return
	}

	initialStatus := models.VerificationUnverified
	if req.Role == models.RoleRestaurant {
		initialStatus = models.VerificationPending
	}

	user := models.User{
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       string(hash),
		Role:               req.Role,
		VerificationStatus: initialStatus,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if req.Role == models.RoleRestaurant {
			name := req.BusinessName
			if name == "" {
				name = req.Name
			}
			profile := models.RestaurantProfile{
				OwnerUserID: user.ID,
				Name:        name,
				Lat:         config.CampusLat,
				Lng:         config.CampusLng,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}

	message := "Registration successful! You can log in."
	if req.Role == models.RoleRestaurant {
		message = "Application received. You can log in after admin approval."
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"user_id": user.ID,
	})
}

// Login authenticates by email and password. Unknown email and wrong
// password are indistinguishable on the wire. Restaurants are held at the
// door until an admin approves them.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.KindValidation, err.Error()))
		return
	}

	var user models.User
	if err := config.DB.Preload("RestaurantProfile").Where("email = ?", req.Email).First(&user).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.KindInvalidCredentials, "Invalid email or password."))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		apperr.Respond(c, apperr.New(apperr.KindInvalidCredentials, "Invalid email or password."))
		return
	}

	if user.Role == models.RoleRestaurant && user.VerificationStatus != models.VerificationVerified {
		apperr.Respond(c, apperr.New(apperr.KindAccountPending,
			"Your account has not been approved yet. Please wait for admin approval."))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful.",
		"user":    userView(&user),
	})
}

// UpdateProfile changes name, email, or password for an existing account.
func UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.KindValidation, err.Error()))
		return
	}

	var user models.User
	if err := config.DB.Preload("RestaurantProfile").First(&user, req.UserID).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.KindNotFound, "User not found."))
		return
	}

	if req.Email != "" && req.Email != user.Email {
		var existing models.User
		if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			apperr.Respond(c, apperr.New(apperr.KindDuplicateEmail, "This email address is already in use."))
			return
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			fail(c, err)
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := config.DB.Save(&user).Error; err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated.",
		"user":    userView(&user),
	})
}
