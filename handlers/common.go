package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"foodshare-api/apperr"
	"foodshare-api/models"
	"foodshare-api/notify"
)

// Fanout broadcasts offer announcements to students. main wires the
// store-backed notifier; tests may substitute their own.
var Fanout notify.Notifier

// fail writes an error response, mapping unexpected errors to internal.
func fail(c *gin.Context, err error) {
	if aerr, ok := err.(*apperr.Error); ok {
		apperr.Respond(c, aerr)
		return
	}
	apperr.Respond(c, apperr.New(apperr.KindInternal, "Unexpected server error."))
}

// userView is the role-tagged profile payload returned by auth endpoints.
// RestaurantProfile must be preloaded for restaurant_name to appear.
func userView(u *models.User) gin.H {
	view := gin.H{
		"id":     u.ID,
		"name":   u.Name,
		"email":  u.Email,
		"role":   u.Role,
		"status": u.VerificationStatus,
	}
	if u.RestaurantProfile != nil {
		view["restaurant_name"] = u.RestaurantProfile.Name
	}
	return view
}

// uintParam parses a numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, *apperr.Error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperr.New(apperr.KindValidation, "Invalid "+name+" parameter.")
	}
	return uint(v), nil
}
