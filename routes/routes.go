package routes

import (
	"foodshare-api/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ── Auth ───────────────────────────────────────────────────────
	api.POST("/auth/register", handlers.Register)
	api.POST("/auth/login", handlers.Login)
	api.PUT("/auth/update", handlers.UpdateProfile)

	// ── Offers & claims ────────────────────────────────────────────
	api.POST("/offers/create", handlers.CreateOffer)
	api.GET("/offers", handlers.ListOffers)
	api.POST("/offers/claim", handlers.ClaimOffer)
	api.POST("/claims/verify", handlers.VerifyClaim)

	// ── Student ────────────────────────────────────────────────────
	student := api.Group("/student")
	{
		student.GET("/history/:userId", handlers.GetHistory)
		student.GET("/notifications/:userId", handlers.GetNotifications)
		student.POST("/verify", handlers.SubmitVerification)
	}

	// ── Public ─────────────────────────────────────────────────────
	api.GET("/leaderboard", handlers.GetLeaderboard)
	api.GET("/state-machine", handlers.GetClaimLifecycle)

	// ── Admin ──────────────────────────────────────────────────────
	admin := api.Group("/admin")
	{
		admin.GET("/stats", handlers.GetStats)
		admin.GET("/pending", handlers.GetPendingUsers)
		admin.POST("/approve", handlers.ApproveUser)
	}
}
