package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodshare-api/config"
	"foodshare-api/models"
	"foodshare-api/statemachine"
)

// GetLeaderboard returns the most generous restaurants, ranked by points.
func GetLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(config.GetEnv("LEADERBOARD_LIMIT", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	var leaders []models.Leaderboard
	if err := config.DB.Preload("Restaurant").
		Order("points desc").
		Limit(limit).
		Find(&leaders).Error; err != nil {
		fail(c, err)
		return
	}

	out := make([]gin.H, 0, len(leaders))
	for i, leader := range leaders {
		name := leader.Restaurant.Name
		if name == "" {
			name = "Unnamed"
		}
		out = append(out, gin.H{
			"rank":       i + 1,
			"restaurant": name,
			"points":     leader.Points,
			"meals":      leader.MealsShared,
		})
	}

	c.JSON(http.StatusOK, out)
}

// GetClaimLifecycle returns the claim state machine for informational purposes
func GetClaimLifecycle(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()
	info := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.ClaimStatus{models.ClaimValidated, models.ClaimExpired, models.ClaimRejected},
		"description":     "Claim Redemption Lifecycle State Machine",
	})
}
