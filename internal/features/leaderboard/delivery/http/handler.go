package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"soulscribe-backend/internal/common/middleware"
	"soulscribe-backend/internal/features/leaderboard/service"
)

type LeaderboardHandler struct {
	service service.LeaderboardService
}

func NewLeaderboardHandler(service service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/leaderboard", h.getLeaderboard)
}

// @Summary Token leaderboard
// @Description Ranks users by soulbound token count, descending. Recomputed on every call.
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Maximum entries" default(10)
// @Success 200 {array} models.LeaderboardEntry "Ranking"
// @Router /leaderboard [get]
func (h *LeaderboardHandler) getLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 0
	}

	entries, err := h.service.Rank(c.Request.Context(), limit)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
