package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit-resolutions/internal/core/services"
)

type StatsHandler struct {
	store *services.GoalStore
}

func NewStatsHandler(store *services.GoalStore) *StatsHandler {
	return &StatsHandler{store: store}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetStats)
}

// GetStats reports completion across all goals for their current periods.
func (h *StatsHandler) GetStats(c *gin.Context) {
	if !h.store.Loaded() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "goals are still loading"})
		return
	}

	c.JSON(http.StatusOK, h.store.Stats())
}
