package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/summit-resolutions/internal/adapters/handler/http"
	"github.com/comitanigiacomo/summit-resolutions/internal/adapters/storage"
	"github.com/comitanigiacomo/summit-resolutions/internal/core/domain"
	"github.com/comitanigiacomo/summit-resolutions/internal/core/services"
)

func setupStatsRouter(t *testing.T, load bool) (*gin.Engine, *services.GoalStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newTestStore(t, storage.NewInMemoryStorage(), load)

	r := gin.New()
	api := r.Group("/api/v1")
	adapterHTTP.NewGoalHandler(store).RegisterRoutes(api)
	adapterHTTP.NewStatsHandler(store).RegisterRoutes(api)
	return r, store
}

func TestGetStats(t *testing.T) {
	t.Run("Success: Empty list", func(t *testing.T) {
		r, _ := setupStatsRouter(t, true)

		w := doJSON(r, http.MethodGet, "/api/v1/stats", "")
		require.Equal(t, http.StatusOK, w.Code)

		var stats domain.Stats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 0, stats.TotalGoals)
		assert.Equal(t, 0, stats.CompletionRate)
		assert.Len(t, stats.ByType, 3)
	})

	t.Run("Success: Counts completion per type", func(t *testing.T) {
		r, store := setupStatsRouter(t, true)
		ctx := context.Background()

		done, err := store.Create(ctx, services.CreateGoalInput{Title: "Walk", Type: "daily"})
		require.NoError(t, err)
		_, err = store.Create(ctx, services.CreateGoalInput{Title: "Budget", Type: "monthly"})
		require.NoError(t, err)
		_, err = store.Create(ctx, services.CreateGoalInput{Title: "Paint", Type: "anytime"})
		require.NoError(t, err)
		_, err = store.Adjust(ctx, done.ID, 1)
		require.NoError(t, err)

		w := doJSON(r, http.MethodGet, "/api/v1/stats", "")
		require.Equal(t, http.StatusOK, w.Code)

		var stats domain.Stats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 3, stats.TotalGoals)
		assert.Equal(t, 1, stats.TotalComplete)
		assert.Equal(t, 33, stats.CompletionRate)
		assert.Equal(t, domain.TypeStats{Total: 1, Complete: 1}, stats.ByType[domain.GoalTypeDaily])
		assert.Equal(t, domain.TypeStats{Total: 1, Complete: 0}, stats.ByType[domain.GoalTypeMonthly])
	})

	t.Run("Fail: Store not loaded", func(t *testing.T) {
		r, _ := setupStatsRouter(t, false)

		w := doJSON(r, http.MethodGet, "/api/v1/stats", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
