package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/summit-resolutions/internal/core/domain"
	"github.com/comitanigiacomo/summit-resolutions/internal/core/services"
)

type GoalHandler struct {
	store *services.GoalStore
}

func NewGoalHandler(store *services.GoalStore) *GoalHandler {
	return &GoalHandler{
		store: store,
	}
}

// fieldText accepts either a JSON string or a JSON number, so the target
// field can be posted exactly as typed into a form.
type fieldText string

func (f *fieldText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = fieldText(s)
		return nil
	}
	*f = fieldText(data)
	return nil
}

type createGoalRequest struct {
	Title       string    `json:"title" form:"title"`
	Type        string    `json:"type" form:"type"`
	Notes       string    `json:"notes" form:"notes"`
	TargetCount fieldText `json:"targetCount" form:"targetCount"`
	DueDate     string    `json:"dueDate" form:"dueDate"`
}

type adjustRequest struct {
	Delta int `json:"delta" form:"delta" binding:"required"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.List)
		goals.POST("", h.Create)
		goals.GET("/export", h.Export)
		goals.GET("/:id", h.Get)
		goals.POST("/:id/increment", h.Increment)
		goals.POST("/:id/decrement", h.Decrement)
		goals.POST("/:id/adjust", h.Adjust)
		goals.DELETE("/:id", h.Delete)
	}
}

func (h *GoalHandler) List(c *gin.Context) {
	var filter domain.GoalType
	if raw := c.Query("type"); raw != "" {
		t, err := domain.ParseGoalType(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter = t
	}

	c.JSON(http.StatusOK, h.store.Views(filter))
}

func (h *GoalHandler) Create(c *gin.Context) {
	var req createGoalRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateGoalInput{
		Title:       req.Title,
		Type:        req.Type,
		Notes:       req.Notes,
		TargetCount: string(req.TargetCount),
		DueDate:     req.DueDate,
	}

	goal, err := h.store.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGoalTitleEmpty):
			// Blank titles are ignored without an error for the caller.
			c.Status(http.StatusNoContent)
		case errors.Is(err, domain.ErrInvalidGoalType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.storeFailure(c, "failed to create goal", err)
		}
		return
	}

	slog.Info("goal created", "goal_id", goal.ID, "type", goal.Type)
	c.JSON(http.StatusCreated, domain.NewGoalView(goal, h.store.Now()))
}

func (h *GoalHandler) Get(c *gin.Context) {
	detail, err := h.store.Detail(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *GoalHandler) Increment(c *gin.Context) {
	h.adjust(c, 1)
}

func (h *GoalHandler) Decrement(c *gin.Context) {
	h.adjust(c, -1)
}

func (h *GoalHandler) Adjust(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBind(&req); err != nil || !domain.ValidDelta(req.Delta) {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrDeltaOutOfRange.Error()})
		return
	}

	h.adjust(c, req.Delta)
}

func (h *GoalHandler) adjust(c *gin.Context, delta int) {
	id := c.Param("id")

	goal, err := h.store.Adjust(c.Request.Context(), id, delta)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		h.storeFailure(c, "failed to adjust goal", err, "goal_id", id, "delta", delta)
		return
	}

	c.JSON(http.StatusOK, domain.NewGoalView(goal, h.store.Now()))
}

func (h *GoalHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		h.storeFailure(c, "failed to delete goal", err, "goal_id", id)
		return
	}

	slog.Info("goal deleted", "goal_id", id)
	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) Export(c *gin.Context) {
	goals := h.store.List("")

	c.Header("Content-Disposition", "attachment; filename=goals-export.json")
	c.Header("X-Goal-Count", strconv.Itoa(len(goals)))
	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) storeFailure(c *gin.Context, msg string, err error, args ...any) {
	if errors.Is(err, services.ErrStoreNotLoaded) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "goals are still loading"})
		return
	}

	slog.Error(msg, append([]any{"error", err}, args...)...)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
