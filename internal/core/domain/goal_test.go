package domain_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/comitanigiacomo/summit-resolutions/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestNewGoal(t *testing.T) {
	t.Run("Success: Trims and normalizes fields", func(t *testing.T) {
		g, err := domain.NewGoal("  Read 20 pages  ", domain.GoalTypeDaily, "  before bed ", ptr(4), "2026-12-31", fixedNow)

		require.NoError(t, err)
		assert.NotEmpty(t, g.ID)
		assert.Equal(t, "Read 20 pages", g.Title)
		assert.Equal(t, "before bed", g.Notes)
		assert.Equal(t, domain.GoalTypeDaily, g.Type)
		require.NotNil(t, g.TargetCount)
		assert.Equal(t, 4, *g.TargetCount)
		assert.Equal(t, "2026-12-31", g.DueDate)
		assert.Equal(t, fixedNow, g.CreatedAt)
		assert.NotNil(t, g.Entries)
		assert.Empty(t, g.Entries)
	})

	t.Run("Success: Fresh IDs per goal", func(t *testing.T) {
		a, _ := domain.NewGoal("A", domain.GoalTypeAnytime, "", nil, "", fixedNow)
		b, _ := domain.NewGoal("A", domain.GoalTypeAnytime, "", nil, "", fixedNow)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("Success: Drops non-positive target and bad due date", func(t *testing.T) {
		g, err := domain.NewGoal("Run", domain.GoalTypeMonthly, "", ptr(0), "31/12/2026", fixedNow)

		require.NoError(t, err)
		assert.Nil(t, g.TargetCount)
		assert.Empty(t, g.DueDate)
	})

	t.Run("Error: Blank title", func(t *testing.T) {
		for _, title := range []string{"", "   ", "\t\n"} {
			_, err := domain.NewGoal(title, domain.GoalTypeDaily, "", nil, "", fixedNow)
			assert.ErrorIs(t, err, domain.ErrGoalTitleEmpty, "title %q", title)
		}
	})

	t.Run("Error: Unknown type", func(t *testing.T) {
		_, err := domain.NewGoal("Run", domain.GoalType("weekly"), "", nil, "", fixedNow)
		assert.ErrorIs(t, err, domain.ErrInvalidGoalType)
	})
}

func TestParseTargetCount(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{raw: "", want: nil},
		{raw: "abc", want: nil},
		{raw: "0", want: nil},
		{raw: "-3", want: nil},
		{raw: "2.5", want: nil},
		{raw: "4", want: ptr(4)},
		{raw: " 12 ", want: ptr(12)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ParseTargetCount(tt.raw))
		})
	}
}

func TestParseGoalType(t *testing.T) {
	got, err := domain.ParseGoalType(" Monthly ")
	require.NoError(t, err)
	assert.Equal(t, domain.GoalTypeMonthly, got)

	_, err = domain.ParseGoalType("hourly")
	assert.ErrorIs(t, err, domain.ErrInvalidGoalType)
}

func TestGoal_Adjust(t *testing.T) {
	g, _ := domain.NewGoal("Pushups", domain.GoalTypeDaily, "", nil, "", fixedNow)
	key := domain.PeriodKey(g.Type, fixedNow)

	assert.Equal(t, 0, g.Adjust(key, -1), "count must never go below zero")
	assert.Equal(t, 3, g.Adjust(key, 3))
	assert.Equal(t, 1, g.Adjust(key, -2))
	assert.Equal(t, 0, g.Adjust(key, -5))
	assert.Equal(t, 0, g.Entries[key])
}

func TestGoal_AdjustSaturates(t *testing.T) {
	g, _ := domain.NewGoal("Steps", domain.GoalTypeAnytime, "", nil, "", fixedNow)
	key := domain.AnytimeKey

	assert.Equal(t, math.MaxInt, g.Adjust(key, math.MaxInt))
	assert.Equal(t, math.MaxInt, g.Adjust(key, 1), "count must not wrap past the maximum")
	assert.Equal(t, math.MaxInt-1, g.Adjust(key, -1))

	g.Entries[key] = -4
	assert.Equal(t, 2, g.Adjust(key, 2), "a negative stored count is treated as zero")
}

func TestValidDelta(t *testing.T) {
	assert.True(t, domain.ValidDelta(1))
	assert.True(t, domain.ValidDelta(-domain.MaxAdjustDelta))
	assert.True(t, domain.ValidDelta(domain.MaxAdjustDelta))
	assert.False(t, domain.ValidDelta(0))
	assert.False(t, domain.ValidDelta(domain.MaxAdjustDelta+1))
	assert.False(t, domain.ValidDelta(math.MinInt))
}

func TestGoal_Clone(t *testing.T) {
	g, _ := domain.NewGoal("Journal", domain.GoalTypeDaily, "", ptr(2), "", fixedNow)
	g.Entries["2026-03-14"] = 1

	c := g.Clone()
	c.Entries["2026-03-14"] = 9
	*c.TargetCount = 7

	assert.Equal(t, 1, g.Entries["2026-03-14"])
	assert.Equal(t, 2, *g.TargetCount)
}

func TestGoal_JSONShape(t *testing.T) {
	g := &domain.Goal{
		ID:        "g1",
		Title:     "Meditate",
		Type:      domain.GoalTypeAnytime,
		CreatedAt: fixedNow,
		Entries:   map[string]int{"all": 2},
	}

	data, err := json.Marshal(g)
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, `"createdAt":"2026-03-14T09:30:00Z"`)
	assert.Contains(t, body, `"entries":{"all":2}`)
	assert.NotContains(t, body, "targetCount")
	assert.NotContains(t, body, "dueDate")
}
