package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/summit-resolutions/internal/core/domain"
)

func TestProgressBar(t *testing.T) {
	assert.Contains(t, ProgressBar(50, 10), "█████░░░░░")
	assert.Contains(t, ProgressBar(50, 10), " 50%")
	assert.Contains(t, ProgressBar(150, 4), "████")
	assert.Contains(t, ProgressBar(-5, 4), "░░░░")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "1234abcd", ShortID("1234abcd-5678"))
	assert.Equal(t, "abc", ShortID("abc"))
}

func TestGoalLine(t *testing.T) {
	target, progress := 3, 33
	v := domain.GoalView{
		Goal:     &domain.Goal{ID: "0123456789", Title: "Read", Type: domain.GoalTypeDaily, DueDate: "2026-12-31"},
		Count:    1,
		Target:   &target,
		Progress: &progress,
	}

	line := GoalLine(v)
	assert.Contains(t, line, IconOpen)
	assert.Contains(t, line, "01234567")
	assert.Contains(t, line, "Read")
	assert.Contains(t, line, "1/3")
	assert.Contains(t, line, "due 2026-12-31")

	v.Complete = true
	assert.Contains(t, GoalLine(v), IconDone)
}
