package domain

import (
	"errors"
	"maps"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalTitleEmpty  = errors.New("goal title cannot be empty")
	ErrInvalidGoalType = errors.New("invalid goal type (must be daily, monthly, or anytime)")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrInvalidDueDate  = errors.New("invalid due date (must be YYYY-MM-DD)")
	ErrDeltaOutOfRange = errors.New("delta must be a non-zero integer between -1000000 and 1000000")
)

// MaxAdjustDelta bounds a single caller-supplied adjustment.
const MaxAdjustDelta = 1_000_000

// ValidDelta reports whether delta is an acceptable single adjustment.
func ValidDelta(delta int) bool {
	return delta != 0 && delta >= -MaxAdjustDelta && delta <= MaxAdjustDelta
}

type GoalType string

const (
	GoalTypeDaily   GoalType = "daily"
	GoalTypeMonthly GoalType = "monthly"
	GoalTypeAnytime GoalType = "anytime"

	DueDateLayout = "2006-01-02"
)

var GoalTypes = []GoalType{GoalTypeDaily, GoalTypeMonthly, GoalTypeAnytime}

func ParseGoalType(s string) (GoalType, error) {
	switch t := GoalType(strings.ToLower(strings.TrimSpace(s))); t {
	case GoalTypeDaily, GoalTypeMonthly, GoalTypeAnytime:
		return t, nil
	default:
		return "", ErrInvalidGoalType
	}
}

func (t GoalType) Valid() bool {
	_, err := ParseGoalType(string(t))
	return err == nil
}

type Goal struct {
	ID          string         `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Type        GoalType       `json:"type" yaml:"type"`
	Notes       string         `json:"notes" yaml:"notes,omitempty"`
	TargetCount *int           `json:"targetCount,omitempty" yaml:"targetCount,omitempty"`
	DueDate     string         `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	CreatedAt   time.Time      `json:"createdAt" yaml:"createdAt"`
	Entries     map[string]int `json:"entries" yaml:"entries"`
}

// NewGoal validates title and type and normalizes the optional fields.
// A non-positive target or a malformed due date is dropped, not rejected.
func NewGoal(title string, goalType GoalType, notes string, targetCount *int, dueDate string, now time.Time) (*Goal, error) {
	cleanTitle := strings.TrimSpace(title)
	if cleanTitle == "" {
		return nil, ErrGoalTitleEmpty
	}

	if !goalType.Valid() {
		return nil, ErrInvalidGoalType
	}

	var target *int
	if targetCount != nil && *targetCount > 0 {
		v := *targetCount
		target = &v
	}

	due, err := NormalizeDueDate(dueDate)
	if err != nil {
		due = ""
	}

	return &Goal{
		ID:          uuid.NewString(),
		Title:       cleanTitle,
		Type:        goalType,
		Notes:       strings.TrimSpace(notes),
		TargetCount: target,
		DueDate:     due,
		CreatedAt:   now.UTC(),
		Entries:     make(map[string]int),
	}, nil
}

// ParseTargetCount reads a target typed into a form field. Empty, non-numeric,
// zero and negative inputs all mean "no explicit target".
func ParseTargetCount(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func NormalizeDueDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	d, err := time.Parse(DueDateLayout, raw)
	if err != nil {
		return "", ErrInvalidDueDate
	}
	return d.Format(DueDateLayout), nil
}

// Adjust applies delta to the count stored under periodKey. The result is
// clamped to [0, math.MaxInt] rather than wrapping.
func (g *Goal) Adjust(periodKey string, delta int) int {
	if g.Entries == nil {
		g.Entries = make(map[string]int)
	}

	cur := max(0, g.Entries[periodKey])
	var next int
	if delta > 0 && cur > math.MaxInt-delta {
		next = math.MaxInt
	} else {
		next = max(0, cur+delta)
	}
	g.Entries[periodKey] = next
	return next
}

func (g *Goal) Clone() *Goal {
	if g == nil {
		return nil
	}

	c := *g
	if g.TargetCount != nil {
		v := *g.TargetCount
		c.TargetCount = &v
	}
	if g.Entries != nil {
		c.Entries = maps.Clone(g.Entries)
	}
	return &c
}

func CloneGoals(goals []*Goal) []*Goal {
	out := make([]*Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, g.Clone())
	}
	return out
}
