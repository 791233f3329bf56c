package domain

import (
	"math/bits"
	"sort"
	"time"
)

// Target is the per-period completion threshold. Anytime goals without an
// explicit target have none.
func Target(g *Goal) (int, bool) {
	if g.TargetCount != nil && *g.TargetCount > 0 {
		return *g.TargetCount, true
	}
	if g.Type == GoalTypeAnytime {
		return 0, false
	}
	return 1, true
}

func CurrentCount(g *Goal, now time.Time) int {
	return g.Entries[PeriodKey(g.Type, now)]
}

func IsComplete(g *Goal, now time.Time) bool {
	count := CurrentCount(g, now)
	if target, ok := Target(g); ok {
		return count >= target
	}
	return count > 0
}

// Progress is the rounded completion percentage capped at 100. It is
// undefined when the goal has no target.
func Progress(g *Goal, now time.Time) (int, bool) {
	target, ok := Target(g)
	if !ok {
		return 0, false
	}
	return percent(CurrentCount(g, now), target), true
}

// percent rounds half up using integers only. The intermediate
// (200*part + whole) is computed in 128 bits so large counts cannot wrap.
func percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	if part >= whole {
		return 100
	}

	hi, lo := bits.Mul64(uint64(part), 200)
	lo, carry := bits.Add64(lo, uint64(whole), 0)
	q, _ := bits.Div64(hi+carry, lo, 2*uint64(whole))
	return int(q)
}

type GoalView struct {
	*Goal
	PeriodKey string `json:"periodKey"`
	Count     int    `json:"count"`
	Target    *int   `json:"target,omitempty"`
	Complete  bool   `json:"complete"`
	Progress  *int   `json:"progress,omitempty"`
}

func NewGoalView(g *Goal, now time.Time) GoalView {
	v := GoalView{
		Goal:      g,
		PeriodKey: PeriodKey(g.Type, now),
		Count:     CurrentCount(g, now),
		Complete:  IsComplete(g, now),
	}
	if target, ok := Target(g); ok {
		v.Target = &target
	}
	if p, ok := Progress(g, now); ok {
		v.Progress = &p
	}
	return v
}

func NewGoalViews(goals []*Goal, now time.Time) []GoalView {
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, NewGoalView(g, now))
	}
	return views
}

type PeriodCount struct {
	PeriodKey string `json:"periodKey"`
	Count     int    `json:"count"`
	Complete  bool   `json:"complete"`
}

// History lists every recorded period, newest first.
func History(g *Goal) []PeriodCount {
	target, hasTarget := Target(g)

	history := make([]PeriodCount, 0, len(g.Entries))
	for key, count := range g.Entries {
		done := count > 0
		if hasTarget {
			done = count >= target
		}
		history = append(history, PeriodCount{PeriodKey: key, Count: count, Complete: done})
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].PeriodKey > history[j].PeriodKey
	})
	return history
}

// Streaks counts consecutive completed periods. The current streak runs back
// from the current period, or from the previous one while the current period
// is still open. Anytime goals have no periods to chain.
func Streaks(g *Goal, now time.Time) (current, longest int) {
	if g.Type == GoalTypeAnytime {
		return 0, 0
	}

	target, _ := Target(g)

	done := make(map[string]bool)
	var periods []time.Time
	for key, count := range g.Entries {
		if count < target {
			continue
		}
		p, ok := parsePeriodKey(g.Type, key)
		if !ok {
			continue
		}
		done[key] = true
		periods = append(periods, p)
	}

	if len(periods) == 0 {
		return 0, 0
	}

	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Before(periods[j])
	})

	run := 1
	longest = 1
	for i := 1; i < len(periods); i++ {
		prev := PeriodKey(g.Type, previousPeriod(g.Type, periods[i]))
		if prev == PeriodKey(g.Type, periods[i-1]) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	cursor, _ := parsePeriodKey(g.Type, PeriodKey(g.Type, now))
	if !done[PeriodKey(g.Type, cursor)] {
		cursor = previousPeriod(g.Type, cursor)
	}
	for done[PeriodKey(g.Type, cursor)] {
		current++
		cursor = previousPeriod(g.Type, cursor)
	}

	return current, longest
}

type GoalDetail struct {
	GoalView
	History       []PeriodCount `json:"history"`
	CurrentStreak int           `json:"currentStreak"`
	LongestStreak int           `json:"longestStreak"`
}

func NewGoalDetail(g *Goal, now time.Time) GoalDetail {
	current, longest := Streaks(g, now)
	return GoalDetail{
		GoalView:      NewGoalView(g, now),
		History:       History(g),
		CurrentStreak: current,
		LongestStreak: longest,
	}
}
