package domain

import "time"

type TypeStats struct {
	Total    int `json:"total"`
	Complete int `json:"complete"`
}

type Stats struct {
	TotalGoals     int                    `json:"total_goals"`
	TotalComplete  int                    `json:"total_complete"`
	CompletionRate int                    `json:"completion_rate"`
	ByType         map[GoalType]TypeStats `json:"by_type"`
}

// ComputeStats tallies goals per type and how many are complete for the
// period that contains now. CompletionRate is 0 for an empty list.
func ComputeStats(goals []*Goal, now time.Time) Stats {
	stats := Stats{
		ByType: make(map[GoalType]TypeStats, len(GoalTypes)),
	}
	for _, t := range GoalTypes {
		stats.ByType[t] = TypeStats{}
	}

	for _, g := range goals {
		ts := stats.ByType[g.Type]
		ts.Total++
		if IsComplete(g, now) {
			ts.Complete++
			stats.TotalComplete++
		}
		stats.ByType[g.Type] = ts
		stats.TotalGoals++
	}

	stats.CompletionRate = percent(stats.TotalComplete, stats.TotalGoals)
	return stats
}
