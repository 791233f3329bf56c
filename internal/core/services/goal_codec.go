package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/comitanigiacomo/summit-resolutions/internal/core/domain"
)

// decodeGoals requires a JSON array and nothing more. Each element is read
// field by field: a field of the wrong type is dropped to its zero value and
// an element that is not an object is skipped, so one bad record never
// costs the rest of the list.
func decodeGoals(data []byte) ([]*domain.Goal, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("not a goal list: %w", err)
	}

	goals := make([]*domain.Goal, 0, len(raw))
	for i, item := range raw {
		g, ok := decodeGoal(item)
		if !ok {
			slog.Warn("skipping stored goal that is not an object", "index", i)
			continue
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func decodeGoal(item json.RawMessage) (*domain.Goal, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
		return nil, false
	}

	return &domain.Goal{
		ID:          looseString(fields["id"]),
		Title:       looseString(fields["title"]),
		Type:        domain.GoalType(looseString(fields["type"])),
		Notes:       looseString(fields["notes"]),
		TargetCount: looseTarget(fields["targetCount"]),
		DueDate:     looseString(fields["dueDate"]),
		CreatedAt:   looseTime(fields["createdAt"]),
		Entries:     looseEntries(fields["entries"]),
	}, true
}

// looseString keeps strings as they are and numbers as their literal text.
func looseString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	if n, ok := number(raw); ok {
		return n.String()
	}
	return ""
}

func looseTarget(raw json.RawMessage) *int {
	if n, ok := number(raw); ok {
		v := clampInt(n)
		return &v
	}

	var s string
	if json.Unmarshal(raw, &s) != nil {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

// looseTime accepts RFC 3339 text or a number of epoch milliseconds.
func looseTime(raw json.RawMessage) time.Time {
	var t time.Time
	if json.Unmarshal(raw, &t) == nil {
		return t
	}
	if n, ok := number(raw); ok {
		if ms, err := n.Int64(); err == nil {
			return time.UnixMilli(ms).UTC()
		}
	}
	return time.Time{}
}

// looseEntries keeps numeric counts, truncating fractions and flooring
// negatives at zero. Other values are dropped.
func looseEntries(raw json.RawMessage) map[string]int {
	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) != nil || fields == nil {
		return nil
	}

	entries := make(map[string]int, len(fields))
	for key, value := range fields {
		n, ok := number(value)
		if !ok {
			continue
		}
		entries[key] = max(0, clampInt(n))
	}
	return entries
}

func number(raw json.RawMessage) (json.Number, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var n json.Number
	if dec.Decode(&n) != nil || n == "" {
		return "", false
	}
	return n, true
}

// clampInt truncates n toward zero and saturates it to the int range.
func clampInt(n json.Number) int {
	if v, err := n.Int64(); err == nil && v >= math.MinInt && v <= math.MaxInt {
		return int(v)
	}
	// Only range errors are possible here and f is already saturated.
	f, _ := n.Float64()
	switch {
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}
