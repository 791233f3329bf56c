package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/comitanigiacomo/summit-resolutions/internal/core/domain"
)

const DefaultStorageKey = "summit-resolutions.goals"

var (
	ErrStoreNotLoaded = errors.New("goal store not loaded")
)

// GoalStore owns the goal list and is its only writer. Every change rewrites
// the whole list under a single storage key.
type GoalStore struct {
	storage domain.KVStorage
	key     string
	clock   func() time.Time
	loc     *time.Location

	mu     sync.RWMutex
	goals  []*domain.Goal
	loaded bool
}

type StoreOption func(*GoalStore)

func WithStorageKey(key string) StoreOption {
	return func(s *GoalStore) {
		if key != "" {
			s.key = key
		}
	}
}

func WithClock(clock func() time.Time) StoreOption {
	return func(s *GoalStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLocation sets the calendar period keys are derived in.
func WithLocation(loc *time.Location) StoreOption {
	return func(s *GoalStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func NewGoalStore(storage domain.KVStorage, opts ...StoreOption) *GoalStore {
	s := &GoalStore{
		storage: storage,
		key:     DefaultStorageKey,
		clock:   time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateGoalInput struct {
	Title       string
	Type        string
	Notes       string
	TargetCount string
	DueDate     string
}

// Now is the store's reference time in its configured location.
func (s *GoalStore) Now() time.Time {
	return s.clock().In(s.loc)
}

// Load reads the persisted list once. Unreadable or malformed data is logged
// and the store starts empty instead of failing.
func (s *GoalStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals = nil
	s.loaded = true

	data, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			slog.Error("failed to read stored goals, starting empty", "error", err, "key", s.key)
		}
		return nil
	}

	goals, err := decodeGoals(data)
	if err != nil {
		slog.Error("stored goals are malformed, starting empty", "error", err, "key", s.key)
		return nil
	}

	s.goals = goals
	slog.Debug("goals loaded", "count", len(goals), "key", s.key)
	return nil
}

func (s *GoalStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// commit persists next and, only on success, makes it the current list.
// Callers must hold the write lock.
func (s *GoalStore) commit(ctx context.Context, next []*domain.Goal) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("goal store: encode goals: %w", err)
	}

	if err := s.storage.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("goal store: persist goals: %w", err)
	}

	s.goals = next
	return nil
}

func (s *GoalStore) indexOf(id string) int {
	for i, g := range s.goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func (s *GoalStore) Create(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	goalType, err := domain.ParseGoalType(input.Type)
	if err != nil {
		return nil, err
	}

	goal, err := domain.NewGoal(
		input.Title,
		goalType,
		input.Notes,
		domain.ParseTargetCount(input.TargetCount),
		input.DueDate,
		s.clock(),
	)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, ErrStoreNotLoaded
	}

	next := make([]*domain.Goal, 0, len(s.goals)+1)
	next = append(next, goal)
	next = append(next, s.goals...)

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	return goal.Clone(), nil
}

// Adjust moves the goal's count for its current period by delta, clamped at zero.
func (s *GoalStore) Adjust(ctx context.Context, id string, delta int) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, ErrStoreNotLoaded
	}

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrGoalNotFound
	}

	updated := s.goals[i].Clone()
	updated.Adjust(domain.PeriodKey(updated.Type, s.Now()), delta)

	next := make([]*domain.Goal, len(s.goals))
	copy(next, s.goals)
	next[i] = updated

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}

	return updated.Clone(), nil
}

func (s *GoalStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrStoreNotLoaded
	}

	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrGoalNotFound
	}

	next := make([]*domain.Goal, 0, len(s.goals)-1)
	next = append(next, s.goals[:i]...)
	next = append(next, s.goals[i+1:]...)

	return s.commit(ctx, next)
}

// List returns goals of the given type in list order, newest first. An empty
// type returns every goal.
func (s *GoalStore) List(goalType domain.GoalType) []*domain.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		if goalType == "" || g.Type == goalType {
			out = append(out, g.Clone())
		}
	}
	return out
}

func (s *GoalStore) Get(id string) (*domain.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrGoalNotFound
	}
	return s.goals[i].Clone(), nil
}

func (s *GoalStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.goals)
}

func (s *GoalStore) Views(goalType domain.GoalType) []domain.GoalView {
	return domain.NewGoalViews(s.List(goalType), s.Now())
}

func (s *GoalStore) Stats() domain.Stats {
	return domain.ComputeStats(s.List(""), s.Now())
}

// Detail adds the recorded history and streaks to a goal's view.
func (s *GoalStore) Detail(id string) (*domain.GoalDetail, error) {
	g, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	d := domain.NewGoalDetail(g, s.Now())
	return &d, nil
}
