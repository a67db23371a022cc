package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/tastemap/backend/internal/models"
)

// Evaluator decides which achievements a stats snapshot newly satisfies.
// Calls for the same user must be serialized by the caller.
type Evaluator struct {
	rules *RuleSet
	store Store
	now   func() time.Time
}

func NewEvaluator(rules *RuleSet, store Store) *Evaluator {
	return &Evaluator{rules: rules, store: store, now: time.Now}
}

// WithClock overrides the unlock timestamp source.
func (e *Evaluator) WithClock(now func() time.Time) *Evaluator {
	e.now = now
	return e
}

func (e *Evaluator) Rules() *RuleSet {
	return e.rules
}

// Evaluate appends an unlock for every not-yet-unlocked achievement whose
// counter reached its target and returns only the records it inserted, in
// rule-set order.
func (e *Evaluator) Evaluate(ctx context.Context, userID uuid.UUID, stats Stats) ([]models.UserAchievement, error) {
	unlocked, err := e.unlockedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	var fresh []models.UserAchievement
	for _, def := range e.rules.defs {
		if _, done := unlocked[def.ID]; done {
			continue
		}
		current := stats.Current(def.Condition.Stat)
		if current < def.Condition.Target {
			continue
		}

		ua := models.UserAchievement{
			ID:            uuid.New(),
			UserID:        userID,
			AchievementID: def.ID,
			Progress:      def.Progress(current),
			UnlockedAt:    e.now().UTC(),
		}
		inserted, err := e.store.AppendIfAbsent(ctx, ua)
		if err != nil {
			return fresh, fmt.Errorf("failed to record achievement %s: %w", def.ID, err)
		}
		if inserted {
			fresh = append(fresh, ua)
		}
	}
	return fresh, nil
}

// ProgressEntry is one row of a user's achievement board.
type ProgressEntry struct {
	Definition Definition `json:"achievement"`
	Current    int        `json:"current"`
	Progress   int        `json:"progress"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// Progress reports every achievement with its current counter and percent.
// Unlocked achievements always report 100.
func (e *Evaluator) Progress(ctx context.Context, userID uuid.UUID, stats Stats) ([]ProgressEntry, error) {
	records, err := e.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}
	byID := make(map[string]models.UserAchievement, len(records))
	for _, r := range records {
		byID[r.AchievementID] = r
	}

	out := make([]ProgressEntry, 0, len(e.rules.defs))
	for _, def := range e.rules.defs {
		current := stats.Current(def.Condition.Stat)
		entry := ProgressEntry{
			Definition: def,
			Current:    current,
			Progress:   def.Progress(current),
		}
		if r, ok := byID[def.ID]; ok {
			at := r.UnlockedAt
			entry.Unlocked = true
			entry.UnlockedAt = &at
			entry.Progress = 100
		}
		out = append(out, entry)
	}
	return out, nil
}

func (e *Evaluator) unlockedSet(ctx context.Context, userID uuid.UUID) (map[string]struct{}, error) {
	records, err := e.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load achievements: %w", err)
	}
	set := make(map[string]struct{}, len(records))
	for _, r := range records {
		set[r.AchievementID] = struct{}{}
	}
	return set, nil
}
