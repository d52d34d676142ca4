// Package progression owns the per-user progression record: daily streak
// continuity with freeze-token forgiveness, XP accumulation and the level
// curve derived from it.
package progression

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/speechcoach/internal/adaptive"
	"github.com/example/speechcoach/internal/database"
	"github.com/example/speechcoach/pkg/models"
)

// maxUpdateRetries bounds how many times a lost optimistic write is
// recomputed from a fresh read before giving up.
const maxUpdateRetries = 3

// StatsStore is the persistence interface for the per-user stats row.
// Update must be atomic per user: it only lands against the same snapshot
// the caller read, otherwise it reports database.ErrConflict.
type StatsStore interface {
	GetOrCreate(ctx context.Context, userID int64) (*models.UserStats, error)
	Update(ctx context.Context, stats *models.UserStats) error
}

// OutcomeStore is the persistence interface for the append-only outcome log.
type OutcomeStore interface {
	Append(ctx context.Context, outcome *models.TechniqueOutcome) error
	Latest(ctx context.Context, userID int64, category *models.TechniqueCategory, limit int) ([]models.TechniqueOutcome, error)
}

// Service orchestrates the streak engine and level curve against the
// persisted stats row. It is the only component with side effects; the
// engines themselves stay pure.
type Service struct {
	stats    StatsStore
	outcomes OutcomeStore
	logger   *zap.Logger

	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

// NewService creates a progression service on top of the given stores.
func NewService(stats StatsStore, outcomes OutcomeStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		stats:     stats,
		outcomes:  outcomes,
		logger:    logger.Named("progression"),
		userLocks: make(map[int64]*sync.Mutex),
	}
}

// lockUser serializes read-modify-write sequences per user so concurrent
// session completions cannot interleave and lose updates.
func (s *Service) lockUser(userID int64) func() {
	s.mu.Lock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// RecordSessionCompletion folds one completed practice session into the
// user's progression: streak, counters, XP and level, plus an outcome log
// entry when a technique result was attached. The whole update is applied
// against one snapshot; on a write conflict it is recomputed from a fresh
// read, never merged.
func (s *Service) RecordSessionCompletion(ctx context.Context, userID int64, event models.SessionEvent) (*models.SessionResult, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	practicedAt := event.PracticedAt
	if practicedAt.IsZero() {
		practicedAt = time.Now().UTC()
	}

	unlock := s.lockUser(userID)
	defer unlock()

	var result *models.SessionResult
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		stats, err := s.stats.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		streak := ComputeStreak(stats.CurrentStreak, stats.StreakFreezeTokens, stats.LastPracticeDate, practicedAt)
		if streak.Anomalous {
			s.logger.Warn("practice date precedes last recorded practice, streak reset",
				zap.Int64("user_id", userID),
				zap.Time("practiced_at", practicedAt),
				zap.Timep("last_practice", stats.LastPracticeDate),
			)
		}

		before := LevelForXP(stats.TotalXP)

		stats.CurrentStreak = streak.NewStreak
		if stats.CurrentStreak > stats.LongestStreak {
			stats.LongestStreak = stats.CurrentStreak
		}
		if streak.FreezeConsumed {
			stats.StreakFreezeTokens--
		}
		stats.LastPracticeDate = &practicedAt

		if event.XPAmount > 0 {
			stats.TotalXP += event.XPAmount
		}
		if event.DurationSeconds > 0 {
			stats.TotalPracticeSeconds += event.DurationSeconds
		}
		if event.ExercisesCompleted > 0 {
			stats.TotalExercisesCompleted += event.ExercisesCompleted
		}

		after := LevelForXP(stats.TotalXP)

		if err := s.stats.Update(ctx, stats); err != nil {
			if errors.Is(err, database.ErrConflict) {
				continue
			}
			return nil, err
		}

		result = &models.SessionResult{
			NewStreak:      stats.CurrentStreak,
			LongestStreak:  stats.LongestStreak,
			FreezeConsumed: streak.FreezeConsumed,
			TotalXP:        stats.TotalXP,
			Level:          after,
			LeveledUp:      after.Level > before.Level,
		}
		break
	}
	if result == nil {
		return nil, fmt.Errorf("failed to record session for user %d: %w", userID, database.ErrConflict)
	}

	if event.Outcome != nil && event.Outcome.Category.Valid() {
		outcome := &models.TechniqueOutcome{
			UserID:           userID,
			Category:         event.Outcome.Category,
			ConfidenceDelta:  event.Outcome.ConfidenceDelta,
			SelfRatedFluency: event.Outcome.SelfRatedFluency,
			CreatedAt:        practicedAt,
		}
		if err := s.outcomes.Append(ctx, outcome); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// AwardXP applies an explicit XP grant outside a practice session, for
// example a one-off challenge bonus. Returns the level info derived from
// the new total.
func (s *Service) AwardXP(ctx context.Context, userID int64, amount int) (models.LevelInfo, error) {
	if userID <= 0 {
		return models.LevelInfo{}, fmt.Errorf("user ID is required")
	}

	unlock := s.lockUser(userID)
	defer unlock()

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		stats, err := s.stats.GetOrCreate(ctx, userID)
		if err != nil {
			return models.LevelInfo{}, err
		}

		if amount > 0 {
			stats.TotalXP += amount
		}

		if err := s.stats.Update(ctx, stats); err != nil {
			if errors.Is(err, database.ErrConflict) {
				continue
			}
			return models.LevelInfo{}, err
		}
		return LevelForXP(stats.TotalXP), nil
	}
	return models.LevelInfo{}, fmt.Errorf("failed to award XP to user %d: %w", userID, database.ErrConflict)
}

// GrantFreezeTokens credits streak freeze tokens to a user and returns
// the new balance. Non-positive counts leave the balance untouched.
func (s *Service) GrantFreezeTokens(ctx context.Context, userID int64, count int) (int, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("user ID is required")
	}

	unlock := s.lockUser(userID)
	defer unlock()

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		stats, err := s.stats.GetOrCreate(ctx, userID)
		if err != nil {
			return 0, err
		}

		if count <= 0 {
			return stats.StreakFreezeTokens, nil
		}
		stats.StreakFreezeTokens += count

		if err := s.stats.Update(ctx, stats); err != nil {
			if errors.Is(err, database.ErrConflict) {
				continue
			}
			return 0, err
		}
		return stats.StreakFreezeTokens, nil
	}
	return 0, fmt.Errorf("failed to grant freeze tokens to user %d: %w", userID, database.ErrConflict)
}

// GetStats returns the user's stats row together with the level info
// derived from its XP total. The level fields are never stored, so a
// curve change shows up here immediately.
func (s *Service) GetStats(ctx context.Context, userID int64) (*models.UserStats, models.LevelInfo, error) {
	if userID <= 0 {
		return nil, models.LevelInfo{}, fmt.Errorf("user ID is required")
	}

	stats, err := s.stats.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, models.LevelInfo{}, err
	}
	return stats, LevelForXP(stats.TotalXP), nil
}

// RecommendedTechniqueWeight reads the recent outcome window and returns
// the fluency-shaping share for the next technique selection, in
// [0.3, 0.7]. Sparse data falls back to the balanced default inside the
// weight engine.
func (s *Service) RecommendedTechniqueWeight(ctx context.Context, userID int64) (float64, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("user ID is required")
	}

	outcomes, err := s.outcomes.Latest(ctx, userID, nil, adaptive.OutcomeWindow)
	if err != nil {
		return 0, err
	}

	fs := adaptive.Aggregate(outcomes, models.CategoryFluencyShaping)
	mod := adaptive.Aggregate(outcomes, models.CategoryStutteringModification)
	return adaptive.RecommendedWeight(fs, mod), nil
}
