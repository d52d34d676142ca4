package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/speechcoach/pkg/models"
)

// ErrConflict is returned when an optimistic update lost the race against
// a concurrent writer. Callers must re-read and recompute; partial merges
// are never attempted.
var ErrConflict = errors.New("user stats modified concurrently")

// UserStatsRepository handles database operations for per-user
// progression state.
type UserStatsRepository struct {
	db *sqlx.DB
}

// NewUserStatsRepository creates a new repository instance
func NewUserStatsRepository(db *sqlx.DB) *UserStatsRepository {
	return &UserStatsRepository{db: db}
}

// GetOrCreate returns the stats row for a user, creating it with default
// values on first access. A missing row is not an error condition.
func (r *UserStatsRepository) GetOrCreate(ctx context.Context, userID int64) (*models.UserStats, error) {
	var stats models.UserStats
	err := r.db.GetContext(ctx, &stats, "SELECT * FROM user_stats WHERE user_id = $1", userID)
	if err == nil {
		return &stats, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get user stats: %v", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_stats (user_id) VALUES ($1)
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user stats: %v", err)
	}

	err = r.db.GetContext(ctx, &stats, "SELECT * FROM user_stats WHERE user_id = $1", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats after create: %v", err)
	}
	return &stats, nil
}

// LastPracticedBetween returns users whose most recent practice falls in
// [from, to). Used by the scheduler to find streaks at risk of breaking.
func (r *UserStatsRepository) LastPracticedBetween(ctx context.Context, from, to time.Time) ([]models.UserStats, error) {
	var stats []models.UserStats
	err := r.db.SelectContext(ctx, &stats, `
		SELECT * FROM user_stats
		WHERE last_practice_date >= $1 AND last_practice_date < $2
		ORDER BY user_id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by practice window: %v", err)
	}
	return stats, nil
}

// ActiveSince returns users who practiced at least once since the given
// time.
func (r *UserStatsRepository) ActiveSince(ctx context.Context, since time.Time) ([]models.UserStats, error) {
	var stats []models.UserStats
	err := r.db.SelectContext(ctx, &stats, `
		SELECT * FROM user_stats
		WHERE last_practice_date >= $1
		ORDER BY user_id
	`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get active users: %v", err)
	}
	return stats, nil
}

// Update writes back a stats row guarded by its version column. The write
// only lands when the row still carries the version the snapshot was read
// at; otherwise ErrConflict is returned and nothing changes.
func (r *UserStatsRepository) Update(ctx context.Context, stats *models.UserStats) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE user_stats SET
			current_streak = $1,
			longest_streak = $2,
			streak_freeze_tokens = $3,
			last_practice_date = $4,
			total_xp = $5,
			total_practice_seconds = $6,
			total_exercises_completed = $7,
			version = version + 1,
			updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $8 AND version = $9
	`,
		stats.CurrentStreak,
		stats.LongestStreak,
		stats.StreakFreezeTokens,
		stats.LastPracticeDate,
		stats.TotalXP,
		stats.TotalPracticeSeconds,
		stats.TotalExercisesCompleted,
		stats.UserID,
		stats.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update user stats: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return ErrConflict
	}

	stats.Version++
	return nil
}
