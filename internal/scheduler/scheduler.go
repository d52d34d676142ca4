package scheduler

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/example/speechcoach/internal/database"
	"github.com/example/speechcoach/internal/progression"
)

// Default hours for the streak-risk reminder sweep.
const (
	DefaultReminderHour = 18 // evening, while the day can still be saved

	// MaxFreezeTokens caps how many freeze tokens the weekly grant will
	// stack up for one user.
	MaxFreezeTokens = 3

	// freezeGrantActivityWindow is how recently a user must have
	// practiced to receive the weekly freeze token.
	freezeGrantActivityWindow = 14 * 24 * time.Hour
)

// Notifier sends practice reminders to users. The transport is out of
// scope here; the scheduler only decides who to nudge and when.
type Notifier interface {
	SendStreakReminder(userID int64, currentStreak int) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *progression.Service
	stats     *database.UserStatsRepository
	notifier  Notifier
	logger    *zap.Logger
}

// New creates a new scheduler instance
func New(service *progression.Service, stats *database.UserStatsRepository, notifier Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		stats:     stats,
		notifier:  notifier,
		logger:    logger.Named("scheduler"),
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	reminderHour := DefaultReminderHour
	if hourStr := os.Getenv("REMINDER_HOUR"); hourStr != "" {
		if h, err := strconv.Atoi(hourStr); err == nil && h >= 0 && h <= 23 {
			reminderHour = h
		}
	}

	s.scheduler.Every(1).Day().At(fmt.Sprintf("%02d:00", reminderHour)).Do(s.sendStreakReminders)
	s.scheduler.Every(1).Monday().At("09:00").Do(s.grantWeeklyFreezeTokens)

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// sendStreakReminders nudges users whose streak is about to break: they
// practiced yesterday but not yet today.
func (s *Scheduler) sendStreakReminders() {
	if s.notifier == nil {
		return
	}

	ctx := context.Background()
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	atRisk, err := s.stats.LastPracticedBetween(ctx, yesterday, today)
	if err != nil {
		s.logger.Error("failed to find streaks at risk", zap.Error(err))
		return
	}

	for _, stats := range atRisk {
		if stats.CurrentStreak == 0 {
			continue
		}
		if err := s.notifier.SendStreakReminder(stats.UserID, stats.CurrentStreak); err != nil {
			s.logger.Error("failed to send streak reminder",
				zap.Int64("user_id", stats.UserID), zap.Error(err))
		}
	}
}

// grantWeeklyFreezeTokens credits one freeze token to every recently
// active user who is below the cap.
func (s *Scheduler) grantWeeklyFreezeTokens() {
	ctx := context.Background()
	since := time.Now().UTC().Add(-freezeGrantActivityWindow)

	active, err := s.stats.ActiveSince(ctx, since)
	if err != nil {
		s.logger.Error("failed to find active users for freeze grant", zap.Error(err))
		return
	}

	granted := 0
	for _, stats := range active {
		if stats.StreakFreezeTokens >= MaxFreezeTokens {
			continue
		}
		if _, err := s.service.GrantFreezeTokens(ctx, stats.UserID, 1); err != nil {
			s.logger.Error("failed to grant freeze token",
				zap.Int64("user_id", stats.UserID), zap.Error(err))
			continue
		}
		granted++
	}
	s.logger.Info("weekly freeze token grant finished",
		zap.Int("eligible", len(active)), zap.Int("granted", granted))
}
