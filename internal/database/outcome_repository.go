package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/example/speechcoach/pkg/models"
)

// OutcomeRepository handles database operations for the append-only
// technique outcome log.
type OutcomeRepository struct {
	db *sqlx.DB
}

// NewOutcomeRepository creates a new repository instance
func NewOutcomeRepository(db *sqlx.DB) *OutcomeRepository {
	return &OutcomeRepository{db: db}
}

// Append inserts a new outcome record. Entries are never updated or
// deleted afterwards.
func (r *OutcomeRepository) Append(ctx context.Context, outcome *models.TechniqueOutcome) error {
	if outcome.ID == "" {
		outcome.ID = uuid.NewString()
	}
	if outcome.CreatedAt.IsZero() {
		outcome.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO technique_outcomes (
			id, user_id, category, confidence_delta, self_rated_fluency, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`,
		outcome.ID,
		outcome.UserID,
		outcome.Category,
		outcome.ConfidenceDelta,
		outcome.SelfRatedFluency,
		outcome.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append technique outcome: %v", err)
	}
	return nil
}

// Latest returns up to limit outcome records for a user ordered newest
// first, optionally filtered by category.
func (r *OutcomeRepository) Latest(ctx context.Context, userID int64, category *models.TechniqueCategory, limit int) ([]models.TechniqueOutcome, error) {
	var outcomes []models.TechniqueOutcome
	var err error

	if category != nil {
		err = r.db.SelectContext(ctx, &outcomes, `
			SELECT * FROM technique_outcomes
			WHERE user_id = $1 AND category = $2
			ORDER BY created_at DESC
			LIMIT $3
		`, userID, *category, limit)
	} else {
		err = r.db.SelectContext(ctx, &outcomes, `
			SELECT * FROM technique_outcomes
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		`, userID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get technique outcomes: %v", err)
	}
	return outcomes, nil
}
