package activity

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles activity data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new activity repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new activity entry into the database
func (r *Repository) Create(ctx context.Context, action Action, message string, entityType, entityID *string) (*Activity, error) {
	query := `
		INSERT INTO activities (action, message, entity_type, entity_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, action, entity_type, entity_id, message, created_at
	`

	activity := &Activity{}
	err := r.db.QueryRowContext(ctx, query, action, message, entityType, entityID).Scan(
		&activity.ID,
		&activity.Action,
		&activity.EntityType,
		&activity.EntityID,
		&activity.Message,
		&activity.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return activity, nil
}

// List retrieves activity entries, newest first
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Activity, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	query := `
		SELECT id, action, entity_type, entity_id, message, created_at
		FROM activities
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*Activity
	for rows.Next() {
		activity := &Activity{}
		if err := rows.Scan(
			&activity.ID,
			&activity.Action,
			&activity.EntityType,
			&activity.EntityID,
			&activity.Message,
			&activity.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, activity)
	}

	return activities, total, nil
}

// Clear removes every activity entry
func (r *Repository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM activities`); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}
	return nil
}
