package database

import (
	"context"
	"database/sql"

	"leadflow/internal/entity"
)

type ActivityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// Create appends one audit record. Activities are never updated or deleted.
func (r *ActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	query := `
		INSERT INTO activities (id, lead_id, type, detail, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.ExecContext(ctx, query, activity.ID, activity.LeadID, activity.Type, activity.Detail, activity.CreatedAt)
	return err
}

func (r *ActivityRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Activity, error) {
	query := `
		SELECT id, lead_id, type, detail, created_at
		FROM activities
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*entity.Activity
	for rows.Next() {
		activity := &entity.Activity{}
		if err := rows.Scan(&activity.ID, &activity.LeadID, &activity.Type, &activity.Detail, &activity.CreatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}
