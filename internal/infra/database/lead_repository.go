package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"leadflow/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, company, contact_name, email, title, website, notes, score, stage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		lead.ID,
		lead.Company,
		lead.ContactName,
		lead.Email,
		lead.Title,
		lead.Website,
		lead.Notes,
		lead.Score,
		lead.Stage,
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT id, company, contact_name, email, title, website, notes, score, stage, created_at, updated_at
		FROM leads
		WHERE id = $1
	`

	lead := &entity.Lead{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&lead.ID,
		&lead.Company,
		&lead.ContactName,
		&lead.Email,
		&lead.Title,
		&lead.Website,
		&lead.Notes,
		&lead.Score,
		&lead.Stage,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}

	return lead, nil
}

// Search lists leads newest-updated first; a non-empty q filters by substring
// across company, contact_name and notes (case-insensitive).
func (r *LeadRepository) Search(ctx context.Context, q string) ([]*entity.Lead, error) {
	query := `
		SELECT id, company, contact_name, email, title, website, notes, score, stage, created_at, updated_at
		FROM leads
	`

	var rows *sql.Rows
	var err error

	if q != "" {
		query += `
		WHERE company ILIKE $1 OR contact_name ILIKE $1 OR notes ILIKE $1
		ORDER BY updated_at DESC`
		rows, err = r.DB.QueryContext(ctx, query, "%"+q+"%")
	} else {
		query += `
		ORDER BY updated_at DESC`
		rows, err = r.DB.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead := &entity.Lead{}
		if err := rows.Scan(
			&lead.ID,
			&lead.Company,
			&lead.ContactName,
			&lead.Email,
			&lead.Title,
			&lead.Website,
			&lead.Notes,
			&lead.Score,
			&lead.Stage,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// UpdateScoreStage writes score, stage and updated_at in a single statement
// so the pair is atomic from the caller's perspective.
func (r *LeadRepository) UpdateScoreStage(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET score = $1, stage = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.DB.ExecContext(ctx, query, lead.Score, lead.Stage, lead.UpdatedAt, lead.ID)
	if err != nil {
		return err
	}

	return ensureFound(result)
}

func (r *LeadRepository) UpdateStage(ctx context.Context, id, stage string, updatedAt time.Time) error {
	query := `
		UPDATE leads
		SET stage = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.DB.ExecContext(ctx, query, stage, updatedAt, id)
	if err != nil {
		return err
	}

	return ensureFound(result)
}

func ensureFound(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}
