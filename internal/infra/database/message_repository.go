package database

import (
	"context"
	"database/sql"
	"errors"

	"leadflow/internal/entity"
)

type MessageRepository struct {
	DB *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *entity.Message) error {
	query := `
		INSERT INTO messages (id, lead_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.DB.ExecContext(ctx, query, msg.ID, msg.LeadID, msg.Role, msg.Content, msg.CreatedAt)
	return err
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*entity.Message, error) {
	query := `
		SELECT id, lead_id, role, content, created_at
		FROM messages
		WHERE id = $1
	`

	msg := &entity.Message{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&msg.ID,
		&msg.LeadID,
		&msg.Role,
		&msg.Content,
		&msg.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}

	return msg, nil
}

func (r *MessageRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Message, error) {
	query := `
		SELECT id, lead_id, role, content, created_at
		FROM messages
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*entity.Message
	for rows.Next() {
		msg := &entity.Message{}
		if err := rows.Scan(&msg.ID, &msg.LeadID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}
