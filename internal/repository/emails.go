package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/advokit/outreach-api/internal/dto"
	"github.com/advokit/outreach-api/internal/entity"
)

// SentEmailsRepository records delivered outreach emails per user.
type SentEmailsRepository interface {
	Create(ctx context.Context, userID uuid.UUID, recipient, subject, body string) (*entity.SentEmail, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter dto.ListFilter) ([]entity.SentEmail, error)
}

// PGXSentEmailsRepository implements SentEmailsRepository with pgx.
type PGXSentEmailsRepository struct {
	pool pgxPool
}

// NewPGXSentEmailsRepository instantiates a sent emails repository.
func NewPGXSentEmailsRepository(pool *pgxpool.Pool) *PGXSentEmailsRepository {
	return &PGXSentEmailsRepository{pool: pool}
}

// Create inserts a sent email row.
func (r *PGXSentEmailsRepository) Create(ctx context.Context, userID uuid.UUID, recipient, subject, body string) (*entity.SentEmail, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO sent_emails (user_id, recipient, subject, body)
        VALUES ($1, $2, $3, $4)
        RETURNING id, user_id, recipient, subject, body, created_at
    `, userID, recipient, subject, body)

	var rec entity.SentEmail
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Recipient, &rec.Subject, &rec.Body, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert sent email: %w", err)
	}

	return &rec, nil
}

// ListByUser returns a user's sent emails, newest first.
func (r *PGXSentEmailsRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter dto.ListFilter) ([]entity.SentEmail, error) {
	perPage, offset := pageWindow(filter)

	rows, err := r.pool.Query(ctx, `
        SELECT id, user_id, recipient, subject, body, created_at
        FROM sent_emails
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `, userID, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("list sent emails: %w", err)
	}
	defer rows.Close()

	var records []entity.SentEmail
	for rows.Next() {
		var rec entity.SentEmail
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Recipient, &rec.Subject, &rec.Body, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sent email row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sent emails: %w", err)
	}
	return records, nil
}
