package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/advokit/outreach-api/internal/dto"
	"github.com/advokit/outreach-api/internal/entity"
)

// ExtractionsRepository persists job extraction results per user.
type ExtractionsRepository interface {
	Create(ctx context.Context, userID uuid.UUID, pageURL string, jobInfo json.RawMessage) (*entity.Extraction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter dto.ListFilter) ([]entity.Extraction, error)
}

// PGXExtractionsRepository implements ExtractionsRepository with pgx.
type PGXExtractionsRepository struct {
	pool pgxPool
}

// NewPGXExtractionsRepository instantiates an extractions repository.
func NewPGXExtractionsRepository(pool *pgxpool.Pool) *PGXExtractionsRepository {
	return &PGXExtractionsRepository{pool: pool}
}

// Create inserts a new extraction row.
func (r *PGXExtractionsRepository) Create(ctx context.Context, userID uuid.UUID, pageURL string, jobInfo json.RawMessage) (*entity.Extraction, error) {
	if len(jobInfo) == 0 {
		jobInfo = json.RawMessage("{}")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO extractions (user_id, page_url, job_info)
        VALUES ($1, $2, $3::jsonb)
        RETURNING id, user_id, page_url, job_info, created_at
    `, userID, pageURL, string(jobInfo))

	var rec entity.Extraction
	var raw []byte
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.PageURL, &raw, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert extraction: %w", err)
	}
	rec.JobInfo = json.RawMessage(raw)

	return &rec, nil
}

// ListByUser returns a user's extractions, newest first.
func (r *PGXExtractionsRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter dto.ListFilter) ([]entity.Extraction, error) {
	perPage, offset := pageWindow(filter)

	rows, err := r.pool.Query(ctx, `
        SELECT id, user_id, page_url, job_info, created_at
        FROM extractions
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `, userID, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	defer rows.Close()

	var records []entity.Extraction
	for rows.Next() {
		var rec entity.Extraction
		var raw []byte
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.PageURL, &raw, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan extraction row: %w", err)
		}
		if len(raw) > 0 {
			rec.JobInfo = json.RawMessage(raw)
		} else {
			rec.JobInfo = json.RawMessage("{}")
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate extractions: %w", err)
	}
	return records, nil
}

func pageWindow(filter dto.ListFilter) (perPage, offset int) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage = filter.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return perPage, (page - 1) * perPage
}
