package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Extraction records one successful job-info extraction for later review.
// JobInfo is stored as raw JSON so the history survives schema drift in
// the extracted shape.
type Extraction struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	PageURL   string          `json:"page_url,omitempty"`
	JobInfo   json.RawMessage `json:"job_info"`
	CreatedAt time.Time       `json:"created_at"`
}

// SentEmail records one outreach email handed to the mail sender.
type SentEmail struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
