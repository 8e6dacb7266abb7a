package dto

import "github.com/advokit/outreach-api/internal/entity"

// ExtractJobInfoRequest is the payload posted by the extension when a job
// posting is detected.
type ExtractJobInfoRequest struct {
	PageContent   string              `json:"pageContent"`
	PageURL       string              `json:"pageUrl,omitempty"`
	CurrentDomain string              `json:"currentDomain,omitempty"`
	DomainHints   *entity.DomainHints `json:"domainHints,omitempty"`
	UserID        string              `json:"user_id,omitempty"`
}
