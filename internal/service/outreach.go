package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/advokit/outreach-api/internal/agent"
	"github.com/advokit/outreach-api/internal/analytics"
	"github.com/advokit/outreach-api/internal/apperror"
	"github.com/advokit/outreach-api/internal/dto"
	"github.com/advokit/outreach-api/internal/entity"
	"github.com/advokit/outreach-api/internal/mailer"
	"github.com/advokit/outreach-api/internal/prospect"
	"github.com/advokit/outreach-api/internal/repository"
)

// JobExtractor pulls structured job info out of page content.
type JobExtractor interface {
	ExtractJobInfo(ctx context.Context, pageContent, pageURL string, hints *entity.DomainHints, userID string) (*entity.JobInfo, error)
}

// EmailDrafter composes outreach emails and parses resumes.
type EmailDrafter interface {
	DraftEmail(ctx context.Context, in agent.DraftInput) (*entity.EmailDraft, error)
	ParseResume(ctx context.Context, rawText string) (map[string]any, error)
}

// ContactDiscoverer finds advocate contacts at a company.
type ContactDiscoverer interface {
	DiscoverContacts(ctx context.Context, domain, jobTitle string, extraPositions []string) (*prospect.Result, error)
	ResolveCompanyDomain(ctx context.Context, candidateNames []string) (string, error)
}

// OutreachService composes extraction, discovery, drafting and sending
// into the end-to-end outreach flow.
type OutreachService struct {
	extractor   JobExtractor
	drafter     EmailDrafter
	discovery   ContactDiscoverer
	sender      mailer.Sender
	extractions repository.ExtractionsRepository
	sentEmails  repository.SentEmailsRepository
	analytics   analytics.Sink
}

// NewOutreachService wires the outreach collaborators together.
func NewOutreachService(
	extractor JobExtractor,
	drafter EmailDrafter,
	discovery ContactDiscoverer,
	sender mailer.Sender,
	extractions repository.ExtractionsRepository,
	sentEmails repository.SentEmailsRepository,
	sink analytics.Sink,
) *OutreachService {
	if sink == nil {
		sink = analytics.Nop{}
	}
	return &OutreachService{
		extractor:   extractor,
		drafter:     drafter,
		discovery:   discovery,
		sender:      sender,
		extractions: extractions,
		sentEmails:  sentEmails,
		analytics:   sink,
	}
}

// ExtractJobInfo runs the extraction agent and records the result in the
// caller's history. History writes are best effort and never fail the
// request.
func (s *OutreachService) ExtractJobInfo(ctx context.Context, userID uuid.UUID, req dto.ExtractJobInfoRequest) (*entity.JobInfo, error) {
	if strings.TrimSpace(req.PageContent) == "" {
		return nil, apperror.New(apperror.CodeMissingParameters, "pageContent is required")
	}

	info, err := s.extractor.ExtractJobInfo(ctx, req.PageContent, req.PageURL, req.DomainHints, userID.String())
	if err != nil {
		return nil, err
	}

	if s.extractions != nil {
		payload, marshalErr := json.Marshal(info)
		if marshalErr == nil {
			if _, saveErr := s.extractions.Create(ctx, userID, req.PageURL, payload); saveErr != nil {
				log.Printf("level=warn msg=\"save extraction history\" user_id=%s error=%q", userID, saveErr)
			}
		}
	}

	return info, nil
}

// FindEmployees normalizes the domain and runs contact discovery.
func (s *OutreachService) FindEmployees(ctx context.Context, req dto.FindEmployeesRequest) (*prospect.Result, error) {
	if strings.TrimSpace(req.JobTitle) == "" {
		return nil, apperror.New(apperror.CodeMissingParameters, "jobTitle is required")
	}
	domain, err := NormalizeDomain(req.Domain)
	if err != nil {
		return nil, err
	}

	return s.discovery.DiscoverContacts(ctx, domain, req.JobTitle, req.PotentialAdvocates)
}

// ResolveDomain asks the provider for the most likely company domain.
func (s *OutreachService) ResolveDomain(ctx context.Context, companyNames []string) (string, error) {
	return s.discovery.ResolveCompanyDomain(ctx, companyNames)
}

// DraftEmail composes an outreach email from whatever context blocks the
// caller supplied.
func (s *OutreachService) DraftEmail(ctx context.Context, req dto.DraftEmailRequest) (*entity.EmailDraft, error) {
	return s.drafter.DraftEmail(ctx, agent.DraftInput{
		CompanyBackground: req.CompanyBackground,
		PersonBackground:  req.PersonBackground,
		Qualifications:    req.Qualifications,
		JobRequirements:   req.JobRequirements,
	})
}

// ParseResume extracts a loose-schema profile from raw resume text.
func (s *OutreachService) ParseResume(ctx context.Context, rawText string) (map[string]any, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, apperror.New(apperror.CodeMissingParameters, "rawText is required")
	}
	return s.drafter.ParseResume(ctx, rawText)
}

// SendEmail delivers a composed draft through the caller's Gmail account
// and records it in the sent log.
func (s *OutreachService) SendEmail(ctx context.Context, userID uuid.UUID, req dto.SendEmailRequest) error {
	if err := ValidateEmail(req.To); err != nil {
		return err
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
		return apperror.New(apperror.CodeMissingParameters, "subject and body are required")
	}
	if strings.TrimSpace(req.AccessToken) == "" {
		return apperror.New(apperror.CodeAuthFailed, "gmail access token is required")
	}

	session := mailer.NewSession(req.AccessToken)
	msg := mailer.Message{
		To:         req.To,
		Subject:    req.Subject,
		Body:       req.Body,
		SenderName: req.SenderName,
	}
	if err := s.sender.Send(ctx, session, msg); err != nil {
		return apperror.Wrap(apperror.CodeServiceError, "failed to send email", err)
	}

	if s.sentEmails != nil {
		if _, saveErr := s.sentEmails.Create(ctx, userID, req.To, req.Subject, req.Body); saveErr != nil {
			log.Printf("level=warn msg=\"save sent email\" user_id=%s error=%q", userID, saveErr)
		}
	}
	s.analytics.Capture(userID.String(), "email_sent", map[string]any{
		"recipient": req.To,
	})

	return nil
}

// ListExtractions returns the caller's extraction history.
func (s *OutreachService) ListExtractions(ctx context.Context, userID uuid.UUID, filter dto.ListFilter) ([]entity.Extraction, error) {
	return s.extractions.ListByUser(ctx, userID, filter)
}

// ListSentEmails returns the caller's sent email log.
func (s *OutreachService) ListSentEmails(ctx context.Context, userID uuid.UUID, filter dto.ListFilter) ([]entity.SentEmail, error) {
	return s.sentEmails.ListByUser(ctx, userID, filter)
}
