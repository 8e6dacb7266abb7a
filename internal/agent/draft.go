package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/advokit/outreach-api/internal/apperror"
	"github.com/advokit/outreach-api/internal/entity"
	"github.com/advokit/outreach-api/internal/llm"
)

// DraftAgent writes outreach email copy and parses resumes with the same
// generate-then-parse shape as the extraction agent.
type DraftAgent struct {
	gen llm.Generator
}

// NewDraftAgent wires the agent.
func NewDraftAgent(gen llm.Generator) *DraftAgent {
	return &DraftAgent{gen: gen}
}

// DraftInput carries the optional context blocks for an email draft.
type DraftInput struct {
	CompanyBackground string
	PersonBackground  string
	Qualifications    string
	JobRequirements   string
}

const draftPlaceholderFmt = "No %s provided"

// DraftEmail asks the model for a concise subject/body pair. Missing
// inputs are substituted with explicit placeholders so the model is never
// sent an empty field silently. The response is stripped of a Markdown
// code fence before parsing; a parse failure is terminal for the call.
func (a *DraftAgent) DraftEmail(ctx context.Context, in DraftInput) (*entity.EmailDraft, error) {
	prompt := buildDraftPrompt(in)

	response, err := a.gen.Generate(ctx, prompt, llm.Options{
		Temperature: 0.7,
		MaxTokens:   800,
		JSONOnly:    true,
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeServiceError, "email drafting failed", err)
	}

	var draft entity.EmailDraft
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &draft); err != nil {
		return nil, apperror.Wrap(apperror.CodeDraftParse, "could not parse drafted email", err)
	}
	return &draft, nil
}

// ParseResume extracts skills, experience, education, projects,
// certifications, awards and publications as free-form JSON. The schema
// is intentionally loose since resume content is heterogeneous.
func (a *DraftAgent) ParseResume(ctx context.Context, rawText string) (map[string]any, error) {
	prompt := "Extract the following from this resume as a JSON object with keys " +
		`"skills", "experience", "education", "projects", "certifications", "awards", "publications". ` +
		"Use whatever value shapes best fit the content; omit keys with nothing to report.\n\nResume:\n" + rawText

	response, err := a.gen.Generate(ctx, prompt, llm.Options{
		Temperature: 0.2,
		MaxTokens:   2000,
		JSONOnly:    true,
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeServiceError, "resume parsing failed", err)
	}

	text := stripCodeFence(response)
	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		candidate, ok := firstJSONObject(text)
		if !ok {
			return nil, apperror.New(apperror.CodeDraftParse, "model response contained no JSON object")
		}
		if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
			return nil, apperror.Wrap(apperror.CodeDraftParse, "could not parse resume data", err)
		}
	}
	return parsed, nil
}

func buildDraftPrompt(in DraftInput) string {
	return fmt.Sprintf(`Write a concise outreach email of roughly 130 words from a job seeker to an employee of the target company.

The email should feel personal and specific, open with genuine interest in the company, connect the candidate's qualifications to the role, and end with a low-pressure ask for a short conversation or referral. Do not include a greeting line or signature; the sender appends those.

Company background: %s

Person background: %s

Candidate qualifications: %s

Job requirements: %s

Return a JSON object with exactly two keys: "subject" and "body".`,
		orPlaceholder(in.CompanyBackground, "company background"),
		orPlaceholder(in.PersonBackground, "person background"),
		orPlaceholder(in.Qualifications, "qualifications"),
		orPlaceholder(in.JobRequirements, "job requirements"),
	)
}

func orPlaceholder(value, label string) string {
	if value == "" {
		return fmt.Sprintf(draftPlaceholderFmt, label)
	}
	return value
}
