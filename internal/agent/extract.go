package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/advokit/outreach-api/internal/analytics"
	"github.com/advokit/outreach-api/internal/apperror"
	"github.com/advokit/outreach-api/internal/entity"
	"github.com/advokit/outreach-api/internal/llm"
)

// ExtractionAgent turns raw job-posting page content into a structured
// JobInfo record via a single model call with a fixed-schema prompt.
type ExtractionAgent struct {
	gen       llm.Generator
	analytics analytics.Sink
}

// NewExtractionAgent wires the agent. A nil sink disables event capture.
func NewExtractionAgent(gen llm.Generator, sink analytics.Sink) *ExtractionAgent {
	if sink == nil {
		sink = analytics.Nop{}
	}
	return &ExtractionAgent{gen: gen, analytics: sink}
}

// ExtractJobInfo prompts the model over the page content and parses the
// response. Parsing is two-tiered: direct JSON first, then the outermost
// {...} substring for responses wrapped in prose. Both failing maps to
// EXTRACTION_PARSE_ERROR. On success a jobinfo_extracted event is emitted
// fire-and-forget.
func (a *ExtractionAgent) ExtractJobInfo(ctx context.Context, pageContent, pageURL string, hints *entity.DomainHints, userID string) (*entity.JobInfo, error) {
	prompt := buildExtractionPrompt(pageContent, pageURL, hints)

	response, err := a.gen.Generate(ctx, prompt, llm.Options{
		Temperature: 0.2,
		MaxTokens:   1500,
		JSONOnly:    true,
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeServiceError, "job info extraction failed", err)
	}

	info, err := parseJobInfo(response)
	if err != nil {
		return nil, err
	}

	a.analytics.Capture(userID, "jobinfo_extracted", map[string]any{
		"pageUrl":       pageURL,
		"jobTitle":      info.JobTitle,
		"companyName":   info.CompanyName,
		"companyDomain": info.CompanyDomain,
	})

	return info, nil
}

func parseJobInfo(response string) (*entity.JobInfo, error) {
	text := stripCodeFence(response)

	var info entity.JobInfo
	if err := json.Unmarshal([]byte(text), &info); err == nil {
		return &info, nil
	}

	candidate, ok := firstJSONObject(text)
	if !ok {
		return nil, apperror.New(apperror.CodeExtractionParse, "model response contained no JSON object")
	}
	if err := json.Unmarshal([]byte(candidate), &info); err != nil {
		return nil, apperror.Wrap(apperror.CodeExtractionParse, "could not parse extracted job info", err)
	}
	return &info, nil
}

func buildExtractionPrompt(pageContent, pageURL string, hints *entity.DomainHints) string {
	var b strings.Builder

	b.WriteString("You are analyzing a web page that contains one or more job postings.\n")
	b.WriteString("Extract information about the single MOST DETAILED posting on the page; ignore teasers, sidebars and related-job listings.\n\n")

	b.WriteString("Return a JSON object with exactly these keys:\n")
	b.WriteString(`{"jobTitle": "", "companyName": "", "companyDomain": "", "companyBackground": "", "jobRequirements": "", "potentialAdvocates": []}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- jobTitle: normalize the title. Strip location, remote/hybrid markers and tech-stack suffixes or prefixes. Expand abbreviations (Sr. -> Senior, Jr. -> Junior, Mgr -> Manager). Keep seniority and specialization words.\n")
	b.WriteString("- companyName: the hiring company, not a job board or staffing agency.\n")
	b.WriteString("- companyDomain: the company's web domain as a bare hostname only, no protocol, no www. Prefer domains from the hints below and from email addresses found in the text.\n")
	b.WriteString("- companyBackground: a short paragraph on what the company does.\n")
	b.WriteString("- jobRequirements: the key requirements and qualifications, condensed.\n")
	b.WriteString("- potentialAdvocates: 3 to 6 job titles of people worth contacting about this role. Include: generalized variants of the job title with department and seniority qualifiers stripped; the likely department name; the likely hiring manager's specific title (not a generic one); and senior decision-makers in the SAME department. Never include people outside the job's department.\n")

	if pageURL != "" {
		fmt.Fprintf(&b, "\nPage URL: %s\n", pageURL)
	}

	if !hints.Empty() {
		b.WriteString("\nDomain hints gathered from the page:\n")
		for _, link := range hints.Links {
			fmt.Fprintf(&b, "- link: %s\n", link)
		}
		for _, email := range hints.Emails {
			fmt.Fprintf(&b, "- email: %s\n", email)
		}
		for key, value := range hints.MetaTags {
			fmt.Fprintf(&b, "- meta %s: %s\n", key, value)
		}
		for _, profile := range hints.SocialProfiles {
			fmt.Fprintf(&b, "- social profile: %s\n", profile)
		}
		if hints.HostingPlatform != "" {
			fmt.Fprintf(&b, "- hosting platform: %s\n", hints.HostingPlatform)
		}
	}

	b.WriteString("\nPage content:\n")
	b.WriteString(pageContent)

	return b.String()
}
