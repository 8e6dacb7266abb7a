package prospect

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/advokit/outreach-api/internal/apperror"
	"github.com/advokit/outreach-api/internal/entity"
	"github.com/nyaruka/phonenumbers"
)

// Positions always included in a prospect search next to the caller's job
// title: founders and the CEO tend to be the most responsive advocates at
// small companies.
var defaultPositions = []string{"founder", "cofounder", "co-founder", "CEO"}

// Discovery orchestrates the provider's multi-step search-and-enrich
// protocol: authenticate, verify the domain, search prospects, then
// resolve every prospect's email concurrently.
type Discovery struct {
	client      *Client
	poller      *Poller
	phoneRegion string
}

// NewDiscovery wires the orchestrator. phoneRegion is the default region
// for normalizing provider-supplied phone numbers.
func NewDiscovery(client *Client, poller *Poller, phoneRegion string) *Discovery {
	if phoneRegion == "" {
		phoneRegion = "US"
	}
	return &Discovery{client: client, poller: poller, phoneRegion: phoneRegion}
}

// Result carries the discovered contacts plus a diagnostic count of
// prospects dropped for missing or failed email resolution.
type Result struct {
	Contacts []entity.Contact
	Dropped  int
}

type prospectRecord struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Position       string `json:"position"`
	SourcePage     string `json:"source_page"`
	EmailSearchURL string `json:"email_search_url"`
}

type prospectSearchResult struct {
	Prospects []prospectRecord `json:"prospects"`
}

type emailSearchResult struct {
	Emails      []string `json:"emails"`
	PhoneNumber string   `json:"phone_number"`
}

// DiscoverContacts resolves a company domain and job-title filter into
// contacts with verified emails. Contacts come back in provider order;
// prospects without a resolvable email are dropped silently and only the
// aggregate empty-result condition is surfaced.
func (d *Discovery) DiscoverContacts(ctx context.Context, domain, jobTitle string, extraPositions []string) (*Result, error) {
	token, err := d.client.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	// Domain verification is informational only; a slow or failed check
	// must not abort the search.
	if resultURL, err := d.client.StartDomainSearch(ctx, token, domain); err != nil {
		log.Printf("domain search start failed domain=%s err=%v", domain, err)
	} else if _, err := d.poller.Poll(ctx, resultURL, token); err != nil {
		log.Printf("domain search did not settle domain=%s err=%v", domain, err)
	}

	searchURL, err := d.client.StartProspectSearch(ctx, token, domain, buildPositionFilter(jobTitle, extraPositions))
	if err != nil {
		return nil, err
	}

	raw, err := d.poller.Poll(ctx, searchURL, token)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeSearchTimeout {
			return nil, apperror.Wrap(apperror.CodeSearchTimeout, "employee search timed out, try again in a moment", err)
		}
		return nil, err
	}

	var search prospectSearchResult
	if err := json.Unmarshal(raw, &search); err != nil {
		return nil, apperror.Wrap(apperror.CodeServiceError, "could not decode prospect search result", err)
	}
	if len(search.Prospects) == 0 {
		return nil, apperror.New(apperror.CodeNoValidEmployees, "no employees with reachable emails were found, try a more general job title")
	}

	// Fan out one email sub-job per prospect. Results are joined by
	// position so output order matches provider order regardless of
	// completion time.
	resolved := make([]*entity.Contact, len(search.Prospects))
	var g errgroup.Group
	for i, p := range search.Prospects {
		g.Go(func() error {
			if contact, ok := d.resolveEmail(ctx, token, p); ok {
				resolved[i] = contact
			}
			return nil
		})
	}
	g.Wait()

	contacts := make([]entity.Contact, 0, len(resolved))
	for _, c := range resolved {
		if c != nil {
			contacts = append(contacts, *c)
		}
	}

	dropped := len(search.Prospects) - len(contacts)
	if len(contacts) == 0 {
		return nil, apperror.New(apperror.CodeNoValidEmployees, "no employees with reachable emails were found, try a more general job title")
	}
	if dropped > 0 {
		log.Printf("prospect email resolution dropped=%d total=%d domain=%s", dropped, len(search.Prospects), domain)
	}

	return &Result{Contacts: contacts, Dropped: dropped}, nil
}

// ResolveCompanyDomain maps one or more candidate company names to the
// most likely web domain. A missing match or a provider timeout both map
// to DOMAIN_NOT_FOUND so the UI can offer manual domain entry; transient
// failures keep their own codes so the caller can retry instead.
func (d *Discovery) ResolveCompanyDomain(ctx context.Context, candidateNames []string) (string, error) {
	names := make([]string, 0, len(candidateNames))
	for _, n := range candidateNames {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		return "", apperror.New(apperror.CodeValidationError, "at least one company name is required")
	}

	token, err := d.client.Authenticate(ctx)
	if err != nil {
		return "", err
	}

	domain, err := d.client.ResolveDomain(ctx, token, names)
	if err != nil {
		if apperror.CodeOf(err) == apperror.CodeSearchTimeout {
			return "", apperror.Wrap(apperror.CodeDomainNotFound, "could not resolve a domain for the given company names", err)
		}
		return "", err
	}
	return domain, nil
}

// resolveEmail runs one prospect's email sub-job. Every failure mode
// (missing search URL, start error, poll timeout, empty result) drops the
// prospect without failing the batch.
func (d *Discovery) resolveEmail(ctx context.Context, token string, p prospectRecord) (*entity.Contact, bool) {
	if p.EmailSearchURL == "" {
		return nil, false
	}

	resultURL, err := d.client.StartEmailSearch(ctx, token, p.EmailSearchURL)
	if err != nil {
		log.Printf("email search start failed prospect=%s %s err=%v", p.FirstName, p.LastName, err)
		return nil, false
	}

	raw, err := d.poller.Poll(ctx, resultURL, token)
	if err != nil {
		log.Printf("email search did not settle prospect=%s %s err=%v", p.FirstName, p.LastName, err)
		return nil, false
	}

	var result emailSearchResult
	if err := json.Unmarshal(raw, &result); err != nil || len(result.Emails) == 0 {
		return nil, false
	}

	contact := &entity.Contact{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Position:   p.Position,
		Email:      result.Emails[0],
		SourcePage: p.SourcePage,
	}
	if result.PhoneNumber != "" {
		contact.Phone = normalizePhone(result.PhoneNumber, d.phoneRegion)
	}
	return contact, true
}

// buildPositionFilter unions the job title, the default advocate
// positions, and any caller-supplied extras, deduplicated
// case-insensitively with order preserved.
func buildPositionFilter(jobTitle string, extra []string) []string {
	candidates := make([]string, 0, 1+len(defaultPositions)+len(extra))
	if trimmed := strings.TrimSpace(jobTitle); trimmed != "" {
		candidates = append(candidates, trimmed)
	}
	candidates = append(candidates, defaultPositions...)
	for _, e := range extra {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			candidates = append(candidates, trimmed)
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	positions := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		positions = append(positions, c)
	}
	return positions
}

// normalizePhone formats a provider-supplied phone number to E.164.
// Unparseable or invalid numbers are blanked, never fatal.
func normalizePhone(raw, region string) string {
	parsed, err := phonenumbers.Parse(strings.TrimSpace(raw), region)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return ""
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}
