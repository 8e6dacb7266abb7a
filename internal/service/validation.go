package service

import (
	"regexp"
	"strings"

	"golang.org/x/net/idna"

	"github.com/advokit/outreach-api/internal/apperror"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	idnaProfile  = idna.Lookup
)

// NormalizeDomain reduces a raw domain or URL to a bare lowercase hostname
// suitable for contact discovery lookups. Schemes, paths and a leading
// "www." are stripped; internationalized names are converted to ASCII.
func NormalizeDomain(raw string) (string, error) {
	domain := strings.ToLower(strings.TrimSpace(raw))
	if domain == "" {
		return "", apperror.New(apperror.CodeMissingParameters, "domain is required")
	}

	if idx := strings.Index(domain, "://"); idx >= 0 {
		domain = domain[idx+3:]
	}
	if idx := strings.IndexAny(domain, "/?#"); idx >= 0 {
		domain = domain[:idx]
	}
	if idx := strings.Index(domain, "@"); idx >= 0 {
		domain = domain[idx+1:]
	}
	if idx := strings.Index(domain, ":"); idx >= 0 {
		domain = domain[:idx]
	}
	domain = strings.TrimPrefix(domain, "www.")
	domain = strings.Trim(domain, ".")

	ascii, err := idnaProfile.ToASCII(domain)
	if err != nil || ascii == "" {
		return "", apperror.New(apperror.CodeValidationError, "domain is not valid")
	}
	if !isDomainValid(ascii) {
		return "", apperror.New(apperror.CodeValidationError, "domain is not valid")
	}

	return ascii, nil
}

// ValidateEmail reports whether an address looks deliverable enough to
// send to. Matching is case-insensitive.
func ValidateEmail(raw string) error {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return apperror.New(apperror.CodeMissingParameters, "recipient email is required")
	}
	if !emailPattern.MatchString(email) {
		return apperror.New(apperror.CodeValidationError, "recipient email is not valid")
	}
	parts := strings.SplitN(email, "@", 2)
	if !isDomainValid(parts[1]) {
		return apperror.New(apperror.CodeValidationError, "recipient email is not valid")
	}
	return nil
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
