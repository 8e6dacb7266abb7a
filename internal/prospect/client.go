package prospect

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/advokit/outreach-api/internal/apperror"
)

// Client talks to the prospecting provider's HTTP API: a credential
// exchange endpoint plus "start async job" endpoints that hand back a
// pollable result location.
type Client struct {
	baseURL   string
	apiKey    string
	apiSecret string
	client    *http.Client
}

// NewClient wires a provider client. A nil httpClient gets a 15s-timeout
// default.
func NewClient(baseURL, apiKey, apiSecret string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    httpClient,
	}
}

type startResponse struct {
	ResultURL string `json:"result_url"`
}

// Authenticate exchanges the client credential pair for a bearer token.
// The token is scoped to one discovery invocation and never cached.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	payload := map[string]string{"api_key": c.apiKey, "api_secret": c.apiSecret}
	resp, err := c.postJSON(ctx, "", c.baseURL+"/v1/auth/token", payload)
	if err != nil {
		return "", apperror.Wrap(apperror.CodeAuthFailed, "provider authentication failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperror.New(apperror.CodeAuthFailed, "provider rejected credentials: "+readProviderError(resp.Body))
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil || token.AccessToken == "" {
		return "", apperror.New(apperror.CodeAuthFailed, "provider returned no access token")
	}
	return token.AccessToken, nil
}

// StartDomainSearch submits the domain for verification and returns the
// pollable result location.
func (c *Client) StartDomainSearch(ctx context.Context, token, domain string) (string, error) {
	return c.startJob(ctx, token, c.baseURL+"/v1/domains/search", map[string]any{"domain": domain})
}

// StartProspectSearch submits the domain plus position filter as an
// asynchronous search job.
func (c *Client) StartProspectSearch(ctx context.Context, token, domain string, positions []string) (string, error) {
	return c.startJob(ctx, token, c.baseURL+"/v1/prospects/search", map[string]any{
		"domain":    domain,
		"positions": positions,
	})
}

// StartEmailSearch kicks off the provider-supplied per-prospect email
// search. searchURL is opaque and used verbatim.
func (c *Client) StartEmailSearch(ctx context.Context, token, searchURL string) (string, error) {
	return c.startJob(ctx, token, searchURL, map[string]any{})
}

// ResolveDomain asks the provider for the most likely domain for the
// given company names. An empty answer maps to DOMAIN_NOT_FOUND so the
// caller can fall back to manual domain entry.
func (c *Client) ResolveDomain(ctx context.Context, token string, names []string) (string, error) {
	resp, err := c.postJSON(ctx, token, c.baseURL+"/v1/companies/resolve", map[string]any{"names": names})
	if err != nil {
		return "", apperror.Wrap(apperror.CodeServiceError, "domain resolution request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", apperror.New(apperror.CodeDomainNotFound, "no domain match for the given company names")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperror.New(apperror.CodeServiceError, "domain resolution failed: "+readProviderError(resp.Body))
	}

	var result struct {
		Domain string `json:"domain"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", apperror.Wrap(apperror.CodeServiceError, "could not decode domain resolution result", err)
	}
	if strings.TrimSpace(result.Domain) == "" {
		return "", apperror.New(apperror.CodeDomainNotFound, "no domain match for the given company names")
	}
	return result.Domain, nil
}

func (c *Client) startJob(ctx context.Context, token, url string, payload map[string]any) (string, error) {
	resp, err := c.postJSON(ctx, token, url, payload)
	if err != nil {
		return "", apperror.Wrap(apperror.CodeServiceError, "provider request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return "", apperror.New(apperror.CodeValidationError, readProviderError(resp.Body))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", apperror.New(apperror.CodeServiceError, "provider error: "+readProviderError(resp.Body))
	}

	var start startResponse
	if err := json.NewDecoder(resp.Body).Decode(&start); err != nil || start.ResultURL == "" {
		return "", apperror.New(apperror.CodeServiceError, "provider returned no result location")
	}
	return start.ResultURL, nil
}

func (c *Client) postJSON(ctx context.Context, token, url string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.client.Do(req)
}

func readProviderError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return "provider returned an error"
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return string(data)
}
