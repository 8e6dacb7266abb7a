package prospect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/advokit/outreach-api/internal/apperror"
)

const defaultMaxAttempts = 5

// Poller retrieves asynchronous provider job results. The provider only
// signals readiness through the status code: 200 means the body holds the
// result, anything else means not ready yet. Retries back off
// exponentially (1s, 2s, 4s, ...) with no jitter.
type Poller struct {
	client      *http.Client
	maxAttempts int
	backoffBase time.Duration
}

// NewPoller builds a poller. A nil client gets a 15s-timeout default;
// maxAttempts <= 0 falls back to 5.
func NewPoller(client *http.Client, maxAttempts int) *Poller {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Poller{client: client, maxAttempts: maxAttempts, backoffBase: time.Second}
}

// Poll issues GETs against resultURL with bearer auth until the provider
// answers 200, returning the JSON body. Transient and permanent provider
// errors are not distinguished; every non-200 counts as "not ready".
// Exhausting the attempt budget yields a SEARCH_TIMEOUT tagged error.
func (p *Poller) Poll(ctx context.Context, resultURL, authToken string) (json.RawMessage, error) {
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if attempt > 0 {
			wait := p.backoffBase << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		body, ok, err := p.pollOnce(ctx, resultURL, authToken)
		if err != nil {
			return nil, err
		}
		if ok {
			return body, nil
		}
	}

	return nil, apperror.New(apperror.CodeSearchTimeout,
		fmt.Sprintf("provider job did not complete within %d attempts", p.maxAttempts))
}

func (p *Poller) pollOnce(ctx context.Context, resultURL, authToken string) (json.RawMessage, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resultURL, nil)
	if err != nil {
		return nil, false, apperror.Wrap(apperror.CodeServiceError, "invalid result location", err)
	}
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		// Network hiccups count as not ready, same as a non-200.
		return nil, false, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, false, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, apperror.Wrap(apperror.CodeServiceError, "failed to read provider result", err)
	}
	if !json.Valid(body) {
		return nil, false, apperror.New(apperror.CodeServiceError, "provider returned a malformed result body")
	}
	return json.RawMessage(body), true, nil
}
