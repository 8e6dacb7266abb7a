// Package analytics posts product events to an external capture endpoint.
// Delivery is fire-and-forget: failures are logged and swallowed, and a
// capture call never blocks or fails the caller.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Sink receives product events.
type Sink interface {
	Capture(userID, event string, properties map[string]any)
}

// Client posts events to a capture endpoint. The zero endpoint makes it a
// no-op, so wiring stays unconditional.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewClient builds an analytics client. An empty endpoint disables capture.
func NewClient(endpoint, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{endpoint: endpoint, apiKey: apiKey, client: httpClient}
}

type captureEvent struct {
	APIKey     string         `json:"api_key,omitempty"`
	DistinctID string         `json:"distinct_id"`
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Capture sends the event in the background.
func (c *Client) Capture(userID, event string, properties map[string]any) {
	if c.endpoint == "" {
		return
	}

	payload := captureEvent{
		APIKey:     c.apiKey,
		DistinctID: userID,
		Event:      event,
		Properties: properties,
		Timestamp:  time.Now().UTC(),
	}

	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			log.Printf("analytics marshal failed event=%s err=%v", event, err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			log.Printf("analytics request failed event=%s err=%v", event, err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			log.Printf("analytics capture failed event=%s err=%v", event, err)
			return
		}
		resp.Body.Close()
	}()
}

var _ Sink = (*Client)(nil)

// Nop discards all events. Useful default for tests.
type Nop struct{}

// Capture implements Sink.
func (Nop) Capture(string, string, map[string]any) {}
