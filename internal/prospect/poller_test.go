package prospect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/advokit/outreach-api/internal/apperror"
)

func newTestPoller(maxAttempts int) *Poller {
	p := NewPoller(&http.Client{Timeout: 5 * time.Second}, maxAttempts)
	p.backoffBase = time.Millisecond
	return p
}

func TestPoller_ReturnsOnFirst200(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Header.Get("Authorization") != "Bearer token-1" {
			t.Errorf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{"status":"done"}`))
	}))
	defer srv.Close()

	body, err := newTestPoller(5).Poll(context.Background(), srv.URL, "token-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"status":"done"}` {
		t.Fatalf("unexpected body: %s", body)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected exactly 1 call, got %d", calls)
	}
}

func TestPoller_SucceedsOnAttemptK(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		w.Write([]byte(`{"ready":true}`))
	}))
	defer srv.Close()

	body, err := newTestPoller(5).Poll(context.Background(), srv.URL, "t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"ready":true}` {
		t.Fatalf("unexpected body: %s", body)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected exactly 3 calls, got %d", calls)
	}
}

func TestPoller_TimesOutAfterMaxAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	_, err := newTestPoller(4).Poll(context.Background(), srv.URL, "t")
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if apperror.CodeOf(err) != apperror.CodeSearchTimeout {
		t.Fatalf("expected SEARCH_TIMEOUT, got %s", apperror.CodeOf(err))
	}
	if atomic.LoadInt32(&calls) != 4 {
		t.Fatalf("expected exactly 4 calls, got %d", calls)
	}
}

func TestPoller_NoStatusDistinction(t *testing.T) {
	// 4xx and 5xx are both "not ready yet"; the poller keeps retrying.
	statuses := []int{http.StatusInternalServerError, http.StatusForbidden, http.StatusOK}
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i := atomic.AddInt32(&calls, 1) - 1
		w.WriteHeader(statuses[i])
		if statuses[i] == http.StatusOK {
			w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	if _, err := newTestPoller(5).Poll(context.Background(), srv.URL, "t"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestPoller_ExponentialBackoff(t *testing.T) {
	var stamps []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stamps = append(stamps, time.Now())
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	p := NewPoller(nil, 4)
	p.backoffBase = 20 * time.Millisecond

	if _, err := p.Poll(context.Background(), srv.URL, "t"); err == nil {
		t.Fatalf("expected timeout error")
	}
	if len(stamps) != 4 {
		t.Fatalf("expected 4 attempts, got %d", len(stamps))
	}

	// Waits should roughly double: 20ms, 40ms, 80ms.
	for i, want := range []time.Duration{20, 40, 80} {
		gap := stamps[i+1].Sub(stamps[i])
		if gap < want*time.Millisecond {
			t.Fatalf("gap %d too short: %s < %dms", i, gap, want)
		}
	}
}

func TestPoller_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPoller(nil, 5)
	p.backoffBase = time.Hour

	if _, err := p.Poll(ctx, srv.URL, "t"); err == nil {
		t.Fatalf("expected context error")
	}
}
