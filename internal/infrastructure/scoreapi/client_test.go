package scoreapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/StNick/squash-team-challenge/internal/platform/logging"
)

func newTestClient(t *testing.T, baseURL string, retries int) *Client {
	t.Helper()
	client, err := New(Config{BaseURL: baseURL, Retries: retries}, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestSubmitScore(t *testing.T) {
	t.Parallel()

	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":{}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0)
	if err := client.SubmitScore(context.Background(), 7, 11, 9); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}
	if gotPath != "/v1/matches/7/score" {
		t.Fatalf("path = %s", gotPath)
	}
	if gotBody != `{"scoreA":11,"scoreB":9}` {
		t.Fatalf("body = %s", gotBody)
	}
}

func TestSubmitScoreRejectionSurfacesMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","error":{"code":409,"message":"score already recorded: match=7"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 3)
	err := client.SubmitScore(context.Background(), 7, 11, 9)
	if err == nil {
		t.Fatal("SubmitScore = nil, want rejection")
	}
	if got := err.Error(); got != "score already recorded: match=7" {
		t.Fatalf("message = %q", got)
	}
}

func TestSubmitScoreRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":{}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 2)
	if err := client.SubmitScore(context.Background(), 7, 11, 9); err != nil {
		t.Fatalf("SubmitScore after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestSuggestedHandicap(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/matches/3/suggested-handicap" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","data":{"suggestedHandicap":15,"levelA":70,"levelB":40}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0)
	got, err := client.SuggestedHandicap(context.Background(), 3)
	if err != nil {
		t.Fatalf("SuggestedHandicap: %v", err)
	}
	if got.Suggested != 15 || got.LevelA != 70 || got.LevelB != 40 {
		t.Fatalf("suggestion = %+v", got)
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{BaseURL: "ftp://nope"}, logging.NewNop()); err == nil {
		t.Fatal("ftp base url accepted")
	}
	if _, err := New(Config{}, logging.NewNop()); err == nil {
		t.Fatal("empty base url accepted")
	}
}
