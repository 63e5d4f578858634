package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// fastRetryConfig keeps test runs quick
func fastRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     2 * time.Millisecond,
	}
}

func TestGETWithRetryRecoversFromTransientFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	resp, err := client.GETWithRetry(context.Background(), "/data", fastRetryConfig())
	if err != nil {
		t.Fatalf("Expected retries to recover, got error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("Expected 3 attempts, got %d", got)
	}
	if resp.String() != `{"ok":true}` {
		t.Errorf("Unexpected body: %q", resp.String())
	}
}

func TestGETReturnsErrorOnHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such ticker", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GET(context.Background(), "/chart/NOPE")
	if err == nil {
		t.Fatal("Expected an error for a 404 response")
	}
	if !strings.Contains(err.Error(), "HTTP 404") {
		t.Errorf("Expected the status code in the error, got: %v", err)
	}
}

func TestGETWithRetryExhaustsAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GETWithRetry(context.Background(), "/data", fastRetryConfig())
	if err == nil {
		t.Fatal("Expected an error after exhausting attempts")
	}
	if !strings.Contains(err.Error(), "all 3 retry attempts failed") {
		t.Errorf("Unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("Expected exactly 3 attempts, got %d", got)
	}
}

func TestGETWithRetryAppliesHeaders(t *testing.T) {
	var gotUA, gotReferer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotReferer = r.Header.Get("Referer")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if _, err := client.GETWithRetry(context.Background(), "/chart", fastRetryConfig(), YahooFinanceHeaders()); err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if !strings.Contains(gotUA, "Mozilla") {
		t.Errorf("Expected a browser User-Agent, got %q", gotUA)
	}
	if gotReferer != "https://finance.yahoo.com/" {
		t.Errorf("Unexpected Referer: %q", gotReferer)
	}
}
