package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketscraper/internal/apperror"
)

func TestFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bbca" {
			t.Errorf("expected path /bbca, got %s", r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("unexpected Accept header: %s", r.Header.Get("Accept"))
		}
		if r.Header.Get("User-Agent") != "Mozilla/5.0" {
			t.Errorf("unexpected User-Agent: %s", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte(`<html><body><h1 class="currentprice">100</h1></body></html>`))
	}))
	defer ts.Close()

	f := NewFetcher(WithClient(ts.Client()), WithBaseURL(ts.URL))

	// The path segment is lower-cased even for upper-case input.
	doc, err := f.Fetch(context.Background(), "BBCA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Find("h1.currentprice").Length() != 1 {
		t.Error("expected parsed document with the price heading")
	}
}

func TestNewFetcher_TimeoutOptions(t *testing.T) {
	f := NewFetcher(WithTimeout(5 * time.Second))
	if f.client.Timeout != 5*time.Second {
		t.Errorf("expected default client with 5s timeout, got %v", f.client.Timeout)
	}

	// A caller-supplied client keeps its own timeout regardless of option
	// order, and is never mutated.
	own := &http.Client{Timeout: 30 * time.Second}
	for _, f := range []*Fetcher{
		NewFetcher(WithClient(own), WithTimeout(5*time.Second)),
		NewFetcher(WithTimeout(5*time.Second), WithClient(own)),
	} {
		if f.client != own {
			t.Error("expected the supplied client to be used")
		}
	}
	if own.Timeout != 30*time.Second {
		t.Errorf("supplied client was mutated: timeout %v", own.Timeout)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	f := NewFetcher(WithClient(ts.Client()), WithBaseURL(ts.URL))

	_, err := f.Fetch(context.Background(), "bbca")
	if err == nil {
		t.Fatal("expected error for HTTP 404")
	}
	if apperror.CodeOf(err) != apperror.Transport {
		t.Errorf("expected TRANSPORT code, got %q", apperror.CodeOf(err))
	}
}

func TestFetch_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close() // nothing is listening anymore

	f := NewFetcher(WithBaseURL(url))

	_, err := f.Fetch(context.Background(), "bbca")
	if err == nil {
		t.Fatal("expected error for refused connection")
	}
	if apperror.CodeOf(err) != apperror.Transport {
		t.Errorf("expected TRANSPORT code, got %q", apperror.CodeOf(err))
	}
}
