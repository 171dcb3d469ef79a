package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/claimcheck/internal/model"
)

func testFetchConfig() model.FetchConfig {
	return model.FetchConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "test-agent/1.0",
		MaxBodyBytes: 2_000_000,
	}
}

func TestFetcher_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent/1.0" {
			t.Errorf("Unexpected User-Agent: %s", r.Header.Get("User-Agent"))
		}
		if r.Header.Get("Accept") == "" {
			t.Error("Expected Accept header")
		}
		_, _ = w.Write([]byte("<html><body>page</body></html>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(testFetchConfig(), nil, nil)
	body, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if body != "<html><body>page</body></html>" {
		t.Errorf("Unexpected body: %q", body)
	}
}

func TestFetcher_Fetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(testFetchConfig(), nil, nil)
	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 404")
	}
	if !strings.Contains(err.Error(), "unexpected status: 404") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestFetcher_Fetch_RedirectCap(t *testing.T) {
	var server *httptest.Server
	hops := 0
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hops++
		http.Redirect(w, r, fmt.Sprintf("%s/hop%d", server.URL, hops), http.StatusFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(testFetchConfig(), nil, nil)
	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error after redirect cap")
	}
	if !strings.Contains(err.Error(), "redirects") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestFetcher_Fetch_BodyCapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	cfg := testFetchConfig()
	cfg.MaxBodyBytes = 100
	fetcher := NewFetcher(cfg, nil, nil)

	body, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(body) != 100 {
		t.Errorf("Expected body capped at 100 bytes, got %d", len(body))
	}
}

func TestExtractor_Extract_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><script>tracking()</script></head><body><p>The Eiffel Tower is 330 metres tall.</p></body></html>`))
	}))
	defer server.Close()

	extractor := NewExtractor(NewFetcher(testFetchConfig(), nil, nil), 12000)
	content, ok := extractor.Extract(context.Background(), server.URL)
	if !ok {
		t.Fatalf("Expected ok, got error text: %s", content)
	}
	if content != "The Eiffel Tower is 330 metres tall." {
		t.Errorf("Unexpected content: %q", content)
	}
}

func TestExtractor_Extract_FetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	extractor := NewExtractor(NewFetcher(testFetchConfig(), nil, nil), 12000)
	content, ok := extractor.Extract(context.Background(), server.URL)
	if ok {
		t.Fatal("Expected extraction failure")
	}
	if !strings.HasPrefix(content, "Error extracting content:") {
		t.Errorf("Expected error description, got %q", content)
	}
}

func TestExtractor_Extract_Capped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, "<p>%s</p>", strings.Repeat("a", 500))
	}))
	defer server.Close()

	extractor := NewExtractor(NewFetcher(testFetchConfig(), nil, nil), 100)
	content, ok := extractor.Extract(context.Background(), server.URL)
	if !ok {
		t.Fatalf("Expected ok, got error text: %s", content)
	}
	if len(content) != 100 {
		t.Errorf("Expected content capped at 100, got %d", len(content))
	}
}
