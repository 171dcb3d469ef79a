package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsGate_DisallowedPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	}))
	defer server.Close()

	gate := NewRobotsGate("test-agent/1.0", 5*time.Second, nil)

	if !gate.Allowed(context.Background(), server.URL+"/public/page") {
		t.Error("Expected public path to be allowed")
	}
	if gate.Allowed(context.Background(), server.URL+"/private/page") {
		t.Error("Expected private path to be disallowed")
	}
}

func TestRobotsGate_FailsOpen(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	gate := NewRobotsGate("test-agent/1.0", 5*time.Second, nil)
	if !gate.Allowed(context.Background(), server.URL+"/anything") {
		t.Error("Expected gate to fail open when robots.txt is unavailable")
	}
}

func TestRobotsGate_CachesPerHost(t *testing.T) {
	var fetches int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&fetches, 1)
		_, _ = w.Write([]byte("User-agent: *\nAllow: /\n"))
	}))
	defer server.Close()

	gate := NewRobotsGate("test-agent/1.0", 5*time.Second, nil)
	for i := 0; i < 3; i++ {
		if !gate.Allowed(context.Background(), server.URL+"/page") {
			t.Fatal("Expected allowed")
		}
	}
	if n := atomic.LoadInt32(&fetches); n != 1 {
		t.Errorf("Expected robots.txt fetched once, got %d", n)
	}
}

func TestRobotsGate_InvalidURL(t *testing.T) {
	gate := NewRobotsGate("test-agent/1.0", 5*time.Second, nil)
	if gate.Allowed(context.Background(), "not a url") {
		t.Error("Expected invalid URL to be refused")
	}
}
