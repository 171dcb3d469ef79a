package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/ppiankov/claimcheck/internal/cache"
)

const (
	robotsTTL      = 1 * time.Hour
	robotsMaxBytes = 512 * 1024
)

// RobotsGate checks robots.txt compliance before page fetches. Fetched
// robots.txt bodies are cached per host with a TTL so repeated requests to
// the same site do not hammer its robots endpoint.
type RobotsGate struct {
	cache      cache.Cache
	httpClient *http.Client
	userAgent  string
}

// NewRobotsGate creates a robots.txt gate. A nil store falls back to an
// in-memory cache.
func NewRobotsGate(userAgent string, timeout time.Duration, store cache.Cache) *RobotsGate {
	if store == nil {
		store = cache.NewMemoryCache(robotsTTL, 10*time.Minute)
	}
	return &RobotsGate{
		cache:      store,
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Allowed reports whether the URL may be fetched according to the host's
// robots.txt. When robots.txt itself cannot be fetched the URL is allowed;
// the gate fails open.
func (g *RobotsGate) Allowed(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}

	body, err := g.robotsBody(ctx, parsed)
	if err != nil {
		return true
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return true
	}
	return data.TestAgent(parsed.Path, g.userAgent)
}

func (g *RobotsGate) robotsBody(ctx context.Context, pageURL *url.URL) ([]byte, error) {
	key := cache.Key(pageURL.Scheme + "://" + pageURL.Host + "/robots.txt")
	if body, found := g.cache.Get(key); found {
		return body, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", pageURL.Scheme, pageURL.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("robots.txt status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, robotsMaxBytes))
	if err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}

	_ = g.cache.Set(key, body, robotsTTL)
	return body, nil
}
