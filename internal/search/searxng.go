// Package search implements the SearxNG collaborator boundary: one query in,
// an unranked list of candidate URLs out.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
)

const maxErrorBodyBytes = 8 * 1024

// Client queries a SearxNG instance.
type Client struct {
	baseURL    string
	engines    string
	language   string
	httpClient *http.Client
}

type searchAPIResponse struct {
	// Pointer so an absent results field is distinguishable from an empty
	// list: absent means the instance misbehaved and the request must fail.
	Results *[]searchAPIResult `json:"results"`
}

type searchAPIResult struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// NewClient creates a search client. A nil httpClient falls back to a client
// with the configured timeout.
func NewClient(cfg model.SearchConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/"),
		engines:    cfg.Engines,
		language:   cfg.Language,
		httpClient: httpClient,
	}
}

// Search runs one query and returns the results in engine order. Any
// non-success status or malformed payload is an error; the caller decides
// whether that is fatal.
func (c *Client) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	endpoint, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("parse search endpoint: %w", err)
	}

	params := endpoint.Query()
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("engines", c.engines)
	params.Set("language", c.language)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request search engine: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var parsed searchAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if parsed.Results == nil {
		return nil, fmt.Errorf("no results field in search API response")
	}

	results := make([]model.SearchResult, 0, len(*parsed.Results))
	for _, item := range *parsed.Results {
		rawURL := strings.TrimSpace(item.URL)
		if rawURL == "" {
			continue
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			title = rawURL
		}
		results = append(results, model.SearchResult{URL: rawURL, Title: title})
	}

	return results, nil
}
