// Package jooble is a minimal client for the Jooble REST API.
package jooble

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/honeycarbs/jobmatch/pkg/httpapi"
)

const defaultBaseURL = "https://in.jooble.org"

// Config defines Jooble API client settings
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client queries the Jooble search endpoint
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// SearchParams describe a job search request
type SearchParams struct {
	Keywords string
	Location string
}

// Job represents a Jooble job posting
type Job struct {
	ID       string
	Title    string
	Company  string
	Location string
	Link     string
	Snippet  string
	Salary   string
	Type     string
	Updated  time.Time
}

type searchRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
}

type searchResponse struct {
	TotalCount int          `json:"totalCount"`
	Jobs       []jobPosting `json:"jobs"`
}

type jobPosting struct {
	ID       json.Number `json:"id"`
	Title    string      `json:"title"`
	Company  string      `json:"company"`
	Location string      `json:"location"`
	Link     string      `json:"link"`
	Snippet  string      `json:"snippet"`
	Salary   string      `json:"salary"`
	Type     string      `json:"type"`
	Updated  string      `json:"updated"`
}

// NewClient instantiates a Jooble API client
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("jooble: api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// SearchJobs posts a single search and returns the first page of jobs
func (c *Client) SearchJobs(ctx context.Context, params SearchParams) ([]Job, error) {
	if c == nil {
		return nil, fmt.Errorf("jooble: client is nil")
	}
	if strings.TrimSpace(params.Keywords) == "" {
		return nil, fmt.Errorf("jooble: keywords are required")
	}

	body, err := json.Marshal(searchRequest{Keywords: params.Keywords, Location: params.Location})
	if err != nil {
		return nil, fmt.Errorf("jooble: encode request: %w", err)
	}

	endpoint := c.baseURL + "/api/" + url.PathEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("jooble: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var payload searchResponse
	if err := httpapi.DoJSON(c.httpClient, req, &payload); err != nil {
		return nil, fmt.Errorf("jooble: %w", err)
	}

	jobs := make([]Job, 0, len(payload.Jobs))
	for _, posting := range payload.Jobs {
		jobs = append(jobs, mapPosting(posting))
	}
	return jobs, nil
}

func mapPosting(p jobPosting) Job {
	job := Job{
		ID:       p.ID.String(),
		Title:    p.Title,
		Company:  p.Company,
		Location: p.Location,
		Link:     p.Link,
		Snippet:  stripTags(p.Snippet),
		Salary:   p.Salary,
		Type:     p.Type,
	}
	if p.Updated != "" {
		if ts, ok := parseUpdated(p.Updated); ok {
			job.Updated = ts
		}
	}
	return job
}

// Jooble reports timestamps without a zone and sometimes with fractional seconds
var updatedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.0000000",
	"2006-01-02T15:04:05",
}

func parseUpdated(s string) (time.Time, bool) {
	for _, layout := range updatedLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// snippets carry <b> highlight markup around matched words
func stripTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>' && inTag:
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
