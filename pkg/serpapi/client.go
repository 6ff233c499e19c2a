// Package serpapi queries Google Jobs results through SerpAPI.
package serpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/honeycarbs/jobmatch/pkg/httpapi"
)

const (
	defaultBaseURL = "https://serpapi.com"
	engine         = "google_jobs"
)

// Config defines SerpAPI client settings
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client calls the SerpAPI search endpoint with the google_jobs engine
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// SearchParams describe a job search request
type SearchParams struct {
	Query    string
	Location string
}

// Job represents a Google Jobs result
type Job struct {
	ID           string
	Title        string
	CompanyName  string
	Location     string
	Via          string
	Description  string
	ApplyLink    string
	ShareLink    string
	Salary       string
	PostedAt     string // relative, e.g. "3 days ago"
	ScheduleType string
	WorkFromHome bool
}

// Link returns the first apply option, falling back to the share link
func (j Job) Link() string {
	if j.ApplyLink != "" {
		return j.ApplyLink
	}
	return j.ShareLink
}

type searchResponse struct {
	Error       string       `json:"error"`
	JobsResults []jobsResult `json:"jobs_results"`
}

type jobsResult struct {
	JobID              string             `json:"job_id"`
	Title              string             `json:"title"`
	CompanyName        string             `json:"company_name"`
	Location           string             `json:"location"`
	Via                string             `json:"via"`
	Description        string             `json:"description"`
	ShareLink          string             `json:"share_link"`
	ApplyOptions       []applyOption      `json:"apply_options"`
	DetectedExtensions detectedExtensions `json:"detected_extensions"`
}

type applyOption struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

type detectedExtensions struct {
	PostedAt     string `json:"posted_at"`
	ScheduleType string `json:"schedule_type"`
	Salary       string `json:"salary"`
	WorkFromHome bool   `json:"work_from_home"`
}

// NewClient instantiates a SerpAPI client
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("serpapi: api key is required")
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

// SearchJobs fetches the first page of Google Jobs results
func (c *Client) SearchJobs(ctx context.Context, params SearchParams) ([]Job, error) {
	if c == nil {
		return nil, fmt.Errorf("serpapi: client is nil")
	}
	if strings.TrimSpace(params.Query) == "" {
		return nil, fmt.Errorf("serpapi: query is required")
	}

	values := url.Values{}
	values.Set("engine", engine)
	values.Set("q", params.Query)
	values.Set("api_key", c.apiKey)
	if params.Location != "" {
		values.Set("location", params.Location)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: build request: %w", err)
	}

	var payload searchResponse
	if err := httpapi.DoJSON(c.httpClient, req, &payload); err != nil {
		return nil, fmt.Errorf("serpapi: %w", err)
	}
	// "Google hasn't returned any results" arrives as a 200 with an error field
	if payload.Error != "" && len(payload.JobsResults) == 0 {
		return []Job{}, nil
	}

	jobs := make([]Job, 0, len(payload.JobsResults))
	for _, r := range payload.JobsResults {
		jobs = append(jobs, mapResult(r))
	}
	return jobs, nil
}

func mapResult(r jobsResult) Job {
	job := Job{
		ID:           r.JobID,
		Title:        r.Title,
		CompanyName:  r.CompanyName,
		Location:     r.Location,
		Via:          r.Via,
		Description:  r.Description,
		ShareLink:    r.ShareLink,
		Salary:       r.DetectedExtensions.Salary,
		PostedAt:     r.DetectedExtensions.PostedAt,
		ScheduleType: r.DetectedExtensions.ScheduleType,
		WorkFromHome: r.DetectedExtensions.WorkFromHome,
	}
	if len(r.ApplyOptions) > 0 {
		job.ApplyLink = r.ApplyOptions[0].Link
	}
	return job
}
