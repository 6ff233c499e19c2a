package adzuna

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/honeycarbs/jobmatch/pkg/httpapi"
)

const (
	defaultBaseURL  = "https://api.adzuna.com"
	defaultCountry  = "in"
	defaultPageSize = 20
)

// NewClient instantiates an Adzuna API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.AppID == "" || cfg.AppKey == "" {
		return nil, fmt.Errorf("adzuna: app_id and app_key are required")
	}

	country := strings.ToLower(strings.TrimSpace(cfg.Country))
	if country == "" {
		country = defaultCountry
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		country:    country,
		baseURL:    baseURL,
		httpClient: httpClient,
		pageSize:   pageSize,
	}, nil
}

// SearchJobs queries the first page of Adzuna results
func (c *Client) SearchJobs(ctx context.Context, params SearchParams) ([]Job, error) {
	if c == nil {
		return nil, fmt.Errorf("adzuna: client is nil")
	}

	u, err := c.buildSearchURL(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("adzuna: build request: %w", err)
	}

	var payload jobSearchResponse
	if err := httpapi.DoJSON(c.httpClient, req, &payload); err != nil {
		return nil, fmt.Errorf("adzuna: %w", err)
	}

	jobs := make([]Job, 0, len(payload.Results))
	for _, posting := range payload.Results {
		jobs = append(jobs, mapPosting(posting))
	}

	return jobs, nil
}

func (c *Client) buildSearchURL(params SearchParams) (string, error) {
	if strings.TrimSpace(params.What) == "" {
		return "", fmt.Errorf("adzuna: query is required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("adzuna: parse base url: %w", err)
	}

	u.Path = path.Join(u.Path, "v1", "api", "jobs", c.country, "search", "1")

	values := url.Values{}
	values.Set("app_id", c.appID)
	values.Set("app_key", c.appKey)
	values.Set("results_per_page", fmt.Sprint(c.pageSize))
	values.Set("content-type", "application/json")

	values.Set("what", params.What)
	if params.Location != "" {
		values.Set("where", params.Location)
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

func mapPosting(posting jobPosting) Job {
	job := Job{
		ID:           posting.ID,
		Title:        posting.Title,
		CompanyName:  posting.Company.DisplayName,
		Location:     posting.Location.DisplayName,
		URL:          posting.RedirectURL,
		Description:  posting.Description,
		ContractTime: posting.Contract,
		SalaryMin:    posting.SalaryMin,
		SalaryMax:    posting.SalaryMax,
	}

	if posting.Created != "" {
		if ts, err := time.Parse(time.RFC3339, posting.Created); err == nil {
			job.PostedAt = ts
		}
	}

	return job
}
