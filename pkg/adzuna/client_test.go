package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmatch/pkg/httpapi"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{AppID: "id"})
	assert.Error(t, err)
}

func TestSearchJobsBuildsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/api/jobs/in/search/1", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "id", q.Get("app_id"))
		assert.Equal(t, "key", q.Get("app_key"))
		assert.Equal(t, "Delivery Driver", q.Get("what"))
		assert.False(t, q.Has("what_or"))
		assert.Equal(t, "Mumbai", q.Get("where"))
		assert.Equal(t, "20", q.Get("results_per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1,"results":[{
			"id":"42","title":"Delivery Driver",
			"company":{"display_name":"X Corp"},
			"location":{"display_name":"Mumbai, Maharashtra"},
			"redirect_url":"https://adzuna.example/42",
			"description":"Own scooter",
			"created":"2026-01-02T10:00:00Z",
			"salary_min":18000,"salary_max":25000,
			"unknown_field":true}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	jobs, err := c.SearchJobs(context.Background(), SearchParams{
		What:     "Delivery Driver",
		Location: "Mumbai",
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	got := jobs[0]
	assert.Equal(t, "X Corp", got.CompanyName)
	assert.Equal(t, "Mumbai, Maharashtra", got.Location)
	assert.Equal(t, 25000.0, got.SalaryMax)
	assert.Equal(t, 2026, got.PostedAt.Year())
}

func TestSearchJobsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.SearchJobs(context.Background(), SearchParams{What: "cook"})

	var se *httpapi.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
}

func TestSearchJobsRequiresQuery(t *testing.T) {
	c, err := NewClient(Config{AppID: "id", AppKey: "key"})
	require.NoError(t, err)

	_, err = c.SearchJobs(context.Background(), SearchParams{Location: "Pune"})
	assert.Error(t, err)
}

func TestSearchJobsTransportErrorHidesCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c, err := NewClient(Config{AppID: "SECRETAPPID", AppKey: "SECRETAPPKEY", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.SearchJobs(context.Background(), SearchParams{What: "cook"})

	var te *httpapi.TransportError
	require.ErrorAs(t, err, &te)
	assert.NotContains(t, err.Error(), "SECRETAPPID")
	assert.NotContains(t, err.Error(), "SECRETAPPKEY")
}
