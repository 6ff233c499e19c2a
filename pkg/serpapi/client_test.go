package serpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmatch/pkg/httpapi"
)

func TestSearchJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "google_jobs", q.Get("engine"))
		assert.Equal(t, "cook", q.Get("q"))
		assert.Equal(t, "Delhi", q.Get("location"))
		assert.Equal(t, "k", q.Get("api_key"))

		_, _ = w.Write([]byte(`{"jobs_results":[
			{"title":"Cook","company_name":"Dhaba","location":"Delhi",
			 "apply_options":[{"title":"Apply","link":"https://apply.example/1"}],
			 "share_link":"https://share.example/1",
			 "detected_extensions":{"salary":"₹15K–₹20K a month","posted_at":"2 days ago"}},
			{"title":"Chef","company_name":"Hotel","location":"Delhi",
			 "share_link":"https://share.example/2"}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	jobs, err := c.SearchJobs(context.Background(), SearchParams{Query: "cook", Location: "Delhi"})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "https://apply.example/1", jobs[0].Link())
	assert.Equal(t, "₹15K–₹20K a month", jobs[0].Salary)
	assert.Equal(t, "https://share.example/2", jobs[1].Link())
	assert.Empty(t, jobs[1].Salary)
}

func TestSearchJobsNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Google hasn't returned any results for this query."}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	jobs, err := c.SearchJobs(context.Background(), SearchParams{Query: "astronaut"})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestSearchJobsTransportErrorHidesKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c, err := NewClient(Config{APIKey: "SECRETSERPKEY", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.SearchJobs(context.Background(), SearchParams{Query: "cook"})

	var te *httpapi.TransportError
	require.ErrorAs(t, err, &te)
	assert.NotContains(t, err.Error(), "SECRETSERPKEY")
}
