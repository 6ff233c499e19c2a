package serpapi

import (
	"context"
	"strings"

	"github.com/honeycarbs/jobmatch/internal/domain"
	jobdomain "github.com/honeycarbs/jobmatch/internal/domain/job"
	"github.com/honeycarbs/jobmatch/pkg/serpapi"
)

// Name is the provider identifier reported in results
const Name = "serpapi"

const queryKeywords = 3

type searchClient interface {
	SearchJobs(ctx context.Context, params serpapi.SearchParams) ([]serpapi.Job, error)
}

// Provider implements job.Provider on Google Jobs via SerpAPI
type Provider struct {
	client searchClient
}

var _ jobdomain.Provider = (*Provider)(nil)

// NewProvider builds a SerpAPI provider; a nil client yields an unconfigured provider
func NewProvider(client searchClient) *Provider {
	return &Provider{client: client}
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return Name
}

// Search runs one google_jobs query built from the leading keywords
func (p *Provider) Search(ctx context.Context, query domain.SearchQuery) ([]domain.Listing, error) {
	if p == nil || p.client == nil {
		return nil, jobdomain.ErrProviderUnconfigured
	}

	q := query.Text(queryKeywords)
	if query.Remote {
		q += " remote"
	}

	jobs, err := p.client.SearchJobs(ctx, serpapi.SearchParams{Query: q, Location: query.Location})
	if err != nil {
		return nil, jobdomain.WrapProviderError(Name, err)
	}

	out := make([]domain.Listing, 0, len(jobs))
	for _, j := range jobs {
		l := domain.Listing{
			Title:       j.Title,
			Company:     j.CompanyName,
			Location:    j.Location,
			Salary:      j.Salary,
			Description: j.Description,
			URL:         j.Link(),
			Source:      Name,
		}
		if strings.TrimSpace(l.Location) == "" {
			l.Location = query.Location
		}
		if j.WorkFromHome && !strings.Contains(strings.ToLower(l.Location), "remote") {
			l.Location += " (remote)"
		}
		if !domain.Meaningful(l.Salary) {
			l.Salary = domain.DefaultSalary
		}
		out = append(out, l)
	}
	return out, nil
}
