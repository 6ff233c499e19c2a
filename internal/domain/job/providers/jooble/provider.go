package jooble

import (
	"context"
	"strings"

	"github.com/honeycarbs/jobmatch/internal/domain"
	jobdomain "github.com/honeycarbs/jobmatch/internal/domain/job"
	"github.com/honeycarbs/jobmatch/pkg/jooble"
)

// Name is the provider identifier reported in results
const Name = "jooble"

// keywords sent in the single Jooble request
const queryKeywords = 3

type searchClient interface {
	SearchJobs(ctx context.Context, params jooble.SearchParams) ([]jooble.Job, error)
}

// Provider implements job.Provider using Jooble API
type Provider struct {
	client searchClient
}

var _ jobdomain.Provider = (*Provider)(nil)

// NewProvider builds a Jooble provider; a nil client yields an unconfigured provider
func NewProvider(client searchClient) *Provider {
	return &Provider{client: client}
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return Name
}

// Search posts the leading keywords to Jooble
func (p *Provider) Search(ctx context.Context, query domain.SearchQuery) ([]domain.Listing, error) {
	if p == nil || p.client == nil {
		return nil, jobdomain.ErrProviderUnconfigured
	}

	keywords := query.Text(queryKeywords)
	if query.Remote {
		keywords += " remote"
	}

	jobs, err := p.client.SearchJobs(ctx, jooble.SearchParams{Keywords: keywords, Location: query.Location})
	if err != nil {
		return nil, jobdomain.WrapProviderError(Name, err)
	}

	out := make([]domain.Listing, 0, len(jobs))
	for _, j := range jobs {
		l := domain.Listing{
			Title:       j.Title,
			Company:     j.Company,
			Location:    j.Location,
			Salary:      j.Salary,
			Description: j.Snippet,
			URL:         j.Link,
			Source:      Name,
		}
		if strings.TrimSpace(l.Location) == "" {
			l.Location = query.Location
		}
		if !domain.Meaningful(l.Salary) {
			l.Salary = domain.DefaultSalary
		}
		if !j.Updated.IsZero() {
			updated := j.Updated
			l.PostedAt = &updated
		}
		out = append(out, l)
	}
	return out, nil
}
