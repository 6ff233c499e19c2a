package adzuna

import (
	"context"
	"strconv"
	"strings"

	"github.com/honeycarbs/jobmatch/internal/domain"
	jobdomain "github.com/honeycarbs/jobmatch/internal/domain/job"
	"github.com/honeycarbs/jobmatch/pkg/adzuna"
)

// Name is the provider identifier reported in results
const Name = "adzuna"

// searchClient describes the subset of the Adzuna client used by the provider.
type searchClient interface {
	SearchJobs(ctx context.Context, params adzuna.SearchParams) ([]adzuna.Job, error)
}

// Provider implements job.Provider using Adzuna API
type Provider struct {
	client   searchClient
	currency string
}

var _ jobdomain.Provider = (*Provider)(nil)

// NewProvider builds an Adzuna provider; a nil client yields an unconfigured provider
func NewProvider(client searchClient, country string) *Provider {
	return &Provider{client: client, currency: currencySymbol(country)}
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return Name
}

// Search queries Adzuna for the primary keyword only. Adzuna ANDs what with what_or, so
// adding skills would narrow recall; the scorer ranks on the remaining keywords.
func (p *Provider) Search(ctx context.Context, query domain.SearchQuery) ([]domain.Listing, error) {
	if p == nil || p.client == nil {
		return nil, jobdomain.ErrProviderUnconfigured
	}

	jobs, err := p.client.SearchJobs(ctx, adzuna.SearchParams{
		What:     query.Primary(),
		Location: query.Location,
	})
	if err != nil {
		return nil, jobdomain.WrapProviderError(Name, err)
	}

	out := make([]domain.Listing, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, p.toListing(j, query))
	}
	return out, nil
}

func (p *Provider) toListing(j adzuna.Job, query domain.SearchQuery) domain.Listing {
	l := domain.Listing{
		Title:       j.Title,
		Company:     j.CompanyName,
		Location:    j.Location,
		Salary:      formatSalary(p.currency, j.SalaryMin, j.SalaryMax),
		Description: j.Description,
		URL:         j.URL,
		Source:      Name,
	}
	if strings.TrimSpace(l.Location) == "" {
		l.Location = query.Location
	}
	if !j.PostedAt.IsZero() {
		posted := j.PostedAt
		l.PostedAt = &posted
	}
	return l
}

func currencySymbol(country string) string {
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "", "in":
		return "₹"
	case "gb":
		return "£"
	case "us", "ca", "au", "nz", "sg":
		return "$"
	case "de", "fr", "nl", "it", "es", "at", "be":
		return "€"
	default:
		return ""
	}
}

// formatSalary renders the advertised band, or a single figure when only one bound is known
func formatSalary(currency string, lo, hi float64) string {
	switch {
	case lo <= 0 && hi <= 0:
		return domain.DefaultSalary
	case lo <= 0 || lo == hi:
		return currency + groupThousands(hi)
	case hi <= 0:
		return currency + groupThousands(lo)
	default:
		return currency + groupThousands(lo) + " - " + currency + groupThousands(hi)
	}
}

func groupThousands(v float64) string {
	digits := strconv.FormatInt(int64(v+0.5), 10)
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
