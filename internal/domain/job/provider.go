package job

import (
	"context"

	"github.com/honeycarbs/jobmatch/internal/domain"
)

// Provider represents an external job search API (Adzuna, Jooble, Google Jobs...)
type Provider interface {
	// e.g. "adzuna" or "jooble"
	Name() string

	// Search returns the provider's listings for a query, mapped to domain.Listing.
	// Implementations must honor ctx cancellation.
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.Listing, error)
}
