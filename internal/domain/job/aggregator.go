package job

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/honeycarbs/jobmatch/internal/domain"
	"github.com/honeycarbs/jobmatch/pkg/logging"
)

// Config bounds a single search
type Config struct {
	PerRequestTimeout time.Duration
	OverallTimeout    time.Duration
	MaxResults        int
	MinScore          int
	DescriptionLimit  int
	MaxKeywords       int
	DefaultLocation   string
}

// DefaultConfig mirrors the defaults of the server configuration
func DefaultConfig() Config {
	return Config{
		PerRequestTimeout: 10 * time.Second,
		OverallTimeout:    15 * time.Second,
		MaxResults:        50,
		MinScore:          0,
		DescriptionLimit:  300,
		MaxKeywords:       8,
		DefaultLocation:   "India",
	}
}

// Validate checks that the bounds are usable
func (c Config) Validate() error {
	switch {
	case c.PerRequestTimeout <= 0:
		return fmt.Errorf("job.Config: per request timeout must be positive")
	case c.OverallTimeout <= 0:
		return fmt.Errorf("job.Config: overall timeout must be positive")
	case c.MaxResults <= 0:
		return fmt.Errorf("job.Config: max results must be positive")
	case c.MinScore < 0 || c.MinScore > domain.MaxScore:
		return fmt.Errorf("job.Config: min score must be within [0, %d]", domain.MaxScore)
	}
	return nil
}

// SearchResult is the ranked output of one search
type SearchResult struct {
	SearchID        string
	Listings        []domain.ScoredListing
	ProvidersUsed   []string
	ProvidersFailed []string
	Outcomes        []ProviderOutcome
	SearchedAt      time.Time
}

// AllFailed reports whether providers were configured but none succeeded
func (r SearchResult) AllFailed() bool {
	return len(r.Outcomes) > 0 && len(r.ProvidersUsed) == 0
}

// Diagnostics returns the per-provider report in provider order
func (r SearchResult) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		out = append(out, o.Diagnostic())
	}
	return out
}

// Searcher is the engine entry point used by the transport layers
type Searcher interface {
	Search(ctx context.Context, profile domain.CandidateProfile) (SearchResult, error)
	Providers() []string
}

// Option configures Aggregator
type Option func(*options)

type options struct {
	providers []Provider
	cfg       Config
	clock     func() time.Time
	logger    *logging.Logger
}

// WithProviders sets job providers, queried in the given order
func WithProviders(providers ...Provider) Option {
	return func(o *options) {
		o.providers = providers
	}
}

// WithConfig sets search bounds
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Aggregator fans a search out to every provider and ranks the merged result.
// It keeps no state between searches.
type Aggregator struct {
	providers []Provider
	cfg       Config
	clock     func() time.Time
	logger    *logging.Logger
}

var _ Searcher = (*Aggregator)(nil)

// NewAggregator builds an Aggregator from options
func NewAggregator(opts ...Option) (*Aggregator, error) {
	o := &options{
		cfg:   DefaultConfig(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	for i, p := range o.providers {
		if p == nil {
			return nil, fmt.Errorf("job.Aggregator: provider %d is nil", i)
		}
	}

	return &Aggregator{
		providers: append([]Provider(nil), o.providers...),
		cfg:       o.cfg,
		clock:     o.clock,
		logger:    o.logger,
	}, nil
}

// NewAggregatorWithDeps creates an Aggregator with direct dependencies (Wire-compatible)
func NewAggregatorWithDeps(providers []Provider, cfg Config, logger *logging.Logger) (*Aggregator, error) {
	return NewAggregator(WithProviders(providers...), WithConfig(cfg), WithLogger(logger))
}

// Providers returns the configured provider names in query order
func (a *Aggregator) Providers() []string {
	names := make([]string, 0, len(a.providers))
	for _, p := range a.providers {
		names = append(names, p.Name())
	}
	return names
}

// Search queries all providers concurrently and returns the deduplicated, ranked listings.
// Provider failures never fail the search; only an invalid profile or a cancelled ctx do.
func (a *Aggregator) Search(ctx context.Context, profile domain.CandidateProfile) (SearchResult, error) {
	start := a.clock()
	result := SearchResult{
		SearchID:        uuid.NewString(),
		Listings:        []domain.ScoredListing{},
		ProvidersUsed:   []string{},
		ProvidersFailed: []string{},
		SearchedAt:      start,
	}
	log := a.logger.With("search_id", result.SearchID)

	if err := ValidateProfile(profile); err != nil {
		return result, err
	}

	query := BuildQuery(profile, a.cfg.MaxKeywords, a.cfg.DefaultLocation)
	log.Debug("search started", "keywords", query.Keywords, "location", query.Location, "providers", len(a.providers))

	if len(a.providers) == 0 {
		log.Info("search skipped, no providers configured")
		return result, nil
	}

	result.Outcomes = a.fanOut(ctx, query)
	if errors.Is(ctx.Err(), context.Canceled) {
		return result, ctx.Err()
	}

	var merged []domain.Listing
	for _, o := range result.Outcomes {
		switch o.State {
		case OutcomeSucceeded:
			result.ProvidersUsed = append(result.ProvidersUsed, o.Provider)
			merged = append(merged, NormalizeAll(o.Listings, o.Provider, a.cfg.DescriptionLimit)...)
			log.Debug("provider answered", "provider", o.Provider, "listings", len(o.Listings), "elapsed", o.Elapsed.String())
		case OutcomeUnconfigured:
			result.ProvidersFailed = append(result.ProvidersFailed, o.Provider)
			log.Debug("provider skipped", "provider", o.Provider, "reason", o.Err)
		default:
			result.ProvidersFailed = append(result.ProvidersFailed, o.Provider)
			log.Warn("provider failed", "provider", o.Provider, "state", o.State.String(), "err", o.Err, "elapsed", o.Elapsed.String())
		}
	}

	unique := Dedupe(merged)
	result.Listings = Rank(unique, profile, a.cfg.MinScore, a.cfg.MaxResults)

	log.Info("search completed",
		"providers_used", result.ProvidersUsed,
		"providers_failed", result.ProvidersFailed,
		"fetched", len(merged),
		"unique", len(unique),
		"returned", len(result.Listings),
		"elapsed", a.clock().Sub(start).String(),
	)

	return result, nil
}

// fanOut runs every provider in its own goroutine. Each goroutine owns one slot of the
// returned slice, and every Fetch returns by its deadline, so Wait is bounded by
// OverallTimeout.
func (a *Aggregator) fanOut(ctx context.Context, query domain.SearchQuery) []ProviderOutcome {
	searchCtx, cancel := context.WithTimeout(ctx, a.cfg.OverallTimeout)
	defer cancel()

	outcomes := make([]ProviderOutcome, len(a.providers))
	var g errgroup.Group
	for i, p := range a.providers {
		g.Go(func() error {
			outcomes[i] = Fetch(searchCtx, p, query, a.cfg.PerRequestTimeout)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// Rank scores listings, drops those under minScore and returns at most maxResults,
// ordered by score descending with ties kept in input order.
func Rank(listings []domain.Listing, profile domain.CandidateProfile, minScore, maxResults int) []domain.ScoredListing {
	scorer := NewScorer(profile)
	scored := make([]domain.ScoredListing, 0, len(listings))
	for _, l := range listings {
		s := scorer.Score(l)
		if s < minScore {
			continue
		}
		scored = append(scored, domain.ScoredListing{Listing: l, RelevanceScore: s})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	if maxResults > 0 && len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}
