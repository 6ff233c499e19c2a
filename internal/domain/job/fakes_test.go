package job_test

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/honeycarbs/jobmatch/internal/domain"
)

// fakeProvider answers after delay with listings or err
type fakeProvider struct {
	name      string
	listings  []domain.Listing
	err       error
	delay     time.Duration
	ignoreCtx bool
	calls     atomic.Int32
	lastQuery atomic.Value
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Listing, error) {
	f.calls.Add(1)
	f.lastQuery.Store(q)
	if f.delay > 0 {
		if f.ignoreCtx {
			time.Sleep(f.delay)
		} else {
			select {
			case <-time.After(f.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Listing, len(f.listings))
	copy(out, f.listings)
	return out, nil
}

type panicProvider struct{}

func (panicProvider) Name() string { return "panicky" }

func (panicProvider) Search(context.Context, domain.SearchQuery) ([]domain.Listing, error) {
	panic("boom")
}

func listing(title, company, location, source string) domain.Listing {
	return domain.Listing{
		Title:    title,
		Company:  company,
		Location: location,
		Source:   source,
		URL:      "https://" + source + ".example/" + title,
	}
}

func years(v float64) *float64 {
	return &v
}
