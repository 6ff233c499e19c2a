package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/honeycarbs/jobmatch/internal/domain"
)

// OutcomeState is the result class of one provider call
type OutcomeState int

const (
	OutcomeSucceeded OutcomeState = iota
	OutcomeFailed
	OutcomeTimedOut
	OutcomeUnconfigured
)

func (s OutcomeState) String() string {
	switch s {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeUnconfigured:
		return "unconfigured"
	default:
		return fmt.Sprintf("OutcomeState(%d)", int(s))
	}
}

// ProviderOutcome is what one provider produced during a single search
type ProviderOutcome struct {
	Provider string
	State    OutcomeState
	Listings []domain.Listing
	Err      error
	Elapsed  time.Duration
}

// Diagnostic is the caller-facing view of a ProviderOutcome
type Diagnostic struct {
	Provider  string `json:"provider"`
	State     string `json:"state"`
	Error     string `json:"error,omitempty"`
	Listings  int    `json:"listings"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// Diagnostic reduces the outcome to its reportable fields
func (o ProviderOutcome) Diagnostic() Diagnostic {
	d := Diagnostic{
		Provider:  o.Provider,
		State:     o.State.String(),
		Listings:  len(o.Listings),
		ElapsedMS: o.Elapsed.Milliseconds(),
	}
	if o.Err != nil {
		d.Error = o.Err.Error()
	}
	return d
}

type fetchResult struct {
	listings []domain.Listing
	err      error
}

// Fetch runs one provider under a deadline of timeout (or ctx's own deadline if sooner).
// It never blocks past that deadline: a provider that ignores ctx is abandoned and its
// late answer dropped.
func Fetch(ctx context.Context, p Provider, query domain.SearchQuery, timeout time.Duration) ProviderOutcome {
	start := time.Now()
	outcome := ProviderOutcome{Provider: p.Name()}

	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan fetchResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fetchResult{err: &ProviderError{Provider: p.Name(), Cause: "provider panicked", Err: fmt.Errorf("%v", r)}}
			}
		}()
		listings, err := p.Search(callCtx, query)
		done <- fetchResult{listings: listings, err: err}
	}()

	var res fetchResult
	select {
	case res = <-done:
	case <-callCtx.Done():
		res = fetchResult{err: callCtx.Err()}
	}
	outcome.Elapsed = time.Since(start)

	outcome.State, outcome.Err = classify(p.Name(), res.err)
	if outcome.State == OutcomeSucceeded {
		outcome.Listings = res.listings
	}

	return outcome
}

// classify maps what the provider returned to an outcome. Only err is consulted, so an
// error that arrives right at the deadline keeps its real cause.
func classify(provider string, err error) (OutcomeState, error) {
	switch {
	case err == nil:
		return OutcomeSucceeded, nil
	case errors.Is(err, ErrProviderUnconfigured):
		return OutcomeUnconfigured, err
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimedOut, &ProviderError{Provider: provider, Cause: "timed out", Err: context.DeadlineExceeded}
	default:
		return OutcomeFailed, err
	}
}
