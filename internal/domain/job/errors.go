package job

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/honeycarbs/jobmatch/pkg/httpapi"
)

var (
	// ErrInvalidProfile is returned before any provider is called when scoring would be meaningless
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrProviderUnconfigured marks a provider that has no credentials
	ErrProviderUnconfigured = errors.New("provider not configured")
)

// ProviderError describes why a provider could not deliver listings
type ProviderError struct {
	Provider   string
	StatusCode int // 0 when no HTTP response was received
	Cause      string
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Cause)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the provider rejected the call for quota reasons
func (e *ProviderError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// NewStatusError builds a ProviderError from a non-2xx response
func NewStatusError(provider string, status int, body string) *ProviderError {
	cause := "unexpected response status"
	switch {
	case status == http.StatusTooManyRequests:
		cause = "rate limited"
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		cause = "credentials rejected"
	case status >= http.StatusInternalServerError:
		cause = "provider unavailable"
	}
	var err error
	if body != "" {
		err = errors.New(body)
	}
	return &ProviderError{Provider: provider, StatusCode: status, Cause: cause, Err: err}
}

// WrapProviderError turns a raw client error into a ProviderError.
// Context errors and ErrProviderUnconfigured pass through so Fetch can classify them.
func WrapProviderError(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, ErrProviderUnconfigured) {
		return err
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}

	var statusErr *httpapi.StatusError
	if errors.As(err, &statusErr) {
		return NewStatusError(provider, statusErr.StatusCode, statusErr.Body)
	}

	var decodeErr *httpapi.DecodeError
	if errors.As(err, &decodeErr) {
		return &ProviderError{Provider: provider, Cause: "malformed response", Err: decodeErr.Err}
	}

	// the client prefix is dropped, Provider already names it
	var transportErr *httpapi.TransportError
	if errors.As(err, &transportErr) {
		return &ProviderError{Provider: provider, Cause: "request failed", Err: transportErr}
	}

	return &ProviderError{Provider: provider, Cause: "request failed", Err: err}
}

func invalidProfile(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidProfile, reason)
}
