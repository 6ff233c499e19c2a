package job_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmatch/internal/domain/job"
	"github.com/honeycarbs/jobmatch/pkg/httpapi"
)

func TestWrapProviderError(t *testing.T) {
	assert.NoError(t, job.WrapProviderError("adzuna", nil))

	deadline := fmt.Errorf("adzuna: %w", context.DeadlineExceeded)
	assert.Same(t, deadline, job.WrapProviderError("adzuna", deadline))

	var pe *job.ProviderError
	err := job.WrapProviderError("adzuna", fmt.Errorf("adzuna: %w", &httpapi.StatusError{StatusCode: http.StatusTooManyRequests, Body: "quota"}))
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.RateLimited())

	err = job.WrapProviderError("adzuna", fmt.Errorf("adzuna: %w", &httpapi.DecodeError{Err: errors.New("unexpected EOF")}))
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "malformed response", pe.Cause)
}

func TestWrapProviderErrorTransport(t *testing.T) {
	refused := errors.New("dial tcp 127.0.0.1:1: connect: connection refused")
	raw := fmt.Errorf("adzuna: %w", &httpapi.TransportError{Method: http.MethodGet, Host: "api.adzuna.com", Err: refused})

	err := job.WrapProviderError("adzuna", raw)

	assert.Equal(t, "adzuna: request failed: GET api.adzuna.com: dial tcp 127.0.0.1:1: connect: connection refused", err.Error())
	assert.True(t, errors.Is(err, refused))
}
