// Package api holds the wire types shared by the HTTP handlers and the MCP tools.
package api

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/honeycarbs/jobmatch/internal/domain"
	"github.com/honeycarbs/jobmatch/internal/domain/job"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SearchRequest is the body of POST /search_jobs
type SearchRequest struct {
	Profile *domain.CandidateProfile `json:"profile" validate:"required"`
}

// SearchResponse is returned for every search that reached the providers
type SearchResponse struct {
	Status          string                 `json:"status"`
	SearchID        string                 `json:"search_id"`
	Jobs            []domain.ScoredListing `json:"jobs"`
	Count           int                    `json:"count"`
	ProvidersUsed   []string               `json:"providers_used"`
	ProvidersFailed []string               `json:"providers_failed"`
	Diagnostics     []job.Diagnostic       `json:"diagnostics"`
	SearchedAt      time.Time              `json:"searched_at"`
	MaxScore        int                    `json:"max_score"`
	ScoringVersion  string                 `json:"scoring_version"`
	Message         string                 `json:"message,omitempty"`
}

// NewSearchResponse flattens a search result for transport
func NewSearchResponse(r job.SearchResult) SearchResponse {
	resp := SearchResponse{
		Status:          StatusSuccess,
		SearchID:        r.SearchID,
		Jobs:            r.Listings,
		Count:           len(r.Listings),
		ProvidersUsed:   r.ProvidersUsed,
		ProvidersFailed: r.ProvidersFailed,
		Diagnostics:     r.Diagnostics(),
		SearchedAt:      r.SearchedAt,
		MaxScore:        domain.MaxScore,
		ScoringVersion:  job.ScoringVersion,
	}
	if resp.Jobs == nil {
		resp.Jobs = []domain.ScoredListing{}
	}
	if resp.ProvidersUsed == nil {
		resp.ProvidersUsed = []string{}
	}
	if resp.ProvidersFailed == nil {
		resp.ProvidersFailed = []string{}
	}

	switch {
	case r.AllFailed():
		resp.Message = "no provider returned results"
	case len(r.Outcomes) == 0:
		resp.Message = "no providers configured"
	}
	return resp
}

// FieldError is one invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is returned for 4xx/5xx answers
type ErrorResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// NewError builds an error body
func NewError(message string, fields ...FieldError) ErrorResponse {
	return ErrorResponse{Status: StatusError, Message: message, Errors: fields}
}

// ProvidersResponse is returned by GET /providers
type ProvidersResponse struct {
	Providers      []string `json:"providers"`
	MaxScore       int      `json:"max_score"`
	ScoringVersion string   `json:"scoring_version"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names, matching what the caller sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks struct tags and returns field level problems
func Validate(v any) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return out
}

// fieldPath drops the root struct name: "SearchRequest.profile.role" -> "profile.role"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.Slice {
			return "must have at most " + fe.Param() + " entries"
		}
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
