package tools

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobmatch/internal/api"
	"github.com/honeycarbs/jobmatch/internal/domain"
	"github.com/honeycarbs/jobmatch/internal/domain/job"
	"github.com/honeycarbs/jobmatch/pkg/logging"
)

const SearchJobsName = "search_jobs"

// SearchJobsParams defines the arguments for the search_jobs tool
type SearchJobsParams struct {
	Profile domain.CandidateProfile `json:"profile" jsonschema:"Candidate profile to search and rank jobs for"`
}

type searchJobsTool struct {
	searcher job.Searcher
	logger   *logging.Logger
}

// WithSearchJobs registers the search_jobs tool
func WithSearchJobs(searcher job.Searcher) Option {
	return func(reg *registry) {
		if searcher == nil {
			reg.logger.Warn("search_jobs not registered, searcher is nil")
			return
		}
		handler := searchJobsTool{searcher: searcher, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        SearchJobsName,
			Description: "Query every configured job board for the candidate profile and return deduplicated postings ranked by relevance (score 0-30)",
		}, handler.handle)
		reg.add(SearchJobsName)
	}
}

func (t searchJobsTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SearchJobsParams) (*sdkmcp.CallToolResult, any, error) {
	if fields := api.Validate(api.SearchRequest{Profile: &params.Profile}); len(fields) > 0 {
		t.logger.Debug("search_jobs: invalid params", "errors", fields)
		return errorResult(fmt.Sprintf("invalid profile: %s %s", fields[0].Field, fields[0].Message)), nil, nil
	}

	result, err := t.searcher.Search(ctx, params.Profile)
	if err != nil {
		if errors.Is(err, job.ErrInvalidProfile) {
			return errorResult(err.Error()), nil, nil
		}
		t.logger.Error("search_jobs failed", "err", err)
		return nil, nil, fmt.Errorf("search failed: %w", err)
	}

	resp := api.NewSearchResponse(result)
	t.logger.Info("search_jobs completed", "search_id", resp.SearchID, "count", resp.Count, "providers_failed", resp.ProvidersFailed)

	out, err := jsonResult(resp)
	if err != nil {
		return nil, nil, err
	}
	return out, resp, nil
}
