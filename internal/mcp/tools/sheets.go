package tools

import (
	"context"
	"errors"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobmatch/internal/domain"
	"github.com/honeycarbs/jobmatch/internal/domain/job"
	"github.com/honeycarbs/jobmatch/internal/export"
	"github.com/honeycarbs/jobmatch/pkg/logging"
)

const SheetsExportName = "sheets_export"

// SheetsExporter writes ranked listings to a spreadsheet
type SheetsExporter interface {
	Export(ctx context.Context, req export.Request) (export.Result, error)
	Configured() bool
}

// SheetRow is a job already shown to the user, passed back for export
type SheetRow struct {
	Title          string `json:"title" jsonschema:"Job title text"`
	Company        string `json:"company" jsonschema:"Company name"`
	Location       string `json:"location,omitempty" jsonschema:"Location text"`
	Salary         string `json:"salary,omitempty" jsonschema:"Salary text"`
	URL            string `json:"url,omitempty" jsonschema:"Application URL"`
	Source         string `json:"source,omitempty" jsonschema:"Provider that reported the job"`
	RelevanceScore int    `json:"relevance_score,omitempty" jsonschema:"Score from search_jobs"`
}

// SheetTarget identifies the destination
type SheetTarget struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name, Sheet1 by default"`
	Range         string `json:"range,omitempty" jsonschema:"Optional A1 range override"`
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	Sheet    SheetTarget              `json:"sheet" jsonschema:"Destination sheet information"`
	Rows     []SheetRow               `json:"rows,omitempty" jsonschema:"Jobs to write; when empty a fresh search is run for profile"`
	Profile  *domain.CandidateProfile `json:"profile,omitempty" jsonschema:"Profile to search for when rows are not given"`
	Upsert   bool                     `json:"upsert,omitempty" jsonschema:"Overwrite from the top (true) or append (false)"`
	ClearTab bool                     `json:"clear_tab,omitempty" jsonschema:"If true, clears the tab before writing"`
	Header   bool                     `json:"header,omitempty" jsonschema:"Write a header row first"`
}

type sheetsExportTool struct {
	exporter SheetsExporter
	searcher job.Searcher
	logger   *logging.Logger
}

// WithSheetsExport registers the sheets_export tool. searcher may be nil, then rows are required.
func WithSheetsExport(exporter SheetsExporter, searcher job.Searcher) Option {
	return func(reg *registry) {
		if exporter == nil || !exporter.Configured() {
			reg.logger.Info("sheets_export not registered, Google Sheets credentials missing")
			return
		}
		handler := sheetsExportTool{exporter: exporter, searcher: searcher, logger: reg.logger}
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        SheetsExportName,
			Description: "Write ranked jobs to a Google Sheet, either the given rows or the result of a new search for a profile",
		}, handler.handle)
		reg.add(SheetsExportName)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if params.Sheet.SpreadsheetID == "" {
		return errorResult("sheet.spreadsheet_id is required"), nil, nil
	}

	listings := rowsToListings(params.Rows)
	if len(listings) == 0 && params.Profile != nil {
		if t.searcher == nil {
			return errorResult("search is not available, pass rows instead"), nil, nil
		}
		result, err := t.searcher.Search(ctx, *params.Profile)
		if err != nil {
			if errors.Is(err, job.ErrInvalidProfile) {
				return errorResult(err.Error()), nil, nil
			}
			return nil, nil, fmt.Errorf("search failed: %w", err)
		}
		listings = result.Listings
		t.logger.Debug("sheets_export: exporting fresh search", "search_id", result.SearchID, "count", len(listings))
	}

	res, err := t.exporter.Export(ctx, export.Request{
		SpreadsheetID: params.Sheet.SpreadsheetID,
		Tab:           params.Sheet.Tab,
		Range:         params.Sheet.Range,
		Upsert:        params.Upsert,
		ClearTab:      params.ClearTab,
		Header:        params.Header,
		Listings:      listings,
	})
	if err != nil {
		t.logger.Error("sheets_export failed", "spreadsheet_id", params.Sheet.SpreadsheetID, "err", err)
		return errorResult(err.Error()), nil, nil
	}

	t.logger.Info("sheets_export completed", "spreadsheet_id", res.SpreadsheetID, "tab", res.Tab, "rows", res.WrittenRows)

	out, err := jsonResult(res)
	if err != nil {
		return nil, nil, err
	}
	return out, res, nil
}

func rowsToListings(rows []SheetRow) []domain.ScoredListing {
	out := make([]domain.ScoredListing, 0, len(rows))
	for _, r := range rows {
		salary := r.Salary
		if !domain.Meaningful(salary) {
			salary = domain.DefaultSalary
		}
		out = append(out, domain.ScoredListing{
			Listing: domain.Listing{
				Title:    r.Title,
				Company:  r.Company,
				Location: r.Location,
				Salary:   salary,
				URL:      r.URL,
				Source:   r.Source,
			},
			RelevanceScore: r.RelevanceScore,
		})
	}
	return out
}
