// Package export writes search results to external spreadsheets.
package export

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/honeycarbs/jobmatch/internal/domain"
)

// ErrNotConfigured is returned when no Sheets credentials were provided
var ErrNotConfigured = errors.New("sheets export not configured")

const defaultTab = "Sheet1"

// Header is the first row written when requested
var Header = []interface{}{"Score", "Title", "Company", "Location", "Salary", "Source", "Also reported by", "URL", "Posted"}

// ValuesWriter is the subset of the Sheets client used by the exporter
type ValuesWriter interface {
	AppendValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
	UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
	ClearValues(ctx context.Context, spreadsheetID, range_ string) error
}

// Request describes one export
type Request struct {
	SpreadsheetID string
	Tab           string
	Range         string // A1 override
	Upsert        bool   // overwrite from the top instead of appending
	ClearTab      bool
	Header        bool
	Listings      []domain.ScoredListing
}

// Result summarizes an export
type Result struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab"`
	Range         string    `json:"range"`
	Mode          string    `json:"mode"`
	WrittenRows   int       `json:"written_rows"`
	CompletedAt   time.Time `json:"completed_at"`
	Message       string    `json:"message,omitempty"`
}

// SheetsExporter writes ranked listings as rows
type SheetsExporter struct {
	client ValuesWriter
	clock  func() time.Time
}

// NewSheetsExporter creates an exporter; a nil client makes every export fail with ErrNotConfigured
func NewSheetsExporter(client ValuesWriter) *SheetsExporter {
	return &SheetsExporter{client: client, clock: time.Now}
}

// Configured reports whether the exporter can write
func (e *SheetsExporter) Configured() bool {
	return e != nil && e.client != nil
}

// Export writes the listings of req to the target sheet
func (e *SheetsExporter) Export(ctx context.Context, req Request) (Result, error) {
	tab := strings.TrimSpace(req.Tab)
	if tab == "" {
		tab = defaultTab
	}

	result := Result{
		SpreadsheetID: req.SpreadsheetID,
		Tab:           tab,
		Mode:          "append",
	}
	if req.Upsert {
		result.Mode = "upsert"
	}

	if !e.Configured() {
		result.Message = "Google Sheets client not configured (GOOGLE_SHEETS_CREDENTIALS_PATH not set)"
		return result, ErrNotConfigured
	}
	if strings.TrimSpace(req.SpreadsheetID) == "" {
		return result, fmt.Errorf("export: spreadsheet id is required")
	}

	result.Range = buildRange(req, tab)

	if req.ClearTab {
		if err := e.client.ClearValues(ctx, req.SpreadsheetID, buildClearRange(req, tab)); err != nil {
			return result, fmt.Errorf("export: failed to clear sheet: %w", err)
		}
	}

	if len(req.Listings) == 0 {
		result.CompletedAt = e.clock().UTC()
		result.Message = "no rows to export"
		return result, nil
	}

	values := Rows(req.Listings, req.Header)

	var err error
	if req.Upsert {
		err = e.client.UpdateValues(ctx, req.SpreadsheetID, result.Range, values)
	} else {
		err = e.client.AppendValues(ctx, req.SpreadsheetID, result.Range, values)
	}
	if err != nil {
		return result, fmt.Errorf("export: failed to write rows: %w", err)
	}

	result.WrittenRows = len(req.Listings)
	result.CompletedAt = e.clock().UTC()
	result.Message = fmt.Sprintf("successfully exported %d row(s)", result.WrittenRows)
	return result, nil
}

func buildRange(req Request, tab string) string {
	if req.Range != "" {
		return req.Range
	}
	if req.Upsert && !req.Header {
		return fmt.Sprintf("%s!A2", quoteTab(tab))
	}
	return fmt.Sprintf("%s!A1", quoteTab(tab))
}

func buildClearRange(req Request, tab string) string {
	if req.Header {
		return fmt.Sprintf("%s!A1:Z", quoteTab(tab))
	}
	return fmt.Sprintf("%s!A2:Z", quoteTab(tab))
}

// tab names with spaces or punctuation must be single quoted in A1 notation
func quoteTab(tab string) string {
	if strings.IndexFunc(tab, func(r rune) bool {
		return !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	}) < 0 {
		return tab
	}
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}

// Rows converts listings to sheet rows in rank order
func Rows(listings []domain.ScoredListing, header bool) [][]interface{} {
	values := make([][]interface{}, 0, len(listings)+1)
	if header {
		values = append(values, Header)
	}
	for _, l := range listings {
		posted := ""
		if l.PostedAt != nil {
			posted = l.PostedAt.UTC().Format("2006-01-02")
		}
		values = append(values, []interface{}{
			strconv.Itoa(l.RelevanceScore) + "/" + strconv.Itoa(domain.MaxScore),
			l.Title,
			l.Company,
			l.Location,
			l.Salary,
			l.Source,
			strings.Join(l.AlsoReportedBy, ", "),
			l.URL,
			posted,
		})
	}
	return values
}
