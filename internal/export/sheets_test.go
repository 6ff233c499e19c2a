package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmatch/internal/domain"
)

type call struct {
	op     string
	rng    string
	values [][]interface{}
}

type recorder struct {
	calls []call
	err   error
}

func (r *recorder) AppendValues(_ context.Context, _, rng string, values [][]interface{}) error {
	r.calls = append(r.calls, call{"append", rng, values})
	return r.err
}

func (r *recorder) UpdateValues(_ context.Context, _, rng string, values [][]interface{}) error {
	r.calls = append(r.calls, call{"update", rng, values})
	return r.err
}

func (r *recorder) ClearValues(_ context.Context, _, rng string) error {
	r.calls = append(r.calls, call{"clear", rng, nil})
	return r.err
}

func sample() []domain.ScoredListing {
	posted := time.Date(2026, 5, 6, 7, 0, 0, 0, time.UTC)
	return []domain.ScoredListing{
		{Listing: domain.Listing{Title: "Delivery Driver", Company: "X Corp", Location: "Mumbai", Salary: "₹20,000", Source: "adzuna", AlsoReportedBy: []string{"jooble", "serpapi"}, URL: "https://a/1", PostedAt: &posted}, RelevanceScore: 26},
		{Listing: domain.Listing{Title: "Rider", Company: "Y", Location: "Thane", Salary: domain.DefaultSalary, Source: "jooble", URL: "https://j/2"}, RelevanceScore: 12},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sample(), true)

	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []interface{}{"26/30", "Delivery Driver", "X Corp", "Mumbai", "₹20,000", "adzuna", "jooble, serpapi", "https://a/1", "2026-05-06"}, rows[1])
	assert.Equal(t, "", rows[2][6])
	assert.Equal(t, "", rows[2][8])
}

func TestExportAppend(t *testing.T) {
	rec := &recorder{}
	e := NewSheetsExporter(rec)

	res, err := e.Export(context.Background(), Request{SpreadsheetID: "s", Tab: "Jobs", Listings: sample()})
	require.NoError(t, err)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, "append", rec.calls[0].op)
	assert.Equal(t, "Jobs!A1", rec.calls[0].rng)
	assert.Len(t, rec.calls[0].values, 2)
	assert.Equal(t, 2, res.WrittenRows)
	assert.Equal(t, "append", res.Mode)
}

func TestExportUpsertWithClear(t *testing.T) {
	rec := &recorder{}
	e := NewSheetsExporter(rec)

	res, err := e.Export(context.Background(), Request{SpreadsheetID: "s", Tab: "My Jobs", Upsert: true, ClearTab: true, Listings: sample()})
	require.NoError(t, err)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, call{"clear", "'My Jobs'!A2:Z", nil}, rec.calls[0])
	assert.Equal(t, "update", rec.calls[1].op)
	assert.Equal(t, "'My Jobs'!A2", rec.calls[1].rng)
	assert.Equal(t, "upsert", res.Mode)
}

func TestExportHeaderAndRangeOverride(t *testing.T) {
	rec := &recorder{}
	e := NewSheetsExporter(rec)

	_, err := e.Export(context.Background(), Request{SpreadsheetID: "s", Range: "Out!C3", Upsert: true, Header: true, Listings: sample()})
	require.NoError(t, err)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, "Out!C3", rec.calls[0].rng)
	assert.Len(t, rec.calls[0].values, 3)
}

func TestExportNotConfigured(t *testing.T) {
	_, err := NewSheetsExporter(nil).Export(context.Background(), Request{SpreadsheetID: "s", Listings: sample()})
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestExportEmptyAndErrors(t *testing.T) {
	rec := &recorder{}
	res, err := NewSheetsExporter(rec).Export(context.Background(), Request{SpreadsheetID: "s"})
	require.NoError(t, err)
	assert.Empty(t, rec.calls)
	assert.Equal(t, "no rows to export", res.Message)

	_, err = NewSheetsExporter(rec).Export(context.Background(), Request{Listings: sample()})
	assert.Error(t, err, "spreadsheet id is required")

	failing := &recorder{err: errors.New("quota")}
	_, err = NewSheetsExporter(failing).Export(context.Background(), Request{SpreadsheetID: "s", Listings: sample()})
	assert.ErrorContains(t, err, "quota")
}
