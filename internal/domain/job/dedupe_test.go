package job_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobmatch/internal/domain"
	"github.com/honeycarbs/jobmatch/internal/domain/job"
)

func TestDedupeKey(t *testing.T) {
	base := job.DedupeKey("Delivery Driver", "X Corp", "Mumbai")

	assert.Equal(t, base, job.DedupeKey("  delivery   DRIVER ", "x corp", "MUMBAI"))
	assert.Equal(t, base, job.DedupeKey("Delivery Driver", "X Corp", "Mumbai, Maharashtra"))
	assert.Equal(t, base, job.DedupeKey("Delivery Driver", "X\tCorp", "Mumbai / Thane"))

	assert.NotEqual(t, base, job.DedupeKey("Delivery Driver", "Y Corp", "Mumbai"))
	assert.NotEqual(t, base, job.DedupeKey("Delivery Driver", "X Corp", "Pune"))
	// exact key match only, no fuzzy matching
	assert.NotEqual(t, job.DedupeKey("Sr. Engineer", "X", "Pune"), job.DedupeKey("Senior Engineer", "X", "Pune"))
}

func TestDedupeKeepsFirstAndAnnotates(t *testing.T) {
	in := []domain.Listing{
		listing("Delivery Driver", "X Corp", "Mumbai", "adzuna"),
		listing("Warehouse Associate", "Y Ltd", "Pune", "adzuna"),
		listing("delivery  driver", "x corp", "mumbai", "jooble"),
		listing("DELIVERY DRIVER", "X CORP", "Mumbai, MH", "serpapi"),
		listing("Delivery Driver", "X Corp", "Mumbai", "adzuna"),
	}

	out := job.Dedupe(in)

	require.Len(t, out, 2)
	assert.Equal(t, "adzuna", out[0].Source)
	assert.Equal(t, "Delivery Driver", out[0].Title)
	assert.Equal(t, []string{"jooble", "serpapi"}, out[0].AlsoReportedBy)
	assert.Equal(t, "Warehouse Associate", out[1].Title)
	assert.Empty(t, out[1].AlsoReportedBy)

	assert.Empty(t, in[0].AlsoReportedBy, "input must not be mutated")
}

func TestDedupeIdempotent(t *testing.T) {
	in := []domain.Listing{
		listing("Cook", "A", "Delhi", "adzuna"),
		listing("cook", "a", "delhi", "jooble"),
		listing("Driver", "B", "Delhi", "jooble"),
		listing("Driver", "B", "Noida", "serpapi"),
	}

	once := job.Dedupe(in)
	twice := job.Dedupe(once)

	assert.Equal(t, once, twice)
	assert.Len(t, once, 3)
}

func TestDedupeEmpty(t *testing.T) {
	assert.Empty(t, job.Dedupe(nil))
}
