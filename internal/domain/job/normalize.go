package job

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobmatch/internal/domain"
)

// listingNamespace seeds deterministic listing IDs
var listingNamespace = uuid.MustParse("3b0f6a52-8d7e-4f35-9a43-2c61d1f0b7e4")

// Normalize enforces the listing invariants for one provider's output.
// It reports false when the listing must be discarded (no title, company or source).
func Normalize(l domain.Listing, source string, descriptionLimit int) (domain.Listing, bool) {
	l.Title = collapseSpaces(l.Title)
	l.Company = collapseSpaces(l.Company)
	l.Location = collapseSpaces(l.Location)
	l.URL = strings.TrimSpace(l.URL)
	l.Description = truncateRunes(collapseSpaces(l.Description), descriptionLimit)

	l.Source = strings.TrimSpace(l.Source)
	if l.Source == "" {
		l.Source = strings.TrimSpace(source)
	}

	l.Salary = strings.TrimSpace(l.Salary)
	if !domain.Meaningful(l.Salary) {
		l.Salary = domain.DefaultSalary
	}

	if !domain.Meaningful(l.Title) || !domain.Meaningful(l.Company) || l.Source == "" {
		return domain.Listing{}, false
	}

	if l.PostedAt != nil && l.PostedAt.IsZero() {
		l.PostedAt = nil
	}
	l.AlsoReportedBy = nil

	if l.ID == uuid.Nil {
		l.ID = uuid.NewSHA1(listingNamespace, []byte(l.Source+"\x00"+l.URL+"\x00"+DedupeKey(l.Title, l.Company, l.Location)))
	}

	return l, true
}

// NormalizeAll normalizes a provider batch, dropping invalid listings
func NormalizeAll(listings []domain.Listing, source string, descriptionLimit int) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if n, ok := Normalize(l, source, descriptionLimit); ok {
			out = append(out, n)
		}
	}
	return out
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit]))
}
