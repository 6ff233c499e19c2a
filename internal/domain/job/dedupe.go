package job

import (
	"strings"

	"github.com/honeycarbs/jobmatch/internal/domain"
)

// DedupeKey builds the similarity key two listings must share to count as the same job.
// Title and company are lower-cased with whitespace collapsed; location is reduced to its
// first segment (city level). Matching on the key is exact, so spelling variants such as
// "Sr." and "Senior" stay distinct.
func DedupeKey(title, company, location string) string {
	return normalizeKeyPart(title) + "|" + normalizeKeyPart(company) + "|" + locationBucket(location)
}

// Dedupe drops listings whose key was already seen, keeping the first in input order.
// The kept listing records the other sources in AlsoReportedBy.
func Dedupe(listings []domain.Listing) []domain.Listing {
	out := make([]domain.Listing, 0, len(listings))
	index := make(map[string]int, len(listings))

	for _, l := range listings {
		key := DedupeKey(l.Title, l.Company, l.Location)
		pos, seen := index[key]
		if !seen {
			index[key] = len(out)
			l.AlsoReportedBy = append([]string(nil), l.AlsoReportedBy...)
			out = append(out, l)
			continue
		}

		rep := &out[pos]
		rep.AlsoReportedBy = appendSource(rep.AlsoReportedBy, rep.Source, l.Source)
		for _, s := range l.AlsoReportedBy {
			rep.AlsoReportedBy = appendSource(rep.AlsoReportedBy, rep.Source, s)
		}
	}

	return out
}

func appendSource(list []string, own, source string) []string {
	if source == "" || strings.EqualFold(source, own) {
		return list
	}
	for _, s := range list {
		if strings.EqualFold(s, source) {
			return list
		}
	}
	return append(list, source)
}

func normalizeKeyPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func locationBucket(location string) string {
	loc := strings.ToLower(location)
	if i := strings.IndexAny(loc, ",/|("); i >= 0 {
		loc = loc[:i]
	}
	if i := strings.Index(loc, " - "); i >= 0 {
		loc = loc[:i]
	}
	return normalizeKeyPart(loc)
}
