package job_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/honeycarbs/jobmatch/internal/domain"
	"github.com/honeycarbs/jobmatch/internal/domain/job"
)

func driverProfile() domain.CandidateProfile {
	return domain.CandidateProfile{
		Role:     "Driver",
		Skills:   []string{"scooter", "car"},
		Location: "Mumbai",
	}
}

func TestScorePerfectMatchNearMax(t *testing.T) {
	l := domain.Listing{
		Title:       "Delivery Driver",
		Company:     "X Corp",
		Location:    "Mumbai",
		Description: "Driver needed with own scooter or car for deliveries.",
	}

	score := job.Score(l, driverProfile())

	assert.GreaterOrEqual(t, score, 24)
	assert.LessOrEqual(t, score, domain.MaxScore)
}

func TestScoreNoOverlapIsZero(t *testing.T) {
	l := domain.Listing{
		Title:       "Chartered Accountant",
		Company:     "Ledger LLP",
		Location:    "Kolkata",
		Description: "Audit and taxation work.",
	}

	assert.Equal(t, 0, job.Score(l, driverProfile()))
}

func TestScoreWholeWordMatching(t *testing.T) {
	l := domain.Listing{
		Title:       "Career Counsellor",
		Company:     "Edu",
		Location:    "Pune",
		Description: "Scooters are not provided. Carpool available.",
	}

	// "car" must not match "career" or "carpool", "scooter" must not match "scooters"
	assert.Equal(t, 0, job.Score(l, driverProfile()))
}

func TestScoreLocation(t *testing.T) {
	p := domain.CandidateProfile{Role: "Cook", Location: "Navi Mumbai"}
	scorer := job.NewScorer(p)

	exact := scorer.Explain(domain.Listing{Title: "Chef", Location: "Navi Mumbai, Maharashtra"})
	partial := scorer.Explain(domain.Listing{Title: "Chef", Location: "Mumbai"})
	none := scorer.Explain(domain.Listing{Title: "Chef", Location: "Chennai"})

	assert.Equal(t, 8, exact.Location)
	assert.Equal(t, 4, partial.Location)
	assert.Equal(t, 0, none.Location)
}

func TestScoreRemotePreference(t *testing.T) {
	p := domain.CandidateProfile{Role: "Support Agent", WorkTypePreference: "Remote"}
	b := job.NewScorer(p).Explain(domain.Listing{Title: "Support Agent", Location: "Remote, India"})

	assert.Equal(t, 8, b.Location)
}

func TestScoreExperience(t *testing.T) {
	cases := []struct {
		years float64
		title string
		want  int
	}{
		{7, "Senior Electrician", 4},
		{7, "Junior Electrician", 0},
		{3, "Mid-level Electrician", 4},
		{1, "Entry Level Electrician", 4},
		{1, "Lead Electrician", 0},
		{0, "Junior Electrician", 0},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v_%s", tc.years, tc.title), func(t *testing.T) {
			p := domain.CandidateProfile{Role: "Electrician", ExperienceYears: years(tc.years)}
			b := job.NewScorer(p).Explain(domain.Listing{Title: tc.title})
			assert.Equal(t, tc.want, b.Experience)
		})
	}
}

func TestScoreKeywordCap(t *testing.T) {
	p := domain.CandidateProfile{
		Role:   "Go Developer",
		Skills: []string{"go", "kubernetes", "docker", "postgres", "redis", "grpc"},
	}
	l := domain.Listing{
		Title:       "Go Developer kubernetes docker postgres redis grpc",
		Description: "go developer kubernetes docker postgres redis grpc",
	}

	b := job.NewScorer(p).Explain(l)
	assert.Equal(t, 18, b.Keyword)
	assert.Equal(t, 18, b.Total)
}

func TestScoreBounds(t *testing.T) {
	profiles := []domain.CandidateProfile{
		{},
		driverProfile(),
		{Role: "Senior Senior Senior", Skills: []string{"senior", "lead"}, Location: "senior", ExperienceYears: years(30), WorkTypePreference: "remote"},
		{Role: "null", Skills: []string{"none", ""}, ExperienceYears: years(-4)},
		{Skills: []string{"c++", "c#"}, Languages: []string{"Hindi", "English"}, Certifications: []string{"HMV licence"}},
	}
	listings := []domain.Listing{
		{},
		{Title: "Senior Lead Driver remote", Location: "senior remote Mumbai", Description: "senior lead driver scooter car c++ c# hindi hmv licence work from home"},
		{Title: "c++ c# developer", Description: "C++ and C# hindi"},
	}

	for i, p := range profiles {
		for j, l := range listings {
			s := job.Score(l, p)
			assert.GreaterOrEqual(t, s, 0, "profile %d listing %d", i, j)
			assert.LessOrEqual(t, s, domain.MaxScore, "profile %d listing %d", i, j)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	l := domain.Listing{Title: "Delivery Driver", Location: "Mumbai", Description: "scooter"}
	first := job.Score(l, driverProfile())
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, job.Score(l, driverProfile()))
	}
}

func TestRankStableAndTruncated(t *testing.T) {
	in := []domain.Listing{
		listing("Accountant", "A", "Delhi", "adzuna"),
		listing("Delivery Driver", "B", "Mumbai", "adzuna"),
		listing("Clerk", "C", "Delhi", "jooble"),
		listing("Driver", "D", "Mumbai", "jooble"),
		listing("Cashier", "E", "Delhi", "serpapi"),
	}

	ranked := job.Rank(in, driverProfile(), 0, 4)

	assert.Len(t, ranked, 4)
	titles := make([]string, 0, len(ranked))
	for _, r := range ranked {
		titles = append(titles, r.Title)
	}
	// both drivers score the same, so input order decides; zero scores keep input order too
	assert.Equal(t, []string{"Delivery Driver", "Driver", "Accountant", "Clerk"}, titles)

	filtered := job.Rank(in, driverProfile(), 5, 10)
	assert.Len(t, filtered, 2)
}
