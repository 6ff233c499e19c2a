package job

import (
	"strings"
	"unicode/utf8"

	"github.com/honeycarbs/jobmatch/internal/domain"
)

// ValidateProfile rejects profiles that carry neither a role nor a skill
func ValidateProfile(p domain.CandidateProfile) error {
	if !p.HasRole() && len(p.CleanSkills()) == 0 {
		return invalidProfile("role or at least one skill is required")
	}
	if p.ExperienceYears != nil && *p.ExperienceYears < 0 {
		return invalidProfile("experience_years must not be negative")
	}
	return nil
}

// BuildQuery derives the provider query from a profile: role first, then skills,
// past roles, certifications and degrees, case-insensitively unique, at most maxKeywords.
func BuildQuery(p domain.CandidateProfile, maxKeywords int, defaultLocation string) domain.SearchQuery {
	seen := make(map[string]struct{})
	var keywords []string
	add := func(s string, minLen int) {
		s = collapseSpaces(s)
		if !domain.Meaningful(s) || utf8.RuneCountInString(s) < minLen {
			return
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keywords = append(keywords, s)
	}

	add(p.Role, 1)
	for _, s := range p.Skills {
		add(s, 3)
	}
	for _, r := range p.PastRoles {
		add(r, 1)
	}
	for _, c := range p.Certifications {
		add(c, 3)
	}
	for _, d := range p.Degrees {
		add(d, 3)
	}

	if len(keywords) == 0 {
		for _, s := range p.Skills {
			add(s, 1)
		}
	}

	if maxKeywords > 0 && len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}

	location := collapseSpaces(p.Location)
	if !domain.Meaningful(location) {
		location = defaultLocation
	}

	return domain.SearchQuery{
		Keywords: keywords,
		Location: location,
		Remote:   p.RemotePreferred(),
	}
}
