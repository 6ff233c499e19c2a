package job

import (
	"math"
	"strings"
	"unicode"

	"github.com/honeycarbs/jobmatch/internal/domain"
)

// ScoringVersion changes whenever any weight below changes
const ScoringVersion = "v1"

// Weights of the v1 scoring function. Component caps add up to domain.MaxScore.
const (
	weightRoleInTitle       = 10
	weightRoleWordInTitle   = 6
	weightRoleInDescription = 4
	weightTermInTitle       = 4
	weightTermInDescription = 2
	weightLanguage          = 2
	capKeyword              = 18

	weightLocationExact   = 8
	weightLocationPartial = 4
	capLocation           = 8

	weightExperience = 4
	capExperience    = 4
)

var (
	seniorWords = []string{"senior", "sr", "lead", "principal", "staff", "head"}
	midWords    = []string{"mid", "intermediate", "associate"}
	juniorWords = []string{"junior", "jr", "entry", "fresher", "trainee", "intern", "graduate"}
)

// Breakdown explains how a score was reached
type Breakdown struct {
	Keyword    int `json:"keyword"`
	Location   int `json:"location"`
	Experience int `json:"experience"`
	Total      int `json:"total"`
}

// Scorer scores listings against one profile. The profile terms are normalized once.
type Scorer struct {
	role       string
	roleWords  []string
	terms      []string
	languages  []string
	location   string
	locWords   []string
	remote     bool
	experience *float64
}

// NewScorer precomputes the normalized terms of profile
func NewScorer(profile domain.CandidateProfile) *Scorer {
	s := &Scorer{
		remote:     profile.RemotePreferred(),
		experience: profile.ExperienceYears,
	}

	if profile.HasRole() {
		s.role = normalizeText(profile.Role)
		s.roleWords = significantWords(s.role)
	}

	seen := map[string]struct{}{}
	if s.role != "" {
		seen[s.role] = struct{}{}
	}
	for _, group := range [][]string{profile.Skills, profile.PastRoles, profile.Certifications, profile.Degrees} {
		for _, term := range domain.CleanList(group) {
			n := normalizeText(term)
			if n == "" {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			s.terms = append(s.terms, n)
		}
	}

	for _, lang := range domain.CleanList(profile.Languages) {
		n := normalizeText(lang)
		if n == "" || n == "english" {
			continue
		}
		s.languages = append(s.languages, n)
	}

	if domain.Meaningful(profile.Location) {
		s.location = normalizeText(profile.Location)
		s.locWords = significantWords(s.location)
	}

	return s
}

// Score returns the relevance of listing to profile in [0, domain.MaxScore]
func Score(listing domain.Listing, profile domain.CandidateProfile) int {
	return NewScorer(profile).Score(listing)
}

// Score returns the relevance of listing in [0, domain.MaxScore]
func (s *Scorer) Score(listing domain.Listing) int {
	return s.Explain(listing).Total
}

// Explain returns the per-component breakdown of the score
func (s *Scorer) Explain(listing domain.Listing) Breakdown {
	title := padded(listing.Title)
	desc := padded(listing.Description)
	loc := padded(listing.Location)

	b := Breakdown{
		Keyword:    clamp(s.keywordScore(title, desc), 0, capKeyword),
		Location:   clamp(s.locationScore(loc, title, desc), 0, capLocation),
		Experience: clamp(s.experienceScore(title), 0, capExperience),
	}
	b.Total = clamp(b.Keyword+b.Location+b.Experience, 0, domain.MaxScore)
	return b
}

func (s *Scorer) keywordScore(title, desc string) int {
	score := 0
	if s.role != "" {
		if hasPhrase(title, s.role) {
			score += weightRoleInTitle
		} else if hasAny(title, s.roleWords) {
			score += weightRoleWordInTitle
		}
		if hasPhrase(desc, s.role) {
			score += weightRoleInDescription
		}
	}
	for _, term := range s.terms {
		if hasPhrase(title, term) {
			score += weightTermInTitle
		}
		if hasPhrase(desc, term) {
			score += weightTermInDescription
		}
	}
	for _, lang := range s.languages {
		if hasPhrase(desc, lang) {
			score += weightLanguage
		}
	}
	return score
}

func (s *Scorer) locationScore(loc, title, desc string) int {
	if s.remote && (hasPhrase(loc, "remote") || hasPhrase(title, "remote") || hasPhrase(desc, "work from home")) {
		return weightLocationExact
	}
	if s.location == "" {
		return 0
	}
	if hasPhrase(loc, s.location) {
		return weightLocationExact
	}
	if hasAny(loc, s.locWords) {
		return weightLocationPartial
	}
	return 0
}

func (s *Scorer) experienceScore(title string) int {
	if s.experience == nil || math.IsNaN(*s.experience) || *s.experience <= 0 {
		return 0
	}
	years := *s.experience
	switch {
	case years >= 5 && hasAny(title, seniorWords):
		return weightExperience
	case years >= 2 && years < 5 && hasAny(title, midWords):
		return weightExperience
	case years < 2 && hasAny(title, juniorWords):
		return weightExperience
	}
	return 0
}

// normalizeText lower-cases s and keeps only word tokens separated by single spaces.
// '+' and '#' count as word characters so "c++" and "c#" survive.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

func padded(s string) string {
	return " " + normalizeText(s) + " "
}

// hasPhrase reports whether the normalized phrase occurs on word boundaries in a padded text
func hasPhrase(paddedText, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(paddedText, " "+phrase+" ")
}

func hasAny(paddedText string, words []string) bool {
	for _, w := range words {
		if hasPhrase(paddedText, w) {
			return true
		}
	}
	return false
}

func significantWords(normalized string) []string {
	var out []string
	for _, w := range strings.Fields(normalized) {
		if len([]rune(w)) >= 3 {
			out = append(out, w)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
