package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxScore is the upper bound of a relevance score, shown to users as "Match: N/30"
const MaxScore = 30

// DefaultSalary is used whenever a provider does not report pay
const DefaultSalary = "not specified"

// ListingID uniquely identifies a listing within a search result
type ListingID = uuid.UUID

// CandidateProfile describes the job seeker a search is ranked against
type CandidateProfile struct {
	Role               string   `json:"role,omitempty" validate:"max=200" jsonschema:"Target job role, e.g. Delivery Driver"`
	Skills             []string `json:"skills,omitempty" validate:"max=100,dive,max=200" jsonschema:"Skills of the candidate"`
	Location           string   `json:"location,omitempty" jsonschema:"Preferred city or region"`
	ExperienceYears    *float64 `json:"experience_years,omitempty" validate:"omitempty,gte=0,lte=80" jsonschema:"Total years of experience"`
	WorkTypePreference string   `json:"work_type_preference,omitempty" jsonschema:"remote, onsite, hybrid, full-time..."`
	PastRoles          []string `json:"past_roles,omitempty" jsonschema:"Roles held previously"`
	Certifications     []string `json:"certifications,omitempty" jsonschema:"Certifications and licences"`
	Languages          []string `json:"languages,omitempty" jsonschema:"Spoken languages"`
	Degrees            []string `json:"degrees,omitempty" jsonschema:"Degrees or fields of study"`
}

// HasRole reports whether the profile names a usable role
func (p CandidateProfile) HasRole() bool {
	return Meaningful(p.Role)
}

// CleanSkills returns the usable skills, trimmed, in input order
func (p CandidateProfile) CleanSkills() []string {
	return CleanList(p.Skills)
}

// RemotePreferred reports whether the candidate asked for remote work
func (p CandidateProfile) RemotePreferred() bool {
	return strings.Contains(strings.ToLower(p.WorkTypePreference), "remote")
}

// Listing is the normalized job posting shared by every provider
type Listing struct {
	ID             ListingID  `json:"id"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location"`
	Salary         string     `json:"salary"`
	Description    string     `json:"description"`
	URL            string     `json:"url"`
	Source         string     `json:"source"`
	PostedAt       *time.Time `json:"posted_at,omitempty"`
	AlsoReportedBy []string   `json:"also_reported_by,omitempty"`
}

// ScoredListing is a listing with its relevance to a profile
type ScoredListing struct {
	Listing
	RelevanceScore int `json:"relevance_score"`
}

// SearchQuery is derived once per search from the profile and sent to every provider
type SearchQuery struct {
	Keywords []string
	Location string
	Remote   bool
}

// Text joins the first n keywords into a single free-text query
func (q SearchQuery) Text(n int) string {
	if n <= 0 || n > len(q.Keywords) {
		n = len(q.Keywords)
	}
	return strings.Join(q.Keywords[:n], " ")
}

// Primary returns the highest priority keyword
func (q SearchQuery) Primary() string {
	if len(q.Keywords) == 0 {
		return ""
	}
	return q.Keywords[0]
}

var placeholders = map[string]struct{}{
	"":     {},
	"null": {},
	"none": {},
	"n/a":  {},
	"na":   {},
	"nil":  {},
}

// Meaningful reports whether s carries information, ignoring placeholder strings
func Meaningful(s string) bool {
	_, ok := placeholders[strings.ToLower(strings.TrimSpace(s))]
	return !ok
}

// CleanList trims entries and drops placeholders, keeping order
func CleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if Meaningful(s) {
			out = append(out, s)
		}
	}
	return out
}
