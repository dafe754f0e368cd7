// Package types provides type definitions for structured data used throughout the skillmatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobPosting is a single role in the job corpus.
// RequiredSkills holds the skills as authored; normalization happens at scoring time.
type JobPosting struct {
	Role               string   `json:"role"`
	RequiredSkills     []string `json:"required_skills"`
	Salary             float64  `json:"salary_lpa"`
	ExperienceRequired int      `json:"experience_required"`
}

// CandidateProfile is the per-request view of a candidate.
type CandidateProfile struct {
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experience_years"`
}

// ExperienceLevel labels a candidate by how many distinct skills they list.
func ExperienceLevel(skillCount int) string {
	switch {
	case skillCount < 5:
		return "Entry"
	case skillCount < 10:
		return "Mid"
	default:
		return "Senior"
	}
}
