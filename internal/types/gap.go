package types

// Priority orders learning steps.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// FuzzyMatch records a required skill satisfied by a near-spelling the candidate has.
type FuzzyMatch struct {
	Required     string  `json:"required"`
	CandidateHas string  `json:"candidate_has"`
	Similarity   float64 `json:"similarity"`
}

// LearningStep is one entry in a remediation plan.
type LearningStep struct {
	Skill          string   `json:"skill"`
	Prerequisites  []string `json:"prerequisites"`
	EstimatedHours int      `json:"estimated_hours"`
	Resources      []string `json:"resources"`
	Priority       Priority `json:"priority"`
}

// GapSummary counts how the required skills were resolved.
type GapSummary struct {
	TotalRequired    int `json:"total_required"`
	FullyMatched     int `json:"fully_matched"`
	PartiallyMatched int `json:"partially_matched"`
	Missing          int `json:"missing"`
}

// GapAnalysis is the result of comparing a candidate against a role's required skills.
type GapAnalysis struct {
	ExactMatches       []string       `json:"exact_matches"`
	FuzzyMatches       []FuzzyMatch   `json:"fuzzy_matches"`
	CriticalMissing    []string       `json:"critical_missing"`
	NiceToHaveMissing  []string       `json:"nice_to_have_missing"`
	GapSeverityScore   float64        `json:"gap_severity_score"`
	MatchPercentage    float64        `json:"match_percentage"`
	LearningPath       []LearningStep `json:"learning_path"`
	EstimatedTimeWeeks int            `json:"estimated_time_weeks"`
	Summary            GapSummary     `json:"summary"`
}
