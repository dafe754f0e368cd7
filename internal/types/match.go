package types

// FitLevel is the qualitative bucket for a composite match score.
type FitLevel string

const (
	FitExcellent FitLevel = "Excellent Fit"
	FitStrong    FitLevel = "Strong Fit"
	FitGood      FitLevel = "Good Fit"
	FitModerate  FitLevel = "Moderate Fit"
	FitPoor      FitLevel = "Poor Fit"
)

// ScoreBreakdown holds the per-factor scores, each scaled to 0-100 and rounded to one decimal.
type ScoreBreakdown struct {
	SkillOverlap    float64 `json:"skill_overlap"`
	TFIDFWeighted   float64 `json:"tfidf_weighted"`
	SkillImportance float64 `json:"skill_importance"`
	ExperienceFit   float64 `json:"experience_fit"`
	RarityBonus     float64 `json:"rarity_bonus"`
}

// MatchResult is the score of one posting against one candidate.
type MatchResult struct {
	Role           string         `json:"role"`
	MatchScore     float64        `json:"match_score"`
	Salary         float64        `json:"salary"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
	MatchedSkills  []string       `json:"matched_skills"`
	MissingSkills  []string       `json:"missing_skills"`
	FitLevel       FitLevel       `json:"fit_level"`

	// Composite is the unrounded 0-1 score used for ordering.
	Composite float64 `json:"-"`
	// PostingIndex is the posting's position in the scored corpus, or -1
	// when it was scored on its own.
	PostingIndex int `json:"-"`
}

// RankFilters narrows and reweights a ranking by salary preference.
// Nil bounds are not applied.
type RankFilters struct {
	MinSalary *float64 `json:"min_salary,omitempty"`
	MaxSalary *float64 `json:"max_salary,omitempty"`
}

// RankedMatch is a MatchResult that survived RankFilters, with its preference adjustment.
type RankedMatch struct {
	MatchResult
	PreferenceScore float64 `json:"preference_score"`
	FinalScore      float64 `json:"final_score"`
}
