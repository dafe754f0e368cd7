package types

import "time"

// MatchResponse is the ranked corpus for one candidate.
type MatchResponse struct {
	CorpusVersion string        `json:"corpus_version"`
	TotalJobs     int           `json:"total_jobs"`
	Matches       []MatchResult `json:"matches"`
}

// FilteredMatchResponse is the salary-filtered ranking for one candidate.
type FilteredMatchResponse struct {
	CorpusVersion string        `json:"corpus_version"`
	Matches       []RankedMatch `json:"matches"`
}

// BatchResult holds the matches for one candidate of a batch, in request order.
type BatchResult struct {
	Matches []MatchResult `json:"matches"`
}

// BatchMatchResponse answers a BatchMatchRequest.
type BatchMatchResponse struct {
	CorpusVersion string        `json:"corpus_version"`
	Results       []BatchResult `json:"results"`
}

// FeedbackResponse combines the best match, its gap analysis and the advisor text.
type FeedbackResponse struct {
	RecommendedRole string       `json:"recommended_role"`
	ExperienceLevel string       `json:"experience_level"`
	Match           MatchResult  `json:"match"`
	Gap             *GapAnalysis `json:"gap"`
	Feedback        string       `json:"feedback"`
	FeedbackSource  string       `json:"feedback_source"`
}

// SkillFrequency is one row of the corpus statistics.
type SkillFrequency struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// CorpusStats summarizes the active corpus snapshot.
type CorpusStats struct {
	Version        string           `json:"version"`
	Source         string           `json:"source"`
	TotalJobs      int              `json:"total_jobs"`
	DistinctSkills int              `json:"distinct_skills"`
	LoadedAt       time.Time        `json:"loaded_at"`
	TopSkills      []SkillFrequency `json:"top_skills"`
	RareSkills     []string         `json:"rare_skills"`
}

// ReloadResponse reports the snapshot installed by a reload.
type ReloadResponse struct {
	Version   string `json:"version"`
	TotalJobs int    `json:"total_jobs"`
}
