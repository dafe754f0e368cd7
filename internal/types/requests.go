package types

import (
	"github.com/go-playground/validator/v10"
)

// MaxBatchCandidates bounds a single batch match request.
const MaxBatchCandidates = 50

var validate = validator.New()

// MatchRequest asks for the corpus ranked against one candidate.
type MatchRequest struct {
	Skills          []string `json:"skills" validate:"required,min=1,dive,max=100"`
	ExperienceYears float64  `json:"experience_years" validate:"gte=0,lte=60"`
	Limit           int      `json:"limit,omitempty" validate:"gte=0,lte=500"`
}

// Profile returns the candidate described by the request.
func (r *MatchRequest) Profile() CandidateProfile {
	return CandidateProfile{Skills: r.Skills, ExperienceYears: r.ExperienceYears}
}

// FilteredMatchRequest is a MatchRequest with salary bounds.
type FilteredMatchRequest struct {
	Skills          []string `json:"skills" validate:"required,min=1,dive,max=100"`
	ExperienceYears float64  `json:"experience_years" validate:"gte=0,lte=60"`
	MinSalary       *float64 `json:"min_salary,omitempty" validate:"omitempty,gte=0"`
	MaxSalary       *float64 `json:"max_salary,omitempty" validate:"omitempty,gte=0"`
	Limit           int      `json:"limit,omitempty" validate:"gte=0,lte=500"`
}

// Filters returns the ranking filters described by the request.
func (r *FilteredMatchRequest) Filters() RankFilters {
	return RankFilters{MinSalary: r.MinSalary, MaxSalary: r.MaxSalary}
}

// Profile returns the candidate described by the request.
func (r *FilteredMatchRequest) Profile() CandidateProfile {
	return CandidateProfile{Skills: r.Skills, ExperienceYears: r.ExperienceYears}
}

// BatchCandidate is one entry of a BatchMatchRequest.
type BatchCandidate struct {
	Skills          []string `json:"skills" validate:"required,min=1,dive,max=100"`
	ExperienceYears float64  `json:"experience_years" validate:"gte=0,lte=60"`
}

// BatchMatchRequest scores several candidates in one call.
type BatchMatchRequest struct {
	Candidates []BatchCandidate `json:"candidates" validate:"required,min=1,max=50,dive"`
	Limit      int              `json:"limit,omitempty" validate:"gte=0,lte=500"`
}

// GapRequest compares a candidate against explicit required skills or a corpus role.
type GapRequest struct {
	CandidateSkills []string `json:"candidate_skills" validate:"dive,max=100"`
	RequiredSkills  []string `json:"required_skills,omitempty" validate:"required_without=Role,dive,max=100"`
	Role            string   `json:"role,omitempty" validate:"required_without=RequiredSkills,max=200"`
}

// FeedbackRequest asks for career feedback on a skill profile.
type FeedbackRequest struct {
	Skills          []string `json:"skills" validate:"required,min=1,dive,max=100"`
	ExperienceYears float64  `json:"experience_years" validate:"gte=0,lte=60"`
	JobDescription  string   `json:"job_description,omitempty" validate:"max=20000"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the FilteredMatchRequest using the validator.
func (r *FilteredMatchRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.MinSalary != nil && r.MaxSalary != nil && *r.MinSalary > *r.MaxSalary {
		return &RangeError{Field: "min_salary", Message: "must not exceed max_salary"}
	}
	return nil
}

// Validate validates the BatchMatchRequest using the validator.
func (r *BatchMatchRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the GapRequest using the validator.
func (r *GapRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the FeedbackRequest using the validator.
func (r *FeedbackRequest) Validate() error {
	return validate.Struct(r)
}

// RangeError reports a cross-field constraint the struct tags cannot express.
type RangeError struct {
	Field   string
	Message string
}

func (e *RangeError) Error() string {
	return e.Field + ": " + e.Message
}
