//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestMatchRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request MatchRequest
		wantErr bool
	}{
		{
			name:    "valid request",
			request: MatchRequest{Skills: []string{"python", "sql"}, ExperienceYears: 3},
		},
		{
			name:    "missing skills",
			request: MatchRequest{ExperienceYears: 3},
			wantErr: true,
		},
		{
			name:    "negative experience",
			request: MatchRequest{Skills: []string{"go"}, ExperienceYears: -1},
			wantErr: true,
		},
		{
			name:    "limit too large",
			request: MatchRequest{Skills: []string{"go"}, Limit: 1000},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFilteredMatchRequest_Validate(t *testing.T) {
	t.Run("inverted salary bounds", func(t *testing.T) {
		req := FilteredMatchRequest{
			Skills:    []string{"python"},
			MinSalary: floatPtr(20),
			MaxSalary: floatPtr(10),
		}
		err := req.Validate()
		var rangeErr *RangeError
		assert.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, "min_salary", rangeErr.Field)
	})

	t.Run("only min bound", func(t *testing.T) {
		req := FilteredMatchRequest{Skills: []string{"python"}, MinSalary: floatPtr(5)}
		assert.NoError(t, req.Validate())
		filters := req.Filters()
		assert.Nil(t, filters.MaxSalary)
		assert.Equal(t, 5.0, *filters.MinSalary)
	})
}

func TestBatchMatchRequest_Validate(t *testing.T) {
	valid := BatchCandidate{Skills: []string{"go"}}

	assert.NoError(t, (&BatchMatchRequest{Candidates: []BatchCandidate{valid}}).Validate())
	assert.Error(t, (&BatchMatchRequest{}).Validate())

	tooMany := make([]BatchCandidate, MaxBatchCandidates+1)
	for i := range tooMany {
		tooMany[i] = valid
	}
	assert.Error(t, (&BatchMatchRequest{Candidates: tooMany}).Validate())

	nested := BatchMatchRequest{Candidates: []BatchCandidate{{ExperienceYears: 2}}}
	assert.Error(t, nested.Validate(), "candidates are validated individually")
}

func TestGapRequest_Validate(t *testing.T) {
	assert.NoError(t, (&GapRequest{CandidateSkills: []string{"go"}, RequiredSkills: []string{"go"}}).Validate())
	assert.NoError(t, (&GapRequest{CandidateSkills: []string{"go"}, Role: "Backend Developer"}).Validate())
	assert.NoError(t, (&GapRequest{Role: "Backend Developer"}).Validate(), "empty candidate is allowed")
	assert.Error(t, (&GapRequest{CandidateSkills: []string{"go"}}).Validate())
}

func TestExperienceLevel(t *testing.T) {
	assert.Equal(t, "Entry", ExperienceLevel(0))
	assert.Equal(t, "Entry", ExperienceLevel(4))
	assert.Equal(t, "Mid", ExperienceLevel(5))
	assert.Equal(t, "Mid", ExperienceLevel(9))
	assert.Equal(t, "Senior", ExperienceLevel(10))
}
