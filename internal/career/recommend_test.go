package career

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/advisor"
	"github.com/jonathan/skillmatch/internal/corpus"
	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

type fakeClient struct {
	text   string
	prompt string
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, nil
}

func (f *fakeClient) Model() string { return "fake-model" }
func (f *fakeClient) Close() error  { return nil }

func testSnapshot() *corpus.Snapshot {
	postings := []types.JobPosting{
		{Role: "Backend Developer", RequiredSkills: []string{"python", "sql", "docker", "aws"}, Salary: 18, ExperienceRequired: 3},
		{Role: "Frontend Developer", RequiredSkills: []string{"javascript", "react", "css"}, Salary: 12, ExperienceRequired: 2},
		{Role: "DevOps Engineer", RequiredSkills: []string{"kubernetes", "docker", "terraform", "aws"}, Salary: 25, ExperienceRequired: 5},
	}
	return corpus.NewSnapshot(postings, skills.Default(), "test")
}

func TestRecommend_PicksBestRoleAndGap(t *testing.T) {
	r := New(nil, nil)

	resp, err := r.Recommend(context.Background(), testSnapshot(), types.FeedbackRequest{
		Skills:          []string{"Python", "SQL", "Docker"},
		ExperienceYears: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "Backend Developer", resp.RecommendedRole)
	assert.Equal(t, "Backend Developer", resp.Match.Role)
	assert.Equal(t, "Entry", resp.ExperienceLevel)
	require.NotNil(t, resp.Gap)
	assert.Equal(t, []string{"aws"}, resp.Gap.CriticalMissing)
	assert.Equal(t, string(advisor.SourceTemplate), resp.FeedbackSource)
	assert.NotEmpty(t, resp.Feedback)
}

func TestRecommend_PassesJobDescriptionToAdvisor(t *testing.T) {
	client := &fakeClient{text: strings.Repeat("Focus on container orchestration. ", 10)}
	r := New(skills.Default(), advisor.New(client, nil, nil))

	resp, err := r.Recommend(context.Background(), testSnapshot(), types.FeedbackRequest{
		Skills:         []string{"docker", "terraform"},
		JobDescription: "Run our Kubernetes platform on AWS.",
	})
	require.NoError(t, err)

	assert.Equal(t, "DevOps Engineer", resp.RecommendedRole)
	assert.Equal(t, string(advisor.SourceLLM), resp.FeedbackSource)
	assert.Equal(t, client.text, resp.Feedback)
	assert.Contains(t, client.prompt, "Run our Kubernetes platform on AWS.")
}

func TestRecommend_DuplicateRoleUsesScoredPosting(t *testing.T) {
	postings := []types.JobPosting{
		{Role: "Software Engineer", RequiredSkills: []string{"java", "spring", "oracle"}, Salary: 10},
		{Role: "Software Engineer", RequiredSkills: []string{"go", "postgresql", "kubernetes"}, Salary: 20},
	}
	snap := corpus.NewSnapshot(postings, skills.Default(), "dupes")

	resp, err := New(nil, nil).Recommend(context.Background(), snap, types.FeedbackRequest{
		Skills: []string{"go", "postgresql"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Software Engineer", resp.RecommendedRole)
	assert.Equal(t, 1, resp.Match.PostingIndex)
	assert.Equal(t, 20.0, resp.Match.Salary)
	require.NotNil(t, resp.Gap)
	assert.Equal(t, 3, resp.Gap.Summary.TotalRequired)
	assert.Equal(t, 2, resp.Gap.Summary.FullyMatched)
	assert.Equal(t, 1, resp.Gap.Summary.Missing)
	assert.NotContains(t, resp.Gap.CriticalMissing, "java")
	assert.NotContains(t, resp.Gap.NiceToHaveMissing, "java")
}

func TestRecommend_EmptyCorpus(t *testing.T) {
	r := New(nil, nil)

	tests := []struct {
		name string
		snap *corpus.Snapshot
	}{
		{name: "nil snapshot", snap: nil},
		{name: "no postings", snap: corpus.NewSnapshot(nil, skills.Default(), "empty")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Recommend(context.Background(), tt.snap, types.FeedbackRequest{Skills: []string{"go"}})
			assert.ErrorIs(t, err, ErrEmptyCorpus)
		})
	}
}
