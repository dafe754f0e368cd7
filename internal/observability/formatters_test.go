package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skillmatch/internal/corpus"
	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatches([]types.MatchResult{
		{
			Role:           "Backend Developer",
			MatchScore:     72.35,
			Salary:         18,
			FitLevel:       types.FitStrong,
			ScoreBreakdown: types.ScoreBreakdown{SkillOverlap: 66.7, ExperienceFit: 100},
			MissingSkills:  []string{"docker"},
		},
		{Role: "Frontend Developer", MatchScore: 20, FitLevel: types.FitPoor},
	})
	output := buf.String()

	assert.Contains(t, output, "TOP MATCHES")
	assert.Contains(t, output, "#1  Backend Developer  (Strong Fit)")
	assert.Contains(t, output, "Score: 72.35")
	assert.Contains(t, output, "Missing: docker")
	assert.Contains(t, output, "#2  Frontend Developer")
}

func TestPrintMatches_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatches(nil)

	assert.Contains(t, buf.String(), "No postings in corpus")
}

func TestPrintMatches_TruncatesList(t *testing.T) {
	var buf bytes.Buffer
	matches := make([]types.MatchResult, 8)
	for i := range matches {
		matches[i] = types.MatchResult{Role: "Role", FitLevel: types.FitPoor}
	}
	NewPrinter(&buf).PrintMatches(matches)

	assert.Contains(t, buf.String(), "... and 3 more postings")
}

func TestPrintRanked(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRanked([]types.RankedMatch{
		{MatchResult: types.MatchResult{Role: "DevOps", MatchScore: 50}, PreferenceScore: 80, FinalScore: 59},
	})

	assert.Contains(t, buf.String(), "Final: 59.00  Match: 50.00  Preference: 80.0")
}

func TestPrintGap(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGap(&types.GapAnalysis{
		FuzzyMatches:       []types.FuzzyMatch{{Required: "NodeJS", CandidateHas: "Node-JS", Similarity: 0.8}},
		CriticalMissing:    []string{"kubernetes", "aws"},
		NiceToHaveMissing:  []string{"terraform"},
		GapSeverityScore:   60,
		MatchPercentage:    40,
		EstimatedTimeWeeks: 8,
		LearningPath: []types.LearningStep{
			{Skill: "aws", Priority: types.PriorityHigh, EstimatedHours: 40},
			{Skill: "kubernetes", Priority: types.PriorityHigh, EstimatedHours: 40, Prerequisites: []string{"docker"}},
		},
		Summary: types.GapSummary{TotalRequired: 5, FullyMatched: 2, Missing: 3},
	})
	output := buf.String()

	assert.Contains(t, output, "SKILL GAP ANALYSIS")
	assert.Contains(t, output, "Required: 5  Matched: 2  Partial: 0  Missing: 3")
	assert.Contains(t, output, "~ NodeJS (have Node-JS)")
	assert.Contains(t, output, "Critical: kubernetes, aws")
	assert.Contains(t, output, "2. kubernetes [high] 40h after docker")
}

func TestPrintGap_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintGap(nil)

	assert.Empty(t, buf.String())
}

func TestPrintCorpusStats(t *testing.T) {
	postings := []types.JobPosting{
		{Role: "A", RequiredSkills: []string{"python", "sql"}},
		{Role: "B", RequiredSkills: []string{"python", "docker"}},
	}
	snap := corpus.NewSnapshot(postings, skills.Default(), "test")

	var buf bytes.Buffer
	NewPrinter(&buf).PrintCorpusStats(snap, 2)
	output := buf.String()

	assert.Contains(t, output, "CORPUS STATISTICS")
	assert.Contains(t, output, "Postings: 2  Distinct skills: 3")
	assert.Contains(t, output, "python")
	assert.Contains(t, output, "Source:   test")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcd...", clip("abcdefghijk", 7))
}

func TestPrintFeedback(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFeedback(&types.FeedbackResponse{
		RecommendedRole: "DevOps Engineer",
		ExperienceLevel: "Entry",
		Match:           types.MatchResult{Role: "DevOps Engineer", MatchScore: 42.5, FitLevel: types.FitModerate},
		Gap:             &types.GapAnalysis{CriticalMissing: []string{"kubernetes"}},
		Feedback:        "Strengths:\n" + strings.Repeat("containers ", 12),
		FeedbackSource:  "template",
	})
	output := buf.String()

	assert.Contains(t, output, "RECOMMENDATION")
	assert.Contains(t, output, "Role:   DevOps Engineer (Moderate Fit)")
	assert.Contains(t, output, "Critical: kubernetes")
	assert.Contains(t, output, "CAREER FEEDBACK")
	assert.NotContains(t, output, "...", "feedback is wrapped, not clipped")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{""}, wrap("   ", 10))
	assert.Equal(t, []string{"aaa bbb", "ccc"}, wrap("aaa bbb ccc", 7))
	assert.Equal(t, []string{"abcdefghij"}, wrap("abcdefghij", 4))
}
