// Package gap compares a candidate's skills with a role's requirements.
package gap

import (
	"math"

	"github.com/jonathan/skillmatch/internal/learning"
	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

const (
	// fuzzyThreshold is the character-set similarity a near-spelling must exceed.
	fuzzyThreshold = 0.7
	// fuzzyConfidence is reported for every accepted fuzzy match regardless of
	// the measured similarity.
	fuzzyConfidence = 0.8

	hoursPerCritical   = 25
	hoursPerNiceToHave = 15
	studyHoursPerWeek  = 10
)

// Analyzer runs gap analyses with one knowledge pack.
type Analyzer struct {
	knowledge *skills.Knowledge
	path      *learning.Builder
}

// NewAnalyzer creates an Analyzer. A nil pack uses skills.Default().
func NewAnalyzer(k *skills.Knowledge) *Analyzer {
	if k == nil {
		k = skills.Default()
	}
	return &Analyzer{knowledge: k, path: learning.NewBuilder(k)}
}

// Analyze runs a gap analysis with the default knowledge pack.
func Analyze(candidate, required []string) *types.GapAnalysis {
	return NewAnalyzer(nil).Analyze(candidate, required)
}

// FindGap returns only the critical missing skills.
func FindGap(candidate, required []string) []string {
	return Analyze(candidate, required).CriticalMissing
}

// spelled is a normalized skill set that remembers the first original spelling.
type spelled struct {
	order    []string
	original map[string]string
}

func (a *Analyzer) spell(raw []string) spelled {
	s := spelled{original: make(map[string]string, len(raw))}
	for _, r := range raw {
		n := a.knowledge.Normalize(r)
		if n == "" {
			continue
		}
		if _, seen := s.original[n]; seen {
			continue
		}
		s.original[n] = r
		s.order = append(s.order, n)
	}
	return s
}

// Analyze compares candidate skills against required skills. Skill names in
// the result use the caller's original spelling.
func (a *Analyzer) Analyze(candidate, required []string) *types.GapAnalysis {
	cand := a.spell(candidate)
	req := a.spell(required)

	result := &types.GapAnalysis{
		ExactMatches:      []string{},
		FuzzyMatches:      []types.FuzzyMatch{},
		CriticalMissing:   []string{},
		NiceToHaveMissing: []string{},
	}

	var unmatched []string
	for _, r := range req.order {
		if _, ok := cand.original[r]; ok {
			result.ExactMatches = append(result.ExactMatches, req.original[r])
		} else {
			unmatched = append(unmatched, r)
		}
	}

	missing := 0
	for _, r := range unmatched {
		if best, _, ok := skills.BestMatch(r, cand.order, fuzzyThreshold); ok {
			result.FuzzyMatches = append(result.FuzzyMatches, types.FuzzyMatch{
				Required:     req.original[r],
				CandidateHas: cand.original[best],
				Similarity:   fuzzyConfidence,
			})
			continue
		}
		missing++
		if a.knowledge.IsFoundational(r) {
			result.CriticalMissing = append(result.CriticalMissing, req.original[r])
		} else {
			result.NiceToHaveMissing = append(result.NiceToHaveMissing, req.original[r])
		}
	}

	total := len(req.order)
	matched := len(result.ExactMatches) + len(result.FuzzyMatches)
	if total > 0 {
		result.GapSeverityScore = roundTo1((1 - float64(matched)/float64(total)) * 100)
	}
	result.MatchPercentage = roundTo1(100 - result.GapSeverityScore)

	result.LearningPath = a.path.BuildPath(result.CriticalMissing)
	result.EstimatedTimeWeeks = estimateWeeks(len(result.CriticalMissing), len(result.NiceToHaveMissing))
	result.Summary = types.GapSummary{
		TotalRequired:    total,
		FullyMatched:     len(result.ExactMatches),
		PartiallyMatched: len(result.FuzzyMatches),
		Missing:          missing,
	}
	return result
}

// estimateWeeks converts missing-skill counts to study weeks, at least one.
// Halves round to even.
func estimateWeeks(critical, niceToHave int) int {
	hours := float64(critical*hoursPerCritical + niceToHave*hoursPerNiceToHave)
	weeks := int(math.RoundToEven(hours / studyHoursPerWeek))
	if weeks < 1 {
		return 1
	}
	return weeks
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
