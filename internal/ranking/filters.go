package ranking

import (
	"math"
	"sort"

	"github.com/jonathan/skillmatch/internal/corpus"
	"github.com/jonathan/skillmatch/internal/types"
)

const (
	matchShare            = 0.7
	preferenceShare       = 0.3
	basePreference        = 50.0
	salaryCloseness       = 30.0
	salaryDistancePenalty = 0.1
	maxPreference         = 100.0
)

// RankWithFilters ranks with the default knowledge pack.
func RankWithFilters(candidate types.CandidateProfile, postings []types.JobPosting, idx *corpus.Index, filters types.RankFilters) []types.RankedMatch {
	return NewScorer(nil).RankWithFilters(candidate, postings, idx, filters)
}

// RankWithFilters drops postings outside the salary bounds, then blends the
// match score with a salary preference score. Filtering happens before
// ranking, so excluded postings never appear. Ties keep match order.
func (s *Scorer) RankWithFilters(candidate types.CandidateProfile, postings []types.JobPosting, idx *corpus.Index, filters types.RankFilters) []types.RankedMatch {
	kept := make([]types.JobPosting, 0, len(postings))
	for _, p := range postings {
		if withinSalary(p.Salary, filters) {
			kept = append(kept, p)
		}
	}

	matches := s.MatchJobs(candidate, kept, idx)

	ranked := make([]types.RankedMatch, len(matches))
	finals := make([]float64, len(matches))
	for i, m := range matches {
		pref := preferenceScore(m.Salary, filters)
		finals[i] = m.MatchScore*matchShare + pref*preferenceShare
		ranked[i] = types.RankedMatch{MatchResult: m, PreferenceScore: pref}
	}

	order := make([]int, len(ranked))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return finals[order[a]] > finals[order[b]]
	})

	out := make([]types.RankedMatch, len(ranked))
	for pos, i := range order {
		out[pos] = ranked[i]
		out[pos].FinalScore = roundTo(finals[i], 2)
	}
	return out
}

func withinSalary(salary float64, f types.RankFilters) bool {
	if f.MinSalary != nil && salary < *f.MinSalary {
		return false
	}
	if f.MaxSalary != nil && salary > *f.MaxSalary {
		return false
	}
	return true
}

// preferenceScore favors salaries near the midpoint of the requested band.
// Without both bounds only the base score applies.
func preferenceScore(salary float64, f types.RankFilters) float64 {
	score := basePreference
	if f.MinSalary != nil && f.MaxSalary != nil {
		mid := (*f.MinSalary + *f.MaxSalary) / 2
		score += math.Max(0, salaryCloseness-math.Abs(salary-mid)*salaryDistancePenalty)
	}
	return math.Min(score, maxPreference)
}
