package ranking

import (
	"sort"

	"github.com/jonathan/skillmatch/internal/corpus"
	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

// Scorer ranks postings using one knowledge pack. It holds no mutable state
// and is safe for concurrent use.
type Scorer struct {
	knowledge *skills.Knowledge
}

// NewScorer creates a Scorer. A nil pack uses skills.Default().
func NewScorer(k *skills.Knowledge) *Scorer {
	if k == nil {
		k = skills.Default()
	}
	return &Scorer{knowledge: k}
}

// MatchJobs ranks postings with the default knowledge pack.
func MatchJobs(candidate types.CandidateProfile, postings []types.JobPosting, idx *corpus.Index) []types.MatchResult {
	return NewScorer(nil).MatchJobs(candidate, postings, idx)
}

// MatchJobs scores every posting and returns one result per posting, sorted
// by descending composite score. Ties keep corpus order.
func (s *Scorer) MatchJobs(candidate types.CandidateProfile, postings []types.JobPosting, idx *corpus.Index) []types.MatchResult {
	cand := s.candidateSet(candidate.Skills)

	results := make([]types.MatchResult, 0, len(postings))
	for i := range postings {
		r := s.score(cand, candidate.ExperienceYears, &postings[i], idx)
		r.PostingIndex = i
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Composite > results[j].Composite
	})
	return results
}

// Score evaluates a single posting.
func (s *Scorer) Score(candidate types.CandidateProfile, posting types.JobPosting, idx *corpus.Index) types.MatchResult {
	return s.score(s.candidateSet(candidate.Skills), candidate.ExperienceYears, &posting, idx)
}

func (s *Scorer) candidateSet(raw []string) map[string]struct{} {
	normalized := s.knowledge.NormalizeAll(raw)
	set := make(map[string]struct{}, len(normalized))
	for _, n := range normalized {
		set[n] = struct{}{}
	}
	return set
}

func (s *Scorer) score(cand map[string]struct{}, years float64, posting *types.JobPosting, idx *corpus.Index) types.MatchResult {
	job := s.knowledge.NormalizeAll(posting.RequiredSkills)

	var sub subScores
	sub.overlap, sub.matched, sub.missing = computeSkillOverlapScore(cand, job)
	sub.tfidf = computeTFIDFScore(sub.matched, job, idx)
	sub.importance = computeSkillImportanceScore(sub.matched, job, sub.overlap, s.knowledge)
	sub.experience = computeExperienceScore(years, posting.ExperienceRequired)
	sub.rarity = computeRarityBonus(sub.matched, idx)

	final := sub.composite()
	return types.MatchResult{
		Role:       posting.Role,
		MatchScore: roundTo(final*100, 2),
		Salary:     posting.Salary,
		ScoreBreakdown: types.ScoreBreakdown{
			SkillOverlap:    roundTo(sub.overlap*100, 1),
			TFIDFWeighted:   roundTo(sub.tfidf*100, 1),
			SkillImportance: roundTo(sub.importance*100, 1),
			ExperienceFit:   roundTo(sub.experience*100, 1),
			RarityBonus:     roundTo(sub.rarity*100, 1),
		},
		MatchedSkills: sub.matched,
		MissingSkills: sub.missing,
		FitLevel:      classifyFit(final),
		Composite:     final,
		PostingIndex:  -1,
	}
}

// Top returns at most n results; n <= 0 means all.
func Top[T any](results []T, n int) []T {
	if n <= 0 || n >= len(results) {
		return results
	}
	return results[:n]
}
