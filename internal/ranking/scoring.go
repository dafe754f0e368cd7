// Package ranking scores job postings against a candidate's skills and ranks them.
package ranking

import (
	"math"

	"github.com/jonathan/skillmatch/internal/corpus"
	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

// Weights for the composite match score.
const (
	skillOverlapWeight    = 0.30
	tfidfWeight           = 0.25
	skillImportanceWeight = 0.20
	experienceWeight      = 0.15
	rarityWeight          = 0.10
)

const (
	experiencePenaltyPerYear = 0.1
	experienceFloor          = 0.5
	rarityBonusPerSkill      = 0.15
	rarityBonusCap           = 0.5
)

// Fit level lower bounds on the 0-1 composite, evaluated top-down.
const (
	excellentFitThreshold = 0.80
	strongFitThreshold    = 0.65
	goodFitThreshold      = 0.50
	moderateFitThreshold  = 0.35
)

// subScores are the five factors, each in [0,1].
type subScores struct {
	overlap    float64
	tfidf      float64
	importance float64
	experience float64
	rarity     float64
	matched    []string
	missing    []string
}

func (s subScores) composite() float64 {
	return skillOverlapWeight*s.overlap +
		tfidfWeight*s.tfidf +
		skillImportanceWeight*s.importance +
		experienceWeight*s.experience +
		rarityWeight*s.rarity
}

// computeSkillOverlapScore returns |C∩J|/|J| with the matched and missing
// skills in posting order. An empty J scores 0.
func computeSkillOverlapScore(candidate map[string]struct{}, job []string) (float64, []string, []string) {
	matched := make([]string, 0, len(job))
	missing := make([]string, 0, len(job))
	for _, s := range job {
		if _, ok := candidate[s]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	if len(job) == 0 {
		return 0, matched, missing
	}
	return float64(len(matched)) / float64(len(job)), matched, missing
}

// computeTFIDFScore weights matched skills by corpus IDF, normalized by the
// IDF mass of the whole posting.
func computeTFIDFScore(matched, job []string, idx *corpus.Index) float64 {
	total := 0.0
	for _, s := range job {
		total += idx.IDF(s)
	}
	if total <= 0 {
		return 0
	}
	got := 0.0
	for _, s := range matched {
		got += idx.IDF(s)
	}
	return got / total
}

// computeSkillImportanceScore is the share of the posting's critical skills
// the candidate has. Postings without critical skills fall back to overlap.
func computeSkillImportanceScore(matched, job []string, overlap float64, k *skills.Knowledge) float64 {
	required := 0
	for _, s := range job {
		if k.IsScoringCritical(s) {
			required++
		}
	}
	if required == 0 {
		return overlap
	}
	have := 0
	for _, s := range matched {
		if k.IsScoringCritical(s) {
			have++
		}
	}
	return float64(have) / float64(required)
}

// computeExperienceScore penalizes seniority mismatch in either direction,
// floored so it never zeroes a candidate out.
func computeExperienceScore(candidateYears float64, requiredYears int) float64 {
	if requiredYears == 0 {
		return 1.0
	}
	diff := math.Abs(candidateYears - float64(requiredYears))
	return math.Max(1.0-diff*experiencePenaltyPerYear, experienceFloor)
}

// computeRarityBonus rewards matched skills that few postings ask for.
func computeRarityBonus(matched []string, idx *corpus.Index) float64 {
	if idx.TotalJobs() == 0 {
		return 0
	}
	rare := 0
	for _, s := range matched {
		if idx.IsRare(s) {
			rare++
		}
	}
	return math.Min(float64(rare)*rarityBonusPerSkill, rarityBonusCap)
}

// classifyFit buckets a 0-1 composite score.
func classifyFit(score float64) types.FitLevel {
	switch {
	case score >= excellentFitThreshold:
		return types.FitExcellent
	case score >= strongFitThreshold:
		return types.FitStrong
	case score >= goodFitThreshold:
		return types.FitGood
	case score >= moderateFitThreshold:
		return types.FitModerate
	default:
		return types.FitPoor
	}
}

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
