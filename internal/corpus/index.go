package corpus

import (
	"math"
	"sort"

	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

// RarityThreshold is the share of postings below which a skill counts as rare.
const RarityThreshold = 0.15

// Index holds per-skill posting counts for a corpus. It is immutable after BuildIndex.
type Index struct {
	frequency map[string]int
	totalJobs int
}

// SkillCount pairs a normalized skill with the number of postings requiring it.
type SkillCount = types.SkillFrequency

// BuildIndex counts, for every normalized skill, how many postings require it.
// A skill listed twice in one posting counts once.
func BuildIndex(postings []types.JobPosting, k *skills.Knowledge) *Index {
	idx := &Index{
		frequency: make(map[string]int),
		totalJobs: len(postings),
	}
	for _, p := range postings {
		for _, s := range k.NormalizeAll(p.RequiredSkills) {
			idx.frequency[s]++
		}
	}
	return idx
}

// TotalJobs is the number of postings the index was built from.
func (idx *Index) TotalJobs() int {
	return idx.totalJobs
}

// Frequency is the number of postings requiring a normalized skill.
func (idx *Index) Frequency(skill string) int {
	return idx.frequency[skill]
}

// DistinctSkills is the number of distinct normalized skills in the corpus.
func (idx *Index) DistinctSkills() int {
	return len(idx.frequency)
}

// IDF is ln(total / max(freq, 1)). Skills absent from the corpus get the
// maximum weight ln(total). An empty corpus yields 0.
func (idx *Index) IDF(skill string) float64 {
	if idx.totalJobs == 0 {
		return 0
	}
	freq := idx.frequency[skill]
	if freq < 1 {
		freq = 1
	}
	return math.Log(float64(idx.totalJobs) / float64(freq))
}

// IsRare reports whether a skill appears in fewer than RarityThreshold of postings.
func (idx *Index) IsRare(skill string) bool {
	if idx.totalJobs == 0 {
		return false
	}
	return float64(idx.frequency[skill]) < float64(idx.totalJobs)*RarityThreshold
}

// TopSkills returns up to n skills ordered by descending frequency, then name.
func (idx *Index) TopSkills(n int) []SkillCount {
	counts := idx.sortedCounts()
	if n >= 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// RareSkills returns every corpus skill below the rarity threshold, by name.
func (idx *Index) RareSkills() []string {
	var rare []string
	for skill := range idx.frequency {
		if idx.IsRare(skill) {
			rare = append(rare, skill)
		}
	}
	sort.Strings(rare)
	return rare
}

func (idx *Index) sortedCounts() []SkillCount {
	counts := make([]SkillCount, 0, len(idx.frequency))
	for skill, c := range idx.frequency {
		counts = append(counts, SkillCount{Skill: skill, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Skill < counts[j].Skill
	})
	return counts
}
