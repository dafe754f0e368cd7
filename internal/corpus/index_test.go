package corpus

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

func samplePostings() []types.JobPosting {
	return []types.JobPosting{
		{Role: "Backend", RequiredSkills: []string{"python", "sql", "docker"}},
		{Role: "Frontend", RequiredSkills: []string{"javascript", "ReactJS", "react.js"}},
		{Role: "Data", RequiredSkills: []string{"Python", "SQL"}},
		{Role: "Empty", RequiredSkills: nil},
	}
}

func TestBuildIndex(t *testing.T) {
	idx := BuildIndex(samplePostings(), skills.Default())

	assert.Equal(t, 4, idx.TotalJobs())
	assert.Equal(t, 2, idx.Frequency("python"))
	assert.Equal(t, 2, idx.Frequency("sql"))
	assert.Equal(t, 1, idx.Frequency("react"), "duplicate spellings in one posting count once")
	assert.Equal(t, 1, idx.Frequency("js"))
	assert.Equal(t, 0, idx.Frequency(""))
	assert.Equal(t, 5, idx.DistinctSkills())

	for _, c := range idx.TopSkills(-1) {
		assert.LessOrEqual(t, c.Count, idx.TotalJobs())
	}
}

func TestIndex_IDF(t *testing.T) {
	idx := BuildIndex(samplePostings(), skills.Default())

	assert.InDelta(t, math.Log(4.0/2.0), idx.IDF("python"), 1e-9)
	assert.InDelta(t, math.Log(4.0), idx.IDF("cobol"), 1e-9, "absent skills get the maximum weight")

	empty := BuildIndex(nil, skills.Default())
	assert.Equal(t, 0, empty.TotalJobs())
	assert.Equal(t, 0.0, empty.IDF("python"))
	assert.False(t, empty.IsRare("python"))
}

func TestIndex_Rarity(t *testing.T) {
	postings := make([]types.JobPosting, 20)
	for i := range postings {
		postings[i] = types.JobPosting{Role: "Generic", RequiredSkills: []string{"git"}}
	}
	postings[0].RequiredSkills = append(postings[0].RequiredSkills, "rust")
	postings[1].RequiredSkills = append(postings[1].RequiredSkills, "go")
	postings[2].RequiredSkills = append(postings[2].RequiredSkills, "go")
	postings[3].RequiredSkills = append(postings[3].RequiredSkills, "go")

	idx := BuildIndex(postings, skills.Default())

	// 0.15 * 20 = 3 postings; rarity is strictly below.
	assert.True(t, idx.IsRare("rust"))
	assert.False(t, idx.IsRare("go"))
	assert.False(t, idx.IsRare("git"))
	assert.Equal(t, []string{"rust"}, idx.RareSkills())
}

func TestIndex_TopSkills(t *testing.T) {
	idx := BuildIndex(samplePostings(), skills.Default())

	top := idx.TopSkills(2)
	assert.Equal(t, []SkillCount{{Skill: "python", Count: 2}, {Skill: "sql", Count: 2}}, top)
	assert.Len(t, idx.TopSkills(100), 5)
}
