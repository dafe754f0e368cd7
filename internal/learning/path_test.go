package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/types"
)

func TestBuildPath_Ordering(t *testing.T) {
	path := BuildPath([]string{"Kubernetes", "React", "Docker", "SQL", "Python", "Microservices", "AWS"})
	require.Len(t, path, 7)

	// High priority bootstrap skills first, in input order since both have no prerequisites.
	assert.Equal(t, "SQL", path[0].Skill)
	assert.Equal(t, "Python", path[1].Skill)
	assert.Equal(t, types.PriorityHigh, path[0].Priority)
	assert.Equal(t, types.PriorityHigh, path[1].Priority)

	// Medium: aws (0 prereqs), kubernetes (1), docker (1), microservices (2), react (3).
	var mediums []string
	for _, s := range path[2:] {
		assert.Equal(t, types.PriorityMedium, s.Priority)
		mediums = append(mediums, s.Skill)
	}
	assert.Equal(t, []string{"AWS", "Kubernetes", "Docker", "Microservices", "React"}, mediums)
}

func TestBuildPath_HighBeforeMedium(t *testing.T) {
	inputs := [][]string{
		{"react", "git", "deep learning", "javascript"},
		{"graphql", "sql", "ci/cd"},
		{"nlp", "python", "node.js", "typescript", "git"},
	}
	for _, in := range inputs {
		path := BuildPath(in)
		seenMedium := false
		for _, step := range path {
			if step.Priority == types.PriorityMedium {
				seenMedium = true
			} else {
				assert.False(t, seenMedium, "high step %q after a medium step in %v", step.Skill, in)
			}
		}
	}
}

func TestBuildPath_StepDetails(t *testing.T) {
	path := BuildPath([]string{"Kubernetes"})
	require.Len(t, path, 1)

	step := path[0]
	assert.Equal(t, "Kubernetes", step.Skill)
	assert.Equal(t, []string{"docker"}, step.Prerequisites)
	assert.Equal(t, 25, step.EstimatedHours)
	assert.Equal(t, []string{"Google Search", "YouTube Tutorials", "Official Documentation"}, step.Resources)
}

func TestBuildPath_UnknownSkillDefaults(t *testing.T) {
	path := BuildPath([]string{"Terraform", "", "  "})
	require.Len(t, path, 1)

	assert.Empty(t, path[0].Prerequisites)
	assert.Equal(t, 20, path[0].EstimatedHours)
	assert.Equal(t, types.PriorityMedium, path[0].Priority)
	assert.NotEmpty(t, path[0].Resources)
}

func TestBuildPath_Empty(t *testing.T) {
	assert.Empty(t, BuildPath(nil))
}

func TestTotalHours(t *testing.T) {
	path := BuildPath([]string{"python", "docker", "terraform"})
	assert.Equal(t, 40+15+20, TotalHours(path))
}
