package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/types"
)

func TestChunkPostings(t *testing.T) {
	postings := make([]types.JobPosting, 7)

	tests := []struct {
		name     string
		size     int
		expected []int
	}{
		{"even split", 7, []int{7}},
		{"remainder", 3, []int{3, 3, 1}},
		{"larger than input", 100, []int{7}},
		{"non-positive size", 0, []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := chunkPostings(postings, tt.size)
			sizes := make([]int, len(chunks))
			for i, c := range chunks {
				sizes[i] = len(c)
			}
			assert.Equal(t, tt.expected, sizes)
		})
	}
}

func TestChunkPostings_Empty(t *testing.T) {
	assert.Empty(t, chunkPostings(nil, 10))
}

func TestCleanSkills(t *testing.T) {
	assert.Equal(t, []string{"Python", "AWS"}, cleanSkills([]string{" Python ", "", "  ", "AWS"}))
	assert.Equal(t, []string{}, cleanSkills(nil))
}

func TestSchemaEmbedded(t *testing.T) {
	require.NotEmpty(t, schemaSQL)
	assert.True(t, strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS job_postings"))
	assert.Contains(t, schemaSQL, "skills              TEXT[]")
}
