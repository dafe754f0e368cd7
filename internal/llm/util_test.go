package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "  Focus on docker first.  ", expected: "Focus on docker first."},
		{name: "markdown fence", input: "```markdown\n**Strengths**\n- python\n```", expected: "**Strengths**\n- python"},
		{name: "bare fence", input: "```\nLearn aws.\n```", expected: "Learn aws."},
		{name: "fence with prose on first line", input: "```Learn aws next week\n```", expected: "Learn aws next week"},
		{name: "empty", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcdef", 2))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "né...", Truncate("néant", 2))
}
