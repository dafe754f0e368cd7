// Package learning orders missing skills into a remediation plan.
package learning

import (
	"sort"

	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

// Builder turns missing skills into learning steps using one knowledge pack.
type Builder struct {
	knowledge *skills.Knowledge
}

// NewBuilder creates a Builder. A nil pack uses skills.Default().
func NewBuilder(k *skills.Knowledge) *Builder {
	if k == nil {
		k = skills.Default()
	}
	return &Builder{knowledge: k}
}

// BuildPath builds a plan with the default knowledge pack.
func BuildPath(missing []string) []types.LearningStep {
	return NewBuilder(nil).BuildPath(missing)
}

// BuildPath returns one step per skill, keeping the caller's spelling for display.
//
// Steps are ordered high priority first, then by prerequisite count. This is
// a heuristic: a step can precede one of its own prerequisites when that
// prerequisite is not itself missing.
func (b *Builder) BuildPath(missing []string) []types.LearningStep {
	path := make([]types.LearningStep, 0, len(missing))
	for _, skill := range missing {
		norm := b.knowledge.Normalize(skill)
		if norm == "" {
			continue
		}

		priority := types.PriorityMedium
		if b.knowledge.IsBootstrap(norm) {
			priority = types.PriorityHigh
		}

		path = append(path, types.LearningStep{
			Skill:          skill,
			Prerequisites:  b.knowledge.Prerequisites(norm),
			EstimatedHours: b.knowledge.Hours(norm),
			Resources:      b.knowledge.Resources(norm),
			Priority:       priority,
		})
	}

	sort.SliceStable(path, func(i, j int) bool {
		hi, hj := path[i].Priority == types.PriorityHigh, path[j].Priority == types.PriorityHigh
		if hi != hj {
			return hi
		}
		return len(path[i].Prerequisites) < len(path[j].Prerequisites)
	})
	return path
}

// TotalHours sums the estimated hours of a plan.
func TotalHours(path []types.LearningStep) int {
	total := 0
	for _, step := range path {
		total += step.EstimatedHours
	}
	return total
}
