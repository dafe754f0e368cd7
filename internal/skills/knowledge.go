// Package skills holds the skill knowledge pack and the normalization rules built on it.
package skills

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

//go:embed knowledge.json
var embeddedKnowledge []byte

var (
	defaultOnce      sync.Once
	defaultKnowledge *Knowledge
)

// knowledgeFile is the on-disk shape of a knowledge pack.
type knowledgeFile struct {
	Version           string              `json:"version"`
	Synonyms          map[string]string   `json:"synonyms"`
	ScoringCritical   []string            `json:"scoring_critical"`
	Foundational      []string            `json:"foundational"`
	Bootstrap         []string            `json:"bootstrap"`
	Dependencies      map[string][]string `json:"dependencies"`
	LearningHours     map[string]int      `json:"learning_hours"`
	DefaultHours      int                 `json:"default_hours"`
	Resources         map[string][]string `json:"resources"`
	FallbackResources []string            `json:"fallback_resources"`
}

// Knowledge is an immutable set of skill tables: synonyms, critical sets,
// the prerequisite graph, effort estimates and learning resources.
// Every table key is stored in normalized form, so lookups take normalized tokens.
type Knowledge struct {
	version           string
	synonyms          map[string]string
	scoringCritical   map[string]struct{}
	foundational      map[string]struct{}
	bootstrap         map[string]struct{}
	dependencies      map[string][]string
	hours             map[string]int
	defaultHours      int
	resources         map[string][]string
	fallbackResources []string
}

// Default returns the knowledge pack compiled into the binary.
func Default() *Knowledge {
	defaultOnce.Do(func() {
		k, err := ParseKnowledge(embeddedKnowledge)
		if err != nil {
			panic(fmt.Sprintf("embedded knowledge pack is invalid: %v", err))
		}
		defaultKnowledge = k
	})
	return defaultKnowledge
}

// LoadKnowledge reads a knowledge pack from a JSON file.
func LoadKnowledge(path string) (*Knowledge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge pack %s: %w", path, err)
	}
	k, err := ParseKnowledge(data)
	if err != nil {
		return nil, fmt.Errorf("knowledge pack %s: %w", path, err)
	}
	return k, nil
}

// ParseKnowledge decodes and validates a knowledge pack.
func ParseKnowledge(data []byte) (*Knowledge, error) {
	var f knowledgeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge pack: %w", err)
	}
	if strings.TrimSpace(f.Version) == "" {
		return nil, fmt.Errorf("knowledge pack: version is required")
	}
	if f.DefaultHours <= 0 {
		return nil, fmt.Errorf("knowledge pack: default_hours must be positive, got %d", f.DefaultHours)
	}
	if len(f.FallbackResources) == 0 {
		return nil, fmt.Errorf("knowledge pack: fallback_resources must not be empty")
	}

	k := &Knowledge{
		version:           f.Version,
		synonyms:          make(map[string]string, len(f.Synonyms)),
		dependencies:      make(map[string][]string, len(f.Dependencies)),
		hours:             make(map[string]int, len(f.LearningHours)),
		defaultHours:      f.DefaultHours,
		resources:         make(map[string][]string, len(f.Resources)),
		fallbackResources: f.FallbackResources,
	}

	for from, to := range f.Synonyms {
		k.synonyms[fold(from)] = fold(to)
	}
	// A synonym target that is itself rewritten would make Normalize non-idempotent.
	for from, to := range k.synonyms {
		if _, chained := k.synonyms[to]; chained {
			return nil, fmt.Errorf("knowledge pack: synonym %q maps to %q which is itself a synonym", from, to)
		}
	}

	k.scoringCritical = k.normalizedSet(f.ScoringCritical)
	k.foundational = k.normalizedSet(f.Foundational)
	k.bootstrap = k.normalizedSet(f.Bootstrap)

	for skill, prereqs := range f.Dependencies {
		k.dependencies[k.Normalize(skill)] = k.NormalizeAll(prereqs)
	}
	for skill, h := range f.LearningHours {
		if h <= 0 {
			return nil, fmt.Errorf("knowledge pack: learning_hours[%q] must be positive, got %d", skill, h)
		}
		k.hours[k.Normalize(skill)] = h
	}
	for skill, res := range f.Resources {
		k.resources[k.Normalize(skill)] = res
	}

	return k, nil
}

func (k *Knowledge) normalizedSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if n := k.Normalize(item); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Version identifies the knowledge pack.
func (k *Knowledge) Version() string {
	return k.version
}

// IsScoringCritical reports whether a normalized skill counts toward match importance.
func (k *Knowledge) IsScoringCritical(skill string) bool {
	_, ok := k.scoringCritical[skill]
	return ok
}

// IsFoundational reports whether a normalized skill blocks role readiness when missing.
func (k *Knowledge) IsFoundational(skill string) bool {
	_, ok := k.foundational[skill]
	return ok
}

// IsBootstrap reports whether a normalized skill is learned first.
func (k *Knowledge) IsBootstrap(skill string) bool {
	_, ok := k.bootstrap[skill]
	return ok
}

// Prerequisites returns a copy of the prerequisites of a normalized skill.
// Unknown skills have none.
func (k *Knowledge) Prerequisites(skill string) []string {
	prereqs := k.dependencies[skill]
	out := make([]string, len(prereqs))
	copy(out, prereqs)
	return out
}

// Hours returns the estimated study hours for a normalized skill.
func (k *Knowledge) Hours(skill string) int {
	if h, ok := k.hours[skill]; ok {
		return h
	}
	return k.defaultHours
}

// Resources returns a copy of the learning resources for a normalized skill.
func (k *Knowledge) Resources(skill string) []string {
	res, ok := k.resources[skill]
	if !ok {
		res = k.fallbackResources
	}
	out := make([]string, len(res))
	copy(out, res)
	return out
}
