package skills

import "strings"

// CharJaccard is the Jaccard similarity of the character sets of a and b,
// compared case-insensitively. Empty input scores 0.
func CharJaccard(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	setA := runeSet(strings.ToLower(a))
	setB := runeSet(strings.ToLower(b))

	intersection := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// BestMatch returns the candidate most similar to target whose similarity
// exceeds threshold. Earlier candidates win ties.
func BestMatch(target string, candidates []string, threshold float64) (string, float64, bool) {
	best := ""
	bestScore := 0.0
	for _, c := range candidates {
		score := CharJaccard(target, c)
		if score > threshold && score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, bestScore, best != ""
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}
