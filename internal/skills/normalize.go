package skills

import "strings"

// Normalize returns the canonical form of a skill token: lower-cased, trimmed
// and mapped through the synonym table. It is idempotent and never fails;
// an empty result means "no skill".
func (k *Knowledge) Normalize(token string) string {
	folded := fold(token)
	if canonical, ok := k.synonyms[folded]; ok {
		return canonical
	}
	return folded
}

// NormalizeAll normalizes tokens, dropping empties and duplicates.
// The first occurrence of each canonical form keeps its position.
func (k *Knowledge) NormalizeAll(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		n := k.Normalize(token)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Normalize canonicalizes a skill token with the default knowledge pack.
func Normalize(token string) string {
	return Default().Normalize(token)
}

// SplitList splits a comma-separated skills field into trimmed, non-empty tokens.
func SplitList(field string) []string {
	parts := strings.Split(field, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
