// Package observability provides Prometheus metrics for the HTTP service and
// boxed text output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/skillmatch/internal/corpus"
	"github.com/jonathan/skillmatch/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func moreLine(sb *strings.Builder, total, shown int, noun string) {
	if total > shown {
		fmt.Fprintf(sb, "\n... and %d more %s", total-shown, noun)
	}
}

// PrintMatches outputs the top match results with their breakdown.
func (p *Printer) PrintMatches(matches []types.MatchResult) {
	if len(matches) == 0 {
		p.printBox("TOP MATCHES", "No postings in corpus")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Postings scored: %d\n\n", len(matches))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		fmt.Fprintf(&sb, "#%d  %s  (%s)\n", i+1, m.Role, m.FitLevel)
		fmt.Fprintf(&sb, "    Score: %.2f  Salary: %.1f LPA\n", m.MatchScore, m.Salary)
		b := m.ScoreBreakdown
		fmt.Fprintf(&sb, "    ovl %.1f  tfidf %.1f  imp %.1f  exp %.1f  rare %.1f\n",
			b.SkillOverlap, b.TFIDFWeighted, b.SkillImportance, b.ExperienceFit, b.RarityBonus)
		if len(m.MissingSkills) > 0 {
			fmt.Fprintf(&sb, "    Missing: %s\n", strings.Join(m.MissingSkills, ", "))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	moreLine(&sb, len(matches), count, "postings")

	p.printBox("TOP MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanked outputs salary-filtered results.
func (p *Printer) PrintRanked(ranked []types.RankedMatch) {
	if len(ranked) == 0 {
		p.printBox("FILTERED MATCHES", "No postings within the salary range")
		return
	}

	var sb strings.Builder
	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := ranked[i]
		fmt.Fprintf(&sb, "#%d  %s\n", i+1, r.Role)
		fmt.Fprintf(&sb, "    Final: %.2f  Match: %.2f  Preference: %.1f\n", r.FinalScore, r.MatchScore, r.PreferenceScore)
	}
	moreLine(&sb, len(ranked), count, "postings")

	p.printBox("FILTERED MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGap outputs a gap analysis summary and the head of the learning path.
func (p *Printer) PrintGap(gap *types.GapAnalysis) {
	if gap == nil {
		return
	}

	var sb strings.Builder
	s := gap.Summary
	fmt.Fprintf(&sb, "Required: %d  Matched: %d  Partial: %d  Missing: %d\n",
		s.TotalRequired, s.FullyMatched, s.PartiallyMatched, s.Missing)
	fmt.Fprintf(&sb, "Match: %.1f%%  Severity: %.1f  Weeks: %d\n\n",
		gap.MatchPercentage, gap.GapSeverityScore, gap.EstimatedTimeWeeks)

	if len(gap.FuzzyMatches) > 0 {
		sb.WriteString("Close matches:\n")
		for _, f := range gap.FuzzyMatches {
			fmt.Fprintf(&sb, "  ~ %s (have %s)\n", f.Required, f.CandidateHas)
		}
		sb.WriteString("\n")
	}
	if len(gap.CriticalMissing) > 0 {
		fmt.Fprintf(&sb, "Critical: %s\n", strings.Join(gap.CriticalMissing, ", "))
	}
	if len(gap.NiceToHaveMissing) > 0 {
		fmt.Fprintf(&sb, "Nice to have: %s\n", strings.Join(gap.NiceToHaveMissing, ", "))
	}

	if len(gap.LearningPath) > 0 {
		sb.WriteString("\nLearning path:\n")
		count := min(len(gap.LearningPath), maxItemsToShow)
		for i := 0; i < count; i++ {
			step := gap.LearningPath[i]
			fmt.Fprintf(&sb, "  %d. %s [%s] %dh", i+1, step.Skill, step.Priority, step.EstimatedHours)
			if len(step.Prerequisites) > 0 {
				fmt.Fprintf(&sb, " after %s", strings.Join(step.Prerequisites, ", "))
			}
			sb.WriteString("\n")
		}
		moreLine(&sb, len(gap.LearningPath), count, "steps")
	}

	p.printBox("SKILL GAP ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCorpusStats outputs corpus size, frequent skills and rare skills.
func (p *Printer) PrintCorpusStats(snap *corpus.Snapshot, top int) {
	if snap == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Source:   %s\n", snap.Source)
	fmt.Fprintf(&sb, "Version:  %s\n", snap.Version)
	fmt.Fprintf(&sb, "Loaded:   %s\n", snap.LoadedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Postings: %d  Distinct skills: %d\n", snap.Index.TotalJobs(), snap.Index.DistinctSkills())

	counts := snap.Index.TopSkills(top)
	if len(counts) > 0 {
		sb.WriteString("\nMost frequent:\n")
		for _, c := range counts {
			fmt.Fprintf(&sb, "  • %-24s %d\n", c.Skill, c.Count)
		}
	}

	rare := snap.Index.RareSkills()
	if len(rare) > 0 {
		shown := min(len(rare), maxItemsToShow*2)
		fmt.Fprintf(&sb, "\nRare (<%.0f%% of postings): %s", corpus.RarityThreshold*100, strings.Join(rare[:shown], ", "))
		moreLine(&sb, len(rare), shown, "skills")
	}

	p.printBox("CORPUS STATISTICS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeedback outputs the recommended role, its gap and the feedback text.
func (p *Printer) PrintFeedback(resp *types.FeedbackResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Role:   %s (%s)\n", resp.RecommendedRole, resp.Match.FitLevel)
	fmt.Fprintf(&sb, "Score:  %.2f  Level: %s\n", resp.Match.MatchScore, resp.ExperienceLevel)
	fmt.Fprintf(&sb, "Source: %s", resp.FeedbackSource)
	p.printBox("RECOMMENDATION", sb.String())

	p.PrintGap(resp.Gap)

	var lines []string
	for _, para := range strings.Split(resp.Feedback, "\n") {
		lines = append(lines, wrap(para, boxWidth-4)...)
	}
	p.printBox("CAREER FEEDBACK", strings.Join(lines, "\n"))
}

// wrap breaks s on spaces into lines of at most width runes. Longer words
// are left for printBox to clip.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
