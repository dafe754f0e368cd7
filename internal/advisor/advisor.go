// Package advisor produces career feedback for a candidate's best-matching
// role, using an LLM when one is configured and a fixed template otherwise.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/skillmatch/internal/llm"
	"github.com/jonathan/skillmatch/internal/logging"
	"github.com/jonathan/skillmatch/internal/prompts"
	"github.com/jonathan/skillmatch/internal/types"
)

// MinFeedbackChars is the shortest completion accepted before falling back.
const MinFeedbackChars = 150

// Source names where feedback text came from.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceTemplate Source = "template"
)

// Request carries everything the advisor knows about the candidate.
type Request struct {
	Skills         []string
	Role           string
	MatchScore     float64
	FitLevel       types.FitLevel
	Gap            *types.GapAnalysis
	JobDescription string
}

// Feedback is the advisor's answer.
type Feedback struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// Advisor generates feedback. The zero value and an Advisor without a client
// always use the template.
type Advisor struct {
	client  llm.Client
	breaker *Breaker
	logger  logging.Logger
}

// New creates an Advisor. client and breaker may be nil.
func New(client llm.Client, breaker *Breaker, logger logging.Logger) *Advisor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Advisor{client: client, breaker: breaker, logger: logger}
}

// Enabled reports whether an LLM client is configured.
func (a *Advisor) Enabled() bool {
	return a != nil && a.client != nil
}

// Feedback never fails: any provider problem degrades to the template.
func (a *Advisor) Feedback(ctx context.Context, req Request) Feedback {
	if !a.Enabled() {
		return Feedback{Text: Fallback(req), Source: SourceTemplate}
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		a.logger.WithError(err).Error("failed to build feedback prompt", nil)
		return Feedback{Text: Fallback(req), Source: SourceTemplate}
	}

	text, err := a.breaker.Execute(func() (string, error) {
		return a.client.Complete(ctx, prompt)
	})
	if err != nil {
		a.logger.WithError(err).Warn("feedback generation failed, using template", logging.Fields{
			"role":    req.Role,
			"model":   a.client.Model(),
			"breaker": a.breaker.State(),
		})
		return Feedback{Text: Fallback(req), Source: SourceTemplate}
	}
	if len(text) < MinFeedbackChars {
		a.logger.Info("feedback too short, using template", logging.Fields{
			"role":   req.Role,
			"length": len(text),
		})
		return Feedback{Text: Fallback(req), Source: SourceTemplate}
	}

	return Feedback{Text: text, Source: SourceLLM}
}

// BuildPrompt renders the feedback prompt for req.
func BuildPrompt(req Request) (string, error) {
	critical, nice, weeks := gapFields(req.Gap)
	jd := strings.TrimSpace(req.JobDescription)
	if jd == "" {
		jd = "Not provided. Use general expectations for " + req.Role + "."
	}

	return prompts.Render(prompts.AdvisorFile, prompts.AdvisorFeedback, map[string]string{
		"Role":           req.Role,
		"MatchScore":     fmt.Sprintf("%.1f", req.MatchScore),
		"FitLevel":       string(req.FitLevel),
		"Level":          types.ExperienceLevel(len(req.Skills)),
		"SkillCount":     fmt.Sprint(len(req.Skills)),
		"Skills":         joinOr(head(req.Skills, 12), "none identified"),
		"Critical":       joinOr(head(critical, 8), "none"),
		"NiceToHave":     joinOr(head(nice, 8), "none"),
		"Weeks":          fmt.Sprint(weeks),
		"JobDescription": llm.Truncate(jd, 600),
	})
}

// Fallback renders deterministic feedback from the match and gap data.
func Fallback(req Request) string {
	critical, nice, weeks := gapFields(req.Gap)
	var b strings.Builder

	switch {
	case req.MatchScore >= 80:
		b.WriteString("**Excellent match.** Your skills line up well with the " + req.Role + " role.")
	case req.MatchScore >= 60:
		b.WriteString("**Good foundation.** Closing a few gaps will make you competitive for " + req.Role + ".")
	case req.MatchScore >= 40:
		b.WriteString("**Needs work.** You have relevant skills but several core requirements for " + req.Role + " are missing.")
	default:
		b.WriteString("**Significant gaps.** " + req.Role + " needs substantial upskilling from your current profile.")
	}

	b.WriteString("\n\n**Strengths:**\n")
	if len(req.Skills) >= 8 {
		fmt.Fprintf(&b, "- Broad skill set with %d listed competencies\n", len(req.Skills))
	}
	if len(req.Skills) > 0 {
		fmt.Fprintf(&b, "- Working knowledge of %s\n", strings.Join(head(req.Skills, 3), ", "))
	} else {
		b.WriteString("- No skills listed yet\n")
	}
	if req.Gap != nil && len(req.Gap.ExactMatches) > 0 {
		fmt.Fprintf(&b, "- Already covers %d of the role's required skills\n", len(req.Gap.ExactMatches))
	}

	b.WriteString("\n**Skill gaps:**\n")
	if len(critical) == 0 && len(nice) == 0 {
		b.WriteString("- None. Focus on depth and portfolio projects.\n")
	}
	if len(critical) > 0 {
		fmt.Fprintf(&b, "- Critical: %s\n", strings.Join(head(critical, 4), ", "))
	}
	if len(nice) > 0 {
		fmt.Fprintf(&b, "- Nice to have: %s\n", strings.Join(head(nice, 4), ", "))
	}
	if len(critical)+len(nice) > 0 {
		fmt.Fprintf(&b, "- Estimated time to close: about %d weeks at 10 hours per week\n", weeks)
	}

	b.WriteString("\n**Next steps:**\n")
	step := 1
	if req.Gap != nil {
		for _, s := range head(req.Gap.LearningPath, 3) {
			fmt.Fprintf(&b, "%d. Learn %s (~%dh)", step, s.Skill, s.EstimatedHours)
			if len(s.Resources) > 0 {
				fmt.Fprintf(&b, " using %s", s.Resources[0])
			}
			b.WriteString("\n")
			step++
		}
	}
	if len(critical) > 0 {
		fmt.Fprintf(&b, "%d. Build a portfolio project that uses %s\n", step, strings.Join(head(critical, 2), " and "))
	} else {
		fmt.Fprintf(&b, "%d. Build a portfolio project that shows depth in your strongest skills\n", step)
	}
	step++
	fmt.Fprintf(&b, "%d. Tailor your resume to each %s posting and quantify results\n", step, req.Role)

	return strings.TrimRight(b.String(), "\n")
}

func gapFields(gap *types.GapAnalysis) (critical, nice []string, weeks int) {
	if gap == nil {
		return nil, nil, 0
	}
	return gap.CriticalMissing, gap.NiceToHaveMissing, gap.EstimatedTimeWeeks
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func joinOr(s []string, empty string) string {
	if len(s) == 0 {
		return empty
	}
	return strings.Join(s, ", ")
}
