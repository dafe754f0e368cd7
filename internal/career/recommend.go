// Package career turns a skill profile into a recommended role, the gap
// against that role, and written feedback.
package career

import (
	"context"
	"errors"

	"github.com/jonathan/skillmatch/internal/advisor"
	"github.com/jonathan/skillmatch/internal/corpus"
	"github.com/jonathan/skillmatch/internal/gap"
	"github.com/jonathan/skillmatch/internal/ranking"
	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

// ErrEmptyCorpus is returned when there is no posting to recommend.
var ErrEmptyCorpus = errors.New("corpus is empty")

// Recommender runs the match, gap and feedback steps against one snapshot.
type Recommender struct {
	knowledge *skills.Knowledge
	scorer    *ranking.Scorer
	analyzer  *gap.Analyzer
	advisor   *advisor.Advisor
}

// New creates a Recommender. A nil advisor uses the template.
func New(k *skills.Knowledge, adv *advisor.Advisor) *Recommender {
	if k == nil {
		k = skills.Default()
	}
	if adv == nil {
		adv = advisor.New(nil, nil, nil)
	}
	return &Recommender{
		knowledge: k,
		scorer:    ranking.NewScorer(k),
		analyzer:  gap.NewAnalyzer(k),
		advisor:   adv,
	}
}

// Recommend picks the best-matching role, analyzes the gap against its
// required skills and asks the advisor for feedback.
func (r *Recommender) Recommend(ctx context.Context, snap *corpus.Snapshot, req types.FeedbackRequest) (*types.FeedbackResponse, error) {
	if snap == nil || len(snap.Postings) == 0 {
		return nil, ErrEmptyCorpus
	}

	profile := types.CandidateProfile{Skills: req.Skills, ExperienceYears: req.ExperienceYears}
	matches := r.scorer.MatchJobs(profile, snap.Postings, snap.Index)
	if len(matches) == 0 {
		return nil, ErrEmptyCorpus
	}
	best := matches[0]

	var required []string
	if i := best.PostingIndex; i >= 0 && i < len(snap.Postings) {
		required = snap.Postings[i].RequiredSkills
	} else if posting, ok := snap.FindRole(best.Role); ok {
		required = posting.RequiredSkills
	}
	analysis := r.analyzer.Analyze(req.Skills, required)

	fb := r.advisor.Feedback(ctx, advisor.Request{
		Skills:         req.Skills,
		Role:           best.Role,
		MatchScore:     best.MatchScore,
		FitLevel:       best.FitLevel,
		Gap:            analysis,
		JobDescription: req.JobDescription,
	})

	return &types.FeedbackResponse{
		RecommendedRole: best.Role,
		ExperienceLevel: types.ExperienceLevel(len(r.knowledge.NormalizeAll(req.Skills))),
		Match:           best,
		Gap:             analysis,
		Feedback:        fb.Text,
		FeedbackSource:  string(fb.Source),
	}, nil
}
