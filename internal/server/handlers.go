package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillmatch/internal/cache"
	"github.com/jonathan/skillmatch/internal/career"
	"github.com/jonathan/skillmatch/internal/corpus"
	"github.com/jonathan/skillmatch/internal/logging"
	"github.com/jonathan/skillmatch/internal/ranking"
	"github.com/jonathan/skillmatch/internal/types"
)

// validatable is implemented by every request type.
type validatable interface {
	Validate() error
}

// decodeRequest reads a size-limited JSON body into dst and validates it.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst validatable) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return &ErrBodyTooLarge{Limit: tooLarge.Limit}
		case errors.Is(err, io.EOF):
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		default:
			return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
		}
	}
	if err := dst.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// snapshot returns the active corpus, mapping load failures to 503.
func (s *Server) snapshot(ctx context.Context) (*corpus.Snapshot, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, &ErrCorpusUnavailable{Reason: "load failed", Cause: err}
	}
	return snap, nil
}

// cached looks key up in the match cache. Cache errors count as misses.
func (s *Server) cached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dst)
	switch {
	case err != nil:
		s.logger.WithError(err).Warn("match cache lookup failed", nil)
		s.metrics.CacheLookups.WithLabelValues("error").Inc()
	case hit:
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
	default:
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}
	return hit && err == nil
}

func (s *Server) remember(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.WithError(err).Warn("match cache store failed", nil)
	}
}

// handleMatch ranks the whole corpus for one candidate.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	key := cache.Key("match", snap.Version, s.store.Knowledge(), req.Skills, req.ExperienceYears, strconv.Itoa(req.Limit))
	var resp types.MatchResponse
	if s.cached(r.Context(), key, &resp) {
		s.jsonResponse(w, http.StatusOK, resp)
		return
	}

	matches := s.scorer.MatchJobs(req.Profile(), snap.Postings, snap.Index)
	s.metrics.Matches.WithLabelValues("match").Inc()

	resp = types.MatchResponse{
		CorpusVersion: snap.Version,
		TotalJobs:     snap.Index.TotalJobs(),
		Matches:       ranking.Top(matches, req.Limit),
	}
	s.remember(r.Context(), key, resp)
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleMatchFiltered ranks postings inside the requested salary band.
func (s *Server) handleMatchFiltered(w http.ResponseWriter, r *http.Request) {
	var req types.FilteredMatchRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	key := cache.Key("filtered", snap.Version, s.store.Knowledge(), req.Skills, req.ExperienceYears,
		strconv.Itoa(req.Limit), formatBound(req.MinSalary), formatBound(req.MaxSalary))
	var resp types.FilteredMatchResponse
	if s.cached(r.Context(), key, &resp) {
		s.jsonResponse(w, http.StatusOK, resp)
		return
	}

	ranked := s.scorer.RankWithFilters(req.Profile(), snap.Postings, snap.Index, req.Filters())
	s.metrics.Matches.WithLabelValues("filtered").Inc()

	resp = types.FilteredMatchResponse{
		CorpusVersion: snap.Version,
		Matches:       ranking.Top(ranked, req.Limit),
	}
	s.remember(r.Context(), key, resp)
	s.jsonResponse(w, http.StatusOK, resp)
}

func formatBound(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// handleMatchBatch scores several candidates against one snapshot. Results
// keep request order.
func (s *Server) handleMatchBatch(w http.ResponseWriter, r *http.Request) {
	var req types.BatchMatchRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	results := make([]types.BatchResult, len(req.Candidates))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(s.cfg.BatchWorkers)
	for i, c := range req.Candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			profile := types.CandidateProfile{Skills: c.Skills, ExperienceYears: c.ExperienceYears}
			matches := s.scorer.MatchJobs(profile, snap.Postings, snap.Index)
			results[i] = types.BatchResult{Matches: ranking.Top(matches, req.Limit)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.writeError(w, r, fmt.Errorf("batch match: %w", err))
		return
	}
	s.metrics.Matches.WithLabelValues("batch").Add(float64(len(req.Candidates)))

	s.jsonResponse(w, http.StatusOK, types.BatchMatchResponse{
		CorpusVersion: snap.Version,
		Results:       results,
	})
}

// handleGap analyzes a candidate against explicit skills or a corpus role.
func (s *Server) handleGap(w http.ResponseWriter, r *http.Request) {
	var req types.GapRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	required := req.RequiredSkills
	if required == nil {
		snap, err := s.snapshot(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		posting, ok := snap.FindRole(req.Role)
		if !ok {
			s.writeError(w, r, &ErrRoleNotFound{Role: req.Role})
			return
		}
		required = posting.RequiredSkills
	}

	result := s.analyzer.Analyze(req.CandidateSkills, required)
	s.metrics.GapAnalyses.Inc()
	s.jsonResponse(w, http.StatusOK, result)
}

// handleFeedback recommends the best-matching role, analyzes the gap to it
// and asks the advisor for career feedback.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req types.FeedbackRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp, err := s.recommender.Recommend(r.Context(), snap, req)
	if errors.Is(err, career.ErrEmptyCorpus) {
		s.writeError(w, r, &ErrCorpusUnavailable{Reason: "corpus is empty"})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.Matches.WithLabelValues("feedback").Inc()
	s.metrics.GapAnalyses.Inc()
	s.metrics.FeedbackTotal.WithLabelValues(resp.FeedbackSource).Inc()

	s.jsonResponse(w, http.StatusOK, resp)
}

const defaultStatsTop = 10

// handleCorpusStats summarizes the active snapshot.
func (s *Server) handleCorpusStats(w http.ResponseWriter, r *http.Request) {
	top := defaultStatsTop
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 1000 {
			s.writeError(w, r, &ErrValidation{Field: "top", Message: "must be an integer between 1 and 1000"})
			return
		}
		top = n
	}

	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, snap.Stats(top))
}

// handleCorpusReload rebuilds the snapshot from its source. A failed reload
// leaves the previous snapshot in service.
func (s *Server) handleCorpusReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Reload(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("corpus reload rejected", logging.Fields{"path": r.URL.Path})
		s.writeError(w, r, &ErrCorpusUnavailable{Reason: "reload failed, previous snapshot kept", Cause: err})
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ReloadResponse{
		Version:   snap.Version,
		TotalJobs: snap.Index.TotalJobs(),
	})
}

func (s *Server) handleReloadDisabled(w http.ResponseWriter, _ *http.Request) {
	s.errorResponse(w, http.StatusServiceUnavailable, "corpus reload requires auth.jwt_secret to be configured")
}
