package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonathan/skillmatch/internal/logging"
	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

// Source produces the full set of postings for a corpus.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]types.JobPosting, error)
}

// FileSource loads a CSV or JSON corpus file. Logger receives malformed-row
// warnings and may be nil.
type FileSource struct {
	Path   string
	Logger logging.Logger
}

// Name implements Source.
func (f FileSource) Name() string { return f.Path }

// Load implements Source.
func (f FileSource) Load(_ context.Context) ([]types.JobPosting, error) {
	return LoadFile(f.Path, f.Logger)
}

// PostingLister is satisfied by the database layer.
type PostingLister interface {
	ListJobPostings(ctx context.Context) ([]types.JobPosting, error)
}

// DBSource loads postings through a PostingLister.
type DBSource struct {
	Lister PostingLister
	Label  string
}

// Name implements Source.
func (d DBSource) Name() string {
	if d.Label != "" {
		return d.Label
	}
	return "postgres"
}

// Load implements Source.
func (d DBSource) Load(ctx context.Context) ([]types.JobPosting, error) {
	postings, err := d.Lister.ListJobPostings(ctx)
	if err != nil {
		return nil, &LoadError{Source: d.Name(), Cause: err}
	}
	return postings, nil
}

// StaticSource serves a fixed slice of postings.
type StaticSource []types.JobPosting

// Name implements Source.
func (StaticSource) Name() string { return "static" }

// Load implements Source.
func (s StaticSource) Load(_ context.Context) ([]types.JobPosting, error) {
	return []types.JobPosting(s), nil
}

// Snapshot is an immutable corpus generation: postings, their index, and a
// content version. Readers hold a *Snapshot for the duration of a request.
type Snapshot struct {
	Postings []types.JobPosting
	Index    *Index
	Version  string
	Source   string
	LoadedAt time.Time
}

// NewSnapshot indexes postings and stamps them with a content version.
func NewSnapshot(postings []types.JobPosting, k *skills.Knowledge, source string) *Snapshot {
	return &Snapshot{
		Postings: postings,
		Index:    BuildIndex(postings, k),
		Version:  contentVersion(postings, k),
		Source:   source,
		LoadedAt: time.Now().UTC(),
	}
}

// FindRole returns the first posting whose role matches case-insensitively.
func (s *Snapshot) FindRole(role string) (types.JobPosting, bool) {
	want := strings.TrimSpace(role)
	for _, p := range s.Postings {
		if strings.EqualFold(strings.TrimSpace(p.Role), want) {
			return p, true
		}
	}
	return types.JobPosting{}, false
}

// Stats summarizes the snapshot with its top n skills. n < 0 lists all.
func (s *Snapshot) Stats(n int) types.CorpusStats {
	rare := s.Index.RareSkills()
	if rare == nil {
		rare = []string{}
	}
	return types.CorpusStats{
		Version:        s.Version,
		Source:         s.Source,
		TotalJobs:      s.Index.TotalJobs(),
		DistinctSkills: s.Index.DistinctSkills(),
		LoadedAt:       s.LoadedAt,
		TopSkills:      s.Index.TopSkills(n),
		RareSkills:     rare,
	}
}

// contentVersion hashes the postings and the knowledge pack version, so two
// loads of identical data under identical rules share a version.
func contentVersion(postings []types.JobPosting, k *skills.Knowledge) string {
	h := sha256.New()
	h.Write([]byte(k.Version()))
	for _, p := range postings {
		h.Write([]byte{0})
		h.Write([]byte(p.Role))
		h.Write([]byte{0})
		h.Write([]byte(strings.Join(p.RequiredSkills, ",")))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatFloat(p.Salary, 'g', -1, 64)))
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(p.ExperienceRequired)))
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for load and reload events.
func WithLogger(l logging.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// WithReloadHook registers a callback invoked after every load attempt.
// snap is nil when err is non-nil.
func WithReloadHook(fn func(snap *Snapshot, err error)) StoreOption {
	return func(s *Store) { s.onReload = fn }
}

// Store publishes corpus snapshots. The first Snapshot call loads lazily;
// Reload builds a replacement fully before swapping it in, so concurrent
// readers always see a complete snapshot.
type Store struct {
	source    Source
	knowledge *skills.Knowledge
	logger    logging.Logger
	onReload  func(*Snapshot, error)

	current atomic.Pointer[Snapshot]
	loadMu  sync.Mutex
}

// NewStore creates a Store over source. Nothing is loaded until first use.
func NewStore(source Source, k *skills.Knowledge, opts ...StoreOption) *Store {
	s := &Store{
		source:    source,
		knowledge: k,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Knowledge returns the knowledge pack used to index and score this corpus.
func (s *Store) Knowledge() *skills.Knowledge {
	return s.knowledge
}

// Current returns the published snapshot, or nil if nothing has loaded yet.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Snapshot returns the published snapshot, loading it on first use.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}
	return s.loadLocked(ctx)
}

// Reload rebuilds the snapshot from the source. On failure the previous
// snapshot stays published and the error is returned.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	postings, err := s.source.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Error("corpus load failed", logging.Fields{"source": s.source.Name()})
		s.notify(nil, err)
		return nil, fmt.Errorf("corpus load: %w", err)
	}

	snap := NewSnapshot(postings, s.knowledge, s.source.Name())
	prev := s.current.Swap(snap)

	fields := logging.Fields{
		"source":      snap.Source,
		"version":     snap.Version,
		"total_jobs":  snap.Index.TotalJobs(),
		"skills":      snap.Index.DistinctSkills(),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if prev != nil {
		fields["previous_version"] = prev.Version
	}
	s.logger.Info("corpus loaded", fields)
	s.notify(snap, nil)
	return snap, nil
}

func (s *Store) notify(snap *Snapshot, err error) {
	if s.onReload != nil {
		s.onReload(snap, err)
	}
}
