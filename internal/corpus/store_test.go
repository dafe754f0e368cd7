package corpus

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/logging"
	"github.com/jonathan/skillmatch/internal/skills"
	"github.com/jonathan/skillmatch/internal/types"
)

type fakeSource struct {
	mu       sync.Mutex
	postings []types.JobPosting
	err      error
	loads    atomic.Int32
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Load(_ context.Context) ([]types.JobPosting, error) {
	f.loads.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.postings, nil
}

func (f *fakeSource) set(postings []types.JobPosting, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.postings = postings
	f.err = err
}

func TestStore_LazyLoadOnce(t *testing.T) {
	src := &fakeSource{postings: samplePostings()}
	store := NewStore(src, skills.Default(), WithLogger(logging.NewTest(t)))

	assert.Nil(t, store.Current())
	assert.Equal(t, int32(0), src.loads.Load())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := store.Snapshot(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 4, snap.Index.TotalJobs())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.loads.Load())
	require.NotNil(t, store.Current())
}

func TestStore_ReloadSwapsAndKeepsPreviousOnError(t *testing.T) {
	src := &fakeSource{postings: samplePostings()}

	var hookCalls []error
	store := NewStore(src, skills.Default(), WithReloadHook(func(_ *Snapshot, err error) {
		hookCalls = append(hookCalls, err)
	}))

	first, err := store.Snapshot(context.Background())
	require.NoError(t, err)

	src.set([]types.JobPosting{{Role: "Solo", RequiredSkills: []string{"go"}}}, nil)
	second, err := store.Reload(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.Version, second.Version)
	assert.Equal(t, 1, store.Current().Index.TotalJobs())
	assert.Equal(t, 4, first.Index.TotalJobs(), "old snapshot is untouched")

	src.set(nil, errors.New("disk gone"))
	_, err = store.Reload(context.Background())
	require.Error(t, err)
	assert.Same(t, second, store.Current())

	require.Len(t, hookCalls, 3)
	assert.NoError(t, hookCalls[0])
	assert.NoError(t, hookCalls[1])
	assert.Error(t, hookCalls[2])
}

func TestStore_ConcurrentReloadAndReaders(t *testing.T) {
	full := samplePostings()
	solo := []types.JobPosting{{Role: "Solo", RequiredSkills: []string{"go"}}}
	versions := map[string]bool{
		NewSnapshot(full, skills.Default(), "v").Version: true,
		NewSnapshot(solo, skills.Default(), "v").Version: true,
	}

	src := &fakeSource{postings: full}
	store := NewStore(src, skills.Default(), WithLogger(logging.NewTest(t)))
	ctx := context.Background()
	_, err := store.Snapshot(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if (i+w)%2 == 0 {
					src.set(solo, nil)
				} else {
					src.set(full, nil)
				}
				_, err := store.Reload(ctx)
				assert.NoError(t, err)
			}
		}(w)
	}
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				snap := store.Current()
				if r%2 == 0 {
					var err error
					snap, err = store.Snapshot(ctx)
					if !assert.NoError(t, err) {
						return
					}
				}
				if !assert.NotNil(t, snap) {
					return
				}
				// A reader never sees postings from one load with the index of another.
				assert.Equal(t, len(snap.Postings), snap.Index.TotalJobs())
				assert.True(t, versions[snap.Version], "unknown version %s", snap.Version)
			}
		}(r)
	}
	wg.Wait()

	final := store.Current()
	require.NotNil(t, final)
	assert.Equal(t, len(final.Postings), final.Index.TotalJobs())
}

func TestStore_FirstLoadError(t *testing.T) {
	src := &fakeSource{err: errors.New("nope")}
	store := NewStore(src, skills.Default())

	_, err := store.Snapshot(context.Background())
	assert.Error(t, err)
	assert.Nil(t, store.Current())

	src.set(samplePostings(), nil)
	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Index.TotalJobs())
}

func TestSnapshot_VersionIsContentAddressed(t *testing.T) {
	a := NewSnapshot(samplePostings(), skills.Default(), "a")
	b := NewSnapshot(samplePostings(), skills.Default(), "b")
	assert.Equal(t, a.Version, b.Version)
	assert.Len(t, a.Version, 12)

	changed := samplePostings()
	changed[0].Salary = 99
	c := NewSnapshot(changed, skills.Default(), "a")
	assert.NotEqual(t, a.Version, c.Version)
}

func TestSnapshot_FindRole(t *testing.T) {
	snap := NewSnapshot(samplePostings(), skills.Default(), "test")

	p, ok := snap.FindRole("  backend ")
	require.True(t, ok)
	assert.Equal(t, "Backend", p.Role)

	_, ok = snap.FindRole("Astronaut")
	assert.False(t, ok)
}

func TestSnapshot_Stats(t *testing.T) {
	snap := NewSnapshot(samplePostings(), skills.Default(), "test")
	stats := snap.Stats(2)

	assert.Equal(t, snap.Version, stats.Version)
	assert.Equal(t, "test", stats.Source)
	assert.Equal(t, 4, stats.TotalJobs)
	assert.Equal(t, 5, stats.DistinctSkills)
	assert.Equal(t, []SkillCount{{Skill: "python", Count: 2}, {Skill: "sql", Count: 2}}, stats.TopSkills)
	assert.Equal(t, []string{}, stats.RareSkills)
}

type fakeLister struct {
	postings []types.JobPosting
	err      error
}

func (f fakeLister) ListJobPostings(_ context.Context) ([]types.JobPosting, error) {
	return f.postings, f.err
}

func TestDBSource(t *testing.T) {
	src := DBSource{Lister: fakeLister{postings: samplePostings()}}
	assert.Equal(t, "postgres", src.Name())

	postings, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, postings, 4)

	failing := DBSource{Lister: fakeLister{err: errors.New("conn refused")}, Label: "pg"}
	_, err = failing.Load(context.Background())
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "pg", loadErr.Source)
}
