package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kookmin-feed/notice-crawler/internal/adapter"
	"github.com/kookmin-feed/notice-crawler/internal/notice"
)

type panicStore struct {
	*fakeStore
	panicOn string
}

func (s *panicStore) Recent(ctx context.Context, sourceID string) ([]notice.Known, error) {
	if sourceID == s.panicOn {
		panic("corrupt snapshot for " + sourceID)
	}
	return s.fakeStore.Recent(ctx, sourceID)
}

func testSources(t *testing.T, ids ...string) []adapter.Source {
	t.Helper()
	out := make([]adapter.Source, 0, len(ids))
	for _, id := range ids {
		src, ok := adapter.Lookup(id)
		require.True(t, ok, "catalog missing %s", id)
		out = append(out, src)
	}
	return out
}

func TestOrchestratorRunsAllSourcesInOrder(t *testing.T) {
	t.Parallel()

	sources := testSources(t,
		"university_academic",
		"university_scholarship",
		"university_speciallecture",
	)
	pages := map[string]string{}
	for _, src := range sources {
		pages[src.URL] = csListPage
	}
	fetcher := &fakeFetcher{pages: pages}
	store := newFakeStore()

	r, _, _ := newTestRunner(fetcher, store, &fakeNotifier{})
	o := NewOrchestrator(r, zap.NewNop(), 2, true)

	runID, results := o.Run(context.Background(), sources)
	require.NotEmpty(t, runID)
	require.Len(t, results, 3)
	for i, res := range results {
		require.Equal(t, sources[i].ID, res.SourceID)
		require.True(t, res.Success)
		require.Equal(t, 2, res.TotalFound)
	}
}

func TestOrchestratorContainsPanics(t *testing.T) {
	t.Parallel()

	sources := testSources(t, "university_academic", "university_scholarship")
	pages := map[string]string{}
	for _, src := range sources {
		pages[src.URL] = csListPage
	}
	fetcher := &fakeFetcher{pages: pages}
	store := &panicStore{fakeStore: newFakeStore(), panicOn: "university_academic"}
	notifier := &fakeNotifier{}

	archiver := newFakeArchiver()
	r := New(
		fetcher, fetcher,
		store, notifier, archiver, noopPublisher{},
		fakeClock{now: testNow},
		zap.NewNop(),
		Options{WindowDays: 30, FetchTimeout: 5 * time.Second},
	)
	o := NewOrchestrator(r, zap.NewNop(), 10, true)

	_, results := o.Run(context.Background(), sources)
	require.Len(t, results, 2)
	require.False(t, results[0].Success)
	require.Contains(t, results[0].Err, "panic")
	require.True(t, results[1].Success)
}

func TestOrchestratorFireAndForget(t *testing.T) {
	t.Parallel()

	sources := testSources(t, "university_academic")
	fetcher := &fakeFetcher{pages: map[string]string{sources[0].URL: csListPage}}
	store := newFakeStore()

	r, _, _ := newTestRunner(fetcher, store, &fakeNotifier{})
	o := NewOrchestrator(r, zap.NewNop(), 10, false)

	runID, results := o.Run(context.Background(), sources)
	require.NotEmpty(t, runID)
	require.Nil(t, results)

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.saved["university_academic"]) == 2
	}, time.Second, 10*time.Millisecond)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, any) (string, error) { return "", nil }
func (noopPublisher) Close() error                                 { return nil }
