package runner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kookmin-feed/notice-crawler/internal/adapter"
	"github.com/kookmin-feed/notice-crawler/internal/fetch"
	"github.com/kookmin-feed/notice-crawler/internal/notice"
	"github.com/kookmin-feed/notice-crawler/internal/publish"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, notice.Seoul)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	err   error
	calls []fetch.Request
}

func (f *fakeFetcher) Fetch(_ context.Context, req fetch.Request) (*fetch.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.pages[req.URL]
	if !ok {
		return nil, &fetch.Error{Kind: fetch.KindStatus, URL: req.URL, Status: 404}
	}
	return &fetch.Page{URL: req.URL, StatusCode: 200, Body: body, Duration: 10 * time.Millisecond}, nil
}

type fakeStore struct {
	mu        sync.Mutex
	known     map[string][]notice.Known
	saved     map[string][]notice.Notice
	recentErr error
	saveErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		known: map[string][]notice.Known{},
		saved: map[string][]notice.Notice{},
	}
}

func (s *fakeStore) Recent(_ context.Context, sourceID string) ([]notice.Known, error) {
	if s.recentErr != nil {
		return nil, s.recentErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.known[sourceID], nil
}

func (s *fakeStore) SaveAll(_ context.Context, sourceID string, notices []notice.Notice) (int, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[sourceID] = append(s.saved[sourceID], notices...)
	return len(notices), nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(_ context.Context, sourceID, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, sourceID+": "+message)
	return nil
}

type fakeArchiver struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeArchiver() *fakeArchiver {
	return &fakeArchiver{objects: map[string][]byte{}}
}

func (a *fakeArchiver) Archive(_ context.Context, objectName, _ string, data []byte) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.objects[objectName] = data
	return "gs://notice-pages/" + objectName, nil
}

const csListPage = `
<html><body>
<table><tbody class="list-tbody">
<tr class="notice-bg">
  <td class="subject"><a href="778101">수강신청 일정 안내</a></td>
  <td class="date">2026.08.28</td>
</tr>
<tr class="normal-bg">
  <td class="subject"><a href="778102">2학기 장학금 신청</a></td>
  <td class="date">2026.08.30</td>
</tr>
</tbody></table>
</body></html>`

func csSource() adapter.Source {
	src, ok := adapter.Lookup("university_academic")
	if !ok {
		panic("catalog missing university_academic")
	}
	return src
}

func newTestRunner(fetcher fetch.Fetcher, store notice.Store, notifier notice.Notifier) (*Runner, *fakeArchiver, *publish.Memory) {
	archiver := newFakeArchiver()
	publisher := publish.NewMemory()
	r := New(
		fetcher, fetcher,
		store, notifier, archiver, publisher,
		fakeClock{now: testNow},
		zap.NewNop(),
		Options{WindowDays: 30, FeedLimit: 20, FetchTimeout: 5 * time.Second, ArchiveContentType: "text/html"},
	)
	return r, archiver, publisher
}

func TestRunSourceSavesOnlyFreshNotices(t *testing.T) {
	t.Parallel()

	src := csSource()
	fetcher := &fakeFetcher{pages: map[string]string{src.URL: csListPage}}
	store := newFakeStore()
	store.known[src.ID] = []notice.Known{
		{Title: "[공지] 수강신청 일정 안내", Link: src.URL + "778101"},
	}
	notifier := &fakeNotifier{}

	r, archiver, publisher := newTestRunner(fetcher, store, notifier)
	result := r.RunSource(context.Background(), src)

	require.True(t, result.Success)
	require.Equal(t, src.ID, result.SourceID)
	require.Equal(t, 2, result.TotalFound)
	require.Equal(t, 1, result.NewCount)
	require.Equal(t, 1, result.SavedCount)
	require.Empty(t, result.Err)

	saved := store.saved[src.ID]
	require.Len(t, saved, 1)
	require.Equal(t, "2학기 장학금 신청", saved[0].Title)
	require.Equal(t, src.ID, saved[0].SourceID)

	require.Len(t, archiver.objects, 1)
	for name, data := range archiver.objects {
		require.True(t, strings.HasPrefix(name, src.ID+"/"))
		require.Contains(t, string(data), "수강신청 일정 안내")
	}

	events := publisher.Events()
	require.Len(t, events, 1)
	require.Contains(t, string(events[0]), `"source_id":"`+src.ID+`"`)
	require.Contains(t, string(events[0]), `"new_notices_count":1`)

	require.Empty(t, notifier.messages)
}

func TestRunSourceCountsSkippedAndStaleRows(t *testing.T) {
	t.Parallel()

	src := csSource()
	page := `
<html><body>
<table><tbody class="list-tbody">
<tr class="normal-bg">
  <td class="subject"></td>
  <td class="date">2026.08.29</td>
</tr>
<tr class="normal-bg">
  <td class="subject"><a href="778090">6월 프로그램 안내</a></td>
  <td class="date">2026.06.01</td>
</tr>
<tr class="normal-bg">
  <td class="subject"><a href="778102">2학기 장학금 신청</a></td>
  <td class="date">2026.08.30</td>
</tr>
</tbody></table>
</body></html>`
	fetcher := &fakeFetcher{pages: map[string]string{src.URL: page}}
	store := newFakeStore()

	r, _, _ := newTestRunner(fetcher, store, &fakeNotifier{})
	result := r.RunSource(context.Background(), src)

	require.True(t, result.Success)
	require.Equal(t, 3, result.TotalFound)
	require.Equal(t, 1, result.NewCount)
	require.Equal(t, 1, result.SavedCount)
	require.Len(t, store.saved[src.ID], 1)
	require.Equal(t, "2학기 장학금 신청", store.saved[src.ID][0].Title)
}

func TestRunSourceDropsStaleNotices(t *testing.T) {
	t.Parallel()

	src := csSource()
	stale := strings.ReplaceAll(csListPage, "2026.08.30", "2026.06.01")
	fetcher := &fakeFetcher{pages: map[string]string{src.URL: stale}}
	store := newFakeStore()

	r, _, _ := newTestRunner(fetcher, store, &fakeNotifier{})
	result := r.RunSource(context.Background(), src)

	require.True(t, result.Success)
	require.Equal(t, 2, result.TotalFound)
	require.Equal(t, 1, result.NewCount)
	require.Len(t, store.saved[src.ID], 1)
	require.Equal(t, "[공지] 수강신청 일정 안내", store.saved[src.ID][0].Title)
}

func TestRunSourceFetchFailureAlerts(t *testing.T) {
	t.Parallel()

	src := csSource()
	fetcher := &fakeFetcher{err: &fetch.Error{Kind: fetch.KindTimeout, URL: src.URL, Err: context.DeadlineExceeded}}
	notifier := &fakeNotifier{}

	r, _, publisher := newTestRunner(fetcher, newFakeStore(), notifier)
	result := r.RunSource(context.Background(), src)

	require.False(t, result.Success)
	require.NotEmpty(t, result.Err)
	require.Len(t, notifier.messages, 1)
	require.Contains(t, notifier.messages[0], src.ID)
	require.Contains(t, notifier.messages[0], src.URL)
	require.Empty(t, publisher.Events())
}

func TestRunSourceSaveFailureAlerts(t *testing.T) {
	t.Parallel()

	src := csSource()
	fetcher := &fakeFetcher{pages: map[string]string{src.URL: csListPage}}
	store := newFakeStore()
	store.saveErr = errors.New("table missing")
	notifier := &fakeNotifier{}

	r, _, _ := newTestRunner(fetcher, store, notifier)
	result := r.RunSource(context.Background(), src)

	require.False(t, result.Success)
	require.Equal(t, 2, result.TotalFound)
	require.Contains(t, result.Err, "save notices")
	require.Len(t, notifier.messages, 1)
}

func TestRunSourceHeadlessUsesWaitSelector(t *testing.T) {
	t.Parallel()

	src, ok := adapter.Lookup("library_general")
	require.True(t, ok)
	require.Equal(t, adapter.ModeHeadless, src.Mode)

	fetcher := &fakeFetcher{pages: map[string]string{}}
	r, _, _ := newTestRunner(fetcher, newFakeStore(), &fakeNotifier{})
	r.RunSource(context.Background(), src)

	require.Len(t, fetcher.calls, 1)
	require.Equal(t, src.WaitSelector, fetcher.calls[0].WaitSelector)
	require.NotEmpty(t, fetcher.calls[0].WaitSelector)
}
