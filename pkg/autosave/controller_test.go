package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"formu.link/pkg/formclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimer elle tetiklenen tek seferlik zamanlayıcı.
type fakeTimer struct {
	mu     sync.Mutex
	ch     chan time.Time
	resets int
}

func newFakeTimer() *fakeTimer { return &fakeTimer{ch: make(chan time.Time)} }

func (t *fakeTimer) C() <-chan time.Time { return t.ch }
func (t *fakeTimer) Stop() bool          { return true }

func (t *fakeTimer) Reset(time.Duration) bool {
	t.mu.Lock()
	t.resets++
	t.mu.Unlock()
	return true
}

func (t *fakeTimer) resetCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resets
}

// fire zamanlayıcıyı tetikler; döngü olayı alana kadar bloklar.
func (t *fakeTimer) fire() { t.ch <- time.Now() }

type fakeTicker struct{ ch chan time.Time }

func newFakeTicker() *fakeTicker { return &fakeTicker{ch: make(chan time.Time)} }

func (t *fakeTicker) C() <-chan time.Time { return t.ch }
func (t *fakeTicker) Stop()               {}
func (t *fakeTicker) fire()               { t.ch <- time.Now() }

type fakeClock struct {
	timer  *fakeTimer
	ticker *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{timer: newFakeTimer(), ticker: newFakeTicker()}
}

func (c *fakeClock) NewTimer(time.Duration) Timer   { return c.timer }
func (c *fakeClock) NewTicker(time.Duration) Ticker { return c.ticker }

// fakeStore kayıt çağrılarını toplar; block doluysa SaveDraft serbest
// bırakılana kadar bekler.
type fakeStore struct {
	mu      sync.Mutex
	drafts  []formclient.DraftPayload
	saveErr error
	listErr error
	block   chan struct{}
	entered chan struct{}
}

func (s *fakeStore) SaveDraft(_ context.Context, payload formclient.DraftPayload) (*formclient.Draft, error) {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	s.drafts = append(s.drafts, payload)
	s.mu.Unlock()
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	return &formclient.Draft{ID: 1, FormID: payload.FormID, Title: payload.Title, IsAutoSave: payload.IsAutoSave}, nil
}

func (s *fakeStore) draftCalls() []formclient.DraftPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]formclient.DraftPayload, len(s.drafts))
	copy(out, s.drafts)
	return out
}

func (s *fakeStore) CreateVersion(_ context.Context, formID uint, desc string) (*formclient.Version, error) {
	return &formclient.Version{ID: 7, FormID: formID, VersionNumber: 3, ChangeDescription: desc}, nil
}

func (s *fakeStore) PublishVersion(_ context.Context, formID, versionID uint) (*formclient.Version, error) {
	return &formclient.Version{ID: versionID, FormID: formID, IsPublished: true}, nil
}

func (s *fakeStore) RollbackVersion(_ context.Context, formID, versionID uint) (*formclient.Version, error) {
	return &formclient.Version{ID: versionID, FormID: formID}, nil
}

func (s *fakeStore) ListDrafts(context.Context, uint) ([]formclient.Draft, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return []formclient.Draft{{ID: 1}}, nil
}

func (s *fakeStore) ListVersions(context.Context, uint) ([]formclient.Version, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return []formclient.Version{{ID: 1}}, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(msg string) {
	n.mu.Lock()
	n.successes = append(n.successes, msg)
	n.mu.Unlock()
}

func (n *fakeNotifier) Error(msg string) {
	n.mu.Lock()
	n.errors = append(n.errors, msg)
	n.mu.Unlock()
}

func formID(v uint) *uint { return &v }

func newTestController(store Store, clock Clock, read StateReader) *Controller {
	return NewController(Options{
		Store:     store,
		ReadState: read,
		Clock:     clock,
	})
}

func TestEditsCoalesceIntoSingleSave(t *testing.T) {
	clock := newFakeClock()
	store := &fakeStore{}

	var mu sync.Mutex
	state := State{FormID: formID(1), Title: "Anket"}
	read := func() State {
		mu.Lock()
		defer mu.Unlock()
		return state
	}

	ctrl := newTestController(store, clock, read)
	ctrl.Start()
	defer ctrl.Close()

	// İki ardışık düzenleme debounce zamanlayıcısını iki kez sıfırlar;
	// sessizlik süresi dolduğunda tek bir kayıt yapılır.
	ctrl.Edit()
	require.Eventually(t, func() bool { return clock.timer.resetCount() == 1 }, time.Second, time.Millisecond)

	mu.Lock()
	state.Title = "Anket v2"
	mu.Unlock()
	ctrl.Edit()
	require.Eventually(t, func() bool { return clock.timer.resetCount() == 2 }, time.Second, time.Millisecond)

	clock.timer.fire()

	// Değişmeyen durumla ikinci tetikleme kayıt üretmemeli.
	clock.timer.fire()

	// Döngünün her iki tetiklemeyi de işlediğinden emin olmak için.
	ctrl.Edit()
	require.Eventually(t, func() bool { return clock.timer.resetCount() == 3 }, time.Second, time.Millisecond)

	calls := store.draftCalls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].IsAutoSave)
	assert.Equal(t, "Anket v2", calls[0].Title)
}

func TestIntervalTickSaves(t *testing.T) {
	clock := newFakeClock()
	store := &fakeStore{}
	ctrl := newTestController(store, clock, func() State {
		return State{FormID: formID(1), Title: "Periyodik"}
	})
	ctrl.Start()
	defer ctrl.Close()

	clock.ticker.fire()

	// Aynı durumla sonraki tik atlanır.
	clock.ticker.fire()

	require.Eventually(t, func() bool { return len(store.draftCalls()) == 1 }, time.Second, time.Millisecond)
	assert.True(t, store.draftCalls()[0].IsAutoSave)
}

func TestSaveDraftNowRejectsConcurrentSave(t *testing.T) {
	store := &fakeStore{
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	notifier := &fakeNotifier{}
	ctrl := NewController(Options{
		Store:     store,
		ReadState: func() State { return State{FormID: formID(1), Title: "Meşgul"} },
		Notifier:  notifier,
		Clock:     newFakeClock(),
	})

	results := make(chan error, 1)
	go func() {
		_, err := ctrl.SaveDraftNow(context.Background())
		results <- err
	}()
	<-store.entered

	_, err := ctrl.SaveDraftNow(context.Background())
	assert.ErrorIs(t, err, ErrSaveInFlight)

	close(store.block)
	require.NoError(t, <-results)

	assert.Len(t, store.draftCalls(), 1, "uçuştaki istek reddedilince tek kayıt yapılmalı")
	assert.False(t, store.draftCalls()[0].IsAutoSave)
	assert.NotEmpty(t, notifier.successes)
}

func TestSaveDraftNowReportsError(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("sunucu ulaşılamaz")}
	notifier := &fakeNotifier{}
	ctrl := NewController(Options{
		Store:     store,
		ReadState: func() State { return State{Title: "Kayıtsız"} },
		Notifier:  notifier,
		Clock:     newFakeClock(),
	})

	_, err := ctrl.SaveDraftNow(context.Background())
	require.Error(t, err)
	assert.NotEmpty(t, notifier.errors)
}

func TestListingsReturnEmptyOnFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.New("ağ hatası")}
	ctrl := newTestController(store, newFakeClock(), func() State {
		return State{FormID: formID(1)}
	})

	drafts := ctrl.Drafts(context.Background())
	require.NotNil(t, drafts)
	assert.Empty(t, drafts)

	versions := ctrl.Versions(context.Background())
	require.NotNil(t, versions)
	assert.Empty(t, versions)
}

func TestListingsRequireFormID(t *testing.T) {
	ctrl := newTestController(&fakeStore{}, newFakeClock(), func() State {
		return State{Title: "Yeni"}
	})

	assert.Empty(t, ctrl.Drafts(context.Background()))
	assert.Empty(t, ctrl.Versions(context.Background()))
}

func TestVersionOpsRequireFormID(t *testing.T) {
	ctrl := newTestController(&fakeStore{}, newFakeClock(), func() State {
		return State{Title: "Yeni"}
	})

	_, err := ctrl.CreateVersion(context.Background(), "ilk sürüm")
	assert.ErrorIs(t, err, ErrNoFormID)
	assert.ErrorIs(t, ctrl.PublishVersion(context.Background(), 1), ErrNoFormID)
	assert.ErrorIs(t, ctrl.RollbackVersion(context.Background(), 1), ErrNoFormID)
}

func TestPublishTriggersReload(t *testing.T) {
	notifier := &fakeNotifier{}
	reloaded := 0
	ctrl := NewController(Options{
		Store:     &fakeStore{},
		ReadState: func() State { return State{FormID: formID(1)} },
		Notifier:  notifier,
		Clock:     newFakeClock(),
		Reload:    func() { reloaded++ },
	})

	require.NoError(t, ctrl.PublishVersion(context.Background(), 5))
	require.NoError(t, ctrl.RollbackVersion(context.Background(), 5))
	assert.Equal(t, 2, reloaded)

	version, err := ctrl.CreateVersion(context.Background(), "düzenleme")
	require.NoError(t, err)
	assert.Equal(t, 3, version.VersionNumber)
	assert.NotEmpty(t, notifier.successes)
}
