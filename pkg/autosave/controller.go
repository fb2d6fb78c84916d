// Package autosave form düzenleme oturumunun taslak/sürüm denetleyicisini içerir.
// Denetleyici düzenleme sayfası başına bir kez oluşturulur, sayfadan ayrılırken
// Close ile kapatılır. Tüm bağımlılıklar (saat, durum okuyucu, API istemcisi,
// bildirimci) test edilebilirlik için dışarıdan verilir.
package autosave

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"formu.link/pkg/formclient"

	"go.uber.org/zap"
)

// Varsayılan tetikleme aralıkları.
const (
	DefaultInterval = 30 * time.Second // Sabit aralıklı otomatik kayıt
	DefaultDebounce = 2 * time.Second  // Son düzenlemeden sonra beklenen sessizlik süresi
)

// Denetleyici hataları.
var (
	ErrSaveInFlight = errors.New("devam eden bir kayıt işlemi var")
	ErrNoFormID     = errors.New("bu işlem kaydedilmiş bir form gerektirir")
	ErrClosed       = errors.New("denetleyici kapatıldı")
)

// State düzenleyicinin o anki form durumu: başlık, alanlar ve kategori.
// Eşitlik tam yapısal serileştirme karşılaştırmasıyla (sıraya duyarlı) yapılır.
type State struct {
	FormID     *uint                     `json:"formId"`
	Title      string                    `json:"title"`
	Fields     []formclient.FieldPayload `json:"fields"`
	CategoryID *uint                     `json:"categoryId"`
}

// StateReader paylaşılan form durumunu okur. Denetleyici durumu asla değiştirmez.
type StateReader func() State

// Store denetleyicinin ihtiyaç duyduğu kalıcılık işlemleri.
// *formclient.Client bu arayüzü sağlar.
type Store interface {
	SaveDraft(ctx context.Context, payload formclient.DraftPayload) (*formclient.Draft, error)
	CreateVersion(ctx context.Context, formID uint, changeDescription string) (*formclient.Version, error)
	PublishVersion(ctx context.Context, formID, versionID uint) (*formclient.Version, error)
	RollbackVersion(ctx context.Context, formID, versionID uint) (*formclient.Version, error)
	ListDrafts(ctx context.Context, formID uint) ([]formclient.Draft, error)
	ListVersions(ctx context.Context, formID uint) ([]formclient.Version, error)
}

// Notifier kullanıcıya gösterilen geçici bildirimleri soyutlar.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier hiçbir şey yapmayan bildirimci.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// saveState denetleyicinin kayıt durumu: Idle -> Saving -> Idle.
type saveState int

const (
	stateIdle saveState = iota
	stateSaving
)

// Options denetleyici kurulum seçenekleri.
type Options struct {
	Store     Store
	ReadState StateReader
	Notifier  Notifier      // nil ise NopNotifier
	Clock     Clock         // nil ise gerçek saat
	Logger    *zap.Logger   // nil ise nop
	Interval  time.Duration // 0 ise DefaultInterval
	Debounce  time.Duration // 0 ise DefaultDebounce
	Reload    func()        // publish/rollback sonrası tam durum yenileme
}

// Controller otomatik kayıt zamanlamasını, manuel taslak kaydını ve sürüm
// yaşam döngüsünü yönetir. Goroutine-güvenlidir; aynı anda en fazla bir kayıt
// isteği uçuşta olur.
type Controller struct {
	store     Store
	readState StateReader
	notifier  Notifier
	clock     Clock
	log       *zap.Logger
	interval  time.Duration
	debounce  time.Duration
	reload    func()

	editCh chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup

	mu        sync.Mutex
	state     saveState
	lastSaved []byte
	closed    bool
}

// NewController yeni bir denetleyici oluşturur. Start çağrılana kadar
// zamanlayıcılar çalışmaz.
func NewController(opts Options) *Controller {
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Clock == nil {
		opts.Clock = NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Reload == nil {
		opts.Reload = func() {}
	}
	return &Controller{
		store:     opts.Store,
		readState: opts.ReadState,
		notifier:  opts.Notifier,
		clock:     opts.Clock,
		log:       opts.Logger,
		interval:  opts.Interval,
		debounce:  opts.Debounce,
		reload:    opts.Reload,
		editCh:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Start zamanlayıcı döngüsünü başlatır.
func (c *Controller) Start() {
	c.wg.Add(1)
	go c.run()
}

// Close zamanlayıcıları durdurur. Uçuştaki istek iptal edilmez, terk edilir.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	close(c.done)
	c.wg.Wait()
}

// Edit bir düzenleme olayını bildirir; debounce zamanlayıcısını sıfırlatır.
// Hızlı ardışık düzenlemeler tek tetiklemede birleşir.
func (c *Controller) Edit() {
	select {
	case c.editCh <- struct{}{}:
	case <-c.done:
	default:
	}
}

func (c *Controller) run() {
	defer c.wg.Done()

	ticker := c.clock.NewTicker(c.interval)
	defer ticker.Stop()

	debounce := c.clock.NewTimer(c.debounce)
	if !debounce.Stop() {
		select {
		case <-debounce.C():
		default:
		}
	}
	defer debounce.Stop()

	for {
		select {
		case <-c.editCh:
			debounce.Reset(c.debounce)
		case <-debounce.C():
			c.autoSave()
		case <-ticker.C():
			c.autoSave()
		case <-c.done:
			return
		}
	}
}

// autoSave arka plan kaydını dener: durum değişmemişse veya bir kayıt
// uçuştaysa sessizce atlanır. Hatalar sadece loglanır.
func (c *Controller) autoSave() {
	snap := c.readState()
	data, err := json.Marshal(snap)
	if err != nil {
		c.log.Error("otomatik kayıt: durum serileştirilemedi", zap.Error(err))
		return
	}

	c.mu.Lock()
	if c.state == stateSaving || bytes.Equal(data, c.lastSaved) {
		c.mu.Unlock()
		return
	}
	c.state = stateSaving
	c.mu.Unlock()

	_, err = c.store.SaveDraft(context.Background(), draftPayload(snap, true))

	c.mu.Lock()
	c.state = stateIdle
	if err == nil {
		c.lastSaved = data
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("otomatik taslak kaydı başarısız", zap.Error(err))
	}
}

// SaveDraftNow manuel taslak kaydı yapar. Uçuşta başka bir kayıt varsa
// ErrSaveInFlight döner; çağıranın işlemleri serileştirmesi beklenir.
func (c *Controller) SaveDraftNow(ctx context.Context) (*formclient.Draft, error) {
	snap := c.readState()
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.state == stateSaving {
		c.mu.Unlock()
		return nil, ErrSaveInFlight
	}
	c.state = stateSaving
	c.mu.Unlock()

	draft, err := c.store.SaveDraft(ctx, draftPayload(snap, false))

	c.mu.Lock()
	c.state = stateIdle
	if err == nil {
		c.lastSaved = data
	}
	c.mu.Unlock()

	if err != nil {
		c.notifier.Error("Taslak kaydedilemedi: " + err.Error())
		return nil, err
	}
	c.notifier.Success("Taslak kaydedildi.")
	return draft, nil
}

// CreateVersion kaydedilmiş form için yeni bir sürüm oluşturur ve numarasını bildirir.
func (c *Controller) CreateVersion(ctx context.Context, changeDescription string) (*formclient.Version, error) {
	snap := c.readState()
	if snap.FormID == nil {
		return nil, ErrNoFormID
	}
	version, err := c.store.CreateVersion(ctx, *snap.FormID, changeDescription)
	if err != nil {
		c.notifier.Error("Sürüm oluşturulamadı: " + err.Error())
		return nil, err
	}
	c.notifier.Success(fmt.Sprintf("Sürüm %d oluşturuldu.", version.VersionNumber))
	return version, nil
}

// PublishVersion sürümü yayınlar; başarıda istemci görünümü tamamen yenilenir.
// Yapısal değişiklikten sonra parça parça uzlaştırmak yerine yerel görünümü
// atmak tutarlılık açısından daha güvenlidir.
func (c *Controller) PublishVersion(ctx context.Context, versionID uint) error {
	snap := c.readState()
	if snap.FormID == nil {
		return ErrNoFormID
	}
	if _, err := c.store.PublishVersion(ctx, *snap.FormID, versionID); err != nil {
		c.notifier.Error("Sürüm yayınlanamadı: " + err.Error())
		return err
	}
	c.reload()
	return nil
}

// RollbackVersion formu verilen sürüme geri döndürür; başarıda görünüm yenilenir.
func (c *Controller) RollbackVersion(ctx context.Context, versionID uint) error {
	snap := c.readState()
	if snap.FormID == nil {
		return ErrNoFormID
	}
	if _, err := c.store.RollbackVersion(ctx, *snap.FormID, versionID); err != nil {
		c.notifier.Error("Sürüme geri dönülemedi: " + err.Error())
		return err
	}
	c.reload()
	return nil
}

// Drafts taslak listesini getirir. Listeleme en-iyi-çaba kabul edilir:
// herhangi bir hatada loglanır ve boş liste döner.
func (c *Controller) Drafts(ctx context.Context) []formclient.Draft {
	snap := c.readState()
	if snap.FormID == nil {
		return []formclient.Draft{}
	}
	drafts, err := c.store.ListDrafts(ctx, *snap.FormID)
	if err != nil {
		c.log.Warn("taslak listesi alınamadı", zap.Error(err))
		return []formclient.Draft{}
	}
	return drafts
}

// Versions sürüm listesini getirir; hatada boş liste döner.
func (c *Controller) Versions(ctx context.Context) []formclient.Version {
	snap := c.readState()
	if snap.FormID == nil {
		return []formclient.Version{}
	}
	versions, err := c.store.ListVersions(ctx, *snap.FormID)
	if err != nil {
		c.log.Warn("sürüm listesi alınamadı", zap.Error(err))
		return []formclient.Version{}
	}
	return versions
}

func draftPayload(s State, isAutoSave bool) formclient.DraftPayload {
	return formclient.DraftPayload{
		FormID:     s.FormID,
		Title:      s.Title,
		Fields:     s.Fields,
		CategoryID: s.CategoryID,
		IsAutoSave: isAutoSave,
	}
}
