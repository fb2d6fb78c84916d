package autosave

import "time"

// Timer tek seferlik zamanlayıcı soyutlaması (testlerde sahte saat için).
type Timer interface {
	C() <-chan time.Time
	Reset(d time.Duration) bool
	Stop() bool
}

// Ticker periyodik zamanlayıcı soyutlaması.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock zamanlayıcı üretimini soyutlar. Gerçek uygulamada time paketine,
// testlerde elle tetiklenen kanallara bağlanır.
type Clock interface {
	NewTimer(d time.Duration) Timer
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

// NewRealClock time paketine bağlı gerçek saat döndürür.
func NewRealClock() Clock { return realClock{} }

type realTimer struct{ t *time.Timer }

func (rt realTimer) C() <-chan time.Time        { return rt.t.C }
func (rt realTimer) Reset(d time.Duration) bool { return rt.t.Reset(d) }
func (rt realTimer) Stop() bool                 { return rt.t.Stop() }

type realTicker struct{ t *time.Ticker }

func (rt realTicker) C() <-chan time.Time { return rt.t.C }
func (rt realTicker) Stop()               { rt.t.Stop() }

func (realClock) NewTimer(d time.Duration) Timer {
	return realTimer{t: time.NewTimer(d)}
}

func (realClock) NewTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}
