package reorder

// Session tek bir sürükleme oturumunu temsil eder. Placeholder oturumun kendi
// değeridir; global paylaşılan durum yoktur. Sürükleme başında oluşturulur,
// bırakma veya iptal ile atılır; asla kalıcılaştırılmaz. Yeni bir sürükleme
// başlatmak için yeni bir Session oluşturmak yeterlidir, eski oturum
// kendiliğinden geçersizleşir.
//
// Yuva listesinin sürüklenen elemanı içermediği varsayılır (eleman sürükleme
// sırasında konteynerden görsel olarak çıkarılmış kabul edilir); no-op kuralı
// bu varsayıma dayanır.
type Session struct {
	slots     []Slot
	fromIndex int
}

// NewSession verilen yuva listesi ve sürükleme kaynağı indeksi ile yeni bir
// oturum başlatır. Liste kopyalanır; listede kalmış eski placeholder'lar atılır.
func NewSession(slots []Slot, fromIndex int) *Session {
	s := &Session{fromIndex: fromIndex}
	s.slots = make([]Slot, 0, len(slots))
	for _, slot := range slots {
		if slot != PlaceholderSlot {
			s.slots = append(s.slots, slot)
		}
	}
	return s
}

// FromIndex sürüklemenin başladığı mantıksal indeksi döndürür.
func (s *Session) FromIndex() int {
	return s.fromIndex
}

// Slots yuva listesinin (varsa placeholder dahil) anlık kopyasını döndürür.
func (s *Session) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// PlacePlaceholder placeholder'ı hedef yuvanın hemen önüne (before=true) veya
// arkasına yerleştirir. Hedef listede yoksa işlem yapılmaz. En fazla bir
// placeholder bulunur; önce mevcut olan kaldırılır.
func (s *Session) PlacePlaceholder(target Slot, before bool) {
	idx := -1
	for i, slot := range s.slots {
		if slot == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	s.RemovePlaceholder()

	// Kaldırma sonrası hedefin konumu kaymış olabilir; tekrar bul.
	idx = -1
	for i, slot := range s.slots {
		if slot == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	insertAt := idx
	if !before {
		insertAt = idx + 1
	}
	s.slots = append(s.slots, "")
	copy(s.slots[insertAt+1:], s.slots[insertAt:])
	s.slots[insertAt] = PlaceholderSlot
}

// RemovePlaceholder placeholder'ı listeden çıkarır; yoksa işlem yapılmaz.
func (s *Session) RemovePlaceholder() {
	for i, slot := range s.slots {
		if slot == PlaceholderSlot {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return
		}
	}
}

// ComputeDropTarget oturumun mevcut yuva düzeninden bırakma hedefini hesaplar.
func (s *Session) ComputeDropTarget() DropTarget {
	return ComputeDropTarget(s.slots, s.fromIndex)
}
