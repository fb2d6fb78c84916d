// Package reorder sürükle-bırak ile alan sıralamasının saf mantığını içerir.
// Hiçbir render teknolojisine bağımlı değildir; yuvalar (Slot) opak kimliklerdir.
package reorder

// Slot sıralı konteynerdeki tek bir yuvanın opak kimliği.
type Slot string

// PlaceholderSlot aktif sürükleme sırasında bırakma konumunu işaretleyen yuva.
// Veri taşımaz; hiçbir alanla kalıcı ilişkisi yoktur.
const PlaceholderSlot Slot = "__placeholder__"

// DropTarget bırakma hesabının sonucu.
type DropTarget struct {
	To     int  // Alan listesindeki mantıksal hedef indeks
	IsNoop bool // true ise çağıran liste mutasyonunu atlamalı
}

// Move list içindeki from konumundaki elemanı to konumuna taşıyan YENİ bir dilim
// döndürür; girdi dilimi değiştirilmez. from == to ise veya indeksler geçerli
// aralığın (from için [0,len), to için [0,len]) dışındaysa girdi dilimi
// olduğu gibi (aynı referansla) döner. to, eleman çıkarıldıktan SONRAKİ
// dizideki konum olarak yorumlanır.
func Move[T any](list []T, from, to int) []T {
	if from == to {
		return list
	}
	if from < 0 || from >= len(list) {
		return list
	}
	if to < 0 || to > len(list) {
		return list
	}

	out := make([]T, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)

	if to >= len(out) {
		return append(out, list[from])
	}
	out = append(out[:to+1], out[to:]...)
	out[to] = list[from]
	return out
}

// ComputeDropTarget placeholder dahil yuva listesi ve sürüklenen elemanın
// orijinal indeksinden (placeholder hariç sayılır) mantıksal hedef indeksi
// hesaplar:
//
//  1. rawIndex = placeholder'ın yuvalar içindeki konumu; yoksa len(slots)
//     (sona ekle).
//  2. to = rawIndex (fromIndex >= rawIndex ise), aksi halde rawIndex-1.
//     Sürüklenen eleman fromIndex'ten çıkarılınca sonraki indeksler bir
//     kayar; düzeltme sadece kaynak ham hedefin önündeyken gerekir.
//  3. isNoop = to == fromIndex, veya rawIndex == fromIndex+1 (kendi eski
//     konumunun hemen arkasına bırakmak görsel olarak hareketsizdir).
//
// Geçersiz fromIndex değerleri hata yerine no-op olarak döner.
func ComputeDropTarget(slots []Slot, fromIndex int) DropTarget {
	if fromIndex < 0 || fromIndex > len(slots) {
		return DropTarget{To: fromIndex, IsNoop: true}
	}

	rawIndex := len(slots)
	for i, s := range slots {
		if s == PlaceholderSlot {
			rawIndex = i
			break
		}
	}

	to := rawIndex
	if fromIndex < rawIndex {
		to = rawIndex - 1
	}

	isNoop := to == fromIndex || rawIndex == fromIndex+1
	return DropTarget{To: to, IsNoop: isNoop}
}
