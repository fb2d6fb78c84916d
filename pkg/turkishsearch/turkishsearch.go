package turkishsearch

import "strings"

// Türkçe'de büyük/küçük harf dönüşümü ASCII ile örtüşmez (İ/i, I/ı);
// LOWER() tabanlı LIKE sorguları bu yüzden her iki varyantı da denemelidir.

// foldTurkish aramada eşdeğer sayılan karakterleri ortak forma indirir.
var foldTurkish = strings.NewReplacer(
	"İ", "i", "I", "ı",
	"Ç", "ç", "Ğ", "ğ", "Ö", "ö", "Ş", "ş", "Ü", "ü",
)

// Normalize arama terimini karşılaştırma için normalleştirir.
func Normalize(s string) string {
	return strings.ToLower(foldTurkish.Replace(strings.TrimSpace(s)))
}

// asciiVariant Türkçe'ye özgü harflerin ASCII karşılığını üretir (ş->s, ı->i...).
var asciiVariant = strings.NewReplacer(
	"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
)

// SQLFilter verilen sütun için Türkçe duyarlı LIKE koşulu ve argümanlarını üretir.
// Hem normalize edilmiş terim hem ASCII varyantı denenir; böylece "başvuru"
// araması "basvuru" yazılmış kayıtları da bulur.
func SQLFilter(column, term string) (string, []any) {
	normalized := Normalize(term)
	ascii := asciiVariant.Replace(normalized)

	if normalized == ascii {
		return "LOWER(" + column + ") LIKE ?", []any{"%" + normalized + "%"}
	}
	return "(LOWER(" + column + ") LIKE ? OR LOWER(" + column + ") LIKE ?)",
		[]any{"%" + normalized + "%", "%" + ascii + "%"}
}
