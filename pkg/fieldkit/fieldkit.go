package fieldkit

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand"
	"regexp"
	"strings"
)

// FieldIDPrefix üretilen alan kimliklerinin sabit ön eki.
const FieldIDPrefix = "fld_"

// fieldIDSuffixLength rastgele son ekin uzunluğu.
const fieldIDSuffixLength = 12

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	spaceHyphenPattern = regexp.MustCompile(`[\s-]+`)
	invalidCharPattern = regexp.MustCompile(`[^a-zA-Z0-9_]+`)
	multiUnderscore    = regexp.MustCompile(`_{2,}`)
)

// GenerateFieldID düzenleme oturumu içinde çakışma olasılığı ihmal edilebilir
// bir alan kimliği üretir. Gerçek benzersizliğin kaynağı sunucudur (form
// içinde unique index). crypto/rand kullanılamazsa math/rand'a düşer.
func GenerateFieldID() string {
	buf := make([]byte, fieldIDSuffixLength)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			buf[i] = idAlphabet[mathrand.Intn(len(idAlphabet))]
			continue
		}
		buf[i] = idAlphabet[n.Int64()]
	}
	return FieldIDPrefix + string(buf)
}

// ToSafeIdentifier serbest metni güvenli bir küçük harf tanımlayıcıya çevirir:
// baştaki/sondaki boşluklar atılır, boşluk ve tire grupları tek alt çizgiye
// indirilir, [a-zA-Z0-9_] dışındaki karakterler silinir, ardışık alt çizgiler
// teke iner, baştaki/sondaki alt çizgiler atılır. İdempotenttir.
func ToSafeIdentifier(s string) string {
	s = strings.TrimSpace(s)
	s = spaceHyphenPattern.ReplaceAllString(s, "_")
	s = invalidCharPattern.ReplaceAllString(s, "")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	return strings.ToLower(s)
}

// ToSafeUpperIdentifier ToSafeIdentifier ile aynı dönüşümü yapar, sonucu büyük harfe çevirir.
func ToSafeUpperIdentifier(s string) string {
	return strings.ToUpper(ToSafeIdentifier(s))
}
