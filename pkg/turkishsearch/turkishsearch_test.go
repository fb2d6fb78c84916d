package turkishsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "istanbul", Normalize("İstanbul"))
	assert.Equal(t, "ılıca", Normalize("ILICA"))
	assert.Equal(t, "başvuru formu", Normalize("  BAŞVURU Formu "))
	assert.Equal(t, "", Normalize("   "))
}

func TestSQLFilterASCIIOnly(t *testing.T) {
	clause, args := SQLFilter("title", "form")
	assert.Equal(t, "LOWER(title) LIKE ?", clause)
	assert.Equal(t, []any{"%form%"}, args)
}

func TestSQLFilterTurkishVariant(t *testing.T) {
	clause, args := SQLFilter("title", "Başvuru")
	assert.Equal(t, "(LOWER(title) LIKE ? OR LOWER(title) LIKE ?)", clause)
	assert.Equal(t, []any{"%başvuru%", "%basvuru%"}, args)
}
