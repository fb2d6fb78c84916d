package fieldkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSafeIdentifier(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World!", "hello_world"},
		{"  Ad Soyad  ", "ad_soyad"},
		{"e-mail address", "e_mail_address"},
		{"already_safe", "already_safe"},
		{"Çok--Garip   İsim!!", "ok_garip_sim"},
		{"___", ""},
		{"", ""},
		{"A  B---C", "a_b_c"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToSafeIdentifier(tc.in), "girdi: %q", tc.in)
	}
}

func TestToSafeIdentifierIdempotent(t *testing.T) {
	inputs := []string{
		"Hello World!", "Ad Soyad", "e-mail address", "x", "",
		"Question #1 (optional)", "çok uzun bir alan etiketi",
	}
	for _, in := range inputs {
		once := ToSafeIdentifier(in)
		assert.Equal(t, once, ToSafeIdentifier(once), "girdi: %q", in)
	}
}

func TestGenerateFieldID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateFieldID()
		require.True(t, strings.HasPrefix(id, "fld_"), "id: %q", id)
		require.Len(t, id, len("fld_")+12)
		for _, r := range id[len("fld_"):] {
			assert.True(t, (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
				"beklenmeyen karakter %q, id: %q", r, id)
		}
		assert.False(t, seen[id], "tekrarlanan id: %q", id)
		seen[id] = true
	}
}

func TestDefaultsForCheckboxes(t *testing.T) {
	d := DefaultsFor(TypeCheckboxes)
	assert.Equal(t, "Option 1, Option 2", d.Options)
	assert.Empty(t, d.Placeholder)
	assert.Equal(t, "Checkboxes", d.Label)
}

func TestDefaultsForCoversAllTypes(t *testing.T) {
	for _, ft := range AllFieldTypes {
		d := DefaultsFor(ft)
		assert.NotEmpty(t, d.Label, "tip: %s", ft)
		if HasOptions(ft) {
			assert.Equal(t, DefaultOptions, d.Options, "tip: %s", ft)
		} else {
			assert.Empty(t, d.Options, "tip: %s", ft)
		}
	}
}

func TestDefaultsForUnknownType(t *testing.T) {
	d := DefaultsFor(FieldType("mystery"))
	assert.Equal(t, "mystery", d.Label)
	assert.Empty(t, d.Options)
}
