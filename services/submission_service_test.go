package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"formu.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// publishedForm gönderim kabul eden durumda bir form kaydeder.
func publishedForm(t *testing.T, svc IFormService, user *models.User, title string, fields ...FieldSnapshot) *models.Form {
	t.Helper()
	form := createTestForm(t, svc, user, title, fields...)
	form.Status = models.FormStatusPublished
	form.IsEnabled = true
	return form
}

func TestSubmitFormStoresValidatedValues(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	formSvc := NewFormService()
	svc := NewSubmissionService()
	ctx := context.Background()

	form := publishedForm(t, formSvc, editor, "İletişim",
		FieldSnapshot{Type: "text", Label: "Ad", Name: "ad", Required: true},
		FieldSnapshot{Type: "email", Label: "E-posta", Name: "eposta"},
	)

	submission, err := svc.SubmitForm(ctx, form, map[string]string{
		"ad":     "  Ayşe  ",
		"eposta": "ayse@example.com",
	}, "203.0.113.7")
	require.NoError(t, err)

	assert.NotEmpty(t, submission.Reference)
	assert.Equal(t, "203.0.113.7", submission.SubmitterIP)

	var stored map[string]string
	require.NoError(t, json.Unmarshal([]byte(submission.Payload), &stored))
	assert.Equal(t, "Ayşe", stored["ad"], "değerler kırpılarak saklanır")
	assert.Equal(t, "ayse@example.com", stored["eposta"])
}

func TestSubmitFormClosedStates(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	formSvc := NewFormService()
	svc := NewSubmissionService()
	ctx := context.Background()

	// Taslak durumdaki form gönderim kabul etmez.
	draft := createTestForm(t, formSvc, editor, "Taslak Form")
	_, err := svc.SubmitForm(ctx, draft, nil, "")
	assert.ErrorIs(t, err, ErrSubmissionFormClosed)

	// Devre dışı bırakılmış form da kabul etmez.
	disabled := publishedForm(t, formSvc, editor, "Kapalı Form")
	disabled.IsEnabled = false
	_, err = svc.SubmitForm(ctx, disabled, nil, "")
	assert.ErrorIs(t, err, ErrSubmissionFormClosed)

	// Kapanış tarihi geçmiş form da kabul etmez.
	expired := publishedForm(t, formSvc, editor, "Süresi Dolmuş")
	past := time.Now().UTC().Add(-time.Hour)
	expired.ClosesAt = &past
	_, err = svc.SubmitForm(ctx, expired, nil, "")
	assert.ErrorIs(t, err, ErrSubmissionFormClosed)

	_, err = svc.SubmitForm(ctx, nil, nil, "")
	assert.ErrorIs(t, err, ErrSubmissionFormClosed)
}

func TestSubmitFormLimit(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	formSvc := NewFormService()
	svc := NewSubmissionService()
	ctx := context.Background()

	form := publishedForm(t, formSvc, editor, "Sınırlı Form", textField("Ad", "ad"))
	limit := 1
	form.SubmissionLimit = &limit

	_, err := svc.SubmitForm(ctx, form, map[string]string{"ad": "İlk"}, "")
	require.NoError(t, err)

	_, err = svc.SubmitForm(ctx, form, map[string]string{"ad": "İkinci"}, "")
	assert.ErrorIs(t, err, ErrSubmissionLimitReached)
}

func TestSubmitFormValidation(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	formSvc := NewFormService()
	svc := NewSubmissionService()
	ctx := context.Background()

	form := publishedForm(t, formSvc, editor, "Doğrulamalı Form",
		FieldSnapshot{Type: "text", Label: "Ad", Name: "ad", Required: true},
		FieldSnapshot{Type: "dropdown", Label: "Şehir", Name: "sehir", Options: "Ankara, İzmir"},
		FieldSnapshot{Type: "section-heading", Label: "Bölüm", Name: "bolum", Required: true},
	)

	// Zorunlu alan boş bırakılamaz; salt görsel alanlar doğrulamaya girmez.
	_, err := svc.SubmitForm(ctx, form, map[string]string{"sehir": "Ankara"}, "")
	var validationErrs ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	require.Len(t, validationErrs, 1)
	assert.Equal(t, "ad", validationErrs[0].FieldName)

	// Tanımsız seçenek reddedilir.
	_, err = svc.SubmitForm(ctx, form, map[string]string{"ad": "Ali", "sehir": "İstanbul"}, "")
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "sehir", validationErrs[0].FieldName)

	// Geçerli seçenek kabul edilir.
	_, err = svc.SubmitForm(ctx, form, map[string]string{"ad": "Ali", "sehir": "İzmir"}, "")
	assert.NoError(t, err)
}

func TestSubmitFormCheckboxesAllowMultipleValues(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	formSvc := NewFormService()
	svc := NewSubmissionService()
	ctx := context.Background()

	form := publishedForm(t, formSvc, editor, "Çoklu Seçim",
		FieldSnapshot{Type: "checkboxes", Label: "Konular", Name: "konular", Options: "Destek, Satış, Diğer"},
	)

	submission, err := svc.SubmitForm(ctx, form, map[string]string{"konular": "Destek, Diğer"}, "")
	require.NoError(t, err)

	var stored map[string]string
	require.NoError(t, json.Unmarshal([]byte(submission.Payload), &stored))
	assert.Equal(t, "Destek, Diğer", stored["konular"])

	// Listedeki tek bir geçersiz değer tüm seçimi geçersiz kılar.
	_, err = svc.SubmitForm(ctx, form, map[string]string{"konular": "Destek, Pazarlama"}, "")
	var validationErrs ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
}

func TestSubmitFormSkipsDoNotStoreValues(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	formSvc := NewFormService()
	svc := NewSubmissionService()
	ctx := context.Background()

	form := publishedForm(t, formSvc, editor, "Hassas Form",
		FieldSnapshot{Type: "text", Label: "Ad", Name: "ad"},
		FieldSnapshot{Type: "text", Label: "TC Kimlik", Name: "tc_kimlik", Required: true, DoNotStore: true},
	)

	submission, err := svc.SubmitForm(ctx, form, map[string]string{
		"ad":        "Ali",
		"tc_kimlik": "12345678901",
	}, "")
	require.NoError(t, err)

	// Zorunluluk doğrulanır ama değer kayda yazılmaz.
	var stored map[string]string
	require.NoError(t, json.Unmarshal([]byte(submission.Payload), &stored))
	assert.Equal(t, "Ali", stored["ad"])
	_, present := stored["tc_kimlik"]
	assert.False(t, present)

	// Zorunlu do-not-store alanı yine de boş geçilemez.
	_, err = svc.SubmitForm(ctx, form, map[string]string{"ad": "Ali"}, "")
	var validationErrs ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
}

func TestGetSubmissionsForForm(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@formu.link", models.RoleEditor)
	other := createTestUser(t, db, "other@formu.link", models.RoleEditor)
	formSvc := NewFormService()
	svc := NewSubmissionService()
	ctx := context.Background()

	form := publishedForm(t, formSvc, owner, "Gönderimli Form", textField("Ad", "ad"))
	for i := 0; i < 3; i++ {
		_, err := svc.SubmitForm(ctx, form, map[string]string{"ad": "Ali"}, "")
		require.NoError(t, err)
	}

	result, err := svc.GetSubmissionsForForm(ctx, form.ID, owner, queryParamsPage(1, 2))
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Meta.TotalItems)
	assert.Equal(t, 2, result.Meta.TotalPages)

	_, err = svc.GetSubmissionsForForm(ctx, form.ID, other, queryParamsPage(1, 20))
	assert.ErrorIs(t, err, ErrSubmissionNotAuthorized)

	count, err := svc.GetSubmissionCount(ctx, form.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	_, err = svc.GetSubmissionsForForm(ctx, 9999, owner, queryParamsPage(1, 20))
	assert.ErrorIs(t, err, ErrFormNotFound)
}
