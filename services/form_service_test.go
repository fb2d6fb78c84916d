package services

import (
	"context"
	"strings"
	"testing"

	"formu.link/models"
	"formu.link/pkg/fieldkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveFormCreate(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	svc := NewFormService()

	form, err := svc.SaveForm(context.Background(), editor, FormInput{
		Title: "İletişim Formu",
		Fields: []FieldSnapshot{
			textField("Ad Soyad", "Ad Soyad"),
			{Type: "email", Label: "E-posta"},
			{Type: "checkboxes", Label: "Konular"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.FormStatusDraft, form.Status)
	assert.Len(t, form.Key, models.FormKeyLength)
	assert.Equal(t, editor.ID, form.CreatorUserID)
	assert.True(t, form.IsEnabled)

	require.Len(t, form.Fields, 3)
	assert.Equal(t, "ad_soyad", form.Fields[0].Name)
	assert.Equal(t, "e_posta", form.Fields[1].Name)
	assert.Equal(t, 0, form.Fields[0].Position)
	assert.Equal(t, 2, form.Fields[2].Position)

	// Kimlikler sunucuda üretilir ve sabit formattadır.
	for _, f := range form.Fields {
		assert.True(t, strings.HasPrefix(f.FieldID, fieldkit.FieldIDPrefix), f.FieldID)
	}
	// Seçenekli tip boş geldiyse varsayılan seçenekleri alır.
	assert.Equal(t, fieldkit.DefaultOptions, form.Fields[2].Options)
}

func TestSaveFormValidation(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	viewer := createTestUser(t, db, "viewer@formu.link", models.RoleViewer)
	svc := NewFormService()
	ctx := context.Background()

	_, err := svc.SaveForm(ctx, editor, FormInput{Title: "   "})
	assert.ErrorIs(t, err, ErrFormTitleRequired)

	_, err = svc.SaveForm(ctx, viewer, FormInput{Title: "Anket"})
	assert.ErrorIs(t, err, ErrFormForbidden)

	_, err = svc.SaveForm(ctx, nil, FormInput{Title: "Anket"})
	assert.ErrorIs(t, err, ErrFormForbidden)

	createTestForm(t, svc, editor, "Anket")
	_, err = svc.SaveForm(ctx, editor, FormInput{Title: "Anket"})
	assert.ErrorIs(t, err, ErrFormTitleTaken)
}

func TestSaveFormUpdateReplacesFields(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	svc := NewFormService()
	ctx := context.Background()

	form := createTestForm(t, svc, editor, "Kayıt Formu",
		textField("Ad", "ad"),
		textField("Soyad", "soyad"),
	)
	keptID := form.Fields[0].FieldID

	updated, err := svc.SaveForm(ctx, editor, FormInput{
		ID:    &form.ID,
		Title: "Kayıt Formu 2026",
		Fields: []FieldSnapshot{
			{ID: keptID, Type: "text", Label: "Ad Soyad", Name: "ad_soyad"},
			{Type: "number", Label: "Yaş", Name: "yas"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Kayıt Formu 2026", updated.Title)
	require.Len(t, updated.Fields, 2)
	// Mevcut alan kimliği korunur, sıralama payload sırasından yazılır.
	assert.Equal(t, keptID, updated.Fields[0].FieldID)
	assert.Equal(t, "yas", updated.Fields[1].Name)
	assert.Equal(t, 1, updated.Fields[1].Position)
}

func TestSaveFormUpdateOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@formu.link", models.RoleEditor)
	other := createTestUser(t, db, "other@formu.link", models.RoleEditor)
	admin := createTestUser(t, db, "admin@formu.link", models.RoleAdmin)
	svc := NewFormService()
	ctx := context.Background()

	form := createTestForm(t, svc, owner, "Sahipli Form")

	_, err := svc.SaveForm(ctx, other, FormInput{ID: &form.ID, Title: "Ele Geçirildi"})
	assert.ErrorIs(t, err, ErrFormForbidden)

	// Admin her formu güncelleyebilir.
	updated, err := svc.SaveForm(ctx, admin, FormInput{ID: &form.ID, Title: "Admin Düzenledi"})
	require.NoError(t, err)
	assert.Equal(t, "Admin Düzenledi", updated.Title)
}

func TestNormalizeFieldsDedupesNames(t *testing.T) {
	fields := NormalizeFields([]FieldSnapshot{
		textField("Ad Soyad", ""),
		textField("Ad Soyad", ""),
		textField("Ad Soyad", ""),
	})
	require.Len(t, fields, 3)
	assert.Equal(t, "ad_soyad", fields[0].Name)
	assert.Equal(t, "ad_soyad_2", fields[1].Name)
	assert.Equal(t, "ad_soyad_3", fields[2].Name)
}

func TestNormalizeFieldsFallbacks(t *testing.T) {
	fields := NormalizeFields([]FieldSnapshot{
		{Type: "", Label: "", Name: ""},
		{Type: "dropdown", Label: "!!!", Name: "!!!"},
	})
	require.Len(t, fields, 2)

	// Boş tip metin alanına düşer, etiket tip varsayılanından gelir.
	assert.Equal(t, string(fieldkit.TypeText), fields[0].Type)
	assert.NotEmpty(t, fields[0].Label)
	assert.NotEmpty(t, fields[0].Name)

	// Güvenli isme çevrilemeyen girdi "field" tabanına düşer.
	assert.Equal(t, "field", fields[1].Name)
	assert.Equal(t, fieldkit.DefaultOptions, fields[1].Options)
}

func TestIsTitleUnique(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	svc := NewFormService()
	ctx := context.Background()

	form := createTestForm(t, svc, editor, "Mevcut Başlık")

	unique, err := svc.IsTitleUnique(ctx, "Mevcut Başlık", 0)
	require.NoError(t, err)
	assert.False(t, unique)

	// Formun kendisi kontrol dışı bırakılınca başlık kullanılabilir sayılır.
	unique, err = svc.IsTitleUnique(ctx, "Mevcut Başlık", form.ID)
	require.NoError(t, err)
	assert.True(t, unique)

	unique, err = svc.IsTitleUnique(ctx, "Yepyeni Başlık", 0)
	require.NoError(t, err)
	assert.True(t, unique)

	_, err = svc.IsTitleUnique(ctx, "  ", 0)
	assert.ErrorIs(t, err, ErrFormTitleRequired)
}

func fieldNames(fields []models.FormField) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

func TestReorderFields(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	svc := NewFormService()
	ctx := context.Background()

	form := createTestForm(t, svc, editor, "Sıralama Formu",
		textField("A", "a"), textField("B", "b"), textField("C", "c"),
	)

	moved, err := svc.ReorderFields(ctx, form.ID, editor, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, fieldNames(moved.Fields))
	for i, f := range moved.Fields {
		assert.Equal(t, i, f.Position)
	}

	// Hareketsiz ve aralık dışı istekler hatasız, değişiksiz döner.
	same, err := svc.ReorderFields(ctx, form.ID, editor, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, fieldNames(same.Fields))

	same, err = svc.ReorderFields(ctx, form.ID, editor, -1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, fieldNames(same.Fields))

	same, err = svc.ReorderFields(ctx, form.ID, editor, 0, 99)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, fieldNames(same.Fields))
}

func TestReorderFieldsPermissions(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@formu.link", models.RoleEditor)
	viewer := createTestUser(t, db, "viewer@formu.link", models.RoleViewer)
	svc := NewFormService()

	form := createTestForm(t, svc, owner, "Korumalı Form", textField("A", "a"), textField("B", "b"))

	// Viewer formu görebilir ama sıralamayı değiştiremez.
	_, err := svc.ReorderFields(context.Background(), form.ID, viewer, 0, 1)
	assert.ErrorIs(t, err, ErrFormForbidden)
}

func TestGetFormByIDPermissions(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@formu.link", models.RoleEditor)
	other := createTestUser(t, db, "other@formu.link", models.RoleEditor)
	viewer := createTestUser(t, db, "viewer@formu.link", models.RoleViewer)
	admin := createTestUser(t, db, "admin@formu.link", models.RoleAdmin)
	svc := NewFormService()
	ctx := context.Background()

	form := createTestForm(t, svc, owner, "Gizli Form")

	_, err := svc.GetFormByID(ctx, form.ID, owner)
	assert.NoError(t, err)
	_, err = svc.GetFormByID(ctx, form.ID, admin)
	assert.NoError(t, err)
	_, err = svc.GetFormByID(ctx, form.ID, viewer)
	assert.NoError(t, err, "viewer tüm formları salt okunur görebilir")

	_, err = svc.GetFormByID(ctx, form.ID, other)
	assert.ErrorIs(t, err, ErrFormForbidden)

	_, err = svc.GetFormByID(ctx, 9999, owner)
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestGetFormByKeyOnlyPublished(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	formSvc := NewFormService()
	versionSvc := NewVersionService()
	ctx := context.Background()

	form := createTestForm(t, formSvc, editor, "Public Form", textField("Ad", "ad"))

	// Taslak durumdaki form public anahtarla erişilemez.
	_, err := formSvc.GetFormByKey(ctx, form.Key)
	assert.ErrorIs(t, err, ErrFormNotFound)

	version, err := versionSvc.CreateVersion(ctx, editor, form.ID, "ilk sürüm")
	require.NoError(t, err)
	_, err = versionSvc.PublishVersion(ctx, editor, version.ID, form.ID)
	require.NoError(t, err)

	published, err := formSvc.GetFormByKey(ctx, form.Key)
	require.NoError(t, err)
	assert.Equal(t, form.ID, published.ID)

	_, err = formSvc.GetFormByKey(ctx, "bilinmeyen0")
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestDeleteForm(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@formu.link", models.RoleEditor)
	other := createTestUser(t, db, "other@formu.link", models.RoleEditor)
	svc := NewFormService()
	ctx := context.Background()

	form := createTestForm(t, svc, owner, "Silinecek Form")

	assert.ErrorIs(t, svc.DeleteForm(ctx, form.ID, other), ErrFormForbidden)
	require.NoError(t, svc.DeleteForm(ctx, form.ID, owner))

	_, err := svc.GetFormByID(ctx, form.ID, owner)
	assert.ErrorIs(t, err, ErrFormNotFound)

	assert.ErrorIs(t, svc.DeleteForm(ctx, 9999, owner), ErrFormNotFound)
}

func TestFormCounts(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	other := createTestUser(t, db, "other@formu.link", models.RoleEditor)
	svc := NewFormService()
	ctx := context.Background()

	createTestForm(t, svc, editor, "Form 1")
	createTestForm(t, svc, editor, "Form 2")
	createTestForm(t, svc, other, "Form 3")

	count, err := svc.GetFormCountForUser(ctx, editor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	total, err := svc.GetAllFormsCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestGetFormsForUserPaginated(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	svc := NewFormService()
	ctx := context.Background()

	for _, title := range []string{"Anket A", "Anket B", "Anket C"} {
		createTestForm(t, svc, editor, title)
	}

	result, err := svc.GetFormsForUser(ctx, editor.ID, queryParamsPage(1, 2))
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Meta.TotalItems)
	assert.Equal(t, 2, result.Meta.TotalPages)

	forms, ok := result.Data.([]models.Form)
	require.True(t, ok)
	assert.Len(t, forms, 2)
}
