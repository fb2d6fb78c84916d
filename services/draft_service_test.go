package services

import (
	"context"
	"testing"

	"formu.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDraftManual(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	svc := NewDraftService()
	ctx := context.Background()

	draft, err := svc.SaveDraft(ctx, editor, DraftInput{
		Title:  "Üzerinde Çalışılan Form",
		Fields: []FieldSnapshot{textField("Ad", "ad")},
	})
	require.NoError(t, err)

	assert.Nil(t, draft.FormID, "kaydedilmemiş forma ait taslak form kimliği taşımaz")
	assert.False(t, draft.IsAutoSave)
	assert.Equal(t, editor.ID, draft.SavedByUserID)

	snapshot, err := DecodeFormSnapshot(draft.Payload)
	require.NoError(t, err)
	assert.Equal(t, "Üzerinde Çalışılan Form", snapshot.Title)
	require.Len(t, snapshot.Fields, 1)
}

func TestSaveDraftTitleRules(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	viewer := createTestUser(t, db, "viewer@formu.link", models.RoleViewer)
	svc := NewDraftService()
	ctx := context.Background()

	// Manuel kayıtta başlık zorunludur.
	_, err := svc.SaveDraft(ctx, editor, DraftInput{Title: "  "})
	assert.ErrorIs(t, err, ErrDraftInvalidInput)

	// Otomatik kayıt boş başlığı varsayılan isimle saklar.
	draft, err := svc.SaveDraft(ctx, editor, DraftInput{Title: "", IsAutoSave: true})
	require.NoError(t, err)
	assert.Equal(t, "Adsız Form", draft.Title)
	assert.True(t, draft.IsAutoSave)

	_, err = svc.SaveDraft(ctx, viewer, DraftInput{Title: "Taslak"})
	assert.ErrorIs(t, err, ErrDraftForbidden)
	_, err = svc.SaveDraft(ctx, nil, DraftInput{Title: "Taslak"})
	assert.ErrorIs(t, err, ErrDraftForbidden)
}

func TestSaveDraftChecksFormOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@formu.link", models.RoleEditor)
	other := createTestUser(t, db, "other@formu.link", models.RoleEditor)
	formSvc := NewFormService()
	svc := NewDraftService()
	ctx := context.Background()

	form := createTestForm(t, formSvc, owner, "Sahipli Form")

	_, err := svc.SaveDraft(ctx, other, DraftInput{FormID: &form.ID, Title: "Taslak"})
	assert.ErrorIs(t, err, ErrDraftForbidden)

	missing := uint(9999)
	_, err = svc.SaveDraft(ctx, owner, DraftInput{FormID: &missing, Title: "Taslak"})
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestGetDraftsForForm(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@formu.link", models.RoleEditor)
	other := createTestUser(t, db, "other@formu.link", models.RoleEditor)
	formSvc := NewFormService()
	svc := NewDraftService()
	ctx := context.Background()

	form := createTestForm(t, formSvc, owner, "Taslaklı Form")

	for i := 0; i < 2; i++ {
		_, err := svc.SaveDraft(ctx, owner, DraftInput{FormID: &form.ID, Title: "Taslak", IsAutoSave: i == 0})
		require.NoError(t, err)
	}

	drafts, err := svc.GetDraftsForForm(ctx, form.ID, owner)
	require.NoError(t, err)
	assert.Len(t, drafts, 2)

	_, err = svc.GetDraftsForForm(ctx, form.ID, other)
	assert.ErrorIs(t, err, ErrDraftForbidden)
}

func TestDraftAccessAndDelete(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@formu.link", models.RoleEditor)
	other := createTestUser(t, db, "other@formu.link", models.RoleEditor)
	admin := createTestUser(t, db, "admin@formu.link", models.RoleAdmin)
	svc := NewDraftService()
	ctx := context.Background()

	draft, err := svc.SaveDraft(ctx, owner, DraftInput{Title: "Kişisel Taslak"})
	require.NoError(t, err)

	_, err = svc.GetDraft(ctx, draft.ID, other)
	assert.ErrorIs(t, err, ErrDraftForbidden)

	// Admin her taslağa erişir.
	_, err = svc.GetDraft(ctx, draft.ID, admin)
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteDraft(ctx, draft.ID, other), ErrDraftForbidden)
	require.NoError(t, svc.DeleteDraft(ctx, draft.ID, owner))

	_, err = svc.GetDraft(ctx, draft.ID, owner)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestRestoreDraftCreatesForm(t *testing.T) {
	db := setupTestDB(t)
	editor := createTestUser(t, db, "editor@formu.link", models.RoleEditor)
	formSvc := NewFormService()
	svc := NewDraftService()
	ctx := context.Background()

	draft, err := svc.SaveDraft(ctx, editor, DraftInput{
		Title:  "Taslaktan Form",
		Fields: []FieldSnapshot{textField("Ad", "ad"), textField("Soyad", "soyad")},
	})
	require.NoError(t, err)

	form, err := svc.RestoreDraft(ctx, draft.ID, editor)
	require.NoError(t, err)
	assert.Equal(t, "Taslaktan Form", form.Title)
	require.Len(t, form.Fields, 2)
	assert.Equal(t, editor.ID, form.CreatorUserID)

	// Kaydedilmiş forma bağlı taslak, geri yüklemede formu günceller.
	_, err = formSvc.SaveForm(ctx, editor, FormInput{
		ID:     &form.ID,
		Title:  "Sonradan Değişti",
		Fields: []FieldSnapshot{textField("Tek Alan", "tek_alan")},
	})
	require.NoError(t, err)

	linked, err := svc.SaveDraft(ctx, editor, DraftInput{
		FormID: &form.ID,
		Title:  "Taslaktan Form",
		Fields: []FieldSnapshot{textField("Ad", "ad")},
	})
	require.NoError(t, err)

	restored, err := svc.RestoreDraft(ctx, linked.ID, editor)
	require.NoError(t, err)
	assert.Equal(t, form.ID, restored.ID)
	assert.Equal(t, "Taslaktan Form", restored.Title)
	require.Len(t, restored.Fields, 1)
	assert.Equal(t, "ad", restored.Fields[0].Name)
}
