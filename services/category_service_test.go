package services

import (
	"context"
	"testing"

	"formu.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, "admin@formu.link", models.RoleAdmin)
	svc := NewCategoryService()
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, admin.ID, "  Anket  ", "Anket formları")
	require.NoError(t, err)
	assert.Equal(t, "Anket", category.Name)
	require.NotNil(t, category.CreatedBy)
	assert.Equal(t, admin.ID, *category.CreatedBy)

	_, err = svc.CreateCategory(ctx, admin.ID, "Anket", "")
	assert.ErrorIs(t, err, ErrCategoryNameTaken)
	_, err = svc.CreateCategory(ctx, admin.ID, "   ", "")
	assert.ErrorIs(t, err, ErrCategoryNameRequired)

	require.NoError(t, svc.UpdateCategory(ctx, admin.ID, category.ID, "Anketler", "Güncel açıklama"))
	updated, err := svc.GetCategoryByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anketler", updated.Name)
	assert.Equal(t, "Güncel açıklama", updated.Description)

	all, err := svc.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteCategory(ctx, admin.ID, category.ID))
	_, err = svc.GetCategoryByID(ctx, category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	assert.ErrorIs(t, svc.UpdateCategory(ctx, admin.ID, 9999, "Yok", ""), ErrCategoryNotFound)
	assert.ErrorIs(t, svc.DeleteCategory(ctx, admin.ID, 9999), ErrCategoryNotFound)
}
