package services

import (
	"context"
	"testing"

	"formu.link/configs"
	"formu.link/database/migrations"
	"formu.link/models"
	"formu.link/pkg/queryparams"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB her test için taze bir in-memory sqlite bağlantısı kurar ve
// global bağlantıyı bu veritabanına yönlendirir.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.MigrateUsersTable(db))
	require.NoError(t, migrations.MigrateCategoriesTable(db))
	require.NoError(t, migrations.MigrateFormsTables(db))
	require.NoError(t, migrations.MigrateDraftsTable(db))
	require.NoError(t, migrations.MigrateVersionsTable(db))
	require.NoError(t, migrations.MigrateSubmissionsTable(db))
	require.NoError(t, migrations.MigrateAuditLogsTable(db))

	configs.SetDB(db)
	t.Cleanup(func() {
		configs.SetDB(nil)
		_ = sqlDB.Close()
	})
	return db
}

// createTestUser verilen rolde aktif bir kullanıcı kaydeder.
func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Test Kullanıcı",
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxy", // testlerde doğrulanmaz
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestForm verilen kullanıcıya ait, alanları olan bir form kaydeder.
func createTestForm(t *testing.T, svc IFormService, user *models.User, title string, fields ...FieldSnapshot) *models.Form {
	t.Helper()
	form, err := svc.SaveForm(context.Background(), user, FormInput{
		Title:  title,
		Fields: fields,
	})
	require.NoError(t, err)
	return form
}

func textField(label, name string) FieldSnapshot {
	return FieldSnapshot{Type: "text", Label: label, Name: name}
}

func queryParamsPage(page, perPage int) queryparams.ListParams {
	params := queryparams.DefaultListParams("created_at")
	params.Page = page
	params.PerPage = perPage
	return params
}
