package migrations

import (
	"formu.link/configs/configslog"
	"formu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateCategoriesTable(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.FormCategory{}); err != nil {
		configslog.Log.Error("Failed to migrate form_categories table", zap.Error(err))
		return err
	}
	return nil
}

func MigrateFormsTables(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Form{}, &models.FormField{}); err != nil {
		configslog.Log.Error("Failed to migrate forms & form_fields tables", zap.Error(err))
		return err
	}
	return nil
}

func MigrateDraftsTable(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.FormDraft{}); err != nil {
		configslog.Log.Error("Failed to migrate form_drafts table", zap.Error(err))
		return err
	}
	return nil
}

func MigrateVersionsTable(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.FormVersion{}); err != nil {
		configslog.Log.Error("Failed to migrate form_versions table", zap.Error(err))
		return err
	}
	return nil
}

func MigrateSubmissionsTable(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.FormSubmission{}); err != nil {
		configslog.Log.Error("Failed to migrate form_submissions table", zap.Error(err))
		return err
	}
	return nil
}

func MigrateAuditLogsTable(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		configslog.Log.Error("Failed to migrate audit_logs table", zap.Error(err))
		return err
	}
	return nil
}
