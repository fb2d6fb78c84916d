package database

import (
	"formu.link/configs/configslog"
	"formu.link/database/migrations"
	"formu.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyonları ve seeder'ları tek transaction içinde çalıştırır.
func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("Veritabanı transaction başlatılamadı", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("Veritabanı başlatma işlemi başarısız oldu (panic)", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.SLog.Warn("Başlatma sırasında hata oluştuğu için işlem geri alınıyor.", zap.Error(err))
			rbErr := tx.Rollback().Error
			if rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("Rollback sırasında ek hata oluştu", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")

	if migrate {
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("Migrasyon başarısız oldu", zap.Error(err))
			return
		}
	}

	if seed {
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("Seeding başarısız oldu", zap.Error(err))
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("Commit başarısız oldu", zap.Error(err))
		return
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
}

// RunMigrationsInOrder tabloları bağımlılık sırasına göre oluşturur.
func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Migrasyonlar sırayla çalıştırılıyor...")

	steps := []struct {
		name string
		fn   func(*gorm.DB) error
	}{
		{"users", migrations.MigrateUsersTable},
		{"form_categories", migrations.MigrateCategoriesTable},
		{"forms & form_fields", migrations.MigrateFormsTables},
		{"form_drafts", migrations.MigrateDraftsTable},
		{"form_versions", migrations.MigrateVersionsTable},
		{"form_submissions", migrations.MigrateSubmissionsTable},
		{"audit_logs", migrations.MigrateAuditLogsTable},
	}

	for _, step := range steps {
		configslog.SLog.Infof(" -> %s migrasyonu çalıştırılıyor...", step.name)
		if err := step.fn(db); err != nil {
			configslog.Log.Error("Migrasyon başarısız oldu", zap.String("table", step.name), zap.Error(err))
			return err
		}
	}

	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

// CheckAndRunSeeders başlangıç verilerini kontrol eder ve eksikleri ekler.
func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info("Sistem yöneticisi kontrol ediliyor/oluşturuluyor...")
	if err := seeders.SeedAdminUser(db); err != nil {
		configslog.Log.Error("Sistem yöneticisi seed işlemi başarısız", zap.Error(err))
		return err
	}

	configslog.SLog.Info(" -> Kategori seeder çalıştırılıyor...")
	if err := seeders.SeedCategories(db); err != nil {
		configslog.Log.Error("Kategoriler seed edilemedi", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Tüm seeder'lar başarıyla kontrol edildi/çalıştırıldı.")
	return nil
}
