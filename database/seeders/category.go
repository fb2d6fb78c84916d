package seeders

import (
	"context"
	"errors"

	"formu.link/configs/configslog"
	"formu.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedCategories varsayılan form kategorilerini oluşturur.
func SeedCategories(db *gorm.DB) error {
	systemUserID := uint(1)
	ctx := models.ContextWithUserID(context.Background(), systemUserID)

	categoriesToSeed := []models.FormCategory{
		{Name: "Genel", Description: "Genel amaçlı formlar"},
		{Name: "İletişim", Description: "İletişim ve geri bildirim formları"},
		{Name: "Anket", Description: "Anket ve değerlendirme formları"},
		{Name: "Kayıt", Description: "Etkinlik ve başvuru kayıt formları"},
	}

	var createdCount int64
	var errorOccurred bool

	for _, categoryToSeed := range categoriesToSeed {
		var existing models.FormCategory
		result := db.Where("name = ?", categoryToSeed.Name).First(&existing)

		if result.Error == nil {
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Kategori kontrol edilirken veritabanı hatası",
				zap.String("name", categoryToSeed.Name), zap.Error(result.Error))
			errorOccurred = true
			continue
		}

		if err := db.WithContext(ctx).Create(&categoryToSeed).Error; err != nil {
			configslog.Log.Error("Kategori oluşturulamadı",
				zap.String("name", categoryToSeed.Name), zap.Error(err))
			errorOccurred = true
			continue
		}
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d adet yeni kategori seed edildi.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("Tüm kategoriler zaten mevcut, yeni ekleme yapılmadı.")
	}

	if errorOccurred {
		return errors.New("kategoriler seed edilirken en az bir hata oluştu")
	}
	return nil
}
