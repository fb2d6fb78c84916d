package seeders

import (
	"context"
	"errors"

	"formu.link/configs"
	"formu.link/configs/configslog"
	"formu.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminUser sistem yöneticisini oluşturur. Kullanıcı zaten varsa
// dokunulmaz; şifre sadece ilk oluşturmada yazılır.
func SeedAdminUser(db *gorm.DB) error {
	email := configs.GetEnv("ADMIN_EMAIL", "admin@formu.link")
	password := configs.GetEnv("ADMIN_PASSWORD", "admin")
	name := configs.GetEnv("ADMIN_NAME", "Sistem Yöneticisi")

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		configslog.SLog.Info("Sistem yöneticisi zaten mevcut, oluşturma atlanıyor.")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem yöneticisi kontrol edilirken hata", zap.Error(result.Error))
		return result.Error
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Yönetici şifresi hashlenemedi", zap.Error(err))
		return err
	}

	admin := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	ctx := models.ContextWithUserID(context.Background(), 1)
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		configslog.Log.Error("Sistem yöneticisi oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sistem yöneticisi oluşturuldu (ID: %d, E-posta: %s).", admin.ID, email)
	return nil
}
