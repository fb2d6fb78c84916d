package configs

import (
	"os"

	"formu.link/configs/configslog"

	"github.com/joho/godotenv"
)

// LoadEnv .env dosyasını yükler (varsa). Ortam değişkenleri her zaman önceliklidir.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env dosyası bulunamadı, mevcut ortam değişkenleri kullanılacak.")
	}
}

// GetEnv ortam değişkenini okur, yoksa fallback döndürür.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// AppPort uygulamanın dinleyeceği portu döndürür.
func AppPort() string {
	return GetEnv("APP_PORT", "3000")
}

// JWTSecret API token imzalama anahtarını döndürür.
func JWTSecret() string {
	return GetEnv("JWT_SECRET", "formu-link-gizli-anahtar")
}
