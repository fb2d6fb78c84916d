package configs

import (
	"fmt"
	"time"

	"formu.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB veritabanı bağlantısını kurar.
// DB_DRIVER=sqlite (varsayılan) veya DB_DRIVER=postgres ile sürücü seçilir.
func InitDB() *gorm.DB {
	driver := GetEnv("DB_DRIVER", "sqlite")

	gormConfig := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true, // ErrDuplicatedKey gibi hataların sürücüden bağımsız yakalanması için
	}

	var (
		conn *gorm.DB
		err  error
	)
	switch driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			GetEnv("DB_HOST", "localhost"),
			GetEnv("DB_USER", "formu"),
			GetEnv("DB_PASSWORD", ""),
			GetEnv("DB_NAME", "formu_link"),
			GetEnv("DB_PORT", "5432"),
			GetEnv("DB_SSLMODE", "disable"),
			GetEnv("DB_TIMEZONE", "Europe/Istanbul"),
		)
		conn, err = gorm.Open(postgres.Open(dsn), gormConfig)
	case "sqlite":
		path := GetEnv("DB_PATH", "formu_link.db")
		conn, err = gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=on"), gormConfig)
	default:
		configslog.Log.Fatal("Bilinmeyen DB_DRIVER değeri", zap.String("driver", driver))
		return nil
	}

	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı kurulamadı", zap.String("driver", driver), zap.Error(err))
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("Veritabanı havuzu alınamadı", zap.Error(err))
		return nil
	}
	if driver == "sqlite" {
		// SQLite tek yazıcıya izin verir; havuzu dar tutmak kilit hatalarını azaltır.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	db = conn
	configslog.SLog.Infof("Veritabanı bağlantısı kuruldu (sürücü: %s)", driver)
	return db
}

// GetDB mevcut veritabanı bağlantısını döndürür.
func GetDB() *gorm.DB {
	if db == nil {
		return InitDB()
	}
	return db
}

// SetDB bağlantıyı dışarıdan atar (testlerde in-memory sqlite için).
func SetDB(conn *gorm.DB) {
	db = conn
}
