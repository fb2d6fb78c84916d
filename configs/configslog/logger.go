package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış loglama için ana zap logger.
// SLog ise formatlı (printf tarzı) loglama için sugared logger.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger uygulama loggerlarını başlatır.
// APP_ENV=production ise JSON formatında, aksi halde konsol formatında loglar.
func InitLogger() {
	env := os.Getenv("APP_ENV")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logger kurulamazsa uygulama devam edemez.
		panic("logger başlatılamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// Sync bufferlanmış log kayıtlarını diske yazar. main'de defer ile çağrılmalı.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func init() {
	// Testler ve erken çağrılar için güvenli varsayılan; main InitLogger ile ezer.
	if Log == nil {
		Log = zap.NewNop()
		SLog = Log.Sugar()
	}
}
