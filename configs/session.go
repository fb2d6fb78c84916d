package configs

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

var sessionStore *session.Store

// SetupSession oturum deposunu kurar (tek örnek).
// Oturumlar sunucu belleğinde tutulur; cookie sadece oturum kimliğini taşır.
func SetupSession() *session.Store {
	if sessionStore != nil {
		return sessionStore
	}
	sessionStore = session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:formu_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   GetEnv("APP_ENV", "") == "production",
	})
	return sessionStore
}
