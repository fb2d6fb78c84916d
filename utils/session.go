package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Oturum anahtarları.
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUserName = "user_name"
	SessionKeyUserRole = "user_role"
)

var (
	ErrSessionStoreMissing = errors.New("session store bulunamadı")
	ErrSessionValueMissing = errors.New("oturumda beklenen değer yok")
)

// SessionStart isteğin oturumunu döndürür. Store, router middleware'i
// tarafından c.Locals("session_store") içine konur.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}

// SetUserSession giriş sonrası oturum değerlerini yazar.
func SetUserSession(c *fiber.Ctx, userID uint, name, role string) error {
	sess, err := SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(SessionKeyUserID, userID)
	sess.Set(SessionKeyUserName, name)
	sess.Set(SessionKeyUserRole, role)
	return sess.Save()
}

// GetUserIDFromSession oturumdaki kullanıcı ID'sini döndürür.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	id, ok := sess.Get(SessionKeyUserID).(uint)
	if !ok || id == 0 {
		return 0, ErrSessionValueMissing
	}
	return id, nil
}

// GetUserRoleFromSession oturumdaki kullanıcı rolünü döndürür.
func GetUserRoleFromSession(sess *session.Session) (string, error) {
	role, ok := sess.Get(SessionKeyUserRole).(string)
	if !ok || role == "" {
		return "", ErrSessionValueMissing
	}
	return role, nil
}

// DestroySession oturumu tamamen sonlandırır (çıkış).
func DestroySession(c *fiber.Ctx) error {
	sess, err := SessionStart(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
