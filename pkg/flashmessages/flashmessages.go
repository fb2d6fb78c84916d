package flashmessages

import (
	"encoding/json"

	"formu.link/utils"

	"github.com/gofiber/fiber/v2"
)

// Flash mesaj anahtarları.
const (
	FlashSuccessKey  = "flash_success"
	FlashErrorKey    = "flash_error"
	FlashFormDataKey = "flash_form_data"
)

// FlashMessages bir istekte taşınan flash mesajları.
type FlashMessages struct {
	Success string
	Error   string
}

// SetFlashMessage verilen anahtarla oturuma tek kullanımlık mesaj yazar.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages oturumdaki flash mesajları okur ve siler.
func GetFlashMessages(c *fiber.Ctx) FlashMessages {
	msgs := FlashMessages{}
	sess, err := utils.SessionStart(c)
	if err != nil {
		return msgs
	}
	if v, ok := sess.Get(FlashSuccessKey).(string); ok {
		msgs.Success = v
		sess.Delete(FlashSuccessKey)
	}
	if v, ok := sess.Get(FlashErrorKey).(string); ok {
		msgs.Error = v
		sess.Delete(FlashErrorKey)
	}
	_ = sess.Save()
	return msgs
}

// SetFlashFormData doğrulama hatasında form girdilerini bir sonraki isteğe taşır.
func SetFlashFormData(c *fiber.Ctx, data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return SetFlashMessage(c, FlashFormDataKey, string(encoded))
}

// GetFlashFormData taşınan form girdilerini okur ve siler.
func GetFlashFormData(c *fiber.Ctx) map[string]any {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return nil
	}
	raw, ok := sess.Get(FlashFormDataKey).(string)
	if !ok || raw == "" {
		return nil
	}
	sess.Delete(FlashFormDataKey)
	_ = sess.Save()

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return data
}
