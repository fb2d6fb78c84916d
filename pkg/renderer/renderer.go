package renderer

import (
	"net/http"

	"formu.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
)

// View'larda kullanılan flash anahtarları.
const (
	FlashSuccessKeyView = "FlashSuccess"
	FlashErrorKeyView   = "FlashError"
)

// SetFlashMessages flash mesajları render verisine ekler.
func SetFlashMessages(data fiber.Map, msgs flashmessages.FlashMessages) {
	if msgs.Success != "" {
		data[FlashSuccessKeyView] = msgs.Success
	}
	if msgs.Error != "" {
		data[FlashErrorKeyView] = msgs.Error
	}
}

// Render verilen view'ı layout içinde, oturum bilgilerini de ekleyerek çizer.
// status verilmezse 200 kullanılır.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status ...int) error {
	if data == nil {
		data = fiber.Map{}
	}

	// Oturumdan gelen ortak locals her view'da erişilebilir olsun.
	if userID, ok := c.Locals("userID").(uint); ok {
		data["CurrentUserID"] = userID
	}
	if userName, ok := c.Locals("userName").(string); ok {
		data["CurrentUserName"] = userName
	}
	if role, ok := c.Locals("userRole").(string); ok {
		data["CurrentUserRole"] = role
	}

	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	return c.Status(code).Render(view, data, layout)
}
