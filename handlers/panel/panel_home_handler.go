package handlers // handlers/panel paketi

import (
	"formu.link/configs/configslog"
	"formu.link/pkg/flashmessages"
	"formu.link/pkg/renderer"
	"formu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelHomeHandler kullanıcı paneli ana sayfası.
type PanelHomeHandler struct {
	formService services.IFormService
}

// NewPanelHomeHandler yeni bir PanelHomeHandler örneği oluşturur.
func NewPanelHomeHandler() *PanelHomeHandler {
	return &PanelHomeHandler{formService: services.NewFormService()}
}

// PanelHomeHandler kullanıcının form sayısı ile panel özetini gösterir.
func (h *PanelHomeHandler) PanelHomeHandler(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	formCount, err := h.formService.GetFormCountForUser(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Error("Panel - Home Error", zap.Uint("userID", userID), zap.Error(err))
		formCount = 0
	}

	renderData := fiber.Map{
		"Title":     "Panel",
		"FormCount": formCount,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "panel/home", "layouts/panel_layout", renderData)
}
