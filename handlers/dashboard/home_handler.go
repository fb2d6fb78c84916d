package handlers // handlers/dashboard paketi

import (
	"formu.link/configs/configslog"
	"formu.link/pkg/flashmessages"
	"formu.link/pkg/renderer"
	"formu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HomeHandler dashboard ana sayfası (sayaçlar).
type HomeHandler struct {
	formService services.IFormService
	userService services.IUserService
}

// NewHomeHandler yeni bir HomeHandler örneği oluşturur.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{
		formService: services.NewFormService(),
		userService: services.NewUserService(),
	}
}

// HomePage sistem genel sayaçlarını gösterir.
func (h *HomeHandler) HomePage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	formCount, err := h.formService.GetAllFormsCount(ctx)
	if err != nil {
		configslog.Log.Error("Dashboard - Home: form sayısı alınamadı", zap.Error(err))
	}
	userCount, err := h.userService.GetUserCount(ctx)
	if err != nil {
		configslog.Log.Error("Dashboard - Home: kullanıcı sayısı alınamadı", zap.Error(err))
	}

	renderData := fiber.Map{
		"Title":     "Dashboard",
		"FormCount": formCount,
		"UserCount": userCount,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "dashboard/home", "layouts/dashboard_layout", renderData)
}
