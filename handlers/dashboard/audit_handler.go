package handlers

import (
	"net/http"

	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/pkg/flashmessages"
	"formu.link/pkg/queryparams"
	"formu.link/pkg/renderer"
	"formu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuditHandler audit log görüntüleme için handler (Dashboard).
type AuditHandler struct {
	auditService services.IAuditService
}

// NewAuditHandler yeni bir AuditHandler örneği oluşturur.
func NewAuditHandler() *AuditHandler {
	return &AuditHandler{auditService: services.NewAuditService()}
}

// ListLogs audit kayıtlarını yeniden eskiye listeler.
func (h *AuditHandler) ListLogs(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	paginatedResult, err := h.auditService.GetLogsPaginated(c.UserContext(), params)

	renderData := fiber.Map{
		"Title":  "İşlem Kayıtları",
		"Result": paginatedResult,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kayıtlar listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.AuditLog{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Dashboard - ListLogs Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/audit/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}
