package handlers

import (
	"errors"
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

// FormHandler form yönetimi için handler (Dashboard, admin görünümü).
type FormHandler struct {
	formService services.IFormService
	userService services.IUserService
}

// NewFormHandler yeni bir FormHandler örneği oluşturur.
func NewFormHandler() *FormHandler {
	return &FormHandler{
		formService: services.NewFormService(),
		userService: services.NewUserService(),
	}
}

func (h *FormHandler) currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return nil, services.ErrUserNotFound
	}
	return h.userService.GetUserByID(c.UserContext(), userID)
}

// ListForms tüm formları listeler (Admin için).
func (h *FormHandler) ListForms(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	paginatedResult, err := h.formService.GetAllFormsPaginated(c.UserContext(), params)

	renderData := fiber.Map{
		"Title":  "Tüm Formlar",
		"Result": paginatedResult,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Formlar listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Form{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Dashboard - ListForms Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/forms/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// DeleteForm herhangi bir formu siler (Admin).
func (h *FormHandler) DeleteForm(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/forms")
	}

	if err := h.formService.DeleteForm(c.UserContext(), uint(id), user); err != nil {
		if !errors.Is(err, services.ErrFormNotFound) {
			configslog.Log.Error("Dashboard - DeleteForm Error", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Silme hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Form başarıyla silindi.")
	}
	return c.Redirect("/dashboard/forms", fiber.StatusSeeOther)
}
