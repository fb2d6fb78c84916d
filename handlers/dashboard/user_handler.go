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

// UserHandler kullanıcı yönetimi için handler (Dashboard).
type UserHandler struct {
	userService services.IUserService
}

// NewUserHandler yeni bir UserHandler örneği oluşturur.
func NewUserHandler() *UserHandler {
	return &UserHandler{userService: services.NewUserService()}
}

// ListUsers tüm kullanıcıları listeler.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	paginatedResult, err := h.userService.GetUsersPaginated(c.UserContext(), params)

	renderData := fiber.Map{
		"Title":  "Kullanıcılar",
		"Result": paginatedResult,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kullanıcılar listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.User{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Dashboard - ListUsers Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/users/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// ShowCreateUser yeni kullanıcı formunu gösterir.
func (h *UserHandler) ShowCreateUser(c *fiber.Ctx) error {
	renderData := fiber.Map{
		"Title":    "Yeni Kullanıcı",
		"FormData": flashmessages.GetFlashFormData(c),
		"Roles":    []models.UserRole{models.RoleAdmin, models.RoleEditor, models.RoleViewer},
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "dashboard/users/create", "layouts/dashboard_layout", renderData)
}

// CreateUser istenen rolde yeni kullanıcı oluşturur.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")
	role := models.UserRole(c.FormValue("role", string(models.RoleEditor)))

	switch role {
	case models.RoleAdmin, models.RoleEditor, models.RoleViewer:
	default:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz rol.")
		return c.Redirect("/dashboard/users/create", fiber.StatusSeeOther)
	}

	if _, err := h.userService.Register(c.UserContext(), name, email, password, role); err != nil {
		if errors.Is(err, services.ErrUserEmailTaken) || errors.Is(err, services.ErrUserInvalidInput) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		} else {
			configslog.Log.Error("Dashboard - CreateUser Error", zap.String("email", email), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kullanıcı oluşturulamadı.")
		}
		_ = flashmessages.SetFlashFormData(c, fiber.Map{"name": name, "email": email, "role": string(role)})
		return c.Redirect("/dashboard/users/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kullanıcı oluşturuldu.")
	return c.Redirect("/dashboard/users", fiber.StatusFound)
}

// SetUserActive kullanıcıyı aktifleştirir ya da pasifleştirir.
func (h *UserHandler) SetUserActive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/users")
	}

	// Admin kendi hesabını pasifleştiremez.
	if currentID, ok := c.Locals("userID").(uint); ok && currentID == uint(id) {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kendi hesabınızı pasifleştiremezsiniz.")
		return c.Redirect("/dashboard/users", fiber.StatusSeeOther)
	}

	active := c.FormValue("active", "true") == "true"
	if err := h.userService.SetActive(c.UserContext(), uint(id), active); err != nil {
		if !errors.Is(err, services.ErrUserNotFound) {
			configslog.Log.Error("Dashboard - SetUserActive Error", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Durum güncellenemedi: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kullanıcı durumu güncellendi.")
	}
	return c.Redirect("/dashboard/users", fiber.StatusSeeOther)
}
