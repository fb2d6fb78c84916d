package handlers

import (
	"errors"

	"formu.link/configs/configslog"
	"formu.link/pkg/flashmessages"
	"formu.link/pkg/renderer"
	"formu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CategoryHandler form kategorisi yönetimi için handler (Dashboard).
type CategoryHandler struct {
	categoryService services.ICategoryService
}

// NewCategoryHandler yeni bir CategoryHandler örneği oluşturur.
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{categoryService: services.NewCategoryService()}
}

// ListCategories tüm kategorileri listeler.
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.GetAllCategories(c.UserContext())

	renderData := fiber.Map{
		"Title":      "Kategoriler",
		"Categories": categories,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kategoriler listelenirken hata oluştu."
		configslog.Log.Error("Dashboard - ListCategories Error", zap.Error(err))
	}
	return renderer.Render(c, "dashboard/categories/list", "layouts/dashboard_layout", renderData)
}

// CreateCategory yeni kategori oluşturur.
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	name := c.FormValue("name")
	description := c.FormValue("description")

	if _, err := h.categoryService.CreateCategory(c.UserContext(), userID, name, description); err != nil {
		if errors.Is(err, services.ErrCategoryNameRequired) || errors.Is(err, services.ErrCategoryNameTaken) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		} else {
			configslog.Log.Error("Dashboard - CreateCategory Error", zap.String("name", name), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kategori oluşturulamadı.")
		}
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kategori oluşturuldu.")
	}
	return c.Redirect("/dashboard/categories", fiber.StatusSeeOther)
}

// UpdateCategory kategori adını/açıklamasını günceller.
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/categories")
	}

	name := c.FormValue("name")
	description := c.FormValue("description")

	if err := h.categoryService.UpdateCategory(c.UserContext(), userID, uint(id), name, description); err != nil {
		if !errors.Is(err, services.ErrCategoryNotFound) && !errors.Is(err, services.ErrCategoryNameRequired) {
			configslog.Log.Error("Dashboard - UpdateCategory Error", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Güncelleme hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kategori güncellendi.")
	}
	return c.Redirect("/dashboard/categories", fiber.StatusSeeOther)
}

// DeleteCategory kategoriyi siler.
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/categories")
	}

	if err := h.categoryService.DeleteCategory(c.UserContext(), userID, uint(id)); err != nil {
		if !errors.Is(err, services.ErrCategoryNotFound) {
			configslog.Log.Error("Dashboard - DeleteCategory Error", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Silme hatası: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kategori silindi.")
	}
	return c.Redirect("/dashboard/categories", fiber.StatusSeeOther)
}
