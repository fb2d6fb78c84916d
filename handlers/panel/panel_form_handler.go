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
	"formu.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelFormHandler kullanıcının kendi formları için handler.
type PanelFormHandler struct {
	formService       services.IFormService
	categoryService   services.ICategoryService
	draftService      services.IDraftService
	versionService    services.IVersionService
	submissionService services.ISubmissionService
	userService       services.IUserService
}

// NewPanelFormHandler yeni bir PanelFormHandler örneği oluşturur.
func NewPanelFormHandler() *PanelFormHandler {
	return &PanelFormHandler{
		formService:       services.NewFormService(),
		categoryService:   services.NewCategoryService(),
		draftService:      services.NewDraftService(),
		versionService:    services.NewVersionService(),
		submissionService: services.NewSubmissionService(),
		userService:       services.NewUserService(),
	}
}

// currentUser oturumdaki kullanıcının kaydını yükler.
func (h *PanelFormHandler) currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return nil, services.ErrUserNotFound
	}
	return h.userService.GetUserByID(c.UserContext(), userID)
}

// ListForms kullanıcının kendi formlarını listeler.
func (h *PanelFormHandler) ListForms(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	paginatedResult, err := h.formService.GetFormsForUser(c.UserContext(), userID, params)

	renderData := fiber.Map{
		"Title":  "Formlarım",
		"Result": paginatedResult,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Formlar listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.Form{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListForms Error", zap.Uint("userID", userID), zap.Error(err))
	}
	return renderer.Render(c, "panel/forms/list", "layouts/panel_layout", renderData, http.StatusOK)
}

// ShowBuilder form oluşturma/düzenleme sayfasını (builder) gösterir.
// :id verilmezse boş bir builder açılır; verilirse form ve taslak/sürüm
// listeleri sayfaya gömülür.
func (h *PanelFormHandler) ShowBuilder(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return c.Redirect("/auth/login")
	}

	renderData := fiber.Map{"Title": "Form Oluştur"}

	categories, catErr := h.categoryService.GetAllCategories(c.UserContext())
	if catErr != nil {
		configslog.Log.Warn("Panel - ShowBuilder: kategoriler alınamadı", zap.Error(catErr))
	}
	renderData["Categories"] = categories

	// API çağrıları için sayfaya kısa ömürlü bir token gömülür.
	if token, tokenErr := utils.GenerateToken(user.ID, string(user.Role)); tokenErr == nil {
		renderData["APIToken"] = token
	} else {
		configslog.Log.Error("Panel - ShowBuilder: token üretilemedi", zap.Uint("userID", user.ID), zap.Error(tokenErr))
	}

	if idStr := c.Params("id"); idStr != "" {
		id, convErr := c.ParamsInt("id")
		if convErr != nil || id <= 0 {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
			return c.Redirect("/panel/forms")
		}
		form, formErr := h.formService.GetFormByID(c.UserContext(), uint(id), user)
		if formErr != nil {
			errMsg := "Form bulunamadı veya bu formu düzenleme yetkiniz yok."
			if !errors.Is(formErr, services.ErrFormNotFound) && !errors.Is(formErr, services.ErrFormForbidden) {
				errMsg = "Form bilgileri alınırken bir hata oluştu."
				configslog.Log.Error("Panel - ShowBuilder Error", zap.Int("id", id), zap.Error(formErr))
			}
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
			return c.Redirect("/panel/forms")
		}

		renderData["Title"] = "Formu Düzenle"
		renderData["Form"] = form

		// Taslak ve sürüm listeleri sorunluysa sayfa yine açılır.
		if drafts, dErr := h.draftService.GetDraftsForForm(c.UserContext(), form.ID, user); dErr == nil {
			renderData["Drafts"] = drafts
		}
		if versions, vErr := h.versionService.GetVersionsForForm(c.UserContext(), form.ID, user); vErr == nil {
			renderData["Versions"] = versions
		}
	}

	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "panel/forms/builder", "layouts/panel_layout", renderData)
}

// DeleteForm formu siler.
func (h *PanelFormHandler) DeleteForm(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/forms")
	}

	if err := h.formService.DeleteForm(c.UserContext(), uint(id), user); err != nil {
		errMsg := "Silme hatası: " + err.Error()
		if !errors.Is(err, services.ErrFormNotFound) && !errors.Is(err, services.ErrFormForbidden) {
			configslog.Log.Error("Panel - DeleteForm Error", zap.Int("id", id), zap.Uint("userID", user.ID), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Form başarıyla silindi.")
	}
	return c.Redirect("/panel/forms", fiber.StatusSeeOther)
}

// ListSubmissions formun gönderimlerini listeler.
func (h *PanelFormHandler) ListSubmissions(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/forms")
	}
	formID := uint(id)

	form, err := h.formService.GetFormByID(c.UserContext(), formID, user)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Form bulunamadı veya yetkiniz yok.")
		return c.Redirect("/panel/forms")
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	paginatedResult, err := h.submissionService.GetSubmissionsForForm(c.UserContext(), formID, user, params)

	renderData := fiber.Map{
		"Title":  "Gönderimler: " + form.Title,
		"Form":   form,
		"Result": paginatedResult,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Gönderimler listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.FormSubmission{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListSubmissions Error", zap.Uint("formID", formID), zap.Error(err))
	}
	return renderer.Render(c, "panel/forms/submissions", "layouts/panel_layout", renderData, http.StatusOK)
}
