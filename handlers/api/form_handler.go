package handlers

import (
	"time"

	"formu.link/configs/configslog"
	"formu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FormHandler form uçlarını yönetir (/api/forms).
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

// CheckTitle başlık benzersizliğini sorgular.
// GET /api/forms/check-title?title=...&excludeId=...
func (h *FormHandler) CheckTitle(c *fiber.Ctx) error {
	title := c.Query("title")
	if title == "" {
		return apiError(c, fiber.StatusBadRequest, "title parametresi zorunludur")
	}
	excludeID := uint(c.QueryInt("excludeId", 0))

	unique, err := h.formService.IsTitleUnique(c.UserContext(), title, excludeID)
	if err != nil {
		configslog.Log.Error("API - CheckTitle Error", zap.String("title", title), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "başlık kontrol edilemedi")
	}
	return c.JSON(fiber.Map{"unique": unique})
}

// formBody /api/forms isteğinin gövdesi.
type formBody struct {
	ID                  *uint       `json:"id,omitempty"`
	Title               string      `json:"title"`
	Description         string      `json:"description,omitempty"`
	Fields              []fieldJSON `json:"fields"`
	CategoryID          *uint       `json:"categoryId,omitempty"`
	IsEnabled           *bool       `json:"isEnabled,omitempty"`
	ConfirmationMessage string      `json:"confirmationMessage,omitempty"`
	SubmissionLimit     *int        `json:"submissionLimit,omitempty"`
	ClosesAt            *time.Time  `json:"closesAt,omitempty"`
}

// SaveForm formu oluşturur veya (id doluysa) günceller.
// POST /api/forms
func (h *FormHandler) SaveForm(c *fiber.Ctx) error {
	user, err := currentAPIUser(c, h.userService)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "kullanıcı doğrulanamadı")
	}

	var body formBody
	if err := c.BodyParser(&body); err != nil {
		return apiError(c, fiber.StatusBadRequest, "geçersiz istek gövdesi")
	}

	input := services.FormInput{
		ID:                  body.ID,
		Title:               body.Title,
		Description:         body.Description,
		CategoryID:          body.CategoryID,
		Fields:              fieldsToSnapshots(body.Fields),
		IsEnabled:           body.IsEnabled,
		ConfirmationMessage: body.ConfirmationMessage,
		SubmissionLimit:     body.SubmissionLimit,
		ClosesAt:            body.ClosesAt,
	}

	form, err := h.formService.SaveForm(c.UserContext(), user, input)
	if err != nil {
		status := serviceErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("API - SaveForm Error", zap.Uint("userID", user.ID), zap.Error(err))
			return apiError(c, status, "form kaydedilemedi")
		}
		return apiError(c, status, err.Error())
	}

	status := fiber.StatusOK
	if body.ID == nil {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"form": toFormJSON(form)})
}

// GetForm formu ID ile getirir.
// GET /api/forms/:id
func (h *FormHandler) GetForm(c *fiber.Ctx) error {
	user, err := currentAPIUser(c, h.userService)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "kullanıcı doğrulanamadı")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiError(c, fiber.StatusBadRequest, "geçersiz form ID")
	}

	form, err := h.formService.GetFormByID(c.UserContext(), uint(id), user)
	if err != nil {
		status := serviceErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("API - GetForm Error", zap.Int("id", id), zap.Error(err))
			return apiError(c, status, "form alınamadı")
		}
		return apiError(c, status, err.Error())
	}

	// İstemci taze veri istediğinde ara katman önbelleklerini de kapat.
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(fiber.Map{"form": toFormJSON(form)})
}

// DeleteForm formu siler.
// DELETE /api/forms/:id
func (h *FormHandler) DeleteForm(c *fiber.Ctx) error {
	user, err := currentAPIUser(c, h.userService)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "kullanıcı doğrulanamadı")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiError(c, fiber.StatusBadRequest, "geçersiz form ID")
	}

	if err := h.formService.DeleteForm(c.UserContext(), uint(id), user); err != nil {
		status := serviceErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("API - DeleteForm Error", zap.Int("id", id), zap.Error(err))
			return apiError(c, status, "form silinemedi")
		}
		return apiError(c, status, err.Error())
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ReorderFields alan sıralamasını sunucu tarafında değiştirir.
// POST /api/forms/:id/fields/reorder {from, to}
func (h *FormHandler) ReorderFields(c *fiber.Ctx) error {
	user, err := currentAPIUser(c, h.userService)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "kullanıcı doğrulanamadı")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiError(c, fiber.StatusBadRequest, "geçersiz form ID")
	}

	var body struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apiError(c, fiber.StatusBadRequest, "geçersiz istek gövdesi")
	}

	form, err := h.formService.ReorderFields(c.UserContext(), uint(id), user, body.From, body.To)
	if err != nil {
		status := serviceErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("API - ReorderFields Error",
				zap.Int("id", id), zap.Int("from", body.From), zap.Int("to", body.To), zap.Error(err))
			return apiError(c, status, "sıralama değiştirilemedi")
		}
		return apiError(c, status, err.Error())
	}
	return c.JSON(fiber.Map{"form": toFormJSON(form)})
}

func fieldsToSnapshots(fields []fieldJSON) []services.FieldSnapshot {
	out := make([]services.FieldSnapshot, 0, len(fields))
	for _, f := range fields {
		out = append(out, services.FieldSnapshot{
			ID:          f.ID,
			Type:        f.Type,
			Label:       f.Label,
			Name:        f.Name,
			Options:     f.Options,
			Placeholder: f.Placeholder,
			Value:       f.Value,
			Required:    f.Required,
			DoNotStore:  f.DoNotStore,
		})
	}
	return out
}
