package handlers

import (
	"formu.link/configs/configslog"
	"formu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DraftHandler taslak uçlarını yönetir (/api/drafts).
type DraftHandler struct {
	draftService services.IDraftService
	userService  services.IUserService
}

// NewDraftHandler yeni bir DraftHandler örneği oluşturur.
func NewDraftHandler() *DraftHandler {
	return &DraftHandler{
		draftService: services.NewDraftService(),
		userService:  services.NewUserService(),
	}
}

// SaveDraft taslak kaydeder (otomatik veya manuel).
// POST /api/drafts
func (h *DraftHandler) SaveDraft(c *fiber.Ctx) error {
	user, err := currentAPIUser(c, h.userService)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "kullanıcı doğrulanamadı")
	}

	var body struct {
		FormID     *uint       `json:"formId"`
		Title      string      `json:"title"`
		Fields     []fieldJSON `json:"fields"`
		CategoryID *uint       `json:"categoryId,omitempty"`
		IsAutoSave bool        `json:"isAutoSave"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apiError(c, fiber.StatusBadRequest, "geçersiz istek gövdesi")
	}

	draft, err := h.draftService.SaveDraft(c.UserContext(), user, services.DraftInput{
		FormID:     body.FormID,
		Title:      body.Title,
		CategoryID: body.CategoryID,
		Fields:     fieldsToSnapshots(body.Fields),
		IsAutoSave: body.IsAutoSave,
	})
	if err != nil {
		status := serviceErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("API - SaveDraft Error", zap.Uint("userID", user.ID), zap.Error(err))
			return apiError(c, status, "taslak kaydedilemedi")
		}
		return apiError(c, status, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"draft": toDraftJSON(draft)})
}

// ListDrafts formun taslaklarını getirir.
// GET /api/forms/:id/drafts
func (h *DraftHandler) ListDrafts(c *fiber.Ctx) error {
	user, err := currentAPIUser(c, h.userService)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "kullanıcı doğrulanamadı")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiError(c, fiber.StatusBadRequest, "geçersiz form ID")
	}

	drafts, err := h.draftService.GetDraftsForForm(c.UserContext(), uint(id), user)
	if err != nil {
		status := serviceErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("API - ListDrafts Error", zap.Int("formID", id), zap.Error(err))
			return apiError(c, status, "taslaklar alınamadı")
		}
		return apiError(c, status, err.Error())
	}

	out := make([]draftJSON, 0, len(drafts))
	for i := range drafts {
		out = append(out, toDraftJSON(&drafts[i]))
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(fiber.Map{"drafts": out})
}
