package handlers

import (
	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// VersionHandler sürüm uçlarını yönetir (/api/forms/:id/versions, /api/versions/:id).
type VersionHandler struct {
	versionService services.IVersionService
	userService    services.IUserService
}

// NewVersionHandler yeni bir VersionHandler örneği oluşturur.
func NewVersionHandler() *VersionHandler {
	return &VersionHandler{
		versionService: services.NewVersionService(),
		userService:    services.NewUserService(),
	}
}

// CreateVersion form için yeni bir numaralı sürüm oluşturur.
// POST /api/forms/:id/versions {changeDescription}
func (h *VersionHandler) CreateVersion(c *fiber.Ctx) error {
	user, err := currentAPIUser(c, h.userService)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "kullanıcı doğrulanamadı")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiError(c, fiber.StatusBadRequest, "geçersiz form ID")
	}

	var body struct {
		ChangeDescription string `json:"changeDescription"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apiError(c, fiber.StatusBadRequest, "geçersiz istek gövdesi")
	}

	version, err := h.versionService.CreateVersion(c.UserContext(), user, uint(id), body.ChangeDescription)
	if err != nil {
		status := serviceErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("API - CreateVersion Error", zap.Int("formID", id), zap.Error(err))
			return apiError(c, status, "sürüm oluşturulamadı")
		}
		return apiError(c, status, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"version": toVersionJSON(version)})
}

// ListVersions formun sürümlerini getirir (yeniden eskiye).
// GET /api/forms/:id/versions
func (h *VersionHandler) ListVersions(c *fiber.Ctx) error {
	user, err := currentAPIUser(c, h.userService)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "kullanıcı doğrulanamadı")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiError(c, fiber.StatusBadRequest, "geçersiz form ID")
	}

	versions, err := h.versionService.GetVersionsForForm(c.UserContext(), uint(id), user)
	if err != nil {
		status := serviceErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("API - ListVersions Error", zap.Int("formID", id), zap.Error(err))
			return apiError(c, status, "sürümler alınamadı")
		}
		return apiError(c, status, err.Error())
	}

	out := make([]versionJSON, 0, len(versions))
	for i := range versions {
		out = append(out, toVersionJSON(&versions[i]))
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(fiber.Map{"versions": out})
}

// PublishVersion sürümü canlı forma uygular ve yayınlanmış işaretler.
// POST /api/versions/:id/publish {formId}
func (h *VersionHandler) PublishVersion(c *fiber.Ctx) error {
	return h.applyVersion(c, "publish")
}

// RollbackVersion formu sürümün içeriğine geri döndürür ve işlemi yeni
// bir sürüm olarak kaydeder.
// POST /api/versions/:id/rollback {formId}
func (h *VersionHandler) RollbackVersion(c *fiber.Ctx) error {
	return h.applyVersion(c, "rollback")
}

func (h *VersionHandler) applyVersion(c *fiber.Ctx, op string) error {
	user, err := currentAPIUser(c, h.userService)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "kullanıcı doğrulanamadı")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apiError(c, fiber.StatusBadRequest, "geçersiz sürüm ID")
	}

	var body struct {
		FormID uint `json:"formId"`
	}
	if err := c.BodyParser(&body); err != nil || body.FormID == 0 {
		return apiError(c, fiber.StatusBadRequest, "formId zorunludur")
	}

	var versionModel *models.FormVersion
	if op == "publish" {
		versionModel, err = h.versionService.PublishVersion(c.UserContext(), user, uint(id), body.FormID)
	} else {
		versionModel, err = h.versionService.RollbackVersion(c.UserContext(), user, uint(id), body.FormID)
	}
	if err != nil {
		status := serviceErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			configslog.Log.Error("API - "+op+" Error",
				zap.Int("versionID", id), zap.Uint("formID", body.FormID), zap.Error(err))
			return apiError(c, status, "sürüm işlemi başarısız")
		}
		return apiError(c, status, err.Error())
	}
	return c.JSON(fiber.Map{"version": toVersionJSON(versionModel)})
}
