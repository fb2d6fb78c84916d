package handlers // handlers/api paketi

import (
	"errors"
	"time"

	"formu.link/models"
	"formu.link/services"

	"github.com/gofiber/fiber/v2"
)

// fieldJSON API yanıtlarındaki alan gösterimi. pkg/formclient ile aynı
// sözleşmeyi kullanır.
type fieldJSON struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Label       string `json:"label"`
	Name        string `json:"name"`
	Options     string `json:"options,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Value       string `json:"value,omitempty"`
	Required    bool   `json:"required"`
	DoNotStore  bool   `json:"doNotStore"`
}

type formJSON struct {
	ID         uint        `json:"id"`
	Key        string      `json:"key"`
	Title      string      `json:"title"`
	Status     string      `json:"status"`
	CategoryID *uint       `json:"categoryId,omitempty"`
	Fields     []fieldJSON `json:"fields"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

type draftJSON struct {
	ID         uint      `json:"id"`
	FormID     *uint     `json:"formId"`
	Title      string    `json:"title"`
	IsAutoSave bool      `json:"isAutoSave"`
	SavedAt    time.Time `json:"savedAt"`
}

type versionJSON struct {
	ID                uint       `json:"id"`
	FormID            uint       `json:"formId"`
	VersionNumber     int        `json:"versionNumber"`
	ChangeDescription string     `json:"changeDescription"`
	IsPublished       bool       `json:"isPublished"`
	PublishedAt       *time.Time `json:"publishedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

func toFormJSON(form *models.Form) formJSON {
	fields := make([]fieldJSON, 0, len(form.Fields))
	for _, f := range form.Fields {
		fields = append(fields, fieldJSON{
			ID:          f.FieldID,
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
	return formJSON{
		ID:         form.ID,
		Key:        form.Key,
		Title:      form.Title,
		Status:     string(form.Status),
		CategoryID: form.CategoryID,
		Fields:     fields,
		UpdatedAt:  form.UpdatedAt,
	}
}

func toDraftJSON(draft *models.FormDraft) draftJSON {
	return draftJSON{
		ID:         draft.ID,
		FormID:     draft.FormID,
		Title:      draft.Title,
		IsAutoSave: draft.IsAutoSave,
		SavedAt:    draft.UpdatedAt,
	}
}

func toVersionJSON(v *models.FormVersion) versionJSON {
	return versionJSON{
		ID:                v.ID,
		FormID:            v.FormID,
		VersionNumber:     v.VersionNumber,
		ChangeDescription: v.ChangeDescription,
		IsPublished:       v.IsPublished,
		PublishedAt:       v.PublishedAt,
		CreatedAt:         v.CreatedAt,
	}
}

// currentAPIUser token'daki kimlikten kullanıcı kaydını yükler.
func currentAPIUser(c *fiber.Ctx, userService services.IUserService) (*models.User, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return nil, errors.New("kimlik bilgisi yok")
	}
	return userService.GetUserByID(c.UserContext(), userID)
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceErrorStatus bilinen servis hatalarını HTTP durumuna çevirir.
func serviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrFormNotFound),
		errors.Is(err, services.ErrDraftNotFound),
		errors.Is(err, services.ErrVersionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrFormForbidden),
		errors.Is(err, services.ErrDraftForbidden),
		errors.Is(err, services.ErrVersionForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrFormTitleTaken),
		errors.Is(err, services.ErrFormTitleRequired),
		errors.Is(err, services.ErrFormInvalidInput),
		errors.Is(err, services.ErrDraftInvalidInput),
		errors.Is(err, services.ErrVersionFormMismatch):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
