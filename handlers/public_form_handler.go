package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"strings"

	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/pkg/fieldkit"
	"formu.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"
)

// PublicFormHandler /f/:key altındaki public form isteklerini yönetir.
type PublicFormHandler struct {
	formService       services.IFormService
	submissionService services.ISubmissionService
	markdown          goldmark.Markdown
}

// NewPublicFormHandler yeni bir PublicFormHandler örneği oluşturur.
func NewPublicFormHandler() *PublicFormHandler {
	return &PublicFormHandler{
		formService:       services.NewFormService(),
		submissionService: services.NewSubmissionService(),
		markdown:          goldmark.New(),
	}
}

// publicField view'a giden alan görünümü. Rich-text içerik sunucu
// tarafında HTML'e çevrilir; seçenekler ayrıştırılmış listedir.
type publicField struct {
	FieldID     string
	Type        string
	Label       string
	Name        string
	Options     []string
	Placeholder string
	Value       string
	Required    bool
	RichHTML    template.HTML
}

// ShowForm yayınlanmış formu gösterir.
// GET /f/:key
func (h *PublicFormHandler) ShowForm(c *fiber.Ctx) error {
	key := c.Params("key")
	if len(key) != models.FormKeyLength {
		return h.renderNotFound(c, "Geçersiz Bağlantı")
	}

	form, err := h.formService.GetFormByKey(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			return h.renderNotFound(c, "Form Bulunamadı")
		}
		configslog.Log.Error("PublicForm - ShowForm Error", zap.String("key", key), zap.Error(err))
		return h.renderError(c, "Form yüklenirken bir sorun oluştu.")
	}

	return c.Render("public/form", fiber.Map{
		"Title":  form.Title,
		"Form":   form,
		"Fields": h.buildPublicFields(form.Fields),
	}, "layouts/public_layout")
}

// SubmitForm public gönderimi alır ve onay sayfasını gösterir.
// POST /f/:key
func (h *PublicFormHandler) SubmitForm(c *fiber.Ctx) error {
	key := c.Params("key")
	if len(key) != models.FormKeyLength {
		return h.renderNotFound(c, "Geçersiz Bağlantı")
	}

	form, err := h.formService.GetFormByKey(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, services.ErrFormNotFound) {
			return h.renderNotFound(c, "Form Bulunamadı")
		}
		configslog.Log.Error("PublicForm - SubmitForm Error", zap.String("key", key), zap.Error(err))
		return h.renderError(c, "Form yüklenirken bir sorun oluştu.")
	}

	values := make(map[string]string, len(form.Fields))
	for _, field := range form.Fields {
		if fieldkit.FieldType(field.Type) == fieldkit.TypeCheckboxes {
			// Checkbox grubu aynı isimle birden çok değer gönderir.
			values[field.Name] = strings.Join(formValueAll(c, field.Name), ",")
			continue
		}
		values[field.Name] = c.FormValue(field.Name)
	}

	submission, err := h.submissionService.SubmitForm(c.UserContext(), form, values, c.IP())
	if err != nil {
		var validationErrs services.ValidationErrors
		if errors.As(err, &validationErrs) {
			return c.Status(fiber.StatusUnprocessableEntity).Render("public/form", fiber.Map{
				"Title":            form.Title,
				"Form":             form,
				"Fields":           h.buildPublicFields(form.Fields),
				"ValidationErrors": validationErrs,
				"Values":           values,
			}, "layouts/public_layout")
		}
		if errors.Is(err, services.ErrSubmissionFormClosed) || errors.Is(err, services.ErrSubmissionLimitReached) {
			return c.Status(fiber.StatusForbidden).Render("public/closed", fiber.Map{
				"Title":   form.Title,
				"Message": err.Error(),
			}, "layouts/public_layout")
		}
		configslog.Log.Error("PublicForm - SubmitForm Error", zap.String("key", key), zap.Error(err))
		return h.renderError(c, "Gönderim kaydedilirken bir sorun oluştu.")
	}

	message := form.ConfirmationMessage
	if message == "" {
		message = "Yanıtınız alındı, teşekkürler."
	}
	return c.Render("public/confirmation", fiber.Map{
		"Title":     form.Title,
		"Message":   message,
		"Reference": submission.Reference,
	}, "layouts/public_layout")
}

func (h *PublicFormHandler) buildPublicFields(fields []models.FormField) []publicField {
	out := make([]publicField, 0, len(fields))
	for _, f := range fields {
		pf := publicField{
			FieldID:     f.FieldID,
			Type:        f.Type,
			Label:       f.Label,
			Name:        f.Name,
			Placeholder: f.Placeholder,
			Value:       f.Value,
			Required:    f.Required,
		}
		if f.Options != "" {
			for _, opt := range strings.Split(f.Options, ",") {
				if opt = strings.TrimSpace(opt); opt != "" {
					pf.Options = append(pf.Options, opt)
				}
			}
		}
		if fieldkit.FieldType(f.Type) == fieldkit.TypeRichText {
			var buf bytes.Buffer
			if err := h.markdown.Convert([]byte(f.Value), &buf); err != nil {
				configslog.Log.Warn("PublicForm - rich-text çevrilemedi",
					zap.String("fieldID", f.FieldID), zap.Error(err))
				pf.RichHTML = template.HTML(template.HTMLEscapeString(f.Value))
			} else {
				pf.RichHTML = template.HTML(buf.String())
			}
		}
		out = append(out, pf)
	}
	return out
}

// formValueAll aynı isimle gönderilen tüm form değerlerini döndürür.
func formValueAll(c *fiber.Ctx, name string) []string {
	var values []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vs, ok := form.Value[name]; ok {
			return vs
		}
	}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		if string(k) == name {
			values = append(values, string(v))
		}
	})
	return values
}

func (h *PublicFormHandler) renderNotFound(c *fiber.Ctx, title string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title": title,
	}, "layouts/error_layout")
}

func (h *PublicFormHandler) renderError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":   "Bir Sorun Oluştu",
		"Message": message,
	}, "layouts/error_layout")
}
