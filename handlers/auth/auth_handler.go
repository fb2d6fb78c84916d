package handlers // handlers/auth paketi

import (
	"errors"
	"net/http"

	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/pkg/flashmessages"
	"formu.link/pkg/renderer"
	"formu.link/services"
	"formu.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler giriş/çıkış ve profil işlemlerini yönetir.
type AuthHandler struct {
	userService  services.IUserService
	auditService services.IAuditService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		userService:  services.NewUserService(),
		auditService: services.NewAuditService(),
	}
}

// ShowLogin giriş formunu gösterir.
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	renderData := fiber.Map{"Title": "Giriş Yap"}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "auth/login", "layouts/auth_layout", renderData)
}

// Login e-posta/şifre doğrular ve oturum açar.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.userService.Authenticate(c.UserContext(), email, password)
	if err != nil {
		if !errors.Is(err, services.ErrUserInvalidCredentials) && !errors.Is(err, services.ErrUserInactive) {
			configslog.Log.Error("Login Error", zap.String("email", email), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "E-posta veya şifre hatalı.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	if err := utils.SetUserSession(c, user.ID, user.Name, string(user.Role)); err != nil {
		configslog.Log.Error("Login: oturum yazılamadı", zap.Uint("userID", user.ID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Oturum başlatılamadı.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	h.auditService.Record(c.UserContext(), user.ID, models.AuditActionLogin, "user", user.ID, "oturum açıldı")

	if user.IsAdmin() {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	return c.Redirect("/panel/home", fiber.StatusFound)
}

// ShowRegister kayıt formunu gösterir.
func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	renderData := fiber.Map{
		"Title":    "Kayıt Ol",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "auth/register", "layouts/auth_layout", renderData)
}

// Register yeni kullanıcı kaydeder. Kayıt olan herkes editor rolü alır;
// admin rolü sadece dashboard'dan atanır.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := h.userService.Register(c.UserContext(), name, email, password, models.RoleEditor)
	if err != nil {
		if errors.Is(err, services.ErrUserEmailTaken) || errors.Is(err, services.ErrUserInvalidInput) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		} else {
			configslog.Log.Error("Register Error", zap.String("email", email), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Kayıt sırasında bir hata oluştu.")
		}
		_ = flashmessages.SetFlashFormData(c, fiber.Map{"name": name, "email": email})
		return c.Redirect("/auth/register", fiber.StatusSeeOther)
	}

	if err := utils.SetUserSession(c, user.ID, user.Name, string(user.Role)); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kayıt tamamlandı, giriş yapabilirsiniz.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	return c.Redirect("/panel/home", fiber.StatusFound)
}

// Logout oturumu sonlandırır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := utils.DestroySession(c); err != nil {
		configslog.Log.Warn("Logout: oturum sonlandırılamadı", zap.Error(err))
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}

// Profile kullanıcının profil sayfasını gösterir.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	user, err := h.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Error("Profile Error", zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Profil bilgileri alınamadı.")
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	renderData := fiber.Map{"Title": "Profilim", "User": user}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	layout := "layouts/panel_layout"
	if user.IsAdmin() {
		layout = "layouts/dashboard_layout"
	}
	return renderer.Render(c, "auth/profile", layout, renderData, http.StatusOK)
}

// UpdatePassword mevcut şifreyi doğrulayıp yenisini yazar.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	current := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")

	if err := h.userService.UpdatePassword(c.UserContext(), userID, current, newPassword); err != nil {
		if errors.Is(err, services.ErrUserInvalidCredentials) || errors.Is(err, services.ErrUserInvalidInput) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		} else {
			configslog.Log.Error("UpdatePassword Error", zap.Uint("userID", userID), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Şifre güncellenemedi.")
		}
		return c.Redirect("/auth/profile", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Şifreniz güncellendi.")
	return c.Redirect("/auth/profile", fiber.StatusFound)
}
