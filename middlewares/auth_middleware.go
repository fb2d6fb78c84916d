package middlewares

import (
	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/services"
	"formu.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware oturum açmış kullanıcı zorunluluğu. Oturum yoksa
// login sayfasına yönlendirir.
func AuthMiddleware(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	userID, err := utils.GetUserIDFromSession(sess)
	if err != nil || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}
	c.Locals("userID", userID)
	if role, err := utils.GetUserRoleFromSession(sess); err == nil {
		c.Locals("userRole", role)
	}
	return c.Next()
}

// StatusMiddleware hesabın aktif olduğunu doğrular. Pasifleştirilmiş
// kullanıcının oturumu sonlandırılır.
func StatusMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}

	userService := services.NewUserService()
	user, err := userService.GetUserByID(c.UserContext(), userID)
	if err != nil || !user.IsActive {
		if err != nil {
			configslog.Log.Warn("StatusMiddleware: kullanıcı doğrulanamadı",
				zap.Uint("userID", userID), zap.Error(err))
		}
		_ = utils.DestroySession(c)
		return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
	}

	// Rol oturumdan değil veritabanından alınır; yetki değişiklikleri
	// bir sonraki istekte geçerli olur.
	c.Locals("userRole", string(user.Role))
	c.Locals("userName", user.Name)
	return c.Next()
}

// GuestMiddleware yalnızca oturumu olmayan ziyaretçilere izin verir
// (login/register sayfaları). Girişli kullanıcı ana sayfasına gider.
func GuestMiddleware(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return c.Next()
	}
	if userID, err := utils.GetUserIDFromSession(sess); err == nil && userID != 0 {
		role, _ := utils.GetUserRoleFromSession(sess)
		if role == string(models.RoleAdmin) {
			return c.Redirect("/dashboard/home", fiber.StatusFound)
		}
		return c.Redirect("/panel/home", fiber.StatusFound)
	}
	return c.Next()
}

// RequireAdmin sadece admin rolüne izin veren middleware döndürür.
func RequireAdmin() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}

// RequireRole verilen rollerden birine sahip kullanıcılara izin verir.
func RequireRole(roles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleStr, ok := c.Locals("userRole").(string)
		if !ok {
			return c.Redirect("/auth/login", fiber.StatusTemporaryRedirect)
		}
		for _, r := range roles {
			if models.UserRole(roleStr) == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).Render("errors/403", fiber.Map{
			"Title": "Yetkisiz Erişim",
		}, "layouts/error_layout")
	}
}
