package middlewares

import (
	"strings"

	"formu.link/models"
	"formu.link/utils"

	"github.com/gofiber/fiber/v2"
)

// APIAuthMiddleware Bearer token doğrulaması yapar. Geçerli token
// yoksa 401 döner; kimlik bilgileri locals'a yazılır.
func APIAuthMiddleware(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "yetkilendirme başlığı eksik",
		})
	}

	claims, err := utils.ParseToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "geçersiz veya süresi dolmuş token",
		})
	}

	c.Locals("userID", claims.UserID)
	c.Locals("userRole", claims.Role)
	return c.Next()
}

// APIRequireEditor yazma uçları için editor veya admin rolü arar.
func APIRequireEditor(c *fiber.Ctx) error {
	role, _ := c.Locals("userRole").(string)
	switch models.UserRole(role) {
	case models.RoleAdmin, models.RoleEditor:
		return c.Next()
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "bu işlem için yetkiniz yok",
		})
	}
}

// APIRequireAdmin sadece admin rolüne izin verir.
func APIRequireAdmin(c *fiber.Ctx) error {
	role, _ := c.Locals("userRole").(string)
	if models.UserRole(role) != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "bu işlem için yetkiniz yok",
		})
	}
	return c.Next()
}
