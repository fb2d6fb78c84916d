package handlers

import (
	"errors"

	"formu.link/configs/configslog"
	"formu.link/services"
	"formu.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler API token üretimini yönetir.
type AuthHandler struct {
	userService services.IUserService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{userService: services.NewUserService()}
}

// Login e-posta/şifre doğrular ve bearer token döner.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return apiError(c, fiber.StatusBadRequest, "geçersiz istek gövdesi")
	}

	user, err := h.userService.Authenticate(c.UserContext(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserInvalidCredentials) || errors.Is(err, services.ErrUserInactive) {
			return apiError(c, fiber.StatusUnauthorized, err.Error())
		}
		configslog.Log.Error("API - Login Error", zap.String("email", body.Email), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "giriş yapılamadı")
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		configslog.Log.Error("API - Token üretilemedi", zap.Uint("userID", user.ID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "token üretilemedi")
	}
	return c.JSON(fiber.Map{"token": token})
}
