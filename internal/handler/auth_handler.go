package handler

import (
	"github.com/gofiber/fiber/v2"

	"grievance-portal/internal/domain"
	"grievance-portal/internal/middleware"
	"grievance-portal/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, err := h.authService.Register(c.Context(), input)
	if err != nil {
		if err == service.ErrEmailExists {
			return middleware.Conflict("Email already registered")
		}
		if err == service.ErrEmailNotAllowed {
			return middleware.BadRequest("Please use your institutional email address")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"message": "Registration successful. You can now sign in.",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, tokens, err := h.authService.Login(c.Context(), input)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return middleware.Unauthorized("Invalid email or password")
		}
		if err == service.ErrAccountDisabled {
			return middleware.Forbidden("Account is disabled. Contact an administrator.")
		}
		if err == service.ErrEmailNotAllowed {
			return middleware.Unauthorized("Invalid email or password")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	tokens, err := h.authService.RefreshToken(c.Context(), input.RefreshToken)
	if err != nil {
		if err == service.ErrInvalidToken {
			return middleware.Unauthorized("Invalid refresh token")
		}
		if err == service.ErrUserNotFound || err == service.ErrAccountDisabled {
			return middleware.Unauthorized("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.authService.Logout(c.Context(), input.RefreshToken); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": user,
	})
}
