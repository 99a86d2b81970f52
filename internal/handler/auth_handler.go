package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"projecthub/internal/domain"
	"projecthub/internal/middleware"
	"projecthub/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var input domain.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	_, err := h.authService.Signup(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			return middleware.BadRequest("Passwords do not match")
		case errors.Is(err, service.ErrEmailExists):
			return middleware.BadRequest("Email already exists")
		default:
			return validationError(err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, token, err := h.authService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return middleware.Unauthorized("Invalid email or password")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token": token,
		"user": fiber.Map{
			"_id":   user.ID.Hex(),
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.authService.RequestPasswordReset(c.Context(), input.Email); err != nil {
		return err
	}

	// Same answer whether or not the email exists.
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "If your email exists in our system, you will receive a password reset link",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	token := c.Params("token")

	var input struct {
		NewPassword     string `json:"new_password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	err := h.authService.ResetPassword(c.Context(), token, input.NewPassword, input.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			return middleware.BadRequest("Passwords do not match")
		case errors.Is(err, service.ErrInvalidToken):
			return middleware.BadRequest("Invalid or expired reset token")
		case errors.Is(err, service.ErrResetTokenExpired):
			return middleware.BadRequest("Reset token has expired")
		default:
			return validationError(err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password has been reset successfully",
	})
}
