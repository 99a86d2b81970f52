package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"projecthub/internal/middleware"
	"projecthub/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "user")
	if err != nil {
		return err
	}

	user, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	if user == nil {
		return middleware.NotFound("User not found")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	err := h.userService.UpdateProfile(c.Context(), currentUser.Email, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoValidFields):
			return middleware.BadRequest("No valid fields to update")
		case errors.Is(err, service.ErrUserNotFound):
			return middleware.BadRequest("Failed to update profile")
		default:
			return err
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profile updated successfully",
	})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "user")
	if err != nil {
		return err
	}

	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	err = h.userService.AdminUpdate(c.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoValidFields):
			return middleware.BadRequest("No valid fields to update")
		case errors.Is(err, service.ErrUserNotFound):
			return middleware.NotFound("User not found or no changes made")
		default:
			return validationError(err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User updated successfully",
	})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "user")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}
