package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"projecthub/internal/domain"
	"projecthub/internal/middleware"
	"projecthub/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	notifications, err := h.notificationService.ListForUser(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(notifications)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	count, err := h.notificationService.CountUnread(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"unread_count": count,
	})
}

// Create lets internal tooling inject a notification directly. The target
// user comes from the body; everything else goes through the Notify helpers.
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var input struct {
		UserID      string `json:"user_id"`
		Type        string `json:"type"`
		Content     string `json:"content"`
		ReferenceID string `json:"reference_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	userID, err := primitive.ObjectIDFromHex(input.UserID)
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}
	if !domain.NotificationType(input.Type).IsValid() {
		return middleware.BadRequest("Invalid notification type")
	}
	if input.Content == "" {
		return middleware.BadRequest("Content is required")
	}

	notif := &domain.Notification{
		UserID:      userID,
		Type:        domain.NotificationType(input.Type),
		Content:     input.Content,
		ReferenceID: input.ReferenceID,
	}
	if err := h.notificationService.Create(c.Context(), notif); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(notif)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "notification")
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	if err := h.notificationService.MarkRead(c.Context(), user.ID, id); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification marked as read",
	})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	count, err := h.notificationService.MarkAllRead(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "All notifications marked as read",
		"updated_count": count,
	})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseObjectID(c, "id", "notification")
	if err != nil {
		return err
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	if err := h.notificationService.Delete(c.Context(), user.ID, id); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Notification deleted successfully",
	})
}

func (h *NotificationHandler) DeleteAll(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	count, err := h.notificationService.DeleteAll(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "All notifications deleted",
		"deleted_count": count,
	})
}
