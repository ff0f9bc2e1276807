package handler

import (
	"github.com/gofiber/fiber/v2"

	"grievance-portal/internal/middleware"
	"grievance-portal/internal/service"
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
		return middleware.Unauthorized("User not found")
	}

	unreadOnly := c.QueryBool("unread_only")
	params := paginationFromQuery(c)

	notifications, err := h.notificationService.List(c.Context(), user.Role, unreadOnly, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(notifications)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	count, err := h.notificationService.UnreadCount(c.Context(), user.Role)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"unread_count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.notificationService.MarkAsRead(c.Context(), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	if err := h.notificationService.MarkAllAsRead(c.Context(), user.Role); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "All notifications marked as read"})
}
